package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
)

const (
	weekendDemandBonus = 30.0
	demandNoiseUnits   = 10
)

// PredictDemand estimates unit demand for a category at a location on the
// target date. Unknown categories and locations resolve to their defaults;
// the only randomness is a uniform ±10 unit perturbation drawn from rng.
func PredictDemand(req domain.DemandPredictionRequest, rng Source) domain.DemandPredictionResult {
	profile := domain.ProfileFor(req.Category)

	// 1. Weekend bonus
	weekend := isWeekend(req.TargetDate)
	bonus := 0.0
	if weekend {
		bonus = weekendDemandBonus
	}

	// 2. Location multiplier
	multiplier := req.Location.Multiplier()

	// 3. Noise
	noise := float64(uniformInt(rng, demandNoiseUnits))

	// 4. Prediction, floored at zero
	predicted := toNonNegInt(math.Round((profile.BaseDemand+bonus)*multiplier + noise))

	return domain.DemandPredictionResult{
		PredictedDemand:     predicted,
		ConfidenceInterval:  confidenceBand(predicted),
		ContributingFactors: demandFactors(weekend, req.Location),
	}
}

// confidenceBand is round(10% of demand), computed on integers to avoid
// float drift at the .5 boundary.
func confidenceBand(demand int) int {
	if demand <= 0 {
		return 0
	}
	return (demand + 5) / 10
}

func isWeekend(date time.Time) bool {
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}

func demandFactors(weekend bool, location domain.Location) []string {
	dayFactor := "Weekday demand pattern"
	if weekend {
		dayFactor = "Weekend demand increase"
	}

	return []string{
		"Historical sales patterns",
		dayFactor,
		fmt.Sprintf("Location factor: %s", location),
		"Seasonal adjustment",
	}
}
