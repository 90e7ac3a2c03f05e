package engine

import (
	"math"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
)

const (
	tempPenaltyDaysPerDegree = 0.5
	shelfLifeNoiseDays       = 0.3
	minShelfLifeDays         = 1.0
	shelfLifeConfidenceDays  = 0.5
)

// PredictShelfLife estimates the remaining sellable days for a category
// stored at the given temperature. Every degree away from the category's
// optimum costs half a day; the estimate never drops below one day.
func PredictShelfLife(req domain.ShelfLifeRequest, rng Source) domain.ShelfLifeResult {
	profile := domain.ProfileFor(req.Category)

	tempEffect := math.Abs(req.StorageTemperatureC-profile.OptimalTemperatureC) * tempPenaltyDaysPerDegree
	noise := uniformFloat(rng, shelfLifeNoiseDays)

	days := profile.BaseShelfLifeDays - tempEffect + noise
	if math.IsNaN(days) || days < minShelfLifeDays {
		days = minShelfLifeDays
	}

	return domain.ShelfLifeResult{
		PredictedDays:          roundFloat(days, 1),
		ConfidenceIntervalDays: shelfLifeConfidenceDays,
		OptimalConditions: domain.StorageConditions{
			TemperatureC: profile.OptimalTemperatureC,
			HumidityPct:  profile.HumidityPct(),
		},
	}
}
