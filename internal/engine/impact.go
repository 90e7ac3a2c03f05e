package engine

import (
	"math"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
)

// Conversion factors per kg of avoided food waste.
const (
	co2KgPerKg       = 2.5
	waterLitersPerKg = 1000.0
	landM2PerKg      = 0.5
)

const (
	kgPerMeal        = 0.5
	sdg2TargetKg     = 5000.0
	sdg12TargetKg    = 10000.0
	maxSDGScore      = 100
	minSDGScore      = 0
	percentageFactor = 100.0
)

// CalculateEnvironmentalImpact converts avoided waste (kg) into CO2, water and
// land savings.
func CalculateEnvironmentalImpact(wasteReductionKg float64) domain.ImpactMetrics {
	return domain.ImpactMetrics{
		CO2ReductionKg:   roundFloat(wasteReductionKg*co2KgPerKg, 1),
		WaterSavedLiters: math.Round(wasteReductionKg * waterLitersPerKg),
		LandSavedM2:      roundFloat(wasteReductionKg*landM2PerKg, 1),
	}
}

// CalculateSDGContribution scores avoided waste against SDG 12 and food
// redirected to people against SDG 2.
func CalculateSDGContribution(wasteReductionKg, foodRedirectedKg float64) domain.SDGContribution {
	return domain.SDGContribution{
		MealsProvided: toNonNegInt(math.Round(foodRedirectedKg / kgPerMeal)),
		SDG2Score:     sdgScore(foodRedirectedKg, sdg2TargetKg),
		SDG12Score:    sdgScore(wasteReductionKg, sdg12TargetKg),
	}
}

func sdgScore(kg, targetKg float64) int {
	return clampInt(toNonNegInt(math.Round(kg/targetKg*percentageFactor)), minSDGScore, maxSDGScore)
}
