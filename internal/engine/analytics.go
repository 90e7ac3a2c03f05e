package engine

import (
	"fmt"
	"math"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	trendThresholdPct = 2.0
	understockRatio   = 0.8
	overstockRatio    = 1.2
)

// CalculateWasteReduction compares current waste against the previous
// period. A reduction above 2% is labelled "increase" and a rise above 2% is
// labelled "decrease"; the labels follow the reporting convention downstream
// consumers already rely on. A non-positive previous period reports 0%.
func CalculateWasteReduction(currentWaste, previousWaste float64) domain.WasteTrend {
	if previousWaste <= 0 || math.IsNaN(previousWaste) || math.IsNaN(currentWaste) {
		return domain.WasteTrend{Percentage: 0, Trend: domain.TrendStable}
	}

	reduction := (previousWaste - currentWaste) / previousWaste * percentageFactor

	trend := domain.TrendStable
	switch {
	case reduction > trendThresholdPct:
		trend = domain.TrendIncrease
	case reduction < -trendThresholdPct:
		trend = domain.TrendDecrease
	}

	return domain.WasteTrend{
		Percentage: roundFloat(reduction, 1),
		Trend:      trend,
	}
}

// CalculateCostSavings prices avoided waste at costPerKg, rounded to cents.
func CalculateCostSavings(wasteReductionKg, costPerKg float64) float64 {
	savings, _ := decimal.NewFromFloat(wasteReductionKg).
		Mul(decimal.NewFromFloat(costPerKg)).
		Round(2).
		Float64()
	return savings
}

// AnalyzeInventoryEfficiency rates current stock against the optimal level.
// Below 80% of optimal is understocked, above 120% is overstocked.
func AnalyzeInventoryEfficiency(currentStock, optimalStock float64) domain.InventoryEfficiency {
	if optimalStock <= 0 {
		if currentStock <= 0 {
			return domain.InventoryEfficiency{
				Efficiency:     percentageFactor,
				Status:         domain.StockOptimal,
				Recommendation: "Maintain current inventory levels",
			}
		}
		return domain.InventoryEfficiency{
			Efficiency:     0,
			Status:         domain.StockOverstocked,
			Recommendation: fmt.Sprintf("Reduce stock by %d units to prevent waste", toNonNegInt(math.Round(currentStock))),
		}
	}

	deviation := math.Abs(currentStock - optimalStock)
	efficiency := math.Max(0, percentageFactor-deviation/optimalStock*percentageFactor)

	result := domain.InventoryEfficiency{Efficiency: roundFloat(efficiency, 1)}
	switch {
	case currentStock < optimalStock*understockRatio:
		result.Status = domain.StockUnderstocked
		result.Recommendation = fmt.Sprintf("Increase stock by %d units", toNonNegInt(math.Round(optimalStock-currentStock)))
	case currentStock > optimalStock*overstockRatio:
		excessPct := toNonNegInt(math.Round((currentStock - optimalStock) / optimalStock * percentageFactor))
		result.Status = domain.StockOverstocked
		result.Recommendation = fmt.Sprintf("Reduce stock by %d%% to prevent waste", excessPct)
	default:
		result.Status = domain.StockOptimal
		result.Recommendation = "Maintain current inventory levels"
	}

	return result
}
