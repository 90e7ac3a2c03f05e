package engine

import (
	"math"

	"github.com/andresuchdata/wastewise/backend-go/internal/domain"
)

// InventoryOptimizer turns a weekly demand estimate into stock levels using a
// reorder-point heuristic capped by shelf life.
type InventoryOptimizer struct {
	demandWindowDays float64
	safetyFactor     float64
	shelfLifeCap     float64
	maxStockFactor   float64
}

// NewInventoryOptimizer creates an optimizer with a 7-day demand window, 30%
// safety stock, an 80% shelf-life cap and max stock at 120% of optimal.
func NewInventoryOptimizer() *InventoryOptimizer {
	return &InventoryOptimizer{
		demandWindowDays: 7,
		safetyFactor:     0.30,
		shelfLifeCap:     0.80,
		maxStockFactor:   1.2,
	}
}

// Optimize computes all stock recommendations for a request. Negative or
// non-finite inputs count as zero, so a zero-demand request yields all zeros.
func (o *InventoryOptimizer) Optimize(req domain.InventoryOptimizationRequest) domain.InventoryOptimizationResult {
	demand := nonNegative(req.DemandPrediction)
	leadTime := nonNegative(req.LeadTimeDays)
	shelfLife := nonNegative(req.ShelfLifeDays)

	// 1. Daily demand over the reference window
	dailyDemand := demand / o.demandWindowDays

	// 2. Demand while a reorder is in transit
	leadTimeDemand := dailyDemand * leadTime

	// 3. Safety stock = 30% of lead time demand
	safetyStock := math.Round(leadTimeDemand * o.safetyFactor)

	// 4. What can plausibly sell before spoiling
	maxByShelfLife := dailyDemand * shelfLife * o.shelfLifeCap

	// 5. Optimal stock, capped by shelf life
	optimalStock := math.Min(math.Round(leadTimeDemand+safetyStock), math.Round(maxByShelfLife))

	// 6. Min stock is the safety stock, never above optimal
	minStock := math.Min(safetyStock, optimalStock)
	maxStock := math.Round(optimalStock * o.maxStockFactor)

	// 7. Reorder point = lead time demand + half the safety stock
	reorderPoint := math.Round(leadTimeDemand + safetyStock/2)

	result := domain.InventoryOptimizationResult{
		OptimalStock: toNonNegInt(optimalStock),
		MinStock:     toNonNegInt(minStock),
		MaxStock:     toNonNegInt(maxStock),
		ReorderPoint: toNonNegInt(reorderPoint),
	}

	// 8. Reorder quantity, on the saturated levels
	result.ReorderQuantity = max(0, result.OptimalStock-result.MinStock)

	return result
}
