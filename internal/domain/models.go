package domain

import "time"

// DemandPredictionRequest asks for the expected unit demand on TargetDate.
type DemandPredictionRequest struct {
	Category    Category  `json:"category"`
	ProductName string    `json:"product_name,omitempty"`
	TargetDate  time.Time `json:"target_date"`
	Location    Location  `json:"location"`
}

// DemandPredictionResult is the demand estimate with a ±10% band.
type DemandPredictionResult struct {
	PredictedDemand     int      `json:"predictedDemand"`
	ConfidenceInterval  int      `json:"confidenceInterval"`
	ContributingFactors []string `json:"contributingFactors"`
}

// ShelfLifeRequest describes how a product is stored. Humidity and packaging
// are accepted but do not affect the estimate.
type ShelfLifeRequest struct {
	Category            Category `json:"category"`
	ProductName         string   `json:"product_name,omitempty"`
	StorageTemperatureC float64  `json:"storage_temperature_c"`
	HumidityPct         *float64 `json:"humidity_pct,omitempty"`
	PackagingType       string   `json:"packaging_type,omitempty"`
}

// StorageConditions are the recommended storage settings for a category.
type StorageConditions struct {
	TemperatureC float64 `json:"temperature"`
	HumidityPct  float64 `json:"humidity"`
}

// ShelfLifeResult is the estimated sellable days, never below one.
type ShelfLifeResult struct {
	PredictedDays          float64           `json:"predictedDays"`
	ConfidenceIntervalDays float64           `json:"confidenceInterval"`
	OptimalConditions      StorageConditions `json:"optimalConditions"`
}

// InventoryOptimizationRequest carries a 7-day demand estimate and the supply
// constraints the recommendation must respect.
type InventoryOptimizationRequest struct {
	Category         Category `json:"category,omitempty"`
	CurrentStock     float64  `json:"current_stock"`
	LeadTimeDays     float64  `json:"lead_time_days"`
	ShelfLifeDays    float64  `json:"shelf_life_days"`
	DemandPrediction float64  `json:"demand_prediction"`
}

// InventoryOptimizationResult holds stock levels in units, all non-negative.
type InventoryOptimizationResult struct {
	OptimalStock    int `json:"optimalStock"`
	MinStock        int `json:"minStock"`
	MaxStock        int `json:"maxStock"`
	ReorderPoint    int `json:"reorderPoint"`
	ReorderQuantity int `json:"reorderQuantity"`
}

// ImpactMetrics converts avoided waste into environmental savings.
type ImpactMetrics struct {
	CO2ReductionKg   float64 `json:"co2Reduction"`
	WaterSavedLiters float64 `json:"waterSaved"`
	LandSavedM2      float64 `json:"landSaved"`
}

// SDGContribution scores progress towards SDG 2 (zero hunger) and SDG 12
// (responsible consumption) on a 0-100 scale.
type SDGContribution struct {
	MealsProvided int `json:"mealsProvided"`
	SDG2Score     int `json:"sdg2Score"`
	SDG12Score    int `json:"sdg12Score"`
}

// Trend labels a period-over-period waste change. A reduction above the
// threshold is labelled TrendIncrease.
type Trend string

const (
	TrendIncrease Trend = "increase"
	TrendDecrease Trend = "decrease"
	TrendStable   Trend = "stable"
)

// WasteTrend is the waste reduction percentage and its trend label.
type WasteTrend struct {
	Percentage float64 `json:"percentage"`
	Trend      Trend   `json:"trend"`
}

type StockStatus string

const (
	StockUnderstocked StockStatus = "Understocked"
	StockOptimal      StockStatus = "Optimal"
	StockOverstocked  StockStatus = "Overstocked"
)

// InventoryEfficiency rates current stock against optimal on a 0-100 scale.
type InventoryEfficiency struct {
	Efficiency     float64     `json:"efficiency"`
	Status         StockStatus `json:"status"`
	Recommendation string      `json:"recommendation"`
}

// PlanRequest runs the full prediction chain for one product line.
type PlanRequest struct {
	Category            Category  `json:"category"`
	ProductName         string    `json:"product_name,omitempty"`
	TargetDate          time.Time `json:"target_date"`
	Location            Location  `json:"location"`
	StorageTemperatureC float64   `json:"storage_temperature_c"`
	LeadTimeDays        float64   `json:"lead_time_days"`
	CurrentStock        float64   `json:"current_stock"`
}

type PlanResult struct {
	Category   Category                    `json:"category"`
	Location   Location                    `json:"location"`
	TargetDate string                      `json:"targetDate"`
	Demand     DemandPredictionResult      `json:"demand"`
	ShelfLife  ShelfLifeResult             `json:"shelfLife"`
	Inventory  InventoryOptimizationResult `json:"inventory"`
	Efficiency InventoryEfficiency         `json:"efficiency"`
}
