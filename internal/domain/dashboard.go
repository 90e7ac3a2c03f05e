package domain

import (
	"strings"
	"time"
)

// TimeRange selects the granularity of an analytics series.
type TimeRange string

const (
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeYear  TimeRange = "year"
)

var timeRanges = map[string]TimeRange{
	"week":  TimeRangeWeek,
	"month": TimeRangeMonth,
	"year":  TimeRangeYear,
}

// ParseTimeRange returns the time range for a label (case-insensitive).
func ParseTimeRange(label string) (TimeRange, bool) {
	tr, ok := timeRanges[strings.ToLower(strings.TrimSpace(label))]
	return tr, ok
}

// DataType selects which sections an analytics report carries.
type DataType string

const (
	DataTypeWasteReduction DataType = "wasteReduction"
	DataTypeCostSavings    DataType = "costSavings"
	DataTypeEnvironmental  DataType = "environmental"
	DataTypeSDGImpact      DataType = "sdgImpact"
	DataTypeAll            DataType = "all"
)

var dataTypes = map[string]DataType{
	"wastereduction": DataTypeWasteReduction,
	"costsavings":    DataTypeCostSavings,
	"environmental":  DataTypeEnvironmental,
	"sdgimpact":      DataTypeSDGImpact,
	"all":            DataTypeAll,
}

// ParseDataType returns the data type for a label (case-insensitive).
func ParseDataType(label string) (DataType, bool) {
	dt, ok := dataTypes[strings.ToLower(strings.TrimSpace(label))]
	return dt, ok
}

// Includes reports whether a report of type d carries section s.
func (d DataType) Includes(s DataType) bool {
	return d == DataTypeAll || d == s
}

// WastePoint is one period of the waste reduction series, in percent.
type WastePoint struct {
	Label     string  `json:"label"`
	Reduction float64 `json:"reduction"`
	Target    float64 `json:"target"`
}

// SavingsPoint is one period of the cost savings series.
type SavingsPoint struct {
	Label   string  `json:"label"`
	Savings float64 `json:"savings"`
}

// SeriesSummary describes a series by its spread and first-to-last trend.
type SeriesSummary struct {
	Count  int        `json:"count"`
	Total  float64    `json:"total"`
	Mean   float64    `json:"mean"`
	StdDev float64    `json:"stdDev"`
	Min    float64    `json:"min"`
	Max    float64    `json:"max"`
	Change WasteTrend `json:"change"`
}

type WasteReductionReport struct {
	Series  []WastePoint  `json:"series"`
	Summary SeriesSummary `json:"summary"`
}

type CostSavingsReport struct {
	Series           []SavingsPoint `json:"series"`
	Summary          SeriesSummary  `json:"summary"`
	CostPerKg        float64        `json:"costPerKg"`
	ProjectedSavings float64        `json:"projectedSavings"`
}

type EnvironmentalReport struct {
	CO2ReductionKg   float64 `json:"co2Reduction"`
	WaterSavedLiters float64 `json:"waterSaved"`
	LandUseReduction float64 `json:"landUseReduction"`
	EnergySavedKWh   float64 `json:"energySaved"`
}

type SDG2Report struct {
	FoodRedirectedKg float64 `json:"foodRedirected"`
	MealsProvided    int     `json:"mealsProvided"`
	Beneficiaries    int     `json:"beneficiaries"`
	Progress         int     `json:"progress"`
}

type SDG12Report struct {
	WasteReductionPct          float64 `json:"wasteReduction"`
	ResourceEfficiencyPct      float64 `json:"resourceEfficiency"`
	CircularEconomyInitiatives int     `json:"circularEconomyInitiatives"`
	Progress                   int     `json:"progress"`
}

type SDGImpactReport struct {
	SDG2  SDG2Report  `json:"sdg2"`
	SDG12 SDG12Report `json:"sdg12"`
}

// AnalyticsReport aggregates the sections selected by DataType. Unselected
// sections are nil and omitted from JSON.
type AnalyticsReport struct {
	DataType       DataType              `json:"dataType"`
	TimeRange      TimeRange             `json:"timeRange"`
	WasteReduction *WasteReductionReport `json:"wasteReduction,omitempty"`
	CostSavings    *CostSavingsReport    `json:"costSavings,omitempty"`
	Environmental  *EnvironmentalReport  `json:"environmental,omitempty"`
	SDGImpact      *SDGImpactReport      `json:"sdgImpact,omitempty"`
	GeneratedAt    time.Time             `json:"generatedAt"`
}
