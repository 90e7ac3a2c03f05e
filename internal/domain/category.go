package domain

import "strings"

// Category identifies a product family with its own demand and storage profile.
type Category string

const (
	CategoryFruits Category = "fruits"
	CategoryDairy  Category = "dairy"
	CategoryBakery Category = "bakery"
	CategoryMeat   Category = "meat"
	CategoryOther  Category = "other"
)

// DefaultHumidityPct is reported for profiles without a humidity target.
const DefaultHumidityPct = 70.0

// CategoryProfile holds the per-category baselines the predictors start from.
type CategoryProfile struct {
	Category            Category `json:"category"`
	BaseDemand          float64  `json:"base_demand"`
	BaseShelfLifeDays   float64  `json:"base_shelf_life_days"`
	OptimalTemperatureC float64  `json:"optimal_temperature_c"`
	OptimalHumidityPct  *float64 `json:"optimal_humidity_pct,omitempty"`
}

// HumidityPct returns the humidity target, falling back to DefaultHumidityPct.
func (p CategoryProfile) HumidityPct() float64 {
	if p.OptimalHumidityPct == nil {
		return DefaultHumidityPct
	}
	return *p.OptimalHumidityPct
}

var fruitsHumidityPct = 85.0

var categoryProfiles = map[Category]CategoryProfile{
	CategoryFruits: {Category: CategoryFruits, BaseDemand: 150, BaseShelfLifeDays: 7, OptimalTemperatureC: 8, OptimalHumidityPct: &fruitsHumidityPct},
	CategoryDairy:  {Category: CategoryDairy, BaseDemand: 200, BaseShelfLifeDays: 10, OptimalTemperatureC: 4},
	CategoryBakery: {Category: CategoryBakery, BaseDemand: 120, BaseShelfLifeDays: 3, OptimalTemperatureC: 20},
	CategoryMeat:   {Category: CategoryMeat, BaseDemand: 80, BaseShelfLifeDays: 5, OptimalTemperatureC: 2},
	CategoryOther:  {Category: CategoryOther, BaseDemand: 100, BaseShelfLifeDays: 14, OptimalTemperatureC: 15},
}

// defaultProfile applies to any category outside the registry.
var defaultProfile = CategoryProfile{
	BaseDemand:          100,
	BaseShelfLifeDays:   7,
	OptimalTemperatureC: 10,
}

// ProfileFor returns the registered profile for c, or the default profile
// tagged with c when c is not registered. Lookups never fail.
func ProfileFor(c Category) CategoryProfile {
	if profile, ok := categoryProfiles[c]; ok {
		return profile
	}

	profile := defaultProfile
	profile.Category = c
	return profile
}

// IsKnown reports whether c has a registered profile.
func (c Category) IsKnown() bool {
	_, ok := categoryProfiles[c]
	return ok
}

// ParseCategory normalizes a free-text category (case-insensitive, trimmed).
// Unknown values are kept as-is so they resolve to the default profile.
func ParseCategory(raw string) Category {
	return Category(strings.ToLower(strings.TrimSpace(raw)))
}

// Categories lists the registered categories in a stable order.
func Categories() []Category {
	return []Category{CategoryFruits, CategoryDairy, CategoryBakery, CategoryMeat, CategoryOther}
}
