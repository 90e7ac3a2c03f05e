package domain

import "strings"

// Location identifies where demand is served.
type Location string

const (
	LocationStore1    Location = "store1"
	LocationStore2    Location = "store2"
	LocationStore3    Location = "store3"
	LocationWarehouse Location = "warehouse"
)

// DefaultLocationMultiplier applies to unknown locations.
const DefaultLocationMultiplier = 1.0

var locationMultipliers = map[Location]float64{
	LocationStore1:    1.0,
	LocationStore2:    1.2,
	LocationStore3:    0.9,
	LocationWarehouse: 1.5,
}

// Multiplier returns the demand multiplier for l.
func (l Location) Multiplier() float64 {
	if m, ok := locationMultipliers[l]; ok {
		return m
	}
	return DefaultLocationMultiplier
}

// ParseLocation normalizes a free-text location id.
func ParseLocation(raw string) Location {
	return Location(strings.ToLower(strings.TrimSpace(raw)))
}
