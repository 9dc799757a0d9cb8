package tui

import (
	"fmt"

	"gymbro/internal/config"
)

const poundsPerKg = 2.20462

// Units provides unit conversion and formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// WeightValue converts kilograms to the user's preferred unit
func (u Units) WeightValue(kg float64) float64 {
	if u.IsPounds() {
		return kg * poundsPerKg
	}
	return kg
}

// FormatWeight formats a weight in kilograms to the user's preferred unit
func (u Units) FormatWeight(kg float64) string {
	return fmt.Sprintf("%.1f %s", u.WeightValue(kg), u.WeightLabel())
}

// FormatLoad formats a lifted load; bodyweight work shows as "BW"
func (u Units) FormatLoad(kg float64) string {
	if kg <= 0 {
		return "BW"
	}
	v := u.WeightValue(kg)
	if v == float64(int(v)) {
		return fmt.Sprintf("%d%s", int(v), u.WeightLabel())
	}
	return fmt.Sprintf("%.1f%s", v, u.WeightLabel())
}

// WeightLabel returns the short unit label ("kg" or "lb")
func (u Units) WeightLabel() string {
	if u.IsPounds() {
		return "lb"
	}
	return "kg"
}

// IsPounds returns true if the weight unit is pounds
func (u Units) IsPounds() bool {
	return u.cfg.WeightUnit == "lb"
}

// HistoryWeeks is how many weeks the progress screen shows; 0 means all
func (u Units) HistoryWeeks() int {
	return u.cfg.Weeks
}
