package analysis

import (
	"math"
	"strings"
)

// Sex selects the Mifflin-St Jeor constant
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex accepts "male" or "female" in any case
func ParseSex(s string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	}
	return "", invalid("sex", "must be male or female, got "+quote(s))
}

// ActivityLevel is the weekly training frequency bucket used for TDEE
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary" // little or no exercise
	ActivityLight     ActivityLevel = "light"     // 1-2 days/week
	ActivityModerate  ActivityLevel = "moderate"  // 3-5 days/week
	ActivityHeavy     ActivityLevel = "heavy"     // 6-7 days/week
)

// legacyActivityKeys maps the keys stored by older profile rows
var legacyActivityKeys = map[string]ActivityLevel{
	"level-0": ActivitySedentary,
	"level-1": ActivityLight,
	"level-2": ActivityModerate,
	"level-3": ActivityHeavy,
}

// ParseActivityLevel accepts the canonical names and the legacy level-0..level-3 keys
func ParseActivityLevel(s string) (ActivityLevel, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if level, ok := legacyActivityKeys[key]; ok {
		return level, nil
	}
	switch level := ActivityLevel(key); level {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityHeavy:
		return level, nil
	}
	return "", invalid("activity_level", "is not a known level: "+quote(s))
}

// ActivityLevels lists the levels in ascending order of activity
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityHeavy}
}

// ActivityMultipliers maps an activity level to its TDEE multiplier
type ActivityMultipliers map[ActivityLevel]float64

// DefaultActivityMultipliers returns the standard multiplier table
func DefaultActivityMultipliers() ActivityMultipliers {
	return ActivityMultipliers{
		ActivitySedentary: 1.2,
		ActivityLight:     1.375,
		ActivityModerate:  1.55,
		ActivityHeavy:     1.725,
	}
}

// Energy per gram of each macronutrient
const (
	KcalPerGramCarb    = 4.0
	KcalPerGramProtein = 4.0
	KcalPerGramFat     = 9.0
)

// BiometricProfile is the input to a budget calculation
type BiometricProfile struct {
	Sex           Sex
	WeightKg      float64
	HeightCm      float64
	AgeYears      int
	ActivityLevel ActivityLevel
}

// MacroSplit is the percentage allocation of daily energy
type MacroSplit struct {
	CarbPercent    float64 `json:"carb_percent"`
	ProteinPercent float64 `json:"protein_percent"`
	FatPercent     float64 `json:"fat_percent"`
}

// DefaultMacroSplit returns 45% carb, 30% protein, 25% fat
func DefaultMacroSplit() MacroSplit {
	return MacroSplit{CarbPercent: 45, ProteinPercent: 30, FatPercent: 25}
}

// Total returns the sum of the three percentages
func (s MacroSplit) Total() float64 {
	return s.CarbPercent + s.ProteinPercent + s.FatPercent
}

// Validate checks every percentage is in [0,100] and that they sum to 100
func (s MacroSplit) Validate() error {
	if err := s.checkRange(); err != nil {
		return err
	}
	if math.Abs(s.Total()-100) > 1e-9 {
		return invalid("macro split", "must sum to 100, got "+formatFloat(s.Total()))
	}
	return nil
}

func (s MacroSplit) checkRange() error {
	parts := []struct {
		name  string
		value float64
	}{
		{"carb_percent", s.CarbPercent},
		{"protein_percent", s.ProteinPercent},
		{"fat_percent", s.FatPercent},
	}
	for _, p := range parts {
		if math.IsNaN(p.value) || p.value < 0 || p.value > 100 {
			return invalid(p.name, "must be between 0 and 100, got "+formatFloat(p.value))
		}
	}
	return nil
}

// EnergyBudget is the computed daily energy and macro target
type EnergyBudget struct {
	BMRKcal      float64 `json:"bmr_kcal"`
	TDEEKcal     float64 `json:"tdee_kcal"`
	CarbGrams    int     `json:"carb_g"`
	ProteinGrams int     `json:"protein_g"`
	FatGrams     int     `json:"fat_g"`
}

// MacroKcal returns the energy represented by the gram targets
func (b EnergyBudget) MacroKcal() float64 {
	return float64(b.CarbGrams)*KcalPerGramCarb +
		float64(b.ProteinGrams)*KcalPerGramProtein +
		float64(b.FatGrams)*KcalPerGramFat
}

// Calculator computes energy budgets against a fixed multiplier table.
// A Calculator is immutable after construction and safe for concurrent use.
type Calculator struct {
	multipliers ActivityMultipliers
}

// NewCalculator copies the given table; a nil table means the defaults
func NewCalculator(multipliers ActivityMultipliers) *Calculator {
	if multipliers == nil {
		multipliers = DefaultActivityMultipliers()
	}
	table := make(ActivityMultipliers, len(multipliers))
	for level, m := range multipliers {
		table[level] = m
	}
	return &Calculator{multipliers: table}
}

// Multiplier returns the multiplier for a level
func (c *Calculator) Multiplier(level ActivityLevel) (float64, bool) {
	m, ok := c.multipliers[level]
	return m, ok
}

// BMR calculates Basal Metabolic Rate (Mifflin-St Jeor)
// male:   10*kg + 6.25*cm - 5*age + 5
// female: 10*kg + 6.25*cm - 5*age - 161
func BMR(p BiometricProfile) (float64, error) {
	if !positive(p.WeightKg) {
		return 0, invalid("weight_kg", "must be a positive number")
	}
	if !positive(p.HeightCm) {
		return 0, invalid("height_cm", "must be a positive number")
	}
	if p.AgeYears <= 0 {
		return 0, invalid("age_years", "must be a positive number")
	}

	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.AgeYears)
	switch p.Sex {
	case SexMale:
		return base + 5, nil
	case SexFemale:
		return base - 161, nil
	}
	return 0, invalid("sex", "must be male or female, got "+quote(string(p.Sex)))
}

// ComputeBudget calculates BMR, TDEE and macro gram targets.
// The split is not required to sum to 100; use MacroSplit.Validate for that.
func (c *Calculator) ComputeBudget(p BiometricProfile, split MacroSplit) (EnergyBudget, error) {
	bmr, err := BMR(p)
	if err != nil {
		return EnergyBudget{}, err
	}

	multiplier, ok := c.Multiplier(p.ActivityLevel)
	if !ok || !positive(multiplier) {
		return EnergyBudget{}, invalid("activity_level", "is not a known level: "+quote(string(p.ActivityLevel)))
	}

	if err := split.checkRange(); err != nil {
		return EnergyBudget{}, err
	}

	tdee := math.Round(bmr * multiplier)

	return EnergyBudget{
		BMRKcal:      bmr,
		TDEEKcal:     tdee,
		CarbGrams:    macroGrams(tdee, split.CarbPercent, KcalPerGramCarb),
		ProteinGrams: macroGrams(tdee, split.ProteinPercent, KcalPerGramProtein),
		FatGrams:     macroGrams(tdee, split.FatPercent, KcalPerGramFat),
	}, nil
}

var defaultCalculator = NewCalculator(nil)

// ComputeBudget uses the default multiplier table
func ComputeBudget(p BiometricProfile, split MacroSplit) (EnergyBudget, error) {
	return defaultCalculator.ComputeBudget(p, split)
}

func macroGrams(tdee, percent, kcalPerGram float64) int {
	return int(math.Round(tdee * percent / 100 / kcalPerGram))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
