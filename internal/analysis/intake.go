package analysis

import (
	"sort"
	"strings"
	"time"
)

// FoodEntry is one logged food
type FoodEntry struct {
	ID       int64     `json:"id,omitempty"`
	Name     string    `json:"food_name"`
	Calories float64   `json:"calories"`
	ProteinG float64   `json:"protein"`
	CarbsG   float64   `json:"carbs"`
	FatG     float64   `json:"fat"`
	EatenOn  time.Time `json:"eaten_on"`
}

// Validate rejects unnamed foods and negative amounts
func (f FoodEntry) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("food_name", "is required")
	}
	for _, v := range []struct {
		field string
		value float64
	}{
		{"calories", f.Calories},
		{"protein", f.ProteinG},
		{"carbs", f.CarbsG},
		{"fat", f.FatG},
	} {
		if !nonNegative(v.value) {
			return invalid(v.field, "must be zero or a positive number")
		}
	}
	if f.EatenOn.IsZero() {
		return invalid("eaten_on", "is required")
	}
	return nil
}

// IntakeTotals is what has been eaten
type IntakeTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
	Count    int     `json:"count"`
}

// SumIntake adds up all foods
func SumIntake(foods []FoodEntry) IntakeTotals {
	var t IntakeTotals
	for _, f := range foods {
		t.Calories += f.Calories
		t.ProteinG += f.ProteinG
		t.CarbsG += f.CarbsG
		t.FatG += f.FatG
		t.Count++
	}
	return t
}

// FilterFoods keeps the foods whose name contains query, ignoring case.
// An empty query keeps everything.
func FilterFoods(foods []FoodEntry, query string) []FoodEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return foods
	}
	var out []FoodEntry
	for _, f := range foods {
		if strings.Contains(strings.ToLower(f.Name), query) {
			out = append(out, f)
		}
	}
	return out
}

// MacroTargets are the stored daily targets of a profile
type MacroTargets struct {
	Calories float64 `json:"tdee"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carb_g"`
	FatG     float64 `json:"fat_g"`
}

// TargetsFromBudget converts a computed budget into stored targets
func TargetsFromBudget(b EnergyBudget) MacroTargets {
	return MacroTargets{
		Calories: b.TDEEKcal,
		ProteinG: float64(b.ProteinGrams),
		CarbsG:   float64(b.CarbGrams),
		FatG:     float64(b.FatGrams),
	}
}

// MacroBalance is targets minus intake; negative values mean over target
type MacroBalance struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
}

// Remaining returns how much of each target is left
func Remaining(targets MacroTargets, eaten IntakeTotals) MacroBalance {
	return MacroBalance{
		Calories: targets.Calories - eaten.Calories,
		ProteinG: targets.ProteinG - eaten.ProteinG,
		CarbsG:   targets.CarbsG - eaten.CarbsG,
		FatG:     targets.FatG - eaten.FatG,
	}
}

// UniqueFoods keeps the most recent entry per food name (case-insensitive),
// newest first
func UniqueFoods(foods []FoodEntry) []FoodEntry {
	sorted := make([]FoodEntry, len(foods))
	copy(sorted, foods)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].EatenOn.Equal(sorted[j].EatenOn) {
			return sorted[i].EatenOn.After(sorted[j].EatenOn)
		}
		return sorted[i].ID > sorted[j].ID
	})

	seen := make(map[string]bool)
	var out []FoodEntry
	for _, f := range sorted {
		key := strings.ToLower(strings.TrimSpace(f.Name))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
