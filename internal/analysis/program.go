package analysis

import (
	"sort"
	"strings"
)

// RestDayName marks a day with no training in a program
const RestDayName = "--- REST DAY ---"

// ProgramItem is one planned exercise on a weekday
type ProgramItem struct {
	ID           int64       `json:"id,omitempty"`
	ExerciseName string      `json:"exercise_name"`
	Sets         int         `json:"sets"`
	Reps         string      `json:"reps"`
	WeightKg     float64     `json:"weight_kg"`
	DayOfWeek    int         `json:"day_of_week"` // 1=Monday .. 7=Sunday
	MuscleGroup  MuscleGroup `json:"muscle_group"`
}

// IsRest reports whether the item is a rest-day marker
func (p ProgramItem) IsRest() bool {
	return p.MuscleGroup == Rest || p.ExerciseName == RestDayName
}

// Validate checks the day, the group and the numbers
func (p ProgramItem) Validate() error {
	if strings.TrimSpace(p.ExerciseName) == "" {
		return invalid("exercise_name", "is required")
	}
	if p.DayOfWeek < 1 || p.DayOfWeek > 7 {
		return invalid("day_of_week", "must be between 1 and 7")
	}
	if _, err := ParseMuscleGroup(string(p.MuscleGroup)); err != nil {
		return err
	}
	if p.Sets < 0 {
		return invalid("sets", "must not be negative")
	}
	if !nonNegative(p.WeightKg) {
		return invalid("weight_kg", "must be zero or a positive number")
	}
	return nil
}

// ProgramForDay returns the items planned for a weekday, in ID order
func ProgramForDay(items []ProgramItem, day int) []ProgramItem {
	var out []ProgramItem
	for _, it := range items {
		if it.DayOfWeek == day {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ProgramByDay groups items into the seven weekdays (index 0 = Monday)
func ProgramByDay(items []ProgramItem) [7][]ProgramItem {
	var week [7][]ProgramItem
	for day := 1; day <= 7; day++ {
		week[day-1] = ProgramForDay(items, day)
	}
	return week
}

// LookupFromProgram builds the exact-match lookup table from program items.
// Rest markers are skipped.
func LookupFromProgram(items []ProgramItem) LookupTable {
	table := make(LookupTable, len(items))
	for _, it := range items {
		if it.IsRest() {
			continue
		}
		table.Add(it.ExerciseName, it.MuscleGroup)
	}
	return table
}
