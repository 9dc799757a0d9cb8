package service

import (
	"sort"

	"gymbro/internal/analysis"
)

// Preset is a ready-made weekly program
type Preset struct {
	Name        string
	Description string
	Items       []analysis.ProgramItem
}

func lift(day int, name string, sets int, reps string, group analysis.MuscleGroup) analysis.ProgramItem {
	return analysis.ProgramItem{ExerciseName: name, Sets: sets, Reps: reps, DayOfWeek: day, MuscleGroup: group}
}

func restDay(day int) analysis.ProgramItem {
	return analysis.ProgramItem{ExerciseName: analysis.RestDayName, Sets: 0, Reps: "0", DayOfWeek: day, MuscleGroup: analysis.Rest}
}

func legDay(day int) []analysis.ProgramItem {
	return []analysis.ProgramItem{
		lift(day, "Front Squat", 4, "6-8", analysis.Quads),
		lift(day, "Leg Extensions", 3, "10-12", analysis.Quads),
		lift(day, "RDL", 4, "6-8", analysis.Hamstrings),
		lift(day, "Leg Curls", 3, "10-12", analysis.Hamstrings),
		lift(day, "Seated Calf Raise", 4, "8-10", analysis.Calves),
		lift(day, "Standing Calf Raise", 4, "12-15", analysis.Calves),
	}
}

func upperDay(day int) []analysis.ProgramItem {
	return []analysis.ProgramItem{
		lift(day, "Incline Press", 2, "4-8", analysis.Chest),
		lift(day, "Cable Fly", 2, "4-8", analysis.Chest),
		lift(day, "T-bar row", 2, "4-8", analysis.Back),
		lift(day, "Lat Pulldown", 2, "4-8", analysis.Lats),
		lift(day, "Shoulder Press", 2, "4-8", analysis.Shoulders),
		lift(day, "Lateral Raise", 2, "4-8", analysis.Shoulders),
		lift(day, "Preacher Curl", 2, "4-8", analysis.Biceps),
		lift(day, "Tricep extension", 2, "4-8", analysis.Triceps),
	}
}

func lowerDay(day int, first analysis.ProgramItem) []analysis.ProgramItem {
	return []analysis.ProgramItem{
		first,
		lift(day, "Leg Curl", 2, "4-8", analysis.Hamstrings),
		lift(day, "Leg Extension", 2, "4-8", analysis.Quads),
		lift(day, "Leg Lunge", 2, "4-8", analysis.Quads),
		lift(day, "Calves Raise Seated", 2, "4-8", analysis.Calves),
	}
}

func pushPullLegs() Preset {
	var items []analysis.ProgramItem
	items = append(items,
		lift(1, "Incline Bench Press", 4, "6-8", analysis.Chest),
		lift(1, "Dumbbell Bench Press", 3, "10-12", analysis.Chest),
		lift(1, "Seated Dumbbell Press", 4, "6-8", analysis.Shoulders),
		lift(1, "Lateral Raises", 3, "12-15", analysis.Shoulders),
		lift(1, "(Weighted) Dips", 4, "8", analysis.Triceps),

		lift(2, "Bent Over Row", 4, "6-8", analysis.Back),
		lift(2, "One Arm Dumbbell Row", 3, "10-12", analysis.Back),
		lift(2, "(Weighted) Chin Up", 4, "8", analysis.Lats),
		lift(2, "Lat Pull Down", 3, "10-12", analysis.Lats),
		lift(2, "Wide Grip Bicep Curl", 3, "12", analysis.Biceps),
	)
	items = append(items, legDay(3)...)
	items = append(items, restDay(4))
	items = append(items,
		lift(5, "Incline Dumbbell Press", 3, "12", analysis.Chest),
		lift(5, "Machine Shoulder Press", 3, "10", analysis.Shoulders),
		lift(5, "Cable Lateral Raise", 3, "12", analysis.Shoulders),
		lift(5, "Seated Cable Row", 3, "10", analysis.Back),
		lift(5, "Wide Grip Lat Pull Down", 3, "12", analysis.Lats),
	)
	items = append(items, legDay(6)...)
	items = append(items, restDay(7))

	return Preset{
		Name:        PresetPushPullLegs,
		Description: "Push / pull / legs, rest, upper, legs, rest",
		Items:       items,
	}
}

func upperLower() Preset {
	var items []analysis.ProgramItem
	items = append(items, upperDay(1)...)
	items = append(items, lowerDay(2, lift(2, "Leg Press", 2, "4-8", analysis.Quads))...)
	items = append(items, restDay(3))
	items = append(items, upperDay(4)...)
	items = append(items, lowerDay(5, lift(5, "Deadlift", 2, "4-8", analysis.Back))...)
	items = append(items, restDay(6), restDay(7))

	return Preset{
		Name:        PresetUpperLower,
		Description: "Upper / lower twice a week",
		Items:       items,
	}
}

var presets = map[string]func() Preset{
	PresetPushPullLegs: pushPullLegs,
	PresetUpperLower:   upperLower,
}

// GetPreset returns a fresh copy of a named preset
func GetPreset(name string) (Preset, bool) {
	build, ok := presets[name]
	if !ok {
		return Preset{}, false
	}
	return build(), true
}

// PresetNames lists the available presets in name order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
