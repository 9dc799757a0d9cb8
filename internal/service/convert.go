package service

import (
	"gymbro/internal/analysis"
	"gymbro/internal/store"
)

func toWorkoutEntries(rows []store.WorkoutProgress) []analysis.WorkoutEntry {
	entries := make([]analysis.WorkoutEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, analysis.WorkoutEntry{
			ID:           r.ID,
			ExerciseName: r.ExerciseName,
			WeightKg:     r.WeightKg,
			Sets:         r.Sets,
			Reps:         r.Reps,
			BodyWeightKg: r.BodyWeight,
			WorkoutDate:  r.WorkoutDate,
		})
	}
	return entries
}

func toFoodEntries(rows []store.FoodLog) []analysis.FoodEntry {
	foods := make([]analysis.FoodEntry, 0, len(rows))
	for _, r := range rows {
		foods = append(foods, analysis.FoodEntry{
			ID:       r.ID,
			Name:     r.FoodName,
			Calories: r.Calories,
			ProteinG: r.Protein,
			CarbsG:   r.Carbs,
			FatG:     r.Fat,
			EatenOn:  r.EatenOn,
		})
	}
	return foods
}

func toProgramItems(rows []store.ProgramItem) []analysis.ProgramItem {
	items := make([]analysis.ProgramItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, toProgramItem(r))
	}
	return items
}

func toProgramItem(r store.ProgramItem) analysis.ProgramItem {
	return analysis.ProgramItem{
		ID:           r.ID,
		ExerciseName: r.ExerciseName,
		Sets:         r.Sets,
		Reps:         r.Reps,
		WeightKg:     r.WeightKg,
		DayOfWeek:    r.DayOfWeek,
		MuscleGroup:  analysis.MuscleGroup(r.MuscleGroup),
	}
}

func fromProgramItem(item analysis.ProgramItem) store.ProgramItem {
	return store.ProgramItem{
		ID:           item.ID,
		ExerciseName: item.ExerciseName,
		Sets:         item.Sets,
		Reps:         item.Reps,
		WeightKg:     item.WeightKg,
		DayOfWeek:    item.DayOfWeek,
		MuscleGroup:  string(item.MuscleGroup),
	}
}

// biometrics reads the calculator input back out of a stored profile
func biometrics(p *store.Profile) (analysis.BiometricProfile, error) {
	sex, err := analysis.ParseSex(p.Gender)
	if err != nil {
		return analysis.BiometricProfile{}, err
	}
	level, err := analysis.ParseActivityLevel(p.ActivityLevel)
	if err != nil {
		return analysis.BiometricProfile{}, err
	}
	return analysis.BiometricProfile{
		Sex:           sex,
		WeightKg:      p.WeightKg,
		HeightCm:      p.HeightCm,
		AgeYears:      p.Age,
		ActivityLevel: level,
	}, nil
}

func profileSplit(p *store.Profile) analysis.MacroSplit {
	return analysis.MacroSplit{
		CarbPercent:    p.CarbPct,
		ProteinPercent: p.ProteinPct,
		FatPercent:     p.FatPct,
	}
}

// storedTargets returns the targets saved on the profile, if any
func storedTargets(p *store.Profile) (analysis.MacroTargets, bool) {
	if p.TDEE == nil || p.CarbG == nil || p.ProteinG == nil || p.FatG == nil {
		return analysis.MacroTargets{}, false
	}
	return analysis.MacroTargets{
		Calories: *p.TDEE,
		ProteinG: float64(*p.ProteinG),
		CarbsG:   float64(*p.CarbG),
		FatG:     float64(*p.FatG),
	}, true
}

func setBudget(p *store.Profile, b analysis.EnergyBudget) {
	tdee := b.TDEEKcal
	carb, protein, fat := b.CarbGrams, b.ProteinGrams, b.FatGrams
	p.TDEE = &tdee
	p.CarbG = &carb
	p.ProteinG = &protein
	p.FatG = &fat
}
