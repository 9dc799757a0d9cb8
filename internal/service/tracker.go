package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"gymbro/internal/analysis"
	"gymbro/internal/metrics"
	"gymbro/internal/store"
)

// ErrUnknownPreset is returned for a preset name that doesn't exist
var ErrUnknownPreset = errors.New("unknown program preset")

// TrackerService handles every write: profiles, progress, food and program
type TrackerService struct {
	store        *store.DB
	calc         *analysis.Calculator
	defaultSplit analysis.MacroSplit
	metrics      *metrics.Manager // optional
	now          func() time.Time
}

// NewTrackerService creates a tracker. A nil calculator uses the default
// multiplier table; a nil metrics manager disables counting.
func NewTrackerService(store *store.DB, calc *analysis.Calculator, defaultSplit analysis.MacroSplit, m *metrics.Manager) *TrackerService {
	if calc == nil {
		calc = analysis.NewCalculator(nil)
	}
	return &TrackerService{
		store:        store,
		calc:         calc,
		defaultSplit: defaultSplit,
		metrics:      m,
		now:          time.Now,
	}
}

// ProfileInput is the editable part of a profile
type ProfileInput struct {
	FullName      string               `json:"full_name"`
	Sex           string               `json:"gender"`
	Age           int                  `json:"age"`
	HeightCm      float64              `json:"user_height"`
	WeightKg      float64              `json:"user_weight"`
	ActivityLevel string               `json:"activity_level"`
	Split         *analysis.MacroSplit `json:"split,omitempty"` // nil = configured default
}

// Biometrics validates the input and converts it for the calculator
func (in ProfileInput) Biometrics() (analysis.BiometricProfile, error) {
	sex, err := analysis.ParseSex(in.Sex)
	if err != nil {
		return analysis.BiometricProfile{}, err
	}
	level, err := analysis.ParseActivityLevel(in.ActivityLevel)
	if err != nil {
		return analysis.BiometricProfile{}, err
	}
	return analysis.BiometricProfile{
		Sex:           sex,
		WeightKg:      in.WeightKg,
		HeightCm:      in.HeightCm,
		AgeYears:      in.Age,
		ActivityLevel: level,
	}, nil
}

// apply computes the budget for in and copies everything onto p
func (t *TrackerService) apply(p *store.Profile, in ProfileInput) (analysis.EnergyBudget, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return analysis.EnergyBudget{}, &analysis.InputError{Field: "full_name", Reason: "is required"}
	}
	bio, err := in.Biometrics()
	if err != nil {
		return analysis.EnergyBudget{}, err
	}
	split := t.defaultSplit
	if in.Split != nil {
		split = *in.Split
	}
	if err := split.Validate(); err != nil {
		return analysis.EnergyBudget{}, err
	}

	budget, err := t.calc.ComputeBudget(bio, split)
	if err != nil {
		return analysis.EnergyBudget{}, err
	}

	p.FullName = strings.TrimSpace(in.FullName)
	p.Gender = string(bio.Sex)
	p.Age = bio.AgeYears
	p.HeightCm = bio.HeightCm
	p.WeightKg = bio.WeightKg
	p.ActivityLevel = string(bio.ActivityLevel)
	p.CarbPct = split.CarbPercent
	p.ProteinPct = split.ProteinPercent
	p.FatPct = split.FatPercent
	setBudget(p, budget)

	return budget, nil
}

// Register creates a profile and stores its computed targets
func (t *TrackerService) Register(in ProfileInput) (*store.Profile, error) {
	p := &store.Profile{}
	budget, err := t.apply(p, in)
	if err != nil {
		return nil, err
	}
	if err := t.store.CreateProfile(p); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	t.countBudget()

	log.WithFields(log.Fields{
		"user": p.ID,
		"tdee": budget.TDEEKcal,
	}).Info("profile registered")
	return p, nil
}

// UpdateProfile overwrites a profile and recomputes its targets
func (t *TrackerService) UpdateProfile(userID uuid.UUID, in ProfileInput) (*store.Profile, error) {
	p, err := t.store.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	budget, err := t.apply(p, in)
	if err != nil {
		return nil, err
	}
	if err := t.store.UpdateProfile(p); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	t.countBudget()

	log.WithFields(log.Fields{
		"user": userID,
		"tdee": budget.TDEEKcal,
	}).Info("profile updated")
	return p, nil
}

// ProgressInput is one logged exercise result
type ProgressInput struct {
	ProgramItemID int64     `json:"program_item_id,omitempty"` // 0 = not from the program
	ExerciseName  string    `json:"exercise_name"`
	WeightKg      float64   `json:"weight_kg"`
	Sets          int       `json:"sets"`
	Reps          string    `json:"reps"`
	BodyWeightKg  float64   `json:"body_weight"` // 0 = not recorded
	Date          time.Time `json:"workout_date"` // zero = today
}

// LogProgress stores a workout result. When the result comes from a program
// item, that item's load is updated; when a body weight is given, the
// profile weight is updated too.
func (t *TrackerService) LogProgress(userID uuid.UUID, in ProgressInput) (*store.WorkoutProgress, error) {
	if _, err := t.store.GetProfile(userID); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = t.now()
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	entry := analysis.WorkoutEntry{
		ExerciseName: strings.TrimSpace(in.ExerciseName),
		WeightKg:     in.WeightKg,
		Sets:         in.Sets,
		Reps:         in.Reps,
		BodyWeightKg: in.BodyWeightKg,
		WorkoutDate:  date,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	var item *store.ProgramItem
	if in.ProgramItemID != 0 {
		var err error
		item, err = t.store.GetProgramItem(in.ProgramItemID)
		if err != nil {
			return nil, err
		}
		if item.UserID != userID {
			return nil, store.ErrProgramItemNotFound
		}
	}

	row := &store.WorkoutProgress{
		UserID:        userID,
		ExerciseName:  entry.ExerciseName,
		WeightKg:      entry.WeightKg,
		Sets:          entry.Sets,
		Reps:          entry.Reps,
		BodyWeight:    entry.BodyWeightKg,
		WorkoutDate:   date,
		WeekStartDate: analysis.WeekStartOf(date),
		DayOfWeek:     analysis.DayOfWeekIndex(date),
	}
	if err := t.store.AddWorkoutProgress(row); err != nil {
		return nil, fmt.Errorf("logging progress: %w", err)
	}

	if item != nil {
		if err := t.store.UpdateProgramItemLoad(item.ID, entry.WeightKg, entry.Sets, entry.Reps); err != nil {
			return nil, fmt.Errorf("updating program item %d: %w", item.ID, err)
		}
	}
	if entry.BodyWeightKg > 0 {
		if err := t.store.UpdateProfileWeight(userID, entry.BodyWeightKg); err != nil {
			return nil, fmt.Errorf("updating body weight: %w", err)
		}
	}

	if t.metrics != nil {
		t.metrics.CounterProgressLogged.Inc()
	}
	log.WithFields(log.Fields{
		"user":     userID,
		"exercise": row.ExerciseName,
		"date":     analysis.FormatDate(date),
	}).Debug("progress logged")
	return row, nil
}

// AddFood stores an eaten food. A zero EatenOn means today.
func (t *TrackerService) AddFood(userID uuid.UUID, food analysis.FoodEntry) (*store.FoodLog, error) {
	if _, err := t.store.GetProfile(userID); err != nil {
		return nil, err
	}
	if food.EatenOn.IsZero() {
		food.EatenOn = t.now()
	}
	food.EatenOn = time.Date(food.EatenOn.Year(), food.EatenOn.Month(), food.EatenOn.Day(), 0, 0, 0, 0, time.UTC)
	food.Name = strings.TrimSpace(food.Name)
	if err := food.Validate(); err != nil {
		return nil, err
	}

	row := &store.FoodLog{
		UserID:   userID,
		FoodName: food.Name,
		Calories: food.Calories,
		Protein:  food.ProteinG,
		Carbs:    food.CarbsG,
		Fat:      food.FatG,
		EatenOn:  food.EatenOn,
	}
	if err := t.store.AddFood(row); err != nil {
		return nil, fmt.Errorf("logging food: %w", err)
	}

	if t.metrics != nil {
		t.metrics.CounterFoodLogged.Inc()
	}
	log.WithFields(log.Fields{"user": userID, "food": row.FoodName}).Debug("food logged")
	return row, nil
}

// AddProgramItem adds an exercise to a user's program
func (t *TrackerService) AddProgramItem(userID uuid.UUID, item analysis.ProgramItem) (analysis.ProgramItem, error) {
	if _, err := t.store.GetProfile(userID); err != nil {
		return analysis.ProgramItem{}, err
	}
	item, err := normalizeProgramItem(item)
	if err != nil {
		return analysis.ProgramItem{}, err
	}

	row := fromProgramItem(item)
	row.UserID = userID
	if err := t.store.AddProgramItem(&row); err != nil {
		return analysis.ProgramItem{}, fmt.Errorf("adding program item: %w", err)
	}
	return toProgramItem(row), nil
}

// UpdateProgramItem overwrites one of a user's program items
func (t *TrackerService) UpdateProgramItem(userID uuid.UUID, item analysis.ProgramItem) error {
	item, err := normalizeProgramItem(item)
	if err != nil {
		return err
	}
	row := fromProgramItem(item)
	row.UserID = userID
	return t.store.UpdateProgramItem(&row)
}

// DeleteProgramItem removes one of a user's program items
func (t *TrackerService) DeleteProgramItem(userID uuid.UUID, id int64) error {
	return t.store.DeleteProgramItem(userID, id)
}

// ApplyPreset replaces a user's whole program with a preset
func (t *TrackerService) ApplyPreset(userID uuid.UUID, name string) ([]analysis.ProgramItem, error) {
	preset, ok := GetPreset(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	if _, err := t.store.GetProfile(userID); err != nil {
		return nil, err
	}

	rows := make([]store.ProgramItem, 0, len(preset.Items))
	for _, item := range preset.Items {
		rows = append(rows, fromProgramItem(item))
	}
	if err := t.store.ReplaceProgram(userID, rows); err != nil {
		return nil, fmt.Errorf("applying preset %s: %w", name, err)
	}

	saved, err := t.store.ListProgramItems(userID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"user": userID, "preset": name, "items": len(saved)}).Info("preset applied")
	return toProgramItems(saved), nil
}

// normalizeProgramItem canonicalises the group and validates the item.
// Rest markers always get the rest group.
func normalizeProgramItem(item analysis.ProgramItem) (analysis.ProgramItem, error) {
	item.ExerciseName = strings.TrimSpace(item.ExerciseName)
	if item.ExerciseName == analysis.RestDayName {
		item.MuscleGroup = analysis.Rest
	}
	group, err := analysis.ParseMuscleGroup(string(item.MuscleGroup))
	if err != nil {
		return item, err
	}
	item.MuscleGroup = group
	if err := item.Validate(); err != nil {
		return item, err
	}
	return item, nil
}

func (t *TrackerService) countBudget() {
	if t.metrics != nil {
		t.metrics.CounterBudgetsComputed.Inc()
	}
}
