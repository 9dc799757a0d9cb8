package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"gymbro/internal/analysis"
	"gymbro/internal/store"
)

// QueryService provides read-only queries for the TUI and the API
type QueryService struct {
	store      *store.DB
	calc       *analysis.Calculator
	aliases    []analysis.GroupAliases
	categories []analysis.StrengthCategory
}

// NewQueryService creates a new query service. Nil aliases mean the default
// alias table; a nil calculator uses the default multipliers.
func NewQueryService(store *store.DB, calc *analysis.Calculator, aliases []analysis.GroupAliases) *QueryService {
	if calc == nil {
		calc = analysis.NewCalculator(nil)
	}
	return &QueryService{
		store:      store,
		calc:       calc,
		aliases:    aliases,
		categories: analysis.DefaultStrengthCategories(),
	}
}

// DashboardData contains all data needed for the dashboard
type DashboardData struct {
	Profile   store.Profile `json:"-"`
	Day       time.Time     `json:"day"`
	DayOfWeek int           `json:"day_of_week"`

	// Nutrition for the day
	Targets   analysis.MacroTargets `json:"targets"`
	Intake    analysis.IntakeTotals `json:"intake"`
	Remaining analysis.MacroBalance `json:"remaining"`
	Foods     []analysis.FoodEntry  `json:"foods"`

	// Training
	Program      []analysis.ProgramItem      `json:"program"`
	Strength     []analysis.CategoryStrength `json:"strength"`
	WeightChange analysis.WeightChange       `json:"weight_change"`
	LastWorkout  time.Time                   `json:"last_workout"`
	WorkoutCount int                         `json:"workout_count"` // up to and including Day
}

// GetProfile returns a single profile
func (q *QueryService) GetProfile(userID uuid.UUID) (*store.Profile, error) {
	return q.store.GetProfile(userID)
}

// ListProfiles returns every profile
func (q *QueryService) ListProfiles() ([]store.Profile, error) {
	return q.store.ListProfiles()
}

// GetDashboardData fetches all data needed for the dashboard of one day
func (q *QueryService) GetDashboardData(userID uuid.UUID, day time.Time) (*DashboardData, error) {
	profile, err := q.store.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	data := &DashboardData{
		Profile:   *profile,
		Day:       day,
		DayOfWeek: analysis.DayOfWeekIndex(day),
	}

	if data.Targets, err = q.targets(profile); err != nil {
		return nil, fmt.Errorf("computing targets: %w", err)
	}

	foodRows, err := q.store.ListFoodLogOn(userID, day)
	if err != nil {
		return nil, err
	}
	data.Foods = toFoodEntries(foodRows)
	data.Intake = analysis.SumIntake(data.Foods)
	data.Remaining = analysis.Remaining(data.Targets, data.Intake)

	programRows, err := q.store.ListProgramItems(userID)
	if err != nil {
		return nil, err
	}
	program := toProgramItems(programRows)
	data.Program = analysis.ProgramForDay(program, data.DayOfWeek)

	// Strength and weight cover every workout up to the viewed day
	progressRows, err := q.store.ListWorkoutProgressUntil(userID, day)
	if err != nil {
		return nil, err
	}
	entries := toWorkoutEntries(progressRows)
	data.WorkoutCount = len(entries)
	data.LastWorkout = analysis.LastWorkoutDate(entries)

	resolver := analysis.NewResolver(analysis.LookupFromProgram(program), q.aliases)
	data.Strength, err = analysis.ComputeStrengthMetrics(entries, q.categories, resolver)
	if err != nil {
		return nil, err
	}

	change, err := analysis.ComputeWeightChange(entries)
	if err != nil {
		return nil, err
	}
	// No body weight logged up to the day: show the profile weight as both ends
	data.WeightChange = analysis.ApplyReferenceWeight(change, profile.WeightKg)

	return data, nil
}

// targets returns the stored targets, computing them when the profile
// predates stored targets
func (q *QueryService) targets(p *store.Profile) (analysis.MacroTargets, error) {
	if t, ok := storedTargets(p); ok {
		return t, nil
	}
	bio, err := biometrics(p)
	if err != nil {
		return analysis.MacroTargets{}, err
	}
	budget, err := q.calc.ComputeBudget(bio, profileSplit(p))
	if err != nil {
		return analysis.MacroTargets{}, err
	}
	log.WithField("user", p.ID).Debug("computed targets for profile without stored targets")
	return analysis.TargetsFromBudget(budget), nil
}

// GetWeeklyProgress returns all logged workouts grouped by week, newest first
func (q *QueryService) GetWeeklyProgress(userID uuid.UUID) ([]analysis.WeeklyBucket, error) {
	if _, err := q.store.GetProfile(userID); err != nil {
		return nil, err
	}
	rows, err := q.store.ListWorkoutProgress(userID)
	if err != nil {
		return nil, err
	}
	return analysis.GroupByWeek(toWorkoutEntries(rows))
}

// ProgramData is a user's program grouped by weekday (index 0 = Monday)
type ProgramData struct {
	Days [7][]analysis.ProgramItem `json:"days"`
}

// GetProgram returns a user's whole program grouped by day
func (q *QueryService) GetProgram(userID uuid.UUID) (*ProgramData, error) {
	if _, err := q.store.GetProfile(userID); err != nil {
		return nil, err
	}
	rows, err := q.store.ListProgramItems(userID)
	if err != nil {
		return nil, err
	}
	return &ProgramData{Days: analysis.ProgramByDay(toProgramItems(rows))}, nil
}

// FoodHistory is a user's food log plus the distinct foods for quick re-entry
type FoodHistory struct {
	Entries []analysis.FoodEntry `json:"entries"` // newest first
	Recent  []analysis.FoodEntry `json:"recent"`  // one per food name
}

// GetFoodHistory returns a user's food log. A non-empty query keeps only
// foods whose name contains it, ignoring case.
func (q *QueryService) GetFoodHistory(userID uuid.UUID, query string) (*FoodHistory, error) {
	if _, err := q.store.GetProfile(userID); err != nil {
		return nil, err
	}
	rows, err := q.store.ListFoodLog(userID)
	if err != nil {
		return nil, err
	}
	entries := analysis.FilterFoods(toFoodEntries(rows), query)

	recent := analysis.UniqueFoods(entries)
	if len(recent) > RecentFoodsLimit {
		recent = recent[:RecentFoodsLimit]
	}
	return &FoodHistory{Entries: entries, Recent: recent}, nil
}
