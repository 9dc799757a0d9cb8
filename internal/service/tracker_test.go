package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymbro/internal/analysis"
	"gymbro/internal/store"
)

func TestRegisterStoresTargets(t *testing.T) {
	tracker, query, m := newTestServices(t)

	p, err := tracker.Register(testProfileInput())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, p.ID)

	got, err := query.GetProfile(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TDEE)
	assert.Equal(t, 2697.0, *got.TDEE)
	assert.Equal(t, 303, *got.CarbG)
	assert.Equal(t, 202, *got.ProteinG)
	assert.Equal(t, 75, *got.FatG)
	assert.Equal(t, 45.0, got.CarbPct)
	assert.Equal(t, "moderate", got.ActivityLevel)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterBudgetsComputed))
}

func TestRegisterNormalizesLegacyActivityKey(t *testing.T) {
	tracker, query, _ := newTestServices(t)

	in := testProfileInput()
	in.ActivityLevel = "level-3"
	p, err := tracker.Register(in)
	require.NoError(t, err)

	got, err := query.GetProfile(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "heavy", got.ActivityLevel)
	assert.Equal(t, 3002.0, *got.TDEE)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProfileInput)
		field  string
	}{
		{"missing name", func(in *ProfileInput) { in.FullName = " " }, "full_name"},
		{"unknown sex", func(in *ProfileInput) { in.Sex = "x" }, "sex"},
		{"unknown activity", func(in *ProfileInput) { in.ActivityLevel = "couch" }, "activity_level"},
		{"zero weight", func(in *ProfileInput) { in.WeightKg = 0 }, "weight_kg"},
		{"split over 100", func(in *ProfileInput) {
			in.Split = &analysis.MacroSplit{CarbPercent: 50, ProteinPercent: 30, FatPercent: 25}
		}, "macro split"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _, _ := newTestServices(t)

			in := testProfileInput()
			tt.mutate(&in)
			_, err := tracker.Register(in)
			require.ErrorIs(t, err, analysis.ErrInvalidInput)

			var inputErr *analysis.InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestUpdateProfileRecomputesTargets(t *testing.T) {
	tracker, query, _ := newTestServices(t)
	userID := registerTestProfile(t, tracker)

	in := testProfileInput()
	in.ActivityLevel = "sedentary"
	in.Split = &analysis.MacroSplit{CarbPercent: 40, ProteinPercent: 35, FatPercent: 25}
	_, err := tracker.UpdateProfile(userID, in)
	require.NoError(t, err)

	got, err := query.GetProfile(userID)
	require.NoError(t, err)
	assert.Equal(t, 2088.0, *got.TDEE)
	assert.Equal(t, 209, *got.CarbG)    // round(2088 * 0.40 / 4) = round(208.8)
	assert.Equal(t, 183, *got.ProteinG) // round(2088 * 0.35 / 4) = round(182.7)
	assert.Equal(t, 58, *got.FatG)      // round(2088 * 0.25 / 9) = round(58.0)
	assert.Equal(t, 40.0, got.CarbPct)
}

func TestUpdateProfileNotFound(t *testing.T) {
	tracker, _, _ := newTestServices(t)

	_, err := tracker.UpdateProfile(uuid.New(), testProfileInput())
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestLogProgressUpdatesProgramAndWeight(t *testing.T) {
	tracker, query, m := newTestServices(t)
	userID := registerTestProfile(t, tracker)

	item, err := tracker.AddProgramItem(userID, analysis.ProgramItem{
		ExerciseName: "Bench Press", Sets: 3, Reps: "8", WeightKg: 60, DayOfWeek: 3, MuscleGroup: "Chest",
	})
	require.NoError(t, err)
	assert.Equal(t, analysis.Chest, item.MuscleGroup)

	row, err := tracker.LogProgress(userID, ProgressInput{
		ProgramItemID: item.ID,
		ExerciseName:  "Bench Press",
		WeightKg:      65,
		Sets:          4,
		Reps:          "6",
		BodyWeightKg:  74.2,
		Date:          date("2024-01-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, row.DayOfWeek)
	assert.Equal(t, "2024-01-08", analysis.FormatDate(row.WeekStartDate))

	program, err := query.GetProgram(userID)
	require.NoError(t, err)
	require.Len(t, program.Days[2], 1)
	assert.Equal(t, 65.0, program.Days[2][0].WeightKg)
	assert.Equal(t, 4, program.Days[2][0].Sets)
	assert.Equal(t, "6", program.Days[2][0].Reps)

	profile, err := query.GetProfile(userID)
	require.NoError(t, err)
	assert.Equal(t, 74.2, profile.WeightKg)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterProgressLogged))
}

func TestLogProgressSundayIsDaySeven(t *testing.T) {
	tracker, _, _ := newTestServices(t)
	userID := registerTestProfile(t, tracker)

	row, err := tracker.LogProgress(userID, ProgressInput{
		ExerciseName: "Squat", WeightKg: 100, Sets: 5, Reps: "5", Date: date("2024-01-14"),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, row.DayOfWeek)
	assert.Equal(t, "2024-01-08", analysis.FormatDate(row.WeekStartDate))
}

func TestLogProgressWithoutBodyWeightKeepsProfileWeight(t *testing.T) {
	tracker, query, _ := newTestServices(t)
	userID := registerTestProfile(t, tracker)

	_, err := tracker.LogProgress(userID, ProgressInput{
		ExerciseName: "Squat", WeightKg: 100, Sets: 5, Reps: "5", Date: date("2024-01-10"),
	})
	require.NoError(t, err)

	profile, err := query.GetProfile(userID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, profile.WeightKg)
}

func TestLogProgressRejectsForeignProgramItem(t *testing.T) {
	tracker, _, _ := newTestServices(t)
	owner := registerTestProfile(t, tracker)
	other := registerTestProfile(t, tracker)

	item, err := tracker.AddProgramItem(owner, analysis.ProgramItem{
		ExerciseName: "Row", Sets: 3, Reps: "10", DayOfWeek: 2, MuscleGroup: analysis.Back,
	})
	require.NoError(t, err)

	_, err = tracker.LogProgress(other, ProgressInput{
		ProgramItemID: item.ID, ExerciseName: "Row", WeightKg: 50, Sets: 3, Date: date("2024-01-09"),
	})
	assert.ErrorIs(t, err, store.ErrProgramItemNotFound)
}

func TestLogProgressValidation(t *testing.T) {
	tracker, _, _ := newTestServices(t)
	userID := registerTestProfile(t, tracker)

	_, err := tracker.LogProgress(userID, ProgressInput{ExerciseName: "", Sets: 3, Date: date("2024-01-09")})
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)

	_, err = tracker.LogProgress(userID, ProgressInput{ExerciseName: "Row", WeightKg: -5, Date: date("2024-01-09")})
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)

	_, err = tracker.LogProgress(uuid.New(), ProgressInput{ExerciseName: "Row", Date: date("2024-01-09")})
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestAddFood(t *testing.T) {
	tracker, _, m := newTestServices(t)
	userID := registerTestProfile(t, tracker)

	row, err := tracker.AddFood(userID, analysis.FoodEntry{
		Name: "  Oats ", Calories: 380, ProteinG: 13, CarbsG: 67, FatG: 7, EatenOn: date("2024-01-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Oats", row.FoodName)
	assert.NotZero(t, row.ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterFoodLogged))

	_, err = tracker.AddFood(userID, analysis.FoodEntry{Name: "Bad", Calories: -1, EatenOn: date("2024-01-10")})
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)
}

func TestProgramItemEditing(t *testing.T) {
	tracker, query, _ := newTestServices(t)
	userID := registerTestProfile(t, tracker)

	item, err := tracker.AddProgramItem(userID, analysis.ProgramItem{
		ExerciseName: "Curl", Sets: 3, Reps: "12", WeightKg: 12, DayOfWeek: 1, MuscleGroup: analysis.Biceps,
	})
	require.NoError(t, err)

	item.DayOfWeek = 5
	item.WeightKg = 14
	require.NoError(t, tracker.UpdateProgramItem(userID, item))

	program, err := query.GetProgram(userID)
	require.NoError(t, err)
	assert.Empty(t, program.Days[0])
	require.Len(t, program.Days[4], 1)
	assert.Equal(t, 14.0, program.Days[4][0].WeightKg)

	item.DayOfWeek = 0
	assert.ErrorIs(t, tracker.UpdateProgramItem(userID, item), analysis.ErrInvalidInput)

	require.NoError(t, tracker.DeleteProgramItem(userID, item.ID))
	assert.ErrorIs(t, tracker.DeleteProgramItem(userID, item.ID), store.ErrProgramItemNotFound)
}

func TestAddProgramItemRestMarker(t *testing.T) {
	tracker, _, _ := newTestServices(t)
	userID := registerTestProfile(t, tracker)

	item, err := tracker.AddProgramItem(userID, analysis.ProgramItem{
		ExerciseName: analysis.RestDayName, Reps: "0", DayOfWeek: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, analysis.Rest, item.MuscleGroup)
	assert.True(t, item.IsRest())
}

func TestApplyPreset(t *testing.T) {
	tracker, query, _ := newTestServices(t)
	userID := registerTestProfile(t, tracker)

	_, err := tracker.AddProgramItem(userID, analysis.ProgramItem{
		ExerciseName: "Old Lift", Sets: 1, DayOfWeek: 2, MuscleGroup: analysis.Back,
	})
	require.NoError(t, err)

	items, err := tracker.ApplyPreset(userID, PresetPushPullLegs)
	require.NoError(t, err)
	assert.Len(t, items, 29)

	program, err := query.GetProgram(userID)
	require.NoError(t, err)
	for _, it := range program.Days[1] {
		assert.NotEqual(t, "Old Lift", it.ExerciseName)
	}
	require.Len(t, program.Days[3], 1)
	assert.True(t, program.Days[3][0].IsRest())
	assert.Equal(t, "Incline Bench Press", program.Days[0][0].ExerciseName)

	_, err = tracker.ApplyPreset(userID, "bro-split")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}
