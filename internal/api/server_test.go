package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymbro/internal/analysis"
	"gymbro/internal/metrics"
	"gymbro/internal/service"
	"gymbro/internal/store"
)

type testEnv struct {
	handler http.Handler
	metrics *metrics.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	m, reg := metrics.NewTestManagerAndRegistry()
	split := analysis.DefaultMacroSplit()
	s := NewServer(Params{
		Tracker:        service.NewTrackerService(db, nil, split, m),
		Query:          service.NewQueryService(db, nil, nil),
		DefaultSplit:   split,
		Metrics:        m,
		Gatherer:       reg,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	s.now = func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }

	return &testEnv{handler: s.Router(), metrics: m}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := go_json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, go_json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (e *testEnv) register(t *testing.T) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/users", map[string]any{
		"full_name":      "Test Lifter",
		"gender":         "male",
		"age":            28,
		"user_height":    180,
		"user_weight":    75,
		"activity_level": "moderate",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[profileResponse](t, rec).ID
}

func TestHandleBudget(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/budget", budgetRequest{
		Sex: "male", Age: 28, HeightCm: 180, WeightKg: 75, ActivityLevel: "moderate",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[analysis.EnergyBudget](t, rec)
	assert.Equal(t, analysis.EnergyBudget{
		BMRKcal: 1740, TDEEKcal: 2697, CarbGrams: 303, ProteinGrams: 202, FatGrams: 75,
	}, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.CounterBudgetsComputed))
}

func TestHandleBudgetInvalidInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body any
		want string
	}{
		{"bad sex", budgetRequest{Sex: "x", Age: 28, HeightCm: 180, WeightKg: 75, ActivityLevel: "moderate"}, "sex"},
		{"bad level", budgetRequest{Sex: "male", Age: 28, HeightCm: 180, WeightKg: 75, ActivityLevel: "couch"}, "activity_level"},
		{"zero height", budgetRequest{Sex: "male", Age: 28, WeightKg: 75, ActivityLevel: "moderate"}, "height_cm"},
		{"not json", "{", "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/budget", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestRegisterAndGetProfile(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t)

	rec := env.do(t, http.MethodGet, "/api/users/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	p := decode[profileResponse](t, rec)
	assert.Equal(t, "Test Lifter", p.FullName)
	require.NotNil(t, p.TDEE)
	assert.Equal(t, 2697.0, *p.TDEE)
	assert.Equal(t, 202, *p.ProteinG)
}

func TestUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users/"+uuid.NewString()+"/dashboard", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/not-a-uuid/dashboard", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t)

	rec := env.do(t, http.MethodPut, "/api/users/"+id+"/profile", map[string]any{
		"full_name":      "Test Lifter",
		"gender":         "male",
		"age":            28,
		"user_height":    180,
		"user_weight":    75,
		"activity_level": "level-0",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decode[profileResponse](t, rec)
	assert.Equal(t, "sedentary", p.ActivityLevel)
	assert.Equal(t, 2088.0, *p.TDEE)
}

func TestProgressFlow(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t)

	logs := []progressRequest{
		{ExerciseName: "Bench Press", WeightKg: 60, Sets: 3, Reps: "8", BodyWeightKg: 76, WorkoutDate: "2024-01-03"},
		{ExerciseName: "Bench Press", WeightKg: 65, Sets: 3, Reps: "8", WorkoutDate: "2024-01-08"},
		{ExerciseName: "Bench Press", WeightKg: 70, Sets: 2, Reps: "6", BodyWeightKg: 74, WorkoutDate: "2024-01-10"},
	}
	for _, l := range logs {
		rec := env.do(t, http.MethodPost, "/api/users/"+id+"/progress", l)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodGet, "/api/users/"+id+"/progress/weekly", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	weekly := decode[weeklyProgressResponse](t, rec)
	require.Len(t, weekly.Weeks, 2)
	assert.Equal(t, "2024-01-08", analysis.FormatDate(weekly.Weeks[0].WeekStart))
	assert.Equal(t, "2024-01-01", analysis.FormatDate(weekly.Weeks[1].WeekStart))

	// No day given: the server clock says 2024-01-10
	rec = env.do(t, http.MethodGet, "/api/users/"+id+"/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var dash struct {
		Profile      profileResponse             `json:"profile"`
		DayOfWeek    int                         `json:"day_of_week"`
		Strength     []analysis.CategoryStrength `json:"strength"`
		WeightChange analysis.WeightChange       `json:"weight_change"`
	}
	require.NoError(t, go_json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Equal(t, 3, dash.DayOfWeek)
	assert.Equal(t, 258, dash.Strength[0].Strength)
	assert.True(t, dash.WeightChange.Measured)
	assert.Equal(t, 2, dash.WeightChange.Loss)
	assert.Equal(t, 74.0, dash.Profile.WeightKg)

	assert.Equal(t, 3.0, testutil.ToFloat64(env.metrics.CounterProgressLogged))
}

func TestLogProgressBadDate(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t)

	rec := env.do(t, http.MethodPost, "/api/users/"+id+"/progress", progressRequest{
		ExerciseName: "Squat", Sets: 3, WorkoutDate: "10/01/2024",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "workout_date")
}

func TestDashboardDayParam(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t)

	rec := env.do(t, http.MethodGet, "/api/users/"+id+"/dashboard?day=2024-01-14", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"day_of_week":7`)

	rec = env.do(t, http.MethodGet, "/api/users/"+id+"/dashboard?day=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProgramEndpoints(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t)

	rec := env.do(t, http.MethodPost, "/api/users/"+id+"/program/presets/upper-lower", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	applied := decode[programItemsResponse](t, rec)
	assert.Len(t, applied.Items, 29)

	rec = env.do(t, http.MethodPost, "/api/users/"+id+"/program/presets/bro-split", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/users/"+id+"/program", analysis.ProgramItem{
		ExerciseName: "Hip Thrust", Sets: 3, Reps: "10", WeightKg: 80, DayOfWeek: 3, MuscleGroup: analysis.Glutes,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	added := decode[analysis.ProgramItem](t, rec)

	added.WeightKg = 90
	rec = env.do(t, http.MethodPut, "/api/users/"+id+"/program/"+itoa(added.ID), added)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/users/"+id+"/program", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	program := decode[service.ProgramData](t, rec)
	require.Len(t, program.Days[2], 2)
	assert.Equal(t, 90.0, program.Days[2][1].WeightKg)

	rec = env.do(t, http.MethodDelete, "/api/users/"+id+"/program/"+itoa(added.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/users/"+id+"/program/"+itoa(added.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFoodEndpoints(t *testing.T) {
	env := newTestEnv(t)
	id := env.register(t)

	rec := env.do(t, http.MethodPost, "/api/users/"+id+"/food", foodRequest{
		Name: "Oats", Calories: 380, ProteinG: 13, CarbsG: 67, FatG: 7,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/users/"+id+"/food", foodRequest{Name: "", Calories: 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/"+id+"/food", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[service.FoodHistory](t, rec)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, "Oats", history.Entries[0].Name)

	rec = env.do(t, http.MethodPost, "/api/users/"+id+"/food", foodRequest{Name: "Greek yogurt", Calories: 100})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/users/"+id+"/food?q=YOG", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history = decode[service.FoodHistory](t, rec)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, "Greek yogurt", history.Entries[0].Name)
	require.Len(t, history.Recent, 1)
}

func TestListProfiles(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[profileListResponse](t, rec).Profiles)

	first := env.register(t)
	second := env.register(t)

	rec = env.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profiles := decode[profileListResponse](t, rec).Profiles
	require.Len(t, profiles, 2)
	assert.ElementsMatch(t, []string{first, second}, []string{profiles[0].ID, profiles[1].ID})
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/budget", budgetRequest{
		Sex: "female", Age: 30, HeightCm: 165, WeightKg: 60, ActivityLevel: "light",
	})

	rec := env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gymbro_test_server_budgets_computed 1")
	assert.True(t, strings.Contains(rec.Body.String(), `gymbro_test_server_request{method="POST",status="200"} 1`))
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/budget", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/budget", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
