package api

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"gymbro/internal/analysis"
	"gymbro/internal/service"
	"gymbro/internal/store"
)

type budgetRequest struct {
	Sex           string               `json:"gender"`
	Age           int                  `json:"age"`
	HeightCm      float64              `json:"user_height"`
	WeightKg      float64              `json:"user_weight"`
	ActivityLevel string               `json:"activity_level"`
	Split         *analysis.MacroSplit `json:"split,omitempty"`
}

type profileResponse struct {
	ID            string   `json:"id"`
	FullName      string   `json:"full_name"`
	Gender        string   `json:"gender"`
	Age           int      `json:"age"`
	HeightCm      float64  `json:"user_height"`
	WeightKg      float64  `json:"user_weight"`
	ActivityLevel string   `json:"activity_level"`
	CarbPct       float64  `json:"carb_pct"`
	ProteinPct    float64  `json:"protein_pct"`
	FatPct        float64  `json:"fat_pct"`
	TDEE          *float64 `json:"tdee"`
	CarbG         *int     `json:"carb_g"`
	ProteinG      *int     `json:"protein_g"`
	FatG          *int     `json:"fat_g"`
}

func newProfileResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:            p.ID.String(),
		FullName:      p.FullName,
		Gender:        p.Gender,
		Age:           p.Age,
		HeightCm:      p.HeightCm,
		WeightKg:      p.WeightKg,
		ActivityLevel: p.ActivityLevel,
		CarbPct:       p.CarbPct,
		ProteinPct:    p.ProteinPct,
		FatPct:        p.FatPct,
		TDEE:          p.TDEE,
		CarbG:         p.CarbG,
		ProteinG:      p.ProteinG,
		FatG:          p.FatG,
	}
}

type profileListResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type dashboardResponse struct {
	Profile profileResponse `json:"profile"`
	*service.DashboardData
}

type progressRequest struct {
	ProgramItemID int64   `json:"program_item_id,omitempty"`
	ExerciseName  string  `json:"exercise_name"`
	WeightKg      float64 `json:"weight_kg"`
	Sets          int     `json:"sets"`
	Reps          string  `json:"reps"`
	BodyWeightKg  float64 `json:"body_weight"`
	WorkoutDate   string  `json:"workout_date"` // YYYY-MM-DD, empty = today
}

type foodRequest struct {
	Name     string  `json:"food_name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fat"`
	EatenOn  string  `json:"eaten_on"` // YYYY-MM-DD, empty = today
}

type weeklyProgressResponse struct {
	Weeks []analysis.WeeklyBucket `json:"weeks"`
}

type programItemsResponse struct {
	Items []analysis.ProgramItem `json:"items"`
}

type deleteResponse struct {
	DeletedID int64 `json:"deletedId"`
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	in := service.ProfileInput{
		Sex:           req.Sex,
		Age:           req.Age,
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		ActivityLevel: req.ActivityLevel,
	}
	bio, err := in.Biometrics()
	if err != nil {
		writeError(w, r, err)
		return
	}

	split := s.defaultSplit
	if req.Split != nil {
		split = *req.Split
	}

	budget, err := s.calc.ComputeBudget(bio, split)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterBudgetsComputed.Inc()
	}

	writeJSON(w, http.StatusOK, budget)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.tracker.Register(in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProfileResponse(p))
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.query.ListProfiles()
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := profileListResponse{Profiles: make([]profileResponse, 0, len(profiles))}
	for i := range profiles {
		resp.Profiles = append(resp.Profiles, newProfileResponse(&profiles[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.query.GetProfile(userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(p))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.ProfileInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.tracker.UpdateProfile(userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProfileResponse(p))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	day, err := optionalDate("day", r.URL.Query().Get("day"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if day.IsZero() {
		day = s.now()
	}

	data, err := s.query.GetDashboardData(userID, day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		Profile:       newProfileResponse(&data.Profile),
		DashboardData: data,
	})
}

func (s *Server) handleLogProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := optionalDate("workout_date", req.WorkoutDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	row, err := s.tracker.LogProgress(userID, service.ProgressInput{
		ProgramItemID: req.ProgramItemID,
		ExerciseName:  req.ExerciseName,
		WeightKg:      req.WeightKg,
		Sets:          req.Sets,
		Reps:          req.Reps,
		BodyWeightKg:  req.BodyWeightKg,
		Date:          date,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debugf("progress logged for %s: [%s] %d", userID, row.ExerciseName, row.ID)
	writeJSON(w, http.StatusCreated, analysis.WorkoutEntry{
		ID:           row.ID,
		ExerciseName: row.ExerciseName,
		WeightKg:     row.WeightKg,
		Sets:         row.Sets,
		Reps:         row.Reps,
		BodyWeightKg: row.BodyWeight,
		WorkoutDate:  row.WorkoutDate,
	})
}

func (s *Server) handleWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	weeks, err := s.query.GetWeeklyProgress(userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if weeks == nil {
		weeks = []analysis.WeeklyBucket{}
	}
	writeJSON(w, http.StatusOK, weeklyProgressResponse{Weeks: weeks})
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	program, err := s.query.GetProgram(userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, program)
}

func (s *Server) handleAddProgramItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var item analysis.ProgramItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := s.tracker.AddProgramItem(userID, item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateProgramItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemID, err := itemIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var item analysis.ProgramItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, r, err)
		return
	}
	item.ID = itemID

	if err := s.tracker.UpdateProgramItem(userID, item); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteProgramItem(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	itemID, err := itemIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.tracker.DeleteProgramItem(userID, itemID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{DeletedID: itemID})
}

func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := s.tracker.ApplyPreset(userID, mux.Vars(r)["preset"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, programItemsResponse{Items: items})
}

func (s *Server) handleFoodHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	history, err := s.query.GetFoodHistory(userID, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleAddFood(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req foodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	eatenOn, err := optionalDate("eaten_on", req.EatenOn)
	if err != nil {
		writeError(w, r, err)
		return
	}

	row, err := s.tracker.AddFood(userID, analysis.FoodEntry{
		Name:     req.Name,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
		EatenOn:  eatenOn,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, analysis.FoodEntry{
		ID:       row.ID,
		Name:     row.FoodName,
		Calories: row.Calories,
		ProteinG: row.Protein,
		CarbsG:   row.Carbs,
		FatG:     row.Fat,
		EatenOn:  row.EatenOn,
	})
}
