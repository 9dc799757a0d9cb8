package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"gymbro/internal/analysis"
	"gymbro/internal/metrics"
	"gymbro/internal/service"
	"gymbro/internal/store"
)

type tracker interface {
	Register(in service.ProfileInput) (*store.Profile, error)
	UpdateProfile(userID uuid.UUID, in service.ProfileInput) (*store.Profile, error)
	LogProgress(userID uuid.UUID, in service.ProgressInput) (*store.WorkoutProgress, error)
	AddFood(userID uuid.UUID, food analysis.FoodEntry) (*store.FoodLog, error)
	AddProgramItem(userID uuid.UUID, item analysis.ProgramItem) (analysis.ProgramItem, error)
	UpdateProgramItem(userID uuid.UUID, item analysis.ProgramItem) error
	DeleteProgramItem(userID uuid.UUID, id int64) error
	ApplyPreset(userID uuid.UUID, name string) ([]analysis.ProgramItem, error)
}

type querier interface {
	GetProfile(userID uuid.UUID) (*store.Profile, error)
	ListProfiles() ([]store.Profile, error)
	GetDashboardData(userID uuid.UUID, day time.Time) (*service.DashboardData, error)
	GetWeeklyProgress(userID uuid.UUID) ([]analysis.WeeklyBucket, error)
	GetProgram(userID uuid.UUID) (*service.ProgramData, error)
	GetFoodHistory(userID uuid.UUID, query string) (*service.FoodHistory, error)
}

// Params wires the server's dependencies
type Params struct {
	Tracker        tracker
	Query          querier
	Calculator     *analysis.Calculator
	DefaultSplit   analysis.MacroSplit
	Metrics        *metrics.Manager
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// Server is the HTTP front end over the tracker and query services
type Server struct {
	tracker        tracker
	query          querier
	calc           *analysis.Calculator
	defaultSplit   analysis.MacroSplit
	metricsManager *metrics.Manager
	gatherer       prometheus.Gatherer
	allowedOrigins []string
	now            func() time.Time

	httpServer *http.Server
}

func NewServer(params Params) *Server {
	calc := params.Calculator
	if calc == nil {
		calc = analysis.NewCalculator(nil)
	}
	gatherer := params.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{
		tracker:        params.Tracker,
		query:          params.Query,
		calc:           calc,
		defaultSplit:   params.DefaultSplit,
		metricsManager: params.Metrics,
		gatherer:       gatherer,
		allowedOrigins: params.AllowedOrigins,
		now:            time.Now,
	}
}

// Router builds the full handler chain: CORS, panic recovery, metrics, routes
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/budget", s.handleBudget).Methods(http.MethodPost)
	api.HandleFunc("/users", s.handleListProfiles).Methods(http.MethodGet)
	api.HandleFunc("/users", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", s.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/progress", s.handleLogProgress).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/progress/weekly", s.handleWeeklyProgress).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/program", s.handleGetProgram).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/program", s.handleAddProgramItem).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/program/{item:[0-9]+}", s.handleUpdateProgramItem).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}/program/{item:[0-9]+}", s.handleDeleteProgramItem).Methods(http.MethodDelete)
	api.HandleFunc("/users/{id}/program/presets/{preset}", s.handleApplyPreset).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}/food", s.handleFoodHistory).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}/food", s.handleAddFood).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.Use(PanicRecovery(s.metricsManager))
	r.Use(LogRequest())
	r.Use(RequestMetrics(s.metricsManager))

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	})

	return c.Handler(r)
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Handler:      s.Router(),
		Addr:         addr,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof(" > server listening on: [%s]", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Debug("graceful shutdown initiated ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
