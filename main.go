package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gymbro/internal/analysis"
	"gymbro/internal/config"
	"gymbro/internal/logging"
	"gymbro/internal/metrics"
	"gymbro/internal/service"
	"gymbro/internal/store"
	"gymbro/internal/tui"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "gymbro",
		Short:        "Energy budget and workout progress in your terminal",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(budgetCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(initCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, false); err != nil {
		return err
	}

	if cfg.User.ProfileID == "" {
		fmt.Println("No profile selected yet. Create one with:")
		fmt.Println("  gymbro register --name \"Your Name\" --sex male --age 28 --height 180 --weight 75 --activity moderate")
		return nil
	}
	userID, err := uuid.Parse(cfg.User.ProfileID)
	if err != nil {
		return fmt.Errorf("user.profile_id: %w", err)
	}

	d, err := openDeps(cfg, nil)
	if err != nil {
		return err
	}
	defer d.db.Close()

	if _, err := d.query.GetProfile(userID); errors.Is(err, store.ErrProfileNotFound) {
		return fmt.Errorf("profile %s from the config does not exist; run 'gymbro register'", userID)
	} else if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	app := tui.NewApp(d.tracker, d.query, userID, tui.NewUnits(cfg.Display))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// deps are the services shared by every command that touches the database
type deps struct {
	db      *store.DB
	calc    *analysis.Calculator
	tracker *service.TrackerService
	query   *service.QueryService
}

func openDeps(cfg *config.Config, m *metrics.Manager) (*deps, error) {
	calc, err := newCalculator(cfg)
	if err != nil {
		return nil, err
	}
	aliases, err := cfg.Aliases()
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &deps{
		db:      db,
		calc:    calc,
		tracker: service.NewTrackerService(db, calc, cfg.MacroSplit(), m),
		query:   service.NewQueryService(db, calc, aliases),
	}, nil
}

func newCalculator(cfg *config.Config) (*analysis.Calculator, error) {
	multipliers, err := cfg.Multipliers()
	if err != nil {
		return nil, err
	}
	return analysis.NewCalculator(multipliers), nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		return nil, fmt.Errorf("invalid config in %s: %w", configDir, err)
	}
	return cfg, nil
}

// setupLogging sends logs to the configured file, ~/.gymbro/gymbro.log by default
func setupLogging(cfg *config.Config, toStdout bool) error {
	file := cfg.Log.File
	if file == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		file = filepath.Join(dir, "gymbro.log")
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   file,
		LogToStdout:   toStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	return nil
}
