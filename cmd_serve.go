package main

import (
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gymbro/internal/api"
	"gymbro/internal/metrics"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Serves the budget, profile, progress, program and food endpoints plus /metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := setupLogging(cfg, true); err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			m := metrics.NewManager("gymbro", "api", prometheus.DefaultRegisterer)

			d, err := openDeps(cfg, m)
			if err != nil {
				return err
			}
			defer d.db.Close()

			server := api.NewServer(api.Params{
				Tracker:        d.tracker,
				Query:          d.query,
				Calculator:     d.calc,
				DefaultSplit:   cfg.MacroSplit(),
				Metrics:        m,
				Gatherer:       prometheus.DefaultGatherer,
				AllowedOrigins: cfg.Server.AllowedOrigins,
			})

			if err := server.Serve(cmd.Context(), addr); err != nil {
				log.Errorf("server stopped: %s", err)
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
