package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"gymbro/internal/config"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an example config file",
		Long:  "Creates ~/.gymbro/config.json with defaults unless it already exists.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.CreateExample(); err != nil {
				return fmt.Errorf("creating example config: %w", err)
			}
			dir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file:\n  %s\n", filepath.Join(dir, "config.json"))
			return nil
		},
	}
}
