package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gymbro/internal/analysis"
	"gymbro/internal/config"
	"gymbro/internal/service"
)

func registerCmd() *cobra.Command {
	var (
		in       service.ProfileInput
		split    string
		activate bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a profile",
		Long:  "Creates a profile, stores its daily targets and selects it for the TUI.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := setupLogging(cfg, false); err != nil {
				return err
			}

			if split != "" {
				s, err := parseSplit(split)
				if err != nil {
					return err
				}
				in.Split = &s
			}

			d, err := openDeps(cfg, nil)
			if err != nil {
				return err
			}
			defer d.db.Close()

			profile, err := d.tracker.Register(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created profile %s for %s\n", profile.ID, profile.FullName)
			if profile.TDEE != nil {
				fmt.Fprintf(out, "Daily target: %.0f kcal\n", *profile.TDEE)
			}

			if activate {
				if err := config.SelectProfile(profile.ID.String()); err != nil {
					return fmt.Errorf("saving selected profile: %w", err)
				}
				fmt.Fprintln(out, "Selected it in the config. Run 'gymbro' to open the dashboard.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&in.Sex, "sex", "", "male or female")
	cmd.Flags().IntVar(&in.Age, "age", 0, "age in years")
	cmd.Flags().Float64Var(&in.HeightCm, "height", 0, "height in cm")
	cmd.Flags().Float64Var(&in.WeightKg, "weight", 0, "body weight in kg")
	cmd.Flags().StringVar(&in.ActivityLevel, "activity", string(analysis.ActivityModerate), "sedentary, light, moderate or heavy")
	cmd.Flags().StringVar(&split, "split", "", "carb/protein/fat percentages (default from config)")
	cmd.Flags().BoolVar(&activate, "select", true, "make this the profile the TUI opens")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("sex")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("weight")

	return cmd
}
