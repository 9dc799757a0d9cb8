package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"gymbro/internal/analysis"
)

func budgetCmd() *cobra.Command {
	var (
		sex      string
		weight   float64
		height   float64
		age      int
		activity string
		split    string
	)

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Compute a daily energy budget",
		Long:  "Prints BMR, TDEE and macro gram targets without storing anything.",
		Example: "  gymbro budget --sex male --weight 75 --height 180 --age 28 --activity moderate\n" +
			"  gymbro budget --sex female --weight 60 --height 165 --age 35 --activity light --split 40/35/25",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			calc, err := newCalculator(cfg)
			if err != nil {
				return err
			}

			macroSplit := cfg.MacroSplit()
			if split != "" {
				if macroSplit, err = parseSplit(split); err != nil {
					return err
				}
			}

			s, err := analysis.ParseSex(sex)
			if err != nil {
				return err
			}
			level, err := analysis.ParseActivityLevel(activity)
			if err != nil {
				return err
			}

			budget, err := calc.ComputeBudget(analysis.BiometricProfile{
				Sex:           s,
				WeightKg:      weight,
				HeightCm:      height,
				AgeYears:      age,
				ActivityLevel: level,
			}, macroSplit)
			if err != nil {
				return err
			}

			printBudget(cmd, budget, macroSplit)
			return nil
		},
	}

	cmd.Flags().StringVar(&sex, "sex", "", "male or female")
	cmd.Flags().Float64Var(&weight, "weight", 0, "body weight in kg")
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm")
	cmd.Flags().IntVar(&age, "age", 0, "age in years")
	cmd.Flags().StringVar(&activity, "activity", string(analysis.ActivityModerate), "sedentary, light, moderate or heavy")
	cmd.Flags().StringVar(&split, "split", "", "carb/protein/fat percentages, e.g. 45/30/25 (default from config)")
	_ = cmd.MarkFlagRequired("sex")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("age")

	return cmd
}

func printBudget(cmd *cobra.Command, b analysis.EnergyBudget, split analysis.MacroSplit) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "BMR:     %s kcal\n", humanize.Comma(int64(math.Round(b.BMRKcal))))
	fmt.Fprintf(out, "TDEE:    %s kcal\n", humanize.Comma(int64(math.Round(b.TDEEKcal))))
	fmt.Fprintf(out, "Carbs:   %d g (%g%%)\n", b.CarbGrams, split.CarbPercent)
	fmt.Fprintf(out, "Protein: %d g (%g%%)\n", b.ProteinGrams, split.ProteinPercent)
	fmt.Fprintf(out, "Fat:     %d g (%g%%)\n", b.FatGrams, split.FatPercent)
}

// parseSplit reads "carb/protein/fat" percentages, e.g. "45/30/25"
func parseSplit(s string) (analysis.MacroSplit, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return analysis.MacroSplit{}, fmt.Errorf("split %q: want carb/protein/fat, e.g. 45/30/25", s)
	}

	var pct [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return analysis.MacroSplit{}, fmt.Errorf("split %q: %w", s, err)
		}
		pct[i] = v
	}

	split := analysis.MacroSplit{CarbPercent: pct[0], ProteinPercent: pct[1], FatPercent: pct[2]}
	if err := split.Validate(); err != nil {
		return analysis.MacroSplit{}, err
	}
	return split, nil
}
