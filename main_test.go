package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymbro/internal/analysis"
)

func TestParseSplit(t *testing.T) {
	tests := []struct {
		input   string
		want    analysis.MacroSplit
		wantErr bool
	}{
		{input: "45/30/25", want: analysis.MacroSplit{CarbPercent: 45, ProteinPercent: 30, FatPercent: 25}},
		{input: " 40 / 35 / 25 ", want: analysis.MacroSplit{CarbPercent: 40, ProteinPercent: 35, FatPercent: 25}},
		{input: "50/50", wantErr: true},
		{input: "a/b/c", wantErr: true},
		{input: "50/30/30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseSplit(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSplitReportsInvalidInput(t *testing.T) {
	_, err := parseSplit("60/30/30")
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)
}

func TestBudgetCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := budgetCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--sex", "male", "--weight", "75", "--height", "180", "--age", "28", "--activity", "moderate", "--split", "45/30/25"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "BMR:     1,740 kcal")
	assert.Contains(t, out.String(), "TDEE:    2,697 kcal")
	assert.Contains(t, out.String(), "Carbs:   303 g")
	assert.Contains(t, out.String(), "Protein: 202 g")
	assert.Contains(t, out.String(), "Fat:     75 g")
}

func TestPrintBudgetRoundsKcal(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	printBudget(cmd, analysis.EnergyBudget{BMRKcal: 1740.6, TDEEKcal: 2696.5}, analysis.DefaultMacroSplit())
	assert.Contains(t, out.String(), "BMR:     1,741 kcal")
	assert.Contains(t, out.String(), "TDEE:    2,697 kcal")
}

func TestBudgetCommandRejectsUnknownActivity(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := budgetCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--sex", "male", "--weight", "75", "--height", "180", "--age", "28", "--activity", "extreme"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, analysis.ErrInvalidInput)
}
