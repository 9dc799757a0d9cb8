package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestBMR(t *testing.T) {
	tests := []struct {
		name     string
		profile  BiometricProfile
		expected float64
	}{
		{
			name:     "male 28y 75kg 180cm",
			profile:  BiometricProfile{Sex: SexMale, WeightKg: 75, HeightCm: 180, AgeYears: 28},
			expected: 1740, // 750 + 1125 - 140 + 5
		},
		{
			name:     "female 30y 60kg 165cm",
			profile:  BiometricProfile{Sex: SexFemale, WeightKg: 60, HeightCm: 165, AgeYears: 30},
			expected: 1320.25, // 600 + 1031.25 - 150 - 161
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BMR(tt.profile)
			if err != nil {
				t.Fatalf("BMR() error = %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("BMR() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestComputeBudget(t *testing.T) {
	profile := BiometricProfile{
		Sex:           SexMale,
		WeightKg:      75,
		HeightCm:      180,
		AgeYears:      28,
		ActivityLevel: ActivityModerate,
	}

	got, err := ComputeBudget(profile, DefaultMacroSplit())
	if err != nil {
		t.Fatalf("ComputeBudget() error = %v", err)
	}

	want := EnergyBudget{
		BMRKcal:      1740,
		TDEEKcal:     2697, // round(1740 * 1.55)
		CarbGrams:    303,  // round(2697 * 0.45 / 4)
		ProteinGrams: 202,  // round(2697 * 0.30 / 4)
		FatGrams:     75,   // round(2697 * 0.25 / 9)
	}
	if got != want {
		t.Errorf("ComputeBudget() = %+v, want %+v", got, want)
	}
}

func TestComputeBudget_ActivityLevels(t *testing.T) {
	profile := BiometricProfile{Sex: SexMale, WeightKg: 75, HeightCm: 180, AgeYears: 28}

	tests := []struct {
		level    ActivityLevel
		expected float64
	}{
		{ActivitySedentary, 2088}, // 1740 * 1.2
		{ActivityLight, 2393},     // 1740 * 1.375 = 2392.5
		{ActivityModerate, 2697},  // 1740 * 1.55
		{ActivityHeavy, 3002},     // 1740 * 1.725 = 3001.5
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			profile.ActivityLevel = tt.level
			got, err := ComputeBudget(profile, DefaultMacroSplit())
			if err != nil {
				t.Fatalf("ComputeBudget() error = %v", err)
			}
			if got.TDEEKcal != tt.expected {
				t.Errorf("TDEEKcal = %v, want %v", got.TDEEKcal, tt.expected)
			}
		})
	}
}

func TestComputeBudget_InvalidInput(t *testing.T) {
	valid := BiometricProfile{
		Sex:           SexFemale,
		WeightKg:      60,
		HeightCm:      165,
		AgeYears:      30,
		ActivityLevel: ActivityLight,
	}

	tests := []struct {
		name   string
		modify func(p *BiometricProfile)
		split  MacroSplit
		field  string
	}{
		{"zero weight", func(p *BiometricProfile) { p.WeightKg = 0 }, DefaultMacroSplit(), "weight_kg"},
		{"negative weight", func(p *BiometricProfile) { p.WeightKg = -70 }, DefaultMacroSplit(), "weight_kg"},
		{"NaN height", func(p *BiometricProfile) { p.HeightCm = math.NaN() }, DefaultMacroSplit(), "height_cm"},
		{"infinite height", func(p *BiometricProfile) { p.HeightCm = math.Inf(1) }, DefaultMacroSplit(), "height_cm"},
		{"zero age", func(p *BiometricProfile) { p.AgeYears = 0 }, DefaultMacroSplit(), "age_years"},
		{"unknown sex", func(p *BiometricProfile) { p.Sex = "other" }, DefaultMacroSplit(), "sex"},
		{"empty sex", func(p *BiometricProfile) { p.Sex = "" }, DefaultMacroSplit(), "sex"},
		{"unknown activity", func(p *BiometricProfile) { p.ActivityLevel = "extreme" }, DefaultMacroSplit(), "activity_level"},
		{"negative percent", func(p *BiometricProfile) {}, MacroSplit{CarbPercent: -5, ProteinPercent: 60, FatPercent: 45}, "carb_percent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.modify(&p)
			_, err := ComputeBudget(p, tt.split)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ComputeBudget() error = %v, want ErrInvalidInput", err)
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("error %T is not *InputError", err)
			}
			if inputErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", inputErr.Field, tt.field)
			}
		})
	}
}

func TestComputeBudget_IncompleteSplitStillComputes(t *testing.T) {
	profile := BiometricProfile{Sex: SexMale, WeightKg: 75, HeightCm: 180, AgeYears: 28, ActivityLevel: ActivityModerate}
	split := MacroSplit{CarbPercent: 40, ProteinPercent: 30, FatPercent: 20}

	if err := split.Validate(); err == nil {
		t.Fatal("Validate() should reject a split summing to 90")
	}

	got, err := ComputeBudget(profile, split)
	if err != nil {
		t.Fatalf("ComputeBudget() error = %v", err)
	}
	if got.CarbGrams != 270 { // round(2697 * 0.40 / 4) = round(269.7)
		t.Errorf("CarbGrams = %d, want 270", got.CarbGrams)
	}
}

func TestCalculator_CustomMultipliers(t *testing.T) {
	table := DefaultActivityMultipliers()
	table[ActivityHeavy] = 1.9
	calc := NewCalculator(table)

	// mutating the caller's table afterwards must not leak into the calculator
	table[ActivityHeavy] = 3

	profile := BiometricProfile{Sex: SexMale, WeightKg: 75, HeightCm: 180, AgeYears: 28, ActivityLevel: ActivityHeavy}
	got, err := calc.ComputeBudget(profile, DefaultMacroSplit())
	if err != nil {
		t.Fatalf("ComputeBudget() error = %v", err)
	}
	if got.TDEEKcal != 3306 { // 1740 * 1.9
		t.Errorf("TDEEKcal = %v, want 3306", got.TDEEKcal)
	}

	partial := NewCalculator(ActivityMultipliers{ActivitySedentary: 1.2})
	profile.ActivityLevel = ActivityModerate
	if _, err := partial.ComputeBudget(profile, DefaultMacroSplit()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("level missing from table: error = %v, want ErrInvalidInput", err)
	}
}

func TestComputeBudget_MacroEnergyMatchesTDEE(t *testing.T) {
	splits := []MacroSplit{
		DefaultMacroSplit(),
		{CarbPercent: 50, ProteinPercent: 25, FatPercent: 25},
		{CarbPercent: 10, ProteinPercent: 40, FatPercent: 50},
		{CarbPercent: 33.3, ProteinPercent: 33.3, FatPercent: 33.4},
		{CarbPercent: 0, ProteinPercent: 0, FatPercent: 100},
	}

	for _, sex := range []Sex{SexMale, SexFemale} {
		for _, level := range ActivityLevels() {
			for weight := 45.0; weight <= 140; weight += 7.5 {
				for age := 18; age <= 80; age += 9 {
					profile := BiometricProfile{Sex: sex, WeightKg: weight, HeightCm: 172.5, AgeYears: age, ActivityLevel: level}
					for _, split := range splits {
						b, err := ComputeBudget(profile, split)
						if err != nil {
							t.Fatalf("ComputeBudget(%+v) error = %v", profile, err)
						}
						// each macro rounds to the nearest gram: at most 2 kcal off for carb/protein, 4.5 for fat
						if diff := math.Abs(b.MacroKcal() - b.TDEEKcal); diff > 9 {
							t.Errorf("%+v %+v: macro kcal %v vs tdee %v (diff %v)", profile, split, b.MacroKcal(), b.TDEEKcal, diff)
						}
						again, _ := ComputeBudget(profile, split)
						if again != b {
							t.Errorf("ComputeBudget not deterministic: %+v vs %+v", b, again)
						}
					}
				}
			}
		}
	}
}

func TestMacroSplitValidate(t *testing.T) {
	tests := []struct {
		name    string
		split   MacroSplit
		wantErr bool
	}{
		{"default", DefaultMacroSplit(), false},
		{"all fat", MacroSplit{FatPercent: 100}, false},
		{"fractional", MacroSplit{CarbPercent: 33.5, ProteinPercent: 33.25, FatPercent: 33.25}, false},
		{"sums to 110", MacroSplit{CarbPercent: 50, ProteinPercent: 35, FatPercent: 25}, true},
		{"above 100", MacroSplit{CarbPercent: 120, ProteinPercent: -10, FatPercent: -10}, true},
		{"NaN", MacroSplit{CarbPercent: math.NaN(), ProteinPercent: 50, FatPercent: 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.split.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error should wrap ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestParseActivityLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    ActivityLevel
		wantErr bool
	}{
		{"sedentary", ActivitySedentary, false},
		{"Moderate", ActivityModerate, false},
		{" heavy ", ActivityHeavy, false},
		{"level-0", ActivitySedentary, false},
		{"level-1", ActivityLight, false},
		{"level-2", ActivityModerate, false},
		{"level-3", ActivityHeavy, false},
		{"level-4", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseActivityLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseActivityLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseActivityLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSex(t *testing.T) {
	if got, err := ParseSex("Female"); err != nil || got != SexFemale {
		t.Errorf("ParseSex(Female) = %q, %v", got, err)
	}
	if _, err := ParseSex("x"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseSex(x) error = %v, want ErrInvalidInput", err)
	}
}
