package analysis

import "testing"

func TestResolveMuscleGroup_DefaultAliases(t *testing.T) {
	tests := []struct {
		exercise string
		expected MuscleGroup
	}{
		{"Bench Press", Chest},
		{"bench press", Chest},
		{"Incline Bench Press", Chest},
		{"Close Grip Bench Press", Chest}, // chest aliases are checked before triceps
		{"Romanian Deadlift", Back},       // "deadlift" is a back alias, checked before hamstrings
		{"RDL", Hamstrings},
		{"Lat Pull Down", Lats},
		{"Seated Calf Raise", Calves},
		{"Calves Raise Seated", Calves},
		{"Lateral Raises", Shoulders},
		{"(Weighted) Chin Up", Lats},
		{"Front Squat", Quads},
		{"Bulgarian Split Squat", Quads}, // "squat" matches quads first
		{"Wide Grip Bicep Curl", Biceps},
		{"Tricep extension", Triceps},
		{"Zumba", NoGroup},
		{"", NoGroup},
	}

	for _, tt := range tests {
		t.Run(tt.exercise, func(t *testing.T) {
			if got := ResolveMuscleGroup(tt.exercise, nil); got != tt.expected {
				t.Errorf("ResolveMuscleGroup(%q) = %q, want %q", tt.exercise, got, tt.expected)
			}
		})
	}
}

func TestResolver_LookupTableWins(t *testing.T) {
	lookup := LookupTable{}
	lookup.Add("Romanian Deadlift", Hamstrings)
	lookup.Add("Zumba", Quads)
	lookup.Add("zumba", Calves)
	r := NewResolver(lookup, nil)

	if got := r.Resolve("romanian deadlift"); got != Hamstrings {
		t.Errorf("Resolve(romanian deadlift) = %q, want hamstrings", got)
	}
	// first registration wins
	if got := r.Resolve("ZUMBA"); got != Quads {
		t.Errorf("Resolve(ZUMBA) = %q, want quads", got)
	}
	// exact match only: a longer name falls through to the aliases
	if got := r.Resolve("Romanian Deadlift Paused"); got != Back {
		t.Errorf("Resolve(Romanian Deadlift Paused) = %q, want back", got)
	}
}

func TestResolver_SyntheticAliases(t *testing.T) {
	r := NewResolver(nil, []GroupAliases{
		{Group: Abs, Aliases: []string{"crunch", "  "}},
		{Group: Chest, Aliases: []string{"press"}},
	})

	if got := r.Resolve("Cable Crunch"); got != Abs {
		t.Errorf("Resolve(Cable Crunch) = %q, want abs", got)
	}
	if got := r.Resolve("Leg Press"); got != Chest {
		t.Errorf("Resolve(Leg Press) = %q, want chest with synthetic table", got)
	}
	if got := r.Resolve("Squat"); got != NoGroup {
		t.Errorf("Resolve(Squat) = %q, want no group", got)
	}

	empty := NewResolver(nil, []GroupAliases{})
	if got := empty.Resolve("Bench Press"); got != NoGroup {
		t.Errorf("empty alias table resolved %q", got)
	}
}

func TestLookupTable_FirstWins(t *testing.T) {
	table := LookupTable{}
	table.Add("Dips", Triceps)
	table.Add("dips", Chest)
	table.Add("Nothing", NoGroup)

	if got := table["dips"]; got != Triceps {
		t.Errorf("table[dips] = %q, want triceps", got)
	}
	if _, ok := table["nothing"]; ok {
		t.Error("NoGroup entries should not be stored")
	}
}

func TestParseMuscleGroup(t *testing.T) {
	if g, err := ParseMuscleGroup("Hamstrings"); err != nil || g != Hamstrings {
		t.Errorf("ParseMuscleGroup(Hamstrings) = %q, %v", g, err)
	}
	if _, err := ParseMuscleGroup("forearms"); err == nil {
		t.Error("ParseMuscleGroup(forearms) should fail")
	}
}
