package analysis

import "strings"

// MuscleGroup is the coarse category an exercise is mapped to
type MuscleGroup string

const (
	NoGroup    MuscleGroup = ""
	Chest      MuscleGroup = "chest"
	Back       MuscleGroup = "back"
	Lats       MuscleGroup = "lats"
	Shoulders  MuscleGroup = "shoulders"
	Quads      MuscleGroup = "quads"
	Hamstrings MuscleGroup = "hamstrings"
	Glutes     MuscleGroup = "glutes"
	Calves     MuscleGroup = "calves"
	Biceps     MuscleGroup = "biceps"
	Triceps    MuscleGroup = "triceps"
	Abs        MuscleGroup = "abs"
	Rest       MuscleGroup = "rest"
)

// MuscleGroups lists every selectable group, in program editor order
func MuscleGroups() []MuscleGroup {
	return []MuscleGroup{Chest, Quads, Back, Lats, Hamstrings, Glutes, Shoulders, Biceps, Triceps, Calves, Abs, Rest}
}

// ParseMuscleGroup accepts any known group name in any case
func ParseMuscleGroup(s string) (MuscleGroup, error) {
	g := MuscleGroup(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MuscleGroups() {
		if g == known {
			return g, nil
		}
	}
	return NoGroup, invalid("muscle_group", "is not a known group: "+quote(s))
}

// LookupTable maps lower-cased exercise names to groups (exact match)
type LookupTable map[string]MuscleGroup

// Add registers a name; the first registration of a name wins
func (t LookupTable) Add(name string, group MuscleGroup) {
	key := strings.ToLower(name)
	if _, exists := t[key]; exists || group == NoGroup {
		return
	}
	t[key] = group
}

// GroupAliases lists substrings that identify a group
type GroupAliases struct {
	Group   MuscleGroup
	Aliases []string
}

// DefaultAliases returns the built-in alias table. Order matters: the first
// group with a matching alias wins, so "Romanian Deadlift" resolves to back.
func DefaultAliases() []GroupAliases {
	return []GroupAliases{
		{Chest, []string{"Bench Press", "Incline Dumbbell Press", "Dips", "Cable Fly", "Dumbbell Fly", "Push Up", "Incline Bench Press", "Incline Press", "Dumbbell Bench Press"}},
		{Back, []string{"Deadlift", "Bent Over Row", "T-Bar Row", "Seated Cable Row"}},
		{Lats, []string{"Lat Pulldown", "Pull Up", "Chin Up", "Straight Arm Pulldown", "Dumbbell Row", "Lat Pull Down", "One Arm Dumbbell Row", "Wide Grip Lat Pull Down"}},
		{Shoulders, []string{"Overhead Press", "Lateral Raise", "Front Raise", "Face Pull", "Arnold Press", "Seated Dumbbell Press", "Machine Shoulder Press", "Cable Lateral Raise", "Shoulder Press"}},
		{Quads, []string{"Squat", "Leg Press", "Lunge", "Leg Extension", "Goblet Squat", "Front Squat"}},
		{Hamstrings, []string{"Romanian Deadlift", "Lying Leg Curl", "Seated Leg Curl", "Good Morning", "RDL", "Leg Curl"}},
		{Glutes, []string{"Hip Thrust", "Glute Bridge", "Bulgarian Split Squat"}},
		{Calves, []string{"Calf Raise", "Calves Raise"}},
		{Biceps, []string{"Bicep Curl", "Hammer Curl", "Incline Dumbbell Curl", "Preacher Curl"}},
		{Triceps, []string{"Tricep Pushdown", "Skullcrusher", "Close Grip Bench Press", "Overhead Extension", "Weighted Dips", "Tricep extension"}},
	}
}

// Resolver maps exercise names to muscle groups
type Resolver struct {
	lookup  LookupTable
	aliases []GroupAliases
}

// NewResolver builds a resolver. The lookup table is consulted first with an
// exact case-insensitive match; aliases are then tried as substrings. A nil
// aliases slice means DefaultAliases.
func NewResolver(lookup LookupTable, aliases []GroupAliases) *Resolver {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	lowered := make([]GroupAliases, 0, len(aliases))
	for _, ga := range aliases {
		names := make([]string, 0, len(ga.Aliases))
		for _, a := range ga.Aliases {
			if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
				names = append(names, a)
			}
		}
		lowered = append(lowered, GroupAliases{Group: ga.Group, Aliases: names})
	}
	table := make(LookupTable, len(lookup))
	for name, group := range lookup {
		table.Add(name, group)
	}
	return &Resolver{lookup: table, aliases: lowered}
}

// Resolve returns the group for an exercise name, or NoGroup
func (r *Resolver) Resolve(exerciseName string) MuscleGroup {
	name := strings.ToLower(exerciseName)
	if g, ok := r.lookup[name]; ok {
		return g
	}
	for _, ga := range r.aliases {
		for _, alias := range ga.Aliases {
			if strings.Contains(name, alias) {
				return ga.Group
			}
		}
	}
	return NoGroup
}

// ResolveMuscleGroup resolves with the given lookup table and the default aliases
func ResolveMuscleGroup(exerciseName string, lookup LookupTable) MuscleGroup {
	return NewResolver(lookup, nil).Resolve(exerciseName)
}

// StrengthCategory groups muscle groups into one reported strength figure
type StrengthCategory struct {
	Name   string
	Groups []MuscleGroup
}

// DefaultStrengthCategories returns chest, back, shoulders, legs and arms
func DefaultStrengthCategories() []StrengthCategory {
	return []StrengthCategory{
		{Name: "chest", Groups: []MuscleGroup{Chest}},
		{Name: "back", Groups: []MuscleGroup{Back, Lats}},
		{Name: "shoulders", Groups: []MuscleGroup{Shoulders}},
		{Name: "legs", Groups: []MuscleGroup{Quads, Hamstrings, Glutes, Calves}},
		{Name: "arms", Groups: []MuscleGroup{Biceps, Triceps}},
	}
}
