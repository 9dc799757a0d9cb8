package analysis

import (
	"math"
	"sort"
	"strings"
	"time"
)

// WorkoutEntry is one logged set-group of an exercise on a day
type WorkoutEntry struct {
	ID           int64     `json:"id,omitempty"`
	ExerciseName string    `json:"exercise_name"`
	WeightKg     float64   `json:"weight_kg"`
	Sets         int       `json:"sets"`
	Reps         string    `json:"reps"`        // free-form, e.g. "8-12"
	BodyWeightKg float64   `json:"body_weight"` // 0 = not recorded
	WorkoutDate  time.Time `json:"workout_date"`
}

// Validate rejects entries that cannot be aggregated
func (e WorkoutEntry) Validate() error {
	if strings.TrimSpace(e.ExerciseName) == "" {
		return invalid("exercise_name", "is required")
	}
	if !nonNegative(e.WeightKg) {
		return invalid("weight_kg", "must be zero or a positive number")
	}
	if e.Sets < 0 {
		return invalid("sets", "must not be negative")
	}
	if !nonNegative(e.BodyWeightKg) {
		return invalid("body_weight", "must be zero or a positive number")
	}
	if e.WorkoutDate.IsZero() {
		return invalid("workout_date", "is required")
	}
	return nil
}

func validateEntries(entries []WorkoutEntry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WeeklyBucket holds the workouts of one Monday-based week
type WeeklyBucket struct {
	WeekStart         time.Time      `json:"week_start_date"`
	Workouts          []WorkoutEntry `json:"workouts"`
	AverageBodyWeight *float64       `json:"body_weight_avg,omitempty"` // nil when no body weight was recorded
}

// GroupByWeek partitions entries by week. Buckets are ordered newest week
// first; workouts inside a bucket oldest first.
func GroupByWeek(entries []WorkoutEntry) ([]WeeklyBucket, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	sorted := make([]WorkoutEntry, len(entries))
	copy(sorted, entries)
	sortEntries(sorted)

	index := make(map[string]int)
	var buckets []WeeklyBucket
	for _, e := range sorted {
		start := WeekStartOf(e.WorkoutDate)
		key := FormatDate(start)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, WeeklyBucket{WeekStart: start})
		}
		buckets[i].Workouts = append(buckets[i].Workouts, e)
	}

	for i := range buckets {
		buckets[i].AverageBodyWeight = averageBodyWeight(buckets[i].Workouts)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].WeekStart.After(buckets[j].WeekStart)
	})

	return buckets, nil
}

// sortEntries orders by date, then ID, then name, so the result does not
// depend on the order rows arrived in
func sortEntries(entries []WorkoutEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.WorkoutDate.Equal(b.WorkoutDate) {
			return a.WorkoutDate.Before(b.WorkoutDate)
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.ExerciseName < b.ExerciseName
	})
}

func averageBodyWeight(entries []WorkoutEntry) *float64 {
	var sum float64
	var n int
	for _, e := range entries {
		if e.BodyWeightKg > 0 {
			sum += e.BodyWeightKg
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// ComputeStrength sums weight*sets over entries whose exercise resolves into
// one of groups, halves it and rounds. No matching entries gives 0.
func ComputeStrength(entries []WorkoutEntry, groups []MuscleGroup, resolver *Resolver) (int, error) {
	if err := validateEntries(entries); err != nil {
		return 0, err
	}
	if resolver == nil {
		resolver = NewResolver(nil, nil)
	}
	return strength(entries, groups, resolver), nil
}

func strength(entries []WorkoutEntry, groups []MuscleGroup, resolver *Resolver) int {
	targets := make(map[MuscleGroup]bool, len(groups))
	for _, g := range groups {
		targets[g] = true
	}

	var total float64
	for _, e := range entries {
		if g := resolver.Resolve(e.ExerciseName); g != NoGroup && targets[g] {
			total += e.WeightKg * float64(e.Sets)
		}
	}
	return int(math.Round(total / 2))
}

// CategoryStrength is the strength figure of one category
type CategoryStrength struct {
	Category string `json:"category"`
	Strength int    `json:"strength"`
}

// ComputeStrengthMetrics returns one strength figure per category, in category order
func ComputeStrengthMetrics(entries []WorkoutEntry, categories []StrengthCategory, resolver *Resolver) ([]CategoryStrength, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	if resolver == nil {
		resolver = NewResolver(nil, nil)
	}

	metrics := make([]CategoryStrength, 0, len(categories))
	for _, c := range categories {
		metrics = append(metrics, CategoryStrength{
			Category: c.Name,
			Strength: strength(entries, c.Groups, resolver),
		})
	}
	return metrics, nil
}

// WeightChange compares the earliest and latest recorded body weight
type WeightChange struct {
	Loss     int     `json:"loss"`
	Gain     int     `json:"gain"`
	First    float64 `json:"first"`
	Last     float64 `json:"last"`
	Samples  int     `json:"samples"`
	Measured bool    `json:"measured"` // false when no entry carried a body weight
}

// ComputeWeightChange derives loss/gain from the first and last body weight
// samples by date. Without samples the result is zero and Measured is false.
func ComputeWeightChange(entries []WorkoutEntry) (WeightChange, error) {
	if err := validateEntries(entries); err != nil {
		return WeightChange{}, err
	}

	var samples []WorkoutEntry
	for _, e := range entries {
		if e.BodyWeightKg > 0 {
			samples = append(samples, e)
		}
	}
	if len(samples) == 0 {
		return WeightChange{}, nil
	}
	sortEntries(samples)

	change := weightDelta(samples[0].BodyWeightKg, samples[len(samples)-1].BodyWeightKg)
	change.Samples = len(samples)
	change.Measured = true
	return change, nil
}

// ApplyReferenceWeight fills an unmeasured change with a reference weight
// (typically the profile weight) as both endpoints. The result stays
// Measured=false so callers can tell "no data" from "no change".
func ApplyReferenceWeight(change WeightChange, referenceKg float64) WeightChange {
	if change.Measured || referenceKg <= 0 {
		return change
	}
	out := weightDelta(referenceKg, referenceKg)
	out.Samples = change.Samples
	return out
}

func weightDelta(first, last float64) WeightChange {
	change := WeightChange{First: first, Last: last}
	delta := first - last
	if delta > 0 {
		change.Loss = int(math.Round(delta))
	} else {
		change.Gain = int(math.Round(-delta))
	}
	return change
}

// LastWorkoutDate returns the most recent workout date, or the zero time
func LastWorkoutDate(entries []WorkoutEntry) time.Time {
	var last time.Time
	for _, e := range entries {
		if e.WorkoutDate.After(last) {
			last = e.WorkoutDate
		}
	}
	return last
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
