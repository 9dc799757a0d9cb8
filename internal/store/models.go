package store

import (
	"time"

	"github.com/google/uuid"
)

// dateLayout is how calendar dates are stored
const dateLayout = "2006-01-02"

// Profile represents a registered user and their stored targets
type Profile struct {
	ID            uuid.UUID `db:"id"`
	FullName      string    `db:"full_name"`
	Gender        string    `db:"gender"`
	Age           int       `db:"age"`
	HeightCm      float64   `db:"user_height"`
	WeightKg      float64   `db:"user_weight"`
	ActivityLevel string    `db:"activity_level"`
	CarbPct       float64   `db:"carb_pct"`
	ProteinPct    float64   `db:"protein_pct"`
	FatPct        float64   `db:"fat_pct"`
	TDEE          *float64  `db:"tdee"`      // nullable until computed
	CarbG         *int      `db:"carb_g"`    // nullable
	ProteinG      *int      `db:"protein_g"` // nullable
	FatG          *int      `db:"fat_g"`     // nullable
	CreatedAt     time.Time `db:"created_at"`
}

// ProgramItem represents one planned exercise on a weekday
type ProgramItem struct {
	ID           int64     `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	ExerciseName string    `db:"exercise_name"`
	Sets         int       `db:"sets"`
	Reps         string    `db:"reps"`
	WeightKg     float64   `db:"weight_kg"`
	DayOfWeek    int       `db:"day_of_week"` // 1=Monday .. 7=Sunday
	MuscleGroup  string    `db:"muscle_group"`
}

// WorkoutProgress represents one logged exercise result
type WorkoutProgress struct {
	ID            int64     `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	ExerciseName  string    `db:"exercise_name"`
	WeightKg      float64   `db:"weight_kg"`
	Sets          int       `db:"sets"`
	Reps          string    `db:"reps"`
	BodyWeight    float64   `db:"body_weight"` // 0 = not recorded
	WorkoutDate   time.Time `db:"workout_date"`
	WeekStartDate time.Time `db:"week_start_date"`
	DayOfWeek     int       `db:"day_of_week"`
}

// FoodLog represents one eaten food
type FoodLog struct {
	ID       int64     `db:"id"`
	UserID   uuid.UUID `db:"user_id"`
	FoodName string    `db:"food_name"`
	Calories float64   `db:"calories"`
	Protein  float64   `db:"protein"`
	Carbs    float64   `db:"carbs"`
	Fat      float64   `db:"fat"`
	EatenOn  time.Time `db:"eaten_on"`
}
