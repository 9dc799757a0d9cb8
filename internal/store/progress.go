package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const progressColumns = `id, user_id, exercise_name, weight_kg, sets, reps, body_weight,
	workout_date, week_start_date, day_of_week`

// AddWorkoutProgress inserts a logged workout result and sets its ID
func (db *DB) AddWorkoutProgress(p *WorkoutProgress) error {
	result, err := db.Exec(`
		INSERT INTO workout_progress (
			user_id, exercise_name, weight_kg, sets, reps, body_weight,
			workout_date, week_start_date, day_of_week
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.UserID.String(), p.ExerciseName, p.WeightKg, p.Sets, p.Reps, p.BodyWeight,
		p.WorkoutDate.Format(dateLayout), p.WeekStartDate.Format(dateLayout), p.DayOfWeek,
	)
	if err != nil {
		return fmt.Errorf("inserting workout progress: %w", err)
	}
	p.ID, err = result.LastInsertId()
	return err
}

// ListWorkoutProgress returns a user's logged results, newest first
func (db *DB) ListWorkoutProgress(userID uuid.UUID) ([]WorkoutProgress, error) {
	rows, err := db.Query(`
		SELECT `+progressColumns+` FROM workout_progress
		WHERE user_id = ?
		ORDER BY workout_date DESC, id DESC
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWorkoutProgress(rows)
}

// ListWorkoutProgressUntil returns results dated on or before until, newest first
func (db *DB) ListWorkoutProgressUntil(userID uuid.UUID, until time.Time) ([]WorkoutProgress, error) {
	rows, err := db.Query(`
		SELECT `+progressColumns+` FROM workout_progress
		WHERE user_id = ? AND workout_date <= ?
		ORDER BY workout_date DESC, id DESC
	`, userID.String(), until.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWorkoutProgress(rows)
}

func scanWorkoutProgress(rows *sql.Rows) ([]WorkoutProgress, error) {
	var out []WorkoutProgress
	for rows.Next() {
		var p WorkoutProgress
		var userID, workoutDate, weekStart string
		err := rows.Scan(&p.ID, &userID, &p.ExerciseName, &p.WeightKg, &p.Sets, &p.Reps,
			&p.BodyWeight, &workoutDate, &weekStart, &p.DayOfWeek)
		if err != nil {
			return nil, err
		}
		if p.UserID, err = uuid.Parse(userID); err != nil {
			return nil, fmt.Errorf("parsing user id %q: %w", userID, err)
		}
		if p.WorkoutDate, err = parseDate(workoutDate); err != nil {
			return nil, err
		}
		if p.WeekStartDate, err = parseDate(weekStart); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
