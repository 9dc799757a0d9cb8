package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrProgramItemNotFound is returned when a program item doesn't exist
var ErrProgramItemNotFound = errors.New("program item not found")

const programColumns = `id, user_id, exercise_name, sets, reps, weight_kg, day_of_week, muscle_group`

// AddProgramItem inserts a program item and sets its ID
func (db *DB) AddProgramItem(item *ProgramItem) error {
	result, err := db.Exec(`
		INSERT INTO program_items (user_id, exercise_name, sets, reps, weight_kg, day_of_week, muscle_group)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, item.UserID.String(), item.ExerciseName, item.Sets, item.Reps, item.WeightKg, item.DayOfWeek, item.MuscleGroup)
	if err != nil {
		return fmt.Errorf("inserting program item: %w", err)
	}
	item.ID, err = result.LastInsertId()
	return err
}

// GetProgramItem retrieves a program item by ID
func (db *DB) GetProgramItem(id int64) (*ProgramItem, error) {
	row := db.QueryRow(`SELECT `+programColumns+` FROM program_items WHERE id = ?`, id)
	item, err := scanProgramItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProgramItemNotFound
	}
	return item, err
}

// ListProgramItems returns a user's whole program ordered by day then ID
func (db *DB) ListProgramItems(userID uuid.UUID) ([]ProgramItem, error) {
	rows, err := db.Query(`
		SELECT `+programColumns+` FROM program_items
		WHERE user_id = ?
		ORDER BY day_of_week, id
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProgramItems(rows)
}

// UpdateProgramItem overwrites a program item
func (db *DB) UpdateProgramItem(item *ProgramItem) error {
	result, err := db.Exec(`
		UPDATE program_items SET
			exercise_name = ?, sets = ?, reps = ?, weight_kg = ?, day_of_week = ?, muscle_group = ?
		WHERE id = ? AND user_id = ?
	`, item.ExerciseName, item.Sets, item.Reps, item.WeightKg, item.DayOfWeek, item.MuscleGroup,
		item.ID, item.UserID.String())
	if err != nil {
		return err
	}
	return expectAffected(result, ErrProgramItemNotFound)
}

// UpdateProgramItemLoad records the latest weight, sets and reps for an item
func (db *DB) UpdateProgramItemLoad(id int64, weightKg float64, sets int, reps string) error {
	result, err := db.Exec(`
		UPDATE program_items SET weight_kg = ?, sets = ?, reps = ?
		WHERE id = ?
	`, weightKg, sets, reps, id)
	if err != nil {
		return err
	}
	return expectAffected(result, ErrProgramItemNotFound)
}

// DeleteProgramItem removes one item from a user's program
func (db *DB) DeleteProgramItem(userID uuid.UUID, id int64) error {
	result, err := db.Exec(`DELETE FROM program_items WHERE id = ? AND user_id = ?`, id, userID.String())
	if err != nil {
		return err
	}
	return expectAffected(result, ErrProgramItemNotFound)
}

// ReplaceProgram swaps a user's whole program for items in a single transaction
func (db *DB) ReplaceProgram(userID uuid.UUID, items []ProgramItem) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM program_items WHERE user_id = ?`, userID.String()); err != nil {
		return fmt.Errorf("clearing program: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO program_items (user_id, exercise_name, sets, reps, weight_kg, day_of_week, muscle_group)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.Exec(userID.String(), item.ExerciseName, item.Sets, item.Reps,
			item.WeightKg, item.DayOfWeek, item.MuscleGroup)
		if err != nil {
			return fmt.Errorf("inserting %q on day %d: %w", item.ExerciseName, item.DayOfWeek, err)
		}
	}

	return tx.Commit()
}

func scanProgramItem(row scanner) (*ProgramItem, error) {
	var item ProgramItem
	var userID string
	err := row.Scan(&item.ID, &userID, &item.ExerciseName, &item.Sets, &item.Reps,
		&item.WeightKg, &item.DayOfWeek, &item.MuscleGroup)
	if err != nil {
		return nil, err
	}
	if item.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parsing user id %q: %w", userID, err)
	}
	return &item, nil
}

func scanProgramItems(rows *sql.Rows) ([]ProgramItem, error) {
	var items []ProgramItem
	for rows.Next() {
		item, err := scanProgramItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
