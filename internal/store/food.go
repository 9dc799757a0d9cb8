package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const foodColumns = `id, user_id, food_name, calories, protein, carbs, fat, eaten_on`

// AddFood inserts a food log entry and sets its ID
func (db *DB) AddFood(f *FoodLog) error {
	result, err := db.Exec(`
		INSERT INTO food_log (user_id, food_name, calories, protein, carbs, fat, eaten_on)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.UserID.String(), f.FoodName, f.Calories, f.Protein, f.Carbs, f.Fat, f.EatenOn.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("inserting food: %w", err)
	}
	f.ID, err = result.LastInsertId()
	return err
}

// ListFoodLog returns a user's food log, newest first
func (db *DB) ListFoodLog(userID uuid.UUID) ([]FoodLog, error) {
	rows, err := db.Query(`
		SELECT `+foodColumns+` FROM food_log
		WHERE user_id = ?
		ORDER BY eaten_on DESC, id DESC
	`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFoodLog(rows)
}

// ListFoodLogOn returns what a user ate on a single day
func (db *DB) ListFoodLogOn(userID uuid.UUID, day time.Time) ([]FoodLog, error) {
	rows, err := db.Query(`
		SELECT `+foodColumns+` FROM food_log
		WHERE user_id = ? AND eaten_on = ?
		ORDER BY id
	`, userID.String(), day.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFoodLog(rows)
}

func scanFoodLog(rows *sql.Rows) ([]FoodLog, error) {
	var out []FoodLog
	for rows.Next() {
		var f FoodLog
		var userID, eatenOn string
		if err := rows.Scan(&f.ID, &userID, &f.FoodName, &f.Calories, &f.Protein, &f.Carbs, &f.Fat, &eatenOn); err != nil {
			return nil, err
		}
		var err error
		if f.UserID, err = uuid.Parse(userID); err != nil {
			return nil, fmt.Errorf("parsing user id %q: %w", userID, err)
		}
		if f.EatenOn, err = parseDate(eatenOn); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
