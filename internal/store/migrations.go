package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Profiles (one row per registered user)
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			gender TEXT NOT NULL,
			age INTEGER NOT NULL,
			user_height REAL NOT NULL,
			user_weight REAL NOT NULL,
			activity_level TEXT NOT NULL,
			carb_pct REAL NOT NULL DEFAULT 45,
			protein_pct REAL NOT NULL DEFAULT 30,
			fat_pct REAL NOT NULL DEFAULT 25,
			tdee REAL,
			carb_g INTEGER,
			protein_g INTEGER,
			fat_g INTEGER,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		// Weekly program (day_of_week 1=Monday .. 7=Sunday)
		`CREATE TABLE IF NOT EXISTS program_items (
			id INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			exercise_name TEXT NOT NULL,
			sets INTEGER NOT NULL DEFAULT 0,
			reps TEXT NOT NULL DEFAULT '',
			weight_kg REAL NOT NULL DEFAULT 0,
			day_of_week INTEGER NOT NULL CHECK (day_of_week BETWEEN 1 AND 7),
			muscle_group TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES profiles(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_program_items_user_day ON program_items(user_id, day_of_week)`,

		// Logged workout progress
		`CREATE TABLE IF NOT EXISTS workout_progress (
			id INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			exercise_name TEXT NOT NULL,
			weight_kg REAL NOT NULL DEFAULT 0,
			sets INTEGER NOT NULL DEFAULT 0,
			reps TEXT NOT NULL DEFAULT '',
			body_weight REAL NOT NULL DEFAULT 0,
			workout_date TEXT NOT NULL,
			week_start_date TEXT NOT NULL,
			day_of_week INTEGER NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES profiles(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_workout_progress_user_date ON workout_progress(user_id, workout_date)`,

		// Food log
		`CREATE TABLE IF NOT EXISTS food_log (
			id INTEGER PRIMARY KEY,
			user_id TEXT NOT NULL,
			food_name TEXT NOT NULL,
			calories REAL NOT NULL DEFAULT 0,
			protein REAL NOT NULL DEFAULT 0,
			carbs REAL NOT NULL DEFAULT 0,
			fat REAL NOT NULL DEFAULT 0,
			eaten_on TEXT NOT NULL,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES profiles(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_food_log_user_eaten ON food_log(user_id, eaten_on)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
