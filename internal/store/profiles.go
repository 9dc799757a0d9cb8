package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a profile doesn't exist
var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, full_name, gender, age, user_height, user_weight, activity_level,
	carb_pct, protein_pct, fat_pct, tdee, carb_g, protein_g, fat_g, created_at`

// CreateProfile inserts a new profile. A nil ID is replaced with a fresh one.
func (db *DB) CreateProfile(p *Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(`
		INSERT INTO profiles (
			id, full_name, gender, age, user_height, user_weight, activity_level,
			carb_pct, protein_pct, fat_pct, tdee, carb_g, protein_g, fat_g, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID.String(), p.FullName, p.Gender, p.Age, p.HeightCm, p.WeightKg, p.ActivityLevel,
		p.CarbPct, p.ProteinPct, p.FatPct, p.TDEE, p.CarbG, p.ProteinG, p.FatG,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID
func (db *DB) GetProfile(id uuid.UUID) (*Profile, error) {
	row := db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id.String())
	return scanProfile(row)
}

// ListProfiles returns all profiles ordered by creation time
func (db *DB) ListProfiles() ([]Profile, error) {
	rows, err := db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// UpdateProfile overwrites the editable fields and stored targets of a profile
func (db *DB) UpdateProfile(p *Profile) error {
	result, err := db.Exec(`
		UPDATE profiles SET
			full_name = ?, gender = ?, age = ?, user_height = ?, user_weight = ?,
			activity_level = ?, carb_pct = ?, protein_pct = ?, fat_pct = ?,
			tdee = ?, carb_g = ?, protein_g = ?, fat_g = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		p.FullName, p.Gender, p.Age, p.HeightCm, p.WeightKg,
		p.ActivityLevel, p.CarbPct, p.ProteinPct, p.FatPct,
		p.TDEE, p.CarbG, p.ProteinG, p.FatG,
		p.ID.String(),
	)
	if err != nil {
		return err
	}
	return expectAffected(result, ErrProfileNotFound)
}

// UpdateProfileWeight sets the current body weight of a profile
func (db *DB) UpdateProfileWeight(id uuid.UUID, weightKg float64) error {
	result, err := db.Exec(`
		UPDATE profiles SET user_weight = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, weightKg, id.String())
	if err != nil {
		return err
	}
	return expectAffected(result, ErrProfileNotFound)
}

// DeleteProfile removes a profile and, through cascades, everything it owns
func (db *DB) DeleteProfile(id uuid.UUID) error {
	result, err := db.Exec(`DELETE FROM profiles WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	return expectAffected(result, ErrProfileNotFound)
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*Profile, error) {
	var p Profile
	var id, createdAt string
	var tdee sql.NullFloat64
	var carb, protein, fat sql.NullInt64

	err := row.Scan(
		&id, &p.FullName, &p.Gender, &p.Age, &p.HeightCm, &p.WeightKg, &p.ActivityLevel,
		&p.CarbPct, &p.ProteinPct, &p.FatPct, &tdee, &carb, &protein, &fat, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parsing profile id %q: %w", id, err)
	}
	p.CreatedAt = parseTimestamp(createdAt)

	if tdee.Valid {
		p.TDEE = &tdee.Float64
	}
	p.CarbG = nullInt(carb)
	p.ProteinG = nullInt(protein)
	p.FatG = nullInt(fat)

	return &p, nil
}

// expectAffected maps a zero-row write to notFound
func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// parseTimestamp accepts both RFC3339 and SQLite's CURRENT_TIMESTAMP format
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
