package store

import (
	"database/sql"
	"fmt"
)

// OpenInMemory creates a migrated in-memory database.
// This is only intended for use in tests.
func OpenInMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	// Every pooled connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := prepare(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return &DB{sqlDB}, nil
}
