package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"gymbro/internal/analysis"
	"gymbro/internal/metrics"
	"gymbro/internal/store"
)

// openTestDB creates an in-memory SQLite database with migrations applied
func openTestDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.OpenInMemory()
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func newTestServices(t *testing.T) (*TrackerService, *QueryService, *metrics.Manager) {
	t.Helper()

	db := openTestDB(t)
	m := metrics.NewTestManager()
	tracker := NewTrackerService(db, nil, analysis.DefaultMacroSplit(), m)
	query := NewQueryService(db, nil, nil)
	return tracker, query, m
}

func testProfileInput() ProfileInput {
	return ProfileInput{
		FullName:      "Test Lifter",
		Sex:           "male",
		Age:           28,
		HeightCm:      180,
		WeightKg:      75,
		ActivityLevel: "moderate",
	}
}

func registerTestProfile(t *testing.T, tracker *TrackerService) uuid.UUID {
	t.Helper()

	p, err := tracker.Register(testProfileInput())
	require.NoError(t, err)
	return p.ID
}

func date(s string) time.Time {
	t, err := analysis.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}
