package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ecopathway/ecocoach/internal/coach"
	"github.com/ecopathway/ecocoach/internal/db"
	"github.com/ecopathway/ecocoach/internal/repository"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

// stubGenerator is a canned Generator for exercising the encouragement path.
type stubGenerator struct {
	line string
	err  error
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.line, g.err
}

func newTestCoachService(t *testing.T, gen Generator) *CoachService {
	t.Helper()

	database := newTestDB(t)
	tracker := NewTrackerService(repository.NewHabitRepository(database))
	return NewCoachService(
		repository.NewProfileRepository(database),
		tracker,
		coach.NewEngine(1, 3),
		gen,
	)
}
