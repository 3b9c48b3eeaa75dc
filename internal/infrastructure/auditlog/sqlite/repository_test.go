package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory audit repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.AuditConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func testEntry(platform entities.Platform, outcome entities.RunOutcome) *entities.AuditEntry {
	return &entities.AuditEntry{
		Platform: platform,
		Outcome:  outcome,
		Diff: entities.ProfileDiff{
			Platform: platform,
			Fields: []entities.FieldDiff{
				{Field: entities.FieldHeadline, Kind: entities.DiffAdded, After: "Expert Go Developer"},
			},
		},
	}
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.AuditConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.AuditConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	var count int
	err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='audit_entries'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Idempotent
	require.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestRepository_Append(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("assigns id and timestamp", func(t *testing.T) {
		entry := testEntry(entities.PlatformUpwork, entities.OutcomeRunManual)

		id, err := repo.Append(ctx, entry)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("preserves a provided id", func(t *testing.T) {
		entry := testEntry(entities.PlatformUpwork, entities.OutcomeRunManual)
		entry.ID = "fixed-id"

		id, err := repo.Append(ctx, entry)
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", id)
	})

	t.Run("nil entry rejected", func(t *testing.T) {
		_, err := repo.Append(ctx, nil)
		require.Error(t, err)
	})
}

func TestRepository_Query(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []*entities.AuditEntry{
		testEntry(entities.PlatformLinkedIn, entities.OutcomeRunManual),
		testEntry(entities.PlatformUpwork, entities.OutcomeRunApplied),
		testEntry(entities.PlatformUpwork, entities.OutcomeRunPartial),
	}
	for i, entry := range seed {
		entry.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := repo.Append(ctx, entry)
		require.NoError(t, err)
	}

	t.Run("newest first", func(t *testing.T) {
		entries, err := repo.Query(ctx, "", 10)
		require.NoError(t, err)

		require.Len(t, entries, 3)
		assert.Equal(t, entities.OutcomeRunPartial, entries[0].Outcome)
		assert.Equal(t, entities.OutcomeRunApplied, entries[1].Outcome)
		assert.Equal(t, entities.OutcomeRunManual, entries[2].Outcome)
	})

	t.Run("platform filter", func(t *testing.T) {
		entries, err := repo.Query(ctx, entities.PlatformUpwork, 10)
		require.NoError(t, err)

		require.Len(t, entries, 2)
		for _, entry := range entries {
			assert.Equal(t, entities.PlatformUpwork, entry.Platform)
		}
	})

	t.Run("limit clamped", func(t *testing.T) {
		entries, err := repo.Query(ctx, "", 1)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("diff round-trips", func(t *testing.T) {
		entries, err := repo.Query(ctx, entities.PlatformLinkedIn, 1)
		require.NoError(t, err)

		require.Len(t, entries, 1)
		require.Len(t, entries[0].Diff.Fields, 1)
		fd := entries[0].Diff.Fields[0]
		assert.Equal(t, entities.FieldHeadline, fd.Field)
		assert.Equal(t, entities.DiffAdded, fd.Kind)
		assert.Equal(t, "Expert Go Developer", fd.After)
	})
}

func TestRepository_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	ctx := context.Background()

	repo, err := NewRepository(config.AuditConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))

	id, err := repo.Append(ctx, testEntry(entities.PlatformUpwork, entities.OutcomeRunApplied))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := NewRepository(config.AuditConfig{Path: path})
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.EnsureSchema(ctx))

	entries, err := reopened.Query(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, entities.OutcomeRunApplied, entries[0].Outcome)
}
