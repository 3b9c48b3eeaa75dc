package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/mocks"
)

func TestBuildService_BuildCandidate(t *testing.T) {
	ctx := context.Background()

	t.Run("generates every platform field", func(t *testing.T) {
		backend := &mocks.TextBackend{
			Responses: []string{
				"Expert Go Developer",
				"I build reliable backend systems.",
				"Go\nPostgreSQL\nDocker",
				"65",
			},
		}
		g, _ := newTestGenerator(backend)
		builder := NewBuildService(g)

		candidate, err := builder.BuildCandidate(ctx, entities.PlatformUpwork, testRecord(), nil)
		require.NoError(t, err)

		assert.Equal(t, entities.PlatformUpwork, candidate.Platform)
		assert.False(t, candidate.GeneratedAt.IsZero())
		assert.Equal(t, "Expert Go Developer", candidate.Headline)
		assert.Equal(t, "I build reliable backend systems.", candidate.About)
		assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, candidate.Skills)
		assert.Equal(t, 65, candidate.HourlyRate)
		assert.Empty(t, candidate.FieldIssues)
	})

	t.Run("linkedin skips the hourly rate", func(t *testing.T) {
		backend := &mocks.TextBackend{Response: "generated"}
		g, _ := newTestGenerator(backend)
		builder := NewBuildService(g)

		candidate, err := builder.BuildCandidate(ctx, entities.PlatformLinkedIn, testRecord(), nil)
		require.NoError(t, err)

		assert.Zero(t, candidate.HourlyRate)
		assert.Equal(t, 3, backend.Calls(), "headline, about, skills")
	})

	t.Run("invalid record rejected before generation", func(t *testing.T) {
		backend := &mocks.TextBackend{Response: "generated"}
		g, _ := newTestGenerator(backend)
		builder := NewBuildService(g)

		_, err := builder.BuildCandidate(ctx, entities.PlatformUpwork, &entities.PortfolioRecord{}, nil)
		require.Error(t, err)
		assert.Zero(t, backend.Calls())
	})

	t.Run("unavailable backend aborts the build", func(t *testing.T) {
		backend := &mocks.TextBackend{ReadyErr: errors.New("connection refused")}
		g, _ := newTestGenerator(backend)
		builder := NewBuildService(g)

		_, err := builder.BuildCandidate(ctx, entities.PlatformUpwork, testRecord(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrBackendUnavailable)
	})

	t.Run("failed task degrades the field, not the build", func(t *testing.T) {
		backend := &mocks.TextBackend{
			GenerateErr: errors.New("bad request"),
			ErrCount:    1,
			Responses: []string{
				"",
				"I build reliable backend systems.",
				"Go\nDocker",
				"65",
			},
		}
		g, _ := newTestGenerator(backend)
		builder := NewBuildService(g)

		candidate, err := builder.BuildCandidate(ctx, entities.PlatformUpwork, testRecord(), nil)
		require.NoError(t, err)

		assert.Empty(t, candidate.Headline)
		require.Contains(t, candidate.FieldIssues, entities.FieldTitle)
		assert.Contains(t, candidate.FieldIssues[entities.FieldTitle], "bad request")

		assert.Equal(t, "I build reliable backend systems.", candidate.About)
		assert.Equal(t, []string{"Go", "Docker"}, candidate.Skills)
		assert.Equal(t, 65, candidate.HourlyRate)
	})

	t.Run("cancelled context aborts the build", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)

		backend := &mocks.TextBackend{GenerateErr: context.Canceled, ErrCount: 1}
		g, _ := newTestGenerator(backend)
		builder := NewBuildService(g)
		cancel()

		_, err := builder.BuildCandidate(cancelCtx, entities.PlatformUpwork, testRecord(), nil)
		require.Error(t, err)
	})
}
