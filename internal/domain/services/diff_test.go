package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/prosync/internal/domain/entities"
)

func testCandidate() *entities.CandidateProfile {
	return &entities.CandidateProfile{
		Platform:    entities.PlatformUpwork,
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Headline:    "Expert Go Developer",
		About:       "I build reliable backend systems.",
		Skills:      []string{"Go", "PostgreSQL", "Docker"},
		HourlyRate:  65,
	}
}

func snapshotFrom(c *entities.CandidateProfile) *entities.LiveSnapshot {
	return &entities.LiveSnapshot{
		Platform:   c.Platform,
		ObservedAt: time.Now(),
		Headline:   c.Headline,
		About:      c.About,
		Skills:     append([]string(nil), c.Skills...),
		HourlyRate: c.HourlyRate,
	}
}

func TestDiffService_Diff(t *testing.T) {
	differ := NewDiffService()

	t.Run("no snapshot reports every field as added", func(t *testing.T) {
		candidate := testCandidate()

		diff := differ.Diff(candidate, nil)

		require.Len(t, diff.Fields, 4)
		for _, fd := range diff.Fields {
			assert.Equal(t, entities.DiffAdded, fd.Kind)
			assert.Empty(t, fd.Before)
			assert.NotEmpty(t, fd.After)
		}
	})

	t.Run("identical snapshot yields empty diff", func(t *testing.T) {
		candidate := testCandidate()

		diff := differ.Diff(candidate, snapshotFrom(candidate))

		assert.True(t, diff.Empty())
	})

	t.Run("changed fields carry before and after", func(t *testing.T) {
		candidate := testCandidate()
		live := snapshotFrom(candidate)
		live.Headline = "Go Developer"
		live.HourlyRate = 50

		diff := differ.Diff(candidate, live)

		require.Len(t, diff.Fields, 2)
		assert.Equal(t, entities.FieldTitle, diff.Fields[0].Field)
		assert.Equal(t, entities.DiffChanged, diff.Fields[0].Kind)
		assert.Equal(t, "Go Developer", diff.Fields[0].Before)
		assert.Equal(t, "Expert Go Developer", diff.Fields[0].After)
		assert.Equal(t, entities.FieldHourlyRate, diff.Fields[1].Field)
		assert.Equal(t, "50", diff.Fields[1].Before)
		assert.Equal(t, "65", diff.Fields[1].After)
	})

	t.Run("skills compared case-insensitively as sets", func(t *testing.T) {
		candidate := testCandidate()
		candidate.Skills = []string{"go", " PostgreSQL ", "Kubernetes"}
		live := snapshotFrom(candidate)
		live.Skills = []string{"Go", "postgresql"}

		diff := differ.Diff(candidate, live)

		require.Len(t, diff.Fields, 1)
		fd := diff.Fields[0]
		assert.Equal(t, entities.FieldSkills, fd.Field)
		assert.Equal(t, entities.DiffChanged, fd.Kind)
		assert.Equal(t, []string{"Kubernetes"}, fd.SkillsAdded)
	})

	t.Run("live-only fields are never reported", func(t *testing.T) {
		candidate := testCandidate()
		candidate.About = ""
		candidate.Skills = nil
		live := snapshotFrom(candidate)
		live.About = "Existing platform-owned about text"
		live.Skills = []string{"Go"}
		live.Headline = candidate.Headline
		live.HourlyRate = candidate.HourlyRate

		diff := differ.Diff(candidate, live)

		assert.True(t, diff.Empty(), "nothing to add or change, nothing proposed for removal")
	})

	t.Run("fields follow canonical platform order", func(t *testing.T) {
		candidate := testCandidate()

		diff := differ.Diff(candidate, nil)

		var got []entities.FieldName
		for _, fd := range diff.Fields {
			got = append(got, fd.Field)
		}
		assert.Equal(t, []entities.FieldName{
			entities.FieldTitle,
			entities.FieldOverview,
			entities.FieldSkills,
			entities.FieldHourlyRate,
		}, got)
	})

	t.Run("fields missing from the candidate are skipped", func(t *testing.T) {
		candidate := testCandidate()
		candidate.About = ""
		candidate.HourlyRate = 0

		diff := differ.Diff(candidate, nil)

		require.Len(t, diff.Fields, 2)
		assert.Equal(t, entities.FieldTitle, diff.Fields[0].Field)
		assert.Equal(t, entities.FieldSkills, diff.Fields[1].Field)
	})

	t.Run("duplicate candidate skills collapse", func(t *testing.T) {
		candidate := testCandidate()
		candidate.Skills = []string{"Go", "go", "GO"}

		diff := differ.Diff(candidate, nil)

		require.Len(t, diff.Fields, 4)
		for _, fd := range diff.Fields {
			if fd.Field == entities.FieldSkills {
				assert.Equal(t, []string{"Go"}, fd.SkillsAdded)
			}
		}
	})
}
