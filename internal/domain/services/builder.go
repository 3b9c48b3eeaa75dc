package services

import (
	"context"
	"errors"
	"time"

	"github.com/ersonp/prosync/internal/domain/entities"
)

// BuildService generates a candidate profile from a portfolio record for
// one platform. A failed single-field generation yields an annotated
// empty field, not an aborted profile: the run degrades to partial
// content.
type BuildService struct {
	generator *Generator
	timeNow   func() time.Time // test seam
}

// NewBuildService creates a build service over the generator.
func NewBuildService(generator *Generator) *BuildService {
	return &BuildService{
		generator: generator,
		timeNow:   time.Now,
	}
}

// BuildCandidate generates every field the platform declares. Only a
// backend that is unavailable before first use, or a cancelled context,
// aborts the build; per-task generation failures are recorded on the
// candidate's FieldIssues and leave the field empty.
func (s *BuildService) BuildCandidate(ctx context.Context, platform entities.Platform, record *entities.PortfolioRecord, taxonomy []string) (*entities.CandidateProfile, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	candidate := &entities.CandidateProfile{
		Platform:    platform,
		GeneratedAt: s.timeNow(),
	}

	title, err := s.generator.GenerateTitle(ctx, record, platform)
	if err := degrade(ctx, candidate, platform.HeadlineField(), err); err != nil {
		return nil, err
	}
	candidate.Headline = title

	about, err := s.generator.GenerateOverview(ctx, record, platform)
	if err := degrade(ctx, candidate, platform.AboutField(), err); err != nil {
		return nil, err
	}
	candidate.About = about

	skills, err := s.generator.RankSkills(ctx, record, platform, taxonomy)
	if err := degrade(ctx, candidate, entities.FieldSkills, err); err != nil {
		return nil, err
	}
	candidate.Skills = skills

	if platform.UsesHourlyRate() {
		rate, err := s.generator.SuggestRate(ctx, record, platform)
		if err := degrade(ctx, candidate, entities.FieldHourlyRate, err); err != nil {
			return nil, err
		}
		candidate.HourlyRate = rate
	}

	return candidate, nil
}

// degrade classifies one field's generation error: backend
// unavailability and run cancellation are fatal to the build, anything
// else is annotated on the candidate and the build continues.
func degrade(ctx context.Context, candidate *entities.CandidateProfile, field entities.FieldName, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, entities.ErrBackendUnavailable) || ctx.Err() != nil {
		return err
	}
	candidate.AddIssue(field, err.Error())
	return nil
}
