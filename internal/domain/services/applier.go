package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
)

// DefaultFieldTimeout bounds one automated field update.
const DefaultFieldTimeout = 30 * time.Second

// ApplyResult is the outcome of one change-application run. It is always
// inspectable: partial failure surfaces as per-field outcomes on the
// diff, never as a bare error.
type ApplyResult struct {
	State entities.RunState
	Diff  entities.ProfileDiff

	// Err describes why the run failed outright (authentication), empty
	// otherwise.
	Err string
}

// ApplyService is the change-application state machine:
//
//	Pending → Rendering | Automating → Applied | PartiallyApplied | Rendered | Failed
//
// Without credentials the run renders display-only content. With
// credentials it drives an automated session, applying field diffs in
// canonical order with partial-failure semantics: one field failing is
// recorded and the run continues.
type ApplyService struct {
	automation   ports.Automation
	fieldTimeout time.Duration
	timeNow      func() time.Time // test seam
}

// NewApplyService creates an apply service over the automation
// collaborator. fieldTimeout bounds each field update; zero means the
// default.
func NewApplyService(automation ports.Automation, fieldTimeout time.Duration) *ApplyService {
	if fieldTimeout <= 0 {
		fieldTimeout = DefaultFieldTimeout
	}
	return &ApplyService{
		automation:   automation,
		fieldTimeout: fieldTimeout,
		timeNow:      time.Now,
	}
}

// Apply runs the state machine for one candidate and its diff. The
// credentials are held only for the duration of the call and discarded
// on every exit path; nothing in the result or the diff references them.
func (s *ApplyService) Apply(ctx context.Context, candidate *entities.CandidateProfile, diff entities.ProfileDiff, creds entities.Credentials) *ApplyResult {
	defer func() { creds = entities.Credentials{} }()

	if !creds.Present() {
		// Rendering path: no external side effects.
		return &ApplyResult{State: entities.StateRendered, Diff: diff}
	}

	session, err := s.automation.OpenSession(ctx, candidate.Platform, creds)
	if err != nil {
		// Authentication failure aborts the whole stage: no fields attempted.
		return &ApplyResult{
			State: entities.StateFailed,
			Diff:  diff,
			Err:   fmt.Errorf("%w: %v", entities.ErrAuthFailed, err).Error(),
		}
	}
	defer session.Close()

	cancelled := false
	failures := 0
	for i := range diff.Fields {
		fd := &diff.Fields[i]

		// Cancellation happens between field operations, never mid-operation.
		if cancelled || ctx.Err() != nil {
			cancelled = true
			fd.Outcome = entities.OutcomeSkipped
			continue
		}

		if err := s.updateField(ctx, session, fd.Field, fd.After); err != nil {
			failures++
			fd.Outcome = entities.OutcomeFailed
			fd.Error = (&entities.FieldUpdateError{Field: fd.Field, Err: err}).Error()
			continue
		}
		fd.Outcome = entities.OutcomeApplied
	}

	applied := s.timeNow()
	diff.AppliedAt = &applied

	state := entities.StateApplied
	if failures > 0 || cancelled {
		state = entities.StatePartiallyApplied
	}
	return &ApplyResult{State: state, Diff: diff}
}

// updateField performs one atomic field update guarded by the per-field
// timeout.
func (s *ApplyService) updateField(ctx context.Context, session ports.AutomationSession, field entities.FieldName, value string) error {
	fieldCtx, cancel := context.WithTimeout(ctx, s.fieldTimeout)
	defer cancel()
	return session.UpdateField(fieldCtx, field, value)
}
