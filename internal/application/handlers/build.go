package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
	"github.com/ersonp/prosync/internal/domain/services"
)

// BuildHandler runs the full profile build pipeline for one platform:
// generation, best-effort live snapshot, diff, application, audit.
type BuildHandler struct {
	builder  *services.BuildService
	differ   *services.DiffService
	applier  *services.ApplyService
	snapshot ports.SnapshotFetcher
	audit    ports.AuditLog
}

// NewBuildHandler creates a new build handler.
func NewBuildHandler(
	builder *services.BuildService,
	differ *services.DiffService,
	applier *services.ApplyService,
	snapshot ports.SnapshotFetcher,
	audit ports.AuditLog,
) *BuildHandler {
	return &BuildHandler{
		builder:  builder,
		differ:   differ,
		applier:  applier,
		snapshot: snapshot,
		audit:    audit,
	}
}

// BuildRequest is one profile build request.
type BuildRequest struct {
	Platform entities.Platform
	Record   *entities.PortfolioRecord

	// ProfileURL locates the live profile for snapshotting and is
	// recorded in the audit entry.
	ProfileURL string

	// Credentials switch the run from rendering to automation. They are
	// held only for the duration of the run.
	Credentials entities.Credentials

	// Taxonomy is the platform skill taxonomy for skill ranking.
	Taxonomy []string
}

// BuildResult is always inspectable: partial success surfaces through
// the candidate's field issues and the diff's per-field outcomes, never
// as a bare error.
type BuildResult struct {
	Candidate *entities.CandidateProfile
	Diff      entities.ProfileDiff
	State     entities.RunState
	Outcome   entities.RunOutcome

	// SnapshotUsed reports whether a live snapshot served as the diff
	// baseline; without one the diff is purely additive.
	SnapshotUsed bool

	// AuditID is the persisted audit entry id.
	AuditID string

	// ApplyErr describes an authentication failure, empty otherwise.
	ApplyErr string
}

// Handle runs the pipeline stages in order. The record must already be
// extracted; generation failures degrade per field, application failures
// degrade per field, and the audit log records the outcome either way.
func (h *BuildHandler) Handle(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	// Credentials never outlive the run, whatever the exit path.
	defer func() { req.Credentials = entities.Credentials{} }()

	if req.Record == nil {
		return nil, fmt.Errorf("portfolio record is required")
	}
	platform, err := entities.ParsePlatform(string(req.Platform))
	if err != nil {
		return nil, err
	}
	req.Platform = platform

	candidate, err := h.builder.BuildCandidate(ctx, req.Platform, req.Record, req.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("building candidate profile: %w", err)
	}

	// Snapshot absence is a normal outcome: diffing degrades to additive.
	var live *entities.LiveSnapshot
	if req.ProfileURL != "" && h.snapshot != nil {
		if snap, err := h.snapshot.FetchLiveSnapshot(ctx, req.Platform, req.ProfileURL); err == nil {
			live = snap
		}
	}

	diff := h.differ.Diff(candidate, live)

	applied := h.applier.Apply(ctx, candidate, diff, req.Credentials)

	result := &BuildResult{
		Candidate:    candidate,
		Diff:         applied.Diff,
		State:        applied.State,
		Outcome:      outcomeForState(applied.State),
		SnapshotUsed: live != nil,
		ApplyErr:     applied.Err,
	}

	entry := &entities.AuditEntry{
		Platform:   req.Platform,
		ProfileURL: req.ProfileURL,
		Outcome:    result.Outcome,
		FromCache:  req.Record.FromCache,
		Diff:       applied.Diff,
	}
	auditID, err := h.audit.Append(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("recording audit entry: %w", err)
	}
	result.AuditID = auditID

	return result, nil
}

// outcomeForState maps terminal run states to audit outcomes.
func outcomeForState(state entities.RunState) entities.RunOutcome {
	switch state {
	case entities.StateApplied:
		return entities.OutcomeRunApplied
	case entities.StatePartiallyApplied:
		return entities.OutcomeRunPartial
	case entities.StateFailed:
		return entities.OutcomeRunFailed
	default:
		return entities.OutcomeRunManual
	}
}
