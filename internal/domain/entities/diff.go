package entities

import "time"

// DiffKind classifies a field-level change.
type DiffKind string

const (
	// DiffAdded means the field has no live before-state.
	DiffAdded DiffKind = "added"
	// DiffChanged means the field differs from the live state.
	DiffChanged DiffKind = "changed"
)

// FieldOutcome records what happened to one field during application.
type FieldOutcome string

const (
	// OutcomePending means the field has not been attempted yet.
	OutcomePending FieldOutcome = ""
	// OutcomeApplied means the automated update succeeded.
	OutcomeApplied FieldOutcome = "applied"
	// OutcomeFailed means the automated update failed; other fields continue.
	OutcomeFailed FieldOutcome = "failed"
	// OutcomeSkipped means the run was cancelled before this field.
	OutcomeSkipped FieldOutcome = "skipped"
)

// FieldDiff is one attribute-level before/after comparison. It drives both
// display and automated application, and carries the per-field outcome
// after an automated run.
type FieldDiff struct {
	Field  FieldName `json:"field"`
	Kind   DiffKind  `json:"kind"`
	Before string    `json:"before,omitempty"`
	After  string    `json:"after,omitempty"`

	// SkillsAdded holds the set-wise additions for the skills field:
	// candidate skills not present in the live snapshot, compared
	// case-insensitively after trimming.
	SkillsAdded []string `json:"skills_added,omitempty"`

	Outcome FieldOutcome `json:"outcome,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ProfileDiff is an ordered sequence of field diffs for one platform,
// in the platform's canonical field order.
type ProfileDiff struct {
	Platform    Platform    `json:"platform"`
	GeneratedAt time.Time   `json:"generated_at"`
	AppliedAt   *time.Time  `json:"applied_at,omitempty"`
	Fields      []FieldDiff `json:"fields"`
}

// Empty reports whether the diff proposes no changes.
func (d *ProfileDiff) Empty() bool {
	return len(d.Fields) == 0
}
