package entities

import "time"

// RunOutcome is the overall outcome persisted with an audit entry.
type RunOutcome string

const (
	// OutcomeRunManual means content was rendered for manual entry.
	OutcomeRunManual RunOutcome = "manual"
	// OutcomeRunApplied means every field was applied automatically.
	OutcomeRunApplied RunOutcome = "applied"
	// OutcomeRunPartial means some fields failed or were skipped.
	OutcomeRunPartial RunOutcome = "partial"
	// OutcomeRunFailed means the run failed before applying anything.
	OutcomeRunFailed RunOutcome = "failed"
)

// AuditEntry is one persisted profile diff plus its outcome. Entries are
// append-only and never mutated after creation; corrections are new
// entries.
type AuditEntry struct {
	ID         string      `json:"id"`
	Platform   Platform    `json:"platform"`
	ProfileURL string      `json:"profile_url,omitempty"`
	Outcome    RunOutcome  `json:"outcome"`
	FromCache  bool        `json:"from_cache,omitempty"`
	Diff       ProfileDiff `json:"diff"`
	CreatedAt  time.Time   `json:"created_at"`
}
