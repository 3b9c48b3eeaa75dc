package entities

// RunState is the state of one change-application run.
type RunState string

const (
	// StatePending is the initial state before any work happens.
	StatePending RunState = "pending"
	// StateRendering means the run is producing display-only content.
	StateRendering RunState = "rendering"
	// StateAutomating means the run is driving an automated session.
	StateAutomating RunState = "automating"
	// StateRendered is terminal: content was produced for manual entry.
	StateRendered RunState = "rendered"
	// StateApplied is terminal: every field update succeeded.
	StateApplied RunState = "applied"
	// StatePartiallyApplied is terminal: some fields failed or were skipped.
	StatePartiallyApplied RunState = "partially_applied"
	// StateFailed is terminal: authentication failed, no fields attempted.
	StateFailed RunState = "failed"
)

// Terminal reports whether the state ends a run.
func (s RunState) Terminal() bool {
	switch s {
	case StateRendered, StateApplied, StatePartiallyApplied, StateFailed:
		return true
	}
	return false
}

// Credentials are platform login credentials. They live only in process
// memory for the duration of a run and are never serialized: the json
// tags exclude both fields so no marshaling path can leak them.
type Credentials struct {
	Username string `json:"-"`
	Password string `json:"-"`
}

// Present reports whether both credential fields are set.
func (c Credentials) Present() bool {
	return c.Username != "" && c.Password != ""
}

// String redacts the credentials in any formatted output.
func (c Credentials) String() string {
	return "credentials(redacted)"
}
