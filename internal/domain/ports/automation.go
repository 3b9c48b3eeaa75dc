package ports

import (
	"context"

	"github.com/ersonp/prosync/internal/domain/entities"
)

// Automation opens authenticated sessions against a platform's profile
// editing UI. A session is exclusively owned by the run that opened it.
type Automation interface {
	// OpenSession logs into the platform. A login failure is reported as
	// entities.ErrAuthFailed (possibly wrapped).
	OpenSession(ctx context.Context, platform entities.Platform, creds entities.Credentials) (AutomationSession, error)
}

// AutomationSession is one logged-in browser context. Field updates on a
// session run sequentially: they share navigation state.
type AutomationSession interface {
	// UpdateField performs one atomic automated update of a profile field.
	UpdateField(ctx context.Context, field entities.FieldName, value string) error

	// Close releases the session. Invoked on every exit path.
	Close() error
}

// SnapshotFetcher observes a platform's current profile state,
// best-effort. Absence is normal: implementations return
// entities.ErrSnapshotUnavailable (possibly wrapped) and the pipeline
// degrades to a no-before diff.
type SnapshotFetcher interface {
	FetchLiveSnapshot(ctx context.Context, platform entities.Platform, profileURL string) (*entities.LiveSnapshot, error)
}
