package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
)

// Automation is a mock implementation of ports.Automation.
type Automation struct {
	// OpenErr is returned by OpenSession (authentication failure).
	OpenErr error
	// UpdateErrs maps field names to errors returned by UpdateField.
	UpdateErrs map[entities.FieldName]error
	// BlockOnUpdate makes each UpdateField block until the context
	// expires, simulating a hung automation driver.
	BlockOnUpdate bool

	mu       sync.Mutex
	Sessions []*AutomationSession
}

// OpenSession returns a recording session or the configured error.
func (m *Automation) OpenSession(ctx context.Context, platform entities.Platform, creds entities.Credentials) (ports.AutomationSession, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	session := &AutomationSession{parent: m, Platform: platform}
	m.mu.Lock()
	m.Sessions = append(m.Sessions, session)
	m.mu.Unlock()
	return session, nil
}

// AutomationSession records field updates for assertions.
type AutomationSession struct {
	parent   *Automation
	Platform entities.Platform

	mu      sync.Mutex
	Updates map[entities.FieldName]string
	Closed  bool
}

// UpdateField records the update or returns the configured per-field error.
func (s *AutomationSession) UpdateField(ctx context.Context, field entities.FieldName, value string) error {
	if s.parent.BlockOnUpdate {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := s.parent.UpdateErrs[field]; err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Updates == nil {
		s.Updates = make(map[entities.FieldName]string)
	}
	s.Updates[field] = value
	return nil
}

// Close marks the session closed.
func (s *AutomationSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

var _ ports.Automation = (*Automation)(nil)

// SnapshotFetcher is a mock implementation of ports.SnapshotFetcher.
type SnapshotFetcher struct {
	Snapshot *entities.LiveSnapshot
	Err      error
}

// FetchLiveSnapshot returns the configured snapshot or error. A nil
// snapshot with nil error reports entities.ErrSnapshotUnavailable, the
// normal absence outcome.
func (m *SnapshotFetcher) FetchLiveSnapshot(ctx context.Context, platform entities.Platform, profileURL string) (*entities.LiveSnapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Snapshot == nil {
		return nil, entities.ErrSnapshotUnavailable
	}
	return m.Snapshot, nil
}

var _ ports.SnapshotFetcher = (*SnapshotFetcher)(nil)
