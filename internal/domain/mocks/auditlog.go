package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
)

// AuditLog is an in-memory mock implementation of ports.AuditLog.
type AuditLog struct {
	AppendErr error

	mu      sync.Mutex
	Entries []entities.AuditEntry
}

// Append stores the entry, assigning a sequential id.
func (m *AuditLog) Append(ctx context.Context, entry *entities.AuditEntry) (string, error) {
	if m.AppendErr != nil {
		return "", m.AppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("entry-%d", len(m.Entries)+1)
	}
	m.Entries = append(m.Entries, *entry)
	return entry.ID, nil
}

// Query returns stored entries most recent first.
func (m *AuditLog) Query(ctx context.Context, platform entities.Platform, limit int) ([]entities.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []entities.AuditEntry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if platform != "" && m.Entries[i].Platform != platform {
			continue
		}
		out = append(out, m.Entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Close is a no-op.
func (m *AuditLog) Close() error { return nil }

var _ ports.AuditLog = (*AuditLog)(nil)
