package ports

import (
	"context"

	"github.com/ersonp/prosync/internal/domain/entities"
)

// AuditLog is the append-only store of proposed and applied diffs.
// Appends are serialized (single-writer discipline) so insertion order is
// chronological; no update or delete operation exists.
type AuditLog interface {
	// Append persists one entry and returns its id.
	Append(ctx context.Context, entry *entities.AuditEntry) (string, error)

	// Query returns entries most recent first. An empty platform matches
	// all platforms; limit clamps to the store's maximum page size.
	Query(ctx context.Context, platform entities.Platform, limit int) ([]entities.AuditEntry, error)

	// Close releases the underlying store.
	Close() error
}
