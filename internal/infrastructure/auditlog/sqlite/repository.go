// Package sqlite provides a SQLite implementation of the AuditLog
// interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/infrastructure/config"
)

// MaxPageSize clamps the query limit.
const MaxPageSize = 100

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.AuditLog using SQLite. Appends are
// serialized through a mutex so insertion order stays chronological;
// reads run lock-free against a WAL snapshot.
type Repository struct {
	db   *sql.DB
	path string

	appendMu sync.Mutex
}

// NewRepository creates a new SQLite audit log repository.
func NewRepository(cfg config.AuditConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("audit database path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist. The
// schema is append-only: no update or delete statement exists in this
// package, corrections are new entries.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Applied and proposed profile diffs, one row per run
	CREATE TABLE IF NOT EXISTS audit_entries (
		id TEXT PRIMARY KEY,
		platform TEXT NOT NULL,
		profile_url TEXT,
		outcome TEXT NOT NULL,
		from_cache INTEGER NOT NULL DEFAULT 0,
		diff TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_platform ON audit_entries(platform);
	CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_entries(created_at);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating audit schema: %w", err)
	}
	return nil
}

// Append persists one entry and returns its id. Appends are serialized
// (single-writer discipline) to preserve insertion-order semantics.
func (r *Repository) Append(ctx context.Context, entry *entities.AuditEntry) (string, error) {
	if entry == nil {
		return "", errors.New("audit entry is required")
	}

	r.appendMu.Lock()
	defer r.appendMu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = timeNow().UTC()
	}

	diffJSON, err := json.Marshal(entry.Diff)
	if err != nil {
		return "", fmt.Errorf("marshaling diff: %w", err)
	}

	query := `
		INSERT INTO audit_entries (id, platform, profile_url, outcome, from_cache, diff, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Platform),
		entry.ProfileURL,
		string(entry.Outcome),
		boolToInt(entry.FromCache),
		string(diffJSON),
		entry.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("appending audit entry: %w", err)
	}
	return entry.ID, nil
}

// Query returns entries most recent first. An empty platform matches all
// platforms; limit clamps to MaxPageSize and defaults to 10 when
// non-positive.
func (r *Repository) Query(ctx context.Context, platform entities.Platform, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	query := `
		SELECT id, platform, profile_url, outcome, from_cache, diff, created_at
		FROM audit_entries
	`
	args := []any{}
	if platform != "" {
		query += ` WHERE platform = ?`
		args = append(args, string(platform))
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.AuditEntry, 0, limit)
	for rows.Next() {
		var entry entities.AuditEntry
		var platformStr, outcomeStr, diffJSON string
		var profileURL sql.NullString
		var fromCache int

		if err := rows.Scan(
			&entry.ID,
			&platformStr,
			&profileURL,
			&outcomeStr,
			&fromCache,
			&diffJSON,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.Platform = entities.Platform(platformStr)
		entry.Outcome = entities.RunOutcome(outcomeStr)
		entry.ProfileURL = profileURL.String
		entry.FromCache = fromCache != 0

		if err := json.Unmarshal([]byte(diffJSON), &entry.Diff); err != nil {
			return nil, fmt.Errorf("parsing diff for entry %s: %w", entry.ID, err)
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}
	return entries, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
