package web

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ersonp/prosync/internal/domain/entities"
)

// cache is a file-backed extraction cache, one JSON file per source URL.
// Cache policy is the adapter's concern; the pipeline only observes the
// FromCache marker on returned records.
type cache struct {
	dir string
}

type cacheEnvelope struct {
	SourceURL string                   `json:"source_url"`
	CachedAt  time.Time                `json:"cached_at"`
	Record    entities.PortfolioRecord `json:"record"`
}

func newCache(dir string) *cache {
	return &cache{dir: dir}
}

// get returns a cached record if one exists and is younger than ttl.
func (c *cache) get(sourceURL string, ttl time.Duration) (*entities.PortfolioRecord, bool) {
	if c.dir == "" {
		return nil, false
	}

	data, err := os.ReadFile(c.path(sourceURL))
	if err != nil {
		return nil, false
	}

	var envelope cacheEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		// A corrupt cache file is treated as a miss and overwritten later.
		return nil, false
	}
	if timeNow().Sub(envelope.CachedAt) > ttl {
		return nil, false
	}

	record := envelope.Record
	return &record, true
}

// put stores a record, best-effort. Cache failures never fail extraction.
func (c *cache) put(sourceURL string, record *entities.PortfolioRecord) {
	if c.dir == "" || record == nil {
		return
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return
	}

	envelope := cacheEnvelope{
		SourceURL: sourceURL,
		CachedAt:  timeNow().UTC(),
		Record:    *record,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(c.path(sourceURL), data, 0644)
}

func (c *cache) path(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:8])+".json")
}
