// Package ports defines interfaces for external collaborators. The
// pipeline depends on these narrow contracts; the scraping and automation
// drivers behind them are external.
package ports

import (
	"context"

	"github.com/ersonp/prosync/internal/domain/entities"
)

// Extractor turns a portfolio source into the canonical record.
// Extraction is all-or-nothing per run: implementations never return a
// partially-populated record. Cache policy belongs to the implementation;
// the pipeline only observes the record's FromCache marker.
type Extractor interface {
	Extract(ctx context.Context, sourceURL string, useCache bool) (*entities.PortfolioRecord, error)
}
