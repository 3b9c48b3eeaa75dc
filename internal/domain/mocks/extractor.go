package mocks

import (
	"context"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
)

// Extractor is a mock implementation of ports.Extractor.
type Extractor struct {
	Record *entities.PortfolioRecord
	Err    error

	// LastSource and LastUseCache record the most recent call.
	LastSource   string
	LastUseCache bool
}

// Extract returns the configured record or error.
func (m *Extractor) Extract(ctx context.Context, sourceURL string, useCache bool) (*entities.PortfolioRecord, error) {
	m.LastSource = sourceURL
	m.LastUseCache = useCache
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Record, nil
}

var _ ports.Extractor = (*Extractor)(nil)
