// Package handlers contains application use case handlers: the three
// operations the pipeline exposes to any front end.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
)

// ExtractHandler handles portfolio extraction.
type ExtractHandler struct {
	extractor ports.Extractor
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(extractor ports.Extractor) *ExtractHandler {
	return &ExtractHandler{extractor: extractor}
}

// ExtractOptions controls extraction behavior.
type ExtractOptions struct {
	// UseCache permits serving a cached extraction within its TTL.
	UseCache bool
}

// ExtractResult contains the result of extraction.
type ExtractResult struct {
	Record  *entities.PortfolioRecord
	Message string
}

// Handle extracts the portfolio from a source URL. Extraction failures
// abort the run before any generation happens.
func (h *ExtractHandler) Handle(ctx context.Context, sourceURL string, opts ExtractOptions) (*ExtractResult, error) {
	if sourceURL == "" {
		return nil, fmt.Errorf("source URL is required")
	}

	record, err := h.extractor.Extract(ctx, sourceURL, opts.UseCache)
	if err != nil {
		return nil, err
	}

	message := "Fresh data extracted"
	if record.FromCache {
		message = "Cached data retrieved"
	}
	return &ExtractResult{Record: record, Message: message}, nil
}
