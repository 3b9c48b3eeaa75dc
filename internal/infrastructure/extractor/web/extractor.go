// Package web provides a portfolio extractor over HTTP sources. JSON
// documents decode straight into the canonical record; HTML pages are
// converted to markdown and parsed section-by-heading.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
	"github.com/ersonp/prosync/internal/infrastructure/config"
)

// userAgent presents as a regular browser; portfolio hosts routinely
// reject default Go client UAs.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// maxBodySize bounds how much of a source document is read.
const maxBodySize = 4 << 20

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Extractor implements ports.Extractor over HTTP portfolio sources.
type Extractor struct {
	client   *http.Client
	mdConv   *converter.Converter
	cache    *cache
	cacheTTL time.Duration
}

// NewExtractor creates a new web extractor.
func NewExtractor(cfg config.ExtractorConfig) *Extractor {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		mdConv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
		cache:    newCache(cfg.CacheDir),
		cacheTTL: ttl,
	}
}

// Extract fetches and parses the portfolio source. Extraction is
// all-or-nothing: any structural failure yields an
// *entities.ExtractionError and no record. The cache is consulted only
// when useCache is set; a hit is reported through the record's FromCache
// marker.
func (e *Extractor) Extract(ctx context.Context, sourceURL string, useCache bool) (*entities.PortfolioRecord, error) {
	if useCache {
		if record, ok := e.cache.get(sourceURL, e.cacheTTL); ok {
			record.FromCache = true
			return record, nil
		}
	}

	body, contentType, err := e.fetch(ctx, sourceURL)
	if err != nil {
		return nil, &entities.ExtractionError{Source: sourceURL, Err: err}
	}

	record, err := e.parse(body, contentType, sourceURL)
	if err != nil {
		return nil, &entities.ExtractionError{Source: sourceURL, Err: err}
	}

	record.ExtractedAt = timeNow().UTC()
	record.FromCache = false

	if err := record.Validate(); err != nil {
		return nil, &entities.ExtractionError{Source: sourceURL, Err: err}
	}

	// A stale cache write never fails the extraction.
	e.cache.put(sourceURL, record)

	return record, nil
}

// fetch performs the HTTP GET and returns body and content type.
func (e *Extractor) fetch(ctx context.Context, sourceURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, "", fmt.Errorf("reading source body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// parse dispatches on content type: JSON documents are the canonical
// record shape, anything else is treated as HTML.
func (e *Extractor) parse(body []byte, contentType, sourceURL string) (*entities.PortfolioRecord, error) {
	if strings.Contains(contentType, "json") || looksLikeJSON(body) {
		var record entities.PortfolioRecord
		if err := json.Unmarshal(body, &record); err != nil {
			return nil, fmt.Errorf("parsing portfolio JSON: %w", err)
		}
		return &record, nil
	}

	markdown, err := e.mdConv.ConvertString(string(body), converter.WithDomain(sourceURL))
	if err != nil {
		return nil, fmt.Errorf("converting HTML: %w", err)
	}
	record, err := parseMarkdown(markdown)
	if err != nil {
		return nil, fmt.Errorf("parsing portfolio page: %w", err)
	}
	return record, nil
}

func looksLikeJSON(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "{")
}

var _ ports.Extractor = (*Extractor)(nil)
