// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/prosync/internal/domain/ports"
)

// TextBackend is a mock implementation of ports.TextBackend.
type TextBackend struct {
	// Response is returned by Generate when Responses is empty.
	Response string
	// Responses are returned in order, one per call, before falling back
	// to Response.
	Responses []string
	// GenerateErr is returned by Generate. When ErrCount > 0 the error is
	// returned only for the first ErrCount calls.
	GenerateErr error
	ErrCount    int
	// ReadyErr is returned by Ready.
	ReadyErr error
	// Model is returned by ModelName.
	Model string

	mu      sync.Mutex
	calls   int
	Prompts []string
}

// Generate returns the configured response or error and records the prompt.
func (m *TextBackend) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := m.calls
	m.calls++
	m.Prompts = append(m.Prompts, req.Prompt)

	if m.GenerateErr != nil && (m.ErrCount == 0 || call < m.ErrCount) {
		return "", m.GenerateErr
	}
	if call < len(m.Responses) {
		return m.Responses[call], nil
	}
	return m.Response, nil
}

// Ready returns the configured readiness error.
func (m *TextBackend) Ready(ctx context.Context) error {
	return m.ReadyErr
}

// ModelName returns the configured model name.
func (m *TextBackend) ModelName() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// Calls returns how many Generate calls were made.
func (m *TextBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ ports.TextBackend = (*TextBackend)(nil)
