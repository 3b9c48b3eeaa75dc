package handlers

import (
	"context"

	"github.com/ersonp/prosync/internal/domain/ports"
)

// StatusHandler probes the generation backend.
type StatusHandler struct {
	backend ports.TextBackend
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(backend ports.TextBackend) *StatusHandler {
	return &StatusHandler{backend: backend}
}

// StatusResult reports backend readiness.
type StatusResult struct {
	Ready bool
	Model string
	Err   string
}

// Handle probes the backend and reports whether the configured model is
// ready to serve.
func (h *StatusHandler) Handle(ctx context.Context) *StatusResult {
	result := &StatusResult{Model: h.backend.ModelName()}
	if err := h.backend.Ready(ctx); err != nil {
		result.Err = err.Error()
		return result
	}
	result.Ready = true
	return result
}
