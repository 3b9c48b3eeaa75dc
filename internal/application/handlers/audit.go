package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
)

// AuditHandler lists persisted audit entries.
type AuditHandler struct {
	audit ports.AuditLog
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(audit ports.AuditLog) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns audit entries most recent first, optionally filtered by
// platform (exact match). An empty platform string matches all.
func (h *AuditHandler) List(ctx context.Context, platform string, limit int) ([]entities.AuditEntry, error) {
	var p entities.Platform
	if platform != "" {
		parsed, err := entities.ParsePlatform(platform)
		if err != nil {
			return nil, err
		}
		p = parsed
	}

	entries, err := h.audit.Query(ctx, p, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	return entries, nil
}
