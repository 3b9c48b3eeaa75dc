package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/services"
)

// ReplyHandler drafts replies to inbound platform messages, grounded in
// the extracted portfolio.
type ReplyHandler struct {
	generator *services.Generator
}

// NewReplyHandler creates a new reply handler.
func NewReplyHandler(generator *services.Generator) *ReplyHandler {
	return &ReplyHandler{generator: generator}
}

// ReplyResult is one drafted reply.
type ReplyResult struct {
	Reply string
}

// Handle drafts a reply to the message. The record is optional; without
// one the draft is generated from the message alone.
func (h *ReplyHandler) Handle(ctx context.Context, platform string, record *entities.PortfolioRecord, message string) (*ReplyResult, error) {
	p, err := entities.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	reply, err := h.generator.DraftReply(ctx, record, p, message)
	if err != nil {
		return nil, fmt.Errorf("drafting reply: %w", err)
	}
	return &ReplyResult{Reply: reply}, nil
}
