package services

import (
	"strings"

	"github.com/ersonp/prosync/internal/domain/entities"
)

// Reasoning models prepend a delimited reasoning span to their answer.
// The response contract is two parts: an optional reasoning span between
// the delimiters, then the final answer.
const (
	reasoningOpen  = "<think>"
	reasoningClose = "</think>"
)

// BackendResponse is a parsed two-part backend response.
type BackendResponse struct {
	Reasoning string
	Answer    string
}

// ParseBackendResponse splits a raw backend response into reasoning and
// answer spans. Parsing rules:
//
//   - a closing delimiter present: the answer is everything after the
//     last closing delimiter, the reasoning everything before it;
//   - an opening delimiter with no close: the span never terminated, so
//     the answer is everything before the opening delimiter;
//   - no delimiter: the whole response is the answer.
//
// Markdown code fences around the answer are stripped. An empty answer
// after stripping is entities.ErrMalformedResponse.
func ParseBackendResponse(raw string) (BackendResponse, error) {
	var resp BackendResponse

	text := strings.TrimSpace(raw)
	if idx := strings.LastIndex(text, reasoningClose); idx >= 0 {
		resp.Reasoning = strings.TrimSpace(strings.TrimPrefix(text[:idx], reasoningOpen))
		text = text[idx+len(reasoningClose):]
	} else if idx := strings.Index(text, reasoningOpen); idx >= 0 {
		resp.Reasoning = strings.TrimSpace(text[idx+len(reasoningOpen):])
		text = text[:idx]
	}

	resp.Answer = stripCodeFence(strings.TrimSpace(text))
	if resp.Answer == "" {
		return resp, entities.ErrMalformedResponse
	}
	return resp, nil
}

// stripCodeFence removes a surrounding markdown code block if present.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	// Drop a language tag on the opening fence.
	if nl := strings.Index(text, "\n"); nl >= 0 && !strings.ContainsAny(text[:nl], " \t") {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
