package ports

import "context"

// GenerationRequest is one request to the text-generation backend.
type GenerationRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// TextBackend is the generation-backend collaborator: a locally-hosted
// text-generation service. Implementations classify transport failures
// with entities.TransientError so the generator can retry them.
type TextBackend interface {
	// Generate issues one generation request and returns the raw
	// response text, reasoning span included.
	Generate(ctx context.Context, req GenerationRequest) (string, error)

	// Ready probes backend availability and model readiness.
	Ready(ctx context.Context) error

	// ModelName returns the configured model identifier.
	ModelName() string
}
