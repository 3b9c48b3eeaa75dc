// Package ollama provides a TextBackend implementation over a local
// Ollama server, through its OpenAI-compatible API.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
	"github.com/ersonp/prosync/internal/infrastructure/config"
)

// Client implements the TextBackend interface against Ollama.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new Ollama backend client. Ollama ignores the API
// key but the underlying client requires one.
func NewClient(cfg config.BackendConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("backend model is required")
	}

	clientCfg := openai.DefaultConfig("ollama")
	clientCfg.BaseURL = cfg.BaseURL

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Generate issues one generation request and returns the raw response
// text, reasoning span included. Transport-level failures are wrapped in
// entities.TransientError so the generator retries them.
func (c *Client) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		if isTransport(err) {
			return "", &entities.TransientError{Err: err}
		}
		return "", fmt.Errorf("calling backend: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", entities.ErrMalformedResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// Ready probes the backend and verifies the configured model is served.
func (c *Client) Ready(ctx context.Context) error {
	models, err := c.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("listing backend models: %w", err)
	}

	for _, m := range models.Models {
		if matchesModel(m.ID, c.model) {
			return nil
		}
	}
	return fmt.Errorf("model %q is not served by the backend", c.model)
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.model
}

// matchesModel compares a served model tag against the configured name.
// Ollama tags models as name:variant; a bare configured name matches any
// variant.
func matchesModel(served, configured string) bool {
	if served == configured {
		return true
	}
	base, _, found := strings.Cut(served, ":")
	return found && base == configured
}

// isTransport reports whether err is a transport-level failure worth
// retrying: connection errors, timeouts, and server-side (5xx) or
// throttling (429) statuses.
func isTransport(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode >= 500 || apiErr.HTTPStatusCode == 429
	}
	// Non-OpenAI error bodies (a bare proxy 502, say) surface as request
	// errors with only a status code attached.
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode >= 500 || reqErr.HTTPStatusCode == 429
	}
	return false
}

var _ ports.TextBackend = (*Client)(nil)
