package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/ports"
	"github.com/ersonp/prosync/internal/infrastructure/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.BackendConfig
		wantErr bool
	}{
		{
			name: "valid config",
			cfg:  config.BackendConfig{BaseURL: "http://localhost:11434/v1", Model: "deepseek-r1"},
		},
		{
			name:    "missing base URL",
			cfg:     config.BackendConfig{Model: "deepseek-r1"},
			wantErr: true,
		},
		{
			name:    "missing model",
			cfg:     config.BackendConfig{BaseURL: "http://localhost:11434/v1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

// newFakeBackend serves a minimal OpenAI-compatible API the way Ollama
// exposes one: /models for readiness, /chat/completions for generation.
func newFakeBackend(t *testing.T, models []string, completion string, status int) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		list := openai.ModelsList{}
		for _, m := range models {
			list.Models = append(list.Models, openai.Model{ID: m})
		}
		json.NewEncoder(w).Encode(list)
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if status != 0 {
			http.Error(w, "backend error", status)
			return
		}
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: completion}},
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(config.BackendConfig{BaseURL: server.URL + "/v1", Model: "deepseek-r1"})
	require.NoError(t, err)
	return client
}

func TestClient_Ready(t *testing.T) {
	ctx := context.Background()

	t.Run("exact model tag", func(t *testing.T) {
		client := newFakeBackend(t, []string{"deepseek-r1"}, "", 0)
		assert.NoError(t, client.Ready(ctx))
	})

	t.Run("variant tag matches bare name", func(t *testing.T) {
		client := newFakeBackend(t, []string{"deepseek-r1:7b", "llama3:latest"}, "", 0)
		assert.NoError(t, client.Ready(ctx))
	})

	t.Run("model not served", func(t *testing.T) {
		client := newFakeBackend(t, []string{"llama3:latest"}, "", 0)
		err := client.Ready(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deepseek-r1")
	})

	t.Run("backend unreachable", func(t *testing.T) {
		client, err := NewClient(config.BackendConfig{BaseURL: "http://127.0.0.1:1/v1", Model: "deepseek-r1"})
		require.NoError(t, err)
		assert.Error(t, client.Ready(ctx))
	})
}

func TestClient_Generate(t *testing.T) {
	ctx := context.Background()
	req := ports.GenerationRequest{Prompt: "say hi", MaxTokens: 100, Temperature: 0.7}

	t.Run("returns raw completion", func(t *testing.T) {
		client := newFakeBackend(t, nil, "<think>greeting</think>\nhi", 0)

		got, err := client.Generate(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "<think>greeting</think>\nhi", got, "reasoning span passed through untouched")
	})

	t.Run("server error is transient", func(t *testing.T) {
		client := newFakeBackend(t, nil, "", http.StatusInternalServerError)

		_, err := client.Generate(ctx, req)
		require.Error(t, err)
		assert.True(t, entities.IsTransient(err))
	})

	t.Run("unreachable backend is transient", func(t *testing.T) {
		client, err := NewClient(config.BackendConfig{BaseURL: "http://127.0.0.1:1/v1", Model: "deepseek-r1"})
		require.NoError(t, err)

		_, err = client.Generate(ctx, req)
		require.Error(t, err)
		assert.True(t, entities.IsTransient(err))
	})
}

func TestMatchesModel(t *testing.T) {
	tests := []struct {
		served     string
		configured string
		expected   bool
	}{
		{"deepseek-r1", "deepseek-r1", true},
		{"deepseek-r1:7b", "deepseek-r1", true},
		{"deepseek-r1:latest", "deepseek-r1", true},
		{"llama3:latest", "deepseek-r1", false},
		{"deepseek-r1-distill:7b", "deepseek-r1", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, matchesModel(tt.served, tt.configured), "%s vs %s", tt.served, tt.configured)
	}
}
