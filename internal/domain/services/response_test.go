package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/prosync/internal/domain/entities"
)

func TestParseBackendResponse(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantReasoning string
		wantAnswer    string
		wantErr       bool
	}{
		{
			name:       "plain answer without delimiters",
			raw:        "Senior Go Engineer",
			wantAnswer: "Senior Go Engineer",
		},
		{
			name:          "reasoning span then answer",
			raw:           "<think>the user wants a title</think>\nSenior Go Engineer",
			wantReasoning: "the user wants a title",
			wantAnswer:    "Senior Go Engineer",
		},
		{
			name:          "answer after last closing delimiter",
			raw:           "<think>first</think> draft <think>second</think>Final answer",
			wantReasoning: "first</think> draft <think>second",
			wantAnswer:    "Final answer",
		},
		{
			name:          "unterminated reasoning span",
			raw:           "Senior Go Engineer\n<think>oh wait, maybe",
			wantReasoning: "oh wait, maybe",
			wantAnswer:    "Senior Go Engineer",
		},
		{
			name:       "code fence stripped",
			raw:        "```\nSenior Go Engineer\n```",
			wantAnswer: "Senior Go Engineer",
		},
		{
			name:       "code fence with language tag",
			raw:        "```text\nSenior Go Engineer\n```",
			wantAnswer: "Senior Go Engineer",
		},
		{
			name:    "reasoning only is malformed",
			raw:     "<think>still thinking about it</think>",
			wantErr: true,
		},
		{
			name:    "empty response is malformed",
			raw:     "   \n  ",
			wantErr: true,
		},
		{
			name:    "unterminated span with nothing before it",
			raw:     "<think>never finished",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseBackendResponse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, entities.ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAnswer, resp.Answer)
			assert.Equal(t, tt.wantReasoning, resp.Reasoning)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no fence",
			input:    "plain text",
			expected: "plain text",
		},
		{
			name:     "fenced block",
			input:    "```\ncontent\n```",
			expected: "content",
		},
		{
			name:     "fence with language",
			input:    "```markdown\ncontent\n```",
			expected: "content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFence(tt.input))
		})
	}
}
