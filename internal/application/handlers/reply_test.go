package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/prosync/internal/domain/entities"
	"github.com/ersonp/prosync/internal/domain/mocks"
	"github.com/ersonp/prosync/internal/domain/services"
)

func TestReplyHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("drafts a grounded reply", func(t *testing.T) {
		backend := &mocks.TextBackend{Response: "Thanks for reaching out. I am available next week."}
		handler := NewReplyHandler(services.NewGenerator(backend))

		result, err := handler.Handle(ctx, "upwork", janeDoeRecord(), "Are you available for a Go project?")
		require.NoError(t, err)

		assert.Equal(t, "Thanks for reaching out. I am available next week.", result.Reply)
		require.Len(t, backend.Prompts, 1)
		assert.Contains(t, backend.Prompts[0], "Are you available for a Go project?")
		assert.Contains(t, backend.Prompts[0], "Jane Doe")
	})

	t.Run("works without a record", func(t *testing.T) {
		backend := &mocks.TextBackend{Response: "Thanks for reaching out."}
		handler := NewReplyHandler(services.NewGenerator(backend))

		result, err := handler.Handle(ctx, "linkedin", nil, "Would you like to connect?")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Reply)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		handler := NewReplyHandler(services.NewGenerator(&mocks.TextBackend{}))

		_, err := handler.Handle(ctx, "upwork", janeDoeRecord(), "")
		require.Error(t, err)
	})

	t.Run("invalid platform rejected", func(t *testing.T) {
		handler := NewReplyHandler(services.NewGenerator(&mocks.TextBackend{}))

		_, err := handler.Handle(ctx, "fiverr", janeDoeRecord(), "Hello")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUnsupportedPlatform)
	})
}
