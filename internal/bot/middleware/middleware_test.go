package middleware

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID = int64(42)

func commandUpdate(fromID int64) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: fromID},
			Chat: &tgbotapi.Chat{ID: fromID},
			Text: "/status",
		},
	}
}

func TestAdminOnly(t *testing.T) {
	var called bool
	view := AdminOnly(adminID, func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		called = true
		return nil
	})

	t.Run("admin passes through", func(t *testing.T) {
		called = false

		require.NoError(t, view(context.Background(), nil, commandUpdate(adminID)))
		assert.True(t, called)
	})

	t.Run("stranger dropped silently", func(t *testing.T) {
		called = false

		require.NoError(t, view(context.Background(), nil, commandUpdate(99)))
		assert.False(t, called)
	})

	t.Run("update without message ignored", func(t *testing.T) {
		called = false

		require.NoError(t, view(context.Background(), nil, tgbotapi.Update{}))
		assert.False(t, called)
	})
}
