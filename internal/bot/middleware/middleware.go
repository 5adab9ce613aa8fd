// Package middleware wraps bot views with access checks.
package middleware

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/0x0BSoD/errorWatcher/internal/botkit"
)

// AdminOnly passes the update through only when the sender is the
// configured admin. Anyone else is dropped silently: no reply, no
// error, nothing disclosed.
func AdminOnly(adminID int64, next botkit.ViewFunc) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		if update.Message == nil || update.Message.From == nil {
			return nil
		}

		if update.Message.From.ID != adminID {
			log.Printf("[WARN] ignoring command from unauthorized user %d", update.Message.From.ID)
			return nil
		}

		return next(ctx, bot, update)
	}
}
