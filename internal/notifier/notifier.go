// Package notifier delivers formatted error notifications to the
// single configured admin chat over Telegram.
package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Dispatcher sends one formatted message to the configured recipient.
// Implementations make a single best-effort attempt, no retries.
type Dispatcher interface {
	Dispatch(ctx context.Context, text string) error
}

// Telegram dispatches messages through the Telegram Bot API. The
// underlying BotAPI client is safe for concurrent Send calls; the
// bounded dispatch timeout is enforced by its HTTP client, configured
// at startup.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(bot *tgbotapi.BotAPI, chatID int64) *Telegram {
	return &Telegram{bot: bot, chatID: chatID}
}

// Dispatch sends the message as MarkdownV2 with link previews
// disabled. A transport failure is returned for the caller to log and
// surface, it never panics past this boundary.
func (t *Telegram) Dispatch(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	return nil
}
