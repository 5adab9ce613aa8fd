// Package botkit is a small command-dispatch layer on top of the
// Telegram Bot API long-polling updates channel.
package botkit

import (
	"context"
	"log"
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const updateHandleTimeout = 5 * time.Minute

type Bot struct {
	api      *tgbotapi.BotAPI
	cmdViews map[string]ViewFunc
}

// ViewFunc handles one update for a registered command.
type ViewFunc func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error

func New(api *tgbotapi.BotAPI) *Bot {
	return &Bot{api: api}
}

func (b *Bot) RegisterCmdView(cmd string, view ViewFunc) {
	if b.cmdViews == nil {
		b.cmdViews = make(map[string]ViewFunc)
	}

	b.cmdViews[cmd] = view
}

// Run polls for updates until the context is cancelled. Each update is
// handled in its own goroutine with its own timeout so one stuck view
// cannot stall the loop.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	return b.run(ctx, b.api.GetUpdatesChan(u))
}

func (b *Bot) run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case update := <-updates:
			updateCtx, updateCancel := context.WithTimeout(ctx, updateHandleTimeout)

			go func(ctx context.Context, update tgbotapi.Update) {
				defer updateCancel()
				b.handleUpdate(ctx, update)
			}(updateCtx, update)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[ERROR] panic recovered: %v\n%s", p, string(debug.Stack()))
		}
	}()

	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	view, ok := b.cmdViews[update.Message.Command()]
	if !ok {
		return
	}

	if err := view(ctx, b.api, update); err != nil {
		log.Printf("[ERROR] failed to execute view: %v", err)

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, "Внутренняя ошибка, попробуйте позже.")
		if _, err := b.api.Send(reply); err != nil {
			log.Printf("[ERROR] failed to send error message: %v", err)
		}
	}
}
