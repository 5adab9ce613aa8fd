package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/0x0BSoD/errorWatcher/internal/botkit"
	"github.com/0x0BSoD/errorWatcher/internal/botkit/markup"
	"github.com/0x0BSoD/errorWatcher/internal/stats"
)

func ViewCmdStatus(tracker *stats.Tracker, listenAddr string) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		snap := tracker.Snapshot()

		var sb strings.Builder

		sb.WriteString("✅ *Статус сервиса*\n\n")
		sb.WriteString("Бот: активен\n")
		fmt.Fprintf(&sb, "API: `%s`\n", markup.EscapeForCode(listenAddr))
		fmt.Fprintf(&sb, "Время работы: %s\n\n", markup.EscapeForMarkdown(snap.Uptime.Truncate(time.Second).String()))

		fmt.Fprintf(&sb, "Ошибок принято: %d\n", snap.Total)
		fmt.Fprintf(&sb, "Отправлено: %d, сбоев доставки: %d\n", snap.Dispatched, snap.Failed)

		if len(snap.PerPlatform) > 0 {
			sb.WriteString("\n*По платформам:*\n")

			platforms := lo.Keys(snap.PerPlatform)
			sort.Strings(platforms)
			for _, platform := range platforms {
				fmt.Fprintf(&sb, "• %s: %d\n", markup.EscapeForMarkdown(platform), snap.PerPlatform[platform])
			}
		}

		if len(snap.Recent) > 0 {
			sb.WriteString("\n*Последние ошибки:*\n")
			for _, recent := range snap.Recent {
				fmt.Fprintf(&sb, "• %s %s: %s\n",
					markup.EscapeForMarkdown(recent.Time.Local().Format("15:04:05")),
					markup.EscapeForMarkdown(recent.Platform),
					markup.EscapeForMarkdown(recent.ErrorType),
				)
			}
		}

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, strings.TrimRight(sb.String(), "\n"))
		reply.ParseMode = parseModeMarkdownV2

		if _, err := bot.Send(reply); err != nil {
			return err
		}

		return nil
	}
}
