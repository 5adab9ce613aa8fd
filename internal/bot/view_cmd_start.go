package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/0x0BSoD/errorWatcher/internal/botkit"
	"github.com/0x0BSoD/errorWatcher/internal/botkit/markup"
	"github.com/0x0BSoD/errorWatcher/internal/model"
)

const parseModeMarkdownV2 = "MarkdownV2"

func ViewCmdStart(labels model.PlatformLabels) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		var sb strings.Builder

		sb.WriteString("🚀 *Error Logger Bot*\n\n")
		sb.WriteString("Бот принимает ошибки со всех платформ и пересылает их в этот чат\\.\n\n")
		sb.WriteString("*Платформы:*\n")

		ids := lo.Keys(labels)
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&sb, "• %s\n", markup.EscapeForMarkdown(labels[id]))
		}

		sb.WriteString("\n*Команды:*\n")
		sb.WriteString("/status \\- статус сервиса\n")
		sb.WriteString("/help \\- справка")

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, sb.String())
		reply.ParseMode = parseModeMarkdownV2

		if _, err := bot.Send(reply); err != nil {
			return err
		}

		return nil
	}
}
