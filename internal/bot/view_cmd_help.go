package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/0x0BSoD/errorWatcher/internal/botkit"
)

func ViewCmdHelp() botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		var sb strings.Builder

		sb.WriteString("📖 *Справка по Error Logger Bot*\n\n")
		sb.WriteString("Ошибки принимаются запросом:\n")
		sb.WriteString("`POST /api/log-error`\n\n")
		sb.WriteString("Обязательные поля: `platform`, `errorMessage`\\.\n")
		sb.WriteString("Опциональные: `userPhone`, `userId`, `errorType`, `stackTrace`, `url`, `userAgent`, `additionalData`\\.\n\n")
		sb.WriteString("*Формат уведомления:*\n")
		sb.WriteString("• платформа\n")
		sb.WriteString("• номер и ID пользователя\n")
		sb.WriteString("• устройство и ОС\n")
		sb.WriteString("• тип и текст ошибки\n")
		sb.WriteString("• stack trace\n")
		sb.WriteString("• время возникновения\n\n")
		sb.WriteString("Все ошибки автоматически форматируются и отправляются в этот чат\\.")

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, sb.String())
		reply.ParseMode = parseModeMarkdownV2

		if _, err := bot.Send(reply); err != nil {
			return err
		}

		return nil
	}
}
