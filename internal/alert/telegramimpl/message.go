package telegramimpl

import (
	"fmt"

	"github.com/alcaldia-cabimas/cabimas-web/internal/alert"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/formatter"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (tg *TelegramImpl) send(a alert.Alert) {
	msg := tgbotapi.NewMessage(tg.chatID, formatAlert(a))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := tg.sender.Send(msg); err != nil {
		tg.logger.Error("Error sending alert to user",
			"userID", tg.chatID,
			"code", a.Code,
			"error", err)
		return
	}

	tg.logger.Info("Alert sent to user",
		"userID", tg.chatID,
		"code", a.Code)
}

func formatAlert(a alert.Alert) string {
	return fmt.Sprintf("*%s*\n`%s`\n%s",
		formatter.EscapeMarkdownV2("Feed de Instagram con fallas"),
		formatter.EscapeMarkdownV2(a.Code),
		formatter.EscapeMarkdownV2(a.Message),
	)
}
