package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data values understood by the router. Answer buttons carry the
// qid as a correlation id, e.g. "yes:3".
const (
	CallbackStartTest     = "start_test"
	CallbackRestartTest   = "restart_test"
	CallbackCancelRestart = "cancel_restart"
	CallbackCheckSub      = "check_subscription"
	CallbackStartTracking = "start_tracking"
)

func answerKeyboard(qid int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Так", fmt.Sprintf("yes:%d", qid)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Ні", fmt.Sprintf("no:%d", qid)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Пропустити", fmt.Sprintf("skip:%d", qid)),
		),
	)
}

func subscribeKeyboard(channelURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔔 Підписатися", channelURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Перевірити підписку", CallbackCheckSub),
		),
	)
}

func restartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Так, почати заново", CallbackRestartTest),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Ні", CallbackCancelRestart),
		),
	)
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Пройти тест", CallbackStartTest),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍽 Програма харчування", CallbackStartTracking),
		),
	)
}
