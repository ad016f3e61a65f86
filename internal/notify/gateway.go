package notify

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/artem20051205/bady/assets"
)

// Status classifies the outcome of a delivery attempt.
type Status int

const (
	StatusOK Status = iota
	// StatusTransient covers rate limits, network blips and similar; the next
	// tick or user action naturally retries equivalent work.
	StatusTransient
	// StatusPermanent means the user is gone for good (blocked the bot or
	// deactivated the account). Callers purge the record; the gateway itself
	// never touches storage.
	StatusPermanent
)

// permanentMarkers are the Telegram error substrings that identify an
// unreachable user.
var permanentMarkers = []string{
	"bot was blocked by the user",
	"user is deactivated",
	"chat not found",
}

// Gateway is a thin send/edit/delete wrapper around the Bot API. It holds no
// user state and never mutates storage.
type Gateway struct {
	bot        *tgbotapi.BotAPI
	log        *zap.Logger
	channel    string // channel id or @username for the subscription check
	channelURL string // invite link shown on the subscribe button
}

func NewGateway(bot *tgbotapi.BotAPI, log *zap.Logger, channel, channelURL string) *Gateway {
	return &Gateway{bot: bot, log: log, channel: channel, channelURL: channelURL}
}

// Classify maps a send error to a delivery status.
func Classify(err error) Status {
	if err == nil {
		return StatusOK
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range permanentMarkers {
		if strings.Contains(msg, marker) {
			return StatusPermanent
		}
	}
	return StatusTransient
}

// Deliver sends a plain text message and classifies the outcome.
func (g *Gateway) Deliver(chatID int64, text string) Status {
	err := g.SendText(chatID, text)
	st := Classify(err)
	if st == StatusTransient {
		g.log.Warn("send failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
	return st
}

// SendText sends a plain text message.
func (g *Gateway) SendText(chatID int64, text string) error {
	_, err := g.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendQuestion sends a question with the yes/no/skip inline keyboard and
// returns the message id for later in-place editing.
func (g *Gateway) SendQuestion(chatID int64, qid int, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = answerKeyboard(qid)
	sent, err := g.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// EditQuestion rewrites a previously sent question in place. Editing is a
// presentation optimization only; callers fall back to SendQuestion on error.
func (g *Gateway) EditQuestion(chatID int64, messageID, qid int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	kb := answerKeyboard(qid)
	edit.ReplyMarkup = &kb
	_, err := g.bot.Send(edit)
	return err
}

// DeleteMessage removes a message, e.g. the last question once the test ends.
func (g *Gateway) DeleteMessage(chatID int64, messageID int) error {
	_, err := g.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

// SendResults delivers the result summary as a photo caption, falling back to
// plain text when the embedded image cannot be sent.
func (g *Gateway) SendResults(chatID int64, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "results.png", Bytes: assets.ResultsImage})
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	if _, err := g.bot.Send(photo); err != nil {
		g.log.Warn("results photo failed, sending text", zap.Int64("chatID", chatID), zap.Error(err))
		msg := tgbotapi.NewMessage(chatID, caption)
		msg.ParseMode = tgbotapi.ModeMarkdown
		_, err = g.bot.Send(msg)
		return err
	}
	return nil
}

// SendWelcome sends the greeting photo with the main inline menu.
func (g *Gateway) SendWelcome(chatID int64, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "results.png", Bytes: assets.ResultsImage})
	photo.Caption = caption
	photo.ReplyMarkup = mainMenuKeyboard()
	if _, err := g.bot.Send(photo); err != nil {
		msg := tgbotapi.NewMessage(chatID, caption)
		msg.ReplyMarkup = mainMenuKeyboard()
		_, err = g.bot.Send(msg)
		return err
	}
	return nil
}

// SendMainMenu sends a text message with the main inline menu attached.
func (g *Gateway) SendMainMenu(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenuKeyboard()
	_, err := g.bot.Send(msg)
	return err
}

// SendSubscribePrompt sends the channel link plus a re-check button.
func (g *Gateway) SendSubscribePrompt(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = subscribeKeyboard(g.channelURL)
	_, err := g.bot.Send(msg)
	return err
}

// SendRestartPrompt asks the user to confirm restarting the test.
func (g *Gateway) SendRestartPrompt(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = restartKeyboard()
	_, err := g.bot.Send(msg)
	return err
}

// AnswerCallback acknowledges a callback query, optionally with an alert.
func (g *Gateway) AnswerCallback(callbackID, text string, alert bool) {
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	if _, err := g.bot.Request(cb); err != nil {
		g.log.Debug("answer callback failed", zap.Error(err))
	}
}

// IsSubscribed reports whether the user is a member of the configured
// channel. Any check failure counts as not subscribed, so results never leak
// on an oracle error.
func (g *Gateway) IsSubscribed(ctx context.Context, userID int64) bool {
	cfg := tgbotapi.ChatConfigWithUser{UserID: userID}
	if id, err := strconv.ParseInt(g.channel, 10, 64); err == nil {
		cfg.ChatID = id
	} else {
		cfg.SuperGroupUsername = g.channel
	}

	member, err := g.bot.GetChatMember(tgbotapi.GetChatMemberConfig{ChatConfigWithUser: cfg})
	if err != nil {
		g.log.Error("subscription check failed", zap.Int64("userID", userID), zap.Error(err))
		return false
	}
	switch member.Status {
	case "member", "administrator", "creator":
		return true
	}
	return false
}
