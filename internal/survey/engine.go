package survey

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/artem20051205/bady/internal/domain"
	"github.com/artem20051205/bady/internal/store"
)

// Answer is a questionnaire response, parsed once at the transport boundary.
type Answer int

const (
	AnswerYes Answer = iota
	AnswerNo
	AnswerSkip
)

// Messenger is the outbound side the engine needs. *notify.Gateway implements it.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendQuestion(chatID int64, qid int, text string) (int, error)
	EditQuestion(chatID int64, messageID, qid int, text string) error
	DeleteMessage(chatID int64, messageID int) error
	SendResults(chatID int64, caption string) error
	SendSubscribePrompt(chatID int64, text string) error
	SendRestartPrompt(chatID int64, text string) error
}

// SubscriptionChecker is the channel-membership oracle. Errors inside the
// implementation must read as "not subscribed".
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, userID int64) bool
}

const (
	introText         = "📝 Тест розпочато! Будь ласка, відповідайте чесно."
	finishedText      = "Тест завершено!"
	restartActiveText = "🔄 Ви вже проходите тест. Хочете почати заново?"
	restartDoneText   = "🔄 Ви вже проходили тест. Хочете почати заново?"
	subscribeText     = "🔒 Щоб побачити результати, підпишіться на наш канал.\n\nПісля підписки натисніть кнопку нижче."
	subConfirmedText  = "✅ Підписку підтверджено! Надсилаємо результати..."
	genericErrorText  = "⚠️ Сталася помилка. Спробуйте ще раз пізніше."
	resultsHeader     = "📊 *Ваші результати тесту:*\n\n"
	resultsFooter     = "\n\nДякуємо за участь!"
)

// Engine drives the questionnaire: one pending question at a time, scoring,
// completion detection and subscription-gated result rendering.
type Engine struct {
	repo store.Repo
	msg  Messenger
	subs SubscriptionChecker
	log  *zap.Logger
}

func NewEngine(repo store.Repo, msg Messenger, subs SubscriptionChecker, log *zap.Logger) *Engine {
	return &Engine{repo: repo, msg: msg, subs: subs, log: log}
}

// RequestTest handles a "start test" request. A user with recorded progress
// gets an explicit confirmation prompt instead of a silent restart; only the
// wording distinguishes "in progress" from "already finished".
func (e *Engine) RequestTest(ctx context.Context, chatID int64) {
	rec, err := e.loadOrCreate(ctx, chatID)
	if err != nil {
		e.fail(chatID, "load record", err)
		return
	}
	if rec.Survey.Progress > 0 {
		text := restartActiveText
		if rec.Survey.Finished() {
			text = restartDoneText
		}
		if err := e.msg.SendRestartPrompt(chatID, text); err != nil {
			e.log.Warn("restart prompt failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
		return
	}
	e.StartOrRestart(ctx, chatID)
}

// StartOrRestart zeroes the survey state, persists it and sends the first
// question. Invoked for fresh users and for user-confirmed restarts.
func (e *Engine) StartOrRestart(ctx context.Context, chatID int64) {
	rec, err := e.loadOrCreate(ctx, chatID)
	if err != nil {
		e.fail(chatID, "load record", err)
		return
	}
	rec.Survey = domain.NewSurveyState()
	e.persist(ctx, rec)

	if err := e.msg.SendText(chatID, introText); err != nil {
		e.log.Warn("intro failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
	e.sendNext(ctx, rec)
}

// HandleAnswer scores one response. A qid that does not match the progress
// cursor is a duplicate or stale button press and is rejected without any
// state change; the return value lets the router show an alert.
func (e *Engine) HandleAnswer(ctx context.Context, chatID int64, qid int, a Answer) (stale bool) {
	rec, err := e.repo.Get(ctx, chatID)
	if err != nil {
		e.fail(chatID, "load record", err)
		return false
	}
	if qid != rec.Survey.Progress {
		return true
	}
	if a == AnswerYes {
		rec.Survey.ApplyYes(qid)
	}
	rec.Survey.Progress++
	e.persist(ctx, rec)
	e.sendNext(ctx, rec)
	return false
}

// sendNext renders question[progress] or finishes the test. The previous
// question message is edited in place to avoid chat clutter; when editing
// fails for any reason the stale reference is dropped and a fresh message is
// sent instead.
func (e *Engine) sendNext(ctx context.Context, rec *domain.UserRecord) {
	chatID := rec.ChatID
	if rec.Survey.Finished() {
		if rec.Survey.LastMsgID != 0 {
			if err := e.msg.DeleteMessage(chatID, rec.Survey.LastMsgID); err != nil {
				e.log.Debug("delete last question failed", zap.Int64("chatID", chatID), zap.Error(err))
			}
			rec.Survey.LastMsgID = 0
			e.persist(ctx, rec)
		}
		if err := e.msg.SendText(chatID, finishedText); err != nil {
			e.log.Warn("finish notice failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
		e.Finish(ctx, chatID)
		return
	}

	qid := rec.Survey.Progress
	text := fmt.Sprintf("❓ Питання %d/%d: %s", qid+1, len(domain.Questions), domain.Questions[qid].Prompt)

	if rec.Survey.LastMsgID != 0 {
		if err := e.msg.EditQuestion(chatID, rec.Survey.LastMsgID, qid, text); err == nil {
			return
		}
		rec.Survey.LastMsgID = 0
	}

	msgID, err := e.msg.SendQuestion(chatID, qid, text)
	if err != nil {
		e.log.Error("send question failed", zap.Int64("chatID", chatID), zap.Int("qid", qid), zap.Error(err))
		return
	}
	rec.Survey.LastMsgID = msgID
	e.persist(ctx, rec)
}

// Finish gates result rendering behind the subscription oracle. A failed
// check reads as not subscribed, so results never leak.
func (e *Engine) Finish(ctx context.Context, chatID int64) {
	if !e.subs.IsSubscribed(ctx, chatID) {
		if err := e.msg.SendSubscribePrompt(chatID, subscribeText); err != nil {
			e.log.Warn("subscribe prompt failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
		return
	}
	e.RenderResults(ctx, chatID)
}

// CheckSubscription re-runs the gate on the user's request and reports
// whether results were shown.
func (e *Engine) CheckSubscription(ctx context.Context, chatID int64) bool {
	if !e.subs.IsSubscribed(ctx, chatID) {
		return false
	}
	if err := e.msg.SendText(chatID, subConfirmedText); err != nil {
		e.log.Warn("sub confirm failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
	e.RenderResults(ctx, chatID)
	return true
}

// RenderResults emits one line per category sorted by descending raw score,
// ties broken by the canonical category order.
func (e *Engine) RenderResults(ctx context.Context, chatID int64) {
	rec, err := e.repo.Get(ctx, chatID)
	if err != nil {
		e.fail(chatID, "load record", err)
		return
	}
	if len(rec.Survey.Scores) == 0 {
		if err := e.msg.SendText(chatID, genericErrorText); err != nil {
			e.log.Warn("results error notice failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
		return
	}

	if err := e.msg.SendResults(chatID, FormatResults(rec.Survey.Scores)); err != nil {
		e.log.Error("send results failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

// FormatResults builds the result caption from per-category scores.
func FormatResults(scores map[domain.Category]int) string {
	order := make(map[domain.Category]int, len(domain.Categories))
	for i, c := range domain.Categories {
		order[c] = i
	}
	cats := make([]domain.Category, 0, len(scores))
	for c := range scores {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if scores[cats[i]] != scores[cats[j]] {
			return scores[cats[i]] > scores[cats[j]]
		}
		return order[cats[i]] < order[cats[j]]
	})

	var b strings.Builder
	b.WriteString(resultsHeader)
	for _, c := range cats {
		label := domain.Evaluate(c, scores[c])
		fmt.Fprintf(&b, "%s %s: %s\n", domain.Icon(label), domain.DisplayName(c), label)
	}
	b.WriteString(resultsFooter)
	return b.String()
}

func (e *Engine) loadOrCreate(ctx context.Context, chatID int64) (*domain.UserRecord, error) {
	rec, err := e.repo.Get(ctx, chatID)
	if errors.Is(err, store.ErrNotFound) {
		rec = domain.NewUserRecord(chatID, time.Now())
		if err := e.repo.Put(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	return rec, err
}

// persist writes the record, logging failures without aborting the flow: a
// dropped write is an accepted risk, the in-flight state stays usable.
func (e *Engine) persist(ctx context.Context, rec *domain.UserRecord) {
	if err := e.repo.Put(ctx, rec); err != nil {
		e.log.Error("persist failed", zap.Int64("chatID", rec.ChatID), zap.Error(err))
	}
}

func (e *Engine) fail(chatID int64, op string, err error) {
	e.log.Error(op+" failed", zap.Int64("chatID", chatID), zap.Error(err))
	if sendErr := e.msg.SendText(chatID, genericErrorText); sendErr != nil {
		e.log.Warn("error notice failed", zap.Int64("chatID", chatID), zap.Error(sendErr))
	}
}
