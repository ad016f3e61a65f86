package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/artem20051205/bady/internal/domain"
	"github.com/artem20051205/bady/internal/notify"
	"github.com/artem20051205/bady/internal/store"
	"github.com/artem20051205/bady/internal/survey"
	"github.com/artem20051205/bady/internal/tracking"
)

// Pending state keys used in conversational flows.
const pendingFullName = "await_full_name"

const (
	welcomeText   = "👋 Ласкаво просимо! Виберіть дію:"
	askNameText   = "Будь ласка, введіть ваше ПІБ:"
	nameSavedText = "Ваші дані збережено. Починаємо тест..."
	canceledText  = "❌ Скасовано."
	staleAlert    = "Ви вже відповіли на це питання."
	notSubAlert   = "❌ Ви ще не підписалися на канал."
)

// Router wires Telegram updates to the survey engine and the tracking
// program, holding only the minimal in-memory dialog state (name intake).
type Router struct {
	log     *zap.Logger
	repo    store.Repo
	gw      *notify.Gateway
	engine  *survey.Engine
	program *tracking.Program
	state   map[int64]string // chatID -> pending state
	mu      sync.RWMutex
}

func NewRouter(log *zap.Logger, repo store.Repo, gw *notify.Gateway, engine *survey.Engine, program *tracking.Program) *Router {
	return &Router{
		log:     log,
		repo:    repo,
		gw:      gw,
		engine:  engine,
		program: program,
		state:   make(map[int64]string),
	}
}

func (r *Router) setPending(chatID int64, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[chatID] = s
}

func (r *Router) getPending(chatID int64) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state[chatID]
}

func (r *Router) clearPending(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, chatID)
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		r.handleMessage(ctx, upd.Message)
		return
	}
	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		r.handleStart(chatID)

	case r.getPending(chatID) == pendingFullName:
		r.clearPending(chatID)
		r.saveFullName(ctx, chatID, text)

	case domain.LooksLikeWeight(text):
		r.program.RecordWeight(ctx, chatID, text)

	default:
		// Free text outside any flow is ignored.
	}
}

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data

	switch {
	case data == notify.CallbackStartTest:
		r.gw.AnswerCallback(cb.ID, "", false)
		r.handleStartTest(ctx, chatID)

	case data == notify.CallbackRestartTest:
		r.gw.AnswerCallback(cb.ID, "", false)
		r.engine.StartOrRestart(ctx, chatID)

	case data == notify.CallbackCancelRestart:
		r.gw.AnswerCallback(cb.ID, "", false)
		if err := r.gw.SendText(chatID, canceledText); err != nil {
			r.log.Warn("cancel notice failed", zap.Int64("chatID", chatID), zap.Error(err))
		}

	case data == notify.CallbackCheckSub:
		if r.engine.CheckSubscription(ctx, chatID) {
			r.gw.AnswerCallback(cb.ID, "", false)
		} else {
			r.gw.AnswerCallback(cb.ID, notSubAlert, true)
		}

	case data == notify.CallbackStartTracking:
		r.gw.AnswerCallback(cb.ID, "", false)
		r.program.Enroll(ctx, chatID)

	default:
		if qid, answer, ok := parseAnswer(data); ok {
			if r.engine.HandleAnswer(ctx, chatID, qid, answer) {
				r.gw.AnswerCallback(cb.ID, staleAlert, true)
			} else {
				r.gw.AnswerCallback(cb.ID, "", false)
			}
			return
		}
		// Unknown callback — ignore silently.
		r.gw.AnswerCallback(cb.ID, "", false)
	}
}

func (r *Router) handleStart(chatID int64) {
	if err := r.gw.SendWelcome(chatID, welcomeText); err != nil {
		r.log.Error("welcome failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

// handleStartTest launches the questionnaire, collecting the user's full name
// first if the record has none yet.
func (r *Router) handleStartTest(ctx context.Context, chatID int64) {
	rec, err := r.repo.Get(ctx, chatID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		r.log.Error("load record failed", zap.Int64("chatID", chatID), zap.Error(err))
		return
	}
	if rec == nil || rec.FullName == "" {
		r.setPending(chatID, pendingFullName)
		if err := r.gw.SendText(chatID, askNameText); err != nil {
			r.log.Warn("ask name failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
		return
	}
	r.engine.RequestTest(ctx, chatID)
}

func (r *Router) saveFullName(ctx context.Context, chatID int64, name string) {
	rec, err := r.repo.Get(ctx, chatID)
	if errors.Is(err, store.ErrNotFound) {
		rec = domain.NewUserRecord(chatID, time.Now())
	} else if err != nil {
		r.log.Error("load record failed", zap.Int64("chatID", chatID), zap.Error(err))
		return
	}
	rec.FullName = name
	if err := r.repo.Put(ctx, rec); err != nil {
		r.log.Error("save name failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
	if err := r.gw.SendText(chatID, nameSavedText); err != nil {
		r.log.Warn("name saved notice failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
	r.engine.RequestTest(ctx, chatID)
}

// parseAnswer decodes "yes:3" / "no:3" / "skip:3" callback data into a typed
// answer and its qid correlation id.
func parseAnswer(data string) (qid int, a survey.Answer, ok bool) {
	action, qidStr, found := strings.Cut(data, ":")
	if !found {
		return 0, 0, false
	}
	switch action {
	case "yes":
		a = survey.AnswerYes
	case "no":
		a = survey.AnswerNo
	case "skip":
		a = survey.AnswerSkip
	default:
		return 0, 0, false
	}
	qid, err := strconv.Atoi(qidStr)
	if err != nil || qid < 0 {
		return 0, 0, false
	}
	return qid, a, true
}
