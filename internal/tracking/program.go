package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/artem20051205/bady/internal/domain"
	"github.com/artem20051205/bady/internal/notify"
	"github.com/artem20051205/bady/internal/store"
)

// Sender is the outbound side the program needs. *notify.Gateway implements it.
type Sender interface {
	Deliver(chatID int64, text string) notify.Status
	SendMainMenu(chatID int64, text string) error
}

// Clock abstracts wall-clock reads so tests can simulate minute boundaries
// without sleeping. Now must return time in the program's local timezone.
type Clock interface {
	Now() time.Time
}

type locClock struct{ loc *time.Location }

func (c locClock) Now() time.Time { return time.Now().In(c.loc) }

// NewClock returns a real clock reporting time in the given location.
func NewClock(loc *time.Location) Clock { return locClock{loc: loc} }

// Times holds the wall-clock minutes of the four scheduled rules.
type Times struct {
	Menu     domain.TriggerTime
	Weight   domain.TriggerTime
	Reminder domain.TriggerTime
	Rollover domain.TriggerTime
}

const (
	instructionsText = "📋 Інструкції: щоранку бот надсилатиме меню на день, а ввечері питатиме вашу вагу. Напишіть вагу числом у кг."
	weightQuestion   = "⚖️ Яка у вас вага сьогодні? Напишіть число в кг."
	reminderText     = "⚠️ Нагадуємо: введіть, будь ласка, вашу вагу за сьогодні!"
	alreadyDoneText  = "✅ Ви вже завершили участь у програмі!"
	duplicateText    = "⚠️ Вага за сьогодні вже записана!"
	badWeightText    = "⚠️ Не вдалося розпізнати вагу. Введіть число від 20 до 300, наприклад: 75.5"
	menuFooterText   = "Оберіть дію:"
)

// Program drives the multi-day menu/weight tracking for every enrolled user
// from one shared polling loop; no per-user timers.
type Program struct {
	repo      store.Repo
	sender    Sender
	log       *zap.Logger
	clock     Clock
	totalDays int
	times     Times
	interval  time.Duration
}

func NewProgram(repo store.Repo, sender Sender, log *zap.Logger, clock Clock, totalDays int, times Times, interval time.Duration) *Program {
	return &Program{
		repo:      repo,
		sender:    sender,
		log:       log,
		clock:     clock,
		totalDays: totalDays,
		times:     times,
		interval:  interval,
	}
}

// Enroll opts a user into the program. A finished participant gets a notice;
// an active one gets an idempotent catch-up (current menu, weight re-prompt
// if today is still unrecorded) rather than a reset.
func (p *Program) Enroll(ctx context.Context, chatID int64) {
	rec, err := p.loadOrCreate(ctx, chatID)
	if err != nil {
		p.log.Error("enroll load failed", zap.Int64("chatID", chatID), zap.Error(err))
		return
	}
	today := domain.DateKey(p.clock.Now())

	if t := rec.Tracking; t != nil {
		if t.Finished {
			p.sender.Deliver(chatID, alreadyDoneText)
			return
		}
		p.sender.Deliver(chatID, domain.MenuFor(t.Day))
		t.MenuSentToday = true
		if !t.HasWeight(today) {
			p.sender.Deliver(chatID, weightQuestion)
			t.AskedToday = true
		}
		p.persist(ctx, rec)
		return
	}

	t := domain.NewTrackingState()
	t.MenuSentToday = true
	t.AskedToday = true
	t.LastRollover = today
	rec.Tracking = t
	p.persist(ctx, rec)

	p.sender.Deliver(chatID, instructionsText)
	p.sender.Deliver(chatID, domain.MenuFor(t.Day))
	p.sender.Deliver(chatID, weightQuestion)
}

// RecordWeight handles a numeric free-text reply. Unparseable or implausible
// input gets a retry instruction; a second entry for the same calendar date
// is rejected (first write wins). Users without an active program are
// silently ignored so stray numbers do nothing.
func (p *Program) RecordWeight(ctx context.Context, chatID int64, text string) {
	rec, err := p.repo.Get(ctx, chatID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.log.Error("record weight load failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
		return
	}
	t := rec.Tracking
	if t == nil || t.Finished {
		return
	}

	value, err := domain.ParseWeight(text)
	if err != nil {
		p.sender.Deliver(chatID, badWeightText)
		return
	}

	today := domain.DateKey(p.clock.Now())
	if !t.PutWeight(today, value) {
		p.sender.Deliver(chatID, duplicateText)
		return
	}
	t.AskedToday = true
	p.persist(ctx, rec)

	p.sender.Deliver(chatID, fmt.Sprintf("✅ Вага %.1f кг збережена (день %d).", value, t.Day))
}

func (p *Program) loadOrCreate(ctx context.Context, chatID int64) (*domain.UserRecord, error) {
	rec, err := p.repo.Get(ctx, chatID)
	if errors.Is(err, store.ErrNotFound) {
		rec = domain.NewUserRecord(chatID, p.clock.Now())
		if err := p.repo.Put(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	}
	return rec, err
}

// persist logs write failures without aborting: durability of one write is an
// accepted weak point, there is no retry queue.
func (p *Program) persist(ctx context.Context, rec *domain.UserRecord) {
	if err := p.repo.Put(ctx, rec); err != nil {
		p.log.Error("persist failed", zap.Int64("chatID", rec.ChatID), zap.Error(err))
	}
}

// purge drops a permanently unreachable user from durable storage.
func (p *Program) purge(ctx context.Context, chatID int64) {
	p.log.Info("purging unreachable user", zap.Int64("chatID", chatID))
	if err := p.repo.Delete(ctx, chatID); err != nil {
		p.log.Error("purge failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}
