package tracking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/artem20051205/bady/internal/domain"
	"github.com/artem20051205/bady/internal/notify"
)

// Run starts the polling loop until ctx is canceled. The poll interval must
// stay below one minute or exact-minute triggers can be skipped entirely.
func (p *Program) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("tracking scheduler stopping")
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick performs one scheduling cycle: every enrolled, non-finished user is
// checked against four time-gated rules, each at most once per matching
// minute. Iteration runs over an id snapshot taken at tick start, so a record
// purged mid-cycle cannot invalidate it.
func (p *Program) Tick(ctx context.Context) {
	now := p.clock.Now()
	today := domain.DateKey(now)

	ids, err := p.repo.ListIDs(ctx)
	if err != nil {
		p.log.Error("list users failed", zap.Error(err))
		return
	}

	for _, chatID := range ids {
		rec, err := p.repo.Get(ctx, chatID)
		if err != nil {
			// Record may have been purged after the snapshot was taken.
			continue
		}
		t := rec.Tracking
		if t == nil {
			continue
		}

		// Rule 1: midnight rollover. The last-rollover date guards against a
		// second tick inside the same matching minute double-incrementing day.
		if !t.Finished && p.times.Rollover.Matches(now) && t.LastRollover != today {
			t.MenuSentToday = false
			t.AskedToday = false
			t.LastRollover = today
			t.Day++
			if t.Day > p.totalDays {
				t.Finished = true
				if p.sendCompletion(ctx, chatID, t) == notify.StatusPermanent {
					p.purge(ctx, chatID)
					continue
				}
			}
			p.persist(ctx, rec)
		}

		// Rule 1 may have finished the program for this user just now.
		if t.Finished {
			continue
		}

		// Rule 2: morning menu.
		if p.times.Menu.Matches(now) && !t.MenuSentToday {
			switch p.sender.Deliver(chatID, domain.MenuFor(t.Day)) {
			case notify.StatusPermanent:
				p.purge(ctx, chatID)
				continue
			case notify.StatusOK:
				t.MenuSentToday = true
				p.persist(ctx, rec)
			}
		}

		// Rule 3: evening weight prompt.
		if p.times.Weight.Matches(now) && !t.HasWeight(today) && !t.AskedToday {
			switch p.sender.Deliver(chatID, weightQuestion) {
			case notify.StatusPermanent:
				p.purge(ctx, chatID)
				continue
			case notify.StatusOK:
				t.AskedToday = true
				p.persist(ctx, rec)
			}
		}

		// Rule 4: reminder, only when we did ask and still have no entry.
		// Not persisted; a repeated send within the minute is acceptable.
		if p.times.Reminder.Matches(now) && !t.HasWeight(today) && t.AskedToday {
			if p.sender.Deliver(chatID, reminderText) == notify.StatusPermanent {
				p.purge(ctx, chatID)
			}
		}
	}
}

// sendCompletion reports the program summary: weight change between the
// earliest and latest recorded dates, or a no-delta message when nothing was
// ever recorded. The main menu follows so the user is not left at a dead end.
func (p *Program) sendCompletion(ctx context.Context, chatID int64, t *domain.TrackingState) notify.Status {
	var text string
	if delta, days, ok := t.WeightDelta(); ok {
		text = fmt.Sprintf("🏁 Програму завершено! Зміна ваги: %+.1f кг (записів: %d). Дякуємо за участь!", delta, days)
	} else {
		text = "🏁 Програму завершено! Ви не записали жодної ваги. Дякуємо за участь!"
	}
	st := p.sender.Deliver(chatID, text)
	if st == notify.StatusOK {
		if err := p.sender.SendMainMenu(chatID, menuFooterText); err != nil {
			p.log.Warn("main menu after completion failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
	}
	return st
}
