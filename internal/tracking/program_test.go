package tracking

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/artem20051205/bady/internal/domain"
	"github.com/artem20051205/bady/internal/notify"
	"github.com/artem20051205/bady/internal/store"
)

type memRepo struct {
	recs map[int64][]byte
}

func newMemRepo() *memRepo { return &memRepo{recs: make(map[int64][]byte)} }

func (m *memRepo) Get(_ context.Context, chatID int64) (*domain.UserRecord, error) {
	doc, ok := m.recs[chatID]
	if !ok {
		return nil, store.ErrNotFound
	}
	var rec domain.UserRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (m *memRepo) Put(_ context.Context, rec *domain.UserRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	m.recs[rec.ChatID] = doc
	return nil
}

func (m *memRepo) ListIDs(_ context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(m.recs))
	for id := range m.recs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memRepo) Delete(_ context.Context, chatID int64) error {
	delete(m.recs, chatID)
	return nil
}

func (m *memRepo) Close() error { return nil }

// fakeSender records deliveries and can simulate unreachable users.
type fakeSender struct {
	sent      map[int64][]string
	menus     []int64
	permanent map[int64]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(map[int64][]string), permanent: make(map[int64]bool)}
}

func (f *fakeSender) Deliver(chatID int64, text string) notify.Status {
	if f.permanent[chatID] {
		return notify.StatusPermanent
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return notify.StatusOK
}

func (f *fakeSender) SendMainMenu(chatID int64, _ string) error {
	f.menus = append(f.menus, chatID)
	return nil
}

func (f *fakeSender) count(chatID int64, substr string) int {
	n := 0
	for _, s := range f.sent[chatID] {
		if strings.Contains(s, substr) {
			n++
		}
	}
	return n
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) set(hour, min int) {
	c.t = time.Date(c.t.Year(), c.t.Month(), c.t.Day(), hour, min, 10, 0, c.t.Location())
}

func (c *fakeClock) nextDay(hour, min int) {
	c.t = c.t.AddDate(0, 0, 1)
	c.set(hour, min)
}

var testTimes = Times{
	Menu:     domain.TriggerTime{Hour: 8, Minute: 30},
	Weight:   domain.TriggerTime{Hour: 20, Minute: 0},
	Reminder: domain.TriggerTime{Hour: 21, Minute: 0},
	Rollover: domain.TriggerTime{Hour: 0, Minute: 5},
}

func newTestProgram(totalDays int) (*Program, *memRepo, *fakeSender, *fakeClock) {
	repo := newMemRepo()
	sender := newFakeSender()
	clock := &fakeClock{t: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)}
	p := NewProgram(repo, sender, zap.NewNop(), clock, totalDays, testTimes, 30*time.Second)
	return p, repo, sender, clock
}

const userID = int64(777)

func tracked(t *testing.T, repo *memRepo) *domain.TrackingState {
	t.Helper()
	rec, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, rec.Tracking)
	return rec.Tracking
}

func TestEnrollFresh(t *testing.T) {
	ctx := context.Background()
	p, repo, sender, _ := newTestProgram(3)

	p.Enroll(ctx, userID)

	ts := tracked(t, repo)
	require.Equal(t, 1, ts.Day)
	require.True(t, ts.MenuSentToday)
	require.True(t, ts.AskedToday)
	require.False(t, ts.Finished)

	require.Equal(t, 1, sender.count(userID, "Інструкції"))
	require.Equal(t, 1, sender.count(userID, "Меню на день 1"))
	require.Equal(t, 1, sender.count(userID, "вага"))
}

func TestEnrollFinishedRejected(t *testing.T) {
	ctx := context.Background()
	p, repo, sender, clock := newTestProgram(3)

	rec := domain.NewUserRecord(userID, clock.Now())
	rec.Tracking = domain.NewTrackingState()
	rec.Tracking.Finished = true
	rec.Tracking.Day = 4
	require.NoError(t, repo.Put(ctx, rec))

	p.Enroll(ctx, userID)

	require.Equal(t, 1, sender.count(userID, "вже завершили"))
	require.Zero(t, sender.count(userID, "Меню"))
}

func TestEnrollActiveCatchUp(t *testing.T) {
	ctx := context.Background()
	p, repo, sender, clock := newTestProgram(3)

	rec := domain.NewUserRecord(userID, clock.Now())
	rec.Tracking = domain.NewTrackingState()
	rec.Tracking.Day = 2
	require.NoError(t, repo.Put(ctx, rec))

	p.Enroll(ctx, userID)

	require.Equal(t, 1, sender.count(userID, "Меню на день 2"))
	require.Equal(t, 1, sender.count(userID, "вага"))
	require.Equal(t, 2, tracked(t, repo).Day, "catch-up must not reset the day")

	// With today's weight already recorded there is no re-prompt.
	rec, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	rec.Tracking.PutWeight(domain.DateKey(clock.Now()), 80)
	require.NoError(t, repo.Put(ctx, rec))

	p.Enroll(ctx, userID)
	require.Equal(t, 2, sender.count(userID, "Меню на день 2"))
	require.Equal(t, 1, sender.count(userID, "Яка у вас вага"))
}

func TestRecordWeightCommaAndConfirmation(t *testing.T) {
	ctx := context.Background()
	p, repo, sender, clock := newTestProgram(3)
	p.Enroll(ctx, userID)

	p.RecordWeight(ctx, userID, "75,5")

	ts := tracked(t, repo)
	require.Equal(t, 75.5, ts.Weights[domain.DateKey(clock.Now())])
	require.Equal(t, domain.DateKey(clock.Now()), ts.LastEntryDate)
	require.Equal(t, 1, sender.count(userID, "75.5"))
	require.Equal(t, 1, sender.count(userID, "день 1"))
}

func TestRecordWeightDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	p, repo, sender, clock := newTestProgram(3)
	p.Enroll(ctx, userID)

	p.RecordWeight(ctx, userID, "75.5")
	p.RecordWeight(ctx, userID, "80")

	ts := tracked(t, repo)
	require.Equal(t, 75.5, ts.Weights[domain.DateKey(clock.Now())])
	require.Equal(t, 1, sender.count(userID, "вже записана"))
}

func TestRecordWeightBadInput(t *testing.T) {
	ctx := context.Background()
	p, repo, sender, _ := newTestProgram(3)
	p.Enroll(ctx, userID)

	for _, bad := range []string{"15", "301", "abc"} {
		p.RecordWeight(ctx, userID, bad)
	}

	require.Empty(t, tracked(t, repo).Weights)
	require.Equal(t, 3, sender.count(userID, "Не вдалося розпізнати"))
}

func TestRecordWeightIgnoredWithoutProgram(t *testing.T) {
	ctx := context.Background()
	p, _, sender, _ := newTestProgram(3)

	p.RecordWeight(ctx, userID, "75.5")
	require.Empty(t, sender.sent[userID])
}
