package domain

import (
	"sort"
	"time"
)

// DateLayout is the calendar-date key format used throughout the tracking
// program (weights map keys, lastEntryDate, rollover guard).
const DateLayout = "2006-01-02"

// DateKey formats t as a calendar-date key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// SurveyState is the per-user questionnaire progress. Progress equals the
// number of answered questions; Progress == len(Questions) means finished.
type SurveyState struct {
	Scores    map[Category]int `json:"test_scores"`
	Progress  int              `json:"test_progress"`
	LastMsgID int              `json:"last_question_msg_id,omitempty"`
}

// NewSurveyState returns a zeroed survey state covering the full category set.
func NewSurveyState() SurveyState {
	scores := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		scores[c] = 0
	}
	return SurveyState{Scores: scores}
}

// Finished reports whether every question has been answered.
func (s *SurveyState) Finished() bool {
	return s.Progress >= len(Questions)
}

// ApplyYes adds the question's weights to the scores. Callers must have
// verified the qid against Progress first.
func (s *SurveyState) ApplyYes(qid int) {
	if qid < 0 || qid >= len(Questions) {
		return
	}
	if s.Scores == nil {
		s.Scores = NewSurveyState().Scores
	}
	for cat, w := range Questions[qid].Weights {
		s.Scores[cat] += w
	}
}

// TrackingState is the per-user multi-day program state. Weights is keyed by
// calendar date; each date is written at most once (first write wins).
type TrackingState struct {
	Day           int                `json:"day"`
	Weights       map[string]float64 `json:"weights"`
	Finished      bool               `json:"finished"`
	AskedToday    bool               `json:"askedToday"`
	MenuSentToday bool               `json:"menuSentToday"`
	LastEntryDate string             `json:"lastEntryDate,omitempty"`
	LastRollover  string             `json:"lastRollover,omitempty"`
}

// NewTrackingState returns a day-1 tracking state.
func NewTrackingState() *TrackingState {
	return &TrackingState{Day: 1, Weights: make(map[string]float64)}
}

// HasWeight reports whether a weight is recorded for the given date key.
func (t *TrackingState) HasWeight(date string) bool {
	_, ok := t.Weights[date]
	return ok
}

// PutWeight records a weight for the date if none exists yet and reports
// whether the write happened.
func (t *TrackingState) PutWeight(date string, value float64) bool {
	if t.Weights == nil {
		t.Weights = make(map[string]float64)
	}
	if _, ok := t.Weights[date]; ok {
		return false
	}
	t.Weights[date] = value
	t.LastEntryDate = date
	return true
}

// WeightDelta returns the difference between the latest- and earliest-dated
// recorded weights (by date order, not insertion order) and the number of
// distinct days with an entry. ok is false when nothing was recorded.
func (t *TrackingState) WeightDelta() (delta float64, days int, ok bool) {
	if len(t.Weights) == 0 {
		return 0, 0, false
	}
	dates := make([]string, 0, len(t.Weights))
	for d := range t.Weights {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	first := t.Weights[dates[0]]
	last := t.Weights[dates[len(dates)-1]]
	return last - first, len(dates), true
}

// UserRecord is the durable per-user aggregate, stored as one JSON document
// keyed by the Telegram chat id. Tracking stays nil until the user enrolls.
type UserRecord struct {
	ChatID    int64          `json:"chat_id"`
	FullName  string         `json:"fullName,omitempty"`
	Survey    SurveyState    `json:"survey"`
	Tracking  *TrackingState `json:"tracking,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewUserRecord creates a fresh record with a zeroed survey state.
func NewUserRecord(chatID int64, now time.Time) *UserRecord {
	return &UserRecord{
		ChatID:    chatID,
		Survey:    NewSurveyState(),
		CreatedAt: now.UTC(),
	}
}
