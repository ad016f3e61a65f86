package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyWeight   = errors.New("empty weight")
	ErrInvalidWeight = errors.New("invalid weight")
	ErrWeightRange   = errors.New("weight out of range")
)

// Plausibility bounds for a human body weight in kg, open interval.
const (
	MinWeightKg = 20
	MaxWeightKg = 300
)

// weightPattern matches a plain decimal number with an optional comma or
// period separator. The router uses it to decide whether free text should be
// routed to weight recording at all.
var weightPattern = regexp.MustCompile(`^\d+([.,]\d+)?$`)

// LooksLikeWeight reports whether free text is shaped like a decimal number.
func LooksLikeWeight(s string) bool {
	return weightPattern.MatchString(strings.TrimSpace(s))
}

// ParseWeight parses a weight entry in kg. A comma decimal separator is
// normalized to a period, so "75,5" and "75.5" parse identically. Values
// outside (MinWeightKg, MaxWeightKg) are rejected as implausible.
func ParseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyWeight
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidWeight, s)
	}
	if v <= MinWeightKg || v >= MaxWeightKg {
		return 0, fmt.Errorf("%w: %.1f", ErrWeightRange, v)
	}
	return v, nil
}

// TriggerTime is a wall-clock minute at which a scheduled rule fires.
type TriggerTime struct {
	Hour   int
	Minute int
}

// ParseTrigger parses "HH:MM" into a TriggerTime.
func ParseTrigger(s string) (TriggerTime, error) {
	m, err := parseHHMM(s)
	if err != nil {
		return TriggerTime{}, err
	}
	return TriggerTime{Hour: m / 60, Minute: m % 60}, nil
}

// Matches reports whether t falls inside this trigger's minute.
func (tt TriggerTime) Matches(t time.Time) bool {
	return t.Hour() == tt.Hour && t.Minute() == tt.Minute
}

// AddMinutes returns the trigger shifted by n minutes, wrapping at midnight.
func (tt TriggerTime) AddMinutes(n int) TriggerTime {
	total := (tt.Hour*60 + tt.Minute + n) % 1440
	if total < 0 {
		total += 1440
	}
	return TriggerTime{Hour: total / 60, Minute: total % 60}
}

// String renders the trigger as HH:MM.
func (tt TriggerTime) String() string {
	return fmt.Sprintf("%02d:%02d", tt.Hour, tt.Minute)
}

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, errors.New("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.New("invalid hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.New("invalid minute")
	}
	return h*60 + m, nil
}
