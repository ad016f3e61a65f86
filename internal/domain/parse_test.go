package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseWeightSeparators(t *testing.T) {
	a, err := ParseWeight("75.5")
	if err != nil {
		t.Fatalf("parse 75.5: %v", err)
	}
	b, err := ParseWeight("75,5")
	if err != nil {
		t.Fatalf("parse 75,5: %v", err)
	}
	if a != b || a != 75.5 {
		t.Fatalf("want 75.5 for both separators, got %v and %v", a, b)
	}
}

func TestParseWeightRange(t *testing.T) {
	for _, s := range []string{"15", "20", "300", "301"} {
		if _, err := ParseWeight(s); !errors.Is(err, ErrWeightRange) {
			t.Errorf("ParseWeight(%q): want ErrWeightRange, got %v", s, err)
		}
	}
	if _, err := ParseWeight("20.1"); err != nil {
		t.Errorf("ParseWeight(20.1): %v", err)
	}
}

func TestParseWeightGarbage(t *testing.T) {
	if _, err := ParseWeight(""); !errors.Is(err, ErrEmptyWeight) {
		t.Errorf("empty input: want ErrEmptyWeight, got %v", err)
	}
	if _, err := ParseWeight("abc"); !errors.Is(err, ErrInvalidWeight) {
		t.Errorf("garbage input: want ErrInvalidWeight, got %v", err)
	}
}

func TestLooksLikeWeight(t *testing.T) {
	for _, s := range []string{"75", "75.5", "75,5", " 80 "} {
		if !LooksLikeWeight(s) {
			t.Errorf("LooksLikeWeight(%q) = false", s)
		}
	}
	for _, s := range []string{"", "abc", "75kg", "7.5.5", "/start"} {
		if LooksLikeWeight(s) {
			t.Errorf("LooksLikeWeight(%q) = true", s)
		}
	}
}

func TestParseTrigger(t *testing.T) {
	tt, err := ParseTrigger("08:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tt.Hour != 8 || tt.Minute != 30 {
		t.Fatalf("want 08:30, got %s", tt)
	}
	at := time.Date(2025, time.March, 3, 8, 30, 45, 0, time.UTC)
	if !tt.Matches(at) {
		t.Fatal("expected match inside the minute")
	}
	if tt.Matches(at.Add(time.Minute)) {
		t.Fatal("unexpected match one minute later")
	}
	for _, bad := range []string{"24:00", "08:60", "0830", ""} {
		if _, err := ParseTrigger(bad); err == nil {
			t.Errorf("ParseTrigger(%q): want error", bad)
		}
	}
}

func TestTriggerAddMinutes(t *testing.T) {
	tt := TriggerTime{Hour: 23, Minute: 45}
	got := tt.AddMinutes(30)
	if got.Hour != 0 || got.Minute != 15 {
		t.Fatalf("want 00:15 after wrap, got %s", got)
	}
}
