package urgency

import (
	"errors"
	"testing"
	"time"
)

var now = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func TestClassify_TodayTomorrowOverdue(t *testing.T) {
	cases := []struct {
		name  string
		ts    time.Time
		level Level
		label string
	}{
		{"today", time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), High, "Today at 18:00"},
		{"tomorrow", time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC), Medium, "Tomorrow at 08:00"},
		{"overdue", time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC), High, "Overdue"},
		{"overdue same day", time.Date(2024, 1, 10, 8, 59, 0, 0, time.UTC), High, "Overdue"},
		{"later", time.Date(2024, 1, 12, 14, 30, 0, 0, time.UTC), Normal, "12/01 at 14:30"},
	}

	for _, c := range cases {
		got, err := Classify(c.ts, now)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", c.name, err)
		}
		if got.Level != c.level || got.TimeLabel != c.label {
			t.Errorf("%s: got (%s, %q), want (%s, %q)", c.name, got.Level, got.TimeLabel, c.level, c.label)
		}
	}
}

func TestClassify_Window(t *testing.T) {
	// Recorre de -48h a +96h en pasos de 30 minutos: incluido sii dentro de [-24h, +72h].
	for d := -48 * time.Hour; d <= 96*time.Hour; d += 30 * time.Minute {
		ts := now.Add(d)
		_, err := Classify(ts, now)
		inside := d >= -24*time.Hour && d <= 72*time.Hour

		if inside && err != nil {
			t.Fatalf("offset %s: expected classification, got %v", d, err)
		}
		if !inside && !errors.Is(err, ErrOutsideWindow) {
			t.Fatalf("offset %s: expected ErrOutsideWindow, got %v", d, err)
		}
	}
}

func TestClassify_WindowBoundsAreInclusive(t *testing.T) {
	if _, err := Classify(now.Add(-24*time.Hour), now); err != nil {
		t.Fatalf("-24h must be inside: %v", err)
	}
	if _, err := Classify(now.Add(72*time.Hour), now); err != nil {
		t.Fatalf("+72h must be inside: %v", err)
	}
	if _, err := Classify(now.Add(72*time.Hour+time.Second), now); !errors.Is(err, ErrOutsideWindow) {
		t.Fatalf("+72h1s must be outside, got %v", err)
	}
}

func TestClassify_InvalidTimestamp(t *testing.T) {
	_, err := Classify(time.Time{}, now)
	if !errors.Is(err, ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
}

func TestClassify_LabelsUseNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	localNow := time.Date(2024, 1, 10, 9, 0, 0, 0, loc)

	// 2024-01-11T02:00Z = 2024-01-10 23:00 en UTC-3 => hoy, no mañana.
	got, err := Classify(time.Date(2024, 1, 11, 2, 0, 0, 0, time.UTC), localNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Level != High || got.TimeLabel != "Today at 23:00" {
		t.Fatalf("got (%s, %q)", got.Level, got.TimeLabel)
	}
}

func TestLevelRank(t *testing.T) {
	if !(High.Rank() < Medium.Rank() && Medium.Rank() < Normal.Rank()) {
		t.Fatalf("unexpected rank order")
	}
	if !High.Unread() || !Medium.Unread() || Normal.Unread() {
		t.Fatalf("unexpected unread flags")
	}
}
