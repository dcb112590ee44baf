package reports

import (
	"errors"
	"testing"
	"time"
)

func TestResolvePreset(t *testing.T) {
	for _, p := range []Preset{Preset7d, Preset30d, Preset90d, Preset180d, Preset365d} {
		rng, err := ResolvePreset(p, now)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if !rng.End.Equal(now) || !rng.Start.Equal(now.AddDate(0, 0, -p.Days())) {
			t.Errorf("%s: got [%s, %s]", p, rng.Start, rng.End)
		}
	}

	if _, err := ResolvePreset("14d", now); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DefaultPreset {
		t.Fatalf("empty must default to %s, got %s (%v)", DefaultPreset, p, err)
	}
	if p, err := ParsePreset(" 90D "); err != nil || p != Preset90d {
		t.Fatalf("got %s (%v)", p, err)
	}
	if _, err := ParsePreset("forever"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestCustom(t *testing.T) {
	start := now.AddDate(0, -1, 0)

	rng, err := Custom(start, time.Time{}, now)
	if err != nil || !rng.End.Equal(now) {
		t.Fatalf("zero end must default to now, got %+v (%v)", rng, err)
	}

	if _, err := Custom(now, start, now); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestRangeContainsIsInclusive(t *testing.T) {
	rng, _ := Custom(day(3, 1), day(3, 10), now)

	if !rng.Contains(day(3, 1)) || !rng.Contains(day(3, 10)) {
		t.Fatalf("bounds must be included")
	}
	if rng.Contains(day(3, 1).Add(-time.Nanosecond)) || rng.Contains(day(3, 10).Add(time.Nanosecond)) {
		t.Fatalf("outside bounds must be excluded")
	}
}

func TestParseRange(t *testing.T) {
	rng, err := ParseRange(RangeQuery{Preset: "7d"}, now)
	if err != nil || rng.Preset != Preset7d {
		t.Fatalf("preset: %+v (%v)", rng, err)
	}

	rng, err = ParseRange(RangeQuery{Preset: "7d", From: "2024-03-01", To: "2024-03-10"}, now)
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	if rng.Preset != PresetCustom || !rng.Contains(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("date-only end must cover the whole day: %+v", rng)
	}

	if _, err := ParseRange(RangeQuery{From: "yesterday"}, now); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := ParseRange(RangeQuery{From: "2024-03-10", To: "2024-03-01"}, now); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for reversed range, got %v", err)
	}
}
