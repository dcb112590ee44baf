package dates

import (
	"testing"
	"time"
)

func TestSameDayAndTomorrow(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	if !SameDay(time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC), now) {
		t.Fatalf("expected same day")
	}
	if SameDay(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), now) {
		t.Fatalf("midnight of next day must not be same day")
	}
	if !IsTomorrow(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), now) {
		t.Fatalf("expected tomorrow")
	}
	// fin de mes
	eom := time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC)
	if !IsTomorrow(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), eom) {
		t.Fatalf("expected Feb 1 to be tomorrow of Jan 31")
	}
}

func TestSameDayUsesReferenceLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	now := time.Date(2024, 1, 10, 22, 0, 0, 0, loc)

	// 2024-01-11T00:30Z es 2024-01-10 21:30 en UTC-3.
	ts := time.Date(2024, 1, 11, 0, 30, 0, 0, time.UTC)
	if !SameDay(ts, now) {
		t.Fatalf("expected same calendar day in reference location")
	}
}

func TestWholeDaysUntilTruncates(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		target time.Time
		want   int
	}{
		{now.Add(23 * time.Hour), 0},
		{now.Add(24 * time.Hour), 1},
		{now.Add(7*Day + time.Hour), 7},
		{now.Add(-25 * time.Hour), -1},
	}
	for _, c := range cases {
		if got := WholeDaysUntil(c.target, now); got != c.want {
			t.Errorf("WholeDaysUntil(%s) = %d, want %d", c.target, got, c.want)
		}
	}
}

func TestWithinIsInclusive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	if !Within(start, start, end) || !Within(end, start, end) {
		t.Fatalf("bounds must be included")
	}
	if Within(end.Add(time.Nanosecond), start, end) {
		t.Fatalf("after end must be excluded")
	}
}

func TestParseLayouts(t *testing.T) {
	for _, s := range []string{
		"2024-01-10T18:00:00Z",
		"2024-01-10T18:00:00-03:00",
		"2024-01-10T18:00",
		"2024-01-10",
	} {
		if _, ok := Parse(s, time.UTC); !ok {
			t.Errorf("expected %q to parse", s)
		}
	}

	if _, ok := Parse("not a date", time.UTC); ok {
		t.Fatalf("expected parse failure")
	}
	if ParseOptional("", time.UTC) != nil {
		t.Fatalf("empty optional date must be nil")
	}
}
