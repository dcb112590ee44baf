package vaccines

import (
	"testing"
	"time"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestClassify_Buckets(t *testing.T) {
	applied := now.AddDate(-1, 0, 0)
	cases := []struct {
		name string
		next *time.Time
		want Status
	}{
		{"no next date", nil, StatusApplied},
		{"next equals now", ptr(now), StatusApplied},
		{"one second ago", ptr(now.Add(-time.Second)), StatusOverdue},
		{"3 days", ptr(now.Add(3 * 24 * time.Hour)), StatusDueSoon},
		{"exactly 7 days", ptr(now.Add(7 * 24 * time.Hour)), StatusDueSoon},
		{"7 days 23h truncates to 7", ptr(now.Add(7*24*time.Hour + 23*time.Hour)), StatusDueSoon},
		{"8 days", ptr(now.Add(8 * 24 * time.Hour)), StatusDueMonth},
		{"30 days", ptr(now.Add(30 * 24 * time.Hour)), StatusDueMonth},
		{"31 days", ptr(now.Add(31 * 24 * time.Hour)), StatusScheduled},
	}

	for _, c := range cases {
		if got := Classify(applied, c.next, now); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestClassify_OverdueTakesPrecedence(t *testing.T) {
	applied := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	next := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Classify(applied, &next, at); got != StatusOverdue {
		t.Fatalf("lapsed booster: got %s, want overdue", got)
	}

	// Cualquier refuerzo en el pasado es overdue, sin importar la fecha de aplicación.
	for days := 1; days <= 400; days += 7 {
		next := now.AddDate(0, 0, -days)
		for _, applied := range []time.Time{next.AddDate(-1, 0, 0), now.AddDate(0, 0, -1), now} {
			if got := Classify(applied, &next, now); got != StatusOverdue {
				t.Fatalf("next=%s applied=%s: got %s, want overdue", next, applied, got)
			}
		}
	}
}

func TestStatusLabel(t *testing.T) {
	want := map[Status]string{
		StatusApplied:   "Applied",
		StatusScheduled: "Scheduled",
		StatusDueMonth:  "Due this month",
		StatusDueSoon:   "Due soon",
		StatusOverdue:   "Overdue",
	}
	for st, label := range want {
		if st.Label() != label {
			t.Errorf("%s: got %q, want %q", st, st.Label(), label)
		}
	}
}
