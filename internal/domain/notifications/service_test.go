package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/reminders"
	"pet-care-insights/internal/platform/logger"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testPetsRepo struct{ items []pets.Pet }

func (r *testPetsRepo) Create(ctx context.Context, p pets.Pet) error { return nil }
func (r *testPetsRepo) Update(ctx context.Context, p pets.Pet) error { return nil }
func (r *testPetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return pets.Pet{}, pets.ErrNotFound
}
func (r *testPetsRepo) ListByOwner(ctx context.Context, owner string) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for _, p := range r.items {
		if p.OwnerUserID == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

type testEventsRepo struct {
	items []events.CalendarEvent
	err   error
}

func (r *testEventsRepo) Create(ctx context.Context, e events.CalendarEvent) error { return nil }
func (r *testEventsRepo) GetByID(ctx context.Context, id string) (events.CalendarEvent, error) {
	return events.CalendarEvent{}, events.ErrNotFound
}
func (r *testEventsRepo) ListByPet(ctx context.Context, petID string, f events.ListFilter) ([]events.CalendarEvent, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]events.CalendarEvent, 0)
	for _, e := range r.items {
		if e.PetID == petID && f.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *testEventsRepo) SetStatus(ctx context.Context, id string, st events.EventStatus, at time.Time) error {
	return nil
}

type testRemindersRepo struct{ items []reminders.Reminder }

func (r *testRemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error { return nil }
func (r *testRemindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	return reminders.Reminder{}, reminders.ErrNotFound
}
func (r *testRemindersRepo) ListByPet(ctx context.Context, petID string, st reminders.Status) ([]reminders.Reminder, error) {
	out := make([]reminders.Reminder, 0)
	for _, rem := range r.items {
		if rem.PetID == petID && (st == "" || rem.Status == st) {
			out = append(out, rem)
		}
	}
	return out, nil
}
func (r *testRemindersRepo) SetStatus(ctx context.Context, id string, st reminders.Status, at time.Time) error {
	return nil
}

func newTestService(evRepo *testEventsRepo) *Service {
	clock := func() time.Time { return now }
	petsRepo := &testPetsRepo{items: []pets.Pet{
		{ID: "p1", OwnerUserID: "u1", Name: "Luna"},
		{ID: "p9", OwnerUserID: "someone-else", Name: "Rex"},
	}}
	remRepo := &testRemindersRepo{items: []reminders.Reminder{
		activeReminder("r1", "p1", reminders.ReminderTypeMedication, at(10, 20, 0)),
		activeReminder("r9", "p9", reminders.ReminderTypeMedication, at(10, 20, 0)),
	}}

	return NewService(
		pets.NewService(petsRepo, clock),
		events.NewService(evRepo, clock),
		reminders.NewService(remRepo, clock),
		logger.Nop(),
		clock,
	)
}

func TestForUser_OnlyOwnPets(t *testing.T) {
	svc := newTestService(&testEventsRepo{items: []events.CalendarEvent{
		pendingEvent("e1", "p1", at(11, 8, 0)),
		pendingEvent("e9", "p9", at(11, 8, 0)),
	}})

	feed := svc.ForUser(context.Background(), "u1")

	if len(feed.Notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %+v", feed.Notifications)
	}
	for _, n := range feed.Notifications {
		if n.PetID != "p1" {
			t.Fatalf("leaked notification from another owner: %+v", n)
		}
	}
	if feed.UnreadCount != 2 {
		t.Fatalf("expected unread=2, got %d", feed.UnreadCount)
	}
}

func TestForUser_FetchErrorYieldsEmptyFeed(t *testing.T) {
	svc := newTestService(&testEventsRepo{err: errors.New("db down")})

	feed := svc.ForUser(context.Background(), "u1")

	if feed.Notifications == nil || len(feed.Notifications) != 0 || feed.UnreadCount != 0 {
		t.Fatalf("expected Empty() on failure, got %+v", feed)
	}
}

func TestForUser_NoPets(t *testing.T) {
	svc := newTestService(&testEventsRepo{})
	feed := svc.ForUser(context.Background(), "nobody")
	if len(feed.Notifications) != 0 {
		t.Fatalf("expected empty feed, got %+v", feed)
	}
}
