package reminders

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	items map[string]Reminder
	order []string
}

func (r *fakeRepo) Create(ctx context.Context, rem Reminder) error {
	r.items[rem.ID] = rem
	r.order = append(r.order, rem.ID)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (Reminder, error) {
	rem, ok := r.items[id]
	if !ok {
		return Reminder{}, ErrNotFound
	}
	return rem, nil
}

func (r *fakeRepo) ListByPet(ctx context.Context, petID string, status Status) ([]Reminder, error) {
	var out []Reminder
	for _, id := range r.order {
		rem := r.items[id]
		if rem.PetID == petID && (status == "" || rem.Status == status) {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *fakeRepo) SetStatus(ctx context.Context, id string, status Status, at time.Time) error {
	rem, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	rem.Status = status
	rem.UpdatedAt = at
	r.items[id] = rem
	return nil
}

var fixed = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService() *Service {
	return NewService(&fakeRepo{items: map[string]Reminder{}}, func() time.Time { return fixed })
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rem, err := svc.Create(ctx, "p1", CreateInput{Title: " Pipeta ", Date: fixed.Add(time.Hour)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rem.ID == "" || rem.Title != "Pipeta" || rem.Type != ReminderTypeOther || rem.Status != StatusActive {
		t.Fatalf("unexpected reminder: %+v", rem)
	}
	if !rem.CreatedAt.Equal(fixed) {
		t.Fatalf("CreatedAt = %v, want injected clock", rem.CreatedAt)
	}

	bad := []struct {
		name  string
		petID string
		in    CreateInput
	}{
		{"no pet", "", CreateInput{Title: "x", Date: fixed}},
		{"no title", "p1", CreateInput{Title: "  ", Date: fixed}},
		{"zero date", "p1", CreateInput{Title: "x"}},
		{"bad type", "p1", CreateInput{Title: "x", Date: fixed, Type: "walk"}},
	}
	for _, tc := range bad {
		if _, err := svc.Create(ctx, tc.petID, tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestDeactivate_IsIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rem, _ := svc.Create(ctx, "p1", CreateInput{Title: "Vacuna", Date: fixed, Type: ReminderTypeVaccine})

	got, err := svc.Deactivate(ctx, rem.ID)
	if err != nil || got.Status != StatusInactive {
		t.Fatalf("Deactivate: %+v, %v", got, err)
	}
	again, err := svc.Deactivate(ctx, rem.ID)
	if err != nil || again.Status != StatusInactive {
		t.Fatalf("second Deactivate: %+v, %v", again, err)
	}
	if _, err := svc.Deactivate(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListActiveForPets(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, "p1", CreateInput{Title: "a", Date: fixed})
	off, _ := svc.Create(ctx, "p1", CreateInput{Title: "b", Date: fixed})
	c, _ := svc.Create(ctx, "p2", CreateInput{Title: "c", Date: fixed})
	_, _ = svc.Create(ctx, "p3", CreateInput{Title: "d", Date: fixed})
	_, _ = svc.Deactivate(ctx, off.ID)

	got, err := svc.ListActiveForPets(ctx, []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("ListActiveForPets: %v", err)
	}
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Fatalf("unexpected reminders: %+v", got)
	}

	all, _ := svc.ListByPet(ctx, "p1", "")
	if len(all) != 2 {
		t.Fatalf("expected 2 reminders for p1, got %d", len(all))
	}
}

func TestActive_PreservesOrder(t *testing.T) {
	items := []Reminder{
		{ID: "1", Status: StatusActive},
		{ID: "2", Status: StatusInactive},
		{ID: "3", Status: StatusActive},
	}
	got := Active(items)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected: %+v", got)
	}
}
