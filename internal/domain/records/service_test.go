package records

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	items []Record
}

func (r *fakeRepo) Create(ctx context.Context, rec Record) error {
	r.items = append(r.items, rec)
	return nil
}

func (r *fakeRepo) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Record, error) {
	var out []Record
	for _, rec := range r.items {
		if rec.PetRef() == petID && filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestAdd_AssignsIDAndPet(t *testing.T) {
	svc := NewService(&fakeRepo{})

	got, err := svc.Add(context.Background(), "p1", HealthLog{
		Date:     base,
		Symptoms: []string{" cough ", "", "sneeze"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	log := got.(HealthLog)
	if log.ID == "" || log.PetID != "p1" {
		t.Fatalf("expected id and pet id, got %+v", log)
	}
	if len(log.Symptoms) != 2 || log.Symptoms[0] != "cough" {
		t.Fatalf("symptoms not cleaned: %q", log.Symptoms)
	}
}

func TestAdd_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()
	early := base.AddDate(0, 0, -1)

	cases := []struct {
		name string
		rec  Record
		want error
	}{
		{"zero date", MetricRecord{Category: CategoryWeight}, ErrInvalidTimestamp},
		{"bad category", MetricRecord{Category: "mood", Date: base}, ErrInvalidInput},
		{"negative minutes", HealthLog{Date: base, ActivityMinutes: -5}, ErrInvalidInput},
		{"vaccination without name", VaccinationRecord{Date: base}, ErrInvalidInput},
		{"medication without name", MedicationRecord{StartDate: base}, ErrInvalidInput},
		{"medication ends before start", MedicationRecord{Name: "Amoxi", StartDate: base, EndDate: &early}, ErrInvalidInput},
		{"medication without start", MedicationRecord{Name: "Amoxi"}, ErrInvalidTimestamp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(ctx, "p1", tc.rec); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := svc.Add(ctx, "", MetricRecord{Category: CategoryWeight, Date: base}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without pet, got %v", err)
	}
}

func TestListByPet_SortedByTimestamp(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	_, _ = svc.Add(ctx, "p1", MetricRecord{Category: CategoryWeight, Value: 2, Date: base.AddDate(0, 0, 2)})
	_, _ = svc.Add(ctx, "p1", MedicationRecord{Name: "Amoxi", StartDate: base})
	_, _ = svc.Add(ctx, "p1", MetricRecord{Category: CategoryWeight, Value: 1, Date: base.AddDate(0, 0, 1)})

	items, err := svc.ListByPet(ctx, "p1", ListFilter{})
	if err != nil {
		t.Fatalf("ListByPet: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Timestamp().Before(items[i-1].Timestamp()) {
			t.Fatalf("not sorted at %d", i)
		}
	}
	if items[0].Kind() != KindMedication {
		t.Fatalf("expected medication first, got %s", items[0].Kind())
	}
}

func TestPayload_RoundTrip(t *testing.T) {
	next := base.AddDate(1, 0, 0)
	in := VaccinationRecord{ID: "v1", Name: "Rabies", Date: base, NextDate: &next, VetName: "Dr. Paz"}

	out, err := ToPayload(in).ToRecord(time.UTC)
	if err != nil {
		t.Fatalf("ToRecord: %v", err)
	}
	v := out.(VaccinationRecord)
	if v.Name != "Rabies" || !v.Date.Equal(base) || v.NextDate == nil || !v.NextDate.Equal(next) {
		t.Fatalf("round trip lost data: %+v", v)
	}

	if _, err := (Payload{Kind: "teeth"}).ToRecord(time.UTC); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestWithPet(t *testing.T) {
	r := WithPet(MetricRecord{ID: "m1"}, "p9")
	if r.PetRef() != "p9" || r.RecordID() != "m1" {
		t.Fatalf("unexpected: %+v", r)
	}
}

func TestKind_Valid(t *testing.T) {
	for _, k := range AllKinds {
		if !k.Valid() {
			t.Fatalf("%s should be valid", k)
		}
	}
	if Kind("teeth").Valid() {
		t.Fatalf("unknown kind should be invalid")
	}
}
