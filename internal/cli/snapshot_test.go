package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"pet-care-insights/internal/app"
	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/records"
	"pet-care-insights/internal/domain/reminders"
)

const sampleSnapshot = `{
  "pets": [
    {"id": "p1", "owner_user_id": "u1", "name": "Milo", "species": "dog",
     "vaccinations": [
       {"name": "Parvo", "date": "2024-03-01", "next_date": "2025-03-01"},
       {"name": "Broken", "date": "not-a-date"}
     ]}
  ],
  "events": [
    {"id": "e1", "pet_id": "p1", "title": "Control", "date": "2025-03-10T11:00:00Z", "type": "visit"},
    {"id": "e2", "pet_id": "p1", "title": "Sin fecha", "date": "mañana"}
  ],
  "reminders": [
    {"id": "r1", "pet_id": "p1", "title": "Pastilla", "date": "2025-03-11T10:00:00Z", "type": "medication"}
  ],
  "records": [
    {"pet_id": "p1", "kind": "metric", "id": "m1", "category": "weight", "value": 10, "date": "2025-02-20"},
    {"pet_id": "p1", "kind": "vaccination", "name": "Rabies", "date": "2024-03-14", "next_date": "pronto"},
    {"pet_id": "p1", "kind": "health_log", "date": "32/13/2025"},
    {"pet_id": "p1", "kind": "teeth", "date": "2025-02-20"}
  ]
}`

var snapNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestDecodeSnapshot_DropsInvalidPrimaryDates(t *testing.T) {
	ds, err := DecodeSnapshot(strings.NewReader(sampleSnapshot), time.UTC, snapNow, nil)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if len(ds.Pets) != 1 || len(ds.Pets[0].Vaccinations) != 1 {
		t.Fatalf("expected 1 pet with 1 valid vaccination, got %+v", ds.Pets)
	}
	if len(ds.Events) != 1 || ds.Events[0].ID != "e1" {
		t.Fatalf("expected only e1, got %+v", ds.Events)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ds.Records))
	}
	// vacuna rota, evento sin fecha, health_log con fecha inválida, kind desconocido
	if ds.Dropped != 4 {
		t.Fatalf("expected 4 dropped, got %d", ds.Dropped)
	}
}

func TestDecodeSnapshot_DefaultsAndOptionalDates(t *testing.T) {
	ds, err := DecodeSnapshot(strings.NewReader(sampleSnapshot), time.UTC, snapNow, nil)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	if ds.Events[0].Status != events.EventStatusPending {
		t.Fatalf("expected default pending, got %q", ds.Events[0].Status)
	}
	if ds.Reminders[0].Status != reminders.StatusActive {
		t.Fatalf("expected default active, got %q", ds.Reminders[0].Status)
	}

	vac, ok := ds.Records[1].(records.VaccinationRecord)
	if !ok {
		t.Fatalf("expected vaccination record, got %T", ds.Records[1])
	}
	if vac.NextDate != nil {
		t.Fatalf("unparseable next_date must be absent, got %v", vac.NextDate)
	}
	if vac.ID == "" {
		t.Fatalf("missing id must be generated")
	}
	if vac.PetID != "p1" {
		t.Fatalf("pet id not set: %+v", vac)
	}
}

func TestDecodeSnapshot_InvalidJSON(t *testing.T) {
	if _, err := DecodeSnapshot(strings.NewReader("{"), time.UTC, snapNow, nil); err == nil {
		t.Fatalf("expected error on invalid JSON")
	}
}

func TestDataset_StoreKeepsIDs(t *testing.T) {
	ds, err := DecodeSnapshot(strings.NewReader(sampleSnapshot), time.UTC, snapNow, nil)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}

	st := app.MemoryStores()
	ctx := context.Background()
	if err := ds.Store(ctx, st); err != nil {
		t.Fatalf("Store: %v", err)
	}

	if _, err := st.Events.GetByID(ctx, "e1"); err != nil {
		t.Fatalf("expected e1 stored: %v", err)
	}
	recs, _ := st.Records.ListByPet(ctx, "p1", records.ListFilter{})
	if len(recs) != 2 || recs[0].RecordID() != "m1" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}
