package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-care-insights/internal/app"
	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/records"
	"pet-care-insights/internal/domain/reminders"
	"pet-care-insights/internal/platform/dates"
	"pet-care-insights/internal/platform/logger"
)

// snapshot es el formato de --data. Fechas como string (RFC3339 o
// YYYY-MM-DD); los registros usan el mismo JSON que POST /records más pet_id.
type snapshot struct {
	Pets      []snapshotPet    `json:"pets"`
	Events    []snapshotEntry  `json:"events"`
	Reminders []snapshotEntry  `json:"reminders"`
	Records   []snapshotRecord `json:"records"`
}

type snapshotPet struct {
	ID           string                `json:"id"`
	OwnerUserID  string                `json:"owner_user_id"`
	Name         string                `json:"name"`
	Species      string                `json:"species"`
	Breed        string                `json:"breed"`
	Sex          string                `json:"sex"`
	BirthDate    string                `json:"birth_date"`
	PhotoURL     string                `json:"photo_url"`
	Notes        string                `json:"notes"`
	Vaccinations []snapshotVaccination `json:"vaccinations"`
}

type snapshotVaccination struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	NextDate string `json:"next_date"`
	VetName  string `json:"vet_name"`
}

// snapshotEntry sirve para eventos y recordatorios (mismos campos).
type snapshotEntry struct {
	ID     string `json:"id"`
	PetID  string `json:"pet_id"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type snapshotRecord struct {
	PetID string `json:"pet_id"`
	records.Payload
}

// Dataset es el snapshot ya validado, listo para cargar en un store.
type Dataset struct {
	Pets      []pets.Pet
	Events    []events.CalendarEvent
	Reminders []reminders.Reminder
	Records   []records.Record

	// Dropped cuenta entradas descartadas por fecha principal inválida.
	Dropped int
}

func LoadSnapshotFile(path string, loc *time.Location, now time.Time, log logger.Logger) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("snapshot: %w", err)
	}
	defer f.Close()
	return DecodeSnapshot(f, loc, now, log)
}

// DecodeSnapshot valida fechas: una fecha principal que no parsea descarta la
// entrada con un warning; una opcional que no parsea queda ausente.
func DecodeSnapshot(r io.Reader, loc *time.Location, now time.Time, log logger.Logger) (Dataset, error) {
	if log == nil {
		log = logger.Nop()
	}

	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Dataset{}, fmt.Errorf("snapshot: %w", err)
	}

	var ds Dataset
	drop := func(kind, id, field, value string) {
		ds.Dropped++
		log.Warn("invalid timestamp, entry dropped", map[string]any{
			"kind": kind, "id": id, "field": field, "value": value,
		})
	}

	for _, sp := range snap.Pets {
		p := pets.Pet{
			ID:          orNewID(sp.ID),
			OwnerUserID: strings.TrimSpace(sp.OwnerUserID),
			Name:        strings.TrimSpace(sp.Name),
			Species:     pets.Species(orDefault(sp.Species, string(pets.SpeciesOther))),
			Breed:       sp.Breed,
			Sex:         pets.Sex(orDefault(sp.Sex, string(pets.SexUnknown))),
			BirthDate:   dates.ParseOptional(sp.BirthDate, loc),
			PhotoURL:    sp.PhotoURL,
			Notes:       sp.Notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		p.Vaccinations = make([]pets.EmbeddedVaccination, 0, len(sp.Vaccinations))
		for _, v := range sp.Vaccinations {
			applied, ok := dates.Parse(v.Date, loc)
			if !ok {
				drop("pet_vaccination", p.ID, "date", v.Date)
				continue
			}
			p.Vaccinations = append(p.Vaccinations, pets.EmbeddedVaccination{
				Name:     strings.TrimSpace(v.Name),
				Date:     applied,
				NextDate: dates.ParseOptional(v.NextDate, loc),
				VetName:  v.VetName,
			})
		}
		ds.Pets = append(ds.Pets, p)
	}

	for _, se := range snap.Events {
		at, ok := dates.Parse(se.Date, loc)
		if !ok {
			drop("event", se.ID, "date", se.Date)
			continue
		}
		ds.Events = append(ds.Events, events.CalendarEvent{
			ID:        orNewID(se.ID),
			PetID:     se.PetID,
			Title:     strings.TrimSpace(se.Title),
			Date:      at,
			Type:      events.EventType(orDefault(se.Type, string(events.EventTypeOther))),
			Status:    events.EventStatus(orDefault(se.Status, string(events.EventStatusPending))),
			Notes:     se.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	for _, se := range snap.Reminders {
		at, ok := dates.Parse(se.Date, loc)
		if !ok {
			drop("reminder", se.ID, "date", se.Date)
			continue
		}
		ds.Reminders = append(ds.Reminders, reminders.Reminder{
			ID:        orNewID(se.ID),
			PetID:     se.PetID,
			Title:     strings.TrimSpace(se.Title),
			Date:      at,
			Type:      reminders.ReminderType(orDefault(se.Type, string(reminders.ReminderTypeOther))),
			Status:    reminders.Status(orDefault(se.Status, string(reminders.StatusActive))),
			Notes:     se.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	for _, sr := range snap.Records {
		rec, err := sr.Payload.ToRecord(loc)
		if err != nil {
			log.Warn("unknown record kind, entry dropped", map[string]any{"id": sr.ID, "kind": string(sr.Kind)})
			ds.Dropped++
			continue
		}
		if rec.Timestamp().IsZero() {
			drop(string(sr.Kind), sr.ID, "date", primaryDate(sr.Payload))
			continue
		}
		rec = records.WithID(rec, orNewID(sr.ID))
		ds.Records = append(ds.Records, records.WithPet(rec, sr.PetID))
	}

	return ds, nil
}

// Store escribe el dataset tal cual (ids incluidos) en los repositorios.
func (ds Dataset) Store(ctx context.Context, st app.Stores) error {
	for _, p := range ds.Pets {
		if err := st.Pets.Create(ctx, p); err != nil {
			return fmt.Errorf("pet %s: %w", p.ID, err)
		}
	}
	for _, e := range ds.Events {
		if err := st.Events.Create(ctx, e); err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
	}
	for _, r := range ds.Reminders {
		if err := st.Reminders.Create(ctx, r); err != nil {
			return fmt.Errorf("reminder %s: %w", r.ID, err)
		}
	}
	for _, r := range ds.Records {
		if err := st.Records.Create(ctx, r); err != nil {
			return fmt.Errorf("record %s: %w", r.RecordID(), err)
		}
	}
	return nil
}

func (ds Dataset) summary() map[string]any {
	return map[string]any{
		"pets":      len(ds.Pets),
		"events":    len(ds.Events),
		"reminders": len(ds.Reminders),
		"records":   len(ds.Records),
		"dropped":   ds.Dropped,
	}
}

func primaryDate(p records.Payload) string {
	if p.Kind == records.KindMedication && p.StartDate != "" {
		return p.StartDate
	}
	return p.Date
}

func orNewID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
