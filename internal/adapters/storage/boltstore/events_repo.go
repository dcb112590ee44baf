package boltstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"pet-care-insights/internal/domain/events"
)

type eventDoc struct {
	ID        string             `json:"id"`
	PetID     string             `json:"pet_id"`
	Title     string             `json:"title"`
	Date      time.Time          `json:"date"`
	Type      events.EventType   `json:"type"`
	Status    events.EventStatus `json:"status"`
	Notes     string             `json:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type eventRepo struct {
	s *Store
}

func (s *Store) Events() events.Repository {
	return &eventRepo{s: s}
}

func (r *eventRepo) Create(ctx context.Context, e events.CalendarEvent) error {
	return r.s.db.Update(func(tx *bolt.Tx) error {
		return put(tx, bucketEvents, e.ID, eventDoc(e))
	})
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.CalendarEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.CalendarEvent{}, events.ErrNotFound
	}

	var doc eventDoc
	var found bool
	err := r.s.db.View(func(tx *bolt.Tx) error {
		var err error
		found, err = get(tx, bucketEvents, id, &doc)
		return err
	})
	if err != nil {
		return events.CalendarEvent{}, err
	}
	if !found {
		return events.CalendarEvent{}, events.ErrNotFound
	}
	return events.CalendarEvent(doc), nil
}

func (r *eventRepo) ListByPet(ctx context.Context, petID string, filter events.ListFilter) ([]events.CalendarEvent, error) {
	out := make([]events.CalendarEvent, 0)
	err := r.s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEvents).ForEach(func(_, v []byte) error {
			var doc eventDoc
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			e := events.CalendarEvent(doc)
			if e.PetID == petID && filter.Matches(e) {
				out = append(out, e)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	if limit := filter.EffectiveLimit(); limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *eventRepo) SetStatus(ctx context.Context, id string, status events.EventStatus, at time.Time) error {
	return r.s.db.Update(func(tx *bolt.Tx) error {
		var doc eventDoc
		found, err := get(tx, bucketEvents, id, &doc)
		if err != nil {
			return err
		}
		if !found {
			return events.ErrNotFound
		}
		doc.Status = status
		doc.UpdatedAt = at
		return put(tx, bucketEvents, id, doc)
	})
}
