package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet-care-insights/internal/domain/events"
)

type eventRepo struct {
	mu   sync.RWMutex
	byID map[string]events.CalendarEvent
}

func NewEventRepo() events.Repository {
	return &eventRepo{
		byID: make(map[string]events.CalendarEvent),
	}
}

func (r *eventRepo) Create(ctx context.Context, e events.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return events.CalendarEvent{}, events.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) ListByPet(ctx context.Context, petID string, filter events.ListFilter) ([]events.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.CalendarEvent, 0)
	for _, e := range r.byID {
		if e.PetID == petID && filter.Matches(e) {
			out = append(out, e)
		}
	}

	// Orden por fecha asc (calendario), id como desempate
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	if limit := filter.EffectiveLimit(); limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *eventRepo) SetStatus(ctx context.Context, id string, status events.EventStatus, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return events.ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = at
	r.byID[id] = e
	return nil
}
