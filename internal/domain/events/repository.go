package events

import (
	"context"
	"strings"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e CalendarEvent) error
	GetByID(ctx context.Context, id string) (CalendarEvent, error)
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]CalendarEvent, error)
	SetStatus(ctx context.Context, id string, status EventStatus, at time.Time) error
}

type ListFilter struct {
	Types    []EventType
	Statuses []EventStatus
	From     *time.Time
	To       *time.Time
	Query    string
	Limit    int // 0 => DefaultLimit, negativo => sin límite
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// EffectiveLimit devuelve el límite a aplicar, o -1 si no hay límite.
func (f ListFilter) EffectiveLimit() int {
	switch {
	case f.Limit < 0:
		return -1
	case f.Limit == 0:
		return DefaultLimit
	default:
		return f.Limit
	}
}

// Matches aplica el filtro en memoria. Los adapters que no pueden empujar
// el filtro a la base (memory, bolt) lo usan tal cual.
func (f ListFilter) Matches(e CalendarEvent) bool {
	if len(f.Types) > 0 && !containsType(f.Types, e.Type) {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, e.Status) {
		return false
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		hay := strings.ToLower(e.Title + " " + e.Notes)
		if !strings.Contains(hay, strings.ToLower(q)) {
			return false
		}
	}
	return true
}

func containsType(items []EventType, t EventType) bool {
	for _, it := range items {
		if it == t {
			return true
		}
	}
	return false
}

func containsStatus(items []EventStatus, s EventStatus) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
