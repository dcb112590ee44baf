package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("event not found")
	ErrBadState     = errors.New("invalid state")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

type CreateInput struct {
	Title string
	Date  time.Time
	Type  EventType
	Notes string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (CalendarEvent, error) {
	if strings.TrimSpace(petID) == "" {
		return CalendarEvent{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" || in.Date.IsZero() {
		return CalendarEvent{}, ErrInvalidInput
	}
	typ := in.Type
	if typ == "" {
		typ = EventTypeOther
	}
	if !typ.Valid() {
		return CalendarEvent{}, ErrInvalidInput
	}

	now := s.now()
	e := CalendarEvent{
		ID:        uuid.NewString(),
		PetID:     petID,
		Title:     strings.TrimSpace(in.Title),
		Date:      in.Date,
		Type:      typ,
		Status:    EventStatusPending,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return CalendarEvent{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (CalendarEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CalendarEvent{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]CalendarEvent, error) {
	return s.repo.ListByPet(ctx, petID, filter)
}

// ListPendingForPets junta los eventos pendientes de varias mascotas.
// Es la entrada del panel de notificaciones.
func (s *Service) ListPendingForPets(ctx context.Context, petIDs []string) ([]CalendarEvent, error) {
	out := make([]CalendarEvent, 0)
	for _, id := range petIDs {
		items, err := s.repo.ListByPet(ctx, id, ListFilter{
			Statuses: []EventStatus{EventStatusPending},
			Limit:    -1,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// Complete marca el evento como realizado.
func (s *Service) Complete(ctx context.Context, id string) (CalendarEvent, error) {
	return s.transition(ctx, id, EventStatusDone)
}

// Cancel marca el evento como cancelado (no se borra).
func (s *Service) Cancel(ctx context.Context, id string) (CalendarEvent, error) {
	return s.transition(ctx, id, EventStatusCancelled)
}

func (s *Service) transition(ctx context.Context, id string, to EventStatus) (CalendarEvent, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return CalendarEvent{}, err
	}

	// Idempotente
	if e.Status == to {
		return e, nil
	}
	if e.Status != EventStatusPending {
		return CalendarEvent{}, ErrBadState
	}

	if err := s.repo.SetStatus(ctx, e.ID, to, s.now()); err != nil {
		return CalendarEvent{}, err
	}
	return s.repo.GetByID(ctx, e.ID)
}
