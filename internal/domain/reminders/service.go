package reminders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("reminder not found")
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
	Type  ReminderType
	Notes string
}

func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Reminder, error) {
	if strings.TrimSpace(petID) == "" {
		return Reminder{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" || in.Date.IsZero() {
		return Reminder{}, ErrInvalidInput
	}
	typ := in.Type
	if typ == "" {
		typ = ReminderTypeOther
	}
	if !typ.Valid() {
		return Reminder{}, ErrInvalidInput
	}

	now := s.now()
	rem := Reminder{
		ID:        uuid.NewString(),
		PetID:     petID,
		Title:     strings.TrimSpace(in.Title),
		Date:      in.Date,
		Type:      typ,
		Status:    StatusActive,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, rem); err != nil {
		return Reminder{}, err
	}
	return rem, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Reminder{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// ListByPet lista los recordatorios; status vacío = todos.
func (s *Service) ListByPet(ctx context.Context, petID string, status Status) ([]Reminder, error) {
	return s.repo.ListByPet(ctx, petID, status)
}

// ListActiveForPets junta los recordatorios activos de varias mascotas.
func (s *Service) ListActiveForPets(ctx context.Context, petIDs []string) ([]Reminder, error) {
	out := make([]Reminder, 0)
	for _, id := range petIDs {
		items, err := s.repo.ListByPet(ctx, id, StatusActive)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// Deactivate apaga el recordatorio. Idempotente.
func (s *Service) Deactivate(ctx context.Context, id string) (Reminder, error) {
	rem, err := s.GetByID(ctx, id)
	if err != nil {
		return Reminder{}, err
	}
	if rem.Status == StatusInactive {
		return rem, nil
	}
	if err := s.repo.SetStatus(ctx, rem.ID, StatusInactive, s.now()); err != nil {
		return Reminder{}, err
	}
	return s.repo.GetByID(ctx, rem.ID)
}
