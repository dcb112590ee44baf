package records

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add valida y persiste un registro de cualquier variante, asignando id.
func (s *Service) Add(ctx context.Context, petID string, r Record) (Record, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || r == nil {
		return nil, ErrInvalidInput
	}

	r, err := normalize(petID, r)
	if err != nil {
		return nil, err
	}

	r = WithID(r, uuid.NewString())
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListByPet devuelve los registros ordenados por fecha ascendente.
func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Record, error) {
	items, err := s.repo.ListByPet(ctx, petID, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp().Before(items[j].Timestamp())
	})
	return items, nil
}

func normalize(petID string, r Record) (Record, error) {
	if r.Timestamp().IsZero() {
		return nil, fmt.Errorf("%s: %w", r.Kind(), ErrInvalidTimestamp)
	}

	switch v := r.(type) {
	case MetricRecord:
		if !v.Category.Valid() {
			return nil, fmt.Errorf("metric category %q: %w", v.Category, ErrInvalidInput)
		}
		v.PetID = petID
		v.Notes = strings.TrimSpace(v.Notes)
		return v, nil
	case HealthLog:
		if v.ActivityMinutes < 0 {
			return nil, fmt.Errorf("activity_minutes: %w", ErrInvalidInput)
		}
		v.PetID = petID
		v.ActivityLevel = strings.TrimSpace(v.ActivityLevel)
		v.WaterIntake = strings.TrimSpace(v.WaterIntake)
		v.FoodIntake = strings.TrimSpace(v.FoodIntake)
		v.Symptoms = cleanSymptoms(v.Symptoms)
		return v, nil
	case VaccinationRecord:
		v.Name = strings.TrimSpace(v.Name)
		if v.Name == "" {
			return nil, fmt.Errorf("vaccination name: %w", ErrInvalidInput)
		}
		v.PetID = petID
		v.VetName = strings.TrimSpace(v.VetName)
		return v, nil
	case MedicationRecord:
		v.Name = strings.TrimSpace(v.Name)
		if v.Name == "" {
			return nil, fmt.Errorf("medication name: %w", ErrInvalidInput)
		}
		if v.EndDate != nil && v.EndDate.Before(v.StartDate) {
			return nil, fmt.Errorf("end_date before start_date: %w", ErrInvalidInput)
		}
		v.PetID = petID
		return v, nil
	}
	return nil, ErrInvalidInput
}

func cleanSymptoms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
