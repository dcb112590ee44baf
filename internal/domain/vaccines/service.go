package vaccines

import (
	"context"
	"time"

	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/records"
)

type Service struct {
	pets    *pets.Service
	records *records.Service
	now     func() time.Time
}

func NewService(petsSvc *pets.Service, recordsSvc *records.Service, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{pets: petsSvc, records: recordsSvc, now: now}
}

// ForPet arma la vista de vacunas de una mascota del usuario.
func (s *Service) ForPet(ctx context.Context, userID, petID string) (Partitioned, error) {
	p, err := s.pets.OwnedBy(ctx, petID, userID)
	if err != nil {
		return Partitioned{}, err
	}

	items, err := s.records.ListByPet(ctx, petID, records.ListFilter{
		Kinds: []records.Kind{records.KindVaccination},
	})
	if err != nil {
		return Partitioned{}, err
	}

	set := records.Split(items)
	return Partition(Merge(set.Vaccinations, p.Vaccinations), s.now()), nil
}
