package memory

import (
	"context"
	"errors"
	"sync"

	"pet-care-insights/internal/domain/records"
)

// recordRepo guarda los registros en orden de alta; el servicio ordena por fecha.
type recordRepo struct {
	mu    sync.RWMutex
	items []records.Record
	ids   map[string]struct{}
}

func NewRecordRepo() records.Repository {
	return &recordRepo{ids: make(map[string]struct{})}
}

func (r *recordRepo) Create(ctx context.Context, rec records.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec == nil || rec.RecordID() == "" {
		return errors.New("record id required")
	}
	if _, exists := r.ids[rec.RecordID()]; exists {
		return errors.New("record already exists")
	}
	r.ids[rec.RecordID()] = struct{}{}
	r.items = append(r.items, rec)
	return nil
}

func (r *recordRepo) ListByPet(ctx context.Context, petID string, filter records.ListFilter) ([]records.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]records.Record, 0)
	for _, rec := range r.items {
		if rec.PetRef() == petID && filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}
