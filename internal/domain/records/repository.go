package records

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Record) error
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Record, error)
}

// ListFilter: Kinds vacío = todas las variantes. From/To sobre Timestamp(),
// ambos extremos incluidos.
type ListFilter struct {
	Kinds []Kind
	From  *time.Time
	To    *time.Time
}

func (f ListFilter) WantsKind(k Kind) bool {
	if len(f.Kinds) == 0 {
		return true
	}
	for _, it := range f.Kinds {
		if it == k {
			return true
		}
	}
	return false
}

func (f ListFilter) Matches(r Record) bool {
	if !f.WantsKind(r.Kind()) {
		return false
	}
	ts := r.Timestamp()
	if f.From != nil && ts.Before(*f.From) {
		return false
	}
	if f.To != nil && ts.After(*f.To) {
		return false
	}
	return true
}
