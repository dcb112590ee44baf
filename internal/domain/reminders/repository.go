package reminders

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, r Reminder) error
	GetByID(ctx context.Context, id string) (Reminder, error)
	ListByPet(ctx context.Context, petID string, status Status) ([]Reminder, error)
	SetStatus(ctx context.Context, id string, status Status, at time.Time) error
}
