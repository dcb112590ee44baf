package notifications

import (
	"context"
	"time"

	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/reminders"
	"pet-care-insights/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	pets      *pets.Service
	events    *events.Service
	reminders *reminders.Service
	log       logger.Logger
	now       func() time.Time
}

func NewService(petsSvc *pets.Service, eventsSvc *events.Service, remindersSvc *reminders.Service, log logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		pets:      petsSvc,
		events:    eventsSvc,
		reminders: remindersSvc,
		log:       log,
		now:       now,
	}
}

// ForUser arma el panel del usuario. Nunca falla: ante un error de lectura
// registra el problema y devuelve Empty().
func (s *Service) ForUser(ctx context.Context, userID string) Feed {
	log := s.log.With(map[string]any{"user_id": userID})

	owned, err := s.pets.ListByOwner(ctx, userID)
	if err != nil {
		log.Error("notifications: list pets failed", map[string]any{"err": err.Error()})
		return Empty()
	}
	if len(owned) == 0 {
		return Empty()
	}
	ids := pets.IDs(owned)

	var (
		evs  []events.CalendarEvent
		rems []reminders.Reminder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		evs, err = s.events.ListPendingForPets(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		rems, err = s.reminders.ListActiveForPets(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error("notifications: fetch failed", map[string]any{"err": err.Error()})
		return Empty()
	}

	feed := Aggregate(evs, rems, owned, s.now())
	if feed.Skipped > 0 {
		log.Warn("notifications: records with invalid date skipped", map[string]any{"skipped": feed.Skipped})
	}
	return feed
}
