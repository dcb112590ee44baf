package reports

import (
	"context"
	"time"

	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/records"
	"pet-care-insights/internal/platform/logger"
	"pet-care-insights/internal/ports/capabilities"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	pets    *pets.Service
	records *records.Service
	events  *events.Service
	caps    capabilities.Resolver
	log     logger.Logger
	now     func() time.Time
}

// NewService: caps puede ser nil (todas las secciones habilitadas).
func NewService(
	petsSvc *pets.Service,
	recordsSvc *records.Service,
	eventsSvc *events.Service,
	caps capabilities.Resolver,
	log logger.Logger,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		pets:    petsSvc,
		records: recordsSvc,
		events:  eventsSvc,
		caps:    caps,
		log:     log,
		now:     now,
	}
}

// Build arma el reporte de una mascota del usuario. El reloj se lee una sola
// vez: el mismo now resuelve el rango y decide próximas consultas y
// medicación activa. Un rango inválido devuelve ErrInvalidRange o
// ErrUnknownPreset antes de tocar los repositorios.
func (s *Service) Build(ctx context.Context, userID, petID string, q RangeQuery, opts Options) (Content, error) {
	now := s.now()
	rng, err := ParseRange(q, now)
	if err != nil {
		return Content{}, err
	}

	pet, err := s.pets.OwnedBy(ctx, petID, userID)
	if err != nil {
		return Content{}, err
	}

	var (
		recs []records.Record
		evs  []events.CalendarEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recs, err = s.records.ListByPet(gctx, pet.ID, records.ListFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		evs, err = s.events.ListByPet(gctx, pet.ID, events.ListFilter{
			Types: []events.EventType{events.EventTypeVisit, events.EventTypeExam},
			Limit: -1,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return Content{}, err
	}

	opts = s.allowedSections(ctx, userID, opts)

	return Generate(Input{Pet: pet, Records: recs, Events: evs}, rng, opts, now), nil
}

// allowedSections apaga las secciones que el plan del usuario no incluye.
// Si el resolver falla se deja pasar lo pedido y se registra.
func (s *Service) allowedSections(ctx context.Context, userID string, opts Options) Options {
	if s.caps == nil {
		return opts
	}

	set, err := s.caps.Resolve(ctx, userID)
	if err != nil {
		s.log.Warn("reports: capabilities unavailable, keeping requested sections", map[string]any{
			"user_id": userID,
			"err":     err.Error(),
		})
		return opts
	}

	return opts.Mask(func(sec Section) bool {
		return set.Allows(capabilities.ReportSection(string(sec)))
	})
}
