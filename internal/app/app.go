// Package app arma repositorios y servicios una sola vez para la API y la CLI.
package app

import (
	"database/sql"
	"time"

	"pet-care-insights/internal/adapters/storage/boltstore"
	mem "pet-care-insights/internal/adapters/storage/memory"
	pg "pet-care-insights/internal/adapters/storage/postgres"
	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/notifications"
	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/records"
	"pet-care-insights/internal/domain/reminders"
	"pet-care-insights/internal/domain/reports"
	"pet-care-insights/internal/domain/vaccines"
	"pet-care-insights/internal/platform/logger"
	"pet-care-insights/internal/ports/capabilities"
)

// Stores agrupa un repositorio por entidad.
type Stores struct {
	Pets      pets.Repository
	Events    events.Repository
	Reminders reminders.Repository
	Records   records.Repository
}

func MemoryStores() Stores {
	return Stores{
		Pets:      mem.NewPetRepo(),
		Events:    mem.NewEventRepo(),
		Reminders: mem.NewReminderRepo(),
		Records:   mem.NewRecordRepo(),
	}
}

func PostgresStores(db *sql.DB) Stores {
	return Stores{
		Pets:      pg.NewPetsRepo(db),
		Events:    pg.NewEventsRepo(db),
		Reminders: pg.NewRemindersRepo(db),
		Records:   pg.NewRecordsRepo(db),
	}
}

func BoltStores(s *boltstore.Store) Stores {
	return Stores{
		Pets:      s.Pets(),
		Events:    s.Events(),
		Reminders: s.Reminders(),
		Records:   s.Records(),
	}
}

type Services struct {
	Pets          *pets.Service
	Events        *events.Service
	Reminders     *reminders.Service
	Records       *records.Service
	Notifications *notifications.Service
	Vaccines      *vaccines.Service
	Reports       *reports.Service
}

// Deps: todo opcional salvo Stores. Caps nil = todas las secciones del reporte.
type Deps struct {
	Stores Stores
	Caps   capabilities.Resolver
	Log    logger.Logger
	Now    func() time.Time
}

func NewServices(d Deps) Services {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}

	petsSvc := pets.NewService(d.Stores.Pets, now)
	eventsSvc := events.NewService(d.Stores.Events, now)
	remindersSvc := reminders.NewService(d.Stores.Reminders, now)
	recordsSvc := records.NewService(d.Stores.Records)

	return Services{
		Pets:          petsSvc,
		Events:        eventsSvc,
		Reminders:     remindersSvc,
		Records:       recordsSvc,
		Notifications: notifications.NewService(petsSvc, eventsSvc, remindersSvc, log.With(map[string]any{"module": "notifications"}), now),
		Vaccines:      vaccines.NewService(petsSvc, recordsSvc, now),
		Reports:       reports.NewService(petsSvc, recordsSvc, eventsSvc, d.Caps, log.With(map[string]any{"module": "reports"}), now),
	}
}
