package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "pet-care-insights/docs"
	"pet-care-insights/internal/adapters/storage/boltstore"
	"pet-care-insights/internal/app"
	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/notifications"
	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/domain/records"
	"pet-care-insights/internal/domain/reminders"
	"pet-care-insights/internal/domain/reports"
	"pet-care-insights/internal/domain/vaccines"
	"pet-care-insights/internal/middleware"
	"pet-care-insights/internal/platform/logger"
	"pet-care-insights/internal/ports/auth"
	"pet-care-insights/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Storage: DB (Postgres) tiene prioridad sobre Bolt; sin ninguno, in-memory.
	DB   *sql.DB
	Bolt *boltstore.Store

	// Capabilities nil => todas las secciones del reporte habilitadas.
	Capabilities capabilities.Resolver

	Logger logger.Logger
	Now    func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var stores app.Stores
	switch {
	case opts.DB != nil:
		stores = app.PostgresStores(opts.DB)
	case opts.Bolt != nil:
		stores = app.BoltStores(opts.Bolt)
	default:
		stores = app.MemoryStores()
	}

	svc := app.NewServices(app.Deps{
		Stores: stores,
		Caps:   opts.Capabilities,
		Log:    log,
		Now:    opts.Now,
	})

	// Rutas por módulo
	pets.RegisterRoutes(r, svc.Pets)
	events.RegisterRoutes(r, svc.Events, svc.Pets)
	reminders.RegisterRoutes(r, svc.Reminders, svc.Pets)
	records.RegisterRoutes(r, svc.Records, svc.Pets)

	notifications.RegisterRoutes(r, svc.Notifications)
	vaccines.RegisterRoutes(r, svc.Vaccines)
	reports.RegisterRoutes(r, svc.Reports)

	return r
}
