// Package cli implementa petcare, la herramienta offline que evalúa el panel
// de notificaciones, el estado de vacunas y el reporte de salud contra un
// snapshot JSON o un archivo bbolt.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pet-care-insights/internal/adapters/storage/boltstore"
	"pet-care-insights/internal/app"
	"pet-care-insights/internal/platform/config"
	"pet-care-insights/internal/platform/dates"
	"pet-care-insights/internal/platform/logger"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

var ErrNoSource = errors.New("one of --data or --db is required")

// globalFlags son los flags persistentes; cada comando los lee al arrancar.
type globalFlags struct {
	Data     string
	DB       string
	User     string
	Now      string
	Timezone string
	Format   string
	Verbose  bool
}

func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "petcare",
		Short: "petcare: notificaciones, vacunas y reportes de salud de tus mascotas",
		Long: `petcare evalúa los datos de tus mascotas sin levantar la API.

Fuentes de datos:
  --data FILE   snapshot JSON (fechas como string, RFC3339 o YYYY-MM-DD)
  --db FILE     archivo bbolt (ver "petcare import")

Ejemplos:
  petcare notifications --data pets.json --user u1
  petcare report --db petcare.db --pet p1 --range 90d
  petcare vaccines --data pets.json --pet p1 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.Data, "data", "", "snapshot JSON file")
	pf.StringVar(&g.DB, "db", "", "bbolt database file")
	pf.StringVar(&g.User, "user", "", "user id (default: owner of --pet)")
	pf.StringVar(&g.Now, "now", "", "evaluate as of this instant (RFC3339 or YYYY-MM-DD)")
	pf.StringVar(&g.Timezone, "tz", "", "IANA timezone for labels (default: TIMEZONE or UTC)")
	pf.StringVar(&g.Format, "format", FormatTable, "output format: table|json")
	pf.BoolVar(&g.Verbose, "verbose", false, "debug logging on stderr")

	root.AddCommand(
		newNotificationsCmd(g),
		newReportCmd(g),
		newVaccinesCmd(g),
		newImportCmd(g),
	)
	return root
}

// Execute es el entry point de cmd/petcare.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// env es lo que necesita un comando ya resuelto: servicios, reloj y logger.
type env struct {
	stores   app.Stores
	services app.Services
	loc      *time.Location
	now      func() time.Time
	log      logger.Logger
	close    func() error
}

func (g *globalFlags) format() (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(g.Format)); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (table|json)", g.Format)
	}
}

// setup resuelve config, reloj y logger (sin abrir datos).
func (g *globalFlags) setup(errOut io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	loc := cfg.Timezone
	if tz := strings.TrimSpace(g.Timezone); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("--tz: %w", err)
		}
	}

	now := func() time.Time { return time.Now().In(loc) }
	if v := strings.TrimSpace(g.Now); v != "" {
		fixed, ok := dates.Parse(v, loc)
		if !ok {
			return nil, fmt.Errorf("--now %q: expected RFC3339 or YYYY-MM-DD", v)
		}
		fixed = fixed.In(loc)
		now = func() time.Time { return fixed }
	}

	level := logger.Warn
	if g.Verbose {
		level = logger.Debug
	}
	log := logger.New(logger.Options{
		Level:  level,
		Format: logger.FormatText,
		App:    "petcare",
		File:   cfg.LogFile,
		Output: errOut,
	})

	return &env{loc: loc, now: now, log: log, close: func() error { return nil }}, nil
}

// open resuelve además la fuente de datos (--data o --db) y arma los servicios.
func (g *globalFlags) open(ctx context.Context, errOut io.Writer) (*env, error) {
	e, err := g.setup(errOut)
	if err != nil {
		return nil, err
	}

	switch {
	case g.DB != "":
		store, err := boltstore.Open(g.DB)
		if err != nil {
			return nil, err
		}
		e.stores = app.BoltStores(store)
		e.close = store.Close
		e.log.Debug("using bolt store", map[string]any{"path": store.Path()})
	case g.Data != "":
		ds, err := LoadSnapshotFile(g.Data, e.loc, e.now(), e.log)
		if err != nil {
			return nil, err
		}
		e.stores = app.MemoryStores()
		if err := ds.Store(ctx, e.stores); err != nil {
			return nil, err
		}
		e.log.Debug("snapshot loaded", ds.summary())
	default:
		return nil, ErrNoSource
	}

	// offline: sin resolver de capabilities, todas las secciones habilitadas
	e.services = app.NewServices(app.Deps{
		Stores: e.stores,
		Log:    e.log,
		Now:    e.now,
	})
	return e, nil
}

// userFor devuelve --user o, si no vino, el dueño de la mascota.
func (g *globalFlags) userFor(ctx context.Context, e *env, petID string) (string, error) {
	if u := strings.TrimSpace(g.User); u != "" {
		return u, nil
	}
	p, err := e.services.Pets.GetByID(ctx, petID)
	if err != nil {
		return "", fmt.Errorf("pet %s: %w", petID, err)
	}
	return p.OwnerUserID, nil
}
