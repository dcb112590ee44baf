package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-insights/internal/adapters/auth/odin"
	"pet-care-insights/internal/adapters/capabilities/plansfeatures"
	"pet-care-insights/internal/adapters/storage/boltstore"
	pg "pet-care-insights/internal/adapters/storage/postgres"
	"pet-care-insights/internal/platform/config"
	"pet-care-insights/internal/platform/logger"
	"pet-care-insights/internal/ports/auth"
	"pet-care-insights/internal/ports/capabilities"
	"pet-care-insights/internal/router"
)

// @title Pet Care Insights API
// @version 1.0
// @description Perfil de mascotas, calendario, recordatorios, historial de salud, panel de notificaciones y reportes.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		File:   cfg.LogFile,
	})

	opts := router.Options{
		Logger: log,
		Now:    cfg.Clock(),
	}

	if opts.AuthVerifier, err = authVerifier(cfg); err != nil {
		log.Error("odin client", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if opts.AuthVerifier == nil {
		log.Warn("no auth verifier configured, X-Debug-User-ID accepted", nil)
	}

	if opts.Capabilities, err = capabilityResolver(cfg); err != nil {
		log.Error("plans-features client", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	switch {
	case cfg.DBDSN != "":
		db, err := openPostgres(cfg.DBDSN)
		if err != nil {
			log.Error("postgres", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
		log.Info("storage: postgres", nil)
	case cfg.BoltPath != "":
		store, err := boltstore.Open(cfg.BoltPath)
		if err != nil {
			log.Error("bolt", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer store.Close()
		opts.Bolt = store
		log.Info("storage: bolt", map[string]any{"path": store.Path()})
	default:
		log.Warn("storage: in-memory, data is lost on restart", nil)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": srv.Addr, "config": cfg.ConfigPath})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

// authVerifier devuelve nil (modo dev) si Odin no está configurado.
func authVerifier(cfg config.Config) (auth.AuthVerifier, error) {
	if cfg.OdinBaseURL == "" {
		return nil, nil
	}
	client, err := odin.NewClient(odin.Config{
		BaseURL:    cfg.OdinBaseURL,
		APIKey:     cfg.OdinAPIKey,
		RatePerSec: cfg.UpstreamRate,
	})
	if err != nil {
		return nil, err
	}
	return odin.NewVerifier(client), nil
}

// capabilityResolver: sin plans-features ni ALLOW_ALL_CAPABILITIES el reporte
// no filtra secciones.
func capabilityResolver(cfg config.Config) (capabilities.Resolver, error) {
	if cfg.AllowAllCapabilities {
		return plansfeatures.NewResolver(nil, true), nil
	}
	if cfg.PlansBaseURL == "" {
		return nil, nil
	}
	client, err := plansfeatures.NewClient(plansfeatures.Config{
		BaseURL:    cfg.PlansBaseURL,
		APIKey:     cfg.PlansAPIKey,
		RatePerSec: cfg.UpstreamRate,
	})
	if err != nil {
		return nil, err
	}
	return plansfeatures.NewResolver(client, false), nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	db, err := pg.Open(dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pg.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
