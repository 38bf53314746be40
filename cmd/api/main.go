package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tucing-suites-calendar/internal/adapters/auth/gate"
	"tucing-suites-calendar/internal/config"
	"tucing-suites-calendar/internal/platform/logger"
	"tucing-suites-calendar/internal/platform/metrics"
	"tucing-suites-calendar/internal/router"
)

// @title Tucing Suites Calendar API
// @version 1.0
// @description Reservas de hospedaje y grooming de gatos: calendario, tablero en vivo y store con respaldo local.
// @BasePath /
func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Log.App)
	}

	store, err := router.OpenStore(ctx, cfg, log, m)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("store close failed", map[string]any{"error": err.Error()})
		}
	}()

	var g *gate.Gate
	if cfg.Auth.Enabled() {
		hash, err := gate.ResolveHash(cfg.Auth.PasswordHash, cfg.Auth.Password)
		if err != nil {
			return err
		}
		g, err = gate.New(gate.Config{PasswordHash: hash, Secret: cfg.Auth.Secret, TTL: cfg.Auth.TokenTTL})
		if err != nil {
			return err
		}
	} else {
		log.Warn("auth gate disabled: X-Debug-User-ID header is accepted", nil)
	}

	r := router.NewRouter(router.Options{
		Gate:              g,
		Bookings:          store.Repo,
		Log:               log,
		Metrics:           m,
		MetricsPath:       cfg.Metrics.Path,
		Swagger:           cfg.Server.Swagger,
		DoubleClickWindow: cfg.Calendar.DoubleClickWindow,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":     srv.Addr,
			"backend":  store.Backend,
			"fallback": cfg.Store.Fallback,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", map[string]any{"timeout": cfg.Server.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
