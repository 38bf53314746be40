package router

import (
	"context"
	"errors"
	"fmt"

	"tucing-suites-calendar/internal/adapters/storage/fallback"
	"tucing-suites-calendar/internal/adapters/storage/local"
	mem "tucing-suites-calendar/internal/adapters/storage/memory"
	pg "tucing-suites-calendar/internal/adapters/storage/postgres"
	"tucing-suites-calendar/internal/adapters/storage/rest"
	"tucing-suites-calendar/internal/config"
	"tucing-suites-calendar/internal/domain/bookings"
	"tucing-suites-calendar/internal/platform/logger"
	"tucing-suites-calendar/internal/platform/metrics"
)

// Store es el repositorio elegido por config más lo que hay que cerrar al apagar.
type Store struct {
	Repo    bookings.Repository
	Backend string

	closers []func() error
}

func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStore arma el backend de reservas:
// - memory: sin persistencia
// - local: blob JSON en archivo o SQLite
// - postgres / rest: remoto; con Store.Fallback se espeja en el blob local
func OpenStore(ctx context.Context, cfg config.Config, log logger.Logger, m *metrics.Metrics) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{Backend: cfg.Store.Backend}

	var remote bookings.Repository
	switch cfg.Store.Backend {
	case config.BackendMemory:
		s.Repo = mem.NewBookingsRepo()
		return s, nil

	case config.BackendLocal:
		repo, err := openLocal(s, cfg.Local, log)
		if err != nil {
			return nil, err
		}
		s.Repo = repo
		return s, nil

	case config.BackendPostgres:
		db, err := pg.Open(cfg.Postgres.DSN, pg.PoolOptions{
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxIdleTime: pg.DefaultPoolOptions().ConnMaxIdleTime,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
			PingTimeout:     pg.DefaultPoolOptions().PingTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s.closers = append(s.closers, db.Close)
		if cfg.Postgres.EnsureSchema {
			if err := pg.EnsureSchema(ctx, db); err != nil {
				_ = s.Close()
				return nil, fmt.Errorf("ensure schema: %w", err)
			}
		}
		remote = pg.NewBookingsRepo(db)

	case config.BackendREST:
		repo, err := rest.NewBookingsRepo(rest.Options{
			BaseURL: cfg.REST.BaseURL,
			APIKey:  cfg.REST.APIKey,
			Table:   cfg.REST.Table,
			Timeout: cfg.REST.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("open rest store: %w", err)
		}
		remote = repo

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if !cfg.Store.Fallback {
		s.Repo = remote
		return s, nil
	}

	mirror, err := openLocal(s, cfg.Local, log)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Repo = fallback.NewBookingsRepo(remote, mirror, log, m)
	return s, nil
}

func openLocal(s *Store, cfg config.LocalConfig, log logger.Logger) (*local.BookingsRepo, error) {
	var blobs local.BlobStore
	if cfg.SQLiteDSN != "" {
		db, err := local.OpenSQLite(cfg.SQLiteDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			s.closers = append(s.closers, sqlDB.Close)
		}
		store, err := local.NewSQLiteBlobStore(db)
		if err != nil {
			return nil, fmt.Errorf("init sqlite blob store: %w", err)
		}
		blobs = store
	} else {
		store, err := local.NewFileBlobStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("init file blob store: %w", err)
		}
		blobs = store
	}
	return local.NewBookingsRepo(blobs, cfg.Key, log), nil
}
