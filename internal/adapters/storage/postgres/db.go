package postgres

import (
	"context"
	"database/sql"
	"time"

	"tucing-suites-calendar/internal/platform/errs"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// psql construye queries con placeholders $1, $2...
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 5 * time.Minute,
		ConnMaxLifetime: 30 * time.Minute,
		PingTimeout:     3 * time.Second,
	}
}

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string, opts PoolOptions) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errs.Wrap(err, "postgres: open")
	}

	def := DefaultPoolOptions()
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = def.MaxOpenConns
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = def.MaxIdleConns
	}
	if opts.ConnMaxIdleTime <= 0 {
		opts.ConnMaxIdleTime = def.ConnMaxIdleTime
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = def.ConnMaxLifetime
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = def.PingTimeout
	}

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), opts.PingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(err, "postgres: ping")
	}

	return db, nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS bookings (
	id             TEXT PRIMARY KEY,
	service_type   TEXT NOT NULL CHECK (service_type IN ('boarding', 'grooming')),
	cat_name       TEXT NOT NULL,
	owner_name     TEXT NOT NULL,
	start_date     DATE NOT NULL,
	end_date       DATE NULL,
	notes          TEXT NOT NULL DEFAULT '',
	total_fees     NUMERIC(12,2) NULL,
	contact_number TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS bookings_created_at_idx ON bookings (created_at, id);
`

// EnsureSchema crea la tabla si no existe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return errs.Wrap(errs.Mark(err, errs.ErrExecQuery), "postgres: ensure schema")
	}
	return nil
}
