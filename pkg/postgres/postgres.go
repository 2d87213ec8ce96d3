// Package postgres opens the bookmark database over the pgx stdlib driver
// and applies its schema migrations.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Pool limits used when no option overrides them. They mirror the config
// layer's defaults so a bare Connect behaves like a default deployment.
const (
	defaultConnMaxIdleTime = 5 * time.Minute
	defaultConnMaxLifetime = 30 * time.Minute
	defaultMaxIdleConns    = 5
	defaultMaxOpenConns    = 25
)

// Option adjusts a pool limit on the freshly opened handle.
type Option func(*sqlx.DB)

func WithConnMaxIdleTime(d time.Duration) Option {
	return func(db *sqlx.DB) {
		db.SetConnMaxIdleTime(d)
	}
}

func WithConnMaxLifetime(d time.Duration) Option {
	return func(db *sqlx.DB) {
		db.SetConnMaxLifetime(d)
	}
}

func WithMaxIdleConns(n int) Option {
	return func(db *sqlx.DB) {
		db.SetMaxIdleConns(n)
	}
}

func WithMaxOpenConns(n int) Option {
	return func(db *sqlx.DB) {
		db.SetMaxOpenConns(n)
	}
}

// Connect opens a pgx-backed sqlx handle for dsn and verifies it with a
// ping before returning. The caller owns the handle and must Close it.
func Connect(ctx context.Context, dsn string, opts ...Option) (*sqlx.DB, error) {
	const op = "postgres.Connect"

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}

	for _, opt := range append([]Option{
		WithConnMaxIdleTime(defaultConnMaxIdleTime),
		WithConnMaxLifetime(defaultConnMaxLifetime),
		WithMaxIdleConns(defaultMaxIdleConns),
		WithMaxOpenConns(defaultMaxOpenConns),
	}, opts...) {
		opt(db)
	}

	return db, nil
}
