package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Options struct {
	URL      string
	MaxConns int32
	MinConns int32
}

func ConnectPostgres(ctx context.Context, opts Options, log zerolog.Logger) (*pgxpool.Pool, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("database url not set")
	}

	config, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = opts.MaxConns
	config.MinConns = opts.MinConns
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	log.Info().Msg("connected to postgres")

	if err := InitSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	log.Info().Msg("schema initialized")
	return pool, nil
}

// InitSchema creates or updates the database schema.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var schema = []string{
	// -------------------------------
	// USERS
	// -------------------------------
	`
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'OWNER',
		created_at TIMESTAMPTZ DEFAULT now()
	)`,

	// -------------------------------
	// VENUES
	// -------------------------------
	`
	CREATE TABLE IF NOT EXISTS venues (
		id UUID PRIMARY KEY,
		organization_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		timezone VARCHAR(64) NOT NULL DEFAULT 'UTC',
		created_at TIMESTAMPTZ DEFAULT now()
	)`,
	`
	CREATE TABLE IF NOT EXISTS venue_members (
		venue_id UUID NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (venue_id, user_id)
	)`,

	// -------------------------------
	// MENUS + SCHEDULES
	// -------------------------------
	`
	CREATE TABLE IF NOT EXISTS menus (
		id UUID PRIMARY KEY,
		venue_id UUID NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'DRAFT',
		sort_order INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now()
	)`,
	`
	CREATE TABLE IF NOT EXISTS menu_schedules (
		id UUID PRIMARY KEY,
		menu_id UUID NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL DEFAULT '',
		schedule_type VARCHAR(20) NOT NULL,
		start_time VARCHAR(5) NULL,
		end_time VARCHAR(5) NULL,
		days_of_week INT[] NULL,
		start_date DATE NULL,
		end_date DATE NULL,
		priority INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS menu_schedules_menu_id_idx ON menu_schedules (menu_id)`,
}
