package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// PoolConfig controls the size of the SQL connection pool.
type PoolConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// DefaultPool suits a low-traffic storefront with an admin console.
var DefaultPool = PoolConfig{
	MaxOpen:     10,
	MaxIdle:     5,
	MaxLifetime: 5 * time.Minute,
	MaxIdleTime: 1 * time.Minute,
}

// NewPostgres opens a PostgreSQL pool for the ledger and catalogue tables.
// Returns nil if databaseURL is empty; the service then talks to the hosted
// REST endpoint instead.
func NewPostgres(ctx context.Context, databaseURL string, pool PoolConfig) (*sqlx.DB, error) {
	if databaseURL == "" {
		log.Info().Msg("DATABASE_URL not configured, using Supabase REST store")
		return nil, nil
	}

	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Info().Int("max_open", pool.MaxOpen).Msg("Connected to PostgreSQL")
	return db, nil
}

// ClosePostgres closes the pool if it was opened.
func ClosePostgres(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing PostgreSQL connection")
		return
	}
	log.Info().Msg("PostgreSQL connection closed")
}
