package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const (
	// Updates are handled concurrently across users, each holding at most one
	// transaction at a time
	maxConns          = 20
	minConns          = 2
	healthCheckPeriod = 30 * time.Second
	connectTimeout    = 10 * time.Second
)

// DB wraps the pgx pool shared by every repository
type DB struct {
	*pgxpool.Pool
}

// NewConnection opens the pool and verifies the server is reachable
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	applyPoolDefaults(poolConfig, databaseURL)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithFields(log.Fields{
		"host":     poolConfig.ConnConfig.Host,
		"database": poolConfig.ConnConfig.Database,
		"maxConns": poolConfig.MaxConns,
	}).Debug("Database pool ready")

	return &DB{Pool: pool}, nil
}

// applyPoolDefaults sizes the pool unless the URL sets pool_max_conns or
// pool_min_conns itself
func applyPoolDefaults(poolConfig *pgxpool.Config, databaseURL string) {
	if !strings.Contains(databaseURL, "pool_max_conns=") && poolConfig.MaxConns < maxConns {
		poolConfig.MaxConns = maxConns
	}
	if !strings.Contains(databaseURL, "pool_min_conns=") && poolConfig.MinConns < minConns {
		poolConfig.MinConns = minConns
	}
	poolConfig.HealthCheckPeriod = healthCheckPeriod

	// Timestamps are compared and stored by the application; pin the session
	// time zone so server-side defaults render the same everywhere
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"
}
