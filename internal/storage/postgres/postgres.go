// Package postgres provides the PostgreSQL hoard ledger using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/hoard/internal/config"
)

// Pool owns the ledger's connection pool.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the ledger database described by cfg.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a pinged Pool or a non-nil error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s on %s:%d: %w", cfg.Name, cfg.Host, cfg.Port, err)
	}
	return &Pool{pool: pool}, nil
}

// Health pings the database, giving up after timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// WatchHealth pings the database every interval until ctx is done, logging
// failures and recoveries. It always returns nil.
func (p *Pool) WatchHealth(ctx context.Context, interval, timeout time.Duration, logger *zap.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	healthy := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := p.Health(ctx, timeout)
			switch {
			case err != nil && ctx.Err() == nil:
				logger.Warn("hoard ledger health check failed", zap.Error(err))
				healthy = false
			case err == nil && !healthy:
				logger.Info("hoard ledger reachable again")
				healthy = true
			}
		}
	}
}

// Hoards returns a repository over this pool.
func (p *Pool) Hoards() *HoardRepository {
	return NewHoardRepository(p.pool)
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
