package db

import (
	"context"
	"fmt"

	"tcmbrates/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Connect opens the snapshot database pool, runs migrations when asked to and makes sure
// the server answers before returning.
func Connect(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	dsn := cfg.ConnectionString()

	if cfg.AutoMigrate {
		if err := Migrate(ctx, dsn); err != nil {
			return nil, err
		}
		logrus.Info("✅ Snapshot schema is up to date")
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return pool, nil
}
