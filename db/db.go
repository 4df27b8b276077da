// Package db connects the configured document store backend.
// It handles establishing PostgreSQL connection pools, running the embedded schema
// migrations, and choosing between the memory, PostgreSQL and Redis backends.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	// `time` is used for setting timeouts and connection pool configurations.
	"time"

	// `golang-migrate` applies the versioned SQL files embedded below.
	"github.com/golang-migrate/migrate/v4"
	// The postgres database driver registers the "postgres://" scheme with golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	// `pgxpool` is part of the `jackc/pgx` suite, providing a robust connection pool for PostgreSQL.
	"github.com/jackc/pgx/v5/pgxpool"
	// driver for database/sql, used by migrate's postgres driver with a DSN
	_ "github.com/lib/pq"

	"github.com/user/deptaihub-go/apperror"
	"github.com/user/deptaihub-go/config"
	"github.com/user/deptaihub-go/store"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// OpenStore connects the backend selected by cfg.Driver.
// For postgres it also applies pending migrations when cfg.RunMigrations is set.
// Callers decide what to do with a failure; the server logs it and keeps running
// on a store.UnavailableStore.
func OpenStore(ctx context.Context, cfg *config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory, "":
		return store.NewMemoryStore(store.DefaultIndexes...), nil

	case config.StoreDriverPostgres:
		if cfg.RunMigrations {
			if err := RunMigrations(DSN(cfg.Postgres)); err != nil {
				return nil, err
			}
		}
		pool, err := NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(pool), nil

	case config.StoreDriverRedis:
		s := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix, store.DefaultIndexes...)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.Ping(pingCtx); err != nil {
			_ = s.Close()
			return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to redis at %s", cfg.Redis.Addr), err)
		}
		return s, nil

	default:
		return nil, apperror.NewConfigError(fmt.Sprintf("unknown store driver %q", cfg.Driver), nil)
	}
}

// NewPool establishes a pgxpool connection pool and verifies it with a ping.
func NewPool(ctx context.Context, cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	// `pgxpool.ParseConfig` parses the DSN string into a `pgxpool.Config` struct.
	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// A bounded context keeps startup from hanging when the database is unreachable.
	createCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(createCtx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pgxpool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close() // Clean up on connection failure
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to the database %s with pgxpool", cfg.DBName), err)
	}

	return pool, nil
}

// DSN builds a connection string understood by both pgx and golang-migrate.
func DSN(cfg *config.PoolConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)
}

// RunMigrations applies any pending migration embedded under migrations/.
// Files are named `{version}_{description}.{up|down}.sql`.
func RunMigrations(dsn string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return apperror.NewMigrationError("failed to open embedded migrations", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return apperror.NewMigrationError("failed to create migrator", err)
	}
	// m.Close() returns two errors, one for the source and one for the database.
	defer func() {
		_, _ = m.Close()
	}()

	// `migrate.ErrNoChange` is returned if there are no new migrations to apply, which is not an actual error.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to run migrations", err)
	}
	return nil
}
