package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vespa-storefront/internal/config"
	"github.com/nikolayk812/vespa-storefront/internal/db"
	"github.com/nikolayk812/vespa-storefront/internal/port"
	"github.com/nikolayk812/vespa-storefront/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// openStore builds the snapshot store selected by store.driver.
// The returned func releases its connections.
func openStore(ctx context.Context, cfg config.StoreConfig, log logrus.FieldLogger) (port.SnapshotStore, func(), error) {
	log = log.WithField("driver", cfg.Driver)

	switch cfg.Driver {
	case config.StoreMemory:
		log.Warn("snapshots are kept in memory and lost on restart")
		return repository.NewMemory(), func() {}, nil

	case config.StoreSQLite:
		database, err := db.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("db.Open: %w", err)
		}
		log.WithField("path", database.Path()).Info("snapshot store opened")
		return repository.NewSQLite(database), func() { database.Close() }, nil

	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}
		log.Info("snapshot store opened")
		return repository.NewSnapshot(pool), pool.Close, nil

	case config.StoreRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis.ParseURL: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		log.WithField("prefix", cfg.RedisPrefix).Info("snapshot store opened")
		return repository.NewRedis(client, cfg.RedisPrefix, cfg.RedisTTL), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
