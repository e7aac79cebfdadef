package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/pricecache/config"
	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/internal/repo/postgres"
	"github.com/Gunvolt24/pricecache/internal/repo/redis"
	"github.com/Gunvolt24/pricecache/internal/snapshot"
)

// connectTimeout — сколько ждать хранилище снапшота при старте.
const connectTimeout = 10 * time.Second

// newSnapshotStore — хранилище снапшота по SNAPSHOT_BACKEND.
// "none" → (nil, no-op, nil): кэш живёт только в памяти.
// Недоступный postgres/redis не роняет старт: предупреждение и работа без персистентности.
// Ошибка — только для неизвестного бэкенда.
func newSnapshotStore(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.SnapshotStore, func(), error) {
	noop := func() {}

	switch strings.ToLower(strings.TrimSpace(cfg.Snapshot.Backend)) {
	case "", "file":
		log.Infof(ctx, "snapshot backend=file path=%s", cfg.Snapshot.Path)
		return snapshot.NewFileStore(cfg.Snapshot.Path), noop, nil

	case "postgres":
		store, closeFn, err := openPostgresStore(ctx, cfg, log)
		if err != nil {
			log.Warnf(ctx, "snapshot backend=postgres unavailable, running without persistence: %v", err)
			return nil, noop, nil
		}
		return store, closeFn, nil

	case "redis":
		store, closeFn, err := openRedisStore(ctx, cfg, log)
		if err != nil {
			log.Warnf(ctx, "snapshot backend=redis unavailable, running without persistence: %v", err)
			return nil, noop, nil
		}
		return store, closeFn, nil

	case "none":
		log.Warnf(ctx, "snapshot backend=none: cache will not survive restarts")
		return nil, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown snapshot backend %q", cfg.Snapshot.Backend)
	}
}

func openPostgresStore(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.SnapshotStore, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	applied, err := postgres.Migrate(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres migrate: %w", err)
	}
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres pool: %w", err)
	}
	log.Infof(ctx, "snapshot backend=postgres migrations_applied=%d", applied)
	return postgres.NewSnapshotRepository(pool), pool.Close, nil
}

func openRedisStore(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.SnapshotStore, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	cli, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	log.Infof(ctx, "snapshot backend=redis addr=%s key=%s", cfg.Redis.Addr, cfg.Snapshot.RedisKey)
	return redis.NewSnapshotStore(cli, cfg.Snapshot.RedisKey), func() { _ = cli.Close() }, nil
}
