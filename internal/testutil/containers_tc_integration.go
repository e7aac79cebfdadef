//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Образы контейнеров для интеграционных тестов.
const (
	PostgresImage = "postgres:16-alpine"
	RedisImage    = "redis:7-alpine"
	RedpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// Stop — остановка контейнера и связанных ресурсов.
type Stop func(context.Context) error

func shortID(c tc.Container) string {
	id := c.GetContainerID()
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// lifecycle — одна строка лога на каждую стадию жизни контейнера.
func lifecycle(name string) tc.CustomizeRequestOption {
	stage := func(what string) []tc.ContainerHook {
		return []tc.ContainerHook{func(_ context.Context, c tc.Container) error {
			tcLogger.Printf("%s %s id=%s", name, what, shortID(c))
			return nil
		}}
	}
	return tc.WithLifecycleHooks(tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{func(_ context.Context, req tc.ContainerRequest) error {
			tcLogger.Printf("%s creating image=%s", name, req.Image)
			return nil
		}},
		PostStarts:     stage("started"),
		PostReadies:    stage("ready"),
		PreTerminates:  stage("terminating"),
		PostTerminates: stage("terminated"),
	})
}

// terminateOnErr — прибрать контейнер, если подготовка после старта не удалась.
func terminateOnErr(c tc.Container, what string, err error) error {
	_ = tc.TerminateContainer(c)
	return fmt.Errorf("%s: %w", what, err)
}

// PGContainer — Postgres для хранилища снапшота.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

func StartPostgresTC(ctx context.Context) (*PGContainer, Stop, error) {
	pg, err := postgres.Run(ctx, PostgresImage,
		lifecycle("postgres"),
		postgres.WithDatabase("pricecache"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, terminateOnErr(pg, "conn string", err)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, terminateOnErr(pg, "parse cfg", err)
	}
	cfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, nil, terminateOnErr(pg, "new pool", err)
	}

	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}
	return &PGContainer{Container: pg, DSN: dsn, Pool: pool}, stop, nil
}

// RedisContainer — Redis для хранилища снапшота.
type RedisContainer struct {
	Container *tcredis.RedisContainer
	URL       string // redis://host:port
}

func StartRedisTC(ctx context.Context) (*RedisContainer, Stop, error) {
	rc, err := tcredis.Run(ctx, RedisImage, lifecycle("redis"))
	if err != nil {
		return nil, nil, fmt.Errorf("run redis: %w", err)
	}

	url, err := rc.ConnectionString(ctx)
	if err != nil {
		return nil, nil, terminateOnErr(rc, "conn string", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rc) }
	return &RedisContainer{Container: rc, URL: url}, stop, nil
}

// KafkaEnv — Redpanda как Kafka-совместимый брокер для потока наблюдений.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, Stop, error) {
	rp, err := redpanda.Run(ctx, RedpandaImage,
		lifecycle("redpanda"),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		return nil, nil, terminateOnErr(rp, "seed broker", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}, stop, nil
}
