package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gunvolt24/pricecache/config"
	cachemem "github.com/Gunvolt24/pricecache/internal/cache/memory"
	"github.com/Gunvolt24/pricecache/internal/kafka"
	"github.com/Gunvolt24/pricecache/internal/lookup"
	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/Gunvolt24/pricecache/internal/snapshot"
	rest "github.com/Gunvolt24/pricecache/internal/transport/http"
	"github.com/Gunvolt24/pricecache/internal/usecase"
	"github.com/Gunvolt24/pricecache/internal/worker"
	"github.com/Gunvolt24/pricecache/pkg/logger"
	"github.com/Gunvolt24/pricecache/pkg/metrics"
	"github.com/Gunvolt24/pricecache/pkg/telemetry"
	"github.com/Gunvolt24/pricecache/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// Снапшот загружается здесь, до того как HTTP начнёт обслуживать запросы.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Хранилище снапшота (file|postgres|redis|none).
	store, closeStore, err := newSnapshotStore(ctx, cfg, logg)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Фоновый исполнитель поисков.
	pool := worker.NewPool(cfg.Cache.Workers, cfg.Cache.QueueSize)

	// Отложенная запись снапшота. Интерфейс остаётся nil, если бэкенд выключен.
	var (
		saver ports.SnapshotSaver
		flush func(ctx context.Context, source ports.SnapshotSource) error
	)
	if store != nil {
		s := snapshot.NewSaver(store, ports.SystemClock{}, logg, cfg.Snapshot.SaveInterval)
		saver, flush = s, s.Flush
	}

	cache := cachemem.NewPriceCache(pool, saver, ports.SystemClock{}, logg,
		cachemem.WithRetryInterval(cfg.Cache.RetryInterval))

	if store != nil {
		snapshot.Load(ctx, store, cache, logg)
	}

	// Сервис цен поверх удалённого поиска.
	client := lookup.NewClient(cfg.Lookup.BaseURL, cfg.Lookup.PricePath, cfg.Lookup.Timeout)
	service := usecase.NewPriceService(cache, client.Fetcher, validate.NewObservationValidator(), logg)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(service, logg, cfg.HTTP.HandlerTimeout, cfg.Cache.MaxAge)
	router := rest.NewRouter(httpHandler, "")

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	// Отдельный сервер метрик, если адрес отличается от основного.
	var metricsSrv *http.Server
	if cfg.Metrics.Addr != "" && cfg.Metrics.Addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		}
	}

	// Поток наблюдений цен (Kafka) — только при включённой конфигурации.
	var consumer ports.MessageConsumer
	if cfg.Kafka.Enabled {
		consumer = kafka.NewConsumer(&kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}, service, logg)
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   metricsSrv,
		KafkaConsumer:   consumer,
		Executor:        pool,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	if flush != nil {
		app.Flush = func(ctx context.Context) error { return flush(ctx, cache.Snapshot) }
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		closeStore()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}
