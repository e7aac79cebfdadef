package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Gunvolt24/pricecache/internal/ports"
	"golang.org/x/sync/errgroup"
)

// Stopper — фоновый исполнитель, который нужно дорабатывать при остановке.
type Stopper interface {
	Close(ctx context.Context) error
}

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger                    // логгер
	HTTPServer      *http.Server                    // HTTP-сервер
	MetricsServer   *http.Server                    // сервер метрик; nil — метрики на основном
	KafkaConsumer   ports.MessageConsumer           // консьюмер наблюдений; nil — выключен
	Executor        Stopper                         // пул фоновых поисков
	Flush           func(ctx context.Context) error // безусловная запись снапшота; nil — без персистентности
	gracefulTimeout time.Duration                   // время ожидания завершения
}

// Run — запускает серверы и консьюмера; ждёт отмены контекста или ошибки компонента.
// При остановке: HTTP → консьюмер → доработка очереди поисков → запись снапшота.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.KafkaConsumer != nil {
		g.Go(func() error {
			a.Logger.Infof(gctx, "kafka consumer starting")
			return ignoreCanceled(a.KafkaConsumer.Run(gctx))
		})
	}

	for _, srv := range a.servers() {
		g.Go(func() error {
			a.Logger.Infof(gctx, "http server starting (addr=%s)", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
		a.stopFrontends(ctx)
		return nil
	})

	runErr := g.Wait()
	if runErr != nil {
		a.Logger.Warnf(ctx, "background error: %v", runErr)
	}

	a.stopBackground(ctx)
	a.Logger.Infof(ctx, "service stopped")
	return runErr
}

func (a *App) servers() []*http.Server {
	out := []*http.Server{a.HTTPServer}
	if a.MetricsServer != nil {
		out = append(out, a.MetricsServer)
	}
	return out
}

func (a *App) timeout() time.Duration {
	if a.gracefulTimeout <= 0 {
		return 5 * time.Second
	}
	return a.gracefulTimeout
}

// stopFrontends — перестать принимать запросы и сообщения.
func (a *App) stopFrontends(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.timeout())
	defer cancel()

	for _, srv := range a.servers() {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server shutdown failed addr=%s: %v", srv.Addr, err)
		} else {
			a.Logger.Infof(ctx, "http server stopped gracefully addr=%s", srv.Addr)
		}
	}

	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}
}

// stopBackground — доработать очередь поисков и сохранить снапшот.
func (a *App) stopBackground(ctx context.Context) {
	stopCtx, cancel := context.WithTimeout(context.Background(), a.timeout())
	defer cancel()

	if a.Executor != nil {
		if err := a.Executor.Close(stopCtx); err != nil {
			a.Logger.Warnf(ctx, "price fetch pool stop: %v", err)
		}
	}
	if a.Flush != nil {
		if err := a.Flush(stopCtx); err != nil {
			a.Logger.Warnf(ctx, "final snapshot save failed: %v", err)
		} else {
			a.Logger.Infof(ctx, "final snapshot saved")
		}
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
