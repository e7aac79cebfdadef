package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/pricecache/config"
	"github.com/Gunvolt24/pricecache/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "pricecache: %v\n", err)
		os.Exit(1)
	}
}

// run — конфигурация, сборка и работа сервиса до отмены ctx.
// Ошибка любого шага (включая падение сервера) → ненулевой код выхода.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	application, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		application.Logger.Errorf(ctx, "service stopped with error: %v", err)
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
