package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/utafrali/glamstore/internal/app"
	"github.com/utafrali/glamstore/internal/config"
	"github.com/utafrali/glamstore/pkg/logger"

	pkgconfig "github.com/utafrali/glamstore/pkg/config"
)

func main() {
	// Load .env if present; real environment variables take precedence.
	if err := pkgconfig.LoadEnvFile(".env"); err != nil {
		slog.Error("failed to load .env file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("glamstore", cfg.LogLevel)
	log.Info("starting glamstore",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTPPort),
	)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Cancel on SIGINT or SIGTERM for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("glamstore stopped")
}
