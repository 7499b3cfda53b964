package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
	"golang.org/x/sync/errgroup"

	"github.com/telewaves/telewaves/internal/di"
	filterDomain "github.com/telewaves/telewaves/internal/modules/filter/domain"
	"github.com/telewaves/telewaves/internal/shared/config"
	httpServer "github.com/telewaves/telewaves/internal/transport/http"
	telegramClient "github.com/telewaves/telewaves/internal/transport/telegram"
)

func main() {
	// Setup structured logging with multiple handlers using slog-multi
	level := slog.LevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			level = slog.LevelInfo
		}
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	// Use Fanout to send logs to both handlers
	multiHandler := slogmulti.Fanout(textHandler, jsonHandler)
	logger := slog.New(multiHandler)
	slog.SetDefault(logger)

	// Load .env for local runs, a missing file is fine
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	// Setup dependency injection
	injector, err := di.Setup()
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	// Get services from DI container
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	client, err := do.Invoke[*telegramClient.Client](injector)
	if err != nil {
		slog.Error("Failed to initialize Telegram client", "error", err)
		os.Exit(1)
	}
	server, err := do.Invoke[*httpServer.Server](injector)
	if err != nil {
		slog.Error("Failed to initialize HTTP server", "error", err)
		os.Exit(1)
	}
	extensions := do.MustInvoke[*filterDomain.ExtensionFilter](injector)

	slog.Info("Application started",
		"download_dir", cfg.DownloadDir,
		"data_dir", cfg.DataDir,
		"http_port", cfg.HTTPPort,
		"chat_filter", cfg.ChatFilter,
		"extensions", extensions.Extensions())

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return client.Run(groupCtx)
	})
	group.Go(func() error {
		return server.Start(groupCtx)
	})

	slog.Info("Press Ctrl+C to stop")

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutting down...")
}
