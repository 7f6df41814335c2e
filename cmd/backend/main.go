package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Juicern/remagik/internal/config"
	"github.com/Juicern/remagik/internal/httpapi"
	"github.com/Juicern/remagik/internal/repository"
	"github.com/Juicern/remagik/internal/server"
	"github.com/Juicern/remagik/internal/service"
	"github.com/Juicern/remagik/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.RunMigrations(ctx, db, cfg.Database); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	tones := service.NewToneService(repository.NewToneRepository(db))
	rewrites := service.NewRewriteService(service.NewRegistry(cfg.LLM), cfg.LLM)

	handler := httpapi.NewBackendRouter(tones, rewrites, logger)
	srv := server.New(cfg.BackendPort, cfg.ShutdownTimeout, handler, logger)

	logger.Info("rewrite provider", slog.String("provider", cfg.LLM.Provider), slog.String("database", cfg.Database.Driver))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}
