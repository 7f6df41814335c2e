package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Juicern/remagik/internal/config"
	"github.com/Juicern/remagik/internal/httpapi"
	"github.com/Juicern/remagik/internal/preview"
	"github.com/Juicern/remagik/internal/remote"
	"github.com/Juicern/remagik/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	timeout := remote.WithTimeout(cfg.Upstream.Timeout)
	handler := httpapi.NewRouter(
		remote.NewRewriteClient(cfg.Upstream.BaseURL, timeout),
		remote.NewToneStore(cfg.Upstream.BaseURL, remote.PathParam, timeout),
		preview.NewRenderer(),
		logger,
	)
	srv := server.New(cfg.HTTPPort, cfg.ShutdownTimeout, handler, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("forwarding to upstream", slog.String("url", cfg.Upstream.BaseURL))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}
