package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetwars/internal/api"
	"assetwars/internal/config"
	"assetwars/internal/db"
	"assetwars/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL, "awars-api")
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := service.NewService(pool, logger)

	if cfg.GenesisPath != "" {
		genesis, err := config.LoadGenesis(cfg.GenesisPath)
		if err != nil {
			logger.Error("load genesis failed", "path", cfg.GenesisPath, "err", err)
			os.Exit(1)
		}
		if err := svc.ApplyGenesis(ctx, &genesis); err != nil {
			logger.Error("apply genesis failed", "err", err)
			os.Exit(1)
		}
	}

	hub := api.NewHub(logger)
	go hub.Run(ctx)
	go hub.Poll(ctx, svc, 2*time.Second)

	server := api.New(cfg, logger, svc, hub)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("assetwars api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
