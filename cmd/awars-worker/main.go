package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"assetwars/internal/config"
	"assetwars/internal/db"
	"assetwars/internal/scheduler"
	"assetwars/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL, "awars-worker")
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := service.NewService(pool, logger)

	runOnce := strings.EqualFold(strings.TrimSpace(os.Getenv("AWARS_WORKER_RUN_ONCE")), "true")
	if runOnce {
		if err := svc.RunRiskSweep(ctx); err != nil {
			logger.Error("risk sweep failed", "err", err)
			os.Exit(1)
		}
		if err := svc.RunPriceSnapshot(ctx); err != nil {
			logger.Error("price snapshot failed", "err", err)
			os.Exit(1)
		}
		logger.Info("worker run-once completed")
		return
	}

	sched := scheduler.New(logger)
	if err := sched.Add("risk-sweep", cfg.RiskSweepSpec, svc.RunRiskSweep); err != nil {
		logger.Error("schedule failed", "err", err)
		os.Exit(1)
	}
	if err := sched.Add("price-snapshot", cfg.PriceSnapshotSpec, svc.RunPriceSnapshot); err != nil {
		logger.Error("schedule failed", "err", err)
		os.Exit(1)
	}

	sched.Start()
	logger.Info("worker started", "risk_sweep", cfg.RiskSweepSpec, "price_snapshot", cfg.PriceSnapshotSpec)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	logger.Info("worker shutdown")
}
