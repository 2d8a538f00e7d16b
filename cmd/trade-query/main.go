package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Checker-Finance/trade-query/internal/api"
	"github.com/Checker-Finance/trade-query/internal/dataset"
	"github.com/Checker-Finance/trade-query/internal/metrics"
	"github.com/Checker-Finance/trade-query/internal/query"
	"github.com/Checker-Finance/trade-query/pkg/config"
	"github.com/Checker-Finance/trade-query/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [trade-query]...")

	// --- Dataset snapshot (regenerated fresh on every start) ---
	snapshot := dataset.Generate(cfg.DatasetSize)
	metrics.SetDatasetSize(snapshot.Size())
	logg.Infow("dataset generated",
		"snapshot_id", snapshot.ID.String(),
		"trades", snapshot.Size(),
	)

	// --- Query engine over the immutable snapshot ---
	engine := query.New(snapshot)

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})

	handler := api.NewTradeHandler(logger.L(), engine)
	api.RegisterRoutes(app, logger.L(), snapshot, handler)

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[trade-query] running",
		"env", cfg.Env,
		"port", cfg.Port,
		"dataset_size", snapshot.Size(),
	)

	<-ctx.Done()
	logg.Info("shutting down [trade-query]...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
}
