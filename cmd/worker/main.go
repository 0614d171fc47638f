package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"configurator/internal/config"
	"configurator/internal/logger"
	"configurator/internal/metrics"
	"configurator/internal/services/pim"
	"configurator/internal/worker"
	"configurator/internal/worker/processors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
		Service: "worker",
	})

	if len(cfg.Brokers()) == 0 {
		logger.Fatal("KAFKA_BROKERS must be set to run the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	cache, closeCache := pim.OpenCache(ctx, cfg.RedisURL, logger)
	defer closeCache()

	client := pim.NewClient(pim.ClientConfig{
		BaseURL:  cfg.PIMBaseURL,
		Token:    cfg.PIMAPIToken,
		Timeout:  cfg.PIMTimeout,
		CacheTTL: cfg.PIMCacheTTL,
	}, cache, m, logger)

	// Initialize worker
	w := worker.New(cfg, processors.NewEventProcessor(client, m, logger), logger)

	// Start worker; it returns once ctx is cancelled by an interrupt signal.
	logger.Info("Starting worker...")
	w.Start(ctx)

	logger.Info("Shutting down worker...")
	if err := w.Stop(); err != nil {
		logger.Error("Worker shutdown: %v", err)
	}
}
