package api

import (
	"context"
	"fmt"
	"strings"

	"configurator/internal/catalog"
	"configurator/internal/config"
	pimconnector "configurator/internal/connectors/pim"
	"configurator/internal/events"
	"configurator/internal/logger"
	"configurator/internal/media"
	"configurator/internal/metrics"
	"configurator/internal/services/pim"
	"configurator/internal/sofas"

	"go.uber.org/multierr"
)

// Bootstrap builds the server and everything it depends on from cfg. The
// returned function releases the database and cache connections; the event
// publisher is closed by Stop.
func Bootstrap(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Server, func() error, error) {
	m := metrics.New()

	cache, closeCache := pim.OpenCache(ctx, cfg.RedisURL, log)
	client := pim.NewClient(pim.ClientConfig{
		BaseURL:  cfg.PIMBaseURL,
		Token:    cfg.PIMAPIToken,
		Timeout:  cfg.PIMTimeout,
		CacheTTL: cfg.PIMCacheTTL,
	}, cache, m, log.With("component", "pim"))

	repo, closeRepo, err := sofas.Open(ctx, cfg.DatabaseURL, strings.EqualFold(cfg.LogLevel, "debug"))
	if err != nil {
		return nil, nil, multierr.Append(fmt.Errorf("failed to open sofa repository: %w", err), closeCache())
	}

	storage, err := media.NewStorage(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return nil, nil, multierr.Combine(err, closeRepo(), closeCache())
	}

	server := New(cfg, log, Deps{
		Store:     catalog.NewSeededStore(),
		Sofas:     repo,
		PIM:       client,
		Connector: pimconnector.New(client, log.With("component", "connector")),
		Media:     storage,
		Publisher: events.NewPublisher(cfg.Brokers(), cfg.KafkaTopic, m, log),
		Metrics:   m,
	})

	cleanup := func() error {
		return multierr.Combine(closeRepo(), closeCache())
	}
	return server, cleanup, nil
}
