package processors

import (
	"context"
	"fmt"

	"configurator/internal/events"
	"configurator/internal/logger"
	"configurator/internal/metrics"
	"configurator/internal/worker/processors/validation"
)

// CacheInvalidator drops cached PIM responses.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, endpoints ...string) error
}

type EventProcessor struct {
	logger    *logger.Logger
	validator *validation.Validator
	pim       CacheInvalidator
	metrics   *metrics.Metrics
}

func NewEventProcessor(pim CacheInvalidator, m *metrics.Metrics, logger *logger.Logger) *EventProcessor {
	return &EventProcessor{
		logger:    logger,
		validator: validation.New(logger),
		pim:       pim,
		metrics:   m,
	}
}

// Process validates event and dispatches it by type.
func (ep *EventProcessor) Process(ctx context.Context, event events.Event) error {
	if err := ep.validator.ValidateEvent(event); err != nil {
		ep.metrics.IncEvent(event.Type, "invalid")
		return fmt.Errorf("invalid event %s: %w", event.ID, err)
	}

	var err error
	switch event.Type {
	case events.TypeGalleryImageAdded:
		ep.logger.With("family_id", event.FamilyID).With("variant_id", event.VariantID).
			Info("Gallery image %v added: %v", event.Data["item_id"], event.Data["url"])
	case events.TypePIMRefreshRequested:
		endpoints, _ := validation.RefreshEndpoints(event)
		err = ep.pim.Invalidate(ctx, endpoints...)
	}

	if err != nil {
		ep.metrics.IncEvent(event.Type, metrics.OutcomeFailed)
		return err
	}
	ep.metrics.IncEvent(event.Type, "processed")
	return nil
}
