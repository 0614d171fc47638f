package validation

import (
	"errors"
	"fmt"
	"strings"

	"configurator/internal/events"
	"configurator/internal/logger"
	pimservice "configurator/internal/services/pim"

	"go.uber.org/multierr"
)

var ErrUnknownType = errors.New("unknown event type")

type Validator struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *Validator {
	return &Validator{
		logger: logger,
	}
}

// ValidateEvent checks the envelope and the payload required by its type.
// Every problem found is reported, not only the first.
func (v *Validator) ValidateEvent(event events.Event) error {
	var err error
	if event.ID == "" {
		err = multierr.Append(err, errors.New("id is required"))
	}
	if event.Timestamp.IsZero() {
		err = multierr.Append(err, errors.New("timestamp is required"))
	}

	switch event.Type {
	case events.TypeGalleryImageAdded:
		err = multierr.Append(err, v.validateGalleryImage(event))
	case events.TypePIMRefreshRequested:
		_, refreshErr := RefreshEndpoints(event)
		err = multierr.Append(err, refreshErr)
	default:
		err = multierr.Append(err, fmt.Errorf("%w: %q", ErrUnknownType, event.Type))
	}

	if err != nil {
		v.logger.Debug("Event %s failed validation: %v", event.ID, err)
	}
	return err
}

func (v *Validator) validateGalleryImage(event events.Event) error {
	var err error
	if event.FamilyID == "" {
		err = multierr.Append(err, errors.New("family_id is required"))
	}
	if event.VariantID == "" {
		err = multierr.Append(err, errors.New("variant_id is required"))
	}
	url, _ := event.Data["url"].(string)
	if !strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "http") {
		err = multierr.Append(err, fmt.Errorf("url %q is not a valid image location", url))
	}
	if id, _ := event.Data["item_id"].(string); id == "" {
		err = multierr.Append(err, errors.New("item_id is required"))
	}
	return err
}

// RefreshEndpoints returns the endpoints named by a refresh event. An absent
// or empty list means every endpoint.
func RefreshEndpoints(event events.Event) ([]string, error) {
	raw, ok := event.Data["endpoints"]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New("endpoints must be a list")
	}

	var (
		endpoints []string
		err       error
	)
	for _, item := range list {
		name, _ := item.(string)
		if !pimservice.KnownEndpoint(name) {
			err = multierr.Append(err, fmt.Errorf("unknown PIM endpoint %v", item))
			continue
		}
		endpoints = append(endpoints, name)
	}
	return endpoints, err
}
