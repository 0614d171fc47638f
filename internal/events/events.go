package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"configurator/internal/logger"
	"configurator/internal/metrics"
	"configurator/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeGalleryImageAdded   = "gallery.image_added"
	TypePIMRefreshRequested = "pim.refresh_requested"
)

// Event is the envelope written to the catalog topic.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	FamilyID  string                 `json:"family_id,omitempty"`
	VariantID string                 `json:"variant_id,omitempty"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

func NewGalleryImageAdded(familyID, variantID string, item models.GalleryItem) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      TypeGalleryImageAdded,
		FamilyID:  familyID,
		VariantID: variantID,
		Data: map[string]interface{}{
			"item_id": item.ID,
			"url":     item.URL,
		},
		Timestamp: time.Now().UTC(),
	}
}

func NewPIMRefreshRequested(endpoints []string) Event {
	list := make([]interface{}, len(endpoints))
	for i, e := range endpoints {
		list[i] = e
	}
	return Event{
		ID:        uuid.NewString(),
		Type:      TypePIMRefreshRequested,
		Data:      map[string]interface{}{"endpoints": list},
		Timestamp: time.Now().UTC(),
	}
}

// Key partitions events of one family together.
func (e Event) Key() string {
	if e.FamilyID != "" {
		return e.FamilyID
	}
	return e.Type
}

// Publisher sends catalog events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic string, m *metrics.Metrics, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
		metrics: m,
		logger:  log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: payload,
	})
	if err != nil {
		p.metrics.IncEvent(event.Type, "publish_failed")
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.metrics.IncEvent(event.Type, "published")
	p.logger.Debug("Published event %s (%s)", event.Type, event.ID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error { return nil }

// NewPublisher returns a Kafka publisher, or a NopPublisher without brokers.
func NewPublisher(brokers []string, topic string, m *metrics.Metrics, log *logger.Logger) Publisher {
	if len(brokers) == 0 {
		log.Info("No Kafka brokers configured, catalog events are disabled")
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic, m, log)
}
