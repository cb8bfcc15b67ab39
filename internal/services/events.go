package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// EventPublisher publishes write events to Kafka. Publishing is best effort:
// failures are logged and never fail the write that triggered them.
type EventPublisher struct {
	writer KafkaWriter
}

// NewEventPublisher creates a publisher. A nil writer disables publishing.
func NewEventPublisher(writer KafkaWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish sends an event keyed by the entity id.
func (p *EventPublisher) Publish(ctx context.Context, entity string, entityID uuid.UUID, operation string) {
	if p == nil || p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "entity", entity, "entity_id", entityID)
		return
	}

	event := models.Event{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Entity:    entity,
		EntityID:  entityID.String(),
		Operation: operation,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", event.EventID, "entity", entity, "error", err)
		return
	}
	logger.Log.Infow("Event published to Kafka", "event_id", event.EventID, "entity", entity, "operation", operation)
}
