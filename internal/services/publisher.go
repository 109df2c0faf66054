package services

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=services

import (
	"context"
	"encoding/json"

	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// EventPublisher publishes ledger events to Kafka.
type EventPublisher struct {
	writer KafkaWriter
}

// NewEventPublisher creates an EventPublisher. writer may be nil, in which
// case events are dropped with a warning.
func NewEventPublisher(writer KafkaWriter) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish writes event keyed by transaction id. Failures are logged, never
// returned: the ledger has already committed by the time events go out.
func (p *EventPublisher) Publish(ctx context.Context, event models.LedgerEvent) {
	if p == nil || p.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", event.TransactionID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal ledger event", "transaction_id", event.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID.String()),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish ledger event", "transaction_id", event.TransactionID, "event", event.EventType, "error", err)
	} else {
		logger.Log.Infow("Ledger event published", "transaction_id", event.TransactionID, "event", event.EventType, "amount", event.Amount)
	}
}
