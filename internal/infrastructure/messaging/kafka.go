// Package messaging forwards domain events to Kafka.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/event"
	"go.uber.org/zap"
)

// Header names set on every message
const (
	HeaderEventType     = "event_type"
	HeaderEventID       = "event_id"
	HeaderAggregateType = "aggregate_type"
)

// messageWriter is the part of kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter creates a writer for topic on brokers
func NewKafkaWriter(cfg config.KafkaConfig) (*kafka.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka.brokers is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka.topic is required")
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, nil
}

// EventPublisher writes serialized domain events to Kafka. Messages are
// keyed by aggregate so that events of one order stay in one partition.
type EventPublisher struct {
	writer     messageWriter
	serializer *event.EventSerializer
	logger     *zap.Logger
}

// NewEventPublisher creates an EventPublisher
func NewEventPublisher(w messageWriter, serializer *event.EventSerializer, logger *zap.Logger) *EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventPublisher{writer: w, serializer: serializer, logger: logger.Named("kafka")}
}

// Publish writes the events in one batch
func (p *EventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		msg, err := p.message(ev)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	p.logger.Debug("Events forwarded", zap.Int("count", len(msgs)))
	return nil
}

func (p *EventPublisher) message(ev shared.DomainEvent) (kafka.Message, error) {
	value, err := p.serializer.Serialize(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("serialize %s: %w", ev.EventType(), err)
	}
	return kafka.Message{
		Key:   []byte(ev.AggregateType() + "-" + strconv.FormatInt(ev.AggregateID(), 10)),
		Value: value,
		Time:  ev.OccurredAt(),
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(ev.EventType())},
			{Key: HeaderEventID, Value: []byte(ev.EventID().String())},
			{Key: HeaderAggregateType, Value: []byte(ev.AggregateType())},
		},
	}, nil
}

// Close flushes and closes the writer
func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

// Forwarder subscribes to the event bus and forwards the listed event
// types to Kafka
type Forwarder struct {
	publisher  *EventPublisher
	eventTypes []string
}

// NewForwarder creates a Forwarder for eventTypes
func NewForwarder(publisher *EventPublisher, eventTypes ...string) *Forwarder {
	return &Forwarder{publisher: publisher, eventTypes: eventTypes}
}

// Handle implements shared.EventHandler
func (f *Forwarder) Handle(ctx context.Context, ev shared.DomainEvent) error {
	return f.publisher.Publish(ctx, ev)
}

// EventTypes implements shared.EventHandler
func (f *Forwarder) EventTypes() []string {
	return f.eventTypes
}

var _ shared.EventHandler = (*Forwarder)(nil)
