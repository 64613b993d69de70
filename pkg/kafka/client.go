// Package kafka publishes and consumes screening audit events.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"gramhealth-go/internal/config"
	"gramhealth-go/pkg/log"
	"gramhealth-go/pkg/tasks"
)

// EventHandler processes one screening event.
type EventHandler interface {
	Handle(ctx context.Context, event tasks.ScreeningEvent) error
}

// Publisher writes screening events to a topic.
type Publisher struct {
	writer *kafka.Writer
}

// publishBatchTimeout bounds how long Publish waits for more messages to batch
// with. Events are published inline with the request.
const publishBatchTimeout = 10 * time.Millisecond

// NewPublisher creates a Publisher for cfg.Topic.
func NewPublisher(cfg config.KafkaConfig) *Publisher {
	log.Info("Kafka producer initialized")
	return &Publisher{writer: newWriter(cfg)}
}

func newWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(cfg.Brokers, ",")...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: publishBatchTimeout,
	}
}

// Publish sends event keyed by username.
func (p *Publisher) Publish(ctx context.Context, event tasks.ScreeningEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Username),
		Value: value,
	})
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// StartConsumer reads events until ctx is cancelled. Offsets are committed after
// handler succeeds; malformed messages are committed and skipped. A handler
// failure stops the consumer with the offset uncommitted, so the event is
// redelivered when the consumer restarts.
func StartConsumer(ctx context.Context, cfg config.KafkaConfig, handler EventHandler) error {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.Brokers, ","),
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Errorf("closing Kafka reader failed: %v", err)
		}
	}()

	log.Infof("Kafka consumer listening on topic '%s'", cfg.Topic)
	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var event tasks.ScreeningEvent
		if err := json.Unmarshal(m.Value, &event); err != nil {
			log.Errorf("cannot decode Kafka message at offset %d: %v", m.Offset, err)
			if err := r.CommitMessages(ctx, m); err != nil {
				log.Errorf("committing malformed message failed: %v", err)
			}
			continue
		}

		if err := handler.Handle(ctx, event); err != nil {
			return fmt.Errorf("handle event %s: %w", event.EventID, err)
		}
		if err := r.CommitMessages(ctx, m); err != nil {
			log.Errorf("committing offset %d failed: %v", m.Offset, err)
		}
	}
}
