package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// ScenarioPublisher produces served briefings to a Kafka topic.
// It implements domain.ScenarioPublisher.
type ScenarioPublisher struct {
	writer  messageWriter
	brokers []string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewScenarioPublisher creates a Kafka producer for the configured scenario topic.
func NewScenarioPublisher(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *ScenarioPublisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaScenarioTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &ScenarioPublisher{
		writer:  w,
		brokers: cfg.KafkaBrokers,
		metrics: metrics,
		logger:  logger,
	}
}

// Publish writes one scenario record, keyed by asteroid ID so records for
// the same object land on the same partition.
func (p *ScenarioPublisher) Publish(ctx context.Context, record domain.ScenarioRecord) error {
	msg, err := serializeToMessage(record)
	if err != nil {
		p.metrics.ScenariosPublished.WithLabelValues("error").Inc()
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.ScenariosPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("publish scenario: %w", err)
	}
	p.metrics.ScenariosPublished.WithLabelValues("success").Inc()
	p.logger.Debug("scenario published", "asteroid_id", record.Briefing.Asteroid.ID, "choice", record.Choice)
	return nil
}

// CheckReadiness dials the first reachable broker.
func (p *ScenarioPublisher) CheckReadiness(ctx context.Context) error {
	var lastErr error
	for _, broker := range p.brokers {
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		return conn.Close()
	}
	if lastErr == nil {
		return fmt.Errorf("no kafka brokers configured")
	}
	return fmt.Errorf("kafka brokers unreachable: %w", lastErr)
}

func (p *ScenarioPublisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a ScenarioRecord into a Kafka message.
func serializeToMessage(record domain.ScenarioRecord) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize scenario record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(record.Briefing.Asteroid.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "choice", Value: []byte(record.Choice)},
			{Key: "served_at", Value: []byte(record.ServedAt.Format(time.RFC3339))},
		},
	}, nil
}
