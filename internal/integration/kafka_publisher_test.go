//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/adapter/kafka"
	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScenarioTopic = "test-impact-scenarios"

// TestScenarioPublisher verifies that a published briefing round-trips
// through Kafka with its key and headers intact.
func TestScenarioPublisher(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testScenarioTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaScenarioTopic: testScenarioTopic,
	}
	publisher := kafka.NewScenarioPublisher(cfg, observability.NewMetricsForTesting(), discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	require.NoError(t, publisher.CheckReadiness(ctx))

	obj := domain.NearEarthObject{
		ID:             "2025AB",
		Name:           "2025-AB",
		DiameterMeters: 320,
		CloseApproach:  &domain.CloseApproach{SpeedKmPerSec: 21, MissDistanceKm: 4.5e6},
	}
	metrics := domain.ComputeImpact(obj)
	narration := domain.Narrate(domain.NarrationInput{
		Name:            obj.Name,
		Date:            "2025-10-05",
		RiskProbability: domain.BaselineRisk(obj),
		Casualties:      metrics.CasualtyEstimate,
		Choice:          "Deflect",
	})
	record := domain.NewScenarioRecord("2025-10-05", "Deflect", domain.Assemble(obj, metrics, narration))

	require.NoError(t, publisher.Publish(ctx, record))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testScenarioTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from scenario topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "2025AB", string(msg.Key))
	assert.Equal(t, "Deflect", headers["choice"])
	_, err = time.Parse(time.RFC3339, headers["served_at"])
	assert.NoError(t, err, "served_at should be valid RFC3339")

	var got domain.ScenarioRecord
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "2025-10-05", got.Date)
	assert.Equal(t, "2025-AB", got.Briefing.Asteroid.Name)
	assert.Equal(t, "2.00%", got.Briefing.Asteroid.ImpactProbability)
}
