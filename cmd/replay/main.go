// Command replay builds briefings from a saved NeoWs feed document instead
// of the live API. It is used to reproduce a day's scenario offline and to
// regenerate fixtures.
//
// Usage:
//
//	go run ./cmd/replay \
//	  -feed internal/adapter/neows/testdata/feed_2025-10-05.json \
//	  -date 2025-10-05 \
//	  -choice Deflect
//
// With -all, one briefing per mitigation choice is written as a JSON array.
// With -brokers, every briefing is also published to the scenario topic.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kafkaadapter "github.com/couchcryptid/neo-impact-service/internal/adapter/kafka"
	"github.com/couchcryptid/neo-impact-service/internal/adapter/neows"
	"github.com/couchcryptid/neo-impact-service/internal/config"
	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
	"github.com/couchcryptid/neo-impact-service/internal/pipeline"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/jonboulle/clockwork"
)

// fileFeed serves a decoded feed document as a FeedSource.
type fileFeed struct {
	path string
}

func (f fileFeed) FetchFeed(_ context.Context, date string) ([]domain.NearEarthObject, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}
	defer file.Close()
	return neows.DecodeFeed(file, date)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	feedPath := flag.String("feed", "", "path to a saved NeoWs feed JSON document")
	date := flag.String("date", "", "feed date (YYYY-MM-DD); defaults to -today")
	today := flag.String("today", "", "pin the clock to this date (YYYY-MM-DD) for reproducible output")
	choice := flag.String("choice", "", "mitigation choice: Survey, Deflect or Evacuate")
	all := flag.Bool("all", false, "emit one briefing per choice, including none")
	out := flag.String("out", "", "output file (default stdout)")
	brokers := flag.String("brokers", "", "comma-separated Kafka brokers to publish to")
	topic := flag.String("topic", "impact-scenarios", "Kafka scenario topic")
	verbose := flag.Bool("v", false, "log at debug level")
	flag.Parse()

	if *feedPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -feed")
	}

	if *today != "" {
		t, err := time.Parse(domain.DateLayout, *today)
		if err != nil {
			return fmt.Errorf("invalid -today: %w", err)
		}
		domain.SetClock(clockwork.NewFakeClockAt(t))
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	cfg := &config.Config{
		LogLevel:           level,
		LogFormat:          "text",
		KafkaScenarioTopic: *topic,
	}
	if *brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(*brokers)
	}
	logger := observability.NewLoggerTo(os.Stderr, cfg)
	metrics := observability.NewMetricsForTesting()

	var publisher domain.ScenarioPublisher
	if cfg.PublishingEnabled() {
		writer := kafkaadapter.NewScenarioPublisher(cfg, metrics, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publisher = writer
	}

	p := pipeline.New(fileFeed{path: *feedPath}, nil, publisher, logger, metrics)

	choices := []string{*choice}
	if *all {
		choices = []string{"", string(domain.ChoiceSurvey), string(domain.ChoiceDeflect), string(domain.ChoiceEvacuate)}
	}

	ctx := context.Background()
	briefings := make([]domain.ResponsePayload, 0, len(choices))
	for _, c := range choices {
		payload, err := p.Briefing(ctx, *date, c)
		if err != nil {
			return err
		}
		briefings = append(briefings, payload)
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if *all {
		return enc.Encode(briefings)
	}
	return enc.Encode(briefings[0])
}
