// Package pipeline runs one briefing cycle: fetch the day's feed, pick the
// most relevant object, score it, narrate the chosen response and hand the
// assembled payload back to the caller.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

const publishTimeout = 5 * time.Second

type readinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Pipeline orchestrates a single briefing per request.
type Pipeline struct {
	feed      domain.FeedSource
	lookup    domain.BodyLookup
	publisher domain.ScenarioPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. lookup and publisher may be nil.
func New(feed domain.FeedSource, lookup domain.BodyLookup, publisher domain.ScenarioPublisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		feed:      feed,
		lookup:    lookup,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Briefing builds the scenario payload for date (today when empty) and the
// user's mitigation choice. Errors wrap domain.ErrInvalidDate,
// domain.ErrFeedUnavailable or domain.ErrNoObjectsFound.
func (p *Pipeline) Briefing(ctx context.Context, date, choice string) (domain.ResponsePayload, error) {
	start := time.Now()
	defer func() { p.metrics.BriefingDuration.Observe(time.Since(start).Seconds()) }()

	if date == "" {
		date = domain.Today()
	} else if err := domain.ValidateDate(date); err != nil {
		p.metrics.BriefingFailures.WithLabelValues("invalid_date").Inc()
		return domain.ResponsePayload{}, err
	}

	objects, err := p.feed.FetchFeed(ctx, date)
	if err != nil {
		p.recordFailure(err)
		return domain.ResponsePayload{}, fmt.Errorf("fetch feed for %s: %w", date, err)
	}

	obj, err := domain.SelectMostRelevant(objects)
	if err != nil {
		p.recordFailure(err)
		return domain.ResponsePayload{}, fmt.Errorf("select object for %s: %w", date, err)
	}

	metrics := domain.ComputeImpact(obj)
	narration := domain.Narrate(domain.NarrationInput{
		Name:            obj.Name,
		Date:            date,
		RiskProbability: domain.BaselineRisk(obj),
		Casualties:      metrics.CasualtyEstimate,
		Choice:          choice,
	})

	payload := domain.Assemble(obj, metrics, narration)
	payload = domain.EnrichWithBody(ctx, payload, p.lookup, p.logger)

	p.publish(ctx, domain.NewScenarioRecord(date, choice, payload))

	p.metrics.BriefingsServed.WithLabelValues(choiceLabel(narration.Choice)).Inc()
	p.logger.Info("briefing served",
		"date", date,
		"asteroid_id", obj.ID,
		"name", obj.Name,
		"choice", choiceLabel(narration.Choice),
		"objects", len(objects),
		"duration", time.Since(start),
	)
	return payload, nil
}

// publish hands the record to the publisher. Failures are logged and the
// briefing is still served.
func (p *Pipeline) publish(ctx context.Context, record domain.ScenarioRecord) {
	if p.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.publisher.Publish(ctx, record); err != nil {
		p.logger.Warn("scenario publish failed",
			"asteroid_id", record.Briefing.Asteroid.ID,
			"error", err,
		)
	}
}

// CheckReadiness reports the first failing optional dependency. With no
// optional dependencies configured the pipeline is always ready.
func (p *Pipeline) CheckReadiness(ctx context.Context) error {
	for _, dep := range []any{p.feed, p.lookup, p.publisher} {
		if rc, ok := dep.(readinessChecker); ok {
			if err := rc.CheckReadiness(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pipeline) recordFailure(err error) {
	switch {
	case errors.Is(err, domain.ErrNoObjectsFound):
		p.metrics.BriefingFailures.WithLabelValues("no_objects").Inc()
	case errors.Is(err, domain.ErrFeedUnavailable):
		p.metrics.BriefingFailures.WithLabelValues("feed_unavailable").Inc()
	default:
		p.metrics.BriefingFailures.WithLabelValues("other").Inc()
	}
	p.logger.Error("briefing failed", "error", err)
}

func choiceLabel(c domain.Choice) string {
	if c == domain.ChoiceNone {
		return "none"
	}
	return string(c)
}
