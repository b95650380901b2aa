package domain

import "context"

// FeedSource returns the near-Earth objects recorded for one calendar date.
type FeedSource interface {
	// FetchFeed returns an empty slice (not an error) when the date has no entries.
	FetchFeed(ctx context.Context, date string) ([]NearEarthObject, error)
}

// BodyLookup resolves orbital details for a designation.
type BodyLookup interface {
	LookupBody(ctx context.Context, designation string) (SmallBody, error)
}

// ScenarioPublisher records served briefings for downstream consumers.
type ScenarioPublisher interface {
	Publish(ctx context.Context, record ScenarioRecord) error
}
