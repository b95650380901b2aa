package domain

import (
	"context"
	"log/slog"
)

// EnrichWithBody attaches small-body details to the payload's asteroid.
// A nil lookup, a lookup error or an empty result leave the payload
// unchanged; the briefing is still served.
func EnrichWithBody(ctx context.Context, payload ResponsePayload, lookup BodyLookup, logger *slog.Logger) ResponsePayload {
	if lookup == nil || payload.Asteroid.ID == "" {
		return payload
	}

	body, err := lookup.LookupBody(ctx, payload.Asteroid.ID)
	if err != nil {
		logger.Warn("small-body lookup failed",
			"asteroid_id", payload.Asteroid.ID,
			"name", payload.Asteroid.Name,
			"error", err,
		)
		return payload
	}
	if body.FullName == "" {
		return payload
	}

	payload.Asteroid.Body = &body
	return payload
}
