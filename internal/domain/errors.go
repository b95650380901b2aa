package domain

import "errors"

var (
	// ErrFeedUnavailable covers transport, HTTP status and decode failures of the upstream feed.
	ErrFeedUnavailable = errors.New("neo feed unavailable")

	// ErrNoObjectsFound is returned when the feed has no objects for the requested date.
	ErrNoObjectsFound = errors.New("no near-earth objects found")

	// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)
