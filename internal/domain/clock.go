package domain

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// DateLayout is the calendar date format used by the feed and the API.
const DateLayout = "2006-01-02"

// clock is a package-level time source so tests can freeze "today" via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return clock.Now().Format(DateLayout)
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}

// ValidateDate checks that s is a YYYY-MM-DD calendar date.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w %q: want YYYY-MM-DD", ErrInvalidDate, s)
	}
	return nil
}
