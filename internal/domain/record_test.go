package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNewScenarioRecord(t *testing.T) {
	at := time.Date(2025, 10, 5, 18, 45, 0, 0, time.FixedZone("CEST", 2*60*60))
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })

	rec := NewScenarioRecord("2025-10-05", "Survey", DemoPayload())

	assert.Equal(t, "2025-10-05", rec.Date)
	assert.Equal(t, "Survey", rec.Choice)
	assert.Equal(t, time.Date(2025, 10, 5, 16, 45, 0, 0, time.UTC), rec.ServedAt)
	assert.Equal(t, "2025AB", rec.Briefing.Asteroid.ID)
}

func TestNewScenarioRecord_EmptyChoice(t *testing.T) {
	rec := NewScenarioRecord("2025-10-05", "", ResponsePayload{})
	assert.Equal(t, "None", rec.Choice)
}
