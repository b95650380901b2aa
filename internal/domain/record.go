package domain

import "time"

// ScenarioRecord is one served briefing as published to the scenario topic.
type ScenarioRecord struct {
	Date     string          `json:"date"`
	Choice   string          `json:"choice"`
	ServedAt time.Time       `json:"served_at"`
	Briefing ResponsePayload `json:"briefing"`
}

// NewScenarioRecord stamps a briefing with the current clock time. An empty
// choice is recorded as "None".
func NewScenarioRecord(date, choice string, briefing ResponsePayload) ScenarioRecord {
	if choice == "" {
		choice = "None"
	}
	return ScenarioRecord{
		Date:     date,
		Choice:   choice,
		ServedAt: Now().UTC(),
		Briefing: briefing,
	}
}
