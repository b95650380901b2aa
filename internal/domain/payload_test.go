package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "2.00%", FormatPercent(0.02))
	assert.Equal(t, "0.10%", FormatPercent(0.001))
	assert.Equal(t, "1.80%", FormatPercent(0.018))
	assert.Equal(t, "0.50%", FormatPercent(0.005))
	assert.Equal(t, "0.00%", FormatPercent(0))
}

func TestAssemble(t *testing.T) {
	obj := NearEarthObject{
		ID:             "3542519",
		Name:           "(2010 PK9)",
		DiameterMeters: 120,
		CloseApproach:  &CloseApproach{SpeedKmPerSec: 15.5, MissDistanceKm: 3_100_000},
	}
	metrics := ComputeImpact(obj)
	n := Narrate(NarrationInput{
		Name:            obj.Name,
		Date:            "2024-03-01",
		RiskProbability: BaselineRisk(obj),
		Casualties:      metrics.CasualtyEstimate,
		Choice:          "Survey",
	})

	p := Assemble(obj, metrics, n)

	assert.Equal(t, "🚨 Breaking News: Asteroid (2010 PK9) detected!", p.Alert)
	assert.Equal(t, "3542519", p.Asteroid.ID)
	assert.Equal(t, "(2010 PK9)", p.Asteroid.Name)
	assert.Equal(t, 120.0, p.Asteroid.SizeMeters)
	assert.Equal(t, "Stadium-sized", p.Asteroid.SizeText)
	assert.Equal(t, 15.5, p.Asteroid.SpeedKmPerSec)
	assert.Equal(t, 3_100_000.0, p.Asteroid.DistanceKm)
	assert.Equal(t, "2.00%", p.Asteroid.ImpactProbability)
	assert.Equal(t, int64(1_440_000), p.Asteroid.CasualtiesEstimate)
	assert.Equal(t, metrics.EnergyJoules, p.Asteroid.ImpactEnergyJoules)
	assert.Equal(t, metrics.EquivalentMagnitude, p.Asteroid.EquivalentEqMag)
	assert.Nil(t, p.Asteroid.Body)
	require.Len(t, p.Timeline, 4)
}

func TestResponsePayload_JSONFieldNames(t *testing.T) {
	obj := neo("2025AB", 4_500_000)
	metrics := ComputeImpact(obj)
	n := Narrate(NarrationInput{Name: obj.Name, Date: "2025-10-05", RiskProbability: 0.02, Casualties: metrics.CasualtyEstimate})

	data, err := json.Marshal(Assemble(obj, metrics, n))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	asteroid, ok := doc["asteroid"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{
		"id", "name", "size_m", "size_text", "speed_km_s", "distance_km",
		"impact_probability", "casualties_estimate", "impact_energy_j", "equivalent_eq_mag",
	} {
		assert.Contains(t, asteroid, key)
	}
	assert.NotContains(t, asteroid, "body")

	timeline, ok := doc["timeline"].([]any)
	require.True(t, ok)
	require.Len(t, timeline, 4)

	names := make([]string, 0, len(timeline))
	for _, raw := range timeline {
		phase := raw.(map[string]any)
		names = append(names, phase["phase"].(string))
		assert.Contains(t, phase, "description")
		assert.Contains(t, phase, "data")
	}
	assert.Equal(t, []string{"Discovery", "Risk Assessment", "Mitigation Action", "Final Outcome"}, names)

	mitigation := timeline[2].(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "None", mitigation["user_choice"])
	assert.Contains(t, mitigation, "new_impact_probability")
	assert.Contains(t, mitigation, "new_casualties_estimate")
}

func TestDemoPayload(t *testing.T) {
	p := DemoPayload()

	assert.Equal(t, "🚨 Breaking News: Asteroid 2025-AB detected!", p.Alert)
	assert.Equal(t, "2025AB", p.Asteroid.ID)
	assert.Equal(t, "Stadium-sized", p.Asteroid.SizeText)
	assert.Equal(t, int64(2000000), p.Asteroid.CasualtiesEstimate)
	assert.Equal(t, 7.1, p.Asteroid.EquivalentEqMag)
	require.Len(t, p.Timeline, 4)
	assert.Equal(t, "No action taken.", p.Timeline[3].Description)

	// Every call returns an equal, independent value.
	again := DemoPayload()
	again.Timeline[0].Description = "changed"
	assert.Equal(t, "Asteroid spotted by NASA telescopes.", DemoPayload().Timeline[0].Description)
}
