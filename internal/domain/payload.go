package domain

import "fmt"

// ResponsePayload is the JSON document returned to the front end.
type ResponsePayload struct {
	Alert    string          `json:"alert"`
	Asteroid AsteroidView    `json:"asteroid"`
	Timeline []TimelinePhase `json:"timeline"`
}

// AsteroidView is the public view of the selected object plus its metrics.
type AsteroidView struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	SizeMeters         float64 `json:"size_m"`
	SizeText           string  `json:"size_text"`
	SpeedKmPerSec      float64 `json:"speed_km_s"`
	DistanceKm         float64 `json:"distance_km"`
	ImpactProbability  string  `json:"impact_probability"`
	CasualtiesEstimate int64   `json:"casualties_estimate"`
	ImpactEnergyJoules float64 `json:"impact_energy_j"`
	EquivalentEqMag    float64 `json:"equivalent_eq_mag"`

	// Body is set only when small-body enrichment is enabled and succeeds.
	Body *SmallBody `json:"body,omitempty"`
}

// FormatPercent renders a probability as a percentage with two decimals, e.g. 0.02 -> "2.00%".
func FormatPercent(probability float64) string {
	return fmt.Sprintf("%.2f%%", probability*100)
}

// Assemble composes the response from the selected object, its metrics and
// the narration. It computes nothing of its own.
func Assemble(obj NearEarthObject, metrics ImpactMetrics, n Narration) ResponsePayload {
	return ResponsePayload{
		Alert: "🚨 Breaking News: Asteroid " + obj.Name + " detected!",
		Asteroid: AsteroidView{
			ID:                 obj.ID,
			Name:               obj.Name,
			SizeMeters:         obj.DiameterMeters,
			SizeText:           metrics.SizeText,
			SpeedKmPerSec:      obj.Speed(),
			DistanceKm:         obj.MissDistance(),
			ImpactProbability:  FormatPercent(n.BaselineProbability),
			CasualtiesEstimate: metrics.CasualtyEstimate,
			ImpactEnergyJoules: metrics.EnergyJoules,
			EquivalentEqMag:    metrics.EquivalentMagnitude,
		},
		Timeline: n.Timeline,
	}
}

// DemoPayload returns the fixed offline payload served by /demo.
func DemoPayload() ResponsePayload {
	return ResponsePayload{
		Alert: "🚨 Breaking News: Asteroid 2025-AB detected!",
		Asteroid: AsteroidView{
			ID:                 "2025AB",
			Name:               "2025-AB",
			SizeMeters:         320,
			SizeText:           "Stadium-sized",
			SpeedKmPerSec:      21.0,
			DistanceKm:         4500000,
			ImpactProbability:  "1.20%",
			CasualtiesEstimate: 2000000,
			ImpactEnergyJoules: 4.5e+16,
			EquivalentEqMag:    7.1,
		},
		Timeline: []TimelinePhase{
			{
				Phase:       PhaseDiscovery,
				Description: "Asteroid spotted by NASA telescopes.",
				Data:        DiscoveryData{DateDetected: "2025-10-05", Confidence: "Low"},
			},
			{
				Phase:       PhaseRiskAssessment,
				Description: "NASA analyzes orbit, size, and speed.",
				Data:        RiskAssessmentData{ImpactProbability: "1.20%", HazardLevel: "⚠ High"},
			},
			{
				Phase:       PhaseMitigation,
				Description: "User selects a response.",
				Data:        MitigationData{UserChoice: "None", NewImpactProbability: "1.20%", NewCasualtiesEstimate: 2000000},
			},
			{
				Phase:       PhaseFinalOutcome,
				Description: "No action taken.",
				Data:        OutcomeData{Status: "⚠ Still Risk", RemainingRisk: "1.20%"},
			},
		},
	}
}
