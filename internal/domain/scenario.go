package domain

// Risk and mitigation constants. Fixed thresholds, not derived from physics.
const (
	closeApproachThresholdKm = 5_000_000.0
	closeRiskProbability     = 0.02
	distantRiskProbability   = 0.001

	highHazardProbability = 0.01
	safeProbability       = 0.005

	surveyProbabilityFactor  = 0.9
	deflectProbabilityFactor = 0.25
	evacuateCasualtiesFactor = 0.3
)

// Choice is a mitigation option picked by the user.
type Choice string

const (
	ChoiceNone     Choice = ""
	ChoiceSurvey   Choice = "Survey"
	ChoiceDeflect  Choice = "Deflect"
	ChoiceEvacuate Choice = "Evacuate"
)

// ParseChoice maps raw user input to a Choice. Matching is exact; anything
// unrecognized is ChoiceNone.
func ParseChoice(raw string) Choice {
	switch c := Choice(raw); c {
	case ChoiceSurvey, ChoiceDeflect, ChoiceEvacuate:
		return c
	default:
		return ChoiceNone
	}
}

// Final status lines shown in the last timeline phase.
const (
	StatusNoAction  = "No action taken"
	StatusSurveyed  = "Improved orbit tracking, still at risk"
	StatusDeflected = "Asteroid deflected successfully"
	StatusEvacuated = "Mass evacuation reduced casualties"
)

// Timeline phase names, in order.
const (
	PhaseDiscovery      = "Discovery"
	PhaseRiskAssessment = "Risk Assessment"
	PhaseMitigation     = "Mitigation Action"
	PhaseFinalOutcome   = "Final Outcome"
)

// TimelinePhase is one step of the narrative. Data holds one of the
// phase-specific data types below.
type TimelinePhase struct {
	Phase       string `json:"phase"`
	Description string `json:"description"`
	Data        any    `json:"data"`
}

// DiscoveryData is the data block of the Discovery phase.
type DiscoveryData struct {
	DateDetected string `json:"date_detected"`
	Confidence   string `json:"confidence"`
}

// RiskAssessmentData is the data block of the Risk Assessment phase.
type RiskAssessmentData struct {
	ImpactProbability string `json:"impact_probability"`
	HazardLevel       string `json:"hazard_level"`
}

// MitigationData is the data block of the Mitigation Action phase.
type MitigationData struct {
	UserChoice            string `json:"user_choice"`
	NewImpactProbability  string `json:"new_impact_probability"`
	NewCasualtiesEstimate int64  `json:"new_casualties_estimate"`
}

// OutcomeData is the data block of the Final Outcome phase.
type OutcomeData struct {
	Status        string `json:"status"`
	RemainingRisk string `json:"remaining_risk"`
}

// RiskProbability returns the baseline impact probability for a miss distance.
func RiskProbability(missDistanceKm float64) float64 {
	if missDistanceKm < closeApproachThresholdKm {
		return closeRiskProbability
	}
	return distantRiskProbability
}

// BaselineRisk returns the baseline impact probability for an object.
// Objects without a close approach get the distant probability.
func BaselineRisk(obj NearEarthObject) float64 {
	if obj.CloseApproach == nil {
		return distantRiskProbability
	}
	return RiskProbability(obj.CloseApproach.MissDistanceKm)
}

// NarrationInput carries what the narrator needs about the selected object.
type NarrationInput struct {
	Name            string
	Date            string
	RiskProbability float64
	Casualties      int64

	// Choice is the raw user input; it is echoed back in the timeline as given.
	Choice string
}

// Narration is the outcome of applying a choice to a baseline scenario.
type Narration struct {
	Timeline            []TimelinePhase
	Choice              Choice
	BaselineProbability float64
	AdjustedProbability float64
	BaselineCasualties  int64
	AdjustedCasualties  int64
	FinalStatus         string
}

// Narrate applies the user's choice once and builds the four-phase timeline.
func Narrate(in NarrationInput) Narration {
	n := Narration{
		Choice:              ParseChoice(in.Choice),
		BaselineProbability: in.RiskProbability,
		AdjustedProbability: in.RiskProbability,
		BaselineCasualties:  in.Casualties,
		AdjustedCasualties:  in.Casualties,
	}

	switch n.Choice {
	case ChoiceSurvey:
		n.AdjustedProbability *= surveyProbabilityFactor
		n.FinalStatus = StatusSurveyed
	case ChoiceDeflect:
		n.AdjustedProbability *= deflectProbabilityFactor
		n.FinalStatus = StatusDeflected
	case ChoiceEvacuate:
		n.AdjustedCasualties = int64(float64(in.Casualties) * evacuateCasualtiesFactor)
		n.FinalStatus = StatusEvacuated
	default:
		n.FinalStatus = StatusNoAction
	}

	userChoice := in.Choice
	if userChoice == "" {
		userChoice = "None"
	}

	n.Timeline = []TimelinePhase{
		{
			Phase:       PhaseDiscovery,
			Description: "Asteroid " + in.Name + " spotted by NASA telescopes.",
			Data:        DiscoveryData{DateDetected: in.Date, Confidence: "Low"},
		},
		{
			Phase:       PhaseRiskAssessment,
			Description: "NASA analyzes orbit, size, and speed.",
			Data: RiskAssessmentData{
				ImpactProbability: FormatPercent(n.BaselineProbability),
				HazardLevel:       hazardLevel(n.BaselineProbability),
			},
		},
		{
			Phase:       PhaseMitigation,
			Description: "User selects a response.",
			Data: MitigationData{
				UserChoice:            userChoice,
				NewImpactProbability:  FormatPercent(n.AdjustedProbability),
				NewCasualtiesEstimate: n.AdjustedCasualties,
			},
		},
		{
			Phase:       PhaseFinalOutcome,
			Description: n.FinalStatus,
			Data: OutcomeData{
				Status:        safetyStatus(n.AdjustedProbability),
				RemainingRisk: FormatPercent(n.AdjustedProbability),
			},
		},
	}

	return n
}

func hazardLevel(probability float64) string {
	if probability > highHazardProbability {
		return "High"
	}
	return "Low"
}

func safetyStatus(probability float64) string {
	if probability < safeProbability {
		return "✅ Safe"
	}
	return "⚠ Still Risk"
}
