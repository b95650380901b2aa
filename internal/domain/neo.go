package domain

// NearEarthObject is one asteroid from the daily feed after unit parsing.
type NearEarthObject struct {
	ID             string
	Name           string
	DiameterMeters float64

	// CloseApproach is nil when the feed has no close-approach record for the object.
	CloseApproach *CloseApproach
}

// CloseApproach is the first recorded close pass of an object.
type CloseApproach struct {
	SpeedKmPerSec  float64
	MissDistanceKm float64
}

// Speed returns the approach speed in km/s, or 0 without a close approach.
func (o NearEarthObject) Speed() float64 {
	if o.CloseApproach == nil {
		return 0
	}
	return o.CloseApproach.SpeedKmPerSec
}

// MissDistance returns the miss distance in km, or 0 without a close approach.
func (o NearEarthObject) MissDistance() float64 {
	if o.CloseApproach == nil {
		return 0
	}
	return o.CloseApproach.MissDistanceKm
}

// ImpactMetrics are the derived, never-persisted impact figures for an object.
type ImpactMetrics struct {
	SizeText            string
	CasualtyEstimate    int64
	EnergyJoules        float64
	EquivalentMagnitude float64
}

// SmallBody holds orbital details from the JPL Small-Body Database.
type SmallBody struct {
	FullName      string `json:"full_name"`
	OrbitClass    string `json:"orbit_class,omitempty"`
	Hazardous     bool   `json:"hazardous"`
	MOIDAU        string `json:"moid_au,omitempty"`
	ConditionCode string `json:"condition_code,omitempty"`
	FirstObserved string `json:"first_observed,omitempty"`
	LastObserved  string `json:"last_observed,omitempty"`
}
