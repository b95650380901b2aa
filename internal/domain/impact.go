package domain

import "math"

// Illustrative constants. They are not calibrated and are kept here so they
// are easy to find and replace.
const (
	rockDensityKgPerM3 = 3000.0
	casualtyFactor     = 100.0

	// Richter-style energy relation: log10(E) = 4.8 + 1.5 M.
	magnitudeEnergyOffset = 4.8
	magnitudeEnergySlope  = 1.5
)

// Size class thresholds in meters. Each threshold belongs to the next bucket.
const (
	carSizedMaxMeters      = 10.0
	buildingSizedMaxMeters = 50.0
	stadiumSizedMaxMeters  = 200.0
)

// SizeText maps a diameter to a human-readable size class.
func SizeText(diameterMeters float64) string {
	switch {
	case diameterMeters < carSizedMaxMeters:
		return "Small (car-sized)"
	case diameterMeters < buildingSizedMaxMeters:
		return "Building-sized"
	case diameterMeters < stadiumSizedMaxMeters:
		return "Stadium-sized"
	default:
		return "City-block sized"
	}
}

// CasualtyEstimate returns floor(100 * d^2).
func CasualtyEstimate(diameterMeters float64) int64 {
	return int64(math.Floor(casualtyFactor * diameterMeters * diameterMeters))
}

// EnergyJoules returns the kinetic energy of a rocky sphere of the given
// diameter travelling at speedKmPerSec.
func EnergyJoules(diameterMeters, speedKmPerSec float64) float64 {
	radius := diameterMeters / 2
	mass := (4.0 / 3.0) * math.Pi * radius * radius * radius * rockDensityKgPerM3
	velocity := speedKmPerSec * 1000
	return 0.5 * mass * velocity * velocity
}

// EquivalentMagnitude expresses an energy release on a Richter-like scale.
// Non-positive energy maps to 0.
func EquivalentMagnitude(energyJoules float64) float64 {
	if energyJoules <= 0 {
		return 0
	}
	return (math.Log10(energyJoules) - magnitudeEnergyOffset) / magnitudeEnergySlope
}

// ComputeImpact derives all impact metrics for an object.
func ComputeImpact(obj NearEarthObject) ImpactMetrics {
	energy := EnergyJoules(obj.DiameterMeters, obj.Speed())
	return ImpactMetrics{
		SizeText:            SizeText(obj.DiameterMeters),
		CasualtyEstimate:    CasualtyEstimate(obj.DiameterMeters),
		EnergyJoules:        energy,
		EquivalentMagnitude: EquivalentMagnitude(energy),
	}
}
