// Package domain models near-Earth objects and the illustrative impact
// scenarios built from them.
//
// # Data Source
//
// Objects come from the NASA NeoWs feed (https://api.nasa.gov/neo/rest/v1/feed),
// queried one calendar day at a time. Each record carries an estimated
// diameter range and zero or more close-approach records; only the first
// close approach of an object is used.
//
// # Selection
//
// The most relevant object for a day is the one with the smallest miss
// distance among objects that have a close approach. Ties keep the first
// object in feed order. If no object has a close approach the first object
// is returned unchanged. See [SelectMostRelevant].
//
// # Impact Model
//
// The numbers are teaching aids, not physics:
//
//	Size text:    <10 m car-sized | <50 m building | <200 m stadium | else city-block
//	Casualties:   floor(100 * d^2)
//	Energy:       sphere of rock, density 3000 kg/m^3, E = 1/2 m v^2
//	Magnitude:    (log10(E) - 4.8) / 1.5, or 0 when E <= 0
//	Baseline risk: 2% inside 5,000,000 km, else 0.1%
//
// # Scenarios
//
// A user choice (Survey, Deflect, Evacuate) scales either the impact
// probability or the casualty estimate once. The narration is always four
// phases in a fixed order: Discovery, Risk Assessment, Mitigation Action,
// Final Outcome. Phase names and JSON field names are consumed verbatim by
// the front end.
package domain
