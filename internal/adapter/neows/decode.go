package neows

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
)

// NeoWs feed response types.

type feedResponse struct {
	NearEarthObjects map[string][]object `json:"near_earth_objects"`
}

type object struct {
	ID                string     `json:"id"`
	NeoReferenceID    string     `json:"neo_reference_id"`
	Name              string     `json:"name"`
	EstimatedDiameter diameter   `json:"estimated_diameter"`
	CloseApproachData []approach `json:"close_approach_data"`
}

type diameter struct {
	Meters struct {
		Min number `json:"estimated_diameter_min"`
		Max number `json:"estimated_diameter_max"`
	} `json:"meters"`
}

type approach struct {
	RelativeVelocity struct {
		KilometersPerSecond number `json:"kilometers_per_second"`
	} `json:"relative_velocity"`
	MissDistance struct {
		Kilometers number `json:"kilometers"`
	} `json:"miss_distance"`
}

// number accepts both JSON numbers and numeric strings; NeoWs sends
// velocities and distances as strings and diameters as numbers. NaN and
// infinities are rejected.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", data, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("parse number %q: not finite", data)
	}
	*n = number(v)
	return nil
}

// DecodeFeed parses a NeoWs feed document and returns the objects listed
// under date. A missing near_earth_objects key is an error; a missing date
// key yields an empty slice.
func DecodeFeed(r io.Reader, date string) ([]domain.NearEarthObject, error) {
	var feed feedResponse
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrFeedUnavailable, err)
	}
	if feed.NearEarthObjects == nil {
		return nil, fmt.Errorf("%w: response has no near_earth_objects", domain.ErrFeedUnavailable)
	}

	raw := feed.NearEarthObjects[date]
	objects := make([]domain.NearEarthObject, 0, len(raw))
	for i := range raw {
		obj, err := toDomain(raw[i])
		if err != nil {
			return nil, fmt.Errorf("%w: object %d: %w", domain.ErrFeedUnavailable, i, err)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func toDomain(o object) (domain.NearEarthObject, error) {
	obj := domain.NearEarthObject{
		ID:             firstNonEmpty(o.NeoReferenceID, o.ID, o.Name),
		Name:           o.Name,
		DiameterMeters: float64(o.EstimatedDiameter.Meters.Max),
	}
	if obj.DiameterMeters < 0 {
		return domain.NearEarthObject{}, fmt.Errorf("negative diameter %g", obj.DiameterMeters)
	}

	if len(o.CloseApproachData) > 0 {
		ca := o.CloseApproachData[0]
		speed := float64(ca.RelativeVelocity.KilometersPerSecond)
		if speed < 0 {
			return domain.NearEarthObject{}, fmt.Errorf("negative speed %g", speed)
		}
		miss := float64(ca.MissDistance.Kilometers)
		if miss < 0 {
			return domain.NearEarthObject{}, fmt.Errorf("negative miss distance %g", miss)
		}
		obj.CloseApproach = &domain.CloseApproach{
			SpeedKmPerSec:  speed,
			MissDistanceKm: miss,
		}
	}
	return obj, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
