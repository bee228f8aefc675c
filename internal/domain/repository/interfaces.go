package repository

import (
	"context"
	"time"

	"Horary/internal/domain/models"
)

// RawBodyState is one body's ephemeris output before chart assembly.
type RawBodyState struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Speed     float64 `json:"speed"`
}

// EphemerisSnapshot is the full upstream answer for one instant and place.
type EphemerisSnapshot struct {
	Bodies              map[models.CelestialBody]RawBodyState `json:"bodies"`
	Cusps               [12]float64                           `json:"cusps"`
	Ascendant           float64                               `json:"ascendant"`
	Midheaven           float64                               `json:"midheaven"`
	TwilightSunAltitude float64                               `json:"twilight_sun_altitude"`
}

// Ephemeris supplies positions and houses for a given instant and location.
// How the numbers are computed is the provider's concern.
type Ephemeris interface {
	Positions(ctx context.Context, utc time.Time, lat, lon float64) (*EphemerisSnapshot, error)
}

// GeoResult is a resolved location.
type GeoResult struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
}

// Geocoder resolves free-text locations into coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, location string) (GeoResult, error)
}

// Metrics records judgment telemetry.
type Metrics interface {
	RecordJudgment(verdict string)
	RecordConfidence(confidence int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
