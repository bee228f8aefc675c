package repository

import (
	"context"
	"fmt"
	"time"

	"Horary/internal/domain/models"
	drepo "Horary/internal/domain/repository"
	xhttp "Horary/pkg/http"
	xlogger "Horary/pkg/logger"
)

// EphemerisClient talks to the Swiss Ephemeris sidecar over HTTP.
type EphemerisClient struct {
	baseURL string
	client  *xhttp.Client
	log     *xlogger.Logger
}

// NewEphemerisClient creates an ephemeris client for the sidecar at baseURL.
func NewEphemerisClient(baseURL string, timeout time.Duration, log *xlogger.Logger) drepo.Ephemeris {
	return &EphemerisClient{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		log:     log,
	}
}

type positionsRequest struct {
	UTC       string  `json:"utc"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type positionsResponse struct {
	Planets map[string]struct {
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
		Speed     float64 `json:"speed"`
	} `json:"planets"`
	Houses              []float64 `json:"houses"`
	Ascendant           float64   `json:"ascendant"`
	Midheaven           float64   `json:"midheaven"`
	TwilightSunAltitude float64   `json:"twilight_sun_altitude"`
}

// Positions fetches planetary positions and house cusps for one instant.
func (c *EphemerisClient) Positions(ctx context.Context, utc time.Time, lat, lon float64) (*drepo.EphemerisSnapshot, error) {
	var resp positionsResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/positions",
		Body: positionsRequest{
			UTC:       utc.UTC().Format(time.RFC3339),
			Latitude:  lat,
			Longitude: lon,
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("ephemeris positions: %w", err)
	}

	if len(resp.Houses) != 12 {
		return nil, fmt.Errorf("ephemeris positions: expected 12 cusps, got %d", len(resp.Houses))
	}

	snap := &drepo.EphemerisSnapshot{
		Bodies:              make(map[models.CelestialBody]drepo.RawBodyState, len(resp.Planets)),
		Ascendant:           resp.Ascendant,
		Midheaven:           resp.Midheaven,
		TwilightSunAltitude: resp.TwilightSunAltitude,
	}
	copy(snap.Cusps[:], resp.Houses)

	for _, body := range models.Planets() {
		raw, ok := resp.Planets[string(body)]
		if !ok {
			// Chart assembly degrades missing bodies; here we only note it.
			c.log.Warn("ephemeris response missing body", xlogger.String("body", string(body)))
			continue
		}
		snap.Bodies[body] = drepo.RawBodyState{
			Longitude: raw.Longitude,
			Latitude:  raw.Latitude,
			Speed:     raw.Speed,
		}
	}

	return snap, nil
}
