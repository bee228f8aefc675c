package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Horary/internal/domain/models"
)

func TestEphemerisPositions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/positions", r.URL.Path)

		var req positionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2025-06-10T12:00:00Z", req.UTC)
		assert.InDelta(t, 51.5074, req.Latitude, 1e-9)

		resp := positionsResponse{
			Planets: map[string]struct {
				Longitude float64 `json:"longitude"`
				Latitude  float64 `json:"latitude"`
				Speed     float64 `json:"speed"`
			}{
				"Sun":     {Longitude: 120.0, Speed: 1.0},
				"Moon":    {Longitude: 75.0, Latitude: 2.1, Speed: 13.0},
				"Mercury": {Longitude: 98.0, Speed: 1.3},
				"Venus":   {Longitude: 10.0, Speed: 1.2},
				"Mars":    {Longitude: 13.0, Speed: 0.5},
				"Jupiter": {Longitude: 53.0, Speed: 0.1},
				"Saturn":  {Longitude: 160.0, Speed: 0.05},
			},
			Houses:              []float64{5, 35, 65, 95, 125, 155, 185, 215, 245, 275, 305, 335},
			Ascendant:           5.0,
			Midheaven:           275.0,
			TwilightSunAltitude: -12.5,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewEphemerisClient(srv.URL, 5*time.Second, testLogger(t))

	utc := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	snap, err := c.Positions(context.Background(), utc, 51.5074, -0.1278)
	require.NoError(t, err)

	assert.Len(t, snap.Bodies, 7)
	assert.InDelta(t, 75.0, snap.Bodies[models.Moon].Longitude, 1e-9)
	assert.InDelta(t, 2.1, snap.Bodies[models.Moon].Latitude, 1e-9)
	assert.InDelta(t, 5.0, snap.Ascendant, 1e-9)
	assert.InDelta(t, 185.0, snap.Cusps[6], 1e-9)
	assert.InDelta(t, -12.5, snap.TwilightSunAltitude, 1e-9)
}

func TestEphemerisMissingBodyTolerated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := positionsResponse{
			Planets: map[string]struct {
				Longitude float64 `json:"longitude"`
				Latitude  float64 `json:"latitude"`
				Speed     float64 `json:"speed"`
			}{
				"Sun":  {Longitude: 120.0, Speed: 1.0},
				"Moon": {Longitude: 75.0, Speed: 13.0},
			},
			Houses: []float64{5, 35, 65, 95, 125, 155, 185, 215, 245, 275, 305, 335},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewEphemerisClient(srv.URL, 5*time.Second, testLogger(t))

	snap, err := c.Positions(context.Background(), time.Now().UTC(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, snap.Bodies, 2)
	_, ok := snap.Bodies[models.Saturn]
	assert.False(t, ok)
}

func TestEphemerisBadCuspCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(positionsResponse{Houses: []float64{5, 35}})
	}))
	defer srv.Close()

	c := NewEphemerisClient(srv.URL, 5*time.Second, testLogger(t))

	_, err := c.Positions(context.Background(), time.Now().UTC(), 0, 0)
	require.Error(t, err)
}
