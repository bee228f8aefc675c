package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Horary/pkg/cache"
	xlogger "Horary/pkg/logger"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func TestGeocoderResolve(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_ = json.NewEncoder(w).Encode([]nominatimPlace{{
			Lat:         "51.5074",
			Lon:         "-0.1278",
			DisplayName: "London, Greater London, England, United Kingdom",
		}})
	}))
	defer srv.Close()

	store := cache.NewMemoryCache()
	defer store.Close()

	g := NewNominatimGeocoder(srv.URL, "test-agent", 5*time.Second, time.Hour, store, testLogger(t))

	res, err := g.Resolve(context.Background(), "London")
	require.NoError(t, err)
	assert.InDelta(t, 51.5074, res.Latitude, 1e-9)
	assert.InDelta(t, -0.1278, res.Longitude, 1e-9)
	assert.Contains(t, res.DisplayName, "London")

	// Second lookup is served from cache.
	res2, err := g.Resolve(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, res, res2)
	assert.Equal(t, 1, requests)
}

func TestGeocoderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]nominatimPlace{})
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, "test-agent", 5*time.Second, time.Hour, nil, testLogger(t))

	_, err := g.Resolve(context.Background(), "Atlantis, Lost Ocean")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocationNotFound))
}

func TestGeocoderTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, "test-agent", 5*time.Second, time.Hour, nil, testLogger(t))

	_, err := g.Resolve(context.Background(), "London")
	require.Error(t, err)
}
