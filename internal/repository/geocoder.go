package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	drepo "Horary/internal/domain/repository"
	"Horary/pkg/cache"
	xhttp "Horary/pkg/http"
	xlogger "Horary/pkg/logger"
)

// ErrLocationNotFound reports that the geocoder returned no match.
var ErrLocationNotFound = errors.New("geocoder: location not found")

// NominatimGeocoder resolves place names through the OpenStreetMap Nominatim
// API, with resolved results cached under the normalized query text.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	cacheTTL  time.Duration
	client    *xhttp.Client
	cache     cache.Service
	log       *xlogger.Logger
}

// NewNominatimGeocoder creates a geocoder. The cache may be nil to disable caching.
func NewNominatimGeocoder(baseURL, userAgent string, timeout, cacheTTL time.Duration, store cache.Service, log *xlogger.Logger) drepo.Geocoder {
	return &NominatimGeocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		cacheTTL:  cacheTTL,
		client:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		cache:     store,
		log:       log,
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve looks up a free-text location and returns its coordinates.
func (g *NominatimGeocoder) Resolve(ctx context.Context, location string) (drepo.GeoResult, error) {
	key := cache.NormalizedKey("geocode", location)

	if g.cache != nil {
		var cached drepo.GeoResult
		if err := g.cache.Get(ctx, key, &cached); err == nil {
			g.log.Debug("geocode cache hit", xlogger.String("location", location))
			return cached, nil
		}
	}

	var places []nominatimPlace
	err := g.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    g.baseURL + "/search",
		Headers: map[string]string{
			"User-Agent": g.userAgent,
		},
		QueryParams: map[string][]string{
			"q":      {location},
			"format": {"json"},
			"limit":  {"1"},
		},
	}, &places)
	if err != nil {
		return drepo.GeoResult{}, fmt.Errorf("geocode %q: %w", location, err)
	}

	if len(places) == 0 {
		return drepo.GeoResult{}, fmt.Errorf("geocode %q: %w", location, ErrLocationNotFound)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return drepo.GeoResult{}, fmt.Errorf("geocode %q: bad latitude %q", location, places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return drepo.GeoResult{}, fmt.Errorf("geocode %q: bad longitude %q", location, places[0].Lon)
	}

	result := drepo.GeoResult{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: places[0].DisplayName,
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, key, result, g.cacheTTL); err != nil {
			g.log.Warn("geocode cache write failed", xlogger.Error(err))
		}
	}

	return result, nil
}
