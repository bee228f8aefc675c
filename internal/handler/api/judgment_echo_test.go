package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Horary/internal/domain/models"
	drepo "Horary/internal/domain/repository"
	"Horary/internal/services/horary"
	"Horary/internal/usecase"
	"Horary/pkg/config"
	xlogger "Horary/pkg/logger"
)

type fixedGeocoder struct{}

func (fixedGeocoder) Resolve(_ context.Context, _ string) (drepo.GeoResult, error) {
	return drepo.GeoResult{Latitude: 51.5074, Longitude: -0.1278, DisplayName: "London"}, nil
}

type fixedEphemeris struct{}

func (fixedEphemeris) Positions(_ context.Context, _ time.Time, _, _ float64) (*drepo.EphemerisSnapshot, error) {
	snap := &drepo.EphemerisSnapshot{
		Ascendant:           5.0,
		Midheaven:           275.0,
		TwilightSunAltitude: -20.0,
	}
	for i := range snap.Cusps {
		snap.Cusps[i] = 5.0 + 30.0*float64(i)
	}
	snap.Bodies = map[models.CelestialBody]drepo.RawBodyState{
		models.Sun:     {Longitude: 120.0, Speed: 1.0},
		models.Moon:    {Longitude: 75.0, Speed: 13.0},
		models.Mercury: {Longitude: 98.0, Speed: 1.3},
		models.Venus:   {Longitude: 10.0, Speed: 1.2},
		models.Mars:    {Longitude: 13.0, Speed: 0.5},
		models.Jupiter: {Longitude: 53.0, Speed: 0.1},
		models.Saturn:  {Longitude: 160.0, Speed: 0.05},
	}
	return snap, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordJudgment(string)         {}
func (noopMetrics) RecordConfidence(int)          {}
func (noopMetrics) RecordError(string)            {}
func (noopMetrics) RecordLatency(string, float64) {}

func newTestHandler(t *testing.T) *JudgmentEchoHandler {
	t.Helper()
	cfg := &config.Config{}
	require.NoError(t, defaults.Set(cfg))
	cfg.Ephemeris.BaseURL = "http://localhost:8001"

	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	calc := horary.NewCalculator(cfg, log)
	svc := usecase.NewJudgmentService(cfg, log,
		fixedGeocoder{}, fixedEphemeris{}, noopMetrics{},
		horary.NewQuestionAnalyzer(cfg, log),
		calc,
		horary.NewJudge(cfg, log, calc),
	)
	return NewJudgmentEchoHandler(log, svc)
}

func postJudgment(t *testing.T, h *JudgmentEchoHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/judgment", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Judgment(c))
	return rec
}

func TestJudgmentEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := postJudgment(t, h, `{
		"question": "Will we marry?",
		"location": "London",
		"date": "2025-06-10",
		"time": "12:00",
		"timezone": "UTC",
		"use_current_time": false
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"judgment":"YES"`)
	assert.Contains(t, body, `"question_analysis"`)
	assert.Contains(t, body, `"chart_data"`)
}

func TestJudgmentEndpointRejectsMissingQuestion(t *testing.T) {
	h := newTestHandler(t)

	rec := postJudgment(t, h, `{"location": "London"}`)

	body := rec.Body.String()
	assert.Contains(t, body, "ERR_REQUIRED")
	assert.Contains(t, body, "Question")
}

func TestJudgmentEndpointRateLimits(t *testing.T) {
	h := newTestHandler(t)

	e := echo.New()
	var lastCode int
	for i := 0; i < 12; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/judgment", strings.NewReader(`{
			"question": "Will we marry?",
			"location": "London",
			"use_current_time": true
		}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.RemoteAddr = "10.0.0.9:1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, h.Judgment(c))
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
