package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Horary/internal/domain/models"
	drepo "Horary/internal/domain/repository"
	"Horary/internal/services/horary"
	"Horary/pkg/config"
	xlogger "Horary/pkg/logger"
)

type stubGeocoder struct {
	res drepo.GeoResult
	err error
}

func (s stubGeocoder) Resolve(_ context.Context, _ string) (drepo.GeoResult, error) {
	return s.res, s.err
}

type stubEphemeris struct {
	snap *drepo.EphemerisSnapshot
	err  error
}

func (s stubEphemeris) Positions(_ context.Context, _ time.Time, _, _ float64) (*drepo.EphemerisSnapshot, error) {
	return s.snap, s.err
}

type recordingMetrics struct {
	verdicts    []string
	confidences []int
	errorKinds  []string
}

func (m *recordingMetrics) RecordJudgment(verdict string) { m.verdicts = append(m.verdicts, verdict) }
func (m *recordingMetrics) RecordConfidence(confidence int) {
	m.confidences = append(m.confidences, confidence)
}
func (m *recordingMetrics) RecordError(kind string)           { m.errorKinds = append(m.errorKinds, kind) }
func (m *recordingMetrics) RecordLatency(_ string, _ float64) {}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	require.NoError(t, defaults.Set(cfg))
	cfg.Ephemeris.BaseURL = "http://localhost:8001"
	return cfg
}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

// Chart of an applying Mars-Venus conjunction with Aries rising: the ruler of
// the first house applies to the ruler of the seventh.
func marriageSnapshot() *drepo.EphemerisSnapshot {
	snap := &drepo.EphemerisSnapshot{
		Ascendant:           5.0,
		Midheaven:           275.0,
		TwilightSunAltitude: -20.0,
	}
	for i := range snap.Cusps {
		snap.Cusps[i] = normalize(5.0 + 30.0*float64(i))
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
	return snap
}

func normalize(lon float64) float64 {
	for lon < 0 {
		lon += 360
	}
	for lon >= 360 {
		lon -= 360
	}
	return lon
}

func newTestService(t *testing.T, geo drepo.Geocoder, eph drepo.Ephemeris, m drepo.Metrics) *JudgmentService {
	t.Helper()
	cfg := testConfig(t)
	log := testLogger(t)
	calc := horary.NewCalculator(cfg, log)
	return NewJudgmentService(cfg, log,
		geo, eph, m,
		horary.NewQuestionAnalyzer(cfg, log),
		calc,
		horary.NewJudge(cfg, log, calc),
	)
}

func londonGeocoder() stubGeocoder {
	return stubGeocoder{res: drepo.GeoResult{
		Latitude:    51.5074,
		Longitude:   -0.1278,
		DisplayName: "London, United Kingdom",
	}}
}

func marriageRequest() *models.JudgmentRequest {
	return &models.JudgmentRequest{
		Question: "Will we marry?",
		Location: "London",
		Date:     "2025-06-10",
		Time:     "12:00",
		Timezone: "UTC",
	}
}

func TestJudgeHappyPath(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := newTestService(t, londonGeocoder(), stubEphemeris{snap: marriageSnapshot()}, metrics)

	resp := svc.Judge(context.Background(), marriageRequest())

	assert.Equal(t, models.VerdictYes, resp.Judgment)
	assert.Equal(t, 75, resp.Confidence)
	assert.Empty(t, resp.Error)

	require.NotNil(t, resp.Chart)
	assert.Equal(t, "London, United Kingdom", resp.Chart.Timezone.LocationName)
	assert.Equal(t, "2025-06-10T12:00:00Z", resp.Chart.Timezone.UTCTime)
	assert.Len(t, resp.Chart.Bodies, 7)

	require.NotNil(t, resp.QuestionAnalysis)
	assert.Equal(t, "relationship", resp.QuestionAnalysis.QuestionType)
	assert.Equal(t, 7, resp.QuestionAnalysis.Significators.QuesitedHouse)

	require.NotNil(t, resp.GeneralInfo)
	require.NotNil(t, resp.Considerations)
	assert.True(t, resp.Considerations.Radical)
	assert.NotEmpty(t, resp.MoonStory)

	assert.Equal(t, []string{"YES"}, metrics.verdicts)
	assert.Equal(t, []int{75}, metrics.confidences)
}

func TestJudgeLocationError(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := newTestService(t,
		stubGeocoder{err: errors.New("no results")},
		stubEphemeris{snap: marriageSnapshot()}, metrics)

	resp := svc.Judge(context.Background(), marriageRequest())

	assert.Equal(t, models.VerdictLocationError, resp.Judgment)
	assert.Equal(t, 0, resp.Confidence)
	assert.NotEmpty(t, resp.Error)
	assert.Nil(t, resp.Chart)
	assert.Contains(t, metrics.errorKinds, "geocode")
}

func TestJudgeEphemerisFailure(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := newTestService(t, londonGeocoder(),
		stubEphemeris{err: errors.New("connection refused")}, metrics)

	resp := svc.Judge(context.Background(), marriageRequest())

	assert.Equal(t, models.VerdictError, resp.Judgment)
	assert.Equal(t, 0, resp.Confidence)
	assert.Contains(t, metrics.errorKinds, "ephemeris")
}

func TestJudgeBadDate(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := newTestService(t, londonGeocoder(), stubEphemeris{snap: marriageSnapshot()}, metrics)

	req := marriageRequest()
	req.Date = "June 10th"

	resp := svc.Judge(context.Background(), req)

	assert.Equal(t, models.VerdictError, resp.Judgment)
	assert.Contains(t, metrics.errorKinds, "time_parse")
}

func TestJudgeManualHousesOverride(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := newTestService(t, londonGeocoder(), stubEphemeris{snap: marriageSnapshot()}, metrics)

	req := marriageRequest()
	req.ManualHouses = []int{1, 5}

	resp := svc.Judge(context.Background(), req)

	require.NotNil(t, resp.QuestionAnalysis)
	assert.Equal(t, 5, resp.QuestionAnalysis.Significators.QuesitedHouse)
	assert.Equal(t, []int{1, 5}, resp.QuestionAnalysis.RelevantHouses)
}

func TestJudgeUnknownTimezoneFallsBackToUTC(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := newTestService(t, londonGeocoder(), stubEphemeris{snap: marriageSnapshot()}, metrics)

	req := marriageRequest()
	req.Timezone = "Mars/Olympus_Mons"

	resp := svc.Judge(context.Background(), req)

	require.NotNil(t, resp.Chart)
	assert.Equal(t, "UTC", resp.Chart.Timezone.Timezone)
	assert.Equal(t, "2025-06-10T12:00:00Z", resp.Chart.Timezone.UTCTime)
}
