package horary

import (
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/require"

	"Horary/internal/domain/models"
	"Horary/internal/domain/repository"
	"Horary/pkg/astro"
	"Horary/pkg/config"
	xlogger "Horary/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	var c config.Config
	require.NoError(t, defaults.Set(&c))
	c.Ephemeris.BaseURL = "http://127.0.0.1:8001"
	return &c
}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

// equalCusps builds twelve equal houses from the given ascendant.
func equalCusps(asc float64) [12]float64 {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = astro.NormalizeLongitude(asc + float64(i)*30)
	}
	return cusps
}

type testBody struct {
	lon   float64
	speed float64
}

// buildTestChart assembles a chart from raw positions with equal houses.
func buildTestChart(t *testing.T, cfg *config.Config, asc float64,
	bodies map[models.CelestialBody]testBody) *models.Chart {
	t.Helper()

	snap := &repository.EphemerisSnapshot{
		Bodies:    make(map[models.CelestialBody]repository.RawBodyState, len(bodies)),
		Cusps:     equalCusps(asc),
		Ascendant: asc,
		Midheaven: astro.NormalizeLongitude(asc + 270),
	}
	for body, tb := range bodies {
		snap.Bodies[body] = repository.RawBodyState{
			Longitude: tb.lon,
			Speed:     tb.speed,
		}
	}

	calc := NewCalculator(cfg, testLogger(t))
	utc := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	return calc.BuildChart(snap, utc, utc, "UTC", 51.5074, -0.1278, "London")
}

// directPerfectionBodies is the base fixture: Venus behind Mars, catching it
// inside Aries, with everything else parked clear of the significators.
func directPerfectionBodies() map[models.CelestialBody]testBody {
	return map[models.CelestialBody]testBody{
		models.Sun:     {lon: 120, speed: 1.0},
		models.Moon:    {lon: 75, speed: 13.0},
		models.Mercury: {lon: 98, speed: 1.3},
		models.Venus:   {lon: 10, speed: 1.2},
		models.Mars:    {lon: 13, speed: 0.5},
		models.Jupiter: {lon: 53, speed: 0.1},
		models.Saturn:  {lon: 160, speed: 0.05},
	}
}

// moonDignityFallbackBodies puts the Moon at 3 Aries with every lunar contact
// outside orb while its soonest perfections still land in-sign, and leaves
// the significators (Mars for house 1, Venus for house 7) without any
// perfection path. Judgment must come down to the Moon's own condition.
func moonDignityFallbackBodies() map[models.CelestialBody]testBody {
	return map[models.CelestialBody]testBody{
		models.Sun:     {lon: 160, speed: 1.0},
		models.Moon:    {lon: 3, speed: 13.0},
		models.Mercury: {lon: 168, speed: 1.3},
		models.Venus:   {lon: 293, speed: 1.2},
		models.Mars:    {lon: 195, speed: 0.5},
		models.Jupiter: {lon: 145, speed: 0.1},
		models.Saturn:  {lon: 330, speed: 0.1},
	}
}
