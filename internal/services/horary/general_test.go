package horary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Horary/internal/domain/models"
)

func TestPlanetaryDayRuler(t *testing.T) {
	// Tuesday noon belongs to Mars.
	tuesday := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, models.Mars, planetaryDayRuler(tuesday))

	// Before 06:00 the planetary day is still the previous one.
	earlyTuesday := time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, models.Moon, planetaryDayRuler(earlyTuesday))
}

func TestPlanetaryHourRuler(t *testing.T) {
	// The first hour of the day is ruled by the day's ruler.
	sunday := time.Date(2025, 6, 8, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, models.Sun, planetaryHourRuler(sunday))

	// The sequence then walks the Chaldean order.
	assert.Equal(t, models.Venus, planetaryHourRuler(sunday.Add(time.Hour)))
	assert.Equal(t, models.Mercury, planetaryHourRuler(sunday.Add(2*time.Hour)))
	assert.Equal(t, models.Moon, planetaryHourRuler(sunday.Add(3*time.Hour)))
	assert.Equal(t, models.Saturn, planetaryHourRuler(sunday.Add(4*time.Hour)))
}

func TestTimingBuckets(t *testing.T) {
	cases := map[float64]string{
		0.2: "Within hours",
		0.9: "Within a day",
		5:   "Within 5 days",
		10:  "Within 2 weeks",
		25:  "Within 4 weeks",
		60:  "Within 2 months",
		200: "Within 7 months",
		400: "More than a year",
	}
	for days, want := range cases {
		assert.Equal(t, want, timingFromDays(days), "days %v", days)
	}
}

func TestGeneralInfoBlock(t *testing.T) {
	cfg := testConfig(t)
	calc := NewCalculator(cfg, testLogger(t))

	chart := buildTestChart(t, cfg, 5, directPerfectionBodies())
	info := calc.GeneralInfo(chart)
	require.NotNil(t, info)

	assert.Equal(t, models.Mars, info.PlanetaryDay)
	assert.Equal(t, models.Gemini, info.MoonCondition.Sign)
	assert.Equal(t, "average", info.MoonCondition.SpeedCategory)
	assert.Equal(t, "Waning Crescent", info.MoonPhase)
	assert.NotEmpty(t, info.MoonMansion.Name)
	assert.Equal(t, 6, info.MoonMansion.Number)
}

func TestMoonStoryOrderedByOrb(t *testing.T) {
	cfg := testConfig(t)
	calc := NewCalculator(cfg, testLogger(t))

	chart := buildTestChart(t, cfg, 5, directPerfectionBodies())
	story := calc.MoonStory(chart)
	require.NotEmpty(t, story)

	for i := 1; i < len(story); i++ {
		assert.LessOrEqual(t, story[i-1].Orb, story[i].Orb)
	}
	for _, entry := range story {
		assert.NotEqual(t, models.Moon, entry.Body)
		if entry.Applying {
			assert.Equal(t, "applying", entry.Status)
			assert.NotEmpty(t, entry.Timing)
		} else {
			assert.Equal(t, "separating", entry.Status)
		}
	}
}

func TestSerializeChart(t *testing.T) {
	cfg := testConfig(t)

	chart := buildTestChart(t, cfg, 5, directPerfectionBodies())
	wire := SerializeChart(chart)

	require.Len(t, wire.Bodies, 7)
	moon := wire.Bodies["Moon"]
	assert.Equal(t, models.Gemini, moon.Sign)
	assert.InDelta(t, 15.0, moon.DegreeInSign, 1e-9)
	require.NotNil(t, moon.Solar)

	assert.Len(t, wire.Cusps, 12)
	assert.Equal(t, models.Mars, wire.HouseRulers["1"])
	assert.Equal(t, models.Venus, wire.HouseRulers["7"])
	assert.Equal(t, "London", wire.Timezone.LocationName)
	assert.NotEmpty(t, wire.Timezone.UTCTime)
}
