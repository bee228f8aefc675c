package horary

import (
	"fmt"
	"math"
	"time"

	"Horary/internal/domain/models"
	"Horary/pkg/astro"
)

// timingFromDays maps a number of days to the traditional timing phrase,
// counting days, then weeks, then months.
func timingFromDays(days float64) string {
	switch {
	case days < 0.5:
		return "Within hours"
	case days <= 1:
		return "Within a day"
	case days <= 7:
		return fmt.Sprintf("Within %d days", int(math.Ceil(days)))
	case days <= 30:
		return fmt.Sprintf("Within %d weeks", int(math.Ceil(days/7)))
	case days <= 365:
		return fmt.Sprintf("Within %d months", int(math.Ceil(days/30)))
	default:
		return "More than a year"
	}
}

// Chaldean order, fastest to slowest reversed. Planetary hours cycle through
// this sequence starting from the day's ruler.
var chaldeanOrder = []models.CelestialBody{
	models.Saturn, models.Jupiter, models.Mars, models.Sun,
	models.Venus, models.Mercury, models.Moon,
}

var dayRulers = map[time.Weekday]models.CelestialBody{
	time.Sunday:    models.Sun,
	time.Monday:    models.Moon,
	time.Tuesday:   models.Mars,
	time.Wednesday: models.Mercury,
	time.Thursday:  models.Jupiter,
	time.Friday:    models.Venus,
	time.Saturday:  models.Saturn,
}

// planetaryDayRuler returns the ruler of the planetary day. Days run sunrise
// to sunrise, approximated at 06:00 local.
func planetaryDayRuler(local time.Time) models.CelestialBody {
	if local.Hour() < 6 {
		local = local.AddDate(0, 0, -1)
	}
	return dayRulers[local.Weekday()]
}

// planetaryHourRuler returns the ruler of the planetary hour using equal
// hours counted from 06:00 local.
func planetaryHourRuler(local time.Time) models.CelestialBody {
	day := planetaryDayRuler(local)
	hoursSinceSunrise := (local.Hour() - 6 + 24) % 24

	start := 0
	for i, body := range chaldeanOrder {
		if body == day {
			start = i
			break
		}
	}
	return chaldeanOrder[(start+hoursSinceSunrise)%len(chaldeanOrder)]
}

// The 28 lunar mansions in zodiacal order from 0 Aries.
var mansionNames = []string{
	"Al Sharatain", "Al Butain", "Al Thurayya", "Al Dabaran",
	"Al Hak'ah", "Al Han'ah", "Al Dhira", "Al Nathrah",
	"Al Tarf", "Al Jabhah", "Al Zubrah", "Al Sarfah",
	"Al Awwa", "Al Simak", "Al Ghafr", "Al Jubana",
	"Iklil al Jabhah", "Al Kalb", "Al Shaulah", "Al Na'am",
	"Al Baldah", "Sa'd al Dhabih", "Sa'd Bula", "Sa'd al Su'ud",
	"Sa'd al Akhbiyah", "Al Fargh al Awwal", "Al Fargh al Thani", "Batn al Hut",
}

// moonMansion returns the Moon's mansion. Mansions divide the zodiac into 28
// equal arcs of 12 6/7 degrees.
func moonMansion(moonLongitude float64) models.MoonMansion {
	idx := int(astro.NormalizeLongitude(moonLongitude) / (360.0 / 28.0))
	if idx > 27 {
		idx = 27
	}
	return models.MoonMansion{Number: idx + 1, Name: mansionNames[idx]}
}

// GeneralInfo assembles the supplementary chart context block.
func (c *Calculator) GeneralInfo(chart *models.Chart) *models.GeneralInfo {
	moon := chart.Bodies[models.Moon]
	void := c.MoonVoidOfCourse(chart)
	speed := c.moonSpeed(chart.Bodies)

	return &models.GeneralInfo{
		PlanetaryDay:  planetaryDayRuler(chart.LocalTime),
		PlanetaryHour: planetaryHourRuler(chart.LocalTime),
		MoonPhase:     moonPhaseName(moonPhaseAngle(chart)),
		MoonMansion:   moonMansion(moon.Longitude),
		MoonCondition: models.MoonCondition{
			Sign:          moon.Sign,
			Speed:         speed,
			SpeedCategory: moonSpeedCategory(speed),
			VoidOfCourse:  void.Void,
			VoidReason:    void.Reason,
		},
	}
}

// MoonStory lists the Moon's current aspects with timing, nearest first.
func (c *Calculator) MoonStory(chart *models.Chart) []models.MoonStoryEntry {
	speed := c.moonSpeed(chart.Bodies)
	var story []models.MoonStoryEntry

	for _, a := range chart.Aspects {
		if !a.Involves(models.Moon) {
			continue
		}

		entry := models.MoonStoryEntry{
			Body:     a.Other(models.Moon),
			Kind:     a.Kind,
			Orb:      a.Orb,
			Applying: a.Applying,
			Status:   "separating",
		}
		if a.Applying {
			entry.Status = "applying"
			entry.DaysToPerfect = a.DegreesToExact / speed
			entry.Timing = timingFromDays(entry.DaysToPerfect)
		}
		story = append(story, entry)
	}

	// Nearest contact first.
	for i := 1; i < len(story); i++ {
		for k := i; k > 0 && story[k].Orb < story[k-1].Orb; k-- {
			story[k], story[k-1] = story[k-1], story[k]
		}
	}
	return story
}

// formatPosition renders a body position for reasoning strings.
func formatPosition(pos models.BodyPosition) string {
	return fmt.Sprintf("%s at %s %s (house %d)",
		pos.Body, astro.DegreesToDMS(astro.DegreeInSign(pos.Longitude)), pos.Sign, pos.House)
}
