package horary

import (
	"time"

	"Horary/internal/domain/models"
	"Horary/internal/domain/repository"
	"Horary/pkg/astro"
	"Horary/pkg/config"
	xlogger "Horary/pkg/logger"
)

// Calculator assembles immutable charts from raw ephemeris output. All
// geometric subsystems (aspects, solar conditions, dignities, lunar aspects)
// run here so the judgment procedure only ever reads a finished Chart.
type Calculator struct {
	cfg *config.Config
	log *xlogger.Logger
}

func NewCalculator(cfg *config.Config, log *xlogger.Logger) *Calculator {
	return &Calculator{cfg: cfg, log: log}
}

// BuildChart turns one ephemeris snapshot into a Chart. A body missing from
// the snapshot degrades to a fallback position rather than failing the chart.
func (c *Calculator) BuildChart(snap *repository.EphemerisSnapshot, local, utc time.Time,
	tz string, lat, lon float64, locationName string) *models.Chart {

	bodies := make(map[models.CelestialBody]models.BodyPosition, 7)
	for _, body := range models.Planets() {
		raw, ok := snap.Bodies[body]
		if !ok {
			c.log.Warn("ephemeris missing body, using fallback position",
				xlogger.String("body", string(body)))
			bodies[body] = models.BodyPosition{
				Body: body, Longitude: 0, Sign: models.Aries, House: 1,
			}
			continue
		}
		longitude := astro.NormalizeLongitude(raw.Longitude)
		bodies[body] = models.BodyPosition{
			Body:       body,
			Longitude:  longitude,
			Latitude:   raw.Latitude,
			Sign:       models.SignOfLongitude(longitude),
			Retrograde: raw.Speed < 0,
			Speed:      raw.Speed,
		}
	}

	houseRulers := make(map[int]models.CelestialBody, 12)
	for i, cusp := range snap.Cusps {
		houseRulers[i+1] = models.SignOfLongitude(cusp).Ruler()
	}

	for body, pos := range bodies {
		pos.House = astro.HouseOfLongitude(pos.Longitude, snap.Cusps)
		bodies[body] = pos
	}

	sun := bodies[models.Sun]
	solar := make(map[models.CelestialBody]models.SolarAnalysis, len(bodies))
	for body, pos := range bodies {
		analysis := c.analyzeSolarCondition(body, pos, sun, snap.TwilightSunAltitude)
		solar[body] = analysis
		pos.DignityScore = c.dignityScore(body, pos, analysis)
		bodies[body] = pos
	}

	chart := &models.Chart{
		LocalTime:           local,
		UTCTime:             utc,
		Timezone:            tz,
		Latitude:            lat,
		Longitude:           lon,
		LocationName:        locationName,
		Bodies:              bodies,
		Cusps:               snap.Cusps,
		HouseRulers:         houseRulers,
		Ascendant:           astro.NormalizeLongitude(snap.Ascendant),
		Midheaven:           astro.NormalizeLongitude(snap.Midheaven),
		SolarAnalyses:       solar,
		TwilightSunAltitude: snap.TwilightSunAltitude,
	}

	chart.Aspects = c.computeAspects(bodies, utc)
	chart.MoonLastAspect = c.moonLastAspect(bodies)
	chart.MoonNextAspect = c.moonNextAspect(bodies)

	return chart
}

// moonSpeed returns the Moon's absolute daily motion, falling back to the
// configured mean speed when the ephemeris reported none.
func (c *Calculator) moonSpeed(bodies map[models.CelestialBody]models.BodyPosition) float64 {
	speed := bodies[models.Moon].Speed
	if speed < 0 {
		speed = -speed
	}
	if speed == 0 {
		return c.cfg.Timing.DefaultMoonSpeedFallback
	}
	return speed
}
