package horary

import (
	"Horary/internal/domain/models"
	"Horary/pkg/astro"
	xlogger "Horary/pkg/logger"
)

// analyzeSolarCondition classifies one body's relation to the Sun. The Sun
// itself is always free. Cazimi outranks combustion which outranks under the
// beams; the visibility exceptions can lift the two weakening conditions.
func (c *Calculator) analyzeSolarCondition(body models.CelestialBody, pos models.BodyPosition,
	sun models.BodyPosition, twilightSunAltitude float64) models.SolarAnalysis {

	if body == models.Sun {
		return models.SolarAnalysis{Body: body, Condition: models.FreeOfSun}
	}

	distance := astro.Elongation(pos.Longitude, sun.Longitude)
	analysis := models.SolarAnalysis{
		Body:            body,
		DistanceFromSun: distance,
		Condition:       models.FreeOfSun,
	}

	cazimiOrb := c.cfg.Orbs.CazimiOrbArcmin / 60
	exactCazimiOrb := c.cfg.Orbs.ExactCazimiOrbArcmin / 60

	switch {
	case distance <= cazimiOrb:
		analysis.Condition = models.Cazimi
		analysis.ExactCazimi = distance <= exactCazimiOrb
	case distance <= c.cfg.Orbs.CombustionOrb:
		if c.visibilityException(body, pos, sun, twilightSunAltitude) {
			analysis.TraditionalException = true
			c.log.Debug("combustion lifted by visibility exception",
				xlogger.String("body", string(body)),
				xlogger.Any("distance", distance))
		} else {
			analysis.Condition = models.Combustion
		}
	case distance <= c.cfg.Orbs.UnderBeamsOrb:
		if c.visibilityException(body, pos, sun, twilightSunAltitude) {
			analysis.TraditionalException = true
		} else {
			analysis.Condition = models.UnderBeams
		}
	}

	return analysis
}

// visibilityException reports whether a body close to the Sun is nevertheless
// visible by the traditional criteria. Only Mercury and Venus qualify beyond
// the plain elongation floor.
func (c *Calculator) visibilityException(body models.CelestialBody, pos models.BodyPosition,
	sun models.BodyPosition, twilightSunAltitude float64) bool {

	elongation := astro.Elongation(pos.Longitude, sun.Longitude)
	if elongation < c.cfg.Visibility.MinElongation {
		return false
	}

	switch body {
	case models.Mercury:
		// Mercury escapes in signs of quick ascension or at wide elongation.
		if models.QuickRisingSigns[pos.Sign] {
			return true
		}
		return elongation >= c.cfg.Visibility.MercuryExtendedElongation
	case models.Venus:
		// Venus escapes as a morning or evening star when twilight is dark
		// enough, or near its maximum elongation.
		if twilightSunAltitude <= c.cfg.Visibility.TwilightAltitudeMax {
			return true
		}
		return elongation >= c.cfg.Visibility.VenusMaxElongation
	}

	return false
}
