package horary

import (
	"math"
	"time"

	"Horary/internal/domain/models"
	"Horary/pkg/astro"
)

// computeAspects scans every planet pair for the five major aspects. Aspect
// kinds are tried in enumeration order and the first one inside orb wins, so
// a pair never carries two aspects at once.
func (c *Calculator) computeAspects(bodies map[models.CelestialBody]models.BodyPosition,
	utc time.Time) []models.AspectRelation {

	planets := models.Planets()
	var aspects []models.AspectRelation

	for i := 0; i < len(planets); i++ {
		for j := i + 1; j < len(planets); j++ {
			p1, ok1 := bodies[planets[i]]
			p2, ok2 := bodies[planets[j]]
			if !ok1 || !ok2 {
				continue
			}

			separation := math.Abs(astro.SignedSeparation(p1.Longitude, p2.Longitude))

			for _, kind := range models.AspectKinds() {
				orb := math.Abs(separation - kind.Degrees())
				if orb > c.maxOrb(kind, p1.Body, p2.Body) {
					continue
				}

				degreesToExact, exactTime := c.degreesToExact(p1, p2, kind, utc)
				aspects = append(aspects, models.AspectRelation{
					Body1:          p1.Body,
					Body2:          p2.Body,
					Kind:           kind,
					Orb:            orb,
					Applying:       c.isApplying(p1, p2, kind),
					DegreesToExact: degreesToExact,
					ExactTime:      exactTime,
				})
				break
			}
		}
	}

	return aspects
}

// maxOrb is the configured orb for the aspect widened by luminary bonuses.
// Bonuses stack when both luminaries take part.
func (c *Calculator) maxOrb(kind models.AspectKind, b1, b2 models.CelestialBody) float64 {
	orb := c.cfg.Orbs.ForAspect(string(kind))
	if b1 == models.Sun || b2 == models.Sun {
		orb += c.cfg.Orbs.SunOrbBonus
	}
	if b1 == models.Moon || b2 == models.Moon {
		orb += c.cfg.Orbs.MoonOrbBonus
	}
	return orb
}

// closestAspectOrb returns the pair's offset from the nearest exact geometry
// of the aspect. Non-conjunction aspects have two exact targets, one on each
// side of the slower body.
func closestAspectOrb(faster, slower models.BodyPosition, kind models.AspectKind) float64 {
	separation := astro.SignedSeparation(faster.Longitude, slower.Longitude)
	orb := math.Abs(separation - kind.Degrees())
	if other := math.Abs(separation + kind.Degrees()); other < orb {
		orb = other
	}
	return orb
}

// isApplying reports whether the faster body is moving toward exactness and
// will get there before either body leaves its current sign.
func (c *Calculator) isApplying(p1, p2 models.BodyPosition, kind models.AspectKind) bool {
	faster, slower := p1, p2
	if math.Abs(p2.Speed) > math.Abs(p1.Speed) {
		faster, slower = p2, p1
	}

	relativeSpeed := math.Abs(faster.Speed - slower.Speed)
	if relativeSpeed < c.cfg.Timing.StationarySpeedThreshold {
		return false
	}

	currentOrb := closestAspectOrb(faster, slower, kind)
	daysToPerfect := currentOrb / relativeSpeed

	// Perfection is off if either body changes sign first.
	if days, ok := astro.DaysToSignExit(faster.Longitude, faster.Speed); ok && daysToPerfect > days {
		return false
	}
	if days, ok := astro.DaysToSignExit(slower.Longitude, slower.Speed); ok && daysToPerfect > days {
		return false
	}

	// Project a short step forward: the orb of an applying aspect shrinks.
	dt := c.cfg.Timing.TimingPrecisionDays
	futureFaster := faster
	futureFaster.Longitude = astro.FutureLongitude(faster.Longitude, faster.Speed, dt)
	futureSlower := slower
	futureSlower.Longitude = astro.FutureLongitude(slower.Longitude, slower.Speed, dt)

	return closestAspectOrb(futureFaster, futureSlower, kind) < currentOrb
}

// isSeparating reports whether the pair's orb is widening.
func (c *Calculator) isSeparating(p1, p2 models.BodyPosition, kind models.AspectKind) bool {
	if math.Abs(p1.Speed-p2.Speed) < c.cfg.Timing.StationarySpeedThreshold {
		return false
	}

	dt := c.cfg.Timing.TimingPrecisionDays
	f1 := p1
	f1.Longitude = astro.FutureLongitude(p1.Longitude, p1.Speed, dt)
	f2 := p2
	f2.Longitude = astro.FutureLongitude(p2.Longitude, p2.Speed, dt)

	return closestAspectOrb(f1, f2, kind) > closestAspectOrb(p1, p2, kind)
}

// degreesToExact estimates how far the pair is from perfecting and, when the
// relative motion allows, the wall-clock time of exactness.
func (c *Calculator) degreesToExact(p1, p2 models.BodyPosition, kind models.AspectKind,
	utc time.Time) (float64, *time.Time) {

	faster, slower := p1, p2
	if math.Abs(p2.Speed) > math.Abs(p1.Speed) {
		faster, slower = p2, p1
	}
	orb := closestAspectOrb(faster, slower, kind)
	if orb < 0.1 {
		orb = 0.1
	}

	relativeSpeed := math.Abs(faster.Speed - slower.Speed)
	if relativeSpeed < c.cfg.Timing.StationarySpeedThreshold {
		return orb, nil
	}

	days := orb / relativeSpeed
	if days > c.cfg.Timing.MaxFutureDays {
		return orb, nil
	}

	exact := utc.Add(time.Duration(days * 24 * float64(time.Hour)))
	return orb, &exact
}
