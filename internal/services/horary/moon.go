package horary

import (
	"fmt"
	"math"

	"Horary/internal/domain/models"
	"Horary/pkg/astro"
)

// VoidStatus is the outcome of a void-of-course test.
type VoidStatus struct {
	Void              bool    `json:"void"`
	Exception         bool    `json:"exception"`
	Reason            string  `json:"reason"`
	DegreesLeftInSign float64 `json:"degrees_left_in_sign"`
}

// lunarContact is one solved Moon-to-planet perfection, past or future.
type lunarContact struct {
	body models.CelestialBody
	kind models.AspectKind
	days float64
}

// solveLunarContacts finds every time offset at which the Moon perfects an
// aspect with another planet, assuming linear motion. Offsets are in days,
// negative for the past. Contacts beyond the timing horizon are dropped.
func (c *Calculator) solveLunarContacts(bodies map[models.CelestialBody]models.BodyPosition) []lunarContact {
	moon, ok := bodies[models.Moon]
	if !ok {
		return nil
	}

	var contacts []lunarContact
	for _, body := range models.Planets() {
		if body == models.Moon {
			continue
		}
		p, ok := bodies[body]
		if !ok {
			continue
		}

		relativeSpeed := moon.Speed - p.Speed
		if math.Abs(relativeSpeed) < c.cfg.Timing.StationarySpeedThreshold {
			continue
		}

		separation := astro.SignedSeparation(moon.Longitude, p.Longitude)
		for _, kind := range models.AspectKinds() {
			for _, target := range []float64{kind.Degrees(), -kind.Degrees()} {
				// Solve separation + relativeSpeed*t = target, also one
				// whole turn either side to cover wraparound.
				for _, lap := range []float64{0, 360, -360} {
					days := (target - separation + lap) / relativeSpeed
					if math.Abs(days) > c.cfg.Timing.MaxFutureDays {
						continue
					}
					contacts = append(contacts, lunarContact{body: body, kind: kind, days: days})
				}
			}
		}
	}
	return contacts
}

// nextLunarContact returns the soonest future solved contact, orb aside. The
// sign-based void rules need this wide search: a perfection still far from
// orb saves the Moon as long as it lands before the sign boundary.
func (c *Calculator) nextLunarContact(bodies map[models.CelestialBody]models.BodyPosition) *lunarContact {
	var best *lunarContact
	for _, contact := range c.solveLunarContacts(bodies) {
		if contact.days <= 0 {
			continue
		}
		if best == nil || contact.days < best.days {
			cc := contact
			best = &cc
		}
	}
	return best
}

// moonNextAspect returns the Moon's nearest applying aspect among contacts
// already inside orb. A perfection outside orb carries no testimony yet.
func (c *Calculator) moonNextAspect(bodies map[models.CelestialBody]models.BodyPosition) *models.LunarAspectSummary {
	moon, ok := bodies[models.Moon]
	if !ok {
		return nil
	}

	var best *models.LunarAspectSummary
	for _, body := range models.Planets() {
		if body == models.Moon {
			continue
		}
		p, ok := bodies[body]
		if !ok {
			continue
		}
		relativeSpeed := math.Abs(moon.Speed - p.Speed)
		if relativeSpeed < c.cfg.Timing.StationarySpeedThreshold {
			continue
		}

		for _, kind := range models.AspectKinds() {
			orb := closestAspectOrb(moon, p, kind)
			if orb > c.maxOrb(kind, models.Moon, body) {
				continue
			}
			if !c.isApplying(moon, p, kind) {
				continue
			}
			days := orb / relativeSpeed
			if best == nil || days < best.ETADays {
				best = &models.LunarAspectSummary{
					Body:     body,
					Kind:     kind,
					Orb:      orb,
					ETADays:  days,
					ETAText:  timingFromDays(days),
					Applying: true,
				}
			}
		}
	}
	return best
}

// moonLastAspect returns the Moon's most recent perfected aspect: a separating
// contact within one and a half times the aspect's configured orb.
func (c *Calculator) moonLastAspect(bodies map[models.CelestialBody]models.BodyPosition) *models.LunarAspectSummary {
	moon, ok := bodies[models.Moon]
	if !ok {
		return nil
	}
	speed := c.moonSpeed(bodies)

	var best *models.LunarAspectSummary
	for _, body := range models.Planets() {
		if body == models.Moon {
			continue
		}
		p, ok := bodies[body]
		if !ok {
			continue
		}
		if math.Abs(moon.Speed-p.Speed) < c.cfg.Timing.StationarySpeedThreshold {
			continue
		}

		for _, kind := range models.AspectKinds() {
			orb := closestAspectOrb(moon, p, kind)
			if orb > 1.5*c.cfg.Orbs.ForAspect(string(kind)) {
				continue
			}
			if !c.isSeparating(moon, p, kind) {
				continue
			}
			days := orb / speed
			if best == nil || days < -best.ETADays {
				best = &models.LunarAspectSummary{
					Body:     body,
					Kind:     kind,
					Orb:      orb,
					ETADays:  -days,
					ETAText:  fmt.Sprintf("%.1f days ago", days),
					Applying: false,
				}
			}
		}
	}
	return best
}

// MoonVoidOfCourse runs the configured void-of-course rule against the chart.
func (c *Calculator) MoonVoidOfCourse(chart *models.Chart) VoidStatus {
	switch c.cfg.Moon.VoidRule {
	case "by_orb":
		return c.voidByOrb(chart)
	case "lilly":
		return c.voidLilly(chart)
	default:
		return c.voidBySign(chart)
	}
}

// voidBySign holds the Moon void when it perfects no further aspect before
// leaving its current sign. The configured sign exceptions suppress the void.
func (c *Calculator) voidBySign(chart *models.Chart) VoidStatus {
	moon := chart.Bodies[models.Moon]
	degreesLeft := 30 - astro.DegreeInSign(moon.Longitude)
	status := VoidStatus{DegreesLeftInSign: degreesLeft}

	exitDays, hasExit := astro.DaysToSignExit(moon.Longitude, moon.Speed)
	contact := c.nextLunarContact(chart.Bodies)

	if contact == nil || (hasExit && contact.days > exitDays) {
		status.Void = true
		status.Reason = fmt.Sprintf("Moon makes no more aspects before leaving %s", moon.Sign)

		exc := c.cfg.Moon.VoidExceptions
		excepted := (moon.Sign == models.Cancer && exc.Cancer) ||
			(moon.Sign == models.Taurus && exc.Taurus) ||
			(moon.Sign == models.Sagittarius && exc.Sagittarius)
		if excepted {
			status.Void = false
			status.Exception = true
			status.Reason = fmt.Sprintf("Moon void in %s, but it performs there", moon.Sign)
		}
		return status
	}

	status.Reason = fmt.Sprintf("Moon next perfects %s to %s before leaving %s",
		contact.kind, contact.body, moon.Sign)
	return status
}

// voidByOrb holds the Moon void when no applying lunar aspect sits inside the
// configured void orb, sign boundaries notwithstanding.
func (c *Calculator) voidByOrb(chart *models.Chart) VoidStatus {
	moon := chart.Bodies[models.Moon]
	status := VoidStatus{DegreesLeftInSign: 30 - astro.DegreeInSign(moon.Longitude)}

	for _, a := range chart.Aspects {
		if a.Involves(models.Moon) && a.Applying && a.Orb <= c.cfg.Orbs.VoidOrbDeg {
			status.Reason = fmt.Sprintf("Moon applies to %s %s within %.1f degrees",
				a.Other(models.Moon), a.Kind, a.Orb)
			return status
		}
	}

	status.Void = true
	status.Reason = fmt.Sprintf("No applying lunar aspect within %.1f degrees",
		c.cfg.Orbs.VoidOrbDeg)
	return status
}

// voidLilly is the sign rule with Lilly's fixed exception set: Cancer,
// Taurus, Sagittarius and Pisces, regardless of the configured exceptions.
func (c *Calculator) voidLilly(chart *models.Chart) VoidStatus {
	moon := chart.Bodies[models.Moon]
	degreesLeft := 30 - astro.DegreeInSign(moon.Longitude)
	status := VoidStatus{DegreesLeftInSign: degreesLeft}

	exitDays, hasExit := astro.DaysToSignExit(moon.Longitude, moon.Speed)
	contact := c.nextLunarContact(chart.Bodies)

	if contact != nil && (!hasExit || contact.days <= exitDays) {
		status.Reason = fmt.Sprintf("Moon next perfects %s to %s before leaving %s",
			contact.kind, contact.body, moon.Sign)
		return status
	}

	switch moon.Sign {
	case models.Cancer, models.Taurus, models.Sagittarius, models.Pisces:
		status.Exception = true
		status.Reason = fmt.Sprintf("Moon void in %s, but it performs there", moon.Sign)
	default:
		status.Void = true
		status.Reason = fmt.Sprintf("Moon makes no more aspects before leaving %s", moon.Sign)
	}
	return status
}

// moonPhaseAngle is the Moon's directed elongation from the Sun in [0,360):
// 0 is new, 180 is full.
func moonPhaseAngle(chart *models.Chart) float64 {
	return astro.NormalizeLongitude(
		chart.Bodies[models.Moon].Longitude - chart.Bodies[models.Sun].Longitude)
}

// moonPhaseName buckets the phase angle into the eight classical phases.
func moonPhaseName(angle float64) string {
	switch {
	case angle < 30 || angle >= 330:
		return "New Moon"
	case angle < 60:
		return "Waxing Crescent"
	case angle < 120:
		return "First Quarter"
	case angle < 150:
		return "Waxing Gibbous"
	case angle < 210:
		return "Full Moon"
	case angle < 240:
		return "Waning Gibbous"
	case angle < 300:
		return "Last Quarter"
	default:
		return "Waning Crescent"
	}
}

// moonSpeedCategory names the Moon's daily motion relative to its mean.
func moonSpeedCategory(speed float64) string {
	switch {
	case speed >= 15.0:
		return "very fast"
	case speed >= 14.0:
		return "fast"
	case speed >= 12.0:
		return "average"
	case speed >= 11.0:
		return "slow"
	default:
		return "very slow"
	}
}

// moonAccidentals computes the lunar accidental dignity breakdown.
func (c *Calculator) moonAccidentals(chart *models.Chart) models.MoonAccidentals {
	cfg := c.cfg.Moon
	moon := chart.Bodies[models.Moon]

	var acc models.MoonAccidentals

	switch moonPhaseName(moonPhaseAngle(chart)) {
	case "New Moon":
		acc.PhaseBonus = cfg.PhaseBonus.NewMoon
	case "Waxing Crescent":
		acc.PhaseBonus = cfg.PhaseBonus.WaxingCrescent
	case "First Quarter":
		acc.PhaseBonus = cfg.PhaseBonus.FirstQuarter
	case "Waxing Gibbous":
		acc.PhaseBonus = cfg.PhaseBonus.WaxingGibbous
	case "Full Moon":
		acc.PhaseBonus = cfg.PhaseBonus.FullMoon
	case "Waning Gibbous":
		acc.PhaseBonus = cfg.PhaseBonus.WaningGibbous
	case "Last Quarter":
		acc.PhaseBonus = cfg.PhaseBonus.LastQuarter
	case "Waning Crescent":
		acc.PhaseBonus = cfg.PhaseBonus.WaningCrescent
	}

	switch moonSpeedCategory(c.moonSpeed(chart.Bodies)) {
	case "very fast":
		acc.SpeedBonus = cfg.SpeedBonus.VeryFast
	case "fast":
		acc.SpeedBonus = cfg.SpeedBonus.Fast
	case "average":
		acc.SpeedBonus = cfg.SpeedBonus.Average
	case "slow":
		acc.SpeedBonus = cfg.SpeedBonus.Slow
	default:
		acc.SpeedBonus = cfg.SpeedBonus.VerySlow
	}

	switch houseCategory(moon.House) {
	case "angular":
		acc.AngularityBonus = cfg.AngularityBonus.Angular
	case "succedent":
		acc.AngularityBonus = cfg.AngularityBonus.Succedent
	default:
		acc.AngularityBonus = cfg.AngularityBonus.Cadent
	}

	return acc
}
