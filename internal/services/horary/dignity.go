package horary

import "Horary/internal/domain/models"

// houseCategory buckets a house as angular, succedent or cadent.
func houseCategory(house int) string {
	switch house {
	case 1, 4, 7, 10:
		return "angular"
	case 2, 5, 8, 11:
		return "succedent"
	default:
		return "cadent"
	}
}

// dignityScore sums a body's essential and accidental dignities. Solar state
// feeds in as an accidental: cazimi strengthens, combustion and beams weaken.
func (c *Calculator) dignityScore(body models.CelestialBody, pos models.BodyPosition,
	solar models.SolarAnalysis) int {

	d := c.cfg.Dignity
	score := 0

	if pos.Sign.Ruler() == body {
		score += d.Rulership
	}
	if models.Exaltations[body] == pos.Sign {
		score += d.Exaltation
	}
	for _, sign := range models.Detriments[body] {
		if sign == pos.Sign {
			score += d.Detriment
		}
	}
	if models.Falls[body] == pos.Sign {
		score += d.Fall
	}
	if models.HouseJoys[body] == pos.House {
		score += d.Joy
	}

	switch houseCategory(pos.House) {
	case "angular":
		score += d.Angular
	case "succedent":
		score += d.Succedent
	default:
		score += d.Cadent
	}

	if pos.Retrograde {
		score += d.RetrogradePenalty
	}

	s := c.cfg.Confidence.Solar
	switch solar.Condition {
	case models.Cazimi:
		if solar.ExactCazimi {
			score += s.ExactCazimiBonus
		} else {
			score += s.CazimiBonus
		}
	case models.Combustion:
		score -= s.CombustionPenalty
	case models.UnderBeams:
		score -= s.UnderBeamsPenalty
	}

	return score
}
