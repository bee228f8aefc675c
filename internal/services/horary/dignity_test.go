package horary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Horary/internal/domain/models"
)

func TestDignityScoring(t *testing.T) {
	cfg := testConfig(t)
	calc := NewCalculator(cfg, testLogger(t))
	free := models.SolarAnalysis{Condition: models.FreeOfSun}

	// Mars in Aries in the first house: rulership plus angular.
	pos := models.BodyPosition{Body: models.Mars, Sign: models.Aries, House: 1}
	want := cfg.Dignity.Rulership + cfg.Dignity.Angular
	assert.Equal(t, want, calc.dignityScore(models.Mars, pos, free))

	// Saturn in Aries in the twelfth: fall, joy, cadent.
	pos = models.BodyPosition{Body: models.Saturn, Sign: models.Aries, House: 12}
	want = cfg.Dignity.Fall + cfg.Dignity.Joy + cfg.Dignity.Cadent
	assert.Equal(t, want, calc.dignityScore(models.Saturn, pos, free))

	// Venus in Scorpio in the fifth: detriment, joy, succedent.
	pos = models.BodyPosition{Body: models.Venus, Sign: models.Scorpio, House: 5}
	want = cfg.Dignity.Detriment + cfg.Dignity.Joy + cfg.Dignity.Succedent
	assert.Equal(t, want, calc.dignityScore(models.Venus, pos, free))

	// Jupiter exalted in Cancer in the second, retrograde.
	pos = models.BodyPosition{
		Body: models.Jupiter, Sign: models.Cancer, House: 2, Retrograde: true,
	}
	want = cfg.Dignity.Exaltation + cfg.Dignity.Succedent + cfg.Dignity.RetrogradePenalty
	assert.Equal(t, want, calc.dignityScore(models.Jupiter, pos, free))
}

func TestDignitySolarModifiers(t *testing.T) {
	cfg := testConfig(t)
	calc := NewCalculator(cfg, testLogger(t))

	pos := models.BodyPosition{Body: models.Mercury, Sign: models.Leo, House: 2}
	base := cfg.Dignity.Succedent

	combust := models.SolarAnalysis{Condition: models.Combustion}
	assert.Equal(t, base-cfg.Confidence.Solar.CombustionPenalty,
		calc.dignityScore(models.Mercury, pos, combust))

	cazimi := models.SolarAnalysis{Condition: models.Cazimi, ExactCazimi: true}
	assert.Equal(t, base+cfg.Confidence.Solar.ExactCazimiBonus,
		calc.dignityScore(models.Mercury, pos, cazimi))
}
