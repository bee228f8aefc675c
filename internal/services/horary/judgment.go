package horary

import (
	"fmt"
	"math"

	"Horary/internal/domain/models"
	"Horary/pkg/astro"
	"Horary/pkg/config"
	xlogger "Horary/pkg/logger"
)

// Judge runs the traditional judgment procedure over a finished chart:
// radicality screening, significator resolution, denial checks, the
// perfection search and finally the Moon's testimony.
type Judge struct {
	cfg  *config.Config
	log  *xlogger.Logger
	calc *Calculator
}

func NewJudge(cfg *config.Config, log *xlogger.Logger, calc *Calculator) *Judge {
	return &Judge{cfg: cfg, log: log, calc: calc}
}

// Overrides are the caller's per-request relaxations of the standard rules.
type Overrides struct {
	IgnoreRadicality bool
	IgnoreVoidMoon   bool
	IgnoreCombustion bool
	IgnoreSaturn7th  bool

	// ExaltationBoost replaces the configured confidence bonus for mutual
	// exaltation when set.
	ExaltationBoost *float64
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// Judge delivers the verdict for one chart and quesited house.
func (j *Judge) Judge(chart *models.Chart, quesitedHouse int, ov Overrides) models.JudgmentResult {
	result := models.JudgmentResult{
		Verdict:    models.VerdictUnclear,
		Confidence: j.cfg.Confidence.BaseConfidence,
	}

	if !ov.IgnoreRadicality {
		if valid, reason := j.checkRadicality(chart, ov.IgnoreSaturn7th); !valid {
			result.Verdict = models.VerdictNotRadical
			result.Confidence = 0
			result.Reasoning = append(result.Reasoning, reason)
			return result
		}
		result.Reasoning = append(result.Reasoning, "Chart is radical")
	}

	sig := j.resolveSignificators(chart, quesitedHouse)
	if !sig.Valid {
		result.Verdict = models.VerdictCannotJudge
		result.Confidence = 0
		result.Reasoning = append(result.Reasoning, sig.Reason)
		return result
	}
	result.Reasoning = append(result.Reasoning, sig.Description)

	querent := chart.Bodies[sig.Querent]
	quesited := chart.Bodies[sig.Quesited]
	result.Reasoning = append(result.Reasoning, formatPosition(querent), formatPosition(quesited))
	result.Factors.QuerentStrength = querent.DignityScore
	result.Factors.QuesitedStrength = quesited.DignityScore

	result.SolarFactors = j.solarFactors(chart, sig, ov.IgnoreCombustion)
	result.Confidence += j.solarConfidenceShift(chart, sig, ov.IgnoreCombustion)

	sigAspect := j.findApplyingAspect(chart, sig.Querent, sig.Quesited)

	// Denial by prohibition comes before any promise of perfection: a third
	// planet reaching a significator first cuts the matter off.
	if sigAspect != nil {
		if prohibitor, pa := j.findProhibition(chart, sig, sigAspect); prohibitor != "" {
			result.Verdict = models.VerdictNo
			result.Confidence = min(result.Confidence, j.cfg.Confidence.Denial.Prohibition)
			result.Reasoning = append(result.Reasoning, fmt.Sprintf(
				"Prohibition: %s perfects %s to %s before the significators complete their %s",
				prohibitor, pa.Kind, pa.Other(prohibitor), sigAspect.Kind))
			result.Confidence = clampConfidence(result.Confidence)
			return result
		}
	}

	// Legacy frustration rule: a retrograde significator denies outright.
	if j.cfg.Retrograde.AutomaticDenial && (querent.Retrograde || quesited.Retrograde) {
		retro := sig.Querent
		if quesited.Retrograde {
			retro = sig.Quesited
		}
		result.Verdict = models.VerdictNo
		result.Confidence = min(result.Confidence, j.cfg.Confidence.Denial.FrustrationRetrograde)
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"Frustration: significator %s is retrograde and turns from the matter", retro))
		result.Confidence = clampConfidence(result.Confidence)
		return result
	}

	if done := j.checkPerfection(chart, sig, sigAspect, ov, &result); done {
		result.Confidence = clampConfidence(result.Confidence)
		return result
	}

	j.moonTestimony(chart, sig, ov, &result)
	result.Confidence = clampConfidence(result.Confidence)
	return result
}

// Considerations reports the classical screenings without rendering judgment,
// for the informational block in the response.
func (j *Judge) Considerations(chart *models.Chart) *models.Considerations {
	radical, reason := j.checkRadicality(chart, false)
	void := j.calc.MoonVoidOfCourse(chart)
	return &models.Considerations{
		Radical:        radical,
		RadicalReason:  reason,
		MoonVoid:       void.Void,
		MoonVoidReason: void.Reason,
	}
}

// checkRadicality runs the classical considerations before judgment.
func (j *Judge) checkRadicality(chart *models.Chart, ignoreSaturn7th bool) (bool, string) {
	r := j.cfg.Radicality

	ascDegree := astro.DegreeInSign(chart.Ascendant)
	if ascDegree < r.AscTooEarly {
		return false, fmt.Sprintf(
			"Ascendant at %.1f degrees is too early - question is premature", ascDegree)
	}
	if ascDegree > r.AscTooLate {
		return false, fmt.Sprintf(
			"Ascendant at %.1f degrees is too late - the matter is already decided", ascDegree)
	}

	if r.Saturn7thEnabled && !ignoreSaturn7th {
		if chart.Bodies[models.Saturn].House == 7 {
			return false, "Saturn in the 7th house - the astrologer may err in judgment"
		}
	}

	if r.ViaCombustaEnabled {
		moon := chart.Bodies[models.Moon]
		deg := astro.DegreeInSign(moon.Longitude)
		inVia := (moon.Sign == models.Libra && deg > r.ViaCombusta.LibraStart) ||
			(moon.Sign == models.Scorpio && r.ViaCombusta.ScorpioFull) ||
			(moon.Sign == models.Capricorn && deg > r.ViaCombusta.CapricornStart)
		if inVia {
			return false, fmt.Sprintf(
				"Moon at %.1f %s in the Via Combusta - judgment is unreliable", deg, moon.Sign)
		}
	}

	return true, ""
}

// resolveSignificators picks the house rulers standing for querent and
// quesited. Shared rulership leaves the chart unjudgeable.
func (j *Judge) resolveSignificators(chart *models.Chart, quesitedHouse int) models.Significators {
	sig := models.Significators{
		QuerentHouse:  1,
		QuesitedHouse: quesitedHouse,
		Querent:       chart.HouseRulers[1],
		Quesited:      chart.HouseRulers[quesitedHouse],
	}

	if sig.Querent == "" || sig.Quesited == "" {
		sig.Reason = "could not resolve house rulers"
		return sig
	}
	if sig.Querent == sig.Quesited {
		sig.Reason = fmt.Sprintf(
			"%s rules both house 1 and house %d - significators cannot be separated",
			sig.Querent, quesitedHouse)
		return sig
	}

	sig.Valid = true
	sig.Description = fmt.Sprintf("Significators: %s (querent, house 1) and %s (quesited, house %d)",
		sig.Querent, sig.Quesited, quesitedHouse)
	return sig
}

// findApplyingAspect returns the applying aspect between two bodies, if any.
func (j *Judge) findApplyingAspect(chart *models.Chart, a, b models.CelestialBody) *models.AspectRelation {
	for i := range chart.Aspects {
		asp := &chart.Aspects[i]
		if asp.Applying && asp.Involves(a) && asp.Involves(b) {
			return asp
		}
	}
	return nil
}

// findProhibition looks for a third planet that perfects an aspect to either
// significator before the significators perfect their own. The Moon is not a
// prohibitor: its intervention reads as translation instead.
func (j *Judge) findProhibition(chart *models.Chart, sig models.Significators,
	sigAspect *models.AspectRelation) (models.CelestialBody, *models.AspectRelation) {

	for i := range chart.Aspects {
		asp := &chart.Aspects[i]
		if !asp.Applying || asp == sigAspect {
			continue
		}

		touchesQuerent := asp.Involves(sig.Querent)
		touchesQuesited := asp.Involves(sig.Quesited)
		if touchesQuerent == touchesQuesited {
			continue
		}

		third := asp.Body1
		if touchesQuerent && third == sig.Querent || touchesQuesited && third == sig.Quesited {
			third = asp.Body2
		}
		if third == models.Moon {
			continue
		}

		if asp.DegreesToExact < sigAspect.DegreesToExact {
			return third, asp
		}
	}
	return "", nil
}

// mutualReception classifies the reception between two bodies by rulership
// and exaltation.
func (j *Judge) mutualReception(chart *models.Chart, a, b models.CelestialBody) models.Reception {
	pa := chart.Bodies[a]
	pb := chart.Bodies[b]

	rulershipAB := pa.Sign.Ruler() == b
	rulershipBA := pb.Sign.Ruler() == a
	exaltationAB := models.Exaltations[b] == pa.Sign
	exaltationBA := models.Exaltations[a] == pb.Sign

	switch {
	case rulershipAB && rulershipBA:
		return models.ReceptionMutualRulership
	case exaltationAB && exaltationBA:
		return models.ReceptionMutualExaltation
	case (rulershipAB && exaltationBA) || (exaltationAB && rulershipBA):
		return models.ReceptionMixed
	default:
		return models.ReceptionNone
	}
}

// checkPerfection runs the perfection search in the traditional order:
// direct aspect, translation of light, collection of light, then reception
// alone. Returns true when a verdict was reached.
func (j *Judge) checkPerfection(chart *models.Chart, sig models.Significators,
	sigAspect *models.AspectRelation, ov Overrides, result *models.JudgmentResult) bool {

	if sigAspect != nil {
		reception := j.mutualReception(chart, sig.Querent, sig.Quesited)
		result.Factors.PerfectionType = models.PerfectionDirect
		result.Factors.Reception = reception

		conf := j.cfg.Confidence.Perfection.DirectBasic
		switch reception {
		case models.ReceptionMutualRulership:
			conf = j.cfg.Confidence.Perfection.DirectWithMutualRulership
		case models.ReceptionMutualExaltation:
			boost := j.cfg.Confidence.Reception.MutualExaltationBonus
			if ov.ExaltationBoost != nil {
				boost = *ov.ExaltationBoost
			}
			conf = min(100,
				j.cfg.Confidence.Perfection.DirectWithMutualExaltation+int(math.Round(boost)))
		}

		switch {
		case reception == models.ReceptionMutualRulership || reception == models.ReceptionMutualExaltation:
			// Strong mutual reception perfects unconditionally, whatever the
			// aspect's nature.
			result.Verdict = models.VerdictYes
			result.Confidence = min(result.Confidence, conf)
			result.Reasoning = append(result.Reasoning, fmt.Sprintf(
				"Perfection: %s between %s and %s with %s",
				sigAspect.Kind, sig.Querent, sig.Quesited, reception))
		case sigAspect.Kind.Favorable():
			result.Verdict = models.VerdictYes
			result.Confidence = min(result.Confidence, conf)
			result.Reasoning = append(result.Reasoning, fmt.Sprintf(
				"Perfection: %s applies to %s by %s (%.1f degrees to exact)",
				sig.Querent, sig.Quesited, sigAspect.Kind, sigAspect.DegreesToExact))
		case sigAspect.Kind == models.Square && reception != models.ReceptionNone:
			result.Verdict = models.VerdictYes
			result.Confidence = min(result.Confidence, conf)
			result.Reasoning = append(result.Reasoning, fmt.Sprintf(
				"Perfection: square between %s and %s succeeds through reception with difficulty",
				sig.Querent, sig.Quesited))
		default:
			result.Verdict = models.VerdictNo
			result.Confidence = min(result.Confidence, conf)
			result.Reasoning = append(result.Reasoning, fmt.Sprintf(
				"The significators meet by %s without reception - the matter perfects badly or not at all",
				sigAspect.Kind))
		}

		if reception != models.ReceptionNone {
			result.Reasoning = append(result.Reasoning,
				fmt.Sprintf("Reception between significators: %s", reception))
		}
		if result.Verdict == models.VerdictYes {
			result.Timing = j.timingForAspect(chart, sigAspect)
		}
		return true
	}

	if translator, ok := j.checkTranslation(chart, sig); ok {
		result.Verdict = models.VerdictYes
		result.Confidence = min(result.Confidence, j.cfg.Confidence.Perfection.TranslationOfLight)
		result.Factors.PerfectionType = models.PerfectionTranslation
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"Translation of light: %s carries the light from %s to %s",
			translator, sig.Querent, sig.Quesited))
		return true
	}

	if collector, ok := j.checkCollection(chart, sig); ok {
		result.Verdict = models.VerdictYes
		result.Confidence = min(result.Confidence, j.cfg.Confidence.Perfection.CollectionOfLight)
		result.Factors.PerfectionType = models.PerfectionCollection
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"Collection of light: both significators apply to %s, who collects their light",
			collector))
		return true
	}

	reception := j.mutualReception(chart, sig.Querent, sig.Quesited)
	if reception == models.ReceptionMutualRulership || reception == models.ReceptionMutualExaltation {
		result.Verdict = models.VerdictYes
		result.Confidence = min(result.Confidence, j.cfg.Confidence.Perfection.ReceptionOnly)
		result.Factors.PerfectionType = models.PerfectionReception
		result.Factors.Reception = reception
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"No applying aspect, but %s between the significators promises the matter", reception))
		return true
	}

	return false
}

// checkTranslation looks for a third planet separating from one significator
// while applying to the other.
func (j *Judge) checkTranslation(chart *models.Chart, sig models.Significators) (models.CelestialBody, bool) {
	querent := chart.Bodies[sig.Querent]
	quesited := chart.Bodies[sig.Quesited]

	for _, body := range models.Planets() {
		if body == sig.Querent || body == sig.Quesited {
			continue
		}
		translator := chart.Bodies[body]

		if j.cfg.Moon.Translation.RequireSpeedAdvantage {
			if math.Abs(translator.Speed) <= math.Abs(querent.Speed) ||
				math.Abs(translator.Speed) <= math.Abs(quesited.Speed) {
				continue
			}
		}

		var separating, applying models.CelestialBody
		for i := range chart.Aspects {
			asp := &chart.Aspects[i]
			if !asp.Involves(body) {
				continue
			}
			other := asp.Other(body)
			if other != sig.Querent && other != sig.Quesited {
				continue
			}
			if asp.Applying {
				applying = other
			} else {
				separating = other
			}
		}

		if applying == "" {
			continue
		}
		if j.cfg.Moon.Translation.RequireProperSequence {
			// Proper sequence: light taken from one and carried to the other.
			if separating == "" || separating == applying {
				continue
			}
		}
		return body, true
	}
	return "", false
}

// checkCollection looks for a slower planet that both significators apply to.
func (j *Judge) checkCollection(chart *models.Chart, sig models.Significators) (models.CelestialBody, bool) {
	querent := chart.Bodies[sig.Querent]
	quesited := chart.Bodies[sig.Quesited]

	for _, body := range models.Planets() {
		if body == sig.Querent || body == sig.Quesited {
			continue
		}
		collector := chart.Bodies[body]

		if math.Abs(collector.Speed) >= math.Abs(querent.Speed) ||
			math.Abs(collector.Speed) >= math.Abs(quesited.Speed) {
			continue
		}
		if j.cfg.Moon.Collection.RequireCollectorDignity &&
			collector.DignityScore < j.cfg.Moon.Collection.MinimumDignityScore {
			continue
		}

		fromQuerent := j.findApplyingAspect(chart, sig.Querent, body)
		fromQuesited := j.findApplyingAspect(chart, sig.Quesited, body)
		if fromQuerent != nil && fromQuesited != nil {
			return body, true
		}
	}
	return "", false
}

// moonTestimony is the fallback when no perfection or denial was found.
func (j *Judge) moonTestimony(chart *models.Chart, sig models.Significators,
	ov Overrides, result *models.JudgmentResult) {

	caps := j.cfg.Confidence.LunarConfidenceCaps

	if !ov.IgnoreVoidMoon {
		void := j.calc.MoonVoidOfCourse(chart)
		result.Factors.MoonVoid = void.Void
		if void.Void {
			result.Verdict = models.VerdictNo
			result.Confidence = min(result.Confidence, caps.Unfavorable)
			result.Timing = "Nothing comes of the matter"
			result.Reasoning = append(result.Reasoning,
				fmt.Sprintf("Moon is void of course: %s", void.Reason))
			return
		}
	}

	acc := j.calc.moonAccidentals(chart)
	result.Factors.MoonAccidentals = &acc

	// The Moon speaks for the querent: its next perfecting aspect to a
	// significator stands in for the missing perfection.
	next := chart.MoonNextAspect
	if next != nil && (next.Body == sig.Querent || next.Body == sig.Quesited) {
		if next.Kind.Favorable() {
			result.Verdict = models.VerdictYes
			result.Confidence = min(result.Confidence, caps.Favorable)
			result.Timing = timingFromDays(next.ETADays)
			result.Reasoning = append(result.Reasoning, fmt.Sprintf(
				"Moon's testimony: next perfects %s to %s, favoring the matter",
				next.Kind, next.Body))
		} else {
			result.Verdict = models.VerdictNo
			result.Confidence = min(result.Confidence, caps.Unfavorable)
			result.Reasoning = append(result.Reasoning, fmt.Sprintf(
				"Moon's testimony: next perfects %s to %s, denying the matter",
				next.Kind, next.Body))
		}
		return
	}

	// No relevant lunar aspect: weigh the Moon's own condition.
	adjusted := chart.Bodies[models.Moon].DignityScore + acc.Total()
	switch {
	case adjusted > 0:
		result.Verdict = models.VerdictYes
		result.Confidence = min(result.Confidence, caps.Favorable)
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"No perfection, but the Moon is well placed (adjusted score %d)", adjusted))
	case adjusted < j.cfg.Moon.TestimonyNegativeThreshold:
		result.Verdict = models.VerdictNo
		result.Confidence = min(result.Confidence, caps.Unfavorable)
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"No perfection and the Moon is afflicted (adjusted score %d)", adjusted))
	default:
		result.Verdict = models.VerdictUnclear
		result.Confidence = min(result.Confidence, caps.Neutral)
		result.Reasoning = append(result.Reasoning, fmt.Sprintf(
			"No perfection and the Moon gives no clear testimony (adjusted score %d)", adjusted))
	}
}

// timingForAspect converts an aspect's remaining arc into a timing phrase
// using the Moon's daily motion as the unit of symbolic time.
func (j *Judge) timingForAspect(chart *models.Chart, asp *models.AspectRelation) string {
	return timingFromDays(asp.DegreesToExact / j.calc.moonSpeed(chart.Bodies))
}

// solarConfidenceShift adjusts the baseline for significators touched by the
// Sun. Cazimi lifts, combustion and the beams weigh down.
func (j *Judge) solarConfidenceShift(chart *models.Chart, sig models.Significators,
	ignoreCombustion bool) int {

	s := j.cfg.Confidence.Solar
	shift := 0
	for _, body := range []models.CelestialBody{sig.Querent, sig.Quesited} {
		analysis, ok := chart.SolarAnalyses[body]
		if !ok {
			continue
		}
		switch analysis.Condition {
		case models.Cazimi:
			if analysis.ExactCazimi {
				shift += s.ExactCazimiBonus
			} else {
				shift += s.CazimiBonus
			}
		case models.Combustion:
			if !ignoreCombustion {
				shift -= s.CombustionPenalty
			}
		case models.UnderBeams:
			shift -= s.UnderBeamsPenalty
		}
	}
	return shift
}

// solarFactors summarizes the chart's solar conditions for the response.
func (j *Judge) solarFactors(chart *models.Chart, sig models.Significators,
	ignoreCombustion bool) models.SolarFactors {

	factors := models.SolarFactors{
		Details:           make(map[string]models.SolarAnalysis, len(chart.SolarAnalyses)),
		CombustionIgnored: ignoreCombustion,
	}

	for body, analysis := range chart.SolarAnalyses {
		factors.Details[string(body)] = analysis
		switch analysis.Condition {
		case models.Cazimi:
			factors.CazimiCount++
		case models.Combustion:
			factors.CombustionCount++
		case models.UnderBeams:
			factors.UnderBeamsCount++
		}
	}

	parts := ""
	if factors.CazimiCount > 0 {
		parts = fmt.Sprintf("%d cazimi", factors.CazimiCount)
	}
	if factors.CombustionCount > 0 {
		if parts != "" {
			parts += ", "
		}
		parts += fmt.Sprintf("%d combust", factors.CombustionCount)
	}
	if factors.UnderBeamsCount > 0 {
		if parts != "" {
			parts += ", "
		}
		parts += fmt.Sprintf("%d under the beams", factors.UnderBeamsCount)
	}

	if parts == "" {
		factors.Summary = "No planets affected by solar conditions"
		return factors
	}

	factors.Significant = true
	factors.Summary = "Solar conditions: " + parts

	for _, body := range []models.CelestialBody{sig.Querent, sig.Quesited} {
		if analysis, ok := chart.SolarAnalyses[body]; ok && analysis.Condition != models.FreeOfSun {
			factors.Summary += fmt.Sprintf("; significator %s is %s (%s)",
				body, analysis.Condition, analysis.Condition.Description())
		}
	}
	return factors
}
