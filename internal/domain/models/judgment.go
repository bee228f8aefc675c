package models

// Verdict is the graded outcome of a horary judgment.
type Verdict string

const (
	VerdictYes           Verdict = "YES"
	VerdictNo            Verdict = "NO"
	VerdictUnclear       Verdict = "UNCLEAR"
	VerdictNotRadical    Verdict = "NOT_RADICAL"
	VerdictCannotJudge   Verdict = "CANNOT_JUDGE"
	VerdictLocationError Verdict = "LOCATION_ERROR"
	VerdictError         Verdict = "ERROR"
)

// PerfectionType names the mechanism that connected the significators.
type PerfectionType string

const (
	PerfectionDirect      PerfectionType = "direct"
	PerfectionTranslation PerfectionType = "translation"
	PerfectionCollection  PerfectionType = "collection"
	PerfectionReception   PerfectionType = "reception"
	PerfectionNone        PerfectionType = "none"
)

// Reception classifies mutual reception between two bodies.
type Reception string

const (
	ReceptionNone             Reception = "none"
	ReceptionMutualRulership  Reception = "mutual_rulership"
	ReceptionMutualExaltation Reception = "mutual_exaltation"
	ReceptionMixed            Reception = "mixed_reception"
)

// MoonAccidentals is the lunar accidental dignity breakdown.
type MoonAccidentals struct {
	PhaseBonus      int `json:"phase_bonus"`
	SpeedBonus      int `json:"speed_bonus"`
	AngularityBonus int `json:"angularity_bonus"`
}

// Total sums the three accidental bonuses.
func (m MoonAccidentals) Total() int {
	return m.PhaseBonus + m.SpeedBonus + m.AngularityBonus
}

// TraditionalFactors is the structured factor breakdown attached to a result.
type TraditionalFactors struct {
	PerfectionType   PerfectionType   `json:"perfection_type,omitempty"`
	Reception        Reception        `json:"reception,omitempty"`
	QuerentStrength  int              `json:"querent_strength"`
	QuesitedStrength int              `json:"quesited_strength"`
	MoonVoid         bool             `json:"moon_void,omitempty"`
	MoonAccidentals  *MoonAccidentals `json:"moon_accidentals,omitempty"`
}

// SolarFactors summarizes solar conditions among chart bodies.
type SolarFactors struct {
	Significant       bool                     `json:"significant"`
	Summary           string                   `json:"summary"`
	CazimiCount       int                      `json:"cazimi_count"`
	CombustionCount   int                      `json:"combustion_count"`
	UnderBeamsCount   int                      `json:"under_beams_count"`
	Details           map[string]SolarAnalysis `json:"detailed_analyses,omitempty"`
	CombustionIgnored bool                     `json:"combustion_ignored"`
}

// JudgmentResult is the judgment procedure's final output.
type JudgmentResult struct {
	Verdict    Verdict  `json:"verdict"`
	Confidence int      `json:"confidence"`
	Reasoning  []string `json:"reasoning"`
	Timing     string   `json:"timing,omitempty"`

	Factors      TraditionalFactors `json:"traditional_factors"`
	SolarFactors SolarFactors       `json:"solar_factors"`
}
