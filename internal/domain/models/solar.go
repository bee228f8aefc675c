package models

// SolarCondition classifies a body's proximity to the Sun.
type SolarCondition string

const (
	Cazimi     SolarCondition = "Cazimi"
	Combustion SolarCondition = "Combustion"
	UnderBeams SolarCondition = "Under the Beams"
	FreeOfSun  SolarCondition = "Free of Sun"
)

var solarDescriptions = map[SolarCondition]string{
	Cazimi:     "Heart of the Sun - maximum dignity",
	Combustion: "Burnt by Sun - severely weakened",
	UnderBeams: "Obscured by Sun - moderately weakened",
	FreeOfSun:  "Not affected by solar rays",
}

// Description returns the traditional reading of the condition.
func (c SolarCondition) Description() string {
	return solarDescriptions[c]
}

// SolarAnalysis is the classifier's verdict for one body.
type SolarAnalysis struct {
	Body            CelestialBody  `json:"body"`
	DistanceFromSun float64        `json:"distance_from_sun"`
	Condition       SolarCondition `json:"condition"`
	ExactCazimi     bool           `json:"exact_cazimi"`
	// TraditionalException marks a Mercury/Venus visibility exception that
	// downgraded a combustion or under-beams classification.
	TraditionalException bool `json:"traditional_exception"`
}
