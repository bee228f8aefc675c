package models

import "time"

// BodyPosition is a body's state at the chart instant. Longitude is always
// normalized into [0,360).
type BodyPosition struct {
	Body         CelestialBody `json:"body"`
	Longitude    float64       `json:"longitude"`
	Latitude     float64       `json:"latitude"`
	House        int           `json:"house"`
	Sign         Sign          `json:"sign"`
	DignityScore int           `json:"dignity_score"`
	Retrograde   bool          `json:"retrograde"`
	// Speed is the signed daily motion in degrees per day; negative means
	// retrograde.
	Speed float64 `json:"speed"`
}

// Chart is an immutable snapshot of the heavens for one judgment request.
// It is built once by the assembler and only read afterwards.
type Chart struct {
	LocalTime    time.Time
	UTCTime      time.Time
	Timezone     string
	Latitude     float64
	Longitude    float64
	LocationName string

	Bodies      map[CelestialBody]BodyPosition
	Aspects     []AspectRelation
	Cusps       [12]float64
	HouseRulers map[int]CelestialBody
	Ascendant   float64
	Midheaven   float64

	SolarAnalyses map[CelestialBody]SolarAnalysis

	MoonLastAspect *LunarAspectSummary
	MoonNextAspect *LunarAspectSummary

	// TwilightSunAltitude is the Sun's altitude at civil twilight for the
	// chart location, used by the Venus visibility exception.
	TwilightSunAltitude float64
}

// Significators are the ruling bodies standing in for querent and quesited.
type Significators struct {
	Querent       CelestialBody `json:"querent"`
	Quesited      CelestialBody `json:"quesited"`
	QuerentHouse  int           `json:"querent_house"`
	QuesitedHouse int           `json:"quesited_house"`
	Valid         bool          `json:"valid"`
	Reason        string        `json:"reason,omitempty"`
	Description   string        `json:"description,omitempty"`
}
