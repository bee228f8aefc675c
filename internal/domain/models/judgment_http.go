package models

// Requests and wire-level responses for the judgment endpoint. Defined in the
// domain package for consistency and reuse.

// JudgmentRequest is the API request for one horary judgment.
type JudgmentRequest struct {
	Question string `json:"question" validate:"required,min=3"`
	Location string `json:"location" validate:"required"`

	// Either provide date+time (+optional timezone) or set use_current_time.
	Date           string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time           string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Timezone       string `json:"timezone,omitempty"`
	UseCurrentTime bool   `json:"use_current_time" default:"true"`

	ManualHouses []int `json:"manual_houses,omitempty" validate:"omitempty,max=12,dive,gte=1,lte=12"`

	IgnoreRadicality bool `json:"ignore_radicality"`
	IgnoreVoidMoon   bool `json:"ignore_void_moon"`
	IgnoreCombustion bool `json:"ignore_combustion"`
	IgnoreSaturn7th  bool `json:"ignore_saturn_7th"`

	ExaltationConfidenceBoost *float64 `json:"exaltation_confidence_boost,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// SerializedBody is the per-body block in the serialized chart.
type SerializedBody struct {
	Longitude    float64        `json:"longitude"`
	Latitude     float64        `json:"latitude"`
	House        int            `json:"house"`
	Sign         Sign           `json:"sign"`
	DignityScore int            `json:"dignity_score"`
	Retrograde   bool           `json:"retrograde"`
	Speed        float64        `json:"speed"`
	DegreeInSign float64        `json:"degree_in_sign"`
	Solar        *SolarAnalysis `json:"solar_condition,omitempty"`
}

// SerializedChart carries the full chart snapshot over the wire.
type SerializedChart struct {
	Bodies      map[string]SerializedBody `json:"planets"`
	Aspects     []AspectRelation          `json:"aspects"`
	Cusps       []float64                 `json:"houses"`
	HouseRulers map[string]CelestialBody  `json:"house_rulers"`
	Ascendant   float64                   `json:"ascendant"`
	Midheaven   float64                   `json:"midheaven"`

	MoonLastAspect *LunarAspectSummary `json:"moon_last_aspect,omitempty"`
	MoonNextAspect *LunarAspectSummary `json:"moon_next_aspect,omitempty"`

	Timezone TimezoneInfo `json:"timezone_info"`
}

// TimezoneInfo echoes resolved time and location data back to the caller.
type TimezoneInfo struct {
	LocalTime    string  `json:"local_time"`
	UTCTime      string  `json:"utc_time"`
	Timezone     string  `json:"timezone"`
	LocationName string  `json:"location_name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// QuestionAnalysis is the classifier's reading of the question text.
type QuestionAnalysis struct {
	QuestionType   string            `json:"question_type"`
	RelevantHouses []int             `json:"relevant_houses"`
	Significators  SignificatorRoles `json:"significators"`
}

// SignificatorRoles names the houses and natural significators in play.
type SignificatorRoles struct {
	QuerentHouse  int               `json:"querent_house"`
	QuesitedHouse int               `json:"quesited_house"`
	MoonRole      string            `json:"moon_role"`
	Special       map[string]string `json:"special_significators,omitempty"`
}

// MoonMansion is the Moon's lunar mansion index and name.
type MoonMansion struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// MoonCondition summarizes the Moon's state for the general-info block.
type MoonCondition struct {
	Sign          Sign    `json:"sign"`
	Speed         float64 `json:"speed"`
	SpeedCategory string  `json:"speed_category"`
	VoidOfCourse  bool    `json:"void_of_course"`
	VoidReason    string  `json:"void_reason"`
}

// GeneralInfo is supplementary chart context.
type GeneralInfo struct {
	PlanetaryDay  CelestialBody `json:"planetary_day"`
	PlanetaryHour CelestialBody `json:"planetary_hour"`
	MoonPhase     string        `json:"moon_phase"`
	MoonMansion   MoonMansion   `json:"moon_mansion"`
	MoonCondition MoonCondition `json:"moon_condition"`
}

// Considerations are the standard pre-judgment screenings.
type Considerations struct {
	Radical        bool   `json:"radical"`
	RadicalReason  string `json:"radical_reason"`
	MoonVoid       bool   `json:"moon_void"`
	MoonVoidReason string `json:"moon_void_reason"`
}

// MoonStoryEntry is one row of the Moon's current aspect story.
type MoonStoryEntry struct {
	Body          CelestialBody `json:"body"`
	Kind          AspectKind    `json:"aspect"`
	Orb           float64       `json:"orb"`
	Applying      bool          `json:"applying"`
	Status        string        `json:"status"`
	Timing        string        `json:"timing"`
	DaysToPerfect float64       `json:"days_to_perfect"`
}

// JudgmentResponse is the full API response for one judgment.
type JudgmentResponse struct {
	Question   string   `json:"question"`
	Judgment   Verdict  `json:"judgment"`
	Confidence int      `json:"confidence"`
	Reasoning  []string `json:"reasoning"`
	Timing     string   `json:"timing,omitempty"`

	Chart            *SerializedChart   `json:"chart_data,omitempty"`
	QuestionAnalysis *QuestionAnalysis  `json:"question_analysis,omitempty"`
	MoonStory        []MoonStoryEntry   `json:"moon_aspects,omitempty"`
	Factors          TraditionalFactors `json:"traditional_factors"`
	SolarFactors     SolarFactors       `json:"solar_factors"`
	GeneralInfo      *GeneralInfo       `json:"general_info,omitempty"`
	Considerations   *Considerations    `json:"considerations,omitempty"`

	Error string `json:"error,omitempty"`
}
