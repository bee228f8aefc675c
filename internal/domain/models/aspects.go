package models

import "time"

// AspectKind is one of the five major (Ptolemaic) aspects.
type AspectKind string

const (
	Conjunction AspectKind = "Conjunction"
	Sextile     AspectKind = "Sextile"
	Square      AspectKind = "Square"
	Trine       AspectKind = "Trine"
	Opposition  AspectKind = "Opposition"
)

// AspectKinds enumerates aspects in the fixed matching order. The order is
// load-bearing: the aspect engine keeps the first kind that fits a pair.
func AspectKinds() []AspectKind {
	return []AspectKind{Conjunction, Sextile, Square, Trine, Opposition}
}

var aspectDegrees = map[AspectKind]float64{
	Conjunction: 0,
	Sextile:     60,
	Square:      90,
	Trine:       120,
	Opposition:  180,
}

// Degrees returns the exact angular separation of the aspect.
func (a AspectKind) Degrees() float64 {
	return aspectDegrees[a]
}

// Favorable reports the aspect's natural character: conjunction, sextile and
// trine promise; square and opposition deny.
func (a AspectKind) Favorable() bool {
	switch a {
	case Conjunction, Sextile, Trine:
		return true
	default:
		return false
	}
}

// AspectRelation is a formed aspect between two bodies. Orb and kind are
// symmetric in body order; Applying is a single boolean for the pair.
type AspectRelation struct {
	Body1          CelestialBody `json:"body1"`
	Body2          CelestialBody `json:"body2"`
	Kind           AspectKind    `json:"aspect"`
	Orb            float64       `json:"orb"`
	Applying       bool          `json:"applying"`
	DegreesToExact float64       `json:"degrees_to_exact"`
	ExactTime      *time.Time    `json:"exact_time,omitempty"`
}

// Involves reports whether the relation touches the given body.
func (r AspectRelation) Involves(b CelestialBody) bool {
	return r.Body1 == b || r.Body2 == b
}

// Other returns the partner of b in the relation.
func (r AspectRelation) Other(b CelestialBody) CelestialBody {
	if r.Body1 == b {
		return r.Body2
	}
	return r.Body1
}

// LunarAspectSummary describes the Moon's most recent or upcoming aspect.
type LunarAspectSummary struct {
	Body     CelestialBody `json:"body"`
	Kind     AspectKind    `json:"aspect"`
	Orb      float64       `json:"orb"`
	ETADays  float64       `json:"eta_days"`
	ETAText  string        `json:"eta_text"`
	Applying bool          `json:"applying"`
}
