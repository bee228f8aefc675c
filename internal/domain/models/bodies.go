package models

import "Horary/pkg/astro"

// CelestialBody is one of the seven traditional planets or a chart point.
// The set is closed: traditional horary admits no outer planets.
type CelestialBody string

const (
	Sun     CelestialBody = "Sun"
	Moon    CelestialBody = "Moon"
	Mercury CelestialBody = "Mercury"
	Venus   CelestialBody = "Venus"
	Mars    CelestialBody = "Mars"
	Jupiter CelestialBody = "Jupiter"
	Saturn  CelestialBody = "Saturn"

	// Chart points.
	Ascendant CelestialBody = "Ascendant"
	Midheaven CelestialBody = "Midheaven"
)

// Planets lists the seven moving bodies in traditional order. Chart points are
// excluded: they carry no speed and never form aspects here.
func Planets() []CelestialBody {
	return []CelestialBody{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}
}

// Sign is one of the twelve zodiac divisions.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

var signOrder = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

var signRulers = map[Sign]CelestialBody{
	Aries:       Mars,
	Taurus:      Venus,
	Gemini:      Mercury,
	Cancer:      Moon,
	Leo:         Sun,
	Virgo:       Mercury,
	Libra:       Venus,
	Scorpio:     Mars,
	Sagittarius: Jupiter,
	Capricorn:   Saturn,
	Aquarius:    Saturn,
	Pisces:      Jupiter,
}

// Ruler returns the traditional ruling body of the sign.
func (s Sign) Ruler() CelestialBody {
	return signRulers[s]
}

// SignOfLongitude maps an ecliptic longitude to its zodiac sign.
func SignOfLongitude(lon float64) Sign {
	idx := int(astro.NormalizeLongitude(lon) / 30)
	if idx < 0 || idx > 11 {
		return Pisces
	}
	return signOrder[idx]
}

// Traditional exaltation signs per planet.
var Exaltations = map[CelestialBody]Sign{
	Sun:     Aries,
	Moon:    Taurus,
	Mercury: Virgo,
	Venus:   Pisces,
	Mars:    Capricorn,
	Jupiter: Cancer,
	Saturn:  Libra,
}

// Falls are the signs opposite each exaltation.
var Falls = map[CelestialBody]Sign{
	Sun:     Libra,
	Moon:    Scorpio,
	Mercury: Pisces,
	Venus:   Virgo,
	Mars:    Cancer,
	Jupiter: Capricorn,
	Saturn:  Aries,
}

// Detriments are the signs opposite each rulership.
var Detriments = map[CelestialBody][]Sign{
	Sun:     {Aquarius},
	Moon:    {Capricorn},
	Mercury: {Pisces, Sagittarius},
	Venus:   {Aries, Scorpio},
	Mars:    {Libra, Taurus},
	Jupiter: {Gemini, Virgo},
	Saturn:  {Cancer, Leo},
}

// HouseJoys are the houses where each planet traditionally rejoices.
var HouseJoys = map[CelestialBody]int{
	Mercury: 1,
	Moon:    3,
	Venus:   5,
	Mars:    6,
	Sun:     9,
	Jupiter: 11,
	Saturn:  12,
}

// QuickRisingSigns are the signs of short ascension relevant to Mercury's
// combustion visibility exception.
var QuickRisingSigns = map[Sign]bool{
	Gemini: true,
	Virgo:  true,
}
