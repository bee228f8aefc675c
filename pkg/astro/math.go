package astro

import (
	"fmt"
	"math"
)

// NormalizeLongitude maps any longitude into [0, 360).
func NormalizeLongitude(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Elongation returns the absolute angular distance between two longitudes,
// always in [0, 180].
func Elongation(lon1, lon2 float64) float64 {
	d := math.Abs(NormalizeLongitude(lon1) - NormalizeLongitude(lon2))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// SignedSeparation returns lon1-lon2 normalized into (-180, 180].
func SignedSeparation(lon1, lon2 float64) float64 {
	d := lon1 - lon2
	for d > 180 {
		d -= 360
	}
	for d <= -180 {
		d += 360
	}
	return d
}

// DegreeInSign returns the degree within the occupied 30-degree sign.
func DegreeInSign(lon float64) float64 {
	return math.Mod(NormalizeLongitude(lon), 30)
}

// DaysToSignExit returns how many days until a body crosses out of its current
// sign at its present speed, honoring direction: direct motion exits over the
// forward boundary, retrograde motion exits backwards. The second return is
// false when the body is stationary and will never cross.
func DaysToSignExit(lon, speed float64) (float64, bool) {
	if speed == 0 {
		return 0, false
	}
	d := DegreeInSign(lon)
	if speed > 0 {
		return (30 - d) / speed, true
	}
	return d / -speed, true
}

// FutureLongitude projects a longitude forward by days at the given daily speed.
func FutureLongitude(lon, speed, days float64) float64 {
	return NormalizeLongitude(lon + speed*days)
}

// HouseOfLongitude maps a longitude onto one of the 12 houses given the cusp
// longitudes, handling cusp pairs that wrap through 0 Aries. Cusps are 1-based
// houses at indices 0..11.
func HouseOfLongitude(lon float64, cusps [12]float64) int {
	lon = NormalizeLongitude(lon)
	for i := 0; i < 12; i++ {
		cur := NormalizeLongitude(cusps[i])
		next := NormalizeLongitude(cusps[(i+1)%12])
		if cur > next { // wraps through 0
			if lon >= cur || lon < next {
				return i + 1
			}
		} else if cur <= lon && lon < next {
			return i + 1
		}
	}
	return 1
}

// DegreesToDMS renders a longitude as degrees, minutes and seconds within sign.
func DegreesToDMS(deg float64) string {
	d := DegreeInSign(deg)
	whole := int(d)
	minF := (d - float64(whole)) * 60
	min := int(minF)
	sec := int((minF - float64(min)) * 60)
	return fmt.Sprintf("%d°%02d'%02d\"", whole, min, sec)
}
