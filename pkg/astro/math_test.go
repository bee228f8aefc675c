package astro

import (
	"math"
	"testing"
)

func TestNormalizeLongitudeIdempotent(t *testing.T) {
	for _, v := range []float64{-720.5, -360, -0.001, 0, 45.25, 359.999, 360, 1081.5} {
		once := NormalizeLongitude(v)
		twice := NormalizeLongitude(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %v: %v != %v", v, once, twice)
		}
		if once < 0 || once >= 360 {
			t.Fatalf("normalized %v out of range: %v", v, once)
		}
	}
}

func TestElongation(t *testing.T) {
	if got := Elongation(10, 350); got != 20 {
		t.Fatalf("expected 20, got %v", got)
	}
	if Elongation(10, 350) != Elongation(350, 10) {
		t.Fatalf("elongation not symmetric")
	}
}

func TestDaysToSignExitDirect(t *testing.T) {
	// 10 Aries moving +0.5/day: 20 degrees left -> 40 days
	days, ok := DaysToSignExit(10, 0.5)
	if !ok || math.Abs(days-40) > 1e-9 {
		t.Fatalf("expected 40 days, got %v ok=%v", days, ok)
	}
}

func TestDaysToSignExitRetrograde(t *testing.T) {
	// 10 Taurus moving -0.2/day exits backwards over 30 Aries: 10/0.2 = 50 days
	days, ok := DaysToSignExit(40, -0.2)
	if !ok || math.Abs(days-50) > 1e-9 {
		t.Fatalf("expected 50 days, got %v ok=%v", days, ok)
	}
}

func TestDaysToSignExitStationary(t *testing.T) {
	if _, ok := DaysToSignExit(15, 0); ok {
		t.Fatalf("stationary body must never exit")
	}
}

func TestHouseOfLongitude(t *testing.T) {
	cusps := [12]float64{350, 20, 50, 80, 110, 140, 170, 200, 230, 260, 290, 320}
	counts := make(map[int]int)
	for lon := 0.0; lon < 360; lon += 0.5 {
		h := HouseOfLongitude(lon, cusps)
		if h < 1 || h > 12 {
			t.Fatalf("longitude %v mapped to invalid house %d", lon, h)
		}
		counts[h]++
	}
	for h := 1; h <= 12; h++ {
		if counts[h] == 0 {
			t.Fatalf("house %d never assigned", h)
		}
	}
	// wrap-around cusp: 355 lies in house 1 (350..20)
	if h := HouseOfLongitude(355, cusps); h != 1 {
		t.Fatalf("expected house 1 at wrap, got %d", h)
	}
	if h := HouseOfLongitude(10, cusps); h != 1 {
		t.Fatalf("expected house 1 after wrap, got %d", h)
	}
}

func TestSignedSeparationRange(t *testing.T) {
	for _, pair := range [][2]float64{{0, 359}, {359, 0}, {180, 0}, {0, 180}, {90, 270}} {
		d := SignedSeparation(pair[0], pair[1])
		if d <= -180 || d > 180 {
			t.Fatalf("separation %v out of (-180,180] for %v", d, pair)
		}
	}
}
