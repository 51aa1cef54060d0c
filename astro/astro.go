// Public domain.

// Package astro, angle arithmetic generally useful in transit work.
//
// Angles passed as float64 are in degrees unless the name says otherwise.
// Functions working on the celestial sphere take and return unit.Angle.
package astro

import (
	"math"

	"github.com/soniakeys/unit"
)

// Norm reduces x to the range [0, m).
//
// m must be positive.  NaN and infinities are returned unchanged.
func Norm(x, m float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	x = math.Mod(x, m)
	if x < 0 {
		x += m
	}
	// math.Mod of a tiny negative number plus m can round up to m.
	if x >= m {
		x -= m
	}
	return x
}

// Norm360 reduces d to the range [0, 360).
func Norm360(d float64) float64 {
	return Norm(d, 360)
}

// Forward returns the distance travelled going from a up to b on a circle
// of circumference m.  The result is in [0, m).
func Forward(a, b, m float64) float64 {
	return Norm(b-a, m)
}

// Diff returns the signed shortest difference b - a on a circle of
// circumference m.  The result is in (-m/2, m/2].
func Diff(a, b, m float64) float64 {
	d := Norm(b-a, m)
	if d > m/2 {
		d -= m
	}
	return d
}

// Asc1, ecliptic longitude of the point with oblique ascension x under
// pole height f.
//
// Args:
//   x = oblique ascension.  ARMC+90° gives the ascendant.
//   f = pole height.  Geographic latitude for the ascendant, 0 for points
//       on the meridian.
//   sε, cε = sine and cosine of the obliquity of the ecliptic.
//
// The result is in [0, 2π).
func Asc1(x, f unit.Angle, sε, cε float64) unit.Angle {
	sx, cx := x.Sincos()
	// tan f is unbounded at the poles; keep the horizon plane defined.
	const maxPole = math.Pi/2 - 1e-10
	fr := f.Rad()
	if fr > maxPole {
		fr = maxPole
	} else if fr < -maxPole {
		fr = -maxPole
	}
	λ := math.Atan2(sx, cx*cε-math.Tan(fr)*sε)
	return unit.Angle(λ).Mod1()
}

// EquatorToEcliptic, longitude of the ecliptic point lying on the same
// ecliptic meridian as the equator point with right ascension α.
//
// This is the projection used by the Morinus house system.
func EquatorToEcliptic(α unit.Angle, cε float64) unit.Angle {
	s, c := α.Sincos()
	return unit.Angle(math.Atan2(s*cε, c)).Mod1()
}

// Widen stretches a sampled range [lo, hi] by safety factor f (f >= 1).
//
// hi grows: positive values are multiplied, negative values divided.
// lo shrinks the mirror way.  A range straddling zero widens on both sides,
// a one-signed range keeps its sign.
func Widen(lo, hi, f float64) (float64, float64) {
	if lo < 0 {
		lo *= f
	} else {
		lo /= f
	}
	if hi > 0 {
		hi *= f
	} else {
		hi /= f
	}
	return lo, hi
}
