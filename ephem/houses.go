// Public domain.

package ephem

import (
	"fmt"
	"math"

	"github.com/soniakeys/transit/astro"
	"github.com/soniakeys/unit"
)

// HouseSystem is identified by its customary one letter code.
type HouseSystem byte

const (
	Placidus      HouseSystem = 'P'
	Koch          HouseSystem = 'K'
	Porphyry      HouseSystem = 'O'
	Regiomontanus HouseSystem = 'R'
	Campanus      HouseSystem = 'C'
	Equal         HouseSystem = 'E'
	EqualAsc      HouseSystem = 'A' // same as Equal
	WholeSign     HouseSystem = 'W'
	Meridian      HouseSystem = 'X'
	Morinus       HouseSystem = 'M'
)

var houseNames = map[HouseSystem]string{
	Placidus:      "Placidus",
	Koch:          "Koch",
	Porphyry:      "Porphyry",
	Regiomontanus: "Regiomontanus",
	Campanus:      "Campanus",
	Equal:         "equal",
	EqualAsc:      "equal",
	WholeSign:     "whole sign",
	Meridian:      "meridian",
	Morinus:       "Morinus",
}

func (h HouseSystem) String() string {
	if s, ok := houseNames[h]; ok {
		return s
	}
	return fmt.Sprintf("house system %q", rune(h))
}

// Supported reports whether cusps can be computed for h.
func (h HouseSystem) Supported() bool {
	_, ok := houseNames[h]
	return ok
}

// Canonical folds aliases to one code.
func (h HouseSystem) Canonical() HouseSystem {
	if h == EqualAsc {
		return Equal
	}
	return h
}

// Point identifies a house object.  Values 0..7 index Houses.ASCMC,
// house cusps are given as negative numbers, -1 for the first house
// through -12.
type Point int

const (
	ASC Point = iota
	MC
	ARMC
	Vertex
	EquAsc // equatorial ascendant
	CoAsc1 // co-ascendant (W. Koch)
	CoAsc2 // co-ascendant (M. Munkasey)
	PolAsc // polar ascendant (M. Munkasey)
)

// NumASCMC is the number of special points in Houses.ASCMC that are set.
const NumASCMC = 8

// Cusp returns the Point for house cusp n, 1..12.
func Cusp(n int) Point { return Point(-n) }

// Valid reports whether p is a special point or a house cusp.
func (p Point) Valid() bool {
	return p >= -12 && p < NumASCMC
}

var pointNames = [NumASCMC]string{
	"ASC", "MC", "ARMC", "vertex",
	"equatorial ascendant", "co-ascendant (Koch)",
	"co-ascendant (Munkasey)", "polar ascendant",
}

func (p Point) String() string {
	switch {
	case p < 0 && p >= -12:
		return fmt.Sprintf("cusp %d", -p)
	case p >= 0 && p < NumASCMC:
		return pointNames[p]
	}
	return fmt.Sprintf("point %d", int(p))
}

// Houses holds cusps and special points in degrees.  Cusps[0] is unused.
type Houses struct {
	Cusps [13]float64
	ASCMC [10]float64
}

// Value returns the longitude of point p.
func (h *Houses) Value(p Point) float64 {
	if p < 0 {
		return h.Cusps[-p]
	}
	return h.ASCMC[p]
}

// ComputeHouses computes house cusps from the sidereal time ARMC, the
// geographic latitude and the obliquity of the ecliptic.
//
// Placidus and Koch are not defined inside the polar circles; there the
// cusps fall back to Porphyry, and the boolean result is false.
func ComputeHouses(armc, lat, ε unit.Angle, sys HouseSystem) (h Houses, exact bool, err error) {
	if !sys.Supported() {
		return h, false, fmt.Errorf("ephem: unsupported %v", sys)
	}
	sε, cε := ε.Sincos()
	armc = armc.Mod1()
	φ := lat.Rad()

	asc := astro.Asc1(armc+math.Pi/2, lat, sε, cε)
	mc := astro.Asc1(armc, 0, sε, cε)

	h.ASCMC[ASC] = asc.Deg()
	h.ASCMC[MC] = mc.Deg()
	h.ASCMC[ARMC] = armc.Deg()
	vp := math.Pi/2 - φ
	if φ < 0 {
		vp = -math.Pi/2 - φ
	}
	h.ASCMC[Vertex] = astro.Asc1(armc-math.Pi/2, unit.Angle(vp), sε, cε).Deg()
	h.ASCMC[EquAsc] = astro.Asc1(armc+math.Pi/2, 0, sε, cε).Deg()
	h.ASCMC[CoAsc1] = astro.Norm360(astro.Asc1(armc-math.Pi/2, lat, sε, cε).Deg() + 180)
	h.ASCMC[CoAsc2] = astro.Asc1(armc+math.Pi/2, unit.Angle(vp), sε, cε).Deg()
	h.ASCMC[PolAsc] = astro.Asc1(armc-math.Pi/2, lat, sε, cε).Deg()

	c := &h.Cusps
	c[1] = h.ASCMC[ASC]
	c[10] = h.ASCMC[MC]
	exact = true
	switch sys.Canonical() {
	case Equal:
		for n := 2; n <= 12; n++ {
			c[n] = astro.Norm360(c[1] + float64(n-1)*30)
		}
		return h, true, nil
	case WholeSign:
		base := math.Floor(c[1]/30) * 30
		for n := 1; n <= 12; n++ {
			c[n] = astro.Norm360(base + float64(n-1)*30)
		}
		return h, true, nil
	case Meridian:
		for n := 1; n <= 12; n++ {
			x := armc + unit.AngleFromDeg(float64(n-10)*30)
			c[n] = astro.Asc1(x, 0, sε, cε).Deg()
		}
		return h, true, nil
	case Morinus:
		for n := 1; n <= 12; n++ {
			x := armc + unit.AngleFromDeg(90+float64(n-1)*30)
			c[n] = astro.EquatorToEcliptic(x, cε).Deg()
		}
		return h, true, nil
	case Regiomontanus:
		tφ := math.Tan(φ)
		fh1 := unit.Angle(math.Atan(tφ * .5))
		fh2 := unit.Angle(math.Atan(tφ * math.Cos(math.Pi/6)))
		c[11] = astro.Asc1(armc+deg30, fh1, sε, cε).Deg()
		c[12] = astro.Asc1(armc+2*deg30, fh2, sε, cε).Deg()
		c[2] = astro.Asc1(armc+4*deg30, fh2, sε, cε).Deg()
		c[3] = astro.Asc1(armc+5*deg30, fh1, sε, cε).Deg()
	case Campanus:
		sφ, cφ := math.Sincos(φ)
		fh1 := unit.Angle(math.Asin(sφ / 2))
		fh2 := unit.Angle(math.Asin(math.Sqrt(3) / 2 * sφ))
		xh1, xh2 := math.Pi/2, math.Pi/2
		if cφ != 0 {
			xh1 = math.Atan(math.Sqrt(3) / cφ)
			xh2 = math.Atan(1 / math.Sqrt(3) / cφ)
		}
		q := armc + math.Pi/2
		c[11] = astro.Asc1(q-unit.Angle(xh1), fh1, sε, cε).Deg()
		c[12] = astro.Asc1(q-unit.Angle(xh2), fh2, sε, cε).Deg()
		c[2] = astro.Asc1(q+unit.Angle(xh2), fh2, sε, cε).Deg()
		c[3] = astro.Asc1(q+unit.Angle(xh1), fh1, sε, cε).Deg()
	case Koch:
		if !koch(c, armc, mc, lat, sε, cε) {
			porphyry(c)
			exact = false
		}
	case Placidus:
		if !placidus(c, armc, lat, sε, cε) {
			porphyry(c)
			exact = false
		}
	default: // Porphyry
		porphyry(c)
	}
	for n := 4; n <= 9; n++ {
		c[n] = astro.Norm360(c[(n+5)%12+1] + 180)
	}
	return h, exact, nil
}

const deg30 = unit.Angle(math.Pi / 6)

// porphyry trisects the quadrants between c[10] and c[1].
func porphyry(c *[13]float64) {
	q1 := astro.Forward(c[10], c[1], 360)
	c[11] = astro.Norm360(c[10] + q1/3)
	c[12] = astro.Norm360(c[10] + q1*2/3)
	q2 := 180 - q1
	c[2] = astro.Norm360(c[1] + q2/3)
	c[3] = astro.Norm360(c[1] + q2*2/3)
}

func koch(c *[13]float64, armc, mc, lat unit.Angle, sε, cε float64) bool {
	sina := mc.Sin() * sε / lat.Cos()
	if math.Abs(sina) > 1 {
		return false
	}
	cosa := math.Sqrt(1 - sina*sina)
	k := math.Atan(lat.Tan() / cosa)
	ad3 := unit.Angle(math.Asin(math.Sin(k)*sina) / 3)
	c[11] = astro.Asc1(armc+deg30-2*ad3, lat, sε, cε).Deg()
	c[12] = astro.Asc1(armc+2*deg30-ad3, lat, sε, cε).Deg()
	c[2] = astro.Asc1(armc+4*deg30+ad3, lat, sε, cε).Deg()
	c[3] = astro.Asc1(armc+5*deg30+2*ad3, lat, sε, cε).Deg()
	return true
}

// placidus trisects the semi-arcs of the cusps themselves, iterating
// since the semi-arc depends on the declination of the cusp.
func placidus(c *[13]float64, armc, lat unit.Angle, sε, cε float64) bool {
	tφ := lat.Tan()
	cusp := func(f float64, above bool) (float64, bool) {
		var ra float64
		if above {
			ra = armc.Rad() + f*math.Pi/2
		} else {
			ra = armc.Rad() + math.Pi - f*math.Pi/2
		}
		sr, cr := math.Sincos(ra)
		λ := math.Atan2(sr, cr*cε)
		for i := 0; i < 100; i++ {
			δ := math.Asin(sε * math.Sin(λ))
			x := tφ * math.Tan(δ)
			if math.Abs(x) >= 1 {
				return 0, false
			}
			ad := math.Asin(x)
			if above {
				ra = armc.Rad() + f*(math.Pi/2+ad)
			} else {
				ra = armc.Rad() + math.Pi - f*(math.Pi/2-ad)
			}
			sr, cr = math.Sincos(ra)
			next := math.Atan2(sr, cr*cε)
			d := math.Abs(astro.Diff(next, λ, 2*math.Pi))
			λ = next
			if d < 1e-12 {
				break
			}
		}
		return astro.Norm360(λ * 180 / math.Pi), true
	}
	var ok bool
	if c[11], ok = cusp(1./3, true); !ok {
		return false
	}
	if c[12], ok = cusp(2./3, true); !ok {
		return false
	}
	if c[3], ok = cusp(1./3, false); !ok {
		return false
	}
	if c[2], ok = cusp(2./3, false); !ok {
		return false
	}
	return true
}
