// Public domain.

package ephem

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/base"
	mcoord "github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/parallax"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/transit/astro"
)

// MeeusConfig configures a Meeus engine.
type MeeusConfig struct {
	// VSOP87Dir is the directory holding the VSOP87B files.  Empty means
	// the VSOP87 environment variable.  Only the planets need the files;
	// Sun, Moon and the lunar points are computed from series in code.
	VSOP87Dir string

	// Observer is used for FlagTopo positions.  Nil disables FlagTopo.
	Observer *Observer
}

// Meeus is an Engine computing positions with the algorithms of
// Jean Meeus, "Astronomical Algorithms."
//
// It is safe for concurrent use.  Configuration is fixed at construction.
type Meeus struct {
	cfg MeeusConfig

	mu      sync.Mutex
	planets [8]*pp.V87Planet
	loadErr [8]error
}

// NewMeeus creates a Meeus engine.
func NewMeeus(cfg MeeusConfig) (*Meeus, error) {
	if cfg.Observer != nil {
		if err := cfg.Observer.Validate(); err != nil {
			return nil, err
		}
		o := *cfg.Observer
		cfg.Observer = &o
	}
	if cfg.VSOP87Dir == "" {
		cfg.VSOP87Dir = os.Getenv("VSOP87")
	}
	return &Meeus{cfg: cfg}, nil
}

const (
	kmPerAU = 149597870.7
	// light time for one AU, in days
	lightTimeAU = .0057755183
	// step for rates of change by central difference, in days
	speedStep = 1e-3
)

var (
	jdMinus3000 = julian.CalendarGregorianToJD(-3000, 1, 1)
	jd3000      = julian.CalendarGregorianToJD(3000, 1, 1)
	jd1885      = julian.CalendarGregorianToJD(1885, 1, 1)
	jd2099      = julian.CalendarGregorianToJD(2099, 12, 31)
)

// Range implements Engine.
func (m *Meeus) Range(body Body) (lo, hi float64) {
	if body == Pluto {
		return jd1885, jd2099
	}
	return jdMinus3000, jd3000
}

// DeltaT implements Engine.
func (m *Meeus) DeltaT(jd float64) float64 { return DeltaT(jd) }

// Observer implements Engine.
func (m *Meeus) Observer() (Observer, bool) {
	if m.cfg.Observer == nil {
		return Observer{}, false
	}
	return *m.cfg.Observer, true
}

// Calc implements Engine.
func (m *Meeus) Calc(jd float64, body Body, flags Flag) (p Position, err error) {
	if err = m.check(jd, body, flags); err != nil {
		return
	}
	if p[0], p[1], p[2], err = m.position(jd, body, flags); err != nil {
		return
	}
	if flags&FlagSpeed == 0 {
		return
	}
	// central difference, one sided at the ends of the range
	lo, hi := m.Range(body)
	t0, t1 := jd-speedStep, jd+speedStep
	if t0 < lo {
		t0 = jd
	}
	if t1 > hi {
		t1 = jd
	}
	var a, b [3]float64
	if a[0], a[1], a[2], err = m.position(t0, body, flags); err != nil {
		return
	}
	if b[0], b[1], b[2], err = m.position(t1, body, flags); err != nil {
		return
	}
	dt := t1 - t0
	p[3] = astro.Diff(a[0], b[0], 360) / dt
	p[4] = (b[1] - a[1]) / dt
	p[5] = (b[2] - a[2]) / dt
	return
}

func (m *Meeus) check(jd float64, body Body, flags Flag) error {
	if math.IsNaN(jd) {
		return &Error{CodeInput, jd, "time is NaN"}
	}
	if !body.Known() {
		return &Error{CodeInput, jd, fmt.Sprintf("unknown %v", body)}
	}
	if lo, hi := m.Range(body); jd < lo || jd > hi {
		return rangeError(jd, lo, hi)
	}
	helio := flags&FlagHelio != 0
	switch {
	case helio && flags&FlagTopo != 0:
		return &Error{CodeInput, jd, "heliocentric and topocentric flags combined"}
	case helio && (body == Sun || body.Lunar()):
		return &Error{CodeInput, jd, fmt.Sprintf("no heliocentric position of %v", body)}
	case !helio && body == Earth:
		return &Error{CodeInput, jd, "no geocentric position of the Earth"}
	case flags&FlagTopo != 0 && m.cfg.Observer == nil:
		return &Error{CodeInput, jd, "topocentric position without observer"}
	}
	return nil
}

// position returns longitude, latitude in degrees and distance in AU,
// or right ascension and declination with FlagEquatorial.
func (m *Meeus) position(jd float64, body Body, flags Flag) (float64, float64, float64, error) {
	var (
		λ, β unit.Angle
		r    float64
		err  error
	)
	helio := flags&FlagHelio != 0
	switch {
	case body == Sun:
		T := base.J2000Century(jd)
		λ, r = solar.ApparentLongitude(T), solar.Radius(T)
	case body == MeanNode:
		λ = moonposition.Node(jd)
	case body == MeanApogee:
		λ = (moonposition.Perigee(jd) + math.Pi).Mod1()
	case body == Moon && !helio:
		var Δ float64
		λ, β, Δ = moonposition.Position(jd)
		r = Δ / kmPerAU
		λ += m.nutationLon(jd)
	case helio:
		var v coord.Cart
		if v, err = m.helioCart(jd, body); err != nil {
			return 0, 0, 0, err
		}
		λ, β, r = spherical(&v)
	default:
		if λ, β, r, err = m.geocentric(jd, body); err != nil {
			return 0, 0, 0, err
		}
		λ += m.nutationLon(jd)
	}
	if flags&FlagTopo != 0 {
		λ, β = m.topocentric(jd, λ, β, r)
	}
	if flags&FlagEquatorial != 0 {
		sε, cε := trueObliquity(jd).Sincos()
		α, δ := mcoord.EclToEq(λ, β, sε, cε)
		return unit.Angle(α).Mod1().Deg(), δ.Deg(), r, nil
	}
	return λ.Mod1().Deg(), β.Deg(), r, nil
}

func (m *Meeus) nutationLon(jd float64) unit.Angle {
	Δψ, _ := nutation.Nutation(jd)
	return Δψ
}

func trueObliquity(jd float64) unit.Angle {
	_, Δε := nutation.Nutation(jd)
	return nutation.MeanObliquity(jd) + Δε
}

// geocentric position of a planet, corrected for light time.
func (m *Meeus) geocentric(jd float64, body Body) (λ, β unit.Angle, r float64, err error) {
	var e, p coord.Cart
	if e, err = m.helioCart(jd, Earth); err != nil {
		return
	}
	if p, err = m.helioCart(jd, body); err != nil {
		return
	}
	var g coord.Cart
	g.Sub(&p, &e)
	τ := lightTimeAU * math.Sqrt(g.Square())
	if p, err = m.helioCart(jd-τ, body); err != nil {
		return
	}
	g.Sub(&p, &e)
	λ, β, r = spherical(&g)
	return
}

// helioCart returns the heliocentric ecliptic position of body as a
// rectangular vector in AU.
func (m *Meeus) helioCart(jd float64, body Body) (v coord.Cart, err error) {
	var (
		l, b unit.Angle
		r    float64
	)
	switch body {
	case Pluto:
		// J2000 ecliptic; precess the longitude to the equinox of date
		// like the VSOP87 positions.
		l, b, r = pluto.Heliocentric(jd)
		l += unit.AngleFromDeg(1.396971 * base.J2000Century(jd))
	case Moon:
		var e coord.Cart
		if e, err = m.helioCart(jd, Earth); err != nil {
			return
		}
		λ, β, Δ := moonposition.Position(jd)
		mv := cart(λ, β, Δ/kmPerAU)
		v.Add(&e, &mv)
		return
	default:
		var p *pp.V87Planet
		if p, err = m.planet(jd, body); err != nil {
			return
		}
		l, b, r = p.Position(jd)
	}
	return cart(l, b, r), nil
}

var vsopIndex = map[Body]int{
	Mercury: pp.Mercury,
	Venus:   pp.Venus,
	Earth:   pp.Earth,
	Mars:    pp.Mars,
	Jupiter: pp.Jupiter,
	Saturn:  pp.Saturn,
	Uranus:  pp.Uranus,
	Neptune: pp.Neptune,
}

// planet loads VSOP87 data on first use.
func (m *Meeus) planet(jd float64, body Body) (*pp.V87Planet, error) {
	i, ok := vsopIndex[body]
	if !ok {
		return nil, &Error{CodeInput, jd, fmt.Sprintf("no VSOP87 theory for %v", body)}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.planets[i] == nil && m.loadErr[i] == nil {
		if m.cfg.VSOP87Dir != "" {
			m.planets[i], m.loadErr[i] = pp.LoadPlanetPath(i, m.cfg.VSOP87Dir)
		} else {
			m.planets[i], m.loadErr[i] = pp.LoadPlanet(i)
		}
	}
	if m.loadErr[i] != nil {
		return nil, &Error{CodeData, jd, fmt.Sprintf("VSOP87 data for %v: %v", body, m.loadErr[i])}
	}
	return m.planets[i], nil
}

// topocentric applies diurnal parallax to an ecliptic position.
func (m *Meeus) topocentric(jd float64, λ, β unit.Angle, r float64) (unit.Angle, unit.Angle) {
	if r == 0 {
		return λ, β
	}
	o := m.cfg.Observer
	sε, cε := trueObliquity(jd).Sincos()
	α, δ := mcoord.EclToEq(λ, β, sε, cε)
	ρsφ, ρcφ := globe.Earth76.ParallaxConstants(o.Lat, o.Height)
	// parallax takes longitude positive west.
	α, δ = parallax.Topocentric(α, δ, r, ρsφ, ρcφ, -o.Lon, jd)
	return mcoord.EqToEcl(α, δ, sε, cε)
}

// SiderealARMC returns the sidereal time at longitude lon for universal
// time jdUT, expressed as an angle.  It is the ARMC of Houses.
func SiderealARMC(jdUT float64, lon unit.Angle) unit.Angle {
	return (sidereal.Apparent(jdUT).Angle() + lon).Mod1()
}

// Houses implements Engine.
func (m *Meeus) Houses(jdUT float64, lat, lon unit.Angle, sys HouseSystem) (h Houses, err error) {
	if math.Abs(lat.Deg()) > 90 {
		return h, &Error{CodeInput, jdUT, fmt.Sprintf("latitude %.4f out of range", lat.Deg())}
	}
	if !sys.Supported() {
		return h, &Error{CodeInput, jdUT, fmt.Sprintf("unsupported %v", sys)}
	}
	if jdUT < jdMinus3000 || jdUT > jd3000 {
		return h, rangeError(jdUT, jdMinus3000, jd3000)
	}
	h, _, err = ComputeHouses(SiderealARMC(jdUT, lon), lat, trueObliquity(jdUT), sys)
	return
}

func cart(l, b unit.Angle, r float64) coord.Cart {
	sl, cl := l.Sincos()
	sb, cb := b.Sincos()
	return coord.Cart{X: r * cb * cl, Y: r * cb * sl, Z: r * sb}
}

func spherical(v *coord.Cart) (λ, β unit.Angle, r float64) {
	r = math.Sqrt(v.Square())
	if r == 0 {
		return
	}
	λ = unit.Angle(math.Atan2(v.Y, v.X)).Mod1()
	β = unit.Angle(math.Asin(v.Z / r))
	return
}
