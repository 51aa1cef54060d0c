// Public domain.

package transit

import (
	"fmt"
	"math"

	"github.com/soniakeys/transit/astro"
	"github.com/soniakeys/transit/ephem"
	"github.com/soniakeys/transit/speed"
)

// Component selects the quantity of a body followed by a Planet target.
type Component int

const (
	Longitude      Component = iota // or right ascension, with FlagEquatorial
	Latitude                        // or declination
	Distance                        // AU
	LongitudeSpeed                  // degrees per day
	LatitudeSpeed
	DistanceSpeed // AU per day
)

var componentNames = [...]string{
	"longitude", "latitude", "distance",
	"longitude speed", "latitude speed", "distance speed",
}

func (c Component) String() string {
	if c >= 0 && int(c) < len(componentNames) {
		return componentNames[c]
	}
	return fmt.Sprintf("component %d", int(c))
}

// isRate reports whether c is the rate of change of another component.
func (c Component) isRate() bool { return c >= LongitudeSpeed }

// Precisions used for DegreePrecision, by the unit of a component.
const (
	anglePrecision = 1e-5 // degrees
	distPrecision  = 1e-9 // AU
	ratePrecision  = 1e-6 // per day
)

// Planet is a target following one component of the position of a body,
// for example the ecliptic longitude of Mars, reaching a fixed offset.
type Planet struct {
	Base
	eng   ephem.Engine
	body  ephem.Body
	flags ephem.Flag
	comp  Component
}

// NewPlanet creates a target for component comp of body computed by eng
// with flags.  FlagSpeed is implied where needed and may be omitted.
//
// Longitude extreme speeds are tabulated for most bodies.  Other bounds
// are estimated by sampling, tuned by o.
func NewPlanet(eng ephem.Engine, body ephem.Body, flags ephem.Flag, comp Component, offset float64, o Options) (*Planet, error) {
	o, err := o.normalize()
	if err != nil {
		return nil, err
	}
	if comp < Longitude || comp > DistanceSpeed {
		return nil, invalidArg("%v", comp)
	}
	if err := checkBody(eng, body, flags); err != nil {
		return nil, err
	}
	if math.IsNaN(offset) {
		return nil, invalidArg("offset is NaN")
	}
	p := &Planet{eng: eng, body: body, flags: flags &^ ephem.FlagSpeed, comp: comp}
	b, n, err := bodyBounds(eng, body, p.flags, comp, o)
	if err != nil {
		return nil, err
	}
	var modulus, minOff, maxOff, prec float64
	switch comp {
	case Longitude:
		modulus, prec = 360, anglePrecision
	case Latitude:
		minOff, maxOff, prec = -90, 90, anglePrecision
	case Distance:
		minOff, maxOff, prec = 0, math.Inf(1), distPrecision
	default:
		minOff, maxOff, prec = math.Inf(-1), math.Inf(1), ratePrecision
	}
	p.Base = NewBase(offset, b.Min, b.Max, modulus, minOff, maxOff, prec)
	o.Metrics.Target("planet", n)
	return p, nil
}

// Body returns the body followed.
func (p *Planet) Body() ephem.Body { return p.body }

// Component returns the component followed.
func (p *Planet) Component() Component { return p.comp }

// Calc returns the component at jd.
func (p *Planet) Calc(jd float64) (float64, error) {
	return component(p.eng, jd, p.body, p.flags, p.comp)
}

// component evaluates comp of body at jd.
func component(eng ephem.Engine, jd float64, body ephem.Body, flags ephem.Flag, comp Component) (float64, error) {
	if comp.isRate() {
		flags |= ephem.FlagSpeed
	}
	pos, err := eng.Calc(jd, body, flags)
	if err != nil {
		return 0, engineError(jd, err)
	}
	return pos[comp], nil
}

// checkBody validates a body and flag combination against eng.
func checkBody(eng ephem.Engine, body ephem.Body, flags ephem.Flag) error {
	if eng == nil {
		return invalidArg("no engine")
	}
	if !body.Known() {
		return invalidArg("unknown %v", body)
	}
	const all = ephem.FlagSpeed | ephem.FlagHelio | ephem.FlagTopo | ephem.FlagEquatorial
	if flags&^all != 0 {
		return invalidArg("unknown flags %#x", int(flags&^all))
	}
	helio := flags&ephem.FlagHelio != 0
	switch {
	case helio && flags&ephem.FlagTopo != 0:
		return invalidArg("heliocentric and topocentric flags combined")
	case helio && (body == ephem.Sun || body.Lunar()):
		return invalidArg("%v has no heliocentric position", body)
	case !helio && body == ephem.Earth:
		return invalidArg("Earth has no geocentric position")
	}
	if flags&ephem.FlagTopo != 0 {
		if _, ok := eng.Observer(); !ok {
			return invalidArg("topocentric position needs an observer")
		}
	}
	return nil
}

// bodyBounds returns the extreme speeds of comp of body, and the number of
// samples it took to find them.  Longitudes come from the table when
// possible.
func bodyBounds(eng ephem.Engine, body ephem.Body, flags ephem.Flag, comp Component, o Options) (speed.Bound, int, error) {
	if comp == Longitude {
		if b := speed.Planet(body, flags); b.Known() {
			return b, 0, nil
		}
	}
	return sampleBounds(eng, body, flags, comp, o)
}

// rateStep is the time step for rates of speeds, in days.
const rateStep = .05

// sampleBounds estimates extreme speeds of comp by evaluating its rate of
// change at o.PrecalcCount random times in the range of the ephemeris.
// The extremes found are widened by o.SafetyFactor.
func sampleBounds(eng ephem.Engine, body ephem.Body, flags ephem.Flag, comp Component, o Options) (speed.Bound, int, error) {
	lo, hi := eng.Range(body)
	if comp.isRate() {
		lo, hi = lo+rateStep, hi-rateStep
	}
	if !(hi > lo) {
		return speed.Unknown, 0, invalidArg("%v: empty ephemeris range", body)
	}
	rate := func(jd float64) (float64, error) {
		if !comp.isRate() {
			pos, err := eng.Calc(jd, body, flags|ephem.FlagSpeed)
			return pos[comp+3], err
		}
		a, err := component(eng, jd-rateStep, body, flags, comp)
		if err != nil {
			return 0, err
		}
		b, err := component(eng, jd+rateStep, body, flags, comp)
		return (b - a) / (2 * rateStep), err
	}
	r := o.rand()
	smin, smax := math.Inf(1), math.Inf(-1)
	for i := 0; i < o.PrecalcCount; i++ {
		jd := lo + r.Float64()*(hi-lo)
		v, err := rate(jd)
		if err != nil {
			return speed.Unknown, i, engineError(jd, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		smin = math.Min(smin, v)
		smax = math.Max(smax, v)
	}
	if math.IsInf(smin, 0) && math.IsInf(smax, 0) {
		return speed.Unknown, o.PrecalcCount, invalidArg("%v %v: extreme speeds unknown", body, comp)
	}
	smin, smax = astro.Widen(smin, smax, o.SafetyFactor)
	return speed.Bound{Min: smin, Max: smax}, o.PrecalcCount, nil
}
