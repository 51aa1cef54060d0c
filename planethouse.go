// Public domain.

package transit

import (
	"errors"
	"math"

	"github.com/soniakeys/unit"

	"github.com/soniakeys/transit/astro"
	"github.com/soniakeys/transit/ephem"
	"github.com/soniakeys/transit/speed"
)

// relative returns the bounds of the speed of a quantity a - b, the worst
// case closing and opening speeds of two moving points.
//
// The extremes are figured for the faster point less the slower, then
// oriented as a - b.
func relative(a, b speed.Bound) speed.Bound {
	if a.Max > b.Max {
		return speed.Bound{Min: a.Min - b.Max, Max: a.Max - b.Min}
	}
	r := speed.Bound{Min: b.Min - a.Max, Max: b.Max - a.Min}
	return speed.Bound{Min: -r.Max, Max: -r.Min}
}

// worse picks the error to report when two evaluations failed.  Range
// errors win.
func worse(a, b error) error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case errors.Is(b, ErrOutOfTimeRange) && !errors.Is(a, ErrOutOfTimeRange):
		return b
	}
	return a
}

// PlanetHouse is a target following the ecliptic longitude of a body
// relative to a house cusp or special point, for example the Sun crossing
// the midheaven.  Values are the difference body - house object on the
// 360 degree circle.
type PlanetHouse struct {
	Base
	eng      ephem.Engine
	body     ephem.Body
	flags    ephem.Flag
	obj      ephem.Point
	sys      ephem.HouseSystem
	lat, lon unit.Angle
}

// NewPlanetHouse creates a target for the longitude of body, computed by
// eng with flags, less the longitude of house object obj in house system
// sys at geographic latitude lat and longitude lon.
//
// The speed bounds of the house object come from the house speed table
// and must be available for sys at lat.  Whole sign cusps have none, so
// only the special points can be followed in whole sign houses.
func NewPlanetHouse(eng ephem.Engine, body ephem.Body, flags ephem.Flag,
	obj ephem.Point, sys ephem.HouseSystem, lat, lon unit.Angle,
	offset float64, o Options) (*PlanetHouse, error) {

	o, err := o.normalize()
	if err != nil {
		return nil, err
	}
	if flags&ephem.FlagEquatorial != 0 {
		return nil, invalidArg("only ecliptic longitude can be followed relative to houses")
	}
	if err := checkBody(eng, body, flags); err != nil {
		return nil, err
	}
	if !obj.Valid() {
		return nil, invalidArg("%v is not a house object", obj)
	}
	if !sys.Supported() {
		return nil, invalidArg("unsupported %v", sys)
	}
	if d := lat.Deg(); !(d >= -90 && d <= 90) {
		return nil, invalidArg("latitude %g out of range", d)
	}
	if d := lon.Deg(); math.IsNaN(d) || math.IsInf(d, 0) {
		return nil, invalidArg("longitude %g", d)
	}
	if math.IsNaN(offset) {
		return nil, invalidArg("offset is NaN")
	}
	h, ok := speed.HouseSpeeds(sys, obj, lat.Deg())
	if !ok {
		return nil, invalidArg("no extreme speeds of %v for %v at latitude %.2f", obj, sys, lat.Deg())
	}
	flags &^= ephem.FlagSpeed
	b, n, err := bodyBounds(eng, body, flags, Longitude, o)
	if err != nil {
		return nil, err
	}
	r := relative(b, h)
	t := &PlanetHouse{eng: eng, body: body, flags: flags, obj: obj, sys: sys, lat: lat, lon: lon}
	t.Base = NewBase(offset, r.Min, r.Max, 360, 0, 0, anglePrecision)
	o.Metrics.Target("planet_house", n)
	return t, nil
}

// Calc returns the longitude of the body less that of the house object.
// Houses are computed for universal time.
func (t *PlanetHouse) Calc(jd float64) (float64, error) {
	var pErr, hErr error
	pos, err := t.eng.Calc(jd, t.body, t.flags)
	if err != nil {
		pErr = engineError(jd, err)
	}
	h, err := t.eng.Houses(jd-t.eng.DeltaT(jd), t.lat, t.lon, t.sys)
	if err != nil {
		hErr = engineError(jd, err)
	}
	if err := worse(pErr, hErr); err != nil {
		return 0, err
	}
	return astro.Norm360(pos[0] - h.Value(t.obj)), nil
}
