// Public domain.

package transit

import (
	"math"

	"github.com/soniakeys/transit/astro"
	"github.com/soniakeys/transit/ephem"
)

// PlanetPlanet is a target following the difference in ecliptic longitude
// of two bodies, the angle of their aspect.
type PlanetPlanet struct {
	Base
	eng          ephem.Engine
	body1, body2 ephem.Body
	flags        ephem.Flag
}

// NewPlanetPlanet creates a target for the longitude of body1 less that of
// body2, both computed by eng with flags.
func NewPlanetPlanet(eng ephem.Engine, body1, body2 ephem.Body, flags ephem.Flag, offset float64, o Options) (*PlanetPlanet, error) {
	o, err := o.normalize()
	if err != nil {
		return nil, err
	}
	if flags&ephem.FlagEquatorial != 0 {
		return nil, invalidArg("only ecliptic longitude can be followed between bodies")
	}
	if body1 == body2 {
		return nil, invalidArg("%v against itself", body1)
	}
	for _, b := range []ephem.Body{body1, body2} {
		if err := checkBody(eng, b, flags); err != nil {
			return nil, err
		}
	}
	if math.IsNaN(offset) {
		return nil, invalidArg("offset is NaN")
	}
	flags &^= ephem.FlagSpeed
	b1, n1, err := bodyBounds(eng, body1, flags, Longitude, o)
	if err != nil {
		return nil, err
	}
	b2, n2, err := bodyBounds(eng, body2, flags, Longitude, o)
	if err != nil {
		return nil, err
	}
	r := relative(b1, b2)
	t := &PlanetPlanet{eng: eng, body1: body1, body2: body2, flags: flags}
	t.Base = NewBase(offset, r.Min, r.Max, 360, 0, 0, anglePrecision)
	o.Metrics.Target("planet_planet", n1+n2)
	return t, nil
}

// Calc returns the longitude of body1 less that of body2.
func (t *PlanetPlanet) Calc(jd float64) (float64, error) {
	p1, err1 := component(t.eng, jd, t.body1, t.flags, Longitude)
	p2, err2 := component(t.eng, jd, t.body2, t.flags, Longitude)
	if err := worse(err1, err2); err != nil {
		return 0, err
	}
	return astro.Norm360(p1 - p2), nil
}
