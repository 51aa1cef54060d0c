// Public domain.

package transit

import (
	"math"

	"github.com/soniakeys/transit/astro"
)

// Target is a quantity whose crossing of an offset can be searched for.
//
// Values and offsets are in degrees for angles, AU for distances and
// degrees or AU per day for speeds.  Times are Julian days, ephemeris time.
//
// Base implements every method but Calc.  Concrete targets embed Base and
// supply Calc.
type Target interface {
	// PreprocessDate may adjust the start time of a search.
	PreprocessDate(jd float64, backward bool) float64

	Offset() float64
	SetOffset(offset float64)
	// MinOffset and MaxOffset bound the values the quantity takes.  They
	// are ignored for rollover targets.
	MinOffset() float64
	MaxOffset() float64

	// MinSpeed and MaxSpeed bound the rate of change of the quantity, per
	// day.
	MinSpeed() float64
	MaxSpeed() float64
	// Rollover reports whether values live on a circle, and its
	// circumference.
	Rollover() (bool, float64)

	// DegreePrecision is the smallest difference of values worth
	// resolving near time jd.
	DegreePrecision(jd float64) float64
	// TimePrecision converts a value precision to a time precision.
	// The result is positive.
	TimePrecision(degPrec float64) float64

	// Calc evaluates the quantity at jd.  +Inf with a nil error means the
	// quantity cannot be computed from jd on and the search stops there.
	Calc(jd float64) (float64, error)

	// CheckIdenticalResult reports an exact hit.
	CheckIdenticalResult(offset, value float64) bool
	// NextJD estimates the next time to evaluate, from the value at jd and
	// the speed bounds min and max.
	NextJD(jd, value, offset, min, max float64, backward bool) float64
	// CheckResult reports whether successive values lastValue and value
	// enclose offset.  above tells whether lastValue was at or above the
	// offset, pxway whether the motion between the two samples was toward
	// increasing values.
	CheckResult(offset, lastValue, value float64, above, pxway bool) bool
}

// MinTimePrecision is the floor of Base.TimePrecision, in days.
const MinTimePrecision = 1e-9

// Base holds the state shared by targets: offset, speed bounds, range
// and precision.
type Base struct {
	offset         float64
	minOff, maxOff float64
	minSpeed       float64
	maxSpeed       float64
	rollover       bool
	modulus        float64
	degPrec        float64
}

// NewBase returns a Base for a quantity on a circle of circumference
// modulus, or, with modulus 0, for a quantity ranging over
// [minOff, maxOff].  degPrec is the value precision.
func NewBase(offset, minSpeed, maxSpeed, modulus, minOff, maxOff, degPrec float64) Base {
	b := Base{
		offset:   offset,
		minOff:   minOff,
		maxOff:   maxOff,
		minSpeed: minSpeed,
		maxSpeed: maxSpeed,
		rollover: modulus > 0,
		modulus:  modulus,
		degPrec:  degPrec,
	}
	if b.rollover {
		b.minOff, b.maxOff = 0, modulus
		b.offset = astro.Norm(offset, modulus)
	}
	return b
}

// PreprocessDate returns jd unchanged.
func (b *Base) PreprocessDate(jd float64, backward bool) float64 { return jd }

func (b *Base) Offset() float64 { return b.offset }

// SetOffset sets the offset, reduced to the circle for rollover targets.
func (b *Base) SetOffset(offset float64) {
	if b.rollover {
		offset = astro.Norm(offset, b.modulus)
	}
	b.offset = offset
}

func (b *Base) MinOffset() float64 { return b.minOff }
func (b *Base) MaxOffset() float64 { return b.maxOff }
func (b *Base) MinSpeed() float64  { return b.minSpeed }
func (b *Base) MaxSpeed() float64  { return b.maxSpeed }

func (b *Base) Rollover() (bool, float64) { return b.rollover, b.modulus }

// DegreePrecision returns the fixed precision given at construction.
func (b *Base) DegreePrecision(jd float64) float64 { return b.degPrec }

// TimePrecision divides degPrec by the fastest speed, flooring the result
// at MinTimePrecision.
func (b *Base) TimePrecision(degPrec float64) float64 {
	v := math.Max(math.Abs(b.minSpeed), math.Abs(b.maxSpeed))
	if t := degPrec / v; t >= MinTimePrecision && !math.IsInf(t, 1) {
		return t
	}
	return MinTimePrecision
}

// CheckIdenticalResult tests exact equality, modulo the circle for
// rollover targets.
func (b *Base) CheckIdenticalResult(offset, value float64) bool {
	if b.rollover {
		return astro.Norm(value, b.modulus) == astro.Norm(offset, b.modulus)
	}
	return value == offset
}

// NextJD steps to the earliest time at which the quantity could reach the
// offset.  For each speed bound that moves the value toward the offset in
// the search direction, the time needed is distance over speed; the
// smallest wins.  No crossing can lie between jd and the result.
//
// When neither bound approaches the offset, the step is the distance over
// the fastest speed, so the search still advances toward its time limit.
//
// On a circle no step is longer than the time the fastest speed takes to
// cover half the circle.
func (b *Base) NextJD(jd, value, offset, min, max float64, backward bool) float64 {
	dt := math.Inf(1)
	try := func(dist, speed float64) {
		if speed == 0 || math.IsInf(speed, 0) {
			return
		}
		if t := dist / math.Abs(speed); t < dt {
			dt = t
		}
	}
	if b.rollover {
		// distance going up the circle, and going down
		up := astro.Norm(offset-value, b.modulus)
		down := b.modulus - up
		if up == 0 {
			down = 0
		}
		// Going back in time a positive speed lowers the value.
		rising, falling := max, min
		if backward {
			rising, falling = -min, -max
		}
		if rising > 0 {
			try(up, rising)
		}
		if falling < 0 {
			try(down, falling)
		}
		// Between two evaluations the value may move at most half the
		// circle, or the way it went round cannot be told.
		if c := b.modulus / 2 / math.Max(math.Abs(min), math.Abs(max)); dt > c {
			dt = c
		}
	} else {
		d := offset - value
		if backward {
			d = -d
		}
		// the value moves by speed*dt going forward, -speed*dt going back
		if d >= 0 && max > 0 {
			try(d, max)
		}
		if d <= 0 && min < 0 {
			try(-d, min)
		}
		if math.IsInf(dt, 1) {
			try(math.Abs(d), math.Max(math.Abs(min), math.Abs(max)))
		}
	}
	if math.IsInf(dt, 1) || math.IsNaN(dt) {
		dt = 0
	}
	if backward {
		return jd - dt
	}
	return jd + dt
}

// CheckResult for a quantity on a line tests that offset lies beyond
// lastValue, up to and including value.  On a circle it tests that offset
// lies on the arc travelled from lastValue to value in direction pxway.
func (b *Base) CheckResult(offset, lastValue, value float64, above, pxway bool) bool {
	if !b.rollover {
		return lastValue < offset && offset <= value ||
			lastValue > offset && offset >= value
	}
	m := b.modulus
	if pxway {
		return astro.Forward(lastValue, offset, m) <= astro.Forward(lastValue, value, m)
	}
	return astro.Forward(offset, lastValue, m) <= astro.Forward(value, lastValue, m)
}
