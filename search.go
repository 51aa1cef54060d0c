// Public domain.

package transit

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/transit/astro"
	"github.com/soniakeys/transit/metrics"
)

// Searcher runs searches.  The zero value is ready to use.
type Searcher struct {
	// Log receives a trace line per evaluation.  Nil disables tracing.
	Log *log.Logger
	// Metrics counts searches.  Nil disables counting.
	Metrics *metrics.Collector
}

// Search finds the time at which t crosses its offset with a zero Searcher.
func Search(t Target, jd float64, backward bool, limit float64) (float64, error) {
	var s Searcher
	return s.Search(t, jd, backward, limit)
}

// Search finds the time at which the quantity t crosses its offset,
// starting at jd and going forward in time, or backward if backward is
// true.  The search fails with KindBeyondUserTimeLimit once it passes
// limit.
//
// The result is never beyond the last time evaluated.  It is interpolated
// between the last two evaluations enclosing the crossing, or is the time
// of an exact hit.  If Calc reports +Inf the search stops successfully at
// that time.
func (s *Searcher) Search(t Target, jd float64, backward bool, limit float64) (float64, error) {
	st := search{Searcher: s, t: t, backward: backward, limit: limit, start: time.Now()}
	r, err := st.run(jd)
	if err != nil {
		st.outcome = metrics.OutcomeError
		if s.Log != nil {
			s.Log.Print(err)
		}
	}
	s.Metrics.Search(st.outcome, st.iter, time.Since(st.start))
	return r, err
}

// search is the state of one Search call.
type search struct {
	*Searcher
	t        Target
	backward bool
	limit    float64

	rollover bool
	modulus  float64
	offset   float64
	min, max float64
	timePrec float64

	start   time.Time
	iter    int
	outcome string
}

func (st *search) run(jd float64) (float64, error) {
	t := st.t
	if math.IsNaN(jd) || math.IsNaN(st.limit) {
		return 0, invalidArg("start time %g, time limit %g", jd, st.limit)
	}
	jd = t.PreprocessDate(jd, st.backward)
	st.offset = t.Offset()
	st.rollover, st.modulus = t.Rollover()
	if !st.rollover && (st.offset < t.MinOffset() || st.offset > t.MaxOffset()) {
		return 0, &Error{Kind: KindOutOfTimeRange, JD: jd,
			Msg: fmt.Sprintf("offset %g outside range [%g, %g]", st.offset, t.MinOffset(), t.MaxOffset())}
	}

	// Same signed bounds collapse to the fastest one.  Only its magnitude
	// is used for stepping then.
	st.min, st.max = t.MinSpeed(), t.MaxSpeed()
	switch {
	case st.min >= 0 && st.max >= 0:
		st.min = st.max
	case st.min < 0 && st.max < 0:
		st.max = st.min
	}
	st.timePrec = t.TimePrecision(t.DegreePrecision(jd) / 2)

	value, err := t.Calc(jd)
	if err != nil {
		return 0, engineError(jd, err)
	}
	st.trace(jd, value)
	if math.IsInf(value, 1) {
		st.outcome = metrics.OutcomeSoftStop
		return jd, nil
	}
	if t.CheckIdenticalResult(st.offset, value) {
		st.outcome = metrics.OutcomeExact
		return jd, nil
	}
	if st.min == 0 && st.max == 0 {
		return 0, &Error{Kind: KindOutOfTimeRange, JD: jd, Msg: "no variation possible"}
	}

	for {
		st.iter++
		if st.rollover {
			value = astro.Norm(value, st.modulus)
		}
		above := value >= st.offset
		lastJD, lastValue := jd, value
		if st.rollover && !above {
			value += st.modulus
		}

		jd = t.NextJD(jd, value, st.offset, st.min, st.max, st.backward)
		if step := st.dir() * (jd - lastJD); !(step >= st.timePrec) {
			jd = lastJD + st.dir()*st.timePrec
		}
		if jd == lastJD {
			st.outcome = metrics.OutcomeConverged
			return jd, nil
		}

		if value, err = t.Calc(jd); err != nil {
			return 0, engineError(jd, err)
		}
		if math.IsInf(value, 1) {
			st.logf("jd %.5f: stop, quantity not computable", jd)
			st.outcome = metrics.OutcomeSoftStop
			return jd, nil
		}
		if st.rollover {
			value = astro.Norm(value, st.modulus)
		}
		st.trace(jd, value)
		if t.CheckIdenticalResult(st.offset, value) {
			st.outcome = metrics.OutcomeExact
			return jd, nil
		}

		pxway := st.pxway(lastValue, value)
		if t.CheckResult(st.offset, lastValue, value, above, pxway) {
			st.outcome = metrics.OutcomeFound
			return st.interpolate(lastJD, lastValue, jd, value, pxway), nil
		}
		if st.backward && jd < st.limit || !st.backward && jd > st.limit {
			return 0, &Error{Kind: KindBeyondUserTimeLimit, JD: jd,
				Msg: fmt.Sprintf("no crossing of %g within limit jd %.5f", st.offset, st.limit)}
		}
	}
}

// dir is the sign of time steps.
func (st *search) dir() float64 {
	if st.backward {
		return -1
	}
	return 1
}

// pxway infers whether the value went up from lastValue to value.  On a
// circle both ways round are possible; the one taking less time at the
// extreme speeds is assumed.
func (st *search) pxway(lastValue, value float64) bool {
	if !st.rollover {
		return lastValue <= value
	}
	up := astro.Forward(lastValue, value, st.modulus)
	down := astro.Forward(value, lastValue, st.modulus)
	tUp, tDown := math.Abs(up/st.max), math.Abs(down/st.min)
	if st.backward {
		// motion in time is reversed; the rising bound going back is -min
		tUp, tDown = math.Abs(up/st.min), math.Abs(down/st.max)
	}
	return tUp < tDown
}

// interpolate finds the time of the crossing linearly between two
// evaluations.  On a circle values are measured along the arc travelled,
// which handles the wrap at the modulus.
func (st *search) interpolate(lastJD, lastValue, jd, value float64, pxway bool) float64 {
	var part, span float64
	switch {
	case !st.rollover:
		part, span = st.offset-lastValue, value-lastValue
	case pxway:
		part = astro.Forward(lastValue, st.offset, st.modulus)
		span = astro.Forward(lastValue, value, st.modulus)
	default:
		part = astro.Forward(st.offset, lastValue, st.modulus)
		span = astro.Forward(value, lastValue, st.modulus)
	}
	if span == 0 {
		return jd
	}
	r := lastJD + (jd-lastJD)*part/span
	if st.backward {
		return math.Max(r, jd)
	}
	return math.Min(r, jd)
}

func (st *search) logf(format string, a ...interface{}) {
	if st.Log != nil {
		st.Log.Printf("transit: "+format, a...)
	}
}

// trace logs one evaluation.  Values on a 360 circle print as angles.
func (st *search) trace(jd, value float64) {
	if st.Log == nil {
		return
	}
	if st.rollover && st.modulus == 360 && !math.IsInf(value, 0) && !math.IsNaN(value) {
		st.logf("jd %.5f value %.1s", jd, sexa.FmtAngle(unit.AngleFromDeg(value)))
		return
	}
	st.logf("jd %.5f value %g", jd, value)
}
