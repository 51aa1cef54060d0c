// Public domain.

package transit

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/transit/metrics"
)

// Defaults for the estimation of unknown extreme speeds by sampling.
const (
	DefaultPrecalcCount = 200
	DefaultSafetyFactor = 1.4
)

// Options tune construction of targets.  The zero value selects the
// defaults.
type Options struct {
	// PrecalcCount is the number of random times at which a body's speed
	// is sampled when its extreme speeds are not tabulated.
	PrecalcCount int `validate:"omitempty,gte=100"`
	// SafetyFactor widens sampled extreme speeds away from zero.
	SafetyFactor float64 `validate:"omitempty,gte=1.1"`
	// Seed makes sampling repeatable.  Zero seeds from the clock.
	Seed uint64
	// Metrics counts constructed targets.  May be nil.
	Metrics *metrics.Collector `validate:"-"`
}

var validate = validator.New()

// normalize validates o and fills in defaults.
func (o Options) normalize() (Options, error) {
	if math.IsNaN(o.SafetyFactor) {
		return o, invalidArg("safety factor is NaN")
	}
	if err := validate.Struct(o); err != nil {
		return o, &Error{Kind: KindInvalidArgument, Msg: "options", Err: err}
	}
	if o.PrecalcCount == 0 {
		o.PrecalcCount = DefaultPrecalcCount
	}
	if o.SafetyFactor == 0 {
		o.SafetyFactor = DefaultSafetyFactor
	}
	return o, nil
}

// rand returns the generator used for sampling.
func (o Options) rand() *xrand.Rand {
	r := xrand.New(&xrand.PCGSource{})
	if o.Seed != 0 {
		r.Seed(o.Seed)
	} else {
		r.Seed(uint64(time.Now().UnixNano()))
	}
	return r
}
