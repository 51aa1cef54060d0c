// Public domain.

package transit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soniakeys/transit/ephem"
)

// Kind classifies transit errors.
type Kind int

const (
	// KindInvalidArgument is a configuration error found constructing a
	// target or starting a search.
	KindInvalidArgument Kind = iota + 1
	// KindOutOfTimeRange means the offset cannot be reached: it lies outside
	// the range of the quantity, the quantity cannot vary, or the search ran
	// beyond the time range of the ephemeris.
	KindOutOfTimeRange
	// KindBeyondUserTimeLimit means the search passed the caller's time
	// limit without finding a crossing.
	KindBeyondUserTimeLimit
	// KindEngine is any other error of the ephemeris or house engine.
	KindEngine
)

var kindNames = [...]string{
	KindInvalidArgument:     "invalid argument",
	KindOutOfTimeRange:      "out of time range",
	KindBeyondUserTimeLimit: "beyond user time limit",
	KindEngine:              "engine error",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind %d", int(k))
}

// Error is the error returned by target constructors and searches.
type Error struct {
	Kind Kind
	JD   float64 // time at which the error was detected, if any
	Msg  string
	Err  error // underlying engine error, if any
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("transit: ")
	b.WriteString(e.Kind.String())
	if e.JD != 0 {
		fmt.Fprintf(&b, " at jd %.5f", e.JD)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel errors by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.JD == 0 && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrOutOfTimeRange      = &Error{Kind: KindOutOfTimeRange}
	ErrBeyondUserTimeLimit = &Error{Kind: KindBeyondUserTimeLimit}
	ErrEngine              = &Error{Kind: KindEngine}
)

func invalidArg(format string, a ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, a...)}
}

// engineError wraps an error of the ephemeris or house engine computing
// for time jd.  Range errors become KindOutOfTimeRange.  Engines other
// than ephem.Meeus are recognized by the wording of their messages.
func engineError(jd float64, err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	e := &Error{Kind: KindEngine, JD: jd, Err: err}
	var ee *ephem.Error
	if errors.As(err, &ee) {
		if ee.Code == ephem.CodeRange {
			e.Kind = KindOutOfTimeRange
		}
		return e
	}
	if s := err.Error(); strings.Contains(s, "upper limit") || strings.Contains(s, "lower limit") {
		e.Kind = KindOutOfTimeRange
	}
	return e
}
