// Public domain.

// Package ephem is the boundary to the ephemeris and house engines.
//
// Transit targets only see the Engine interface.  Meeus is the engine
// shipped with the module; it is built on github.com/soniakeys/meeus/v3.
package ephem

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/soniakeys/unit"
)

// Body identifies a body or computed point.  Numbering follows the
// customary ephemeris numbering so values can be stored or exchanged.
type Body int

const (
	Sun        Body = 0
	Moon       Body = 1
	Mercury    Body = 2
	Venus      Body = 3
	Mars       Body = 4
	Jupiter    Body = 5
	Saturn     Body = 6
	Uranus     Body = 7
	Neptune    Body = 8
	Pluto      Body = 9
	MeanNode   Body = 10
	MeanApogee Body = 12
	Earth      Body = 14
)

var bodyNames = map[Body]string{
	Sun:        "Sun",
	Moon:       "Moon",
	Mercury:    "Mercury",
	Venus:      "Venus",
	Mars:       "Mars",
	Jupiter:    "Jupiter",
	Saturn:     "Saturn",
	Uranus:     "Uranus",
	Neptune:    "Neptune",
	Pluto:      "Pluto",
	MeanNode:   "mean node",
	MeanApogee: "mean apogee",
	Earth:      "Earth",
}

func (b Body) String() string {
	if s, ok := bodyNames[b]; ok {
		return s
	}
	return fmt.Sprintf("body %d", int(b))
}

// Known reports whether b is a body the engine boundary defines.
func (b Body) Known() bool {
	_, ok := bodyNames[b]
	return ok
}

// Lunar reports whether b is one of the computed lunar points, which have
// no heliocentric position.
func (b Body) Lunar() bool {
	return b == MeanNode || b == MeanApogee
}

// Flag selects the kind of position computed.
type Flag int

const (
	FlagSpeed      Flag = 1 << iota // also compute rates of change
	FlagHelio                       // heliocentric instead of geocentric
	FlagTopo                        // topocentric; needs an observer
	FlagEquatorial                  // right ascension, declination
)

// Position holds the computed position of a body, in degrees, AU and days:
//
//   [0] longitude or right ascension
//   [1] latitude or declination
//   [2] distance
//   [3..5] rates of change of [0..2] per day, when FlagSpeed was given.
type Position [6]float64

// Observer is a geographic position on the Earth.
type Observer struct {
	Lat    unit.Angle // geographic latitude, north positive
	Lon    unit.Angle // geographic longitude, east positive
	Height float64    // meters above sea level
}

// observerFields is the shape validated for an Observer.
type observerFields struct {
	LatDeg float64 `validate:"gte=-90,lte=90"`
	LonDeg float64 `validate:"gte=-360,lte=360"`
	Height float64 `validate:"gte=-500,lte=20000"`
}

var validate = validator.New()

// Validate checks the observer lies on (or near) the Earth.
func (o Observer) Validate() error {
	f := observerFields{o.Lat.Deg(), o.Lon.Deg(), o.Height}
	if math.IsNaN(f.LatDeg) || math.IsNaN(f.LonDeg) || math.IsNaN(f.Height) {
		return errors.New("ephem: observer has NaN coordinate")
	}
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("ephem: invalid observer: %w", err)
	}
	return nil
}

// Engine computes body positions and house cusps.
//
// Times are Julian days.  Calc takes ephemeris time, Houses universal time.
type Engine interface {
	Calc(jd float64, body Body, flags Flag) (Position, error)
	Houses(jdUT float64, lat, lon unit.Angle, sys HouseSystem) (Houses, error)
	// Range returns the interval of ephemeris time over which body
	// can be computed.
	Range(body Body) (lo, hi float64)
	// DeltaT returns ET - UT in days.
	DeltaT(jd float64) float64
	// Observer returns the observer used for FlagTopo, if one is set.
	Observer() (Observer, bool)
}

// Code classifies engine errors.
type Code int

const (
	CodeInput Code = iota + 1 // unsupported body, flag combination or argument
	CodeRange                 // time outside the range of the ephemeris
	CodeData                  // ephemeris data could not be loaded
)

// Error is returned by the Meeus engine.
type Error struct {
	Code Code
	JD   float64
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ephem: jd %.5f: %s", e.JD, e.Msg)
}

// Messages for CodeRange errors.  Other engines are expected to mention
// "upper limit" or "lower limit" in their messages as well.
const (
	msgUpperLimit = "beyond upper limit of ephemeris range"
	msgLowerLimit = "beyond lower limit of ephemeris range"
)

func rangeError(jd, lo, hi float64) error {
	switch {
	case jd < lo:
		return &Error{CodeRange, jd, msgLowerLimit}
	case jd > hi:
		return &Error{CodeRange, jd, msgUpperLimit}
	}
	return nil
}
