/*
Package transit finds the times at which computed ephemeris quantities
reach given values.

Contents

  Overview
  Targets
  Speed bounds
  The search
  Errors


Overview

A transit here is the moment a quantity crosses an offset: the Sun reaching
0° of longitude, Mars standing still in longitude, the Moon culminating
on the midheaven of a place, Venus and Jupiter in conjunction.  The
quantity is described by a Target and found by Search, starting at a time
and going forward or backward, up to a time limit.

Positions and house cusps come from an ephem.Engine.  The package ephem
supplies Meeus, an engine built on the algorithms of Jean Meeus'
"Astronomical Algorithms."  Any other engine can be used by implementing
the interface.

  eng, err := ephem.NewMeeus(ephem.MeeusConfig{})
  ...
  t, err := transit.NewPlanet(eng, ephem.Sun, 0, transit.Longitude, 0, transit.Options{})
  ...
  jd, err := transit.Search(t, start, false, start+400)

Times are Julian days, ephemeris time.


Targets

  Planet        one component of a body's position: longitude, latitude,
                distance, or the rate of change of one of these.
  PlanetHouse   longitude of a body less that of a house cusp or special
                point such as the MC.
  PlanetPlanet  longitude of one body less that of another.

Longitudes and their differences live on a circle of 360 degrees, they
"roll over."  Other quantities range over an interval and offsets outside
it cannot be reached.

A target is built once and may be searched many times.  Its offset can be
changed between searches with SetOffset.  Custom targets embed Base, which
implements everything but Calc.


Speed bounds

Every target knows the least and greatest rate at which its quantity can
change.  The search uses these to take steps that cannot pass a crossing,
and to decide which way round the circle a quantity went between two
evaluations.

Longitude speeds of the bodies are tabulated in package speed.  So are the
speeds of house cusps and special points, by house system and latitude
band; these are sampled from the house formulas by the command mkhouses.
Quantities without tabulated bounds are sampled at random times over the
range of the ephemeris, see Options.  Sampled extremes are widened by a
safety factor.


The search

From the start time Search repeatedly steps to the earliest time at which
the quantity could reach the offset, at the extreme speeds, and evaluates
it there.  Steps are never shorter than the time precision of the target,
the time the fastest motion takes to cover half the value precision.  When
two successive evaluations enclose the offset, the crossing time is
interpolated linearly between them.  It is never beyond the last
evaluation.

A target may report +Inf from Calc when it cannot compute further.  The
search then ends successfully at that time.


Errors

Failures are reported as *Error, classified by Kind.  Sentinels such as
ErrBeyondUserTimeLimit work with errors.Is.  Engine errors for times
outside the ephemeris range are classified KindOutOfTimeRange; the
underlying engine error is available with errors.As.

-------------
Public domain.
*/
package transit
