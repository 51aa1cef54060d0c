// Public domain.

package speed

import "github.com/soniakeys/transit/ephem"

// Extreme ecliptic longitude speeds over several millennia, degrees per
// day.  Topocentric bounds add the diurnal parallax wobble to the
// geocentric ones; the Moon's wobble is large enough that it is left
// unknown.
var (
	geoLon = map[ephem.Body]Bound{
		ephem.Sun:        {.950, 1.022},
		ephem.Moon:       {11.7, 15.5},
		ephem.Mercury:    {-1.40, 2.23},
		ephem.Venus:      {-.65, 1.27},
		ephem.Mars:       {-.41, .80},
		ephem.Jupiter:    {-.14, .25},
		ephem.Saturn:     {-.085, .135},
		ephem.Uranus:     {-.043, .066},
		ephem.Neptune:    {-.029, .040},
		ephem.Pluto:      {-.030, .042},
		ephem.MeanNode:   {-.0531, -.0528},
		ephem.MeanApogee: {.1110, .1118},
	}
	topoLon = map[ephem.Body]Bound{
		ephem.Sun:        {.93, 1.04},
		ephem.Mercury:    {-1.45, 2.28},
		ephem.Venus:      {-.72, 1.33},
		ephem.Mars:       {-.46, .85},
		ephem.Jupiter:    {-.15, .26},
		ephem.Saturn:     {-.09, .14},
		ephem.Uranus:     {-.045, .068},
		ephem.Neptune:    {-.031, .042},
		ephem.Pluto:      {-.032, .044},
		ephem.MeanNode:   {-.0531, -.0528},
		ephem.MeanApogee: {.1110, .1118},
	}
	helioLon = map[ephem.Body]Bound{
		ephem.Moon:    {.90, 1.07},
		ephem.Mercury: {2.70, 6.45},
		ephem.Venus:   {1.575, 1.635},
		ephem.Earth:   {.950, 1.022},
		ephem.Mars:    {.42, .65},
		ephem.Jupiter: {.074, .0925},
		ephem.Saturn:  {.029, .038},
		ephem.Uranus:  {.0105, .013},
		ephem.Neptune: {.0058, .0062},
		ephem.Pluto:   {.0024, .0070},
	}
)

// Planet returns the bounds of the longitude speed of body as computed
// with flags.  Right ascension speeds are not tabulated and are Unknown,
// as is any body missing from the table for the requested frame.
func Planet(body ephem.Body, flags ephem.Flag) Bound {
	if flags&ephem.FlagEquatorial != 0 {
		return Unknown
	}
	t := geoLon
	switch {
	case flags&ephem.FlagHelio != 0:
		t = helioLon
	case flags&ephem.FlagTopo != 0:
		t = topoLon
	}
	if b, ok := t[body]; ok {
		return b
	}
	return Unknown
}
