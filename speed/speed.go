// Public domain.

// Package speed holds extreme speeds, in degrees per day, of the quantities
// searched by package transit.
//
// House cusps and special points move with the sidereal time, at rates that
// depend on house system and geographic latitude.  Those bounds are data,
// sampled once by the command mkhouses and embedded here as houses.yaml.
// Planet bounds are a small table in planets.go.
//
// A bound that is not known is +Inf.
package speed

import (
	_ "embed"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/soniakeys/transit/ephem"
)

// Bound is a pair of extreme speeds, degrees per day.
type Bound struct {
	Min, Max float64
}

// Unknown is the Bound of a quantity with no available speed data.
var Unknown = Bound{math.Inf(1), math.Inf(1)}

// Known reports whether both extremes are finite.
func (b Bound) Known() bool {
	return !math.IsInf(b.Min, 0) && !math.IsInf(b.Max, 0)
}

// NumPoints is the number of house objects in a table row: the special
// points ASC through polar ascendant followed by cusps 1 to 12.
const NumPoints = ephem.NumASCMC + 12

// PointIndex returns the row index of p, cusps -1..-12 going to 8..19.
// It returns -1 for values that are not house objects.
func PointIndex(p ephem.Point) int {
	if !p.Valid() {
		return -1
	}
	if p < 0 {
		return int(-p) + ephem.NumASCMC - 1
	}
	return int(p)
}

// Band is a range of absolute geographic latitude sharing one row set of
// the house table.
//
// Open bands include Lo and exclude Hi.  Closed bands exclude Lo and
// include Hi, except the degenerate band at exactly 60 degrees.
type Band struct {
	Key    string
	Lo, Hi float64
	Closed bool
}

// Bands lists the latitude bands in increasing order.  There is no band
// below 10; latitudes from the equator to 20 use band 10.  The polar band
// covering 88 to 90 is keyed "89x".
var Bands = []Band{
	{"10", 0, 20, false},
	{"20", 20, 30, false},
	{"30", 30, 40, false},
	{"40", 40, 50, false},
	{"50", 50, 60, false},
	{"60", 60, 60, true},
	{"66", 60, 66, true},
	{"70", 66, 70, true},
	{"75", 70, 75, true},
	{"80", 75, 80, true},
	{"85", 80, 85, true},
	{"88", 85, 88, true},
	{"89x", 88, 90, true},
}

// Contains reports whether the absolute latitude a is in b.
func (b Band) Contains(a float64) bool {
	if b.Closed {
		return a == b.Hi || a > b.Lo && a <= b.Hi
	}
	return a >= b.Lo && a < b.Hi
}

// BandOf returns the band of geographic latitude lat, in degrees, either
// hemisphere.  Latitudes beyond the poles clamp to the polar band.  The
// result is false only for NaN.
func BandOf(lat float64) (Band, bool) {
	if math.IsNaN(lat) {
		return Band{}, false
	}
	a := math.Abs(lat)
	for _, b := range Bands {
		if b.Contains(a) {
			return b, true
		}
	}
	return Bands[len(Bands)-1], true
}

//go:embed houses.yaml
var housesYAML []byte

// houseTable is system letter, band key, then NumPoints [min, max] pairs.
type houseTable map[string]map[string][][]float64

var houses = mustParse(housesYAML)

func mustParse(b []byte) map[ephem.HouseSystem]map[string][]Bound {
	t, err := parseHouses(b)
	if err != nil {
		panic(err)
	}
	return t
}

func parseHouses(b []byte) (map[ephem.HouseSystem]map[string][]Bound, error) {
	var raw houseTable
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("speed: houses.yaml: %w", err)
	}
	t := make(map[ephem.HouseSystem]map[string][]Bound, len(raw))
	for sk, bands := range raw {
		if len(sk) != 1 || !ephem.HouseSystem(sk[0]).Supported() {
			return nil, fmt.Errorf("speed: houses.yaml: unknown house system %q", sk)
		}
		sys := ephem.HouseSystem(sk[0])
		t[sys] = make(map[string][]Bound, len(bands))
		for bk, rows := range bands {
			if len(rows) != NumPoints {
				return nil, fmt.Errorf("speed: houses.yaml: %v band %s: %d points, want %d",
					sys, bk, len(rows), NumPoints)
			}
			bs := make([]Bound, NumPoints)
			for i, r := range rows {
				if len(r) != 2 || r[0] > r[1] {
					return nil, fmt.Errorf("speed: houses.yaml: %v band %s point %d: bad pair %v",
						sys, bk, i, r)
				}
				bs[i] = Bound{r[0], r[1]}
			}
			t[sys][bk] = bs
		}
	}
	return t, nil
}

// HouseSpeeds returns the speed bounds of house object p for the house
// system sys at geographic latitude lat in degrees.  The result is false,
// with Unknown, where the table has no data: an unsupported system, an
// invalid point, or a band where the system is undefined.
//
// Whole sign cusps move in jumps of 30 degrees and have no speed bounds.
// The special points are the same in every system, and for whole sign
// houses they come from the equal house rows.
func HouseSpeeds(sys ephem.HouseSystem, p ephem.Point, lat float64) (Bound, bool) {
	i := PointIndex(p)
	if i < 0 {
		return Unknown, false
	}
	sys = sys.Canonical()
	if sys == ephem.WholeSign {
		if p < 0 {
			return Unknown, false
		}
		sys = ephem.Equal
	}
	band, ok := BandOf(lat)
	if !ok {
		return Unknown, false
	}
	rows, ok := houses[sys][band.Key]
	if !ok {
		return Unknown, false
	}
	return rows[i], true
}

// HouseSpeed returns one extreme of HouseSpeeds, the minimum if min is
// true, or +Inf if not available.  system is a house system letter, point
// a special point 0..7 or a cusp -1..-12.
func HouseSpeed(min bool, system, point int, lat float64) float64 {
	b, _ := HouseSpeeds(ephem.HouseSystem(system), ephem.Point(point), lat)
	if min {
		return b.Min
	}
	return b.Max
}
