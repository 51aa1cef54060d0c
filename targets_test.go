// Public domain.

package transit_test

import (
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/transit"
	"github.com/soniakeys/transit/astro"
	"github.com/soniakeys/transit/ephem"
	"github.com/soniakeys/transit/metrics"
)

const j2000 = 2451545.

// periods of the fake lunar latitude and solar distance, days
const (
	moonLatPeriod = 27.3
	year          = 365.25
	eccentricity  = .0167
)

// fake is an engine of simple closed forms, days d from J2000:
//
//   Sun longitude    280 + d, distance 1 + .0167 sin(2πd/365.25)
//   Moon longitude   10 + 13.2d, latitude 2 sin(2πd/27.3)
//   MC               100 + 360.9856d
//
// Pluto latitude speeds are NaN and Mars fails with a data error.
type fake struct {
	lo, hi float64
	obs    *ephem.Observer
}

func newFake() *fake { return &fake{lo: j2000 - 3650, hi: j2000 + 3650} }

func (f *fake) Calc(jd float64, body ephem.Body, flags ephem.Flag) (p ephem.Position, err error) {
	if jd < f.lo {
		return p, &ephem.Error{Code: ephem.CodeRange, JD: jd, Msg: "beyond lower limit"}
	}
	if jd > f.hi {
		return p, &ephem.Error{Code: ephem.CodeRange, JD: jd, Msg: "beyond upper limit"}
	}
	d := jd - j2000
	switch body {
	case ephem.Sun:
		w := 2 * math.Pi / year
		p = ephem.Position{astro.Norm360(280 + d), 0, 1 + eccentricity*math.Sin(w*d),
			1, 0, eccentricity * w * math.Cos(w*d)}
	case ephem.Moon:
		w := 2 * math.Pi / moonLatPeriod
		p = ephem.Position{astro.Norm360(10 + 13.2*d), 2 * math.Sin(w*d), .0026,
			13.2, 2 * w * math.Cos(w*d), 0}
	case ephem.Pluto:
		p = ephem.Position{astro.Norm360(250 + .004*d), 15, 40, .004, math.NaN(), 0}
	case ephem.Mars:
		return p, &ephem.Error{Code: ephem.CodeData, JD: jd, Msg: "no data"}
	default:
		p = ephem.Position{astro.Norm360(float64(body) * 30), 1, 5, .1, 0, 0}
	}
	if flags&ephem.FlagSpeed == 0 {
		p[3], p[4], p[5] = 0, 0, 0
	}
	return p, nil
}

func (f *fake) Houses(jdUT float64, lat, lon unit.Angle, sys ephem.HouseSystem) (h ephem.Houses, err error) {
	mc := astro.Norm360(100 + 360.9856*(jdUT-j2000))
	h.ASCMC[ephem.MC] = mc
	h.Cusps[10] = mc
	h.Cusps[4] = astro.Norm360(mc + 180)
	return h, nil
}

func (f *fake) Range(ephem.Body) (float64, float64) { return f.lo, f.hi }
func (f *fake) DeltaT(float64) float64               { return 0 }

func (f *fake) Observer() (ephem.Observer, bool) {
	if f.obs == nil {
		return ephem.Observer{}, false
	}
	return *f.obs, true
}

func TestPlanetLongitude(t *testing.T) {
	p, err := transit.NewPlanet(newFake(), ephem.Sun, 0, transit.Longitude, 300, transit.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if p.MinSpeed() <= 0 || p.MinSpeed() > 1 || p.MaxSpeed() < 1 {
		t.Fatalf("speeds %g, %g", p.MinSpeed(), p.MaxSpeed())
	}
	if r, m := p.Rollover(); !r || m != 360 {
		t.Fatalf("rollover %t %g", r, m)
	}
	jd, err := transit.Search(p, j2000, false, j2000+400)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(jd-(j2000+20)) > 1e-6 {
		t.Errorf("forward jd %.7f", jd)
	}
	// a second search with a new offset, backward
	p.SetOffset(-90)
	if p.Offset() != 270 {
		t.Fatalf("offset %g", p.Offset())
	}
	jd, err = transit.Search(p, j2000, true, j2000-400)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(jd-(j2000-10)) > 1e-6 {
		t.Errorf("backward jd %.7f", jd)
	}
}

func TestPlanetLatitude(t *testing.T) {
	m := metrics.New()
	o := transit.Options{Seed: 1, Metrics: m}
	p, err := transit.NewPlanet(newFake(), ephem.Moon, 0, transit.Latitude, 1, o)
	if err != nil {
		t.Fatal(err)
	}
	// sampled from a rate of amplitude .46, widened by 1.4
	if !(p.MinSpeed() < 0 && p.MaxSpeed() > 0) || p.MaxSpeed() > .65 || p.MinSpeed() < -.65 {
		t.Fatalf("speeds %g, %g", p.MinSpeed(), p.MaxSpeed())
	}
	if p.MinOffset() != -90 || p.MaxOffset() != 90 {
		t.Fatalf("offset range %g, %g", p.MinOffset(), p.MaxOffset())
	}
	jd, err := transit.Search(p, j2000, false, j2000+30)
	if err != nil {
		t.Fatal(err)
	}
	want := j2000 + moonLatPeriod/12 // sin = 1/2
	if math.Abs(jd-want) > 1e-4 {
		t.Errorf("jd %.6f, want %.6f", jd, want)
	}
	if n := testutil.ToFloat64(m.Targets.WithLabelValues("planet")); n != 1 {
		t.Errorf("targets %g", n)
	}
	if n := testutil.ToFloat64(m.Samples); n != transit.DefaultPrecalcCount {
		t.Errorf("samples %g", n)
	}

	// latitudes never reach 100 degrees
	p.SetOffset(100)
	if _, err := transit.Search(p, j2000, false, j2000+30); !errors.Is(err, transit.ErrOutOfTimeRange) {
		t.Errorf("offset 100: %v", err)
	}
}

func TestPlanetEphemerisRange(t *testing.T) {
	eng := newFake()
	eng.hi = j2000 + 10
	p, err := transit.NewPlanet(eng, ephem.Sun, 0, transit.Longitude, 300, transit.Options{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = transit.Search(p, j2000, false, j2000+400)
	if !errors.Is(err, transit.ErrOutOfTimeRange) {
		t.Fatalf("%v", err)
	}
	var ee *ephem.Error
	if !errors.As(err, &ee) || ee.Code != ephem.CodeRange {
		t.Errorf("engine error not wrapped: %v", err)
	}
}

func TestPlanetInvalid(t *testing.T) {
	eng := newFake()
	for _, c := range []struct {
		name  string
		body  ephem.Body
		flags ephem.Flag
		comp  transit.Component
		o     transit.Options
	}{
		{"topocentric without observer", ephem.Sun, ephem.FlagTopo, transit.Longitude, transit.Options{}},
		{"heliocentric Sun", ephem.Sun, ephem.FlagHelio, transit.Longitude, transit.Options{}},
		{"heliocentric node", ephem.MeanNode, ephem.FlagHelio, transit.Longitude, transit.Options{}},
		{"geocentric Earth", ephem.Earth, 0, transit.Longitude, transit.Options{}},
		{"helio and topo", ephem.Mars, ephem.FlagHelio | ephem.FlagTopo, transit.Longitude, transit.Options{}},
		{"unknown flag", ephem.Sun, 64, transit.Longitude, transit.Options{}},
		{"unknown body", 11, 0, transit.Longitude, transit.Options{}},
		{"unknown component", ephem.Sun, 0, 6, transit.Options{}},
		{"few samples", ephem.Sun, 0, transit.Longitude, transit.Options{PrecalcCount: 50}},
		{"small safety factor", ephem.Sun, 0, transit.Longitude, transit.Options{SafetyFactor: 1.05}},
		{"NaN speeds", ephem.Pluto, 0, transit.Latitude, transit.Options{Seed: 1}},
	} {
		_, err := transit.NewPlanet(eng, c.body, c.flags, c.comp, 0, c.o)
		if !errors.Is(err, transit.ErrInvalidArgument) {
			t.Errorf("%s: %v", c.name, err)
		}
	}
	if _, err := transit.NewPlanet(nil, ephem.Sun, 0, transit.Longitude, 0, transit.Options{}); !errors.Is(err, transit.ErrInvalidArgument) {
		t.Errorf("nil engine: %v", err)
	}
	if _, err := transit.NewPlanet(eng, ephem.Sun, 0, transit.Longitude, math.NaN(), transit.Options{}); !errors.Is(err, transit.ErrInvalidArgument) {
		t.Errorf("NaN offset: %v", err)
	}

	eng.obs = &ephem.Observer{Lat: unit.AngleFromDeg(47), Lon: unit.AngleFromDeg(8)}
	if _, err := transit.NewPlanet(eng, ephem.Sun, ephem.FlagTopo, transit.Longitude, 0, transit.Options{}); err != nil {
		t.Errorf("topocentric with observer: %v", err)
	}
}

func TestPlanetSamplingEngineError(t *testing.T) {
	_, err := transit.NewPlanet(newFake(), ephem.Mars, 0, transit.Latitude, 0, transit.Options{Seed: 1})
	var e *transit.Error
	if !errors.As(err, &e) || e.Kind != transit.KindEngine {
		t.Fatalf("%v", err)
	}
	var ee *ephem.Error
	if !errors.As(err, &ee) || ee.Code != ephem.CodeData {
		t.Errorf("engine error not wrapped: %v", err)
	}
}

func TestPlanetHouse(t *testing.T) {
	lat, lon := unit.AngleFromDeg(45), unit.AngleFromDeg(0)
	m := metrics.New()
	h, err := transit.NewPlanetHouse(newFake(), ephem.Sun, 0, ephem.MC, ephem.Porphyry,
		lat, lon, 0, transit.Options{Metrics: m})
	if err != nil {
		t.Fatal(err)
	}
	// the MC overtakes the Sun, the difference falls
	if !(h.MinSpeed() < -360 && h.MaxSpeed() > -360 && h.MaxSpeed() < 0) {
		t.Fatalf("speeds %g, %g", h.MinSpeed(), h.MaxSpeed())
	}
	jd, err := transit.Search(h, j2000, false, j2000+2)
	if err != nil {
		t.Fatal(err)
	}
	// 180 - 359.9856d = 0
	want := j2000 + 180/359.9856
	if math.Abs(jd-want) > 1e-6 {
		t.Errorf("jd %.7f, want %.7f", jd, want)
	}
	if n := testutil.ToFloat64(m.Targets.WithLabelValues("planet_house")); n != 1 {
		t.Errorf("targets %g", n)
	}

	// the IC, cusp 4, half a day away
	ic, err := transit.NewPlanetHouse(newFake(), ephem.Sun, 0, ephem.Cusp(4), ephem.Porphyry,
		lat, lon, 0, transit.Options{})
	if err != nil {
		t.Fatal(err)
	}
	jd, err = transit.Search(ic, j2000, false, j2000+2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(jd-j2000) > 1e-6 && math.Abs(jd-(want+180/359.9856)) > 1e-6 {
		t.Errorf("IC jd %.7f", jd)
	}
}

func TestPlanetHouseInvalid(t *testing.T) {
	eng := newFake()
	for _, c := range []struct {
		name  string
		flags ephem.Flag
		obj   ephem.Point
		sys   ephem.HouseSystem
		lat   float64
	}{
		{"Placidus in the polar circle", 0, ephem.MC, ephem.Placidus, 70},
		{"whole sign cusp", 0, ephem.Cusp(10), ephem.WholeSign, 45},
		{"unknown system", 0, ephem.MC, 'Z', 45},
		{"cusp 13", 0, ephem.Cusp(13), ephem.Porphyry, 45},
		{"equatorial", ephem.FlagEquatorial, ephem.MC, ephem.Porphyry, 45},
		{"latitude", 0, ephem.MC, ephem.Porphyry, 95},
	} {
		_, err := transit.NewPlanetHouse(eng, ephem.Sun, c.flags, c.obj, c.sys,
			unit.AngleFromDeg(c.lat), 0, 0, transit.Options{})
		if !errors.Is(err, transit.ErrInvalidArgument) {
			t.Errorf("%s: %v", c.name, err)
		}
	}
}

func TestPlanetPlanet(t *testing.T) {
	pp, err := transit.NewPlanetPlanet(newFake(), ephem.Moon, ephem.Sun, 0, 0, transit.Options{})
	if err != nil {
		t.Fatal(err)
	}
	// Moon 13.2, Sun 1 degree per day
	if !(pp.MinSpeed() > 10 && pp.MinSpeed() < 12.2 && pp.MaxSpeed() > 12.2 && pp.MaxSpeed() < 15) {
		t.Fatalf("speeds %g, %g", pp.MinSpeed(), pp.MaxSpeed())
	}
	jd, err := transit.Search(pp, j2000, false, j2000+60)
	if err != nil {
		t.Fatal(err)
	}
	// 90 + 12.2d = 360
	want := j2000 + 270/12.2
	if math.Abs(jd-want) > 1e-6 {
		t.Errorf("conjunction jd %.7f, want %.7f", jd, want)
	}

	// the other way round the difference falls
	rev, err := transit.NewPlanetPlanet(newFake(), ephem.Sun, ephem.Moon, 0, 0, transit.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if rev.MinSpeed() != -pp.MaxSpeed() || rev.MaxSpeed() != -pp.MinSpeed() {
		t.Errorf("reversed speeds %g, %g", rev.MinSpeed(), rev.MaxSpeed())
	}
	jd, err = transit.Search(rev, j2000, false, j2000+60)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(jd-want) > 1e-6 {
		t.Errorf("reversed conjunction jd %.7f", jd)
	}

	if _, err := transit.NewPlanetPlanet(newFake(), ephem.Moon, ephem.Moon, 0, 0, transit.Options{}); !errors.Is(err, transit.ErrInvalidArgument) {
		t.Errorf("same body: %v", err)
	}
	if _, err := transit.NewPlanetPlanet(newFake(), ephem.Moon, ephem.Sun, ephem.FlagEquatorial, 0, transit.Options{}); !errors.Is(err, transit.ErrInvalidArgument) {
		t.Errorf("equatorial: %v", err)
	}
}

func TestFarOffsets(t *testing.T) {
	eng := newFake()
	lat := unit.AngleFromDeg(45)
	sun, err := transit.NewPlanet(eng, ephem.Sun, 0, transit.Longitude, 270, transit.Options{})
	if err != nil {
		t.Fatal(err)
	}
	mc, err := transit.NewPlanetHouse(eng, ephem.Sun, 0, ephem.MC, ephem.Porphyry, lat, 0, 200, transit.Options{})
	if err != nil {
		t.Fatal(err)
	}
	moon, err := transit.NewPlanetPlanet(eng, ephem.Moon, ephem.Sun, 0, 45, transit.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		name  string
		t     transit.Target
		limit float64
		want  float64
	}{
		// 280 + d = 270 + 360
		{"Sun 350 degrees ahead", sun, 400, 350},
		// 180 - 359.9856d = 200 - 360
		{"MC 340 degrees ahead", mc, 2, 340 / 359.9856},
		// 90 + 12.2d = 45 + 360
		{"Moon 315 degrees ahead", moon, 60, 315 / 12.2},
	} {
		jd, err := transit.Search(c.t, j2000, false, j2000+c.limit)
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if math.Abs(jd-j2000-c.want) > 1e-6 {
			t.Errorf("%s: jd - j2000 = %.7f, want %.7f", c.name, jd-j2000, c.want)
		}
	}
}

func TestPlanetStation(t *testing.T) {
	// the latitude turns where its speed is 0, a quarter period out
	p, err := transit.NewPlanet(newFake(), ephem.Moon, 0, transit.LatitudeSpeed, 0, transit.Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if r, _ := p.Rollover(); r || !(p.MinSpeed() < 0 && p.MaxSpeed() > 0) {
		t.Fatalf("rollover %t, speeds %g, %g", r, p.MinSpeed(), p.MaxSpeed())
	}
	jd, err := transit.Search(p, j2000, false, j2000+30)
	if err != nil {
		t.Fatal(err)
	}
	if want := j2000 + moonLatPeriod/4; math.Abs(jd-want) > 1e-4 {
		t.Errorf("station jd %.6f, want %.6f", jd, want)
	}

	// a constant longitude speed never reaches 0
	p, err = transit.NewPlanet(newFake(), ephem.Moon, 0, transit.LongitudeSpeed, 0, transit.Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := transit.Search(p, j2000, false, j2000+30); !errors.Is(err, transit.ErrOutOfTimeRange) {
		t.Errorf("longitude speed: %v", err)
	}
}

func TestPlanetDistance(t *testing.T) {
	p, err := transit.NewPlanet(newFake(), ephem.Sun, 0, transit.Distance, 1.01, transit.Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if p.MinOffset() != 0 || !math.IsInf(p.MaxOffset(), 1) {
		t.Fatalf("offset range %g, %g", p.MinOffset(), p.MaxOffset())
	}
	jd, err := transit.Search(p, j2000, false, j2000+100)
	if err != nil {
		t.Fatal(err)
	}
	want := j2000 + math.Asin(.01/eccentricity)*year/(2*math.Pi)
	if math.Abs(jd-want) > 1e-4 {
		t.Errorf("jd %.6f, want %.6f", jd, want)
	}

	// and back below 1.01 half a year later
	jd, err = transit.Search(p, want+1, false, j2000+365)
	if err != nil {
		t.Fatal(err)
	}
	if want := j2000 + year/2 - (want - j2000); math.Abs(jd-want) > 1e-4 {
		t.Errorf("falling jd %.6f, want %.6f", jd, want)
	}
}

func TestPlanetHouseWholeSign(t *testing.T) {
	h, err := transit.NewPlanetHouse(newFake(), ephem.Sun, 0, ephem.MC, ephem.WholeSign,
		unit.AngleFromDeg(45), 0, 0, transit.Options{})
	if err != nil {
		t.Fatal(err)
	}
	jd, err := transit.Search(h, j2000, false, j2000+2)
	if err != nil {
		t.Fatal(err)
	}
	if want := j2000 + 180/359.9856; math.Abs(jd-want) > 1e-6 {
		t.Errorf("jd %.7f, want %.7f", jd, want)
	}
}
