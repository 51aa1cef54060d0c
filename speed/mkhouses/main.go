/*
Command mkhouses generates houses.yaml, the table of house cusp and special
point speeds embedded by package speed.

houses.yaml is distributed with the source, so you do not need to run
mkhouses at all.  The program is provided for those interested in how the
table is made, or wanting to sample more finely.

Usage

   mkhouses [output file]
   mkhouses -v

With no argument the table is written to standard output.

For every supported house system and latitude band, cusps and special
points are computed every half degree of ARMC, for several obliquities of
the ecliptic and several latitudes spread over the band.  Speeds come from
central differences in ARMC, scaled by the sidereal rate.  The extremes are
widened by a safety factor and rounded outward to a thousandth of a degree.

Placidus and Koch cusps are undefined inside the polar circles.  Bands
where any sample fails are left out of the table.

-------------
Public domain.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strconv"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/unit"
	"gopkg.in/yaml.v3"

	"github.com/soniakeys/transit/astro"
	"github.com/soniakeys/transit/ephem"
	"github.com/soniakeys/transit/speed"
)

const versionString = "mkhouses version 0.1"
const copyrightString = "Public domain."

// sampling parameters
var (
	systems = []ephem.HouseSystem{
		ephem.Placidus, ephem.Koch, ephem.Porphyry, ephem.Regiomontanus,
		ephem.Campanus, ephem.Equal, ephem.Meridian, ephem.Morinus,
	}
	obliquities = []float64{23, 23.44, 23.9}
)

const (
	armcStep = .5   // degrees
	diffStep = 1e-4 // degrees of ARMC
	perBand  = 6    // latitudes per band
	safety   = 1.1
	// degrees of ARMC per day
	siderealRate = 360.98564736629
)

const header = `Extreme speeds of house cusps and special points, degrees per day.

Keyed by house system, then latitude band.  Each band lists 20
[min, max] pairs in point order: ASC, MC, ARMC, vertex, equatorial
ascendant, co-ascendant (Koch), co-ascendant (Munkasey), polar
ascendant, cusps 1 through 12.

Sampled every 0.5 degree of ARMC for obliquities 23, 23.44 and 23.9
degrees over the latitudes of the band, then widened by a factor 1.1.
Bands where Placidus or Koch cusps are undefined are left out.
Regenerate with: go run ./speed/mkhouses > speed/houses.yaml`

func main() {
	defer exit.Handler()
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage:
   mkhouses [output file]
   mkhouses -v
`)
	}
	vers := flag.Bool("v", false, "display version and copyright")
	flag.Parse()
	if *vers {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	var out string
	switch flag.NArg() {
	case 0:
	case 1:
		out = flag.Arg(0)
	default:
		flag.Usage()
		os.Exit(1)
	}

	// one worker per system, results collected in system order
	type result struct {
		sys   ephem.HouseSystem
		bands map[string][]speed.Bound
	}
	sCh := make(chan ephem.HouseSystem)
	rCh := make(chan result)
	go func() {
		for _, s := range systems {
			sCh <- s
		}
		close(sCh)
	}()
	nProc := runtime.GOMAXPROCS(0)
	if nProc > len(systems) {
		nProc = len(systems)
	}
	for i := 0; i < nProc; i++ {
		go func() {
			for s := range sCh {
				rCh <- result{s, sample(s)}
			}
		}()
	}
	table := map[ephem.HouseSystem]map[string][]speed.Bound{}
	for range systems {
		r := <-rCh
		table[r.sys] = r.bands
		fmt.Fprintf(os.Stderr, "%-14v %d bands\n", r.sys, len(r.bands))
	}

	if err := write(out, document(table)); err != nil {
		exit.Log(err)
	}
}

// write encodes doc to the file out, or to standard output if out is
// empty.
func write(out string, doc *yaml.Node) error {
	var w io.Writer = os.Stdout
	var f *os.File
	if out != "" {
		var err error
		if f, err = os.Create(out); err != nil {
			return err
		}
		w = f
	}
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	err := e.Encode(doc)
	if err == nil {
		err = e.Close()
	}
	if f != nil {
		if cErr := f.Close(); err == nil {
			err = cErr
		}
	}
	return err
}

// sample returns bounds for the bands where sys is defined throughout.
func sample(sys ephem.HouseSystem) map[string][]speed.Bound {
	bands := map[string][]speed.Bound{}
	for _, b := range speed.Bands {
		if bs, ok := sampleBand(sys, b); ok {
			bands[b.Key] = bs
		}
	}
	return bands
}

func sampleBand(sys ephem.HouseSystem, b speed.Band) ([]speed.Bound, bool) {
	lo := make([]float64, speed.NumPoints)
	hi := make([]float64, speed.NumPoints)
	for i := range lo {
		lo[i], hi[i] = math.Inf(1), math.Inf(-1)
	}
	h := unit.AngleFromDeg(diffStep / 2)
	for _, lat := range latitudes(b) {
		φ := unit.AngleFromDeg(lat)
		for _, e := range obliquities {
			ε := unit.AngleFromDeg(e)
			for a := 0.; a < 360; a += armcStep {
				armc := unit.AngleFromDeg(a)
				h0, x0, _ := ephem.ComputeHouses(armc-h, φ, ε, sys)
				h1, x1, _ := ephem.ComputeHouses(armc+h, φ, ε, sys)
				if !x0 || !x1 {
					return nil, false
				}
				for i := 0; i < speed.NumPoints; i++ {
					p := point(i)
					v := astro.Diff(h0.Value(p), h1.Value(p), 360) / diffStep * siderealRate
					lo[i] = math.Min(lo[i], v)
					hi[i] = math.Max(hi[i], v)
				}
			}
		}
	}
	bs := make([]speed.Bound, speed.NumPoints)
	for i := range bs {
		l, u := astro.Widen(lo[i], hi[i], safety)
		bs[i] = speed.Bound{
			Min: math.Floor(l*1000) / 1000,
			Max: math.Ceil(u*1000) / 1000,
		}
	}
	return bs, true
}

// point is the inverse of speed.PointIndex.
func point(i int) ephem.Point {
	if i < ephem.NumASCMC {
		return ephem.Point(i)
	}
	return ephem.Cusp(i - ephem.NumASCMC + 1)
}

// latitudes spreads perBand samples over b, including the edge that
// belongs to the band.
func latitudes(b speed.Band) []float64 {
	if b.Lo == b.Hi {
		return []float64{b.Lo}
	}
	d := (b.Hi - b.Lo) / perBand
	var l []float64
	if b.Closed {
		for i := 1; i <= perBand; i++ {
			l = append(l, b.Lo+float64(i)*d)
		}
		return l
	}
	for i := 0; i < perBand; i++ {
		l = append(l, b.Lo+float64(i)*d)
	}
	return append(l, b.Hi-1e-6)
}

func document(table map[ephem.HouseSystem]map[string][]speed.Bound) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode, HeadComment: header}
	for _, sys := range systems {
		bands := table[sys]
		if len(bands) == 0 {
			continue
		}
		bm := &yaml.Node{Kind: yaml.MappingNode}
		for _, b := range speed.Bands {
			bs, ok := bands[b.Key]
			if !ok {
				continue
			}
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, x := range bs {
				seq.Content = append(seq.Content, &yaml.Node{
					Kind:  yaml.SequenceNode,
					Style: yaml.FlowStyle,
					Content: []*yaml.Node{
						scalar(strconv.FormatFloat(x.Min, 'f', -1, 64)),
						scalar(strconv.FormatFloat(x.Max, 'f', -1, 64)),
					},
				})
			}
			key := scalar(b.Key)
			key.Style = yaml.DoubleQuotedStyle
			bm.Content = append(bm.Content, key, seq)
		}
		root.Content = append(root.Content, scalar(string(rune(sys))), bm)
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}
