// Public domain.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/soniakeys/transit/ephem"
	"github.com/soniakeys/transit/speed"
)

func TestPoint(t *testing.T) {
	for p := ephem.Cusp(12); p < ephem.NumASCMC; p++ {
		if got := point(speed.PointIndex(p)); got != p {
			t.Errorf("point(PointIndex(%v)) = %v", p, got)
		}
	}
}

func TestWrite(t *testing.T) {
	bs := make([]speed.Bound, speed.NumPoints)
	for i := range bs {
		bs[i] = speed.Bound{Min: -1.5, Max: float64(i)}
	}
	doc := document(map[ephem.HouseSystem]map[string][]speed.Bound{
		ephem.Porphyry: {"40": bs},
	})
	out := filepath.Join(t.TempDir(), "houses.yaml")
	if err := write(out, doc); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "# Extreme speeds") {
		t.Errorf("header missing:\n%s", b)
	}
	var m map[string]map[string][][]float64
	if err := yaml.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	rows := m["O"]["40"]
	if len(m) != 1 || len(rows) != speed.NumPoints {
		t.Fatalf("read back %v", m)
	}
	for i, r := range rows {
		if len(r) != 2 || r[0] != -1.5 || r[1] != float64(i) {
			t.Errorf("row %d = %v", i, r)
		}
	}

	if err := write(filepath.Join(t.TempDir(), "missing", "houses.yaml"), doc); err == nil {
		t.Error("write to missing directory succeeded")
	}
}
