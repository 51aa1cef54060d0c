// Public domain.

package astro_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/soniakeys/transit/astro"
	"github.com/soniakeys/unit"
)

func ExampleDiff() {
	fmt.Printf("%.1f\n", astro.Diff(359.9, .1, 360))
	fmt.Printf("%.1f\n", astro.Diff(.1, 359.9, 360))
	// Output:
	// 0.2
	// -0.2
}

func TestNorm(t *testing.T) {
	for _, c := range []struct{ x, m, want float64 }{
		{0, 360, 0},
		{360, 360, 0},
		{-1, 360, 359},
		{725, 360, 5},
		{-1e-18, 360, 0},
		{3, 2, 1},
	} {
		if got := astro.Norm(c.x, c.m); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Norm(%g, %g) = %g, want %g", c.x, c.m, got, c.want)
		}
	}
	if got := astro.Norm(math.Inf(1), 360); !math.IsInf(got, 1) {
		t.Errorf("Norm(+Inf) = %g, want +Inf", got)
	}
}

func TestForward(t *testing.T) {
	if got := astro.Forward(350, 10, 360); got != 20 {
		t.Errorf("Forward(350, 10) = %g, want 20", got)
	}
	if got := astro.Forward(10, 350, 360); got != 340 {
		t.Errorf("Forward(10, 350) = %g, want 340", got)
	}
}

func TestAsc1(t *testing.T) {
	ε := unit.AngleFromDeg(23.4392911)
	sε, cε := ε.Sincos()
	// On the equator with pole 0 the ascendant of ARMC 0 is 90°.
	asc := astro.Asc1(unit.AngleFromDeg(90), 0, sε, cε)
	if math.Abs(asc.Deg()-90) > 1e-9 {
		t.Errorf("asc = %g, want 90", asc.Deg())
	}
	// Pole 0 and x = 0 is the vernal point.
	if mc := astro.Asc1(0, 0, sε, cε); math.Abs(mc.Deg()) > 1e-9 {
		t.Errorf("mc = %g, want 0", mc.Deg())
	}
	// Extreme poles stay finite.
	a := astro.Asc1(unit.AngleFromDeg(10), unit.AngleFromDeg(90), sε, cε)
	if math.IsNaN(a.Deg()) || a < 0 || a.Deg() >= 360 {
		t.Errorf("asc at pole = %g", a.Deg())
	}
}

func TestWiden(t *testing.T) {
	for _, c := range []struct{ lo, hi, f, wlo, whi float64 }{
		{-1, 2, 1.5, -1.5, 3},
		{2, 4, 2, 1, 8},
		{-4, -2, 2, -8, -1},
	} {
		lo, hi := astro.Widen(c.lo, c.hi, c.f)
		if lo != c.wlo || hi != c.whi {
			t.Errorf("Widen(%g, %g, %g) = %g, %g, want %g, %g",
				c.lo, c.hi, c.f, lo, hi, c.wlo, c.whi)
		}
	}
}
