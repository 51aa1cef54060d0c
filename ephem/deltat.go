// Public domain.

package ephem

import (
	"github.com/soniakeys/meeus/v3/deltat"
	"github.com/soniakeys/meeus/v3/julian"
)

// Table 10.A of Meeus covers 1620 to 1998.  Outside it ΔT comes from the
// Espenak-Meeus polynomials.
var (
	jd1620 = julian.CalendarGregorianToJD(1620, 1, 1)
	jd1998 = julian.CalendarGregorianToJD(1998, 1, 1)
)

// DeltaT returns ET - UT in days for the Julian day jd.
func DeltaT(jd float64) float64 {
	if jd >= jd1620 && jd < jd1998 {
		return float64(deltat.Interp10A(jd)) / 86400
	}
	return deltaTPoly(2000+(jd-2451545)/365.25) / 86400
}

// deltaTPoly returns ΔT in seconds for decimal year y.
func deltaTPoly(y float64) float64 {
	switch {
	case y < -500 || y >= 2150:
		u := (y - 1820) / 100
		return -20 + 32*u*u
	case y < 500:
		u := y / 100
		return 10583.6 + u*(-1014.41+u*(33.78311+u*(-5.952053+
			u*(-.1798452+u*(.022174192+u*.0090316521)))))
	case y < 1600:
		u := (y - 1000) / 100
		return 1574.2 + u*(-556.01+u*(71.23472+u*(.319781+
			u*(-.8503463+u*(-.005050998+u*.0083572073)))))
	case y < 1700:
		t := y - 1600
		return 120 + t*(-.9808+t*(-.01532+t/7129))
	case y < 2005:
		// only reached for 1998..2005; 1700..1998 is tabulated
		t := y - 2000
		return 63.86 + t*(.3345+t*(-.060374+t*(.0017275+
			t*(.000651814+t*.00002373599))))
	case y < 2050:
		t := y - 2000
		return 62.92 + t*(.32217+t*.005589)
	}
	u := (y - 1820) / 100
	return -20 + 32*u*u - .5628*(2150-y)
}
