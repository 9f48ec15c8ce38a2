package timeutil

import (
	"math"
	"time"
)

// -----------------------------
// Julian Day
// -----------------------------

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 UTC).
const J2000 = 2451545.0

// DaysPerCentury is the length of a Julian century in days.
const DaysPerCentury = 36525.0

// TAIOffset approximates the UTC→TAI difference. It is deliberately crude:
// a fixed minute, not the real leap-second count.
const TAIOffset = time.Minute

// JulianDay converts the UTC calendar components of t into a fractional
// Julian Day. Sub-second precision is dropped.
//
// January and February are counted as months 13 and 14 of the previous
// year so the Gregorian century correction lands after the leap day.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()

	y := year
	m := int(month)
	if m < 3 {
		y--
		m += 12
	}

	c := math.Floor(float64(y) / 100)
	jgc := c - math.Floor(c/4) - 2

	cjdn := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) - jgc - 1524

	hours := float64(u.Hour()) - 12
	minutes := float64(u.Minute()) + float64(u.Second())/60

	return cjdn + (hours+minutes/60)/24
}

// TAIJulianDay is JulianDay evaluated one minute later, which is how the
// phase pipeline approximates the TAI timescale.
func TAIJulianDay(t time.Time) float64 {
	return JulianDay(t.Add(TAIOffset))
}

// JulianCenturies returns Julian centuries since J2000.0.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// -----------------------------
// Angles and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

// Mod is the mathematical modulo: the result is in [0, m) for m > 0, even
// when n is negative.
func Mod(n, m float64) float64 {
	r := math.Mod(n, m)
	if r < 0 {
		r += m
	}
	// r+m can round up to m for tiny negative r; -0 also ends up here.
	if r >= m || r == 0 {
		return 0
	}
	return r
}

func Normalize360(d float64) float64 {
	return Mod(d, 360.0)
}

// SinD is sine of an angle in degrees. The angle is reduced first so very
// large arguments don't lose precision in the radian conversion.
func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(Normalize360(deg)))
}

// CosD is cosine of an angle in degrees, reduced like SinD.
func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(Normalize360(deg)))
}

// AcosD returns the inverse cosine of x in degrees, in [0, 180].
// x is clamped to [-1, 1] first; dot products of unit-ish vectors drift
// slightly outside that range and math.Acos would return NaN.
func AcosD(x float64) float64 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return Rad2Deg(math.Acos(x))
}
