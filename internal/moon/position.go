package moon

import (
	"github.com/thurmanmarka/moonglow/internal/orbit"
	"github.com/thurmanmarka/moonglow/internal/timeutil"
)

// AstronomicalUnitKm is the length of one astronomical unit in km, as used
// to normalize the lunar distance series.
const AstronomicalUnitKm = 149597870.0

// Ecliptic is the Moon's geocentric ecliptic position.
type Ecliptic struct {
	Lon      float64 // ecliptic longitude, degrees (not reduced)
	Lat      float64 // ecliptic latitude, degrees
	Distance float64 // Earth–Moon distance, AU
}

// DistanceKm returns the Earth–Moon distance in km.
func (e Ecliptic) DistanceKm() float64 {
	return e.Distance * AstronomicalUnitKm
}

// EclipticPosition evaluates the truncated lunar theory for the given
// fundamental arguments. Terms down to about 0.02° are kept in longitude and
// latitude, and down to about 500 km in distance.
//
//	L'  = mean longitude of the Moon
//	M   = mean anomaly of the Sun
//	Mm  = mean anomaly of the Moon
//	D   = mean elongation of the Moon from the Sun
//	F   = argument of latitude of the Moon
func EclipticPosition(a orbit.Arguments) Ecliptic {
	Lprime := a.MoonMeanLongitude
	M := a.SunMeanAnomaly
	Mm := a.MoonMeanAnomaly
	D := a.Elongation
	F := a.LatitudeArgument

	sin := timeutil.SinD
	cos := timeutil.CosD

	lat := 5.128*sin(F) +
		0.281*sin(Mm+F) +
		0.278*sin(Mm-F) +
		0.173*sin(2*D-F) +
		0.055*sin(2*D-Mm+F) +
		0.046*sin(2*D-Mm-F) +
		0.033*sin(2*D+F)

	lon := Lprime +
		6.289*sin(Mm) +
		1.274*sin(2*D-Mm) +
		0.658*sin(2*D) +
		0.214*sin(2*Mm) -
		0.185*sin(M) -
		0.114*sin(2*F) +
		0.059*sin(2*D-2*Mm) +
		0.057*sin(2*D-M-Mm) +
		0.053*sin(2*D+Mm) +
		0.046*sin(2*D-M) -
		0.041*sin(M-Mm) -
		0.035*sin(D) -
		0.030*sin(M+Mm)

	distKm := 385000.6 -
		20905.4*cos(Mm) -
		3699.1*cos(2*D-Mm) -
		2956.0*cos(2*D) -
		569.9*cos(2*Mm)

	return Ecliptic{
		Lon:      lon,
		Lat:      lat,
		Distance: distKm / AstronomicalUnitKm,
	}
}
