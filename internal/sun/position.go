package sun

import (
	"github.com/thurmanmarka/moonglow/internal/orbit"
	"github.com/thurmanmarka/moonglow/internal/timeutil"
)

// Ecliptic is the Sun's geocentric ecliptic position. The Sun's ecliptic
// latitude is taken as zero.
type Ecliptic struct {
	Lon      float64 // ecliptic longitude, degrees (not reduced)
	Distance float64 // Earth–Sun distance, AU
}

// EclipticPosition returns the Sun's longitude and distance for the given
// fundamental arguments.
//
// Longitude is the mean longitude plus the equation of center (first two
// terms), a -0.0057° aberration constant and a small nutation term in the
// lunar node.
func EclipticPosition(a orbit.Arguments) Ecliptic {
	M := a.SunMeanAnomaly

	lon := a.SunMeanLongitude - 0.0057 +
		1.915*timeutil.SinD(M) +
		0.020*timeutil.SinD(2*M) -
		0.0048*timeutil.SinD(a.MoonNode)

	dist := 1.00014 -
		0.01671*timeutil.CosD(M) -
		0.00014*timeutil.CosD(2*M)

	return Ecliptic{
		Lon:      lon,
		Distance: dist,
	}
}
