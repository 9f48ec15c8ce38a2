// Package orbit evaluates the fundamental arguments shared by the truncated
// lunar and solar series in internal/moon and internal/sun.
package orbit

import "github.com/thurmanmarka/moonglow/internal/timeutil"

// Arguments holds the fundamental arguments at one instant, all in degrees
// and reduced to [0, 360).
type Arguments struct {
	T float64 // Julian centuries since J2000.0

	MoonMeanLongitude float64 // L'
	SunMeanLongitude  float64 // L0
	Elongation        float64 // D, mean luni-solar elongation
	LatitudeArgument  float64 // F, argument of lunar latitude
	MoonMeanAnomaly   float64 // M'
	MoonNode          float64 // Ω, longitude of the ascending node
	SunMeanAnomaly    float64 // M
}

// ArgumentsAt computes the fundamental arguments for Julian Day jd.
//
// Each is linear in t (centuries since J2000.0). The coefficients belong to
// a published low-precision theory and must not be "improved" in isolation:
// the perturbation amplitudes in internal/moon are tuned against them.
func ArgumentsAt(jd float64) Arguments {
	t := timeutil.JulianCenturies(jd)

	return Arguments{
		T:                 t,
		MoonMeanLongitude: timeutil.Normalize360(218.3164 + 481267.8812*t),
		SunMeanLongitude:  timeutil.Normalize360(280.4665 + 36000.7698*t),
		Elongation:        timeutil.Normalize360(297.8502 + 445267.1114*t),
		LatitudeArgument:  timeutil.Normalize360(93.2721 + 483202.0175*t),
		MoonMeanAnomaly:   timeutil.Normalize360(134.9634 + 477198.8675*t),
		MoonNode:          timeutil.Normalize360(125.0445 - 1934.1363*t),
		SunMeanAnomaly:    timeutil.Normalize360(357.5291 + 35999.0503*t),
	}
}
