package moonglow

import (
	"math"
	"time"

	"github.com/thurmanmarka/moonglow/internal/geometry"
	"github.com/thurmanmarka/moonglow/internal/timeutil"
)

// PhaseGeometry is the Sun–Moon geometry at one instant.
type PhaseGeometry struct {
	// Elongation is the Moon's longitude minus the Sun's, in [0, 360).
	// 0 is new moon, 180 full moon; below 180 the Moon is waxing.
	Elongation float64

	// PhaseAngle is the Sun–Moon–Earth angle in [0, 180].
	// 0 is fully lit, 180 is dark.
	PhaseAngle float64
}

// MoonPhase describes the illuminated fraction and qualitative phase
// of the Moon at a given instant.
type MoonPhase struct {
	Time         time.Time `json:"time"`         // the instant this phase is evaluated at
	JulianDay    float64   `json:"julian_day"`   // TAI-adjusted Julian Day
	Fraction     float64   `json:"fraction"`     // illuminated fraction [0..1], 0=new, 1=full
	Illumination string    `json:"illumination"` // Fraction rounded and formatted as "D.DDD"
	Elongation   float64   `json:"elongation"`   // ecliptic longitude difference Moon-Sun, degrees [0..360)
	PhaseAngle   float64   `json:"phase_angle"`  // Sun-Moon-Earth angle, degrees [0..180]
	Waxing       bool      `json:"waxing"`       // true if waxing (illumination increasing), false if waning
	AgeDays      float64   `json:"age_days"`     // approximate days since new moon
	Name         string    `json:"name"`         // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// LunarPhase computes the elongation and phase angle at Julian Day jd.
//
// The phase angle is measured at the Moon between the directions to Earth
// and to the Sun, i.e. between the geocentric Moon vector and the
// Moon-minus-Sun vector.
func LunarPhase(jd float64) PhaseGeometry {
	pos := PositionsAt(jd)

	moonVec := geometry.FromEcliptic(pos.Moon.Longitude, pos.Moon.Latitude, pos.Moon.Distance)
	sunVec := geometry.FromEcliptic(pos.Sun.Longitude, 0, pos.Sun.Distance)

	return PhaseGeometry{
		Elongation: timeutil.Normalize360(pos.Moon.Longitude - pos.Sun.Longitude),
		PhaseAngle: geometry.Angle(moonVec, moonVec.Sub(sunVec)),
	}
}

// MoonPhaseAt computes the Moon's illuminated fraction and qualitative phase
// at the given time. Phase is a global property (independent of observer
// location), so only the UTC instant matters; the original time is returned.
func MoonPhaseAt(t time.Time) (MoonPhase, error) {
	if t.IsZero() {
		return MoonPhase{}, ErrZeroTime
	}

	jd := JulianDayAt(t)
	g := LunarPhase(jd)

	fraction := IlluminatedFraction(g.PhaseAngle)
	waxing := g.Elongation < 180.0

	return MoonPhase{
		Time:         t,
		JulianDay:    jd,
		Fraction:     fraction,
		Illumination: FormatThousandths(Thousandths(fraction)),
		Elongation:   g.Elongation,
		PhaseAngle:   g.PhaseAngle,
		Waxing:       waxing,
		AgeDays:      g.Elongation / 360.0 * SynodicMonth,
		Name:         classifyMoonPhaseName(fraction, waxing),
	}, nil
}

func classifyMoonPhaseName(f float64, waxing bool) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return "New Moon"
	case f > 1-eps:
		return "Full Moon"
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case f < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default: // f > 0.5 but not near 1
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
