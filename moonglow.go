// Package moonglow computes the Moon's illuminated fraction and phase from a
// truncated closed-form lunar/solar theory.
//
// The pipeline is:
//
//	time.Time → Julian Day (UTC + 1 min, approximating TAI)
//	          → fundamental arguments → Moon/Sun ecliptic positions
//	          → Sun–Moon–Earth phase angle
//	          → illuminated fraction k = (1 + cos i) / 2
//
// Longitudes are good to a few hundredths of a degree, which is plenty for
// an illuminated fraction rounded to three decimals.
//
// Every function here is pure and safe for concurrent use. The "Now"
// variants read the system clock once and delegate to their "At"
// counterparts.
package moonglow

import (
	"errors"
	"time"

	"github.com/thurmanmarka/moonglow/internal/moon"
	"github.com/thurmanmarka/moonglow/internal/orbit"
	"github.com/thurmanmarka/moonglow/internal/sun"
	"github.com/thurmanmarka/moonglow/internal/timeutil"
)

// SynodicMonth is the mean length of the lunar cycle in days.
const SynodicMonth = 29.530588853

// Position is a geocentric ecliptic position.
type Position struct {
	Longitude float64 // degrees, not reduced
	Latitude  float64 // degrees; always 0 for the Sun
	Distance  float64 // astronomical units
}

// Positions holds the Moon and Sun positions for a single instant.
type Positions struct {
	Moon Position
	Sun  Position
}

var (
	// ErrZeroTime is returned when a zero time.Time is passed where an
	// instant is required.
	ErrZeroTime = errors.New("zero time")

	// ErrNoPhaseEvent is returned when a phase search finds no crossing.
	ErrNoPhaseEvent = errors.New("no phase event found in search window")

	// ErrInvalidRange is returned when a time range ends before it starts.
	ErrInvalidRange = errors.New("end is before start")
)

// JulianDayAt returns the Julian Day used by the phase pipeline for t:
// UTC calendar components with one minute added as a TAI approximation,
// truncated to whole seconds.
func JulianDayAt(t time.Time) float64 {
	return timeutil.TAIJulianDay(t)
}

// JulianDayNow is JulianDayAt for the current system time.
func JulianDayNow() float64 {
	return JulianDayAt(time.Now())
}

// PositionsAt evaluates the truncated lunar and solar series at Julian Day jd.
func PositionsAt(jd float64) Positions {
	args := orbit.ArgumentsAt(jd)
	m := moon.EclipticPosition(args)
	s := sun.EclipticPosition(args)

	return Positions{
		Moon: Position{
			Longitude: m.Lon,
			Latitude:  m.Lat,
			Distance:  m.Distance,
		},
		Sun: Position{
			Longitude: s.Lon,
			Distance:  s.Distance,
		},
	}
}
