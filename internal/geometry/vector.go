// Package geometry holds the small amount of 3D vector math needed to turn
// ecliptic positions into a Sun–Moon–Earth phase angle.
package geometry

import (
	"math"

	"github.com/thurmanmarka/moonglow/internal/timeutil"
)

// Vec3 is a Cartesian vector in the geocentric ecliptic frame: x toward the
// equinox, z toward the north ecliptic pole. Units follow the input (AU).
type Vec3 struct {
	X, Y, Z float64
}

// FromEcliptic converts spherical ecliptic coordinates (degrees, distance r)
// to Cartesian. Latitude is measured out of the ecliptic plane.
func FromEcliptic(lonDeg, latDeg, r float64) Vec3 {
	cosLat := timeutil.CosD(latDeg)
	return Vec3{
		X: r * cosLat * timeutil.CosD(lonDeg),
		Y: r * cosLat * timeutil.SinD(lonDeg),
		Z: r * timeutil.SinD(latDeg),
	}
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Angle returns the angle between a and b in degrees, in [0, 180].
// The cosine is clamped, so nearly parallel vectors give 0 rather than NaN.
// Either vector being zero yields NaN; callers only pass positive distances.
func Angle(a, b Vec3) float64 {
	return timeutil.AcosD(a.Dot(b) / (a.Norm() * b.Norm()))
}
