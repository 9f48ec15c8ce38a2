package moonglow

import (
	"math"
	"strconv"
	"time"

	"github.com/thurmanmarka/moonglow/internal/timeutil"
)

// IlluminatedFraction converts a phase angle (degrees) into the illuminated
// fraction of the lunar disk, k = (1 + cos i) / 2.
func IlluminatedFraction(phaseAngle float64) float64 {
	return (1 + timeutil.CosD(phaseAngle)) / 2
}

// Thousandths rounds k to thousandths, half up.
func Thousandths(k float64) int {
	// The conversion keeps the product from being fused into the addition.
	return int(math.Floor(float64(1000*k) + 0.5))
}

// FormatThousandths renders k999 (thousandths of full illumination) as a
// "D.DDD" string.
//
// Anything at or above 1000 is reported as "1.000", so a rounding overshoot
// such as 1001 still formats as full. Negative values cannot come out of
// Thousandths for a real phase angle; they format as "0.000".
func FormatThousandths(k999 int) string {
	switch {
	case k999 < 0:
		// Plain concatenation would give a malformed "0.00-5" here.
		return "0.000"
	case k999 < 10:
		return "0.00" + strconv.Itoa(k999)
	case k999 < 100:
		return "0.0" + strconv.Itoa(k999)
	case k999 < 1000:
		return "0." + strconv.Itoa(k999)
	default:
		return "1.000"
	}
}

// IlluminatedFractionAt returns the Moon's illuminated fraction at t as a
// "D.DDD" string, e.g. "0.042" or "1.000".
func IlluminatedFractionAt(t time.Time) string {
	g := LunarPhase(JulianDayAt(t))
	return FormatThousandths(Thousandths(IlluminatedFraction(g.PhaseAngle)))
}

// IlluminatedFractionNow is IlluminatedFractionAt for the current time.
func IlluminatedFractionNow() string {
	return IlluminatedFractionAt(time.Now())
}
