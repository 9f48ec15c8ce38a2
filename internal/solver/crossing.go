package solver

import (
	"time"
)

// Func returns a scalar (e.g. an angle in degrees) at time t.
type Func func(t time.Time) float64

// Direction describes whether we are looking for an increasing or
// decreasing crossing of the target value.
type Direction int

const (
	// CrossingUp means f is increasing through the target value.
	CrossingUp Direction = iota
	// CrossingDown means f is decreasing through the target value.
	CrossingDown
)

// Result holds the output of a crossing search.
type Result struct {
	Time time.Time // approximate time of the crossing
	OK   bool      // true if a crossing was found
}

// FindCrossing searches for the first time in [start, end] where f crosses
// target in the given direction. It samples the interval in steps, then
// bisects the first bracket down to tol.
//
// f only needs to be continuous around the crossing: a jump in the opposite
// direction (an angle wrapping from +180 to -180) does not count.
func FindCrossing(f Func, start, end time.Time, target float64, dir Direction, steps int, tol time.Duration) Result {
	if !start.Before(end) {
		return Result{OK: false}
	}
	if steps < 2 {
		steps = 2
	}

	// Bracket first, then refine only that bracket.
	interval := end.Sub(start) / time.Duration(steps-1)

	var (
		prevT = start
		prevV = f(prevT) - target
	)

	for i := 1; i < steps; i++ {
		t := start.Add(time.Duration(i) * interval)
		if t.After(end) {
			t = end
		}
		v := f(t) - target

		if hasCrossing(prevV, v, dir) {
			return bisect(f, prevT, t, target, dir, tol)
		}

		prevT, prevV = t, v
	}

	return Result{OK: false}
}

func hasCrossing(a1, a2 float64, dir Direction) bool {
	switch dir {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		return a1*a2 <= 0
	}
}

func bisect(f Func, a, b time.Time, target float64, dir Direction, tol time.Duration) Result {
	var (
		va = f(a) - target
		vb = f(b) - target
	)

	if !hasCrossing(va, vb, dir) {
		return Result{OK: false}
	}

	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		vm := f(mid) - target

		if hasCrossing(va, vm, dir) {
			b = mid
		} else {
			a = mid
			va = vm
		}
	}

	return Result{
		Time: a.Add(b.Sub(a) / 2),
		OK:   true,
	}
}
