package moonglow

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/thurmanmarka/moonglow/internal/solver"
)

// PhaseKind identifies one of the four principal lunar phases.
type PhaseKind int

const (
	// NewMoon is elongation 0°.
	NewMoon PhaseKind = iota

	// FirstQuarter is elongation 90°.
	FirstQuarter

	// FullMoon is elongation 180°.
	FullMoon

	// LastQuarter is elongation 270°.
	LastQuarter
)

// PhaseKinds lists the principal phases in cycle order.
var PhaseKinds = []PhaseKind{NewMoon, FirstQuarter, FullMoon, LastQuarter}

// PhaseEvent is the instant a principal phase occurs.
type PhaseEvent struct {
	Kind PhaseKind `json:"kind"`
	Time time.Time `json:"time"`
}

const (
	eventSampleStep = 6 * time.Hour
	eventTolerance  = 30 * time.Second
	// one synodic month plus a margin for the month-to-month variation
	eventSearchSpan = time.Duration((SynodicMonth + 2) * 24 * float64(time.Hour))
)

// Elongation returns the target elongation of the phase in degrees.
func (k PhaseKind) Elongation() float64 {
	return float64(k) * 90.0
}

func (k PhaseKind) String() string {
	switch k {
	case NewMoon:
		return "New Moon"
	case FirstQuarter:
		return "First Quarter"
	case FullMoon:
		return "Full Moon"
	case LastQuarter:
		return "Last Quarter"
	default:
		return fmt.Sprintf("PhaseKind(%d)", int(k))
	}
}

// MarshalText encodes the kind by its name, so JSON output reads "Full Moon"
// instead of 2.
func (k PhaseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParsePhaseKind accepts the short names used on command lines and in query
// strings ("new", "first", "full", "last") as well as the full names.
func ParsePhaseKind(s string) (PhaseKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new", "new moon":
		return NewMoon, nil
	case "first", "first quarter":
		return FirstQuarter, nil
	case "full", "full moon":
		return FullMoon, nil
	case "last", "last quarter", "third", "third quarter":
		return LastQuarter, nil
	default:
		return 0, fmt.Errorf("unknown phase %q (use new, first, full or last)", s)
	}
}

// NextPhase finds the first occurrence of the given phase strictly after
// the given time. The result is accurate to well under a minute relative to
// the model; the model itself is good to a few minutes.
func NextPhase(kind PhaseKind, after time.Time) (PhaseEvent, error) {
	if after.IsZero() {
		return PhaseEvent{}, ErrZeroTime
	}

	target := kind.Elongation()

	// Signed distance from the target in (-180, 180]. It increases through 0
	// at the event and jumps back down half a cycle later, which the solver
	// ignores for an upward crossing.
	offset := func(t time.Time) float64 {
		e := LunarPhase(JulianDayAt(t)).Elongation
		return 180 - math.Mod(target-e+540, 360)
	}

	end := after.Add(eventSearchSpan)
	steps := int(eventSearchSpan/eventSampleStep) + 1

	res := solver.FindCrossing(offset, after, end, 0, solver.CrossingUp, steps, eventTolerance)
	if !res.OK {
		return PhaseEvent{}, fmt.Errorf("%s after %s: %w", kind, after.Format(time.RFC3339), ErrNoPhaseEvent)
	}

	return PhaseEvent{
		Kind: kind,
		Time: res.Time.Round(time.Second).In(after.Location()),
	}, nil
}

// PhaseEvents lists every principal phase in [start, end), in time order.
func PhaseEvents(start, end time.Time) ([]PhaseEvent, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrZeroTime
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	// Seed each kind with its first occurrence, then step each forward by
	// roughly a synodic month as it is consumed.
	next := make([]PhaseEvent, len(PhaseKinds))
	for i, kind := range PhaseKinds {
		ev, err := NextPhase(kind, start.Add(-time.Second))
		if err != nil {
			return nil, err
		}
		next[i] = ev
	}

	var events []PhaseEvent
	for {
		earliest := 0
		for i := range next {
			if next[i].Time.Before(next[earliest].Time) {
				earliest = i
			}
		}

		ev := next[earliest]
		if !ev.Time.Before(end) {
			break
		}
		if !ev.Time.Before(start) {
			events = append(events, ev)
		}

		// The same phase can't recur within three weeks.
		following, err := NextPhase(ev.Kind, ev.Time.Add(21*24*time.Hour))
		if err != nil {
			return nil, err
		}
		next[earliest] = following
	}

	return events, nil
}
