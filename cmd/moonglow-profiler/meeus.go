package main

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonphase"

	"github.com/thurmanmarka/moonglow"
)

// deltaT is TT - UT for the 2020s. Meeus phase times are in TT.
const deltaT = 69 * time.Second

var meeusPhases = []struct {
	name string
	fn   func(float64) float64
}{
	{"new", moonphase.New},
	{"first", moonphase.First},
	{"full", moonphase.Full},
	{"last", moonphase.Last},
}

// meeusEvents returns "kind,time" rows for every principal phase Meeus
// places in the given calendar year, in UTC.
func meeusEvents(year int) [][]string {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	// Each step lands on the next lunation; moonphase snaps a decimal year
	// to the nearest one.
	step := moonglow.SynodicMonth / 365.25

	var rows [][]string
	for _, p := range meeusPhases {
		var last time.Time
		for i := -1; i <= 13; i++ {
			jde := p.fn(float64(year) + float64(i)*step)
			t := julian.JDToTime(jde).Add(-deltaT).UTC().Round(time.Second)
			if t.Before(start) || !t.Before(end) || t.Equal(last) {
				continue
			}
			last = t
			rows = append(rows, []string{p.name, t.Format(time.RFC3339)})
		}
	}
	return rows
}
