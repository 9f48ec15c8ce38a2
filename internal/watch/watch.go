// Package watch logs the Moon's illuminated fraction on a cron schedule.
package watch

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thurmanmarka/moonglow"
)

// Reporter logs one illumination line per run.
//
// This implements robfig/cron.Job
type Reporter struct {
	Logger   *log.Logger
	Location *time.Location
	// JSON switches each line to a JSON-encoded MoonPhase.
	JSON bool
	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Run logs the current phase. Errors are logged, never returned, because
// cron has nowhere to send them.
func (r Reporter) Run() {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	t := now().In(loc)
	phase, err := moonglow.MoonPhaseAt(t)
	if err != nil {
		logger.Printf("ERR: compute phase: %s", err)
		return
	}
	if !r.JSON {
		logger.Print(Line(phase))
		return
	}

	b, err := json.Marshal(phase)
	if err != nil {
		logger.Printf("ERR: encode phase: %s", err)
		return
	}
	logger.Print(string(b))
}

// Line formats a phase as a single log line.
func Line(p moonglow.MoonPhase) string {
	trend := "waning"
	if p.Waxing {
		trend = "waxing"
	}
	return fmt.Sprintf("%s illumination=%s name=%q trend=%s age=%.1fd",
		p.Time.Format(time.RFC3339), p.Illumination, p.Name, trend, p.AgeDays)
}

// Start schedules r on expr (standard 5-field cron syntax or a descriptor
// such as "@hourly") and starts the scheduler. The caller stops it.
func Start(expr string, r Reporter) (*cron.Cron, cron.Schedule, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, nil, fmt.Errorf("parse schedule: %w", err)
	}

	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	c.Schedule(schedule, r)
	c.Start()

	return c, schedule, nil
}
