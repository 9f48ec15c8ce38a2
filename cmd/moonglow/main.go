package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	lev "github.com/agnivade/levenshtein"
	"github.com/dustin/go-humanize"

	"github.com/thurmanmarka/moonglow"
	"github.com/thurmanmarka/moonglow/internal/config"
	"github.com/thurmanmarka/moonglow/internal/watch"
)

var subcommands = []string{"phase", "next", "watch"}

func main() {
	log.SetFlags(0)

	// - No args, or first arg starts with "-": print the illuminated fraction.
	// - Otherwise treat the first arg as a subcommand (e.g. "phase").
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runIllumination(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "phase":
		runPhase(os.Args[2:])
	case "next":
		runNext(os.Args[2:])
	case "watch":
		runWatch(os.Args[2:])
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		if s := suggest(os.Args[1], subcommands); s != "" {
			fmt.Fprintf(os.Stderr, "did you mean %q?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `moonglow – how much of the Moon is lit

Usage:
  moonglow [flags]             # illuminated fraction as D.DDD (default: now)
  moonglow phase [flags]       # full phase report
  moonglow next [flags]        # upcoming new/quarter/full moons
  moonglow watch [flags]       # log the illuminated fraction on a cron schedule

Default mode flags:
  -time string
        time in RFC3339 or 'YYYY-MM-DDTHH:MM' (optional, defaults to now)
  -tz string
        IANA time zone used to read -time (default "UTC")
  -json
        output result as JSON

For subcommand flags:
  moonglow <subcommand> -h
`)
}

// suggest returns the known name closest to s, or "" when nothing is
// within a few edits.
func suggest(s string, known []string) string {
	const maxDistance = 3

	best := ""
	bestDist := maxDistance + 1
	for _, k := range known {
		if d := lev.ComputeDistance(strings.ToLower(s), k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// ---------------------
// Default mode
// ---------------------

func runIllumination(args []string) {
	fs := flag.NewFlagSet("moonglow", flag.ExitOnError)

	tzName := fs.String("tz", "UTC", "IANA time zone name used to read -time")
	timeStr := fs.String("time", "", "time in RFC3339 or 'YYYY-MM-DDTHH:MM' (optional, defaults to now)")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: moonglow [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	t, _ := resolveTime(*timeStr, *tzName)

	if *jsonOut {
		printJSON(struct {
			Time         time.Time `json:"time"`
			JulianDay    float64   `json:"julian_day"`
			Illumination string    `json:"illumination"`
		}{t, moonglow.JulianDayAt(t), moonglow.IlluminatedFractionAt(t)})
		return
	}

	fmt.Println(moonglow.IlluminatedFractionAt(t))
}

// ---------------------
// Phase subcommand
// ---------------------

func runPhase(args []string) {
	fs := flag.NewFlagSet("phase", flag.ExitOnError)

	tzName := fs.String("tz", "UTC", "IANA time zone name (e.g. America/Phoenix)")
	timeStr := fs.String("time", "", "Time in RFC3339 or 'YYYY-MM-DDTHH:MM' (optional, defaults to now in tz)")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: moonglow phase [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	tLocal, loc := resolveTime(*timeStr, *tzName)

	phase, err := moonglow.MoonPhaseAt(tLocal)
	if err != nil {
		log.Fatalf("MoonPhaseAt failed: %v", err)
	}

	if *jsonOut {
		printJSON(phase)
		return
	}

	fmt.Printf("Moon phase at %s (%s)\n", phase.Time.Format(time.RFC3339), loc.String())
	fmt.Printf("  Name        : %s\n", phase.Name)
	fmt.Printf("  Illuminated : %s (%.1f%%)\n", phase.Illumination, phase.Fraction*100)
	fmt.Printf("  Phase angle : %.2f°\n", phase.PhaseAngle)
	fmt.Printf("  Elongation  : %.2f°\n", phase.Elongation)
	fmt.Printf("  Age         : %.1f days\n", phase.AgeDays)
	if phase.Waxing {
		fmt.Printf("  Trend       : Waxing (illumination increasing)\n")
	} else {
		fmt.Printf("  Trend       : Waning (illumination decreasing)\n")
	}
}

// ---------------------
// Next subcommand
// ---------------------

func runNext(args []string) {
	fs := flag.NewFlagSet("next", flag.ExitOnError)

	kindS := fs.String("kind", "all", "phase: new, first, full, last, or all")
	tzName := fs.String("tz", "UTC", "IANA time zone for input and output times")
	timeStr := fs.String("time", "", "search start in RFC3339 or 'YYYY-MM-DDTHH:MM' (optional, defaults to now)")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: moonglow next [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	from, loc := resolveTime(*timeStr, *tzName)

	kinds := moonglow.PhaseKinds
	if !strings.EqualFold(*kindS, "all") {
		kind, err := moonglow.ParsePhaseKind(*kindS)
		if err != nil {
			log.Fatalf("invalid -kind: %v", err)
		}
		kinds = []moonglow.PhaseKind{kind}
	}

	var events []moonglow.PhaseEvent
	for _, kind := range kinds {
		ev, err := moonglow.NextPhase(kind, from)
		if err != nil {
			log.Fatalf("error finding %s: %v", kind, err)
		}
		events = append(events, ev)
	}
	sortEvents(events)

	if *jsonOut {
		printJSON(events)
		return
	}

	fmt.Printf("Upcoming phases after %s (%s)\n", from.Format(time.RFC3339), loc.String())
	for _, ev := range events {
		fmt.Printf("  %-13s  %s  (%s)\n",
			ev.Kind, ev.Time.In(loc).Format("Mon 2006-01-02 15:04"),
			humanize.RelTime(ev.Time, from, "ago", "from now"))
	}
}

func sortEvents(events []moonglow.PhaseEvent) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
}

// ---------------------
// Watch subcommand
// ---------------------

func runWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	configPath := fs.String("config", "", "path to YAML config file (optional)")
	schedule := fs.String("schedule", "", "cron expression, overrides config (e.g. '*/30 * * * *' or '@hourly')")
	tzName := fs.String("tz", "", "IANA time zone for schedule and log timestamps, overrides config")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: moonglow watch [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *schedule != "" {
		cfg.Watch.Schedule = *schedule
	}
	if *tzName != "" {
		cfg.Watch.Timezone = *tzName
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := log.New(os.Stdout, "", 0)
	reporter := watch.Reporter{
		Logger:   logger,
		Location: cfg.Location(),
		JSON:     cfg.Output.JSON,
	}

	c, sched, err := watch.Start(cfg.Watch.Schedule, reporter)
	if err != nil {
		log.Fatalf("start watch: %v", err)
	}

	now := time.Now().In(cfg.Location())
	log.Printf("watching %q (%s), next run %s", cfg.Watch.Schedule, cfg.Watch.Timezone,
		sched.Next(now).Format(time.RFC3339))

	// Report once right away so the first line doesn't wait for the schedule.
	reporter.Run()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	<-c.Stop().Done()
	log.Println("watch stopped")
}

// ---------------------
// Shared helpers
// ---------------------

// resolveTime parses timeStr in tzName, or returns now in tzName when
// timeStr is empty. It exits on bad input.
func resolveTime(timeStr, tzName string) (time.Time, *time.Location) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Fatalf("invalid time zone %q: %v", tzName, err)
	}

	if timeStr == "" {
		return time.Now().In(loc), loc
	}

	t, err := parseTime(timeStr, loc)
	if err != nil {
		log.Fatalf("could not parse -time %q: %v", timeStr, err)
	}
	return t, loc
}

// parseTime tries a couple of common layouts in loc.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}

	var (
		t        time.Time
		parseErr error
	)
	for _, layout := range layouts {
		t, parseErr = time.ParseInLocation(layout, s, loc)
		if parseErr == nil {
			return t, nil
		}
	}
	return time.Time{}, parseErr
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}
