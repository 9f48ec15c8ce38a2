package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thurmanmarka/moonglow"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// summary collects per-run error statistics.
type summary struct {
	abs     stats // |ours - ref|
	signed  stats // ours - ref
	rows    int
	skipped int
	// exact counts rows whose formatted illumination matches the reference
	// rounded to three decimals (fraction mode only).
	exact int
}

// row is one compared record, also written to -outcsv.
type row struct {
	ref    string
	got    string
	signed float64
}

// CSV formats:
//
// fraction mode (default):
//
//	time,fraction
//	2025-01-13T22:27:00Z,1.000
//	2025-01-14T00:00:00Z,0.998
//
// events mode:
//
//	kind,time
//	full,2025-01-13T22:27:00Z
//	last,2025-01-21T20:31:00Z
//
// Times are RFC3339 or 'YYYY-MM-DD HH:MM' in the zone given by -tz.
//
// With -meeus-year the events reference is generated from the full Meeus
// phase algorithm instead of a file.
func main() {
	var (
		tzName  = flag.String("tz", "UTC", "IANA time zone for times without an offset")
		mode    = flag.String("mode", "fraction", "reference data: fraction or events")
		refCSV  = flag.String("refcsv", "", "path to reference CSV file")
		verbose = flag.Bool("verbose", false, "print per-row errors instead of only summary")
		outCSV  = flag.String("outcsv", "", "optional path to write per-row error CSV")
		year    = flag.Int("meeus-year", 0, "use Meeus principal phases for this year as the reference (implies -mode events)")
	)
	flag.Parse()

	if *refCSV == "" && *year == 0 {
		log.Fatalf("missing -refcsv (path to reference CSV) or -meeus-year")
	}
	if *year != 0 {
		*mode = "events"
	}

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		log.Fatalf("failed to load timezone %q: %v", *tzName, err)
	}

	var compare func([]string, *time.Location) (row, error)
	var unit string
	switch strings.ToLower(*mode) {
	case "fraction":
		compare, unit = compareFraction, "fraction"
	case "events":
		compare, unit = compareEvent, "minutes"
	default:
		log.Fatalf("unsupported mode %q (use fraction or events)", *mode)
	}

	var records [][]string
	if *year != 0 {
		records = meeusEvents(*year)
	} else {
		f, err := os.Open(*refCSV)
		if err != nil {
			log.Fatalf("failed to open refcsv %q: %v", *refCSV, err)
		}
		defer f.Close()

		records, err = readRecords(f)
		if err != nil {
			log.Fatalf("refcsv %q: %v", *refCSV, err)
		}
	}

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write([]string{"ref", "got", "signed_err"}); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	var verboseOut io.Writer
	if *verbose {
		verboseOut = os.Stdout
	}

	sum := profile(records, loc, compare, verboseOut, outWriter)

	fmt.Println("=== moonglow profiler summary ===")
	fmt.Printf("Mode:   %s\n", strings.ToLower(*mode))
	if *year != 0 {
		fmt.Printf("Ref:    Meeus principal phases, %d\n", *year)
	}
	fmt.Printf("TZ:     %s\n", loc.String())
	fmt.Printf("Rows:   %d (processed), %d skipped\n", sum.rows-sum.skipped, sum.skipped)

	if sum.abs.count == 0 {
		fmt.Println("No valid rows to compute stats.")
		return
	}

	fmt.Printf("\nAbsolute error (%s):\n", unit)
	fmt.Printf("  count: %d\n", sum.abs.count)
	fmt.Printf("  min:   %.4f\n", sum.abs.min)
	fmt.Printf("  max:   %.4f\n", sum.abs.max)
	fmt.Printf("  mean:  %.4f\n", sum.abs.mean())

	fmt.Printf("\nSigned error (%s, ours - ref):\n", unit)
	fmt.Printf("  min:   %.4f\n", sum.signed.min)
	fmt.Printf("  max:   %.4f\n", sum.signed.max)
	fmt.Printf("  mean:  %.4f\n", sum.signed.mean())

	if unit == "fraction" {
		fmt.Printf("\nExact D.DDD matches: %d / %d\n", sum.exact, sum.abs.count)
	}
}

// readRecords reads a reference CSV, dropping a leading header row.
func readRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // allow variable, we validate
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	// If first row looks like a header, skip it.
	if h := strings.ToLower(strings.TrimSpace(records[0][0])); h == "time" || h == "kind" {
		records = records[1:]
	}
	return records, nil
}

// profile compares each reference row with the model. Malformed rows are
// logged and skipped.
func profile(records [][]string, loc *time.Location, compare func([]string, *time.Location) (row, error), verbose io.Writer, out *csv.Writer) summary {
	var sum summary
	for i, rec := range records {
		sum.rows++

		res, err := compare(rec, loc)
		if err != nil {
			log.Printf("row %d: %v, skipping", i+1, err)
			sum.skipped++
			continue
		}

		sum.abs.add(math.Abs(res.signed))
		sum.signed.add(res.signed)
		if res.got == res.ref {
			sum.exact++
		}

		if verbose != nil {
			fmt.Fprintf(verbose, "row %d: ref=%s got=%s err=%+.4f\n", i+1, res.ref, res.got, res.signed)
		}
		if out != nil {
			if err := out.Write([]string{res.ref, res.got, strconv.FormatFloat(res.signed, 'f', 6, 64)}); err != nil {
				log.Printf("row %d: failed to write outcsv: %v", i+1, err)
			}
		}
	}

	return sum
}

// compareFraction handles a "time,fraction" row.
func compareFraction(rec []string, loc *time.Location) (row, error) {
	if len(rec) < 2 {
		return row{}, fmt.Errorf("expected 2 columns (time,fraction), got %d", len(rec))
	}

	t, err := parseTime(strings.TrimSpace(rec[0]), loc)
	if err != nil {
		return row{}, fmt.Errorf("invalid time %q: %v", rec[0], err)
	}
	ref, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil || ref < 0 || ref > 1 {
		return row{}, fmt.Errorf("invalid fraction %q", rec[1])
	}

	phase, err := moonglow.MoonPhaseAt(t)
	if err != nil {
		return row{}, err
	}

	return row{
		ref:    moonglow.FormatThousandths(moonglow.Thousandths(ref)),
		got:    phase.Illumination,
		signed: phase.Fraction - ref,
	}, nil
}

// compareEvent handles a "kind,time" row. The model event is searched for
// starting three days before the reference time.
func compareEvent(rec []string, loc *time.Location) (row, error) {
	if len(rec) < 2 {
		return row{}, fmt.Errorf("expected 2 columns (kind,time), got %d", len(rec))
	}

	kind, err := moonglow.ParsePhaseKind(rec[0])
	if err != nil {
		return row{}, err
	}
	ref, err := parseTime(strings.TrimSpace(rec[1]), loc)
	if err != nil {
		return row{}, fmt.Errorf("invalid time %q: %v", rec[1], err)
	}

	ev, err := moonglow.NextPhase(kind, ref.Add(-72*time.Hour))
	if err != nil {
		return row{}, err
	}

	return row{
		ref:    kind.String() + " " + ref.UTC().Format("2006-01-02 15:04"),
		got:    kind.String() + " " + ev.Time.UTC().Format("2006-01-02 15:04"),
		signed: ev.Time.Sub(ref).Minutes(),
	}, nil
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, loc)
}
