// Command validate checks the integrity of a report directory written by the
// forecast service: the report structure, that the aggregate and verdict can
// be recomputed from the stored series, and that the images on disk match
// what the report could render.
//
// Usage:
//
//	go run ./cmd/validate -dir out
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/couchcryptid/dive-forecast/internal/adapter/filesink"
	"github.com/couchcryptid/dive-forecast/internal/config"
	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dir := flag.String("dir", "", "report directory (OUTPUT_DIR of the forecast service)")
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dir); code != 0 {
		os.Exit(code)
	}
}

func run(dir string) int {
	fmt.Println("=== Dive Forecast Report Validation ===")
	fmt.Println()

	report, err := filesink.ReadReport(filepath.Join(dir, filesink.ReportFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	// Thresholds come from the same environment the service runs with.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateStructure(report),
		validateAggregate(report),
		validateAssessment(report, cfg.Thresholds),
		validateImages(dir, report),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Run %s: %d models, %d healthy, verdict %s\n",
		report.RunID, len(report.Forecasts), len(report.Aggregate.Models), report.Assessment.Verdict)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validateStructure(r domain.Report) *phase {
	p := &phase{name: "Phase 1: Report structure"}

	if r.RunID == "" {
		p.errorf("run_id is empty")
	}
	if r.GeneratedAt.IsZero() {
		p.errorf("generated_at is missing")
	}
	if _, err := time.Parse(time.DateOnly, r.TargetDate); err != nil {
		p.errorf("target_date %q is not YYYY-MM-DD", r.TargetDate)
	}

	seen := map[string]bool{}
	for i, f := range r.Forecasts {
		if f.Model == "" {
			p.errorf("forecast[%d]: model is empty", i)
		}
		if seen[f.Model] {
			p.errorf("forecast[%d]: duplicate model %s", i, f.Model)
		}
		seen[f.Model] = true
		if f.TargetDate != r.TargetDate {
			p.errorf("%s: target_date %s, report has %s", f.Model, f.TargetDate, r.TargetDate)
		}
		if !f.OK() {
			continue
		}
		checkSeries(p, f)
	}

	if r.Marine.OK() {
		n := len(r.Marine.Times)
		if n == 0 {
			p.errorf("marine: healthy series has no times")
		}
		checkColumns(p, "marine", n, []column{
			{"wave_height", r.Marine.WaveHeight},
			{"swell_height", r.Marine.SwellHeight},
			{"swell_period", r.Marine.SwellPeriod},
		})
	}

	s := r.Station
	if s.Available && (s.StationID == "" || s.Measurements == nil) {
		p.errorf("station: available snapshot without id or measurements")
	}
	if !s.Available && s.Measurements != nil {
		p.errorf("station: unavailable snapshot carries measurements")
	}
	return p
}

func checkSeries(p *phase, f domain.ForecastSeries) {
	n := len(f.Times)
	if n == 0 {
		p.errorf("%s: healthy series has no times", f.Model)
	}
	if f.Summary == nil {
		p.errorf("%s: healthy series has no summary", f.Model)
	}
	checkColumns(p, f.Model, n, []column{
		{"wind_speed", f.WindSpeed},
		{"wind_gust", f.WindGust},
		{"wind_direction", f.WindDirection},
		{"temperature", f.Temperature},
		{"visibility", f.Visibility},
	})
	for i, d := range f.WindDirection {
		if d < 0 || d > 360 {
			p.errorf("%s: wind_direction[%d] = %.1f out of range", f.Model, i, d)
		}
	}
}

type column struct {
	name   string
	values []float64
}

// checkColumns flags parameter columns longer than the series' hours.
func checkColumns(p *phase, owner string, hours int, cols []column) {
	for _, c := range cols {
		if len(c.values) > hours {
			p.errorf("%s: %s has %d values for %d hours", owner, c.name, len(c.values), hours)
		}
	}
}

func validateAggregate(r domain.Report) *phase {
	p := &phase{name: "Phase 2: Aggregate recomputation"}
	want := domain.Summarize(r.Forecasts, r.Marine, r.Station)
	got := r.Aggregate

	if len(want.Models) != len(got.Models) {
		p.errorf("models: stored %d, recomputed %d", len(got.Models), len(want.Models))
	} else {
		for i := range want.Models {
			if !reflect.DeepEqual(want.Models[i], got.Models[i]) {
				p.errorf("models[%d] (%s): stored %+v, recomputed %+v", i, got.Models[i].Model, got.Models[i], want.Models[i])
			}
		}
	}
	if len(want.Failures) != len(got.Failures) {
		p.errorf("failures: stored %d, recomputed %d", len(got.Failures), len(want.Failures))
	}
	if want.Consensus != got.Consensus {
		p.errorf("consensus: stored %+v, recomputed %+v", got.Consensus, want.Consensus)
	}
	if !reflect.DeepEqual(want.Marine, got.Marine) {
		p.errorf("marine summary differs from recomputation")
	}
	return p
}

func validateAssessment(r domain.Report, t domain.Thresholds) *phase {
	p := &phase{name: "Phase 3: Verdict recomputation"}
	want := domain.Assess(r.Aggregate, t)
	if want.Verdict != r.Assessment.Verdict {
		p.errorf("verdict: stored %s, recomputed %s with current thresholds", r.Assessment.Verdict, want.Verdict)
	}
	if len(want.Reasons) != len(r.Assessment.Reasons) {
		p.errorf("reasons: stored %d, recomputed %d", len(r.Assessment.Reasons), len(want.Reasons))
	}
	return p
}

func validateImages(dir string, r domain.Report) *phase {
	p := &phase{name: "Phase 4: Images on disk"}

	healthy := len(r.Aggregate.Models) > 0
	renderable := []struct {
		name     string
		expected bool
	}{
		{filesink.TableFile, healthy || r.Marine.OK()},
		{filesink.ChartFile, healthy || r.Marine.OK()},
		{filesink.StationFile, r.Station.Available},
	}
	for _, img := range renderable {
		name, expected := img.name, img.expected
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			if expected && os.IsNotExist(err) {
				p.errorf("%s: missing although the report has data for it", name)
			} else if !os.IsNotExist(err) {
				p.errorf("%s: %v", name, err)
			}
			continue
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			p.errorf("%s: not a valid PNG: %v", name, err)
			continue
		}
		if !expected {
			p.errorf("%s: present although the report has no data for it", name)
		}
		if cfg.Width == 0 || cfg.Height == 0 {
			p.errorf("%s: empty image %dx%d", name, cfg.Width, cfg.Height)
		}
	}
	return p
}
