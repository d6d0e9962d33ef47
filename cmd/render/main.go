// Command render redraws the images of a saved report without contacting any
// upstream. It reads a report.json written by the file sink and writes the
// report with fresh table, chart and station images to the output directory.
//
// Usage:
//
//	go run ./cmd/render \
//	  -report out/report.json \
//	  -out out/rerender
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/dive-forecast/internal/adapter/filesink"
	"github.com/couchcryptid/dive-forecast/internal/domain"
	"github.com/couchcryptid/dive-forecast/internal/observability"
	"github.com/couchcryptid/dive-forecast/internal/pipeline"
	"github.com/couchcryptid/dive-forecast/internal/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	reportPath := flag.String("report", "", "path to a report.json written by the forecast service")
	outDir := flag.String("out", "", "directory to write the re-rendered report and images to")
	verbose := flag.Bool("v", false, "log render failures")
	flag.Parse()

	if *reportPath == "" || *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -report, -out")
	}

	report, err := filesink.ReadReport(*reportPath)
	if err != nil {
		return err
	}
	log.Printf("loaded run %s for %s on %s", report.RunID, report.Location.Name, report.TargetDate)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = sharedobs.NewLogger("debug", "text")
	}
	report.Images = pipeline.RenderImages(
		render.NewRenderer(render.DefaultModelStyles()),
		report,
		logger,
		observability.NewMetrics(),
	)

	sink, err := filesink.New(*outDir, logger)
	if err != nil {
		return err
	}
	if err := sink.Publish(context.Background(), report); err != nil {
		return err
	}
	log.Printf("wrote %s", *outDir)

	printStats(os.Stdout, report)
	return nil
}

func printStats(w io.Writer, r domain.Report) {
	images := map[string]bool{
		filesink.TableFile:   r.Images.Table != nil,
		filesink.ChartFile:   r.Images.Chart != nil,
		filesink.StationFile: r.Images.Station != nil,
	}
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "\nVerdict: %s\n", r.Assessment.Verdict)
	for _, reason := range r.Assessment.Reasons {
		fmt.Fprintf(w, "  - %s\n", reason)
	}

	fmt.Fprintf(w, "\nModels (%d healthy, %d failed):\n", len(r.Aggregate.Models), len(r.Aggregate.Failures))
	for _, m := range r.Aggregate.Models {
		fmt.Fprintf(w, "  %-18s avg %5.1f kn  max %5.1f kn  gust %5.1f kn  coverage %3.0f%%\n",
			m.Model, m.Summary.AvgWindKnots, m.Summary.MaxWindKnots, m.Summary.MaxGustKnots, m.Coverage*100)
	}
	for _, f := range r.Aggregate.Failures {
		fmt.Fprintf(w, "  %-18s %s\n", f.Source, f.Kind)
	}

	fmt.Fprintln(w, "\nImages:")
	for _, name := range names {
		status := "ok"
		if !images[name] {
			status = "not rendered"
		}
		fmt.Fprintf(w, "  %-12s %s\n", name, status)
	}
}
