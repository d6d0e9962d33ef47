package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/dive-forecast/internal/domain"
	"github.com/couchcryptid/dive-forecast/internal/observability"
	"github.com/couchcryptid/dive-forecast/internal/render"
)

// ForecastSource fetches raw hourly payloads.
type ForecastSource interface {
	Forecast(ctx context.Context, model string, at domain.Coordinate) (domain.RawSeries, error)
	Marine(ctx context.Context, at domain.Coordinate) (domain.RawSeries, error)
}

// ReportSink receives every completed report.
type ReportSink interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Options holds the per-deployment inputs of a run.
type Options struct {
	Location   domain.Location
	Models     []string
	Window     domain.Window
	Thresholds domain.Thresholds
	Station    domain.StationQuery
	Timezone   *time.Location
	// MarineSource labels the marine series and its metrics.
	MarineSource string
	// TargetDate pins the forecast day (YYYY-MM-DD); empty means today in Timezone.
	TargetDate string
}

// Pipeline runs fetch, normalize, aggregate, render and publish.
type Pipeline struct {
	source   ForecastSource
	stations *domain.StationResolver
	renderer *render.Renderer
	sinks    []ReportSink
	opts     Options
	logger   *slog.Logger
	metrics  *observability.Metrics
	latest   atomic.Pointer[domain.Report]
}

// New creates a Pipeline. Sinks are called in order after every run.
func New(source ForecastSource, stations *domain.StationResolver, renderer *render.Renderer, opts Options,
	logger *slog.Logger, metrics *observability.Metrics, sinks ...ReportSink) *Pipeline {
	if opts.Window == (domain.Window{}) {
		opts.Window = domain.DaylightWindow
	}
	if opts.MarineSource == "" {
		opts.MarineSource = "marine"
	}
	return &Pipeline{
		source:   source,
		stations: stations,
		renderer: renderer,
		sinks:    sinks,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once a run has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.latest.Load() == nil {
		return errors.New("no forecast run has completed yet")
	}
	return nil
}

// Latest returns the report of the last completed run.
func (p *Pipeline) Latest() (domain.Report, bool) {
	r := p.latest.Load()
	if r == nil {
		return domain.Report{}, false
	}
	return *r, true
}

// Run executes a run immediately and then every interval until the context
// is cancelled. Failed sources never stop the loop. A non-positive interval
// runs once.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		_, err := p.RunOnce(ctx)
		return err
	}
	p.logger.Info("pipeline started", "interval", interval, "models", len(p.opts.Models))
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.RunOnce(ctx); err != nil {
			p.logger.Info("pipeline stopping", "reason", err)
			return nil
		}
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce produces one report. Source, render and sink failures are recorded
// on the report or logged; the only error returned is context cancellation.
func (p *Pipeline) RunOnce(ctx context.Context) (domain.Report, error) {
	start := time.Now()
	targetDate := p.targetDate()
	log := p.logger.With("target_date", targetDate)

	forecasts := make([]domain.ForecastSeries, len(p.opts.Models))
	var (
		marine  domain.MarineSeries
		station domain.StationSnapshot
	)

	// Each task writes only its own slot; the group never fails.
	g, gctx := errgroup.WithContext(ctx)
	for i, model := range p.opts.Models {
		g.Go(func() error {
			forecasts[i] = p.forecastSeries(gctx, model, targetDate)
			return nil
		})
	}
	g.Go(func() error {
		marine = p.marineSeries(gctx, targetDate)
		return nil
	})
	g.Go(func() error {
		station = p.stationSnapshot(gctx)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}

	agg := domain.Summarize(forecasts, marine, station)
	report := domain.Report{
		RunID:       uuid.NewString(),
		GeneratedAt: domain.Now().UTC(),
		Location:    p.opts.Location,
		TargetDate:  targetDate,
		Forecasts:   forecasts,
		Marine:      marine,
		Station:     station,
		Aggregate:   agg,
		Assessment:  domain.Assess(agg, p.opts.Thresholds),
	}
	report.Images = RenderImages(p.renderer, report, log, p.metrics)

	p.publish(ctx, report)
	p.latest.Store(&report)

	p.metrics.RunsTotal.Inc()
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.metrics.LastRunTimestamp.Set(float64(report.GeneratedAt.Unix()))
	p.metrics.ModelsHealthy.Set(float64(len(agg.Models)))

	log.Info("forecast run complete",
		"run_id", report.RunID,
		"models_healthy", len(agg.Models),
		"models_failed", len(agg.Failures),
		"marine", marine.OK(),
		"station", station.Available,
		"verdict", report.Assessment.Verdict,
		"duration", time.Since(start),
	)
	return report, nil
}

func (p *Pipeline) targetDate() string {
	if p.opts.TargetDate != "" {
		return p.opts.TargetDate
	}
	return domain.Today(p.opts.Timezone)
}

func (p *Pipeline) publish(ctx context.Context, report domain.Report) {
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, report); err != nil {
			p.logger.Error("publish report failed", "run_id", report.RunID, "error", err)
			continue
		}
		p.metrics.ReportsPublished.Inc()
	}
}
