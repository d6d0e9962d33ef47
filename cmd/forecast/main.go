// Command forecast builds the dive go/no-go report. With RUN_INTERVAL unset it
// runs once and exits; otherwise it serves the latest report over HTTP and
// refreshes it on every interval.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/dive-forecast/internal/adapter/cache"
	"github.com/couchcryptid/dive-forecast/internal/adapter/filesink"
	httpadapter "github.com/couchcryptid/dive-forecast/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/dive-forecast/internal/adapter/kafka"
	"github.com/couchcryptid/dive-forecast/internal/adapter/metar"
	"github.com/couchcryptid/dive-forecast/internal/adapter/openmeteo"
	"github.com/couchcryptid/dive-forecast/internal/adapter/stations"
	"github.com/couchcryptid/dive-forecast/internal/adapter/upstream"
	"github.com/couchcryptid/dive-forecast/internal/config"
	"github.com/couchcryptid/dive-forecast/internal/domain"
	"github.com/couchcryptid/dive-forecast/internal/observability"
	"github.com/couchcryptid/dive-forecast/internal/pipeline"
	"github.com/couchcryptid/dive-forecast/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("service", "dive-forecast")
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("forecast failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Upstream payload cache: Redis when REDIS_ADDR is set, in-memory otherwise.
	var store cache.Store
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err != nil {
			return err
		}
		defer closeWith(logger, "redis", rc.Close)
		store = rc
		logger.Info("upstream cache: redis", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	} else {
		store = cache.NewMemory(cfg.CacheSize, cfg.CacheTTL, clockwork.NewRealClock())
		logger.Info("upstream cache: memory", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	}

	fetcher := upstream.NewFetcher(cfg.HTTPTimeout, cfg.UpstreamRPS, store, metrics, logger)
	source := openmeteo.NewClient(fetcher, openmeteo.Options{
		ForecastURL:  cfg.OpenMeteoURL,
		MarineURL:    cfg.OpenMeteoMarineURL,
		Timezone:     cfg.Timezone.String(),
		ForecastDays: cfg.ForecastDays,
		MarineDays:   cfg.MarineForecastDays,
	})

	query := domain.StationQuery{FixedID: cfg.StationICAO}
	if cfg.StationICAO == "" && cfg.StationCatalog != "" {
		candidates, err := stations.LoadCatalog(cfg.StationCatalog)
		if err != nil {
			return err
		}
		query.Candidates = candidates
		logger.Info("station catalog loaded", "path", cfg.StationCatalog, "stations", len(candidates))
	}
	var resolver *domain.StationResolver
	if query.FixedID != "" || len(query.Candidates) > 0 {
		resolver = domain.NewStationResolver(metar.NewClient(fetcher, cfg.MetarURL), cfg.StationRadiusKm, logger)
	} else {
		logger.Info("station observations disabled")
	}

	var sinks []pipeline.ReportSink
	if cfg.OutputDir != "" {
		fs, err := filesink.New(cfg.OutputDir, logger)
		if err != nil {
			return err
		}
		sinks = append(sinks, fs)
	}
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaReportTopic, logger)
		defer closeWith(logger, "kafka writer", writer.Close)
		sinks = append(sinks, writer)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaReportTopic)
	}

	// A single run pins its day at startup; the periodic loop follows the clock.
	targetDate := cfg.TargetDate
	if cfg.RunInterval == 0 {
		targetDate = cfg.Today()
		logger.Info("forecasting", "location", cfg.Location.Name, "date", targetDate)
	}

	p := pipeline.New(source, resolver, render.NewRenderer(render.DefaultModelStyles()), pipeline.Options{
		Location:     cfg.Location,
		Models:       cfg.Models,
		Thresholds:   cfg.Thresholds,
		Station:      query,
		Timezone:     cfg.Timezone,
		MarineSource: openmeteo.MarineSource,
		TargetDate:   targetDate,
	}, logger, metrics, sinks...)

	if cfg.RunInterval == 0 {
		report, err := p.RunOnce(ctx)
		if err != nil {
			return err
		}
		logger.Info("report ready", "verdict", report.Assessment.Verdict, "reasons", report.Assessment.Reasons)
		return nil
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start forecast loop.
	go func() {
		if err := p.Run(ctx, cfg.RunInterval); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
	return nil
}

func closeWith(logger *slog.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		logger.Error(name+" close error", "error", err)
	}
}
