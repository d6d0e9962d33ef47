package pipeline

import (
	"context"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// forecastSeries fetches and normalizes one model. Failures are recorded on
// the series and never escape.
func (p *Pipeline) forecastSeries(ctx context.Context, model, targetDate string) domain.ForecastSeries {
	raw, err := p.source.Forecast(ctx, model, p.opts.Location.Coordinate)
	if err != nil {
		p.logger.Warn("model fetch failed", "model", model, "error", err)
		return domain.ForecastSeries{Model: model, TargetDate: targetDate, Err: domain.Unavailable(model, err)}
	}

	s := domain.NormalizeForecast(model, raw, targetDate, p.opts.Window)
	if !s.OK() {
		p.metrics.SourceFetches.WithLabelValues("forecast:"+model, "no_data").Inc()
		p.logger.Warn("model has no data for window", "model", model)
		return s
	}
	if s.Approximated {
		p.logger.Info("model series approximated from another date", "model", model, "first", s.Times[0])
	}
	sum := domain.SummarizeForecast(s)
	s.Summary = &sum
	return s
}

func (p *Pipeline) marineSeries(ctx context.Context, targetDate string) domain.MarineSeries {
	raw, err := p.source.Marine(ctx, p.opts.Location.Coordinate)
	if err != nil {
		p.logger.Warn("marine fetch failed", "error", err)
		return domain.MarineSeries{
			Source:     p.opts.MarineSource,
			TargetDate: targetDate,
			Err:        domain.Unavailable(p.opts.MarineSource, err),
		}
	}

	s := domain.NormalizeMarine(p.opts.MarineSource, raw, targetDate, p.opts.Window)
	if !s.OK() {
		p.metrics.SourceFetches.WithLabelValues(p.opts.MarineSource, "no_data").Inc()
		p.logger.Warn("marine feed has no data for window")
		return s
	}
	sum := domain.SummarizeMarine(s)
	s.Summary = &sum
	return s
}

func (p *Pipeline) stationSnapshot(ctx context.Context) domain.StationSnapshot {
	if p.stations == nil {
		return domain.UnavailableSnapshot("station observations disabled")
	}
	return p.stations.Resolve(ctx, p.opts.Location.Coordinate, p.opts.Station)
}
