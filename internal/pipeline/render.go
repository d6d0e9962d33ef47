package pipeline

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/dive-forecast/internal/domain"
	"github.com/couchcryptid/dive-forecast/internal/observability"
	"github.com/couchcryptid/dive-forecast/internal/render"
)

// RenderImages draws the table, chart and station images of a report. An
// image that cannot be produced is left nil and logged.
func RenderImages(r *render.Renderer, report domain.Report, logger *slog.Logger, metrics *observability.Metrics) domain.Images {
	title := report.Location.Name + " · " + report.TargetDate
	hours := render.HourAxis(report.Forecasts, report.Marine)

	draw := func(artifact string, fn func() ([]byte, error)) []byte {
		start := time.Now()
		img, err := fn()
		metrics.RenderDuration.WithLabelValues(artifact).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.RenderFailures.WithLabelValues(artifact).Inc()
			logger.Warn("image not rendered", "artifact", artifact, "error", err)
			return nil
		}
		return img
	}

	return domain.Images{
		Table: draw("table", func() ([]byte, error) {
			return r.Table(render.BuildRenderSpec(title, report.Forecasts, report.Marine, hours, r.Styles()))
		}),
		Chart: draw("chart", func() ([]byte, error) {
			return r.Chart(render.ChartInput{Title: title, Hours: hours, Forecasts: report.Forecasts, Marine: report.Marine})
		}),
		Station: draw("station", func() ([]byte, error) {
			return r.Station(report.Station, report.Location)
		}),
	}
}
