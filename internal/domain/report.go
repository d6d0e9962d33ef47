package domain

import "time"

// Images holds the rendered artifacts of a run. A nil slice means the image
// could not be produced.
type Images struct {
	Table   []byte
	Chart   []byte
	Station []byte
}

// Report is the composite output of one run. Every part may be individually
// absent or in error.
type Report struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Location    Location         `json:"location"`
	TargetDate  string           `json:"target_date"`
	Forecasts   []ForecastSeries `json:"forecasts"`
	Marine      MarineSeries     `json:"marine"`
	Station     StationSnapshot  `json:"station"`
	Aggregate   Aggregate        `json:"aggregate"`
	Assessment  Assessment       `json:"assessment"`
	Images      Images           `json:"-"`
}

// Forecast returns the series of model, if present.
func (r Report) Forecast(model string) (ForecastSeries, bool) {
	for _, f := range r.Forecasts {
		if f.Model == model {
			return f, true
		}
	}
	return ForecastSeries{}, false
}
