package domain

// Parameter names an hourly variable using the upstream field name.
type Parameter string

// Forecast parameters.
const (
	ParamTemperature       Parameter = "temperature_2m"
	ParamPrecipProbability Parameter = "precipitation_probability"
	ParamPrecipitation     Parameter = "precipitation"
	ParamVisibility        Parameter = "visibility"
	ParamWindSpeed         Parameter = "wind_speed_10m"
	ParamWindDirection     Parameter = "wind_direction_10m"
	ParamWindGust          Parameter = "wind_gusts_10m"
)

// Marine parameters.
const (
	ParamWaveHeight        Parameter = "wave_height"
	ParamWaveDirection     Parameter = "wave_direction"
	ParamWavePeriod        Parameter = "wave_period"
	ParamWindWaveHeight    Parameter = "wind_wave_height"
	ParamWindWaveDirection Parameter = "wind_wave_direction"
	ParamWindWavePeriod    Parameter = "wind_wave_period"
	ParamSwellHeight       Parameter = "swell_wave_height"
	ParamSwellDirection    Parameter = "swell_wave_direction"
	ParamSwellPeriod       Parameter = "swell_wave_period"
)

// ForecastParameters lists the hourly variables requested per model.
var ForecastParameters = []Parameter{
	ParamTemperature,
	ParamPrecipProbability,
	ParamPrecipitation,
	ParamVisibility,
	ParamWindSpeed,
	ParamWindDirection,
	ParamWindGust,
}

// MarineParameters lists the hourly variables requested from the marine feed.
var MarineParameters = []Parameter{
	ParamWaveHeight,
	ParamWaveDirection,
	ParamWavePeriod,
	ParamWindWaveHeight,
	ParamWindWaveDirection,
	ParamWindWavePeriod,
	ParamSwellHeight,
	ParamSwellDirection,
	ParamSwellPeriod,
}

// Canonical returns the unit a parameter is carried in after normalization.
func (p Parameter) Canonical() Unit {
	switch p {
	case ParamWindSpeed, ParamWindGust:
		return UnitKnots
	case ParamTemperature:
		return UnitCelsius
	case ParamPrecipitation:
		return UnitMillimeters
	case ParamPrecipProbability:
		return UnitPercent
	case ParamVisibility:
		return UnitKilometers
	case ParamWaveHeight, ParamWindWaveHeight, ParamSwellHeight:
		return UnitMeters
	case ParamWindDirection, ParamWaveDirection, ParamWindWaveDirection, ParamSwellDirection:
		return UnitDegrees
	case ParamWavePeriod, ParamWindWavePeriod, ParamSwellPeriod:
		return UnitSeconds
	default:
		return UnitUnknown
	}
}

// RawSeries is an upstream hourly payload decoded into parallel columns.
// Values may contain nil entries for samples the upstream left null.
type RawSeries struct {
	Times  []string
	Values map[Parameter][]*float64
	Units  map[Parameter]Unit
}

// UnitOf returns the upstream unit of p, assuming the canonical unit when the
// payload did not label it.
func (r RawSeries) UnitOf(p Parameter) Unit {
	if u, ok := r.Units[p]; ok && u != UnitUnknown {
		return u
	}
	return p.Canonical()
}

// ForecastSeries is one model's canonical series over the daylight window.
// When Err is set every other field except Model and TargetDate is invalid.
type ForecastSeries struct {
	Model             string           `json:"model"`
	TargetDate        string           `json:"target_date"`
	Approximated      bool             `json:"approximated,omitempty"`
	Times             []string         `json:"times,omitempty"`
	WindSpeed         []float64        `json:"wind_speed_knots,omitempty"`
	WindGust          []float64        `json:"wind_gusts_knots,omitempty"`
	WindDirection     []float64        `json:"wind_direction_deg,omitempty"`
	Temperature       []float64        `json:"temperature_c,omitempty"`
	Precipitation     []float64        `json:"precipitation_mm,omitempty"`
	PrecipProbability []float64        `json:"precipitation_probability_pct,omitempty"`
	Visibility        []float64        `json:"visibility_km,omitempty"`
	Summary           *ForecastSummary `json:"summary,omitempty"`
	Err               *SourceError     `json:"error,omitempty"`
}

// OK reports whether the series carries data.
func (s ForecastSeries) OK() bool { return s.Err == nil }

// MarineSeries is the canonical marine series over the daylight window.
type MarineSeries struct {
	Source         string         `json:"source"`
	TargetDate     string         `json:"target_date"`
	Approximated   bool           `json:"approximated,omitempty"`
	Times          []string       `json:"times,omitempty"`
	WaveHeight     []float64      `json:"wave_height_m,omitempty"`
	WaveDirection  []float64      `json:"wave_direction_deg,omitempty"`
	WavePeriod     []float64      `json:"wave_period_s,omitempty"`
	SwellHeight    []float64      `json:"swell_wave_height_m,omitempty"`
	SwellDirection []float64      `json:"swell_wave_direction_deg,omitempty"`
	SwellPeriod    []float64      `json:"swell_wave_period_s,omitempty"`
	WindWaveHeight []float64      `json:"wind_wave_height_m,omitempty"`
	Summary        *MarineSummary `json:"summary,omitempty"`
	Err            *SourceError   `json:"error,omitempty"`
}

// OK reports whether the series carries data.
func (s MarineSeries) OK() bool { return s.Err == nil }

// NormalizeForecast selects the window from a model's raw payload and converts
// every parameter to its canonical unit.
func NormalizeForecast(model string, raw RawSeries, targetDate string, w Window) ForecastSeries {
	sel, err := w.Select(raw.Times, targetDate)
	if err != nil {
		return ForecastSeries{
			Model:      model,
			TargetDate: targetDate,
			Err:        NoDataForWindow(model, targetDate),
		}
	}

	col := func(p Parameter) []float64 {
		return Pick(raw.Values[p], sel, raw.UnitOf(p), p.Canonical())
	}

	return ForecastSeries{
		Model:             model,
		TargetDate:        targetDate,
		Approximated:      sel.Approximated,
		Times:             sel.Times(raw.Times),
		WindSpeed:         col(ParamWindSpeed),
		WindGust:          col(ParamWindGust),
		WindDirection:     col(ParamWindDirection),
		Temperature:       col(ParamTemperature),
		Precipitation:     col(ParamPrecipitation),
		PrecipProbability: col(ParamPrecipProbability),
		Visibility:        col(ParamVisibility),
	}
}

// NormalizeMarine is NormalizeForecast for the marine feed.
func NormalizeMarine(source string, raw RawSeries, targetDate string, w Window) MarineSeries {
	sel, err := w.Select(raw.Times, targetDate)
	if err != nil {
		return MarineSeries{
			Source:     source,
			TargetDate: targetDate,
			Err:        NoDataForWindow(source, targetDate),
		}
	}

	col := func(p Parameter) []float64 {
		return Pick(raw.Values[p], sel, raw.UnitOf(p), p.Canonical())
	}

	return MarineSeries{
		Source:         source,
		TargetDate:     targetDate,
		Approximated:   sel.Approximated,
		Times:          sel.Times(raw.Times),
		WaveHeight:     col(ParamWaveHeight),
		WaveDirection:  col(ParamWaveDirection),
		WavePeriod:     col(ParamWavePeriod),
		SwellHeight:    col(ParamSwellHeight),
		SwellDirection: col(ParamSwellDirection),
		SwellPeriod:    col(ParamSwellPeriod),
		WindWaveHeight: col(ParamWindWaveHeight),
	}
}

// HourLabels returns "HH:MM" labels for a series' timestamps.
func HourLabels(times []string) []string {
	labels := make([]string, len(times))
	for i, ts := range times {
		labels[i] = HourLabel(ts)
	}
	return labels
}
