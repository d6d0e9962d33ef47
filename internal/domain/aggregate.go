package domain

import "math"

// NotAvailable is the categorical sentinel for a value that cannot be derived.
const NotAvailable = "N/A"

// ForecastSummary holds the window statistics of one model, rounded to one
// decimal.
type ForecastSummary struct {
	AvgWindKnots     float64 `json:"avg_wind_knots"`
	MaxWindKnots     float64 `json:"max_wind_knots"`
	AvgGustKnots     float64 `json:"avg_gust_knots"`
	MaxGustKnots     float64 `json:"max_gust_knots"`
	AvgTempC         float64 `json:"avg_temp_c"`
	MaxTempC         float64 `json:"max_temp_c"`
	AvgPrecipProbPct float64 `json:"avg_precip_prob_pct"`
	MaxPrecipProbPct float64 `json:"max_precip_prob_pct"`
	TotalPrecipMM    float64 `json:"total_precip_mm"`
	MaxPrecipMM      float64 `json:"max_precip_mm"`
	AvgVisibilityKm  float64 `json:"avg_visibility_km"`
	MinVisibilityKm  float64 `json:"min_visibility_km"`
	HasVisibility    bool    `json:"has_visibility"`
	PrimaryWindPoint string  `json:"primary_wind_direction"`
}

// MarineSummary holds the marine window statistics. Heights are rounded to
// two decimals, the period to one.
type MarineSummary struct {
	AvgWaveHeightM        float64 `json:"avg_wave_height_m"`
	MaxWaveHeightM        float64 `json:"max_wave_height_m"`
	AvgSwellHeightM       float64 `json:"avg_swell_height_m"`
	MaxSwellHeightM       float64 `json:"max_swell_height_m"`
	AvgSwellPeriodS       float64 `json:"avg_swell_period_s"`
	PrimarySwellDirection string  `json:"primary_swell_direction"`
}

// Mean returns the arithmetic mean of vs, or 0 when vs is empty.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return sum(vs) / float64(len(vs))
}

// Max returns the largest value of vs, or 0 when vs is empty.
func Max(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := vs[0]
	for _, v := range vs[1:] {
		m = math.Max(m, v)
	}
	return m
}

// Min returns the smallest value of vs, or 0 when vs is empty.
func Min(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := vs[0]
	for _, v := range vs[1:] {
		m = math.Min(m, v)
	}
	return m
}

func sum(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

// meanDirection averages directions arithmetically and snaps the result to a
// compass point.
func meanDirection(deg []float64) string {
	if len(deg) == 0 {
		return NotAvailable
	}
	return CompassPoint(math.Round(Mean(deg)))
}

// SummarizeForecast computes the window statistics of a healthy series.
func SummarizeForecast(s ForecastSeries) ForecastSummary {
	return ForecastSummary{
		AvgWindKnots:     Round(Mean(s.WindSpeed), 1),
		MaxWindKnots:     Round(Max(s.WindSpeed), 1),
		AvgGustKnots:     Round(Mean(s.WindGust), 1),
		MaxGustKnots:     Round(Max(s.WindGust), 1),
		AvgTempC:         Round(Mean(s.Temperature), 1),
		MaxTempC:         Round(Max(s.Temperature), 1),
		AvgPrecipProbPct: Round(Mean(s.PrecipProbability), 1),
		MaxPrecipProbPct: Round(Max(s.PrecipProbability), 1),
		TotalPrecipMM:    Round(sum(s.Precipitation), 1),
		MaxPrecipMM:      Round(Max(s.Precipitation), 1),
		AvgVisibilityKm:  Round(Mean(s.Visibility), 1),
		MinVisibilityKm:  Round(Min(s.Visibility), 1),
		HasVisibility:    len(s.Visibility) > 0,
		PrimaryWindPoint: meanDirection(s.WindDirection),
	}
}

// SummarizeMarine computes the marine window statistics.
func SummarizeMarine(s MarineSeries) MarineSummary {
	return MarineSummary{
		AvgWaveHeightM:        Round(Mean(s.WaveHeight), 2),
		MaxWaveHeightM:        Round(Max(s.WaveHeight), 2),
		AvgSwellHeightM:       Round(Mean(s.SwellHeight), 2),
		MaxSwellHeightM:       Round(Max(s.SwellHeight), 2),
		AvgSwellPeriodS:       Round(Mean(s.SwellPeriod), 1),
		PrimarySwellDirection: meanDirection(s.SwellDirection),
	}
}

// ModelStats is the aggregate entry of one healthy model.
type ModelStats struct {
	Model        string          `json:"model"`
	Summary      ForecastSummary `json:"summary"`
	Coverage     float64         `json:"coverage"`
	Approximated bool            `json:"approximated,omitempty"`
}

// Consensus holds the cross-model statistics over healthy models.
type Consensus struct {
	Models           int     `json:"models"`
	MeanAvgWindKnots float64 `json:"mean_avg_wind_knots"`
	MinAvgWindKnots  float64 `json:"min_avg_wind_knots"`
	MaxAvgWindKnots  float64 `json:"max_avg_wind_knots"`
	WindSpreadKnots  float64 `json:"wind_spread_knots"`
	MaxWindKnots     float64 `json:"max_wind_knots"`
	MaxGustKnots     float64 `json:"max_gust_knots"`
	MeanAvgTempC     float64 `json:"mean_avg_temp_c"`
	MaxPrecipProbPct float64 `json:"max_precip_prob_pct"`
	MinVisibilityKm  float64 `json:"min_visibility_km"`
	HasVisibility    bool    `json:"has_visibility"`
}

// Aggregate is the combined summary of a run. Failed models are listed in
// Failures and contribute nothing to Models or Consensus.
type Aggregate struct {
	Models        []ModelStats    `json:"models"`
	Failures      []SourceError   `json:"failures,omitempty"`
	Consensus     Consensus       `json:"consensus"`
	Marine        *MarineSummary  `json:"marine,omitempty"`
	MarineFailure *SourceError    `json:"marine_failure,omitempty"`
	Station       StationSnapshot `json:"station"`
}

// Summarize builds the run aggregate from the normalized series, in the order
// the forecasts are given.
func Summarize(forecasts []ForecastSeries, marine MarineSeries, station StationSnapshot) Aggregate {
	agg := Aggregate{Station: station}

	var avgWinds, avgTemps, minVis []float64
	for _, f := range forecasts {
		if !f.OK() {
			agg.Failures = append(agg.Failures, *f.Err)
			continue
		}
		summary := SummarizeForecast(f)
		agg.Models = append(agg.Models, ModelStats{
			Model:        f.Model,
			Summary:      summary,
			Coverage:     coverage(f),
			Approximated: f.Approximated,
		})

		avgWinds = append(avgWinds, summary.AvgWindKnots)
		avgTemps = append(avgTemps, summary.AvgTempC)
		c := &agg.Consensus
		c.MaxWindKnots = math.Max(c.MaxWindKnots, summary.MaxWindKnots)
		c.MaxGustKnots = math.Max(c.MaxGustKnots, summary.MaxGustKnots)
		c.MaxPrecipProbPct = math.Max(c.MaxPrecipProbPct, summary.MaxPrecipProbPct)
		if summary.HasVisibility {
			minVis = append(minVis, summary.MinVisibilityKm)
		}
	}

	c := &agg.Consensus
	c.Models = len(agg.Models)
	c.MeanAvgWindKnots = Round(Mean(avgWinds), 1)
	c.MinAvgWindKnots = Min(avgWinds)
	c.MaxAvgWindKnots = Max(avgWinds)
	c.WindSpreadKnots = Round(c.MaxAvgWindKnots-c.MinAvgWindKnots, 1)
	c.MeanAvgTempC = Round(Mean(avgTemps), 1)
	c.MinVisibilityKm = Min(minVis)
	c.HasVisibility = len(minVis) > 0

	if marine.OK() {
		m := SummarizeMarine(marine)
		agg.Marine = &m
	} else {
		agg.MarineFailure = marine.Err
	}

	return agg
}

// coverage is the share of window hours for which wind speed is present.
func coverage(f ForecastSeries) float64 {
	if len(f.Times) == 0 {
		return 0
	}
	return Round(float64(len(f.WindSpeed))/float64(len(f.Times)), 2)
}
