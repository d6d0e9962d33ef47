package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(model string, wind ...float64) ForecastSeries {
	times := make([]string, len(wind))
	for i := range wind {
		times[i] = fmt.Sprintf("2024-05-01T%02d:00", 8+i)
	}
	return ForecastSeries{Model: model, TargetDate: "2024-05-01", Times: times, WindSpeed: wind}
}

func TestMeanMax_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Max(nil))
	assert.Equal(t, 0.0, Min([]float64{}))
}

func TestSummarizeForecast(t *testing.T) {
	s := ForecastSeries{
		WindSpeed:         []float64{10, 20, 30},
		WindGust:          []float64{14, 26.26, 38},
		WindDirection:     []float64{350, 10},
		Temperature:       []float64{21.04, 23.1},
		PrecipProbability: []float64{0, 40},
		Precipitation:     []float64{0.2, 0.3},
	}

	got := SummarizeForecast(s)
	assert.Equal(t, 20.0, got.AvgWindKnots)
	assert.Equal(t, 30.0, got.MaxWindKnots)
	assert.Equal(t, 26.1, got.AvgGustKnots)
	assert.Equal(t, 38.0, got.MaxGustKnots)
	assert.Equal(t, 22.1, got.AvgTempC)
	assert.Equal(t, 40.0, got.MaxPrecipProbPct)
	assert.Equal(t, 0.5, got.TotalPrecipMM)
	assert.False(t, got.HasVisibility)
	assert.Equal(t, "S", got.PrimaryWindPoint)
}

func TestSummarizeMarine(t *testing.T) {
	got := SummarizeMarine(MarineSeries{
		WaveHeight:     []float64{0.4, 0.62},
		SwellHeight:    []float64{0.2, 0.3},
		SwellPeriod:    []float64{5.04, 6},
		SwellDirection: []float64{0, 90},
	})
	assert.Equal(t, 0.51, got.AvgWaveHeightM)
	assert.Equal(t, 0.62, got.MaxWaveHeightM)
	assert.Equal(t, 0.25, got.AvgSwellHeightM)
	assert.Equal(t, 5.5, got.AvgSwellPeriodS)
	assert.Equal(t, "NE", got.PrimarySwellDirection)
}

func TestSummarizeMarine_Empty(t *testing.T) {
	got := SummarizeMarine(MarineSeries{})
	assert.Equal(t, 0.0, got.AvgWaveHeightM)
	assert.Equal(t, NotAvailable, got.PrimarySwellDirection)
}

func TestSummarize_ThreeModels(t *testing.T) {
	forecasts := []ForecastSeries{
		series("icon_seamless", 12, 14, 16),
		series("gfs_seamless", 13, 15, 17),
		series("ecmwf_ifs025", 11, 13, 15),
	}

	agg := Summarize(forecasts, MarineSeries{Err: Unavailable("marine", nil)}, UnavailableSnapshot("offline"))

	require.Len(t, agg.Models, 3)
	assert.Equal(t, "icon_seamless", agg.Models[0].Model)
	assert.Equal(t, 14.0, agg.Models[0].Summary.AvgWindKnots)
	assert.Equal(t, 15.0, agg.Models[1].Summary.AvgWindKnots)
	assert.Equal(t, 13.0, agg.Models[2].Summary.AvgWindKnots)
	assert.Equal(t, 1.0, agg.Models[0].Coverage)

	c := agg.Consensus
	assert.Equal(t, 3, c.Models)
	assert.Equal(t, 14.0, c.MeanAvgWindKnots)
	assert.Equal(t, 13.0, c.MinAvgWindKnots)
	assert.Equal(t, 15.0, c.MaxAvgWindKnots)
	assert.Equal(t, 2.0, c.WindSpreadKnots)
	assert.Equal(t, 17.0, c.MaxWindKnots)

	assert.Nil(t, agg.Marine)
	require.NotNil(t, agg.MarineFailure)
	assert.Equal(t, KindSourceUnavailable, agg.MarineFailure.Kind)
	assert.False(t, agg.Station.Available)
}

func TestSummarize_FailuresKeptApart(t *testing.T) {
	calm := series("icon_seamless", 0, 0, 0)
	down := ForecastSeries{Model: "gfs_seamless", Err: Unavailable("gfs_seamless", assert.AnError)}
	empty := ForecastSeries{Model: "arpege_seamless", Err: NoDataForWindow("arpege_seamless", "2024-05-01")}

	agg := Summarize([]ForecastSeries{calm, down, empty}, MarineSeries{}, StationSnapshot{})

	require.Len(t, agg.Models, 1)
	assert.Equal(t, 0.0, agg.Models[0].Summary.AvgWindKnots)
	require.Len(t, agg.Failures, 2)
	assert.Equal(t, KindSourceUnavailable, agg.Failures[0].Kind)
	assert.Equal(t, KindNoDataForWindow, agg.Failures[1].Kind)
	require.NotNil(t, agg.Marine)
}

func TestSummarize_Empty(t *testing.T) {
	agg := Summarize(nil, MarineSeries{}, StationSnapshot{})
	assert.Empty(t, agg.Models)
	assert.Equal(t, 0, agg.Consensus.Models)
	assert.Equal(t, 0.0, agg.Consensus.MeanAvgWindKnots)
	assert.Equal(t, NotAvailable, agg.Marine.PrimarySwellDirection)
}

func TestCoverage_CountsMissingSamples(t *testing.T) {
	s := series("icon_seamless", 10, 12, 14, 16)
	s.WindSpeed = s.WindSpeed[:3]
	agg := Summarize([]ForecastSeries{s}, MarineSeries{}, StationSnapshot{})
	assert.Equal(t, 0.75, agg.Models[0].Coverage)
}

func TestCompassIndex(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"}, {22.4, "N"}, {22.5, "NE"}, {45, "NE"}, {90, "E"}, {135, "SE"},
		{180, "S"}, {225, "SW"}, {270, "W"}, {315, "NW"}, {337.5, "N"}, {359, "N"},
		{360, "N"}, {-45, "NW"}, {405, "NE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompassPoint(tt.deg), "deg=%v", tt.deg)
	}
}
