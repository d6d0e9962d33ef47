package render

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

func hoursN(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%02d:00", 8+i)
	}
	return out
}

func forecast(model string, wind ...float64) domain.ForecastSeries {
	times := make([]string, len(wind))
	gust := make([]float64, len(wind))
	dir := make([]float64, len(wind))
	temp := make([]float64, len(wind))
	for i, w := range wind {
		times[i] = fmt.Sprintf("2024-05-01T%02d:00", 8+i)
		gust[i] = w + 6
		dir[i] = float64(i * 45)
		temp[i] = 20 + float64(i)
	}
	return domain.ForecastSeries{
		Model:         model,
		TargetDate:    "2024-05-01",
		Times:         times,
		WindSpeed:     wind,
		WindGust:      gust,
		WindDirection: dir,
		Temperature:   temp,
		Precipitation: []float64{0, 0.4},
		Visibility:    []float64{24, 20, 18},
	}
}

func marine(n int) domain.MarineSeries {
	times := make([]string, n)
	wave := make([]float64, n)
	for i := range times {
		times[i] = fmt.Sprintf("2024-05-01T%02d:00", 8+i)
		wave[i] = 0.2 + 0.1*float64(i)
	}
	return domain.MarineSeries{
		Source:         "open-meteo-marine",
		Times:          times,
		WaveHeight:     wave,
		WaveDirection:  []float64{300, 310},
		SwellHeight:    wave[:n/2],
		SwellDirection: []float64{270},
	}
}

func TestBuildRenderSpec(t *testing.T) {
	forecasts := []domain.ForecastSeries{
		forecast("icon_seamless", 12, 14, 16),
		{Model: "gfs_seamless", Err: domain.Unavailable("gfs_seamless", assert.AnError)},
		forecast("ecmwf_ifs025", 11, 13, 15),
	}

	spec := BuildRenderSpec("Kara Ada", forecasts, marine(3), hoursN(3), DefaultModelStyles())

	require.Len(t, spec.Bands, 3)
	assert.Equal(t, "icon_seamless", spec.Bands[0].Key)
	assert.Equal(t, "ICON (DWD)", spec.Bands[0].Title)
	assert.Equal(t, "ecmwf_ifs025", spec.Bands[1].Key)
	assert.Equal(t, "marine", spec.Bands[2].Key)
	assert.Len(t, spec.Bands[0].Rows, 6)
	assert.Len(t, spec.Bands[2].Rows, 4)
	assert.Equal(t, RowDirection, spec.Bands[0].Rows[2].Kind)
	assert.Equal(t, FamilyWind, spec.Bands[0].Rows[1].Family)
	assert.Contains(t, spec.Subtitle, "1 model")
}

func TestBuildRenderSpec_NoMarine(t *testing.T) {
	m := domain.MarineSeries{Err: domain.Unavailable("marine", nil)}
	spec := BuildRenderSpec("x", []domain.ForecastSeries{forecast("icon_seamless", 10)}, m, hoursN(1), DefaultModelStyles())
	require.Len(t, spec.Bands, 1)
}

func TestHourAxis_UnionOfHealthyBands(t *testing.T) {
	short := forecast("icon_seamless", 1, 2, 3, 4, 5)
	long := forecast("gfs_seamless", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)
	failed := domain.ForecastSeries{Model: "ecmwf_ifs025", Times: []string{"2024-05-01T20:00"}, Err: domain.Unavailable("ecmwf_ifs025", nil)}

	hours := HourAxis([]domain.ForecastSeries{short, failed, long}, domain.MarineSeries{Err: domain.Unavailable("marine", nil)})

	assert.Equal(t, hoursN(11), hours)
}

func TestHourAxis_IncludesMarineHours(t *testing.T) {
	m := domain.MarineSeries{Times: []string{"2024-05-01T19:00"}, WaveHeight: []float64{0.4}}
	hours := HourAxis([]domain.ForecastSeries{forecast("icon_seamless", 1, 2)}, m)
	assert.Equal(t, []string{"08:00", "09:00", "19:00"}, hours)
}

func TestBuildRenderSpec_UnequalBandsGetEveryValue(t *testing.T) {
	a := forecast("a", 1, 2, 3, 4, 5)
	b := forecast("b", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)
	m := domain.MarineSeries{
		Times:      []string{"2024-05-01T10:00", "2024-05-01T11:00", "2024-05-01T12:00"},
		WaveHeight: []float64{0.3, 0.4, 0.5},
	}
	forecasts := []domain.ForecastSeries{a, b}
	hours := HourAxis(forecasts, m)
	require.Len(t, hours, 11)

	spec := BuildRenderSpec("t", forecasts, m, hours, DefaultModelStyles())
	require.Len(t, spec.Bands, 3)

	wind := spec.Bands[1].Rows[0]
	for i, want := range b.WindSpeed {
		v, ok := wind.Value(i)
		require.True(t, ok, "hour %s", hours[i])
		assert.Equal(t, want, v)
	}

	short := spec.Bands[0].Rows[0]
	for i := range hours {
		_, ok := short.Value(i)
		assert.Equal(t, i < 5, ok, "hour %s", hours[i])
	}

	wave := spec.Bands[2].Rows[0]
	_, ok := wave.Value(1)
	assert.False(t, ok)
	v, ok := wave.Value(2)
	require.True(t, ok)
	assert.Equal(t, 0.3, v)

	layout := ComputeTableLayout(spec, DefaultMetrics())
	for _, band := range layout.Bands {
		for _, r := range band.Rows {
			assert.Len(t, r.Cells, 11)
		}
	}
}

func TestBuildRenderSpec_NotesPartialCoverage(t *testing.T) {
	f := forecast("icon_seamless", 10, 12, 14)
	f.WindSpeed = f.WindSpeed[:2]
	m := marine(4)
	m.WaveHeight = m.WaveHeight[:3]

	spec := BuildRenderSpec("t", []domain.ForecastSeries{f, forecast("gfs_seamless", 1, 2, 3)}, m, hoursN(4), DefaultModelStyles())

	require.Len(t, spec.Bands, 3)
	assert.Equal(t, "ICON (DWD) · 2/3 h reported", spec.Bands[0].Title)
	assert.NotContains(t, spec.Bands[1].Title, "reported")
	assert.Equal(t, "Marine · 3/4 h reported", spec.Bands[2].Title)
}

func TestRowValue_NaNIsMissing(t *testing.T) {
	r := Row{Values: []float64{math.NaN(), 4}}
	_, ok := r.Value(0)
	assert.False(t, ok)
	v, ok := r.Value(1)
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestRowValue_MissingPastEnd(t *testing.T) {
	r := Row{Values: []float64{1, 2}}
	v, ok := r.Value(1)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
	_, ok = r.Value(2)
	assert.False(t, ok)
	_, ok = r.Value(-1)
	assert.False(t, ok)
}

func TestComputeTableLayout_EverythingInside(t *testing.T) {
	m := DefaultMetrics()
	for _, models := range []int{1, 3, 8} {
		for _, hours := range []int{1, 11, 24} {
			var forecasts []domain.ForecastSeries
			for i := 0; i < models; i++ {
				forecasts = append(forecasts, forecast(fmt.Sprintf("m%d", i), 10))
			}
			spec := BuildRenderSpec("t", forecasts, marine(hours), hoursN(hours), DefaultModelStyles())
			layout := ComputeTableLayout(spec, m)
			w, h := float64(layout.Width), float64(layout.Height)

			require.Len(t, layout.Bands, models+1)
			for _, b := range layout.Bands {
				assert.True(t, b.Header.Inside(w, h))
				assert.Len(t, b.Hours, hours)
				for _, r := range b.Rows {
					assert.True(t, r.Label.Inside(w, h))
					for _, c := range r.Cells {
						assert.True(t, c.Inside(w, h), "models=%d hours=%d cell=%+v", models, hours, c)
					}
				}
			}
		}
	}
}

func TestComputeTableLayout_ScalesWithData(t *testing.T) {
	m := DefaultMetrics()
	build := func(models, hours int) TableLayout {
		var forecasts []domain.ForecastSeries
		for i := 0; i < models; i++ {
			forecasts = append(forecasts, forecast(fmt.Sprintf("m%d", i), 10))
		}
		return ComputeTableLayout(BuildRenderSpec("t", forecasts, domain.MarineSeries{Err: &domain.SourceError{}}, hoursN(hours), DefaultModelStyles()), m)
	}

	one, two := build(1, 11), build(2, 11)
	perModel := m.BandHeaderHeight + m.HourRowHeight + 6*m.RowHeight + m.BandGap
	assert.Equal(t, one.Height+int(perModel), two.Height)

	narrow, wide := build(1, 11), build(1, 22)
	assert.Equal(t, narrow.Width+int(11*m.CellWidth), wide.Width)

	tiny := build(1, 1)
	assert.Equal(t, int(m.MinWidth), tiny.Width)
}
