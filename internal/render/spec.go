package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// RowKind is the semantic type of a table row.
type RowKind int

const (
	RowWind RowKind = iota
	RowGust
	RowDirection
	RowTemperature
	RowPrecipitation
	RowVisibility
	RowWaveHeight
	RowWaveDirection
	RowSwellHeight
	RowSwellDirection
)

// IsDirection reports whether the row is drawn as arrows.
func (k RowKind) IsDirection() bool {
	return k == RowDirection || k == RowWaveDirection || k == RowSwellDirection
}

// Row is one parameter line of a band. Values are indexed by hour position;
// NaN entries and positions past the end are missing.
type Row struct {
	Kind   RowKind
	Label  string
	Accent string
	Family Family
	Format string
	Values []float64
}

// Value returns the value at hour i, or false when it is missing.
func (r Row) Value(i int) (float64, bool) {
	if i < 0 || i >= len(r.Values) || math.IsNaN(r.Values[i]) {
		return 0, false
	}
	return r.Values[i], true
}

// Band is a titled group of rows sharing the hour header.
type Band struct {
	Key    string
	Title  string
	Accent string
	Rows   []Row
}

// RenderSpec is the table description built per run and discarded after
// drawing.
type RenderSpec struct {
	Title    string
	Subtitle string
	Hours    []string
	Bands    []Band
}

// Empty reports whether there is nothing to draw.
func (s RenderSpec) Empty() bool {
	return len(s.Bands) == 0 || len(s.Hours) == 0
}

// Band and row accents.
const (
	accentModel      = "#3498DB"
	accentMarine     = "#00BCD4"
	accentHour       = "#34495E"
	accentWind       = "#27AE60"
	accentGust       = "#E74C3C"
	accentDirection  = "#9B59B6"
	accentTemp       = "#FF5722"
	accentPrecip     = "#0288D1"
	accentVisibility = "#607D8B"
	accentWave       = "#2196F3"
	accentSwell      = "#1565C0"
)

// HourAxis returns the sorted union of the hour labels of every healthy
// forecast and the marine series, so no band has more hours than the table.
func HourAxis(forecasts []domain.ForecastSeries, marine domain.MarineSeries) []string {
	seen := map[string]bool{}
	add := func(times []string) {
		for _, ts := range times {
			seen[domain.HourLabel(ts)] = true
		}
	}
	for _, f := range forecasts {
		if f.OK() {
			add(f.Times)
		}
	}
	if marine.OK() {
		add(marine.Times)
	}

	hours := make([]string, 0, len(seen))
	for h := range seen {
		hours = append(hours, h)
	}
	sort.Strings(hours)
	return hours
}

// columns maps every timestamp to its position on the hour axis, or -1.
func columns(times, hours []string) []int {
	pos := make(map[string]int, len(hours))
	for i, h := range hours {
		pos[h] = i
	}
	cols := make([]int, len(times))
	for i, ts := range times {
		c, ok := pos[domain.HourLabel(ts)]
		if !ok {
			c = -1
		}
		cols[i] = c
	}
	return cols
}

// align spreads vs over n hour positions. Value i lands in the column of
// timestamp i; uncovered positions hold NaN.
func align(vs []float64, cols []int, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	for i, v := range vs {
		if i < len(cols) && cols[i] >= 0 {
			out[cols[i]] = v
		}
	}
	return out
}

// coverage notes a band whose primary row has fewer samples than hours.
// Null samples are dropped upstream, so the values after a gap sit one
// column early; the note keeps the band from reading as complete.
func coverage(samples, hours int) string {
	if samples >= hours {
		return ""
	}
	return fmt.Sprintf(" · %d/%d h reported", samples, hours)
}

// BuildRenderSpec lays healthy models out as bands in the given order,
// followed by the marine band when marine data is present. Each band places
// its values in the column of their own hour, so hours is normally
// HourAxis of the same inputs. Models in error are listed in the subtitle.
func BuildRenderSpec(title string, forecasts []domain.ForecastSeries, marine domain.MarineSeries, hours []string, styles ModelStyles) RenderSpec {
	spec := RenderSpec{Title: title, Hours: hours}
	n := len(hours)

	var failed int
	for _, f := range forecasts {
		if !f.OK() {
			failed++
			continue
		}
		name := styles.Name(f.Model)
		if f.Approximated {
			name += " (approx. date)"
		}
		name += coverage(len(f.WindSpeed), len(f.Times))
		cols := columns(f.Times, hours)
		spec.Bands = append(spec.Bands, Band{
			Key:    f.Model,
			Title:  name,
			Accent: accentModel,
			Rows: []Row{
				{Kind: RowWind, Label: "Wind (kn)", Accent: accentWind, Family: FamilyWind, Format: "%.0f", Values: align(f.WindSpeed, cols, n)},
				{Kind: RowGust, Label: "Gust (kn)", Accent: accentGust, Family: FamilyWind, Format: "%.0f", Values: align(f.WindGust, cols, n)},
				{Kind: RowDirection, Label: "Direction", Accent: accentDirection, Values: align(f.WindDirection, cols, n)},
				{Kind: RowTemperature, Label: "Temp (°C)", Accent: accentTemp, Family: FamilyTemperature, Format: "%.0f", Values: align(f.Temperature, cols, n)},
				{Kind: RowPrecipitation, Label: "Rain (mm)", Accent: accentPrecip, Family: FamilyPrecipitation, Format: "%.1f", Values: align(f.Precipitation, cols, n)},
				{Kind: RowVisibility, Label: "Vis (km)", Accent: accentVisibility, Format: "%.0f", Values: align(f.Visibility, cols, n)},
			},
		})
	}

	if marine.OK() && len(marine.Times) > 0 {
		t := "Marine"
		if marine.Approximated {
			t += " (approx. date)"
		}
		t += coverage(len(marine.WaveHeight), len(marine.Times))
		cols := columns(marine.Times, hours)
		spec.Bands = append(spec.Bands, Band{
			Key:    "marine",
			Title:  t,
			Accent: accentMarine,
			Rows: []Row{
				{Kind: RowWaveHeight, Label: "Wave (m)", Accent: accentWave, Family: FamilyWave, Format: "%.1f", Values: align(marine.WaveHeight, cols, n)},
				{Kind: RowWaveDirection, Label: "Wave dir", Accent: accentDirection, Values: align(marine.WaveDirection, cols, n)},
				{Kind: RowSwellHeight, Label: "Swell (m)", Accent: accentSwell, Family: FamilyWave, Format: "%.1f", Values: align(marine.SwellHeight, cols, n)},
				{Kind: RowSwellDirection, Label: "Swell dir", Accent: accentDirection, Values: align(marine.SwellDirection, cols, n)},
			},
		})
	}

	if failed > 0 {
		spec.Subtitle = fmt.Sprintf("%d model(s) unavailable", failed)
	}
	return spec
}
