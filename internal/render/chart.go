package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// ChartInput is the data of the four-panel chart.
type ChartInput struct {
	Title     string
	Hours     []string
	Forecasts []domain.ForecastSeries
	Marine    domain.MarineSeries
}

const (
	chartWaveBar   = "#00bcd4"
	chartSwellLine = "#9c27b0"
)

// wind reference lines: warning, risky, strong.
var windGuides = []struct {
	knots float64
	hex   string
}{
	{15, "#FFC107"},
	{20, "#FF9800"},
	{25, "#F44336"},
}

// Chart draws four stacked panels sharing the hour axis: wind and gusts,
// wind direction, waves with swell, and temperature. Models are coloured by
// id through the renderer's styles.
func (r *Renderer) Chart(in ChartInput) ([]byte, error) {
	var healthy []domain.ForecastSeries
	for _, f := range in.Forecasts {
		if f.OK() {
			healthy = append(healthy, f)
		}
	}
	hasMarine := in.Marine.OK() && len(in.Marine.Times) > 0
	if len(in.Hours) == 0 || (len(healthy) == 0 && !hasMarine) {
		return nil, unavailable(ErrNothingToRender)
	}

	n := len(in.Hours)
	panels := make([]*plot.Plot, 4)
	for i := range panels {
		panels[i] = newPanel(in.Hours)
	}
	wind, dir, waves, temp := panels[0], panels[1], panels[2], panels[3]

	wind.Title.Text = in.Title
	wind.Y.Label.Text = "Wind / gust (kn)"
	dir.Y.Label.Text = "Direction"
	waves.Y.Label.Text = "Height (m)"
	temp.Y.Label.Text = "Temperature (°C)"
	temp.X.Label.Text = "Hour"

	windMax := 30.0
	tempMin, tempMax := math.Inf(1), math.Inf(-1)
	for _, f := range healthy {
		c := r.styles.Color(f.Model)
		name := r.styles.Name(f.Model)
		cols := columns(f.Times, in.Hours)

		if l, err := seriesLine(placed(f.WindSpeed, cols), c, false); err != nil {
			return nil, unavailable(err)
		} else if l != nil {
			wind.Add(l)
			wind.Legend.Add(name, l)
		}
		if l, err := seriesLine(placed(f.WindGust, cols), c, true); err != nil {
			return nil, unavailable(err)
		} else if l != nil {
			wind.Add(l)
		}
		windMax = math.Max(windMax, domain.Max(f.WindGust)*1.1)
		windMax = math.Max(windMax, domain.Max(f.WindSpeed)*1.1)

		if len(f.WindDirection) > 0 {
			s, err := plotter.NewScatter(placed(f.WindDirection, cols))
			if err != nil {
				return nil, unavailable(fmt.Errorf("direction scatter: %w", err))
			}
			s.GlyphStyle.Color = c
			s.GlyphStyle.Radius = vg.Points(3)
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			dir.Add(s)
		}

		if l, err := seriesLine(placed(f.Temperature, cols), c, false); err != nil {
			return nil, unavailable(err)
		} else if l != nil {
			temp.Add(l)
			temp.Legend.Add(name, l)
		}
		if len(f.Temperature) > 0 {
			tempMin = math.Min(tempMin, domain.Min(f.Temperature))
			tempMax = math.Max(tempMax, domain.Max(f.Temperature))
		}
	}

	for _, g := range windGuides {
		l, err := plotter.NewLine(plotter.XYs{{X: -0.5, Y: g.knots}, {X: float64(n) - 0.5, Y: g.knots}})
		if err != nil {
			return nil, unavailable(fmt.Errorf("guide line: %w", err))
		}
		l.LineStyle.Color = hexColor(g.hex)
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		wind.Add(l)
	}
	wind.Y.Min, wind.Y.Max = 0, windMax

	dir.Y.Min, dir.Y.Max = 0, 360
	dir.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: 0, Label: "N"},
		{Value: 90, Label: "E"},
		{Value: 180, Label: "S"},
		{Value: 270, Label: "W"},
		{Value: 360, Label: "N"},
	})

	waves.Y.Min, waves.Y.Max = 0, 1
	if hasMarine {
		if err := r.addMarine(waves, in.Marine, in.Hours); err != nil {
			return nil, unavailable(err)
		}
	} else {
		waves.Title.Text = "Marine data unavailable"
	}

	if math.IsInf(tempMin, 1) {
		tempMin, tempMax = 10, 30
	}
	temp.Y.Min, temp.Y.Max = math.Floor(tempMin-2), math.Ceil(tempMax+2)

	return drawPanels(panels, n)
}

func (r *Renderer) addMarine(p *plot.Plot, m domain.MarineSeries, hours []string) error {
	top := math.Max(domain.Max(m.WaveHeight), domain.Max(m.SwellHeight))
	cols := columns(m.Times, hours)
	if len(m.WaveHeight) > 0 {
		// Bars need a value per column; uncovered hours stay flat.
		heights := align(m.WaveHeight, cols, len(hours))
		for i, h := range heights {
			if math.IsNaN(h) {
				heights[i] = 0
			}
		}
		bars, err := plotter.NewBarChart(plotter.Values(heights), vg.Points(14))
		if err != nil {
			return fmt.Errorf("wave bars: %w", err)
		}
		bars.Color = hexColor(chartWaveBar)
		bars.LineStyle.Width = 0
		p.Add(bars)
		p.Legend.Add("Wave height", bars)
	}
	l, err := seriesLine(placed(m.SwellHeight, cols), hexColor(chartSwellLine), false)
	if err != nil {
		return err
	}
	if l != nil {
		p.Add(l)
		p.Legend.Add("Swell height", l)
	}
	p.Y.Max = math.Max(1, math.Ceil(top*12)/10)
	return nil
}

func newPanel(hours []string) *plot.Plot {
	p := plot.New()
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.X.Min, p.X.Max = -0.5, float64(len(hours))-0.5

	step := 1
	if len(hours) > 14 {
		step = 2
	}
	ticks := make([]plot.Tick, 0, len(hours))
	for i, h := range hours {
		label := h
		if i%step != 0 {
			label = ""
		}
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: label})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	return p
}

// placed positions each value at its hour column, skipping values whose
// hour is not on the axis.
func placed(vs []float64, cols []int) plotter.XYs {
	xys := make(plotter.XYs, 0, len(vs))
	for i, v := range vs {
		if i >= len(cols) || cols[i] < 0 {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(cols[i]), Y: v})
	}
	return xys
}

// seriesLine returns nil for an empty series.
func seriesLine(xys plotter.XYs, c color.Color, dashed bool) (*plotter.Line, error) {
	if len(xys) == 0 {
		return nil, nil
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("series line: %w", err)
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(2)
	if dashed {
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	}
	return l, nil
}

func drawPanels(panels []*plot.Plot, hours int) ([]byte, error) {
	width := vg.Length(math.Max(9, 0.75*float64(hours))) * vg.Inch
	img := vgimg.NewWith(
		vgimg.UseWH(width, 14*vg.Inch),
		vgimg.UseDPI(96),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	grid := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		grid[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadY:      vg.Points(18),
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(12),
	}
	canvases := plot.Align(grid, tiles, dc)
	for i := range grid {
		grid[i][0].Draw(canvases[i][0])
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, unavailable(fmt.Errorf("encode chart: %w", err))
	}
	return buf.Bytes(), nil
}
