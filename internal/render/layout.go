package render

import "math"

// Metrics are the table dimensions in pixels.
type Metrics struct {
	Margin           float64
	TitleHeight      float64
	LabelWidth       float64
	CellWidth        float64
	BandHeaderHeight float64
	HourRowHeight    float64
	RowHeight        float64
	BandGap          float64
	MinWidth         float64
}

// DefaultMetrics returns the standard table metrics.
func DefaultMetrics() Metrics {
	return Metrics{
		Margin:           16,
		TitleHeight:      64,
		LabelWidth:       96,
		CellWidth:        56,
		BandHeaderHeight: 36,
		HourRowHeight:    28,
		RowHeight:        34,
		BandGap:          24,
		MinWidth:         480,
	}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the centre point of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inside reports whether r lies within a w×h canvas.
func (r Rect) Inside(w, h float64) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= w && r.Y+r.H <= h
}

// RowLayout places one row: its label and one cell per hour.
type RowLayout struct {
	Label Rect
	Cells []Rect
}

// BandLayout places one band.
type BandLayout struct {
	Header    Rect
	HourLabel Rect
	Hours     []Rect
	Rows      []RowLayout
}

// TableLayout is the computed geometry of a table image.
type TableLayout struct {
	Width  int
	Height int
	Title  Rect
	Bands  []BandLayout
}

// ComputeTableLayout sizes the canvas from the data: width grows with the
// hour count and height with the total number of rows, so every cell fits.
func ComputeTableLayout(spec RenderSpec, m Metrics) TableLayout {
	hours := len(spec.Hours)
	gridWidth := m.LabelWidth + m.CellWidth*float64(hours)
	width := math.Max(m.MinWidth, 2*m.Margin+gridWidth)

	height := 2*m.Margin + m.TitleHeight
	for i, b := range spec.Bands {
		if i > 0 {
			height += m.BandGap
		}
		height += m.BandHeaderHeight + m.HourRowHeight + m.RowHeight*float64(len(b.Rows))
	}

	layout := TableLayout{
		Width:  int(math.Ceil(width)),
		Height: int(math.Ceil(height)),
		Title:  Rect{X: m.Margin, Y: m.Margin, W: width - 2*m.Margin, H: m.TitleHeight},
	}

	cellsFrom := func(y, h float64) []Rect {
		cells := make([]Rect, hours)
		for i := range cells {
			cells[i] = Rect{X: m.Margin + m.LabelWidth + m.CellWidth*float64(i), Y: y, W: m.CellWidth, H: h}
		}
		return cells
	}

	y := m.Margin + m.TitleHeight
	for i, b := range spec.Bands {
		if i > 0 {
			y += m.BandGap
		}
		bl := BandLayout{
			Header: Rect{X: m.Margin, Y: y, W: gridWidth, H: m.BandHeaderHeight},
		}
		y += m.BandHeaderHeight

		bl.HourLabel = Rect{X: m.Margin, Y: y, W: m.LabelWidth, H: m.HourRowHeight}
		bl.Hours = cellsFrom(y, m.HourRowHeight)
		y += m.HourRowHeight

		for range b.Rows {
			bl.Rows = append(bl.Rows, RowLayout{
				Label: Rect{X: m.Margin, Y: y, W: m.LabelWidth, H: m.RowHeight},
				Cells: cellsFrom(y, m.RowHeight),
			})
			y += m.RowHeight
		}
		layout.Bands = append(layout.Bands, bl)
	}
	return layout
}
