package render

import (
	"fmt"

	"github.com/fogleman/gg"
)

const (
	tableBackground = "#1a1a2e"
	missingCell     = "#BDBDBD"
	missingText     = "#757575"
	directionCell   = "#F5F5F5"
	directionArrow  = "#37474F"
	gridLine        = "#1a1a2e"
)

// Table draws the colour-tiered forecast table.
func (r *Renderer) Table(spec RenderSpec) ([]byte, error) {
	if spec.Empty() {
		return nil, unavailable(ErrNothingToRender)
	}

	f, err := newFaces()
	if err != nil {
		return nil, unavailable(err)
	}
	defer f.Close()

	layout := ComputeTableLayout(spec, r.metrics)
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetHexColor(tableBackground)
	dc.Clear()

	dc.SetHexColor("#FFFFFF")
	dc.SetFontFace(f.title)
	tx := layout.Title.X
	dc.DrawStringAnchored(spec.Title, tx, layout.Title.Y+layout.Title.H*0.35, 0, 0.5)
	if spec.Subtitle != "" {
		dc.SetHexColor("#B0BEC5")
		dc.SetFontFace(f.small)
		dc.DrawStringAnchored(spec.Subtitle, tx, layout.Title.Y+layout.Title.H*0.75, 0, 0.5)
	}

	for bi, band := range spec.Bands {
		bl := layout.Bands[bi]
		r.drawBandHeader(dc, f, band, bl, spec.Hours)
		for ri, row := range band.Rows {
			r.drawRow(dc, f, row, bl.Rows[ri])
		}
	}

	return encodePNG(dc)
}

func (r *Renderer) drawBandHeader(dc *gg.Context, f *faces, band Band, bl BandLayout, hours []string) {
	fillRect(dc, bl.Header, band.Accent)
	dc.SetHexColor("#FFFFFF")
	dc.SetFontFace(f.header)
	dc.DrawStringAnchored(band.Title, bl.Header.X+10, bl.Header.Y+bl.Header.H/2, 0, 0.35)

	dc.SetFontFace(f.cell)
	fillRect(dc, bl.HourLabel, accentHour)
	drawCentered(dc, "Hour", bl.HourLabel, "#FFFFFF")
	for i, cell := range bl.Hours {
		fillRect(dc, cell, accentHour)
		drawCentered(dc, hours[i], cell, "#FFFFFF")
	}
}

func (r *Renderer) drawRow(dc *gg.Context, f *faces, row Row, rl RowLayout) {
	dc.SetFontFace(f.cell)
	fillRect(dc, rl.Label, row.Accent)
	drawCentered(dc, row.Label, rl.Label, "#FFFFFF")

	for i, cell := range rl.Cells {
		v, ok := row.Value(i)
		switch {
		case !ok:
			fillRect(dc, cell, missingCell)
			drawCentered(dc, "-", cell, missingText)
		case row.Kind.IsDirection():
			fillRect(dc, cell, directionCell)
			cx, cy := cell.Center()
			drawArrow(dc, cx, cy, cell.H*0.6, v, hexColor(directionArrow))
		default:
			tier := r.colors.Tier(row.Family, v)
			dc.SetColor(tier.Background)
			dc.DrawRectangle(cell.X, cell.Y, cell.W, cell.H)
			dc.Fill()
			dc.SetColor(tier.Foreground)
			dc.DrawStringAnchored(fmt.Sprintf(row.Format, v), cell.X+cell.W/2, cell.Y+cell.H/2, 0.5, 0.35)
		}
		strokeRect(dc, cell, gridLine)
	}
	strokeRect(dc, rl.Label, gridLine)
}

func fillRect(dc *gg.Context, r Rect, hex string) {
	dc.SetHexColor(hex)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Fill()
}

func strokeRect(dc *gg.Context, r Rect, hex string) {
	dc.SetHexColor(hex)
	dc.SetLineWidth(1)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Stroke()
}

func drawCentered(dc *gg.Context, s string, r Rect, hex string) {
	dc.SetHexColor(hex)
	dc.DrawStringAnchored(s, r.X+r.W/2, r.Y+r.H/2, 0.5, 0.35)
}
