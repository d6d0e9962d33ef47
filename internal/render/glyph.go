package render

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

var arrowRunes = [8]string{"↓", "↙", "←", "↖", "↑", "↗", "→", "↘"}

// ArrowRune returns the arrow character pointing downwind for a direction
// the wind or swell comes from.
func ArrowRune(deg float64) string {
	return arrowRunes[domain.CompassIndex(deg)]
}

// drawArrow draws an arrow centred on (cx, cy) pointing downwind for a
// direction the flow comes from, snapped to 8 compass points.
func drawArrow(dc *gg.Context, cx, cy, size, deg float64, c color.Color) {
	bearing := float64(domain.CompassIndex(deg))*45 + 180
	half := size / 2

	dc.Push()
	dc.RotateAbout(gg.Radians(bearing), cx, cy)
	dc.SetColor(c)

	dc.SetLineWidth(size / 8)
	dc.DrawLine(cx, cy+half, cx, cy-half/3)
	dc.Stroke()

	dc.MoveTo(cx, cy-half)
	dc.LineTo(cx-half/2, cy-half/6)
	dc.LineTo(cx+half/2, cy-half/6)
	dc.ClosePath()
	dc.Fill()
	dc.Pop()
}
