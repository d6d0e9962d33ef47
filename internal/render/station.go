package render

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

const (
	stationWidth   = 900
	stationHeight  = 560
	stationCols    = 4
	stationCardBg  = "#16213e"
	stationCardTop = 120.0
	stationCardH   = 180.0
	stationCardGap = 20.0
)

type card struct {
	label  string
	value  string
	unit   string
	accent string
	// arrow, when set, is drawn under the value.
	arrow *float64
}

// Station draws the observation infographic: a title, the station line and
// eight metric cards. An unavailable snapshot has nothing to draw.
func (r *Renderer) Station(snap domain.StationSnapshot, loc domain.Location) ([]byte, error) {
	if !snap.Available || snap.Measurements == nil {
		return nil, unavailable(ErrNothingToRender)
	}

	f, err := newFaces()
	if err != nil {
		return nil, unavailable(err)
	}
	defer f.Close()

	dc := gg.NewContext(stationWidth, stationHeight)
	dc.SetHexColor(tableBackground)
	dc.Clear()

	dc.SetHexColor("#FFFFFF")
	dc.SetFontFace(f.title)
	dc.DrawStringAnchored("Live conditions: "+loc.Name, 24, 40, 0, 0.5)

	dc.SetHexColor("#B0BEC5")
	dc.SetFontFace(f.small)
	dc.DrawStringAnchored(stationLine(snap), 24, 76, 0, 0.5)

	cards := r.stationCards(snap)
	cardW := (stationWidth - 2*24 - stationCardGap*(stationCols-1)) / stationCols
	for i, c := range cards {
		col, row := i%stationCols, i/stationCols
		rect := Rect{
			X: 24 + float64(col)*(cardW+stationCardGap),
			Y: stationCardTop + float64(row)*(stationCardH+stationCardGap),
			W: cardW,
			H: stationCardH,
		}
		drawCard(dc, f, c, rect)
	}

	dc.SetHexColor("#78909C")
	dc.SetFontFace(f.small)
	footer := fmt.Sprintf("%.4f°N  %.4f°E", loc.Lat, loc.Lon)
	dc.DrawStringAnchored(footer, stationWidth-24, stationHeight-20, 1, 0.5)

	return encodePNG(dc)
}

func stationLine(s domain.StationSnapshot) string {
	line := s.StationID
	if s.StationName != "" {
		line = s.StationName + " (" + s.StationID + ")"
	}
	if s.DistanceKm != nil {
		line += fmt.Sprintf(" · %.1f km away", *s.DistanceKm)
	}
	if s.ObservedAt != nil {
		line += " · observed " + s.ObservedAt.UTC().Format("2006-01-02 15:04 UTC")
	}
	return line
}

func (r *Renderer) stationCards(s domain.StationSnapshot) []card {
	m := s.Measurements
	dir := card{label: "Direction", value: "-", accent: accentDirection}
	switch {
	case m.WindVariable:
		dir.value = "VRB"
	case m.WindDirectionDeg != nil:
		dir.value = fmt.Sprintf("%.0f° %s", *m.WindDirectionDeg, domain.CompassPoint(*m.WindDirectionDeg))
		dir.arrow = m.WindDirectionDeg
	}

	humidity := ""
	if m.HumidityPct != nil {
		humidity = fmt.Sprintf("°C · RH %.0f%%", *m.HumidityPct)
	}

	return []card{
		{label: "Temperature", value: format(m.TemperatureC, "%.1f"), unit: "°C", accent: r.tierHex(FamilyTemperature, m.TemperatureC, accentTemp)},
		{label: "Wind", value: format(m.WindSpeedKnots, "%.0f"), unit: "kn", accent: r.tierHex(FamilyWind, m.WindSpeedKnots, accentWind)},
		dir,
		{label: "Gust", value: format(m.WindGustKnots, "%.0f"), unit: "kn", accent: r.tierHex(FamilyWind, m.WindGustKnots, accentGust)},
		{label: "Pressure", value: format(m.PressureHPa, "%.0f"), unit: "hPa", accent: "#795548"},
		{label: "Visibility", value: format(m.VisibilityKm, "%.1f"), unit: "km", accent: accentVisibility},
		{label: "Dewpoint", value: format(m.DewpointC, "%.1f"), unit: orDefault(humidity, "°C"), accent: "#00BCD4"},
		{label: "Station", value: s.StationID, unit: m.FlightCategory, accent: accentModel},
	}
}

// tierHex returns the tier colour of v, or def when v is missing.
func (r *Renderer) tierHex(f Family, v *float64, def string) string {
	if v == nil {
		return def
	}
	c, ok := r.colors.Tier(f, *v).Background.(interface{ Hex() string })
	if !ok {
		return def
	}
	return c.Hex()
}

func drawCard(dc *gg.Context, f *faces, c card, rect Rect) {
	dc.SetHexColor(stationCardBg)
	dc.DrawRoundedRectangle(rect.X, rect.Y, rect.W, rect.H, 10)
	dc.Fill()

	dc.SetHexColor(c.accent)
	dc.DrawRectangle(rect.X, rect.Y+8, 6, rect.H-16)
	dc.Fill()

	dc.SetHexColor("#90A4AE")
	dc.SetFontFace(f.cell)
	dc.DrawStringAnchored(c.label, rect.X+20, rect.Y+28, 0, 0.5)

	dc.SetHexColor("#FFFFFF")
	dc.SetFontFace(f.value)
	cx := rect.X + rect.W/2
	dc.DrawStringAnchored(c.value, cx, rect.Y+rect.H*0.5, 0.5, 0.5)

	if c.arrow != nil {
		drawArrow(dc, cx, rect.Y+rect.H*0.78, 28, *c.arrow, color.White)
		return
	}
	if c.unit != "" {
		dc.SetHexColor("#B0BEC5")
		dc.SetFontFace(f.small)
		dc.DrawStringAnchored(c.unit, cx, rect.Y+rect.H*0.78, 0.5, 0.5)
	}
}

func format(v *float64, layout string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(layout, *v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
