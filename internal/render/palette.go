package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Family selects the threshold table used to colour a value.
type Family int

const (
	FamilyNone Family = iota
	FamilyWind
	FamilyWave
	FamilyTemperature
	FamilyPrecipitation
)

func (f Family) String() string {
	switch f {
	case FamilyWind:
		return "wind"
	case FamilyWave:
		return "wave"
	case FamilyTemperature:
		return "temperature"
	case FamilyPrecipitation:
		return "precipitation"
	default:
		return "none"
	}
}

// Tier is the colour bucket of a value. Index 0 is the least severe.
type Tier struct {
	Index      int
	Background color.Color
	Foreground color.Color
}

type palette struct {
	thresholds []float64
	colors     []colorful.Color
}

// ColorMapper maps magnitudes to colour tiers. Thresholds are exclusive upper
// bounds: a value below thresholds[i] (and not below thresholds[i-1]) takes
// tier i; values at or above the last threshold take the extreme tier.
type ColorMapper struct {
	palettes map[Family]palette
	neutral  colorful.Color
	dark     colorful.Color
	light    colorful.Color
}

// NewColorMapper builds the fixed palettes.
func NewColorMapper() ColorMapper {
	return ColorMapper{
		palettes: map[Family]palette{
			FamilyWind: newPalette(
				[]float64{5, 10, 15, 20, 25, 30, 35, 40, 45},
				"#E8F5E9", "#C8E6C9", "#A5D6A7", "#FFEB3B", "#FFC107",
				"#FF9800", "#FF5722", "#F44336", "#E91E63", "#9C27B0",
			),
			FamilyWave: newPalette(
				[]float64{0.3, 0.5, 0.8, 1.0, 1.5, 2.0},
				"#E3F2FD", "#BBDEFB", "#90CAF9", "#64B5F6", "#42A5F5", "#2196F3", "#1565C0",
			),
			FamilyTemperature: newPalette(
				[]float64{10, 15, 20, 25, 30},
				"#90CAF9", "#E1F5FE", "#FFF9C4", "#FFEB3B", "#FF9800", "#FF5722",
			),
			FamilyPrecipitation: newPalette(
				[]float64{0.1, 1, 3, 5, 10},
				"#FAFAFA", "#E1F5FE", "#81D4FA", "#29B6F6", "#0288D1", "#01579B",
			),
		},
		neutral: mustHex("#ECEFF1"),
		dark:    mustHex("#212121"),
		light:   mustHex("#FFFFFF"),
	}
}

func newPalette(thresholds []float64, hexes ...string) palette {
	if len(hexes) != len(thresholds)+1 {
		panic("render: palette needs one more colour than thresholds")
	}
	colors := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		colors[i] = mustHex(h)
	}
	return palette{thresholds: thresholds, colors: colors}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad colour " + s)
	}
	return c
}

// TierIndex returns the tier index of v in family f. NaN maps to 0.
func (m ColorMapper) TierIndex(f Family, v float64) int {
	p, ok := m.palettes[f]
	if !ok || math.IsNaN(v) {
		return 0
	}
	return sort.Search(len(p.thresholds), func(i int) bool { return p.thresholds[i] > v })
}

// Tiers returns the number of tiers of family f.
func (m ColorMapper) Tiers(f Family) int {
	if p, ok := m.palettes[f]; ok {
		return len(p.colors)
	}
	return 1
}

// Tier returns the colours for v in family f. FamilyNone yields the neutral
// cell colour. Text is light on the two most severe tiers.
func (m ColorMapper) Tier(f Family, v float64) Tier {
	p, ok := m.palettes[f]
	if !ok {
		return Tier{Background: m.neutral, Foreground: m.dark}
	}
	idx := m.TierIndex(f, v)
	fg := m.dark
	if idx >= len(p.colors)-2 {
		fg = m.light
	}
	return Tier{Index: idx, Background: p.colors[idx], Foreground: fg}
}

func hexColor(s string) color.Color {
	return mustHex(s)
}
