package render

import (
	"hash/fnv"
	"image/color"
	"maps"

	"github.com/lucasb-eyer/go-colorful"
)

// ModelStyle is the display name and line colour of a model.
type ModelStyle struct {
	Name  string
	Color string
}

// ModelStyles is an immutable lookup of model display styles. Unknown model
// ids get their id as name and a colour derived from a hash of the id.
type ModelStyles struct {
	styles map[string]ModelStyle
}

// NewModelStyles builds a lookup from the given entries.
func NewModelStyles(entries map[string]ModelStyle) ModelStyles {
	return ModelStyles{styles: maps.Clone(entries)}
}

// DefaultModelStyles covers the models Open-Meteo exposes for the region.
func DefaultModelStyles() ModelStyles {
	return NewModelStyles(map[string]ModelStyle{
		"ecmwf_ifs025":         {Name: "ECMWF IFS 0.25", Color: "#e74c3c"},
		"ecmwf_ifs04":          {Name: "ECMWF IFS HRES 9km", Color: "#c0392b"},
		"ecmwf_aifs025":        {Name: "ECMWF AIFS", Color: "#8e44ad"},
		"ecmwf_ifs":            {Name: "ECMWF IFS", Color: "#e74c3c"},
		"icon_seamless":        {Name: "ICON (DWD)", Color: "#3498db"},
		"icon_eu":              {Name: "ICON-EU (DWD)", Color: "#2980b9"},
		"gfs_seamless":         {Name: "GFS (NOAA)", Color: "#f39c12"},
		"meteofrance_seamless": {Name: "Meteo-France", Color: "#2ecc71"},
		"arpege_seamless":      {Name: "ARPEGE", Color: "#16a085"},
		"gem_seamless":         {Name: "GEM (Canada)", Color: "#7f8c8d"},
	})
}

// With returns a copy of s with id set to style.
func (s ModelStyles) With(id string, style ModelStyle) ModelStyles {
	next := maps.Clone(s.styles)
	if next == nil {
		next = make(map[string]ModelStyle, 1)
	}
	next[id] = style
	return ModelStyles{styles: next}
}

// Name returns the display name of a model.
func (s ModelStyles) Name(id string) string {
	if st, ok := s.styles[id]; ok && st.Name != "" {
		return st.Name
	}
	return id
}

// Color returns the line colour of a model.
func (s ModelStyles) Color(id string) color.Color {
	if st, ok := s.styles[id]; ok && st.Color != "" {
		if c, err := colorful.Hex(st.Color); err == nil {
			return c
		}
	}
	return hashedColor(id)
}

func hashedColor(id string) colorful.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	sum := h.Sum32()
	hue := float64(sum % 360)
	return colorful.Hsv(hue, 0.65, 0.85)
}
