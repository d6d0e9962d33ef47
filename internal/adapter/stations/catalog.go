// Package stations loads candidate observation stations from a GeoJSON
// FeatureCollection of points.
package stations

import (
	"errors"
	"fmt"
	"os"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// ErrEmptyCatalog is returned when a catalog holds no usable station.
var ErrEmptyCatalog = errors.New("station catalog is empty")

// LoadCatalog reads and parses the catalog file at path.
func LoadCatalog(path string) ([]domain.StationCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog converts features to candidates. The identifier comes from the
// "icao" or "id" property, falling back to the feature id; features without
// one are skipped. Features that are not points keep nil coordinates.
func ParseCatalog(data []byte) ([]domain.StationCandidate, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse station catalog: %w", err)
	}

	out := make([]domain.StationCandidate, 0, len(fc.Features))
	for _, f := range fc.Features {
		id := stationID(f)
		if id == "" {
			continue
		}
		c := domain.StationCandidate{
			ID:   id,
			Name: f.PropertyMustString("name", ""),
		}
		if f.Geometry != nil && f.Geometry.IsPoint() && len(f.Geometry.Point) >= 2 {
			lon, lat := f.Geometry.Point[0], f.Geometry.Point[1]
			c.Lat, c.Lon = &lat, &lon
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, ErrEmptyCatalog
	}
	return out, nil
}

func stationID(f *geojson.Feature) string {
	for _, key := range []string{"icao", "id"} {
		if s := f.PropertyMustString(key, ""); s != "" {
			return strings.ToUpper(s)
		}
	}
	if s, ok := f.ID.(string); ok {
		return strings.ToUpper(s)
	}
	return ""
}
