package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// EarthRadiusKm is the mean earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// DefaultStationRadiusKm is the default search radius for station candidates.
const DefaultStationRadiusKm = 100.0

// ErrNoStationInRange is returned when no candidate lies within the radius.
var ErrNoStationInRange = errors.New("no station within range")

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is the named dive site a report is built for.
type Location struct {
	Name string `json:"name"`
	Coordinate
}

// StationCandidate is a station record from a catalog. Coordinates are
// optional; candidates without them are never selected.
type StationCandidate struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// Measurements is the optional-field reading of a station, in canonical units.
type Measurements struct {
	TemperatureC     *float64 `json:"temperature_c,omitempty"`
	DewpointC        *float64 `json:"dewpoint_c,omitempty"`
	HumidityPct      *float64 `json:"humidity_pct,omitempty"`
	WindSpeedKnots   *float64 `json:"wind_speed_knots,omitempty"`
	WindGustKnots    *float64 `json:"wind_gust_knots,omitempty"`
	WindDirectionDeg *float64 `json:"wind_direction_deg,omitempty"`
	WindVariable     bool     `json:"wind_variable,omitempty"`
	PressureHPa      *float64 `json:"pressure_hpa,omitempty"`
	VisibilityKm     *float64 `json:"visibility_km,omitempty"`
	Weather          string   `json:"weather,omitempty"`
	FlightCategory   string   `json:"flight_category,omitempty"`
}

// Count returns the number of numeric measurements present.
func (m Measurements) Count() int {
	n := 0
	for _, v := range []*float64{
		m.TemperatureC, m.DewpointC, m.HumidityPct,
		m.WindSpeedKnots, m.WindGustKnots, m.WindDirectionDeg,
		m.PressureHPa, m.VisibilityKm,
	} {
		if v != nil {
			n++
		}
	}
	return n
}

// Observation is the latest report of one station as decoded by an
// ObservationSource.
type Observation struct {
	StationID    string
	StationName  string
	Lat          *float64
	Lon          *float64
	ObservedAt   *time.Time
	RawReport    string
	Measurements Measurements
}

// StationSnapshot is the single-instant station reading merged into a report.
// An unavailable snapshot carries only Message.
type StationSnapshot struct {
	Available    bool          `json:"available"`
	Message      string        `json:"message,omitempty"`
	StationID    string        `json:"station_id,omitempty"`
	StationName  string        `json:"station_name,omitempty"`
	DistanceKm   *float64      `json:"distance_km,omitempty"`
	ObservedAt   *time.Time    `json:"observed_at,omitempty"`
	RawReport    string        `json:"raw_report,omitempty"`
	Measurements *Measurements `json:"measurements,omitempty"`
}

// UnavailableSnapshot builds an unavailable snapshot with a diagnostic message.
func UnavailableSnapshot(format string, args ...any) StationSnapshot {
	return StationSnapshot{Message: fmt.Sprintf(format, args...)}
}

// ObservationSource fetches the latest observation of a station.
type ObservationSource interface {
	LatestObservation(ctx context.Context, stationID string) (Observation, error)
}

// StationQuery selects the station to read: either a fixed identifier or the
// nearest of a candidate list. FixedID wins when both are set.
type StationQuery struct {
	FixedID    string
	Candidates []StationCandidate
}

// Haversine returns the great-circle distance between a and b in km.
func Haversine(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// NearestStation returns the candidate closest to ref within radiusKm and its
// distance. Candidates without coordinates are skipped; on equal distance the
// earlier candidate wins.
func NearestStation(ref Coordinate, candidates []StationCandidate, radiusKm float64) (StationCandidate, float64, bool) {
	var (
		best     StationCandidate
		bestDist = math.Inf(1)
		found    bool
	)
	for _, c := range candidates {
		if c.Lat == nil || c.Lon == nil {
			continue
		}
		d := Haversine(ref, Coordinate{Lat: *c.Lat, Lon: *c.Lon})
		if d > radiusKm || d >= bestDist {
			continue
		}
		best, bestDist, found = c, d, true
	}
	if !found {
		return StationCandidate{}, 0, false
	}
	return best, bestDist, true
}

// StationResolver picks a station and reads its latest observation.
type StationResolver struct {
	source   ObservationSource
	radiusKm float64
	logger   *slog.Logger
}

// NewStationResolver creates a resolver. A non-positive radius selects
// DefaultStationRadiusKm.
func NewStationResolver(source ObservationSource, radiusKm float64, logger *slog.Logger) *StationResolver {
	if radiusKm <= 0 {
		radiusKm = DefaultStationRadiusKm
	}
	return &StationResolver{source: source, radiusKm: radiusKm, logger: logger}
}

// Resolve returns exactly one snapshot for ref. Every failure degrades to an
// unavailable snapshot; nothing is returned as an error.
func (r *StationResolver) Resolve(ctx context.Context, ref Coordinate, q StationQuery) StationSnapshot {
	if r.source == nil {
		return UnavailableSnapshot("station source not configured")
	}

	var (
		stationID string
		distance  *float64
	)
	switch {
	case q.FixedID != "":
		stationID = q.FixedID
	default:
		c, d, ok := NearestStation(ref, q.Candidates, r.radiusKm)
		if !ok {
			r.logger.Warn("station resolution failed",
				"candidates", len(q.Candidates),
				"radius_km", r.radiusKm,
				"error", ErrNoStationInRange,
			)
			return UnavailableSnapshot("%s: none of %d candidates within %.0f km", ErrNoStationInRange, len(q.Candidates), r.radiusKm)
		}
		stationID = c.ID
		d = Round(d, 1)
		distance = &d
	}

	obs, err := r.source.LatestObservation(ctx, stationID)
	if err != nil {
		r.logger.Warn("station observation failed", "station", stationID, "error", err)
		return UnavailableSnapshot("observation for %s unavailable: %v", stationID, err)
	}
	if obs.Measurements.Count() == 0 {
		r.logger.Warn("station observation has no measurements", "station", stationID)
		return UnavailableSnapshot("observation for %s has no parsable measurement", stationID)
	}

	if distance == nil && obs.Lat != nil && obs.Lon != nil {
		d := Round(Haversine(ref, Coordinate{Lat: *obs.Lat, Lon: *obs.Lon}), 1)
		distance = &d
	}

	id := obs.StationID
	if id == "" {
		id = stationID
	}
	m := obs.Measurements
	return StationSnapshot{
		Available:    true,
		StationID:    id,
		StationName:  obs.StationName,
		DistanceKm:   distance,
		ObservedAt:   obs.ObservedAt,
		RawReport:    obs.RawReport,
		Measurements: &m,
	}
}
