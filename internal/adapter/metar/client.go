// Package metar reads the latest aviation weather report of a station from
// the aviationweather.gov data API.
package metar

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/couchcryptid/dive-forecast/internal/adapter/upstream"
	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// Source names the METAR feed on metrics.
const Source = "metar"

// ErrNoReport is returned when the API has no recent report for a station.
var ErrNoReport = errors.New("no recent METAR report")

// lookbackHours is how far back reports are requested; the newest one wins.
const lookbackHours = "3"

// Client implements domain.ObservationSource.
type Client struct {
	fetcher *upstream.Fetcher
	baseURL string
}

// NewClient creates a METAR client for the given endpoint.
func NewClient(fetcher *upstream.Fetcher, baseURL string) *Client {
	return &Client{fetcher: fetcher, baseURL: baseURL}
}

// LatestObservation returns the most recent report of stationID.
func (c *Client) LatestObservation(ctx context.Context, stationID string) (domain.Observation, error) {
	params := url.Values{
		"ids":    {strings.ToUpper(stationID)},
		"format": {"json"},
		"hours":  {lookbackHours},
	}
	body, err := c.fetcher.Get(ctx, Source, c.baseURL+"?"+params.Encode())
	if err != nil {
		return domain.Observation{}, fmt.Errorf("fetch METAR for %s: %w", stationID, err)
	}

	if !gjson.ValidBytes(body) {
		return domain.Observation{}, fmt.Errorf("decode METAR for %s: invalid JSON payload", stationID)
	}
	reports := gjson.ParseBytes(body)
	if !reports.IsArray() || len(reports.Array()) == 0 {
		return domain.Observation{}, fmt.Errorf("%s: %w", stationID, ErrNoReport)
	}

	newest := reports.Array()[0]
	for _, r := range reports.Array()[1:] {
		if r.Get("obsTime").Int() > newest.Get("obsTime").Int() {
			newest = r
		}
	}
	return Decode(newest), nil
}

// Decode maps one report object onto an Observation in canonical units.
// Fields the report omits stay nil.
func Decode(r gjson.Result) domain.Observation {
	obs := domain.Observation{
		StationID:   r.Get("icaoId").String(),
		StationName: r.Get("name").String(),
		Lat:         number(r.Get("lat")),
		Lon:         number(r.Get("lon")),
		RawReport:   r.Get("rawOb").String(),
		ObservedAt:  observedAt(r),
	}

	m := &obs.Measurements
	m.TemperatureC = rounded(number(r.Get("temp")), 1)
	m.DewpointC = rounded(number(r.Get("dewp")), 1)
	if m.TemperatureC != nil && m.DewpointC != nil {
		rh := domain.Round(domain.RelativeHumidity(*m.TemperatureC, *m.DewpointC), 0)
		m.HumidityPct = &rh
	}

	m.WindSpeedKnots = number(r.Get("wspd"))
	m.WindGustKnots = number(r.Get("wgst"))
	switch wdir := r.Get("wdir"); {
	case wdir.Type == gjson.Number:
		m.WindDirectionDeg = number(wdir)
	case strings.EqualFold(wdir.String(), "VRB"):
		m.WindVariable = true
	}

	m.PressureHPa = rounded(number(r.Get("altim")), 1)
	m.VisibilityKm = rounded(visibility(r.Get("visib")), 1)
	m.Weather = r.Get("wxString").String()
	m.FlightCategory = r.Get("fltcat").String()
	return obs
}

func number(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}

func rounded(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	r := domain.Round(*v, places)
	return &r
}

// visibility reads statute miles, numeric or qualified ("6+", "P6", "1/2").
func visibility(v gjson.Result) *float64 {
	var miles float64
	switch v.Type {
	case gjson.Number:
		miles = v.Float()
	case gjson.String:
		f, ok := domain.ParseNumeric(v.String())
		if !ok {
			return nil
		}
		miles = f
	default:
		return nil
	}
	return domain.ConvertPtr(&miles, domain.UnitStatuteMiles, domain.UnitKilometers)
}

func observedAt(r gjson.Result) *time.Time {
	if ts := r.Get("obsTime"); ts.Type == gjson.Number && ts.Int() > 0 {
		t := time.Unix(ts.Int(), 0).UTC()
		return &t
	}
	s := r.Get("reportTime").String()
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
