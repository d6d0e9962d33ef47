// Package openmeteo fetches hourly model forecasts and the marine forecast
// from the Open-Meteo APIs.
package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/couchcryptid/dive-forecast/internal/adapter/upstream"
	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// MarineSource names the marine feed on series and metrics.
const MarineSource = "open-meteo-marine"

// ErrNoHourlyData is returned when a payload carries no hourly time axis.
var ErrNoHourlyData = errors.New("no hourly data")

// Client queries the forecast and marine endpoints.
type Client struct {
	fetcher      *upstream.Fetcher
	forecastURL  string
	marineURL    string
	timezone     string
	forecastDays int
	marineDays   int
}

// Options configures a Client.
type Options struct {
	ForecastURL  string
	MarineURL    string
	Timezone     string
	ForecastDays int
	MarineDays   int
}

// NewClient creates a client that issues its requests through fetcher.
func NewClient(fetcher *upstream.Fetcher, opts Options) *Client {
	return &Client{
		fetcher:      fetcher,
		forecastURL:  opts.ForecastURL,
		marineURL:    opts.MarineURL,
		timezone:     opts.Timezone,
		forecastDays: opts.ForecastDays,
		marineDays:   opts.MarineDays,
	}
}

// Forecast fetches one model's hourly forecast at the given point.
func (c *Client) Forecast(ctx context.Context, model string, at domain.Coordinate) (domain.RawSeries, error) {
	params := c.query(at, domain.ForecastParameters, c.forecastDays)
	params.Set("models", model)
	params.Set("wind_speed_unit", "kn")

	body, err := c.fetcher.Get(ctx, "forecast:"+model, c.forecastURL+"?"+params.Encode())
	if err != nil {
		return domain.RawSeries{}, fmt.Errorf("fetch %s forecast: %w", model, err)
	}
	raw, err := Decode(body, domain.ForecastParameters, model)
	if err != nil {
		return domain.RawSeries{}, fmt.Errorf("decode %s forecast: %w", model, err)
	}
	return raw, nil
}

// Marine fetches the hourly wave and swell forecast at the given point.
func (c *Client) Marine(ctx context.Context, at domain.Coordinate) (domain.RawSeries, error) {
	params := c.query(at, domain.MarineParameters, c.marineDays)

	body, err := c.fetcher.Get(ctx, MarineSource, c.marineURL+"?"+params.Encode())
	if err != nil {
		return domain.RawSeries{}, fmt.Errorf("fetch marine forecast: %w", err)
	}
	raw, err := Decode(body, domain.MarineParameters, "")
	if err != nil {
		return domain.RawSeries{}, fmt.Errorf("decode marine forecast: %w", err)
	}
	return raw, nil
}

func (c *Client) query(at domain.Coordinate, params []domain.Parameter, days int) url.Values {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = string(p)
	}
	return url.Values{
		"latitude":      {strconv.FormatFloat(at.Lat, 'f', 4, 64)},
		"longitude":     {strconv.FormatFloat(at.Lon, 'f', 4, 64)},
		"hourly":        {strings.Join(names, ",")},
		"timezone":      {c.timezone},
		"forecast_days": {strconv.Itoa(days)},
	}
}

// Decode reads the hourly columns of an Open-Meteo payload. Null samples are
// kept as nil so positions stay aligned with the time axis. When a column is
// missing under its plain name, the model-suffixed name ("wind_speed_10m_gfs_seamless")
// is tried.
func Decode(body []byte, params []domain.Parameter, model string) (domain.RawSeries, error) {
	if !gjson.ValidBytes(body) {
		return domain.RawSeries{}, errors.New("invalid JSON payload")
	}
	doc := gjson.ParseBytes(body)
	if doc.Get("error").Bool() {
		return domain.RawSeries{}, fmt.Errorf("upstream error: %s", doc.Get("reason").String())
	}

	hourly := doc.Get("hourly")
	times := hourly.Get("time")
	if !times.IsArray() || len(times.Array()) == 0 {
		return domain.RawSeries{}, ErrNoHourlyData
	}

	raw := domain.RawSeries{
		Values: make(map[domain.Parameter][]*float64, len(params)),
		Units:  make(map[domain.Parameter]domain.Unit, len(params)),
	}
	for _, t := range times.Array() {
		raw.Times = append(raw.Times, t.String())
	}

	units := doc.Get("hourly_units")
	for _, p := range params {
		key := string(p)
		col := hourly.Get(gjson.Escape(key))
		if !col.Exists() && model != "" {
			key = key + "_" + model
			col = hourly.Get(gjson.Escape(key))
		}
		if !col.IsArray() {
			continue
		}
		raw.Values[p] = column(col)
		if u := units.Get(gjson.Escape(key)); u.Exists() {
			raw.Units[p] = domain.ParseUnit(u.String())
		}
	}
	return raw, nil
}

func column(col gjson.Result) []*float64 {
	items := col.Array()
	out := make([]*float64, len(items))
	for i, v := range items {
		if v.Type != gjson.Number {
			continue
		}
		f := v.Float()
		out[i] = &f
	}
	return out
}
