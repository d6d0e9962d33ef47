package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/dive-forecast/internal/adapter/upstream"
	"github.com/couchcryptid/dive-forecast/internal/domain"
	"github.com/couchcryptid/dive-forecast/internal/observability"
)

const forecastPayload = `{
  "latitude": 36.97, "longitude": 27.46,
  "hourly_units": {"time": "iso8601", "wind_speed_10m": "kn", "wind_gusts_10m": "kn", "temperature_2m": "°C", "visibility": "m"},
  "hourly": {
    "time": ["2026-07-14T08:00", "2026-07-14T09:00", "2026-07-14T10:00"],
    "wind_speed_10m": [8.2, null, 11.0],
    "wind_gusts_10m": [12.0, 14.5, 16.1],
    "temperature_2m": [24.1, 25.3, 26.8],
    "visibility": [24140, 24140, 20000]
  }
}`

const marinePayload = `{
  "hourly_units": {"wave_height": "m", "swell_wave_height": "m", "swell_wave_period": "s"},
  "hourly": {
    "time": ["2026-07-14T08:00", "2026-07-14T09:00"],
    "wave_height": [0.42, 0.48],
    "swell_wave_height": [0.2, 0.22],
    "swell_wave_period": [4.1, 4.3]
  }
}`

func testClient(srvURL string) *Client {
	f := upstream.NewFetcher(5*time.Second, 100, nil, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewClient(f, Options{
		ForecastURL:  srvURL + "/v1/forecast",
		MarineURL:    srvURL + "/v1/marine",
		Timezone:     "Europe/Istanbul",
		ForecastDays: 3,
		MarineDays:   2,
	})
}

func TestClient_Forecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "gfs_seamless", q.Get("models"))
		assert.Equal(t, "36.9710", q.Get("latitude"))
		assert.Equal(t, "27.4575", q.Get("longitude"))
		assert.Equal(t, "Europe/Istanbul", q.Get("timezone"))
		assert.Equal(t, "3", q.Get("forecast_days"))
		assert.Equal(t, "kn", q.Get("wind_speed_unit"))
		assert.Contains(t, q.Get("hourly"), "wind_gusts_10m")
		_, _ = w.Write([]byte(forecastPayload))
	}))
	defer srv.Close()

	raw, err := testClient(srv.URL).Forecast(context.Background(), "gfs_seamless", domain.Coordinate{Lat: 36.9710, Lon: 27.4575})
	require.NoError(t, err)

	assert.Len(t, raw.Times, 3)
	wind := raw.Values[domain.ParamWindSpeed]
	require.Len(t, wind, 3)
	assert.InDelta(t, 8.2, *wind[0], 1e-9)
	assert.Nil(t, wind[1], "null samples stay nil")
	assert.Equal(t, domain.UnitKnots, raw.UnitOf(domain.ParamWindSpeed))
	assert.Equal(t, domain.UnitMeters, raw.UnitOf(domain.ParamVisibility))
	_, ok := raw.Values[domain.ParamPrecipitation]
	assert.False(t, ok, "absent columns are not invented")
}

func TestClient_ForecastNormalizesToCanonicalUnits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(forecastPayload))
	}))
	defer srv.Close()

	raw, err := testClient(srv.URL).Forecast(context.Background(), "gfs_seamless", domain.Coordinate{})
	require.NoError(t, err)

	s := domain.NormalizeForecast("gfs_seamless", raw, "2026-07-14", domain.DaylightWindow)
	require.True(t, s.OK())
	assert.Equal(t, []float64{8.2, 11.0}, s.WindSpeed)
	assert.InDelta(t, 24.14, s.Visibility[0], 1e-9)
}

func TestClient_Marine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/marine", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("forecast_days"))
		assert.Empty(t, r.URL.Query().Get("models"))
		_, _ = w.Write([]byte(marinePayload))
	}))
	defer srv.Close()

	raw, err := testClient(srv.URL).Marine(context.Background(), domain.Coordinate{Lat: 36.97, Lon: 27.46})
	require.NoError(t, err)
	assert.Len(t, raw.Times, 2)
	assert.InDelta(t, 0.48, *raw.Values[domain.ParamWaveHeight][1], 1e-9)
	assert.Equal(t, domain.UnitSeconds, raw.UnitOf(domain.ParamSwellPeriod))
}

func TestClient_ForecastUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Invalid model"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Forecast(context.Background(), "nope", domain.Coordinate{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
	assert.Contains(t, err.Error(), "Invalid model")
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		model   string
		wantErr string
		check   func(t *testing.T, raw domain.RawSeries)
	}{
		{
			name:    "invalid json",
			body:    `{"hourly":`,
			wantErr: "invalid JSON",
		},
		{
			name:    "error payload",
			body:    `{"error":true,"reason":"Latitude must be in range"}`,
			wantErr: "Latitude must be in range",
		},
		{
			name:    "missing hourly",
			body:    `{"latitude":1}`,
			wantErr: ErrNoHourlyData.Error(),
		},
		{
			name:    "empty time axis",
			body:    `{"hourly":{"time":[]}}`,
			wantErr: ErrNoHourlyData.Error(),
		},
		{
			name:  "model-suffixed columns",
			model: "icon_seamless",
			body: `{"hourly_units":{"wind_speed_10m_icon_seamless":"km/h"},
			        "hourly":{"time":["2026-07-14T08:00"],"wind_speed_10m_icon_seamless":[18.52]}}`,
			check: func(t *testing.T, raw domain.RawSeries) {
				require.Len(t, raw.Values[domain.ParamWindSpeed], 1)
				assert.InDelta(t, 18.52, *raw.Values[domain.ParamWindSpeed][0], 1e-9)
				assert.Equal(t, domain.UnitKilometersPerHour, raw.UnitOf(domain.ParamWindSpeed))
			},
		},
		{
			name: "unlabelled column assumes canonical unit",
			body: `{"hourly":{"time":["2026-07-14T08:00"],"temperature_2m":[21.5]}}`,
			check: func(t *testing.T, raw domain.RawSeries) {
				assert.Equal(t, domain.UnitCelsius, raw.UnitOf(domain.ParamTemperature))
			},
		},
		{
			name: "non-numeric samples become nil",
			body: `{"hourly":{"time":["a","b"],"temperature_2m":["x",3]}}`,
			check: func(t *testing.T, raw domain.RawSeries) {
				col := raw.Values[domain.ParamTemperature]
				assert.Nil(t, col[0])
				assert.InDelta(t, 3.0, *col[1], 1e-9)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Decode([]byte(tt.body), domain.ForecastParameters, tt.model)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, raw)
		})
	}
}
