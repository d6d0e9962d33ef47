//go:build smoke

package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/dive-forecast/internal/adapter/upstream"
	"github.com/couchcryptid/dive-forecast/internal/domain"
	"github.com/couchcryptid/dive-forecast/internal/observability"
)

// These tests hit the public Open-Meteo APIs.
// Run with: go test -tags=smoke ./internal/adapter/openmeteo/ -v -count=1

var karaAda = domain.Coordinate{Lat: 36.9710, Lon: 27.4575}

func smokeClient() *Client {
	f := upstream.NewFetcher(30*time.Second, 2, nil, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewClient(f, Options{
		ForecastURL:  "https://api.open-meteo.com/v1/forecast",
		MarineURL:    "https://marine-api.open-meteo.com/v1/marine",
		Timezone:     "Europe/Istanbul",
		ForecastDays: 3,
		MarineDays:   2,
	})
}

func TestSmoke_Forecast(t *testing.T) {
	raw, err := smokeClient().Forecast(context.Background(), "gfs_seamless", karaAda)
	require.NoError(t, err)

	assert.Len(t, raw.Times, 72)
	assert.Len(t, raw.Values[domain.ParamWindSpeed], 72)
	assert.Equal(t, domain.UnitKnots, raw.UnitOf(domain.ParamWindSpeed))
}

func TestSmoke_Marine(t *testing.T) {
	raw, err := smokeClient().Marine(context.Background(), karaAda)
	require.NoError(t, err)

	assert.Len(t, raw.Times, 48)
	assert.Equal(t, domain.UnitMeters, raw.UnitOf(domain.ParamWaveHeight))
}
