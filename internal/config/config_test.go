package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Kara Ada, Bodrum", cfg.Location.Name)
	assert.InDelta(t, 36.9710, cfg.Location.Lat, 1e-9)
	assert.InDelta(t, 27.4575, cfg.Location.Lon, 1e-9)
	assert.Equal(t, "Europe/Istanbul", cfg.Timezone.String())
	assert.Equal(t, DefaultModels, cfg.Models)
	assert.Equal(t, 3, cfg.ForecastDays)
	assert.Equal(t, 2, cfg.MarineForecastDays)
	assert.Empty(t, cfg.TargetDate)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.OpenMeteoURL)
	assert.Equal(t, "https://marine-api.open-meteo.com/v1/marine", cfg.OpenMeteoMarineURL)
	assert.Equal(t, "https://aviationweather.gov/api/data/metar", cfg.MetarURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "LTFE", cfg.StationICAO)
	assert.InDelta(t, domain.DefaultStationRadiusKm, cfg.StationRadiusKm, 1e-9)
	assert.Zero(t, cfg.RunInterval)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "dive-forecast-reports", cfg.KafkaReportTopic)
	assert.Equal(t, domain.DefaultThresholds, cfg.Thresholds)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("LOCATION_NAME", "Gokova")
	t.Setenv("LOCATION_LAT", "37.0")
	t.Setenv("LOCATION_LON", "28.1")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("WEATHER_MODELS", " gfs_seamless , icon_seamless,,")
	t.Setenv("FORECAST_DAYS", "5")
	t.Setenv("TARGET_DATE", "2026-07-14")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("STATION_ICAO", "ltbj")
	t.Setenv("RUN_INTERVAL", "1h")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("CACHE_SIZE", "16")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("WIND_DANGEROUS_KN", "28")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Gokova", cfg.Location.Name)
	assert.InDelta(t, 37.0, cfg.Location.Lat, 1e-9)
	assert.Equal(t, "UTC", cfg.Timezone.String())
	assert.Equal(t, []string{"gfs_seamless", "icon_seamless"}, cfg.Models)
	assert.Equal(t, 5, cfg.ForecastDays)
	assert.Equal(t, "2026-07-14", cfg.Today())
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "LTBJ", cfg.StationICAO)
	assert.Equal(t, time.Hour, cfg.RunInterval)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.InDelta(t, 28.0, cfg.Thresholds.WindDangerousKnots, 1e-9)
}

func TestLoad_EmptyStationICAOUsesCatalog(t *testing.T) {
	t.Setenv("STATION_ICAO", "")
	t.Setenv("STATION_CATALOG", "stations.geojson")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.StationICAO)
	assert.Equal(t, "stations.geojson", cfg.StationCatalog)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"LOCATION_LAT", "north"},
		{"LOCATION_LAT", "91"},
		{"LOCATION_LON", "-181"},
		{"FORECAST_DAYS", "0"},
		{"MARINE_FORECAST_DAYS", "9"},
		{"TARGET_DATE", "14/07/2026"},
		{"TIMEZONE", "Mars/Olympus"},
		{"HTTP_TIMEOUT", "bad"},
		{"UPSTREAM_RPS", "0"},
		{"STATION_RADIUS_KM", "-5"},
		{"RUN_INTERVAL", "-1m"},
		{"CACHE_SIZE", "0"},
		{"REDIS_DB", "x"},
		{"KAFKA_ENABLED", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_EmptyModelList(t *testing.T) {
	t.Setenv("WEATHER_MODELS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_MODELS")
}

func TestLoad_UnorderedThresholds(t *testing.T) {
	t.Setenv("WIND_RISKY_KN", "12")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WIND_RISKY_KN")

	t.Setenv("WIND_RISKY_KN", "")
	t.Setenv("WAVE_DANGEROUS_M", "1.2")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAVE_DANGEROUS_M")
}

func TestToday_DefaultsToClockDate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, domain.Today(cfg.Timezone), cfg.Today())
}
