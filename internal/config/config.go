package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for TIMEZONE on minimal images

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// DefaultModels are the forecast models requested when WEATHER_MODELS is unset.
var DefaultModels = []string{
	"icon_seamless",
	"gfs_seamless",
	"ecmwf_ifs025",
	"ecmwf_ifs04",
	"ecmwf_aifs025",
	"arpege_seamless",
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	Location           domain.Location
	Timezone           *time.Location
	Models             []string
	ForecastDays       int
	MarineForecastDays int
	// TargetDate is YYYY-MM-DD; empty means today in Timezone.
	TargetDate string

	OpenMeteoURL       string
	OpenMeteoMarineURL string
	MetarURL           string
	HTTPTimeout        time.Duration
	UpstreamRPS        float64

	StationICAO     string
	StationCatalog  string
	StationRadiusKm float64

	RunInterval time.Duration
	OutputDir   string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream payload cache. An empty RedisAddr selects the in-memory LRU.
	CacheTTL      time.Duration
	CacheSize     int
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaReportTopic string

	Thresholds domain.Thresholds
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is read first; real env vars win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	p := &parser{}
	cfg := &Config{
		Location: domain.Location{
			Name: sharedcfg.EnvOrDefault("LOCATION_NAME", "Kara Ada, Bodrum"),
			Coordinate: domain.Coordinate{
				Lat: p.float("LOCATION_LAT", 36.9710),
				Lon: p.float("LOCATION_LON", 27.4575),
			},
		},
		Models:             parseList(sharedcfg.EnvOrDefault("WEATHER_MODELS", strings.Join(DefaultModels, ","))),
		ForecastDays:       p.int("FORECAST_DAYS", 3),
		MarineForecastDays: p.int("MARINE_FORECAST_DAYS", 2),
		TargetDate:         os.Getenv("TARGET_DATE"),

		OpenMeteoURL:       sharedcfg.EnvOrDefault("OPEN_METEO_URL", "https://api.open-meteo.com/v1/forecast"),
		OpenMeteoMarineURL: sharedcfg.EnvOrDefault("OPEN_METEO_MARINE_URL", "https://marine-api.open-meteo.com/v1/marine"),
		MetarURL:           sharedcfg.EnvOrDefault("METAR_URL", "https://aviationweather.gov/api/data/metar"),
		HTTPTimeout:        p.duration("HTTP_TIMEOUT", 30*time.Second),
		UpstreamRPS:        p.float("UPSTREAM_RPS", 5),

		StationICAO:     stationICAO(),
		StationCatalog:  os.Getenv("STATION_CATALOG"),
		StationRadiusKm: p.float("STATION_RADIUS_KM", domain.DefaultStationRadiusKm),

		RunInterval: p.duration("RUN_INTERVAL", 0),
		OutputDir:   os.Getenv("OUTPUT_DIR"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CacheTTL:      p.duration("CACHE_TTL", 15*time.Minute),
		CacheSize:     p.int("CACHE_SIZE", 256),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       p.int("REDIS_DB", 0),

		KafkaEnabled:     p.bool("KAFKA_ENABLED", false),
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "dive-forecast-reports"),

		Thresholds: domain.Thresholds{
			WindWarningKnots:   p.float("WIND_WARNING_KN", domain.DefaultThresholds.WindWarningKnots),
			WindRiskyKnots:     p.float("WIND_RISKY_KN", domain.DefaultThresholds.WindRiskyKnots),
			WindDangerousKnots: p.float("WIND_DANGEROUS_KN", domain.DefaultThresholds.WindDangerousKnots),
			GustDangerousKnots: p.float("GUST_DANGEROUS_KN", domain.DefaultThresholds.GustDangerousKnots),
			WaveWarningM:       p.float("WAVE_WARNING_M", domain.DefaultThresholds.WaveWarningM),
			WaveRiskyM:         p.float("WAVE_RISKY_M", domain.DefaultThresholds.WaveRiskyM),
			WaveDangerousM:     p.float("WAVE_DANGEROUS_M", domain.DefaultThresholds.WaveDangerousM),
			VisibilityRiskyKm:  p.float("VISIBILITY_RISKY_KM", domain.DefaultThresholds.VisibilityRiskyKm),
		},
	}
	if p.err != nil {
		return nil, p.err
	}

	tz := sharedcfg.EnvOrDefault("TIMEZONE", "Europe/Istanbul")
	cfg.Timezone, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Location.Lat < -90 || c.Location.Lat > 90 {
		return errors.New("LOCATION_LAT must be within [-90, 90]")
	}
	if c.Location.Lon < -180 || c.Location.Lon > 180 {
		return errors.New("LOCATION_LON must be within [-180, 180]")
	}
	if len(c.Models) == 0 {
		return errors.New("WEATHER_MODELS is required")
	}
	if c.ForecastDays < 1 || c.ForecastDays > 16 {
		return errors.New("FORECAST_DAYS must be within [1, 16]")
	}
	if c.MarineForecastDays < 1 || c.MarineForecastDays > 8 {
		return errors.New("MARINE_FORECAST_DAYS must be within [1, 8]")
	}
	if c.TargetDate != "" {
		if _, err := time.Parse(time.DateOnly, c.TargetDate); err != nil {
			return errors.New("invalid TARGET_DATE: want YYYY-MM-DD")
		}
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if c.UpstreamRPS <= 0 {
		return errors.New("UPSTREAM_RPS must be positive")
	}
	if c.StationRadiusKm <= 0 {
		return errors.New("STATION_RADIUS_KM must be positive")
	}
	if c.RunInterval < 0 {
		return errors.New("RUN_INTERVAL must not be negative")
	}
	if c.CacheSize <= 0 {
		return errors.New("CACHE_SIZE must be positive")
	}
	if c.RedisDB < 0 {
		return errors.New("REDIS_DB must be >= 0")
	}
	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if c.KafkaReportTopic == "" {
			return errors.New("KAFKA_REPORT_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	t := c.Thresholds
	if t.WindWarningKnots >= t.WindRiskyKnots || t.WindRiskyKnots >= t.WindDangerousKnots {
		return errors.New("wind thresholds must satisfy WIND_WARNING_KN < WIND_RISKY_KN < WIND_DANGEROUS_KN")
	}
	if t.WaveWarningM >= t.WaveRiskyM || t.WaveRiskyM >= t.WaveDangerousM {
		return errors.New("wave thresholds must satisfy WAVE_WARNING_M < WAVE_RISKY_M < WAVE_DANGEROUS_M")
	}
	return nil
}

// Today returns the configured target date, or today in the configured zone.
func (c *Config) Today() string {
	if c.TargetDate != "" {
		return c.TargetDate
	}
	return domain.Today(c.Timezone)
}

// stationICAO distinguishes an unset STATION_ICAO (default station) from an
// empty one (use the station catalog).
func stationICAO() string {
	v, ok := os.LookupEnv("STATION_ICAO")
	if !ok {
		return "LTFE"
	}
	return strings.ToUpper(strings.TrimSpace(v))
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser records the first invalid value so Load can report it by key.
type parser struct {
	err error
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

func (p *parser) float(key string, def float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return v
}

func (p *parser) int(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return v
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return v
}

func (p *parser) bool(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return v
}
