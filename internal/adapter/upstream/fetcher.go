// Package upstream performs rate-limited, cached GETs against the public
// weather APIs.
package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/couchcryptid/dive-forecast/internal/adapter/cache"
	"github.com/couchcryptid/dive-forecast/internal/observability"
)

// maxBody caps upstream payloads; a three-day hourly forecast is well below it.
const maxBody = 8 << 20

// Fetcher issues GET requests shared by every upstream client. Successful JSON
// payloads are cached by URL.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.Store
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewFetcher creates a fetcher allowing rps requests per second. A nil store
// disables caching.
func NewFetcher(timeout time.Duration, rps float64, store cache.Store, metrics *observability.Metrics, logger *slog.Logger) *Fetcher {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		cache:      store,
		metrics:    metrics,
		logger:     logger,
	}
}

// Get returns the body of url. source labels metrics and log lines.
func (f *Fetcher) Get(ctx context.Context, source, url string) ([]byte, error) {
	if body, ok := f.cached(ctx, url); ok {
		return body, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	start := time.Now()
	body, err := f.do(ctx, url)
	f.metrics.SourceFetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err != nil {
		f.metrics.SourceFetches.WithLabelValues(source, "error").Inc()
		return nil, err
	}
	f.metrics.SourceFetches.WithLabelValues(source, "success").Inc()

	if f.cache != nil && gjson.ValidBytes(body) {
		if err := f.cache.Set(ctx, url, body); err != nil {
			f.metrics.Cache.WithLabelValues("error").Inc()
			f.logger.Warn("cache write failed", "source", source, "error", err)
		}
	}
	return body, nil
}

func (f *Fetcher) cached(ctx context.Context, url string) ([]byte, bool) {
	if f.cache == nil {
		return nil, false
	}
	body, ok, err := f.cache.Get(ctx, url)
	switch {
	case err != nil:
		f.metrics.Cache.WithLabelValues("error").Inc()
		f.logger.Warn("cache read failed", "error", err)
		return nil, false
	case !ok:
		f.metrics.Cache.WithLabelValues("miss").Inc()
		return nil, false
	default:
		f.metrics.Cache.WithLabelValues("hit").Inc()
		return body, true
	}
}

func (f *Fetcher) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, errorReason(body))
	}
	return body, nil
}

// errorReason extracts Open-Meteo's {"error":true,"reason":...} message, or
// falls back to the raw body.
func errorReason(body []byte) string {
	if r := gjson.GetBytes(body, "reason"); r.Exists() {
		return r.String()
	}
	if len(body) > 200 {
		return string(body[:200])
	}
	return string(body)
}
