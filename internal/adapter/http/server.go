package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/dive-forecast/internal/domain"
)

// ReportSource returns the report of the last completed run.
type ReportSource interface {
	Latest() (domain.Report, bool)
}

// Server exposes health, readiness, metrics and the latest report.
type Server struct {
	httpServer *http.Server
	reports    ReportSource
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /report/latest routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, reports ReportSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		reports: reports,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /report/latest", s.handleReport)
	mux.HandleFunc("GET /report/latest/{image}", s.handleImage)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	report, ok := s.reports.Latest()
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "no report yet"})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reports.Latest()
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "no report yet"})
		return
	}

	var img []byte
	switch name := r.PathValue("image"); name {
	case "table.png":
		img = report.Images.Table
	case "chart.png":
		img = report.Images.Chart
	case "station.png":
		img = report.Images.Station
	default:
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "unknown image " + name})
		return
	}
	if img == nil {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "image unavailable for this run"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Run-Id", report.RunID)
	if _, err := w.Write(img); err != nil {
		s.logger.Debug("image write failed", "error", err)
	}
}
