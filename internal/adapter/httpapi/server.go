// Package httpapi exposes the decision engine over HTTP: health and
// metrics endpoints plus the read-only v1 decision API and the work log.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/roofcast/internal/domain"
	"github.com/couchcryptid/roofcast/internal/pipeline"
	"github.com/couchcryptid/roofcast/internal/worklog"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SnapshotSource provides the latest evaluation snapshot. Nil means no
// cycle has completed yet.
type SnapshotSource interface {
	Latest() *pipeline.Snapshot
}

// WorkLog is the persistence surface the work-log endpoints need.
type WorkLog interface {
	Put(ctx context.Context, e worklog.Entry) error
	Get(ctx context.Context, date string) (worklog.Entry, bool, error)
}

// Server exposes health, readiness, metrics, and decision API routes.
type Server struct {
	httpServer *http.Server
	source     SnapshotSource
	assemblies []domain.Assembly
	log        WorkLog
	logger     *slog.Logger
}

// NewServer wires all routes. The work log may be nil, which disables the
// /v1/worklog endpoints with 404s.
func NewServer(addr string, ready ReadinessChecker, source SnapshotSource, assemblies []domain.Assembly, log WorkLog, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source:     source,
		assemblies: assemblies,
		log:        log,
		logger:     logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/assemblies", s.handleAssemblies)
	mux.HandleFunc("GET /v1/decisions", s.handleDecisions)
	mux.HandleFunc("GET /v1/decisions/{id}", s.handleDecision)
	mux.HandleFunc("GET /v1/risk", s.handleRisk)
	mux.HandleFunc("GET /v1/schedule", s.handleSchedule)
	mux.HandleFunc("GET /v1/insights", s.handleInsights)
	if log != nil {
		mux.HandleFunc("GET /v1/worklog/{date}", s.handleWorklogGet)
		mux.HandleFunc("PUT /v1/worklog/{date}", s.handleWorklogPut)
	}

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleAssemblies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.assemblies)
}

func (s *Server) handleDecisions(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"generated_at": snap.GeneratedAt,
		"site":         snap.Site,
		"current":      snap.Current,
		"decisions":    snap.Decisions,
	})
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	id := r.PathValue("id")
	decision, found := snap.Decision(id)
	if !found {
		writeJSON(w, http.StatusNotFound, domain.NotFoundResult(id))
		return
	}
	writeJSON(w, http.StatusOK, decision)
}

func (s *Server) handleRisk(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.Risk)
}

func (s *Server) handleSchedule(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.Schedule)
}

func (s *Server) handleInsights(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap.Insights)
}

func (s *Server) handleWorklogGet(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	entry, found, err := s.log.Get(r.Context(), date)
	if err != nil {
		s.logger.Error("work log read failed", "date", date, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "work log unavailable"})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no entry for " + date})
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleWorklogPut(w http.ResponseWriter, r *http.Request) {
	var entry worklog.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid work log entry: " + err.Error()})
		return
	}
	entry.Date = r.PathValue("date")
	if err := s.log.Put(r.Context(), entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "stored", "date": entry.Date})
}

// snapshot fetches the latest snapshot, writing 503 when no evaluation
// cycle has completed yet.
func (s *Server) snapshot(w http.ResponseWriter) (*pipeline.Snapshot, bool) {
	snap := s.source.Latest()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no evaluation completed yet"})
		return nil, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
