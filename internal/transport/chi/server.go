// Package chi exposes the search API over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/geodex-search/geodex/internal/domain"
	"github.com/geodex-search/geodex/internal/domain/search/request"
	"github.com/geodex-search/geodex/internal/domain/search/result"
	healthuc "github.com/geodex-search/geodex/internal/usecase/health"
)

// Searcher runs the search pipeline.
type Searcher interface {
	Search(ctx context.Context, req request.Request) ([]result.Hit, error)
}

// Facets computes the corpus analytics.
type Facets interface {
	TopGeoreferences(ctx context.Context) ([]string, error)
	DatesDistribution(ctx context.Context) ([]result.Bucket, error)
}

// Health runs component health checks.
type Health interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers.
type Server struct {
	search        Searcher
	facets        Facets
	health        Health
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, facets Facets, health Health, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		facets: facets,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, "bad_request"),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, "index_unavailable"),
		sentinelHandler(domain.ErrGeocoderUnavailable, http.StatusBadGateway, "geocoder_unavailable"),
		sentinelHandler(domain.ErrRecognizerUnavailable, http.StatusBadGateway, "recognizer_unavailable"),
	}
	return s
}

// Routes mounts the API endpoints.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.Search)
	r.Get("/top_ten", s.TopTen)
	r.Get("/dates_distribution", s.DatesDistribution)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchRequestBody struct {
	Query            string `json:"query"`
	Topic            string `json:"topic"`
	Author           string `json:"author"`
	SpecificLocation string `json:"specific_location"`
}

type titleItem struct {
	Title string `json:"title"`
}

// Search handles POST /search. The response is a bare array of title
// objects, the shape the original frontend consumes.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	req, err := request.New(body.Query, body.Topic, body.Author, body.SpecificLocation, clientIP(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	hits, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]titleItem, len(hits))
	for i, h := range hits {
		items[i] = titleItem{Title: h.Title()}
	}
	writeJSON(w, http.StatusOK, items)
}

// TopTen handles GET /top_ten: the most frequent georeferences as place names.
func (s *Server) TopTen(w http.ResponseWriter, r *http.Request) {
	names, err := s.facets.TopGeoreferences(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

type dateCountItem struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DatesDistribution handles GET /dates_distribution: daily document counts.
func (s *Server) DatesDistribution(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.facets.DatesDistribution(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]dateCountItem, len(buckets))
	for i, b := range buckets {
		items[i] = dateCountItem{Date: b.Key, Count: b.Count}
	}
	writeJSON(w, http.StatusOK, items)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// clientIP extracts the caller's address for device-location inference,
// preferring the first X-Forwarded-For hop.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrIndexUnavailable,
		domain.ErrGeocoderUnavailable,
		domain.ErrRecognizerUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
