package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"StockSentiment/internal/domain"
	"StockSentiment/internal/metrics"
	"StockSentiment/internal/presenter"
)

// Analyzer is the single inbound operation exposed over HTTP.
type Analyzer interface {
	Analyze(ctx context.Context, stock string) (domain.Report, error)
}

// Server exposes the analysis pipeline as a small JSON API.
type Server struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// NewServer wires the analyzer behind HTTP routes.
func NewServer(analyzer Analyzer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{analyzer: analyzer, logger: logger}
}

// Routes configures HTTP routes.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.HandleFunc("/analyze", s.analyzeHandler).Methods(http.MethodGet)
	api.HandleFunc("/analyze/{stock}", s.analyzeHandler).Methods(http.MethodGet)

	return r
}

type headlineDTO struct {
	Headline  string `json:"headline"`
	Sentiment string `json:"sentiment"`
	Glyph     string `json:"glyph"`
}

type reportDTO struct {
	Stock          string        `json:"stock"`
	Recommendation string        `json:"recommendation"`
	Message        string        `json:"message"`
	Positive       int           `json:"positive"`
	Negative       int           `json:"negative"`
	Neutral        int           `json:"neutral"`
	Headlines      []headlineDTO `json:"headlines"`
}

type errorDTO struct {
	Error string `json:"error"`
}

func toDTO(report domain.Report) reportDTO {
	dto := reportDTO{
		Stock:          report.Stock,
		Recommendation: string(report.Recommendation),
		Message:        presenter.RecommendationMessage(report.Stock, report.Recommendation),
		Positive:       report.Positive,
		Negative:       report.Negative,
		Neutral:        report.Neutral,
		Headlines:      make([]headlineDTO, 0, len(report.Headlines)),
	}
	for _, h := range report.Headlines {
		dto.Headlines = append(dto.Headlines, headlineDTO{
			Headline:  string(h.Headline),
			Sentiment: string(h.Sentiment),
			Glyph:     h.Glyph,
		})
	}
	return dto
}

func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	stock := mux.Vars(r)["stock"]
	if stock == "" {
		stock = r.URL.Query().Get("stock")
	}

	report, err := s.analyzer.Analyze(r.Context(), stock)
	if err != nil {
		s.logger.Warn("analyze request failed", "stock", stock, "error", err)
		writeJSON(w, statusFor(err), errorDTO{Error: userMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, toDTO(report))
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	var (
		fetchErr *domain.FetchError
		classErr *domain.ClassificationError
	)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &classErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// userMessage never leaks internal error details to clients.
func userMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return presenter.MissingInputMessage
	}
	return presenter.GenericErrorMessage
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"took", time.Since(start),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
