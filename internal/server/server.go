// Package server exposes poem analysis as a JSON HTTP API.
//
// Endpoints:
//
//	POST /api/analyze  body: {"text":"..."} or {"document":{...}}
//	GET  /api/forms
//	GET  /healthz
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/pthm/prosody/internal/config"
	"github.com/pthm/prosody/internal/forms"
	"github.com/pthm/prosody/internal/parser"
	"github.com/pthm/prosody/internal/phonetics"
	"github.com/pthm/prosody/internal/pipeline"
	"github.com/pthm/prosody/internal/reporter"
	"github.com/pthm/prosody/internal/version"
)

type analyzeRequest struct {
	Text     string           `json:"text"`
	Title    string           `json:"title,omitempty"`
	Author   string           `json:"author,omitempty"`
	Document *parser.Document `json:"document,omitempty"`
}

type formsResponse struct {
	Forms []*forms.Form `json:"forms"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves the analysis API
type Server struct {
	analyzer *pipeline.Analyzer
	cfg      config.ServerConfig
	cors     config.CORSConfig
	logger   *slog.Logger
}

// New creates a server around an analyzer
func New(analyzer *pipeline.Analyzer, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		analyzer: analyzer,
		cfg:      cfg.Server,
		cors:     cfg.CORS,
		logger:   logger,
	}
}

// Handler returns the routed, CORS-wrapped handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/forms", s.handleForms)
	mux.HandleFunc("/healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cors.OriginList(),
		AllowedMethods: s.cors.MethodList(),
		AllowedHeaders: s.cors.HeaderList(),
		MaxAge:         s.cors.MaxAge,
	})
	return c.Handler(s.withRequestID(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var body analyzeRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "body must be JSON with a 'text' or 'document' field")
		return
	}

	var in *parser.ParsedFile
	switch {
	case body.Document != nil:
		if _, err := body.Document.Poem(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		in = &parser.ParsedFile{
			Path:     "request",
			FileType: parser.FileTypeJSON,
			Title:    body.Document.Title,
			Author:   body.Document.Author,
			Document: body.Document,
		}
	case strings.TrimSpace(body.Text) != "":
		in = &parser.ParsedFile{
			Path:    "request",
			Title:   body.Title,
			Author:  body.Author,
			Stanzas: parser.SplitStanzas(body.Text),
		}
	default:
		writeError(w, http.StatusBadRequest, "body must be JSON with a 'text' or 'document' field")
		return
	}

	rep, err := s.analyzer.Analyze(r.Context(), in, nil)
	if err != nil {
		s.logger.Warn("analysis failed", "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reporter.ToJSON(rep))
}

// statusFor maps analysis errors onto HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, phonetics.ErrEmptyText):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrNoSource), errors.Is(err, phonetics.ErrNoAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleForms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, formsResponse{Forms: s.analyzer.Catalog().Forms()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: version.Short()})
}
