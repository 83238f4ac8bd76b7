// Package api exposes the audit pipeline over HTTP for the upload UI
// and other collaborators. The server carries no analysis logic; it
// decodes uploads, runs the pipeline and returns the report as JSON.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gtmops/tagscope/internal/gtm"
	"github.com/gtmops/tagscope/internal/logger"
	"github.com/gtmops/tagscope/internal/report"
)

// maxUploadBytes caps the accepted container export size.
const maxUploadBytes = 32 << 20

// Server represents the API server
type Server struct {
	router          *mux.Router
	namingWhitelist []string
}

// Options configures the API server
type Options struct {
	// NamingWhitelist lists tag names exempt from naming assessment
	NamingWhitelist []string
}

// NewServer creates a new API server instance
func NewServer(opts *Options) *Server {
	s := &Server{
		router: mux.NewRouter(),
	}
	if opts != nil {
		s.namingWhitelist = opts.NamingWhitelist
	}
	s.routes()
	return s
}

// routes sets up the API routes
func (s *Server) routes() {
	s.router.HandleFunc("/api/v1/health", s.healthCheck).Methods("GET")
	s.router.HandleFunc("/api/v1/analyze", s.analyze).Methods("POST")
}

// Handler returns the server's root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	logger.Info().Msgf("Starting server on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// analyze accepts a GTM container export body and returns the audit
// report. Malformed JSON and missing required keys are the only client
// errors; everything else in the export degrades gracefully inside the
// analysis core.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	container, err := gtm.Decode(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, gtm.ErrInvalidJSON):
		case errors.Is(err, gtm.ErrMissingContainerVersion):
		case errors.Is(err, gtm.ErrMissingTags):
		default:
			status = http.StatusInternalServerError
		}
		s.writeJSON(w, status, map[string]string{
			"error": err.Error(),
		})
		return
	}

	rep := report.Build(container, &report.Options{
		Source:          "upload",
		NamingWhitelist: s.namingWhitelist,
	})

	s.writeJSON(w, http.StatusOK, rep)
}

// writeJSON encodes v as the response body
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Msgf("Failed to encode response: %v", err)
	}
}
