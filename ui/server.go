// Package ui exposes the evaluation engine over HTTP as a JSON API.
package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"evidec/app"
	"evidec/domain/core"
	"evidec/internal"
)

// Server wires the evaluation services into a chi router.
type Server struct {
	router *chi.Mux
	eval   *app.EvaluationService
	sweep  *app.SweepService
	log    *internal.Logger
}

// NewServer creates the HTTP server around the given services.
func NewServer(eval *app.EvaluationService, sweep *app.SweepService, log *internal.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		eval:   eval,
		sweep:  sweep,
		log:    log.Component("http"),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/evaluate/batch", s.handleEvaluateBatch)
		r.Post("/reports/markdown", s.handleRenderMarkdown)
	})

	return s
}

// Router returns the configured handler for mounting or serving.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encoding response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if core.IsInvalidInput(err) {
		status = http.StatusBadRequest
	}
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}
