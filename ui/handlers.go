package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"evidec/adapters/render"
	"evidec/app"
	"evidec/domain/core"
)

// handleEvaluate runs a single experiment and returns its evidence report.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req app.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, fmt.Errorf("%w: malformed request body: %v", core.ErrInvalidInput, err))
		return
	}

	rep, err := s.eval.Evaluate(r.Context(), req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rep)
}

// handleEvaluateBatch runs independent experiments concurrently.
func (s *Server) handleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []app.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		s.respondError(w, fmt.Errorf("%w: malformed request body: %v", core.ErrInvalidInput, err))
		return
	}
	if len(reqs) == 0 {
		s.respondError(w, fmt.Errorf("%w: batch is empty", core.ErrInvalidInput))
		return
	}

	reps, err := s.sweep.EvaluateBatch(r.Context(), reqs)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, reps)
}

// handleRenderMarkdown evaluates and returns the rendered report;
// ?format=html switches to HTML output.
func (s *Server) handleRenderMarkdown(w http.ResponseWriter, r *http.Request) {
	var req app.EvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, fmt.Errorf("%w: malformed request body: %v", core.ErrInvalidInput, err))
		return
	}

	rep, err := s.eval.Evaluate(r.Context(), req)
	if err != nil {
		s.respondError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(render.HTML(rep)); err != nil {
			s.log.Error("writing html response: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(render.Markdown(rep))); err != nil {
		s.log.Error("writing markdown response: %v", err)
	}
}
