package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sozercan/prodsight/apimodels"
	"github.com/sozercan/prodsight/internal/analyzer"
)

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	handle(s, w, r, s.analyzer.Screenshot)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	handle(s, w, r, s.analyzer.Batch)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	handle(s, w, r, s.analyzer.Click)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	handle(s, w, r, s.analyzer.Session)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	handle(s, w, r, s.analyzer.Progress)
}

// handle decodes a Req body, runs fn and writes its result or the mapped
// error.
func handle[Req, Resp any](s *Server, w http.ResponseWriter, r *http.Request, fn func(context.Context, Req) (Resp, error)) {
	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	defer r.Body.Close()

	var req Req
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, decodeError(err))
		return
	}

	result, err := fn(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Debug("Analysis request completed successfully", "path", r.URL.Path)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := apimodels.HealthResponse{Status: "ok"}
	resp.Model.Configured = s.model.Configured()
	resp.Model.Provider = s.model.ProviderName()
	writeJSON(w, http.StatusOK, resp)
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return err
	}
	return &analyzer.ValidationError{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
}

// writeError is the single place errors become status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *analyzer.ValidationError
		merr   *analyzer.ModelError
		maxErr *http.MaxBytesError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
	case errors.As(err, &maxErr):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &merr):
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		slog.Error("Analysis request failed", "path", r.URL.Path, "error", err)
	} else {
		slog.Info("Rejected analysis request", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSONError(w, status, err.Error())
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apimodels.ErrorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
