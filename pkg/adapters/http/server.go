// Package http exposes the flow runner over a JSON REST API. It is a driving
// adapter: every handler delegates to the runner and maps domain errors to
// status codes.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/runner"
)

// Server handles the REST routes.
type Server struct {
	runner *runner.Runner
	logger *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler builds the HTTP handler for the runner.
func NewHandler(r *runner.Runner, opts ...Option) http.Handler {
	s := &Server{
		runner: r,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := chi.NewRouter()
	mux.Post("/runs", s.startRun)
	mux.Get("/runs", s.listRuns)
	mux.Get("/runs/{id}", s.getRun)
	mux.Get("/flows", s.listFlows)
	mux.Get("/flows/{id}", s.getFlow)
	mux.Get("/flows/{id}/graph", s.getFlowGraph)
	mux.Get("/healthz", s.health)
	mux.Handle("/metrics", promhttp.Handler())

	return enableCORS(mux)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StartRunRequest is the body of POST /runs.
type StartRunRequest struct {
	Flow    string         `json:"flow"`
	Context map[string]any `json:"context,omitempty"`
}

func (s *Server) startRun(w http.ResponseWriter, r *http.Request) {
	var body StartRunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("start run: invalid request body", "err", err)
		return
	}
	if body.Flow == "" {
		http.Error(w, "flow is required", http.StatusBadRequest)
		return
	}

	record, err := s.runner.RunFlow(r.Context(), body.Flow, body.Context)
	switch {
	case errors.Is(err, domain.ErrFlowNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil && record.ID == "":
		// Resolution or validation failed before anything executed.
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		s.logger.Warn("start run: flow rejected", "flow", body.Flow, "err", err)
		return
	}
	// A node failure still produced a record; the record's status and error
	// field tell the caller what happened.
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.runner.Store().List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("list runs failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"runs": ids})
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	record, err := s.runner.Store().Load(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrRunNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("get run failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) listFlows(w http.ResponseWriter, r *http.Request) {
	ids, err := s.runner.ListFlows(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("list flows failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"flows": ids})
}

func (s *Server) getFlow(w http.ResponseWriter, r *http.Request) {
	spec, err := s.runner.DescribeFlow(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrFlowNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("get flow failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, spec)
}

func (s *Server) getFlowGraph(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.runner.CompileFlow(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrFlowNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(nodes)))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
