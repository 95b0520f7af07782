package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/aretw0/ntmtrace/internal/presentation/graph"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"
)

// APIVersion is the version of the HTTP contract.
const APIVersion = "0.1.0"

// Engine is the part of the ntmtrace facade the server needs.
type Engine interface {
	Simulate(ctx context.Context, m *domain.Machine, input string, params domain.RunParameters) (*domain.Report, error)
}

// ReportStore is the report persistence the server exposes.
type ReportStore interface {
	Load(ctx context.Context, id string) (*domain.Report, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}

// Server serves simulations and stored reports over HTTP.
type Server struct {
	Engine  Engine
	Store   ReportStore     // optional; report routes answer 501 without it
	Machine *domain.Machine // optional default machine
	Metrics http.Handler    // optional; mounted on /metrics
	Logger  *slog.Logger
	Version string

	// MaxDepth and MaxSteps cap request limits. Requests asking for more,
	// or for none, run with the cap. Unbounded disables the cap.
	MaxDepth domain.Limit
	MaxSteps domain.Limit
}

// SimulateRequest is the body of POST /simulate. Machine may be omitted when
// the server has a default machine. Limits follow the parameter file, 0 or
// absent meaning unbounded, and are then capped by the server.
type SimulateRequest struct {
	Machine  *domain.MachineDocument `json:"machine,omitempty" yaml:"machine,omitempty"`
	Input    string                  `json:"input" yaml:"input"`
	MaxDepth int                     `json:"max_depth" yaml:"max_depth"`
	MaxSteps int                     `json:"max_steps" yaml:"max_steps"`
	Debug    bool                    `json:"debug" yaml:"debug"`
}

// ReportList is the body of GET /reports.
type ReportList struct {
	IDs []string `json:"ids"`
}

// NewHandler creates the HTTP handler for s.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/simulate", s.PostSimulate)
	r.Get("/machine", s.GetMachine)
	r.Get("/machine/graph", s.GetMachineGraph)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/", s.ListReports)
		r.Get("/{id}", s.GetReport)
		r.Delete("/{id}", s.DeleteReport)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "ntmtrace-http",
		"version":     s.Version,
		"api_version": APIVersion,
	})
}

// PostSimulate handles POST /simulate. The body is JSON, or YAML when the
// Content-Type says so.
func (s *Server) PostSimulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	m := s.Machine
	if body.Machine != nil {
		var err error
		if m, err = body.Machine.Machine(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if m == nil {
		http.Error(w, "No machine in request and no default machine", http.StatusBadRequest)
		return
	}

	report, err := s.Engine.Simulate(r.Context(), m, body.Input, domain.RunParameters{
		MaxDepth: domain.LimitOf(body.MaxDepth).Within(s.MaxDepth),
		MaxSteps: domain.LimitOf(body.MaxSteps).Within(s.MaxSteps),
		Debug:    body.Debug,
	})
	if err != nil {
		s.Logger.Error("simulation failed", "error", err)
		http.Error(w, fmt.Sprintf("Simulate error: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// GetMachine handles GET /machine.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	if s.Machine == nil {
		http.Error(w, "No default machine", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Machine.Document())
}

// GetMachineGraph handles GET /machine/graph. With ?report=<id> the states of
// that report's path are highlighted.
func (s *Server) GetMachineGraph(w http.ResponseWriter, r *http.Request) {
	if s.Machine == nil {
		http.Error(w, "No default machine", http.StatusNotFound)
		return
	}

	var overlay *graph.GraphOverlay
	if id := r.URL.Query().Get("report"); id != "" {
		report, ok := s.loadReport(w, r, id)
		if !ok {
			return
		}
		overlay = graph.OverlayFromReport(report)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(s.Machine, overlay))
}

// ListReports handles GET /reports.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, ReportList{IDs: ids})
}

// GetReport handles GET /reports/{id}.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	if report, ok := s.loadReport(w, r, chi.URLParam(r, "id")); ok {
		s.writeJSON(w, http.StatusOK, report)
	}
}

// DeleteReport handles DELETE /reports/{id}.
func (s *Server) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Helpers --

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.Store == nil {
		http.Error(w, "No report store configured", http.StatusNotImplemented)
		return false
	}
	return true
}

func (s *Server) loadReport(w http.ResponseWriter, r *http.Request, id string) (*domain.Report, bool) {
	if !s.requireStore(w) {
		return nil, false
	}
	report, err := s.Store.Load(r.Context(), id)
	if errors.Is(err, domain.ErrReportNotFound) {
		http.Error(w, "Report not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		return nil, false
	}
	return report, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode error", "error", err)
	}
}

func decodeBody(r *http.Request, v any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return yaml.NewDecoder(r.Body).Decode(v)
	default:
		return json.NewDecoder(r.Body).Decode(v)
	}
}
