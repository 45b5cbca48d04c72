package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/wordgraph"
	"github.com/aretw0/wordgraph/internal/logging"
	"github.com/aretw0/wordgraph/internal/presentation/graph"
	"github.com/aretw0/wordgraph/internal/tokenize"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/aretw0/wordgraph/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine is the query surface the API serves.
type Engine interface {
	Graph() *domain.WordGraph
	BridgeWords(ctx context.Context, word1, word2 string) (domain.BridgeResult, error)
	GenerateText(ctx context.Context, text string) string
	ShortestPaths(ctx context.Context, word1, word2 string) (domain.PathSet, error)
	ShortestPathsFrom(ctx context.Context, word string) map[string]domain.PathSet
}

// Server implements ServerInterface.
type Server struct {
	Engine   Engine
	Sessions *session.Manager
	Name     string
	Logger   *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// Option configures the handler.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	metrics     http.Handler
	metricsPath string
	name        string
}

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics mounts a metrics handler at path.
func WithMetrics(path string, h http.Handler) Option {
	return func(o *options) {
		o.metricsPath = path
		o.metrics = h
	}
}

// WithName labels the corpus in /info.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// NewHandler creates the HTTP handler for engine and its walk sessions.
func NewHandler(engine Engine, sessions *session.Manager, opts ...Option) http.Handler {
	o := &options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	server := &Server{
		Engine:   engine,
		Sessions: sessions,
		Name:     o.name,
		Logger:   o.logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if o.metrics != nil {
		r.Handle(o.metricsPath, o.metrics)
	}

	return HandlerFromMux(server, r, server.paramError)
}

// errorBody is the JSON error payload.
type errorBody struct {
	Error string             `json:"error"`
	Kind  string             `json:"kind"`
	Step  *domain.StepResult `json:"step,omitempty"`
}

func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNodeNotFound, domain.KindTraceNotFound:
		return http.StatusNotFound
	case domain.KindEmptyGraph:
		return http.StatusConflict
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindSessionLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error, step *domain.StepResult) {
	kind := domain.KindOf(err)
	status := statusOf(kind)
	if status == http.StatusInternalServerError {
		s.Logger.Error("Request failed", "err", err)
	}
	s.writeJSON(w, status, errorBody{Error: err.Error(), Kind: string(kind), Step: step})
}

func (s *Server) paramError(w http.ResponseWriter, r *http.Request, err error) {
	s.Logger.Warn("Invalid request parameter", "path", r.URL.Path, "err", err)
	s.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Kind: "BadRequest"})
}

// graphBody is the JSON form of the graph.
type graphBody struct {
	Nodes []string      `json:"nodes"`
	Edges []domain.Edge `json:"edges"`
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request, params GetGraphParams) {
	g := s.Engine.Graph()
	format := "json"
	if params.Format != nil && *params.Format != "" {
		format = *params.Format
	}

	if format == "json" {
		s.writeJSON(w, http.StatusOK, graphBody{Nodes: g.Nodes(), Edges: g.Edges()})
		return
	}

	out, err := graph.Render(g, graph.Format(format), nil)
	if err != nil {
		s.paramError(w, r, &ParamError{Name: "format", Err: err})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(out))
}

// GetGraphDot handles GET /graph.dot.
func (s *Server) GetGraphDot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Write([]byte(graph.GenerateDOT(s.Engine.Graph())))
}

// GetBridges handles GET /bridges.
func (s *Server) GetBridges(w http.ResponseWriter, r *http.Request, params GetBridgesParams) {
	res, err := s.Engine.BridgeWords(r.Context(), params.From, params.To)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// GenerateText handles POST /generate.
func (s *Server) GenerateText(w http.ResponseWriter, r *http.Request) {
	var body GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body", Kind: "BadRequest"})
		s.Logger.Warn("GenerateText: Invalid request body", "err", err)
		return
	}
	text, err := tokenize.SanitizeInput(body.Text)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Kind: "BadRequest"})
		s.Logger.Warn("GenerateText: Input rejected", "err", err, "size", len(body.Text))
		return
	}
	s.writeJSON(w, http.StatusOK, GenerateResponse{Text: s.Engine.GenerateText(r.Context(), text)})
}

// GetPaths handles GET /paths.
func (s *Server) GetPaths(w http.ResponseWriter, r *http.Request, params GetPathsParams) {
	if params.To == nil || strings.TrimSpace(*params.To) == "" {
		s.writeJSON(w, http.StatusOK, s.Engine.ShortestPathsFrom(r.Context(), params.From))
		return
	}

	set, err := s.Engine.ShortestPaths(r.Context(), params.From, *params.To)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, set)
}

// walkList is the answer of GET /walks.
type walkList struct {
	Traces []string `json:"traces"`
	Active []string `json:"active"`
}

// ListWalks handles GET /walks.
func (s *Server) ListWalks(w http.ResponseWriter, r *http.Request) {
	traces, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	if traces == nil {
		traces = []string{}
	}
	s.writeJSON(w, http.StatusOK, walkList{Traces: traces, Active: s.Sessions.Active()})
}

// GetWalk handles GET /walks/{id}.
func (s *Server) GetWalk(w http.ResponseWriter, r *http.Request, id string) {
	s.writeJSON(w, http.StatusOK, s.Sessions.State(id))
}

// DeleteWalk handles DELETE /walks/{id}.
func (s *Server) DeleteWalk(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StepWalk handles POST /walks/{id}/step.
func (s *Server) StepWalk(w http.ResponseWriter, r *http.Request, id string) {
	res, err := s.Sessions.Step(r.Context(), id)
	s.writeStep(w, res, err)
}

// RunWalk handles POST /walks/{id}/run.
func (s *Server) RunWalk(w http.ResponseWriter, r *http.Request, id string) {
	res, err := s.Sessions.Run(r.Context(), id)
	s.writeStep(w, res, err)
}

func (s *Server) writeStep(w http.ResponseWriter, res domain.StepResult, err error) {
	if err != nil {
		// A failed trace write still produced a valid step.
		if errors.Is(err, domain.ErrTraceWrite) {
			s.writeError(w, err, &res)
			return
		}
		s.writeError(w, err, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// GetWalkTrace handles GET /walks/{id}/trace.
func (s *Server) GetWalkTrace(w http.ResponseWriter, r *http.Request, id string) {
	trace, err := s.Sessions.Trace(r.Context(), id)
	if err != nil {
		s.writeError(w, err, nil)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(trace.Text()))
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	g := s.Engine.Graph()
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "wordgraph-http",
		"version":     strings.TrimSpace(wordgraph.Version),
		"api_version": apiVersion,
		"corpus":      s.Name,
		"nodes":       strconv.Itoa(g.Len()),
		"edges":       strconv.Itoa(g.EdgeCount()),
	})
}
