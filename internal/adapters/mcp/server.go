package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/wordgraph"
	"github.com/aretw0/wordgraph/internal/logging"
	"github.com/aretw0/wordgraph/internal/presentation/graph"
	"github.com/aretw0/wordgraph/internal/presentation/tui"
	"github.com/aretw0/wordgraph/internal/tokenize"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/aretw0/wordgraph/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI is the resource exposing the graph in DOT form.
const GraphURI = "wordgraph://graph"

// Engine defines the queries the MCP server exposes as tools.
type Engine interface {
	Graph() *domain.WordGraph
	BridgeWords(ctx context.Context, word1, word2 string) (domain.BridgeResult, error)
	GenerateText(ctx context.Context, text string) string
	ShortestPaths(ctx context.Context, word1, word2 string) (domain.PathSet, error)
	ShortestPathsFrom(ctx context.Context, word string) map[string]domain.PathSet
}

// Server wraps the word graph and its walk sessions as an MCP Server.
type Server struct {
	engine    Engine
	sessions  *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		sessions:  sessions,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("wordgraph-mcp", strings.TrimSpace(wordgraph.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mainly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("bridge_words",
		mcp.WithDescription("List the words w3 such that word1 -> w3 -> word2 are both edges of the graph."),
		mcp.WithString("word1", mcp.Required(), mcp.Description("First word")),
		mcp.WithString("word2", mcp.Required(), mcp.Description("Second word")),
	), s.handleBridgeWords)

	s.mcpServer.AddTool(mcp.NewTool("generate_text",
		mcp.WithDescription("Insert a bridge word between every adjacent pair of words in the text."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Input text")),
	), s.handleGenerateText)

	s.mcpServer.AddTool(mcp.NewTool("shortest_paths",
		mcp.WithDescription("All tied shortest paths from word1 to word2, or to every word when word2 is omitted."),
		mcp.WithString("word1", mcp.Required(), mcp.Description("Source word")),
		mcp.WithString("word2", mcp.Description("Target word (optional)")),
	), s.handleShortestPaths)

	s.mcpServer.AddTool(mcp.NewTool("walk_step",
		mcp.WithDescription("Advance a random walk by one edge. The walk ends on a dead end or a repeated edge."),
		mcp.WithString("session_id", mcp.Description("Walk session (default "+wordgraph.DefaultSessionID+")")),
		mcp.WithBoolean("run", mcp.Description("Step until the walk terminates")),
	), s.handleWalkStep)

	s.mcpServer.AddTool(mcp.NewTool("walk_reset",
		mcp.WithDescription("Discard the in-memory walk of a session. The stored trace is kept."),
		mcp.WithString("session_id", mcp.Description("Walk session (default "+wordgraph.DefaultSessionID+")")),
	), s.handleWalkReset)

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the graph as JSON nodes and weighted edges."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g := s.engine.Graph()
		return jsonResult(map[string]any{"nodes": g.Nodes(), "edges": g.Edges()})
	})
}

func argString(request mcp.CallToolRequest, key string) string {
	v, _ := request.GetArguments()[key].(string)
	return strings.TrimSpace(v)
}

// sessionArg returns the validated session_id argument, or the default session.
func sessionArg(request mcp.CallToolRequest) (string, error) {
	id := argString(request, "session_id")
	if id == "" {
		return wordgraph.DefaultSessionID, nil
	}
	return id, domain.ValidateSessionID(id)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolErrorBody is the JSON text of a failed tool call.
type toolErrorBody struct {
	Error string             `json:"error"`
	Kind  domain.ErrorKind   `json:"kind"`
	Step  *domain.StepResult `json:"step,omitempty"`
}

func toolError(kind domain.ErrorKind, msg string, step *domain.StepResult) *mcp.CallToolResult {
	data, err := json.Marshal(toolErrorBody{Error: msg, Kind: kind, Step: step})
	if err != nil {
		return mcp.NewToolResultError(msg)
	}
	return mcp.NewToolResultError(string(data))
}

func errorResult(err error) *mcp.CallToolResult {
	return toolError(domain.KindOf(err), err.Error(), nil)
}

func (s *Server) handleBridgeWords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word1, word2 := argString(request, "word1"), argString(request, "word2")
	res, err := s.engine.BridgeWords(ctx, word1, word2)
	if err != nil {
		if errors.Is(err, domain.ErrNodeNotFound) {
			return toolError(domain.KindNodeNotFound, fmt.Sprintf("No %s or %s in the graph!", word1, word2), nil), nil
		}
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(tui.BridgeMessage(res)), nil
}

func (s *Server) handleGenerateText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := tokenize.SanitizeInput(argString(request, "text"))
	if err != nil {
		s.logger.Warn("MCP generate_text: Input rejected", "err", err)
		return toolError(domain.KindInvalidInput, fmt.Sprintf("input rejected: %v", err), nil), nil
	}
	return mcp.NewToolResultText(s.engine.GenerateText(ctx, text)), nil
}

func (s *Server) handleShortestPaths(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word1, word2 := argString(request, "word1"), argString(request, "word2")
	if word2 == "" {
		return jsonResult(s.engine.ShortestPathsFrom(ctx, word1))
	}

	set, err := s.engine.ShortestPaths(ctx, word1, word2)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(set)
}

func (s *Server) handleWalkStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := sessionArg(request)
	if err != nil {
		return errorResult(err), nil
	}
	run, _ := request.GetArguments()["run"].(bool)

	var res domain.StepResult
	if run {
		res, err = s.sessions.Run(ctx, id)
	} else {
		res, err = s.sessions.Step(ctx, id)
	}

	if err != nil {
		if errors.Is(err, domain.ErrTraceWrite) {
			s.logger.Error("MCP walk: trace write failed", "session", id, "err", err)
			return toolError(domain.KindOf(err), fmt.Sprintf("%s (%s)", err, tui.StepMessage(res)), &res), nil
		}
		return errorResult(err), nil
	}
	return jsonResult(res)
}

func (s *Server) handleWalkReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := sessionArg(request)
	if err != nil {
		return errorResult(err), nil
	}
	if err := s.sessions.Reset(ctx, id); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Walk %s reset.", id)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Word graph (DOT)",
		mcp.WithMIMEType("text/vnd.graphviz"),
	), s.readGraph)
}

func (s *Server) readGraph(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GraphURI,
			MIMEType: "text/vnd.graphviz",
			Text:     graph.GenerateDOT(s.engine.Graph()),
		},
	}, nil
}
