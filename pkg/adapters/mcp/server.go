package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/ntmtrace"
	"github.com/aretw0/ntmtrace/internal/adapters"
	"github.com/aretw0/ntmtrace/internal/presentation/graph"
	"github.com/aretw0/ntmtrace/internal/validator"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	machineURI      = "ntmtrace://machine"
	machineGraphURI = "ntmtrace://machine/graph"
)

// Engine defines what the MCP server needs from the ntmtrace facade.
type Engine interface {
	Simulate(ctx context.Context, m *domain.Machine, input string, params domain.RunParameters) (*domain.Report, error)
	Report(ctx context.Context, id string) (*domain.Report, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	machine   *domain.Machine
	maxDepth  domain.Limit
	maxSteps  domain.Limit
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLimits caps the max_depth and max_steps of simulate calls. Calls asking
// for more, or for none, run with the cap.
func WithLimits(maxDepth, maxSteps domain.Limit) Option {
	return func(s *Server) {
		s.maxDepth = maxDepth
		s.maxSteps = maxSteps
	}
}

// NewServer creates a new MCP Server instance. machine is the default used
// when a tool call carries no machine; it may be nil.
func NewServer(engine Engine, machine *domain.Machine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		machine:   machine,
		mcpServer: server.NewMCPServer("ntmtrace-mcp", strings.TrimSpace(ntmtrace.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is done.
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
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

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

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run one input string through a non-deterministic Turing machine and return the trace report."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string written on the tape")),
		mcp.WithString("machine", mcp.Description("Machine document as YAML or JSON (optional if the server has a default machine)")),
		mcp.WithNumber("max_depth", mcp.Description("Maximum number of levels to explore; 0 or absent means the server cap")),
		mcp.WithNumber("max_steps", mcp.Description("Maximum size of a frontier; 0 or absent means the server cap")),
		mcp.WithBoolean("debug", mcp.Description("Include debug lines in the report")),
		mcp.WithOutputSchema[domain.Report](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: validate_machine
	s.mcpServer.AddTool(mcp.NewTool("validate_machine",
		mcp.WithDescription("Check a machine description for undeclared states, unknown symbols and bad directions."),
		mcp.WithString("machine", mcp.Description("Machine document as YAML or JSON (optional if the server has a default machine)")),
	), s.handleValidate)

	// TOOL: get_report
	s.mcpServer.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Fetch a stored simulation report by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Report ID returned by simulate")),
	), s.handleGetReport)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Report, error) {
	input, _ := args["input"].(string)

	m, err := s.resolveMachine(args)
	if err != nil {
		return domain.Report{}, err
	}

	raw := make(map[string]any)
	for _, key := range []string{"max_depth", "max_steps", "debug"} {
		if v, ok := args[key]; ok {
			raw[key] = v
		}
	}
	params, err := adapters.DecodeParams(raw)
	if err != nil {
		return domain.Report{}, err
	}
	params.MaxDepth = params.MaxDepth.Within(s.maxDepth)
	params.MaxSteps = params.MaxSteps.Within(s.maxSteps)

	report, err := s.engine.Simulate(ctx, m, input, *params)
	if err != nil {
		return domain.Report{}, fmt.Errorf("simulate failed: %w", err)
	}
	return *report, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, err := s.resolveMachine(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := validator.ValidateMachine(m); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("machine '%s' is valid (%s)", m.Name, validator.Summary(m))), nil
}

func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := request.GetArguments()["id"].(string)
	report, err := s.engine.Report(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get report failed: %v", err)), nil
	}
	jsonBytes, err := json.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode report failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// resolveMachine parses the "machine" argument, falling back to the default.
func (s *Server) resolveMachine(args map[string]interface{}) (*domain.Machine, error) {
	text, _ := args["machine"].(string)
	if strings.TrimSpace(text) == "" {
		if s.machine == nil {
			return nil, fmt.Errorf("no machine given and no default machine")
		}
		return s.machine, nil
	}
	// JSON is valid YAML, so one decoder covers both.
	return adapters.ParseMachineDocument("machine", strings.NewReader(text), adapters.FormatYAML)
}

func (s *Server) registerResources() {
	if s.machine == nil {
		return
	}

	// EXPOSE: ntmtrace://machine
	s.mcpServer.AddResource(mcp.NewResource(machineURI, "Default Machine Definition",
		mcp.WithMIMEType("application/json"),
	), s.readMachine)

	// EXPOSE: ntmtrace://machine/graph
	s.mcpServer.AddResource(mcp.NewResource(machineGraphURI, "Default Machine Diagram",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      machineGraphURI,
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(s.machine, nil),
			},
		}, nil
	})
}

func (s *Server) readMachine(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.machine.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to encode machine: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      machineURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
