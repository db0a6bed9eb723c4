// Package mcp exposes the flow runner as an MCP server, so agent hosts can
// list flows, inspect their graphs and execute runs as tools.
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

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/runner"
)

// Server wraps the flow runner and exposes it as an MCP server.
type Server struct {
	runner    *runner.Runner
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server over the given runner.
func NewServer(r *runner.Runner, opts ...Option) *Server {
	s := &Server{
		runner:    r,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
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

// ServeSSE starts the server on the given port using SSE and blocks until the
// context is canceled or the listener fails.
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
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: run_flow
	runTool := mcp.NewTool("run_flow",
		mcp.WithDescription("Execute a flow by id and wait for its final record."),
		mcp.WithString("flow", mcp.Required(), mcp.Description("The flow id to execute")),
		mcp.WithString("context", mcp.Description("JSON object used as the initial run context (optional)")),
		mcp.WithOutputSchema[domain.RunRecord](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRunFlow))

	// TOOL: list_flows
	s.mcpServer.AddTool(mcp.NewTool("list_flows",
		mcp.WithDescription("List the ids of all available flows."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.runner.ListFlows(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list flows failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Compile a flow and return its dependency graph as a Mermaid flowchart."),
		mcp.WithString("flow", mcp.Required(), mcp.Description("The flow id to compile")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		flowID, err := request.RequireString("flow")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		nodes, err := s.runner.CompileFlow(ctx, flowID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("compile failed: %v", err)), nil
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(nodes)), nil
	})
}

func (s *Server) handleRunFlow(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (domain.RunRecord, error) {
	flowID, _ := args["flow"].(string)
	if flowID == "" {
		return domain.RunRecord{}, errors.New("flow is required")
	}

	initial := make(domain.Context)
	if ctxStr, ok := args["context"].(string); ok && ctxStr != "" {
		if err := json.Unmarshal([]byte(ctxStr), &initial); err != nil {
			return domain.RunRecord{}, fmt.Errorf("invalid context JSON: %w", err)
		}
	}

	record, err := s.runner.RunFlow(ctx, flowID, initial)
	if err != nil && record.ID == "" {
		return domain.RunRecord{}, fmt.Errorf("run failed: %w", err)
	}
	if err != nil {
		// The run executed and failed; the record carries the failure.
		s.logger.Warn("MCP run_flow: run failed", "flow", flowID, "err", err)
	}
	return record, nil
}

func (s *Server) registerResources() {
	// EXPOSE: arbor://flows
	s.mcpServer.AddResource(mcp.NewResource("arbor://flows", "Available Flow Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.runner.ListFlows(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list flows: %w", err)
		}

		specs := make([]domain.FlowSpec, 0, len(ids))
		for _, id := range ids {
			spec, err := s.runner.DescribeFlow(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to describe flow %q: %w", id, err)
			}
			specs = append(specs, spec)
		}
		jsonBytes, _ := json.Marshal(specs)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "arbor://flows",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
