// Package mcpserver exposes the document tools over the Model Context
// Protocol on stdio.
package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	derrors "git.home.luguber.info/inful/docxbuilder/internal/errors"
	"git.home.luguber.info/inful/docxbuilder/internal/logfields"
	"git.home.luguber.info/inful/docxbuilder/internal/metrics"
	"git.home.luguber.info/inful/docxbuilder/internal/observability"
	"git.home.luguber.info/inful/docxbuilder/internal/tools"
)

// Name is the server name announced to clients.
const Name = "word-document-server"

// Server wraps an MCP server with the registered tools.
type Server struct {
	mcp      *server.MCPServer
	tools    []tools.Tool
	recorder metrics.Recorder
}

// Option configures a Server.
type Option func(*Server)

// WithRecorder records per-call durations and outcomes.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Server) {
		if r != nil {
			s.recorder = r
		}
	}
}

// New registers ts with a fresh MCP server.
func New(version string, ts []tools.Tool, opts ...Option) *Server {
	s := &Server{
		mcp: server.NewMCPServer(
			Name,
			version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
			server.WithInstructions(instructions),
		),
		tools:    ts,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, t := range ts {
		s.mcp.AddTool(Definition(t), s.handler(t))
	}
	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// Tools returns the registered tools in registration order.
func (s *Server) Tools() []tools.Tool { return s.tools }

// Serve speaks MCP over in and out until ctx is done or in is closed.
// Nothing else may write to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	// Tool calls run one at a time; operations on one file do not coordinate.
	for _, opt := range []server.StdioOption{
		server.WithErrorLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelError)),
		server.WithWorkerPoolSize(1),
	} {
		opt(stdio)
	}
	slog.Info("MCP server listening on stdio", slog.String("name", Name), logfields.Count(len(s.tools)))
	return stdio.Listen(ctx, in, out)
}

func (s *Server) handler(t tools.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = observability.WithStep(ctx, 0, t.Name)
		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}

		start := time.Now()
		status, err := t.Handler(ctx, args)
		d := time.Since(start)
		s.recorder.ObserveStepDuration(t.Name, d)

		if err != nil {
			s.recorder.IncStepOutcome(t.Name, metrics.OutcomeFailed)
			observability.WarnContext(ctx, "Tool call failed", logfields.Error(err))
			return mcp.NewToolResultError(derrors.Describe(err)), nil
		}
		s.recorder.IncStepOutcome(t.Name, metrics.OutcomeOK)
		observability.DebugContext(ctx, "Tool call finished", logfields.DurationMS(float64(d.Microseconds())/1000))
		return mcp.NewToolResultText(status), nil
	}
}

const instructions = `Tools for creating and editing Word (.docx) documents.

Every tool takes the document path as an argument and saves its change
before returning a short status line. Use build_book to run a JSON
manifest of tool calls in order and get a report of each result.`
