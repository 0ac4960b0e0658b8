package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/w-h-a/monobank/internal/service/tool"
	"github.com/w-h-a/monobank/server"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
)

type mcpServer struct {
	options server.Options
	srv     *mcpserver.MCPServer
	in      io.Reader
	out     io.Writer
}

func (s *mcpServer) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "mcp tool server listening on stdio", "name", s.options.Name, "tools", len(s.options.Tools.ListSpecs()))

	stdio := mcpserver.NewStdioServer(s.srv)

	if err := stdio.Listen(ctx, s.in, s.out); err != nil && ctx.Err() == nil {
		detail := "mcp stdio server stopped"
		slog.ErrorContext(ctx, detail, "error", err)
		return err
	}

	return nil
}

func (s *mcpServer) register(spec toolhandler.ToolSpec) error {
	schema, err := json.Marshal(spec.InputSchema)
	if err != nil {
		return err
	}

	s.srv.AddTool(
		mcpgo.NewToolWithRawSchema(spec.Name, spec.Description, schema),
		s.handle(spec.Name),
	)

	return nil
}

func (s *mcpServer) handle(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		rsp, err := s.options.Tools.Invoke(ctx, name, req.GetArguments())
		if err != nil {
			// tool failures go back to the client as error results, not protocol errors
			return mcpgo.NewToolResultError(tool.ErrorKind(err) + ": " + err.Error()), nil
		}
		return mcpgo.NewToolResultText(rsp.Content), nil
	}
}

type stdioKey struct{}

type stdio struct {
	in  io.Reader
	out io.Writer
}

// WithStdio replaces os.Stdin and os.Stdout.
func WithStdio(in io.Reader, out io.Writer) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, stdioKey{}, stdio{in: in, out: out})
	}
}

func NewServer(opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	if options.Tools == nil {
		panic("tools are required")
	}

	s := &mcpServer{
		options: options,
		srv: mcpserver.NewMCPServer(
			options.Name,
			options.Version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithRecovery(),
		),
		in:  os.Stdin,
		out: os.Stdout,
	}

	if std, ok := options.Context.Value(stdioKey{}).(stdio); ok {
		s.in = std.in
		s.out = std.out
	}

	for _, spec := range options.Tools.ListSpecs() {
		if err := s.register(spec); err != nil {
			slog.Warn("skipping mcp tool", "tool", spec.Name, "error", err)
		}
	}

	return s
}
