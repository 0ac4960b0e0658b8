package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/w-h-a/monobank/bank"
	"github.com/w-h-a/monobank/bank/monobank"
	"github.com/w-h-a/monobank/config"
	"github.com/w-h-a/monobank/internal/service/tool"
	"github.com/w-h-a/monobank/server"
	httpserver "github.com/w-h-a/monobank/server/http"
	mcpserver "github.com/w-h-a/monobank/server/mcp"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
	monobanktools "github.com/w-h-a/monobank/tool_handler/monobank"
	toolprovider "github.com/w-h-a/monobank/tool_provider"
	"github.com/w-h-a/monobank/tool_provider/utcp"
)

const (
	version = "0.1.0"

	remoteToolLimit = 100
)

type Globals struct {
	LogLevel string        `help:"Minimum log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`
	Timeout  time.Duration `help:"Deadline for a single tool invocation, 0 for none" default:"0s"`
	EnvFile  []string      `help:"Dotenv files read before the environment" default:".env"`
}

type McpCmd struct{}

func (c *McpCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.NewServer(
		server.WithName("monobank"),
		server.WithVersion(version),
		server.WithTools(newService(g)),
	)

	return srv.Run(ctx)
}

type HttpCmd struct {
	Address string `help:"Listen address" default:":8080"`
}

func (c *HttpCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.NewServer(
		server.WithName("monobank"),
		server.WithVersion(version),
		server.WithAddress(c.Address),
		server.WithTools(newService(g)),
	)

	return srv.Run(ctx)
}

type CallCmd struct {
	Tool string   `arg:"" help:"Tool name, e.g. get_statement"`
	Args []string `arg:"" optional:"" help:"A JSON object or key=value pairs"`
}

func (c *CallCmd) Run(g *Globals) error {
	return invoke(g, newService(g), c.Tool, c.Args)
}

type RemoteCmd struct {
	Tool  string   `arg:"" help:"Tool name, e.g. get_statement"`
	Args  []string `arg:"" optional:"" help:"A JSON object or key=value pairs"`
	Addrs []string `help:"Addresses of servers with exposed tool handlers" default:"http://localhost:8080/tools"`
}

func (c *RemoteCmd) Run(g *Globals) error {
	ctx := context.Background()

	// Discover remote tools, every provider
	tp := utcp.NewToolProvider(
		toolprovider.WithAddrs(c.Addrs...),
	)

	toolHandlers, err := tp.Load(ctx, "", remoteToolLimit)
	if err != nil {
		return err
	}

	return invoke(g, tool.New(toolHandlers), c.Tool, c.Args)
}

var cli struct {
	Globals

	Mcp    McpCmd    `cmd:"" help:"Serve the tools over MCP on stdio"`
	Http   HttpCmd   `cmd:"" help:"Serve the tools over HTTP with a UTCP manual"`
	Call   CallCmd   `cmd:"" help:"Invoke a tool once and print its JSON result"`
	Remote RemoteCmd `cmd:"" help:"Invoke a tool exposed by a running http server"`
}

func main() {
	// Parse inputs
	kctx := kong.Parse(
		&cli,
		kong.Name("monobank"),
		kong.Description("Monobank personal API tools over MCP and HTTP."),
		kong.UsageOnError(),
	)

	// Log to stderr so stdio transports stay clean
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cli.LogLevel),
	})))

	kctx.FatalIfErrorf(kctx.Run(&cli.Globals))
}

func newService(g *Globals) *tool.Service {
	cfg := config.Load(g.EnvFile...)

	if !cfg.HasToken() {
		slog.Warn("no monobank api token configured, requests will be rejected", "env", config.TokenEnv)
	}

	// Create bank client
	b := monobank.NewBank(
		bank.WithBaseURL(cfg.BaseURL),
		bank.WithToken(cfg.Token),
		monobank.WithUserAgent("monobank/"+version),
	)

	// Create tooling
	toolHandlers := []toolhandler.ToolHandler{
		monobanktools.NewClientInfoToolHandler(monobanktools.WithBank(b)),
		monobanktools.NewStatementToolHandler(monobanktools.WithBank(b)),
	}

	return tool.New(toolHandlers)
}

func invoke(g *Globals, svc *tool.Service, name string, raw []string) error {
	args, err := tool.ParseArguments(raw)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	rsp, err := svc.Invoke(ctx, name, args)
	if err != nil {
		return fmt.Errorf("%s: %w", tool.ErrorKind(err), err)
	}

	fmt.Println(rsp.Content)

	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
