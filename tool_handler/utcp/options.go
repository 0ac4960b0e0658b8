package utcp

import (
	"context"

	goutcp "github.com/universal-tool-calling-protocol/go-utcp"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
)

type utcpClientKey struct{}

func WithUtcpClient(client goutcp.UtcpClientInterface) toolhandler.Option {
	return func(o *toolhandler.Options) {
		o.Context = context.WithValue(o.Context, utcpClientKey{}, client)
	}
}

func UtcpClientFrom(ctx context.Context) (goutcp.UtcpClientInterface, bool) {
	client, ok := ctx.Value(utcpClientKey{}).(goutcp.UtcpClientInterface)
	return client, ok
}

type nameKey struct{}

// WithToolName is the provider-qualified name passed to CallTool.
func WithToolName(name string) toolhandler.Option {
	return func(o *toolhandler.Options) {
		o.Context = context.WithValue(o.Context, nameKey{}, name)
	}
}

func ToolNameFrom(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(nameKey{}).(string)
	return name, ok
}

type specKey struct{}

func WithToolSpec(spec toolhandler.ToolSpec) toolhandler.Option {
	return func(o *toolhandler.Options) {
		o.Context = context.WithValue(o.Context, specKey{}, spec)
	}
}

func ToolSpecFrom(ctx context.Context) (toolhandler.ToolSpec, bool) {
	spec, ok := ctx.Value(specKey{}).(toolhandler.ToolSpec)
	return spec, ok
}

type envelopeKey struct{}

// WithEnvelope sends arguments as {"tool": name, "arguments": {...}} so
// a server hosting several tools behind one url can dispatch by name.
func WithEnvelope() toolhandler.Option {
	return func(o *toolhandler.Options) {
		o.Context = context.WithValue(o.Context, envelopeKey{}, true)
	}
}

func EnvelopeFrom(ctx context.Context) bool {
	on, _ := ctx.Value(envelopeKey{}).(bool)
	return on
}
