package utcp

import (
	"context"
	"encoding/json"
	"fmt"

	toolhandler "github.com/w-h-a/monobank/tool_handler"
)

// callTool is the slice of the go-utcp client a remote handler needs.
type callTool interface {
	CallTool(ctx context.Context, toolName string, args map[string]any) (any, error)
}

type utcpToolHandler struct {
	options  toolhandler.Options
	client   callTool
	toolName string
	spec     toolhandler.ToolSpec
	envelope bool
}

func (th *utcpToolHandler) Spec() toolhandler.ToolSpec {
	return th.spec
}

func (th *utcpToolHandler) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}
	if th.envelope {
		args = map[string]any{
			"tool":      th.spec.Name,
			"arguments": args,
		}
	}

	raw, err := th.client.CallTool(ctx, th.toolName, args)
	if err != nil {
		return toolhandler.ToolResponse{}, fmt.Errorf("remote tool %s: %w", th.spec.Name, err)
	}

	content, err := Render(raw)
	if err != nil {
		return toolhandler.ToolResponse{}, fmt.Errorf("remote tool %s: %w", th.spec.Name, err)
	}

	return toolhandler.ToolResponse{
		Content: content,
		Metadata: map[string]string{
			"source": "utcp",
			"tool":   th.spec.Name,
		},
	}, nil
}

// Render turns a CallTool result into JSON text. The {"result": ...}
// envelope of the http tool server is unwrapped and a remote
// {"error": ..., "kind": ...} body becomes an error.
func Render(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "null", nil
	case string:
		if json.Valid([]byte(v)) {
			var decoded any
			if err := json.Unmarshal([]byte(v), &decoded); err == nil {
				return Render(decoded)
			}
		}
		return v, nil
	case []byte:
		return Render(string(v))
	case map[string]any:
		if msg, ok := v["error"]; ok {
			return "", fmt.Errorf("%v (%v)", msg, v["kind"])
		}
		if result, ok := v["result"]; ok && len(v) == 1 {
			raw = result
		}
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func NewToolHandler(opts ...toolhandler.Option) toolhandler.ToolHandler {
	options := toolhandler.NewOptions(opts...)

	th := &utcpToolHandler{
		options: options,
	}

	if client, ok := UtcpClientFrom(options.Context); ok {
		th.client = client
	}

	if name, ok := ToolNameFrom(options.Context); ok {
		th.toolName = name
	}

	if spec, ok := ToolSpecFrom(options.Context); ok {
		th.spec = spec
	}

	th.envelope = EnvelopeFrom(options.Context)

	if len(th.spec.Name) == 0 {
		th.spec.Name = th.toolName
	}

	return th
}
