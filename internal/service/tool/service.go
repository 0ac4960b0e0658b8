package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/w-h-a/monobank/bank"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
)

var ErrUnknownTool = errors.New("unknown tool")

type Service struct {
	catalog *Catalog
}

func (s *Service) ListSpecs() []toolhandler.ToolSpec {
	return s.catalog.ListSpecs()
}

func (s *Service) Spec(name string) (toolhandler.ToolSpec, bool) {
	_, spec, ok := s.catalog.Get(name)
	return spec, ok
}

func (s *Service) Invoke(ctx context.Context, name string, args map[string]any) (toolhandler.ToolResponse, error) {
	th, spec, ok := s.catalog.Get(name)
	if !ok {
		return toolhandler.ToolResponse{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if args == nil {
		args = map[string]any{}
	}

	for _, required := range spec.RequiredArguments() {
		if v, ok := args[required]; !ok || v == nil {
			return toolhandler.ToolResponse{}, &toolhandler.ArgumentError{
				Tool: spec.Name,
				Err:  fmt.Errorf("missing '%s' argument", required),
			}
		}
	}

	start := time.Now()

	rsp, err := th.Invoke(ctx, toolhandler.ToolRequest{Arguments: args})
	if err != nil {
		detail := "tool invocation failed"
		slog.ErrorContext(ctx, detail, "tool", spec.Name, "kind", string(bank.KindOf(err)), "duration", time.Since(start), "error", err)
		return toolhandler.ToolResponse{}, err
	}

	slog.InfoContext(ctx, "tool invoked", "tool", spec.Name, "duration", time.Since(start), "bytes", len(rsp.Content))

	return rsp, nil
}

func New(toolHandlers []toolhandler.ToolHandler) *Service {
	catalog := NewCatalog()

	for _, th := range toolHandlers {
		if th == nil {
			continue
		}
		if err := catalog.Register(th); err != nil {
			slog.WarnContext(context.Background(), "skipping tool", "error", err)
			continue
		}
	}

	return &Service{
		catalog: catalog,
	}
}

// ErrorKind names err for callers: one of the bank kinds, or
// invalid_arguments, unknown_tool, internal_error.
func ErrorKind(err error) string {
	if kind := bank.KindOf(err); len(kind) > 0 {
		return string(kind)
	}

	var argErr *toolhandler.ArgumentError
	switch {
	case errors.As(err, &argErr):
		return "invalid_arguments"
	case errors.Is(err, ErrUnknownTool):
		return "unknown_tool"
	}

	return "internal_error"
}

// ParseArguments reads CLI arguments: either a single JSON object or
// key=value pairs.
func ParseArguments(raw []string) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	joined := strings.TrimSpace(strings.Join(raw, " "))
	if strings.HasPrefix(joined, "{") {
		var payload map[string]any
		if err := json.Unmarshal([]byte(joined), &payload); err != nil {
			return nil, fmt.Errorf("invalid json arguments: %w", err)
		}
		return payload, nil
	}

	payload := make(map[string]any, len(raw))
	for _, pair := range raw {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || len(strings.TrimSpace(key)) == 0 {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		payload[strings.TrimSpace(key)] = value
	}

	return payload, nil
}
