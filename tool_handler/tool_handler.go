package toolhandler

import (
	"context"
	"fmt"
)

// ToolHandler is a single named tool. Invoke must be safe to call
// concurrently.
type ToolHandler interface {
	Spec() ToolSpec
	Invoke(ctx context.Context, req ToolRequest) (ToolResponse, error)
}

type ToolRequest struct {
	SessionId string         `json:"session_id,omitempty"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResponse carries the rendered result. Content is JSON text for
// structured results.
type ToolResponse struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ArgumentError reports arguments a tool cannot accept.
type ArgumentError struct {
	Tool string
	Err  error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }
