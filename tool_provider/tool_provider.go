package toolprovider

import (
	"context"

	toolhandler "github.com/w-h-a/monobank/tool_handler"
)

// ToolProvider discovers tools hosted elsewhere and exposes them as
// local handlers.
type ToolProvider interface {
	Load(ctx context.Context, query string, limit int) ([]toolhandler.ToolHandler, error)
}
