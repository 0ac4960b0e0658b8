package server

import "context"

// Server exposes the tool catalog over a transport until ctx is done.
type Server interface {
	Run(ctx context.Context) error
}
