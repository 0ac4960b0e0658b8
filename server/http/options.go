package http

import (
	"context"
	"net/http"
	"time"

	"github.com/w-h-a/monobank/server"
)

type middlewareKey struct{}

// WithMiddleware wraps the tool routes, outermost first.
func WithMiddleware(ms ...func(h http.Handler) http.Handler) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, middlewareKey{}, ms)
	}
}

func MiddlewareFrom(ctx context.Context) ([]func(h http.Handler) http.Handler, bool) {
	ms, ok := ctx.Value(middlewareKey{}).([]func(h http.Handler) http.Handler)
	return ms, ok
}

type shutdownTimeoutKey struct{}

func WithShutdownTimeout(d time.Duration) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, shutdownTimeoutKey{}, d)
	}
}

func ShutdownTimeoutFrom(ctx context.Context) (time.Duration, bool) {
	d, ok := ctx.Value(shutdownTimeoutKey{}).(time.Duration)
	return d, ok
}
