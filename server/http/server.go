package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/w-h-a/monobank/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpServer struct {
	options server.Options
	srv     *http.Server
}

func (s *httpServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		slog.InfoContext(ctx, "http tool server listening", "address", s.options.Address)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := 5 * time.Second
	if d, ok := ShutdownTimeoutFrom(s.options.Context); ok {
		timeout = d
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		detail := "failed to shut down http tool server"
		slog.ErrorContext(ctx, detail, "error", err)
		return err
	}

	return nil
}

func NewServer(opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	s := &httpServer{
		options: options,
	}

	s.srv = &http.Server{
		Addr:              options.Address,
		Handler:           otelhttp.NewHandler(NewHandler(opts...), options.Name),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}
