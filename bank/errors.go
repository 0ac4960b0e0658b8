package bank

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindConnection Kind = "connection_failure"
	KindUpstream   Kind = "upstream_error"
	KindValidation Kind = "validation_failure"
)

// ConnectionError is a transport failure: DNS, refused, reset, timeout.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: failed to connect to monobank api: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx response.
type UpstreamError struct {
	Op          string
	StatusCode  int
	Description string
}

func (e *UpstreamError) Error() string {
	if len(e.Description) > 0 {
		return fmt.Sprintf("%s: monobank api returned %d %s: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Description)
	}
	return fmt.Sprintf("%s: monobank api returned %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

// ValidationError is a body that does not satisfy the wire schema. Path
// points at the offending field in the upstream document.
type ValidationError struct {
	Op     string
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid response at %s: %s", e.Op, e.Path, e.Reason)
}

// KindOf reports the failure kind of err, or "" if err is not a bank error.
func KindOf(err error) Kind {
	var connErr *ConnectionError
	var upErr *UpstreamError
	var valErr *ValidationError

	switch {
	case errors.As(err, &connErr):
		return KindConnection
	case errors.As(err, &upErr):
		return KindUpstream
	case errors.As(err, &valErr):
		return KindValidation
	}

	return ""
}

// Retryable is true for connection failures, 5xx and 429.
func Retryable(err error) bool {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.StatusCode == http.StatusTooManyRequests || upErr.StatusCode >= 500
	}
	return KindOf(err) == KindConnection
}
