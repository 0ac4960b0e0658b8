package bank

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfAndRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		kind      Kind
		retryable bool
	}{
		{
			name:      "connection refused",
			err:       &ConnectionError{Op: OpStatement, Err: syscall.ECONNREFUSED},
			kind:      KindConnection,
			retryable: true,
		},
		{
			name:      "rate limited",
			err:       &UpstreamError{Op: OpStatement, StatusCode: 429, Description: "Too many requests"},
			kind:      KindUpstream,
			retryable: true,
		},
		{
			name:      "server error",
			err:       &UpstreamError{Op: OpClientInfo, StatusCode: 502},
			kind:      KindUpstream,
			retryable: true,
		},
		{
			name: "unauthorized",
			err:  &UpstreamError{Op: OpClientInfo, StatusCode: 403},
			kind: KindUpstream,
		},
		{
			name: "validation",
			err:  &ValidationError{Op: OpStatement, Path: "[0].mcc", Reason: "required field is missing"},
			kind: KindValidation,
		},
		{
			name: "wrapped validation",
			err:  fmt.Errorf("tool failed: %w", &ValidationError{Op: OpStatement, Path: "$"}),
			kind: KindValidation,
		},
		{
			name: "unrelated",
			err:  errors.New("boom"),
			kind: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.retryable, Retryable(tt.err))
		})
	}
}

func TestConnectionErrorUnwraps(t *testing.T) {
	err := &ConnectionError{Op: OpClientInfo, Err: syscall.ECONNREFUSED}
	assert.True(t, errors.Is(err, syscall.ECONNREFUSED))
	assert.Contains(t, err.Error(), "failed to connect to monobank api")
}

func TestUpstreamErrorMessage(t *testing.T) {
	err := &UpstreamError{Op: OpStatement, StatusCode: 429, Description: "Too many requests"}
	assert.Equal(t, "statement: monobank api returned 429 Too Many Requests: Too many requests", err.Error())

	err = &UpstreamError{Op: OpClientInfo, StatusCode: 403}
	assert.Equal(t, "client-info: monobank api returned 403 Forbidden", err.Error())
}
