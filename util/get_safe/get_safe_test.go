package getsafe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	payload := map[string]any{"account_id": "abc", "null": nil, "number": 1.0}

	s, ok, err := String(payload, "account_id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", s)

	_, ok, err = String(payload, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = String(payload, "null")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = String(payload, "number")
	assert.EqualError(t, err, "argument 'number' has invalid type: expected string, got float64")
}

func TestInt64(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int64
		wantOk  bool
		wantErr bool
	}{
		{name: "json float", value: 1700000000.0, want: 1700000000, wantOk: true},
		{name: "int", value: 42, want: 42, wantOk: true},
		{name: "int64", value: int64(-7), want: -7, wantOk: true},
		{name: "json number", value: json.Number("1700000000"), want: 1700000000, wantOk: true},
		{name: "numeric string", value: " 1700000000 ", want: 1700000000, wantOk: true},
		{name: "empty string", value: "", wantOk: false},
		{name: "nil", value: nil, wantOk: false},
		{name: "fraction", value: 1.5, wantErr: true},
		{name: "word", value: "yesterday", wantErr: true},
		{name: "bool", value: true, wantErr: true},
		{name: "json fraction", value: json.Number("1.5"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Int64(map[string]any{"v": tt.value}, "v")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
