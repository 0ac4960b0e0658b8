package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/monobank/bank"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
)

type stubToolHandler struct {
	spec    toolhandler.ToolSpec
	content string
	err     error
	got     map[string]any
}

func (th *stubToolHandler) Spec() toolhandler.ToolSpec { return th.spec }

func (th *stubToolHandler) Invoke(_ context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	th.got = req.Arguments
	if th.err != nil {
		return toolhandler.ToolResponse{}, th.err
	}
	return toolhandler.ToolResponse{Content: th.content}, nil
}

func stub(name string, required ...any) *stubToolHandler {
	return &stubToolHandler{
		spec: toolhandler.ToolSpec{
			Name: name,
			InputSchema: map[string]any{
				"type":     "object",
				"required": required,
			},
		},
		content: `"` + name + `"`,
	}
}

func TestCatalogRegister(t *testing.T) {
	c := NewCatalog()

	require.NoError(t, c.Register(stub("get_client_info")))
	require.NoError(t, c.Register(stub("get_statement")))

	assert.EqualError(t, c.Register(nil), "tool is nil")
	assert.EqualError(t, c.Register(stub("  ")), "tool name is required")
	assert.EqualError(t, c.Register(stub("GET_STATEMENT")), "tool get_statement already registered")

	specs := c.ListSpecs()
	require.Len(t, specs, 2)
	assert.Equal(t, "get_client_info", specs[0].Name)
	assert.Equal(t, "get_statement", specs[1].Name)

	th, spec, ok := c.Get(" Get_Statement ")
	require.True(t, ok)
	assert.NotNil(t, th)
	assert.Equal(t, "get_statement", spec.Name)

	_, _, ok = c.Get("transfer")
	assert.False(t, ok)
}

func TestServiceInvoke(t *testing.T) {
	statement := stub("get_statement", "account_id", "from_timestamp")
	failing := stub("get_client_info")
	failing.err = &bank.UpstreamError{Op: bank.OpClientInfo, StatusCode: 429}

	svc := New([]toolhandler.ToolHandler{statement, failing, nil, stub("get_statement")})
	require.Len(t, svc.ListSpecs(), 2)

	rsp, err := svc.Invoke(context.Background(), "get_statement", map[string]any{"account_id": "0", "from_timestamp": 1.0})
	require.NoError(t, err)
	assert.Equal(t, `"get_statement"`, rsp.Content)
	assert.Equal(t, "0", statement.got["account_id"])

	_, err = svc.Invoke(context.Background(), "get_statement", map[string]any{"account_id": "0"})
	var argErr *toolhandler.ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "invalid_arguments", ErrorKind(err))

	_, err = svc.Invoke(context.Background(), "get_client_info", nil)
	assert.Equal(t, "upstream_error", ErrorKind(err))
	assert.Equal(t, map[string]any{}, failing.got)

	_, err = svc.Invoke(context.Background(), "transfer_money", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
	assert.Equal(t, "unknown_tool", ErrorKind(err))

	assert.Equal(t, "internal_error", ErrorKind(errors.New("boom")))
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "none",
			want: map[string]any{},
		},
		{
			name: "json object",
			raw:  []string{`{"account_id": "0", "from_timestamp": 1700000000}`},
			want: map[string]any{"account_id": "0", "from_timestamp": 1700000000.0},
		},
		{
			name: "json split by shell",
			raw:  []string{`{"account_id":`, `"0"}`},
			want: map[string]any{"account_id": "0"},
		},
		{
			name: "pairs",
			raw:  []string{"account_id=0", "from_timestamp=1700000000", "to_timestamp="},
			want: map[string]any{"account_id": "0", "from_timestamp": "1700000000", "to_timestamp": ""},
		},
		{
			name:    "bad pair",
			raw:     []string{"account_id"},
			wantErr: true,
		},
		{
			name:    "bad json",
			raw:     []string{`{"account_id"`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArguments(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
