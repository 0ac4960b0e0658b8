package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/monobank/bank"
	"github.com/w-h-a/monobank/internal/service/tool"
	"github.com/w-h-a/monobank/server"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
)

type stubToolHandler struct {
	name     string
	required []string
	content  string
	err      error
	got      map[string]any
}

func (th *stubToolHandler) Spec() toolhandler.ToolSpec {
	properties := map[string]any{}
	for _, name := range th.required {
		properties[name] = map[string]any{"type": "string"}
	}

	return toolhandler.ToolSpec{
		Name:        th.name,
		Description: th.name + " tool",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": properties,
			"required":   th.required,
		},
	}
}

func (th *stubToolHandler) Invoke(_ context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	th.got = req.Arguments
	if th.err != nil {
		return toolhandler.ToolResponse{}, th.err
	}
	return toolhandler.ToolResponse{Content: th.content}, nil
}

func newTestServer(t *testing.T, handlers ...toolhandler.ToolHandler) *httptest.Server {
	srv := httptest.NewServer(NewHandler(server.WithTools(tool.New(handlers))))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, body string) (int, map[string]any) {
	rsp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer rsp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(rsp.Body).Decode(&out))

	return rsp.StatusCode, out
}

func TestManual(t *testing.T) {
	srv := newTestServer(t,
		&stubToolHandler{name: "get_client_info", content: "{}"},
		&stubToolHandler{name: "get_statement", required: []string{"account_id", "from_timestamp"}, content: "[]"},
	)

	rsp, err := http.Get(srv.URL + "/tools")
	require.NoError(t, err)
	defer rsp.Body.Close()
	require.Equal(t, http.StatusOK, rsp.StatusCode)

	var m manual
	require.NoError(t, json.NewDecoder(rsp.Body).Decode(&m))

	assert.Equal(t, "1.0", m.Version)
	require.Len(t, m.Tools, 2)
	assert.Equal(t, "get_client_info", m.Tools[0].Name)
	assert.Equal(t, srv.URL+"/tools/get_client_info", m.Tools[0].ToolProvider.URL)
	assert.Equal(t, http.MethodPost, m.Tools[1].ToolProvider.Method)
	assert.Equal(t, []string{"monobank"}, m.Tools[1].Tags)

	status, out := post(t, srv.URL+"/tools", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, out["tools"], 2)
}

func TestCall(t *testing.T) {
	statement := &stubToolHandler{
		name:     "get_statement",
		required: []string{"account_id", "from_timestamp"},
		content:  `[{"amount":-1234.56}]`,
	}
	srv := newTestServer(t, statement)

	status, out := post(t, srv.URL+"/tools/get_statement", `{"account_id":"0","from_timestamp":1700000000}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{map[string]any{"amount": -1234.56}}, out["result"])
	assert.Equal(t, json.Number("1700000000"), statement.got["from_timestamp"])

	status, out = post(t, srv.URL+"/tools", `{"tool":"get_statement","arguments":{"account_id":"acc","from_timestamp":1}}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "acc", statement.got["account_id"])
	assert.NotNil(t, out["result"])
}

func TestDispatchBareArguments(t *testing.T) {
	clientInfo := &stubToolHandler{name: "get_client_info", content: `{"client_id":"c1"}`}
	statement := &stubToolHandler{name: "get_statement", required: []string{"account_id", "from_timestamp"}, content: "[]"}
	srv := newTestServer(t, clientInfo, statement)

	status, out := post(t, srv.URL+"/tools", `{"account_id":"0","from_timestamp":1700000000}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, out["result"])
	assert.Equal(t, "0", statement.got["account_id"])
	assert.Nil(t, clientInfo.got)

	status, out = post(t, srv.URL+"/tools", `{}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"client_id": "c1"}, out["result"])
	assert.NotNil(t, clientInfo.got)

	status, out = post(t, srv.URL+"/tools", `{"account_id":"0"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "unknown_tool", out["kind"])

	status, out = post(t, srv.URL+"/tools", `{"tool":"get_client_info"}`)
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, out["result"])
}

func TestCallErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		path   string
		body   string
		status int
		kind   string
	}{
		{
			name:   "bad json",
			path:   "/tools/get_statement",
			body:   `{"account_id"`,
			status: http.StatusBadRequest,
			kind:   "invalid_request",
		},
		{
			name:   "missing argument",
			path:   "/tools/get_statement",
			body:   `{"account_id":"0"}`,
			status: http.StatusBadRequest,
			kind:   "invalid_arguments",
		},
		{
			name:   "unknown tool",
			path:   "/tools/transfer_money",
			body:   `{}`,
			status: http.StatusNotFound,
			kind:   "unknown_tool",
		},
		{
			name:   "upstream",
			err:    &bank.UpstreamError{Op: bank.OpStatement, StatusCode: 429},
			path:   "/tools/get_statement",
			body:   `{"account_id":"0","from_timestamp":1}`,
			status: http.StatusBadGateway,
			kind:   "upstream_error",
		},
		{
			name:   "validation",
			err:    &bank.ValidationError{Op: bank.OpStatement, Path: "[0].mcc", Reason: "required field is missing"},
			path:   "/tools/get_statement",
			body:   `{"account_id":"0","from_timestamp":1}`,
			status: http.StatusBadGateway,
			kind:   "validation_failure",
		},
		{
			name:   "connection",
			err:    &bank.ConnectionError{Op: bank.OpStatement, Err: context.DeadlineExceeded},
			path:   "/tools/get_statement",
			body:   `{"account_id":"0","from_timestamp":1}`,
			status: http.StatusServiceUnavailable,
			kind:   "connection_failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubToolHandler{
				name:     "get_statement",
				required: []string{"account_id", "from_timestamp"},
				err:      tt.err,
			})

			status, out := post(t, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, out["kind"])
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestMiddlewareAndHealth(t *testing.T) {
	var seen []string

	h := NewHandler(
		server.WithTools(tool.New(nil)),
		WithMiddleware(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, r.URL.Path)
				next.ServeHTTP(w, r)
			})
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, []string{"/healthz"}, seen)
}
