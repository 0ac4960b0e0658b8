package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/w-h-a/monobank/bank"
	"github.com/w-h-a/monobank/internal/service/tool"
	"github.com/w-h-a/monobank/server"
)

const manualVersion = "1.0"

type manual struct {
	Version string       `json:"version"`
	Tools   []manualTool `json:"tools"`
}

type manualTool struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Inputs       map[string]any `json:"inputs"`
	Tags         []string       `json:"tags"`
	ToolProvider toolProvider   `json:"tool_provider"`
}

type toolProvider struct {
	Type        string `json:"provider_type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Method      string `json:"http_method"`
	ContentType string `json:"content_type"`
}


type toolsHandler struct {
	options server.Options
	tools   *tool.Service
}

// Discovery: an empty body returns the UTCP manual. Any other body
// invokes a tool, see dispatch.
func (h *toolsHandler) List(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "failed to read body")
		return
	}
	defer r.Body.Close()

	if len(bytes.TrimSpace(raw)) > 0 {
		var payload map[string]any
		if err := decode(raw, &payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
			return
		}
		name, args, err := h.dispatch(payload)
		if err != nil {
			writeError(w, http.StatusNotFound, "unknown_tool", err.Error())
			return
		}
		h.invoke(w, r, name, args)
		return
	}

	base := baseURL(r)

	m := manual{Version: manualVersion, Tools: []manualTool{}}
	for _, spec := range h.tools.ListSpecs() {
		m.Tools = append(m.Tools, manualTool{
			Name:        spec.Name,
			Description: spec.Description,
			Inputs:      spec.InputSchema,
			Tags:        []string{h.options.Name},
			ToolProvider: toolProvider{
				Type:        "http",
				Name:        h.options.Name,
				URL:         base + "/tools/" + spec.Name,
				Method:      http.MethodPost,
				ContentType: "application/json",
			},
		})
	}

	writeJSON(w, http.StatusOK, m)
}

// dispatch resolves a body posted to /tools. An envelope
// {"tool": name, "arguments": {...}} names the tool. A bare argument
// object goes to the tool whose schema it fits: every required argument
// present and no argument outside the declared properties.
func (h *toolsHandler) dispatch(payload map[string]any) (string, map[string]any, error) {
	if name, ok := payload["tool"].(string); ok {
		args, _ := payload["arguments"].(map[string]any)
		return name, args, nil
	}

	best, bestRequired := "", -1
	for _, spec := range h.tools.ListSpecs() {
		required := spec.RequiredArguments()
		if !fits(spec.InputSchema, required, payload) {
			continue
		}
		if len(required) > bestRequired {
			best, bestRequired = spec.Name, len(required)
		}
	}

	if bestRequired < 0 {
		return "", nil, errors.New("no tool accepts the given arguments")
	}

	return best, payload, nil
}

func fits(schema map[string]any, required []string, args map[string]any) bool {
	for _, name := range required {
		if v, ok := args[name]; !ok || v == nil {
			return false
		}
	}

	properties, _ := schema["properties"].(map[string]any)
	for name := range args {
		if _, ok := properties[name]; !ok {
			return false
		}
	}

	return true
}

func (h *toolsHandler) Call(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "failed to read body")
		return
	}
	defer r.Body.Close()

	args := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := decode(raw, &args); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
			return
		}
	}

	h.invoke(w, r, mux.Vars(r)["name"], args)
}

func (h *toolsHandler) invoke(w http.ResponseWriter, r *http.Request, name string, args map[string]any) {
	rsp, err := h.tools.Invoke(r.Context(), name, args)
	if err != nil {
		kind := tool.ErrorKind(err)
		writeError(w, statusFor(err), kind, err.Error())
		return
	}

	var result any = rsp.Content
	if json.Valid([]byte(rsp.Content)) {
		result = json.RawMessage(rsp.Content)
	}

	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func (h *toolsHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	switch bank.KindOf(err) {
	case bank.KindConnection:
		return http.StatusServiceUnavailable
	case bank.KindUpstream, bank.KindValidation:
		return http.StatusBadGateway
	}

	if errors.Is(err, tool.ErrUnknownTool) {
		return http.StatusNotFound
	}

	if tool.ErrorKind(err) == "invalid_arguments" {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func decode(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); len(fwd) > 0 {
		scheme = fwd
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind string, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "kind": kind})
}

// NewHandler routes the tool endpoints.
func NewHandler(opts ...server.Option) http.Handler {
	options := server.NewOptions(opts...)

	if options.Tools == nil {
		panic("tools are required")
	}

	h := &toolsHandler{
		options: options,
		tools:   options.Tools,
	}

	router := mux.NewRouter()

	if ms, ok := MiddlewareFrom(options.Context); ok {
		for _, m := range ms {
			router.Use(m)
		}
	}

	router.HandleFunc("/tools", h.List).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/tools/{name}", h.Call).Methods(http.MethodPost)
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	return router
}
