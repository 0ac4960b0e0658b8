package utcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	goutcp "github.com/universal-tool-calling-protocol/go-utcp"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
	"github.com/w-h-a/monobank/tool_handler/utcp"
	toolprovider "github.com/w-h-a/monobank/tool_provider"
)

type utcpToolProvider struct {
	options toolprovider.Options
	client  goutcp.UtcpClientInterface
}

// Load discovers the tools of the configured providers. go-utcp matches
// query against the provider name, so "" loads every tool.
func (tp *utcpToolProvider) Load(ctx context.Context, query string, limit int) ([]toolhandler.ToolHandler, error) {
	remoteTools, err := tp.client.SearchTools(query, limit)
	if err != nil {
		detail := "utcp discovery failed"
		slog.ErrorContext(ctx, detail, "addrs", tp.options.Addrs, "error", err)
		return nil, fmt.Errorf("%s: %w", detail, err)
	}

	handlers := make([]toolhandler.ToolHandler, 0, len(remoteTools))
	for _, tool := range remoteTools {
		schema := map[string]any{
			"type":       "object",
			"properties": tool.Inputs.Properties,
		}
		if len(tool.Inputs.Required) > 0 {
			schema["required"] = tool.Inputs.Required
		}

		spec := toolhandler.ToolSpec{
			Name:        LocalName(tool.Name),
			Description: tool.Description,
			InputSchema: schema,
		}

		handlers = append(handlers, utcp.NewToolHandler(
			utcp.WithUtcpClient(tp.client),
			utcp.WithToolName(tool.Name),
			utcp.WithToolSpec(spec),
			utcp.WithEnvelope(),
		))
	}

	slog.InfoContext(ctx, "loaded remote tools", "query", query, "count", len(handlers))

	return handlers, nil
}

// LocalName strips the provider prefix go-utcp puts on discovered tools.
func LocalName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

type providerConfig struct {
	Type    string            `json:"provider_type"`
	Name    string            `json:"name"`
	URL     string            `json:"url"`
	Method  string            `json:"http_method"`
	Headers map[string]string `json:"headers"`
}

type providersFile struct {
	Providers []providerConfig `json:"providers"`
}

func (tp *utcpToolProvider) providers() (providersFile, error) {
	config := providersFile{}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	for key := range tp.options.Headers {
		headers[key] = tp.options.Headers.Get(key)
	}

	for _, u := range tp.options.Addrs {
		parsed, err := url.Parse(u)
		if err != nil {
			return providersFile{}, err
		}
		if len(parsed.Scheme) == 0 || len(parsed.Host) == 0 {
			return providersFile{}, fmt.Errorf("invalid tool provider address %q", u)
		}
		config.Providers = append(config.Providers, providerConfig{
			Type:    "http",
			Name:    strings.ReplaceAll(parsed.Hostname(), ".", "_"),
			URL:     u,
			Method:  "POST",
			Headers: headers,
		})
	}

	return config, nil
}

func (tp *utcpToolProvider) createTempConfig() (string, error) {
	config, err := tp.providers()
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "utcp_config_*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(config); err != nil {
		return "", err
	}

	return f.Name(), nil
}

func NewToolProvider(opts ...toolprovider.Option) toolprovider.ToolProvider {
	options := toolprovider.NewOptions(opts...)

	tp := &utcpToolProvider{
		options: options,
	}

	var configPath string

	if len(options.Addrs) > 0 {
		tmpPath, err := tp.createTempConfig()
		if err != nil {
			panic(err)
		}
		configPath = tmpPath
		defer os.Remove(tmpPath)
	}

	client, err := goutcp.NewUTCPClient(
		options.Context,
		&goutcp.UtcpClientConfig{
			ProvidersFilePath: configPath,
		},
		nil,
		nil,
	)
	if err != nil {
		panic(err)
	}

	tp.client = client

	return tp
}
