package monobank

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/w-h-a/monobank/bank"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
)

const ClientInfoToolName = "get_client_info"

type clientInfoToolHandler struct {
	options toolhandler.Options
	bank    bank.Bank
}

func (th *clientInfoToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{
		Name: ClientInfoToolName,
		Description: "Get client information from Monobank API. " +
			"Retrieves information about the client, their accounts, and jars. " +
			"Requires a Monobank API token with the necessary permissions.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

func (th *clientInfoToolHandler) Invoke(ctx context.Context, _ toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	info, err := th.bank.ClientInfo(ctx)
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	bs, err := json.Marshal(info)
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	return toolhandler.ToolResponse{
		Content: string(bs),
		Metadata: map[string]string{
			"source":   "monobank",
			"tool":     ClientInfoToolName,
			"accounts": strconv.Itoa(len(info.Accounts)),
			"jars":     strconv.Itoa(len(info.Jars)),
		},
	}, nil
}

func NewClientInfoToolHandler(opts ...toolhandler.Option) toolhandler.ToolHandler {
	options := toolhandler.NewOptions(opts...)

	th := &clientInfoToolHandler{
		options: options,
	}

	b, ok := BankFrom(options.Context)
	if !ok || b == nil {
		panic("bank is required")
	}

	th.bank = b

	return th
}
