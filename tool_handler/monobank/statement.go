package monobank

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/w-h-a/monobank/bank"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
	getsafe "github.com/w-h-a/monobank/util/get_safe"
)

const StatementToolName = "get_statement"

type statementToolHandler struct {
	options toolhandler.Options
	bank    bank.Bank
}

func (th *statementToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{
		Name: StatementToolName,
		Description: "Get account statement for a given period. " +
			"Rate limit: 1 request per 60 seconds. Max period: 31 days + 1 hour. " +
			"Rules: " +
			"1. Fetch from default account (account_id = \"0\") unless another account is specified. " +
			"2. Amounts are converted from the smallest currency unit (e.g., kopiyka, cent) to the main unit and returned as decimals. " +
			"3. Transaction timestamps (\"time\") are converted from Unix timestamps to ISO 8601 datetime strings (UTC). " +
			"4. Fields \"id\", \"invoiceId\", \"counterEdrpou\", and \"counterIban\" are omitted from the returned results.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"account_id": map[string]any{
					"type":        "string",
					"description": "Account identifier from the list of accounts, or \"0\" for default.",
				},
				"from_timestamp": map[string]any{
					"type":        "integer",
					"description": "Start of the statement period (Unix timestamp).",
				},
				"to_timestamp": map[string]any{
					"type":        "integer",
					"description": "End of the statement period (Unix timestamp). 0 means now.",
				},
			},
			"required": []any{"account_id", "from_timestamp"},
		},
		Examples: []map[string]any{
			{"account_id": "0", "from_timestamp": 1700000000, "to_timestamp": 0},
		},
	}
}

func (th *statementToolHandler) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	stmtReq, err := statementRequest(req.Arguments)
	if err != nil {
		return toolhandler.ToolResponse{}, &toolhandler.ArgumentError{Tool: StatementToolName, Err: err}
	}

	txns, err := th.bank.Statement(ctx, stmtReq)
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	bs, err := json.Marshal(txns)
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	return toolhandler.ToolResponse{
		Content: string(bs),
		Metadata: map[string]string{
			"source": "monobank",
			"tool":   StatementToolName,
			"items":  strconv.Itoa(len(txns)),
		},
	}, nil
}

func statementRequest(args map[string]any) (bank.StatementRequest, error) {
	accountId, ok, err := getsafe.String(args, "account_id")
	if err != nil {
		return bank.StatementRequest{}, err
	}
	if !ok {
		return bank.StatementRequest{}, errors.New("missing 'account_id' argument")
	}

	from, ok, err := getsafe.Int64(args, "from_timestamp")
	if err != nil {
		return bank.StatementRequest{}, err
	}
	if !ok {
		return bank.StatementRequest{}, errors.New("missing 'from_timestamp' argument")
	}

	to, _, err := getsafe.Int64(args, "to_timestamp")
	if err != nil {
		return bank.StatementRequest{}, err
	}

	return bank.StatementRequest{
		AccountID: accountId,
		From:      from,
		To:        to,
	}, nil
}

func NewStatementToolHandler(opts ...toolhandler.Option) toolhandler.ToolHandler {
	options := toolhandler.NewOptions(opts...)

	th := &statementToolHandler{
		options: options,
	}

	b, ok := BankFrom(options.Context)
	if !ok || b == nil {
		panic("bank is required")
	}

	th.bank = b

	return th
}
