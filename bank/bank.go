package bank

import "context"

// DefaultAccount selects the client's default account in a statement request.
const DefaultAccount = "0"

type Bank interface {
	ClientInfo(ctx context.Context) (ClientInfo, error)
	Statement(ctx context.Context, req StatementRequest) ([]Transaction, error)
}

// StatementRequest is an inclusive window in Unix seconds. A zero To
// means "now" at call time.
type StatementRequest struct {
	AccountID string
	From      int64
	To        int64
}
