package monobank

import (
	"context"

	"github.com/w-h-a/monobank/bank"
	toolhandler "github.com/w-h-a/monobank/tool_handler"
)

type bankKey struct{}

func WithBank(b bank.Bank) toolhandler.Option {
	return func(o *toolhandler.Options) {
		o.Context = context.WithValue(o.Context, bankKey{}, b)
	}
}

func BankFrom(ctx context.Context) (bank.Bank, bool) {
	b, ok := ctx.Value(bankKey{}).(bank.Bank)
	return b, ok
}
