package monobank

import (
	"context"

	"github.com/w-h-a/monobank/bank"
)

type userAgentKey struct{}

// WithUserAgent sets the User-Agent sent to the monobank api.
func WithUserAgent(ua string) bank.Option {
	return func(o *bank.Options) {
		o.Context = context.WithValue(o.Context, userAgentKey{}, ua)
	}
}

func UserAgentFrom(ctx context.Context) (string, bool) {
	ua, ok := ctx.Value(userAgentKey{}).(string)
	return ua, ok
}
