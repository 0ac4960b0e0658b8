package bank

import (
	"context"
	"net/http"
	"time"

	"github.com/w-h-a/monobank/config"
)

type Option func(*Options)

type Options struct {
	BaseURL   string
	Token     config.Secret
	Transport http.RoundTripper
	Clock     func() time.Time
	Context   context.Context
}

func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

func WithToken(token config.Secret) Option {
	return func(o *Options) {
		o.Token = token
	}
}

func WithTransport(rt http.RoundTripper) Option {
	return func(o *Options) {
		o.Transport = rt
	}
}

func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		o.Clock = clock
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		BaseURL:   config.DefaultBaseURL,
		Token:     config.NewSecret(config.TokenPlaceholder),
		Transport: http.DefaultTransport,
		Clock:     time.Now,
		Context:   context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
