package toolprovider

import (
	"context"
	"net/http"
)

type Option func(*Options)

type Options struct {
	Addrs   []string
	Headers http.Header
	Context context.Context
}

// WithAddrs sets the discovery endpoints, e.g. http://localhost:8080/tools.
func WithAddrs(addrs ...string) Option {
	return func(o *Options) {
		o.Addrs = addrs
	}
}

func WithHeader(key, value string) Option {
	return func(o *Options) {
		o.Headers.Add(key, value)
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Headers: http.Header{},
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
