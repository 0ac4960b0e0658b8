package server

import (
	"context"

	"github.com/w-h-a/monobank/internal/service/tool"
)

type Option func(*Options)

type Options struct {
	Name    string
	Version string
	Address string
	Tools   *tool.Service
	Context context.Context
}

func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

func WithVersion(version string) Option {
	return func(o *Options) {
		o.Version = version
	}
}

func WithAddress(addr string) Option {
	return func(o *Options) {
		o.Address = addr
	}
}

func WithTools(tools *tool.Service) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Name:    "monobank",
		Version: "0.1.0",
		Address: ":8080",
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
