// Package server provides options for the HTTP server manager.
package server

import (
	"time"

	mwopts "github.com/kart-io/atlas/pkg/options/middleware"
	httpopts "github.com/kart-io/atlas/pkg/options/server/http"
)

// DefaultShutdownTimeout is the default graceful shutdown timeout.
const DefaultShutdownTimeout = 30 * time.Second

// Options contains server manager configuration.
type Options struct {
	// HTTP contains HTTP server configuration.
	HTTP *httpopts.Options `json:"http" mapstructure:"http"`

	// Middleware contains middleware configuration applied to the engine.
	Middleware *mwopts.Options `json:"middleware" mapstructure:"middleware"`

	// ShutdownTimeout is the timeout for graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// Option is a function that configures Options.
type Option func(*Options)

// NewOptions creates a new Options with default values.
func NewOptions() *Options {
	return &Options{
		HTTP:            httpopts.NewOptions(),
		Middleware:      mwopts.NewOptions(),
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// WithHTTPOptions sets the HTTP server options.
func WithHTTPOptions(opts *httpopts.Options) Option {
	return func(o *Options) {
		if opts != nil {
			o.HTTP = opts
		}
	}
}

// WithMiddleware sets the middleware options.
func WithMiddleware(opts *mwopts.Options) Option {
	return func(o *Options) {
		if opts != nil {
			o.Middleware = opts
		}
	}
}

// WithShutdownTimeout sets the graceful shutdown timeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.ShutdownTimeout = d
		}
	}
}
