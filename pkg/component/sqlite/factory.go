package sqlite

import (
	"context"
	"fmt"

	"github.com/kart-io/atlas/pkg/component/storage"
	options "github.com/kart-io/atlas/pkg/options/sqlite"
)

// Options is re-exported from pkg/options/sqlite for convenience.
type Options = options.Options

// NewOptions is re-exported from pkg/options/sqlite for convenience.
var NewOptions = options.NewOptions

// InMemoryPath is re-exported from pkg/options/sqlite for convenience.
const InMemoryPath = options.InMemoryPath

// Factory implements the storage.Factory interface for creating SQLite clients.
type Factory struct {
	opts *Options
}

// NewFactory creates a new SQLite client factory with the provided options.
func NewFactory(opts *Options) *Factory {
	return &Factory{
		opts: opts,
	}
}

// Create creates and initializes a new SQLite client.
//
// Implements storage.Factory interface.
func (f *Factory) Create(ctx context.Context) (storage.Client, error) {
	if f.opts == nil {
		return nil, fmt.Errorf("sqlite options cannot be nil")
	}

	client, err := NewWithContext(ctx, f.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite client: %w", err)
	}

	return client, nil
}

// Options returns the SQLite options used by this factory.
func (f *Factory) Options() *Options {
	return f.opts
}

// Clone creates a new factory with a copy of the current options.
func (f *Factory) Clone() *Factory {
	optsCopy := *f.opts
	return &Factory{
		opts: &optsCopy,
	}
}

// Compile-time check that Factory implements storage.Factory.
var _ storage.Factory = (*Factory)(nil)
