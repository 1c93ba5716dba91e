package mysql

import (
	"context"
	"fmt"

	"github.com/kart-io/atlas/pkg/component/storage"
	options "github.com/kart-io/atlas/pkg/options/mysql"
)

// Options is re-exported from pkg/options/mysql for convenience.
type Options = options.Options

// NewOptions is re-exported from pkg/options/mysql for convenience.
var NewOptions = options.NewOptions

// Factory implements the storage.Factory interface for creating MySQL clients.
// It encapsulates the MySQL client creation logic and configuration,
// enabling dependency injection and simplified testing.
//
// Example usage:
//
//	opts := NewOptions()
//	opts.Host = "localhost"
//	opts.Database = "mydb"
//
//	factory := NewFactory(opts)
//	client, err := factory.Create(context.Background())
//	if err != nil {
//	    log.Fatalf("failed to create MySQL client: %v", err)
//	}
//	defer client.Close()
type Factory struct {
	opts *Options
}

// NewFactory creates a new MySQL client factory with the provided options.
// The factory can be used to create multiple MySQL client instances
// with the same configuration.
func NewFactory(opts *Options) *Factory {
	return &Factory{
		opts: opts,
	}
}

// Create creates and initializes a new MySQL client.
// It validates the configuration, establishes a connection,
// and verifies connectivity before returning the client.
//
// Implements storage.Factory interface.
func (f *Factory) Create(ctx context.Context) (storage.Client, error) {
	if f.opts == nil {
		return nil, fmt.Errorf("mysql options cannot be nil")
	}

	client, err := NewWithContext(ctx, f.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mysql client: %w", err)
	}

	return client, nil
}

// Options returns the MySQL options used by this factory.
func (f *Factory) Options() *Options {
	return f.opts
}

// Clone creates a new factory with a copy of the current options.
// This is useful when you need to create multiple factories with
// slightly different configurations based on the same base options.
//
// Example:
//
//	factory := NewFactory(baseOpts)
//	devFactory := factory.Clone()
//	devFactory.Options().Database = "dev_db"
func (f *Factory) Clone() *Factory {
	optsCopy := *f.opts
	return &Factory{
		opts: &optsCopy,
	}
}

// Compile-time check that Factory implements storage.Factory.
var _ storage.Factory = (*Factory)(nil)
