package etcd

import (
	"context"
	"fmt"

	"github.com/kart-io/atlas/pkg/component/storage"
	options "github.com/kart-io/atlas/pkg/options/etcd"
)

// Options is re-exported from pkg/options/etcd for convenience.
type Options = options.Options

// NewOptions is re-exported from pkg/options/etcd for convenience.
var NewOptions = options.NewOptions

// Factory implements the storage.Factory interface for creating etcd clients.
// It encapsulates the client creation logic and allows for dependency injection
// and testing with mock implementations.
type Factory struct {
	opts *Options
}

// NewFactory creates a new Factory for etcd clients.
// The provided options will be used to create all clients produced by this factory.
//
// Example usage:
//
//	opts := NewOptions()
//	opts.Endpoints = []string{"localhost:2379"}
//	factory := NewFactory(opts)
//
//	client, err := factory.Create(ctx)
//	if err != nil {
//	    log.Fatalf("failed to create client: %v", err)
//	}
//	defer client.Close()
func NewFactory(opts *Options) *Factory {
	return &Factory{
		opts: opts,
	}
}

// Create creates and initializes a new etcd client.
// The returned client is ready to use (connected and verified).
//
// This implements the storage.Factory interface.
func (f *Factory) Create(ctx context.Context) (storage.Client, error) {
	client, err := NewWithContext(ctx, f.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}
	return client, nil
}

// CreateWithOptions creates a new etcd client with specific options.
// This allows creating clients with different configurations from the same factory.
func (f *Factory) CreateWithOptions(ctx context.Context, opts *Options) (*Client, error) {
	return NewWithContext(ctx, opts)
}

// MustCreate creates a new etcd client and panics if creation fails.
// This is useful for initialization code where failure should stop the program.
func (f *Factory) MustCreate(ctx context.Context) *Client {
	client, err := NewWithContext(ctx, f.opts)
	if err != nil {
		panic(fmt.Sprintf("failed to create etcd client: %v", err))
	}
	return client
}

// Compile-time check that Factory implements storage.Factory.
var _ storage.Factory = (*Factory)(nil)
