package etcd

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/kart-io/atlas/pkg/component/storage"
)

// Client wraps clientv3.Client with the storage.Client interface.
// It provides a unified interface for etcd operations while maintaining
// access to the underlying etcd client for advanced usage.
type Client struct {
	client *clientv3.Client
	opts   *Options
}

// Compile-time check that Client implements storage.Client.
var _ storage.Client = (*Client)(nil)

// New creates a new etcd client from the provided options.
// It validates the options, establishes a connection to the etcd cluster,
// and verifies connectivity with a ping operation.
//
// This is a convenience wrapper around NewWithContext that uses a default
// timeout context.
//
// Example usage:
//
//	opts := etcd.NewOptions()
//	opts.Endpoints = []string{"localhost:2379"}
//	client, err := New(opts)
//	if err != nil {
//	    log.Fatalf("failed to create etcd client: %v", err)
//	}
//	defer client.Close()
func New(opts *Options) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return NewWithContext(ctx, opts)
}

// NewWithContext creates a new etcd client with the specified context.
// The context bounds the initialization, including the connectivity ping.
//
// Returns an error if:
//   - Options validation fails (e.g., no endpoints provided)
//   - Client creation fails
//   - Initial connection cannot be established (verified by Ping)
func NewWithContext(ctx context.Context, opts *Options) (*Client, error) {
	if err := validateOptions(opts); err != nil {
		return nil, fmt.Errorf("invalid etcd options: %w", err)
	}

	config := clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: opts.DialTimeout,
		Username:    opts.Username,
		Password:    opts.Password,
	}

	cli, err := clientv3.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	client := &Client{
		client: cli,
		opts:   opts,
	}

	// Verify connectivity with a ping
	if err := client.Ping(ctx); err != nil {
		cli.Close()
		return nil, fmt.Errorf("failed to ping etcd cluster: %w", err)
	}

	return client, nil
}

// Name returns the storage type name.
// This implements the storage.Client interface.
func (c *Client) Name() string {
	return "etcd"
}

// Ping checks if the connection to the etcd cluster is alive.
// It performs a lightweight Get on a reserved key to verify connectivity
// without retrieving actual data. This is suitable for health checks.
func (c *Client) Ping(ctx context.Context) error {
	// 只关心集群是否响应，键不存在也算成功
	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	_, err := c.client.Get(ctx, "__atlas_ping__")
	if err != nil {
		return fmt.Errorf("etcd ping failed: %w", err)
	}
	return nil
}

// Close closes the etcd client connection gracefully.
// It is safe to call Close multiple times.
//
// This implements the storage.Client interface.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Health returns a HealthChecker function for this client.
//
// This implements the storage.Client interface.
func (c *Client) Health() storage.HealthChecker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return c.Ping(ctx)
	}
}

// Raw returns the underlying clientv3.Client for advanced operations.
// This allows direct access to etcd-specific features not exposed
// through the storage.Client interface.
//
// Example usage:
//
//	rawClient := client.Raw()
//	resp, err := rawClient.Get(ctx, "key")
func (c *Client) Raw() *clientv3.Client {
	return c.client
}

// KV returns the KV interface for key-value operations.
//
// Example usage:
//
//	kv := client.KV()
//	_, err := kv.Put(ctx, "key", "value")
func (c *Client) KV() clientv3.KV {
	return c.client.KV
}

// Lease returns the Lease interface for lease operations.
//
// Example usage:
//
//	lease := client.Lease()
//	resp, err := lease.Grant(ctx, 60)
func (c *Client) Lease() clientv3.Lease {
	return c.client.Lease
}

// validateOptions validates the etcd options.
func validateOptions(opts *Options) error {
	if opts == nil {
		return fmt.Errorf("options cannot be nil")
	}

	if len(opts.Endpoints) == 0 {
		return fmt.Errorf("at least one endpoint is required")
	}

	if opts.DialTimeout <= 0 {
		return fmt.Errorf("dial timeout must be positive")
	}

	if opts.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	return nil
}
