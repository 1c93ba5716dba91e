package storage

import (
	"context"
	"time"
)

// Client is the minimal contract every storage backend client implements.
// Concrete implementations live in the sibling packages (mysql, postgres,
// sqlite, redis, etcd) and wrap the underlying driver handle together with
// its configuration.
type Client interface {
	// Name returns a short identifier for the backend (e.g. "mysql", "redis").
	Name() string

	// Ping verifies connectivity to the backend. It should be cheap enough
	// to call from readiness probes.
	Ping(ctx context.Context) error

	// Close releases the underlying connections. The client must not be
	// used after Close returns.
	Close() error

	// Health returns a checker bound to this client. The checker is stable
	// and can be registered once at startup.
	Health() HealthChecker
}

// HealthChecker probes a single client and reports nil when healthy.
// Implementations should bound their own timeout so a stuck backend
// cannot block the caller indefinitely.
type HealthChecker func() error

// HealthStatus is the result of one health probe.
type HealthStatus struct {
	Name    string        `json:"name"`
	Healthy bool          `json:"healthy"`
	Latency time.Duration `json:"latency"`
	Error   error         `json:"error,omitempty"`
}

// Factory creates fully initialized storage clients. Factories carry the
// configuration; Create validates it, connects, and verifies connectivity
// before returning.
type Factory interface {
	Create(ctx context.Context) (Client, error)
}
