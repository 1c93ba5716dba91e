// Package storage defines the shared contract for storage backends.
//
// Every backend package under pkg/component (mysql, postgres, sqlite, redis,
// etcd) implements the Client interface and exposes a Factory that builds a
// connected, verified client from its options. On top of that contract this
// package provides:
//
//   - Manager: a registry for live clients with concurrent health checking
//     and graceful shutdown
//   - HealthChecker / HealthStatus: the probe primitives used by readiness
//     endpoints
//   - StorageError: standardized error types shared by all backends
//
// # Quick Start
//
//	factory := redis.NewFactory(redisOpts)
//	client, err := factory.Create(ctx)
//	if err != nil {
//	    log.Fatalf("failed to create redis client: %v", err)
//	}
//
//	mgr := storage.NewManager()
//	mgr.MustRegister("redis-cache", client)
//	defer mgr.CloseAll()
//
//	for name, status := range mgr.HealthCheckAll(ctx) {
//	    if !status.Healthy {
//	        log.Printf("%s unhealthy: %v", name, status.Error)
//	    }
//	}
//
// # Error Handling
//
// Backends wrap failures in StorageError values that carry a stable code and
// optional context:
//
//	if errors.Is(err, storage.ErrNotConnected) {
//	    log.Println("client is not connected")
//	}
//	if storageErr, ok := storage.GetStorageError(err); ok {
//	    log.Printf("code=%s message=%s", storageErr.Code, storageErr.Message)
//	}
//
// Most applications do not use this package directly; the datasource manager
// in pkg/infra/datasource layers typed registration and lazy initialization
// on top of it.
package storage
