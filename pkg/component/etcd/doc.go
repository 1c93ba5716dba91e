// Package etcd provides the etcd v3 storage client.
//
// This package wraps the official etcd clientv3 library and implements the
// storage.Client interface, enabling consistent integration with the other
// storage backends. The same client backs service discovery in
// pkg/infra/discovery.
//
// # Basic Usage
//
//	opts := etcd.NewOptions()
//	opts.Endpoints = []string{"localhost:2379"}
//
//	client, err := etcd.New(opts)
//	if err != nil {
//	    log.Fatalf("failed to create etcd client: %v", err)
//	}
//	defer client.Close()
//
// # Health Checking
//
// CheckHealth goes beyond Ping and also verifies the cluster member list:
//
//	status := client.CheckHealth(ctx)
//	if !status.Healthy {
//	    log.Printf("etcd unhealthy: %v (latency: %v)", status.Error, status.Latency)
//	}
//
// # Advanced Usage
//
// The underlying clientv3 handle remains accessible for etcd-specific
// operations:
//
//	rawClient := client.Raw()
//	resp, err := rawClient.Get(ctx, "/config/key")
//
//	kv := client.KV()
//	lease := client.Lease()
//
// # Authentication
//
// Username and password are taken from the options; the password can also be
// supplied via the ETCD_PASSWORD environment variable (see pkg/options/etcd).
package etcd
