// Package etcd registers the service into etcd for Traefik discovery.
package etcd

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/kart-io/logger"
	clientv3 "go.etcd.io/etcd/client/v3"

	etcdclient "github.com/kart-io/atlas/pkg/component/etcd"
	"github.com/kart-io/atlas/pkg/infra/server"
)

// defaultLeaseTTL is used when the configured lease TTL is not positive.
const defaultLeaseTTL = 10

// Registrar publishes the service address into etcd under the Traefik
// KV layout, bound to a keepalive lease so crashed instances disappear
// automatically. It implements server.Runnable and is driven by the
// server manager next to the HTTP server.
type Registrar struct {
	client      *etcdclient.Client
	serviceName string
	addr        string
	rule        string
	leaseTTL    int64

	leaseID  clientv3.LeaseID
	stopCh   chan struct{}
	stopOnce sync.Once
}

var _ server.Runnable = (*Registrar)(nil)

// NewRegistrar creates a new Registrar.
// rule is the Traefik router rule, e.g. "PathPrefix(`/api`)".
func NewRegistrar(client *etcdclient.Client, serviceName, addr, rule string, leaseTTL int64) *Registrar {
	if leaseTTL <= 0 {
		leaseTTL = defaultLeaseTTL
	}
	return &Registrar{
		client:      client,
		serviceName: serviceName,
		addr:        addr,
		rule:        rule,
		leaseTTL:    leaseTTL,
		stopCh:      make(chan struct{}),
	}
}

// Name returns the server name for identification.
func (r *Registrar) Name() string {
	return "etcd-registrar"
}

// Start registers the service keys and keeps the lease alive until Stop.
func (r *Registrar) Start(ctx context.Context) error {
	leaseResp, err := r.client.Lease().Grant(ctx, r.leaseTTL)
	if err != nil {
		return fmt.Errorf("failed to grant lease: %w", err)
	}
	r.leaseID = leaseResp.ID

	// KeepAlive 用独立 context：注册用的 ctx 结束后租约仍需续期
	ch, err := r.client.Lease().KeepAlive(context.Background(), r.leaseID)
	if err != nil {
		return fmt.Errorf("failed to keep alive lease: %w", err)
	}

	go func() {
		for {
			select {
			case <-r.stopCh:
				return
			case _, ok := <-ch:
				if !ok {
					logger.Warnw("etcd keepalive channel closed", "service", r.serviceName)
					return
				}
			}
		}
	}()

	// Traefik KV structure:
	// traefik/http/routers/<name>/rule -> <rule>
	// traefik/http/routers/<name>/service -> <name>
	// traefik/http/services/<name>/loadbalancer/servers/<id>/url -> <addr>

	// Instance ID derives from the address so re-registration overwrites
	// the same key instead of accumulating stale servers.
	hash := md5.Sum([]byte(r.addr))
	instanceID := hex.EncodeToString(hash[:])

	ops := []clientv3.Op{
		clientv3.OpPut(fmt.Sprintf("traefik/http/routers/%s/rule", r.serviceName), r.rule, clientv3.WithLease(r.leaseID)),
		clientv3.OpPut(fmt.Sprintf("traefik/http/routers/%s/service", r.serviceName), r.serviceName, clientv3.WithLease(r.leaseID)),
		clientv3.OpPut(fmt.Sprintf("traefik/http/services/%s/loadbalancer/servers/%s/url", r.serviceName, instanceID), r.addr, clientv3.WithLease(r.leaseID)),
	}

	if _, err := r.client.KV().Txn(ctx).Then(ops...).Commit(); err != nil {
		return fmt.Errorf("failed to register service keys: %w", err)
	}

	logger.Infow("Service registered to etcd for Traefik",
		"service", r.serviceName,
		"addr", r.addr,
		"rule", r.rule,
	)
	return nil
}

// Stop deregisters the service by revoking the lease.
func (r *Registrar) Stop(ctx context.Context) error {
	var err error
	r.stopOnce.Do(func() {
		close(r.stopCh)
		if r.leaseID == 0 {
			return
		}
		revokeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if _, revokeErr := r.client.Lease().Revoke(revokeCtx, r.leaseID); revokeErr != nil {
			err = fmt.Errorf("failed to revoke lease: %w", revokeErr)
			return
		}
		logger.Infow("Service deregistered from etcd", "service", r.serviceName)
	})
	return err
}
