package etcd

import "testing"

func TestNewRegistrarDefaults(t *testing.T) {
	r := NewRegistrar(nil, "console", "http://127.0.0.1:8080", "PathPrefix(`/api`)", 0)

	if r.Name() != "etcd-registrar" {
		t.Errorf("expected name 'etcd-registrar', got %q", r.Name())
	}
	if r.leaseTTL != defaultLeaseTTL {
		t.Errorf("expected lease TTL to default to %d, got %d", defaultLeaseTTL, r.leaseTTL)
	}
}

func TestNewRegistrarKeepsConfiguredTTL(t *testing.T) {
	r := NewRegistrar(nil, "console", "http://127.0.0.1:8080", "PathPrefix(`/api`)", 30)
	if r.leaseTTL != 30 {
		t.Errorf("expected lease TTL 30, got %d", r.leaseTTL)
	}
}
