package redis

import (
	"context"
	"testing"

	"github.com/kart-io/atlas/pkg/component/storage"
)

// Compile-time interface checks.
func TestClientImplementsStorageInterface(_ *testing.T) {
	var _ storage.Client = (*Client)(nil)
}

func TestFactoryImplementsStorageFactory(_ *testing.T) {
	var _ storage.Factory = (*Factory)(nil)
}

func TestClientName(t *testing.T) {
	c := &Client{}
	if name := c.Name(); name != "redis" {
		t.Errorf("Client.Name() = %v, want %v", name, "redis")
	}
}

func TestNew_NilOptions(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should return an error")
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	opts := NewOptions()
	opts.Host = ""

	if _, err := New(opts); err == nil {
		t.Error("expected validation error for empty host")
	}
}

func TestFactoryCreate_NilOptions(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.Create(context.Background()); err == nil {
		t.Error("expected error when creating client with nil options")
	}
}

func TestFactoryClone(t *testing.T) {
	opts := NewOptions()
	opts.Database = 2

	factory := NewFactory(opts)
	cloned := factory.Clone()

	if cloned == factory {
		t.Error("Clone() returned the same factory instance")
	}

	cloned.Options().Database = 5
	if factory.Options().Database == 5 {
		t.Error("modifying cloned options affected original factory")
	}
}
