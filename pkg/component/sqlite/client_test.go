package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kart-io/atlas/pkg/component/storage"
)

func TestClientImplementsStorageInterface(_ *testing.T) {
	var _ storage.Client = (*Client)(nil)
}

func TestFactoryImplementsStorageFactory(_ *testing.T) {
	var _ storage.Factory = (*Factory)(nil)
}

func memoryOptions() *Options {
	opts := NewOptions()
	opts.Path = InMemoryPath
	return opts
}

func TestNew_InMemory(t *testing.T) {
	client, err := New(memoryOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer client.Close()

	if client.Name() != "sqlite" {
		t.Errorf("Name() = %q, want %q", client.Name(), "sqlite")
	}

	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	if err := client.Health()(); err != nil {
		t.Errorf("Health checker failed: %v", err)
	}
}

func TestNew_NilOptions(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should return an error")
	}
}

// The client must round-trip data through GORM against a real database.
func TestClient_GormRoundTrip(t *testing.T) {
	type widget struct {
		ID   uint   `gorm:"primaryKey"`
		Name string `gorm:"size:64"`
	}

	client, err := New(memoryOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer client.Close()

	db := client.DB()
	if err := db.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := db.Create(&widget{Name: "gauge"}).Error; err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var got widget
	if err := db.First(&got, "name = ?", "gauge").Error; err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if got.Name != "gauge" {
		t.Errorf("Name = %q, want %q", got.Name, "gauge")
	}
}

func TestNew_FileDatabase(t *testing.T) {
	opts := NewOptions()
	opts.Path = filepath.Join(t.TempDir(), "atlas-test.db")

	client, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory(memoryOptions())

	client, err := factory.Create(context.Background())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer client.Close()

	if client.Name() != "sqlite" {
		t.Errorf("Name() = %q, want %q", client.Name(), "sqlite")
	}
}

func TestFactoryCreate_NilOptions(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.Create(context.Background()); err == nil {
		t.Error("expected error when creating client with nil options")
	}
}
