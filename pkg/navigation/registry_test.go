package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryResolveExact(t *testing.T) {
	r := NewRegistry()
	r.Register("system/user", View("views/system/user"))

	assert.Equal(t, View("views/system/user"), r.Resolve("system/user"))
	assert.Equal(t, View("views/system/user"), r.Resolve("/system/user"))
	assert.Equal(t, View("views/system/user"), r.Resolve("system/user/"))
}

func TestRegistryResolveIndexVariants(t *testing.T) {
	r := NewRegistry()
	r.Register("system/role/index", View("views/system/role"))
	r.Register("fleet/overview", View("views/fleet/overview"))

	// Reference without the index suffix finds the registered index view.
	assert.Equal(t, View("views/system/role"), r.Resolve("system/role"))
	// Reference with the index suffix finds the registered bare view.
	assert.Equal(t, View("views/fleet/overview"), r.Resolve("fleet/overview/index"))
}

func TestRegistryResolveSuffixFallback(t *testing.T) {
	r := NewRegistry()
	r.Register("console/system/user", View("views/system/user"))

	// A shorter reference that matches the tail of a registered key still
	// resolves.
	assert.Equal(t, View("views/system/user"), r.Resolve("system/user"))
}

func TestRegistryResolveSuffixDeterministic(t *testing.T) {
	r := NewRegistry()
	r.Register("a/console/alarm/list", View("long"))
	r.Register("b/alarm/list", View("short"))

	// Longest key wins regardless of registration or map order.
	for i := 0; i < 20; i++ {
		assert.Equal(t, View("long"), r.Resolve("alarm/list"))
	}
}

func TestRegistryResolveNotFound(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, ViewNotFound, r.Resolve("no/such/view"))
	assert.Equal(t, ViewNotFound, r.Resolve(""))
	assert.Equal(t, ViewNotFound, r.Resolve("   "))
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, ViewLayout, r.Resolve("LAYOUT"))
	assert.Equal(t, ViewNotFound, r.Resolve("NOT_FOUND"))
	assert.Equal(t, 2, r.Len())
}

func TestRegistryRegisterAll(t *testing.T) {
	r := NewRegistry()
	r.RegisterAll(map[string]View{
		"dashboard":   "views/dashboard",
		"fleet/nodes": "views/fleet/nodes",
		"":            "ignored",
	})

	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"LAYOUT", "NOT_FOUND", "dashboard", "fleet/nodes"}, r.Refs())
}
