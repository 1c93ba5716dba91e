package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/navigation"
	"github.com/kart-io/atlas/pkg/security/authz"
)

func sessionMenus() []*navigation.MenuNode {
	return []*navigation.MenuNode{
		{ID: 1, Name: "System", Path: "/system", Type: navigation.TypeContainer, Children: []*navigation.MenuNode{
			{ID: 2, Name: "User", Path: "user", ComponentRef: "system/user", Type: navigation.TypePage,
				Perms: []string{"system:user:list"},
				Children: []*navigation.MenuNode{
					{ID: 3, Name: "UserDelete", Type: navigation.TypeAction, Perms: []string{"system:user:delete"}},
				}},
		}},
	}
}

func sessionAPIPerms() []string {
	return []string{"GET /api/v1/users/{id}", "POST /api/v1/users"}
}

// testContext builds a context over counting loaders.
func testContext(cfg Config, menuLoads, permLoads *atomic.Int32) *Context {
	cfg.LoadMenus = func(ctx context.Context) ([]*navigation.MenuNode, error) {
		menuLoads.Add(1)
		return sessionMenus(), nil
	}
	cfg.LoadAPIPermissions = func(ctx context.Context) ([]string, error) {
		permLoads.Add(1)
		return sessionAPIPerms(), nil
	}
	if cfg.UserID == "" {
		cfg.UserID = "u1"
	}
	return New(cfg)
}

func TestEnsureMenusCaches(t *testing.T) {
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{}, &menuLoads, &permLoads)

	for i := 0; i < 3; i++ {
		menus, err := c.EnsureMenus(context.Background(), false)
		require.NoError(t, err)
		require.Len(t, menus, 1)
	}

	assert.EqualValues(t, 1, menuLoads.Load())
	assert.EqualValues(t, 0, permLoads.Load())
}

func TestEnsureMenusTTLWithClock(t *testing.T) {
	fc := newFakeClock()
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{TTL: time.Minute, Clock: fc.Now}, &menuLoads, &permLoads)

	_, err := c.EnsureMenus(context.Background(), false)
	require.NoError(t, err)

	fc.Advance(time.Minute - time.Nanosecond)
	_, err = c.EnsureMenus(context.Background(), false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, menuLoads.Load())

	fc.Advance(time.Nanosecond)
	_, err = c.EnsureMenus(context.Background(), false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, menuLoads.Load())
}

func TestNegativeTTLNeverExpires(t *testing.T) {
	fc := newFakeClock()
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{TTL: -1, Clock: fc.Now}, &menuLoads, &permLoads)

	_, err := c.EnsureMenus(context.Background(), false)
	require.NoError(t, err)

	fc.Advance(1000 * time.Hour)
	_, err = c.EnsureMenus(context.Background(), false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, menuLoads.Load())
}

func TestAggregateComposesBothClasses(t *testing.T) {
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{}, &menuLoads, &permLoads)

	set, err := c.Aggregate(context.Background(), false)
	require.NoError(t, err)

	// Menu permissions, action permissions, and API descriptors all land
	// in the aggregate.
	assert.True(t, set.Contains("system:user:list"))
	assert.True(t, set.Contains("system:user:delete"))
	assert.True(t, set.Contains("GET /api/v1/users/{id}"))

	assert.EqualValues(t, 1, menuLoads.Load())
	assert.EqualValues(t, 1, permLoads.Load())
}

func TestAuthorizeModesAgainstAggregate(t *testing.T) {
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{}, &menuLoads, &permLoads)
	bg := context.Background()

	ok, err := c.Authorize(bg, authz.ModeAll, "system:user:list", "system:user:delete")
	require.NoError(t, err)
	assert.True(t, ok)

	// Route requirement matched through the {id} template.
	ok, err = c.Authorize(bg, authz.ModeAll, "GET /api/v1/users/42")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Authorize(bg, authz.ModeAll, "DELETE /api/v1/users/42")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.Authorize(bg, authz.ModeAny, "nope", "system:user:list")
	require.NoError(t, err)
	assert.True(t, ok)

	// The aggregate loaded once for all the checks above.
	assert.EqualValues(t, 1, menuLoads.Load())
	assert.EqualValues(t, 1, permLoads.Load())
}

func TestAuthorizeDeniesOnLoadFailure(t *testing.T) {
	var permLoads atomic.Int32
	c := New(Config{
		UserID: "u1",
		LoadMenus: func(ctx context.Context) ([]*navigation.MenuNode, error) {
			return sessionMenus(), nil
		},
		LoadAPIPermissions: func(ctx context.Context) ([]string, error) {
			permLoads.Add(1)
			return nil, errors.ErrPermissionFetch
		},
	})
	bg := context.Background()

	ok, err := c.Authorize(bg, authz.ModeAll, "system:user:list")
	assert.False(t, ok)
	assert.ErrorIs(t, err, errors.ErrPermissionFetch)

	// The failure was not cached: the next check hits the loader again.
	ok, err = c.Authorize(bg, authz.ModeAll, "system:user:list")
	assert.False(t, ok)
	require.Error(t, err)
	assert.EqualValues(t, 2, permLoads.Load())
}

func TestAuthorizeSuperuserSkipsLoads(t *testing.T) {
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{Superuser: true}, &menuLoads, &permLoads)

	ok, err := c.Authorize(context.Background(), authz.ModeAll, "anything:at:all")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.EqualValues(t, 0, menuLoads.Load())
	assert.EqualValues(t, 0, permLoads.Load())
}

func TestAuthorizeEmptyRequirementSkipsLoads(t *testing.T) {
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{}, &menuLoads, &permLoads)

	ok, err := c.Authorize(context.Background(), authz.ModeAll)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 0, menuLoads.Load())
}

func TestCompileRoutesUsesCachedMenus(t *testing.T) {
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{}, &menuLoads, &permLoads)

	first, err := c.CompileRoutes(context.Background())
	require.NoError(t, err)
	second, err := c.CompileRoutes(context.Background())
	require.NoError(t, err)

	require.Equal(t, first, second)
	assert.EqualValues(t, 1, menuLoads.Load())
	require.Len(t, first, 1)
	assert.Equal(t, "System", first[0].Name)
}

func TestRefreshAllForcesEveryClass(t *testing.T) {
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{}, &menuLoads, &permLoads)
	bg := context.Background()

	_, err := c.EnsureMenus(bg, false)
	require.NoError(t, err)

	require.NoError(t, c.RefreshAll(bg))

	assert.EqualValues(t, 2, menuLoads.Load())
	assert.EqualValues(t, 1, permLoads.Load())

	// The aggregate was rebuilt; a permission check serves from cache.
	ok, err := c.Authorize(bg, authz.ModeAll, "system:user:list")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 2, menuLoads.Load())
}

func TestRefreshAllReportsBothFailures(t *testing.T) {
	c := New(Config{
		UserID: "u1",
		LoadMenus: func(ctx context.Context) ([]*navigation.MenuNode, error) {
			return nil, errors.ErrMenuFetch
		},
		LoadAPIPermissions: func(ctx context.Context) ([]string, error) {
			return nil, errors.ErrPermissionFetch
		},
	})

	err := c.RefreshAll(context.Background())
	require.Error(t, err)

	agg, ok := err.(utilerrors.Aggregate)
	require.True(t, ok, "expected an aggregate error, got %T", err)
	assert.Len(t, agg.Errors(), 2)
}

func TestResetDiscardsInFlightLoad(t *testing.T) {
	release := make(chan struct{})
	var loads atomic.Int32
	c := New(Config{
		UserID: "u1",
		LoadMenus: func(ctx context.Context) ([]*navigation.MenuNode, error) {
			if loads.Add(1) == 1 {
				<-release
			}
			return sessionMenus(), nil
		},
		LoadAPIPermissions: func(ctx context.Context) ([]string, error) {
			return nil, nil
		},
	})

	errCh := make(chan error, 1)
	go func() {
		_, err := c.EnsureMenus(context.Background(), false)
		errCh <- err
	}()

	// Reset while the load is parked inside the loader.
	waitUntil(t, func() bool { return loads.Load() == 1 })
	c.Reset()
	close(release)

	require.ErrorIs(t, <-errCh, errors.ErrSessionReset)

	// The discarded value never reached the cache; the next access loads
	// fresh and succeeds.
	menus, err := c.EnsureMenus(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.EqualValues(t, 2, loads.Load())
}

func TestResetIsIdempotent(t *testing.T) {
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{}, &menuLoads, &permLoads)
	bg := context.Background()

	_, err := c.EnsureMenus(bg, false)
	require.NoError(t, err)

	c.Reset()
	c.Reset()
	assert.EqualValues(t, 2, c.Generation())

	_, err = c.EnsureMenus(bg, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, menuLoads.Load())
}

func TestCacheStatsAccounting(t *testing.T) {
	var menuLoads, permLoads atomic.Int32
	c := testContext(Config{}, &menuLoads, &permLoads)
	bg := context.Background()

	_, err := c.EnsureMenus(bg, false)
	require.NoError(t, err)
	_, err = c.EnsureMenus(bg, false)
	require.NoError(t, err)

	stats := c.CacheStats()
	assert.Equal(t, Stats{Hits: 1, Misses: 1}, stats["menus"])
	assert.Contains(t, stats, "api_permissions")
	assert.Contains(t, stats, "aggregate")
}

func TestContextIdentity(t *testing.T) {
	c := New(Config{
		SessionID: "s1",
		UserID:    "u1",
		Roles:     []string{"operator", "viewer"},
		LoadMenus: func(ctx context.Context) ([]*navigation.MenuNode, error) {
			return nil, nil
		},
		LoadAPIPermissions: func(ctx context.Context) ([]string, error) {
			return nil, nil
		},
	})

	assert.Equal(t, "s1", c.SessionID())
	assert.Equal(t, "u1", c.UserID())
	assert.True(t, c.HasRole("viewer"))
	assert.False(t, c.HasRole("admin"))

	// Mutating the returned slice does not touch the context's copy.
	roles := c.Roles()
	roles[0] = "changed"
	assert.True(t, c.HasRole("operator"))
}
