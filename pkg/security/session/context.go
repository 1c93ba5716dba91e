package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/navigation"
	"github.com/kart-io/atlas/pkg/security/authz"
)

// DefaultTTL bounds how long menus and permissions are served without a
// reload.
const DefaultTTL = 10 * time.Minute

// Config assembles a session context.
type Config struct {
	SessionID string
	UserID    string
	Roles     []string
	Superuser bool

	// TTL of the cached classes. Zero selects DefaultTTL, negative
	// disables expiry.
	TTL      time.Duration
	Clock    Clock
	Compiler *navigation.Compiler

	LoadMenus          Loader[[]*navigation.MenuNode]
	LoadAPIPermissions Loader[[]string]
}

// Context carries one session's cached authorization state: the visible
// menu graph, the API permission descriptors, and the aggregate permission
// set composed from both. All methods are safe for concurrent use.
type Context struct {
	sessionID string
	userID    string
	roles     []string
	superuser bool

	compiler *navigation.Compiler

	menus     *resource[[]*navigation.MenuNode]
	apiPerms  *resource[[]string]
	aggregate *resource[*authz.Set]

	// generation is bumped by Reset. Loads started under an older
	// generation are discarded instead of repopulating the caches.
	generation atomic.Uint64
}

// New builds a session context. Both loaders are required.
func New(cfg Config) *Context {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	compiler := cfg.Compiler
	if compiler == nil {
		compiler = navigation.NewCompiler(nil)
	}

	c := &Context{
		sessionID: cfg.SessionID,
		userID:    cfg.UserID,
		roles:     append([]string(nil), cfg.Roles...),
		superuser: cfg.Superuser,
		compiler:  compiler,
	}
	c.menus = newResource("menus", ttl, cfg.Clock, guard(c, cfg.LoadMenus))
	c.apiPerms = newResource("api_permissions", ttl, cfg.Clock, guard(c, cfg.LoadAPIPermissions))
	c.aggregate = newResource("aggregate", ttl, cfg.Clock, guard(c, c.loadAggregate))
	return c
}

// guard wraps a loader so a value loaded before a Reset is discarded
// instead of resurrecting pre-reset state. The racing caller receives
// ErrSessionReset.
func guard[T any](c *Context, load Loader[T]) Loader[T] {
	return func(ctx context.Context) (T, error) {
		gen := c.generation.Load()
		v, err := load(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		if c.generation.Load() != gen {
			var zero T
			return zero, errors.ErrSessionReset
		}
		return v, nil
	}
}

// SessionID returns the session identifier.
func (c *Context) SessionID() string { return c.sessionID }

// UserID returns the owning user's identifier.
func (c *Context) UserID() string { return c.userID }

// Superuser reports whether the session bypasses permission checks.
func (c *Context) Superuser() bool { return c.superuser }

// Roles returns the role identifiers the session signed in with.
func (c *Context) Roles() []string {
	return append([]string(nil), c.roles...)
}

// HasRole reports whether the session signed in with the role.
func (c *Context) HasRole(role string) bool {
	for _, r := range c.roles {
		if r == role {
			return true
		}
	}
	return false
}

// Generation returns the current reset generation.
func (c *Context) Generation() uint64 {
	return c.generation.Load()
}

// EnsureMenus returns the session's visible menu graph, loading it when the
// cached copy is missing, expired, or force is set.
func (c *Context) EnsureMenus(ctx context.Context, force bool) ([]*navigation.MenuNode, error) {
	return c.menus.get(ctx, force)
}

// EnsureAPIPermissions returns the session's API permission descriptors.
func (c *Context) EnsureAPIPermissions(ctx context.Context, force bool) ([]string, error) {
	return c.apiPerms.get(ctx, force)
}

// Aggregate returns the session's evaluated permission set: the permission
// codes carried by the menu graph united with the API descriptors.
func (c *Context) Aggregate(ctx context.Context, force bool) (*authz.Set, error) {
	return c.aggregate.get(ctx, force)
}

// loadAggregate composes the aggregate from the other two cached classes,
// fetching both in parallel.
func (c *Context) loadAggregate(ctx context.Context) (*authz.Set, error) {
	var (
		menus    []*navigation.MenuNode
		apiPerms []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		menus, err = c.EnsureMenus(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		apiPerms, err = c.EnsureAPIPermissions(gctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return authz.NewSet(append(navigation.CollectPerms(menus), apiPerms...)...), nil
}

// CompileRoutes compiles the session's menu graph into a route forest.
// Compilation is deterministic, so the forest is rebuilt per call rather
// than cached.
func (c *Context) CompileRoutes(ctx context.Context) ([]*navigation.Route, error) {
	menus, err := c.EnsureMenus(ctx, false)
	if err != nil {
		return nil, err
	}
	return c.compiler.Compile(menus), nil
}

// Authorize reports whether the session holds the required permissions
// under the given mode. Superusers pass without touching the caches, and
// an empty requirement always passes.
func (c *Context) Authorize(ctx context.Context, mode authz.Mode, required ...string) (bool, error) {
	if c.superuser || len(required) == 0 {
		return true, nil
	}
	set, err := c.Aggregate(ctx, false)
	if err != nil {
		return false, err
	}
	return authz.Evaluate(set, false, mode, required...), nil
}

// RefreshAll force-reloads every cached class. Menus and API permissions
// reload in parallel and both failures are reported, not just the first.
// The aggregate is rebuilt afterwards from the fresh copies.
func (c *Context) RefreshAll(ctx context.Context) error {
	var (
		wg      sync.WaitGroup
		menuErr error
		permErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, menuErr = c.menus.get(ctx, true)
	}()
	go func() {
		defer wg.Done()
		_, permErr = c.apiPerms.get(ctx, true)
	}()
	wg.Wait()

	if err := utilerrors.NewAggregate([]error{menuErr, permErr}); err != nil {
		return err
	}
	_, err := c.aggregate.get(ctx, true)
	return err
}

// Reset invalidates every cached class and bumps the generation so loads
// already in flight cannot repopulate the caches with pre-reset data.
// Resetting an already reset context is harmless.
func (c *Context) Reset() {
	c.generation.Add(1)
	c.menus.invalidate()
	c.apiPerms.invalidate()
	c.aggregate.invalidate()
}

// CacheStats reports hit accounting per cached class.
func (c *Context) CacheStats() map[string]Stats {
	return map[string]Stats{
		"menus":           c.menus.stats(),
		"api_permissions": c.apiPerms.stats(),
		"aggregate":       c.aggregate.stats(),
	}
}
