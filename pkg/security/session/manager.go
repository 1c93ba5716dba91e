package session

import (
	"context"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/atlas/pkg/cache"
	"github.com/kart-io/atlas/pkg/infra/pool"
	"github.com/kart-io/atlas/pkg/navigation"
)

// Source loads a user's authorization state from the backing stores.
type Source interface {
	// LoadMenus returns the user's visible menu graph.
	LoadMenus(ctx context.Context, userID string) ([]*navigation.MenuNode, error)
	// LoadAPIPermissions returns the user's API permission descriptors.
	LoadAPIPermissions(ctx context.Context, userID string) ([]string, error)
}

// Secondary indexes on the session store.
const (
	indexUser = "user"
	indexRole = "role"
)

// ManagerConfig assembles a Manager.
type ManagerConfig struct {
	// TTL and Clock are handed to every created context.
	TTL   time.Duration
	Clock Clock
	// Compiler is shared by all sessions; nil builds one over an empty
	// registry.
	Compiler *navigation.Compiler
	// Fanout executes role invalidation broadcasts. Optional; resets run
	// inline when absent or when the pool rejects a task.
	Fanout *pool.Pool
}

// Manager hosts the live session contexts, indexed by user and by role so
// account and role mutations can reach every affected session.
type Manager struct {
	source   Source
	ttl      time.Duration
	clock    Clock
	compiler *navigation.Compiler
	fanout   *pool.Pool

	sessions cache.Store[string, *Context]
}

// NewManager builds a Manager over the given source.
func NewManager(source Source, cfg ManagerConfig) *Manager {
	sessions := cache.NewMemoryCache[string, *Context]()
	sessions.AddIndex(indexUser, func(c *Context) []any {
		return []any{c.UserID()}
	})
	sessions.AddIndex(indexRole, func(c *Context) []any {
		roles := c.Roles()
		vals := make([]any, 0, len(roles))
		for _, r := range roles {
			vals = append(vals, r)
		}
		return vals
	})

	return &Manager{
		source:   source,
		ttl:      cfg.TTL,
		clock:    cfg.Clock,
		compiler: cfg.Compiler,
		fanout:   cfg.Fanout,
		sessions: sessions,
	}
}

// Create registers a fresh context for a signed-in session, replacing any
// previous context under the same session id.
func (m *Manager) Create(sessionID, userID string, roles []string, superuser bool) *Context {
	c := New(Config{
		SessionID: sessionID,
		UserID:    userID,
		Roles:     roles,
		Superuser: superuser,
		TTL:       m.ttl,
		Clock:     m.clock,
		Compiler:  m.compiler,
		LoadMenus: func(ctx context.Context) ([]*navigation.MenuNode, error) {
			return m.source.LoadMenus(ctx, userID)
		},
		LoadAPIPermissions: func(ctx context.Context) ([]string, error) {
			return m.source.LoadAPIPermissions(ctx, userID)
		},
	})
	m.sessions.Set(sessionID, c)
	return c
}

// Get returns the live context for a session.
func (m *Manager) Get(sessionID string) (*Context, bool) {
	return m.sessions.Get(sessionID)
}

// GetOrCreate returns the live context, building one from verified claims
// when the server does not know the session, after a restart for example.
func (m *Manager) GetOrCreate(sessionID, userID string, roles []string, superuser bool) *Context {
	if c, ok := m.sessions.Get(sessionID); ok {
		return c
	}
	return m.Create(sessionID, userID, roles, superuser)
}

// Remove resets and discards a session's context. A load already in flight
// observes the reset and surfaces ErrSessionReset instead of caching
// post-logout data.
func (m *Manager) Remove(sessionID string) {
	if c, ok := m.sessions.Get(sessionID); ok {
		c.Reset()
		m.sessions.Del(sessionID)
	}
}

// RemoveUser discards every live session of one user. Returns how many
// sessions were removed.
func (m *Manager) RemoveUser(userID string) int {
	matches, _ := m.sessions.Find(indexUser, userID)
	for _, c := range matches {
		m.Remove(c.SessionID())
	}
	return len(matches)
}

// InvalidateUser resets the live sessions of one user without removing
// them, for assignment changes that touch a single account.
func (m *Manager) InvalidateUser(userID string) int {
	matches, _ := m.sessions.Find(indexUser, userID)
	for _, c := range matches {
		c.Reset()
	}
	return len(matches)
}

// InvalidateRole resets every session that signed in with the role, so the
// next access reloads menus and permissions. Resets fan out on the worker
// pool; a rejected task falls back to an inline reset. Returns how many
// sessions were reached.
func (m *Manager) InvalidateRole(roleID string) int {
	matches, _ := m.sessions.Find(indexRole, roleID)
	for _, c := range matches {
		if m.fanout == nil {
			c.Reset()
			continue
		}
		if err := m.fanout.Submit(c.Reset); err != nil {
			c.Reset()
		}
	}
	if len(matches) > 0 {
		logger.Infow("session: role invalidation dispatched",
			"role", roleID,
			"sessions", len(matches),
		)
	}
	return len(matches)
}

// Len reports how many sessions are live.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// Stats reports cache accounting for every live session, keyed by session
// id.
func (m *Manager) Stats() map[string]map[string]Stats {
	out := make(map[string]map[string]Stats, m.sessions.Len())
	for _, c := range m.sessions.Values() {
		out[c.SessionID()] = c.CacheStats()
	}
	return out
}
