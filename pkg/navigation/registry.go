package navigation

import (
	"sort"
	"strings"
	"sync"

	"github.com/kart-io/logger"
)

// View is the identifier handed to the frontend for a resolved component.
type View string

const (
	// ViewLayout is the frame component container routes render into.
	ViewLayout View = "LAYOUT"

	// ViewNotFound is the terminal fallback for unresolvable references.
	ViewNotFound View = "NOT_FOUND"
)

// Registry maps component references from menu records to registered views.
// It is populated once at startup from the view manifest and then read by
// every compilation, so lookups take the read lock only.
type Registry struct {
	mu    sync.RWMutex
	views map[string]View
}

// NewRegistry returns a registry seeded with the built-in layout and
// not-found views.
func NewRegistry() *Registry {
	return &Registry{
		views: map[string]View{
			string(ViewLayout):   ViewLayout,
			string(ViewNotFound): ViewNotFound,
		},
	}
}

// Register binds a component reference to a view. Later registrations for
// the same reference win.
func (r *Registry) Register(ref string, v View) {
	key := normalizeRef(ref)
	if key == "" {
		return
	}
	r.mu.Lock()
	r.views[key] = v
	r.mu.Unlock()
}

// RegisterAll binds every entry of the manifest.
func (r *Registry) RegisterAll(manifest map[string]View) {
	for ref, v := range manifest {
		r.Register(ref, v)
	}
}

// Len reports how many references are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Resolve maps a component reference to a view. The lookup tries, in order:
// the exact reference, its conventional index variants, then a suffix match
// against the registered set. Every reference resolves to something; a miss
// falls back to the not-found view so a broken menu record degrades to a
// rendered error page instead of a blank screen.
func (r *Registry) Resolve(ref string) View {
	key := normalizeRef(ref)
	if key == "" {
		return ViewNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if v, ok := r.views[key]; ok {
		return v
	}
	for _, cand := range conventionalKeys(key) {
		if v, ok := r.views[cand]; ok {
			return v
		}
	}
	if match, v, ok := r.suffixMatch(key); ok {
		logger.Warnw("navigation: component reference resolved by fuzzy match",
			"ref", ref, "matched", match)
		return v
	}

	logger.Warnw("navigation: component reference not registered", "ref", ref)
	return ViewNotFound
}

// suffixMatch scans for a registered key that ends with the reference (or
// the reference ending with a registered key). Ties go to the longest key,
// then the lexicographically smallest, so the winner never depends on map
// iteration order.
func (r *Registry) suffixMatch(key string) (string, View, bool) {
	var best string
	var bestView View
	for k, v := range r.views {
		if !strings.HasSuffix(k, "/"+key) && !strings.HasSuffix(key, "/"+k) {
			continue
		}
		if best == "" || len(k) > len(best) || (len(k) == len(best) && k < best) {
			best, bestView = k, v
		}
	}
	if best == "" {
		return "", "", false
	}
	return best, bestView, true
}

// Refs returns the registered references sorted, for diagnostics.
func (r *Registry) Refs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.views))
	for k := range r.views {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalizeRef(ref string) string {
	return strings.Trim(strings.TrimSpace(ref), "/")
}

// conventionalKeys derives the index-file variants of a reference, so
// "system/user" finds a view registered as "system/user/index" and the
// other way around.
func conventionalKeys(key string) []string {
	if strings.HasSuffix(key, "/index") {
		return []string{strings.TrimSuffix(key, "/index")}
	}
	return []string{key + "/index"}
}
