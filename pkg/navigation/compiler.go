package navigation

import (
	"sort"

	"github.com/kart-io/logger"
)

// Compiler turns menu graphs into route forests using a fixed view registry.
// Compilation is pure: the input is never mutated and identical input always
// produces an identical forest.
type Compiler struct {
	registry *Registry
}

// NewCompiler returns a compiler bound to the given registry.
func NewCompiler(registry *Registry) *Compiler {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Compiler{registry: registry}
}

// Registry exposes the bound registry.
func (c *Compiler) Registry() *Registry { return c.registry }

// Compile builds the route forest for the given menu graph. Flat input is
// assembled by parent references first. Action nodes are dropped, container
// nodes render the layout view, and a container without any compiled child
// gets a hidden default child so its page still renders. Siblings are sorted
// by ascending order at every depth.
func (c *Compiler) Compile(nodes []*MenuNode) []*Route {
	f := buildForest(nodes)
	return c.compileLevel(f, f.roots)
}

func (c *Compiler) compileLevel(f *forest, nodes []*MenuNode) []*Route {
	routes := make([]*Route, 0, len(nodes))
	for _, n := range nodes {
		if r := c.compileNode(f, n); r != nil {
			routes = append(routes, r)
		}
	}
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Meta.Order < routes[j].Meta.Order
	})
	if len(routes) == 0 {
		return nil
	}
	return routes
}

func (c *Compiler) compileNode(f *forest, n *MenuNode) *Route {
	if n.Type == TypeAction {
		return nil
	}

	r := &Route{
		Name:     n.Name,
		Path:     n.Path,
		Redirect: n.Redirect,
		Meta: Meta{
			Title:     n.Name,
			Icon:      n.Icon,
			Order:     n.Order,
			Hidden:    n.Hidden,
			KeepAlive: n.KeepAlive,
			Perms:     copyPerms(n.Perms),
		},
	}

	switch n.Type {
	case TypeContainer:
		r.Component = string(ViewLayout)
		r.Children = c.compileLevel(f, f.childrenOf(n))
		if len(r.Children) == 0 {
			r.Children = []*Route{c.defaultChild(n)}
		}
	default:
		r.Component = string(c.resolvePage(n))
		r.Children = c.compileLevel(f, f.childrenOf(n))
	}
	return r
}

// defaultChild synthesizes the hidden index route for a childless container.
// The child carries the container's own component reference, so a container
// stored with a page reference still shows that page.
func (c *Compiler) defaultChild(n *MenuNode) *Route {
	component := ViewNotFound
	if n.ComponentRef != "" {
		component = c.registry.Resolve(n.ComponentRef)
	}
	return &Route{
		Name:      n.Name + "-default",
		Path:      "",
		Component: string(component),
		Meta: Meta{
			Title:     n.Name,
			Order:     0,
			Hidden:    true,
			KeepAlive: n.KeepAlive,
		},
	}
}

func (c *Compiler) resolvePage(n *MenuNode) View {
	if n.ComponentRef == "" {
		logger.Warnw("navigation: page menu has no component reference",
			"menu", n.Name, "path", n.Path)
		return ViewNotFound
	}
	return c.registry.Resolve(n.ComponentRef)
}

func copyPerms(perms []string) []string {
	if len(perms) == 0 {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
