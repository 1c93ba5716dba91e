// Package navigation compiles menu graphs into frontend route trees.
//
// The console stores menus as a flat table; clients may also submit already
// nested graphs. The compiler accepts both, resolves every component
// reference through a view registry built at startup, and emits a
// deterministic route forest: same input, same output.
package navigation

// MenuType classifies a menu node.
type MenuType int8

const (
	// TypeContainer groups child menus and renders the layout frame.
	TypeContainer MenuType = 0

	// TypePage is a leaf menu backed by a view.
	TypePage MenuType = 1

	// TypeAction is a button-level permission carrier. Actions contribute
	// their permission codes but never become routes.
	TypeAction MenuType = 2
)

// MenuNode is one node of the menu graph.
type MenuNode struct {
	ID           uint64      `json:"id"`
	ParentID     uint64      `json:"parent_id,omitempty"`
	Name         string      `json:"name"`
	Path         string      `json:"path"`
	Icon         string      `json:"icon,omitempty"`
	Order        int         `json:"order"`
	ComponentRef string      `json:"component_ref,omitempty"`
	Perms        []string    `json:"perms,omitempty"`
	Hidden       bool        `json:"is_hidden,omitempty"`
	KeepAlive    bool        `json:"keepalive,omitempty"`
	Redirect     string      `json:"redirect,omitempty"`
	Type         MenuType    `json:"menu_type"`
	Children     []*MenuNode `json:"children,omitempty"`
}

// IsNested reports whether the input already carries parent-child structure.
// A list where no node has children is treated as flat and assembled by
// parent references.
func IsNested(nodes []*MenuNode) bool {
	for _, n := range nodes {
		if len(n.Children) > 0 {
			return true
		}
	}
	return false
}

// forest is the internal tree representation the compiler walks. It never
// mutates the caller's nodes: flat input gets its child lists rebuilt here.
type forest struct {
	roots    []*MenuNode
	children map[uint64][]*MenuNode
	nested   bool
}

func buildForest(nodes []*MenuNode) *forest {
	if IsNested(nodes) {
		return &forest{roots: nodes, nested: true}
	}

	known := make(map[uint64]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	f := &forest{children: make(map[uint64][]*MenuNode)}
	for _, n := range nodes {
		// Nodes whose parent is absent are promoted to roots so a partial
		// graph still compiles.
		if n.ParentID == 0 || !known[n.ParentID] {
			f.roots = append(f.roots, n)
			continue
		}
		f.children[n.ParentID] = append(f.children[n.ParentID], n)
	}
	return f
}

func (f *forest) childrenOf(n *MenuNode) []*MenuNode {
	if f.nested {
		return n.Children
	}
	return f.children[n.ID]
}

// CollectPerms walks the graph (including action nodes) and returns every
// permission code carried by the visible menu tree.
func CollectPerms(nodes []*MenuNode) []string {
	f := buildForest(nodes)
	var out []string
	var walk func(ns []*MenuNode)
	walk = func(ns []*MenuNode) {
		for _, n := range ns {
			out = append(out, n.Perms...)
			walk(f.childrenOf(n))
		}
	}
	walk(f.roots)
	return out
}
