package navigation

// Meta carries the presentation attributes the frontend router consumes.
type Meta struct {
	Title     string   `json:"title"`
	Icon      string   `json:"icon,omitempty"`
	Order     int      `json:"order"`
	Hidden    bool     `json:"hidden,omitempty"`
	KeepAlive bool     `json:"keepalive,omitempty"`
	Perms     []string `json:"perms,omitempty"`
}

// Route is one compiled route. A forest of these is what the navigation
// endpoint returns to the client.
type Route struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Component string   `json:"component"`
	Redirect  string   `json:"redirect,omitempty"`
	Meta      Meta     `json:"meta"`
	Children  []*Route `json:"children,omitempty"`
}

// CountRoutes returns the total number of routes in the forest, children
// included.
func CountRoutes(routes []*Route) int {
	n := 0
	for _, r := range routes {
		n += 1 + CountRoutes(r.Children)
	}
	return n
}
