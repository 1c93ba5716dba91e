package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *Registry {
	r := NewRegistry()
	r.RegisterAll(map[string]View{
		"dashboard/index":   "views/dashboard",
		"system/user/index": "views/system/user",
		"system/role/index": "views/system/role",
		"fleet/nodes":       "views/fleet/nodes",
	})
	return r
}

func flatFixture() []*MenuNode {
	return []*MenuNode{
		{ID: 1, Name: "System", Path: "/system", Icon: "gear", Order: 2, Type: TypeContainer, Redirect: "/system/user"},
		{ID: 2, ParentID: 1, Name: "User", Path: "user", Order: 1, ComponentRef: "system/user", Type: TypePage, Perms: []string{"system:user:list"}},
		{ID: 3, ParentID: 1, Name: "Role", Path: "role", Order: 2, ComponentRef: "system/role", Type: TypePage},
		{ID: 4, ParentID: 2, Name: "UserCreate", Order: 1, Type: TypeAction, Perms: []string{"system:user:create"}},
		{ID: 5, Name: "Dashboard", Path: "/dashboard", Order: 1, ComponentRef: "dashboard", Type: TypeContainer},
	}
}

func nestedFixture() []*MenuNode {
	return []*MenuNode{
		{ID: 1, Name: "System", Path: "/system", Icon: "gear", Order: 2, Type: TypeContainer, Redirect: "/system/user", Children: []*MenuNode{
			{ID: 2, Name: "User", Path: "user", Order: 1, ComponentRef: "system/user", Type: TypePage, Perms: []string{"system:user:list"}, Children: []*MenuNode{
				{ID: 4, Name: "UserCreate", Order: 1, Type: TypeAction, Perms: []string{"system:user:create"}},
			}},
			{ID: 3, Name: "Role", Path: "role", Order: 2, ComponentRef: "system/role", Type: TypePage},
		}},
		{ID: 5, Name: "Dashboard", Path: "/dashboard", Order: 1, ComponentRef: "dashboard", Type: TypeContainer},
	}
}

func TestCompileFlatInput(t *testing.T) {
	c := NewCompiler(testRegistry())
	routes := c.Compile(flatFixture())

	require.Len(t, routes, 2)

	// Dashboard sorts first (order 1), System second (order 2).
	dash, system := routes[0], routes[1]
	assert.Equal(t, "Dashboard", dash.Name)
	assert.Equal(t, "System", system.Name)

	assert.Equal(t, string(ViewLayout), system.Component)
	assert.Equal(t, "/system/user", system.Redirect)
	assert.Equal(t, "gear", system.Meta.Icon)
	require.Len(t, system.Children, 2)
	assert.Equal(t, "User", system.Children[0].Name)
	assert.Equal(t, "views/system/user", system.Children[0].Component)
	assert.Equal(t, []string{"system:user:list"}, system.Children[0].Meta.Perms)
	assert.Equal(t, "Role", system.Children[1].Name)
}

func TestCompileNestedMatchesFlat(t *testing.T) {
	c := NewCompiler(testRegistry())

	fromFlat := c.Compile(flatFixture())
	fromNested := c.Compile(nestedFixture())

	require.Equal(t, fromFlat, fromNested)
}

func TestCompileDeterministic(t *testing.T) {
	c := NewCompiler(testRegistry())
	input := flatFixture()

	first := c.Compile(input)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, c.Compile(input))
	}
}

func TestCompileDoesNotMutateInput(t *testing.T) {
	c := NewCompiler(testRegistry())
	input := flatFixture()

	_ = c.Compile(input)

	for _, n := range input {
		assert.Nil(t, n.Children, "flat node %q grew children", n.Name)
	}
}

func TestCompileDropsActions(t *testing.T) {
	c := NewCompiler(testRegistry())
	routes := c.Compile(flatFixture())

	var walk func(rs []*Route)
	walk = func(rs []*Route) {
		for _, r := range rs {
			assert.NotEqual(t, "UserCreate", r.Name)
			walk(r.Children)
		}
	}
	walk(routes)
}

func TestCompileSortsSiblingsAtEveryDepth(t *testing.T) {
	c := NewCompiler(testRegistry())
	input := []*MenuNode{
		{ID: 1, Name: "Root", Path: "/root", Order: 0, Type: TypeContainer},
		{ID: 2, ParentID: 1, Name: "C", Path: "c", Order: 30, ComponentRef: "fleet/nodes", Type: TypePage},
		{ID: 3, ParentID: 1, Name: "A", Path: "a", Order: 10, ComponentRef: "fleet/nodes", Type: TypePage},
		{ID: 4, ParentID: 1, Name: "B", Path: "b", Order: 20, ComponentRef: "fleet/nodes", Type: TypePage},
	}

	routes := c.Compile(input)
	require.Len(t, routes, 1)
	require.Len(t, routes[0].Children, 3)
	assert.Equal(t, "A", routes[0].Children[0].Name)
	assert.Equal(t, "B", routes[0].Children[1].Name)
	assert.Equal(t, "C", routes[0].Children[2].Name)
}

func TestCompileStableOnEqualOrder(t *testing.T) {
	c := NewCompiler(testRegistry())
	input := []*MenuNode{
		{ID: 1, Name: "First", Path: "/first", Order: 5, ComponentRef: "fleet/nodes", Type: TypePage},
		{ID: 2, Name: "Second", Path: "/second", Order: 5, ComponentRef: "fleet/nodes", Type: TypePage},
	}

	routes := c.Compile(input)
	require.Len(t, routes, 2)
	assert.Equal(t, "First", routes[0].Name)
	assert.Equal(t, "Second", routes[1].Name)
}

func TestCompileDefaultChild(t *testing.T) {
	c := NewCompiler(testRegistry())
	input := []*MenuNode{
		{ID: 1, Name: "Dashboard", Path: "/dashboard", Order: 1, ComponentRef: "dashboard", Type: TypeContainer, KeepAlive: true},
	}

	routes := c.Compile(input)
	require.Len(t, routes, 1)

	root := routes[0]
	assert.Equal(t, string(ViewLayout), root.Component)
	require.Len(t, root.Children, 1)

	child := root.Children[0]
	assert.Equal(t, "Dashboard-default", child.Name)
	assert.Equal(t, "", child.Path)
	assert.Equal(t, "views/dashboard", child.Component)
	assert.True(t, child.Meta.Hidden)
	assert.True(t, child.Meta.KeepAlive)
	assert.Equal(t, "Dashboard", child.Meta.Title)
}

func TestCompileDefaultChildWithoutRef(t *testing.T) {
	c := NewCompiler(testRegistry())
	input := []*MenuNode{
		{ID: 1, Name: "Empty", Path: "/empty", Type: TypeContainer},
	}

	routes := c.Compile(input)
	require.Len(t, routes, 1)
	require.Len(t, routes[0].Children, 1)
	assert.Equal(t, string(ViewNotFound), routes[0].Children[0].Component)
}

func TestCompileContainerWithOnlyActions(t *testing.T) {
	c := NewCompiler(testRegistry())
	input := []*MenuNode{
		{ID: 1, Name: "Ops", Path: "/ops", ComponentRef: "fleet/nodes", Type: TypeContainer},
		{ID: 2, ParentID: 1, Name: "OpsExport", Type: TypeAction, Perms: []string{"ops:export"}},
	}

	routes := c.Compile(input)
	require.Len(t, routes, 1)
	// All children were actions, so the container still gets its default
	// child and the stored reference shows through it.
	require.Len(t, routes[0].Children, 1)
	assert.Equal(t, "views/fleet/nodes", routes[0].Children[0].Component)
	assert.True(t, routes[0].Children[0].Meta.Hidden)
}

func TestCompilePageWithUnknownRef(t *testing.T) {
	c := NewCompiler(testRegistry())
	input := []*MenuNode{
		{ID: 1, Name: "Ghost", Path: "/ghost", ComponentRef: "no/such/page", Type: TypePage},
	}

	routes := c.Compile(input)
	require.Len(t, routes, 1)
	assert.Equal(t, string(ViewNotFound), routes[0].Component)
}

func TestCompileOrphanPromotedToRoot(t *testing.T) {
	c := NewCompiler(testRegistry())
	input := []*MenuNode{
		{ID: 7, ParentID: 99, Name: "Stray", Path: "/stray", ComponentRef: "fleet/nodes", Type: TypePage},
	}

	routes := c.Compile(input)
	require.Len(t, routes, 1)
	assert.Equal(t, "Stray", routes[0].Name)
}

func TestCollectPermsIncludesActions(t *testing.T) {
	perms := CollectPerms(flatFixture())
	assert.ElementsMatch(t, []string{"system:user:list", "system:user:create"}, perms)
}

func TestCountRoutes(t *testing.T) {
	c := NewCompiler(testRegistry())
	routes := c.Compile(flatFixture())

	// Dashboard + its default child, System + User + Role.
	assert.Equal(t, 5, CountRoutes(routes))
}
