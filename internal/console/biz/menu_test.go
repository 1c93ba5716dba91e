package biz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
)

// TestMenuService_CreateValidatesParent 测试创建菜单时的父节点校验
func TestMenuService_CreateValidatesParent(t *testing.T) {
	factory := setupTestFactory(t)
	sessions := setupSessions(t, factory)
	svc := NewMenuService(factory, sessions, testSuperRole)
	ctx := context.Background()

	t.Run("父节点不存在", func(t *testing.T) {
		menu := &model.Menu{ParentID: 999, Title: "orphan", Path: "/orphan"}
		err := svc.Create(ctx, menu)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrInvalidParam.Code))
	})

	t.Run("根节点与合法子节点", func(t *testing.T) {
		root := &model.Menu{Title: "system", Path: "/system", MenuType: model.MenuTypeContainer, Status: 1}
		require.NoError(t, svc.Create(ctx, root))

		child := &model.Menu{ParentID: root.ID, Title: "users", Path: "/system/users", Status: 1}
		require.NoError(t, svc.Create(ctx, child))
	})

	t.Run("新菜单只影响超管会话", func(t *testing.T) {
		superCtx := sessions.Create("S-root", "1", []string{testSuperRole}, true)
		opsCtx := sessions.Create("S-ops", "2", []string{"ops"}, false)
		superGen := superCtx.Generation()
		opsGen := opsCtx.Generation()

		menu := &model.Menu{Title: "audit", Path: "/audit", Status: 1}
		require.NoError(t, svc.Create(ctx, menu))

		// 新菜单尚未授权给任何角色，普通会话的缓存无需失效
		assert.Equal(t, superGen+1, superCtx.Generation())
		assert.Equal(t, opsGen, opsCtx.Generation())
	})
}

// TestMenuService_DeleteGuardsChildren 测试带子节点的菜单禁止删除
func TestMenuService_DeleteGuardsChildren(t *testing.T) {
	factory := setupTestFactory(t)
	sessions := setupSessions(t, factory)
	svc := NewMenuService(factory, sessions, testSuperRole)
	ctx := context.Background()

	root := &model.Menu{Title: "system", Path: "/system", MenuType: model.MenuTypeContainer, Status: 1}
	require.NoError(t, svc.Create(ctx, root))
	child := &model.Menu{ParentID: root.ID, Title: "users", Path: "/system/users", Status: 1}
	require.NoError(t, svc.Create(ctx, child))

	err := svc.Delete(ctx, root.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrMenuHasChildren.Code))

	// 先删叶子再删父节点
	require.NoError(t, svc.Delete(ctx, child.ID))
	require.NoError(t, svc.Delete(ctx, root.ID))

	_, err = svc.Get(ctx, root.ID)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound.Code))
}

// TestMenuService_UpdateRejectsSelfParent 测试菜单不能把自己设为父节点
func TestMenuService_UpdateRejectsSelfParent(t *testing.T) {
	factory := setupTestFactory(t)
	sessions := setupSessions(t, factory)
	svc := NewMenuService(factory, sessions, testSuperRole)
	ctx := context.Background()

	menu := &model.Menu{Title: "loop", Path: "/loop", Status: 1}
	require.NoError(t, svc.Create(ctx, menu))

	menu.ParentID = menu.ID
	err := svc.Update(ctx, menu)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidParam.Code))
}

// TestMenuService_MutationInvalidatesGrantedSessions 测试菜单变更只波及授权角色的会话
func TestMenuService_MutationInvalidatesGrantedSessions(t *testing.T) {
	factory := setupTestFactory(t)
	sessions := setupSessions(t, factory)
	svc := NewMenuService(factory, sessions, testSuperRole)
	ctx := context.Background()

	ops := seedRole(t, factory, "ops")
	seedRole(t, factory, "viewer")

	menu := &model.Menu{Title: "devices", Path: "/devices", Status: 1}
	require.NoError(t, svc.Create(ctx, menu))
	require.NoError(t, factory.Roles().GrantMenus(ctx, ops.ID, []uint64{menu.ID}))

	opsCtx := sessions.Create("S-ops", "10", []string{"ops"}, false)
	viewerCtx := sessions.Create("S-viewer", "11", []string{"viewer"}, false)
	opsGen := opsCtx.Generation()
	viewerGen := viewerCtx.Generation()

	menu.Title = "devices-v2"
	require.NoError(t, svc.Update(ctx, menu))

	assert.Equal(t, opsGen+1, opsCtx.Generation())
	assert.Equal(t, viewerGen, viewerCtx.Generation())

	t.Run("删除同样波及授权角色", func(t *testing.T) {
		opsGen := opsCtx.Generation()

		require.NoError(t, svc.Delete(ctx, menu.ID))
		assert.Equal(t, opsGen+1, opsCtx.Generation())

		// 授权关系已随菜单一起清掉
		ids, err := factory.Roles().MenuIDs(ctx, ops.ID)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
