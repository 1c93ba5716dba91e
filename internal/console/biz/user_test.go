package biz

import (
	"context"
	"strconv"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
)

// TestUserService_CreateHashesPassword 测试创建用户时密码落库前必须哈希
func TestUserService_CreateHashesPassword(t *testing.T) {
	factory := setupTestFactory(t)
	sessions := setupSessions(t, factory)
	svc := NewUserService(factory, sessions)
	ctx := context.Background()

	user := &model.User{Username: "carol", Password: "plain-secret", Status: 1}
	require.NoError(t, svc.Create(ctx, user))

	stored, err := factory.Users().Get(ctx, "carol")
	require.NoError(t, err)
	assert.NotEqual(t, "plain-secret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("plain-secret")))

	// 用户名唯一
	dup := &model.User{Username: "carol", Password: "other", Status: 1}
	err = svc.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrAlreadyExists.Code))
}

// TestUserService_ChangePassword 测试改密链路：旧密码校验与会话清退
func TestUserService_ChangePassword(t *testing.T) {
	factory := setupTestFactory(t)
	sessions := setupSessions(t, factory)
	svc := NewUserService(factory, sessions)
	ctx := context.Background()

	user := seedUser(t, factory, "dave", "oldPassword123", 1)
	uid := strconv.FormatUint(user.ID, 10)

	t.Run("旧密码错误", func(t *testing.T) {
		sessions.Create("S-dave-1", uid, []string{"ops"}, false)

		err := svc.ChangePassword(ctx, user.ID, "wrongOld", "newPassword456")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrInvalidCredentials.Code))
		// 改密失败不影响在线会话
		assert.Equal(t, 1, sessions.Len())
	})

	t.Run("改密成功", func(t *testing.T) {
		require.Equal(t, 1, sessions.Len())

		require.NoError(t, svc.ChangePassword(ctx, user.ID, "oldPassword123", "newPassword456"))

		stored, err := factory.Users().GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newPassword456")))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("oldPassword123")))

		// 改密后既有会话全部失效，强制重新登录
		assert.Equal(t, 0, sessions.Len())
	})

	t.Run("管理员重置无需旧密码", func(t *testing.T) {
		sessions.Create("S-dave-2", uid, []string{"ops"}, false)

		require.NoError(t, svc.ResetPassword(ctx, user.ID, "resetPassword789"))

		stored, err := factory.Users().GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("resetPassword789")))
		assert.Equal(t, 0, sessions.Len())
	})
}

// TestUserService_UpdateLifecycle 测试更新语义：密码保留与停用清退
func TestUserService_UpdateLifecycle(t *testing.T) {
	factory := setupTestFactory(t)
	sessions := setupSessions(t, factory)
	svc := NewUserService(factory, sessions)
	ctx := context.Background()

	user := seedUser(t, factory, "erin", "password123", 1)
	uid := strconv.FormatUint(user.ID, 10)
	sessions.Create("S-erin-1", uid, []string{"ops"}, false)

	t.Run("普通更新不触碰密码和会话", func(t *testing.T) {
		update := &model.User{ID: user.ID, Username: "erin", Mobile: "13800138000", Status: 1}
		require.NoError(t, svc.Update(ctx, update))

		stored, err := factory.Users().GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "13800138000", stored.Mobile)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
		assert.Equal(t, 1, sessions.Len())
	})

	t.Run("停用账号清退全部会话", func(t *testing.T) {
		update := &model.User{ID: user.ID, Username: "erin", Status: 0}
		require.NoError(t, svc.Update(ctx, update))
		assert.Equal(t, 0, sessions.Len())
	})
}

// TestUserService_DeleteDropsSessions 测试删除用户连带清退会话
func TestUserService_DeleteDropsSessions(t *testing.T) {
	factory := setupTestFactory(t)
	sessions := setupSessions(t, factory)
	svc := NewUserService(factory, sessions)
	ctx := context.Background()

	user := seedUser(t, factory, "frank", "password123", 1)
	uid := strconv.FormatUint(user.ID, 10)
	sessions.Create("S-frank-1", uid, nil, false)
	sessions.Create("S-frank-2", uid, nil, false)

	require.NoError(t, svc.Delete(ctx, user.ID))
	assert.Equal(t, 0, sessions.Len())

	_, err := svc.GetByID(ctx, user.ID)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound.Code))
}
