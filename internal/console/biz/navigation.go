// Package biz implements the console's business logic on top of the
// storage layer: authentication, session-backed navigation, and the admin
// services for users, roles, menus, and API resources.
package biz

import (
	"context"
	"strconv"

	"github.com/kart-io/atlas/internal/console/store"
	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/navigation"
	"github.com/kart-io/atlas/pkg/security/session"
)

// NavigationService loads per-user menus and API permissions from the
// store. It implements session.Source, so every session cache miss lands
// here.
type NavigationService struct {
	store     store.Factory
	superRole string
}

var _ session.Source = (*NavigationService)(nil)

// NewNavigationService creates a NavigationService. superuserRole is the
// role code whose holders see the full navigation tree.
func NewNavigationService(store store.Factory, superuserRole string) *NavigationService {
	return &NavigationService{
		store:     store,
		superRole: superuserRole,
	}
}

// LoadMenus implements session.Source.
func (s *NavigationService) LoadMenus(ctx context.Context, userID string) ([]*navigation.MenuNode, error) {
	uid, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return nil, errors.ErrMenuFetch.WithCause(err)
	}

	superuser, err := s.isSuperuser(ctx, uid)
	if err != nil {
		return nil, errors.ErrMenuFetch.WithCause(err)
	}

	var menus []*model.Menu
	if superuser {
		menus, err = s.store.Menus().ListAll(ctx)
	} else {
		menus, err = s.store.Menus().ListByUserID(ctx, uid)
	}
	if err != nil {
		return nil, errors.ErrMenuFetch.WithCause(err)
	}

	return MenuNodes(menus), nil
}

// LoadAPIPermissions implements session.Source.
func (s *NavigationService) LoadAPIPermissions(ctx context.Context, userID string) ([]string, error) {
	uid, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return nil, errors.ErrPermissionFetch.WithCause(err)
	}

	superuser, err := s.isSuperuser(ctx, uid)
	if err != nil {
		return nil, errors.ErrPermissionFetch.WithCause(err)
	}

	var apis []*model.APIResource
	if superuser {
		apis, err = s.store.APIResources().ListAll(ctx)
	} else {
		apis, err = s.store.APIResources().ListByUserID(ctx, uid)
	}
	if err != nil {
		return nil, errors.ErrPermissionFetch.WithCause(err)
	}

	return APIDescriptors(apis), nil
}

// isSuperuser 按当前启用角色判定，授予或回收超管角色后重新加载即生效。
func (s *NavigationService) isSuperuser(ctx context.Context, userID uint64) (bool, error) {
	roles, err := s.store.Roles().ListByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r.Code == s.superRole {
			return true, nil
		}
	}
	return false, nil
}

// MenuNodes converts stored menus into navigation nodes. The list keeps
// the store's ordering; the compiler re-sorts per level anyway.
func MenuNodes(menus []*model.Menu) []*navigation.MenuNode {
	nodes := make([]*navigation.MenuNode, 0, len(menus))
	for _, m := range menus {
		nodes = append(nodes, &navigation.MenuNode{
			ID:           m.ID,
			ParentID:     m.ParentID,
			Name:         m.Title,
			Path:         m.Path,
			Icon:         m.Icon,
			Order:        m.Sort,
			ComponentRef: m.Component,
			Perms:        m.PermList(),
			Hidden:       m.Hidden,
			KeepAlive:    m.KeepAlive,
			Redirect:     m.Redirect,
			Type:         navigation.MenuType(m.MenuType),
		})
	}
	return nodes
}

// APIDescriptors renders API resources as permission descriptors in the
// "METHOD /path" form.
func APIDescriptors(apis []*model.APIResource) []string {
	out := make([]string, 0, len(apis))
	for _, a := range apis {
		out = append(out, a.Descriptor())
	}
	return out
}
