package biz

import (
	"context"

	"github.com/kart-io/atlas/internal/console/store"
	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/security/session"
	storepkg "github.com/kart-io/atlas/pkg/store"
)

// MenuService handles menu management business logic. Mutations invalidate
// the sessions of every role granted the menu, plus superuser sessions,
// which see the full tree.
type MenuService struct {
	store     store.Factory
	sessions  *session.Manager
	superRole string
}

// NewMenuService creates a new MenuService.
func NewMenuService(store store.Factory, sessions *session.Manager, superuserRole string) *MenuService {
	return &MenuService{
		store:     store,
		sessions:  sessions,
		superRole: superuserRole,
	}
}

// Create creates a new menu under an existing parent.
func (s *MenuService) Create(ctx context.Context, menu *model.Menu) error {
	if menu.ParentID != 0 {
		if _, err := s.store.Menus().Get(ctx, menu.ParentID); err != nil {
			if errors.IsCode(err, errors.ErrNotFound.Code) {
				return errors.ErrInvalidParam.WithMessage("parent menu does not exist")
			}
			return err
		}
	}

	if err := s.store.Menus().Create(ctx, menu); err != nil {
		return err
	}

	// 新菜单尚未授权给任何角色，只有超管会话能看到
	s.sessions.InvalidateRole(s.superRole)
	return nil
}

// Update updates a menu and invalidates every session that can see it.
func (s *MenuService) Update(ctx context.Context, menu *model.Menu) error {
	current, err := s.store.Menus().Get(ctx, menu.ID)
	if err != nil {
		return err
	}
	if menu.ParentID == menu.ID && menu.ID != 0 {
		return errors.ErrInvalidParam.WithMessage("menu cannot be its own parent")
	}

	menu.CreatedAt = current.CreatedAt

	codes, err := s.store.Roles().CodesByMenuID(ctx, menu.ID)
	if err != nil {
		return err
	}

	if err := s.store.Menus().Update(ctx, menu); err != nil {
		return err
	}

	s.invalidate(codes)
	return nil
}

// Delete deletes a menu. Menus with children cannot be deleted.
func (s *MenuService) Delete(ctx context.Context, id uint64) error {
	has, err := s.store.Menus().HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return errors.ErrMenuHasChildren
	}

	// 授权关系随删除一起清掉，受影响角色要先查出来
	codes, err := s.store.Roles().CodesByMenuID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Menus().Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(codes)
	return nil
}

// Get retrieves a menu by id.
func (s *MenuService) Get(ctx context.Context, id uint64) (*model.Menu, error) {
	return s.store.Menus().Get(ctx, id)
}

// List lists menus with the given query options.
func (s *MenuService) List(ctx context.Context, opts ...storepkg.Option) (int64, []*model.Menu, error) {
	return s.store.Menus().List(ctx, opts...)
}

// ListAll returns every enabled menu ordered by sort weight.
func (s *MenuService) ListAll(ctx context.Context) ([]*model.Menu, error) {
	return s.store.Menus().ListAll(ctx)
}

func (s *MenuService) invalidate(codes []string) {
	seen := map[string]struct{}{s.superRole: {}}
	s.sessions.InvalidateRole(s.superRole)
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		s.sessions.InvalidateRole(code)
	}
}
