package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/store"
)

type menus struct {
	db *gorm.DB
}

func newMenus(db *gorm.DB) *menus {
	return &menus{db}
}

// Create creates a new menu.
func (m *menus) Create(ctx context.Context, menu *model.Menu) error {
	if err := m.db.WithContext(ctx).Create(menu).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update updates an existing menu.
func (m *menus) Update(ctx context.Context, menu *model.Menu) error {
	result := m.db.WithContext(ctx).Save(menu)
	if result.Error != nil {
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("menu not found")
	}
	return nil
}

// Delete deletes a menu by id together with its grant relations.
// Child checks belong to the business layer.
func (m *menus) Delete(ctx context.Context, id uint64) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Menu{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("menu_id = ?", id).Delete(&model.RoleMenu{}).Error
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound.WithMessage("menu not found")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves a menu by id.
func (m *menus) Get(ctx context.Context, id uint64) (*model.Menu, error) {
	var menu model.Menu
	if err := m.db.WithContext(ctx).First(&menu, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound.WithMessage("menu not found")
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &menu, nil
}

// List lists menus with the given query options.
func (m *menus) List(ctx context.Context, opts ...store.Option) (int64, []*model.Menu, error) {
	var count int64
	var list []*model.Menu

	whr := store.NewWhere(opts...)

	if err := whr.Where(m.db.WithContext(ctx)).Order("sort ASC, id ASC").Find(&list).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	if err := whr.Where(m.db.WithContext(ctx)).Model(&model.Menu{}).Offset(-1).Limit(-1).Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	return count, list, nil
}

// ListAll returns every enabled menu ordered by sort weight.
func (m *menus) ListAll(ctx context.Context) ([]*model.Menu, error) {
	var list []*model.Menu
	err := m.db.WithContext(ctx).
		Where("status = ?", 1).
		Order("sort ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return list, nil
}

// ListByUserID returns the enabled menus granted to the user through any
// of its enabled roles.
func (m *menus) ListByUserID(ctx context.Context, userID uint64) ([]*model.Menu, error) {
	var list []*model.Menu
	// 手写 JOIN 绕过了 gorm 的软删除作用域，关联表要自己过滤 deleted_at
	err := m.db.WithContext(ctx).
		Model(&model.Menu{}).
		Distinct("menus.*").
		Joins("JOIN role_menus ON role_menus.menu_id = menus.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_menus.role_id").
		Joins("JOIN roles ON roles.id = user_roles.role_id AND roles.status = 1 AND roles.deleted_at IS NULL").
		Where("user_roles.user_id = ?", userID).
		Where("menus.status = ?", 1).
		Order("menus.sort ASC, menus.id ASC").
		Find(&list).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return list, nil
}

// ListByRoleCodes returns the enabled menus granted to any of the given
// role codes.
func (m *menus) ListByRoleCodes(ctx context.Context, codes []string) ([]*model.Menu, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var list []*model.Menu
	err := m.db.WithContext(ctx).
		Model(&model.Menu{}).
		Distinct("menus.*").
		Joins("JOIN role_menus ON role_menus.menu_id = menus.id").
		Joins("JOIN roles ON roles.id = role_menus.role_id AND roles.status = 1 AND roles.deleted_at IS NULL").
		Where("roles.code IN ?", codes).
		Where("menus.status = ?", 1).
		Order("menus.sort ASC, menus.id ASC").
		Find(&list).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return list, nil
}

// HasChildren reports whether the menu has any child menus, deleted ones
// excluded.
func (m *menus) HasChildren(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&model.Menu{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, errors.ErrDatabase.WithCause(err)
	}
	return count > 0, nil
}
