package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/store"
)

type roles struct {
	db *gorm.DB
}

func newRoles(db *gorm.DB) *roles {
	return &roles{db}
}

// Create creates a new role.
func (r *roles) Create(ctx context.Context, role *model.Role) error {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("role code already exists")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update updates an existing role.
func (r *roles) Update(ctx context.Context, role *model.Role) error {
	result := r.db.WithContext(ctx).Save(role)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("role code already exists")
		}
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("role not found")
	}
	return nil
}

// Delete deletes a role by id together with its grant relations.
func (r *roles) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Role{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// 连带清掉授权关系，避免悬挂的 role_menus / role_apis 行
		if err := tx.Where("role_id = ?", id).Delete(&model.RoleMenu{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&model.RoleAPI{}).Error; err != nil {
			return err
		}
		return tx.Where("role_id = ?", id).Delete(&model.UserRole{}).Error
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound.WithMessage("role not found")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves a role by code.
func (r *roles) Get(ctx context.Context, code string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&role).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound.WithMessage("role not found")
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &role, nil
}

// GetByID retrieves a role by id.
func (r *roles) GetByID(ctx context.Context, id uint64) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound.WithMessage("role not found")
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &role, nil
}

// List lists roles with the given query options.
func (r *roles) List(ctx context.Context, opts ...store.Option) (int64, []*model.Role, error) {
	var count int64
	var list []*model.Role

	whr := store.NewWhere(opts...)

	if err := whr.Where(r.db.WithContext(ctx)).Order("id ASC").Find(&list).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	if err := whr.Where(r.db.WithContext(ctx)).Model(&model.Role{}).Offset(-1).Limit(-1).Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	return count, list, nil
}

// AssignUser assigns the role to a user.
func (r *roles) AssignUser(ctx context.Context, userID, roleID uint64) error {
	userRole := &model.UserRole{
		UserID: userID,
		RoleID: roleID,
	}
	if err := r.db.WithContext(ctx).Create(userRole).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("user already has this role")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// RevokeUser revokes the role from a user.
func (r *roles) RevokeUser(ctx context.Context, userID, roleID uint64) error {
	result := r.db.WithContext(ctx).Where("user_id = ? AND role_id = ?", userID, roleID).Delete(&model.UserRole{})
	if result.Error != nil {
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("role assignment not found")
	}
	return nil
}

// ListByUserID lists the enabled roles assigned to a user.
func (r *roles) ListByUserID(ctx context.Context, userID uint64) ([]*model.Role, error) {
	var list []*model.Role
	err := r.db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Where("roles.status = ?", 1).
		Order("roles.id ASC").
		Find(&list).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return list, nil
}

// CountUsers counts the users still holding the role.
func (r *roles) CountUsers(ctx context.Context, roleID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	if err != nil {
		return 0, errors.ErrDatabase.WithCause(err)
	}
	return count, nil
}

// GrantMenus replaces the role's menu grants with the given set.
func (r *roles) GrantMenus(ctx context.Context, roleID uint64, menuIDs []uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&model.RoleMenu{}).Error; err != nil {
			return err
		}
		if len(menuIDs) == 0 {
			return nil
		}
		rows := make([]*model.RoleMenu, 0, len(menuIDs))
		for _, menuID := range menuIDs {
			rows = append(rows, &model.RoleMenu{RoleID: roleID, MenuID: menuID})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// GrantAPIs replaces the role's API resource grants with the given set.
func (r *roles) GrantAPIs(ctx context.Context, roleID uint64, apiIDs []uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&model.RoleAPI{}).Error; err != nil {
			return err
		}
		if len(apiIDs) == 0 {
			return nil
		}
		rows := make([]*model.RoleAPI, 0, len(apiIDs))
		for _, apiID := range apiIDs {
			rows = append(rows, &model.RoleAPI{RoleID: roleID, APIID: apiID})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// MenuIDs lists the menu ids granted to the role.
func (r *roles) MenuIDs(ctx context.Context, roleID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&model.RoleMenu{}).
		Where("role_id = ?", roleID).
		Order("menu_id ASC").
		Pluck("menu_id", &ids).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return ids, nil
}

// APIIDs lists the API resource ids granted to the role.
func (r *roles) APIIDs(ctx context.Context, roleID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&model.RoleAPI{}).
		Where("role_id = ?", roleID).
		Order("api_id ASC").
		Pluck("api_id", &ids).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return ids, nil
}

// CodesByMenuID lists the codes of roles granted the menu, disabled roles
// included.
func (r *roles) CodesByMenuID(ctx context.Context, menuID uint64) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&model.Role{}).
		Joins("JOIN role_menus ON role_menus.role_id = roles.id").
		Where("role_menus.menu_id = ?", menuID).
		Order("roles.code ASC").
		Pluck("roles.code", &codes).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return codes, nil
}

// CodesByAPIID lists the codes of roles granted the API resource.
func (r *roles) CodesByAPIID(ctx context.Context, apiID uint64) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&model.Role{}).
		Joins("JOIN role_apis ON role_apis.role_id = roles.id").
		Where("role_apis.api_id = ?", apiID).
		Order("roles.code ASC").
		Pluck("roles.code", &codes).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return codes, nil
}
