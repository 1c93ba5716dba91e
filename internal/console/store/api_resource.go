package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/store"
)

type apiResources struct {
	db *gorm.DB
}

func newAPIResources(db *gorm.DB) *apiResources {
	return &apiResources{db}
}

// Create creates a new API resource.
func (a *apiResources) Create(ctx context.Context, api *model.APIResource) error {
	if err := a.db.WithContext(ctx).Create(api).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("api resource already exists")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update updates an existing API resource.
func (a *apiResources) Update(ctx context.Context, api *model.APIResource) error {
	result := a.db.WithContext(ctx).Save(api)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("api resource already exists")
		}
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("api resource not found")
	}
	return nil
}

// Delete deletes an API resource by id together with its grant relations.
func (a *apiResources) Delete(ctx context.Context, id uint64) error {
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.APIResource{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("api_id = ?", id).Delete(&model.RoleAPI{}).Error
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrNotFound.WithMessage("api resource not found")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves an API resource by id.
func (a *apiResources) Get(ctx context.Context, id uint64) (*model.APIResource, error) {
	var api model.APIResource
	if err := a.db.WithContext(ctx).First(&api, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound.WithMessage("api resource not found")
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &api, nil
}

// List lists API resources with the given query options.
func (a *apiResources) List(ctx context.Context, opts ...store.Option) (int64, []*model.APIResource, error) {
	var count int64
	var list []*model.APIResource

	whr := store.NewWhere(opts...)

	if err := whr.Where(a.db.WithContext(ctx)).Order("id ASC").Find(&list).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	if err := whr.Where(a.db.WithContext(ctx)).Model(&model.APIResource{}).Offset(-1).Limit(-1).Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	return count, list, nil
}

// ListAll returns every enabled API resource.
func (a *apiResources) ListAll(ctx context.Context) ([]*model.APIResource, error) {
	var list []*model.APIResource
	err := a.db.WithContext(ctx).
		Where("status = ?", 1).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return list, nil
}

// ListByUserID returns the enabled API resources granted to the user
// through any of its enabled roles.
func (a *apiResources) ListByUserID(ctx context.Context, userID uint64) ([]*model.APIResource, error) {
	var list []*model.APIResource
	err := a.db.WithContext(ctx).
		Model(&model.APIResource{}).
		Distinct("api_resources.*").
		Joins("JOIN role_apis ON role_apis.api_id = api_resources.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_apis.role_id").
		Joins("JOIN roles ON roles.id = user_roles.role_id AND roles.status = 1 AND roles.deleted_at IS NULL").
		Where("user_roles.user_id = ?", userID).
		Where("api_resources.status = ?", 1).
		Order("api_resources.id ASC").
		Find(&list).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return list, nil
}

// ListByRoleCodes returns the enabled API resources granted to any of the
// given role codes.
func (a *apiResources) ListByRoleCodes(ctx context.Context, codes []string) ([]*model.APIResource, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var list []*model.APIResource
	err := a.db.WithContext(ctx).
		Model(&model.APIResource{}).
		Distinct("api_resources.*").
		Joins("JOIN role_apis ON role_apis.api_id = api_resources.id").
		Joins("JOIN roles ON roles.id = role_apis.role_id AND roles.status = 1 AND roles.deleted_at IS NULL").
		Where("roles.code IN ?", codes).
		Where("api_resources.status = ?", 1).
		Order("api_resources.id ASC").
		Find(&list).Error
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return list, nil
}
