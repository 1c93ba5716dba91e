package store

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/store"
)

type users struct {
	db *gorm.DB
}

func newUsers(db *gorm.DB) *users {
	return &users{db}
}

// Create creates a new user.
func (u *users) Create(ctx context.Context, user *model.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("username already exists")
		}
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Update updates an existing user.
func (u *users) Update(ctx context.Context, user *model.User) error {
	result := u.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errors.ErrAlreadyExists.WithMessage("username already exists")
		}
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("user not found")
	}
	return nil
}

// Delete deletes a user by id.
func (u *users) Delete(ctx context.Context, id uint64) error {
	result := u.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if result.Error != nil {
		return errors.ErrDatabase.WithCause(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.ErrNotFound.WithMessage("user not found")
	}
	return nil
}

// Get retrieves a user by username.
func (u *users) Get(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := u.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound.WithMessage("user not found")
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &user, nil
}

// GetByID retrieves a user by id.
func (u *users) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrNotFound.WithMessage("user not found")
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &user, nil
}

// List lists users with the given query options.
func (u *users) List(ctx context.Context, opts ...store.Option) (int64, []*model.User, error) {
	var count int64
	var list []*model.User

	whr := store.NewWhere(opts...)

	if err := whr.Where(u.db.WithContext(ctx)).Order("id ASC").Find(&list).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	// 计数不受分页影响
	if err := whr.Where(u.db.WithContext(ctx)).Model(&model.User{}).Offset(-1).Limit(-1).Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	return count, list, nil
}
