package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/kart-io/atlas/internal/model"
	"github.com/kart-io/atlas/pkg/errors"
	"github.com/kart-io/atlas/pkg/store"
)

type loginLogs struct {
	db *gorm.DB
}

func newLoginLogs(db *gorm.DB) *loginLogs {
	return &loginLogs{db}
}

// Create appends one login audit record.
func (l *loginLogs) Create(ctx context.Context, log *model.LoginLog) error {
	if err := l.db.WithContext(ctx).Create(log).Error; err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// List lists login records, newest first.
func (l *loginLogs) List(ctx context.Context, opts ...store.Option) (int64, []*model.LoginLog, error) {
	var count int64
	var list []*model.LoginLog

	whr := store.NewWhere(opts...)

	if err := whr.Where(l.db.WithContext(ctx)).Order("id DESC").Find(&list).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	if err := whr.Where(l.db.WithContext(ctx)).Model(&model.LoginLog{}).Offset(-1).Limit(-1).Count(&count).Error; err != nil {
		return 0, nil, errors.ErrDatabase.WithCause(err)
	}

	return count, list, nil
}
