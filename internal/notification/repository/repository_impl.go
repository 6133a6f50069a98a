package repository

import (
	"context"

	"github.com/freeenergie/parrainage/internal/notification/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, notification *domain.Notification) error {
	return db.WithContext(ctx).Create(notification).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *repo) MarkAllRead(ctx context.Context, db *gorm.DB) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("read = ?", false).
		Update("read", true)
	return result.RowsAffected, result.Error
}
