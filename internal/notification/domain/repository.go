package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, notification *Notification) error
	List(ctx context.Context, db *gorm.DB) ([]*Notification, error)
	MarkAllRead(ctx context.Context, db *gorm.DB) (int64, error)
}
