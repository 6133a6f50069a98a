package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, partner *Partner) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Partner, error)
	ListByStatus(ctx context.Context, db *gorm.DB, status string) ([]*Partner, error)
	Update(ctx context.Context, db *gorm.DB, partner *Partner) error
}
