package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *CatalogItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*CatalogItem, error)
	List(ctx context.Context, db *gorm.DB) ([]*CatalogItem, error)
	Update(ctx context.Context, db *gorm.DB, item *CatalogItem) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
