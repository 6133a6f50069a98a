package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, item *domain.CatalogItem) error {
	return db.WithContext(ctx).Create(item).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.CatalogItem, error) {
	var items []*domain.CatalogItem
	err := db.WithContext(ctx).
		Order("token_cost asc, created_at asc, id asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, item *domain.CatalogItem) error {
	return db.WithContext(ctx).
		Model(&domain.CatalogItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"code":        item.Code,
			"title":       item.Title,
			"description": item.Description,
			"token_cost":  item.TokenCost,
			"euro_value":  item.EuroValue,
			"image":       item.Image,
			"category":    item.Category,
			"updated_at":  item.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	result := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.CatalogItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
