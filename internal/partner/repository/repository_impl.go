package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/partner/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, partner *domain.Partner) error {
	return db.WithContext(ctx).Create(partner).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Partner, error) {
	var partner domain.Partner
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&partner).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &partner, nil
}

func (r *repo) ListByStatus(ctx context.Context, db *gorm.DB, status string) ([]*domain.Partner, error) {
	var partners []*domain.Partner
	err := db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at desc, id desc").
		Find(&partners).Error
	if err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, partner *domain.Partner) error {
	return db.WithContext(ctx).
		Model(&domain.Partner{}).
		Where("id = ?", partner.ID).
		Updates(map[string]any{
			"status":     partner.Status,
			"updated_at": partner.UpdatedAt,
		}).Error
}
