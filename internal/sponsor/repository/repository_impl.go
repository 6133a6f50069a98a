package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/sponsor/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sponsor *domain.Sponsor) error {
	return db.WithContext(ctx).Create(sponsor).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Sponsor, error) {
	var sponsor domain.Sponsor
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&sponsor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sponsor, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Sponsor, error) {
	var sponsor domain.Sponsor
	err := db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(email)).
		Take(&sponsor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sponsor, nil
}

func (r *repo) FindFirstByRole(ctx context.Context, db *gorm.DB, role string) (*domain.Sponsor, error) {
	var sponsor domain.Sponsor
	err := db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at asc, id asc").
		Take(&sponsor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sponsor, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, sponsor *domain.Sponsor) error {
	return db.WithContext(ctx).
		Model(&domain.Sponsor{}).
		Where("id = ?", sponsor.ID).
		Updates(map[string]any{
			"name":                  sponsor.Name,
			"email":                 sponsor.Email,
			"phone":                 sponsor.Phone,
			"address":               sponsor.Address,
			"bonus_tokens":          sponsor.BonusTokens,
			"network_install_count": sponsor.NetworkInstallCount,
			"updated_at":            sponsor.UpdatedAt,
		}).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Sponsor, error) {
	var sponsors []*domain.Sponsor
	err := db.WithContext(ctx).
		Where("role = ?", domain.RoleSponsor).
		Order("created_at asc, id asc").
		Find(&sponsors).Error
	if err != nil {
		return nil, err
	}
	return sponsors, nil
}
