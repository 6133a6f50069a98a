package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/referral/domain"
	"github.com/freeenergie/parrainage/pkg/db/option"
	"github.com/freeenergie/parrainage/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, referral *domain.Referral) error {
	return db.WithContext(ctx).Create(referral).Error
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, referrals []*domain.Referral) error {
	if len(referrals) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(referrals).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Referral, error) {
	var referral domain.Referral
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&referral).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &referral, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Referral, error) {
	var referrals []*domain.Referral
	stmt := db.WithContext(ctx).Model(&domain.Referral{})
	if filter.SponsorID != 0 {
		stmt = stmt.Where("sponsor_id = ?", filter.SponsorID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where(
			"lower(name) LIKE ? OR lower(sponsor_name) LIKE ? OR lower(address) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]*domain.Referral, error) {
	var referrals []*domain.Referral
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status, updatedAt time.Time) error {
	result := db.WithContext(ctx).
		Model(&domain.Referral{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InstalledDates feeds the reward engines: the date_created column of every
// INSTALLED referral of one sponsor, ascending.
func (r *repo) InstalledDates(ctx context.Context, db *gorm.DB, sponsorID snowflake.ID) ([]time.Time, error) {
	var dates []time.Time
	err := db.WithContext(ctx).
		Model(&domain.Referral{}).
		Where("sponsor_id = ? AND status = ?", sponsorID, domain.StatusInstalled).
		Order("date_created asc, id asc").
		Pluck("date_created", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, sponsorID snowflake.ID) (map[domain.Status]int64, error) {
	type row struct {
		Status domain.Status
		Count  int64
	}
	var rows []row
	stmt := db.WithContext(ctx).
		Model(&domain.Referral{}).
		Select("status, count(*) as count").
		Group("status")
	if sponsorID != 0 {
		stmt = stmt.Where("sponsor_id = ?", sponsorID)
	}
	if err := stmt.Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, item := range rows {
		counts[item.Status] = item.Count
	}
	return counts, nil
}
