package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	SponsorID snowflake.ID // zero means all sponsors
	Status    Status
	Search    string // matches name, sponsor name or address
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, referral *Referral) error
	InsertBatch(ctx context.Context, db *gorm.DB, referrals []*Referral) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Referral, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Referral, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]*Referral, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status, updatedAt time.Time) error
	InstalledDates(ctx context.Context, db *gorm.DB, sponsorID snowflake.ID) ([]time.Time, error)
	CountByStatus(ctx context.Context, db *gorm.DB, sponsorID snowflake.ID) (map[Status]int64, error)
}
