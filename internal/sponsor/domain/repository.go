package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sponsor *Sponsor) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Sponsor, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Sponsor, error)
	FindFirstByRole(ctx context.Context, db *gorm.DB, role string) (*Sponsor, error)
	Update(ctx context.Context, db *gorm.DB, sponsor *Sponsor) error
	List(ctx context.Context, db *gorm.DB) ([]*Sponsor, error)
}
