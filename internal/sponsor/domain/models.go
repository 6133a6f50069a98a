package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	RoleSponsor    = "SPONSOR"
	RoleSupervisor = "SUPERVISOR"
)

// Sponsor is a program member. The token balance is never stored on this row;
// it is derived from installed referrals plus BonusTokens on every read.
type Sponsor struct {
	ID                  snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name                string            `gorm:"not null" json:"name"`
	Email               string            `gorm:"not null;uniqueIndex" json:"email"`
	Phone               string            `json:"phone,omitempty"`
	Address             string            `json:"address,omitempty"`
	Role                string            `gorm:"not null;default:'SPONSOR'" json:"role"`
	BonusTokens         int64             `gorm:"not null;default:0" json:"bonus_tokens"`
	NetworkInstallCount int               `gorm:"not null;default:0" json:"network_install_count"`
	Metadata            datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
