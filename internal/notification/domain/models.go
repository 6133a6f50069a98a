package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	TypePromo = "PROMO"
	TypeInfo  = "INFO"
	TypeBoost = "BOOST"
)

// Notification is append-only; the only mutation is the bulk mark-read.
type Notification struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Title     string       `gorm:"not null" json:"title"`
	Message   string       `gorm:"not null" json:"message"`
	Type      string       `gorm:"not null;default:'INFO'" json:"type"`
	Read      bool         `gorm:"not null;default:false" json:"read"`
	Date      time.Time    `gorm:"not null;type:date" json:"date"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
