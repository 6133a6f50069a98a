package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	CategoryMaintenance = "ENTRETIEN"
	CategoryAccessory   = "ACCESSOIRE"
	CategoryEquipment   = "EQUIPEMENT"
	CategoryLeisure     = "LOISIR"
	CategoryGiftCard    = "CARTE CADEAU"
)

// ValidCategory reports whether the category is one of the five known ones.
func ValidCategory(category string) bool {
	switch category {
	case CategoryMaintenance, CategoryAccessory, CategoryEquipment, CategoryLeisure, CategoryGiftCard:
		return true
	}
	return false
}

// CatalogItem is one reward. Code is a slug of the title. EuroValue is
// optional; when zero the display value is TokenCost times the configured
// token value.
type CatalogItem struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Code        string       `gorm:"not null;uniqueIndex" json:"code"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description,omitempty"`
	TokenCost   int64        `gorm:"not null" json:"token_cost"`
	EuroValue   int64        `json:"euro_value,omitempty"`
	Image       string       `json:"image,omitempty"`
	Category    string       `gorm:"not null" json:"category"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DisplayEuroValue resolves the euro value shown for the item.
func (i CatalogItem) DisplayEuroValue(tokenValueEuros int64) int64 {
	if i.EuroValue > 0 {
		return i.EuroValue
	}
	return i.TokenCost * tokenValueEuros
}
