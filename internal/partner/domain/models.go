package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusPending   = "PENDING"
	StatusValidated = "VALIDATED"
	StatusRejected  = "REJECTED"
)

const (
	DepartmentSavoie      = "73"
	DepartmentHauteSavoie = "74"
	DepartmentOther       = "AUTRE"
)

// Partner is a sponsor-owned business in the community directory. New entries
// start PENDING and only appear to sponsors once VALIDATED.
type Partner struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyName      string       `gorm:"not null" json:"company_name"`
	Category         string       `gorm:"not null" json:"category"`
	OfferDescription string       `gorm:"not null" json:"offer_description"`
	Department       string       `gorm:"not null;default:'AUTRE'" json:"department"`
	Image            string       `json:"image,omitempty"`
	SponsorID        snowflake.ID `gorm:"not null;index" json:"sponsor_id"`
	SponsorName      string       `gorm:"not null" json:"sponsor_name"`
	Status           string       `gorm:"not null;default:'PENDING';index" json:"status"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
