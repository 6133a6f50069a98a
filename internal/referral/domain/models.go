package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status is the four-stage sales pipeline. Transitions are free: a supervisor
// may set any status at any time.
type Status string

const (
	StatusNew         Status = "NEW"
	StatusAppointment Status = "APPOINTMENT"
	StatusQuote       Status = "QUOTE"
	StatusInstalled   Status = "INSTALLED"
)

var statusLabels = map[Status]string{
	StatusNew:         "Nouveau",
	StatusAppointment: "Rendez-vous",
	StatusQuote:       "Devis fourni",
	StatusInstalled:   "Installation terminée",
}

// Valid reports whether s is one of the four pipeline stages.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the French display label used in exports.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Referral is one referred contact. SponsorID is immutable after creation and
// is the only grouping key for reward computation; SponsorName is a
// denormalized display attribute. DateCreated has day granularity and is the
// sole ordering key for the reward engines. TokensAwarded is persisted for
// compatibility but never consulted by any derivation.
type Referral struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	SponsorID       snowflake.ID `gorm:"not null;index" json:"sponsor_id"`
	SponsorName     string       `gorm:"not null" json:"sponsor_name"`
	Name            string       `gorm:"not null" json:"name"`
	Phone           string       `gorm:"not null" json:"phone"`
	Email           string       `json:"email,omitempty"`
	Address         string       `json:"address,omitempty"`
	Status          Status       `gorm:"not null;default:'NEW';index" json:"status"`
	DateCreated     time.Time    `gorm:"not null;type:date" json:"date_created"`
	TokensAwarded   bool         `gorm:"not null;default:false" json:"tokens_awarded"`
	IsHomeowner     bool         `gorm:"not null;default:false" json:"is_homeowner"`
	HouseOver2Years bool         `gorm:"not null;default:false" json:"house_over_2_years"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
