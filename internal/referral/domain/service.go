package domain

import (
	"context"
	"errors"

	"github.com/freeenergie/parrainage/pkg/db/pagination"
)

type CreateReferralRequest struct {
	Name            string
	Phone           string
	Email           string
	Address         string
	IsHomeowner     bool
	HouseOver2Years bool
}

// BatchContact is one entry of the launch-offer batch form.
type BatchContact struct {
	Name  string
	Phone string
}

type BatchCreateRequest struct {
	Contacts []BatchContact
}

type ListReferralRequest struct {
	PageToken string
	PageSize  int32
	Status    string
	Search    string
}

type ListReferralResponse struct {
	pagination.PageInfo
	Referrals []Referral `json:"referrals"`
}

type UpdateStatusRequest struct {
	ID     string
	Status string
}

type Service interface {
	// Create registers one referral for the authenticated sponsor. Both
	// eligibility flags must be set.
	Create(ctx context.Context, req CreateReferralRequest) (Referral, error)
	// CreateBatch registers the launch-offer contacts, grants one bonus token
	// and appends a BOOST notification.
	CreateBatch(ctx context.Context, req BatchCreateRequest) ([]Referral, error)
	// List returns the authenticated sponsor's own referrals.
	List(ctx context.Context, req ListReferralRequest) (ListReferralResponse, error)
	// ListAll is the supervisor lead view across every sponsor.
	ListAll(ctx context.Context, req ListReferralRequest) (ListReferralResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (Referral, error)
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPhone    = errors.New("invalid_phone")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrNotEligible     = errors.New("not_eligible")
	ErrEmptyBatch      = errors.New("empty_batch")
	ErrNotFound        = errors.New("not_found")
)
