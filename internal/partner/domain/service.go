package domain

import (
	"context"
	"errors"
)

type CreatePartnerRequest struct {
	CompanyName      string
	Category         string
	OfferDescription string
	Department       string
	Image            string
}

type ModerateRequest struct {
	ID     string
	Status string // VALIDATED or REJECTED
}

type Service interface {
	// ListValidated is the sponsor-facing directory.
	ListValidated(ctx context.Context) ([]Partner, error)
	ListPending(ctx context.Context) ([]Partner, error)
	// Create submits a PENDING entry owned by the authenticated sponsor and
	// appends an INFO notification.
	Create(ctx context.Context, req CreatePartnerRequest) (Partner, error)
	// Moderate validates or rejects a pending entry; validation appends an
	// INFO notification.
	Moderate(ctx context.Context, req ModerateRequest) (Partner, error)
}

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidCompanyName = errors.New("invalid_company_name")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrInvalidDepartment  = errors.New("invalid_department")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrNotFound           = errors.New("not_found")
)
