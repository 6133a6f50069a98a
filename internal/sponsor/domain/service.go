package domain

import (
	"context"
	"errors"
)

type UpdateProfileRequest struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type GrantBonusTokensRequest struct {
	SponsorID string
	Tokens    int64
}

type SetNetworkInstallsRequest struct {
	SponsorID string
	Count     int
}

type Service interface {
	Me(ctx context.Context) (Sponsor, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (Sponsor, error)
	GetByID(ctx context.Context, id string) (Sponsor, error)
	GrantBonusTokens(ctx context.Context, req GrantBonusTokensRequest) (Sponsor, error)
	SetNetworkInstalls(ctx context.Context, req SetNetworkInstallsRequest) (Sponsor, error)
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidTokens   = errors.New("invalid_tokens")
	ErrInvalidCount    = errors.New("invalid_count")
	ErrNotFound        = errors.New("not_found")
)
