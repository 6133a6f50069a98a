package domain

import (
	"context"
	"errors"
)

type CreateItemRequest struct {
	Title       string
	Description string
	TokenCost   int64
	EuroValue   int64
	Image       string
	Category    string
}

type UpdateItemRequest struct {
	ID          string
	Title       string
	Description string
	TokenCost   *int64
	EuroValue   *int64
	Image       string
	Category    string
}

// ItemView is a catalog item with its resolved euro value.
type ItemView struct {
	CatalogItem
	EuroValueResolved int64 `json:"euro_value_resolved"`
}

type RedeemRequest struct {
	ItemID string
}

// RedeemResult confirms a permitted redemption. No tokens are deducted and no
// redemption record is written; an advisor follows up out of band.
type RedeemResult struct {
	Item    CatalogItem `json:"item"`
	Balance int64       `json:"balance"`
	Message string      `json:"message"`
}

type Service interface {
	List(ctx context.Context) ([]ItemView, error)
	Create(ctx context.Context, req CreateItemRequest) (CatalogItem, error)
	Update(ctx context.Context, req UpdateItemRequest) (CatalogItem, error)
	Delete(ctx context.Context, id string) error
	// Redeem checks the gate: permitted iff the derived balance covers the
	// token cost.
	Redeem(ctx context.Context, req RedeemRequest) (RedeemResult, error)
}

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidTitle       = errors.New("invalid_title")
	ErrInvalidTokenCost   = errors.New("invalid_token_cost")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrNotFound           = errors.New("not_found")
	ErrInsufficientTokens = errors.New("insufficient_tokens")
)
