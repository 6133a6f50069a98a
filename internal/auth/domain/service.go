package domain

import (
	"context"
	"errors"
	"time"

	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/freeenergie/parrainage/internal/sponsorctx"
)

type LoginRequest struct {
	Email string
}

type SupervisorLoginRequest struct {
	PIN string
}

// Session is an issued bearer token and the sponsor it authenticates.
type Session struct {
	Token     string                 `json:"token"`
	ExpiresAt time.Time              `json:"expires_at"`
	Sponsor   sponsordomain.Sponsor  `json:"sponsor"`
}

type Service interface {
	// Login authenticates a sponsor by email. The check is deliberately
	// lightweight: membership is managed by the reseller, not self-service.
	Login(ctx context.Context, req LoginRequest) (Session, error)
	// SupervisorLogin exchanges the 4-digit PIN for a supervisor session.
	SupervisorLogin(ctx context.Context, req SupervisorLoginRequest) (Session, error)
	// Verify parses a bearer token into a caller identity.
	Verify(token string) (sponsorctx.Identity, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidPIN         = errors.New("invalid_pin")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrNoSupervisor       = errors.New("no_supervisor_account")
)
