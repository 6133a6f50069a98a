package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/auth/domain"
	"github.com/freeenergie/parrainage/internal/clock"
	"github.com/freeenergie/parrainage/internal/config"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/freeenergie/parrainage/internal/sponsorctx"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

// defaultDevPIN is only consulted when no bcrypt hash is configured.
const defaultDevPIN = "4774"

type Params struct {
	fx.In

	Config   config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Sponsors sponsordomain.Repository
}

type Service struct {
	secret   []byte
	pinHash  string
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	sponsors sponsordomain.Repository
}

func New(p Params) domain.Service {
	secret := p.Config.AuthJWTSecret
	if secret == "" {
		secret = "parrainage-dev-secret"
		p.Log.Warn("AUTH_JWT_SECRET not set, using development secret")
	}
	return &Service{
		secret:   []byte(secret),
		pinHash:  p.Config.SupervisorPINHash,
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		clock:    p.Clock,
		sponsors: p.Sponsors,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	sponsor, err := s.sponsors.FindByEmail(ctx, s.db, email)
	if err != nil {
		return domain.Session{}, err
	}
	if sponsor == nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	return s.issue(*sponsor)
}

func (s *Service) SupervisorLogin(ctx context.Context, req domain.SupervisorLoginRequest) (domain.Session, error) {
	pin := strings.TrimSpace(req.PIN)
	if pin == "" {
		return domain.Session{}, domain.ErrInvalidPIN
	}
	if s.pinHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.pinHash), []byte(pin)); err != nil {
			s.log.Warn("supervisor pin rejected")
			return domain.Session{}, domain.ErrInvalidPIN
		}
	} else if subtle.ConstantTimeCompare([]byte(pin), []byte(defaultDevPIN)) != 1 {
		s.log.Warn("supervisor pin rejected")
		return domain.Session{}, domain.ErrInvalidPIN
	}

	supervisor, err := s.sponsors.FindFirstByRole(ctx, s.db, sponsordomain.RoleSupervisor)
	if err != nil {
		return domain.Session{}, err
	}
	if supervisor == nil {
		return domain.Session{}, domain.ErrNoSupervisor
	}

	return s.issue(*supervisor)
}

func (s *Service) Verify(token string) (sponsorctx.Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return sponsorctx.Identity{}, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return sponsorctx.Identity{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	id, err := snowflake.ParseString(sub)
	if err != nil || id == 0 {
		return sponsorctx.Identity{}, domain.ErrInvalidToken
	}

	return sponsorctx.Identity{SponsorID: id, Role: role}, nil
}

func (s *Service) issue(sponsor sponsordomain.Sponsor) (domain.Session, error) {
	now := s.clock.Now()
	expiresAt := now.Add(sessionTTL)

	claims := jwt.MapClaims{
		"sub":  sponsor.ID.String(),
		"role": sponsor.Role,
		"name": sponsor.Name,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return domain.Session{}, err
	}

	return domain.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Sponsor:   sponsor,
	}, nil
}
