package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/clock"
	"github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/freeenergie/parrainage/internal/sponsorctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("sponsor.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Me(ctx context.Context) (domain.Sponsor, error) {
	id, ok := sponsorctx.SponsorIDFromContext(ctx)
	if !ok {
		return domain.Sponsor{}, domain.ErrUnauthenticated
	}
	return s.getByID(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (domain.Sponsor, error) {
	id, ok := sponsorctx.SponsorIDFromContext(ctx)
	if !ok {
		return domain.Sponsor{}, domain.ErrUnauthenticated
	}

	sponsor, err := s.getByID(ctx, id)
	if err != nil {
		return domain.Sponsor{}, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		sponsor.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if !strings.Contains(email, "@") {
			return domain.Sponsor{}, domain.ErrInvalidEmail
		}
		sponsor.Email = email
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		sponsor.Phone = phone
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		sponsor.Address = address
	}
	sponsor.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, &sponsor); err != nil {
		return domain.Sponsor{}, err
	}
	return sponsor, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Sponsor, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return domain.Sponsor{}, err
	}
	return s.getByID(ctx, parsed)
}

// GrantBonusTokens adds to the manually granted scalar. The derived balance
// picks the grant up on the next read; nothing else is recomputed.
func (s *Service) GrantBonusTokens(ctx context.Context, req domain.GrantBonusTokensRequest) (domain.Sponsor, error) {
	if req.Tokens <= 0 {
		return domain.Sponsor{}, domain.ErrInvalidTokens
	}

	id, err := s.parseID(req.SponsorID)
	if err != nil {
		return domain.Sponsor{}, err
	}

	sponsor, err := s.getByID(ctx, id)
	if err != nil {
		return domain.Sponsor{}, err
	}

	sponsor.BonusTokens += req.Tokens
	sponsor.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &sponsor); err != nil {
		return domain.Sponsor{}, err
	}

	s.log.Info("bonus tokens granted",
		zap.String("sponsor_id", sponsor.ID.String()),
		zap.Int64("tokens", req.Tokens),
	)
	return sponsor, nil
}

// SetNetworkInstalls is the only mutation path for the network counter.
func (s *Service) SetNetworkInstalls(ctx context.Context, req domain.SetNetworkInstallsRequest) (domain.Sponsor, error) {
	if req.Count < 0 {
		return domain.Sponsor{}, domain.ErrInvalidCount
	}

	id, err := s.parseID(req.SponsorID)
	if err != nil {
		return domain.Sponsor{}, err
	}

	sponsor, err := s.getByID(ctx, id)
	if err != nil {
		return domain.Sponsor{}, err
	}

	sponsor.NetworkInstallCount = req.Count
	sponsor.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &sponsor); err != nil {
		return domain.Sponsor{}, err
	}
	return sponsor, nil
}

func (s *Service) getByID(ctx context.Context, id snowflake.ID) (domain.Sponsor, error) {
	sponsor, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Sponsor{}, err
	}
	if sponsor == nil {
		return domain.Sponsor{}, domain.ErrNotFound
	}
	return *sponsor, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
