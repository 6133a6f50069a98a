package service

import (
	"context"

	"github.com/freeenergie/parrainage/internal/config"
	"github.com/freeenergie/parrainage/internal/dashboard/domain"
	referraldomain "github.com/freeenergie/parrainage/internal/referral/domain"
	"github.com/freeenergie/parrainage/internal/rewards"
	"github.com/freeenergie/parrainage/internal/share"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/freeenergie/parrainage/internal/sponsorctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Sponsors  sponsordomain.Repository
	Referrals referraldomain.Repository
	Rewards   *config.RewardConfigHolder
	Share     *share.Builder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	sponsors  sponsordomain.Repository
	referrals referraldomain.Repository
	rewards   *config.RewardConfigHolder
	share     *share.Builder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("dashboard.service"),
		sponsors:  p.Sponsors,
		referrals: p.Referrals,
		rewards:   p.Rewards,
		share:     p.Share,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Dashboard, error) {
	sponsorID, ok := sponsorctx.SponsorIDFromContext(ctx)
	if !ok {
		return domain.Dashboard{}, domain.ErrUnauthenticated
	}

	sponsor, err := s.sponsors.FindByID(ctx, s.db, sponsorID)
	if err != nil {
		return domain.Dashboard{}, err
	}
	if sponsor == nil {
		return domain.Dashboard{}, domain.ErrUnauthenticated
	}

	installDates, err := s.referrals.InstalledDates(ctx, s.db, sponsorID)
	if err != nil {
		return domain.Dashboard{}, err
	}
	counts, err := s.referrals.CountByStatus(ctx, s.db, sponsorID)
	if err != nil {
		return domain.Dashboard{}, err
	}

	cfg := s.rewards.Get()
	directInstalls := len(installDates)
	balance := rewards.TokenBalance(cfg, installDates, sponsor.BonusTokens)

	pipeline := make(map[string]int64, len(counts))
	for status, count := range counts {
		pipeline[string(status)] = count
	}

	return domain.Dashboard{
		SponsorID:       sponsor.ID.String(),
		Name:            sponsor.Name,
		TokenBalance:    balance,
		EuroBalance:     balance * cfg.TokenValueEuros,
		Rank:            rewards.EvaluateRank(cfg, directInstalls, sponsor.NetworkInstallCount),
		CycleProgress:   rewards.ProgressInCycle(cfg, directInstalls),
		PipelineCounts:  pipeline,
		DirectInstalls:  directInstalls,
		NetworkInstalls: sponsor.NetworkInstallCount,
		Share:           s.share.SponsorKit(sponsor.ID.String()),
	}, nil
}
