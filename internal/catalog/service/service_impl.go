package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/catalog/domain"
	"github.com/freeenergie/parrainage/internal/clock"
	"github.com/freeenergie/parrainage/internal/config"
	obsmetrics "github.com/freeenergie/parrainage/internal/observability/metrics"
	referraldomain "github.com/freeenergie/parrainage/internal/referral/domain"
	"github.com/freeenergie/parrainage/internal/rewards"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/freeenergie/parrainage/internal/sponsorctx"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	GenID     *snowflake.Node
	Repo      domain.Repository
	Sponsors  sponsordomain.Repository
	Referrals referraldomain.Repository
	Rewards   *config.RewardConfigHolder
	Metrics   *obsmetrics.Metrics
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	genID     *snowflake.Node
	repo      domain.Repository
	sponsors  sponsordomain.Repository
	referrals referraldomain.Repository
	rewards   *config.RewardConfigHolder
	metrics   *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("catalog.service"),
		clock:     p.Clock,
		genID:     p.GenID,
		repo:      p.Repo,
		sponsors:  p.Sponsors,
		referrals: p.Referrals,
		rewards:   p.Rewards,
		metrics:   p.Metrics,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.ItemView, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	tokenValue := s.rewards.Get().TokenValueEuros
	views := make([]domain.ItemView, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		views = append(views, domain.ItemView{
			CatalogItem:       *item,
			EuroValueResolved: item.DisplayEuroValue(tokenValue),
		})
	}
	return views, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.CatalogItem, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CatalogItem{}, domain.ErrInvalidTitle
	}
	if req.TokenCost <= 0 {
		return domain.CatalogItem{}, domain.ErrInvalidTokenCost
	}
	category := strings.ToUpper(strings.TrimSpace(req.Category))
	if !domain.ValidCategory(category) {
		return domain.CatalogItem{}, domain.ErrInvalidCategory
	}

	now := s.clock.Now()
	item := domain.CatalogItem{
		ID:          s.genID.Generate(),
		Code:        slug.Make(title),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		TokenCost:   req.TokenCost,
		EuroValue:   req.EuroValue,
		Image:       strings.TrimSpace(req.Image),
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.CatalogItem{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateItemRequest) (domain.CatalogItem, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.CatalogItem{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	if existing == nil {
		return domain.CatalogItem{}, domain.ErrNotFound
	}

	item := *existing
	if title := strings.TrimSpace(req.Title); title != "" {
		item.Title = title
		item.Code = slug.Make(title)
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		item.Description = description
	}
	if req.TokenCost != nil {
		if *req.TokenCost <= 0 {
			return domain.CatalogItem{}, domain.ErrInvalidTokenCost
		}
		item.TokenCost = *req.TokenCost
	}
	if req.EuroValue != nil {
		item.EuroValue = *req.EuroValue
	}
	if image := strings.TrimSpace(req.Image); image != "" {
		item.Image = image
	}
	if category := strings.ToUpper(strings.TrimSpace(req.Category)); category != "" {
		if !domain.ValidCategory(category) {
			return domain.CatalogItem{}, domain.ErrInvalidCategory
		}
		item.Category = category
	}
	item.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, &item); err != nil {
		return domain.CatalogItem{}, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, parsed)
}

// Redeem gates on the derived balance only. It deliberately performs no
// deduction and writes no redemption record; the confirmation message is the
// whole effect.
func (s *Service) Redeem(ctx context.Context, req domain.RedeemRequest) (domain.RedeemResult, error) {
	sponsorID, ok := sponsorctx.SponsorIDFromContext(ctx)
	if !ok {
		return domain.RedeemResult{}, domain.ErrUnauthenticated
	}

	itemID, err := s.parseID(req.ItemID)
	if err != nil {
		return domain.RedeemResult{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, itemID)
	if err != nil {
		return domain.RedeemResult{}, err
	}
	if item == nil {
		return domain.RedeemResult{}, domain.ErrNotFound
	}

	sponsor, err := s.sponsors.FindByID(ctx, s.db, sponsorID)
	if err != nil {
		return domain.RedeemResult{}, err
	}
	if sponsor == nil {
		return domain.RedeemResult{}, domain.ErrUnauthenticated
	}

	installDates, err := s.referrals.InstalledDates(ctx, s.db, sponsorID)
	if err != nil {
		return domain.RedeemResult{}, err
	}

	balance := rewards.TokenBalance(s.rewards.Get(), installDates, sponsor.BonusTokens)
	if balance < item.TokenCost {
		if s.metrics != nil {
			s.metrics.RecordRedemption(ctx, "denied")
		}
		return domain.RedeemResult{}, domain.ErrInsufficientTokens
	}

	if s.metrics != nil {
		s.metrics.RecordRedemption(ctx, "allowed")
	}
	s.log.Info("redemption permitted",
		zap.String("sponsor_id", sponsorID.String()),
		zap.String("item_code", item.Code),
		zap.Int64("balance", balance),
	)

	return domain.RedeemResult{
		Item:    *item,
		Balance: balance,
		Message: fmt.Sprintf("Votre demande pour %q est enregistrée. Un conseiller Free Energie vous contactera.", item.Title),
	}, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
