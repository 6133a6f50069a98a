package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/clock"
	notificationdomain "github.com/freeenergie/parrainage/internal/notification/domain"
	"github.com/freeenergie/parrainage/internal/partner/domain"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/freeenergie/parrainage/internal/sponsorctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Clock         clock.Clock
	GenID         *snowflake.Node
	Repo          domain.Repository
	Sponsors      sponsordomain.Repository
	Notifications notificationdomain.Service
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	clock         clock.Clock
	genID         *snowflake.Node
	repo          domain.Repository
	sponsors      sponsordomain.Repository
	notifications notificationdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("partner.service"),
		clock:         p.Clock,
		genID:         p.GenID,
		repo:          p.Repo,
		sponsors:      p.Sponsors,
		notifications: p.Notifications,
	}
}

func (s *Service) ListValidated(ctx context.Context) ([]domain.Partner, error) {
	return s.listByStatus(ctx, domain.StatusValidated)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Partner, error) {
	return s.listByStatus(ctx, domain.StatusPending)
}

func (s *Service) Create(ctx context.Context, req domain.CreatePartnerRequest) (domain.Partner, error) {
	sponsorID, ok := sponsorctx.SponsorIDFromContext(ctx)
	if !ok {
		return domain.Partner{}, domain.ErrUnauthenticated
	}
	sponsor, err := s.sponsors.FindByID(ctx, s.db, sponsorID)
	if err != nil {
		return domain.Partner{}, err
	}
	if sponsor == nil {
		return domain.Partner{}, domain.ErrUnauthenticated
	}

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return domain.Partner{}, domain.ErrInvalidCompanyName
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return domain.Partner{}, domain.ErrInvalidCategory
	}
	department := strings.ToUpper(strings.TrimSpace(req.Department))
	switch department {
	case domain.DepartmentSavoie, domain.DepartmentHauteSavoie, domain.DepartmentOther:
	case "":
		department = domain.DepartmentOther
	default:
		return domain.Partner{}, domain.ErrInvalidDepartment
	}

	now := s.clock.Now()
	partner := domain.Partner{
		ID:               s.genID.Generate(),
		CompanyName:      companyName,
		Category:         category,
		OfferDescription: strings.TrimSpace(req.OfferDescription),
		Department:       department,
		Image:            strings.TrimSpace(req.Image),
		SponsorID:        sponsor.ID,
		SponsorName:      sponsor.Name,
		Status:           domain.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, &partner); err != nil {
		return domain.Partner{}, err
	}

	if _, err := s.notifications.Append(ctx, notificationdomain.AppendRequest{
		Title:   "Demande Partenaire envoyée",
		Message: fmt.Sprintf("Votre commerce %q sera visible après validation par nos équipes.", companyName),
		Type:    notificationdomain.TypeInfo,
	}); err != nil {
		s.log.Warn("partner submission notification failed", zap.Error(err))
	}

	return partner, nil
}

func (s *Service) Moderate(ctx context.Context, req domain.ModerateRequest) (domain.Partner, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Partner{}, domain.ErrInvalidID
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != domain.StatusValidated && status != domain.StatusRejected {
		return domain.Partner{}, domain.ErrInvalidStatus
	}

	partner, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Partner{}, err
	}
	if partner == nil {
		return domain.Partner{}, domain.ErrNotFound
	}

	partner.Status = status
	partner.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, partner); err != nil {
		return domain.Partner{}, err
	}

	if status == domain.StatusValidated {
		if _, err := s.notifications.Append(ctx, notificationdomain.AppendRequest{
			Title:   "Nouveau Partenaire",
			Message: fmt.Sprintf("Découvrez %s dans la section Communauté.", partner.CompanyName),
			Type:    notificationdomain.TypeInfo,
		}); err != nil {
			s.log.Warn("partner validation notification failed", zap.Error(err))
		}
	}

	return *partner, nil
}

func (s *Service) listByStatus(ctx context.Context, status string) ([]domain.Partner, error) {
	items, err := s.repo.ListByStatus(ctx, s.db, status)
	if err != nil {
		return nil, err
	}
	partners := make([]domain.Partner, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		partners = append(partners, *item)
	}
	return partners, nil
}
