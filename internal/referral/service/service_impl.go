package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/clock"
	notificationdomain "github.com/freeenergie/parrainage/internal/notification/domain"
	obsmetrics "github.com/freeenergie/parrainage/internal/observability/metrics"
	"github.com/freeenergie/parrainage/internal/referral/domain"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/freeenergie/parrainage/internal/sponsorctx"
	"github.com/freeenergie/parrainage/pkg/db/pagination"
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
	Metrics       *obsmetrics.Metrics
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	clock         clock.Clock
	genID         *snowflake.Node
	repo          domain.Repository
	sponsors      sponsordomain.Repository
	notifications notificationdomain.Service
	metrics       *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("referral.service"),
		clock:         p.Clock,
		genID:         p.GenID,
		repo:          p.Repo,
		sponsors:      p.Sponsors,
		notifications: p.Notifications,
		metrics:       p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateReferralRequest) (domain.Referral, error) {
	sponsor, err := s.currentSponsor(ctx)
	if err != nil {
		return domain.Referral{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Referral{}, domain.ErrInvalidName
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return domain.Referral{}, domain.ErrInvalidPhone
	}
	if !req.IsHomeowner || !req.HouseOver2Years {
		return domain.Referral{}, domain.ErrNotEligible
	}

	now := s.clock.Now()
	referral := domain.Referral{
		ID:              s.genID.Generate(),
		SponsorID:       sponsor.ID,
		SponsorName:     sponsor.Name,
		Name:            name,
		Phone:           phone,
		Email:           strings.TrimSpace(req.Email),
		Address:         strings.TrimSpace(req.Address),
		Status:          domain.StatusNew,
		DateCreated:     now.Truncate(24 * time.Hour),
		TokensAwarded:   false,
		IsHomeowner:     req.IsHomeowner,
		HouseOver2Years: req.HouseOver2Years,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &referral); err != nil {
		return domain.Referral{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordReferralCreated(ctx, "single")
	}
	s.log.Info("referral created",
		zap.String("referral_id", referral.ID.String()),
		zap.String("sponsor_id", sponsor.ID.String()),
	)
	return referral, nil
}

func (s *Service) CreateBatch(ctx context.Context, req domain.BatchCreateRequest) ([]domain.Referral, error) {
	sponsor, err := s.currentSponsor(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	referrals := make([]*domain.Referral, 0, len(req.Contacts))
	for _, contact := range req.Contacts {
		name := strings.TrimSpace(contact.Name)
		phone := strings.TrimSpace(contact.Phone)
		if name == "" || phone == "" {
			continue
		}
		referrals = append(referrals, &domain.Referral{
			ID:          s.genID.Generate(),
			SponsorID:   sponsor.ID,
			SponsorName: sponsor.Name,
			Name:        name,
			Phone:       phone,
			Status:      domain.StatusNew,
			DateCreated: now.Truncate(24 * time.Hour),
			// Batch contacts are declared eligible by the launch-offer form.
			IsHomeowner:     true,
			HouseOver2Years: true,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	if len(referrals) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	if err := s.repo.InsertBatch(ctx, s.db, referrals); err != nil {
		return nil, err
	}

	// Launch offer: the batch grants one bonus token, regardless of size.
	sponsor.BonusTokens++
	sponsor.UpdatedAt = now
	if err := s.sponsors.Update(ctx, s.db, &sponsor); err != nil {
		return nil, err
	}

	if _, err := s.notifications.Append(ctx, notificationdomain.AppendRequest{
		Title:   "Bonus de Lancement !",
		Message: "Félicitations ! Vous avez gagné 150€ de crédit immédiatement.",
		Type:    notificationdomain.TypeBoost,
	}); err != nil {
		s.log.Warn("launch bonus notification failed", zap.Error(err))
	}

	if s.metrics != nil {
		for range referrals {
			s.metrics.RecordReferralCreated(ctx, "batch")
		}
	}

	created := make([]domain.Referral, 0, len(referrals))
	for _, item := range referrals {
		created = append(created, *item)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, req domain.ListReferralRequest) (domain.ListReferralResponse, error) {
	sponsorID, ok := sponsorctx.SponsorIDFromContext(ctx)
	if !ok {
		return domain.ListReferralResponse{}, domain.ErrUnauthenticated
	}
	return s.list(ctx, sponsorID, req)
}

func (s *Service) ListAll(ctx context.Context, req domain.ListReferralRequest) (domain.ListReferralResponse, error) {
	return s.list(ctx, 0, req)
}

func (s *Service) list(ctx context.Context, sponsorID snowflake.ID, req domain.ListReferralRequest) (domain.ListReferralResponse, error) {
	filter := domain.ListFilter{
		SponsorID: sponsorID,
		Search:    strings.TrimSpace(req.Search),
	}
	if status := strings.ToUpper(strings.TrimSpace(req.Status)); status != "" {
		parsed := domain.Status(status)
		if !parsed.Valid() {
			return domain.ListReferralResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = parsed
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListReferralResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(referral *domain.Referral) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        referral.ID.String(),
			CreatedAt: referral.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	referrals := make([]domain.Referral, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		referrals = append(referrals, *item)
	}

	resp := domain.ListReferralResponse{Referrals: referrals}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req domain.UpdateStatusRequest) (domain.Referral, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Referral{}, domain.ErrInvalidID
	}

	status := domain.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return domain.Referral{}, domain.ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, s.db, id, status, s.clock.Now()); err != nil {
		return domain.Referral{}, err
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Referral{}, err
	}
	if updated == nil {
		return domain.Referral{}, domain.ErrNotFound
	}

	if s.metrics != nil {
		s.metrics.RecordStatusChange(ctx, string(status))
	}
	return *updated, nil
}

func (s *Service) currentSponsor(ctx context.Context) (sponsordomain.Sponsor, error) {
	id, ok := sponsorctx.SponsorIDFromContext(ctx)
	if !ok {
		return sponsordomain.Sponsor{}, domain.ErrUnauthenticated
	}
	sponsor, err := s.sponsors.FindByID(ctx, s.db, id)
	if err != nil {
		return sponsordomain.Sponsor{}, err
	}
	if sponsor == nil {
		return sponsordomain.Sponsor{}, domain.ErrUnauthenticated
	}
	return *sponsor, nil
}
