package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/clock"
	"github.com/freeenergie/parrainage/internal/notification/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("notification.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Append(ctx context.Context, req domain.AppendRequest) (domain.Notification, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Notification{}, domain.ErrInvalidTitle
	}

	kind := strings.ToUpper(strings.TrimSpace(req.Type))
	switch kind {
	case domain.TypePromo, domain.TypeInfo, domain.TypeBoost:
	case "":
		kind = domain.TypeInfo
	default:
		return domain.Notification{}, domain.ErrInvalidType
	}

	now := s.clock.Now()
	notification := domain.Notification{
		ID:        s.genID.Generate(),
		Title:     title,
		Message:   strings.TrimSpace(req.Message),
		Type:      kind,
		Read:      false,
		Date:      now.Truncate(24 * time.Hour),
		CreatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &notification); err != nil {
		return domain.Notification{}, err
	}
	return notification, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Notification, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	notifications := make([]domain.Notification, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		notifications = append(notifications, *item)
	}
	return notifications, nil
}

func (s *Service) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx, s.db)
}
