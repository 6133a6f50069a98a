package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/config"
	referraldomain "github.com/freeenergie/parrainage/internal/referral/domain"
	"github.com/freeenergie/parrainage/internal/reporting/domain"
	"github.com/freeenergie/parrainage/internal/rewards"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Referrals referraldomain.Repository
	Rewards   *config.RewardConfigHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	referrals referraldomain.Repository
	rewards   *config.RewardConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("reporting.service"),
		referrals: p.Referrals,
		rewards:   p.Rewards,
	}
}

func (s *Service) Overview(ctx context.Context) (domain.Overview, error) {
	all, err := s.referrals.ListAll(ctx, s.db)
	if err != nil {
		return domain.Overview{}, err
	}
	counts, err := s.referrals.CountByStatus(ctx, s.db, 0)
	if err != nil {
		return domain.Overview{}, err
	}

	pipeline := make(map[string]int64, len(counts))
	var totalLeads int64
	for status, count := range counts {
		pipeline[string(status)] = count
		totalLeads += count
	}

	overview := domain.Overview{
		PipelineCounts: pipeline,
		TotalLeads:     totalLeads,
		TotalInstalls:  counts[referraldomain.StatusInstalled],
		Performance:    s.performance(all),
	}
	return overview, nil
}

type sponsorGroup struct {
	name         string
	totalLeads   int64
	installDates []time.Time
}

// performance groups by sponsor ID, never by display name. Two sponsors who
// happen to share a name keep separate earnings.
func (s *Service) performance(all []*referraldomain.Referral) []domain.SponsorPerformance {
	cfg := s.rewards.Get()

	groups := make(map[snowflake.ID]*sponsorGroup)
	order := make([]snowflake.ID, 0)
	for _, referral := range all {
		if referral == nil {
			continue
		}
		group, ok := groups[referral.SponsorID]
		if !ok {
			group = &sponsorGroup{name: referral.SponsorName}
			groups[referral.SponsorID] = group
			order = append(order, referral.SponsorID)
		}
		group.totalLeads++
		if referral.Status == referraldomain.StatusInstalled {
			group.installDates = append(group.installDates, referral.DateCreated)
		}
	}

	rows := make([]domain.SponsorPerformance, 0, len(groups))
	for _, id := range order {
		group := groups[id]
		earnings := rewards.CashEarnings(cfg, group.installDates)
		rows = append(rows, domain.SponsorPerformance{
			SponsorID:     id.String(),
			SponsorName:   group.name,
			TotalLeads:    group.totalLeads,
			Installs:      len(group.installDates),
			EarningsEuros: earnings,
			DAS2:          earnings > cfg.DAS2EurosCeiling,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EarningsEuros > rows[j].EarningsEuros
	})
	return rows
}

func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	all, err := s.referrals.ListAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Nom", "Sponsor", "Status", "Date", "Contact"}); err != nil {
		return nil, err
	}
	for _, referral := range all {
		if referral == nil {
			continue
		}
		if err := w.Write([]string{
			referral.Name,
			referral.SponsorName,
			referral.Status.Label(),
			referral.DateCreated.Format("2006-01-02"),
			referral.Phone,
		}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
