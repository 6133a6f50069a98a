package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/config"
	referraldomain "github.com/freeenergie/parrainage/internal/referral/domain"
	referralrepository "github.com/freeenergie/parrainage/internal/referral/repository"
	"github.com/freeenergie/parrainage/internal/reporting/domain"
	"github.com/freeenergie/parrainage/internal/seed"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type reportingFixture struct {
	db   *gorm.DB
	svc  domain.Service
	node *snowflake.Node
}

func setupReportingService(t *testing.T) *reportingFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, seed.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		Referrals: referralrepository.Provide(),
		Rewards:   config.NewStaticRewardConfigHolder(config.DefaultRewardConfig()),
	})

	return &reportingFixture{db: db, svc: svc, node: node}
}

func (f *reportingFixture) seedReferral(t *testing.T, sponsorID snowflake.ID, sponsorName, name string, status referraldomain.Status, day int) {
	t.Helper()
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
	require.NoError(t, f.db.Create(&referraldomain.Referral{
		ID:          f.node.Generate(),
		SponsorID:   sponsorID,
		SponsorName: sponsorName,
		Name:        name,
		Phone:       "0600000000",
		Status:      status,
		DateCreated: created,
		CreatedAt:   created,
		UpdatedAt:   created,
	}).Error)
}

func TestOverviewPipelineCounts(t *testing.T) {
	f := setupReportingService(t)
	sponsorID := f.node.Generate()

	f.seedReferral(t, sponsorID, "Marc Dupont", "Lead A", referraldomain.StatusNew, 0)
	f.seedReferral(t, sponsorID, "Marc Dupont", "Lead B", referraldomain.StatusQuote, 1)
	f.seedReferral(t, sponsorID, "Marc Dupont", "Lead C", referraldomain.StatusInstalled, 2)
	f.seedReferral(t, sponsorID, "Marc Dupont", "Lead D", referraldomain.StatusInstalled, 3)

	overview, err := f.svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), overview.TotalLeads)
	assert.Equal(t, int64(2), overview.TotalInstalls)
	assert.Equal(t, int64(1), overview.PipelineCounts["NEW"])
	assert.Equal(t, int64(1), overview.PipelineCounts["QUOTE"])
	assert.Equal(t, int64(2), overview.PipelineCounts["INSTALLED"])
}

func TestPerformanceGroupsBySponsorID(t *testing.T) {
	f := setupReportingService(t)

	// Two distinct sponsors sharing a display name stay separate.
	first := f.node.Generate()
	second := f.node.Generate()
	f.seedReferral(t, first, "Marc Dupont", "Lead A", referraldomain.StatusInstalled, 0)
	f.seedReferral(t, first, "Marc Dupont", "Lead B", referraldomain.StatusInstalled, 1)
	f.seedReferral(t, second, "Marc Dupont", "Lead C", referraldomain.StatusInstalled, 2)

	overview, err := f.svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview.Performance, 2)

	// Sorted by earnings, highest first.
	assert.Equal(t, first.String(), overview.Performance[0].SponsorID)
	assert.Equal(t, int64(300), overview.Performance[0].EarningsEuros)
	assert.Equal(t, 2, overview.Performance[0].Installs)
	assert.Equal(t, second.String(), overview.Performance[1].SponsorID)
	assert.Equal(t, int64(150), overview.Performance[1].EarningsEuros)
}

func TestPerformanceFlagsDAS2(t *testing.T) {
	f := setupReportingService(t)

	under := f.node.Generate()
	over := f.node.Generate()
	for i := 0; i < 3; i++ {
		f.seedReferral(t, under, "Sophie Bernard", fmt.Sprintf("Lead U%d", i), referraldomain.StatusInstalled, i)
	}
	for i := 0; i < 6; i++ {
		f.seedReferral(t, over, "Thomas Petit", fmt.Sprintf("Lead O%d", i), referraldomain.StatusInstalled, i)
	}

	overview, err := f.svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, overview.Performance, 2)

	// 6 installs earn 1600€ and cross the 1200€ declaration ceiling;
	// 3 installs earn 800€ and stay under it.
	assert.Equal(t, "Thomas Petit", overview.Performance[0].SponsorName)
	assert.Equal(t, int64(1600), overview.Performance[0].EarningsEuros)
	assert.True(t, overview.Performance[0].DAS2)
	assert.Equal(t, int64(800), overview.Performance[1].EarningsEuros)
	assert.False(t, overview.Performance[1].DAS2)
}

func TestExportCSV(t *testing.T) {
	f := setupReportingService(t)
	sponsorID := f.node.Generate()

	f.seedReferral(t, sponsorID, "Marc Dupont", "Martin, Julie", referraldomain.StatusInstalled, 0)
	f.seedReferral(t, sponsorID, "Marc Dupont", "Paul Durand", referraldomain.StatusNew, 1)

	out, err := f.svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Nom,Sponsor,Status,Date,Contact", lines[0])

	// Names containing commas are quoted; statuses export with their
	// French labels.
	assert.Contains(t, string(out), `"Martin, Julie"`)
	assert.Contains(t, string(out), "Installation terminée")
	assert.Contains(t, string(out), "Nouveau")
	assert.Contains(t, string(out), "2026-02-01")
}

func TestOverviewEmpty(t *testing.T) {
	f := setupReportingService(t)

	overview, err := f.svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, overview.TotalLeads)
	assert.Empty(t, overview.Performance)
}
