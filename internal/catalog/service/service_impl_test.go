package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/catalog/domain"
	"github.com/freeenergie/parrainage/internal/catalog/repository"
	"github.com/freeenergie/parrainage/internal/clock"
	"github.com/freeenergie/parrainage/internal/config"
	referraldomain "github.com/freeenergie/parrainage/internal/referral/domain"
	referralrepository "github.com/freeenergie/parrainage/internal/referral/repository"
	"github.com/freeenergie/parrainage/internal/seed"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	sponsorrepository "github.com/freeenergie/parrainage/internal/sponsor/repository"
	"github.com/freeenergie/parrainage/internal/sponsorctx"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type catalogFixture struct {
	db        *gorm.DB
	svc       domain.Service
	node      *snowflake.Node
	clock     *clock.FakeClock
	sponsorID snowflake.ID
	ctx       context.Context
}

func setupCatalogService(t *testing.T) *catalogFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, seed.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	sponsors := sponsorrepository.Provide()
	sponsorID := node.Generate()
	require.NoError(t, sponsors.Insert(context.Background(), db, &sponsordomain.Sponsor{
		ID:        sponsorID,
		Name:      "Marc Dupont",
		Email:     "marc.dupont@free-energie.app",
		Role:      sponsordomain.RoleSponsor,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: fake.Now(),
		UpdatedAt: fake.Now(),
	}))

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		Clock:     fake,
		GenID:     node,
		Repo:      repository.Provide(),
		Sponsors:  sponsors,
		Referrals: referralrepository.Provide(),
		Rewards:   config.NewStaticRewardConfigHolder(config.DefaultRewardConfig()),
	})

	ctx := sponsorctx.WithIdentity(context.Background(), sponsorctx.Identity{
		SponsorID: sponsorID,
		Role:      sponsordomain.RoleSponsor,
	})

	return &catalogFixture{
		db:        db,
		svc:       svc,
		node:      node,
		clock:     fake,
		sponsorID: sponsorID,
		ctx:       ctx,
	}
}

func (f *catalogFixture) seedInstalls(t *testing.T, n int) {
	t.Helper()
	repo := referralrepository.Provide()
	base := f.clock.Now().Truncate(24 * time.Hour)
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Insert(f.ctx, f.db, &referraldomain.Referral{
			ID:              f.node.Generate(),
			SponsorID:       f.sponsorID,
			SponsorName:     "Marc Dupont",
			Name:            fmt.Sprintf("Filleul %d", i+1),
			Phone:           "0600000000",
			Status:          referraldomain.StatusInstalled,
			DateCreated:     base.AddDate(0, 0, i),
			IsHomeowner:     true,
			HouseOver2Years: true,
			CreatedAt:       f.clock.Now(),
			UpdatedAt:       f.clock.Now(),
		}))
	}
}

func TestCreateItemSlugsCode(t *testing.T) {
	f := setupCatalogService(t)

	item, err := f.svc.Create(f.ctx, domain.CreateItemRequest{
		Title:     "Chèque Cadeau Multi-Enseignes",
		TokenCost: 1,
		Category:  domain.CategoryGiftCard,
	})
	require.NoError(t, err)
	assert.Equal(t, "cheque-cadeau-multi-enseignes", item.Code)
}

func TestCreateItemValidation(t *testing.T) {
	f := setupCatalogService(t)

	_, err := f.svc.Create(f.ctx, domain.CreateItemRequest{TokenCost: 1, Category: domain.CategoryGiftCard})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = f.svc.Create(f.ctx, domain.CreateItemRequest{Title: "Cadeau", TokenCost: 0, Category: domain.CategoryGiftCard})
	assert.ErrorIs(t, err, domain.ErrInvalidTokenCost)

	_, err = f.svc.Create(f.ctx, domain.CreateItemRequest{Title: "Cadeau", TokenCost: 1, Category: "VOYAGE"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestUpdateItemPartial(t *testing.T) {
	f := setupCatalogService(t)

	item, err := f.svc.Create(f.ctx, domain.CreateItemRequest{
		Title:     "Entretien Annuel Offert",
		TokenCost: 1,
		Category:  domain.CategoryMaintenance,
	})
	require.NoError(t, err)

	cost := int64(2)
	updated, err := f.svc.Update(f.ctx, domain.UpdateItemRequest{
		ID:        item.ID.String(),
		TokenCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.TokenCost)
	assert.Equal(t, item.Title, updated.Title)
	assert.Equal(t, item.Code, updated.Code)

	bad := int64(0)
	_, err = f.svc.Update(f.ctx, domain.UpdateItemRequest{
		ID:        item.ID.String(),
		TokenCost: &bad,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTokenCost)
}

func TestRedeemDeniedOnShortBalance(t *testing.T) {
	f := setupCatalogService(t)

	item, err := f.svc.Create(f.ctx, domain.CreateItemRequest{
		Title:     "Cache Climatisation Alu",
		TokenCost: 2,
		Category:  domain.CategoryAccessory,
	})
	require.NoError(t, err)

	f.seedInstalls(t, 1)

	_, err = f.svc.Redeem(f.ctx, domain.RedeemRequest{ItemID: item.ID.String()})
	assert.ErrorIs(t, err, domain.ErrInsufficientTokens)
}

func TestRedeemGatesWithoutDeducting(t *testing.T) {
	f := setupCatalogService(t)

	item, err := f.svc.Create(f.ctx, domain.CreateItemRequest{
		Title:     "Cache Climatisation Alu",
		TokenCost: 2,
		Category:  domain.CategoryAccessory,
	})
	require.NoError(t, err)

	f.seedInstalls(t, 2)

	first, err := f.svc.Redeem(f.ctx, domain.RedeemRequest{ItemID: item.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.Balance)
	assert.Contains(t, first.Message, item.Title)

	// No deduction: the same balance gates a second redemption.
	second, err := f.svc.Redeem(f.ctx, domain.RedeemRequest{ItemID: item.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Balance)
}

func TestRedeemCountsBonusTokens(t *testing.T) {
	f := setupCatalogService(t)

	item, err := f.svc.Create(f.ctx, domain.CreateItemRequest{
		Title:     "Entretien Annuel Offert",
		TokenCost: 1,
		Category:  domain.CategoryMaintenance,
	})
	require.NoError(t, err)

	_, err = f.svc.Redeem(f.ctx, domain.RedeemRequest{ItemID: item.ID.String()})
	assert.ErrorIs(t, err, domain.ErrInsufficientTokens)

	require.NoError(t, f.db.Model(&sponsordomain.Sponsor{}).
		Where("id = ?", f.sponsorID).
		Update("bonus_tokens", 1).Error)

	result, err := f.svc.Redeem(f.ctx, domain.RedeemRequest{ItemID: item.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Balance)
}

func TestRedeemUnknownItem(t *testing.T) {
	f := setupCatalogService(t)

	_, err := f.svc.Redeem(f.ctx, domain.RedeemRequest{ItemID: f.node.Generate().String()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Redeem(f.ctx, domain.RedeemRequest{ItemID: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestListResolvesEuroValue(t *testing.T) {
	f := setupCatalogService(t)

	_, err := f.svc.Create(f.ctx, domain.CreateItemRequest{
		Title:     "Chèque Cadeau",
		TokenCost: 1,
		Category:  domain.CategoryGiftCard,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(f.ctx, domain.CreateItemRequest{
		Title:     "Week-end Luxe pour 2",
		TokenCost: 7,
		EuroValue: 1000,
		Category:  domain.CategoryLeisure,
	})
	require.NoError(t, err)

	views, err := f.svc.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byCode := make(map[string]domain.ItemView, len(views))
	for _, view := range views {
		byCode[view.Code] = view
	}
	// No explicit euro value: token cost times the configured token value.
	assert.Equal(t, int64(150), byCode["cheque-cadeau"].EuroValueResolved)
	// Explicit euro value wins over the derived one.
	assert.Equal(t, int64(1000), byCode["week-end-luxe-pour-2"].EuroValueResolved)
}
