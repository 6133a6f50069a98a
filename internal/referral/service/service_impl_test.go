package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/clock"
	notificationdomain "github.com/freeenergie/parrainage/internal/notification/domain"
	notificationrepository "github.com/freeenergie/parrainage/internal/notification/repository"
	notificationservice "github.com/freeenergie/parrainage/internal/notification/service"
	"github.com/freeenergie/parrainage/internal/referral/domain"
	"github.com/freeenergie/parrainage/internal/referral/repository"
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

type referralFixture struct {
	db        *gorm.DB
	svc       domain.Service
	sponsors  sponsordomain.Repository
	clock     *clock.FakeClock
	sponsorID snowflake.ID
	ctx       context.Context
}

func setupReferralService(t *testing.T) *referralFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, seed.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()

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

	notifications := notificationservice.New(notificationservice.Params{
		DB:    db,
		Log:   log,
		Clock: fake,
		GenID: node,
		Repo:  notificationrepository.Provide(),
	})

	svc := New(Params{
		DB:            db,
		Log:           log,
		Clock:         fake,
		GenID:         node,
		Repo:          repository.Provide(),
		Sponsors:      sponsors,
		Notifications: notifications,
	})

	ctx := sponsorctx.WithIdentity(context.Background(), sponsorctx.Identity{
		SponsorID: sponsorID,
		Role:      sponsordomain.RoleSponsor,
	})

	return &referralFixture{
		db:        db,
		svc:       svc,
		sponsors:  sponsors,
		clock:     fake,
		sponsorID: sponsorID,
		ctx:       ctx,
	}
}

func TestCreateRequiresBothEligibilityFlags(t *testing.T) {
	f := setupReferralService(t)

	cases := []struct {
		name            string
		isHomeowner     bool
		houseOver2Years bool
	}{
		{"tenant", false, true},
		{"recent build", true, false},
		{"neither", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(f.ctx, domain.CreateReferralRequest{
				Name:            "Julie Martin",
				Phone:           "0612345678",
				IsHomeowner:     tc.isHomeowner,
				HouseOver2Years: tc.houseOver2Years,
			})
			assert.ErrorIs(t, err, domain.ErrNotEligible)
		})
	}
}

func TestCreateStampsSponsorAndDate(t *testing.T) {
	f := setupReferralService(t)

	created, err := f.svc.Create(f.ctx, domain.CreateReferralRequest{
		Name:            "  Julie Martin  ",
		Phone:           "0612345678",
		Email:           "julie@example.com",
		IsHomeowner:     true,
		HouseOver2Years: true,
	})
	require.NoError(t, err)

	assert.Equal(t, f.sponsorID, created.SponsorID)
	assert.Equal(t, "Marc Dupont", created.SponsorName)
	assert.Equal(t, "Julie Martin", created.Name)
	assert.Equal(t, domain.StatusNew, created.Status)
	assert.Equal(t, f.clock.Now().Truncate(24*time.Hour), created.DateCreated)
	assert.False(t, created.TokensAwarded)
}

func TestCreateRejectsMissingContact(t *testing.T) {
	f := setupReferralService(t)

	_, err := f.svc.Create(f.ctx, domain.CreateReferralRequest{
		Phone: "0612345678", IsHomeowner: true, HouseOver2Years: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = f.svc.Create(f.ctx, domain.CreateReferralRequest{
		Name: "Julie Martin", IsHomeowner: true, HouseOver2Years: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
}

func TestCreateUnauthenticated(t *testing.T) {
	f := setupReferralService(t)

	_, err := f.svc.Create(context.Background(), domain.CreateReferralRequest{
		Name: "Julie Martin", Phone: "0612345678",
		IsHomeowner: true, HouseOver2Years: true,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreateBatchGrantsLaunchBonus(t *testing.T) {
	f := setupReferralService(t)

	created, err := f.svc.CreateBatch(f.ctx, domain.BatchCreateRequest{
		Contacts: []domain.BatchContact{
			{Name: "Paul Durand", Phone: "0611111111"},
			{Name: "", Phone: "0622222222"},
			{Name: "Claire Petit", Phone: "0633333333"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, referral := range created {
		assert.Equal(t, domain.StatusNew, referral.Status)
		assert.True(t, referral.IsHomeowner)
		assert.True(t, referral.HouseOver2Years)
	}

	// One bonus token per batch, regardless of batch size.
	sponsor, err := f.sponsors.FindByID(f.ctx, f.db, f.sponsorID)
	require.NoError(t, err)
	require.NotNil(t, sponsor)
	assert.Equal(t, int64(1), sponsor.BonusTokens)

	var notifications []notificationdomain.Notification
	require.NoError(t, f.db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Bonus de Lancement !", notifications[0].Title)
	assert.Equal(t, notificationdomain.TypeBoost, notifications[0].Type)
}

func TestCreateBatchAllBlankContacts(t *testing.T) {
	f := setupReferralService(t)

	_, err := f.svc.CreateBatch(f.ctx, domain.BatchCreateRequest{
		Contacts: []domain.BatchContact{
			{Name: "  ", Phone: "0611111111"},
			{Name: "Paul Durand", Phone: ""},
		},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)

	sponsor, err := f.sponsors.FindByID(f.ctx, f.db, f.sponsorID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sponsor.BonusTokens)
}

func TestListScopedToSponsor(t *testing.T) {
	f := setupReferralService(t)

	_, err := f.svc.Create(f.ctx, domain.CreateReferralRequest{
		Name: "Julie Martin", Phone: "0612345678",
		IsHomeowner: true, HouseOver2Years: true,
	})
	require.NoError(t, err)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	otherID := node.Generate()
	require.NoError(t, f.sponsors.Insert(f.ctx, f.db, &sponsordomain.Sponsor{
		ID:       otherID,
		Name:     "Sophie Bernard",
		Email:    "sophie.bernard@free-energie.app",
		Role:     sponsordomain.RoleSponsor,
		Metadata: datatypes.JSONMap{},
	}))
	otherCtx := sponsorctx.WithIdentity(context.Background(), sponsorctx.Identity{
		SponsorID: otherID,
		Role:      sponsordomain.RoleSponsor,
	})
	_, err = f.svc.Create(otherCtx, domain.CreateReferralRequest{
		Name: "Luc Moreau", Phone: "0644444444",
		IsHomeowner: true, HouseOver2Years: true,
	})
	require.NoError(t, err)

	mine, err := f.svc.List(f.ctx, domain.ListReferralRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Referrals, 1)
	assert.Equal(t, "Julie Martin", mine.Referrals[0].Name)

	all, err := f.svc.ListAll(f.ctx, domain.ListReferralRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Referrals, 2)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	f := setupReferralService(t)

	_, err := f.svc.List(f.ctx, domain.ListReferralRequest{Status: "SIGNED"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateStatus(t *testing.T) {
	f := setupReferralService(t)

	created, err := f.svc.Create(f.ctx, domain.CreateReferralRequest{
		Name: "Julie Martin", Phone: "0612345678",
		IsHomeowner: true, HouseOver2Years: true,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(f.ctx, domain.UpdateStatusRequest{
		ID:     created.ID.String(),
		Status: "installed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInstalled, updated.Status)

	_, err = f.svc.UpdateStatus(f.ctx, domain.UpdateStatusRequest{
		ID:     created.ID.String(),
		Status: "SIGNED",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(f.ctx, domain.UpdateStatusRequest{
		ID:     "not-a-snowflake",
		Status: "QUOTE",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
