package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/auth/domain"
	"github.com/freeenergie/parrainage/internal/clock"
	"github.com/freeenergie/parrainage/internal/config"
	"github.com/freeenergie/parrainage/internal/seed"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	sponsorrepository "github.com/freeenergie/parrainage/internal/sponsor/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type authFixture struct {
	db           *gorm.DB
	svc          domain.Service
	sponsorID    snowflake.ID
	supervisorID snowflake.ID
}

func setupAuthService(t *testing.T, cfg config.Config) *authFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, seed.AutoMigrate(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	sponsors := sponsorrepository.Provide()
	now := time.Now().UTC()

	sponsorID := node.Generate()
	require.NoError(t, sponsors.Insert(context.Background(), db, &sponsordomain.Sponsor{
		ID:        sponsorID,
		Name:      "Marc Dupont",
		Email:     "marc.dupont@free-energie.app",
		Role:      sponsordomain.RoleSponsor,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	supervisorID := node.Generate()
	require.NoError(t, sponsors.Insert(context.Background(), db, &sponsordomain.Sponsor{
		ID:        supervisorID,
		Name:      "Superviseur Free Energie",
		Email:     "superviseur@free-energie.app",
		Role:      sponsordomain.RoleSupervisor,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	svc := New(Params{
		Config:   cfg,
		DB:       db,
		Log:      zap.NewNop(),
		Clock:    clock.NewFakeClock(now),
		Sponsors: sponsors,
	})

	return &authFixture{db: db, svc: svc, sponsorID: sponsorID, supervisorID: supervisorID}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	f := setupAuthService(t, config.Config{})
	ctx := context.Background()

	session, err := f.svc.Login(ctx, domain.LoginRequest{Email: "marc.dupont@free-energie.app"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, f.sponsorID, session.Sponsor.ID)

	identity, err := f.svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, f.sponsorID, identity.SponsorID)
	assert.Equal(t, sponsordomain.RoleSponsor, identity.Role)
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	f := setupAuthService(t, config.Config{})

	session, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "Marc.Dupont@Free-Energie.app"})
	require.NoError(t, err)
	assert.Equal(t, f.sponsorID, session.Sponsor.ID)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := setupAuthService(t, config.Config{})

	_, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "nobody@free-energie.app"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), domain.LoginRequest{Email: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSupervisorLoginDevPIN(t *testing.T) {
	f := setupAuthService(t, config.Config{})
	ctx := context.Background()

	session, err := f.svc.SupervisorLogin(ctx, domain.SupervisorLoginRequest{PIN: "4774"})
	require.NoError(t, err)
	assert.Equal(t, f.supervisorID, session.Sponsor.ID)

	identity, err := f.svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, sponsordomain.RoleSupervisor, identity.Role)

	_, err = f.svc.SupervisorLogin(ctx, domain.SupervisorLoginRequest{PIN: "0000"})
	assert.ErrorIs(t, err, domain.ErrInvalidPIN)
}

func TestSupervisorLoginHashedPIN(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("9182"), bcrypt.MinCost)
	require.NoError(t, err)

	f := setupAuthService(t, config.Config{SupervisorPINHash: string(hash)})
	ctx := context.Background()

	_, err = f.svc.SupervisorLogin(ctx, domain.SupervisorLoginRequest{PIN: "9182"})
	require.NoError(t, err)

	// The dev PIN stops working once a hash is configured.
	_, err = f.svc.SupervisorLogin(ctx, domain.SupervisorLoginRequest{PIN: "4774"})
	assert.ErrorIs(t, err, domain.ErrInvalidPIN)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	f := setupAuthService(t, config.Config{AuthJWTSecret: "first-secret"})
	other := New(Params{
		Config:   config.Config{AuthJWTSecret: "second-secret"},
		DB:       f.db,
		Log:      zap.NewNop(),
		Clock:    clock.NewFakeClock(time.Now().UTC()),
		Sponsors: sponsorrepository.Provide(),
	})

	session, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "marc.dupont@free-energie.app"})
	require.NoError(t, err)

	_, err = other.Verify(session.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = f.svc.Verify("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
