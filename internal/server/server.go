package server

import (
	"context"
	"net/http"
	"time"

	"github.com/freeenergie/parrainage/internal/auth"
	authdomain "github.com/freeenergie/parrainage/internal/auth/domain"
	"github.com/freeenergie/parrainage/internal/catalog"
	catalogdomain "github.com/freeenergie/parrainage/internal/catalog/domain"
	"github.com/freeenergie/parrainage/internal/clock"
	"github.com/freeenergie/parrainage/internal/config"
	"github.com/freeenergie/parrainage/internal/dashboard"
	dashboarddomain "github.com/freeenergie/parrainage/internal/dashboard/domain"
	"github.com/freeenergie/parrainage/internal/notification"
	notificationdomain "github.com/freeenergie/parrainage/internal/notification/domain"
	"github.com/freeenergie/parrainage/internal/observability"
	obslogger "github.com/freeenergie/parrainage/internal/observability/logger"
	obsmetrics "github.com/freeenergie/parrainage/internal/observability/metrics"
	obstracing "github.com/freeenergie/parrainage/internal/observability/tracing"
	"github.com/freeenergie/parrainage/internal/partner"
	partnerdomain "github.com/freeenergie/parrainage/internal/partner/domain"
	"github.com/freeenergie/parrainage/internal/providers"
	"github.com/freeenergie/parrainage/internal/providers/pitch"
	"github.com/freeenergie/parrainage/internal/providers/video"
	"github.com/freeenergie/parrainage/internal/ratelimit"
	"github.com/freeenergie/parrainage/internal/referral"
	referraldomain "github.com/freeenergie/parrainage/internal/referral/domain"
	"github.com/freeenergie/parrainage/internal/reporting"
	reportingdomain "github.com/freeenergie/parrainage/internal/reporting/domain"
	"github.com/freeenergie/parrainage/internal/sponsor"
	sponsordomain "github.com/freeenergie/parrainage/internal/sponsor/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	config.Module,
	clock.Module,
	fx.Provide(registerGin),
	auth.Module,
	sponsor.Module,
	referral.Module,
	catalog.Module,
	partner.Module,
	notification.Module,
	dashboard.Module,
	reporting.Module,
	providers.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	log             *zap.Logger
	rewards         *config.RewardConfigHolder
	authSvc         authdomain.Service
	sponsorSvc      sponsordomain.Service
	referralSvc     referraldomain.Service
	catalogSvc      catalogdomain.Service
	partnerSvc      partnerdomain.Service
	notificationSvc notificationdomain.Service
	dashboardSvc    dashboarddomain.Service
	reportingSvc    reportingdomain.Service
	pitchProvider   pitch.Provider
	videoProvider   video.Provider
	limiter         *ratelimit.TokenBucket
	metrics         *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Engine          *gin.Engine
	Log             *zap.Logger
	Rewards         *config.RewardConfigHolder
	AuthSvc         authdomain.Service
	SponsorSvc      sponsordomain.Service
	ReferralSvc     referraldomain.Service
	CatalogSvc      catalogdomain.Service
	PartnerSvc      partnerdomain.Service
	NotificationSvc notificationdomain.Service
	DashboardSvc    dashboarddomain.Service
	ReportingSvc    reportingdomain.Service
	PitchProvider   pitch.Provider
	VideoProvider   video.Provider
	Limiter         *ratelimit.TokenBucket `optional:"true"`
	Metrics         *obsmetrics.Metrics
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Engine,
		log:             p.Log.Named("http.server"),
		rewards:         p.Rewards,
		authSvc:         p.AuthSvc,
		sponsorSvc:      p.SponsorSvc,
		referralSvc:     p.ReferralSvc,
		catalogSvc:      p.CatalogSvc,
		partnerSvc:      p.PartnerSvc,
		notificationSvc: p.NotificationSvc,
		dashboardSvc:    p.DashboardSvc,
		reportingSvc:    p.ReportingSvc,
		pitchProvider:   p.PitchProvider,
		videoProvider:   p.VideoProvider,
		limiter:         p.Limiter,
		metrics:         p.Metrics,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	authGroup := s.engine.Group("/v1/auth")
	authGroup.POST("/login", s.Login)
	authGroup.POST("/supervisor", s.SupervisorLogin)

	v1 := s.engine.Group("/v1", s.AuthRequired())

	v1.GET("/me", s.Me)
	v1.PATCH("/me", s.UpdateProfile)
	v1.GET("/me/dashboard", s.GetDashboard)

	v1.POST("/referrals", s.RateLimit("referrals"), s.CreateReferral)
	v1.POST("/referrals/batch", s.RateLimit("referrals"), s.CreateReferralBatch)
	v1.GET("/referrals", s.ListReferrals)

	v1.GET("/catalog", s.ListCatalog)
	v1.POST("/catalog/:id/redeem", s.RedeemCatalogItem)

	v1.GET("/partners", s.ListPartners)
	v1.POST("/partners", s.CreatePartner)

	v1.GET("/notifications", s.ListNotifications)
	v1.POST("/notifications/read-all", s.MarkAllNotificationsRead)

	v1.POST("/simulator", s.Simulate)
	v1.POST("/pitch", s.RateLimit("generation"), s.GeneratePitch)
	v1.POST("/videos", s.RateLimit("generation"), s.GenerateVideo)

	supervisor := v1.Group("", s.RequireRole(sponsordomain.RoleSupervisor))

	supervisor.GET("/supervisor/overview", s.SupervisorOverview)
	supervisor.GET("/supervisor/leads", s.ListLeads)
	supervisor.PATCH("/supervisor/referrals/:id/status", s.UpdateReferralStatus)
	supervisor.GET("/supervisor/export", s.ExportLeads)
	supervisor.PATCH("/supervisor/sponsors/:id/network-installs", s.SetNetworkInstalls)
	supervisor.POST("/supervisor/sponsors/:id/bonus-tokens", s.GrantBonusTokens)

	supervisor.POST("/catalog", s.CreateCatalogItem)
	supervisor.PATCH("/catalog/:id", s.UpdateCatalogItem)
	supervisor.DELETE("/catalog/:id", s.DeleteCatalogItem)

	supervisor.GET("/partners/pending", s.ListPendingPartners)
	supervisor.POST("/partners/:id/status", s.ModeratePartner)
}
