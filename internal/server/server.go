package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/carrierdesk/carrierdesk/internal/carrier"
	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	"github.com/carrierdesk/carrierdesk/internal/config"
	"github.com/carrierdesk/carrierdesk/internal/crmpush"
	crmpushdomain "github.com/carrierdesk/carrierdesk/internal/crmpush/domain"
	"github.com/carrierdesk/carrierdesk/internal/fieldmapping"
	fieldmappingdomain "github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	"github.com/carrierdesk/carrierdesk/internal/ingest"
	ingestdomain "github.com/carrierdesk/carrierdesk/internal/ingest/domain"
	"github.com/carrierdesk/carrierdesk/internal/membership"
	membershipdomain "github.com/carrierdesk/carrierdesk/internal/membership/domain"
	"github.com/carrierdesk/carrierdesk/internal/observability"
	obslogger "github.com/carrierdesk/carrierdesk/internal/observability/logger"
	obsmetrics "github.com/carrierdesk/carrierdesk/internal/observability/metrics"
	"github.com/carrierdesk/carrierdesk/internal/providers"
	"github.com/carrierdesk/carrierdesk/internal/subscription"
	subscriptiondomain "github.com/carrierdesk/carrierdesk/internal/subscription/domain"
	"github.com/carrierdesk/carrierdesk/internal/synchistory"
	historydomain "github.com/carrierdesk/carrierdesk/internal/synchistory/domain"
	"github.com/carrierdesk/carrierdesk/internal/syncstatus"
	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	observability.Module,
	providers.Module,
	carrier.Module,
	syncstatus.Module,
	synchistory.Module,
	fieldmapping.Module,
	subscription.Module,
	membership.Module,
	ingest.Module,
	crmpush.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
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
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	carrierSvc      carrierdomain.Service
	statusSvc       syncdomain.Service
	historySvc      historydomain.Service
	mappingSvc      fieldmappingdomain.Service
	subscriptionSvc subscriptiondomain.Service
	membershipSvc   membershipdomain.Service
	ingestSvc       ingestdomain.Service
	pushSvc         crmpushdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	CarrierSvc      carrierdomain.Service
	StatusSvc       syncdomain.Service
	HistorySvc      historydomain.Service
	MappingSvc      fieldmappingdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	MembershipSvc   membershipdomain.Service
	IngestSvc       ingestdomain.Service
	PushSvc         crmpushdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		carrierSvc:      p.CarrierSvc,
		statusSvc:       p.StatusSvc,
		historySvc:      p.HistorySvc,
		mappingSvc:      p.MappingSvc,
		subscriptionSvc: p.SubscriptionSvc,
		membershipSvc:   p.MembershipSvc,
		ingestSvc:       p.IngestSvc,
		pushSvc:         p.PushSvc,
	}

	svc.registerAPIRoutes()
	svc.registerWebhookRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(IdentityMiddleware())

	api.POST("/carriers/ingest", s.IngestCarriers)
	api.POST("/carriers/ingest/document", s.IngestDocument)
	api.GET("/carriers", s.ListCarriers)
	api.GET("/carriers/:usdot", s.GetCarrier)

	api.GET("/sync/status", s.ListSyncStatuses)
	api.GET("/sync/status/:usdot", s.GetSyncStatus)
	api.DELETE("/sync/status/:usdot", s.DeleteSyncStatus)
	api.POST("/sync/push", s.PushToCRM)
	api.GET("/sync/history", s.ListSyncHistory)
	api.GET("/sync/history/:usdot", s.GetCarrierSyncHistory)
	api.GET("/sync/summary", s.GetSyncSummary)

	api.GET("/field-mappings", s.ListFieldMappings)
	api.PUT("/field-mappings", s.SaveFieldMapping)
	api.DELETE("/field-mappings/:field", s.DeleteFieldMapping)
	api.POST("/field-mappings/reset", s.ResetFieldMappings)

	api.GET("/billing/subscription", s.GetSubscription)
	api.POST("/billing/subscribe", s.ManagerRequired(), s.Subscribe)
	api.POST("/billing/cancel", s.ManagerRequired(), s.CancelSubscription)
	api.GET("/billing/usage", s.GetUsage)
}

// Webhook callers authenticate with a shared secret, not user identity.
func (s *Server) registerWebhookRoutes() {
	s.engine.POST("/api/billing/webhook", s.BillingWebhook)
}
