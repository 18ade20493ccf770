// Package server wires the HTTP surface: webhook ingestion, billing
// quotes, health and metrics.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kelasi/kelasi/internal/billing"
	"github.com/kelasi/kelasi/internal/config"
	ledgerdomain "github.com/kelasi/kelasi/internal/ledger/domain"
	"github.com/kelasi/kelasi/internal/observability"
	obsmiddleware "github.com/kelasi/kelasi/internal/observability/logger"
	obsmetrics "github.com/kelasi/kelasi/internal/observability/metrics"
	obstracing "github.com/kelasi/kelasi/internal/observability/tracing"
	paymentdomain "github.com/kelasi/kelasi/internal/payment/domain"
	"github.com/kelasi/kelasi/internal/ratelimit"
	schooldomain "github.com/kelasi/kelasi/internal/school/domain"
	"github.com/kelasi/kelasi/internal/usage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
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

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
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
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	log    *zap.Logger

	paymentSvc paymentdomain.Service
	schoolRepo schooldomain.Repository
	ledgerRepo ledgerdomain.Repository
	usage      usage.Provider
	calculator *billing.Calculator
	limiter    *ratelimit.WebhookLimiter
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Cfg config.Config
	DB  *gorm.DB
	Log *zap.Logger

	PaymentSvc paymentdomain.Service
	SchoolRepo schooldomain.Repository
	LedgerRepo ledgerdomain.Repository
	Usage      usage.Provider
	Calculator *billing.Calculator
	Limiter    *ratelimit.WebhookLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		log:        p.Log.Named("http.server"),
		paymentSvc: p.PaymentSvc,
		schoolRepo: p.SchoolRepo,
		ledgerRepo: p.LedgerRepo,
		usage:      p.Usage,
		calculator: p.Calculator,
		limiter:    p.Limiter,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.POST("/webhooks/payments/:provider", s.HandlePaymentWebhook)

	api := s.engine.Group("/api/v1")
	api.GET("/schools/:school_id/billing/quote", s.HandleBillingQuote)
	api.GET("/schools/:school_id/ledger", s.HandleListLedger)
}
