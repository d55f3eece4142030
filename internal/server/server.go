package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/metricdeck/insights/internal/config"
	obsmetrics "github.com/metricdeck/insights/internal/observability/metrics"
	"github.com/metricdeck/insights/internal/seats"
	seatsdomain "github.com/metricdeck/insights/internal/seats/domain"
	"github.com/metricdeck/insights/internal/usage"
	usagedomain "github.com/metricdeck/insights/internal/usage/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	usage.Module,
	seats.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics, gatherer prometheus.Gatherer) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-Request-Id"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	log      *zap.Logger
	usagesvc usagedomain.Service
	seatsvc  seatsdomain.Service
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	Log      *zap.Logger
	Usagesvc usagedomain.Service
	Seatsvc  seatsdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:   p.Gin,
		cfg:      p.Cfg,
		log:      p.Log.Named("http.server"),
		usagesvc: p.Usagesvc,
		seatsvc:  p.Seatsvc,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

// RegisterAPIRoutes mounts the report endpoints under /v1.
func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/usage/reports", s.UsageReport)
	v1.POST("/usage/metrics", s.UsageMetric)

	v1.POST("/seats/reports", s.SeatReport)
	v1.POST("/seats/export", s.SeatExport)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
