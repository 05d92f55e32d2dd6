// Package server exposes the ingestion and analytics API over gin. File
// parsing stays with the upload collaborator: the ingest endpoint accepts
// already-split header and cell rows, never raw bytes.
package server

import (
	"context"
	"net/http"
	"time"

	analyticsdomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/analytics/domain"
	"github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/config"
	employeedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/employee/domain"
	usagedomain "github.com/PresidentofMexico/OpenAI-usage-metrics-sub001/internal/usage/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

type ServerParam struct {
	fx.In

	Engine       *gin.Engine
	Log          *zap.Logger
	UsageSvc     usagedomain.Service
	EmployeeSvc  employeedomain.Service
	AnalyticsSvc analyticsdomain.Service
}

type Server struct {
	engine *gin.Engine
	log    *zap.Logger

	usageSvc     usagedomain.Service
	employeeSvc  employeedomain.Service
	analyticsSvc analyticsdomain.Service
}

func NewServer(p ServerParam) *Server {
	s := &Server{
		engine: p.Engine,
		log:    p.Log.Named("http.server"),

		usageSvc:     p.UsageSvc,
		employeeSvc:  p.EmployeeSvc,
		analyticsSvc: p.AnalyticsSvc,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")
	v1.POST("/usage/files", s.IngestFile)
	v1.POST("/roster", s.ReplaceRoster)
	v1.POST("/roster/overrides", s.SetOverrides)
	v1.GET("/analytics/users", s.AggregatedUsers)
	v1.GET("/analytics/roi", s.ROI)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, cfg config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: s.engine,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(
		NewEngine,
		NewServer,
	),
	fx.Invoke(run),
)
