package api

import (
	"context"
	"errors"
	"time"

	groceryHandler "meal-planner/internal/api/handlers/grocery"
	"meal-planner/internal/api/handlers/health"
	"meal-planner/internal/api/middleware"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (2MB)
	maxBodySize = 2 << 20
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Grocery groceryHandler.Service
	Store   health.Pinger
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Grocery == nil {
		return nil, errors.New("grocery service is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", middleware.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(requestTimeout(timeoutDuration))

	// 健康檢查與監控
	healthHandler := health.NewHandler(cfg.App.Version, health.AIStatus{
		Configured:   cfg.OpenRouter.APIKey != "",
		Model:        cfg.OpenRouter.Model,
		CacheEnabled: cfg.Cache.Enabled,
		CacheBackend: cfg.Cache.Backend,
	}, deps.Store)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	groceryGroup := api.Group("/grocery")
	groceryGroup.Use(middleware.RequireUser())
	groceryGroup.Use(middleware.Deduplication(cfg.DedupWindow))
	groceryHandler.NewHandler(deps.Grocery, cfg.Grocery.DefaultStore).Register(groceryGroup)

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Bool("ai_configured", cfg.OpenRouter.APIKey != ""),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

// requestTimeout 為每個請求設定逾時
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			if !c.Writer.Written() {
				common.RespondError(c, common.ErrRequestTimeout.Wrap(ctx.Err()))
			}
		}
	}
}
