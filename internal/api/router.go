package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	foodHandler "food-resolver/internal/api/handlers/food"
	"food-resolver/internal/api/handlers/health"
	"food-resolver/internal/api/middleware"
	"food-resolver/internal/core/catalog/supabase"
	"food-resolver/internal/core/estimate"
	"food-resolver/internal/core/resolver"
	"food-resolver/internal/infrastructure/cache"
	"food-resolver/internal/infrastructure/config"
	"food-resolver/internal/pkg/common"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，純文字查詢用不到更大
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheService *cache.Service) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 速率限制與請求去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("estimate_enabled", cfg.OpenRouter.Enabled),
		zap.String("catalog_table", cfg.Supabase.CatalogTable),
	)

	// 初始化目錄查找
	lookupClient := supabase.NewClient(cfg)
	if lookupClient == nil {
		common.LogError("Failed to initialize catalog lookup client")
		return nil, fmt.Errorf("failed to initialize catalog lookup client")
	}

	// 估算回退只在開啟時掛上
	var estimator resolver.Estimator
	if cfg.OpenRouter.Enabled {
		estimator = estimate.NewOpenRouterProvider(cfg)
	}

	// 初始化解析服務
	resolverSvc := resolver.NewService(lookupClient, estimator, cfg.Search.DefaultLimit, cfg.Search.DefaultLang)
	if resolverSvc == nil {
		common.LogError("Failed to initialize resolver service")
		return nil, fmt.Errorf("failed to initialize resolver service")
	}

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := foodHandler.NewHandler(resolverSvc, lookupClient, cacheService)

		foodGroup := api.Group("/food")
		{
			// 食物搜尋
			foodGroup.GET("/search", handler.HandleSearch)

			// 飲料修飾語調整
			foodGroup.POST("/beverage", handler.HandleBeverage)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("estimate_enabled", estimator != nil),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
