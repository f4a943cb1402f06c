package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mealmate-api/internal/api/handlers/health"
	mealplanHandler "mealmate-api/internal/api/handlers/mealplan"
	recipeHandler "mealmate-api/internal/api/handlers/recipe"
	shoppingHandler "mealmate-api/internal/api/handlers/shopping"
	storeHandler "mealmate-api/internal/api/handlers/store"
	"mealmate-api/internal/api/middleware"
	"mealmate-api/internal/core/grocerystore"
	mealplanService "mealmate-api/internal/core/mealplan"
	recipeService "mealmate-api/internal/core/recipe"
	shoppingService "mealmate-api/internal/core/shopping"
	"mealmate-api/internal/core/shopping/cache"
	"mealmate-api/internal/core/sms"
	"mealmate-api/internal/infrastructure/config"
	"mealmate-api/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, client *redis.Client, cacheManager *cache.Manager, dispatcher *sms.Dispatcher) (*gin.Engine, error) {
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
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 重複請求過濾
	router.Use(middleware.Deduplication(cfg))

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("sms_enabled", cfg.SMS.Enabled),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化餐點計畫服務
	mealplanSvc := mealplanService.NewService(client)
	if mealplanSvc == nil {
		common.LogError("Failed to initialize meal plan service")
		return nil, fmt.Errorf("failed to initialize meal plan service")
	}

	// 初始化定價策略
	var pricer shoppingService.PricingStrategy = shoppingService.NewRandomPricing(cfg.Shopping.PriceMin, cfg.Shopping.PriceMax)
	if cfg.Shopping.UseCatalog {
		pricer = shoppingService.NewCatalogPricing(client, pricer)
	}

	// 初始化購物清單服務
	shoppingSvc := shoppingService.NewService(cfg, mealplanSvc, pricer, cacheManager, client)
	if shoppingSvc == nil {
		common.LogError("Failed to initialize shopping list service")
		return nil, fmt.Errorf("failed to initialize shopping list service")
	}

	// 初始化食譜服務與商店管理
	recipeSvc := recipeService.NewService(client)
	storeManager := grocerystore.NewManager(client)

	common.LogInfo("Services initialized successfully",
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Bool("dispatcher_initialized", dispatcher != nil),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 創建新的請求上下文
		req := c.Request.WithContext(ctx)
		c.Request = req

		// 設置配置與共用資源
		c.Set("config", cfg)
		c.Set("redis_client", client)
		if dispatcher != nil {
			c.Set("sms_dispatcher", dispatcher)
		}
		common.LogDebug("Shared resources injected into context",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)

		// 處理請求
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
		recipeHandlerInstance := recipeHandler.NewHandler(recipeSvc)
		mealplanHandlerInstance := mealplanHandler.NewHandler(mealplanSvc)
		shoppingHandlerInstance := shoppingHandler.NewHandler(shoppingSvc, dispatcher)
		storeHandlerInstance := storeHandler.NewHandler(storeManager)

		// 註冊食譜相關路由
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipeHandlerInstance.HandleList)
			recipeGroup.GET("/:id", recipeHandlerInstance.HandleGet)
			recipeGroup.POST("", recipeHandlerInstance.HandleCreate)
			recipeGroup.DELETE("/:id", recipeHandlerInstance.HandleDelete)
		}

		// 註冊餐點計畫路由
		mealplanGroup := api.Group("/mealplans")
		{
			mealplanGroup.GET("", mealplanHandlerInstance.HandleList)
			mealplanGroup.POST("", mealplanHandlerInstance.HandleCreate)
			mealplanGroup.DELETE("/:id", mealplanHandlerInstance.HandleDelete)
		}

		// 註冊購物清單路由
		shoppingGroup := api.Group("/shopping-list")
		{
			shoppingGroup.GET("", shoppingHandlerInstance.HandleBuildList)
			shoppingGroup.POST("/save", shoppingHandlerInstance.HandleSaveList)
			shoppingGroup.GET("/saved", shoppingHandlerInstance.HandleSavedList)
			shoppingGroup.POST("/items/:id/toggle", shoppingHandlerInstance.HandleToggleItem)
			shoppingGroup.PATCH("/items/:id", shoppingHandlerInstance.HandleUpdateItem)
			shoppingGroup.DELETE("/items/:id", shoppingHandlerInstance.HandleDeleteItem)
			shoppingGroup.POST("/share", shoppingHandlerInstance.HandleShare)
		}

		// 註冊商店路由
		storeGroup := api.Group("/stores")
		{
			storeGroup.GET("", storeHandlerInstance.HandleList)
			storeGroup.GET("/:id", storeHandlerInstance.HandleGet)
			storeGroup.POST("", storeHandlerInstance.HandleCreate)
			storeGroup.PUT("/:id", storeHandlerInstance.HandleUpdate)
			storeGroup.DELETE("/:id", storeHandlerInstance.HandleDelete)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
