package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/api"
	"meal-planner/internal/core/ai/cache"
	aiService "meal-planner/internal/core/ai/service"
	"meal-planner/internal/core/grocery"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"
	"meal-planner/internal/store"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("openrouter_key", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("database_driver", cfg.Database.Driver),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)
	if cfg.OpenRouter.APIKey == "" {
		common.LogWarn("OPENROUTER_API_KEY not set, aisle organization and Instacart formatting will use fallbacks")
	}

	// 初始化儲存層
	db, err := store.New(cfg.Database)
	if err != nil {
		common.LogFatal("Failed to initialize store", zap.Error(err))
	}
	defer db.Close()
	if mem, ok := db.(*store.MemoryStore); ok {
		mem.SeedDemo()
		common.LogInfo("Memory store seeded with demo data", zap.String("user_id", store.DemoUserID))
	}

	// 初始化快取（關閉時為 nil）
	cacheStore, err := cache.NewStore(cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if cacheStore != nil {
		defer cacheStore.Close()
	}

	completer := aiService.NewService(cfg, cacheStore)
	groceryService := grocery.NewService(db, grocery.Options{
		Pricer:           grocery.NewRandomPriceEstimator(cfg.Grocery.PriceMin, cfg.Grocery.PriceMax),
		Completer:        completer,
		AITimeout:        cfg.OpenRouter.Timeout,
		SavingsPerShared: cfg.Grocery.SavingsPerSharedIngredient,
	})

	// 設置路由
	router, err := api.SetupRouter(cfg, api.Dependencies{
		Grocery: groceryService,
		Store:   db,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
