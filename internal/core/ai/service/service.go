package service

import (
	"context"
	"strings"
	"time"

	"meal-planner/internal/core/ai/cache"
	"meal-planner/internal/core/ai/openrouter"
	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"
	"meal-planner/internal/pkg/metrics"

	"go.uber.org/zap"
)

const opComplete = "completion"

// generator 送出 prompt 取得模型輸出
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service AI 服務
type Service struct {
	generator generator
	cache     cache.Store
}

var _ provider.Completer = (*Service)(nil)

// NewService 創建 AI 服務，cacheStore 可為 nil
func NewService(cfg *config.Config, cacheStore cache.Store) *Service {
	return &Service{
		generator: openrouter.NewClient(cfg.OpenRouter),
		cache:     cacheStore,
	}
}

// Complete 統一對外方法：快取查詢、呼叫模型、寫入快取
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	// 統一 prompt 格式，確保快取 key 一致
	prompt = strings.TrimSpace(prompt)

	if s.cache != nil {
		if val, err := s.cache.Get(ctx, prompt); err == nil && val != "" {
			metrics.ObserveAIRequest(opComplete, metrics.ResultCached)
			return val, nil
		}
	}

	start := time.Now()
	content, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		common.LogDebug("AI completion failed",
			zap.Error(err),
			zap.Duration("耗時", time.Since(start)),
		)
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, prompt, content); err != nil {
			common.LogWarn("Failed to store AI response in cache", zap.Error(err))
		}
	}

	return content, nil
}
