package grocery

import (
	"context"
	"strings"
	"time"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/pkg/common"
	"meal-planner/internal/pkg/metrics"

	"go.uber.org/zap"
)

const opInstacart = "format_instacart"

const (
	instacartHeader  = "Please add these items to my Instacart cart:"
	instacartTrailer = "If any items are unavailable, suggest alternatives. Prefer organic."
)

// InstacartFormatter 產生給 Instacart 的採買訊息
type InstacartFormatter struct {
	completer provider.Completer
	timeout   time.Duration
}

// NewInstacartFormatter 創建訊息產生器，completer 可為 nil
func NewInstacartFormatter(completer provider.Completer, timeout time.Duration) *InstacartFormatter {
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	return &InstacartFormatter{completer: completer, timeout: timeout}
}

// FormatForInstacart 先嘗試 AI，失敗或空回覆時使用固定模板
func (f *InstacartFormatter) FormatForInstacart(ctx context.Context, items []ConsolidatedIngredient) string {
	if len(items) == 0 {
		return FallbackInstacartMessage(items)
	}

	message, err := f.tryAI(ctx, items)
	if err == nil {
		metrics.ObserveAIRequest(opInstacart, metrics.ResultSuccess)
		return message
	}

	metrics.ObserveAIRequest(opInstacart, metrics.ResultError)
	metrics.ObserveFallback(opInstacart)
	common.LogWarn("AI Instacart formatting failed, using template",
		zap.Int("items", len(items)),
		zap.Error(err),
	)
	return FallbackInstacartMessage(items)
}

func (f *InstacartFormatter) tryAI(ctx context.Context, items []ConsolidatedIngredient) (string, error) {
	if f.completer == nil {
		return "", common.ErrAICredentials
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	content, err := f.completer.Complete(ctx, buildInstacartPrompt(items))
	common.LogAICall(opInstacart, time.Since(start), err)
	if err != nil {
		return "", err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", common.ErrAIEmptyResponse
	}
	return content, nil
}

// FallbackInstacartMessage 固定模板，相同輸入必得相同輸出
func FallbackInstacartMessage(items []ConsolidatedIngredient) string {
	var b strings.Builder
	b.WriteString(instacartHeader)
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(quantity(item))
		b.WriteString(" ")
		b.WriteString(item.Name)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(instacartTrailer)
	return b.String()
}
