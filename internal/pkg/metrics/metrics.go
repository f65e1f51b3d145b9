package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AI 呼叫結果標籤
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultCached  = "cached"
)

var (
	// AIRequestsTotal AI 協作者呼叫次數
	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_ai_requests_total",
			Help: "Total number of AI completion requests by operation and result",
		},
		[]string{"operation", "result"},
	)

	// FallbacksTotal 改用確定性備援的次數
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grocery_fallbacks_total",
			Help: "Total number of deterministic fallbacks taken after an AI failure",
		},
		[]string{"operation"},
	)

	// ConsolidatedItems 每次整併後的食材數量
	ConsolidatedItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grocery_consolidated_items",
			Help:    "Number of unique ingredients produced per consolidation pass",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

// ObserveAIRequest 記錄一次 AI 呼叫
func ObserveAIRequest(operation, result string) {
	AIRequestsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveFallback 記錄一次備援
func ObserveFallback(operation string) {
	FallbacksTotal.WithLabelValues(operation).Inc()
}
