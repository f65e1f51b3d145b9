package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger 可檢查連線的依賴
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	AI        AIStatus               `json:"ai"`
}

// AIStatus AI 協作者狀態
type AIStatus struct {
	Configured   bool   `json:"configured"`
	Model        string `json:"model,omitempty"`
	CacheEnabled bool   `json:"cache_enabled"`
	CacheBackend string `json:"cache_backend,omitempty"`
}

// Handler 健康檢查處理程序
type Handler struct {
	version string
	ai      AIStatus
	store   Pinger
}

// NewHandler 創建健康檢查處理程序，store 可為 nil
func NewHandler(version string, ai AIStatus, store Pinger) *Handler {
	return &Handler{version: version, ai: ai, store: store}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		AI: h.ai,
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：儲存層可連線
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			common.LogWarn("Readiness check failed", zap.Error(err))
			common.RespondError(c, common.ErrServiceUnavailable.Wrap(err))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
