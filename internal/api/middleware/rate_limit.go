package middleware

import (
	"fmt"
	"math"
	"sync"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 依客戶端 IP 分別限流（token bucket）
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter 每個客戶端在 window 內最多 requests 次
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	interval := window / time.Duration(requests)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Every(interval),
		burst:    requests,
		idle:     window,
		now:      time.Now,
	}
}

// Allow 檢查是否允許請求
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	now := rl.now()

	// 閒置超過一個 window 的客戶端桶已回滿，可直接丟棄
	if now.Sub(rl.lastSweep) > rl.idle {
		for k, cl := range rl.limiters {
			if now.Sub(cl.lastSeen) > rl.idle {
				delete(rl.limiters, k)
			}
		}
		rl.lastSweep = now
	}

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now
	rl.mu.Unlock()

	return cl.limiter.AllowN(now, 1)
}

// size 目前追蹤中的客戶端數量
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

// RateLimit 限流中間件，以 ClientIP 區分客戶端
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window)
	retryAfter := int(math.Ceil((window / time.Duration(max(requests, 1))).Seconds()))

	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			common.LogInfo("Rate limit exceeded",
				zap.String("client", key),
				zap.String("user_id", c.GetHeader(UserIDHeader)),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", max(retryAfter, 1)))
			common.RespondError(c, common.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
