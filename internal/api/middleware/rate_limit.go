package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"food-resolver/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxTrackedClients 超過此數量時回收閒置的桶，避免 map 無限增長
const maxTrackedClients = 10000

// RateLimiter 依用戶端 IP 各自配置令牌桶。
// 搜尋是公開端點，單一全域桶會讓重度用戶端拖垮其他人。
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity int
	rate     float64
}

type bucket struct {
	tokens   float64
	lastTime time.Time
}

// NewRateLimiter 創建新的限流器
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: requests,
		rate:     float64(requests) / window.Seconds(),
	}
}

// Allow 檢查指定用戶端是否允許請求
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok {
		if len(rl.buckets) >= maxTrackedClients {
			rl.evictIdle(now)
		}
		b = &bucket{tokens: float64(rl.capacity), lastTime: now}
		rl.buckets[key] = b
	}

	// 依經過時間補充令牌
	elapsed := now.Sub(b.lastTime).Seconds()
	b.lastTime = now
	b.tokens += elapsed * rl.rate
	if b.tokens > float64(rl.capacity) {
		b.tokens = float64(rl.capacity)
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// evictIdle 移除已補滿令牌的閒置用戶端
func (rl *RateLimiter) evictIdle(now time.Time) {
	for key, b := range rl.buckets {
		idle := now.Sub(b.lastTime).Seconds()
		if b.tokens+idle*rl.rate >= float64(rl.capacity) {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			common.LogWarn("請求過於頻繁",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "請求過於頻繁",
				"code":        common.ErrCodeTooManyRequests,
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
