package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"food-resolver/internal/infrastructure/config"
	"food-resolver/internal/pkg/common"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Services  *ServiceStatus         `json:"services,omitempty"`
}

// ServiceStatus 下游服務狀態
type ServiceStatus struct {
	CatalogConfigured bool `json:"catalog_configured"`
	EstimateEnabled   bool `json:"estimate_enabled"`
	CacheEnabled      bool `json:"cache_enabled"`
	RateLimitEnabled  bool `json:"rate_limit_enabled"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}
	conf, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   conf.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"heap_alloc": m.HeapAlloc,
			"go_version": runtime.Version(),
			"num_cpu":    runtime.NumCPU(),
		},
		Services: &ServiceStatus{
			CatalogConfigured: conf.Supabase.URL != "",
			EstimateEnabled:   conf.OpenRouter.Enabled,
			CacheEnabled:      conf.Cache.Enabled,
			RateLimitEnabled:  conf.RateLimit.Enabled,
		},
	})
}

// ReadinessCheck 就緒檢查：目錄後端沒設定時回 503
func ReadinessCheck(c *gin.Context) {
	cfg, exists := c.Get("config")
	if !exists {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	conf, ok := cfg.(*config.Config)
	if !ok || conf.Supabase.URL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// LivenessCheck 存活檢查
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
