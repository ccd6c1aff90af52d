package food

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"food-resolver/internal/core/catalog"
	"food-resolver/internal/core/resolver"
	"food-resolver/internal/infrastructure/cache"
	"food-resolver/internal/pkg/common"
)

// Handler 食物搜尋與飲料調整的 HTTP 處理器
type Handler struct {
	resolver *resolver.Service
	adapter  resolver.LookupAdapter
	cache    *cache.Service
}

// NewHandler 建立處理器，cache 可為 nil
func NewHandler(resolverSvc *resolver.Service, adapter resolver.LookupAdapter, cacheSvc *cache.Service) *Handler {
	return &Handler{
		resolver: resolverSvc,
		adapter:  adapter,
		cache:    cacheSvc,
	}
}

// SearchResponse 搜尋回應
type SearchResponse struct {
	Query     string                   `json:"query"`
	Lang      string                   `json:"lang"`
	Count     int                      `json:"count"`
	Results   []catalog.FoodSearchItem `json:"results"`
	CacheHit  bool                     `json:"cache_hit"`
	RequestID string                   `json:"request_id"`
}

// HandleSearch GET /api/v1/food/search?q=...&lang=...&limit=...
func (h *Handler) HandleSearch(c *gin.Context) {
	start := time.Now()
	requestID := requestIDFrom(c)

	query := c.Query("q")
	if query == "" {
		writeError(c, common.ErrEmptyQuery)
		return
	}
	lang := c.Query("lang")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(c, common.ErrInvalidLimit)
			return
		}
		limit = n
	}

	// 緩存鍵用正規化後的查詢，大小寫與空白差異共用同一份結果
	normalized := resolver.NormalizeQuery(query)
	if h.cache != nil {
		if items, err := h.cache.GetSearch(c.Request.Context(), normalized, lang, limit); err == nil {
			c.JSON(http.StatusOK, SearchResponse{
				Query:     query,
				Lang:      lang,
				Count:     len(items),
				Results:   items,
				CacheHit:  true,
				RequestID: requestID,
			})
			return
		}
	}

	items, err := h.resolver.Search(c.Request.Context(), query, lang, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.cache != nil && len(items) > 0 {
		if err := h.cache.SetSearch(c.Request.Context(), normalized, lang, limit, items); err != nil {
			common.LogWarn("搜尋結果緩存寫入失敗",
				zap.String("request_id", requestID),
				zap.Error(err))
		}
	}

	common.LogInfo("搜尋請求完成",
		zap.String("request_id", requestID),
		zap.String("query", query),
		zap.Int("count", len(items)),
		zap.Duration("duration", time.Since(start)))

	c.JSON(http.StatusOK, SearchResponse{
		Query:     query,
		Lang:      lang,
		Count:     len(items),
		Results:   items,
		RequestID: requestID,
	})
}

func requestIDFrom(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return common.GenerateUUID()
}

func writeError(c *gin.Context, err error) {
	if ce, ok := err.(*common.CustomError); ok {
		c.JSON(ce.Status, gin.H{
			"error": ce.Message,
			"code":  ce.Code,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": common.ErrInternalError.Message,
		"code":  common.ErrInternalError.Code,
	})
}
