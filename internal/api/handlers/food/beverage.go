package food

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"food-resolver/internal/core/catalog"
	"food-resolver/internal/pkg/common"
)

// BeverageRequest 飲料調整請求：
// query 為含修飾語的原始文字，food_id 指向目錄中的飲料條目
type BeverageRequest struct {
	Query  string `json:"query" binding:"required"`
	FoodID string `json:"food_id" binding:"required"`
	Lang   string `json:"lang"`
}

// BeverageResponse 飲料調整回應。
// 查詢沒有任何明確修飾語時 adjusted 為 null，表示沿用目錄原值。
type BeverageResponse struct {
	FoodID        string                     `json:"food_id"`
	FoodName      string                     `json:"food_name"`
	HasAdjustment bool                       `json:"has_adjustment"`
	Adjusted      *catalog.AdjustedNutrition `json:"adjusted"`
	RequestID     string                     `json:"request_id"`
}

// HandleBeverage POST /api/v1/food/beverage
func (h *Handler) HandleBeverage(c *gin.Context) {
	start := time.Now()
	requestID := requestIDFrom(c)

	var req BeverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.ErrInvalidRequest)
		return
	}

	entries, err := h.adapter.LookupCatalogByIDs(c.Request.Context(), []string{req.FoodID})
	if err != nil || len(entries) == 0 {
		writeError(c, common.ErrFoodNotFound)
		return
	}
	entry := &entries[0]

	adjusted, err := h.resolver.ResolveBeverage(req.Query, entry, req.Lang)
	if err != nil {
		writeError(c, err)
		return
	}

	common.LogInfo("飲料調整完成",
		zap.String("request_id", requestID),
		zap.String("food_id", entry.ID),
		zap.Bool("has_adjustment", adjusted != nil),
		zap.Duration("duration", time.Since(start)))

	c.JSON(http.StatusOK, BeverageResponse{
		FoodID:        entry.ID,
		FoodName:      entry.FoodName,
		HasAdjustment: adjusted != nil,
		Adjusted:      adjusted,
		RequestID:     requestID,
	})
}
