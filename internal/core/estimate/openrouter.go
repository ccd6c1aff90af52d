package estimate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"food-resolver/internal/core/catalog"
	"food-resolver/internal/core/nutrition"
	"food-resolver/internal/infrastructure/config"
	"food-resolver/internal/pkg/common"
)

// 模型回覆的熱量區間可能離譜地寬，一律以飲食分類上限收斂；
// 估算結果沒有分類資訊時以食物上限處理
const estimatePrompt = `你是營養估算助手。使用者會給你一個食物或飲料名稱，請估算它每份的營養並只回傳 JSON，格式如下：
{"food_name":"...","calorie_range":"300-450 kcal","is_beverage":false,"macros":{"protein":10,"carbs":45,"fat":12,"sodium":600},"suggestion":"..."}
蛋白質/碳水/脂肪以克計，鈉以毫克計；不確定的欄位可以用 "低"、"中"、"高"。不要輸出 JSON 以外的文字。`

// OpenRouterProvider 以 OpenRouter 聊天模型做目錄外的營養估算
type OpenRouterProvider struct {
	config *config.Config
	client *resty.Client
}

// NewOpenRouterProvider 建立估算服務
func NewOpenRouterProvider(cfg *config.Config) *OpenRouterProvider {
	timeout := cfg.OpenRouter.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("X-Title", "Food Resolver").
		SetTimeout(timeout)

	return &OpenRouterProvider{
		config: cfg,
		client: client,
	}
}

// estimateReply 模型回覆的預期結構
type estimateReply struct {
	FoodName     string `json:"food_name"`
	CalorieRange string `json:"calorie_range"`
	IsBeverage   bool   `json:"is_beverage"`
	Macros       struct {
		Protein catalog.RawMacroValue `json:"protein"`
		Carbs   catalog.RawMacroValue `json:"carbs"`
		Fat     catalog.RawMacroValue `json:"fat"`
		Sodium  catalog.RawMacroValue `json:"sodium"`
	} `json:"macros"`
	Suggestion string `json:"suggestion"`
}

// Estimate 目錄沒有命中時估算單一品項的營養
func (p *OpenRouterProvider) Estimate(ctx context.Context, query string, lang string) (*catalog.FoodSearchItem, error) {
	start := time.Now()

	content, err := p.complete(ctx, query)
	if err != nil {
		common.LogEstimateCall(time.Since(start), err)
		return nil, common.ErrEstimateFailed
	}

	var reply estimateReply
	extracted := common.QuoteJSONKeys(common.ExtractJSONObject(content))
	if err := common.ParseJSON(extracted, &reply); err != nil {
		common.LogEstimateCall(time.Since(start), err)
		return nil, common.ErrEstimateFailed
	}
	if reply.FoodName == "" {
		reply.FoodName = query
	}

	macros := nutrition.Normalize(catalog.RawMacros{
		Protein: reply.Macros.Protein,
		Carbs:   reply.Macros.Carbs,
		Fat:     reply.Macros.Fat,
		Sodium:  reply.Macros.Sodium,
	})

	// 新估算區間一律收斂；模型沒給區間時改由巨量營養素推導
	lo, hi, ok := nutrition.ParseRange(reply.CalorieRange)
	if !ok {
		lo, hi = nutrition.DeriveRange(macros)
	}
	lo, hi = nutrition.TightenRange(lo, hi, reply.IsBeverage)
	calorieRange := nutrition.FormatRange(lo, hi)

	common.LogEstimateCall(time.Since(start), nil)
	return &catalog.FoodSearchItem{
		FoodID:          "est-" + common.GenerateUUID(),
		FoodName:        reply.FoodName,
		Lang:            lang,
		CalorieRange:    calorieRange,
		Macros:          macros,
		JudgementTags:   nutrition.DeriveTags(macros, calorieRange, lang),
		Suggestion:      reply.Suggestion,
		Source:          "estimate",
		NutritionSource: "estimated",
		IsBeverage:      reply.IsBeverage,
		IsFood:          !reply.IsBeverage,
		MatchScore:      0,
	}, nil
}

// complete 發送聊天補全請求並取回第一個選項的文字
func (p *OpenRouterProvider) complete(ctx context.Context, query string) (string, error) {
	req := map[string]interface{}{
		"model": p.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": estimatePrompt},
			{"role": "user", "content": query},
		},
		"max_tokens": p.config.OpenRouter.MaxTokens,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned error: %s", resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}
	return result.Choices[0].Message.Content, nil
}
