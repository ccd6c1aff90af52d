package supabase

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"food-resolver/internal/core/catalog"
	"food-resolver/internal/core/nutrition"
	"food-resolver/internal/infrastructure/config"
	"food-resolver/internal/pkg/common"
)

// Client Supabase PostgREST 目錄查找客戶端。
// 所有查找失敗一律降級成空結果並記錄警告，不往上拋錯，
// 確保單一變體查找失敗不會中斷整次搜尋。
type Client struct {
	client       *resty.Client
	catalogTable string
	aliasTable   string
}

// NewClient 建立目錄查找客戶端
func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Supabase.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Supabase.URL, "/")+"/rest/v1").
		SetHeader("apikey", cfg.Supabase.APIKey).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Supabase.APIKey)).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{
		client:       client,
		catalogTable: cfg.Supabase.CatalogTable,
		aliasTable:   cfg.Supabase.AliasTable,
	}
}

// aliasRow 別名表原始列
type aliasRow struct {
	FoodID string `json:"food_id"`
	Lang   string `json:"lang"`
	Alias  string `json:"alias"`
}

// catalogRow 目錄表原始列。巨量營養素欄位在歷史資料裡
// 可能是數字、帶單位字串或質化標記，先以原始型別接住。
type catalogRow struct {
	ID              string                   `json:"id"`
	FoodName        string                   `json:"food_name"`
	CanonicalName   string                   `json:"canonical_name"`
	Lang            string                   `json:"lang"`
	CalorieRange    string                   `json:"calorie_range"`
	Protein         catalog.RawMacroValue    `json:"protein"`
	Carbs           catalog.RawMacroValue    `json:"carbs"`
	Fat             catalog.RawMacroValue    `json:"fat"`
	Sodium          catalog.RawMacroValue    `json:"sodium"`
	FoodItems       []string                 `json:"food_items"`
	JudgementTags   []string                 `json:"judgement_tags"`
	DishSummary     string                   `json:"dish_summary"`
	Suggestion      string                   `json:"suggestion"`
	IsBeverage      bool                     `json:"is_beverage"`
	IsFood          bool                     `json:"is_food"`
	BeverageProfile *catalog.BeverageProfile `json:"beverage_profile"`
	VerifiedLevel   int                      `json:"verified_level"`
	Source          string                   `json:"source"`
	ReferenceUsed   string                   `json:"reference_used"`
}

// toEntry 在 adapter 邊界把原始列轉成引擎條目，
// 巨量營養素在這裡一次正規化成數字
func (r *catalogRow) toEntry() catalog.Entry {
	return catalog.Entry{
		ID:            r.ID,
		FoodName:      r.FoodName,
		CanonicalName: r.CanonicalName,
		Lang:          r.Lang,
		CalorieRange:  r.CalorieRange,
		Macros: nutrition.Normalize(catalog.RawMacros{
			Protein: r.Protein,
			Carbs:   r.Carbs,
			Fat:     r.Fat,
			Sodium:  r.Sodium,
		}),
		FoodItems:       r.FoodItems,
		JudgementTags:   r.JudgementTags,
		DishSummary:     r.DishSummary,
		Suggestion:      r.Suggestion,
		IsBeverage:      r.IsBeverage,
		IsFood:          r.IsFood,
		BeverageProfile: r.BeverageProfile,
		VerifiedLevel:   r.VerifiedLevel,
		Source:          r.Source,
		ReferenceUsed:   r.ReferenceUsed,
	}
}

// LookupAliases 以子字串比對查別名表
func (c *Client) LookupAliases(ctx context.Context, variant string, limit int) ([]catalog.AliasEntry, error) {
	start := time.Now()

	var rows []aliasRow
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("alias", "ilike."+likePattern(variant)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&rows).
		Get("/" + c.aliasTable)

	if err := checkResponse(resp, err); err != nil {
		common.LogLookupCall("alias", 0, time.Since(start), err)
		return []catalog.AliasEntry{}, nil
	}

	entries := make([]catalog.AliasEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, catalog.AliasEntry{
			FoodID: row.FoodID,
			Lang:   row.Lang,
			Alias:  row.Alias,
		})
	}
	common.LogLookupCall("alias", len(entries), time.Since(start), nil)
	return entries, nil
}

// LookupCatalogByName 以子字串比對查目錄表的顯示名
func (c *Client) LookupCatalogByName(ctx context.Context, variant string, limit int) ([]catalog.Entry, error) {
	start := time.Now()

	var rows []catalogRow
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("food_name", "ilike."+likePattern(variant)).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&rows).
		Get("/" + c.catalogTable)

	if err := checkResponse(resp, err); err != nil {
		common.LogLookupCall("catalog_name", 0, time.Since(start), err)
		return []catalog.Entry{}, nil
	}

	entries := make([]catalog.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntry())
	}
	common.LogLookupCall("catalog_name", len(entries), time.Since(start), nil)
	return entries, nil
}

// LookupCatalogByIDs 批次抓取指定 id 的目錄列
func (c *Client) LookupCatalogByIDs(ctx context.Context, ids []string) ([]catalog.Entry, error) {
	if len(ids) == 0 {
		return []catalog.Entry{}, nil
	}
	start := time.Now()

	var rows []catalogRow
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("id", "in.("+strings.Join(ids, ",")+")").
		SetResult(&rows).
		Get("/" + c.catalogTable)

	if err := checkResponse(resp, err); err != nil {
		common.LogLookupCall("catalog_ids", 0, time.Since(start), err)
		return []catalog.Entry{}, nil
	}

	entries := make([]catalog.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntry())
	}
	common.LogLookupCall("catalog_ids", len(entries), time.Since(start), nil)
	return entries, nil
}

// likePattern PostgREST 的 ilike 萬用字元樣式，內嵌的 * 先轉義
func likePattern(variant string) string {
	escaped := strings.ReplaceAll(variant, "*", `\*`)
	return "*" + escaped + "*"
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("supabase returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
