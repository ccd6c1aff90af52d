package resolver

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"food-resolver/internal/core/beverage"
	"food-resolver/internal/core/catalog"
	"food-resolver/internal/core/nutrition"
	"food-resolver/internal/pkg/common"
)

const (
	maxQueryRunes = 80
	maxLimit      = 20
	minRowCap     = 20

	// 所有變體合併後最多納入計分的目錄列數
	mergedRowWindow = 60
)

// LookupAdapter 目錄查找介面。實作必須把查找失敗降級成空結果，
// 搜尋流程不因單次查找失敗而中斷。
type LookupAdapter interface {
	LookupAliases(ctx context.Context, variant string, limit int) ([]catalog.AliasEntry, error)
	LookupCatalogByName(ctx context.Context, variant string, limit int) ([]catalog.Entry, error)
	LookupCatalogByIDs(ctx context.Context, ids []string) ([]catalog.Entry, error)
}

// Estimator 目錄完全沒有命中時的營養估算回退
type Estimator interface {
	Estimate(ctx context.Context, query string, lang string) (*catalog.FoodSearchItem, error)
}

// Service 食物解析引擎：查詢正規化、目錄查找、合併計分與飲料重算
type Service struct {
	adapter      LookupAdapter
	estimator    Estimator // 可為 nil
	defaultLimit int
	defaultLang  string
}

// NewService 建立解析服務，estimator 可傳 nil 停用估算回退
func NewService(adapter LookupAdapter, estimator Estimator, defaultLimit int, defaultLang string) *Service {
	if defaultLimit <= 0 || defaultLimit > maxLimit {
		defaultLimit = 8
	}
	if defaultLang == "" {
		defaultLang = "zh-TW"
	}
	return &Service{
		adapter:      adapter,
		estimator:    estimator,
		defaultLimit: defaultLimit,
		defaultLang:  defaultLang,
	}
}

// Search 解析自由文字並回傳排序後的目錄結果。
// 空查詢與超長查詢回傳空結果；負的 limit 視為呼叫端錯誤。
func (s *Service) Search(ctx context.Context, query string, lang string, limit int) ([]catalog.FoodSearchItem, error) {
	if limit < 0 {
		return nil, common.ErrInvalidLimit
	}
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if lang == "" {
		lang = s.defaultLang
	}

	normalized := NormalizeQuery(query)
	if normalized == "" || utf8.RuneCountInString(normalized) > maxQueryRunes {
		return []catalog.FoodSearchItem{}, nil
	}

	variants := ExpandVariants(normalized)
	rowCap := 3 * limit
	if rowCap < minRowCap {
		rowCap = minRowCap
	}

	merged := make(map[string]*candidate)
	entriesByID := make(map[string]*catalog.Entry)
	rowsSeen := 0

	// 每個變體各打一次別名表與目錄表；單次查找失敗只記警告
	type aliasHit struct {
		variant string
		alias   catalog.AliasEntry
	}
	var aliasHits []aliasHit

	for _, variant := range variants {
		aliases, err := s.adapter.LookupAliases(ctx, variant, rowCap)
		if err != nil {
			common.LogWarn("別名查找失敗",
				zap.String("variant", variant),
				zap.Error(err))
		}
		for _, alias := range aliases {
			if alias.FoodID == "" || alias.Alias == "" {
				continue
			}
			if rowsSeen >= mergedRowWindow {
				break
			}
			rowsSeen++
			aliasHits = append(aliasHits, aliasHit{variant: variant, alias: alias})
		}

		entries, err := s.adapter.LookupCatalogByName(ctx, variant, rowCap)
		if err != nil {
			common.LogWarn("目錄名稱查找失敗",
				zap.String("variant", variant),
				zap.Error(err))
		}
		for i := range entries {
			entry := &entries[i]
			if entry.ID == "" || entry.FoodName == "" {
				continue
			}
			if rowsSeen >= mergedRowWindow {
				break
			}
			rowsSeen++
			entriesByID[entry.ID] = entry

			if score := scoreDirect(variant, entry, lang); score > 0 {
				mergeCandidate(merged, &candidate{entry: entry, score: score})
			}
		}
	}

	// 補抓只經由別名出現的條目
	var missingIDs []string
	for _, hit := range aliasHits {
		if _, ok := entriesByID[hit.alias.FoodID]; !ok {
			missingIDs = append(missingIDs, hit.alias.FoodID)
			entriesByID[hit.alias.FoodID] = nil
		}
	}
	if len(missingIDs) > 0 {
		fetched, err := s.adapter.LookupCatalogByIDs(ctx, missingIDs)
		if err != nil {
			common.LogWarn("目錄補抓失敗",
				zap.Int("ids", len(missingIDs)),
				zap.Error(err))
		}
		for i := range fetched {
			entry := &fetched[i]
			if entry.ID == "" || entry.FoodName == "" {
				continue
			}
			entriesByID[entry.ID] = entry
		}
	}

	for _, hit := range aliasHits {
		entry := entriesByID[hit.alias.FoodID]
		if entry == nil {
			continue
		}
		if score := scoreViaAlias(hit.variant, hit.alias, entry, lang); score > 0 {
			mergeCandidate(merged, &candidate{
				entry:    entry,
				alias:    hit.alias.Alias,
				viaAlias: true,
				score:    score,
			})
		}
	}

	ranked := rankCandidates(merged, limit)
	items := make([]catalog.FoodSearchItem, 0, len(ranked))
	for _, c := range ranked {
		items = append(items, assembleItem(c, lang))
	}

	if len(items) == 0 && s.estimator != nil {
		if estimated, err := s.estimator.Estimate(ctx, normalized, lang); err != nil {
			common.LogWarn("估算回退失敗", zap.Error(err))
		} else if estimated != nil {
			items = append(items, *estimated)
		}
	}

	common.LogDebug("搜尋完成",
		zap.String("query", normalized),
		zap.Int("variants", len(variants)),
		zap.Int("results", len(items)))
	return items, nil
}

// assembleItem 把候選條目組裝成對外結果：
// 熱量區間缺漏時由巨量營養素推導並標記 nutrition_source
func assembleItem(c *candidate, lang string) catalog.FoodSearchItem {
	entry := c.entry

	calorieRange, derived := nutrition.ResolveRange(entry.CalorieRange, entry.Macros)
	source := "catalog"
	if derived {
		source = "catalog_formula"
	}

	tags := nutrition.CapTags(entry.JudgementTags)
	if len(tags) == 0 {
		tags = nutrition.DeriveTags(entry.Macros, calorieRange, lang)
	}

	return catalog.FoodSearchItem{
		FoodID:          entry.ID,
		FoodName:        entry.FoodName,
		Alias:           c.alias,
		Lang:            entry.Lang,
		CalorieRange:    calorieRange,
		Macros:          entry.Macros,
		FoodItems:       entry.FoodItems,
		JudgementTags:   tags,
		DishSummary:     entry.DishSummary,
		Suggestion:      entry.Suggestion,
		Source:          entry.Source,
		NutritionSource: source,
		ReferenceUsed:   entry.ReferenceUsed,
		IsBeverage:      entry.IsBeverage,
		IsFood:          entry.IsFood,
		MatchScore:      c.score,
	}
}

// ResolveBeverage 從查詢文字解析飲料修飾語並重算營養。
// 非飲料條目回傳錯誤；沒有任何明確修飾語時回傳 nil 表示不需調整。
func (s *Service) ResolveBeverage(query string, entry *catalog.Entry, lang string) (*catalog.AdjustedNutrition, error) {
	if entry == nil || !entry.IsBeverage {
		return nil, common.ErrNotBeverage
	}
	if lang == "" {
		lang = s.defaultLang
	}

	baseML := 0.0
	if entry.BeverageProfile != nil {
		baseML = entry.BeverageProfile.BaseML
	}

	mods := beverage.ParseModifiers(NormalizeQuery(query), baseML)
	if !mods.HasAny() {
		return nil, nil
	}
	return beverage.Recompute(entry, mods, lang), nil
}
