package resolver

import (
	"context"
	"errors"
	"testing"

	"food-resolver/internal/core/catalog"
	"food-resolver/internal/pkg/common"
)

// mockAdapter implements LookupAdapter for testing
type mockAdapter struct {
	aliasesFn func(ctx context.Context, variant string, limit int) ([]catalog.AliasEntry, error)
	byNameFn  func(ctx context.Context, variant string, limit int) ([]catalog.Entry, error)
	byIDsFn   func(ctx context.Context, ids []string) ([]catalog.Entry, error)
}

func (m *mockAdapter) LookupAliases(ctx context.Context, variant string, limit int) ([]catalog.AliasEntry, error) {
	if m.aliasesFn != nil {
		return m.aliasesFn(ctx, variant, limit)
	}
	return nil, nil
}

func (m *mockAdapter) LookupCatalogByName(ctx context.Context, variant string, limit int) ([]catalog.Entry, error) {
	if m.byNameFn != nil {
		return m.byNameFn(ctx, variant, limit)
	}
	return nil, nil
}

func (m *mockAdapter) LookupCatalogByIDs(ctx context.Context, ids []string) ([]catalog.Entry, error) {
	if m.byIDsFn != nil {
		return m.byIDsFn(ctx, ids)
	}
	return nil, nil
}

// mockEstimator implements Estimator for testing
type mockEstimator struct {
	called     bool
	estimateFn func(ctx context.Context, query, lang string) (*catalog.FoodSearchItem, error)
}

func (m *mockEstimator) Estimate(ctx context.Context, query string, lang string) (*catalog.FoodSearchItem, error) {
	m.called = true
	if m.estimateFn != nil {
		return m.estimateFn(ctx, query, lang)
	}
	return &catalog.FoodSearchItem{
		FoodName:        query,
		NutritionSource: "estimated",
	}, nil
}

func testEntry(id, name string) catalog.Entry {
	return catalog.Entry{
		ID:           id,
		FoodName:     name,
		Lang:         "zh-TW",
		CalorieRange: "300-450 kcal",
		Macros:       catalog.Macros{Protein: 10, Carbs: 40, Fat: 12, Sodium: 500},
		IsFood:       true,
	}
}

func TestSearchExactAliasOutranksSubstringName(t *testing.T) {
	target := testEntry("f-1", "珍珠奶茶")
	nearMiss := testEntry("f-2", "珍奶綠茶")

	adapter := &mockAdapter{
		aliasesFn: func(ctx context.Context, variant string, limit int) ([]catalog.AliasEntry, error) {
			if variant == "珍奶" {
				return []catalog.AliasEntry{{FoodID: "f-1", Lang: "zh-TW", Alias: "珍奶"}}, nil
			}
			return nil, nil
		},
		byNameFn: func(ctx context.Context, variant string, limit int) ([]catalog.Entry, error) {
			if variant == "珍奶" {
				return []catalog.Entry{nearMiss}, nil
			}
			return nil, nil
		},
		byIDsFn: func(ctx context.Context, ids []string) ([]catalog.Entry, error) {
			return []catalog.Entry{target}, nil
		},
	}

	svc := NewService(adapter, nil, 8, "zh-TW")
	items, err := svc.Search(context.Background(), "珍奶", "zh-TW", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 results, got %d", len(items))
	}
	if items[0].FoodID != "f-1" {
		t.Errorf("exact alias match should rank first, got %v", items[0].FoodID)
	}
	if items[0].Alias != "珍奶" {
		t.Errorf("matched alias should be surfaced, got %q", items[0].Alias)
	}
	if items[0].MatchScore <= items[1].MatchScore {
		t.Errorf("scores not strictly ordered: %v vs %v", items[0].MatchScore, items[1].MatchScore)
	}
}

func TestSearchSameEntryMergedOnce(t *testing.T) {
	entry := testEntry("f-1", "紅茶")

	adapter := &mockAdapter{
		aliasesFn: func(ctx context.Context, variant string, limit int) ([]catalog.AliasEntry, error) {
			return []catalog.AliasEntry{{FoodID: "f-1", Lang: "zh-TW", Alias: "紅茶"}}, nil
		},
		byNameFn: func(ctx context.Context, variant string, limit int) ([]catalog.Entry, error) {
			return []catalog.Entry{entry}, nil
		},
	}

	svc := NewService(adapter, nil, 8, "zh-TW")
	items, err := svc.Search(context.Background(), "紅茶", "zh-TW", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for _, item := range items {
		if item.FoodID == "f-1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("entry reached via two paths must appear once, got %d", count)
	}
}

func TestSearchEmptyWhenNoOverlap(t *testing.T) {
	svc := NewService(&mockAdapter{}, nil, 8, "zh-TW")
	items, err := svc.Search(context.Background(), "不存在的食物", "zh-TW", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty result, got %v", items)
	}
}

func TestSearchValidation(t *testing.T) {
	svc := NewService(&mockAdapter{}, nil, 8, "zh-TW")

	if _, err := svc.Search(context.Background(), "奶茶", "zh-TW", -1); err != common.ErrInvalidLimit {
		t.Errorf("negative limit should be rejected, got %v", err)
	}

	items, err := svc.Search(context.Background(), "   ", "zh-TW", 0)
	if err != nil || len(items) != 0 {
		t.Errorf("blank query should yield empty result, got (%v, %v)", items, err)
	}

	long := make([]rune, 81)
	for i := range long {
		long[i] = '麵'
	}
	items, err = svc.Search(context.Background(), string(long), "zh-TW", 0)
	if err != nil || len(items) != 0 {
		t.Errorf("overlong query should yield empty result, got (%v, %v)", items, err)
	}
}

func TestSearchSkipsMalformedRows(t *testing.T) {
	adapter := &mockAdapter{
		byNameFn: func(ctx context.Context, variant string, limit int) ([]catalog.Entry, error) {
			return []catalog.Entry{
				{ID: "", FoodName: "壞資料"},
				{ID: "f-3", FoodName: ""},
				testEntry("f-1", "牛肉麵"),
			}, nil
		},
	}

	svc := NewService(adapter, nil, 8, "zh-TW")
	items, err := svc.Search(context.Background(), "牛肉麵", "zh-TW", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].FoodID != "f-1" {
		t.Errorf("malformed rows must be skipped, got %v", items)
	}
}

func TestSearchDegradesOnLookupError(t *testing.T) {
	adapter := &mockAdapter{
		aliasesFn: func(ctx context.Context, variant string, limit int) ([]catalog.AliasEntry, error) {
			return nil, errors.New("connection refused")
		},
		byNameFn: func(ctx context.Context, variant string, limit int) ([]catalog.Entry, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewService(adapter, nil, 8, "zh-TW")
	items, err := svc.Search(context.Background(), "牛肉麵", "zh-TW", 0)
	if err != nil {
		t.Fatalf("lookup failures must degrade, not fail: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty degraded result, got %v", items)
	}
}

func TestSearchEstimatorFallback(t *testing.T) {
	estimator := &mockEstimator{}
	svc := NewService(&mockAdapter{}, estimator, 8, "zh-TW")

	items, err := svc.Search(context.Background(), "火星漢堡", "zh-TW", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !estimator.called {
		t.Fatal("estimator should run when the catalog has no hits")
	}
	if len(items) != 1 || items[0].NutritionSource != "estimated" {
		t.Errorf("estimated item expected, got %v", items)
	}
}

func TestSearchEstimatorSkippedOnHit(t *testing.T) {
	estimator := &mockEstimator{}
	adapter := &mockAdapter{
		byNameFn: func(ctx context.Context, variant string, limit int) ([]catalog.Entry, error) {
			return []catalog.Entry{testEntry("f-1", "牛肉麵")}, nil
		},
	}

	svc := NewService(adapter, estimator, 8, "zh-TW")
	if _, err := svc.Search(context.Background(), "牛肉麵", "zh-TW", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if estimator.called {
		t.Error("estimator must not run when the catalog has hits")
	}
}

func TestSearchNutritionSource(t *testing.T) {
	withRange := testEntry("f-1", "牛肉麵")
	noRange := testEntry("f-2", "牛肉湯麵")
	noRange.CalorieRange = ""

	adapter := &mockAdapter{
		byNameFn: func(ctx context.Context, variant string, limit int) ([]catalog.Entry, error) {
			return []catalog.Entry{withRange, noRange}, nil
		},
	}

	svc := NewService(adapter, nil, 8, "zh-TW")
	items, err := svc.Search(context.Background(), "牛肉", "zh-TW", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sources := make(map[string]string)
	for _, item := range items {
		sources[item.FoodID] = item.NutritionSource
	}
	if sources["f-1"] != "catalog" {
		t.Errorf("f-1 source = %q, want catalog", sources["f-1"])
	}
	if sources["f-2"] != "catalog_formula" {
		t.Errorf("f-2 source = %q, want catalog_formula", sources["f-2"])
	}
	for _, item := range items {
		if item.FoodID == "f-2" && item.CalorieRange == "" {
			t.Error("derived range must be filled in")
		}
	}
}

func TestSearchLimitTruncates(t *testing.T) {
	adapter := &mockAdapter{
		byNameFn: func(ctx context.Context, variant string, limit int) ([]catalog.Entry, error) {
			return []catalog.Entry{
				testEntry("f-1", "牛肉麵"),
				testEntry("f-2", "牛肉湯麵"),
				testEntry("f-3", "紅燒牛肉麵"),
			}, nil
		},
	}

	svc := NewService(adapter, nil, 8, "zh-TW")
	items, err := svc.Search(context.Background(), "牛肉", "zh-TW", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("limit 2 should truncate to 2 results, got %d", len(items))
	}
}

func TestResolveBeverageGuards(t *testing.T) {
	svc := NewService(&mockAdapter{}, nil, 8, "zh-TW")

	food := testEntry("f-1", "牛肉麵")
	if _, err := svc.ResolveBeverage("牛肉麵 大碗", &food, "zh-TW"); err != common.ErrNotBeverage {
		t.Errorf("non-beverage entry should be rejected, got %v", err)
	}

	drink := testEntry("b-1", "豆漿")
	drink.IsFood = false
	drink.IsBeverage = true
	drink.BeverageProfile = &catalog.BeverageProfile{BaseML: 500}

	adjusted, err := svc.ResolveBeverage("豆漿", &drink, "zh-TW")
	if err != nil || adjusted != nil {
		t.Errorf("no explicit modifiers should yield nil adjustment, got (%v, %v)", adjusted, err)
	}

	// 冰塊不影響營養，單獨出現時保留型錄原始數值
	adjusted, err = svc.ResolveBeverage("去冰豆漿", &drink, "zh-TW")
	if err != nil || adjusted != nil {
		t.Errorf("ice-only query should yield nil adjustment, got (%v, %v)", adjusted, err)
	}

	adjusted, err = svc.ResolveBeverage("大杯豆漿", &drink, "zh-TW")
	if err != nil || adjusted == nil {
		t.Fatalf("explicit size should yield adjustment, got (%v, %v)", adjusted, err)
	}
	if adjusted.SizeFactor != 1.25 {
		t.Errorf("size factor = %v, want 1.25", adjusted.SizeFactor)
	}
}
