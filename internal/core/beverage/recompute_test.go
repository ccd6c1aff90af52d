package beverage

import (
	"fmt"
	"math"
	"testing"

	"food-resolver/internal/core/catalog"
)

func milkTeaEntry() *catalog.Entry {
	return &catalog.Entry{
		ID:         "bev-001",
		FoodName:   "珍珠奶茶",
		Macros:     catalog.Macros{Protein: 3, Carbs: 28, Fat: 3, Sodium: 90},
		Lang:       "zh-TW",
		IsBeverage: true,
		BeverageProfile: &catalog.BeverageProfile{
			BaseML:            500,
			DefaultSugarRatio: 1.0,
			FullSugarCarbs:    28,
			SugarAdjustable:   true,
		},
	}
}

func soyMilkEntry() *catalog.Entry {
	return &catalog.Entry{
		ID:         "bev-002",
		FoodName:   "豆漿",
		Macros:     catalog.Macros{Protein: 14, Carbs: 12, Fat: 8, Sodium: 40},
		Lang:       "zh-TW",
		IsBeverage: true,
		BeverageProfile: &catalog.BeverageProfile{
			BaseML:            500,
			DefaultSugarRatio: 0.4,
			FullSugarCarbs:    16,
			SugarAdjustable:   true,
		},
	}
}

func TestRecomputeLargeHalfSugarWithBoba(t *testing.T) {
	// 大杯 (×1.25) 半糖珍珠奶茶：
	// 碳水 = 28×1.25 + (0.5−1.0)×28×1.25 + 珍珠 35 = 52.5
	mods := ParseModifiers("珍珠奶茶 大杯 半糖", 500)
	got := Recompute(milkTeaEntry(), mods, "zh-TW")

	if math.Abs(got.Macros.Carbs-52.5) > 1e-9 {
		t.Errorf("carbs = %v, want 52.5", got.Macros.Carbs)
	}
	if math.Abs(got.Macros.Protein-3.8) > 1e-9 {
		t.Errorf("protein = %v, want 3.8 (3×1.25 rounded)", got.Macros.Protein)
	}
	if math.Abs(got.Macros.Fat-3.8) > 1e-9 {
		t.Errorf("fat = %v, want 3.8 (3×1.25 rounded)", got.Macros.Fat)
	}
	if got.SizeFactor != 1.25 || got.SugarRatio != 0.5 {
		t.Errorf("size/sugar = (%v, %v), want (1.25, 0.5)", got.SizeFactor, got.SugarRatio)
	}
	if len(got.Toppings) != 1 || got.Toppings[0] != "珍珠" {
		t.Errorf("toppings = %v, want [珍珠]", got.Toppings)
	}
}

func TestRecomputeExplicitVolumeAtBase(t *testing.T) {
	// 明確 500ml 對上基準容量 500 → 係數 1.0；
	// 無糖讓碳水扣掉預設糖量：12 + (0−0.4)×16 = 5.6
	mods := ParseModifiers("無糖豆漿 500ml", 500)
	got := Recompute(soyMilkEntry(), mods, "zh-TW")

	if got.SizeFactor != 1.0 {
		t.Fatalf("size factor = %v, want 1.0", got.SizeFactor)
	}
	if math.Abs(got.Macros.Carbs-5.6) > 1e-9 {
		t.Errorf("carbs = %v, want 5.6", got.Macros.Carbs)
	}
	if got.Macros.Protein != 14 || got.Macros.Fat != 8 || got.Macros.Sodium != 40 {
		t.Errorf("non-carb macros must be unchanged at factor 1.0: %+v", got.Macros)
	}
}

func TestRecomputeSugarNotAdjustable(t *testing.T) {
	// 不可調糖的品項寫半糖也不能動碳水
	entry := soyMilkEntry()
	entry.BeverageProfile.SugarAdjustable = false
	mods := ParseModifiers("豆漿 半糖", 500)
	got := Recompute(entry, mods, "zh-TW")

	if got.Macros.Carbs != 12 {
		t.Errorf("carbs = %v, want 12 (sugar not adjustable)", got.Macros.Carbs)
	}
	if got.SugarRatio != 0.5 {
		t.Errorf("sugar ratio should still be reported, got %v", got.SugarRatio)
	}
}

func TestRecomputeNeverNegative(t *testing.T) {
	// 低碳水基底配無糖：糖度差扣超過基底碳水時夾到 0
	entry := milkTeaEntry()
	entry.Macros.Carbs = 5
	mods := ParseModifiers("奶茶 無糖", 500)
	got := Recompute(entry, mods, "zh-TW")

	if got.Macros.Carbs < 0 || got.Macros.Protein < 0 || got.Macros.Fat < 0 || got.Macros.Sodium < 0 {
		t.Errorf("macros must never go negative: %+v", got.Macros)
	}
}

func TestRecomputeToppingDeltaUnscaled(t *testing.T) {
	// 配料增量固定每份，不吃杯型係數：
	// 特大杯 (×1.45) 無糖下珍珠仍然 +35g 碳水
	entry := milkTeaEntry()
	mods := ParseModifiers("特大杯 無糖 珍珠奶茶", 500)
	got := Recompute(entry, mods, "zh-TW")

	// 28×1.45 + (0−1)×28×1.45 + 35 = 35：基底碳水被糖量差全額抵銷，只剩珍珠
	if math.Abs(got.Macros.Carbs-35) > 1e-9 {
		t.Errorf("carbs = %v, want 35", got.Macros.Carbs)
	}
}

func TestRecomputeRangeDerivedAndTightened(t *testing.T) {
	mods := ParseModifiers("珍珠奶茶 大杯 半糖", 500)
	got := Recompute(milkTeaEntry(), mods, "zh-TW")

	if got.CalorieRange == "" {
		t.Fatal("calorie range must be re-derived")
	}
	// 區間寬度不超過飲料上限
	var lo, hi int
	if _, err := fmt.Sscanf(got.CalorieRange, "%d-%d kcal", &lo, &hi); err != nil {
		t.Fatalf("unexpected range format %q: %v", got.CalorieRange, err)
	}
	if hi-lo > 120 {
		t.Errorf("beverage range too wide: %q", got.CalorieRange)
	}
}

func TestRecomputeFoodItems(t *testing.T) {
	mods := ParseModifiers("珍珠奶茶加布丁加仙草", 500)
	got := Recompute(milkTeaEntry(), mods, "zh-TW")

	if len(got.FoodItems) == 0 || got.FoodItems[0] != "珍珠奶茶" {
		t.Fatalf("base drink must lead food_items, got %v", got.FoodItems)
	}
	if len(got.FoodItems) > 6 {
		t.Errorf("food_items capped at 6, got %v", got.FoodItems)
	}
}

func TestRecomputeEnglishLabels(t *testing.T) {
	mods := ParseModifiers("large half sugar boba milk tea", 500)
	got := Recompute(milkTeaEntry(), mods, "en")

	if got.SizeLabel != "large" || got.SugarLabel != "half sugar" {
		t.Errorf("labels = (%q, %q), want (large, half sugar)", got.SizeLabel, got.SugarLabel)
	}
	if len(got.Toppings) != 1 || got.Toppings[0] != "boba pearls" {
		t.Errorf("topping names should localize, got %v", got.Toppings)
	}
}
