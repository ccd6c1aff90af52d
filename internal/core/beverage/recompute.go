package beverage

import (
	"fmt"
	"math"

	"food-resolver/internal/core/catalog"
	"food-resolver/internal/core/nutrition"
)

const maxFoodItems = 6

// Recompute 依修飾語重算單一飲料品項的營養：
// 蛋白質/脂肪/鈉隨容量線性縮放，碳水額外加上糖度差與配料增量，
// 配料增量固定每份、不隨杯型縮放。熱量區間以 4/4/9 重新推導。
func Recompute(entry *catalog.Entry, mods *Modifiers, lang string) *catalog.AdjustedNutrition {
	profile := entry.BeverageProfile
	if profile == nil {
		profile = &catalog.BeverageProfile{
			BaseML:            defaultBaseML,
			DefaultSugarRatio: 1.0,
		}
	}

	factor := mods.SizeFactor
	if !mods.HasSize {
		factor = 1.0
	}

	adjusted := catalog.Macros{
		Protein: entry.Macros.Protein * factor,
		Carbs:   entry.Macros.Carbs * factor,
		Fat:     entry.Macros.Fat * factor,
		Sodium:  entry.Macros.Sodium * factor,
	}

	// 糖度只調整碳水，且只在品項可調糖又明確指定糖度時生效
	sugarRatio := profile.DefaultSugarRatio
	if mods.HasSugar {
		sugarRatio = mods.SugarRatio
		if profile.SugarAdjustable {
			adjusted.Carbs += (sugarRatio - profile.DefaultSugarRatio) * profile.FullSugarCarbs * factor
			if adjusted.Carbs < 0 {
				adjusted.Carbs = 0
			}
		}
	}

	toppingNames := make([]string, 0, len(mods.Toppings))
	for _, topping := range mods.Toppings {
		adjusted.Protein += topping.Delta.Protein
		adjusted.Carbs += topping.Delta.Carbs
		adjusted.Fat += topping.Delta.Fat
		adjusted.Sodium += topping.Delta.Sodium
		toppingNames = append(toppingNames, toppingName(topping, lang))
	}

	adjusted.Protein = round1(adjusted.Protein)
	adjusted.Carbs = round1(adjusted.Carbs)
	adjusted.Fat = round1(adjusted.Fat)
	adjusted.Sodium = round1(adjusted.Sodium)

	lo, hi := nutrition.DeriveRange(adjusted)
	lo, hi = nutrition.TightenRange(lo, hi, true)

	foodItems := []string{entry.FoodName}
	foodItems = append(foodItems, toppingNames...)
	if len(foodItems) > maxFoodItems {
		foodItems = foodItems[:maxFoodItems]
	}

	summary, suggestion := describeAdjusted(entry.FoodName, adjusted, sugarRatio, toppingNames, lang)

	return &catalog.AdjustedNutrition{
		FoodID:       entry.ID,
		FoodName:     entry.FoodName,
		CalorieRange: nutrition.FormatRange(lo, hi),
		Macros:       adjusted,
		SizeLabel:    sizeLabel(mods, lang),
		SizeFactor:   factor,
		SugarLabel:   sugarLabel(mods, sugarRatio, lang),
		SugarRatio:   sugarRatio,
		IceLabel:     iceLabel(mods, lang),
		Toppings:     toppingNames,
		FoodItems:    foodItems,
		DishSummary:  summary,
		Suggestion:   suggestion,
	}
}

func sizeLabel(mods *Modifiers, lang string) string {
	if mods.HasSize {
		if lang == "en" {
			return mods.SizeEN
		}
		return mods.SizeZH
	}
	if lang == "en" {
		return "medium"
	}
	return "中杯"
}

// sugarLabel 沒寫糖度時依預設糖量比回推顯示名
func sugarLabel(mods *Modifiers, ratio float64, lang string) string {
	if mods.HasSugar {
		if lang == "en" {
			return mods.SugarEN
		}
		return mods.SugarZH
	}
	switch {
	case ratio <= 0:
		if lang == "en" {
			return "sugar-free"
		}
		return "無糖"
	case ratio >= 1:
		if lang == "en" {
			return "full sugar"
		}
		return "全糖"
	default:
		if lang == "en" {
			return sugarPercentLabel(ratio)
		}
		return fmt.Sprintf("%d%%糖", int(ratio*100+0.5))
	}
}

func iceLabel(mods *Modifiers, lang string) string {
	if !mods.HasIce {
		return ""
	}
	if lang == "en" {
		return mods.IceEN
	}
	return mods.IceZH
}

func toppingName(t ToppingDefinition, lang string) string {
	if lang == "en" {
		return t.NameEN
	}
	return t.NameZH
}

// describeAdjusted 依調整後狀態選擇說明與建議模板：
// 高糖 → 配料 → 一般，只取第一個命中的情境
func describeAdjusted(name string, m catalog.Macros, sugarRatio float64, toppings []string, lang string) (string, string) {
	highSugar := sugarRatio >= 0.7 || m.Carbs >= 45

	if lang == "en" {
		switch {
		case highSugar:
			return fmt.Sprintf("%s with this sugar level carries a high sugar load.", name),
				"Consider a lower sugar level or a smaller cup to cut down sugar intake."
		case len(toppings) > 0:
			return fmt.Sprintf("%s with toppings adds extra carbs on top of the base drink.", name),
				"Toppings add calories quickly; keep them occasional."
		default:
			return fmt.Sprintf("%s is a relatively light choice at this setting.", name),
				"A reasonable pick; pair it with enough protein across the day."
		}
	}

	switch {
	case highSugar:
		return fmt.Sprintf("%s 在這個糖度下含糖量偏高。", name),
			"建議改選較低糖度或較小杯型，減少糖分攝取。"
	case len(toppings) > 0:
		return fmt.Sprintf("%s 加料後碳水比基底飲品明顯增加。", name),
			"配料熱量累積很快，偶爾享用即可。"
	default:
		return fmt.Sprintf("%s 在這個組合下屬於相對清爽的選擇。", name),
			"整體負擔不大，記得當天補充足夠蛋白質。"
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
