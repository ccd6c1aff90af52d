package nutrition

import (
	"food-resolver/internal/core/catalog"
)

// 判斷標籤的能量占比門檻
const (
	fatPctThreshold     = 35.0
	carbPctThreshold    = 55.0
	proteinPctThreshold = 16.0
	proteinGramFloor    = 12.0 // 熱量無法計算時改看絕對克數
	maxJudgementTags    = 3
)

type judgementLabel struct {
	zh string
	en string
}

var (
	labelHeavyOil   = judgementLabel{zh: "偏油", en: "heavier oil"}
	labelHighCarbs  = judgementLabel{zh: "碳水偏多", en: "higher carbs"}
	labelLowProtein = judgementLabel{zh: "蛋白不足", en: "low protein"}
	labelLight      = judgementLabel{zh: "清淡", en: "light"}
)

func (l judgementLabel) localized(lang string) string {
	if lang == "en" {
		return l.en
	}
	return l.zh
}

// DeriveTags 在目錄列缺少標籤時，依巨量營養素的能量占比推出判斷標籤。
// 相同輸入永遠得到相同結果；最多三個標籤。
func DeriveTags(m catalog.Macros, calorieRange string, lang string) []string {
	kcal := midpointKcal(m, calorieRange)

	var tags []string
	if kcal > 0 {
		fatPct := m.Fat * 9 / kcal * 100
		carbPct := m.Carbs * 4 / kcal * 100
		proteinPct := m.Protein * 4 / kcal * 100

		if fatPct >= fatPctThreshold {
			tags = append(tags, labelHeavyOil.localized(lang))
		}
		if carbPct >= carbPctThreshold {
			tags = append(tags, labelHighCarbs.localized(lang))
		}
		if proteinPct < proteinPctThreshold {
			tags = append(tags, labelLowProtein.localized(lang))
		}
	} else if m.Protein < proteinGramFloor {
		// 能量占比無法定義時退回絕對克數判斷
		tags = append(tags, labelLowProtein.localized(lang))
	}

	if len(tags) == 0 {
		tags = append(tags, labelLight.localized(lang))
	}
	if len(tags) > maxJudgementTags {
		tags = tags[:maxJudgementTags]
	}
	return tags
}

// CapTags 目錄自帶標籤時直接沿用，最多保留三個
func CapTags(tags []string) []string {
	if len(tags) > maxJudgementTags {
		return tags[:maxJudgementTags]
	}
	return tags
}

// midpointKcal 取熱量中點：先看區間字串，沒有就由巨量營養素計算
func midpointKcal(m catalog.Macros, calorieRange string) float64 {
	if lo, hi, ok := ParseRange(calorieRange); ok {
		return float64(lo+hi) / 2
	}
	return EnergyKcal(m)
}
