package nutrition

import (
	"strconv"
	"strings"

	"food-resolver/internal/core/catalog"
)

// 質化標記（低/中/高）對應的固定數值，沿用舊目錄資料的慣例
var qualitativeLevels = map[string]float64{
	"低":      30,
	"中":      55,
	"高":      80,
	"low":    30,
	"medium": 55,
	"high":   80,
}

// Normalize 把原始巨量營養素組正規化成數值型 Macros。
// 蛋白質/碳水/脂肪以克計，鈉以毫克計；重複正規化結果不變。
func Normalize(raw catalog.RawMacros) catalog.Macros {
	return catalog.Macros{
		Protein: normalizeGrams(raw.Protein),
		Carbs:   normalizeGrams(raw.Carbs),
		Fat:     normalizeGrams(raw.Fat),
		Sodium:  normalizeSodium(raw.Sodium),
	}
}

// normalizeGrams 克計欄位：數值直接夾到 >= 0，字串去掉單位後解析
func normalizeGrams(v catalog.RawMacroValue) float64 {
	switch v.Kind {
	case catalog.MacroNumber:
		return clampNonNegative(v.Number)
	case catalog.MacroText:
		n, unit, ok := parseMacroText(v.Text)
		if !ok {
			return 0
		}
		if unit == "mg" {
			n = n / 1000
		}
		return clampNonNegative(n)
	default:
		return 0
	}
}

// normalizeSodium 鈉欄位：數值視為毫克；字串帶 g 單位時換算 ×1000
func normalizeSodium(v catalog.RawMacroValue) float64 {
	switch v.Kind {
	case catalog.MacroNumber:
		return clampNonNegative(v.Number)
	case catalog.MacroText:
		n, unit, ok := parseMacroText(v.Text)
		if !ok {
			return 0
		}
		if unit == "g" {
			n = n * 1000
		}
		return clampNonNegative(n)
	default:
		return 0
	}
}

// parseMacroText 解析帶單位或質化標記的字串值，回傳數值與單位（g/mg/%/空）
func parseMacroText(text string) (float64, string, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, "", false
	}

	if level, ok := qualitativeLevels[s]; ok {
		return level, "", true
	}

	unit := ""
	switch {
	case strings.HasSuffix(s, "mg"):
		unit = "mg"
		s = strings.TrimSpace(strings.TrimSuffix(s, "mg"))
	case strings.HasSuffix(s, "g"):
		unit = "g"
		s = strings.TrimSpace(strings.TrimSuffix(s, "g"))
	case strings.HasSuffix(s, "%"):
		unit = "%"
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "", false
	}
	return n, unit, true
}

func clampNonNegative(n float64) float64 {
	if n < 0 {
		return 0
	}
	return n
}
