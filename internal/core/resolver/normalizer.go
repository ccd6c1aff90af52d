package resolver

import (
	"strings"

	"food-resolver/internal/core/beverage"
)

// 每次搜尋最多展開的查詢變體數
const maxQueryVariants = 6

// NormalizeQuery 基本正規化：去頭尾空白、ASCII 字母轉小寫、
// 連續空白收斂成單一空格。中日韓字元不做任何大小寫處理。
func NormalizeQuery(raw string) string {
	lowered := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, strings.TrimSpace(raw))
	return strings.Join(strings.Fields(lowered), " ")
}

// ExpandVariants 把正規化後的查詢展開成查找用變體，依優先序排列：
// 原文、去空白、剝除修飾語的精簡文字、精簡去空白，
// 最後是推斷出的正規基底飲品名。重複的變體只保留一次，最多六個。
func ExpandVariants(normalized string) []string {
	if normalized == "" {
		return nil
	}

	var variants []string
	seen := make(map[string]bool)
	add := func(v string) {
		if v == "" || seen[v] || len(variants) >= maxQueryVariants {
			return
		}
		seen[v] = true
		variants = append(variants, v)
	}

	add(normalized)
	add(strings.ReplaceAll(normalized, " ", ""))

	// 含飲料詞彙時才做修飾語剝除與基底飲品推斷
	if beverage.LooksLikeBeverage(normalized) {
		stripped := beverage.StripModifierText(normalized)
		add(stripped)
		add(strings.ReplaceAll(stripped, " ", ""))

		for _, name := range beverage.CanonicalBaseNames(normalized) {
			add(name)
		}
	}

	return variants
}
