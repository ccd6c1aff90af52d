package resolver

import (
	"sort"
	"strings"

	"food-resolver/internal/core/catalog"
)

// 計分權重。別名命中與名稱直接命中共用同一套比對方式：
// 完全相等 > 前綴 > 子字串；經由別名抵達的候選，
// 本名再命中時以較低權重加分。
const (
	aliasExactWeight  = 4.0
	aliasPrefixWeight = 3.0
	aliasSubstrWeight = 2.0

	directExactWeight  = 4.0
	directPrefixWeight = 3.2
	directSubstrWeight = 2.0

	viaAliasNameExactWeight  = 3.0
	viaAliasNamePrefixWeight = 2.2
	viaAliasNameSubstrWeight = 1.5

	langMatchBonus = 0.8

	// 驗證等級加分＝min(level,5)/10，最多 +0.5
	verifiedLevelCap = 5
)

// candidate 合併計分中的單一候選，同一 food_id 只保留最高分路徑
type candidate struct {
	entry    *catalog.Entry
	alias    string
	viaAlias bool
	score    float64
}

// matchWeight 依比對強度選權重，完全不相符回傳 0
func matchWeight(variant, target string, exact, prefix, substr float64) float64 {
	if target == "" {
		return 0
	}
	lowered := strings.ToLower(target)
	switch {
	case lowered == variant:
		return exact
	case strings.HasPrefix(lowered, variant):
		return prefix
	case strings.Contains(lowered, variant):
		return substr
	default:
		return 0
	}
}

// bestNameWeight 取顯示名與正規名中較高的比對分
func bestNameWeight(variant string, entry *catalog.Entry, exact, prefix, substr float64) float64 {
	w := matchWeight(variant, entry.FoodName, exact, prefix, substr)
	if cw := matchWeight(variant, entry.CanonicalName, exact, prefix, substr); cw > w {
		w = cw
	}
	return w
}

// commonBonus 語言一致加分與驗證等級加分。
// 直接路徑看條目語言，別名路徑看別名列自己的語言。
func commonBonus(entry *catalog.Entry, rowLang, queryLang string) float64 {
	bonus := 0.0
	if queryLang != "" && rowLang == queryLang {
		bonus += langMatchBonus
	}
	level := entry.VerifiedLevel
	if level > verifiedLevelCap {
		level = verifiedLevelCap
	}
	if level > 0 {
		bonus += float64(level) / 10
	}
	return bonus
}

// scoreDirect 名稱直接命中的分數，0 表示沒命中
func scoreDirect(variant string, entry *catalog.Entry, queryLang string) float64 {
	w := bestNameWeight(variant, entry, directExactWeight, directPrefixWeight, directSubstrWeight)
	if w == 0 {
		return 0
	}
	return w + commonBonus(entry, entry.Lang, queryLang)
}

// scoreViaAlias 經由別名命中的分數：別名比對分，
// 加上本名（若也命中）的折減分，0 表示別名沒命中
func scoreViaAlias(variant string, alias catalog.AliasEntry, entry *catalog.Entry, queryLang string) float64 {
	w := matchWeight(variant, alias.Alias, aliasExactWeight, aliasPrefixWeight, aliasSubstrWeight)
	if w == 0 {
		return 0
	}
	w += bestNameWeight(variant, entry, viaAliasNameExactWeight, viaAliasNamePrefixWeight, viaAliasNameSubstrWeight)
	return w + commonBonus(entry, alias.Lang, queryLang)
}

// mergeCandidate 同一 food_id 出現多條路徑時保留最高分；
// 同分時偏好別名路徑，讓精確別名命中穩定排前
func mergeCandidate(merged map[string]*candidate, next *candidate) {
	existing, ok := merged[next.entry.ID]
	if !ok {
		merged[next.entry.ID] = next
		return
	}
	if next.score > existing.score ||
		(next.score == existing.score && next.viaAlias && !existing.viaAlias) {
		merged[next.entry.ID] = next
	}
}

// rankCandidates 依分數由高到低穩定排序並截斷到 limit
func rankCandidates(merged map[string]*candidate, limit int) []*candidate {
	ranked := make([]*candidate, 0, len(merged))
	for _, c := range merged {
		ranked = append(ranked, c)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].viaAlias != ranked[j].viaAlias {
			return ranked[i].viaAlias
		}
		return ranked[i].entry.ID < ranked[j].entry.ID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
