package nutrition

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"food-resolver/internal/core/catalog"
)

// 熱量區間寬度上限（kcal），依目錄分類決定
const (
	rangeCapBeverage = 120
	rangeCapFood     = 200
)

var rangeNumberPattern = regexp.MustCompile(`\d+`)

// EnergyKcal 以 4/4/9 係數估算總熱量
func EnergyKcal(m catalog.Macros) float64 {
	return m.Protein*4 + m.Carbs*4 + m.Fat*9
}

// ParseRange 從區間字串取出最多兩個整數。
// 只有一個整數時視為退化區間 [n,n]；上下顛倒時自動交換。
func ParseRange(s string) (int, int, bool) {
	matches := rangeNumberPattern.FindAllString(s, 2)
	if len(matches) == 0 {
		return 0, 0, false
	}

	lo, err := strconv.Atoi(matches[0])
	if err != nil {
		return 0, 0, false
	}
	hi := lo
	if len(matches) == 2 {
		if n, err := strconv.Atoi(matches[1]); err == nil {
			hi = n
		}
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// DeriveRange 在沒有可用區間時由巨量營養素推得 [0.9·kcal, 1.1·kcal]
func DeriveRange(m catalog.Macros) (int, int) {
	kcal := EnergyKcal(m)
	lo := int(math.Round(kcal * 0.9))
	hi := int(math.Round(kcal * 1.1))
	if lo < 0 {
		lo = 0
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// TightenRange 將過寬的區間收斂到分類上限，以原中點為中心。
// 僅對新估算結果使用；使用者以營養標示覆寫的值不收斂。
func TightenRange(lo, hi int, isBeverage bool) (int, int) {
	cap := rangeCapFood
	if isBeverage {
		cap = rangeCapBeverage
	}
	if hi-lo <= cap {
		return lo, hi
	}

	mid := float64(lo+hi) / 2
	newLo := int(math.Round(mid - float64(cap)/2))
	newHi := int(math.Round(mid + float64(cap)/2))
	if newLo < 0 {
		newLo = 0
	}
	return newLo, newHi
}

// FormatRange 輸出 "lo-hi kcal" 格式的區間字串
func FormatRange(lo, hi int) string {
	return fmt.Sprintf("%d-%d kcal", lo, hi)
}

// ResolveRange 回傳可直接輸出的熱量區間：
// 有效區間原樣沿用，否則由巨量營養素推導。
// 推導出的區間以第二個回傳值標記，供結果組裝決定 nutrition_source。
func ResolveRange(rangeText string, m catalog.Macros) (string, bool) {
	if lo, hi, ok := ParseRange(rangeText); ok {
		return FormatRange(lo, hi), false
	}
	lo, hi := DeriveRange(m)
	return FormatRange(lo, hi), true
}
