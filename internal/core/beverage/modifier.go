package beverage

import (
	"strconv"
	"strings"
)

const (
	// 明確容量的合理範圍，超出視為雜訊
	minExplicitML = 120
	maxExplicitML = 1200

	// 型錄缺基準容量時的回退值
	defaultBaseML = 500
)

// Modifiers 從查詢文字解析出的飲料修飾語。
// 只有使用者明確寫出的修飾語才會設定對應的 Has 旗標。
type Modifiers struct {
	SizeFactor float64
	SizeZH     string
	SizeEN     string
	ExplicitML int
	HasSize    bool

	SugarRatio float64
	SugarZH    string
	SugarEN    string
	HasSugar   bool

	IceZH  string
	IceEN  string
	HasIce bool

	Toppings []ToppingDefinition
}

// HasAny 是否含會影響營養的明確修飾語；冰塊只是標籤，
// 只寫冰塊時維持型錄原始營養不重算
func (m *Modifiers) HasAny() bool {
	return m.HasSize || m.HasSugar || len(m.Toppings) > 0
}

// ParseModifiers 依固定順序解析杯型、容量、糖度、冰塊與配料。
// baseML 為該品項的基準容量，用來把明確容量換算成縮放係數。
func ParseModifiers(text string, baseML float64) *Modifiers {
	if baseML <= 0 {
		baseML = defaultBaseML
	}
	lowered := strings.ToLower(text)

	m := &Modifiers{SizeFactor: 1.0}

	// 明確容量優先於具名杯型
	if ml, ok := parseExplicitVolume(lowered); ok {
		m.HasSize = true
		m.ExplicitML = ml
		m.SizeFactor = float64(ml) / baseML
		m.SizeZH = strconv.Itoa(ml) + "ml"
		m.SizeEN = strconv.Itoa(ml) + "ml"
	} else {
		for _, rule := range sizeRules {
			if containsAny(lowered, rule.Tokens) {
				m.HasSize = true
				m.SizeFactor = rule.Factor
				m.SizeZH = rule.LabelZH
				m.SizeEN = rule.LabelEN
				break
			}
		}
	}

	if ratio, zh, en, ok := parseSugar(lowered); ok {
		m.HasSugar = true
		m.SugarRatio = ratio
		m.SugarZH = zh
		m.SugarEN = en
	}

	for _, rule := range iceRules {
		if containsAny(lowered, rule.Tokens) {
			m.HasIce = true
			m.IceZH = rule.LabelZH
			m.IceEN = rule.LabelEN
			break
		}
	}

	m.Toppings = parseToppings(lowered)
	return m
}

// parseExplicitVolume 解析「NNN ml/cc/毫升」，範圍外視為沒寫
func parseExplicitVolume(text string) (int, bool) {
	match := volumePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}
	ml, err := strconv.Atoi(match[1])
	if err != nil || ml < minExplicitML || ml > maxExplicitML {
		return 0, false
	}
	return ml, true
}

// parseSugar 具名糖度 → 中文分數 → 百分比，先命中先贏
func parseSugar(text string) (float64, string, string, bool) {
	for _, rule := range sugarRules {
		if containsAny(text, rule.Tokens) {
			return rule.Ratio, rule.LabelZH, rule.LabelEN, true
		}
	}
	if match := fractionSugarPattern.FindStringSubmatch(text); match != nil {
		if n, ok := parseChineseNumeral(match[1]); ok {
			ratio := clampRatio(float64(n) / 10.0)
			return ratio, match[1] + "分糖", sugarPercentLabel(ratio), true
		}
	}
	if match := percentSugarPattern.FindStringSubmatch(text); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			ratio := clampRatio(float64(n) / 100.0)
			return ratio, match[1] + "%糖", sugarPercentLabel(ratio), true
		}
	}
	return 0, "", "", false
}

func sugarPercentLabel(ratio float64) string {
	return strconv.Itoa(int(ratio*100+0.5)) + "% sugar"
}

// parseToppings 依表序掃描所有配料詞彙，同一配料只收一次
func parseToppings(text string) []ToppingDefinition {
	var found []ToppingDefinition
	seen := make(map[string]bool)
	for _, topping := range toppingTable {
		if seen[topping.Canonical] {
			continue
		}
		if containsAny(text, topping.Tokens) {
			seen[topping.Canonical] = true
			found = append(found, topping)
		}
	}
	return found
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

func clampRatio(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// ---------------- 提供給查詢正規化的工具 ----------------

// LooksLikeBeverage 文字是否出現任一飲料提示詞或品牌
func LooksLikeBeverage(text string) bool {
	lowered := strings.ToLower(text)
	return containsAny(lowered, beverageHintTokens) || containsAny(lowered, shopBrandTokens)
}

// StripModifierText 剝除品牌、杯型、容量、糖度、冰塊與加料片語，
// 回傳精簡後的文字（可能為空字串）
func StripModifierText(text string) string {
	stripped := text
	for _, pattern := range stripPatterns {
		stripped = pattern.ReplaceAllString(stripped, " ")
	}
	return strings.Join(strings.Fields(stripped), " ")
}

// CanonicalBaseNames 依規則表推斷正規基底飲品名；
// 無規則命中但含「茶」時回傳弱回退
func CanonicalBaseNames(text string) []string {
	lowered := strings.ToLower(text)
	var names []string
	seen := make(map[string]bool)
	for _, rule := range canonicalRules {
		if !containsAny(lowered, rule.Tokens) {
			continue
		}
		if seen[rule.Canonical] {
			continue
		}
		seen[rule.Canonical] = true
		names = append(names, rule.Canonical)
	}
	if len(names) == 0 && strings.Contains(lowered, "茶") {
		names = append(names, weakTeaFallback)
	}
	return names
}
