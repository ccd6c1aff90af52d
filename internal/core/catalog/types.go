package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Macros 每份參考份量的巨量營養素，蛋白質/碳水/脂肪以克計，鈉以毫克計
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Sodium  float64 `json:"sodium"`
}

// MacroKind 原始巨量營養素欄位的型別標記
type MacroKind int

const (
	MacroEmpty MacroKind = iota
	MacroNumber
	MacroText
)

// RawMacroValue 目錄原始資料的巨量營養素欄位。
// 歷史資料同一欄位可能是數字、帶單位字串或質化標記（低/中/高），
// 在 adapter 邊界解開成帶型別標記的值，引擎內部只看數字。
type RawMacroValue struct {
	Kind   MacroKind
	Number float64
	Text   string
}

// UnmarshalJSON 接受數字、字串、布林與 null
func (v *RawMacroValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*v = RawMacroValue{Kind: MacroEmpty}
		return nil
	}
	if s == "true" || s == "false" {
		// 布林值視為無資料
		*v = RawMacroValue{Kind: MacroEmpty}
		return nil
	}
	if s[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*v = RawMacroValue{Kind: MacroText, Text: text}
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*v = RawMacroValue{Kind: MacroEmpty}
		return nil
	}
	*v = RawMacroValue{Kind: MacroNumber, Number: n}
	return nil
}

// RawNumber 建立數字型原始值
func RawNumber(n float64) RawMacroValue {
	return RawMacroValue{Kind: MacroNumber, Number: n}
}

// RawText 建立字串型原始值
func RawText(s string) RawMacroValue {
	return RawMacroValue{Kind: MacroText, Text: s}
}

// RawMacros 目錄原始資料的巨量營養素組
type RawMacros struct {
	Protein RawMacroValue `json:"protein"`
	Carbs   RawMacroValue `json:"carbs"`
	Fat     RawMacroValue `json:"fat"`
	Sodium  RawMacroValue `json:"sodium"`
}

// BeverageProfile 描述飲料營養如何隨容量與糖量縮放
type BeverageProfile struct {
	BaseML            float64 `json:"base_ml"`
	DefaultSugarRatio float64 `json:"default_sugar_ratio"` // 0~1
	FullSugarCarbs    float64 `json:"full_sugar_carbs"`    // 全糖碳水（克）
	SugarAdjustable   bool    `json:"sugar_adjustable"`
}

// Entry 目錄條目，由外部目錄儲存庫擁有，引擎只讀不改
type Entry struct {
	ID              string           `json:"id"`
	FoodName        string           `json:"food_name"`
	CanonicalName   string           `json:"canonical_name"`
	Lang            string           `json:"lang"`
	CalorieRange    string           `json:"calorie_range"` // "lo-hi kcal"
	Macros          Macros           `json:"macros"`
	FoodItems       []string         `json:"food_items"`
	JudgementTags   []string         `json:"judgement_tags"`
	DishSummary     string           `json:"dish_summary"`
	Suggestion      string           `json:"suggestion"`
	IsBeverage      bool             `json:"is_beverage"`
	IsFood          bool             `json:"is_food"`
	BeverageProfile *BeverageProfile `json:"beverage_profile,omitempty"`
	VerifiedLevel   int              `json:"verified_level"`
	Source          string           `json:"source"`
	ReferenceUsed   string           `json:"reference_used"`
}

// AliasEntry 別名條目，只用來擴大召回，不是營養資料的來源
type AliasEntry struct {
	FoodID string `json:"food_id"`
	Lang   string `json:"lang"`
	Alias  string `json:"alias"`
}

// FoodSearchItem 對外回傳的搜尋結果記錄
type FoodSearchItem struct {
	FoodID          string   `json:"food_id"`
	FoodName        string   `json:"food_name"`
	Alias           string   `json:"alias,omitempty"`
	Lang            string   `json:"lang"`
	CalorieRange    string   `json:"calorie_range"`
	Macros          Macros   `json:"macros"`
	FoodItems       []string `json:"food_items"`
	JudgementTags   []string `json:"judgement_tags"`
	DishSummary     string   `json:"dish_summary"`
	Suggestion      string   `json:"suggestion"`
	Source          string   `json:"source"`
	NutritionSource string   `json:"nutrition_source"` // "catalog" | "catalog_formula" | "estimated"
	ReferenceUsed   string   `json:"reference_used,omitempty"`
	IsBeverage      bool     `json:"is_beverage"`
	IsFood          bool     `json:"is_food"`
	MatchScore      float64  `json:"match_score"`
}

// AdjustedNutrition 飲料修飾語重算後的營養結果
type AdjustedNutrition struct {
	FoodID       string   `json:"food_id"`
	FoodName     string   `json:"food_name"`
	CalorieRange string   `json:"calorie_range"`
	Macros       Macros   `json:"macros"`
	SizeLabel    string   `json:"size_label"`
	SizeFactor   float64  `json:"size_factor"`
	SugarLabel   string   `json:"sugar_label"`
	SugarRatio   float64  `json:"sugar_ratio"`
	IceLabel     string   `json:"ice_label,omitempty"`
	Toppings     []string `json:"toppings"`
	FoodItems    []string `json:"food_items"`
	DishSummary  string   `json:"dish_summary"`
	Suggestion   string   `json:"suggestion"`
}
