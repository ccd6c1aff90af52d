package beverage

import (
	"regexp"

	"food-resolver/internal/core/catalog"
)

// 本檔案集中所有飲料領域的靜態查表資料。
// 全部在程序啟動時建好、之後只讀，任何請求都不得修改。

// ---------------- 飲料提示詞 ----------------

// beverageHintTokens 判斷一段文字是否「像飲料」的詞彙表：
// 常見飲品名、外來語與英文寫法
var beverageHintTokens = []string{
	// 茶類
	"茶", "奶茶", "珍珠奶茶", "波霸奶茶", "鮮奶茶", "厚奶茶", "燕麥奶茶",
	"綠茶", "紅茶", "青茶", "烏龍茶", "烏龍", "鐵觀音", "普洱", "高山茶",
	"四季春", "金萱", "包種茶", "蜜香紅茶", "錫蘭紅茶", "伯爵茶", "阿薩姆",
	"抹茶", "煎茶", "玄米茶", "麥茶", "冬瓜茶", "青草茶", "洛神花茶",
	"菊花茶", "桂花茶", "蜂蜜茶", "檸檬茶", "檸檬紅茶", "梅子綠茶",
	"柚子茶", "水果茶", "百香綠茶", "葡萄柚綠茶", "冬瓜檸檬", "金桔檸檬",
	// 咖啡類
	"咖啡", "拿鐵", "卡布奇諾", "美式咖啡", "黑咖啡", "摩卡", "瑪奇朵",
	"焦糖瑪奇朵", "濃縮咖啡", "冷萃咖啡", "手沖咖啡", "西西里咖啡",
	"燕麥拿鐵", "榛果拿鐵", "香草拿鐵",
	// 乳品豆品
	"豆漿", "黑豆漿", "米漿", "薏仁漿", "牛奶", "鮮奶", "調味乳",
	"巧克力牛奶", "木瓜牛奶", "香蕉牛奶", "酪梨牛奶", "優酪乳", "養樂多",
	"可可", "熱可可", "奶昔", "冰沙", "思樂冰", "綠豆沙", "楊枝甘露",
	// 果汁氣泡
	"果汁", "柳橙汁", "蘋果汁", "葡萄汁", "西瓜汁", "芭樂汁", "甘蔗汁",
	"椰子水", "檸檬汁", "汽水", "可樂", "雪碧", "沙士", "蘋果西打",
	"氣泡水", "氣泡飲", "運動飲料", "舒跑", "寶礦力", "能量飲料", "蠻牛",
	"飲料", "飲品", "鮮奶露",
	// 酒類
	"啤酒", "調酒", "雞尾酒", "梅酒", "清酒", "威士忌", "高粱",
	"紅酒", "白酒", "香檳",
	// 外來語 / 英文
	"latte", "coffee", "cappuccino", "americano", "espresso", "mocha",
	"macchiato", "tea", "milk tea", "bubble tea", "boba", "smoothie",
	"juice", "soda", "cola", "sprite", "milkshake", "shake", "cocoa",
	"chocolate milk", "soy milk", "oat milk", "yakult", "lemonade",
	"frappuccino", "frappe", "matcha", "hojicha", "oolong", "drink",
	"beverage", "beer", "wine", "whisky", "cocktail", "sake", "kombucha",
	"sparkling water", "energy drink", "slush", "winter melon tea",
}

// shopBrandTokens 連鎖手搖/咖啡品牌，出現時同樣視為飲料語境；
// 產生精簡查詢時會最先被剝除
var shopBrandTokens = []string{
	"星巴克", "starbucks", "路易莎", "louisa", "cama", "伯朗", "85度c",
	"五十嵐", "50嵐", "清心福全", "清心", "可不可熟成紅茶", "可不可", "kebuke",
	"一芳", "迷客夏", "milksha", "麻古", "macu", "茶湯會", "春水堂",
	"貢茶", "gong cha", "gongcha", "coco都可", "coco", "都可", "大苑子",
	"鮮茶道", "茶之魔手", "珍煮丹", "老虎堂", "鶴茶樓", "八曜和茶",
	"萬波", "得正", "再睡5分鐘", "龜記", "快可立", "葵米", "水巷茶弄",
	"日出茶太", "chatime", "歇腳亭", "sharetea", "天仁茗茶", "天仁",
}

// ---------------- 容量與冰塊規則 ----------------

// SizeRule 具名杯型規則，依表序比對、先中先贏
type SizeRule struct {
	Tokens  []string
	Factor  float64
	LabelZH string
	LabelEN string
}

// sizeRules 順序重要：特大杯必須在大杯之前
var sizeRules = []SizeRule{
	{Tokens: []string{"特大杯", "特大", "x-large", "xl杯"}, Factor: 1.45, LabelZH: "特大杯", LabelEN: "x-large"},
	{Tokens: []string{"大杯", "large"}, Factor: 1.25, LabelZH: "大杯", LabelEN: "large"},
	{Tokens: []string{"中杯", "medium", "regular"}, Factor: 1.0, LabelZH: "中杯", LabelEN: "medium"},
	{Tokens: []string{"小杯", "small"}, Factor: 0.8, LabelZH: "小杯", LabelEN: "small"},
}

// SugarRule 具名糖度規則
type SugarRule struct {
	Tokens  []string
	Ratio   float64
	LabelZH string
	LabelEN string
}

// sugarRules 具名等級優先於分數與百分比樣式
var sugarRules = []SugarRule{
	{Tokens: []string{"無糖", "no sugar", "sugar-free", "sugar free"}, Ratio: 0.0, LabelZH: "無糖", LabelEN: "sugar-free"},
	{Tokens: []string{"微糖"}, Ratio: 0.25, LabelZH: "微糖", LabelEN: "light sugar"},
	{Tokens: []string{"少糖"}, Ratio: 0.3, LabelZH: "少糖", LabelEN: "less sugar"},
	{Tokens: []string{"半糖", "half sugar"}, Ratio: 0.5, LabelZH: "半糖", LabelEN: "half sugar"},
	{Tokens: []string{"七分糖"}, Ratio: 0.7, LabelZH: "七分糖", LabelEN: "70% sugar"},
	{Tokens: []string{"全糖", "正常糖", "full sugar"}, Ratio: 1.0, LabelZH: "全糖", LabelEN: "full sugar"},
}

// IceRule 冰塊/溫度規則，只記錄標籤、不影響營養計算
type IceRule struct {
	Tokens  []string
	LabelZH string
	LabelEN string
}

var iceRules = []IceRule{
	{Tokens: []string{"去冰", "no ice"}, LabelZH: "去冰", LabelEN: "no ice"},
	{Tokens: []string{"微冰"}, LabelZH: "微冰", LabelEN: "light ice"},
	{Tokens: []string{"少冰", "less ice"}, LabelZH: "少冰", LabelEN: "less ice"},
	{Tokens: []string{"正常冰", "加冰"}, LabelZH: "正常冰", LabelEN: "regular ice"},
	{Tokens: []string{"多冰"}, LabelZH: "多冰", LabelEN: "extra ice"},
	{Tokens: []string{"常溫", "room temperature"}, LabelZH: "常溫", LabelEN: "room temperature"},
	{Tokens: []string{"溫熱", "溫的"}, LabelZH: "溫", LabelEN: "warm"},
	{Tokens: []string{"熱的", "熱飲", "hot"}, LabelZH: "熱", LabelEN: "hot"},
}

// ---------------- 配料表 ----------------

// ToppingDefinition 靜態配料定義：詞彙組、雙語顯示名與固定每份營養增量。
// 增量不隨杯型縮放。
type ToppingDefinition struct {
	Canonical string
	Tokens    []string
	NameZH    string
	NameEN    string
	Delta     catalog.Macros
}

var toppingTable = []ToppingDefinition{
	{Canonical: "boba", Tokens: []string{"珍珠", "波霸", "boba", "pearl"}, NameZH: "珍珠", NameEN: "boba pearls", Delta: catalog.Macros{Carbs: 35, Sodium: 10}},
	{Canonical: "mini_boba", Tokens: []string{"小珍珠", "mini boba"}, NameZH: "小珍珠", NameEN: "mini boba", Delta: catalog.Macros{Carbs: 30, Sodium: 8}},
	{Canonical: "rice_noodle_jelly", Tokens: []string{"粉條"}, NameZH: "粉條", NameEN: "rice noodle jelly", Delta: catalog.Macros{Carbs: 22}},
	{Canonical: "rice_jelly", Tokens: []string{"粉粿"}, NameZH: "粉粿", NameEN: "rice jelly", Delta: catalog.Macros{Carbs: 24}},
	{Canonical: "mitaimu", Tokens: []string{"米苔目"}, NameZH: "米苔目", NameEN: "rice vermicelli jelly", Delta: catalog.Macros{Carbs: 20}},
	{Canonical: "coconut_jelly", Tokens: []string{"椰果", "coconut jelly"}, NameZH: "椰果", NameEN: "coconut jelly", Delta: catalog.Macros{Carbs: 15}},
	{Canonical: "pudding", Tokens: []string{"布丁", "pudding"}, NameZH: "布丁", NameEN: "pudding", Delta: catalog.Macros{Protein: 2, Carbs: 15, Fat: 3, Sodium: 35}},
	{Canonical: "grass_jelly", Tokens: []string{"仙草凍", "仙草", "grass jelly"}, NameZH: "仙草凍", NameEN: "grass jelly", Delta: catalog.Macros{Carbs: 10}},
	{Canonical: "cheese_foam", Tokens: []string{"奶蓋", "芝士奶蓋", "cheese foam"}, NameZH: "奶蓋", NameEN: "cheese foam", Delta: catalog.Macros{Protein: 2, Carbs: 6, Fat: 10, Sodium: 90}},
	{Canonical: "aiyu", Tokens: []string{"愛玉", "aiyu"}, NameZH: "愛玉", NameEN: "aiyu jelly", Delta: catalog.Macros{Carbs: 5}},
	{Canonical: "agar", Tokens: []string{"寒天", "agar"}, NameZH: "寒天", NameEN: "agar jelly", Delta: catalog.Macros{Carbs: 4}},
	{Canonical: "konjac", Tokens: []string{"蒟蒻", "konjac"}, NameZH: "蒟蒻", NameEN: "konjac jelly", Delta: catalog.Macros{Carbs: 6}},
	{Canonical: "red_bean", Tokens: []string{"紅豆", "red bean"}, NameZH: "紅豆", NameEN: "red bean", Delta: catalog.Macros{Protein: 3, Carbs: 25}},
	{Canonical: "mung_bean", Tokens: []string{"綠豆", "mung bean"}, NameZH: "綠豆", NameEN: "mung bean", Delta: catalog.Macros{Protein: 3, Carbs: 22}},
	{Canonical: "taro_ball", Tokens: []string{"芋圓", "taro ball"}, NameZH: "芋圓", NameEN: "taro balls", Delta: catalog.Macros{Carbs: 28}},
	{Canonical: "sweet_potato_ball", Tokens: []string{"地瓜圓", "sweet potato ball"}, NameZH: "地瓜圓", NameEN: "sweet potato balls", Delta: catalog.Macros{Carbs: 27}},
	{Canonical: "taro_paste", Tokens: []string{"芋泥", "taro paste"}, NameZH: "芋泥", NameEN: "taro paste", Delta: catalog.Macros{Protein: 1, Carbs: 30, Fat: 2}},
	{Canonical: "aloe", Tokens: []string{"蘆薈", "aloe"}, NameZH: "蘆薈", NameEN: "aloe vera", Delta: catalog.Macros{Carbs: 8}},
	{Canonical: "sago", Tokens: []string{"西谷米", "西米露", "sago"}, NameZH: "西谷米", NameEN: "sago", Delta: catalog.Macros{Carbs: 18}},
	{Canonical: "coffee_jelly", Tokens: []string{"咖啡凍", "coffee jelly"}, NameZH: "咖啡凍", NameEN: "coffee jelly", Delta: catalog.Macros{Carbs: 12}},
	{Canonical: "tea_jelly", Tokens: []string{"茶凍", "tea jelly"}, NameZH: "茶凍", NameEN: "tea jelly", Delta: catalog.Macros{Carbs: 11}},
	{Canonical: "fruit_jelly", Tokens: []string{"果凍", "fruit jelly"}, NameZH: "果凍", NameEN: "fruit jelly", Delta: catalog.Macros{Carbs: 13}},
	{Canonical: "panna_cotta", Tokens: []string{"奶酪", "panna cotta"}, NameZH: "奶酪", NameEN: "panna cotta", Delta: catalog.Macros{Protein: 2, Carbs: 14, Fat: 5, Sodium: 30}},
	{Canonical: "chia_seed", Tokens: []string{"奇亞籽", "chia"}, NameZH: "奇亞籽", NameEN: "chia seeds", Delta: catalog.Macros{Protein: 2, Carbs: 5, Fat: 3}},
	{Canonical: "grapefruit_pulp", Tokens: []string{"葡萄柚果粒", "柚子果粒", "grapefruit pulp"}, NameZH: "葡萄柚果粒", NameEN: "grapefruit pulp", Delta: catalog.Macros{Carbs: 9}},
	{Canonical: "popping_boba", Tokens: []string{"爆爆珠", "魚蛋", "popping boba"}, NameZH: "爆爆珠", NameEN: "popping boba", Delta: catalog.Macros{Carbs: 16}},
	{Canonical: "herb_jelly_tofu", Tokens: []string{"豆花", "tofu pudding"}, NameZH: "豆花", NameEN: "tofu pudding", Delta: catalog.Macros{Protein: 4, Carbs: 10, Fat: 2}},
	{Canonical: "oat", Tokens: []string{"燕麥粒"}, NameZH: "燕麥粒", NameEN: "oats", Delta: catalog.Macros{Protein: 2, Carbs: 14, Fat: 1}},
	{Canonical: "basil_seed", Tokens: []string{"小紫蘇", "山粉圓", "basil seed"}, NameZH: "山粉圓", NameEN: "basil seeds", Delta: catalog.Macros{Protein: 1, Carbs: 6, Fat: 1}},
	{Canonical: "brown_sugar_jelly", Tokens: []string{"黑糖凍", "brown sugar jelly"}, NameZH: "黑糖凍", NameEN: "brown sugar jelly", Delta: catalog.Macros{Carbs: 17}},
}

// ---------------- 樣式 ----------------

var (
	// volumePattern 明確容量「NNN ml/cc」
	volumePattern = regexp.MustCompile(`(?i)(\d{2,4})\s*(ml|cc|毫升)`)

	// fractionSugarPattern 中文分數糖度「X分糖」
	fractionSugarPattern = regexp.MustCompile(`([零一二兩三四五六七八九十]{1,3})分糖`)

	// percentSugarPattern 百分比糖度「NN%糖 / NN% sugar」
	percentSugarPattern = regexp.MustCompile(`(?i)(\d{1,3})\s*%?\s*(糖|sugar)`)
)

// stripPatterns 產生「精簡查詢」時依序套用的剝除樣式。
// 順序重要：品牌在前，接著杯型、容量、糖度、冰塊、加料，樣式會互相重疊。
var stripPatterns = buildStripPatterns()

func buildStripPatterns() []*regexp.Regexp {
	patterns := []*regexp.Regexp{
		tokenAlternation(shopBrandTokens),
		regexp.MustCompile(`(?i)特大杯|大杯|中杯|小杯|x-?large|large|medium|small|regular`),
		volumePattern,
		regexp.MustCompile(`(?i)無糖|微糖|少糖|半糖|全糖|正常糖|[零一二兩三四五六七八九十]{1,2}分糖|\d{1,3}\s*%?\s*(糖|sugar)|no sugar|sugar[- ]free|half sugar|full sugar`),
		regexp.MustCompile(`(?i)去冰|微冰|少冰|正常冰|多冰|加冰|常溫|溫熱|溫的|熱的|熱飲|冰的|no ice|less ice|hot|iced`),
	}
	patterns = append(patterns, toppingStripPattern())
	return patterns
}

// tokenAlternation 將詞彙表組成單一 alternation，長詞在前避免被短詞吃掉
func tokenAlternation(tokens []string) *regexp.Regexp {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if len(sorted[j]) > len(sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	quoted := make([]string, 0, len(sorted))
	for _, t := range sorted {
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	alt := "(?i)" + quoted[0]
	for _, q := range quoted[1:] {
		alt += "|" + q
	}
	return regexp.MustCompile(alt)
}

// toppingStripPattern 「加Ｘ」加料片語
func toppingStripPattern() *regexp.Regexp {
	var tokens []string
	for _, t := range toppingTable {
		tokens = append(tokens, t.Tokens...)
	}
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if len(sorted[j]) > len(sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	alt := regexp.QuoteMeta(sorted[0])
	for _, t := range sorted[1:] {
		alt += "|" + regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`加(` + alt + `)`)
}

// ---------------- 基底飲品正規化規則 ----------------

// CanonicalRule 詞彙組 → 正規基底飲品名，依表序比對
type CanonicalRule struct {
	Tokens    []string
	Canonical string
}

var canonicalRules = []CanonicalRule{
	{Tokens: []string{"珍珠奶茶", "波霸奶茶", "bubble tea", "boba"}, Canonical: "珍珠奶茶"},
	{Tokens: []string{"鮮奶茶"}, Canonical: "鮮奶茶"},
	{Tokens: []string{"奶茶", "milk tea"}, Canonical: "奶茶"},
	{Tokens: []string{"拿鐵", "latte", "卡布奇諾", "cappuccino", "摩卡", "mocha"}, Canonical: "拿鐵"},
	{Tokens: []string{"美式", "americano", "黑咖啡"}, Canonical: "美式咖啡"},
	{Tokens: []string{"咖啡", "coffee", "espresso", "濃縮"}, Canonical: "咖啡"},
	{Tokens: []string{"黑豆漿"}, Canonical: "黑豆漿"},
	{Tokens: []string{"豆漿", "soy milk"}, Canonical: "豆漿"},
	{Tokens: []string{"抹茶", "matcha"}, Canonical: "抹茶"},
	{Tokens: []string{"綠茶", "green tea"}, Canonical: "綠茶"},
	{Tokens: []string{"紅茶", "black tea"}, Canonical: "紅茶"},
	{Tokens: []string{"烏龍", "oolong", "鐵觀音", "四季春", "金萱"}, Canonical: "烏龍茶"},
	{Tokens: []string{"冬瓜茶", "winter melon tea"}, Canonical: "冬瓜茶"},
	{Tokens: []string{"檸檬紅茶", "檸檬茶", "lemon tea"}, Canonical: "檸檬紅茶"},
	{Tokens: []string{"果汁", "juice", "柳橙汁", "蘋果汁", "葡萄汁", "西瓜汁", "芭樂汁"}, Canonical: "果汁"},
	{Tokens: []string{"可樂", "cola"}, Canonical: "可樂"},
	{Tokens: []string{"汽水", "soda", "雪碧", "sprite", "沙士"}, Canonical: "汽水"},
	{Tokens: []string{"鮮奶", "牛奶", "milk"}, Canonical: "鮮奶"},
	{Tokens: []string{"優酪乳", "養樂多", "yakult"}, Canonical: "優酪乳"},
	{Tokens: []string{"可可", "cocoa", "巧克力牛奶", "chocolate milk"}, Canonical: "可可"},
}

// weakTeaFallback 沒有任何規則命中但文字含「茶」時的弱回退
const weakTeaFallback = "青茶"
