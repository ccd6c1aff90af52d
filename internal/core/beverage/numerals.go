package beverage

// chineseDigits 個位數字，兩在口語糖度裡等同二
var chineseDigits = map[rune]int{
	'零': 0,
	'一': 1,
	'二': 2,
	'兩': 2,
	'三': 3,
	'四': 4,
	'五': 5,
	'六': 6,
	'七': 7,
	'八': 8,
	'九': 9,
	'十': 10,
}

// parseChineseNumeral 解析 0~99 的中文數字：
// 單字（零~十）、十X、X十、X十Y。解析失敗回傳 ok=false。
func parseChineseNumeral(text string) (int, bool) {
	runes := []rune(text)
	switch len(runes) {
	case 1:
		v, ok := chineseDigits[runes[0]]
		return v, ok
	case 2:
		first, ok1 := chineseDigits[runes[0]]
		second, ok2 := chineseDigits[runes[1]]
		if !ok1 || !ok2 {
			return 0, false
		}
		if runes[0] == '十' {
			// 十X = 10 + X
			if second == 10 {
				return 0, false
			}
			return 10 + second, true
		}
		if runes[1] == '十' {
			// X十 = X * 10
			if first == 10 {
				return 0, false
			}
			return first * 10, true
		}
		return 0, false
	case 3:
		first, ok1 := chineseDigits[runes[0]]
		third, ok3 := chineseDigits[runes[2]]
		if !ok1 || !ok3 || runes[1] != '十' || first == 10 || third == 10 {
			return 0, false
		}
		return first*10 + third, true
	default:
		return 0, false
	}
}
