package beverage

import "testing"

func TestParseChineseNumeral(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"零", 0, true},
		{"一", 1, true},
		{"二", 2, true},
		{"兩", 2, true},
		{"三", 3, true},
		{"七", 7, true},
		{"十", 10, true},
		{"十五", 15, true},
		{"三十", 30, true},
		{"二十五", 25, true},
		{"十十", 0, false},
		{"百", 0, false},
		{"", 0, false},
		{"一二三四", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseChineseNumeral(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseChineseNumeral(%q) = (%d, %v), want (%d, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
	}
}
