package resolver

import (
	"reflect"
	"testing"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  珍珠奶茶  ", "珍珠奶茶"},
		{"ascii lowercased", "Bubble TEA", "bubble tea"},
		{"cjk untouched", "紅茶 Latte", "紅茶 latte"},
		{"whitespace collapsed", "大杯   半糖\t奶茶", "大杯 半糖 奶茶"},
		{"empty stays empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeQuery(tt.input); got != tt.want {
				t.Errorf("NormalizeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeQueryIdempotent(t *testing.T) {
	inputs := []string{"  Bubble Tea  ", "大杯   半糖奶茶", "LATTE 700ml"}
	for _, input := range inputs {
		once := NormalizeQuery(input)
		if twice := NormalizeQuery(once); twice != once {
			t.Errorf("NormalizeQuery not idempotent for %q: %q vs %q", input, once, twice)
		}
	}
}

func TestExpandVariantsPlainFood(t *testing.T) {
	// 非飲料查詢只有原文與去空白兩種變體
	got := ExpandVariants("排骨 便當")
	want := []string{"排骨 便當", "排骨便當"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandVariants = %v, want %v", got, want)
	}
}

func TestExpandVariantsBeverage(t *testing.T) {
	got := ExpandVariants("五十嵐 大杯 半糖 珍珠奶茶")

	if len(got) == 0 || got[0] != "五十嵐 大杯 半糖 珍珠奶茶" {
		t.Fatalf("original text must come first, got %v", got)
	}
	if !containsVariant(got, "珍珠奶茶") {
		t.Errorf("stripped variant missing: %v", got)
	}
	if len(got) > 6 {
		t.Errorf("at most 6 variants, got %d: %v", len(got), got)
	}
}

func TestExpandVariantsDeduped(t *testing.T) {
	got := ExpandVariants("奶茶")
	seen := make(map[string]bool)
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate variant %q in %v", v, got)
		}
		seen[v] = true
	}
}

func TestExpandVariantsEmpty(t *testing.T) {
	if got := ExpandVariants(""); got != nil {
		t.Errorf("empty query should expand to nothing, got %v", got)
	}
}

func containsVariant(variants []string, want string) bool {
	for _, v := range variants {
		if v == want {
			return true
		}
	}
	return false
}
