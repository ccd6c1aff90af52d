package nutrition

import (
	"testing"

	"food-resolver/internal/core/catalog"
)

func TestNormalizeNumbersPassThrough(t *testing.T) {
	m := Normalize(catalog.RawMacros{
		Protein: catalog.RawNumber(12),
		Carbs:   catalog.RawNumber(45.5),
		Fat:     catalog.RawNumber(8),
		Sodium:  catalog.RawNumber(600),
	})

	if m.Protein != 12 || m.Carbs != 45.5 || m.Fat != 8 {
		t.Errorf("unexpected gram values: %+v", m)
	}
	if m.Sodium != 600 {
		t.Errorf("numeric sodium should stay in mg, got %v", m.Sodium)
	}
}

func TestNormalizeUnitStrings(t *testing.T) {
	tests := []struct {
		name string
		raw  catalog.RawMacroValue
		want float64
	}{
		{"plain grams", catalog.RawText("3g"), 3},
		{"grams with space", catalog.RawText("12.5 g"), 12.5},
		{"milligrams to grams", catalog.RawText("450mg"), 0.45},
		{"bare number string", catalog.RawText("20"), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Normalize(catalog.RawMacros{Protein: tt.raw})
			if m.Protein != tt.want {
				t.Errorf("protein = %v, want %v", m.Protein, tt.want)
			}
		})
	}
}

func TestNormalizeSodiumUnits(t *testing.T) {
	tests := []struct {
		name string
		raw  catalog.RawMacroValue
		want float64
	}{
		{"numeric is already mg", catalog.RawNumber(800), 800},
		{"mg string", catalog.RawText("650mg"), 650},
		{"gram string converts up", catalog.RawText("0.6g"), 600},
		{"bare number string is mg", catalog.RawText("900"), 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Normalize(catalog.RawMacros{Sodium: tt.raw})
			if m.Sodium != tt.want {
				t.Errorf("sodium = %v, want %v", m.Sodium, tt.want)
			}
		})
	}
}

func TestNormalizeQualitativeLevels(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"低", 30},
		{"中", 55},
		{"高", 80},
		{"low", 30},
		{"medium", 55},
		{"high", 80},
	}

	for _, tt := range tests {
		m := Normalize(catalog.RawMacros{Carbs: catalog.RawText(tt.text)})
		if m.Carbs != tt.want {
			t.Errorf("carbs(%q) = %v, want %v", tt.text, m.Carbs, tt.want)
		}
	}
}

func TestNormalizeEmptyAndGarbage(t *testing.T) {
	m := Normalize(catalog.RawMacros{
		Protein: catalog.RawMacroValue{Kind: catalog.MacroEmpty},
		Carbs:   catalog.RawText("看情況"),
		Fat:     catalog.RawText(""),
	})

	if m.Protein != 0 || m.Carbs != 0 || m.Fat != 0 || m.Sodium != 0 {
		t.Errorf("unparsable values should normalize to zero, got %+v", m)
	}
}

func TestNormalizeClampsNegative(t *testing.T) {
	m := Normalize(catalog.RawMacros{
		Protein: catalog.RawNumber(-5),
		Sodium:  catalog.RawNumber(-100),
	})

	if m.Protein != 0 || m.Sodium != 0 {
		t.Errorf("negative values must clamp to zero, got %+v", m)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := catalog.RawMacros{
		Protein: catalog.RawText("高"),
		Carbs:   catalog.RawText("450mg"),
		Fat:     catalog.RawNumber(10),
		Sodium:  catalog.RawText("0.5g"),
	}

	first := Normalize(raw)
	again := Normalize(catalog.RawMacros{
		Protein: catalog.RawNumber(first.Protein),
		Carbs:   catalog.RawNumber(first.Carbs),
		Fat:     catalog.RawNumber(first.Fat),
		Sodium:  catalog.RawNumber(first.Sodium),
	})

	if first != again {
		t.Errorf("normalizing normalized values changed them: %+v vs %+v", first, again)
	}
}
