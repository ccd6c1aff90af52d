package catalog

import (
	"encoding/json"
	"testing"
)

func TestRawMacroValueUnmarshal(t *testing.T) {
	var raw RawMacros
	payload := `{"protein": 12.5, "carbs": "高", "fat": null, "sodium": "600mg"}`
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if raw.Protein.Kind != MacroNumber || raw.Protein.Number != 12.5 {
		t.Errorf("protein = %+v, want number 12.5", raw.Protein)
	}
	if raw.Carbs.Kind != MacroText || raw.Carbs.Text != "高" {
		t.Errorf("carbs = %+v, want text 高", raw.Carbs)
	}
	if raw.Fat.Kind != MacroEmpty {
		t.Errorf("null fat should be empty, got %+v", raw.Fat)
	}
	if raw.Sodium.Kind != MacroText || raw.Sodium.Text != "600mg" {
		t.Errorf("sodium = %+v, want text 600mg", raw.Sodium)
	}
}

func TestRawMacroValueUnmarshalGarbage(t *testing.T) {
	// 歷史資料偶有布林值混進營養欄位，一律當作無資料
	var v RawMacroValue
	if err := json.Unmarshal([]byte("true"), &v); err != nil {
		t.Fatalf("boolean should not error: %v", err)
	}
	if v.Kind != MacroEmpty {
		t.Errorf("boolean should map to empty, got %+v", v)
	}
}
