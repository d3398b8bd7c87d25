package schema

import (
	"strings"
	"testing"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}
	return v
}

func TestValidate_UnitView(t *testing.T) {
	v := newValidator(t)

	errors := v.ValidateBytes([]byte(`{
		"mark": "point",
		"encoding": {
			"x": {"field": "Horsepower", "type": "quantitative"},
			"color": {"field": "Origin", "type": "nominal"}
		},
		"selection": {"brush": {"type": "interval"}}
	}`))
	if len(errors) > 0 {
		t.Errorf("expected 0 errors, got %d:", len(errors))
		for _, e := range errors {
			t.Errorf("  %s", e)
		}
	}
}

func TestValidate_MissingSelectionType(t *testing.T) {
	v := newValidator(t)

	errors := v.ValidateDocument(map[string]any{
		"mark": "point",
		"selection": map[string]any{
			"pts": map[string]any{"on": "click"},
		},
	})
	if len(errors) == 0 {
		t.Fatal("expected errors for a selection without a type")
	}
	found := false
	for _, e := range errors {
		if strings.Contains(e.Message, "type") || strings.Contains(e.Path, "pts") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected an error pointing at the selection, got: %v", errors)
	}
}

func TestValidate_BadSelectionType(t *testing.T) {
	v := newValidator(t)

	errors := v.ValidateDocument(map[string]any{
		"mark": "point",
		"selection": map[string]any{
			"pts": map[string]any{"type": "lasso"},
		},
	})
	if len(errors) == 0 {
		t.Fatal("expected errors for an unknown selection type")
	}
}

func TestValidate_UnknownTopLevelMember(t *testing.T) {
	v := newValidator(t)

	errors := v.ValidateDocument(map[string]any{
		"mark":    "point",
		"marxist": true,
	})
	if len(errors) == 0 {
		t.Fatal("expected errors for an unknown member")
	}
}

func TestValidate_SelectionDomain(t *testing.T) {
	v := newValidator(t)

	errors := v.ValidateBytes([]byte(`{
		"mark": "point",
		"encoding": {
			"x": {
				"field": "a", "type": "quantitative",
				"scale": {"domain": {"selection": "brush"}}
			}
		}
	}`))
	if len(errors) > 0 {
		t.Errorf("expected 0 errors, got: %v", errors)
	}
}

func TestValidate_ParseError(t *testing.T) {
	v := newValidator(t)

	errors := v.ValidateBytes([]byte(`{not json`))
	if len(errors) != 1 || !errors[0].ParseError {
		t.Fatalf("expected a single parse error, got: %v", errors)
	}
}
