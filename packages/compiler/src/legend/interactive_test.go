package legend_test

import (
	"testing"

	"vgc-go/packages/compiler/src/spec"

	"github.com/google/go-cmp/cmp"
)

func TestInteractiveEncode(t *testing.T) {
	t.Run("should add the dimming conditional to symbols and labels", func(t *testing.T) {
		unit := buildUnit(t, `{
			"mark": "point",
			"encoding": {"color": {"field": "Origin", "type": "nominal"}},
			"selection": {"sel": {"type": "single", "fields": ["Origin"]}}
		}`)
		c := unit.Component().Legends[spec.ChannelColor]
		if c == nil {
			t.Fatal("Expected a color component")
		}

		for _, part := range []string{spec.PartSymbols, spec.PartLabels} {
			entry := c.ImplicitEncode[part]
			if entry == nil {
				t.Fatalf("Expected an interactive %s entry", part)
			}
			if !entry.Interactive {
				t.Errorf("Expected %s to be interactive", part)
			}

			conds, ok := entry.Update["opacity"].([]interface{})
			if !ok || len(conds) != 2 {
				t.Fatalf("Expected a two-branch opacity conditional on %s, got %v", part, entry.Update["opacity"])
			}
			test := conds[0].(map[string]interface{})["test"]
			wantTest := `!(length(data("sel_store"))) || (vlSelectionTest("sel_store", {"Origin": datum.value}))`
			if test != wantTest {
				t.Errorf("Expected %s, got %v", wantTest, test)
			}
			wantDim := map[string]interface{}{"value": 0.2}
			if diff := cmp.Diff(wantDim, conds[1]); diff != "" {
				t.Errorf("dim branch mismatch (-want +got):\n%s", diff)
			}
		}

		symbols := c.ImplicitEncode[spec.PartSymbols]
		if symbols.Name != "symbols_Origin_legend" {
			t.Errorf("Expected symbols_Origin_legend, got %q", symbols.Name)
		}
		labels := c.ImplicitEncode[spec.PartLabels]
		if labels.Name != "labels_Origin_legend" {
			t.Errorf("Expected labels_Origin_legend, got %q", labels.Name)
		}
	})

	t.Run("should use a neutral stroke for opacity legends", func(t *testing.T) {
		unit := buildUnit(t, `{
			"mark": "point",
			"encoding": {"opacity": {"field": "Origin", "type": "nominal"}},
			"selection": {"sel": {"type": "single", "fields": ["Origin"]}}
		}`)
		c := unit.Component().Legends[spec.ChannelOpacity]
		entry := c.ImplicitEncode[spec.PartSymbols]
		conds, ok := entry.Update["stroke"].([]interface{})
		if !ok || len(conds) != 2 {
			t.Fatalf("Expected a stroke conditional, got %v", entry.Update["stroke"])
		}
		wantNeutral := map[string]interface{}{"value": "#aaaaaa"}
		if diff := cmp.Diff(wantNeutral, conds[1]); diff != "" {
			t.Errorf("neutral branch mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should test the latched signal for multi-field selections", func(t *testing.T) {
		unit := buildUnit(t, `{
			"mark": "point",
			"encoding": {
				"color": {"field": "Origin", "type": "nominal"},
				"size": {"field": "Cylinders", "type": "ordinal"}
			},
			"selection": {"sel": {"type": "single", "fields": ["Origin", "Cylinders"]}}
		}`)
		c := unit.Component().Legends[spec.ChannelColor]
		entry := c.ImplicitEncode[spec.PartSymbols]
		conds := entry.Update["opacity"].([]interface{})
		test := conds[0].(map[string]interface{})["test"]
		wantTest := `!(length(data("sel_store"))) || (sel_Origin_legend && sel_Origin_legend.value === datum.value)`
		if test != wantTest {
			t.Errorf("Expected %s, got %v", wantTest, test)
		}
	})

	t.Run("should leave legends alone without a qualifying selection", func(t *testing.T) {
		unit := buildUnit(t, `{
			"mark": "point",
			"encoding": {"color": {"field": "Origin", "type": "nominal"}},
			"selection": {"sel": {"type": "single"}}
		}`)
		c := unit.Component().Legends[spec.ChannelColor]
		if entry := c.ImplicitEncode[spec.PartSymbols]; entry != nil && entry.Interactive {
			t.Error("Expected no interactive rewrite")
		}
	})
}
