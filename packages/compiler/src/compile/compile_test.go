package compile_test

import (
	"encoding/json"
	"testing"

	"vgc-go/packages/compiler/src/compile"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"
)

func compileSpec(t *testing.T, source string) *vega.Spec {
	t.Helper()
	var s spec.Spec
	if err := json.Unmarshal([]byte(source), &s); err != nil {
		t.Fatalf("parse spec: %v", err)
	}
	out, err := compile.Compile(&s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return out
}

func TestCompile(t *testing.T) {
	t.Run("should assemble a complete interactive unit view", func(t *testing.T) {
		out := compileSpec(t, `{
			"data": {"url": "data/cars.json"},
			"mark": "point",
			"encoding": {
				"x": {"field": "Horsepower", "type": "quantitative"},
				"y": {"field": "Miles_per_Gallon", "type": "quantitative"}
			},
			"selection": {"brush": {"type": "interval"}}
		}`)

		if !vega.HasData(out.Data, "brush_store") {
			t.Error("Expected the selection store dataset")
		}
		if out.Data[0].URL != "data/cars.json" {
			t.Errorf("Expected the source url, got %q", out.Data[0].URL)
		}

		for _, name := range []string{"unit", "brush", "brush_x", "brush_tuple", "brush_modify"} {
			if !vega.HasSignal(out.Signals, name) {
				t.Errorf("Expected a %s signal", name)
			}
		}
		if out.Signals[0].Name != "unit" {
			t.Errorf("Expected the unit signal first, got %q", out.Signals[0].Name)
		}

		if len(out.Marks) != 3 {
			t.Fatalf("Expected brush background, view marks and brush frame, got %d marks", len(out.Marks))
		}
		if out.Marks[0].Name() != "brush_brush_bg" || out.Marks[2].Name() != "brush_brush" {
			t.Errorf("Unexpected mark sandwich: %s / %s", out.Marks[0].Name(), out.Marks[2].Name())
		}
		if out.Marks[1]["interactive"] != true {
			t.Error("Expected the view mark to be interactive")
		}

		if len(out.Scales) != 2 {
			t.Fatalf("Expected x and y scales, got %d", len(out.Scales))
		}
	})

	t.Run("should resolve selection-driven scale domains", func(t *testing.T) {
		out := compileSpec(t, `{
			"layer": [
				{
					"mark": "point",
					"encoding": {
						"x": {
							"field": "Horsepower", "type": "quantitative",
							"scale": {"domain": {"selection": "brush"}}
						}
					}
				},
				{
					"mark": "point",
					"encoding": {"x": {"field": "Horsepower", "type": "quantitative"}},
					"selection": {"brush": {"type": "interval", "encodings": ["x"]}}
				}
			]
		}`)

		var domainRaw *vega.SignalRef
		for _, sc := range out.Scales {
			if sc["name"] == "layer_0_x" {
				if ref, ok := sc["domainRaw"].(vega.SignalRef); ok {
					domainRaw = &ref
				}
			}
		}
		if domainRaw == nil {
			t.Fatal("Expected a domainRaw on the driven scale")
		}
		if want := `brush["Horsepower"]`; domainRaw.Signal != want {
			t.Errorf("Expected %s, got %s", want, domainRaw.Signal)
		}
	})

	t.Run("should route a scale-bound selection domain to its lifted signal", func(t *testing.T) {
		out := compileSpec(t, `{
			"layer": [
				{
					"mark": "point",
					"encoding": {
						"x": {
							"field": "Horsepower", "type": "quantitative",
							"scale": {"domain": {"selection": "zoom"}}
						}
					}
				},
				{
					"mark": "point",
					"encoding": {"x": {"field": "Horsepower", "type": "quantitative"}},
					"selection": {"zoom": {"type": "interval", "bind": "scales", "encodings": ["x"]}}
				}
			]
		}`)

		found := false
		for _, sc := range out.Scales {
			if sc["name"] != "layer_0_x" {
				continue
			}
			found = true
			ref, ok := sc["domainRaw"].(vega.SignalRef)
			if !ok {
				t.Fatal("Expected a domainRaw on the driven scale")
			}
			if want := "zoom_Horsepower"; ref.Signal != want {
				t.Errorf("Expected %s, got %s", want, ref.Signal)
			}
		}
		if !found {
			t.Fatal("Expected a layer_0_x scale")
		}
	})

	t.Run("should emit legends", func(t *testing.T) {
		out := compileSpec(t, `{
			"mark": "point",
			"encoding": {
				"x": {"field": "a", "type": "quantitative"},
				"color": {"field": "Origin", "type": "nominal"}
			}
		}`)
		if len(out.Legends) != 1 {
			t.Fatalf("Expected one legend, got %d", len(out.Legends))
		}
		if out.Legends[0]["stroke"] != "color" {
			t.Errorf("Expected the color scale under stroke, got %v", out.Legends[0]["stroke"])
		}
	})

	t.Run("should prepend the facet signal for faceted selections", func(t *testing.T) {
		out := compileSpec(t, `{
			"facet": {"column": {"field": "Origin", "type": "nominal"}},
			"spec": {
				"mark": "point",
				"encoding": {"x": {"field": "a", "type": "quantitative"}},
				"selection": {"pts": {"type": "single"}}
			}
		}`)
		if out.Signals[0].Name != "facet" {
			t.Errorf("Expected the facet signal first, got %q", out.Signals[0].Name)
		}
		if len(out.Marks) != 1 || out.Marks[0].Name() != "cell" {
			t.Fatalf("Expected the cell group mark, got %v", out.Marks)
		}
	})

	t.Run("should compile a plain view without selections", func(t *testing.T) {
		out := compileSpec(t, `{
			"mark": "bar",
			"encoding": {
				"x": {"field": "a", "type": "nominal"},
				"y": {"field": "b", "type": "quantitative"}
			}
		}`)
		if len(out.Signals) != 0 {
			t.Errorf("Expected no signals, got %v", out.Signals)
		}
		if len(out.Data) != 1 {
			t.Errorf("Expected the source dataset only, got %v", out.Data)
		}
		if out.Marks[0]["type"] != "rect" {
			t.Errorf("Expected a rect mark, got %v", out.Marks[0]["type"])
		}
	})
}
