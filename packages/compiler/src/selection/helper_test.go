package selection_test

import (
	"encoding/json"
	"sort"
	"testing"

	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/selection"
	"vgc-go/packages/compiler/src/spec"
)

// buildModel parses a JSON view spec, builds the model tree and compiles the
// declared selections on every unit, children first.
func buildModel(t *testing.T, source string) model.Model {
	t.Helper()
	var s spec.Spec
	if err := json.Unmarshal([]byte(source), &s); err != nil {
		t.Fatalf("parse spec: %v", err)
	}
	m, err := model.Build(&s, spec.MergeConfig(s.Config))
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	parseAll(m, &s)
	return m
}

func buildUnit(t *testing.T, source string) *model.UnitModel {
	t.Helper()
	m := buildModel(t, source)
	unit, ok := m.(*model.UnitModel)
	if !ok {
		t.Fatalf("Expected a unit model, got %T", m)
	}
	return unit
}

func parseAll(m model.Model, s *spec.Spec) {
	switch {
	case s.IsLayer():
		for i, child := range m.Children() {
			parseAll(child, s.Layer[i])
		}
	case s.IsFacet():
		parseAll(m.Children()[0], s.Spec)
	default:
		unit := m.(*model.UnitModel)
		if len(s.Selection) > 0 {
			names := make([]string, 0, len(s.Selection))
			for name := range s.Selection {
				names = append(names, name)
			}
			sort.Strings(names)
			selection.ParseUnitSelection(unit, s.Selection, names)
		}
	}
}
