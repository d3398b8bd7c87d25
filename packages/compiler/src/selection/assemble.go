package selection

import (
	"fmt"

	"vgc-go/packages/compiler/src/log"
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"
)

// AssembleUnitSelectionSignals produces the ordered signal list for a unit
// view's selections: per-selection type signals, transform signals, and the
// modify signal that upserts into the selection's store. The signal slice is
// threaded through every stage as an explicit accumulator.
//
// Callers must not invoke this twice for the same view; signal name
// collisions are not defended against here.
func AssembleUnitSelectionSignals(m *model.UnitModel, signals []vega.Signal) []vega.Signal {
	for _, sel := range m.Component().Selections() {
		if sel.Type == spec.SelectionInterval && !intervalProjectsPosition(sel) {
			log.Warn("interval selection %q has no positional encoding to brush; skipping its signals", sel.Name)
			continue
		}
		tc := compilerFor(sel)
		if tc.signals != nil {
			signals = tc.signals(m, sel, signals)
		}
		modifyExpr := tc.modifyExpr(m, sel)
		for _, tx := range transforms {
			if !tx.has(sel) {
				continue
			}
			if tx.signals != nil {
				signals = tx.signals(m, sel, signals)
			}
			if tx.modifyExpr != nil {
				modifyExpr = tx.modifyExpr(m, sel, modifyExpr)
			}
		}
		signals = append(signals, vega.Signal{
			Name: sel.ModifyName(),
			On: []vega.OnEvent{{
				Events: vega.SignalRef{Signal: sel.TupleName()},
				Update: fmt.Sprintf("modify(%q, %s)", sel.StoreName(), modifyExpr),
			}},
		})
	}
	if len(InteractiveSelections(m)) > 0 {
		signals = assembleLegendBindingSignals(m, signals)
	}
	return signals
}

// AssembleTopLevelSignals lifts per-selection state to the shared top level:
// one resolution signal per selection (unless one of that name is already
// present) plus any type- or transform-contributed top-level signals. When
// any selection exists, a `unit` signal tracking the mark group under the
// pointer is prepended once.
func AssembleTopLevelSignals(m *model.UnitModel, signals []vega.Signal) []vega.Signal {
	hasSelections := false
	for _, sel := range m.Component().Selections() {
		hasSelections = true
		if !vega.HasSignal(signals, sel.Name) {
			update := fmt.Sprintf("vlSelectionResolve(%q)", sel.StoreName())
			if sel.Resolve != spec.ResolveGlobal {
				update = fmt.Sprintf("vlSelectionResolve(%q, %q)", sel.StoreName(), sel.Resolve)
			}
			signals = append(signals, vega.Signal{Name: sel.Name, Update: update})
		}
		tc := compilerFor(sel)
		if tc.topLevelSignals != nil {
			signals = tc.topLevelSignals(m, sel, signals)
		}
		for _, tx := range transforms {
			if tx.has(sel) && tx.topLevelSignals != nil {
				signals = tx.topLevelSignals(m, sel, signals)
			}
		}
	}
	if hasSelections && !vega.HasSignal(signals, "unit") {
		unit := vega.Signal{
			Name:  "unit",
			Value: map[string]interface{}{},
			On: []vega.OnEvent{{
				Events: "pointermove",
				Update: "isTuple(group()) ? group() : unit",
			}},
		}
		signals = append([]vega.Signal{unit}, signals...)
	}
	return signals
}

// AssembleFacetSignals prepends the `facet` signal tracking which facet cell
// datum the pointer is over, when the facet's child carries any selection.
func AssembleFacetSignals(m *model.FacetModel, signals []vega.Signal) []vega.Signal {
	if len(m.Child().Component().Selection) == 0 {
		return signals
	}
	facet := vega.Signal{
		Name:  "facet",
		Value: map[string]interface{}{},
		On: []vega.OnEvent{{
			Events: "pointermove",
			Update: `isTuple(facet) ? facet : group("cell").datum`,
		}},
	}
	return append([]vega.Signal{facet}, signals...)
}

// AssembleUnitSelectionData ensures one store dataset exists per selection.
// Stores already present are left alone, so repeated assembly never
// duplicates them.
func AssembleUnitSelectionData(m *model.UnitModel, data []vega.Data) []vega.Data {
	for _, sel := range m.Component().Selections() {
		if !vega.HasData(data, sel.StoreName()) {
			data = append(data, vega.Data{Name: sel.StoreName()})
		}
	}
	return data
}

// AssembleUnitSelectionMarks lets each selection type and transform
// contribute marks around the view's own, merging into the incoming list.
func AssembleUnitSelectionMarks(m *model.UnitModel, marks []vega.Mark) []vega.Mark {
	for _, sel := range m.Component().Selections() {
		tc := compilerFor(sel)
		if tc.marks != nil {
			marks = tc.marks(m, sel, marks)
		}
		for _, tx := range transforms {
			if tx.has(sel) && tx.marks != nil {
				marks = tx.marks(m, sel, marks)
			}
		}
	}
	return marks
}

// AssembleLayerSelectionMarks accumulates mark contributions from a layered
// view's leaf children in child order.
func AssembleLayerSelectionMarks(m *model.LayerModel, marks []vega.Mark) []vega.Mark {
	for _, child := range m.Children() {
		if unit, ok := child.(*model.UnitModel); ok {
			marks = AssembleUnitSelectionMarks(unit, marks)
		}
	}
	return marks
}
