package selection

import (
	"fmt"

	"vgc-go/packages/compiler/src/expression"
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/util"
	"vgc-go/packages/compiler/src/vega"
)

// legendBindingChannels are the encoding channels legend interaction
// targets.
var legendBindingChannels = []spec.Channel{
	spec.ChannelColor, spec.ChannelOpacity, spec.ChannelSize, spec.ChannelShape,
}

// InteractiveSelection is the derived view of a selection that qualifies for
// legend binding: its name, the backing store, and the projected fields.
type InteractiveSelection struct {
	Name   string
	Store  string
	Fields []string
}

// InteractiveSelections returns the selections whose projected fields
// exactly cover the fields used by this view's color/opacity/size/shape
// encodings. Only root views qualify; fields encoded with bin, aggregate or
// time-unit are disqualified. When the covering check fails, the result is
// empty and no legend binding applies.
func InteractiveSelections(m *model.UnitModel) []InteractiveSelection {
	if m.Parent() != nil {
		return nil
	}
	encFields := legendBindingFields(m)
	if len(encFields) == 0 {
		return nil
	}

	var out []InteractiveSelection
	var covered []string
	for _, sel := range m.Component().Selections() {
		fields := util.Dedup(sel.Fields())
		if len(fields) == 0 || !subset(fields, encFields) {
			continue
		}
		out = append(out, InteractiveSelection{Name: sel.Name, Store: sel.StoreName(), Fields: fields})
		covered = append(covered, fields...)
	}
	if !util.SetEqual(covered, encFields) {
		return nil
	}
	return out
}

func legendBindingFields(m *model.UnitModel) []string {
	var fields []string
	for _, ch := range legendBindingChannels {
		fd := m.FieldDef(ch)
		if fd == nil || fd.Field == "" || fd.HasBinOrAggregateOrTimeUnit() {
			continue
		}
		fields = append(fields, fd.Field)
	}
	return util.Dedup(fields)
}

func subset(a, b []string) bool {
	for _, v := range a {
		if !util.Contains(b, v) {
			return false
		}
	}
	return true
}

// BindingFor chooses the selection governing a legend field: among the
// qualifying selections that project the field, the one with the most
// projected fields wins, earliest declaration breaking ties. Returns nil
// when no qualifying selection includes the field.
func BindingFor(m *model.UnitModel, field string) *model.SelectionComponent {
	qualifying := InteractiveSelections(m)
	var best *model.SelectionComponent
	for _, cand := range qualifying {
		sel := m.Component().Selection[cand.Name]
		if sel == nil || !sel.HasField(field) {
			continue
		}
		if best == nil || len(sel.Project) > len(best.Project) {
			best = sel
		}
	}
	return best
}

// LegendMarkNames returns the event-target names of a field's legend symbol
// and label marks.
func LegendMarkNames(field string) (symbols, labels string) {
	return "symbols_" + field + "_legend", "labels_" + field + "_legend"
}

// assembleLegendBindingSignals injects the bidirectional legend wiring into
// a unit's signal list: legend clicks set the governing selection's value,
// and the selection's generic mark-click rules are gated so legend clicks do
// not double-fire.
func assembleLegendBindingSignals(m *model.UnitModel, signals []vega.Signal) []vega.Signal {
	done := map[string]bool{}
	for _, ch := range legendBindingChannels {
		fd := m.FieldDef(ch)
		if fd == nil || fd.Field == "" || fd.HasBinOrAggregateOrTimeUnit() {
			continue
		}
		sel := BindingFor(m, fd.Field)
		if sel == nil || done[sel.Name] {
			continue
		}
		done[sel.Name] = true
		if len(sel.Project) == 1 {
			signals = singleFieldBinding(m, sel, fd.Field, signals)
		} else {
			signals = multiFieldBinding(m, sel, signals)
		}
	}
	return signals
}

func singleFieldBinding(m *model.UnitModel, sel *model.SelectionComponent, field string, signals []vega.Signal) []vega.Signal {
	tuple := vega.FindSignal(signals, sel.TupleName())
	if tuple == nil {
		return signals
	}
	symbols, labels := LegendMarkNames(field)
	guard := fmt.Sprintf("!event.item || (event.item.mark.name !== %q && event.item.mark.name !== %q)",
		symbols, labels)
	for i := range tuple.On {
		tuple.On[i].Update = fmt.Sprintf("%s ? (%s) : %s", guard, tuple.On[i].Update, sel.TupleName())
	}
	tuple.On = append(tuple.On, vega.OnEvent{
		Events: fmt.Sprintf("@%s:click, @%s:click", symbols, labels),
		Update: fmt.Sprintf("{unit: %s, fields: %s, values: [datum.value]}",
			model.UnitName(m), sel.TupleFieldsName()),
		Force: true,
	})
	return signals
}

func multiFieldBinding(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal {
	var refs []interface{}
	allExpr, ignoreExpr := "", ""
	values := make([]string, len(sel.Project))

	for i, p := range sel.Project {
		legendSignal := LegendStateSignal(sel, p.Field)
		symbols, labels := LegendMarkNames(p.Field)
		signals = append(signals, vega.Signal{
			Name:  legendSignal,
			Value: nil,
			On: []vega.OnEvent{
				{
					// Latched toggle: clicking the same entry again clears it.
					Events: fmt.Sprintf("@%s:click, @%s:click", symbols, labels),
					Update: fmt.Sprintf("%s && %s.value === datum.value ? null : {value: datum.value}",
						legendSignal, legendSignal),
				},
				{
					// A click outside this field's legend clears the latch.
					Events: "click",
					Update: fmt.Sprintf("!event.item || (event.item.mark.name !== %q && event.item.mark.name !== %q) ? null : %s",
						symbols, labels, legendSignal),
				},
			},
		})
		refs = append(refs, vega.SignalRef{Signal: legendSignal})
		allExpr += legendSignal + " && "
		ignoreExpr += "!" + legendSignal + " && "
		values[i] = legendSignal + ".value"
	}
	allExpr = expression.StripTrailingAnd(allExpr)
	ignoreExpr = expression.StripTrailingAnd(ignoreExpr)

	if tuple := vega.FindSignal(signals, sel.TupleName()); tuple != nil {
		for i := range tuple.On {
			tuple.On[i].Update = fmt.Sprintf("%s ? (%s) : %s", ignoreExpr, tuple.On[i].Update, sel.TupleName())
		}
		tuple.On = append(tuple.On, vega.OnEvent{
			Events: refs,
			Update: fmt.Sprintf("%s ? {unit: %s, fields: %s, values: [%s]} : null",
				allExpr, model.UnitName(m), sel.TupleFieldsName(), joinComma(values)),
		})
	}

	// The shift-click toggle must also ignore legend-originated events.
	if toggle := vega.FindSignal(signals, sel.ToggleName()); toggle != nil {
		for i := range toggle.On {
			toggle.On[i].Update = fmt.Sprintf("(%s) && %s", toggle.On[i].Update, ignoreExpr)
		}
	}
	return signals
}

// LegendStateSignal is the name of the per-field latched legend-click signal
// of a multi-field selection.
func LegendStateSignal(sel *model.SelectionComponent, field string) string {
	return fmt.Sprintf("%s_%s_legend", sel.Name, field)
}
