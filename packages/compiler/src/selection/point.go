package selection

import (
	"fmt"

	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"
)

// pointCompiler backs both single and multi selections: one tuple per
// interaction, captured from the datum under the pointer. Multi-selection
// accumulation is layered on by the toggle transform.
var pointCompiler = &typeCompiler{
	signals:    pointSignals,
	modifyExpr: pointModifyExpr,
}

func pointSignals(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal {
	values := make([]string, len(sel.Project))
	fields := make([]interface{}, len(sel.Project))
	for i, p := range sel.Project {
		field := tupleField(p)
		values[i] = fmt.Sprintf("datum[%q]", field)
		desc := map[string]interface{}{"field": field}
		if p.Channel != "" {
			desc["channel"] = string(p.Channel)
		}
		fields[i] = desc
	}

	update := fmt.Sprintf(
		"datum && item().mark.marktype !== 'group' ? {unit: %s, fields: %s, values: [%s]} : null",
		model.UnitName(m), sel.TupleFieldsName(), joinComma(values))

	signals = append(signals,
		vega.Signal{Name: sel.TupleFieldsName(), Value: fields},
		vega.Signal{
			Name: sel.TupleName(),
			On: []vega.OnEvent{{
				Events: sel.Events,
				Update: update,
				Force:  true,
			}},
		})
	return signals
}

func pointModifyExpr(m *model.UnitModel, sel *model.SelectionComponent) string {
	if sel.Resolve == spec.ResolveGlobal {
		return sel.TupleName() + ", true"
	}
	return fmt.Sprintf("%s, {unit: %s}", sel.TupleName(), model.UnitName(m))
}

// tupleField is the store-facing field name of a projection: time-unit
// projections compare against the normalized field.
func tupleField(p model.ProjectEntry) string {
	if p.TimeUnit != "" {
		return p.TimeUnit + "_" + p.Field
	}
	return p.Field
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
