package selection

import (
	"fmt"

	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"
)

// intervalCompiler implements drag-brush selections: per-channel visual
// range signals, inverted data-range signals, and the brush marks.
var intervalCompiler = &typeCompiler{
	signals:    intervalSignals,
	modifyExpr: intervalModifyExpr,
	marks:      intervalMarks,
}

// intervalProjectsPosition reports whether an interval selection carries a
// positional projection the brush machinery can drive. An interval on a
// view without positional encodings has nothing to brush.
func intervalProjectsPosition(sel *model.SelectionComponent) bool {
	for _, p := range sel.Project {
		if p.Channel == spec.ChannelX || p.Channel == spec.ChannelY {
			return true
		}
	}
	return false
}

func intervalSignals(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal {
	var dataSignals []vega.SignalRef
	var dataNames []string
	fields := make([]interface{}, 0, len(sel.Project))

	for _, p := range sel.Project {
		if p.Channel != spec.ChannelX && p.Channel != spec.ChannelY {
			continue
		}
		visual := sel.Name + "_" + string(p.Channel)
		data := sel.Name + "_" + tupleField(p)
		fields = append(fields, map[string]interface{}{
			"field":   tupleField(p),
			"channel": string(p.Channel),
			"type":    "R",
		})

		if !sel.BindsScales() {
			pos, extent := "x", "width"
			if p.Channel == spec.ChannelY {
				pos, extent = "y", "height"
			}
			signals = append(signals, vega.Signal{
				Name:  visual,
				Value: []interface{}{},
				On: []vega.OnEvent{
					{
						Events: "pointerdown",
						Update: fmt.Sprintf("[%s(unit), %s(unit)]", pos, pos),
					},
					{
						Events: sel.Events,
						Update: fmt.Sprintf("[%s[0], clamp(%s(unit), 0, %s)]", visual, pos, extent),
					},
				},
			})
			signals = append(signals, vega.Signal{
				Name: data,
				On: []vega.OnEvent{{
					Events: vega.SignalRef{Signal: visual},
					Update: fmt.Sprintf("%s[0] === %s[1] ? null : invert(%q, %s)",
						visual, visual, m.Scale(p.Channel).Name, visual),
				}},
			})
		} else {
			// Scale-bound intervals listen to scale domains instead of
			// pointer geometry; the scale-bindings transform rewires these.
			signals = append(signals, vega.Signal{Name: data, On: []vega.OnEvent{}})
		}
		dataSignals = append(dataSignals, vega.SignalRef{Signal: data})
		dataNames = append(dataNames, data)
	}

	guard := ""
	for i, n := range dataNames {
		if i > 0 {
			guard += " && "
		}
		guard += n
	}
	refs := make([]interface{}, len(dataSignals))
	for i, r := range dataSignals {
		refs[i] = r
	}
	signals = append(signals,
		vega.Signal{Name: sel.TupleFieldsName(), Value: fields},
		vega.Signal{
			Name: sel.TupleName(),
			On: []vega.OnEvent{{
				Events: refs,
				Update: fmt.Sprintf("%s ? {unit: %s, fields: %s, values: [%s]} : null",
					guard, model.UnitName(m), sel.TupleFieldsName(), joinComma(dataNames)),
			}},
		})
	return signals
}

func intervalModifyExpr(m *model.UnitModel, sel *model.SelectionComponent) string {
	if sel.Resolve == spec.ResolveGlobal {
		return sel.TupleName() + ", true"
	}
	return fmt.Sprintf("%s, {unit: %s}", sel.TupleName(), model.UnitName(m))
}

// intervalMarks contributes the brush rectangle behind the view's marks and
// the interactive brush frame in front of them. Scale-bound intervals have
// no visible brush.
func intervalMarks(m *model.UnitModel, sel *model.SelectionComponent, marks []vega.Mark) []vega.Mark {
	if sel.BindsScales() || !intervalProjectsPosition(sel) {
		return marks
	}
	style := sel.Mark
	fill, fillOpacity, stroke := "#333", 0.125, "white"
	if style != nil {
		if v, ok := style["fill"].(string); ok {
			fill = v
		}
		if v, ok := style["fillOpacity"].(float64); ok {
			fillOpacity = v
		}
		if v, ok := style["stroke"].(string); ok {
			stroke = v
		}
	}
	update := brushPositionEncode(sel)

	bgEncode := map[string]interface{}{
		"fill":        map[string]interface{}{"value": fill},
		"fillOpacity": map[string]interface{}{"value": fillOpacity},
	}
	frameEncode := map[string]interface{}{
		"stroke": map[string]interface{}{"value": stroke},
	}
	for k, v := range update {
		bgEncode[k] = v
		frameEncode[k] = v
	}

	bg := vega.Mark{
		"name": sel.Name + "_brush_bg",
		"type": "rect",
		"clip": true,
		"encode": map[string]interface{}{
			"enter":  map[string]interface{}{"fill": map[string]interface{}{"value": fill}},
			"update": bgEncode,
		},
	}
	frame := vega.Mark{
		"name": sel.Name + "_brush",
		"type": "rect",
		"clip": true,
		"encode": map[string]interface{}{
			"enter":  map[string]interface{}{"fill": map[string]interface{}{"value": "transparent"}},
			"update": frameEncode,
		},
	}
	return append(append([]vega.Mark{bg}, marks...), frame)
}

func brushPositionEncode(sel *model.SelectionComponent) map[string]interface{} {
	update := map[string]interface{}{}
	for _, p := range sel.Project {
		visual := sel.Name + "_" + string(p.Channel)
		switch p.Channel {
		case spec.ChannelX:
			update["x"] = map[string]interface{}{"signal": visual + "[0]"}
			update["x2"] = map[string]interface{}{"signal": visual + "[1]"}
		case spec.ChannelY:
			update["y"] = map[string]interface{}{"signal": visual + "[0]"}
			update["y2"] = map[string]interface{}{"signal": visual + "[1]"}
		}
	}
	// A one-dimensional brush spans the full extent of the other axis.
	if _, ok := update["x"]; !ok {
		update["x"] = map[string]interface{}{"value": 0}
		update["x2"] = map[string]interface{}{"signal": "width"}
	}
	if _, ok := update["y"]; !ok {
		update["y"] = map[string]interface{}{"value": 0}
		update["y2"] = map[string]interface{}{"signal": "height"}
	}
	return update
}
