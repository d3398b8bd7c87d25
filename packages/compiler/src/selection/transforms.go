package selection

import (
	"fmt"

	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"
)

// toggleTransform implements shift-click accumulation for multi selections:
// a toggle signal latches the modifier key, and the modify expression routes
// the tuple into modify()'s toggle slot while the key is held.
var toggleTransform = &transform{
	has: func(sel *model.SelectionComponent) bool {
		if sel.Type != spec.SelectionMulti {
			return false
		}
		if b, ok := sel.Toggle.(bool); ok && !b {
			return false
		}
		return sel.Toggle != nil
	},
	signals: func(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal {
		return append(signals, vega.Signal{
			Name:  sel.ToggleName(),
			Value: false,
			On: []vega.OnEvent{{
				Events: sel.Events,
				Update: toggleExpr(sel),
			}},
		})
	},
	modifyExpr: func(m *model.UnitModel, sel *model.SelectionComponent, expr string) string {
		tg := sel.ToggleName()
		second := tg + " ? null : true, "
		if sel.Resolve != spec.ResolveGlobal {
			second = fmt.Sprintf("%s ? null : {unit: %s}, ", tg, model.UnitName(m))
		}
		return fmt.Sprintf("%s ? null : %s, ", tg, sel.TupleName()) +
			second +
			fmt.Sprintf("%s ? %s : null", tg, sel.TupleName())
	},
}

func toggleExpr(sel *model.SelectionComponent) string {
	if s, ok := sel.Toggle.(string); ok && s != "" {
		return s
	}
	return "event.shiftKey"
}

// scaleBindingsTransform implements `bind: "scales"`: the selection's data
// signals track the bound scale domains, and those signals are lifted to the
// top level so coordinated views share them.
var scaleBindingsTransform = &transform{
	has: func(sel *model.SelectionComponent) bool {
		return sel.BindsScales()
	},
	signals: func(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal {
		for _, p := range sel.Project {
			if p.Channel != spec.ChannelX && p.Channel != spec.ChannelY {
				continue
			}
			sc := m.Scale(p.Channel)
			if sc == nil {
				continue
			}
			name := sel.Name + "_" + tupleField(p)
			rule := vega.OnEvent{
				Events: map[string]interface{}{"scale": sc.Name},
				Update: fmt.Sprintf("domain(%q)", sc.Name),
			}
			if existing := vega.FindSignal(signals, name); existing != nil {
				existing.On = append(existing.On, rule)
				existing.Push = "outer"
			} else {
				signals = append(signals, vega.Signal{Name: name, On: []vega.OnEvent{rule}, Push: "outer"})
			}
		}
		return signals
	},
	topLevelSignals: func(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal {
		for _, p := range sel.Project {
			if p.Channel != spec.ChannelX && p.Channel != spec.ChannelY {
				continue
			}
			name := sel.Name + "_" + tupleField(p)
			if !vega.HasSignal(signals, name) {
				signals = append(signals, vega.Signal{Name: name})
			}
		}
		return signals
	},
}
