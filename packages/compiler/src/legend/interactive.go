package legend

import (
	"fmt"

	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/selection"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"
)

// rewriteInteractiveEncode injects the selection-aware conditional styling
// into a legend's symbol and label parts: entries matching the governing
// selection keep their base value, everything else dims (or falls to a
// neutral stroke for opacity legends). The rewritten parts are renamed with
// a channel-and-field-qualified name and flagged interactive so the runtime
// treats them as event targets.
func rewriteInteractiveEncode(m *model.UnitModel, ch spec.Channel, fd *spec.FieldDef, c *model.LegendComponent) {
	sel := selection.BindingFor(m, fd.Field)
	if sel == nil {
		return
	}
	test := legendEntryTest(sel, fd.Field)

	for _, part := range []string{spec.PartSymbols, spec.PartLabels} {
		entry := c.ImplicitEncode[part]
		if entry == nil {
			entry = &vega.EncodeEntry{Update: map[string]interface{}{}}
			c.ImplicitEncode[part] = entry
		}
		if entry.Update == nil {
			entry.Update = map[string]interface{}{}
		}

		if ch == spec.ChannelOpacity {
			base := baseValueDef(entry, "stroke", map[string]interface{}{"value": "#333"})
			entry.Update["stroke"] = conditional(test, base, map[string]interface{}{"value": "#aaaaaa"})
		} else {
			base := baseValueDef(entry, "opacity", map[string]interface{}{"value": 1})
			entry.Update["opacity"] = conditional(test, base, map[string]interface{}{"value": 0.2})
		}

		switch part {
		case spec.PartSymbols:
			entry.Name, _ = selection.LegendMarkNames(fd.Field)
		case spec.PartLabels:
			_, entry.Name = selection.LegendMarkNames(fd.Field)
		}
		entry.Interactive = true
	}
}

// legendEntryTest is the per-entry highlight predicate: an empty store
// highlights everything; otherwise a single-field selection tests the entry
// value against the store and a multi-field selection tests its latched
// per-field legend signal.
func legendEntryTest(sel *model.SelectionComponent, field string) string {
	empty := fmt.Sprintf("!(length(data(%q)))", sel.StoreName())
	if len(sel.Project) == 1 {
		return fmt.Sprintf("%s || (vlSelectionTest(%q, {%q: datum.value}))", empty, sel.StoreName(), field)
	}
	sig := selection.LegendStateSignal(sel, field)
	return fmt.Sprintf("%s || (%s && %s.value === datum.value)", empty, sig, sig)
}

func baseValueDef(entry *vega.EncodeEntry, prop string, fallback map[string]interface{}) map[string]interface{} {
	if v, ok := entry.Update[prop].(map[string]interface{}); ok {
		return v
	}
	return fallback
}

func conditional(test string, base, otherwise map[string]interface{}) []interface{} {
	cond := map[string]interface{}{"test": test}
	for k, v := range base {
		cond[k] = v
	}
	return []interface{}{cond, otherwise}
}
