package legend

import (
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/util"
)

// MergeLegendComponents merges a child legend component into the running
// parent-level component for a shared channel. A nil parent adopts the
// child. Returns nil when the merge fails outright (conflicting explicit
// orients), which forces the channel's resolve policy to independent.
func MergeLegendComponents(parent, child *model.LegendComponent) *model.LegendComponent {
	if parent == nil {
		return child.Clone()
	}
	merged := parent.Clone()
	typeMerged := false

	for _, prop := range unionProperties(parent, child) {
		pv, pok := merged.Get(prop)
		cv, cok := child.Get(prop)
		switch prop {
		case spec.PropOrient:
			// Two views pinning the legend to different sides cannot share
			// one legend at all.
			if pok && cok && pv.Explicit && cv.Explicit && pv.Value != cv.Value {
				return nil
			}
			setTieBreak(merged, prop, pv, pok, cv, cok)
		case spec.PropSymbolType:
			if pok && pv.Value == "circle" {
				// keep
			} else if cok && cv.Value == "circle" {
				merged.Delete(prop)
				merged.Set(prop, cv.Value, cv.Explicit)
			} else {
				setTieBreak(merged, prop, pv, pok, cv, cok)
			}
		case spec.PropTitle:
			if pok && cok {
				merged.Delete(prop)
				merged.Set(prop, MergeTitles(pv.Value, cv.Value), pv.Explicit || cv.Explicit)
			} else {
				setTieBreak(merged, prop, pv, pok, cv, cok)
			}
		case spec.PropType:
			if pok && cok && pv.Value != cv.Value {
				merged.Delete(prop)
				merged.Set(prop, spec.LegendSymbol, false)
				typeMerged = true
			} else {
				setTieBreak(merged, prop, pv, pok, cv, cok)
			}
		default:
			setTieBreak(merged, prop, pv, pok, cv, cok)
		}
	}

	if typeMerged {
		// A symbol-typed legend cannot carry gradient encoding.
		delete(merged.ExplicitEncode, spec.PartGradient)
		delete(merged.ImplicitEncode, spec.PartGradient)
	}
	for part, entry := range child.ExplicitEncode {
		if typeMerged && part == spec.PartGradient {
			continue
		}
		if _, ok := merged.ExplicitEncode[part]; !ok {
			merged.ExplicitEncode[part] = entry
		}
	}
	for part, entry := range child.ImplicitEncode {
		if typeMerged && part == spec.PartGradient {
			continue
		}
		if _, ok := merged.ImplicitEncode[part]; !ok {
			merged.ImplicitEncode[part] = entry
		}
	}
	return merged
}

// setTieBreak applies the default per-property merge rule: a defined side
// beats an undefined one, explicit beats implicit, and the running parent
// value wins otherwise.
func setTieBreak(merged *model.LegendComponent, prop string, pv model.PropertyValue, pok bool, cv model.PropertyValue, cok bool) {
	switch {
	case pok && cok:
		if cv.Explicit && !pv.Explicit {
			merged.Delete(prop)
			merged.Set(prop, cv.Value, true)
		}
	case cok:
		merged.Set(prop, cv.Value, cv.Explicit)
	}
}

// MergeTitles combines two legend titles, deduplicating equal values.
func MergeTitles(a, b interface{}) interface{} {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		if as == bs {
			return as
		}
		return as + ", " + bs
	}
	if a != nil {
		return a
	}
	return b
}

func unionProperties(parent, child *model.LegendComponent) []string {
	return util.Dedup(append(parent.Properties(), child.Properties()...))
}
