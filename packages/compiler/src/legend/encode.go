package legend

import (
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"
)

// defaultPartEncode supplies the channel-specific default encode rules for
// one legend part. Parts with no applicable rules stay empty and are
// dropped at assembly.
func defaultPartEncode(part string, m *model.UnitModel, ch spec.Channel, fd *spec.FieldDef) map[string]interface{} {
	update := map[string]interface{}{}
	mark := m.MarkDef()
	switch part {
	case spec.PartSymbols:
		if mark != nil && mark.Type == "point" && !mark.IsFilled() {
			update["fill"] = map[string]interface{}{"value": "transparent"}
		}
		if ch != spec.ChannelShape && mark != nil && mark.Shape != "" {
			update["shape"] = map[string]interface{}{"value": mark.Shape}
		}
		// Swatches read like the plot: mirror the default mark opacity
		// unless opacity itself is scale-driven.
		if ch != spec.ChannelOpacity && m.FieldDef(spec.ChannelOpacity) == nil {
			update["opacity"] = map[string]interface{}{"value": 0.7}
		}
	case spec.PartGradient:
		if ch != spec.ChannelOpacity && m.FieldDef(spec.ChannelOpacity) == nil {
			update["opacity"] = map[string]interface{}{"value": 0.7}
		}
	case spec.PartLabels:
		if ch == spec.ChannelShape && fd.TimeUnit != "" {
			update["text"] = map[string]interface{}{"signal": "datum.label"}
		}
	}
	return update
}

// parseEncode populates the component's encode halves: channel defaults on
// the implicit side, user-specified per-part rules on the explicit side.
func parseEncode(c *model.LegendComponent, m *model.UnitModel, ch spec.Channel, fd *spec.FieldDef) {
	for _, part := range spec.LegendParts {
		if def := defaultPartEncode(part, m, ch, fd); len(def) > 0 {
			c.ImplicitEncode[part] = &vega.EncodeEntry{Update: def}
		}
		if fd.Legend != nil {
			if user, ok := fd.Legend.Encoding[part]; ok && len(user) > 0 {
				update := make(map[string]interface{}, len(user))
				for k, v := range user {
					update[k] = v
				}
				c.ExplicitEncode[part] = &vega.EncodeEntry{Update: update}
			}
		}
	}
}
