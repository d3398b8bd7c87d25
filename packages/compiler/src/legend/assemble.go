package legend

import (
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"
)

// AssembleLegends renders every legend component in the model tree as an
// output legend definition: the model's own (shared) components first, then
// any independent leftovers in the children.
func AssembleLegends(m model.Model) []vega.Legend {
	var out []vega.Legend
	for _, ch := range legendChannels {
		c, ok := m.Component().Legends[ch]
		if !ok {
			continue
		}
		out = append(out, assembleLegend(m, ch, c))
	}
	for _, child := range m.Children() {
		out = append(out, AssembleLegends(child)...)
	}
	return out
}

func assembleLegend(m model.Model, ch spec.Channel, c *model.LegendComponent) vega.Legend {
	legend := vega.Legend{}
	legend[scaleRole(m, ch)] = scaleName(m, ch)
	for _, prop := range c.Properties() {
		legend[prop] = c.Value(prop)
	}

	encode := map[string]interface{}{}
	for _, part := range spec.LegendParts {
		if entry := c.Encode(part); entry != nil {
			encode[part] = entry
		}
	}
	if len(encode) > 0 {
		legend["encode"] = encode
	}
	return legend
}

// scaleRole maps an encoding channel to the legend member naming its scale.
func scaleRole(m model.Model, ch spec.Channel) string {
	if ch != spec.ChannelColor {
		return string(ch)
	}
	if unit, ok := m.(*model.UnitModel); ok && unit.MarkDef() != nil && !unit.MarkDef().IsFilled() {
		return "stroke"
	}
	return "fill"
}

func scaleName(m model.Model, ch spec.Channel) string {
	if unit, ok := m.(*model.UnitModel); ok {
		if sc := unit.Scale(ch); sc != nil {
			return sc.Name
		}
	}
	return string(ch)
}
