// Package legend computes legend components per visual channel, wires
// legend-selection interaction, and merges components across composite view
// hierarchies.
package legend

import (
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/selection"
	"vgc-go/packages/compiler/src/spec"
)

// legendChannels are the visual channels that can carry a legend.
var legendChannels = []spec.Channel{
	spec.ChannelColor,
	spec.ChannelFill,
	spec.ChannelStroke,
	spec.ChannelOpacity,
	spec.ChannelFillOpacity,
	spec.ChannelStrokeOpacity,
	spec.ChannelStrokeWidth,
	spec.ChannelSize,
	spec.ChannelShape,
}

// interactiveChannels are the legend channels eligible for selection
// binding.
var interactiveChannels = map[spec.Channel]bool{
	spec.ChannelColor:   true,
	spec.ChannelOpacity: true,
	spec.ChannelSize:    true,
	spec.ChannelShape:   true,
}

// ParseLegend computes legend components for a model: unit views parse each
// channel directly, composite views recurse into their children first and
// merge per the channel's resolve policy.
func ParseLegend(m model.Model) {
	if unit, ok := m.(*model.UnitModel); ok {
		parseUnitLegend(unit)
		return
	}
	parseNonUnitLegend(m)
}

func parseUnitLegend(m *model.UnitModel) {
	for _, ch := range legendChannels {
		fd := m.FieldDef(ch)
		if fd == nil || fd.Field == "" || fd.LegendNull {
			continue
		}
		if !m.ScaleExists(ch) {
			continue
		}
		// Shape legends cannot represent geographic shapes.
		if ch == spec.ChannelShape && fd.Type == spec.GeoJSON {
			continue
		}
		m.Component().Legends[ch] = parseLegendForChannel(m, ch, fd)
	}
}

func parseLegendForChannel(m *model.UnitModel, ch spec.Channel, fd *spec.FieldDef) *model.LegendComponent {
	c := model.NewLegendComponent()
	legendConfig := m.Config().Legend
	for _, prop := range spec.LegendProperties {
		value, explicit := resolveProperty(prop, m, ch, fd)
		if value == nil {
			continue
		}
		// Implicit values stay off the component when the config already
		// carries a default; emitting them would shadow an intentionally
		// absent config value.
		if explicit || !legendConfig.HasDefault(prop) {
			c.Set(prop, value, explicit)
		}
	}
	parseEncode(c, m, ch, fd)

	if m.Parent() == nil && interactiveChannels[ch] && len(selection.InteractiveSelections(m)) > 0 {
		rewriteInteractiveEncode(m, ch, fd, c)
	}
	return c
}

// parseNonUnitLegend recurses into a composite's children, then merges each
// channel's legend upward when the channel resolves as shared. A merge
// conflict flips the channel to independent and drops the would-be-shared
// component; channels that stay shared have their child entries deleted once
// ownership moves to the parent.
func parseNonUnitLegend(m model.Model) {
	comp := m.Component()
	for _, child := range m.Children() {
		ParseLegend(child)
		for _, ch := range legendChannels {
			childLegend, ok := child.Component().Legends[ch]
			if !ok {
				continue
			}
			policy := comp.LegendResolve[ch]
			if policy == "" {
				policy = m.Resolve().LegendResolve(ch)
				if policy == "" {
					policy = "shared"
				}
				comp.LegendResolve[ch] = policy
			}
			if policy != "shared" {
				continue
			}
			merged := MergeLegendComponents(comp.Legends[ch], childLegend)
			if merged == nil {
				comp.LegendResolve[ch] = "independent"
				delete(comp.Legends, ch)
			} else {
				comp.Legends[ch] = merged
			}
		}
	}
	for _, ch := range legendChannels {
		if comp.LegendResolve[ch] != "shared" {
			continue
		}
		if _, ok := comp.Legends[ch]; !ok {
			continue
		}
		for _, child := range m.Children() {
			delete(child.Component().Legends, ch)
		}
	}
}
