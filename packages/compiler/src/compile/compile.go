// Package compile orchestrates the compilation of a declarative view
// specification into the reactive scenegraph format: model building,
// selection and legend parsing bottom-up, signal/data/mark assembly, and
// the late scale-domain fix-up once every selection component is known.
package compile

import (
	"sort"

	"vgc-go/packages/compiler/src/legend"
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/selection"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"
)

// Compile lowers a view specification into an executable scenegraph spec.
func Compile(s *spec.Spec) (*vega.Spec, error) {
	config := spec.MergeConfig(s.Config)
	m, err := model.Build(s, config)
	if err != nil {
		return nil, err
	}

	parseSelections(m)
	markSelectionDomains(m)
	legend.ParseLegend(m)
	rewriteSelectionDomains(m, m)

	out := &vega.Spec{
		Description: s.Description,
		Width:       s.Width,
		Height:      s.Height,
	}
	out.Data = assembleData(m, s)
	out.Signals = assembleSignals(m)
	out.Scales = assembleScales(m)
	out.Marks = assembleMarks(m)
	out.Legends = legend.AssembleLegends(m)
	return out, nil
}

// parseSelections compiles every unit's declared selections, children
// before parents. Definition order follows sorted names since JSON object
// order is not preserved.
func parseSelections(m model.Model) {
	for _, child := range m.Children() {
		parseSelections(child)
	}
	unit, ok := m.(*model.UnitModel)
	if !ok {
		return
	}
	defs := unit.Spec().Selection
	if len(defs) == 0 {
		return
	}
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	selection.ParseUnitSelection(unit, defs, names)
}

// markSelectionDomains stashes the provisional selection-domain marker on
// every scale whose declared domain references a selection.
func markSelectionDomains(m model.Model) {
	for _, child := range m.Children() {
		markSelectionDomains(child)
	}
	unit, ok := m.(*model.UnitModel)
	if !ok {
		return
	}
	for _, ch := range []spec.Channel{spec.ChannelX, spec.ChannelY} {
		fd := unit.FieldDef(ch)
		if fd == nil || fd.Scale == nil || fd.Scale.Domain == nil || fd.Scale.Domain.Selection == "" {
			continue
		}
		sc := unit.Scale(ch)
		if sc == nil {
			continue
		}
		dom := fd.Scale.Domain
		sc.DomainRaw = selection.SelectionDomainSignal(dom.Selection, dom.Encoding, dom.Field)
	}
}

// rewriteSelectionDomains is the late fix-up pass: every provisional domain
// marker is resolved to a concrete expression now that all selection
// components exist.
func rewriteSelectionDomains(root, m model.Model) {
	for _, child := range m.Children() {
		rewriteSelectionDomains(root, child)
	}
	unit, ok := m.(*model.UnitModel)
	if !ok {
		return
	}
	for _, ch := range []spec.Channel{spec.ChannelX, spec.ChannelY} {
		sc := unit.Scale(ch)
		if sc == nil || !selection.IsSelectionDomain(sc.DomainRaw) {
			continue
		}
		sc.DomainRaw = selection.AssembleSelectionScaleDomain(root, sc.DomainRaw)
	}
}

func assembleData(m model.Model, s *spec.Spec) []vega.Data {
	var data []vega.Data
	data = append(data, sourceData(s))
	eachUnit(m, func(unit *model.UnitModel) {
		data = selection.AssembleUnitSelectionData(unit, data)
	})
	return data
}

func sourceData(s *spec.Spec) vega.Data {
	src := vega.Data{Name: "source"}
	for cursor := s; cursor != nil; cursor = firstChildSpec(cursor) {
		if cursor.Data != nil {
			if cursor.Data.Name != "" {
				src.Name = cursor.Data.Name
			}
			src.URL = cursor.Data.URL
			if len(cursor.Data.Values) > 0 {
				src.Values = cursor.Data.Values
			}
			break
		}
	}
	return src
}

func firstChildSpec(s *spec.Spec) *spec.Spec {
	if len(s.Layer) > 0 {
		return s.Layer[0]
	}
	return s.Spec
}

func assembleSignals(m model.Model) []vega.Signal {
	var signals []vega.Signal
	eachUnit(m, func(unit *model.UnitModel) {
		signals = selection.AssembleUnitSelectionSignals(unit, signals)
	})
	eachUnit(m, func(unit *model.UnitModel) {
		signals = selection.AssembleTopLevelSignals(unit, signals)
	})
	if facet, ok := m.(*model.FacetModel); ok {
		signals = selection.AssembleFacetSignals(facet, signals)
	}
	return signals
}

func assembleScales(m model.Model) []map[string]interface{} {
	var scales []map[string]interface{}
	seen := map[string]bool{}
	eachUnit(m, func(unit *model.UnitModel) {
		for _, ch := range []spec.Channel{
			spec.ChannelX, spec.ChannelY, spec.ChannelColor, spec.ChannelFill,
			spec.ChannelStroke, spec.ChannelOpacity, spec.ChannelSize, spec.ChannelShape,
		} {
			sc := unit.Scale(ch)
			fd := unit.FieldDef(ch)
			if sc == nil || fd == nil || seen[sc.Name] {
				continue
			}
			seen[sc.Name] = true
			def := map[string]interface{}{
				"name":   sc.Name,
				"type":   string(sc.Type),
				"domain": map[string]interface{}{"data": "source", "field": fd.Field},
			}
			if sc.DomainRaw != "" {
				def["domainRaw"] = vega.SignalRef{Signal: sc.DomainRaw}
			}
			appendRange(def, ch)
			scales = append(scales, def)
		}
	})
	return scales
}

func appendRange(def map[string]interface{}, ch spec.Channel) {
	switch ch {
	case spec.ChannelX:
		def["range"] = "width"
	case spec.ChannelY:
		def["range"] = "height"
	case spec.ChannelColor, spec.ChannelFill, spec.ChannelStroke:
		def["range"] = "category"
	case spec.ChannelShape:
		def["range"] = "symbol"
	case spec.ChannelOpacity:
		def["range"] = []interface{}{0.3, 0.8}
	case spec.ChannelSize:
		def["range"] = []interface{}{4, 361}
	}
}

func assembleMarks(m model.Model) []vega.Mark {
	switch t := m.(type) {
	case *model.UnitModel:
		return selection.AssembleUnitSelectionMarks(t, []vega.Mark{unitMark(t)})
	case *model.LayerModel:
		var marks []vega.Mark
		for _, child := range t.Children() {
			if unit, ok := child.(*model.UnitModel); ok {
				marks = append(marks, unitMark(unit))
			} else {
				marks = append(marks, assembleMarks(child)...)
			}
		}
		return selection.AssembleLayerSelectionMarks(t, marks)
	case *model.FacetModel:
		cell := vega.Mark{
			"name": "cell",
			"type": "group",
			"from": map[string]interface{}{
				"facet": map[string]interface{}{
					"name": "facet_data",
					"data": "source",
				},
			},
			"marks": assembleMarks(t.Child()),
		}
		return []vega.Mark{cell}
	}
	return nil
}

func unitMark(m *model.UnitModel) vega.Mark {
	markType := "symbol"
	if md := m.MarkDef(); md != nil {
		switch md.Type {
		case "bar", "rect":
			markType = "rect"
		case "line":
			markType = "line"
		case "area":
			markType = "area"
		case "tick", "rule":
			markType = "rule"
		case "text":
			markType = "text"
		}
	}
	name := "marks"
	if m.Name() != "" {
		name = m.Name() + "_marks"
	}
	update := map[string]interface{}{}
	for _, ch := range []spec.Channel{spec.ChannelX, spec.ChannelY} {
		sc := m.Scale(ch)
		fd := m.FieldDef(ch)
		if sc == nil || fd == nil {
			continue
		}
		update[string(ch)] = map[string]interface{}{"scale": sc.Name, "field": fd.Field}
	}
	for _, ch := range []spec.Channel{spec.ChannelColor, spec.ChannelOpacity, spec.ChannelSize, spec.ChannelShape} {
		sc := m.Scale(ch)
		fd := m.FieldDef(ch)
		if sc == nil || fd == nil {
			continue
		}
		role := string(ch)
		if ch == spec.ChannelColor {
			role = "fill"
			if m.MarkDef() != nil && !m.MarkDef().IsFilled() {
				role = "stroke"
			}
		}
		update[role] = map[string]interface{}{"scale": sc.Name, "field": fd.Field}
	}
	mark := vega.Mark{
		"name": name,
		"type": markType,
		"from": map[string]interface{}{"data": "source"},
		"encode": map[string]interface{}{
			"update": update,
		},
	}
	if len(m.Component().Selection) > 0 {
		mark["interactive"] = true
	}
	return mark
}

func eachUnit(m model.Model, fn func(*model.UnitModel)) {
	if unit, ok := m.(*model.UnitModel); ok {
		fn(unit)
		return
	}
	for _, child := range m.Children() {
		eachUnit(child, fn)
	}
}
