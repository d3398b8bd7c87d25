// Package selection compiles declared interactive selections into reactive
// signals, store datasets, predicate expressions and mark-level event
// wiring. Selection variants (single, multi, interval) and their transforms
// plug in through capability tables with nullable members; a capability left
// nil contributes nothing.
package selection

import (
	"fmt"

	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/util"
	"vgc-go/packages/compiler/src/vega"
)

// typeCompiler is the capability interface a selection variant implements.
// ModifyExpr is required; every other capability is optional.
type typeCompiler struct {
	signals         func(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal
	topLevelSignals func(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal
	modifyExpr      func(m *model.UnitModel, sel *model.SelectionComponent) string
	marks           func(m *model.UnitModel, sel *model.SelectionComponent, marks []vega.Mark) []vega.Mark
}

// compilers dispatches selection variants; single and multi share the point
// compiler, the toggle transform differentiates them.
var compilers = map[spec.SelectionType]*typeCompiler{
	spec.SelectionSingle:   pointCompiler,
	spec.SelectionMulti:    pointCompiler,
	spec.SelectionInterval: intervalCompiler,
}

func compilerFor(sel *model.SelectionComponent) *typeCompiler {
	tc, ok := compilers[sel.Type]
	if !ok {
		panic(util.Error(fmt.Sprintf("unknown selection type %q", sel.Type)))
	}
	return tc
}

// transform is the capability interface a selection transform implements.
// has gates the transform per selection; the remaining members are optional.
// modifyExpr observes the chained expression so far and returns the next.
type transform struct {
	has             func(sel *model.SelectionComponent) bool
	signals         func(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal
	topLevelSignals func(m *model.UnitModel, sel *model.SelectionComponent, signals []vega.Signal) []vega.Signal
	modifyExpr      func(m *model.UnitModel, sel *model.SelectionComponent, expr string) string
	marks           func(m *model.UnitModel, sel *model.SelectionComponent, marks []vega.Mark) []vega.Mark
}

// transforms apply in declared order; each may chain-modify the modify
// expression produced by its predecessors.
var transforms = []*transform{toggleTransform, scaleBindingsTransform}

// ParseUnitSelection compiles a unit view's declared selections into
// selection components on the unit's component map, merging per-type config
// defaults under each definition.
func ParseUnitSelection(m *model.UnitModel, defs map[string]*spec.SelectionDef, order []string) {
	if len(order) == 0 {
		for name := range defs {
			order = append(order, name)
		}
	}
	for _, name := range order {
		def, ok := defs[name]
		if !ok {
			continue
		}
		m.Component().AddSelection(parseSelectionDef(m, name, def))
	}
}

func parseSelectionDef(m *model.UnitModel, name string, def *spec.SelectionDef) *model.SelectionComponent {
	cfg := m.Config().Selection.TypeConfig(def.Type)
	sel := &model.SelectionComponent{
		Name:         util.VarName(name),
		Type:         def.Type,
		Resolve:      def.Resolve,
		Empty:        def.Empty,
		Events:       def.On,
		Toggle:       def.Toggle,
		Bind:         def.Bind,
		Init:         def.Init,
		Mark:         def.Mark,
		TimeUnitNode: model.InvalidNode,
	}
	if cfg != nil {
		if sel.Resolve == "" {
			sel.Resolve = cfg.Resolve
		}
		if sel.Empty == "" {
			sel.Empty = cfg.Empty
		}
		if sel.Events == "" {
			sel.Events = cfg.On
		}
		if sel.Toggle == nil {
			sel.Toggle = cfg.Toggle
		}
		if sel.Mark == nil {
			sel.Mark = cfg.Mark
		}
	}
	if sel.Resolve == "" {
		sel.Resolve = spec.ResolveGlobal
	}
	if sel.Empty == "" {
		sel.Empty = spec.EmptyAll
	}
	sel.Project = parseProjection(m, def)
	return sel
}

func parseProjection(m *model.UnitModel, def *spec.SelectionDef) []model.ProjectEntry {
	var project []model.ProjectEntry
	seen := map[string]bool{}
	for _, ch := range def.Encodings {
		fd := m.FieldDef(ch)
		if fd == nil || fd.Field == "" || seen[fd.Field] {
			continue
		}
		seen[fd.Field] = true
		project = append(project, model.ProjectEntry{Field: fd.Field, Channel: ch, TimeUnit: fd.TimeUnit})
	}
	for _, field := range def.Fields {
		if seen[field] {
			continue
		}
		seen[field] = true
		entry := model.ProjectEntry{Field: field}
		if fd := fieldDefByName(m, field); fd != nil {
			entry.TimeUnit = fd.TimeUnit
		}
		project = append(project, entry)
	}
	if len(project) > 0 {
		return project
	}
	// No explicit projection: intervals brush the positional channels,
	// point selections key on tuple identity.
	if def.Type == spec.SelectionInterval {
		for _, ch := range []spec.Channel{spec.ChannelX, spec.ChannelY} {
			if fd := m.FieldDef(ch); fd != nil && fd.Field != "" {
				project = append(project, model.ProjectEntry{Field: fd.Field, Channel: ch, TimeUnit: fd.TimeUnit})
			}
		}
		if len(project) > 0 {
			return project
		}
	}
	return []model.ProjectEntry{{Field: "_vgsid_"}}
}

func fieldDefByName(m *model.UnitModel, field string) *spec.FieldDef {
	for _, ch := range []spec.Channel{
		spec.ChannelX, spec.ChannelY, spec.ChannelColor, spec.ChannelFill,
		spec.ChannelStroke, spec.ChannelOpacity, spec.ChannelSize,
		spec.ChannelShape, spec.ChannelDetail,
	} {
		if fd := m.FieldDef(ch); fd != nil && fd.Field == field {
			return fd
		}
	}
	return nil
}

// Lookup resolves a selection name to its component anywhere in the model
// tree. A missing component is an upstream validation failure and panics.
func Lookup(m model.Model, name string) *model.SelectionComponent {
	root := m
	for root.Parent() != nil {
		root = root.Parent()
	}
	if sel := lookup(root, util.VarName(name)); sel != nil {
		return sel
	}
	panic(util.Error(fmt.Sprintf("cannot find a selection named %q", name)))
}

func lookup(m model.Model, name string) *model.SelectionComponent {
	if sel, ok := m.Component().Selection[name]; ok {
		return sel
	}
	for _, child := range m.Children() {
		if sel := lookup(child, name); sel != nil {
			return sel
		}
	}
	return nil
}
