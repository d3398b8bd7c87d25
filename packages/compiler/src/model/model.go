// Package model holds the view-model tree the compiler passes walk: unit,
// layer and facet models, their per-channel field and scale accessors, and
// the mutable selection/legend component maps each pass progressively
// populates.
package model

import (
	"fmt"

	"vgc-go/packages/compiler/src/spec"
)

// Model is one node of the view-model tree.
type Model interface {
	// Name is the model's scoped name; "" for the root view.
	Name() string
	Parent() Model
	Children() []Model
	Component() *Component
	Config() *spec.Config
	Resolve() *spec.Resolve
}

// BaseModel carries the members common to all view models.
type BaseModel struct {
	name     string
	parent   Model
	children []Model
	comp     Component
	config   *spec.Config
	resolve  *spec.Resolve
}

// Name implements Model.
func (m *BaseModel) Name() string { return m.name }

// Parent implements Model.
func (m *BaseModel) Parent() Model { return m.parent }

// Children implements Model.
func (m *BaseModel) Children() []Model { return m.children }

// Component implements Model.
func (m *BaseModel) Component() *Component { return &m.comp }

// Config implements Model.
func (m *BaseModel) Config() *spec.Config { return m.config }

// Resolve implements Model.
func (m *BaseModel) Resolve() *spec.Resolve { return m.resolve }

// UnitModel is a leaf view: one mark, one encoding.
type UnitModel struct {
	BaseModel
	spec      *spec.Spec
	encoding  *spec.Encoding
	markDef   *spec.MarkDef
	scales    map[spec.Channel]*ScaleComponent
	dataGraph *DataFlowGraph
	rawNode   NodeID
}

// Spec returns the view specification this unit was built from.
func (m *UnitModel) Spec() *spec.Spec { return m.spec }

// Encoding returns the unit's encoding, possibly nil.
func (m *UnitModel) Encoding() *spec.Encoding { return m.encoding }

// MarkDef returns the unit's mark definition, possibly nil.
func (m *UnitModel) MarkDef() *spec.MarkDef { return m.markDef }

// FieldDef returns the field definition encoded on a channel, or nil.
func (m *UnitModel) FieldDef(ch spec.Channel) *spec.FieldDef {
	return m.encoding.ChannelDef(ch)
}

// ScaleExists reports whether the unit resolved a scale for a channel.
func (m *UnitModel) ScaleExists(ch spec.Channel) bool {
	_, ok := m.scales[ch]
	return ok
}

// Scale returns the unit's scale component for a channel, or nil.
func (m *UnitModel) Scale(ch spec.Channel) *ScaleComponent {
	return m.scales[ch]
}

// ScaleType returns the resolved scale type for a channel, or "".
func (m *UnitModel) ScaleType(ch spec.Channel) ScaleType {
	if sc, ok := m.scales[ch]; ok {
		return sc.Type
	}
	return ""
}

// DataGraph returns the unit's data pipeline graph.
func (m *UnitModel) DataGraph() *DataFlowGraph { return m.dataGraph }

// RawDataNode returns the unit's raw-data pipeline root.
func (m *UnitModel) RawDataNode() NodeID { return m.rawNode }

// LayerModel is a composite view whose children draw into one shared plot.
type LayerModel struct {
	BaseModel
}

// FacetModel is a composite view replicating its single child per facet
// value.
type FacetModel struct {
	BaseModel
	facet *spec.FacetMapping
}

// Facet returns the row/column facet mapping.
func (m *FacetModel) Facet() *spec.FacetMapping { return m.facet }

// Child returns the replicated child model.
func (m *FacetModel) Child() Model { return m.children[0] }

// Build constructs the model tree for a view specification. The merged
// config is attached to every node; child names follow the parent-scoped
// naming scheme the output runtime expects.
func Build(s *spec.Spec, config *spec.Config) (Model, error) {
	return build(s, config, nil, "")
}

func build(s *spec.Spec, config *spec.Config, parent Model, name string) (Model, error) {
	resolve := s.Resolve
	switch {
	case s.IsLayer():
		m := &LayerModel{BaseModel: BaseModel{name: name, parent: parent, config: config, resolve: resolve}}
		m.comp = newComponent()
		for i, child := range s.Layer {
			childName := fmt.Sprintf("layer_%d", i)
			if name != "" {
				childName = name + "_" + childName
			}
			cm, err := build(child, config, m, childName)
			if err != nil {
				return nil, err
			}
			m.children = append(m.children, cm)
		}
		return m, nil
	case s.IsFacet():
		if s.Spec == nil {
			return nil, fmt.Errorf("facet view has no child spec")
		}
		m := &FacetModel{
			BaseModel: BaseModel{name: name, parent: parent, config: config, resolve: resolve},
			facet:     s.Facet,
		}
		m.comp = newComponent()
		childName := "child"
		if name != "" {
			childName = name + "_child"
		}
		cm, err := build(s.Spec, config, m, childName)
		if err != nil {
			return nil, err
		}
		m.children = []Model{cm}
		return m, nil
	default:
		m := &UnitModel{
			BaseModel: BaseModel{name: name, parent: parent, config: config, resolve: resolve},
			spec:      s,
			encoding:  s.Encoding,
			markDef:   s.Mark,
			scales:    map[spec.Channel]*ScaleComponent{},
			dataGraph: NewDataFlowGraph(),
		}
		m.comp = newComponent()
		m.rawNode = m.dataGraph.NewNode(NodeRaw, nil)
		parseScales(m)
		return m, nil
	}
}

// UnitName renders a model's name as the quoted string literal used in
// tuple expressions, e.g. `""` for the root view.
func UnitName(m Model) string {
	return fmt.Sprintf("%q", m.Name())
}
