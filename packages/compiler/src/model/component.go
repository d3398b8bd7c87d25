package model

import "vgc-go/packages/compiler/src/spec"

// Selection signal/dataset name suffixes.
const (
	SuffixStore       = "_store"
	SuffixTuple       = "_tuple"
	SuffixModify      = "_modify"
	SuffixTupleFields = "_tuple_fields"
	SuffixToggle      = "_toggle"
)

// Component is the per-model assembly state: the selection components
// declared on (or lifted to) this view and the legend component per channel.
type Component struct {
	Selection      map[string]*SelectionComponent
	SelectionOrder []string
	Legends        map[spec.Channel]*LegendComponent
	LegendResolve  map[spec.Channel]string
}

func newComponent() Component {
	return Component{
		Selection:     map[string]*SelectionComponent{},
		Legends:       map[spec.Channel]*LegendComponent{},
		LegendResolve: map[spec.Channel]string{},
	}
}

// AddSelection registers a selection component, keeping declaration order.
func (c *Component) AddSelection(sel *SelectionComponent) {
	if _, ok := c.Selection[sel.Name]; !ok {
		c.SelectionOrder = append(c.SelectionOrder, sel.Name)
	}
	c.Selection[sel.Name] = sel
}

// Selections returns the selection components in declaration order.
func (c *Component) Selections() []*SelectionComponent {
	out := make([]*SelectionComponent, 0, len(c.SelectionOrder))
	for _, name := range c.SelectionOrder {
		out = append(out, c.Selection[name])
	}
	return out
}

// ProjectEntry is one projected field of a selection: which data field is
// captured, through which channel it was declared, and an optional
// time-unit normalization.
type ProjectEntry struct {
	Field    string
	Channel  spec.Channel
	TimeUnit string
}

// SelectionComponent is the compiled form of one declared selection.
type SelectionComponent struct {
	Name    string
	Type    spec.SelectionType
	Project []ProjectEntry
	Resolve string
	Empty   string
	Events  string
	Toggle  interface{}
	Bind    interface{}
	Init    interface{}
	Mark    spec.Mark

	// TimeUnitNode is the lazily created normalization node shared by every
	// predicate referencing this selection; Inserted marks that it has been
	// spliced into the pipeline already.
	TimeUnitNode NodeID
	Inserted     bool
}

// StoreName is the name of the dataset backing this selection.
func (s *SelectionComponent) StoreName() string { return s.Name + SuffixStore }

// TupleName is the name of the signal carrying the current tuple.
func (s *SelectionComponent) TupleName() string { return s.Name + SuffixTuple }

// ModifyName is the name of the signal upserting tuples into the store.
func (s *SelectionComponent) ModifyName() string { return s.Name + SuffixModify }

// TupleFieldsName is the name of the signal carrying the projection
// descriptors.
func (s *SelectionComponent) TupleFieldsName() string { return s.Name + SuffixTupleFields }

// ToggleName is the name of the shift-click toggle signal.
func (s *SelectionComponent) ToggleName() string { return s.Name + SuffixToggle }

// Fields returns the projected field names in projection order.
func (s *SelectionComponent) Fields() []string {
	out := make([]string, len(s.Project))
	for i, p := range s.Project {
		out[i] = p.Field
	}
	return out
}

// HasField reports whether the selection projects a data field.
func (s *SelectionComponent) HasField(field string) bool {
	for _, p := range s.Project {
		if p.Field == field {
			return true
		}
	}
	return false
}

// ChannelEntries returns the projection entries declared through a channel.
func (s *SelectionComponent) ChannelEntries(ch spec.Channel) []ProjectEntry {
	var out []ProjectEntry
	for _, p := range s.Project {
		if p.Channel == ch {
			out = append(out, p)
		}
	}
	return out
}

// HasTimeUnit reports whether any projection carries a time unit.
func (s *SelectionComponent) HasTimeUnit() bool {
	for _, p := range s.Project {
		if p.TimeUnit != "" {
			return true
		}
	}
	return false
}

// BindsScales reports whether the selection is bound to the view's scales.
func (s *SelectionComponent) BindsScales() bool {
	b, ok := s.Bind.(string)
	return ok && b == "scales"
}
