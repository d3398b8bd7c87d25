package spec

import (
	"encoding/json"
	"fmt"
)

// SelectionType distinguishes the interactive selection variants.
type SelectionType string

const (
	// SelectionSingle selects one tuple per interaction (point click).
	SelectionSingle SelectionType = "single"
	// SelectionMulti accumulates tuples across interactions (shift-click).
	SelectionMulti SelectionType = "multi"
	// SelectionInterval selects a continuous range (drag brush).
	SelectionInterval SelectionType = "interval"
)

// Empty-selection policies: does an empty store mean "everything selected"
// or "nothing selected".
const (
	EmptyAll  = "all"
	EmptyNone = "none"
)

// Resolve policies for combining coordinated views' selections.
const (
	ResolveGlobal    = "global"
	ResolveUnion     = "union"
	ResolveIntersect = "intersect"
)

// SelectionDef is a declared interactive selection.
type SelectionDef struct {
	Type      SelectionType `json:"type"`
	Fields    []string      `json:"fields,omitempty"`
	Encodings []Channel     `json:"encodings,omitempty"`
	Empty     string        `json:"empty,omitempty"`
	Resolve   string        `json:"resolve,omitempty"`
	On        string        `json:"on,omitempty"`
	Toggle    interface{}   `json:"toggle,omitempty"`
	Bind      interface{}   `json:"bind,omitempty"`
	Init      interface{}   `json:"init,omitempty"`
	Translate interface{}   `json:"translate,omitempty"`
	Zoom      interface{}   `json:"zoom,omitempty"`
	Mark      Mark          `json:"mark,omitempty"`
}

// Mark is an opaque styling fragment for selection-owned marks (the brush
// rectangle of an interval selection).
type Mark map[string]interface{}

// BindsScales reports whether the selection is bound to its view's scales
// (pan/zoom style) rather than to a brush or click target.
func (d *SelectionDef) BindsScales() bool {
	s, ok := d.Bind.(string)
	return ok && s == "scales"
}

// LogicalOperand is an AND/OR/NOT tree over selection names. In JSON a leaf
// is a bare string; inner nodes are single-member objects.
type LogicalOperand struct {
	Selection string
	And       []*LogicalOperand
	Or        []*LogicalOperand
	Not       *LogicalOperand
}

// SelectionLeaf returns a leaf operand for a selection name.
func SelectionLeaf(name string) *LogicalOperand {
	return &LogicalOperand{Selection: name}
}

// UnmarshalJSON accepts a bare selection-name string or an {and}/{or}/{not}
// object.
func (o *LogicalOperand) UnmarshalJSON(data []byte) error {
	var leaf string
	if err := json.Unmarshal(data, &leaf); err == nil {
		o.Selection = leaf
		return nil
	}
	var node struct {
		And []*LogicalOperand `json:"and,omitempty"`
		Or  []*LogicalOperand `json:"or,omitempty"`
		Not *LogicalOperand   `json:"not,omitempty"`
	}
	if err := json.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("selection operand: %w", err)
	}
	o.And, o.Or, o.Not = node.And, node.Or, node.Not
	return nil
}

// ForEachLeaf visits every selection-name leaf of the tree in order.
func (o *LogicalOperand) ForEachLeaf(fn func(name string)) {
	switch {
	case o.Selection != "":
		fn(o.Selection)
	case o.Not != nil:
		o.Not.ForEachLeaf(fn)
	case len(o.And) > 0:
		for _, c := range o.And {
			c.ForEachLeaf(fn)
		}
	case len(o.Or) > 0:
		for _, c := range o.Or {
			c.ForEachLeaf(fn)
		}
	}
}
