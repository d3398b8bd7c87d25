// Package spec defines the Go types for deserializing declarative
// visualization specifications: views (unit, layer, facet), per-channel
// encodings, interactive selections, legends and configuration.
package spec

import (
	"encoding/json"
	"fmt"
)

// Spec is a view specification. Exactly one of the view forms applies:
// a unit view (Mark + Encoding), a layered view (Layer) or a faceted view
// (Facet + Spec).
type Spec struct {
	Schema      string                   `json:"$schema,omitempty"`
	Description string                   `json:"description,omitempty"`
	Name        string                   `json:"name,omitempty"`
	Width       float64                  `json:"width,omitempty"`
	Height      float64                  `json:"height,omitempty"`
	Data        *Data                    `json:"data,omitempty"`
	Mark        *MarkDef                 `json:"mark,omitempty"`
	Encoding    *Encoding                `json:"encoding,omitempty"`
	Selection   map[string]*SelectionDef `json:"selection,omitempty"`
	Layer       []*Spec                  `json:"layer,omitempty"`
	Facet       *FacetMapping            `json:"facet,omitempty"`
	Spec        *Spec                    `json:"spec,omitempty"`
	Resolve     *Resolve                 `json:"resolve,omitempty"`
	Config      *Config                  `json:"config,omitempty"`
}

// IsUnit reports whether the spec describes a single unit view.
func (s *Spec) IsUnit() bool {
	return len(s.Layer) == 0 && s.Facet == nil
}

// IsLayer reports whether the spec describes a layered view.
func (s *Spec) IsLayer() bool {
	return len(s.Layer) > 0
}

// IsFacet reports whether the spec describes a faceted view.
func (s *Spec) IsFacet() bool {
	return s.Facet != nil
}

// Data names or inlines the dataset a view is backed by.
type Data struct {
	Name   string        `json:"name,omitempty"`
	URL    string        `json:"url,omitempty"`
	Values []interface{} `json:"values,omitempty"`
}

// MarkDef describes the graphical mark of a unit view. In JSON it is either
// a bare mark-type string or an object with a `type` member.
type MarkDef struct {
	Type   string `json:"type"`
	Filled *bool  `json:"filled,omitempty"`
	Shape  string `json:"shape,omitempty"`
}

// UnmarshalJSON accepts both the shorthand string form and the object form.
func (m *MarkDef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Type = s
		return nil
	}
	type alias MarkDef
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("mark: %w", err)
	}
	*m = MarkDef(a)
	return nil
}

// IsFilled reports whether the mark renders as a filled shape. Point marks
// default to unfilled, everything else to filled.
func (m *MarkDef) IsFilled() bool {
	if m == nil {
		return true
	}
	if m.Filled != nil {
		return *m.Filled
	}
	return m.Type != "point"
}

// FacetMapping assigns fields to facet rows and columns.
type FacetMapping struct {
	Row    *FieldDef `json:"row,omitempty"`
	Column *FieldDef `json:"column,omitempty"`
}

// Resolve configures how scales, axes and legends of a composite view's
// children combine: "shared" lifts them to the parent, "independent" keeps
// them per child.
type Resolve struct {
	Scale  map[Channel]string `json:"scale,omitempty"`
	Axis   map[Channel]string `json:"axis,omitempty"`
	Legend map[Channel]string `json:"legend,omitempty"`
}

// LegendResolve returns the configured legend resolution for a channel,
// or "" when unset.
func (r *Resolve) LegendResolve(ch Channel) string {
	if r == nil {
		return ""
	}
	return r.Legend[ch]
}
