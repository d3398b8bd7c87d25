package model

import (
	"sort"

	"vgc-go/packages/compiler/src/vega"
)

// PropertyValue is a resolved legend property with its provenance: explicit
// values came from the user spec (or a derived necessity), implicit values
// from a filled-in default.
type PropertyValue struct {
	Value    interface{}
	Explicit bool
}

// LegendComponent is the per-channel legend state: a property map with
// provenance flags plus the explicit and implicit halves of the encode
// block.
type LegendComponent struct {
	props map[string]PropertyValue

	// ExplicitEncode holds user-specified per-part encode rules,
	// ImplicitEncode the channel-default rules; assembly layers explicit
	// over implicit.
	ExplicitEncode map[string]*vega.EncodeEntry
	ImplicitEncode map[string]*vega.EncodeEntry
}

// NewLegendComponent creates an empty component.
func NewLegendComponent() *LegendComponent {
	return &LegendComponent{
		props:          map[string]PropertyValue{},
		ExplicitEncode: map[string]*vega.EncodeEntry{},
		ImplicitEncode: map[string]*vega.EncodeEntry{},
	}
}

// Set records a property value. Undefined (nil) values are never set, and an
// implicit value never overwrites an explicit one.
func (c *LegendComponent) Set(prop string, value interface{}, explicit bool) {
	if value == nil {
		return
	}
	if existing, ok := c.props[prop]; ok && existing.Explicit && !explicit {
		return
	}
	c.props[prop] = PropertyValue{Value: value, Explicit: explicit}
}

// Get returns a property value and whether it is set.
func (c *LegendComponent) Get(prop string) (PropertyValue, bool) {
	v, ok := c.props[prop]
	return v, ok
}

// Value returns a property's value, or nil when unset.
func (c *LegendComponent) Value(prop string) interface{} {
	if v, ok := c.props[prop]; ok {
		return v.Value
	}
	return nil
}

// Delete removes a property.
func (c *LegendComponent) Delete(prop string) {
	delete(c.props, prop)
}

// Properties returns the set property names in sorted order.
func (c *LegendComponent) Properties() []string {
	out := make([]string, 0, len(c.props))
	for p := range c.props {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Encode returns the merged encode entry for a part: explicit rules layered
// over implicit ones. Returns nil when the part is empty.
func (c *LegendComponent) Encode(part string) *vega.EncodeEntry {
	implicit := c.ImplicitEncode[part]
	explicit := c.ExplicitEncode[part]
	if implicit == nil && explicit == nil {
		return nil
	}
	merged := &vega.EncodeEntry{Update: map[string]interface{}{}}
	for _, e := range []*vega.EncodeEntry{implicit, explicit} {
		if e == nil {
			continue
		}
		if e.Name != "" {
			merged.Name = e.Name
		}
		if e.Interactive {
			merged.Interactive = true
		}
		for k, v := range e.Update {
			merged.Update[k] = v
		}
	}
	if len(merged.Update) == 0 && merged.Name == "" {
		return nil
	}
	return merged
}

// Clone returns a deep-enough copy: property map and encode maps are copied,
// encode value defs are shared.
func (c *LegendComponent) Clone() *LegendComponent {
	out := NewLegendComponent()
	for p, v := range c.props {
		out.props[p] = v
	}
	for part, e := range c.ExplicitEncode {
		out.ExplicitEncode[part] = cloneEncodeEntry(e)
	}
	for part, e := range c.ImplicitEncode {
		out.ImplicitEncode[part] = cloneEncodeEntry(e)
	}
	return out
}

func cloneEncodeEntry(e *vega.EncodeEntry) *vega.EncodeEntry {
	if e == nil {
		return nil
	}
	clone := &vega.EncodeEntry{Name: e.Name, Interactive: e.Interactive}
	if e.Update != nil {
		clone.Update = make(map[string]interface{}, len(e.Update))
		for k, v := range e.Update {
			clone.Update[k] = v
		}
	}
	return clone
}
