// Package vega defines the subset of the reactive scenegraph wire format this
// compiler emits: signals, datasets, marks and legends. The types mirror the
// JSON the downstream runtime consumes; anything the compiler treats as opaque
// (mark fragments, encode value defs) stays map-backed.
package vega

// SignalRef is a reference to a named signal, used wherever the runtime
// accepts `{"signal": ...}` in place of a literal value.
type SignalRef struct {
	Signal string `json:"signal"`
}

// OnEvent is one event-handler rule on a signal: when `Events` fires,
// `Update` is evaluated and assigned.
//
// Events is either an event-selector string or a SignalRef (or a slice of
// SignalRefs) for signal-triggered rules.
type OnEvent struct {
	Events interface{} `json:"events"`
	Update string      `json:"update"`
	Force  bool        `json:"force,omitempty"`
}

// Signal is a named reactive value with an optional initial value and an
// ordered list of event-handler rules.
type Signal struct {
	Name   string      `json:"name"`
	Value  interface{} `json:"value,omitempty"`
	Init   interface{} `json:"init,omitempty"`
	Update string      `json:"update,omitempty"`
	On     []OnEvent   `json:"on,omitempty"`
	Push   string      `json:"push,omitempty"`
}

// Data is a named dataset declaration. Selection stores are emitted as
// empty-initialized datasets (no Values, no Transform).
type Data struct {
	Name      string                   `json:"name"`
	Values    interface{}              `json:"values,omitempty"`
	URL       string                   `json:"url,omitempty"`
	Transform []map[string]interface{} `json:"transform,omitempty"`
}

// Mark is an opaque mark-spec fragment. Selection types contribute marks
// (brush rectangles, handles) as fragments appended to a view's mark list.
type Mark map[string]interface{}

// Name returns the mark's name, or "" when unnamed.
func (m Mark) Name() string {
	if n, ok := m["name"].(string); ok {
		return n
	}
	return ""
}

// EncodeEntry is the encode block of one legend part. Name and Interactive
// are only populated when a part has been rebound as an event target.
type EncodeEntry struct {
	Name        string                 `json:"name,omitempty"`
	Interactive bool                   `json:"interactive,omitempty"`
	Update      map[string]interface{} `json:"update,omitempty"`
}

// Legend is an assembled legend definition: resolved legend properties plus
// an optional per-part encode block.
type Legend map[string]interface{}

// Spec is the assembled top-level output consumed by the rendering runtime.
type Spec struct {
	Schema      string                   `json:"$schema,omitempty"`
	Description string                   `json:"description,omitempty"`
	Width       float64                  `json:"width,omitempty"`
	Height      float64                  `json:"height,omitempty"`
	Signals     []Signal                 `json:"signals,omitempty"`
	Data        []Data                   `json:"data,omitempty"`
	Scales      []map[string]interface{} `json:"scales,omitempty"`
	Legends     []Legend                 `json:"legends,omitempty"`
	Marks       []Mark                   `json:"marks,omitempty"`
}

// HasSignal reports whether a signal with the given name is already present.
func HasSignal(signals []Signal, name string) bool {
	for _, s := range signals {
		if s.Name == name {
			return true
		}
	}
	return false
}

// FindSignal returns a pointer into `signals` for the named signal, or nil.
func FindSignal(signals []Signal, name string) *Signal {
	for i := range signals {
		if signals[i].Name == name {
			return &signals[i]
		}
	}
	return nil
}

// HasData reports whether a dataset with the given name is already present.
func HasData(data []Data, name string) bool {
	for _, d := range data {
		if d.Name == name {
			return true
		}
	}
	return false
}
