package spec

// Config is the theme/defaults table consulted while compiling. Only the
// pieces this subsystem reads are modeled; everything else the runtime
// resolves from its own config.
type Config struct {
	Legend    *LegendConfig    `json:"legend,omitempty" yaml:"legend,omitempty"`
	Selection *SelectionConfig `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// LegendConfig carries config-level legend property defaults. A default
// present here means the runtime already renders it; the compiler then only
// emits a component property when the resolved value is explicit.
type LegendConfig struct {
	Direction      string      `json:"direction,omitempty" yaml:"direction,omitempty"`
	GradientLength *float64    `json:"gradientLength,omitempty" yaml:"gradientLength,omitempty"`
	LabelOverlap   interface{} `json:"labelOverlap,omitempty" yaml:"labelOverlap,omitempty"`
	Orient         string      `json:"orient,omitempty" yaml:"orient,omitempty"`
	SymbolType     string      `json:"symbolType,omitempty" yaml:"symbolType,omitempty"`
}

// HasDefault reports whether the config supplies a default for a legend
// property. Properties without config defaults must be emitted even when
// implicit, or the runtime would have no value at all.
func (c *LegendConfig) HasDefault(prop string) bool {
	if c == nil {
		return false
	}
	switch prop {
	case PropDirection:
		return c.Direction != ""
	case PropGradientLength:
		return c.GradientLength != nil
	case PropLabelOverlap:
		return c.LabelOverlap != nil
	case PropOrient:
		return c.Orient != ""
	case PropSymbolType:
		return c.SymbolType != ""
	}
	return false
}

// SelectionConfig carries per-type selection defaults.
type SelectionConfig struct {
	Single   *SelectionTypeConfig `json:"single,omitempty" yaml:"single,omitempty"`
	Multi    *SelectionTypeConfig `json:"multi,omitempty" yaml:"multi,omitempty"`
	Interval *SelectionTypeConfig `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// SelectionTypeConfig is the default definition merged under a declared
// selection of the matching type.
type SelectionTypeConfig struct {
	On      string      `json:"on,omitempty" yaml:"on,omitempty"`
	Empty   string      `json:"empty,omitempty" yaml:"empty,omitempty"`
	Resolve string      `json:"resolve,omitempty" yaml:"resolve,omitempty"`
	Toggle  interface{} `json:"toggle,omitempty" yaml:"toggle,omitempty"`
	Mark    Mark        `json:"mark,omitempty" yaml:"mark,omitempty"`
}

// TypeConfig returns the defaults for a selection type, or nil.
func (c *SelectionConfig) TypeConfig(t SelectionType) *SelectionTypeConfig {
	if c == nil {
		return nil
	}
	switch t {
	case SelectionSingle:
		return c.Single
	case SelectionMulti:
		return c.Multi
	case SelectionInterval:
		return c.Interval
	}
	return nil
}

// DefaultConfig returns the built-in configuration the user config merges
// over.
func DefaultConfig() *Config {
	gradientLength := 200.0
	return &Config{
		Legend: &LegendConfig{
			GradientLength: &gradientLength,
			Orient:         "right",
		},
		Selection: &SelectionConfig{
			Single: &SelectionTypeConfig{On: "click", Empty: EmptyAll, Resolve: ResolveGlobal},
			Multi:  &SelectionTypeConfig{On: "click", Empty: EmptyAll, Resolve: ResolveGlobal, Toggle: "event.shiftKey"},
			Interval: &SelectionTypeConfig{
				On:      "[pointerdown, window:pointerup] > window:pointermove!",
				Empty:   EmptyAll,
				Resolve: ResolveGlobal,
				Mark:    Mark{"fill": "#333", "fillOpacity": 0.125, "stroke": "white"},
			},
		},
	}
}

// MergeConfig overlays a user config on the defaults. The user config wins
// member-wise; nil members fall through.
func MergeConfig(user *Config) *Config {
	merged := DefaultConfig()
	if user == nil {
		return merged
	}
	if user.Legend != nil {
		l := *merged.Legend
		if user.Legend.Direction != "" {
			l.Direction = user.Legend.Direction
		}
		if user.Legend.GradientLength != nil {
			l.GradientLength = user.Legend.GradientLength
		}
		if user.Legend.LabelOverlap != nil {
			l.LabelOverlap = user.Legend.LabelOverlap
		}
		if user.Legend.Orient != "" {
			l.Orient = user.Legend.Orient
		}
		if user.Legend.SymbolType != "" {
			l.SymbolType = user.Legend.SymbolType
		}
		merged.Legend = &l
	}
	if user.Selection != nil {
		s := *merged.Selection
		if user.Selection.Single != nil {
			s.Single = mergeTypeConfig(merged.Selection.Single, user.Selection.Single)
		}
		if user.Selection.Multi != nil {
			s.Multi = mergeTypeConfig(merged.Selection.Multi, user.Selection.Multi)
		}
		if user.Selection.Interval != nil {
			s.Interval = mergeTypeConfig(merged.Selection.Interval, user.Selection.Interval)
		}
		merged.Selection = &s
	}
	return merged
}

func mergeTypeConfig(base, user *SelectionTypeConfig) *SelectionTypeConfig {
	merged := *base
	if user.On != "" {
		merged.On = user.On
	}
	if user.Empty != "" {
		merged.Empty = user.Empty
	}
	if user.Resolve != "" {
		merged.Resolve = user.Resolve
	}
	if user.Toggle != nil {
		merged.Toggle = user.Toggle
	}
	if user.Mark != nil {
		merged.Mark = user.Mark
	}
	return &merged
}
