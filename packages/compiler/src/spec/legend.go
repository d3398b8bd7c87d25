package spec

import (
	"encoding/json"
	"fmt"
)

// Legend property names, as they appear in the assembled output.
const (
	PropDirection      = "direction"
	PropFormat         = "format"
	PropGradientLength = "gradientLength"
	PropLabelOverlap   = "labelOverlap"
	PropOrient         = "orient"
	PropSymbolType     = "symbolType"
	PropTitle          = "title"
	PropType           = "type"
	PropValues         = "values"
)

// LegendProperties is the fixed, ordered set of properties a legend
// component resolves.
var LegendProperties = []string{
	PropDirection,
	PropFormat,
	PropGradientLength,
	PropLabelOverlap,
	PropOrient,
	PropSymbolType,
	PropTitle,
	PropType,
	PropValues,
}

// Legend types.
const (
	LegendSymbol   = "symbol"
	LegendGradient = "gradient"
)

// Legend encode part names.
const (
	PartLabels   = "labels"
	PartLegend   = "legend"
	PartTitle    = "title"
	PartSymbols  = "symbols"
	PartGradient = "gradient"
)

// LegendParts is the fixed, ordered set of encode parts.
var LegendParts = []string{PartLabels, PartLegend, PartTitle, PartSymbols, PartGradient}

// LegendDef is the user-facing legend specification for one channel.
type LegendDef struct {
	Direction      string                            `json:"direction,omitempty"`
	Format         string                            `json:"format,omitempty"`
	GradientLength *float64                          `json:"gradientLength,omitempty"`
	LabelOverlap   interface{}                       `json:"labelOverlap,omitempty"`
	Orient         string                            `json:"orient,omitempty"`
	SymbolType     string                            `json:"symbolType,omitempty"`
	Title          *string                           `json:"title,omitempty"`
	Type           string                            `json:"type,omitempty"`
	Values         []interface{}                     `json:"values,omitempty"`
	Encoding       map[string]map[string]interface{} `json:"encoding,omitempty"`

	// TitleNull records an explicit `"title": null`, which disables the title.
	TitleNull bool `json:"-"`
}

// UnmarshalJSON distinguishes an absent title member from an explicit null.
func (l *LegendDef) UnmarshalJSON(data []byte) error {
	type alias LegendDef
	aux := struct {
		Title json.RawMessage `json:"title,omitempty"`
		*alias
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("legend definition: %w", err)
	}
	if len(aux.Title) > 0 {
		if string(aux.Title) == "null" {
			l.TitleNull = true
		} else {
			var s string
			if err := json.Unmarshal(aux.Title, &s); err != nil {
				return fmt.Errorf("legend title: %w", err)
			}
			l.Title = &s
		}
	}
	return nil
}

// Property returns the user-specified value for a legend property, or nil
// when the property was not specified.
func (l *LegendDef) Property(name string) interface{} {
	if l == nil {
		return nil
	}
	switch name {
	case PropDirection:
		if l.Direction != "" {
			return l.Direction
		}
	case PropFormat:
		if l.Format != "" {
			return l.Format
		}
	case PropGradientLength:
		if l.GradientLength != nil {
			return *l.GradientLength
		}
	case PropLabelOverlap:
		return l.LabelOverlap
	case PropOrient:
		if l.Orient != "" {
			return l.Orient
		}
	case PropSymbolType:
		if l.SymbolType != "" {
			return l.SymbolType
		}
	case PropTitle:
		if l.Title != nil {
			return *l.Title
		}
	case PropType:
		if l.Type != "" {
			return l.Type
		}
	case PropValues:
		if len(l.Values) > 0 {
			return l.Values
		}
	}
	return nil
}
