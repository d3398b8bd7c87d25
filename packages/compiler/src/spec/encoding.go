package spec

import (
	"encoding/json"
	"fmt"
)

// Channel identifies an encoding channel.
type Channel string

const (
	ChannelX             Channel = "x"
	ChannelY             Channel = "y"
	ChannelColor         Channel = "color"
	ChannelFill          Channel = "fill"
	ChannelStroke        Channel = "stroke"
	ChannelOpacity       Channel = "opacity"
	ChannelFillOpacity   Channel = "fillOpacity"
	ChannelStrokeOpacity Channel = "strokeOpacity"
	ChannelStrokeWidth   Channel = "strokeWidth"
	ChannelSize          Channel = "size"
	ChannelShape         Channel = "shape"
	ChannelDetail        Channel = "detail"
	ChannelRow           Channel = "row"
	ChannelColumn        Channel = "column"
)

// Measure is the measurement type of an encoded field.
type Measure string

const (
	Quantitative Measure = "quantitative"
	Temporal     Measure = "temporal"
	Ordinal      Measure = "ordinal"
	Nominal      Measure = "nominal"
	GeoJSON      Measure = "geojson"
)

// Encoding maps channels to field definitions for one unit view.
type Encoding struct {
	X             *FieldDef `json:"x,omitempty"`
	Y             *FieldDef `json:"y,omitempty"`
	Color         *FieldDef `json:"color,omitempty"`
	Fill          *FieldDef `json:"fill,omitempty"`
	Stroke        *FieldDef `json:"stroke,omitempty"`
	Opacity       *FieldDef `json:"opacity,omitempty"`
	FillOpacity   *FieldDef `json:"fillOpacity,omitempty"`
	StrokeOpacity *FieldDef `json:"strokeOpacity,omitempty"`
	StrokeWidth   *FieldDef `json:"strokeWidth,omitempty"`
	Size          *FieldDef `json:"size,omitempty"`
	Shape         *FieldDef `json:"shape,omitempty"`
	Detail        *FieldDef `json:"detail,omitempty"`
}

// ChannelDef returns the field definition for a channel, or nil.
func (e *Encoding) ChannelDef(ch Channel) *FieldDef {
	if e == nil {
		return nil
	}
	switch ch {
	case ChannelX:
		return e.X
	case ChannelY:
		return e.Y
	case ChannelColor:
		return e.Color
	case ChannelFill:
		return e.Fill
	case ChannelStroke:
		return e.Stroke
	case ChannelOpacity:
		return e.Opacity
	case ChannelFillOpacity:
		return e.FillOpacity
	case ChannelStrokeOpacity:
		return e.StrokeOpacity
	case ChannelStrokeWidth:
		return e.StrokeWidth
	case ChannelSize:
		return e.Size
	case ChannelShape:
		return e.Shape
	case ChannelDetail:
		return e.Detail
	}
	return nil
}

// FieldDef describes how one data field maps onto a channel.
type FieldDef struct {
	Field     string      `json:"field,omitempty"`
	Type      Measure     `json:"type,omitempty"`
	Bin       interface{} `json:"bin,omitempty"`
	Aggregate string      `json:"aggregate,omitempty"`
	TimeUnit  string      `json:"timeUnit,omitempty"`
	Title     *string     `json:"title,omitempty"`
	Format    string      `json:"format,omitempty"`
	Scale     *ScaleDef   `json:"scale,omitempty"`
	Legend    *LegendDef  `json:"legend,omitempty"`

	// LegendNull records an explicit `"legend": null`, which disables the
	// legend for this channel entirely.
	LegendNull bool `json:"-"`
}

// UnmarshalJSON distinguishes an absent legend member from an explicit null.
func (f *FieldDef) UnmarshalJSON(data []byte) error {
	type alias FieldDef
	aux := struct {
		Legend json.RawMessage `json:"legend,omitempty"`
		*alias
	}{alias: (*alias)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("field definition: %w", err)
	}
	if len(aux.Legend) > 0 {
		if string(aux.Legend) == "null" {
			f.LegendNull = true
		} else {
			f.Legend = &LegendDef{}
			if err := json.Unmarshal(aux.Legend, f.Legend); err != nil {
				return fmt.Errorf("legend definition: %w", err)
			}
		}
	}
	return nil
}

// HasBinOrAggregateOrTimeUnit reports whether the field is derived rather
// than raw. Legend interaction only targets raw fields.
func (f *FieldDef) HasBinOrAggregateOrTimeUnit() bool {
	binned := f.Bin != nil && f.Bin != false
	return binned || f.Aggregate != "" || f.TimeUnit != ""
}

// ScaleDef is the user-facing scale specification for one channel.
type ScaleDef struct {
	Type   string       `json:"type,omitempty"`
	Domain *ScaleDomain `json:"domain,omitempty"`
	Scheme string       `json:"scheme,omitempty"`
}

// ScaleDomain is either a literal domain array or a reference to a
// selection that should drive the domain.
type ScaleDomain struct {
	Values    []interface{} `json:"-"`
	Selection string        `json:"selection,omitempty"`
	Encoding  Channel       `json:"encoding,omitempty"`
	Field     string        `json:"field,omitempty"`
}

// UnmarshalJSON accepts either a JSON array (literal domain) or an object
// with a `selection` member.
func (d *ScaleDomain) UnmarshalJSON(data []byte) error {
	var values []interface{}
	if err := json.Unmarshal(data, &values); err == nil {
		d.Values = values
		return nil
	}
	type alias ScaleDomain
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("scale domain: %w", err)
	}
	*d = ScaleDomain(a)
	return nil
}
