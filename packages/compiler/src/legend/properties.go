package legend

import (
	"fmt"
	"reflect"

	"vgc-go/packages/compiler/src/expression"
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
)

// resolveProperty computes one legend property's value and provenance for a
// channel. A nil value means the property stays unset.
func resolveProperty(prop string, m *model.UnitModel, ch spec.Channel, fd *spec.FieldDef) (interface{}, bool) {
	legend := fd.Legend
	user := legend.Property(prop)

	var value interface{}
	switch prop {
	case spec.PropFormat:
		// Temporal formatting happens at encode time, not here.
		if fd.Type == spec.Temporal {
			return nil, false
		}
		value = user
		if value == nil && fd.Format != "" {
			value = fd.Format
		}
	case spec.PropTitle:
		if legend != nil && legend.TitleNull {
			return nil, false
		}
		value = user
		if value == nil {
			value = fieldTitle(fd)
		}
	case spec.PropType:
		value = user
		if value == nil {
			value = defaultType(m, ch, fd)
		}
	case spec.PropDirection:
		value = user
		if value == nil {
			value = defaultDirection(m, ch, fd, legend)
		}
	case spec.PropGradientLength:
		value = user
		if value == nil {
			value = defaultGradientLength(m, ch, fd)
		}
	case spec.PropLabelOverlap:
		value = user
		if value == nil {
			value = defaultLabelOverlap(m.ScaleType(ch))
		}
	case spec.PropOrient:
		value = user
	case spec.PropSymbolType:
		value = user
		if value == nil {
			value = defaultSymbolType(m.MarkDef())
		}
	case spec.PropValues:
		value = legendValues(legend, fd)
	}
	if value == nil {
		return nil, false
	}

	explicit := user != nil && reflect.DeepEqual(value, user)
	switch prop {
	case spec.PropTitle:
		// A title equal to the field's own declared title counts as explicit.
		if fd.Title != nil && value == *fd.Title {
			explicit = true
		}
	case spec.PropValues:
		explicit = legend != nil && len(legend.Values) > 0
	}
	return value, explicit
}

// fieldTitle derives the default legend title from field metadata.
func fieldTitle(fd *spec.FieldDef) interface{} {
	if fd.Title != nil {
		return *fd.Title
	}
	if fd.Aggregate != "" {
		return fmt.Sprintf("%s(%s)", fd.Aggregate, fd.Field)
	}
	if fd.TimeUnit != "" {
		return fmt.Sprintf("%s (%s)", fd.Field, fd.TimeUnit)
	}
	return fd.Field
}

// defaultType picks gradient legends for continuous color scales and symbol
// legends everywhere else.
func defaultType(m *model.UnitModel, ch spec.Channel, fd *spec.FieldDef) string {
	switch ch {
	case spec.ChannelColor, spec.ChannelFill, spec.ChannelStroke:
		binned := fd.Bin != nil && fd.Bin != false
		if !binned && m.ScaleType(ch).IsContinuous() {
			return spec.LegendGradient
		}
	}
	return spec.LegendSymbol
}

func defaultDirection(m *model.UnitModel, ch spec.Channel, fd *spec.FieldDef, legend *spec.LegendDef) interface{} {
	if defaultType(m, ch, fd) != spec.LegendGradient {
		return nil
	}
	orient := ""
	if legend != nil {
		orient = legend.Orient
	}
	if orient == "" {
		orient = m.Config().Legend.Orient
	}
	switch orient {
	case "top", "bottom":
		return "horizontal"
	default:
		return "vertical"
	}
}

func defaultGradientLength(m *model.UnitModel, ch spec.Channel, fd *spec.FieldDef) interface{} {
	if defaultType(m, ch, fd) != spec.LegendGradient {
		return nil
	}
	if gl := m.Config().Legend.GradientLength; gl != nil {
		return *gl
	}
	return nil
}

// defaultLabelOverlap thins crowded labels on compressed scales.
func defaultLabelOverlap(t model.ScaleType) interface{} {
	switch t {
	case model.ScaleLog, model.ScaleSymlog:
		return "greedy"
	}
	return nil
}

func defaultSymbolType(mark *spec.MarkDef) string {
	if mark == nil {
		return "circle"
	}
	switch mark.Type {
	case "line", "trail", "rule":
		return "stroke"
	case "square", "rect", "bar":
		return "square"
	case "point":
		if mark.Shape != "" {
			return mark.Shape
		}
		return "circle"
	default:
		return "circle"
	}
}

// legendValues passes user values through, rendering temporal values as
// date-constructor signal expressions.
func legendValues(legend *spec.LegendDef, fd *spec.FieldDef) interface{} {
	if legend == nil || len(legend.Values) == 0 {
		return nil
	}
	if fd.Type != spec.Temporal {
		return legend.Values
	}
	out := make([]interface{}, len(legend.Values))
	for i, v := range legend.Values {
		if spec.IsDateTime(v) {
			out[i] = map[string]interface{}{"signal": expression.AssembleInit(v, nil)}
		} else {
			out[i] = v
		}
	}
	return out
}
