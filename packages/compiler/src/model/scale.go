package model

import "vgc-go/packages/compiler/src/spec"

// ScaleType is the resolved scale type for a channel.
type ScaleType string

const (
	ScaleLinear  ScaleType = "linear"
	ScaleLog     ScaleType = "log"
	ScalePow     ScaleType = "pow"
	ScaleSqrt    ScaleType = "sqrt"
	ScaleSymlog  ScaleType = "symlog"
	ScaleTime    ScaleType = "time"
	ScaleUTC     ScaleType = "utc"
	ScaleOrdinal ScaleType = "ordinal"
	ScaleBand    ScaleType = "band"
	ScalePoint   ScaleType = "point"
)

// IsContinuous reports whether the scale type maps a continuous domain.
func (t ScaleType) IsContinuous() bool {
	switch t {
	case ScaleLinear, ScaleLog, ScalePow, ScaleSqrt, ScaleSymlog, ScaleTime, ScaleUTC:
		return true
	}
	return false
}

// ScaleComponent is the per-channel scale state this subsystem reads and
// (for selection-driven domains) patches.
type ScaleComponent struct {
	Name string
	Type ScaleType

	// DomainRaw holds the provisional selection-domain marker until the
	// late rewrite pass resolves it to a concrete expression.
	DomainRaw string
}

// scaleChannels are the channels that get scales when encoded.
var scaleChannels = []spec.Channel{
	spec.ChannelX, spec.ChannelY,
	spec.ChannelColor, spec.ChannelFill, spec.ChannelStroke,
	spec.ChannelOpacity, spec.ChannelFillOpacity, spec.ChannelStrokeOpacity,
	spec.ChannelStrokeWidth, spec.ChannelSize, spec.ChannelShape,
}

func parseScales(m *UnitModel) {
	for _, ch := range scaleChannels {
		fd := m.FieldDef(ch)
		if fd == nil || fd.Field == "" || fd.Type == spec.GeoJSON {
			continue
		}
		name := string(ch)
		if m.Name() != "" {
			name = m.Name() + "_" + name
		}
		m.scales[ch] = &ScaleComponent{Name: name, Type: scaleTypeFor(ch, fd)}
	}
}

func scaleTypeFor(ch spec.Channel, fd *spec.FieldDef) ScaleType {
	if fd.Scale != nil && fd.Scale.Type != "" {
		return ScaleType(fd.Scale.Type)
	}
	switch fd.Type {
	case spec.Quantitative:
		return ScaleLinear
	case spec.Temporal:
		return ScaleTime
	default:
		switch ch {
		case spec.ChannelX, spec.ChannelY:
			if fd.Type == spec.Ordinal || fd.Type == spec.Nominal {
				return ScaleBand
			}
			return ScalePoint
		default:
			return ScaleOrdinal
		}
	}
}
