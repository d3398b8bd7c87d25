package legend_test

import (
	"testing"

	"vgc-go/packages/compiler/src/legend"
	"vgc-go/packages/compiler/src/model"
	"vgc-go/packages/compiler/src/spec"
	"vgc-go/packages/compiler/src/vega"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func component(props map[string]model.PropertyValue) *model.LegendComponent {
	c := model.NewLegendComponent()
	for prop, pv := range props {
		c.Set(prop, pv.Value, pv.Explicit)
	}
	return c
}

func TestMergeLegendComponents(t *testing.T) {
	t.Run("nil parent adopts a clone of the child", func(t *testing.T) {
		child := component(map[string]model.PropertyValue{
			spec.PropTitle: {Value: "Origin"},
		})
		merged := legend.MergeLegendComponents(nil, child)
		require.NotNil(t, merged)
		assert.Equal(t, "Origin", merged.Value(spec.PropTitle))

		merged.Set(spec.PropTitle, "changed", true)
		assert.Equal(t, "Origin", child.Value(spec.PropTitle), "the child must not alias the merge result")
	})

	t.Run("conflicting explicit orients fail the merge", func(t *testing.T) {
		parent := component(map[string]model.PropertyValue{
			spec.PropOrient: {Value: "left", Explicit: true},
		})
		child := component(map[string]model.PropertyValue{
			spec.PropOrient: {Value: "right", Explicit: true},
		})
		assert.Nil(t, legend.MergeLegendComponents(parent, child))
	})

	t.Run("matching explicit orients merge fine", func(t *testing.T) {
		parent := component(map[string]model.PropertyValue{
			spec.PropOrient: {Value: "left", Explicit: true},
		})
		child := component(map[string]model.PropertyValue{
			spec.PropOrient: {Value: "left", Explicit: true},
		})
		merged := legend.MergeLegendComponents(parent, child)
		require.NotNil(t, merged)
		assert.Equal(t, "left", merged.Value(spec.PropOrient))
	})

	t.Run("explicit beats implicit", func(t *testing.T) {
		parent := component(map[string]model.PropertyValue{
			spec.PropSymbolType: {Value: "square"},
		})
		child := component(map[string]model.PropertyValue{
			spec.PropSymbolType: {Value: "diamond", Explicit: true},
		})
		merged := legend.MergeLegendComponents(parent, child)
		require.NotNil(t, merged)
		pv, ok := merged.Get(spec.PropSymbolType)
		require.True(t, ok)
		assert.Equal(t, "diamond", pv.Value)
		assert.True(t, pv.Explicit)
	})

	t.Run("circle wins among implicit symbol types", func(t *testing.T) {
		parent := component(map[string]model.PropertyValue{
			spec.PropSymbolType: {Value: "square"},
		})
		child := component(map[string]model.PropertyValue{
			spec.PropSymbolType: {Value: "circle"},
		})
		merged := legend.MergeLegendComponents(parent, child)
		require.NotNil(t, merged)
		assert.Equal(t, "circle", merged.Value(spec.PropSymbolType))
	})

	t.Run("type conflict degrades to an implicit symbol and strips gradient encoding", func(t *testing.T) {
		parent := component(map[string]model.PropertyValue{
			spec.PropType: {Value: spec.LegendGradient},
		})
		parent.ImplicitEncode[spec.PartGradient] = &vega.EncodeEntry{
			Update: map[string]interface{}{"opacity": map[string]interface{}{"value": 0.7}},
		}
		child := component(map[string]model.PropertyValue{
			spec.PropType: {Value: spec.LegendSymbol},
		})
		child.ExplicitEncode[spec.PartGradient] = &vega.EncodeEntry{
			Update: map[string]interface{}{"opacity": map[string]interface{}{"value": 0.5}},
		}

		merged := legend.MergeLegendComponents(parent, child)
		require.NotNil(t, merged)
		pv, _ := merged.Get(spec.PropType)
		assert.Equal(t, spec.LegendSymbol, pv.Value)
		assert.False(t, pv.Explicit)
		assert.NotContains(t, merged.ImplicitEncode, spec.PartGradient)
		assert.NotContains(t, merged.ExplicitEncode, spec.PartGradient)
	})

	t.Run("child encode parts are adopted when the parent lacks them", func(t *testing.T) {
		parent := model.NewLegendComponent()
		child := model.NewLegendComponent()
		child.ExplicitEncode[spec.PartSymbols] = &vega.EncodeEntry{
			Update: map[string]interface{}{"stroke": map[string]interface{}{"value": "red"}},
		}
		merged := legend.MergeLegendComponents(parent, child)
		require.NotNil(t, merged)
		assert.Contains(t, merged.ExplicitEncode, spec.PartSymbols)
	})

	t.Run("parent keeps its value when both sides are explicit", func(t *testing.T) {
		parent := component(map[string]model.PropertyValue{
			spec.PropFormat: {Value: "d", Explicit: true},
		})
		child := component(map[string]model.PropertyValue{
			spec.PropFormat: {Value: ".2f", Explicit: true},
		})
		merged := legend.MergeLegendComponents(parent, child)
		require.NotNil(t, merged)
		assert.Equal(t, "d", merged.Value(spec.PropFormat))
	})
}

func TestMergeTitles(t *testing.T) {
	assert.Equal(t, "Origin", legend.MergeTitles("Origin", "Origin"))
	assert.Equal(t, "Origin, Country", legend.MergeTitles("Origin", "Country"))
	assert.Equal(t, "Origin", legend.MergeTitles("Origin", nil))
	assert.Equal(t, "Country", legend.MergeTitles(nil, "Country"))
}
