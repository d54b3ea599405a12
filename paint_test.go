package svggeom

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svggeom/svgtree"
)

func TestOpacityToAlpha(t *testing.T) {
	for _, test := range []struct {
		opacity float64
		want    uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{0.2, 51},
		{1. / 255, 1},
		{0.499 / 255, 0},
		{-1, 0},
		{2, 255},
		{math.NaN(), 0},
	} {
		assert.Equal(t, test.want, OpacityToAlpha(test.opacity), "%v", test.opacity)
	}
}

func TestResolveFill(t *testing.T) {
	c, draw := ResolveFill(&svgtree.Fill{Paint: svgtree.Color{R: 10, G: 20, B: 30}, Opacity: 0.5, Rule: svgtree.EvenOdd})
	assert.Equal(t, Color{10, 20, 30, 128}, c)
	assert.Equal(t, DrawType{Kind: Fill, Rule: svgtree.EvenOdd}, draw)

	// non plain paints degrade to the placeholder
	c, draw = ResolveFill(&svgtree.Fill{Paint: &svgtree.Gradient{ID: "g"}, Opacity: 1})
	assert.Equal(t, PlaceholderColor, c)
	assert.Equal(t, Fill, draw.Kind)
	c, _ = ResolveFill(&svgtree.Fill{Paint: svgtree.PatternRef{ID: "p"}, Opacity: 0.1})
	assert.Equal(t, PlaceholderColor, c)
}

func TestResolveStroke(t *testing.T) {
	c, draw := ResolveStroke(&svgtree.Stroke{
		Paint:      svgtree.Color{R: 255},
		Opacity:    1,
		Width:      3,
		MiterLimit: 4,
		Cap:        svgtree.RoundCap,
		Join:       svgtree.Bevel,
		Dash:       []float64{1, 2},
		DashOffset: 0.5,
	})
	assert.Equal(t, Color{255, 0, 0, 255}, c)
	assert.Equal(t, Stroke, draw.Kind)
	assert.Equal(t, StrokeStyle{
		LineWidth:  3,
		Tolerance:  0.01,
		Cap:        CapRound,
		Join:       JoinBevel,
		MiterLimit: 4,
		Dash:       []float64{1, 2},
		DashOffset: 0.5,
	}, draw.Stroke)

	for c, want := range map[svgtree.CapMode]LineCap{
		svgtree.ButtCap:   CapButt,
		svgtree.SquareCap: CapSquare,
		svgtree.RoundCap:  CapRound,
	} {
		_, draw := ResolveStroke(&svgtree.Stroke{Paint: svgtree.Color{}, Cap: c, Width: 1})
		assert.Equal(t, want, draw.Stroke.Cap)
	}
	for join, want := range map[svgtree.JoinMode]LineJoin{
		svgtree.Miter: JoinMiter,
		svgtree.Bevel: JoinBevel,
		svgtree.Round: JoinRound,
	} {
		_, draw := ResolveStroke(&svgtree.Stroke{Paint: svgtree.Color{}, Join: join, Width: 1})
		assert.Equal(t, want, draw.Stroke.Join)
	}
}

func TestColor(t *testing.T) {
	c := Color{0x12, 0x34, 0x56, 0x80}
	assert.Equal(t, "#12345680", c.String())

	var back Color
	require.NoError(t, back.UnmarshalText([]byte("#12345680")))
	assert.Equal(t, c, back)
	assert.Error(t, back.UnmarshalText([]byte("#123")))
	assert.Error(t, back.UnmarshalText([]byte("#zz345680")))

	// straight alpha, as color.NRGBA
	assert.Equal(t, color.NRGBAModel.Convert(color.NRGBA{0x12, 0x34, 0x56, 0x80}), color.NRGBAModel.Convert(c))
	r, _, _, a := c.RGBA()
	assert.Equal(t, uint32(0x8080), a)
	assert.Less(t, r, uint32(0x1212))
}

func TestStyleText(t *testing.T) {
	for _, v := range []LineCap{CapButt, CapSquare, CapRound} {
		text, err := v.MarshalText()
		require.NoError(t, err)
		var back LineCap
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, v, back)
	}
	for _, v := range []LineJoin{JoinMiter, JoinBevel, JoinRound} {
		text, err := v.MarshalText()
		require.NoError(t, err)
		var back LineJoin
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, v, back)
	}
	var k DrawKind
	require.NoError(t, k.UnmarshalText([]byte("stroke")))
	assert.Equal(t, Stroke, k)
	assert.Error(t, k.UnmarshalText([]byte("paint")))
}
