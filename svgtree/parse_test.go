package svgtree

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svggeom/svgpath"
)

func parseFile(t *testing.T, filename string, opts ...Option) *Tree {
	t.Helper()
	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()
	tree, err := Parse(f, opts...)
	require.NoError(t, err)
	return tree
}

func TestParseShapes(t *testing.T) {
	tree := parseFile(t, "testdata/shapes.svg")

	assert.Equal(t, 200., tree.Width)
	assert.Equal(t, 100., tree.Height)
	assert.Equal(t, ViewBox{0, 0, 400, 200}, tree.ViewBox)
	assert.Equal(t, []string{"Shapes"}, tree.Titles)
	assert.Equal(t, []string{"Basic shapes with mixed styles"}, tree.Descriptions)
	assert.Equal(t, svgpath.NewScale(0.5, 0.5), tree.ViewBoxTransform())

	nodes := tree.Root.Children()
	require.Len(t, nodes, 6)
	assert.IsType(t, &Defs{}, nodes[0])

	rect := nodes[1].(*Path)
	require.NotNil(t, rect.Fill)
	grad, ok := rect.Fill.Paint.(*Gradient)
	require.True(t, ok)
	assert.Equal(t, "grad", grad.ID)
	assert.Equal(t, Linear{0, 0, 1, 0}, grad.Direction)
	require.Len(t, grad.Stops, 2)
	assert.Equal(t, GradStop{StopColor: Color{0xff, 0, 0}, Offset: 0, Opacity: 1}, grad.Stops[0])
	assert.Equal(t, GradStop{StopColor: Color{0, 0, 0xff}, Offset: 1, Opacity: 0.5}, grad.Stops[1])
	assert.Same(t, grad, tree.Gradients["grad"])
	require.NotNil(t, rect.Stroke)
	assert.Equal(t, Color{0, 0, 0xff}, rect.Stroke.Paint)
	assert.Equal(t, 4., rect.Stroke.Width)

	// style sheets have priority over presentation attributes
	circle := nodes[2].(*Path)
	assert.Equal(t, "disc", circle.ID)
	assert.Equal(t, Color{0, 128, 0}, circle.Fill.Paint)
	assert.Nil(t, circle.Stroke)

	g := nodes[3].(*Group)
	assert.Equal(t, svgpath.NewTranslation(300, 0), g.Matrix)
	require.Len(t, g.Nodes, 4)

	ellipse := g.Nodes[0].(*Path)
	assert.InDelta(t, 0.5*128./255, ellipse.Fill.Opacity, 1e-9)
	assert.Equal(t, Color{0xff, 0, 0}, ellipse.Fill.Paint)
	assert.Nil(t, ellipse.Stroke)

	line := g.Nodes[1].(*Path)
	assert.Nil(t, line.Fill)
	assert.Equal(t, 0.5, line.Stroke.Opacity)

	polyline := g.Nodes[2].(*Path)
	assert.Nil(t, polyline.Fill)
	assert.Equal(t, RoundCap, polyline.Stroke.Cap)

	polygon := g.Nodes[3].(*Path)
	assert.Equal(t, EvenOdd, polygon.Fill.Rule)
	assert.Equal(t, Color{}, polygon.Fill.Paint)
	assert.Equal(t, svgpath.Close{}, polygon.Data[len(polygon.Data)-1])

	use := nodes[4].(*Group)
	assert.Equal(t, svgpath.NewTranslation(5, 7), use.Matrix)
	require.Len(t, use.Nodes, 1)
	tile := use.Nodes[0].(*Path)
	assert.Equal(t, Color{0xff, 0xa5, 0}, tile.Fill.Paint)

	text := nodes[5].(*Other)
	assert.Equal(t, "text", text.Tag)
}

func TestParseNested(t *testing.T) {
	tree := parseFile(t, "testdata/nested.svg")
	assert.Equal(t, 100., tree.Width)
	assert.Equal(t, 100., tree.Height)

	nodes := tree.Root.Children()
	require.Len(t, nodes, 4)

	outer := nodes[0].(*Group)
	assert.Equal(t, svgpath.NewScale(2, 2), outer.Matrix)
	assert.Equal(t, "blur", outer.Filter)
	assert.Equal(t, "clip", outer.ClipPath)
	assert.Equal(t, "m", outer.Mask)

	inner := outer.Nodes[0].(*Group)
	assert.Equal(t, svgpath.NewTranslation(5, 5), inner.Matrix)
	path := inner.Nodes[0].(*Path)
	require.NotNil(t, path.Stroke)
	assert.Equal(t, Color{0x12, 0x34, 0x56}, path.Stroke.Paint)
	assert.Equal(t, Bevel, path.Stroke.Join)
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, path.Stroke.Dash)
	assert.Equal(t, 2., path.Stroke.Width)

	sw := nodes[1].(*Group)
	require.Len(t, sw.Nodes, 1)
	assert.Equal(t, svgpath.Rect(0, 0, 10, 10), sw.Nodes[0].(*Path).Data)

	// recursive references are dropped
	use := nodes[2].(*Group)
	require.Len(t, use.Nodes, 1)
	assert.Empty(t, use.Nodes[0].Children())
}

func TestErrorModes(t *testing.T) {
	_, err := ParseBytes([]byte(`<svg><use href="#missing"/></svg>`))
	assert.NoError(t, err)

	_, err = ParseBytes([]byte(`<svg><use href="#missing"/></svg>`), WithErrorMode(WarnErrorMode))
	assert.NoError(t, err)

	_, err = ParseBytes([]byte(`<svg><use href="#missing"/></svg>`), WithErrorMode(StrictErrorMode))
	assert.Error(t, err)

	f, err := os.Open("testdata/nested.svg")
	require.NoError(t, err)
	defer f.Close()
	_, err = Parse(f, WithErrorMode(StrictErrorMode))
	assert.Error(t, err)
}

func TestInvalidDocuments(t *testing.T) {
	for _, input := range []string{
		"",
		"not xml at all",
		`<?xml version="1.0"?>`,
		`<html></html>`,
	} {
		_, err := ParseBytes([]byte(input))
		assert.Error(t, err, input)
	}

	data, err := os.ReadFile("testdata/malformed.svg")
	require.NoError(t, err)
	_, err = ParseBytes(data)
	assert.Error(t, err)
}

func TestDefaultSize(t *testing.T) {
	tree, err := ParseBytes([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	require.NoError(t, err)
	assert.Equal(t, 100., tree.Width)
	assert.Equal(t, 100., tree.Height)
	assert.Equal(t, ViewBox{W: 100, H: 100}, tree.ViewBox)
	assert.Empty(t, tree.Root.Children())

	tree, err = ParseBytes([]byte(`<svg width="2in" height="10mm"/>`))
	require.NoError(t, err)
	assert.Equal(t, 192., tree.Width)
	assert.InDelta(t, 37.795, tree.Height, 1e-3)
}

func TestParsePathElement(t *testing.T) {
	tree, err := ParseBytes([]byte(`<svg><path d="M 0 0 L 10 0 L 10 10 Q 5 5 bad" fill="none" stroke="red"/></svg>`))
	require.NoError(t, err)
	path := tree.Root.Children()[0].(*Path)
	// rendered up to the error
	assert.Len(t, path.Data, 3)
	assert.Nil(t, path.Fill)
}

func TestCurrentColorFill(t *testing.T) {
	tree, err := ParseBytes([]byte(`<svg><g color="blue"><rect width="1" height="1" fill="currentColor" fill-opacity="50%"/></g></svg>`))
	require.NoError(t, err)
	rect := tree.Root.Children()[0].Children()[0].(*Path)
	assert.Equal(t, Color{0, 0, 0xff}, rect.Fill.Paint)
	assert.Equal(t, 0.5, rect.Fill.Opacity)
}

func TestPatternAndFallback(t *testing.T) {
	src := `<svg>
		<defs><pattern id="p" width="4" height="4"/></defs>
		<rect width="1" height="1" fill="url(#p)"/>
		<rect width="1" height="1" fill="url(#missing) green"/>
		<rect width="1" height="1" fill="url(#missing)" stroke="black"/>
	</svg>`
	tree, err := ParseBytes([]byte(src))
	require.NoError(t, err)
	nodes := tree.Root.Children()
	require.Len(t, nodes, 4)
	assert.Equal(t, PatternRef{ID: "p"}, nodes[1].(*Path).Fill.Paint)
	assert.Equal(t, Color{0, 128, 0}, nodes[2].(*Path).Fill.Paint)
	assert.Nil(t, nodes[3].(*Path).Fill)
}

func TestSymbol(t *testing.T) {
	src := `<svg>
		<symbol id="s" viewBox="0 0 10 10"><rect width="10" height="10"/></symbol>
		<use href="#s" width="20" height="20"/>
	</svg>`
	tree, err := ParseBytes([]byte(src))
	require.NoError(t, err)
	nodes := tree.Root.Children()
	require.Len(t, nodes, 2)
	assert.Equal(t, "symbol", nodes[0].(*Other).Tag)
	use := nodes[1].(*Group)
	sym := use.Nodes[0].(*Group)
	assert.Equal(t, svgpath.NewScale(2, 2), sym.Matrix)
}

func TestRadialGradientInheritance(t *testing.T) {
	src := `<svg>
		<radialGradient id="base" cx="0.25" spreadMethod="reflect">
			<stop offset="0.5" stop-color="#fff"/>
		</radialGradient>
		<radialGradient id="derived" href="#base" r="40%" gradientUnits="userSpaceOnUse"/>
		<circle r="3" fill="url(#derived)"/>
	</svg>`
	tree, err := ParseBytes([]byte(src))
	require.NoError(t, err)
	grad := tree.Gradients["derived"]
	require.NotNil(t, grad)
	assert.True(t, grad.IsRadial())
	assert.Equal(t, Radial{0.25, 0.5, 0.25, 0.5, 0.4, 0}, grad.Direction)
	assert.Equal(t, ReflectSpread, grad.Spread)
	assert.Equal(t, UserSpaceOnUse, grad.Units)
	assert.Len(t, grad.Stops, 1)
	assert.Len(t, tree.Gradients, 2)
}

func TestCharset(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?><svg><title>caf` + "\xe9" + `</title></svg>`
	tree, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"café"}, tree.Titles)
}
