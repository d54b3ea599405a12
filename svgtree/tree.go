// Package svgtree parses SVG documents into a tree of
// groups and paths, with styles already cascaded
// and shapes reduced to absolute path data.
package svgtree

import (
	"fmt"

	"github.com/benoitkugler/svggeom/svgpath"
)

// Node is an element of the document tree.
type Node interface {
	// Transform returns the transform of the node,
	// relative to its parent.
	Transform() svgpath.Matrix2D
	// Children returns the child nodes, in document order.
	Children() []Node
}

// Svg is the root of a document.
type Svg struct {
	Nodes []Node
}

// Group is a container, built from <g>, <a>, <switch>,
// nested <svg> and resolved <use> elements.
type Group struct {
	ID     string
	Matrix svgpath.Matrix2D
	// IDs of the referenced effects, empty if absent
	Filter, ClipPath, Mask string
	Nodes                  []Node
}

// Path is a drawable shape.
type Path struct {
	ID     string
	Matrix svgpath.Matrix2D
	Data   svgpath.Path
	Fill   *Fill   // nil if not filled
	Stroke *Stroke // nil if not stroked
}

// Defs holds definitions, which are never drawn directly.
type Defs struct {
	Nodes []Node
}

// Other is any element not drawn as geometry, like text or images.
type Other struct {
	Tag, ID string
	Matrix  svgpath.Matrix2D
	Nodes   []Node
}

func (*Svg) Transform() svgpath.Matrix2D     { return svgpath.Identity }
func (g *Group) Transform() svgpath.Matrix2D { return g.Matrix }
func (p *Path) Transform() svgpath.Matrix2D  { return p.Matrix }
func (*Defs) Transform() svgpath.Matrix2D    { return svgpath.Identity }
func (o *Other) Transform() svgpath.Matrix2D { return o.Matrix }

func (s *Svg) Children() []Node   { return s.Nodes }
func (g *Group) Children() []Node { return g.Nodes }
func (*Path) Children() []Node    { return nil }
func (d *Defs) Children() []Node  { return d.Nodes }
func (o *Other) Children() []Node { return o.Nodes }

// Paint is the source of the color used to fill or stroke a shape.
// It is one of Color, *Gradient or PatternRef
type Paint interface {
	isPaint()
}

// Color is a plain sRGB color. Its alpha, if any,
// is stored in the opacity of the Fill or Stroke.
type Color struct{ R, G, B uint8 }

// PatternRef references a <pattern> element by ID.
type PatternRef struct{ ID string }

func (Color) isPaint()      {}
func (*Gradient) isPaint()  {}
func (PatternRef) isPaint() {}

// FillRule is the rule used to decide what is inside a shape.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (f FillRule) String() string {
	if f == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

func (f FillRule) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *FillRule) UnmarshalText(text []byte) error {
	switch string(text) {
	case "nonzero":
		*f = NonZero
	case "evenodd":
		*f = EvenOdd
	default:
		return fmt.Errorf("invalid fill rule %q", text)
	}
	return nil
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case SquareCap:
		return "square"
	case RoundCap:
		return "round"
	default:
		return "<unknown CapMode>"
	}
}

// JoinMode specifies how segments join.
// SVG2 arc joins are approximated by Round,
// miter-clip by Miter.
type JoinMode uint8

const (
	Miter JoinMode = iota
	Bevel
	Round
)

func (s JoinMode) String() string {
	switch s {
	case Miter:
		return "miter"
	case Bevel:
		return "bevel"
	case Round:
		return "round"
	default:
		return "<unknown JoinMode>"
	}
}

// Fill is the resolved fill style of a path.
type Fill struct {
	Paint   Paint
	Opacity float64 // in [0, 1]
	Rule    FillRule
}

// Stroke is the resolved stroke style of a path.
type Stroke struct {
	Paint      Paint
	Opacity    float64 // in [0, 1]
	Width      float64
	MiterLimit float64
	Cap        CapMode
	Join       JoinMode
	Dash       []float64 // nil for solid lines
	DashOffset float64
}

// ViewBox defines a rectangle in user space.
type ViewBox struct{ X, Y, W, H float64 }

// Tree is a parsed SVG document.
type Tree struct {
	Width, Height float64
	ViewBox       ViewBox
	AspectRatio   AspectRatio
	Root          *Svg

	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here

	// Gradients indexed by ID, including those
	// not referenced by any shape.
	Gradients map[string]*Gradient
}
