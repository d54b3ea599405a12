// Implements an abstract representation of
// svg paths, made of absolute commands only,
// which can then be consumed by the geometry conversion.
package svgpath

import (
	"fmt"
	"strings"
)

// Point is a position in user space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Add(q Point) Point             { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point             { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(f float64) Point           { return Point{p.X * f, p.Y * f} }
func (p Point) Lerp(q Point, t float64) Point { return p.Add(q.Sub(p).Mul(t)) }

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathCubicTo
	pathClose
)

// Operation groups the different SVG commands.
// Quadratic curves and arcs are converted to cubic ones
// when compiling, so that only four commands remain.
type Operation interface {
	command() pathCommand
}

type MoveTo Point

type LineTo Point

// CubicTo holds the two control points and the end point.
type CubicTo struct {
	C1, C2, To Point
}

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic SVG operations, which should not be nil
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f",
				op.C1.X, op.C1.Y, op.C2.X, op.C2.Y, op.To.X, op.To.Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b Point) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve,
// elevated to a cubic one, starting from `from`.
func (p *Path) QuadBezier(from, b, c Point) {
	c1 := from.Lerp(b, 2./3)
	c2 := c.Lerp(b, 2./3)
	*p = append(*p, CubicTo{C1: c1, C2: c2, To: c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d Point) {
	*p = append(*p, CubicTo{C1: b, C2: c, To: d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns a copy of the path with every point mapped by `m`.
func (p Path) Transform(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(m.TransformPoint(Point(op)))
		case LineTo:
			out[i] = LineTo(m.TransformPoint(Point(op)))
		case CubicTo:
			out[i] = CubicTo{C1: m.TransformPoint(op.C1), C2: m.TransformPoint(op.C2), To: m.TransformPoint(op.To)}
		default:
			out[i] = op
		}
	}
	return out
}
