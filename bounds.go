package svggeom

import (
	"math"

	"github.com/benoitkugler/svggeom/svgpath"
)

// Rect is an axis aligned rectangle.
type Rect struct {
	Min, Max svgpath.Point
}

// emptyRect is the neutral element of Union
var emptyRect = Rect{
	Min: svgpath.Point{X: math.Inf(1), Y: math.Inf(1)},
	Max: svgpath.Point{X: math.Inf(-1), Y: math.Inf(-1)},
}

// IsEmpty returns true if the rectangle contains no point.
func (r Rect) IsEmpty() bool { return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y }

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) addPoint(p svgpath.Point) Rect {
	r.Min.X, r.Min.Y = math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)
	r.Max.X, r.Max.Y = math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)
	return r
}

// Union returns the smallest rectangle containing `r` and `other`.
func (r Rect) Union(other Rect) Rect {
	if other.IsEmpty() {
		return r
	}
	return r.addPoint(other.Min).addPoint(other.Max)
}

// Bounds returns the tight bounding box of the path,
// in document space (that is, with its transform applied).
// Stroke widths are not taken into account.
// The returned rectangle is empty for a path without events.
func (p *PathDescriptor) Bounds() Rect {
	out := emptyRect
	for _, e := range p.Events {
		e = e.Transform(p.Transform)
		switch e.Kind {
		case BeginKind, LineKind, EndKind:
			out = out.addPoint(e.From).addPoint(e.To)
		case CubicKind:
			out = out.Union(cubicBounds(e.From, e.Ctrl1, e.Ctrl2, e.To))
		}
	}
	return out
}

// Bounds returns the union of the bounds of the paths.
func (doc *Document) Bounds() Rect {
	out := emptyRect
	for i := range doc.Paths {
		out = out.Union(doc.Paths[i].Bounds())
	}
	return out
}

// cubicBounds evaluates the curve at its end points and at the
// critical points of each coordinate.
func cubicBounds(p0, p1, p2, p3 svgpath.Point) Rect {
	out := emptyRect.addPoint(p0).addPoint(p3)

	aX, bX, cX := cubicDerivative(p0.X, p1.X, p2.X, p3.X)
	aY, bY, cY := cubicDerivative(p0.Y, p1.Y, p2.Y, p3.Y)
	for _, roots := range [2][]float64{quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)} {
		for _, t := range roots {
			if t <= 0 || t >= 1 {
				continue
			}
			out = out.addPoint(svgpath.Point{
				X: bezierSpline(p0.X, p1.X, p2.X, p3.X, t),
				Y: bezierSpline(p0.Y, p1.Y, p2.Y, p3.Y, t),
			})
		}
	}
	return out
}

// cubic polynomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of bezierSpline, as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

// quadraticRoots returns the real roots of at^2 + bt + c
func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}

	d := b*b - 4*a*c
	switch {
	case d < 0:
		return nil
	case d == 0:
		return []float64{-b / (2 * a)}
	default:
		sq := math.Sqrt(d)
		return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	}
}
