package svgpath

import "math"

// Implements SVG style matrix transformations.
// https://developer.mozilla.org/en-US/docs/Web/SVG/Attribute/transform

// Matrix2D is an affine transform, representing
//
//	| A  C  E |
//	| B  D  F |
//	| 0  0  1 |
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// NewTranslation returns a pure translation.
func NewTranslation(x, y float64) Matrix2D { return Matrix2D{1, 0, 0, 1, x, y} }

// NewScale returns a pure scale.
func NewScale(x, y float64) Matrix2D { return Matrix2D{x, 0, 0, y, 0, 0} }

// IsIdentity uses exact comparison: documents are expected
// to encode true identities exactly.
func (m Matrix2D) IsIdentity() bool { return m == Identity }

// HasSkew returns true if the rotation/skew components are not zero.
func (m Matrix2D) HasSkew() bool { return m.B != 0 || m.C != 0 }

// Mult returns the product a * b, that is the transform
// applying `b` first and then `a`.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Compose returns the transform of a `child` coordinate system nested
// in `parent`, that is parent.Mult(child).
// Identities are returned unchanged, and skew-free operands
// use a cheaper scale and translate product.
func Compose(parent, child Matrix2D) Matrix2D {
	if parent.IsIdentity() {
		return child
	}
	if child.IsIdentity() {
		return parent
	}
	if !parent.HasSkew() && !child.HasSkew() {
		return Matrix2D{
			A: parent.A * child.A,
			D: parent.D * child.D,
			E: parent.A*child.E + parent.E,
			F: parent.D*child.F + parent.F,
		}
	}
	return parent.Mult(child)
}

// Transform applies the matrix to (x1, y1).
func (m Matrix2D) Transform(x1, y1 float64) (x2, y2 float64) {
	x2 = x1*m.A + y1*m.C + m.E
	y2 = x1*m.B + y1*m.D + m.F
	return
}

// TransformPoint applies the matrix to `p`.
func (m Matrix2D) TransformPoint(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Determinant of the linear part.
func (m Matrix2D) Determinant() float64 { return m.A*m.D - m.B*m.C }

// ScaleFactor is the mean scaling applied by the matrix,
// suitable to scale line widths.
func (m Matrix2D) ScaleFactor() float64 { return math.Sqrt(math.Abs(m.Determinant())) }

func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(NewTranslation(x, y))
}

func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(NewScale(x, y))
}

// Rotate rotates by `theta` radians.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return a.Mult(Matrix2D{
		A: cos,
		B: sin,
		C: -sin,
		D: cos,
	})
}

// SkewX skews along the x axis, `theta` in radians.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{
		A: 1,
		C: math.Tan(theta),
		D: 1,
	})
}

// SkewY skews along the y axis, `theta` in radians.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{
		A: 1,
		B: math.Tan(theta),
		D: 1,
	})
}
