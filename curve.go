package svggeom

import (
	"honnef.co/go/curve"

	"github.com/benoitkugler/svggeom/svgpath"
)

func curvePoint(p svgpath.Point) curve.Point { return curve.Point{X: p.X, Y: p.Y} }

// BezPath exports the geometry of the path, with its transform
// applied, so that it may be stroked or flattened by the curve package.
//
// Begin maps to MoveTo and a closing End to ClosePath; unclosed
// subpaths simply end.
func (p *PathDescriptor) BezPath() curve.BezPath {
	out := make(curve.BezPath, 0, len(p.Events))
	for _, e := range p.Events {
		e = e.Transform(p.Transform)
		switch e.Kind {
		case BeginKind:
			out.MoveTo(curvePoint(e.At()))
		case LineKind:
			out.LineTo(curvePoint(e.To))
		case CubicKind:
			out.CubicTo(curvePoint(e.Ctrl1), curvePoint(e.Ctrl2), curvePoint(e.To))
		case EndKind:
			if e.Close {
				out.ClosePath()
			}
		}
	}
	return out
}
