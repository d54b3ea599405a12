package svggeom

import (
	"github.com/benoitkugler/svggeom/svgpath"
	"github.com/benoitkugler/svggeom/svgtree"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG knowledge.
// In particular, transformation matrices are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new subpath at the given point.
	Start(a svgpath.Point)

	// Line adds a line from the current point to `b`
	Line(b svgpath.Point)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d svgpath.Point)

	// Stop ends the current subpath, closing it to the start point
	// if `closeLoop` is true
	Stop(closeLoop bool)
}

// Driver is a backend able to paint the paths accumulated in its Drawer.
type Driver interface {
	Drawer

	// SetWinding selects the fill rule of the current path
	SetWinding(useNonZeroWinding bool)

	// SetStrokeOptions parametrizes the stroking style of the current path.
	// Widths are in output units.
	SetStrokeOptions(options StrokeStyle)

	SetFillColor(c Color)
	SetStrokeColor(c Color)

	// Fill fills the accumulated path using the current settings.
	Fill()
	// Stroke strokes the accumulated path using the current settings.
	Stroke()
}

// FitTransform returns the transform drawing the document
// into the rectangle (x, y, w, h) of an output.
func (doc *Document) FitTransform(x, y, w, h float64) svgpath.Matrix2D {
	sx, sy := 1., 1.
	if doc.Width > 0 {
		sx = w / doc.Width
	}
	if doc.Height > 0 {
		sy = h / doc.Height
	}
	return svgpath.NewTranslation(x, y).Scale(sx, sy)
}

// Draw replays the paths of the document into the driver `d`,
// in drawing order, after applying `t` to the path transforms.
func (doc *Document) Draw(d Driver, t svgpath.Matrix2D) {
	for i := range doc.Paths {
		doc.Paths[i].draw(d, t)
	}
}

func (p *PathDescriptor) draw(d Driver, t svgpath.Matrix2D) {
	m := svgpath.Compose(t, p.Transform)

	d.Clear()
	for _, e := range p.Events {
		e = e.Transform(m)
		switch e.Kind {
		case BeginKind:
			d.Start(e.At())
		case LineKind:
			d.Line(e.To)
		case CubicKind:
			d.CubeBezier(e.Ctrl1, e.Ctrl2, e.To)
		case EndKind:
			d.Stop(e.Close)
		}
	}

	switch p.Draw.Kind {
	case Fill:
		d.SetWinding(p.Draw.Rule == svgtree.NonZero)
		d.SetFillColor(p.Color)
		d.Fill()
		d.SetWinding(true) // default is true
	case Stroke:
		d.SetStrokeOptions(scaleStroke(p.Draw.Stroke, m.ScaleFactor()))
		d.SetStrokeColor(p.Color)
		d.Stroke()
	}
}

// scaleStroke maps the lengths of a stroke style to output units.
func scaleStroke(style StrokeStyle, scale float64) StrokeStyle {
	style.LineWidth *= scale
	style.DashOffset *= scale
	if style.Dash != nil {
		dash := make([]float64, len(style.Dash))
		for i, v := range style.Dash {
			dash[i] = v * scale
		}
		style.Dash = dash
	}
	return style
}
