// Alternative implementation of PDF rendering, writing
// content streams with github.com/benoitkugler/pdf.
package alt

import (
	"image/color"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"

	"github.com/benoitkugler/svggeom"
	"github.com/benoitkugler/svggeom/svgpath"
)

var _ svggeom.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer writes paths into a content stream.
// Path operations are buffered until Fill or Stroke, so that
// graphic state operators are emitted before the path construction.
type Renderer struct {
	pdf  *contentstream.Appearance
	path svgpath.Path

	useNonZeroWinding bool
	fillColor         svggeom.Color
	strokeColor       svggeom.Color
	stroke            svggeom.StrokeStyle

	// cache the opacity states, one per alpha value
	fillOpacityStates   map[uint8]*model.GraphicState
	strokeOpacityStates map[uint8]*model.GraphicState
}

// NewRenderer return a renderer which will
// write to the given content stream.
func NewRenderer(cs *contentstream.Appearance) *Renderer {
	return &Renderer{
		pdf:                 cs,
		useNonZeroWinding:   true,
		fillOpacityStates:   make(map[uint8]*model.GraphicState),
		strokeOpacityStates: make(map[uint8]*model.GraphicState),
	}
}

// WritePDF renders the document on a one page PDF file
// named `pdfName`, using one point per document unit.
func WritePDF(doc *svggeom.Document, pdfName string) error {
	pdf := contentstream.NewAppearance(doc.Width, doc.Height)
	renderer := NewRenderer(&pdf)
	// PDF has its origin at the bottom left
	pdf.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, doc.Height}},
	)
	doc.Draw(renderer, svgpath.Identity)
	pdf.Ops(contentstream.OpRestore{})

	var out model.Document
	out.Catalog.Pages.Kids = append(out.Catalog.Pages.Kids, pdf.ToPageObject(true))
	return out.WriteFile(pdfName, nil)
}

func (rd *Renderer) Clear()                           { rd.path.Clear() }
func (rd *Renderer) Start(a svgpath.Point)            { rd.path.Start(a) }
func (rd *Renderer) Line(b svgpath.Point)             { rd.path.Line(b) }
func (rd *Renderer) CubeBezier(b, c, d svgpath.Point) { rd.path.CubeBezier(b, c, d) }
func (rd *Renderer) Stop(closeLoop bool)              { rd.path.Stop(closeLoop) }

func (rd *Renderer) SetWinding(useNonZeroWinding bool) {
	rd.useNonZeroWinding = useNonZeroWinding
}

func (rd *Renderer) SetFillColor(c svggeom.Color)   { rd.fillColor = c }
func (rd *Renderer) SetStrokeColor(c svggeom.Color) { rd.strokeColor = c }

func (rd *Renderer) SetStrokeOptions(options svggeom.StrokeStyle) { rd.stroke = options }

func opaque(c svggeom.Color) color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

// opacityState returns the cached state for `alpha`,
// creating it with `newState` if needed.
func opacityState(cache map[uint8]*model.GraphicState, alpha uint8, newState func(model.ObjFloat) *model.GraphicState) *model.GraphicState {
	gs, ok := cache[alpha]
	if !ok {
		gs = newState(model.ObjFloat(float64(alpha) / 0xff))
		cache[alpha] = gs
	}
	return gs
}

// writePath emits the buffered path
func (rd *Renderer) writePath() {
	for _, op := range rd.path {
		switch op := op.(type) {
		case svgpath.MoveTo:
			rd.pdf.Ops(contentstream.OpMoveTo{X: op.X, Y: op.Y})
		case svgpath.LineTo:
			rd.pdf.Ops(contentstream.OpLineTo{X: op.X, Y: op.Y})
		case svgpath.CubicTo:
			rd.pdf.Ops(contentstream.OpCubicTo{X1: op.C1.X, Y1: op.C1.Y, X2: op.C2.X, Y2: op.C2.Y, X3: op.To.X, Y3: op.To.Y})
		case svgpath.Close:
			rd.pdf.Ops(contentstream.OpClosePath{})
		}
	}
}

func (rd *Renderer) Fill() {
	if len(rd.path) == 0 {
		return
	}
	rd.pdf.SetColorFill(opaque(rd.fillColor))
	gs := opacityState(rd.fillOpacityStates, rd.fillColor.A, func(ca model.ObjFloat) *model.GraphicState {
		return &model.GraphicState{Ca: ca, BM: []model.Name{"Normal"}}
	})
	rd.pdf.Ops(contentstream.OpSetExtGState{Dict: rd.pdf.AddExtGState(gs)})

	rd.writePath()
	if rd.useNonZeroWinding {
		rd.pdf.Ops(contentstream.OpFill{})
	} else {
		rd.pdf.Ops(contentstream.OpEOFill{})
	}
}

func (rd *Renderer) Stroke() {
	if len(rd.path) == 0 {
		return
	}
	rd.pdf.SetColorStroke(opaque(rd.strokeColor))
	gs := opacityState(rd.strokeOpacityStates, rd.strokeColor.A, func(ca model.ObjFloat) *model.GraphicState {
		return &model.GraphicState{CA: ca, BM: []model.Name{"Normal"}}
	})
	rd.pdf.Ops(contentstream.OpSetExtGState{Dict: rd.pdf.AddExtGState(gs)})

	options := rd.stroke
	rd.pdf.Ops(
		contentstream.OpSetDash{Dash: model.DashPattern{Array: options.Dash, Phase: options.DashOffset}},
		contentstream.OpSetLineWidth{W: options.LineWidth},
		contentstream.OpSetLineCap{Style: lineCap(options.Cap)},
		contentstream.OpSetLineJoin{Style: lineJoin(options.Join)},
		contentstream.OpSetMiterLimit{Limit: options.MiterLimit},
	)

	rd.writePath()
	rd.pdf.Ops(contentstream.OpStroke{})
}

func lineCap(c svggeom.LineCap) uint8 {
	switch c {
	case svggeom.CapRound:
		return 1
	case svggeom.CapSquare:
		return 2
	default:
		return 0
	}
}

func lineJoin(j svggeom.LineJoin) uint8 {
	switch j {
	case svggeom.JoinRound:
		return 1
	case svggeom.JoinBevel:
		return 2
	default:
		return 0
	}
}
