// Implements a PDF backend to preview SVG geometry,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/benoitkugler/svggeom"
	"github.com/benoitkugler/svggeom/svgpath"
)

var _ svggeom.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer writes paths to the current page of a PDF document.
// Path operations are buffered until Fill or Stroke, since PDF
// forbids color changes inside a path construction.
type Renderer struct {
	pdf  *gofpdf.Fpdf
	path svgpath.Path

	useNonZeroWinding bool
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	return &Renderer{pdf: pdf, useNonZeroWinding: true}
}

// WritePDF writes a one page PDF file with the document,
// using one point per document unit.
func WritePDF(doc *svggeom.Document, w io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	pdf.SetTitle(doc.File, true)
	pdf.AddPage()
	doc.Draw(NewRenderer(pdf), svgpath.Identity)
	return pdf.Output(w)
}

func (rd *Renderer) Clear()                           { rd.path.Clear() }
func (rd *Renderer) Start(a svgpath.Point)            { rd.path.Start(a) }
func (rd *Renderer) Line(b svgpath.Point)             { rd.path.Line(b) }
func (rd *Renderer) CubeBezier(b, c, d svgpath.Point) { rd.path.CubeBezier(b, c, d) }
func (rd *Renderer) Stop(closeLoop bool)              { rd.path.Stop(closeLoop) }

func (rd *Renderer) SetWinding(useNonZeroWinding bool) {
	rd.useNonZeroWinding = useNonZeroWinding
}

func (rd *Renderer) SetFillColor(c svggeom.Color) {
	rd.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	rd.pdf.SetAlpha(float64(c.A)/0xff, "")
}

func (rd *Renderer) SetStrokeColor(c svggeom.Color) {
	rd.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	rd.pdf.SetAlpha(float64(c.A)/0xff, "")
}

func (rd *Renderer) SetStrokeOptions(options svggeom.StrokeStyle) {
	rd.pdf.SetLineWidth(options.LineWidth)
	rd.pdf.SetLineCapStyle(options.Cap.String())
	rd.pdf.SetLineJoinStyle(options.Join.String())
	rd.pdf.SetDashPattern(options.Dash, options.DashOffset)
}

// writePath emits the buffered path
func (rd *Renderer) writePath() {
	for _, op := range rd.path {
		switch op := op.(type) {
		case svgpath.MoveTo:
			rd.pdf.MoveTo(op.X, op.Y)
		case svgpath.LineTo:
			rd.pdf.LineTo(op.X, op.Y)
		case svgpath.CubicTo:
			rd.pdf.CurveBezierCubicTo(op.C1.X, op.C1.Y, op.C2.X, op.C2.Y, op.To.X, op.To.Y)
		case svgpath.Close:
			rd.pdf.ClosePath()
		}
	}
}

func (rd *Renderer) Fill() {
	if len(rd.path) == 0 {
		return
	}
	rd.writePath()
	styleStr := "f*"
	if rd.useNonZeroWinding {
		styleStr = "f"
	}
	rd.pdf.DrawPath(styleStr)
}

func (rd *Renderer) Stroke() {
	if len(rd.path) == 0 {
		return
	}
	rd.writePath()
	rd.pdf.DrawPath("D")
	rd.pdf.SetDashPattern(nil, 0)
}
