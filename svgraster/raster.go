// Implements a raster backend to preview SVG geometry,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svggeom"
	"github.com/benoitkugler/svggeom/svgpath"
)

var _ svggeom.Driver = (*Renderer)(nil) // assert interface conformance

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer drawing paths with `scanner`.
// If scanner is nil, a default rasterx.ScannerGV is used, painting onto `img`.
func NewRenderer(img draw.Image, scanner rasterx.Scanner) *Renderer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if scanner == nil {
		scanner = rasterx.NewScannerGV(w, h, img, b)
	}
	return &Renderer{dasher: rasterx.NewDasher(w, h, scanner), filler: rasterx.NewFiller(w, h, scanner)}
}

// Rasterize draws the document into a new image of size (w, h),
// stretching it to the full image, on top of `background`
// (which may be nil for a transparent background).
func Rasterize(doc *svggeom.Document, w, h int, background color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}
	renderer := NewRenderer(img, nil)
	doc.Draw(renderer, doc.FitTransform(0, 0, float64(w), float64(h)))
	return img
}

func toFixed(p svgpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

func (rd *Renderer) Clear() {
	rd.dasher.Clear()
	rd.filler.Clear()
}

func (rd *Renderer) SetWinding(useNonZeroWinding bool) {
	rd.dasher.SetWinding(useNonZeroWinding)
	rd.filler.SetWinding(useNonZeroWinding)
}

func (rd *Renderer) SetFillColor(c svggeom.Color) {
	rd.filler.SetColor(color.NRGBA(c))
}

func (rd *Renderer) SetStrokeColor(c svggeom.Color) {
	rd.dasher.SetColor(color.NRGBA(c))
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svggeom.JoinMiter: rasterx.Miter,
		svggeom.JoinBevel: rasterx.Bevel,
		svggeom.JoinRound: rasterx.Round,
	}

	capToFunc = [...]rasterx.CapFunc{
		svggeom.CapButt:   rasterx.ButtCap,
		svggeom.CapSquare: rasterx.SquareCap,
		svggeom.CapRound:  rasterx.RoundCap,
	}
)

func (rd *Renderer) SetStrokeOptions(options svggeom.StrokeStyle) {
	rd.dasher.SetStroke(
		fixed.Int26_6(options.LineWidth*64), fixed.Int26_6(options.MiterLimit*64),
		capToFunc[options.Cap], capToFunc[options.Cap], rasterx.FlatGap,
		joinToJoin[options.Join], options.Dash, options.DashOffset,
	)
}

func (rd *Renderer) Start(a svgpath.Point) {
	rd.filler.Start(toFixed(a))
	rd.dasher.Start(toFixed(a))
}

func (rd *Renderer) Line(b svgpath.Point) {
	rd.filler.Line(toFixed(b))
	rd.dasher.Line(toFixed(b))
}

func (rd *Renderer) CubeBezier(b, c, d svgpath.Point) {
	rd.filler.CubeBezier(toFixed(b), toFixed(c), toFixed(d))
	rd.dasher.CubeBezier(toFixed(b), toFixed(c), toFixed(d))
}

func (rd *Renderer) Stop(closeLoop bool) {
	rd.filler.Stop(closeLoop)
	rd.dasher.Stop(closeLoop)
}

func (rd *Renderer) Fill() {
	rd.filler.Draw()
}

func (rd *Renderer) Stroke() {
	rd.dasher.Draw()
}
