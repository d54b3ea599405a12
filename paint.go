package svggeom

import (
	"fmt"
	"image/color"
	"math"

	"github.com/benoitkugler/svggeom/svgtree"
)

// StrokeTolerance is the flattening tolerance attached to every
// stroke, in document units.
const StrokeTolerance = 0.01

// Color is a straight (non premultiplied) RGBA color.
// It implements color.Color.
type Color struct{ R, G, B, A uint8 }

// PlaceholderColor is used for paints which are not resolved
// to a plain color, like gradients and patterns.
var PlaceholderColor = Color{0xff, 0xff, 0xff, 0xff}

func (c Color) RGBA() (r, g, b, a uint32) { return color.NRGBA(c).RGBA() }

// String returns the #rrggbbaa form of the color.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	var tmp Color
	if len(text) != 9 || text[0] != '#' {
		return fmt.Errorf("invalid color %q", text)
	}
	if _, err := fmt.Sscanf(string(text), "#%02x%02x%02x%02x", &tmp.R, &tmp.G, &tmp.B, &tmp.A); err != nil {
		return fmt.Errorf("invalid color %q: %w", text, err)
	}
	*c = tmp
	return nil
}

// OpacityToAlpha maps an opacity in [0, 1] to an 8-bit alpha value,
// rounding to the nearest integer. Out of range values are clamped.
func OpacityToAlpha(opacity float64) uint8 {
	if !(opacity > 0) { // also catches NaN
		return 0
	}
	if opacity >= 1 {
		return 0xff
	}
	return uint8(math.Round(opacity * 0xff))
}

// LineCap is the shape at the end of open subpaths.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapSquare
	CapRound
)

func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapSquare:
		return "square"
	case CapRound:
		return "round"
	default:
		return fmt.Sprintf("<unknown LineCap %d>", uint8(c))
	}
}

func (c LineCap) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *LineCap) UnmarshalText(text []byte) error {
	for _, v := range [...]LineCap{CapButt, CapSquare, CapRound} {
		if v.String() == string(text) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("invalid line cap %q", text)
}

// LineJoin is the shape at the corners of stroked paths.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinBevel
	JoinRound
)

func (j LineJoin) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinBevel:
		return "bevel"
	case JoinRound:
		return "round"
	default:
		return fmt.Sprintf("<unknown LineJoin %d>", uint8(j))
	}
}

func (j LineJoin) MarshalText() ([]byte, error) { return []byte(j.String()), nil }

func (j *LineJoin) UnmarshalText(text []byte) error {
	for _, v := range [...]LineJoin{JoinMiter, JoinBevel, JoinRound} {
		if v.String() == string(text) {
			*j = v
			return nil
		}
	}
	return fmt.Errorf("invalid line join %q", text)
}

// StrokeStyle holds the parameters needed to stroke a path.
type StrokeStyle struct {
	LineWidth  float64  `json:"lineWidth" yaml:"lineWidth"`
	Tolerance  float64  `json:"tolerance" yaml:"tolerance"`
	Cap        LineCap  `json:"cap" yaml:"cap"`
	Join       LineJoin `json:"join" yaml:"join"`
	MiterLimit float64  `json:"miterLimit" yaml:"miterLimit"`

	// Dash is nil for solid lines.
	Dash       []float64 `json:"dash,omitempty" yaml:"dash,omitempty"`
	DashOffset float64   `json:"dashOffset,omitempty" yaml:"dashOffset,omitempty"`
}

// DrawKind selects how a path is painted.
type DrawKind uint8

const (
	Fill DrawKind = iota
	Stroke
)

func (k DrawKind) String() string {
	if k == Stroke {
		return "stroke"
	}
	return "fill"
}

func (k DrawKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *DrawKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "fill":
		*k = Fill
	case "stroke":
		*k = Stroke
	default:
		return fmt.Errorf("invalid draw kind %q", text)
	}
	return nil
}

// DrawType is the painting operation of a path:
// a fill using Rule, or a stroke using Stroke.
type DrawType struct {
	Kind   DrawKind         `json:"kind" yaml:"kind"`
	Stroke StrokeStyle      `json:"stroke" yaml:"stroke"` // only valid for strokes
	Rule   svgtree.FillRule `json:"rule" yaml:"rule"`     // only valid for fills
}

func resolvePaint(paint svgtree.Paint, opacity float64) Color {
	switch paint := paint.(type) {
	case svgtree.Color:
		return Color{paint.R, paint.G, paint.B, OpacityToAlpha(opacity)}
	case *svgtree.Gradient:
		Logger().Debug("gradient paint not supported, using placeholder color", "gradient", paint.ID)
	case svgtree.PatternRef:
		Logger().Debug("pattern paint not supported, using placeholder color", "pattern", paint.ID)
	default:
		Logger().Debug("unknown paint, using placeholder color", "paint", fmt.Sprintf("%T", paint))
	}
	return PlaceholderColor
}

// ResolveFill returns the color and draw type of a fill record.
func ResolveFill(fill *svgtree.Fill) (Color, DrawType) {
	return resolvePaint(fill.Paint, fill.Opacity), DrawType{Kind: Fill, Rule: fill.Rule}
}

// ResolveStroke returns the color and draw type of a stroke record.
func ResolveStroke(stroke *svgtree.Stroke) (Color, DrawType) {
	style := StrokeStyle{
		LineWidth:  stroke.Width,
		Tolerance:  StrokeTolerance,
		Cap:        lineCap(stroke.Cap),
		Join:       lineJoin(stroke.Join),
		MiterLimit: stroke.MiterLimit,
		Dash:       stroke.Dash,
		DashOffset: stroke.DashOffset,
	}
	return resolvePaint(stroke.Paint, stroke.Opacity), DrawType{Kind: Stroke, Stroke: style}
}

func lineCap(c svgtree.CapMode) LineCap {
	switch c {
	case svgtree.SquareCap:
		return CapSquare
	case svgtree.RoundCap:
		return CapRound
	default:
		return CapButt
	}
}

func lineJoin(j svgtree.JoinMode) LineJoin {
	switch j {
	case svgtree.Bevel:
		return JoinBevel
	case svgtree.Round:
		return JoinRound
	default:
		return JoinMiter
	}
}
