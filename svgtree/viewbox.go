package svgtree

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svggeom/svgpath"
)

// Align is the alignment part of preserveAspectRatio.
type Align uint8

const (
	AlignXMidYMid Align = iota // default value
	AlignNone
	AlignXMinYMin
	AlignXMidYMin
	AlignXMaxYMin
	AlignXMinYMid
	AlignXMaxYMid
	AlignXMinYMax
	AlignXMidYMax
	AlignXMaxYMax
)

var alignNames = map[string]Align{
	"none":     AlignNone,
	"xMinYMin": AlignXMinYMin,
	"xMidYMin": AlignXMidYMin,
	"xMaxYMin": AlignXMaxYMin,
	"xMinYMid": AlignXMinYMid,
	"xMidYMid": AlignXMidYMid,
	"xMaxYMid": AlignXMaxYMid,
	"xMinYMax": AlignXMinYMax,
	"xMidYMax": AlignXMidYMax,
	"xMaxYMax": AlignXMaxYMax,
}

// AspectRatio is the value of the preserveAspectRatio attribute.
// The zero value is the SVG default, "xMidYMid meet".
type AspectRatio struct {
	Align Align
	Slice bool
}

func parseAspectRatio(v string) (AspectRatio, error) {
	fields := strings.Fields(v)
	if len(fields) > 0 && fields[0] == "defer" {
		fields = fields[1:]
	}
	var out AspectRatio
	if len(fields) == 0 || len(fields) > 2 {
		return out, fmt.Errorf("invalid preserveAspectRatio %q: %w", v, errParamMismatch)
	}
	align, ok := alignNames[fields[0]]
	if !ok {
		return out, fmt.Errorf("invalid preserveAspectRatio %q: %w", v, errParamMismatch)
	}
	out.Align = align
	if len(fields) == 2 {
		switch fields[1] {
		case "meet":
		case "slice":
			out.Slice = true
		default:
			return out, fmt.Errorf("invalid preserveAspectRatio %q: %w", v, errParamMismatch)
		}
	}
	return out, nil
}

// xy returns the fraction of the free space placed before the content,
// for each axis.
func (a Align) xy() (fx, fy float64) {
	switch a {
	case AlignXMinYMin:
		return 0, 0
	case AlignXMidYMin:
		return 0.5, 0
	case AlignXMaxYMin:
		return 1, 0
	case AlignXMinYMid:
		return 0, 0.5
	case AlignXMaxYMid:
		return 1, 0.5
	case AlignXMinYMax:
		return 0, 1
	case AlignXMidYMax:
		return 0.5, 1
	case AlignXMaxYMax:
		return 1, 1
	default:
		return 0.5, 0.5
	}
}

// viewBoxTransform maps the view box `vb` to a viewport of size (width, height).
func viewBoxTransform(vb ViewBox, aspect AspectRatio, width, height float64) svgpath.Matrix2D {
	if vb.W <= 0 || vb.H <= 0 {
		return svgpath.Identity
	}
	sx, sy := width/vb.W, height/vb.H
	if aspect.Align != AlignNone {
		s := min(sx, sy)
		if aspect.Slice {
			s = max(sx, sy)
		}
		sx, sy = s, s
	}
	fx, fy := aspect.Align.xy()
	if aspect.Align == AlignNone {
		fx, fy = 0, 0
	}
	tx := -vb.X*sx + fx*(width-vb.W*sx)
	ty := -vb.Y*sy + fy*(height-vb.H*sy)
	return svgpath.Matrix2D{A: sx, D: sy, E: tx, F: ty}
}

// ViewBoxTransform returns the transform mapping the view box
// to the viewport defined by the width and height of the document,
// honouring preserveAspectRatio.
func (t *Tree) ViewBoxTransform() svgpath.Matrix2D {
	return viewBoxTransform(t.ViewBox, t.AspectRatio, t.Width, t.Height)
}
