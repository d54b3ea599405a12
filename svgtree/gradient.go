package svgtree

import (
	"strings"

	"github.com/benoitkugler/svggeom/svgpath"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds paremater constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	StopColor Color
	Offset    float64
	Opacity   float64
}

// Gradient holds a description of an SVG 2.0 gradient
type Gradient struct {
	ID        string
	Direction GradientDirection
	Stops     []GradStop
	Matrix    svgpath.Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

// GradientDirection is either Linear or Radial
type GradientDirection interface {
	isRadial() bool
}

// Linear stores x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// Radial stores cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// IsRadial returns true for radial gradients.
func (g *Gradient) IsRadial() bool { return g.Direction.isRadial() }

func (b *builder) gradient(el *element) (*Gradient, error) {
	if g, ok := b.tree.Gradients[el.attrs["id"]]; ok {
		return g, nil
	}
	var grad *Gradient
	if el.tag == "radialGradient" {
		grad = &Gradient{Direction: Radial{0.5, 0.5, 0.5, 0.5, 0.5, 0}}
	} else {
		grad = &Gradient{Direction: Linear{0, 0, 1, 0}}
	}
	grad.ID = el.attrs["id"]
	grad.Matrix = svgpath.Identity
	if grad.ID != "" {
		b.tree.Gradients[grad.ID] = grad
	}

	// inherit stops and attributes from the referenced gradient
	if ref, ok := b.lookupHref(el); ok && (ref.tag == "linearGradient" || ref.tag == "radialGradient") && ref != el {
		parent, err := b.gradient(ref)
		if err != nil {
			return nil, err
		}
		grad.Stops = parent.Stops
		grad.Spread, grad.Units, grad.Matrix = parent.Spread, parent.Units, parent.Matrix
		if parent.IsRadial() == grad.IsRadial() {
			grad.Direction = parent.Direction
		}
	}

	if err := b.readGradAttrs(grad, el); err != nil {
		return nil, err
	}

	var stops []GradStop
	for _, child := range el.children {
		if child.tag != "stop" {
			continue
		}
		stop, err := b.readStop(child)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	if len(stops) != 0 {
		grad.Stops = stops
	}
	return grad, nil
}

func (b *builder) readGradAttrs(grad *Gradient, el *element) (err error) {
	var setFx, setFy bool
	for k, v := range el.attrs {
		switch k {
		case "gradientTransform":
			grad.Matrix, err = parseTransform(v)
		case "gradientUnits":
			switch strings.TrimSpace(v) {
			case "userSpaceOnUse":
				grad.Units = UserSpaceOnUse
			case "objectBoundingBox":
				grad.Units = ObjectBoundingBox
			}
		case "spreadMethod":
			switch strings.TrimSpace(v) {
			case "pad":
				grad.Spread = PadSpread
			case "reflect":
				grad.Spread = ReflectSpread
			case "repeat":
				grad.Spread = RepeatSpread
			}
		}
		if err != nil {
			return err
		}
	}
	switch dir := grad.Direction.(type) {
	case Linear:
		for i, k := range [4]string{"x1", "y1", "x2", "y2"} {
			if v, ok := el.attrs[k]; ok {
				if dir[i], err = readFraction(v); err != nil {
					return err
				}
			}
		}
		grad.Direction = dir
	case Radial:
		for i, k := range [6]string{"cx", "cy", "fx", "fy", "r", "fr"} {
			if v, ok := el.attrs[k]; ok {
				if dir[i], err = readFraction(v); err != nil {
					return err
				}
				setFx = setFx || k == "fx"
				setFy = setFy || k == "fy"
			}
		}
		if !setFx { // set fx to cx by default
			dir[2] = dir[0]
		}
		if !setFy {
			dir[3] = dir[1]
		}
		grad.Direction = dir
	}
	return nil
}

func (b *builder) readStop(el *element) (GradStop, error) {
	stop := GradStop{Opacity: 1}
	var err error
	for _, d := range b.declarations(el) {
		switch d.property {
		case "offset":
			stop.Offset, err = readFraction(d.value)
		case "stop-color":
			var c parsedColor
			c, err = parseColor(d.value)
			stop.StopColor = c.rgb
			stop.Opacity *= c.alpha
		case "stop-opacity":
			var op float64
			op, err = parseOpacity(d.value)
			stop.Opacity *= op
		}
		if err != nil {
			return stop, err
		}
	}
	stop.Offset = clamp01(stop.Offset)
	return stop, nil
}
