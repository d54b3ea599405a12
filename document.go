// Package svggeom converts SVG documents into a flat list of
// renderer-agnostic path descriptors: geometry events, an absolute
// transform, a resolved color and a fill or stroke style.
//
// Parsing is done by the svgtree package; this package walks the
// resulting tree:
//
//	tree, err := svgtree.Parse(r)
//	...
//	doc := svggeom.NewDocument("icon.svg", tree, svggeom.TopLeft)
//	for _, path := range doc.Paths {
//		...
//	}
package svggeom

import (
	"fmt"

	"github.com/benoitkugler/svggeom/svgtree"
)

// Origin selects where the origin of a document is placed.
type Origin uint8

const (
	// TopLeft maps the document origin to the placement point.
	TopLeft Origin = iota
	// Center puts the visual center of the document at the placement point.
	Center
)

func (o Origin) String() string {
	switch o {
	case TopLeft:
		return "top-left"
	case Center:
		return "center"
	default:
		return fmt.Sprintf("<unknown Origin %d>", uint8(o))
	}
}

func (o Origin) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Origin) UnmarshalText(text []byte) error {
	switch string(text) {
	case "top-left", "topleft", "":
		*o = TopLeft
	case "center":
		*o = Center
	default:
		return fmt.Errorf("invalid origin %q", text)
	}
	return nil
}

// Document is the geometry of a parsed SVG file.
// It should be considered immutable once built.
type Document struct {
	File    string          `json:"file" yaml:"file"`
	Width   float64         `json:"width" yaml:"width"`
	Height  float64         `json:"height" yaml:"height"`
	ViewBox svgtree.ViewBox `json:"viewBox" yaml:"viewBox"`
	Origin  Origin          `json:"origin" yaml:"origin"`
	// Paths are in drawing order: later paths are drawn on top.
	Paths []PathDescriptor `json:"paths" yaml:"paths"`
}

// NewDocument walks `tree` and collects its paths.
// The transform mapping the view box to the document size
// is included in the path transforms.
func NewDocument(file string, tree *svgtree.Tree, origin Origin) *Document {
	doc := &Document{
		File:    file,
		Width:   tree.Width,
		Height:  tree.Height,
		ViewBox: tree.ViewBox,
		Origin:  origin,
	}
	if tree.Root != nil {
		doc.Paths = Walk(tree.Root, tree.ViewBoxTransform())
	}
	return doc
}

// Vec2 is a 2D vector.
type Vec2 struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Vec3 is a 3D vector, used for placement in scenes.
type Vec3 struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
	Z float64 `json:"z" yaml:"z" toml:"z"`
}

func (v Vec3) Add(u Vec3) Vec3 { return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z} }

// Placement positions a document in an output space.
type Placement struct {
	Origin      Origin `json:"origin" yaml:"origin" toml:"origin"`
	Translation Vec3   `json:"translation" yaml:"translation" toml:"translation"`
	Scale       Vec2   `json:"scale" yaml:"scale" toml:"scale"`
}

// DefaultPlacement uses the top left origin, no translation and a unit scale.
func DefaultPlacement() Placement {
	return Placement{Origin: TopLeft, Scale: Vec2{1, 1}}
}

// Offset returns the final offset of a document with the given size.
// With the Center origin, the document is shifted by half its scaled size.
func (p Placement) Offset(width, height float64) Vec3 {
	out := p.Translation
	if p.Origin == Center {
		out = out.Add(Vec3{X: -width * p.Scale.X / 2, Y: height * p.Scale.Y / 2})
	}
	return out
}

// Offset returns the final offset of the document for `p`.
// The origin of `p` is ignored in favor of the document one.
func (doc *Document) Offset(p Placement) Vec3 {
	p.Origin = doc.Origin
	return p.Offset(doc.Width, doc.Height)
}
