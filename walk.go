package svggeom

import (
	"fmt"

	"github.com/benoitkugler/svggeom/svgpath"
	"github.com/benoitkugler/svggeom/svgtree"
)

// PathDescriptor is one drawable unit: the geometry of a path
// (in path coordinates), the absolute transform mapping it
// to document space, and how to paint it.
type PathDescriptor struct {
	ID        string           `json:"id,omitempty" yaml:"id,omitempty"`
	Events    []Event          `json:"events" yaml:"events"`
	Transform svgpath.Matrix2D `json:"transform" yaml:"transform"`
	Color     Color            `json:"color" yaml:"color"`
	Draw      DrawType         `json:"draw" yaml:"draw"`
}

// Walk traverses the tree rooted at `root` in depth first order,
// and returns the descriptors of its drawable paths, in drawing order.
// `base` is the transform applied to the root.
//
// A path with both a fill and a stroke yields the fill descriptor
// first. Definitions are skipped; filters, clip paths and masks are
// not supported and their references are ignored.
func Walk(root svgtree.Node, base svgpath.Matrix2D) []PathDescriptor {
	var w walker
	w.walk(root, base)
	return w.out
}

type walker struct {
	out []PathDescriptor
}

// walk handles `node`, with `inherited` the absolute transform
// of its parent.
func (w *walker) walk(node svgtree.Node, inherited svgpath.Matrix2D) {
	if node == nil {
		return
	}
	abs := svgpath.Compose(inherited, node.Transform())
	switch node := node.(type) {
	case *svgtree.Path:
		w.path(node, abs)
	case *svgtree.Group:
		logEffects(node)
		w.children(node, abs)
	case *svgtree.Svg:
		w.children(node, abs)
	case *svgtree.Defs:
		// definitions are only drawn when referenced
	case *svgtree.Other:
		Logger().Debug("skipping element", "tag", node.Tag, "id", node.ID)
		w.children(node, abs)
	default:
		Logger().Debug("skipping unknown node", "type", fmt.Sprintf("%T", node))
		w.children(node, abs)
	}
}

func (w *walker) children(node svgtree.Node, abs svgpath.Matrix2D) {
	for _, child := range node.Children() {
		w.walk(child, abs)
	}
}

func (w *walker) path(node *svgtree.Path, abs svgpath.Matrix2D) {
	if node.Fill == nil && node.Stroke == nil {
		return
	}
	// fill and stroke descriptors share the (immutable) events
	events := ConvertPath(node.Data)
	if node.Fill != nil {
		color, draw := ResolveFill(node.Fill)
		w.out = append(w.out, PathDescriptor{ID: node.ID, Events: events, Transform: abs, Color: color, Draw: draw})
	}
	if node.Stroke != nil {
		color, draw := ResolveStroke(node.Stroke)
		w.out = append(w.out, PathDescriptor{ID: node.ID, Events: events, Transform: abs, Color: color, Draw: draw})
	}
}

func logEffects(g *svgtree.Group) {
	if g.Filter != "" {
		Logger().Debug("filter not supported, ignored", "group", g.ID, "filter", g.Filter)
	}
	if g.ClipPath != "" {
		Logger().Debug("clip path not supported, ignored", "group", g.ID, "clip-path", g.ClipPath)
	}
	if g.Mask != "" {
		Logger().Debug("mask not supported, ignored", "group", g.ID, "mask", g.Mask)
	}
}
