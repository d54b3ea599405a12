package svgtree

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/svggeom/svgpath"
)

type svgFunc func(b *builder, st pathStyle, el *element) (Node, error)

var drawFuncs map[string]svgFunc

func init() {
	// avoids cyclical static declaration
	drawFuncs = map[string]svgFunc{
		"svg":      nestedSvgF,
		"g":        gF,
		"a":        gF,
		"switch":   switchF,
		"path":     pathF,
		"rect":     rectF,
		"circle":   circleF,
		"ellipse":  circleF, // circleF handles ellipse also
		"line":     lineF,
		"polyline": polylineF,
		"polygon":  polygonF,
		"defs":     defsF,
		"use":      useF,

		// referenced, never drawn directly
		"linearGradient": definitionF,
		"radialGradient": definitionF,
		"pattern":        definitionF,
		"clipPath":       definitionF,
		"mask":           definitionF,
		"filter":         definitionF,
		"symbol":         definitionF,
		"marker":         definitionF,

		// already collected by the builder
		"title":    metadataF,
		"desc":     metadataF,
		"style":    metadataF,
		"metadata": metadataF,
	}
}

func (b *builder) buildElement(parent pathStyle, el *element) (Node, error) {
	df, ok := drawFuncs[el.tag]
	if !ok {
		return otherF(b, parent, el)
	}
	if v, ok := b.declaredValue(el, "display"); ok && v == "none" {
		return nil, nil
	}
	st, err := b.pushStyle(parent, el)
	if err != nil {
		return nil, err
	}
	return df(b, st, el)
}

// transform returns the local transform of `el`
func (b *builder) transform(el *element) (svgpath.Matrix2D, error) {
	v, ok := el.attrs["transform"]
	if !ok {
		return svgpath.Identity, nil
	}
	m, err := parseTransform(v)
	if err != nil {
		return svgpath.Identity, b.handleError(err.Error())
	}
	return m, nil
}

// length reads the attribute `name`, returning 0 if absent
func (b *builder) length(st pathStyle, el *element, name string, asPerc percentageReference) (float64, error) {
	v, ok := el.attrs[name]
	if !ok {
		return 0, nil
	}
	units := unitContext{viewBox: b.tree.ViewBox, fontSize: st.fontSize}
	f, err := units.parseUnit(v, asPerc)
	if err != nil {
		return 0, b.handleError(fmt.Sprintf("invalid %s attribute on <%s>: %s", name, el.tag, err))
	}
	return f, nil
}

// lengths reads several attributes at once
func (b *builder) lengths(st pathStyle, el *element, names []string, percs []percentageReference) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := b.length(st, el, name, percs[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// funcIRI extracts the ID of a url(#id) reference, or returns ""
func funcIRI(v string) string {
	v = strings.TrimSpace(v)
	rest, ok := strings.CutPrefix(v, "url(")
	if !ok {
		return ""
	}
	ref, _, _ := strings.Cut(rest, ")")
	ref = strings.Trim(strings.TrimSpace(ref), `'"`)
	return strings.TrimPrefix(ref, "#")
}

func gF(b *builder, st pathStyle, el *element) (Node, error) {
	m, err := b.transform(el)
	if err != nil {
		return nil, err
	}
	g := &Group{ID: el.attrs["id"], Matrix: m}
	for _, d := range b.declarations(el) {
		switch d.property {
		case "filter":
			g.Filter = funcIRI(d.value)
		case "clip-path":
			g.ClipPath = funcIRI(d.value)
		case "mask":
			g.Mask = funcIRI(d.value)
		}
	}
	g.Nodes, err = b.buildChildren(st, el)
	return g, err
}

// switchF only keeps the first child element which may be drawn.
func switchF(b *builder, st pathStyle, el *element) (Node, error) {
	m, err := b.transform(el)
	if err != nil {
		return nil, err
	}
	g := &Group{ID: el.attrs["id"], Matrix: m}
	for _, child := range el.children {
		if _, ok := drawFuncs[child.tag]; !ok {
			continue
		}
		node, err := b.buildElement(st, child)
		if err != nil {
			return nil, err
		}
		if node != nil {
			g.Nodes = append(g.Nodes, node)
			break
		}
	}
	return g, nil
}

// nestedSvgF builds an inner <svg> element, as a group
// mapping its view box to its viewport.
func nestedSvgF(b *builder, st pathStyle, el *element) (Node, error) {
	vals, err := b.lengths(st, el, []string{"x", "y", "width", "height"},
		[]percentageReference{widthPercentage, heightPercentage, widthPercentage, heightPercentage})
	if err != nil {
		return nil, err
	}
	m := svgpath.NewTranslation(vals[0], vals[1])
	if vb, ok := el.attrs["viewBox"]; ok {
		box, err := parseViewBox(vb)
		if err == nil {
			var ar AspectRatio
			if par, ok := el.attrs["preserveAspectRatio"]; ok {
				ar, _ = parseAspectRatio(par)
			}
			w, h := vals[2], vals[3]
			if _, ok := el.attrs["width"]; !ok {
				w = box.W
			}
			if _, ok := el.attrs["height"]; !ok {
				h = box.H
			}
			m = m.Mult(viewBoxTransform(box, ar, w, h))
		} else if err = b.handleError(err.Error()); err != nil {
			return nil, err
		}
	}
	g := &Group{ID: el.attrs["id"], Matrix: m}
	g.Nodes, err = b.buildChildren(st, el)
	return g, err
}

// newPath binds the current style to `data`. It returns nil
// for empty or invisible shapes.
func (b *builder) newPath(st pathStyle, el *element, data svgpath.Path) (Node, error) {
	if len(data) == 0 || !st.visible {
		return nil, nil
	}
	m, err := b.transform(el)
	if err != nil {
		return nil, err
	}
	p := &Path{ID: el.attrs["id"], Matrix: m, Data: data, Fill: st.fillRecord(), Stroke: st.strokeRecord()}
	if el.tag == "line" {
		p.Fill = nil // a line has no area
	}
	if p.Fill == nil && p.Stroke == nil {
		Logger().Debug("skipping invisible shape", "tag", el.tag, "id", p.ID)
		return nil, nil
	}
	return p, nil
}

func (b *builder) declaredValue(el *element, property string) (string, bool) {
	for _, d := range b.declarations(el) {
		if d.property == property {
			return d.value, true
		}
	}
	return "", false
}

func pathF(b *builder, st pathStyle, el *element) (Node, error) {
	data, err := svgpath.ParsePathData(el.attrs["d"])
	if err != nil {
		// the path is rendered up to the first error
		if err = b.handleError(fmt.Sprintf("invalid path data %q: %s", el.attrs["d"], err)); err != nil {
			return nil, err
		}
	}
	return b.newPath(st, el, data)
}

func rectF(b *builder, st pathStyle, el *element) (Node, error) {
	vals, err := b.lengths(st, el, []string{"x", "y", "width", "height", "rx", "ry"},
		[]percentageReference{widthPercentage, heightPercentage, widthPercentage, heightPercentage, widthPercentage, heightPercentage})
	if err != nil {
		return nil, err
	}
	x, y, w, h, rx, ry := vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]
	if w <= 0 || h <= 0 { // not drawn, but not an error
		return nil, nil
	}
	// a missing radius defaults to the other one
	_, hasRx := el.attrs["rx"]
	_, hasRy := el.attrs["ry"]
	if hasRx && !hasRy {
		ry = rx
	} else if hasRy && !hasRx {
		rx = ry
	}
	return b.newPath(st, el, svgpath.RoundRect(x, y, x+w, y+h, rx, ry))
}

func circleF(b *builder, st pathStyle, el *element) (Node, error) {
	var names []string
	var percs []percentageReference
	if el.tag == "circle" {
		names = []string{"cx", "cy", "r", "r"}
		percs = []percentageReference{widthPercentage, heightPercentage, diagPercentage, diagPercentage}
	} else {
		names = []string{"cx", "cy", "rx", "ry"}
		percs = []percentageReference{widthPercentage, heightPercentage, widthPercentage, heightPercentage}
	}
	vals, err := b.lengths(st, el, names, percs)
	if err != nil {
		return nil, err
	}
	cx, cy, rx, ry := vals[0], vals[1], vals[2], vals[3]
	if el.tag == "ellipse" {
		_, hasRx := el.attrs["rx"]
		_, hasRy := el.attrs["ry"]
		if hasRx && !hasRy {
			ry = rx
		} else if hasRy && !hasRx {
			rx = ry
		}
	}
	if rx <= 0 || ry <= 0 { // not drawn, but not an error
		return nil, nil
	}
	return b.newPath(st, el, svgpath.Ellipse(cx, cy, rx, ry))
}

func lineF(b *builder, st pathStyle, el *element) (Node, error) {
	vals, err := b.lengths(st, el, []string{"x1", "y1", "x2", "y2"},
		[]percentageReference{widthPercentage, heightPercentage, widthPercentage, heightPercentage})
	if err != nil {
		return nil, err
	}
	return b.newPath(st, el, svgpath.Line(vals[0], vals[1], vals[2], vals[3]))
}

func (b *builder) points(el *element) ([]float64, error) {
	points, err := readPoints(el.attrs["points"])
	if err != nil {
		// the shape is rendered up to the first error
		if err = b.handleError(fmt.Sprintf("invalid points on <%s>: %s", el.tag, err)); err != nil {
			return nil, err
		}
	}
	if len(points)%2 != 0 {
		points = points[:len(points)-1]
	}
	return points, nil
}

func polylineF(b *builder, st pathStyle, el *element) (Node, error) {
	points, err := b.points(el)
	if err != nil {
		return nil, err
	}
	return b.newPath(st, el, svgpath.Polyline(points))
}

func polygonF(b *builder, st pathStyle, el *element) (Node, error) {
	points, err := b.points(el)
	if err != nil {
		return nil, err
	}
	return b.newPath(st, el, svgpath.Polygon(points))
}

func defsF(b *builder, st pathStyle, el *element) (Node, error) {
	nodes, err := b.buildChildren(st, el)
	return &Defs{Nodes: nodes}, err
}

// definitionF records a referenced element, which is
// not drawn in place.
func definitionF(b *builder, st pathStyle, el *element) (Node, error) {
	if el.tag == "linearGradient" || el.tag == "radialGradient" {
		if _, err := b.gradient(el); err != nil {
			return nil, b.handleError(fmt.Sprintf("invalid gradient: %s", err))
		}
	}
	m, err := b.transform(el)
	if err != nil {
		return nil, err
	}
	return &Other{Tag: el.tag, ID: el.attrs["id"], Matrix: m}, nil
}

func metadataF(*builder, pathStyle, *element) (Node, error) { return nil, nil }

// otherF handles elements which are not supported, like text or images.
// Their children are kept so that nested shapes are not lost.
func otherF(b *builder, parent pathStyle, el *element) (Node, error) {
	if err := b.handleError("Cannot process svg element " + el.tag); err != nil {
		return nil, err
	}
	st, err := b.pushStyle(parent, el)
	if err != nil {
		return nil, err
	}
	m, err := b.transform(el)
	if err != nil {
		return nil, err
	}
	o := &Other{Tag: el.tag, ID: el.attrs["id"], Matrix: m}
	o.Nodes, err = b.buildChildren(st, el)
	return o, err
}

// useF resolves a <use> element by building the referenced element
// with the style of the <use>, in a group translated by (x, y).
func useF(b *builder, st pathStyle, el *element) (Node, error) {
	href, hasHref := el.attrs["href"]
	if !hasHref || href == "" {
		return nil, b.handleError("only use tags with href is supported")
	}
	if !strings.HasPrefix(href, "#") {
		return nil, b.handleError("only the ID CSS selector is supported")
	}
	ref, ok := b.ids[href[1:]]
	if !ok {
		return nil, b.handleError(fmt.Sprintf("href ID %s in use statement was not found", href))
	}
	if b.using[ref] {
		return nil, b.handleError(fmt.Sprintf("recursive use of %s", href))
	}
	b.using[ref] = true
	defer delete(b.using, ref)

	vals, err := b.lengths(st, el, []string{"x", "y", "width", "height"},
		[]percentageReference{widthPercentage, heightPercentage, widthPercentage, heightPercentage})
	if err != nil {
		return nil, err
	}
	m, err := b.transform(el)
	if err != nil {
		return nil, err
	}
	g := &Group{ID: el.attrs["id"], Matrix: m.Translate(vals[0], vals[1])}

	var node Node
	if ref.tag == "symbol" {
		node, err = b.symbol(st, ref, vals[2], vals[3])
	} else {
		node, err = b.buildElement(st, ref)
	}
	if err != nil {
		return nil, err
	}
	if node != nil {
		g.Nodes = []Node{node}
	}
	return g, nil
}

// symbol instantiates a <symbol>, mapping its view box
// to the size given by the <use> element, if any.
func (b *builder) symbol(parent pathStyle, el *element, width, height float64) (Node, error) {
	st, err := b.pushStyle(parent, el)
	if err != nil {
		return nil, err
	}
	m := svgpath.Identity
	if vb, ok := el.attrs["viewBox"]; ok {
		if box, err := parseViewBox(vb); err == nil {
			var ar AspectRatio
			if par, ok := el.attrs["preserveAspectRatio"]; ok {
				ar, _ = parseAspectRatio(par)
			}
			if width == 0 {
				width = box.W
			}
			if height == 0 {
				height = box.H
			}
			m = viewBoxTransform(box, ar, width, height)
		}
	}
	g := &Group{ID: el.attrs["id"], Matrix: m}
	g.Nodes, err = b.buildChildren(st, el)
	return g, err
}
