package svgtree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode outputs a warning when an unparsed SVG element is found
	WarnErrorMode
	// StrictErrorMode causes an error when an unparsed SVG element is found
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return fmt.Sprintf("<unknown ErrorMode %d>", uint8(m))
	}
}

// ErrInvalidSVG is returned when the input has no SVG element.
var ErrInvalidSVG = errors.New("invalid svg xml icon")

// Option configures the parser.
type Option func(*options)

type options struct {
	errorMode ErrorMode
}

// WithErrorMode sets how unsupported elements and
// invalid attribute values are handled. The default is [IgnoreErrorMode].
func WithErrorMode(mode ErrorMode) Option {
	return func(o *options) { o.errorMode = mode }
}

// element is a raw XML element
type element struct {
	tag      string
	attrs    map[string]string
	order    []string // attribute names, in document order
	children []*element
	text     string // character data
}

func newElement(se xml.StartElement) *element {
	el := &element{tag: se.Name.Local, attrs: make(map[string]string, len(se.Attr))}
	for _, attr := range se.Attr {
		name := attr.Name.Local
		if attr.Name.Space == "xmlns" || name == "xmlns" {
			continue
		}
		if _, seen := el.attrs[name]; !seen {
			el.order = append(el.order, name)
		}
		el.attrs[name] = attr.Value
	}
	return el
}

// readElements decodes the XML into a tree of elements,
// ignoring elements in foreign namespaces.
func readElements(r io.Reader) (*element, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	decoder.Strict = true

	var (
		root    *element
		stack   []*element
		skipped int // depth inside a foreign element
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			if skipped > 0 || (se.Name.Space != "" && se.Name.Space != svgNamespace) {
				skipped++
				continue
			}
			el := newElement(se)
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements: %w", ErrInvalidSVG)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if skipped > 0 {
				skipped--
				continue
			}
			if len(stack) != 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if skipped == 0 && len(stack) != 0 {
				top := stack[len(stack)-1]
				top.text += string(se)
			}
		}
	}
	if root == nil || root.tag != "svg" {
		return nil, ErrInvalidSVG
	}
	return root, nil
}

// Parse reads an SVG document.
// This only supports a sub-set of SVG, but
// is enough to draw many icons. The error mode set by [WithErrorMode]
// determines if the parser ignores, errors out, or logs a warning
// if it does not handle an element found in the document.
func Parse(r io.Reader, opts ...Option) (*Tree, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	root, err := readElements(r)
	if err != nil {
		return nil, err
	}

	b := newBuilder(root, o)
	if err := b.build(root); err != nil {
		return nil, err
	}
	return b.tree, nil
}

// ParseBytes is a convenience wrapper around [Parse].
func ParseBytes(data []byte, opts ...Option) (*Tree, error) {
	return Parse(bytes.NewReader(data), opts...)
}

// builder converts the raw elements into a Tree
type builder struct {
	tree      *Tree
	ids       map[string]*element
	sheet     styleSheet
	errorMode ErrorMode

	using map[*element]bool // <use> targets being built, to detect cycles
}

func newBuilder(root *element, o options) *builder {
	b := &builder{
		tree:      &Tree{Gradients: make(map[string]*Gradient)},
		ids:       make(map[string]*element),
		errorMode: o.errorMode,
		using:     make(map[*element]bool),
	}
	b.index(root)
	return b
}

// index registers IDs, titles, descriptions and style sheets
func (b *builder) index(el *element) {
	if id := el.attrs["id"]; id != "" {
		if _, dup := b.ids[id]; !dup { // the first element wins
			b.ids[id] = el
		}
	}
	switch el.tag {
	case "title":
		b.tree.Titles = append(b.tree.Titles, strings.TrimSpace(el.text))
	case "desc":
		b.tree.Descriptions = append(b.tree.Descriptions, strings.TrimSpace(el.text))
	case "style":
		if typ := el.attrs["type"]; typ == "" || typ == "text/css" {
			if err := b.sheet.parseStyleSheet(el.text); err != nil {
				Logger().Debug("invalid style sheet", "error", err)
			}
		}
	}
	for _, child := range el.children {
		b.index(child)
	}
}

// handleError reacts to an unsupported construct, according to the error mode.
func (b *builder) handleError(msg string) error {
	switch b.errorMode {
	case StrictErrorMode:
		return errors.New(msg)
	case WarnErrorMode:
		Logger().Warn(msg)
	}
	return nil
}

func (b *builder) lookupHref(el *element) (*element, bool) {
	href := el.attrs["href"]
	if !strings.HasPrefix(href, "#") {
		return nil, false
	}
	ref, ok := b.ids[href[1:]]
	return ref, ok
}

// paintServer resolves a paint reference
func (b *builder) paintServer(id string) (Paint, bool) {
	el, ok := b.ids[id]
	if !ok {
		return nil, false
	}
	switch el.tag {
	case "linearGradient", "radialGradient":
		grad, err := b.gradient(el)
		if err != nil {
			Logger().Debug("invalid gradient", "id", id, "error", err)
			return nil, false
		}
		return grad, true
	case "pattern":
		return PatternRef{ID: id}, true
	}
	return nil, false
}

// build fills the tree from the root <svg> element
func (b *builder) build(root *element) error {
	b.tree.Width, b.tree.Height = 100, 100
	if vb, ok := root.attrs["viewBox"]; ok {
		box, err := parseViewBox(vb)
		if err != nil {
			if err = b.handleError(err.Error()); err != nil {
				return err
			}
		} else {
			b.tree.ViewBox = box
			b.tree.Width, b.tree.Height = box.W, box.H
		}
	}
	if par, ok := root.attrs["preserveAspectRatio"]; ok {
		ar, err := parseAspectRatio(par)
		if err != nil {
			if err = b.handleError(err.Error()); err != nil {
				return err
			}
		}
		b.tree.AspectRatio = ar
	}
	units := unitContext{viewBox: b.tree.ViewBox, fontSize: defaultFontSize}
	var err error
	if w, ok := root.attrs["width"]; ok && !strings.HasSuffix(strings.TrimSpace(w), "%") {
		if b.tree.Width, err = units.parseUnit(w, widthPercentage); err != nil {
			return err
		}
	}
	if h, ok := root.attrs["height"]; ok && !strings.HasSuffix(strings.TrimSpace(h), "%") {
		if b.tree.Height, err = units.parseUnit(h, heightPercentage); err != nil {
			return err
		}
	}
	if b.tree.ViewBox.W <= 0 || b.tree.ViewBox.H <= 0 {
		b.tree.ViewBox = ViewBox{W: b.tree.Width, H: b.tree.Height}
	}

	st, err := b.pushStyle(defaultStyle, root)
	if err != nil {
		return err
	}
	nodes, err := b.buildChildren(st, root)
	if err != nil {
		return err
	}
	b.tree.Root = &Svg{Nodes: nodes}
	return nil
}

func parseViewBox(v string) (ViewBox, error) {
	points, err := readPoints(v)
	if err != nil {
		return ViewBox{}, err
	}
	if len(points) != 4 {
		return ViewBox{}, fmt.Errorf("invalid viewBox %q: %w", v, errParamMismatch)
	}
	if points[2] <= 0 || points[3] <= 0 {
		return ViewBox{}, fmt.Errorf("invalid viewBox %q: negative or zero size", v)
	}
	return ViewBox{points[0], points[1], points[2], points[3]}, nil
}

func (b *builder) buildChildren(st pathStyle, el *element) ([]Node, error) {
	var out []Node
	for _, child := range el.children {
		node, err := b.buildElement(st, child)
		if err != nil {
			return nil, err
		}
		if node != nil {
			out = append(out, node)
		}
	}
	return out, nil
}
