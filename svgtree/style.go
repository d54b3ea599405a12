package svgtree

import (
	"fmt"
	"strings"
)

// pathStyle holds the state of the SVG style,
// inherited from the parent elements.
type pathStyle struct {
	fill          Paint // nil for none
	fillOpacity   float64
	fillAlpha     float64 // alpha of the fill color
	fillRule      FillRule
	fillCurrent   bool // fill is currentColor
	stroke        Paint
	strokeOpacity float64
	strokeAlpha   float64
	strokeCurrent bool
	strokeWidth   float64
	miterLimit    float64
	cap           CapMode
	join          JoinMode
	dash          []float64
	dashOffset    float64

	opacity float64 // accumulated `opacity` of the element and its ancestors

	color      Color // value of the `color` property, used by currentColor
	colorAlpha float64
	fontSize   float64
	visible    bool
}

// defaultStyle fills black, with the non-zero rule,
// full opacity, and no stroke.
var defaultStyle = pathStyle{
	fill:          Color{},
	fillOpacity:   1,
	fillAlpha:     1,
	strokeOpacity: 1,
	strokeAlpha:   1,
	strokeWidth:   1,
	miterLimit:    4,
	cap:           ButtCap,
	join:          Miter,
	opacity:       1,
	colorAlpha:    1,
	fontSize:      defaultFontSize,
	visible:       true,
}

// readPaint resolves a fill or stroke value, which is either a color
// or a reference to a paint server, optionally followed by a fallback color.
func (b *builder) readPaint(v string) (paint Paint, pc parsedColor, err error) {
	if rest, ok := strings.CutPrefix(v, "url("); ok {
		ref, fallback, _ := strings.Cut(rest, ")")
		id := strings.Trim(strings.TrimSpace(ref), `'"`)
		id = strings.TrimPrefix(id, "#")
		if p, ok := b.paintServer(id); ok {
			return p, parsedColor{alpha: 1}, nil
		}
		if fallback = strings.TrimSpace(fallback); fallback != "" {
			return b.readPaint(fallback)
		}
		// an invalid reference disables painting
		Logger().Debug("unresolved paint reference", "id", id)
		return nil, parsedColor{none: true}, nil
	}
	pc, err = parseColor(v)
	if err != nil || pc.none {
		return nil, pc, err
	}
	return pc.rgb, pc, nil
}

// applyDeclaration updates `st` with one property.
// Non inherited properties (transform and effects references)
// are handled by the element builders.
func (b *builder) applyDeclaration(st *pathStyle, k, v string) error {
	if v == "inherit" {
		return nil // the style is already inherited
	}
	units := unitContext{viewBox: b.tree.ViewBox, fontSize: st.fontSize}
	switch k {
	case "fill":
		paint, pc, err := b.readPaint(v)
		if err != nil {
			return err
		}
		st.fill, st.fillAlpha, st.fillCurrent = paint, pc.alpha, pc.current
	case "stroke":
		paint, pc, err := b.readPaint(v)
		if err != nil {
			return err
		}
		st.stroke, st.strokeAlpha, st.strokeCurrent = paint, pc.alpha, pc.current
	case "color":
		pc, err := parseColor(v)
		if err != nil {
			return err
		}
		if !pc.current && !pc.none {
			st.color, st.colorAlpha = pc.rgb, pc.alpha
		}
	case "fill-rule":
		switch v {
		case "nonzero":
			st.fillRule = NonZero
		case "evenodd":
			st.fillRule = EvenOdd
		}
	case "stroke-linecap":
		switch v {
		case "butt":
			st.cap = ButtCap
		case "round":
			st.cap = RoundCap
		case "square":
			st.cap = SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter", "miter-clip":
			st.join = Miter
		case "round", "arc", "arc-clip":
			st.join = Round
		case "bevel":
			st.join = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := parseNumber(v)
		if err != nil {
			return err
		}
		if mLimit < 1 {
			mLimit = 1
		}
		st.miterLimit = mLimit
	case "stroke-width":
		width, err := units.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		st.strokeWidth = width
	case "stroke-dashoffset":
		dashOffset, err := units.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		st.dashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			st.dash = nil
			break
		}
		dList, err := units.parseUnitList(v)
		if err != nil {
			return err
		}
		st.dash = normalizeDash(dList)
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := parseOpacity(v)
		if err != nil {
			return err
		}
		// only opacity compounds with the inherited value
		switch k {
		case "opacity":
			st.opacity *= op
		case "fill-opacity":
			st.fillOpacity = op
		case "stroke-opacity":
			st.strokeOpacity = op
		}
	case "font-size":
		size, err := units.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		st.fontSize = size
	case "visibility":
		st.visible = v == "visible"
	}
	return nil
}

// normalizeDash repeats odd lists and drops invalid ones,
// which disables dashing.
func normalizeDash(dash []float64) []float64 {
	var sum float64
	for _, d := range dash {
		if d < 0 {
			return nil
		}
		sum += d
	}
	if sum == 0 {
		return nil
	}
	if len(dash)%2 == 1 {
		dash = append(dash, dash...)
	}
	return dash
}

// fillRecord returns the resolved fill, or nil
func (st *pathStyle) fillRecord() *Fill {
	paint, alpha := st.fill, st.fillAlpha
	if st.fillCurrent {
		paint, alpha = st.color, st.colorAlpha
	}
	if paint == nil {
		return nil
	}
	return &Fill{Paint: paint, Opacity: clamp01(st.opacity * st.fillOpacity * alpha), Rule: st.fillRule}
}

// strokeRecord returns the resolved stroke, or nil
func (st *pathStyle) strokeRecord() *Stroke {
	paint, alpha := st.stroke, st.strokeAlpha
	if st.strokeCurrent {
		paint, alpha = st.color, st.colorAlpha
	}
	if paint == nil || st.strokeWidth <= 0 {
		return nil
	}
	return &Stroke{
		Paint:      paint,
		Opacity:    clamp01(st.opacity * st.strokeOpacity * alpha),
		Width:      st.strokeWidth,
		MiterLimit: st.miterLimit,
		Cap:        st.cap,
		Join:       st.join,
		Dash:       append([]float64(nil), st.dash...),
		DashOffset: st.dashOffset,
	}
}

// declarations returns the style properties set on `el`, by increasing priority:
// presentation attributes, style sheets, then the style attribute.
// A property appears only once, with its last value.
func (b *builder) declarations(el *element) []declaration {
	var all []declaration
	for _, attr := range el.order {
		all = append(all, declaration{property: attr, value: strings.TrimSpace(el.attrs[attr])})
	}
	for _, rule := range b.sheet {
		if rule.selector.matches(el) {
			all = append(all, rule.declarations...)
		}
	}
	if s, ok := el.attrs["style"]; ok {
		decls, err := parseStyleAttr(s)
		if err != nil {
			Logger().Debug("invalid style attribute", "value", s, "error", err)
		}
		all = append(all, decls...)
	}

	index := make(map[string]int, len(all))
	out := all[:0:0]
	for _, d := range all {
		if i, ok := index[d.property]; ok {
			out[i].value = d.value
			continue
		}
		index[d.property] = len(out)
		out = append(out, d)
	}
	return out
}

// pushStyle returns the style of `el`, inheriting from `parent`.
func (b *builder) pushStyle(parent pathStyle, el *element) (pathStyle, error) {
	st := parent
	st.dash = append([]float64(nil), parent.dash...)
	for _, d := range b.declarations(el) {
		if err := b.applyDeclaration(&st, d.property, d.value); err != nil {
			if err = b.handleError(fmt.Sprintf("invalid %s property on <%s>: %s", d.property, el.tag, err)); err != nil {
				return st, err
			}
		}
	}
	return st, nil
}
