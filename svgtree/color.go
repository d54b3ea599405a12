package svgtree

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// parsedColor is the result of parsing an SVG color value.
type parsedColor struct {
	rgb     Color
	alpha   float64 // in [0, 1]
	none    bool    // the property is disabled
	current bool    // currentColor: use the inherited `color` property
}

// parseSVGColorNum reads the hexadecimal form, with 3, 4, 6 or 8 digits.
func parseSVGColorNum(colorStr string) (parsedColor, error) {
	s := strings.TrimPrefix(colorStr, "#")
	switch len(s) {
	case 3, 4: // SVG specs say duplicate characters in case of 3 digit hex number
		long := make([]byte, 0, 2*len(s))
		for i := 0; i < len(s); i++ {
			long = append(long, s[i], s[i])
		}
		s = string(long)
	case 6, 8:
	default:
		return parsedColor{}, fmt.Errorf("invalid color %q: %w", colorStr, errParamMismatch)
	}
	var comps [4]uint8
	comps[3] = 0xff
	for i := 0; 2*i < len(s); i++ {
		t, err := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if err != nil {
			return parsedColor{}, fmt.Errorf("invalid color %q: %w", colorStr, err)
		}
		comps[i] = uint8(t)
	}
	return parsedColor{rgb: Color{comps[0], comps[1], comps[2]}, alpha: float64(comps[3]) / 0xff}, nil
}

// parseColor parses an SVG color string in all forms
// including all SVG1.1 names, obtained from the colornames package.
// Paint references (url(...)) are handled by the caller.
func parseColor(colorStr string) (parsedColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "":
		return parsedColor{}, fmt.Errorf("empty color: %w", errParamMismatch)
	case "none":
		return parsedColor{none: true}, nil
	case "transparent":
		return parsedColor{alpha: 0}, nil
	case "currentcolor":
		return parsedColor{current: true, alpha: 1}, nil
	}
	if cn, ok := colornames.Map[v]; ok {
		return parsedColor{rgb: Color{cn.R, cn.G, cn.B}, alpha: 1}, nil
	}
	if v[0] == '#' {
		return parseSVGColorNum(v)
	}
	args, isRGBA := strings.CutPrefix(v, "rgba(")
	if !isRGBA {
		var ok bool
		args, ok = strings.CutPrefix(v, "rgb(")
		if !ok {
			return parsedColor{}, fmt.Errorf("unsupported color %q: %w", colorStr, errParamMismatch)
		}
	}
	args = strings.TrimSuffix(args, ")")
	vals := splitOnCommaOrSpace(strings.ReplaceAll(args, "/", " "))
	if len(vals) != 3 && len(vals) != 4 {
		return parsedColor{}, fmt.Errorf("invalid color %q: %w", colorStr, errParamMismatch)
	}
	out := parsedColor{alpha: 1}
	var cvals [3]uint8
	for i := range cvals {
		c, err := parseColorValue(vals[i])
		if err != nil {
			return parsedColor{}, err
		}
		cvals[i] = c
	}
	out.rgb = Color{cvals[0], cvals[1], cvals[2]}
	if len(vals) == 4 {
		a, err := parseOpacity(vals[3])
		if err != nil {
			return parsedColor{}, err
		}
		out.alpha = a
	}
	return out, nil
}

// parseColorValue reads a component, either in [0, 255] or as a percentage
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	f, err := readFraction(v)
	if err != nil {
		return 0, fmt.Errorf("invalid color component: %w", err)
	}
	if strings.HasSuffix(v, "%") {
		f *= 255
	}
	if f > 255 {
		f = 255
	} else if f < 0 {
		f = 0
	}
	return uint8(f + 0.5), nil
}

// parseOpacity reads a number or a percentage, clamped to [0, 1]
func parseOpacity(v string) (float64, error) {
	f, err := readFraction(v)
	if err != nil {
		return 0, err
	}
	return clamp01(f), nil
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
