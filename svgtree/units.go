package svgtree

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/benoitkugler/svggeom/svgpath"
)

var errParamMismatch = errors.New("param mismatch")

// absolute units, in pixels
const (
	pxPerInch = 96.
	pxPerCm   = pxPerInch / 2.54
	pxPerMm   = pxPerInch / 25.4
	pxPerPt   = pxPerInch / 72
	pxPerPc   = pxPerInch / 6

	defaultFontSize = 16.
)

// percentageReference defines which dimension
// of the viewport a percentage refers to.
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// parseNumber reads a whole number, without unit.
func parseNumber(v string) (float64, error) {
	b := []byte(strings.TrimSpace(v))
	f, n := strconv.ParseFloat(b)
	if n == 0 || n != len(b) {
		return 0, fmt.Errorf("invalid number %q: %w", v, errParamMismatch)
	}
	return f, nil
}

// readFraction reads a number or a percentage.
// For now fractions can be all values not just in the range [0,1]
func readFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := parseNumber(v)
	return f / d, err
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

// unitContext provides the references needed to resolve relative units.
type unitContext struct {
	viewBox  ViewBox
	fontSize float64
}

// parseUnit converts a length to user units.
func (u unitContext) parseUnit(s string, asPerc percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	b := []byte(s)
	value, n := strconv.ParseFloat(b)
	if n == 0 {
		return 0, fmt.Errorf("invalid length %q: %w", s, errParamMismatch)
	}
	switch unit := strings.ToLower(strings.TrimSpace(s[n:])); unit {
	case "", "px":
		return value, nil
	case "%":
		w, h := u.viewBox.W, u.viewBox.H
		switch asPerc {
		case widthPercentage:
			return value / 100 * w, nil
		case heightPercentage:
			return value / 100 * h, nil
		default:
			return value / 100 * math.Sqrt(w*w+h*h) / math.Sqrt2, nil
		}
	case "in":
		return value * pxPerInch, nil
	case "cm":
		return value * pxPerCm, nil
	case "mm":
		return value * pxPerMm, nil
	case "pt":
		return value * pxPerPt, nil
	case "pc":
		return value * pxPerPc, nil
	case "em":
		return value * u.fontSize, nil
	case "ex":
		return value * u.fontSize / 2, nil
	default:
		return 0, fmt.Errorf("unsupported unit in %q: %w", s, errParamMismatch)
	}
}

// parseUnitList reads a list of lengths, as used by stroke-dasharray.
func (u unitContext) parseUnitList(s string) ([]float64, error) {
	fields := splitOnCommaOrSpace(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := u.parseUnit(f, diagPercentage)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// readPoints reads the coordinates of polylines and polygons.
func readPoints(s string) ([]float64, error) {
	return svgpath.ReadNumbers(s)
}
