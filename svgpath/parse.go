package svgpath

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

var (
	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown command")
	errNoMoveTo       = errors.New("path data does not start with a moveto")
)

// pathCursor compiles path data into absolute commands.
type pathCursor struct {
	path Path

	cur, first Point // current point and start of the current subpath
	ctrl       Point // last control point, used by smooth commands
	prevCmd    byte  // last command, uppercase
	closed     bool  // the last command was a close
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func skipSeparators(b []byte) int {
	i := 0
	for i < len(b) && isSeparator(b[i]) {
		i++
	}
	return i
}

// ReadNumbers parses a list of numbers separated by
// commas and/or whitespace, as found in viewBox or points attributes.
func ReadNumbers(s string) ([]float64, error) {
	var out []float64
	b := []byte(s)
	for i := skipSeparators(b); i < len(b); i += skipSeparators(b[i:]) {
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return out, fmt.Errorf("invalid number list %q: %w", s, errParamMismatch)
		}
		out = append(out, f)
		i += n
	}
	return out, nil
}

// readFlag parses an arc flag, which may be glued to the following number.
func readFlag(b []byte) (bool, int, error) {
	i := skipSeparators(b)
	if i >= len(b) {
		return false, i, errParamMismatch
	}
	switch b[i] {
	case '0':
		return false, i + 1, nil
	case '1':
		return true, i + 1, nil
	}
	return false, i, errParamMismatch
}

// ParsePathData compiles the content of a `d` attribute.
// On error, the commands parsed until the faulty one are returned,
// which is how SVG renderers are expected to handle invalid data.
func ParsePathData(d string) (Path, error) {
	var c pathCursor
	err := c.compile([]byte(d))
	return c.path, err
}

func (c *pathCursor) compile(b []byte) error {
	i := skipSeparators(b)
	if i < len(b) && b[i] != 'M' && b[i] != 'm' {
		return errNoMoveTo
	}
	var cmd byte
	for i < len(b) {
		ch := b[i]
		if ch >= 'A' && ch <= 'z' && ch != 'e' && ch != 'E' {
			cmd = ch
			i++
		} else if cmd == 0 {
			return fmt.Errorf("unexpected character %q: %w", ch, errCommandUnknown)
		}
		n, err := c.addCommand(cmd, b[i:])
		if err != nil {
			return err
		}
		i += n
		i += skipSeparators(b[i:])
		// implicit repetition: M is followed by L, m by l
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		case 'Z', 'z':
			cmd = 0
		}
	}
	return nil
}

// readArgs reads exactly len(args) numbers
func readArgs(b []byte, args []float64) (int, error) {
	i := 0
	for k := range args {
		i += skipSeparators(b[i:])
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return i, errParamMismatch
		}
		args[k] = f
		i += n
	}
	return i, nil
}

// reopen starts a new subpath at the start of the previous closed one,
// when a drawing command directly follows a close.
func (c *pathCursor) reopen() {
	if c.closed {
		c.path.Start(c.first)
		c.closed = false
	}
}

func (c *pathCursor) addCommand(cmd byte, b []byte) (int, error) {
	var args [7]float64
	relative := cmd >= 'a'
	upper := cmd
	if relative {
		upper = cmd - 'a' + 'A'
	}
	var (
		n   int
		err error
	)
	offset := func(x, y float64) Point {
		if relative {
			return Point{c.cur.X + x, c.cur.Y + y}
		}
		return Point{x, y}
	}

	switch upper {
	case 'Z':
		c.path.Stop(true)
		c.cur = c.first
		c.closed = true
	case 'M':
		if n, err = readArgs(b, args[:2]); err != nil {
			return n, err
		}
		c.cur = offset(args[0], args[1])
		c.first = c.cur
		c.path.Start(c.cur)
		c.closed = false
	case 'L':
		if n, err = readArgs(b, args[:2]); err != nil {
			return n, err
		}
		c.reopen()
		c.cur = offset(args[0], args[1])
		c.path.Line(c.cur)
	case 'H':
		if n, err = readArgs(b, args[:1]); err != nil {
			return n, err
		}
		c.reopen()
		if relative {
			c.cur.X += args[0]
		} else {
			c.cur.X = args[0]
		}
		c.path.Line(c.cur)
	case 'V':
		if n, err = readArgs(b, args[:1]); err != nil {
			return n, err
		}
		c.reopen()
		if relative {
			c.cur.Y += args[0]
		} else {
			c.cur.Y = args[0]
		}
		c.path.Line(c.cur)
	case 'C':
		if n, err = readArgs(b, args[:6]); err != nil {
			return n, err
		}
		c.reopen()
		c1, c2, to := offset(args[0], args[1]), offset(args[2], args[3]), offset(args[4], args[5])
		c.path.CubeBezier(c1, c2, to)
		c.ctrl, c.cur = c2, to
	case 'S':
		if n, err = readArgs(b, args[:4]); err != nil {
			return n, err
		}
		c.reopen()
		c1 := c.cur
		if c.prevCmd == 'C' || c.prevCmd == 'S' {
			c1 = c.cur.Mul(2).Sub(c.ctrl) // reflection of the previous control point
		}
		c2, to := offset(args[0], args[1]), offset(args[2], args[3])
		c.path.CubeBezier(c1, c2, to)
		c.ctrl, c.cur = c2, to
	case 'Q':
		if n, err = readArgs(b, args[:4]); err != nil {
			return n, err
		}
		c.reopen()
		q, to := offset(args[0], args[1]), offset(args[2], args[3])
		c.path.QuadBezier(c.cur, q, to)
		c.ctrl, c.cur = q, to
	case 'T':
		if n, err = readArgs(b, args[:2]); err != nil {
			return n, err
		}
		c.reopen()
		q := c.cur
		if c.prevCmd == 'Q' || c.prevCmd == 'T' {
			q = c.cur.Mul(2).Sub(c.ctrl)
		}
		to := offset(args[0], args[1])
		c.path.QuadBezier(c.cur, q, to)
		c.ctrl, c.cur = q, to
	case 'A':
		var m int
		if m, err = readArgs(b, args[:3]); err != nil {
			return m, err
		}
		n += m
		var largeArc, sweep bool
		if largeArc, m, err = readFlag(b[n:]); err != nil {
			return n, err
		}
		n += m
		if sweep, m, err = readFlag(b[n:]); err != nil {
			return n, err
		}
		n += m
		if m, err = readArgs(b[n:], args[3:5]); err != nil {
			return n, err
		}
		n += m
		c.reopen()
		to := offset(args[3], args[4])
		c.path.addArc(c.cur, args[0], args[1], args[2], largeArc, sweep, to)
		c.cur = to
	default:
		return 0, fmt.Errorf("command %q: %w", cmd, errCommandUnknown)
	}
	c.prevCmd = upper
	return n, nil
}
