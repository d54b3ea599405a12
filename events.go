package svggeom

import (
	"fmt"
	"iter"

	"github.com/benoitkugler/svggeom/svgpath"
)

// EventKind identifies the primitive carried by an Event.
type EventKind uint8

const (
	BeginKind EventKind = iota
	LineKind
	CubicKind
	EndKind
)

func (k EventKind) String() string {
	switch k {
	case BeginKind:
		return "begin"
	case LineKind:
		return "line"
	case CubicKind:
		return "cubic"
	case EndKind:
		return "end"
	default:
		return fmt.Sprintf("<unknown EventKind %d>", uint8(k))
	}
}

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *EventKind) UnmarshalText(text []byte) error {
	for _, kind := range [...]EventKind{BeginKind, LineKind, CubicKind, EndKind} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("invalid event kind %q", text)
}

// Event is one primitive of a path outline, in the
// coordinates of the path (before its transform is applied).
//
// The fields used depend on the kind:
//   - Begin: To is the start point
//   - Line: From, To
//   - Cubic: From, Ctrl1, Ctrl2, To
//   - End: From is the last point, To the first point of the subpath
type Event struct {
	Kind  EventKind     `json:"kind" yaml:"kind"`
	From  svgpath.Point `json:"from" yaml:"from"`
	Ctrl1 svgpath.Point `json:"ctrl1" yaml:"ctrl1"`
	Ctrl2 svgpath.Point `json:"ctrl2" yaml:"ctrl2"`
	To    svgpath.Point `json:"to" yaml:"to"`
	Close bool          `json:"close,omitempty" yaml:"close,omitempty"`
}

func BeginEvent(at svgpath.Point) Event { return Event{Kind: BeginKind, From: at, To: at} }

func LineEvent(from, to svgpath.Point) Event { return Event{Kind: LineKind, From: from, To: to} }

func CubicEvent(from, ctrl1, ctrl2, to svgpath.Point) Event {
	return Event{Kind: CubicKind, From: from, Ctrl1: ctrl1, Ctrl2: ctrl2, To: to}
}

// EndEvent terminates the subpath started at `first`, whose
// current point is `last`.
func EndEvent(last, first svgpath.Point, close bool) Event {
	return Event{Kind: EndKind, From: last, To: first, Close: close}
}

// At returns the start point of a Begin event.
func (e Event) At() svgpath.Point { return e.To }

// Last returns the last point of the subpath terminated by an End event.
func (e Event) Last() svgpath.Point { return e.From }

// First returns the first point of the subpath terminated by an End event.
func (e Event) First() svgpath.Point { return e.To }

// Transform returns the event with all its points mapped by `m`.
func (e Event) Transform(m svgpath.Matrix2D) Event {
	e.From = m.TransformPoint(e.From)
	e.To = m.TransformPoint(e.To)
	if e.Kind == CubicKind {
		e.Ctrl1 = m.TransformPoint(e.Ctrl1)
		e.Ctrl2 = m.TransformPoint(e.Ctrl2)
	}
	return e
}

func (e Event) String() string {
	switch e.Kind {
	case BeginKind:
		return fmt.Sprintf("Begin(%v)", e.To)
	case LineKind:
		return fmt.Sprintf("Line(%v, %v)", e.From, e.To)
	case CubicKind:
		return fmt.Sprintf("Cubic(%v, %v, %v, %v)", e.From, e.Ctrl1, e.Ctrl2, e.To)
	default:
		return fmt.Sprintf("End(%v, %v, %t)", e.From, e.To, e.Close)
	}
}

// Converter turns absolute path commands into a stream of events,
// where every subpath is delimited by exactly one Begin and one End.
//
// An input command may produce two events (a MoveTo in an open subpath
// ends it before beginning a new one). The second one is kept in a
// one-slot buffer and returned by the next call to Next.
type Converter struct {
	path svgpath.Path
	pos  int // next command to read

	prev, first svgpath.Point
	needsEnd    bool // a subpath is open

	pending    Event
	hasPending bool
}

// NewConverter returns a converter reading `path`, which is not modified.
func NewConverter(path svgpath.Path) *Converter {
	return &Converter{path: path}
}

// deferEvent stores an event to be returned by the next call to Next.
func (c *Converter) deferEvent(e Event) {
	c.pending = e
	c.hasPending = true
}

// Next returns the next event, or false when the stream is exhausted.
// Once exhausted, Next keeps returning false.
func (c *Converter) Next() (Event, bool) {
	if c.hasPending {
		c.hasPending = false
		return c.pending, true
	}

	for c.pos < len(c.path) {
		op := c.path[c.pos]
		c.pos++
		switch op := op.(type) {
		case svgpath.MoveTo:
			at := svgpath.Point(op)
			if c.needsEnd {
				end := EndEvent(c.prev, c.first, false)
				c.deferEvent(BeginEvent(at))
				c.first, c.prev = at, at
				return end, true
			}
			c.first, c.prev = at, at
			c.needsEnd = true
			return BeginEvent(at), true
		case svgpath.LineTo:
			e := LineEvent(c.prev, svgpath.Point(op))
			return c.segment(e), true
		case svgpath.CubicTo:
			e := CubicEvent(c.prev, op.C1, op.C2, op.To)
			return c.segment(e), true
		case svgpath.Close:
			if !c.needsEnd { // nothing to close
				continue
			}
			end := EndEvent(c.prev, c.first, true)
			c.prev = c.first
			c.needsEnd = false
			return end, true
		}
	}

	if c.needsEnd {
		c.needsEnd = false
		return EndEvent(c.prev, c.first, false), true
	}
	return Event{}, false
}

// segment handles a drawing event, opening a subpath at the
// current point if needed.
func (c *Converter) segment(e Event) Event {
	c.prev = e.To
	if c.needsEnd {
		return e
	}
	c.needsEnd = true
	c.first = e.From
	c.deferEvent(e)
	return BeginEvent(e.From)
}

// Events returns a single-use sequence over the events of `path`.
func Events(path svgpath.Path) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		c := NewConverter(path)
		for e, ok := c.Next(); ok; e, ok = c.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

// ConvertPath returns all the events of `path`.
func ConvertPath(path svgpath.Path) []Event {
	out := make([]Event, 0, len(path)+2)
	for e := range Events(path) {
		out = append(out, e)
	}
	return out
}
