package svggeom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svggeom/svgpath"
)

type pt = svgpath.Point

// assertBalanced checks that every Begin is matched by exactly one End.
func assertBalanced(t *testing.T, events []Event) {
	t.Helper()
	open := false
	for i, e := range events {
		switch e.Kind {
		case BeginKind:
			assert.False(t, open, "event %d: Begin in an open subpath", i)
			open = true
		case LineKind, CubicKind:
			assert.True(t, open, "event %d: segment outside a subpath", i)
		case EndKind:
			assert.True(t, open, "event %d: End without Begin", i)
			open = false
		}
	}
	assert.False(t, open, "unterminated subpath")
}

func TestConvertUnclosed(t *testing.T) {
	path := svgpath.Path{svgpath.MoveTo{0, 0}, svgpath.LineTo{1, 0}, svgpath.LineTo{1, 1}}
	assert.Equal(t, []Event{
		BeginEvent(pt{0, 0}),
		LineEvent(pt{0, 0}, pt{1, 0}),
		LineEvent(pt{1, 0}, pt{1, 1}),
		EndEvent(pt{1, 1}, pt{0, 0}, false),
	}, ConvertPath(path))
}

func TestConvertClosed(t *testing.T) {
	path := svgpath.Path{svgpath.MoveTo{0, 0}, svgpath.LineTo{1, 0}, svgpath.Close{}}
	events := ConvertPath(path)
	require.Len(t, events, 3)
	last := events[len(events)-1]
	assert.Equal(t, EndEvent(pt{1, 0}, pt{0, 0}, true), last)
	assert.Equal(t, pt{1, 0}, last.Last())
	assert.Equal(t, pt{0, 0}, last.First())
}

func TestConvertMultiSubpaths(t *testing.T) {
	path := svgpath.Path{svgpath.MoveTo{0, 0}, svgpath.LineTo{1, 0}, svgpath.MoveTo{5, 5}, svgpath.LineTo{6, 5}}
	events := ConvertPath(path)
	assert.Equal(t, []Event{
		BeginEvent(pt{0, 0}),
		LineEvent(pt{0, 0}, pt{1, 0}),
		EndEvent(pt{1, 0}, pt{0, 0}, false),
		BeginEvent(pt{5, 5}),
		LineEvent(pt{5, 5}, pt{6, 5}),
		EndEvent(pt{6, 5}, pt{5, 5}, false),
	}, events)
	assertBalanced(t, events)
}

func TestConvertCubic(t *testing.T) {
	path := svgpath.Path{
		svgpath.MoveTo{0, 0},
		svgpath.CubicTo{C1: pt{0, 1}, C2: pt{1, 1}, To: pt{1, 0}},
		svgpath.Close{},
	}
	assert.Equal(t, []Event{
		BeginEvent(pt{0, 0}),
		CubicEvent(pt{0, 0}, pt{0, 1}, pt{1, 1}, pt{1, 0}),
		EndEvent(pt{1, 0}, pt{0, 0}, true),
	}, ConvertPath(path))
}

func TestConvertEdgeCases(t *testing.T) {
	for _, test := range []struct {
		name string
		path svgpath.Path
		want []Event
	}{
		{"empty", nil, nil},
		{"lone move", svgpath.Path{svgpath.MoveTo{2, 3}}, []Event{
			BeginEvent(pt{2, 3}),
			EndEvent(pt{2, 3}, pt{2, 3}, false),
		}},
		{"consecutive moves", svgpath.Path{svgpath.MoveTo{0, 0}, svgpath.MoveTo{1, 1}}, []Event{
			BeginEvent(pt{0, 0}),
			EndEvent(pt{0, 0}, pt{0, 0}, false),
			BeginEvent(pt{1, 1}),
			EndEvent(pt{1, 1}, pt{1, 1}, false),
		}},
		{"line without move", svgpath.Path{svgpath.LineTo{1, 0}}, []Event{
			BeginEvent(pt{0, 0}),
			LineEvent(pt{0, 0}, pt{1, 0}),
			EndEvent(pt{1, 0}, pt{0, 0}, false),
		}},
		{"drawing after close", svgpath.Path{svgpath.MoveTo{1, 1}, svgpath.LineTo{2, 1}, svgpath.Close{}, svgpath.LineTo{3, 3}}, []Event{
			BeginEvent(pt{1, 1}),
			LineEvent(pt{1, 1}, pt{2, 1}),
			EndEvent(pt{2, 1}, pt{1, 1}, true),
			BeginEvent(pt{1, 1}),
			LineEvent(pt{1, 1}, pt{3, 3}),
			EndEvent(pt{3, 3}, pt{1, 1}, false),
		}},
		{"double close", svgpath.Path{svgpath.MoveTo{0, 0}, svgpath.LineTo{1, 0}, svgpath.Close{}, svgpath.Close{}}, []Event{
			BeginEvent(pt{0, 0}),
			LineEvent(pt{0, 0}, pt{1, 0}),
			EndEvent(pt{1, 0}, pt{0, 0}, true),
		}},
		{"close then move", svgpath.Path{svgpath.MoveTo{0, 0}, svgpath.Close{}, svgpath.MoveTo{4, 4}}, []Event{
			BeginEvent(pt{0, 0}),
			EndEvent(pt{0, 0}, pt{0, 0}, true),
			BeginEvent(pt{4, 4}),
			EndEvent(pt{4, 4}, pt{4, 4}, false),
		}},
	} {
		events := ConvertPath(test.path)
		assert.Equal(t, len(test.want), len(events), test.name)
		if len(test.want) != 0 {
			assert.Equal(t, test.want, events, test.name)
		}
		assertBalanced(t, events)
	}
}

func TestConvertParsedPaths(t *testing.T) {
	for _, d := range []string{
		"M0 0 L10 0 L10 10 Z M20 20 L30 30",
		"M0 0 A5 5 0 1 1 10 0 Z z M 3 3",
		"M1 1 2 2 3 3 m 1 1 h 5 v 5 z l 2 2",
		"M0 0 Q 5 5 10 0 T 20 0 S 30 10 40 0",
	} {
		path, err := svgpath.ParsePathData(d)
		require.NoError(t, err, d)
		assertBalanced(t, ConvertPath(path))
	}
}

func TestConverterExhausted(t *testing.T) {
	c := NewConverter(svgpath.Path{svgpath.MoveTo{0, 0}, svgpath.MoveTo{1, 0}})
	n := 0
	for _, ok := c.Next(); ok; _, ok = c.Next() {
		n++
	}
	assert.Equal(t, 4, n)
	_, ok := c.Next()
	assert.False(t, ok)
	_, ok = c.Next()
	assert.False(t, ok)
}

func TestEventsEarlyStop(t *testing.T) {
	path := svgpath.Path{svgpath.MoveTo{0, 0}, svgpath.LineTo{1, 0}, svgpath.LineTo{2, 0}}
	var got []Event
	for e := range Events(path) {
		got = append(got, e)
		if e.Kind == LineKind {
			break
		}
	}
	assert.Equal(t, []Event{BeginEvent(pt{0, 0}), LineEvent(pt{0, 0}, pt{1, 0})}, got)
}

func TestEventTransform(t *testing.T) {
	m := svgpath.NewTranslation(1, 2).Scale(2, 2)
	e := CubicEvent(pt{0, 0}, pt{1, 0}, pt{0, 1}, pt{1, 1}).Transform(m)
	assert.Equal(t, CubicEvent(pt{1, 2}, pt{3, 2}, pt{1, 4}, pt{3, 4}), e)

	b := BeginEvent(pt{1, 1}).Transform(m)
	assert.Equal(t, pt{3, 4}, b.At())
	assert.Equal(t, "Begin({3 4})", b.String())
}

func TestEventKindText(t *testing.T) {
	data, err := json.Marshal(LineEvent(pt{0, 0}, pt{1, 2}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"line","from":{"x":0,"y":0},"ctrl1":{"x":0,"y":0},"ctrl2":{"x":0,"y":0},"to":{"x":1,"y":2}}`, string(data))

	var k EventKind
	require.NoError(t, k.UnmarshalText([]byte("end")))
	assert.Equal(t, EndKind, k)
	assert.Error(t, k.UnmarshalText([]byte("arc")))
}
