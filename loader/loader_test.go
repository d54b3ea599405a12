package loader

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svggeom"
	"github.com/benoitkugler/svggeom/svgtree"
)

const badge = "testdata/badge.svg"

func TestLoadFile(t *testing.T) {
	placed, err := LoadFile(badge)
	require.NoError(t, err)

	doc := placed.Document
	assert.Equal(t, "badge.svg", doc.File)
	assert.Equal(t, 100., doc.Width)
	assert.Equal(t, 50., doc.Height)
	assert.Equal(t, svggeom.TopLeft, doc.Origin)
	// rect fill, rect stroke, circle fill (the filter is ignored)
	require.Len(t, doc.Paths, 3)
	assert.Equal(t, svggeom.Color{0x33, 0x66, 0x99, 0xff}, doc.Paths[0].Color)
	assert.Equal(t, svggeom.Stroke, doc.Paths[1].Draw.Kind)
	assert.Equal(t, svggeom.Color{0xff, 0xff, 0xff, 204}, doc.Paths[2].Color)

	assert.Equal(t, svggeom.DefaultPlacement(), placed.Placement)
	assert.Equal(t, svggeom.Vec3{}, placed.Offset)
}

func TestLoadPlacement(t *testing.T) {
	placed, err := LoadFile(badge,
		WithOrigin(svggeom.Center),
		WithTranslation(svggeom.Vec3{X: 10, Y: 10}),
		WithScale(svggeom.Vec2{X: 2, Y: 2}),
	)
	require.NoError(t, err)
	assert.Equal(t, svggeom.Center, placed.Document.Origin)
	assert.Equal(t, svggeom.Vec3{X: -90, Y: 60}, placed.Offset)

	p := svggeom.Placement{Origin: svggeom.Center, Scale: svggeom.Vec2{X: 1, Y: 1}}
	placed, err = LoadFile(badge, WithPlacement(p))
	require.NoError(t, err)
	assert.Equal(t, svggeom.Vec3{X: -50, Y: 25}, placed.Offset)
}

func TestLoadCompressed(t *testing.T) {
	data, err := os.ReadFile(badge)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "badge.svgz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	placed, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "badge.svgz", placed.Document.File)
	assert.Len(t, placed.Document.Paths, 3)

	// truncated archive
	_, err = Load("broken.svgz", buf.Bytes()[:20])
	assert.Error(t, err)
}

func TestLoadCompressedTooLarge(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte("<svg>" + strings.Repeat(" ", 4096) + "</svg>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	defer func(limit int64) { MaxInflatedSize = limit }(MaxInflatedSize)
	MaxInflatedSize = 1024

	_, err = Load("bomb.svgz", buf.Bytes())
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "bomb.svgz", fe.Path)
	assert.ErrorIs(t, err, ErrTooLarge)

	// exactly at the limit is accepted
	MaxInflatedSize = int64(4096 + len("<svg></svg>"))
	_, err = Load("bomb.svgz", buf.Bytes())
	assert.NoError(t, err)
}

func TestLoadErrors(t *testing.T) {
	var fe *FileError

	_, err := Load("", []byte(`<svg/>`))
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, ErrInvalidFileName)

	_, err = Load("dir/", []byte(`<svg/>`))
	assert.ErrorIs(t, err, ErrInvalidFileName)

	_, err = Load("bad.svg", []byte(`<svg><g></svg>`))
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "bad.svg", fe.Path)
	assert.NotErrorIs(t, err, ErrInvalidFileName)
	assert.Contains(t, err.Error(), "bad.svg")

	_, err = Load("html.svg", []byte(`<html/>`))
	assert.ErrorIs(t, err, svgtree.ErrInvalidSVG)

	_, err = LoadFile("testdata/missing.svg")
	require.ErrorAs(t, err, &fe)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	// unsupported content only fails in strict mode
	src := []byte(`<svg><use href="#nowhere"/></svg>`)
	_, err = Load("use.svg", src)
	assert.NoError(t, err)
	_, err = Load("use.svg", src, WithErrorMode(svgtree.StrictErrorMode))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a/b/icon.svg"))
	assert.True(t, Supported("icon.SVGZ"))
	assert.False(t, Supported("icon.png"))
	assert.False(t, Supported("svg"))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.svg", "b.svg", "c.svg"} {
		path := filepath.Join(dir, name)
		src := `<svg width="10" height="10"><rect width="1" height="1"/></svg>`
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
		paths = append(paths, path)
	}
	paths = append(paths, badge)

	placed, err := LoadFiles(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, placed, 4)
	for i, name := range []string{"a.svg", "b.svg", "c.svg", "badge.svg"} {
		assert.Equal(t, name, placed[i].Document.File)
	}

	_, err = LoadFiles(context.Background(), append(paths, filepath.Join(dir, "missing.svg")), 0)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = LoadFiles(ctx, paths, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
