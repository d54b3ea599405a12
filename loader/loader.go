// Package loader reads SVG files (plain or gzip compressed)
// into placed svggeom documents.
package loader

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/benoitkugler/svggeom"
	"github.com/benoitkugler/svggeom/svgtree"
)

// Extensions are the file extensions handled by the loader.
var Extensions = []string{"svg", "svgz"}

// ErrInvalidFileName is returned when no document name
// can be derived from a path.
var ErrInvalidFileName = errors.New("invalid file name")

// FileError wraps an error occurring while loading the file at Path.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("reading SVG file %s: %s", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Placed is a loaded document, with its placement
// and the resulting offset.
type Placed struct {
	Document  *svggeom.Document `json:"document" yaml:"document"`
	Placement svggeom.Placement `json:"placement" yaml:"placement"`
	Offset    svggeom.Vec3      `json:"offset" yaml:"offset"`
}

type options struct {
	placement svggeom.Placement
	parse     []svgtree.Option
}

// Option customizes how documents are loaded.
type Option func(*options)

// WithOrigin sets the origin of the loaded documents.
func WithOrigin(origin svggeom.Origin) Option {
	return func(o *options) { o.placement.Origin = origin }
}

// WithTranslation sets the placement translation.
func WithTranslation(v svggeom.Vec3) Option {
	return func(o *options) { o.placement.Translation = v }
}

// WithScale sets the placement scale.
func WithScale(v svggeom.Vec2) Option {
	return func(o *options) { o.placement.Scale = v }
}

// WithPlacement replaces the whole placement.
func WithPlacement(p svggeom.Placement) Option {
	return func(o *options) { o.placement = p }
}

// WithErrorMode sets how the parser handles unsupported content.
func WithErrorMode(mode svgtree.ErrorMode) Option {
	return func(o *options) { o.parse = append(o.parse, svgtree.WithErrorMode(mode)) }
}

func newOptions(opts []Option) options {
	o := options{placement: svggeom.DefaultPlacement()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Supported returns true if the extension of `path` is one of Extensions.
func Supported(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// documentName returns the file name of `path`
func documentName(path string) (string, error) {
	if path == "" || strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return "", ErrInvalidFileName
	}
	name := filepath.Base(path)
	switch name {
	case ".", "..", string(filepath.Separator):
		return "", ErrInvalidFileName
	}
	return name, nil
}

var gzipMagic = []byte{0x1f, 0x8b}

// MaxInflatedSize is the maximum size, in bytes, of a
// decompressed svgz document.
var MaxInflatedSize int64 = 64 << 20

// ErrTooLarge is returned when decompressed content
// exceeds MaxInflatedSize.
var ErrTooLarge = errors.New("decompressed content too large")

// inflate decompresses svgz content, and returns other data unchanged.
func inflate(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	out, err := io.ReadAll(io.LimitReader(r, MaxInflatedSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > MaxInflatedSize {
		return nil, ErrTooLarge
	}
	return out, nil
}

// Load parses `data`, read from `path`, and builds its document.
// The document is named after the file name of `path`.
// Errors are returned as *FileError.
func Load(path string, data []byte, opts ...Option) (*Placed, error) {
	o := newOptions(opts)
	logger := svggeom.Logger()

	logger.Info("parsing SVG", "path", path)

	name, err := documentName(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	data, err = inflate(data)
	if err != nil {
		return nil, &FileError{Path: path, Err: fmt.Errorf("decompressing: %w", err)}
	}
	tree, err := svgtree.ParseBytes(data, o.parse...)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	doc := svggeom.NewDocument(name, tree, o.placement.Origin)
	out := &Placed{
		Document:  doc,
		Placement: o.placement,
		Offset:    o.placement.Offset(doc.Width, doc.Height),
	}

	logger.Info("parsing SVG done", "path", path, "paths", len(doc.Paths))
	return out, nil
}

// LoadFile reads and loads the file at `path`.
func LoadFile(path string, opts ...Option) (*Placed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return Load(path, data, opts...)
}

// LoadFiles loads `paths` concurrently, using at most `workers`
// goroutines (runtime.NumCPU() if workers <= 0).
// The results are in the order of `paths`. The first error
// cancels the remaining loads and is returned.
func LoadFiles(ctx context.Context, paths []string, workers int, opts ...Option) ([]*Placed, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([]*Placed, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			placed, err := LoadFile(path, opts...)
			if err != nil {
				return err
			}
			out[i] = placed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
