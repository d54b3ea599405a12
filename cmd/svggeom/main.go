// Command svggeom prints the path descriptors of SVG files,
// and optionally renders PNG or PDF previews of them.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svggeom"
	"github.com/benoitkugler/svggeom/loader"
	"github.com/benoitkugler/svggeom/svgpdf"
	"github.com/benoitkugler/svggeom/svgraster"
	"github.com/benoitkugler/svggeom/svgtree"
)

func main() {
	configPath := flag.String("config", "", "TOML file with default settings")
	format := flag.String("format", "json", "output format: json or yaml")
	origin := flag.String("origin", "top-left", "document origin: top-left or center")
	tx := flag.Float64("tx", 0, "placement translation along X")
	ty := flag.Float64("ty", 0, "placement translation along Y")
	tz := flag.Float64("tz", 0, "placement translation along Z")
	sx := flag.Float64("sx", 1, "placement scale along X")
	sy := flag.Float64("sy", 1, "placement scale along Y")
	workers := flag.Int("workers", 0, "number of files loaded concurrently (0 = NumCPU)")
	strict := flag.Bool("strict", false, "fail on unsupported content")
	verbose := flag.Bool("v", false, "log debug information to stderr")
	pngDir := flag.String("png", "", "directory where PNG previews are written")
	pdfDir := flag.String("pdf", "", "directory where PDF previews are written")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: svggeom [flags] <file.svg>...")
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	svggeom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = readConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to read config: %v", err)
		}
	}

	// explicit flags override the config file
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "origin":
			if err := cfg.Placement.Origin.UnmarshalText([]byte(*origin)); err != nil {
				flagErr = err
			}
		case "tx":
			cfg.Placement.Translation.X = *tx
		case "ty":
			cfg.Placement.Translation.Y = *ty
		case "tz":
			cfg.Placement.Translation.Z = *tz
		case "sx":
			cfg.Placement.Scale.X = *sx
		case "sy":
			cfg.Placement.Scale.Y = *sy
		case "workers":
			cfg.Workers = *workers
		case "strict":
			cfg.Strict = *strict
		}
	})
	if flagErr != nil {
		log.Fatal(flagErr)
	}
	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}

	opts := []loader.Option{loader.WithPlacement(cfg.Placement)}
	if cfg.Strict {
		opts = append(opts, loader.WithErrorMode(svgtree.StrictErrorMode))
	} else if *verbose {
		opts = append(opts, loader.WithErrorMode(svgtree.WarnErrorMode))
	}

	placed, err := loader.LoadFiles(context.Background(), flag.Args(), cfg.Workers, opts...)
	if err != nil {
		log.Fatalf("Failed to load SVG: %v", err)
	}

	var out any = placed
	if len(placed) == 1 {
		out = placed[0]
	}
	if err := cfg.encode(os.Stdout, out); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}

	for _, p := range placed {
		if *pngDir != "" {
			if err := writePNG(p.Document, *pngDir); err != nil {
				log.Fatalf("Failed to write PNG preview: %v", err)
			}
		}
		if *pdfDir != "" {
			if err := writePDF(p.Document, *pdfDir); err != nil {
				log.Fatalf("Failed to write PDF preview: %v", err)
			}
		}
	}
}

func previewPath(doc *svggeom.Document, dir, ext string) string {
	name := strings.TrimSuffix(doc.File, filepath.Ext(doc.File))
	return filepath.Join(dir, name+ext)
}

func writePNG(doc *svggeom.Document, dir string) error {
	w, h := int(doc.Width+0.5), int(doc.Height+0.5)
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%s: empty document", doc.File)
	}
	img := svgraster.Rasterize(doc, w, h, color.Transparent)

	f, err := os.Create(previewPath(doc, dir, ".png"))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePDF(doc *svggeom.Document, dir string) error {
	f, err := os.Create(previewPath(doc, dir, ".pdf"))
	if err != nil {
		return err
	}
	if err := svgpdf.WritePDF(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
