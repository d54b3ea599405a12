package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/benoitkugler/svggeom"
)

// config is read from an optional TOML file; command line flags
// take precedence over it.
type config struct {
	Placement svggeom.Placement `toml:"placement"`
	Format    string            `toml:"format"`  // json or yaml
	Workers   int               `toml:"workers"` // 0 for one per CPU
	Strict    bool              `toml:"strict"`
}

func defaultConfig() config {
	return config{Placement: svggeom.DefaultPlacement(), Format: "json"}
}

// readConfig reads the TOML file at `path`, on top of the default values.
func readConfig(path string) (config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	return decodeConfig(f)
}

func decodeConfig(r io.Reader) (config, error) {
	cfg := defaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg config) validate() error {
	switch cfg.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (expected json or yaml)", cfg.Format)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("invalid number of workers %d", cfg.Workers)
	}
	return nil
}

// encode writes `v` to `w` using the configured format.
func (cfg config) encode(w io.Writer, v any) error {
	switch cfg.Format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
}
