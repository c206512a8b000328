// Package config loads wing generation settings from YAML files.
//
// A config file carries up to three sections, all optional:
//
//	wing:                    # design parameters
//	  span: 12
//	  root_chord: 2.5
//	  spar_dist: [0.6, 0.4, 0.0]
//	mesh:
//	  cells: 250             # marching cubes resolution
//	log:
//	  level: info            # debug, info, warn, error
//	  format: text           # text or json
//
// Absent keys keep the built-in defaults, so an empty file describes the
// default wing. Parameter range checking happens in pkg/wing, not here;
// Parse only rejects structural problems (unknown keys, malformed values).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chazu/wingbox/pkg/wing"
)

// Config is the top-level on-disk configuration.
type Config struct {
	// Wing holds the design parameters for the generated model.
	Wing WingConfig `yaml:"wing"`

	// Mesh controls tessellation of the final solid.
	Mesh MeshConfig `yaml:"mesh"`

	// Log controls diagnostic output.
	Log LogConfig `yaml:"log"`
}

// WingConfig mirrors wing.DesignParameters field for field. Distribution
// weights are written as three-element sequences [a1, a2, a3].
type WingConfig struct {
	// Name labels the generated part.
	Name string `yaml:"name"`

	// Span is the full wingspan in model units.
	Span float64 `yaml:"span"`

	// RootChord and TipChord are the section chord lengths.
	RootChord float64 `yaml:"root_chord"`
	TipChord  float64 `yaml:"tip_chord"`

	// Sweep and Dihedral are in degrees.
	Sweep    float64 `yaml:"sweep"`
	Dihedral float64 `yaml:"dihedral"`

	// RootThickness and TipThickness are thickness-to-chord fractions.
	RootThickness float64 `yaml:"root_thickness"`
	TipThickness  float64 `yaml:"tip_thickness"`

	// RootCamber and TipCamber are camber-to-chord fractions; MaxCamberLoc
	// is the chordwise position of maximum camber.
	RootCamber   float64 `yaml:"root_camber"`
	TipCamber    float64 `yaml:"tip_camber"`
	MaxCamberLoc float64 `yaml:"max_camber_loc"`

	// Ribs and Spars are the structural member counts. Ribs includes the
	// two end caps.
	Ribs  int `yaml:"ribs"`
	Spars int `yaml:"spars"`

	// SparDist and RibDist are spacing distribution weights [a1, a2, a3].
	SparDist []float64 `yaml:"spar_dist"`
	RibDist  []float64 `yaml:"rib_dist"`

	// WebThickness is the spar/rib slab thickness; zero picks a default
	// from the root chord. ShellThickness is the skin wall thickness.
	WebThickness   float64 `yaml:"web_thickness"`
	ShellThickness float64 `yaml:"shell_thickness"`
}

// MeshConfig controls solid tessellation.
type MeshConfig struct {
	// Cells is the marching cubes grid resolution. Zero keeps the
	// kernel's default.
	Cells int `yaml:"cells"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data over the built-in defaults. Unknown keys
// are rejected so typos cannot silently fall back to a default wing.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		// An empty document is the default configuration.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// defaults returns a Config seeded from the default design parameters, so
// yaml decoding only overwrites the keys a file actually sets.
func defaults() *Config {
	p := wing.Default()
	return &Config{
		Wing: WingConfig{
			Name:           p.Name,
			Span:           p.Span,
			RootChord:      p.RootChord,
			TipChord:       p.TipChord,
			Sweep:          p.Sweep,
			Dihedral:       p.Dihedral,
			RootThickness:  p.RootThickness,
			TipThickness:   p.TipThickness,
			RootCamber:     p.RootCamber,
			TipCamber:      p.TipCamber,
			MaxCamberLoc:   p.MaxCamberLoc,
			Ribs:           p.NumRibs,
			Spars:          p.NumSpars,
			SparDist:       []float64{p.SparDist.A1, p.SparDist.A2, p.SparDist.A3},
			RibDist:        []float64{p.RibDist.A1, p.RibDist.A2, p.RibDist.A3},
			WebThickness:   p.WebThickness,
			ShellThickness: p.ShellThickness,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// validate checks the structural fields Parse is responsible for. Wing
// parameter ranges are checked later by wing.Validate so config files and
// scripts share one validator.
func validate(cfg *Config) error {
	if cfg.Mesh.Cells < 0 {
		return fmt.Errorf("mesh.cells must not be negative, got %d", cfg.Mesh.Cells)
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format)
	}
	return nil
}

// Parameters converts the wing section into design parameters.
func (c *Config) Parameters() (*wing.DesignParameters, error) {
	p := wing.Default()
	w := c.Wing

	p.Name = w.Name
	p.Span = w.Span
	p.RootChord = w.RootChord
	p.TipChord = w.TipChord
	p.Sweep = w.Sweep
	p.Dihedral = w.Dihedral
	p.RootThickness = w.RootThickness
	p.TipThickness = w.TipThickness
	p.RootCamber = w.RootCamber
	p.TipCamber = w.TipCamber
	p.MaxCamberLoc = w.MaxCamberLoc
	p.NumRibs = w.Ribs
	p.NumSpars = w.Spars
	p.WebThickness = w.WebThickness
	p.ShellThickness = w.ShellThickness

	sd, err := distribution("spar_dist", w.SparDist)
	if err != nil {
		return nil, err
	}
	p.SparDist = sd

	rd, err := distribution("rib_dist", w.RibDist)
	if err != nil {
		return nil, err
	}
	p.RibDist = rd

	return &p, nil
}

// distribution converts a weight sequence into a Distribution. An absent
// sequence keeps the linear default.
func distribution(field string, weights []float64) (wing.Distribution, error) {
	if len(weights) == 0 {
		return wing.Linear(), nil
	}
	if len(weights) != 3 {
		return wing.Distribution{}, fmt.Errorf("%s: expected 3 weights [a1, a2, a3], got %d", field, len(weights))
	}
	return wing.Distribution{A1: weights[0], A2: weights[1], A3: weights[2]}, nil
}
