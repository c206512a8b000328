package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chazu/wingbox/pkg/config"
	"github.com/chazu/wingbox/pkg/wing"
)

// TestParse_defaults verifies that an empty document yields the default
// wing, default log settings and the kernel's default mesh resolution.
func TestParse_defaults(t *testing.T) {
	cfg, err := config.Parse(nil)

	require.NoError(t, err)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, 0, cfg.Mesh.Cells)

	p, err := cfg.Parameters()
	require.NoError(t, err)
	require.Equal(t, wing.Default(), *p)
}

// TestParse_overrides verifies that every wing key maps onto its design
// parameter field.
func TestParse_overrides(t *testing.T) {
	src := `
wing:
  name: demo
  span: 12
  root_chord: 2.5
  tip_chord: 1.25
  sweep: 15
  dihedral: 3
  root_thickness: 0.14
  tip_thickness: 0.1
  root_camber: 0.03
  tip_camber: 0.01
  max_camber_loc: 0.35
  ribs: 5
  spars: 2
  spar_dist: [0.6, 0.4, 0.0]
  rib_dist: [1.0, 0.0, 0.0]
  web_thickness: 0.08
  shell_thickness: 0.04
mesh:
  cells: 250
log:
  level: debug
  format: json
`
	cfg, err := config.Parse([]byte(src))
	require.NoError(t, err)

	p, err := cfg.Parameters()
	require.NoError(t, err)

	require.Equal(t, "demo", p.Name)
	require.Equal(t, 12.0, p.Span)
	require.Equal(t, 2.5, p.RootChord)
	require.Equal(t, 1.25, p.TipChord)
	require.Equal(t, 15.0, p.Sweep)
	require.Equal(t, 3.0, p.Dihedral)
	require.Equal(t, 0.14, p.RootThickness)
	require.Equal(t, 0.1, p.TipThickness)
	require.Equal(t, 0.03, p.RootCamber)
	require.Equal(t, 0.01, p.TipCamber)
	require.Equal(t, 0.35, p.MaxCamberLoc)
	require.Equal(t, 5, p.NumRibs)
	require.Equal(t, 2, p.NumSpars)
	require.Equal(t, wing.Distribution{A1: 0.6, A2: 0.4}, p.SparDist)
	require.Equal(t, wing.Distribution{A1: 1}, p.RibDist)
	require.Equal(t, 0.08, p.WebThickness)
	require.Equal(t, 0.04, p.ShellThickness)

	require.Equal(t, 250, cfg.Mesh.Cells)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

// TestParse_partial verifies that keys absent from the file keep their
// defaults while present keys take effect.
func TestParse_partial(t *testing.T) {
	src := `
wing:
  span: 14
  ribs: 7
`
	cfg, err := config.Parse([]byte(src))
	require.NoError(t, err)

	p, err := cfg.Parameters()
	require.NoError(t, err)

	require.Equal(t, 14.0, p.Span)
	require.Equal(t, 7, p.NumRibs)
	require.Equal(t, "wing", p.Name)
	require.Equal(t, 2.0, p.RootChord)
	require.Equal(t, 1, p.NumSpars)
}

// TestParse_unknownKey verifies that typoed keys are rejected rather than
// silently ignored, and the error names the offending key.
func TestParse_unknownKey(t *testing.T) {
	src := `
wing:
  wingspan: 10
`
	_, err := config.Parse([]byte(src))

	require.Error(t, err)
	require.ErrorContains(t, err, "wingspan")
}

// TestParse_badLogLevel verifies the log level enum check.
func TestParse_badLogLevel(t *testing.T) {
	src := `
log:
  level: verbose
`
	_, err := config.Parse([]byte(src))

	require.Error(t, err)
	require.ErrorContains(t, err, "log.level")
}

// TestParse_badLogFormat verifies the log format enum check.
func TestParse_badLogFormat(t *testing.T) {
	src := `
log:
  format: xml
`
	_, err := config.Parse([]byte(src))

	require.Error(t, err)
	require.ErrorContains(t, err, "log.format")
}

// TestParse_negativeCells verifies that a negative mesh resolution is
// rejected at parse time.
func TestParse_negativeCells(t *testing.T) {
	src := `
mesh:
  cells: -5
`
	_, err := config.Parse([]byte(src))

	require.Error(t, err)
	require.ErrorContains(t, err, "mesh.cells")
}

// TestParameters_shortDistribution verifies that a distribution sequence
// with the wrong number of weights is rejected when mapping to parameters.
func TestParameters_shortDistribution(t *testing.T) {
	src := `
wing:
  spar_dist: [0.5, 0.5]
`
	cfg, err := config.Parse([]byte(src))
	require.NoError(t, err)

	_, err = cfg.Parameters()
	require.Error(t, err)
	require.ErrorContains(t, err, "spar_dist")
}

// TestParameters_rangeCheckingDeferred verifies that out-of-range values
// pass config loading and are caught by the shared wing validator instead.
func TestParameters_rangeCheckingDeferred(t *testing.T) {
	src := `
wing:
  span: -5
`
	cfg, err := config.Parse([]byte(src))
	require.NoError(t, err)

	p, err := cfg.Parameters()
	require.NoError(t, err)

	err = p.Validate()
	require.Error(t, err)
	require.True(t, wing.IsInvalidParameter(err))
}

// TestLoad_file verifies reading a config from disk.
func TestLoad_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wing.yaml")
	src := "wing:\n  span: 16\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	p, err := cfg.Parameters()
	require.NoError(t, err)
	require.Equal(t, 16.0, p.Span)
}

// TestLoad_missingFile verifies that a nonexistent path is reported.
func TestLoad_missingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	require.ErrorContains(t, err, "read config")
}
