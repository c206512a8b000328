package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chazu/wingbox/pkg/assembly"
	"github.com/chazu/wingbox/pkg/export"
	"github.com/chazu/wingbox/pkg/kernel/sdfx"
	"github.com/chazu/wingbox/pkg/wing"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	Params string // YAML config path
	Script string // wing script path
	Out    string // output directory
	Cells  int    // mesh resolution override
}

// GenerateResult summarizes a completed generation run.
type GenerateResult struct {
	Model     string   `json:"model"`
	RunID     string   `json:"run_id"`
	Entities  int      `json:"entities"`
	Triangles int      `json:"triangles"`
	TagsPath  string   `json:"tags_path"`
	MeshPath  string   `json:"mesh_path"`
	Warnings  []string `json:"warnings,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a wing solid and its analysis tags",
		Long: `Generate runs the full pipeline: airfoil sections, loft, spar/rib
structure, boolean assembly, tag propagation. It writes tags.json (the
per-entity tag report) and mesh.json (tessellated geometry) into the
output directory.

Parameters come from --params (YAML), --script (wing script), or the
built-in defaults when neither is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Errors are formatted by the command itself
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Params, "params", "", "wing parameters YAML file")
	cmd.Flags().StringVar(&opts.Script, "script", "", "wing script file")
	cmd.Flags().StringVar(&opts.Out, "out", ".", "output directory")
	cmd.Flags().IntVar(&opts.Cells, "cells", 0, "marching cubes resolution (0 = config or kernel default)")

	return cmd
}

func runGenerate(rootOpts *RootOptions, opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := &Formatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	p, cfg, err := loadParameters(opts.Params, opts.Script)
	if err != nil {
		_ = formatter.Error(loadErrorCode(err), err.Error(), nil)
		return err
	}

	// A config file may set log preferences; explicit flags win.
	logOpts := *rootOpts
	if cfg != nil {
		if !cmd.Root().PersistentFlags().Changed("log-level") && cfg.Log.Level != "" {
			logOpts.LogLevel = cfg.Log.Level
		}
		if !cmd.Root().PersistentFlags().Changed("log-format") && cfg.Log.Format != "" {
			logOpts.LogFormat = cfg.Log.Format
		}
	}
	logger := logOpts.Logger(cmd.ErrOrStderr())

	cells := opts.Cells
	if cells == 0 && cfg != nil {
		cells = cfg.Mesh.Cells
	}
	k := sdfx.NewWithResolution(cells)

	builder := assembly.NewBuilder(k, logger)
	res, err := builder.Build(p)
	if err != nil {
		code := "geometry"
		if wing.IsInvalidParameter(err) {
			code = "invalid_parameters"
		}
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitFailure, "generation failed", err)
	}

	if err := os.MkdirAll(opts.Out, 0o755); err != nil {
		_ = formatter.Error("io", err.Error(), nil)
		return WrapExitError(ExitCommandError, "create output directory", err)
	}

	export.AssignColors(res.Model)

	tagsPath := filepath.Join(opts.Out, "tags.json")
	if err := writeFile(tagsPath, func(f *os.File) error {
		return export.WriteTagReport(f, res.Model)
	}); err != nil {
		_ = formatter.Error("io", err.Error(), nil)
		return WrapExitError(ExitCommandError, "write tag report", err)
	}

	mesh, err := export.BuildMesh(k, res.Solid, p.Name)
	if err != nil {
		_ = formatter.Error("geometry", err.Error(), nil)
		return WrapExitError(ExitFailure, "tessellate solid", err)
	}

	meshPath := filepath.Join(opts.Out, "mesh.json")
	if err := writeFile(meshPath, func(f *os.File) error {
		return export.WriteMesh(f, mesh)
	}); err != nil {
		_ = formatter.Error("io", err.Error(), nil)
		return WrapExitError(ExitCommandError, "write mesh", err)
	}

	result := GenerateResult{
		Model:     p.Name,
		RunID:     res.RunID,
		Entities:  len(res.Model.Entities()),
		Triangles: len(mesh.Indices) / 3,
		TagsPath:  tagsPath,
		MeshPath:  meshPath,
		Warnings:  res.Warnings,
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "✓ %s generated\n", result.Model)
	fmt.Fprintf(w, "  run id:    %s\n", result.RunID)
	fmt.Fprintf(w, "  entities:  %d tagged\n", result.Entities)
	fmt.Fprintf(w, "  triangles: %d\n", result.Triangles)
	fmt.Fprintf(w, "  tags:      %s\n", result.TagsPath)
	fmt.Fprintf(w, "  mesh:      %s\n", result.MeshPath)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  warning:   %s\n", warning)
	}
	return nil
}

// writeFile creates path, hands it to write, and reports the first error
// including the close.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
