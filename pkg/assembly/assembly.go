// Package assembly orchestrates the wing build: the two section curves are
// lofted into the outer mold line, spar and rib slabs are unioned into the
// internal structure, and the two are combined into one hollow tagged solid.
// The boolean order is fixed; topological entity identity downstream
// depends on it.
package assembly

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chazu/wingbox/pkg/kernel"
	"github.com/chazu/wingbox/pkg/rules"
	"github.com/chazu/wingbox/pkg/topo"
	"github.com/chazu/wingbox/pkg/wing"
)

// GeometryError reports a kernel failure during the build. It is fatal: the
// run aborts and no partial solid is returned.
type GeometryError struct {
	Stage string // pipeline stage: sections, loft, structure, assemble
	Op    string // kernel operation that failed
	Err   error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: kernel %s failed: %v", e.Stage, e.Op, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

// IsGeometryFailure reports whether err wraps a GeometryError.
func IsGeometryFailure(err error) bool {
	var e *GeometryError
	return errors.As(err, &e)
}

// Result is the sole artifact of a build: the final solid, its tagged
// topology model, and the diagnostics gathered along the way.
type Result struct {
	Solid    kernel.Solid
	Model    *topo.Model
	RunID    string
	Outcomes []rules.Outcome
	Warnings []string
}

// Builder runs the assembly pipeline against one geometry kernel. A builder
// may run any number of builds; no state carries over between them.
type Builder struct {
	kernel kernel.Kernel
	log    *slog.Logger
}

// NewBuilder returns a builder using the given kernel. A nil logger means
// slog.Default().
func NewBuilder(k kernel.Kernel, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{kernel: k, log: log}
}

// Build validates the parameters and runs the full pipeline: sections,
// loft, internal structure, boolean assembly, then tagging. Parameter
// errors are reported before any kernel call; kernel failures abort the
// run with a GeometryError.
func (b *Builder) Build(p *wing.DesignParameters) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	start := time.Now()
	log := b.log.With(slog.String("run_id", runID), slog.String("model", p.Name))
	log.Info("build starting",
		slog.Int("nribs", p.NumRibs),
		slog.Int("nspars", p.NumSpars))

	root, tip, err := wing.Sections(b.kernel, p)
	if err != nil {
		return nil, &GeometryError{Stage: "sections", Op: "airfoilCurve", Err: err}
	}

	oml, err := b.kernel.Loft(root.Curve, tip.Curve, root.At, tip.At)
	if err != nil {
		return nil, &GeometryError{Stage: "loft", Op: "loft", Err: err}
	}

	// Both the envelope intersection and the hollow consume an outer mold
	// line, so the loft is forked into two independent copies up front.
	trimCopy, shellCopy, err := b.kernel.Fork(oml)
	if err != nil {
		return nil, &GeometryError{Stage: "loft", Op: "fork", Err: err}
	}
	envMin, envMax := trimCopy.BoundingBox()
	log.Info("outer mold line lofted",
		slog.Float64("span", envMax[1]-envMin[1]),
		slog.Float64("chord", envMax[0]-envMin[0]))

	structure, err := b.buildStructure(p, envMin, envMax)
	if err != nil {
		return nil, err
	}

	final, err := b.assemble(p, structure, trimCopy, shellCopy)
	if err != nil {
		return nil, err
	}

	model := buildTopology(p)

	outcomes := rules.Apply(model, rules.Default(p.NumRibs))
	for _, o := range outcomes {
		log.Info("rule applied",
			slog.String("rule", o.Rule),
			slog.Int("matched", o.Matched))
	}

	var warnings []string
	for _, inc := range rules.Audit(model) {
		log.Warn("tag inconsistency",
			slog.String("entity", string(inc.Key)),
			slog.String("reason", inc.Message))
		warnings = append(warnings, inc.String())
	}
	for _, f := range topo.Validate(model) {
		if f.Severity == topo.SeverityError {
			log.Error("topology inconsistency", slog.String("finding", f.Error()))
		} else {
			log.Warn("topology finding", slog.String("finding", f.Error()))
		}
		warnings = append(warnings, f.Error())
	}

	log.Info("build complete",
		slog.Int("faces", len(model.OfKind(topo.KindFace))),
		slog.Int("edges", len(model.OfKind(topo.KindEdge))),
		slog.Int("vertices", len(model.OfKind(topo.KindVertex))),
		slog.Duration("elapsed", time.Since(start)))

	return &Result{
		Solid:    final,
		Model:    model,
		RunID:    runID,
		Outcomes: outcomes,
		Warnings: warnings,
	}, nil
}

// assemble performs the three ordered boolean steps: clip the internal
// structure to the envelope, extract the skin shell, union the two. A nil
// structure (no spars, no interior ribs) leaves just the shell.
func (b *Builder) assemble(p *wing.DesignParameters, structure, trimCopy, shellCopy kernel.Solid) (kernel.Solid, error) {
	if structure == nil {
		shell, err := b.kernel.Hollow(shellCopy, p.ShellThickness)
		if err != nil {
			return nil, &GeometryError{Stage: "assemble", Op: "hollow", Err: err}
		}
		return shell, nil
	}

	trimmed, err := b.kernel.Intersect(structure, trimCopy)
	if err != nil {
		return nil, &GeometryError{Stage: "assemble", Op: "intersect", Err: err}
	}

	shell, err := b.kernel.Hollow(shellCopy, p.ShellThickness)
	if err != nil {
		return nil, &GeometryError{Stage: "assemble", Op: "hollow", Err: err}
	}

	final, err := b.kernel.Union(trimmed, shell)
	if err != nil {
		return nil, &GeometryError{Stage: "assemble", Op: "union", Err: err}
	}
	return final, nil
}
