package assembly

import (
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/chazu/wingbox/pkg/kernel/kerneltest"
	"github.com/chazu/wingbox/pkg/topo"
	"github.com/chazu/wingbox/pkg/wing"
)

func newTestBuilder(k *kerneltest.Kernel) *Builder {
	return NewBuilder(k, slog.New(slog.DiscardHandler))
}

func faceGroup(t *testing.T, m *topo.Model, key topo.Key) string {
	t.Helper()
	e := m.Get(key)
	if e == nil {
		t.Fatalf("entity %s not in model", key)
	}
	v, ok := e.Tags.Get(topo.TagGroup)
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

// ---------------------------------------------------------------------------
// Pipeline order and failure paths
// ---------------------------------------------------------------------------

func TestBuildOperationOrder(t *testing.T) {
	k := kerneltest.New()
	p := wing.Default() // three stations, one spar

	if _, err := newTestBuilder(k).Build(&p); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// One spar slab (box, rotate, translate), one interior rib slab (box),
	// one structure union, then the three assembly booleans.
	want := []string{
		"airfoilCurve", "airfoilCurve", "loft", "fork",
		"box", "rotate", "translate",
		"box", "union",
		"intersect", "hollow", "union",
	}
	got := k.Ops()
	if len(got) != len(want) {
		t.Fatalf("op count = %d, want %d\ngot: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBuildSlabCounts(t *testing.T) {
	k := kerneltest.New()
	p := wing.Default()
	p.NumRibs = 10
	p.NumSpars = 2

	if _, err := newTestBuilder(k).Build(&p); err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := len(k.CallsTo("box")); got != 10 {
		t.Errorf("box calls = %d, want 10 (2 spars + 8 interior ribs)", got)
	}
	if got := len(k.CallsTo("rotate")); got != 2 {
		t.Errorf("rotate calls = %d, want 2 (one per spar)", got)
	}
	// 9 structure joins plus the final shell union.
	if got := len(k.CallsTo("union")); got != 10 {
		t.Errorf("union calls = %d, want 10", got)
	}

	// Spar slabs are built before any rib slab: the spar boxes are centered
	// at the origin, the rib boxes sit at their spanwise stations.
	boxes := k.CallsTo("box")
	for i := 0; i < 2; i++ {
		if boxes[i].Args[1] >= 0 {
			t.Errorf("box[%d] is not a spar slab (origin.Y = %g)", i, boxes[i].Args[1])
		}
	}
	for i := 2; i < 10; i++ {
		if boxes[i].Args[1] < 0 {
			t.Errorf("box[%d] is not a rib slab (origin.Y = %g)", i, boxes[i].Args[1])
		}
	}
}

func TestBuildSparSlabPlacement(t *testing.T) {
	k := kerneltest.New()
	p := wing.Default()

	if _, err := newTestBuilder(k).Build(&p); err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Chords 2 and 1 put the mid-chord spar at x=1 on the root and x=0.5 on
	// the tip; the web midpoint sits halfway along the half-span.
	rot := k.CallsTo("rotate")[0]
	wantAngle := -math.Atan2(0.5-1.0, 5) * 180 / math.Pi
	if math.Abs(rot.Args[2]-wantAngle) > 1e-9 {
		t.Errorf("spar tilt = %g degrees, want %g", rot.Args[2], wantAngle)
	}

	tr := k.CallsTo("translate")[0]
	if math.Abs(tr.Args[0]-0.75) > 1e-9 || math.Abs(tr.Args[1]-2.5) > 1e-9 {
		t.Errorf("spar midpoint = (%g, %g), want (0.75, 2.5)", tr.Args[0], tr.Args[1])
	}
}

func TestBuildRejectsInvalidParameters(t *testing.T) {
	k := kerneltest.New()
	p := wing.Default()
	p.SparDist = wing.Distribution{A1: 0.5, A2: 0.5, A3: 0.5} // sums to 1.5

	_, err := newTestBuilder(k).Build(&p)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !wing.IsInvalidParameter(err) {
		t.Errorf("error %v should be an InvalidParameterError", err)
	}
	if IsGeometryFailure(err) {
		t.Errorf("parameter rejection must not be a geometry failure: %v", err)
	}
	if len(k.Calls) != 0 {
		t.Errorf("kernel was called %d times before validation failed", len(k.Calls))
	}
}

func TestBuildLoftFailureIsFatal(t *testing.T) {
	k := kerneltest.New()
	k.Fail = map[string]error{"loft": errors.New("self-intersecting loft")}
	p := wing.Default()

	res, err := newTestBuilder(k).Build(&p)
	if res != nil {
		t.Fatal("a failed build must not return a partial result")
	}
	var ge *GeometryError
	if !errors.As(err, &ge) {
		t.Fatalf("error %v should be a GeometryError", err)
	}
	if ge.Stage != "loft" || ge.Op != "loft" {
		t.Errorf("failure located at %s/%s, want loft/loft", ge.Stage, ge.Op)
	}
	if last := k.Ops()[len(k.Ops())-1]; last != "loft" {
		t.Errorf("pipeline continued past the failed loft: last op %s", last)
	}
}

func TestBuildHollowFailureIsFatal(t *testing.T) {
	k := kerneltest.New()
	k.Fail = map[string]error{"hollow": errors.New("open shell")}
	p := wing.Default()

	_, err := newTestBuilder(k).Build(&p)
	var ge *GeometryError
	if !errors.As(err, &ge) {
		t.Fatalf("error %v should be a GeometryError", err)
	}
	if ge.Stage != "assemble" || ge.Op != "hollow" {
		t.Errorf("failure located at %s/%s, want assemble/hollow", ge.Stage, ge.Op)
	}
}

func TestBuildShellOnlyWing(t *testing.T) {
	k := kerneltest.New()
	p := wing.Default()
	p.NumRibs = 2
	p.NumSpars = 0

	res, err := newTestBuilder(k).Build(&p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// No slabs to trim: the assembly reduces to the hollowed loft.
	want := []string{"airfoilCurve", "airfoilCurve", "loft", "fork", "hollow"}
	got := k.Ops()
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// Both skin panels span the caps, so the single panel rule claims them.
	for _, side := range []topo.Side{topo.Upper, topo.Lower} {
		panel := topo.SkinFace(side, 0, 5)
		if got := faceGroup(t, res.Model, panel); got != "OML1" {
			t.Errorf("%s group = %q, want OML1", panel, got)
		}
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

// ---------------------------------------------------------------------------
// End-to-end tagging
// ---------------------------------------------------------------------------

func TestBuildEndToEnd(t *testing.T) {
	k := kerneltest.New()
	p := wing.Default() // nribs=3, nspars=1, span=10, chords 2 and 1

	res, err := newTestBuilder(k).Build(&p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Solid == nil {
		t.Fatal("build returned no solid")
	}
	if res.RunID == "" {
		t.Error("build returned no run id")
	}

	m := res.Model

	// Construction groups.
	wantGroups := map[topo.Key]string{
		topo.CapFace(0):                   "rib1",
		topo.RibFace(2.5):                 "rib2",
		topo.CapFace(5):                   "rib3",
		topo.SparFace(1.0, 0.5):           "spar1",
		topo.SkinFace(topo.Upper, 0, 2.5): "OML1",
		topo.SkinFace(topo.Lower, 0, 2.5): "OML1",
		topo.SkinFace(topo.Upper, 2.5, 5): "OML2",
		topo.SkinFace(topo.Lower, 2.5, 5): "OML2",
	}
	for key, want := range wantGroups {
		if got := faceGroup(t, m, key); got != want {
			t.Errorf("%s group = %q, want %q", key, got, want)
		}
	}

	// The root constraint covers exactly the root cap and its boundary.
	constrained := 0
	for _, e := range m.Entities() {
		if e.Tags.Has(topo.TagConstraint) {
			constrained++
		}
	}
	if constrained != 6 {
		t.Errorf("constraint-tagged entities = %d, want 6 (face + 3 edges + 2 vertices)", constrained)
	}
	if e := m.Get(topo.CapFace(0)); !e.Tags.Has(topo.TagConstraint) {
		t.Error("root cap face missing constraint tag")
	}

	// Model-level coupling tag for the downstream consumers.
	body := m.Get(topo.BodyKey("wing"))
	if body == nil {
		t.Fatal("body record missing")
	}
	if v, ok := body.Tags.Get(topo.TagCoupling); !ok {
		t.Error("body missing coupling tag")
	} else if s, _ := v.AsString(); s != "tessellation;structure" {
		t.Errorf("coupling = %q, want tessellation;structure", s)
	}

	if len(res.Outcomes) != 3 {
		t.Errorf("rule outcomes = %d, want 3", len(res.Outcomes))
	}
	if len(res.Warnings) != 0 {
		t.Errorf("clean build produced warnings: %v", res.Warnings)
	}
}

func TestBuildSweptSparCrossings(t *testing.T) {
	p := wing.Default()
	p.Sweep = 45 // tip offset equals the half-span

	m := buildTopology(&p)

	// The mid-chord spar runs from x=1 at the root to x=5.5 at the swept
	// tip; its crossing at mid-span interpolates linearly.
	want := topo.SparEdge(3.25, 2.5)
	if m.Get(want) == nil {
		t.Errorf("swept spar crossing %s missing from model", want)
	}
}

func TestWebThicknessDefault(t *testing.T) {
	p := wing.Default()
	if got := webThickness(&p); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("default web thickness = %g, want 0.1 (5%% of root chord)", got)
	}
	p.WebThickness = 0.3
	if got := webThickness(&p); got != 0.3 {
		t.Errorf("explicit web thickness = %g, want 0.3", got)
	}
}
