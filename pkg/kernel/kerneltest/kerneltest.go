// Package kerneltest provides a recording fake geometry kernel for
// pipeline tests. Solids carry bounding boxes only; boolean operations
// combine boxes so spatial assertions stay meaningful without real
// geometry. Every operation is recorded with its scalar arguments, so
// tests can assert on call order.
package kerneltest

import (
	"math"

	"github.com/chazu/wingbox/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*Kernel)(nil)
var _ kernel.Solid = (*fakeSolid)(nil)
var _ kernel.Curve = (*fakeCurve)(nil)

// Call records one kernel operation and its scalar arguments.
type Call struct {
	Op   string
	Args []float64
}

// Kernel is the recording fake. Fail maps an operation name to an error
// returned by that operation, for exercising fatal pipeline paths.
type Kernel struct {
	Calls []Call
	Fail  map[string]error
}

// New returns an empty recording kernel.
func New() *Kernel {
	return &Kernel{}
}

// Ops returns the recorded operation names in call order.
func (k *Kernel) Ops() []string {
	ops := make([]string, len(k.Calls))
	for i, c := range k.Calls {
		ops[i] = c.Op
	}
	return ops
}

// CallsTo returns the recorded calls with the given operation name, in order.
func (k *Kernel) CallsTo(op string) []Call {
	var calls []Call
	for _, c := range k.Calls {
		if c.Op == op {
			calls = append(calls, c)
		}
	}
	return calls
}

func (k *Kernel) record(op string, args ...float64) {
	k.Calls = append(k.Calls, Call{Op: op, Args: args})
}

type fakeCurve struct {
	min, max [2]float64
}

func (c *fakeCurve) Bounds() (min, max [2]float64) {
	return c.min, c.max
}

type fakeSolid struct {
	kernel.Handle
	min, max [3]float64
}

func (s *fakeSolid) BoundingBox() (min, max [3]float64) {
	return s.min, s.max
}

// AirfoilCurve returns a unit-chord curve whose vertical bounds follow the
// thickness and camber arguments.
func (k *Kernel) AirfoilCurve(thickness, camber, maxCamberLoc float64) (kernel.Curve, error) {
	k.record("airfoilCurve", thickness, camber, maxCamberLoc)
	if err := k.Fail["airfoilCurve"]; err != nil {
		return nil, err
	}
	return &fakeCurve{
		min: [2]float64{0, -thickness / 2},
		max: [2]float64{1, thickness/2 + camber},
	}, nil
}

// Loft returns a solid spanning the two placements. The bounding box is the
// hull of both placed sections.
func (k *Kernel) Loft(root, tip kernel.Curve, rootAt, tipAt kernel.Placement) (kernel.Solid, error) {
	k.record("loft", rootAt.Span, tipAt.Span)
	if err := k.Fail["loft"]; err != nil {
		return nil, err
	}

	s := &fakeSolid{
		min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for _, sec := range []struct {
		c kernel.Curve
		p kernel.Placement
	}{{root, rootAt}, {tip, tipAt}} {
		cmin, cmax := sec.c.Bounds()
		lo := [3]float64{
			sec.p.OffsetX + cmin[0]*sec.p.Chord,
			sec.p.Span,
			sec.p.OffsetZ + cmin[1]*sec.p.Chord,
		}
		hi := [3]float64{
			sec.p.OffsetX + cmax[0]*sec.p.Chord,
			sec.p.Span,
			sec.p.OffsetZ + cmax[1]*sec.p.Chord,
		}
		for i := 0; i < 3; i++ {
			s.min[i] = math.Min(s.min[i], lo[i])
			s.max[i] = math.Max(s.max[i], hi[i])
		}
	}
	return s, nil
}

// Box returns a solid with the exact requested bounds.
func (k *Kernel) Box(origin, extents kernel.Vec3) (kernel.Solid, error) {
	k.record("box", origin.X, origin.Y, origin.Z, extents.X, extents.Y, extents.Z)
	if err := k.Fail["box"]; err != nil {
		return nil, err
	}
	return &fakeSolid{
		min: [3]float64{origin.X, origin.Y, origin.Z},
		max: [3]float64{origin.X + extents.X, origin.Y + extents.Y, origin.Z + extents.Z},
	}, nil
}

// Union consumes both inputs and returns their bounding hull.
func (k *Kernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	if err := kernel.Claim("union", a, b); err != nil {
		return nil, err
	}
	k.record("union")
	if err := k.Fail["union"]; err != nil {
		return nil, err
	}
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	s := &fakeSolid{}
	for i := 0; i < 3; i++ {
		s.min[i] = math.Min(amin[i], bmin[i])
		s.max[i] = math.Max(amax[i], bmax[i])
	}
	return s, nil
}

// Intersect consumes both inputs and returns the box overlap. A disjoint
// pair collapses to an empty box at the origin.
func (k *Kernel) Intersect(a, b kernel.Solid) (kernel.Solid, error) {
	if err := kernel.Claim("intersect", a, b); err != nil {
		return nil, err
	}
	k.record("intersect")
	if err := k.Fail["intersect"]; err != nil {
		return nil, err
	}
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	s := &fakeSolid{}
	for i := 0; i < 3; i++ {
		s.min[i] = math.Max(amin[i], bmin[i])
		s.max[i] = math.Min(amax[i], bmax[i])
		if s.min[i] > s.max[i] {
			s.min[i], s.max[i] = 0, 0
		}
	}
	return s, nil
}

// Hollow consumes the input and keeps its bounds: an inward shell never
// grows the bounding box.
func (k *Kernel) Hollow(s kernel.Solid, thickness float64) (kernel.Solid, error) {
	if err := kernel.Claim("hollow", s); err != nil {
		return nil, err
	}
	k.record("hollow", thickness)
	if err := k.Fail["hollow"]; err != nil {
		return nil, err
	}
	min, max := s.BoundingBox()
	return &fakeSolid{min: min, max: max}, nil
}

// Fork consumes the input and returns two independent handles with the
// same bounds.
func (k *Kernel) Fork(s kernel.Solid) (kernel.Solid, kernel.Solid, error) {
	if err := kernel.Claim("fork", s); err != nil {
		return nil, nil, err
	}
	k.record("fork")
	if err := k.Fail["fork"]; err != nil {
		return nil, nil, err
	}
	min, max := s.BoundingBox()
	return &fakeSolid{min: min, max: max}, &fakeSolid{min: min, max: max}, nil
}

// Translate consumes the input and shifts its bounds.
func (k *Kernel) Translate(s kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	if err := kernel.Claim("translate", s); err != nil {
		return nil, err
	}
	k.record("translate", x, y, z)
	if err := k.Fail["translate"]; err != nil {
		return nil, err
	}
	min, max := s.BoundingBox()
	d := [3]float64{x, y, z}
	for i := 0; i < 3; i++ {
		min[i] += d[i]
		max[i] += d[i]
	}
	return &fakeSolid{min: min, max: max}, nil
}

// Rotate consumes the input. The fake keeps the bounds unchanged; tests
// that care about rotation assert on the recorded angles instead.
func (k *Kernel) Rotate(s kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	if err := kernel.Claim("rotate", s); err != nil {
		return nil, err
	}
	k.record("rotate", x, y, z)
	if err := k.Fail["rotate"]; err != nil {
		return nil, err
	}
	min, max := s.BoundingBox()
	return &fakeSolid{min: min, max: max}, nil
}

// ToMesh returns a fixed single-triangle mesh so export paths have
// geometry to serialize. It does not consume the solid.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	k.record("toMesh")
	if err := k.Fail["toMesh"]; err != nil {
		return nil, err
	}
	return &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}, nil
}
