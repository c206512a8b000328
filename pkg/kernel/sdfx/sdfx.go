// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/wingbox/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*SdfxKernel)(nil)
var _ kernel.Solid = (*sdfxSolid)(nil)
var _ kernel.Curve = (*sdfxCurve)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// defaultShellFraction sets the wall thickness Hollow uses when the caller
// asks for a minimal (zero-thickness) shell, as a fraction of the solid's
// bounding box diagonal.
const defaultShellFraction = 0.02

// profileSamples is the number of chordwise stations sampled per airfoil
// surface. The closed polygon has twice this many points.
const profileSamples = 80

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	kernel.Handle
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// sdfxCurve wraps an sdf.SDF2 profile to implement kernel.Curve.
type sdfxCurve struct {
	s sdf.SDF2
}

// Bounds returns the axis-aligned bounds of the profile in its plane.
func (c *sdfxCurve) Bounds() (min, max [2]float64) {
	bb := c.s.BoundingBox()
	return [2]float64{bb.Min.X, bb.Min.Y}, [2]float64{bb.Max.X, bb.Max.Y}
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel with the default mesh resolution.
func New() *SdfxKernel {
	return &SdfxKernel{cells: defaultMeshCells}
}

// NewWithResolution returns a kernel whose ToMesh uses the given marching
// cubes cell count. Non-positive values fall back to the default.
func NewWithResolution(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a fresh kernel.Solid handle from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// unwrapCurve extracts the underlying sdf.SDF2 from a kernel.Curve.
func unwrapCurve(c kernel.Curve) sdf.SDF2 {
	return c.(*sdfxCurve).s
}

// AirfoilCurve builds a closed unit-chord airfoil profile from thickness,
// camber and maximum-camber location (all chord fractions). The profile
// uses the four-digit thickness distribution with a closed trailing edge
// around a two-parabola camber line.
func (k *SdfxKernel) AirfoilCurve(thickness, camber, maxCamberLoc float64) (kernel.Curve, error) {
	if thickness <= 0 || thickness >= 1 {
		return nil, fmt.Errorf("sdfx: airfoil: thickness %g outside (0, 1)", thickness)
	}
	if camber < 0 || camber >= 0.5 {
		return nil, fmt.Errorf("sdfx: airfoil: camber %g outside [0, 0.5)", camber)
	}
	if camber > 0 && (maxCamberLoc <= 0 || maxCamberLoc >= 1) {
		return nil, fmt.Errorf("sdfx: airfoil: max-camber location %g outside (0, 1)", maxCamberLoc)
	}

	pts := profilePoints(thickness, camber, maxCamberLoc, profileSamples)
	poly, err := sdf.Polygon2D(pts)
	if err != nil {
		return nil, fmt.Errorf("sdfx: airfoil polygon: %w", err)
	}
	return &sdfxCurve{s: poly}, nil
}

// profilePoints samples the closed profile polygon counterclockwise:
// trailing edge, upper surface to the leading edge, lower surface back.
// Cosine spacing clusters stations at both edges.
func profilePoints(thickness, camber, maxCamberLoc float64, n int) []v2.Vec {
	station := func(i int) float64 {
		return 0.5 * (1 + math.Cos(float64(i)*math.Pi/float64(n)))
	}

	pts := make([]v2.Vec, 0, 2*n)
	for i := 0; i <= n; i++ {
		x := station(i)
		pts = append(pts, v2.Vec{X: x, Y: camberAt(x, camber, maxCamberLoc) + halfThickness(x, thickness)})
	}
	// Shared leading/trailing edge points are skipped on the way back.
	for i := n - 1; i >= 1; i-- {
		x := station(i)
		pts = append(pts, v2.Vec{X: x, Y: camberAt(x, camber, maxCamberLoc) - halfThickness(x, thickness)})
	}
	return pts
}

// halfThickness is the four-digit thickness distribution at chord fraction
// x, with the closed-trailing-edge x^4 coefficient.
func halfThickness(x, thickness float64) float64 {
	return 5 * thickness * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1036*x*x*x*x)
}

// camberAt is the two-parabola mean camber line at chord fraction x.
func camberAt(x, camber, p float64) float64 {
	if camber == 0 {
		return 0
	}
	if x < p {
		return camber / (p * p) * (2*p*x - x*x)
	}
	return camber / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*x - x*x)
}

// placeCurve scales a unit-chord profile and offsets it within its section
// plane: profile x carries the chordwise (sweep) offset, profile y the
// vertical (dihedral) offset.
func placeCurve(c kernel.Curve, p kernel.Placement) sdf.SDF2 {
	m := sdf.Translate2d(v2.Vec{X: p.OffsetX, Y: p.OffsetZ}).Mul(
		sdf.Scale2d(v2.Vec{X: p.Chord, Y: p.Chord}))
	return sdf.Transform2D(unwrapCurve(c), m)
}

// Loft sweeps a straight ruled solid between the two placed sections.
// sdf.Loft3D interpolates along local Z from its first section to its
// second, so the tip goes in first and a quarter turn about X plus a
// spanwise shift puts the root at y=rootAt.Span and the tip at
// y=tipAt.Span with the profile upright in XZ.
func (k *SdfxKernel) Loft(root, tip kernel.Curve, rootAt, tipAt kernel.Placement) (kernel.Solid, error) {
	h := tipAt.Span - rootAt.Span
	if h <= 0 {
		return nil, fmt.Errorf("sdfx: loft: tip station %g not beyond root station %g", tipAt.Span, rootAt.Span)
	}
	if rootAt.Chord <= 0 || tipAt.Chord <= 0 {
		return nil, fmt.Errorf("sdfx: loft: non-positive chord scale")
	}

	loft, err := sdf.Loft3D(placeCurve(tip, tipAt), placeCurve(root, rootAt), h, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: loft: %w", err)
	}

	m := sdf.Translate3d(v3.Vec{Y: rootAt.Span + h/2}).Mul(sdf.RotateX(90 * math.Pi / 180))
	return wrap(sdf.Transform3D(loft, m)), nil
}

// Box creates a box with the given extents and its minimum corner at
// origin. sdf.Box3D centers the box, so it is shifted by half-extents.
func (k *SdfxKernel) Box(origin, extents kernel.Vec3) (kernel.Solid, error) {
	s, err := sdf.Box3D(v3.Vec{X: extents.X, Y: extents.Y, Z: extents.Z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box: %w", err)
	}
	m := sdf.Translate3d(v3.Vec{
		X: origin.X + extents.X/2,
		Y: origin.Y + extents.Y/2,
		Z: origin.Z + extents.Z/2,
	})
	return wrap(sdf.Transform3D(s, m)), nil
}

// Union returns the union of two solids, consuming both.
func (k *SdfxKernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	if err := kernel.Claim("union", a, b); err != nil {
		return nil, err
	}
	return wrap(sdf.Union3D(unwrap(a), unwrap(b))), nil
}

// Intersect returns the intersection of two solids, consuming both.
func (k *SdfxKernel) Intersect(a, b kernel.Solid) (kernel.Solid, error) {
	if err := kernel.Claim("intersect", a, b); err != nil {
		return nil, err
	}
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b))), nil
}

// Hollow carves out the interior of a solid, leaving a wall of the given
// thickness whose outer surface coincides with the original boundary. The
// wall grows strictly inward, so the result never exceeds the input
// volume and outward-facing orientation is preserved. Thickness 0 selects
// a minimal wall derived from the solid's extents.
func (k *SdfxKernel) Hollow(s kernel.Solid, thickness float64) (kernel.Solid, error) {
	if err := kernel.Claim("hollow", s); err != nil {
		return nil, err
	}
	if thickness < 0 {
		return nil, fmt.Errorf("sdfx: hollow: negative thickness %g", thickness)
	}

	s3 := unwrap(s)
	if thickness == 0 {
		bb := s3.BoundingBox()
		d := bb.Max.Sub(bb.Min)
		thickness = defaultShellFraction * math.Sqrt(d.X*d.X+d.Y*d.Y+d.Z*d.Z)
	}

	inner := sdf.Offset3D(s3, -thickness)
	return wrap(sdf.Difference3D(s3, inner)), nil
}

// Fork consumes a solid and returns two independent handles to the same
// geometry. SDF trees are immutable, so the copies can share the tree.
func (k *SdfxKernel) Fork(s kernel.Solid) (kernel.Solid, kernel.Solid, error) {
	if err := kernel.Claim("fork", s); err != nil {
		return nil, nil, err
	}
	s3 := unwrap(s)
	return wrap(s3), wrap(s3), nil
}

// Translate moves a solid by (x, y, z), consuming it.
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	if err := kernel.Claim("translate", s); err != nil {
		return nil, err
	}
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m)), nil
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes,
// consuming it.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	if err := kernel.Claim("rotate", s); err != nil {
		return nil, err
	}
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m)), nil
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
