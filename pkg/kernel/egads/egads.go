//go:build egads

// Package egads provides a CGo-based geometry kernel binding to EGADS, the
// boundary-representation geometry engine from the Engineering Sketch Pad
// (https://acdl.mit.edu/ESP/). EGADS builds true B-rep solids, so lofts and
// booleans carry exact face and edge topology rather than sampled surfaces.
//
// This package requires the EGADS library and headers to be installed.
// Build with: go build -tags=egads
package egads

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -legads

#include <stdlib.h>
#include <egads.h>
*/
import "C"

import (
	"fmt"
	"math"
	"runtime"
	"unsafe"

	"github.com/chazu/wingbox/pkg/kernel"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*EgadsKernel)(nil)
var _ kernel.Solid = (*egadsSolid)(nil)
var _ kernel.Curve = (*egadsCurve)(nil)

const profileSamples = 80

// egadsSolid wraps an EGADS body object and implements kernel.Solid.
type egadsSolid struct {
	kernel.Handle
	body C.ego
}

// BoundingBox returns the axis-aligned bounding box of the solid.
func (s *egadsSolid) BoundingBox() (min, max [3]float64) {
	var box [6]C.double
	if status := C.EG_getBoundingBox(s.body, &box[0]); status != C.EGADS_SUCCESS {
		return min, max
	}
	for i := 0; i < 3; i++ {
		min[i] = float64(box[i])
		max[i] = float64(box[i+3])
	}
	return min, max
}

// newSolid wraps an EGADS body with a Go-side finalizer so the underlying
// object is released when the handle is collected.
func newSolid(body C.ego) *egadsSolid {
	s := &egadsSolid{body: body}
	runtime.SetFinalizer(s, func(s *egadsSolid) {
		if s.body != nil {
			C.EG_deleteObject(s.body)
			s.body = nil
		}
	})
	return s
}

// egadsCurve holds a sampled unit-chord section outline. Loft fits the
// periodic B-spline through these points once the placement is known.
type egadsCurve struct {
	pts      [][2]float64
	min, max [2]float64
}

func (c *egadsCurve) Bounds() (min, max [2]float64) {
	return c.min, c.max
}

// EgadsKernel implements kernel.Kernel using the EGADS library.
type EgadsKernel struct {
	ctx C.ego
}

// New opens an EGADS context. The context owns all intermediate geometry and
// is closed when the kernel is collected.
func New() (kernel.Kernel, error) {
	k := &EgadsKernel{}
	if status := C.EG_open(&k.ctx); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_open", status)
	}
	runtime.SetFinalizer(k, func(k *EgadsKernel) {
		if k.ctx != nil {
			C.EG_close(k.ctx)
			k.ctx = nil
		}
	})
	return k, nil
}

func egErr(op string, status C.int) error {
	return fmt.Errorf("egads: %s returned status %d", op, int(status))
}

// AirfoilCurve samples a four-digit-style airfoil outline with unit chord.
// thickness and camber are fractions of chord, maxCamberLoc the chordwise
// position of maximum camber.
func (k *EgadsKernel) AirfoilCurve(thickness, camber, maxCamberLoc float64) (kernel.Curve, error) {
	if thickness <= 0 || thickness >= 1 {
		return nil, fmt.Errorf("egads: airfoil thickness %g out of range (0, 1)", thickness)
	}
	if camber < 0 || camber >= 0.5 {
		return nil, fmt.Errorf("egads: airfoil camber %g out of range [0, 0.5)", camber)
	}
	if camber > 0 && (maxCamberLoc <= 0 || maxCamberLoc >= 1) {
		return nil, fmt.Errorf("egads: max camber location %g out of range (0, 1)", maxCamberLoc)
	}

	pts := profilePoints(thickness, camber, maxCamberLoc, profileSamples/2)
	c := &egadsCurve{pts: pts}
	c.min = [2]float64{math.Inf(1), math.Inf(1)}
	c.max = [2]float64{math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		c.min[0] = math.Min(c.min[0], p[0])
		c.min[1] = math.Min(c.min[1], p[1])
		c.max[0] = math.Max(c.max[0], p[0])
		c.max[1] = math.Max(c.max[1], p[1])
	}
	return c, nil
}

// sectionLoop fits a closed B-spline through the placed outline points and
// wraps it into a one-edge closed loop suitable for ruling.
func (k *EgadsKernel) sectionLoop(c *egadsCurve, at kernel.Placement) (C.ego, error) {
	n := len(c.pts)
	xyz := make([]C.double, 3*n)
	for i, p := range c.pts {
		xyz[3*i+0] = C.double(p[0]*at.Chord + at.OffsetX)
		xyz[3*i+1] = C.double(at.Span)
		xyz[3*i+2] = C.double(p[1]*at.Chord + at.OffsetZ)
	}

	// Negative point count requests a periodic (closed) fit.
	sizes := [2]C.int{C.int(-n), 0}
	var bspline C.ego
	if status := C.EG_approximate(k.ctx, 3, 1.0e-8, &sizes[0], &xyz[0], &bspline); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_approximate", status)
	}

	var trange [2]C.double
	var periodic C.int
	if status := C.EG_getRange(bspline, &trange[0], &periodic); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_getRange", status)
	}

	var results [18]C.double
	if status := C.EG_evaluate(bspline, &trange[0], &results[0]); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_evaluate", status)
	}
	var node C.ego
	if status := C.EG_makeTopology(k.ctx, nil, C.NODE, 0, &results[0], 0, nil, nil, &node); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_makeTopology(node)", status)
	}

	var edge C.ego
	if status := C.EG_makeTopology(k.ctx, bspline, C.EDGE, C.ONENODE, &trange[0], 1, &node, nil, &edge); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_makeTopology(edge)", status)
	}

	sense := C.int(C.SFORWARD)
	var loop C.ego
	if status := C.EG_makeTopology(k.ctx, nil, C.LOOP, C.CLOSED, nil, 1, &edge, &sense, &loop); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_makeTopology(loop)", status)
	}
	// Intermediate geometry stays owned by the context and is released on
	// close.
	return loop, nil
}

// Loft rules the two placed sections into a solid body.
func (k *EgadsKernel) Loft(root, tip kernel.Curve, rootAt, tipAt kernel.Placement) (kernel.Solid, error) {
	rc, ok := root.(*egadsCurve)
	if !ok {
		return nil, fmt.Errorf("egads: root curve is %T, not an egads curve", root)
	}
	tc, ok := tip.(*egadsCurve)
	if !ok {
		return nil, fmt.Errorf("egads: tip curve is %T, not an egads curve", tip)
	}
	if tipAt.Span <= rootAt.Span {
		return nil, fmt.Errorf("egads: tip span %g must exceed root span %g", tipAt.Span, rootAt.Span)
	}
	if rootAt.Chord <= 0 || tipAt.Chord <= 0 {
		return nil, fmt.Errorf("egads: chord scales must be positive, got root %g tip %g", rootAt.Chord, tipAt.Chord)
	}

	rootLoop, err := k.sectionLoop(rc, rootAt)
	if err != nil {
		return nil, err
	}
	tipLoop, err := k.sectionLoop(tc, tipAt)
	if err != nil {
		return nil, err
	}

	secs := [2]C.ego{rootLoop, tipLoop}
	var body C.ego
	if status := C.EG_ruled(2, &secs[0], &body); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_ruled", status)
	}
	return newSolid(body), nil
}

// Box creates an axis-aligned box with its minimum corner at origin.
func (k *EgadsKernel) Box(origin, extents kernel.Vec3) (kernel.Solid, error) {
	if extents.X <= 0 || extents.Y <= 0 || extents.Z <= 0 {
		return nil, fmt.Errorf("egads: box extents must be positive, got (%g, %g, %g)",
			extents.X, extents.Y, extents.Z)
	}
	data := [6]C.double{
		C.double(origin.X), C.double(origin.Y), C.double(origin.Z),
		C.double(extents.X), C.double(extents.Y), C.double(extents.Z),
	}
	var body C.ego
	if status := C.EG_makeSolidBody(k.ctx, C.BOX, &data[0], &body); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_makeSolidBody(box)", status)
	}
	return newSolid(body), nil
}

// resultBody extracts the single body from a boolean result model.
func resultBody(model C.ego) (C.ego, error) {
	var geom C.ego
	var oclass, mtype, nbody C.int
	var limits [4]C.double
	var bodies *C.ego
	var senses *C.int
	if status := C.EG_getTopology(model, &geom, &oclass, &mtype, &limits[0], &nbody, &bodies, &senses); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_getTopology", status)
	}
	if nbody < 1 {
		return nil, fmt.Errorf("egads: boolean produced an empty model")
	}
	first := unsafe.Slice(bodies, int(nbody))[0]

	// Copy the body out so the containing model can be released.
	var body C.ego
	if status := C.EG_copyObject(first, nil, &body); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_copyObject", status)
	}
	C.EG_deleteObject(model)
	return body, nil
}

func (k *EgadsKernel) boolean(op string, oper C.int, a, b kernel.Solid) (kernel.Solid, error) {
	if err := kernel.Claim(op, a, b); err != nil {
		return nil, err
	}
	sa := a.(*egadsSolid)
	sb := b.(*egadsSolid)
	var model C.ego
	if status := C.EG_solidBoolean(sa.body, sb.body, oper, &model); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_solidBoolean", status)
	}
	body, err := resultBody(model)
	if err != nil {
		return nil, err
	}
	return newSolid(body), nil
}

// Union returns the boolean union of two solids, consuming both.
func (k *EgadsKernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	return k.boolean("union", C.FUSION, a, b)
}

// Intersect returns the boolean intersection of two solids, consuming both.
func (k *EgadsKernel) Intersect(a, b kernel.Solid) (kernel.Solid, error) {
	return k.boolean("intersect", C.INTERSECTION, a, b)
}

// Hollow shells the solid inward, leaving a skin of the given wall
// thickness bounded by the original outer surface.
func (k *EgadsKernel) Hollow(s kernel.Solid, thickness float64) (kernel.Solid, error) {
	if thickness < 0 {
		return nil, fmt.Errorf("egads: shell thickness %g must not be negative", thickness)
	}
	if err := kernel.Claim("hollow", s); err != nil {
		return nil, err
	}
	es := s.(*egadsSolid)
	if thickness == 0 {
		min, max := es.BoundingBox()
		dx, dy, dz := max[0]-min[0], max[1]-min[1], max[2]-min[2]
		thickness = 0.02 * math.Sqrt(dx*dx+dy*dy+dz*dz)
	}

	// Removing no faces offsets the whole boundary; a negative offset
	// thickens inward so the outer surface is preserved.
	var result C.ego
	if status := C.EG_hollowBody(es.body, 0, nil, C.double(-thickness), 0, &result, nil); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_hollowBody", status)
	}
	return newSolid(result), nil
}

// Fork consumes the solid and returns two independent copies of it.
func (k *EgadsKernel) Fork(s kernel.Solid) (kernel.Solid, kernel.Solid, error) {
	if err := kernel.Claim("fork", s); err != nil {
		return nil, nil, err
	}
	es := s.(*egadsSolid)

	var c1, c2 C.ego
	if status := C.EG_copyObject(es.body, nil, &c1); status != C.EGADS_SUCCESS {
		return nil, nil, egErr("EG_copyObject", status)
	}
	if status := C.EG_copyObject(es.body, nil, &c2); status != C.EGADS_SUCCESS {
		C.EG_deleteObject(c1)
		return nil, nil, egErr("EG_copyObject", status)
	}
	return newSolid(c1), newSolid(c2), nil
}

// transform applies a 3x4 row-major transform matrix, consuming the input.
func (k *EgadsKernel) transform(op string, s kernel.Solid, xform *[12]C.double) (kernel.Solid, error) {
	if err := kernel.Claim(op, s); err != nil {
		return nil, err
	}
	es := s.(*egadsSolid)

	var oform C.ego
	if status := C.EG_makeTransform(k.ctx, &xform[0], &oform); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_makeTransform", status)
	}
	defer C.EG_deleteObject(oform)

	var body C.ego
	if status := C.EG_copyObject(es.body, unsafe.Pointer(oform), &body); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_copyObject", status)
	}
	return newSolid(body), nil
}

// Translate moves the solid by (x, y, z), consuming the input.
func (k *EgadsKernel) Translate(s kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	xform := [12]C.double{
		1, 0, 0, C.double(x),
		0, 1, 0, C.double(y),
		0, 0, 1, C.double(z),
	}
	return k.transform("translate", s, &xform)
}

// Rotate rotates the solid by Euler angles in degrees around the X, Y and Z
// axes in that order, consuming the input.
func (k *EgadsKernel) Rotate(s kernel.Solid, x, y, z float64) (kernel.Solid, error) {
	rx := x * math.Pi / 180
	ry := y * math.Pi / 180
	rz := z * math.Pi / 180

	sx, cx := math.Sin(rx), math.Cos(rx)
	sy, cy := math.Sin(ry), math.Cos(ry)
	sz, cz := math.Sin(rz), math.Cos(rz)

	// R = Rz * Ry * Rx, row major with zero translation.
	xform := [12]C.double{
		C.double(cz * cy), C.double(cz*sy*sx - sz*cx), C.double(cz*sy*cx + sz*sx), 0,
		C.double(sz * cy), C.double(sz*sy*sx + cz*cx), C.double(sz*sy*cx - cz*sx), 0,
		C.double(-sy), C.double(cy * sx), C.double(cy * cx), 0,
	}
	return k.transform("rotate", s, &xform)
}

// ToMesh tessellates the body and flattens the per-face triangulations into
// the kernel.Mesh layout. Reading the mesh does not consume the solid.
func (k *EgadsKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	es := s.(*egadsSolid)

	min, max := es.BoundingBox()
	dx, dy, dz := max[0]-min[0], max[1]-min[1], max[2]-min[2]
	size := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if size <= 0 {
		return &kernel.Mesh{}, nil
	}

	// Standard EGADS tessellation parameters scaled by body size: max edge
	// length, max surface deviation, max dihedral angle in degrees.
	params := [3]C.double{C.double(0.025 * size), C.double(0.001 * size), 15.0}
	var tess C.ego
	if status := C.EG_makeTessBody(es.body, &params[0], &tess); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_makeTessBody", status)
	}
	defer C.EG_deleteObject(tess)

	var nface C.int
	var faces *C.ego
	if status := C.EG_getBodyTopos(es.body, nil, C.FACE, &nface, &faces); status != C.EGADS_SUCCESS {
		return nil, egErr("EG_getBodyTopos", status)
	}
	C.EG_free(unsafe.Pointer(faces))

	var vertices []float32
	var indices []uint32
	for i := 1; i <= int(nface); i++ {
		var plen, ntri C.int
		var pxyz, puv *C.double
		var ptype, pindex, ptris, ptric *C.int
		status := C.EG_getTessFace(tess, C.int(i), &plen, &pxyz, &puv, &ptype, &pindex, &ntri, &ptris, &ptric)
		if status != C.EGADS_SUCCESS {
			return nil, egErr("EG_getTessFace", status)
		}
		if plen == 0 || ntri == 0 {
			continue
		}

		base := uint32(len(vertices) / 3)
		xyz := unsafe.Slice(pxyz, int(plen)*3)
		for j := 0; j < int(plen)*3; j++ {
			vertices = append(vertices, float32(xyz[j]))
		}
		// Face-local triangle indices are 1-based.
		tris := unsafe.Slice(ptris, int(ntri)*3)
		for j := 0; j < int(ntri)*3; j++ {
			indices = append(indices, base+uint32(tris[j])-1)
		}
	}

	if len(vertices) == 0 || len(indices) == 0 {
		return &kernel.Mesh{}, nil
	}
	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  computeFlatNormals(vertices, indices),
		Indices:  indices,
	}, nil
}

// computeFlatNormals generates per-vertex normals by averaging the face
// normals of all triangles incident on each vertex. EGADS tessellations do
// not carry vertex normals.
func computeFlatNormals(vertices []float32, indices []uint32) []float32 {
	numVerts := len(vertices) / 3
	normals := make([]float32, numVerts*3)

	numTris := len(indices) / 3
	for t := 0; t < numTris; t++ {
		i0 := indices[t*3+0]
		i1 := indices[t*3+1]
		i2 := indices[t*3+2]

		ax, ay, az := float64(vertices[i0*3]), float64(vertices[i0*3+1]), float64(vertices[i0*3+2])
		bx, by, bz := float64(vertices[i1*3]), float64(vertices[i1*3+1]), float64(vertices[i1*3+2])
		cx, cy, cz := float64(vertices[i2*3]), float64(vertices[i2*3+1]), float64(vertices[i2*3+2])

		e1x, e1y, e1z := bx-ax, by-ay, bz-az
		e2x, e2y, e2z := cx-ax, cy-ay, cz-az

		nx := float32(e1y*e2z - e1z*e2y)
		ny := float32(e1z*e2x - e1x*e2z)
		nz := float32(e1x*e2y - e1y*e2x)

		for _, idx := range []uint32{i0, i1, i2} {
			normals[idx*3+0] += nx
			normals[idx*3+1] += ny
			normals[idx*3+2] += nz
		}
	}

	for i := 0; i < numVerts; i++ {
		nx := float64(normals[i*3+0])
		ny := float64(normals[i*3+1])
		nz := float64(normals[i*3+2])
		length := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if length > 1e-12 {
			normals[i*3+0] = float32(nx / length)
			normals[i*3+1] = float32(ny / length)
			normals[i*3+2] = float32(nz / length)
		}
	}
	return normals
}

// profilePoints samples the airfoil outline counterclockwise: trailing edge
// along the upper surface to the leading edge, then back along the lower
// surface. Unit chord.
func profilePoints(thickness, camber, maxCamberLoc float64, perSide int) [][2]float64 {
	pts := make([][2]float64, 0, 2*perSide)

	// Upper surface, trailing edge to leading edge. Cosine spacing
	// clusters samples at both edges.
	for i := 0; i < perSide; i++ {
		x := 0.5 * (1 + math.Cos(math.Pi*float64(i)/float64(perSide)))
		yc := camberAt(x, camber, maxCamberLoc)
		pts = append(pts, [2]float64{x, yc + halfThickness(x, thickness)})
	}
	// Lower surface, leading edge back to trailing edge. The trailing edge
	// itself is the first point, so stop one short.
	for i := 0; i < perSide; i++ {
		x := 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(perSide)))
		yc := camberAt(x, camber, maxCamberLoc)
		pts = append(pts, [2]float64{x, yc - halfThickness(x, thickness)})
	}
	return pts
}

// halfThickness is the four-digit thickness distribution with the closed
// trailing edge coefficient set.
func halfThickness(x, thickness float64) float64 {
	return 5 * thickness * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - 0.1036*x*x*x*x)
}

// camberAt is the two-parabola mean camber line.
func camberAt(x, camber, maxCamberLoc float64) float64 {
	if camber == 0 {
		return 0
	}
	p := maxCamberLoc
	if x < p {
		return camber / (p * p) * (2*p*x - x*x)
	}
	return camber / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*x - x*x)
}
