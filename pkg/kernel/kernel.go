// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx, egads) provide curve construction, lofting and
// boolean operations behind this interface. The kernel abstraction
// allows swapping backends without changing the rest of the system.
package kernel

import (
	"errors"
	"fmt"
)

// ErrSolidConsumed is reported when a solid handle is passed to an
// operation after a boolean operation has already claimed it.
var ErrSolidConsumed = errors.New("solid handle already consumed")

// Vec3 is a point or extent in kernel space.
type Vec3 struct {
	X, Y, Z float64
}

// Placement positions a unit-chord section curve in space: the spanwise
// station along Y, leading-edge offsets in X (sweep) and Z (dihedral),
// and the chord scale applied to the profile.
type Placement struct {
	Span    float64
	Chord   float64
	OffsetX float64
	OffsetZ float64
}

// Curve is an opaque handle to a closed planar profile curve.
// Curves live in the XZ plane with a unit chord from x=0 to x=1.
type Curve interface {
	// Bounds returns the axis-aligned bounds of the curve in its plane.
	Bounds() (min, max [2]float64)
}

// Solid is an opaque handle to a geometry kernel solid. Boolean operations
// consume their inputs; a consumed handle must not be used again. The
// unexported method restricts implementations to types embedding Handle,
// so the single-use bookkeeping is uniform across backends.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)

	claim(op string) error
}

// Handle provides the single-use bookkeeping that every backend solid
// embeds. Claiming an already-claimed handle fails with ErrSolidConsumed.
type Handle struct {
	consumed bool
}

func (h *Handle) claim(op string) error {
	if h.consumed {
		return fmt.Errorf("%s: %w", op, ErrSolidConsumed)
	}
	h.consumed = true
	return nil
}

// Claim marks each input solid as consumed by the named operation.
// Backends call it on every operation that invalidates its inputs, before
// touching the underlying geometry. The first already-consumed input
// aborts the claim.
func Claim(op string, inputs ...Solid) error {
	for _, s := range inputs {
		if err := s.claim(op); err != nil {
			return err
		}
	}
	return nil
}

// Kernel is the abstract geometry kernel interface. Implementations
// (sdfx, egads) provide solid modeling behind this interface.
//
// Operations returning a Solid take ownership of their Solid inputs: the
// inputs are consumed and must not be reused. Fork exists so a solid can
// be retained past a consuming operation. BoundingBox and ToMesh are
// read-only and never consume.
type Kernel interface {
	// Curve and solid construction
	AirfoilCurve(thickness, camber, maxCamberLoc float64) (Curve, error)
	Loft(root, tip Curve, rootAt, tipAt Placement) (Solid, error)
	Box(origin, extents Vec3) (Solid, error)

	// Boolean operations
	Union(a, b Solid) (Solid, error)
	Intersect(a, b Solid) (Solid, error)
	Hollow(s Solid, thickness float64) (Solid, error)

	// Fork returns two independent handles to the same geometry.
	Fork(s Solid) (Solid, Solid, error)

	// Transforms
	Translate(s Solid, x, y, z float64) (Solid, error)
	Rotate(s Solid, x, y, z float64) (Solid, error) // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
