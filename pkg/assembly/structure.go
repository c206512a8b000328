package assembly

import (
	"math"

	"github.com/chazu/wingbox/pkg/kernel"
	"github.com/chazu/wingbox/pkg/wing"
)

// slabOversize scales slab extents beyond the envelope so that the
// intersection with the outer mold line, not the primitive bounds, decides
// the structural geometry.
const slabOversize = 3.0

// defaultWebFraction sets the slab thickness as a fraction of root chord
// when WebThickness is left zero.
const defaultWebFraction = 0.05

func webThickness(p *wing.DesignParameters) float64 {
	if p.WebThickness > 0 {
		return p.WebThickness
	}
	return defaultWebFraction * p.RootChord
}

// buildStructure constructs the spar and rib slabs and unions them in the
// fixed order: spars 1..nspars, then interior ribs in increasing station
// order. The order is part of the entity-identity contract. With no spars
// and no interior ribs the structure is nil.
func (b *Builder) buildStructure(p *wing.DesignParameters, envMin, envMax [3]float64) (kernel.Solid, error) {
	t := webThickness(p)
	spanLen := (envMax[1] - envMin[1]) * slabOversize
	chordLen := (envMax[0] - envMin[0]) * slabOversize
	heightLen := (envMax[2] - envMin[2]) * slabOversize
	centerX := (envMin[0] + envMax[0]) / 2
	centerY := (envMin[1] + envMax[1]) / 2
	centerZ := (envMin[2] + envMax[2]) / 2

	var structure kernel.Solid
	join := func(slab kernel.Solid) error {
		if structure == nil {
			structure = slab
			return nil
		}
		joined, err := b.kernel.Union(structure, slab)
		if err != nil {
			return &GeometryError{Stage: "structure", Op: "union", Err: err}
		}
		structure = joined
		return nil
	}

	for j := 1; j <= p.NumSpars; j++ {
		xRoot, xTip := p.SparChordwise(j)

		slab, err := b.kernel.Box(
			kernel.Vec3{X: -t / 2, Y: -spanLen / 2, Z: -heightLen / 2},
			kernel.Vec3{X: t, Y: spanLen, Z: heightLen},
		)
		if err != nil {
			return nil, &GeometryError{Stage: "structure", Op: "box", Err: err}
		}

		// Tilt the web about the vertical axis so it passes through both
		// chordwise stations.
		angle := -math.Atan2(xTip-xRoot, p.HalfSpan()) * 180 / math.Pi
		slab, err = b.kernel.Rotate(slab, 0, 0, angle)
		if err != nil {
			return nil, &GeometryError{Stage: "structure", Op: "rotate", Err: err}
		}

		slab, err = b.kernel.Translate(slab, (xRoot+xTip)/2, centerY, centerZ)
		if err != nil {
			return nil, &GeometryError{Stage: "structure", Op: "translate", Err: err}
		}

		if err := join(slab); err != nil {
			return nil, err
		}
	}

	// Caps are loft end faces; only the interior stations get slabs.
	for g := 2; g <= p.NumRibs-1; g++ {
		y := p.RibStation(g)
		slab, err := b.kernel.Box(
			kernel.Vec3{X: centerX - chordLen/2, Y: y - t/2, Z: centerZ - heightLen/2},
			kernel.Vec3{X: chordLen, Y: t, Z: heightLen},
		)
		if err != nil {
			return nil, &GeometryError{Stage: "structure", Op: "box", Err: err}
		}
		if err := join(slab); err != nil {
			return nil, err
		}
	}

	return structure, nil
}
