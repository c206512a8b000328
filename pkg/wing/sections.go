package wing

import (
	"fmt"

	"github.com/chazu/wingbox/pkg/kernel"
)

// Section pairs a profile curve with its spanwise placement.
type Section struct {
	Curve kernel.Curve
	At    kernel.Placement
}

// Sections builds the root and tip section profiles and their placements:
// the root sits on the symmetry plane, the tip at the half-span offset by
// sweep and dihedral. Profile-range errors propagate from the kernel, which
// owns the valid airfoil-generation envelope.
func Sections(k kernel.Kernel, p *DesignParameters) (root, tip Section, err error) {
	rc, err := k.AirfoilCurve(p.RootThickness, p.RootCamber, p.MaxCamberLoc)
	if err != nil {
		return Section{}, Section{}, fmt.Errorf("root section: %w", err)
	}
	tc, err := k.AirfoilCurve(p.TipThickness, p.TipCamber, p.MaxCamberLoc)
	if err != nil {
		return Section{}, Section{}, fmt.Errorf("tip section: %w", err)
	}

	root = Section{
		Curve: rc,
		At:    kernel.Placement{Span: 0, Chord: p.RootChord},
	}
	tip = Section{
		Curve: tc,
		At: kernel.Placement{
			Span:    p.HalfSpan(),
			Chord:   p.TipChord,
			OffsetX: p.TipOffsetX(),
			OffsetZ: p.TipOffsetZ(),
		},
	}
	return root, tip, nil
}
