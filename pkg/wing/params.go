// Package wing defines the design parameters of a parametric wing and the
// scalar math that turns them into section placements and structural
// element positions.
package wing

import (
	"errors"
	"fmt"
	"math"
)

// DesignParameters is the complete scalar description of one wing model.
// All lengths share one unit; angles are degrees; thickness and camber are
// fractions of chord.
type DesignParameters struct {
	Name string `json:"name"`

	Span      float64 `json:"span"`      // full wingspan; the solid covers the half-wing
	RootChord float64 `json:"rootChord"` // chord at the symmetry plane
	TipChord  float64 `json:"tipChord"`  // chord at the tip station
	Sweep     float64 `json:"sweep"`     // leading-edge sweep, degrees
	Dihedral  float64 `json:"dihedral"`  // dihedral angle, degrees

	RootThickness float64 `json:"rootThickness"` // section thickness fraction at the root
	TipThickness  float64 `json:"tipThickness"`  // section thickness fraction at the tip
	RootCamber    float64 `json:"rootCamber"`    // section camber fraction at the root
	TipCamber     float64 `json:"tipCamber"`     // section camber fraction at the tip
	MaxCamberLoc  float64 `json:"maxCamberLoc"`  // chordwise position of maximum camber

	NumRibs  int `json:"nribs"`  // rib stations including both caps
	NumSpars int `json:"nspars"` // chordwise spar webs

	SparDist Distribution `json:"sparDist"` // chordwise spar placement weights
	RibDist  Distribution `json:"ribDist"`  // spanwise rib placement weights

	WebThickness   float64 `json:"webThickness"`   // spar/rib slab thickness, 0 = default
	ShellThickness float64 `json:"shellThickness"` // outer skin wall, 0 = kernel default
}

// Default returns a conventional tapered half-wing: cambered twelve-percent
// sections, three rib stations and a single mid-chord spar.
func Default() DesignParameters {
	return DesignParameters{
		Name:          "wing",
		Span:          10,
		RootChord:     2,
		TipChord:      1,
		RootThickness: 0.12,
		TipThickness:  0.12,
		RootCamber:    0.02,
		TipCamber:     0.02,
		MaxCamberLoc:  0.4,
		NumRibs:       3,
		NumSpars:      1,
		SparDist:      Linear(),
		RibDist:       Linear(),
	}
}

// InvalidParameterError reports a design parameter that fails validation.
// It is always detected before any kernel work starts.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%g: %s", e.Field, e.Value, e.Reason)
}

// IsInvalidParameter reports whether err wraps an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var e *InvalidParameterError
	return errors.As(err, &e)
}

func invalid(field string, value float64, reason string) error {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}

// Validate checks every scalar range and weight constraint, returning all
// violations joined together. A nil result means the pipeline may start.
func (p *DesignParameters) Validate() error {
	var errs []error

	if p.Span <= 0 {
		errs = append(errs, invalid("span", p.Span, "must be positive"))
	}
	if p.RootChord <= 0 {
		errs = append(errs, invalid("rootChord", p.RootChord, "must be positive"))
	}
	if p.TipChord <= 0 {
		errs = append(errs, invalid("tipChord", p.TipChord, "must be positive"))
	}
	if math.Abs(p.Sweep) >= 90 {
		errs = append(errs, invalid("sweep", p.Sweep, "must lie strictly between -90 and 90 degrees"))
	}
	if math.Abs(p.Dihedral) >= 90 {
		errs = append(errs, invalid("dihedral", p.Dihedral, "must lie strictly between -90 and 90 degrees"))
	}

	if p.RootThickness <= 0 || p.RootThickness >= 1 {
		errs = append(errs, invalid("rootThickness", p.RootThickness, "must lie in (0, 1)"))
	}
	if p.TipThickness <= 0 || p.TipThickness >= 1 {
		errs = append(errs, invalid("tipThickness", p.TipThickness, "must lie in (0, 1)"))
	}
	if p.RootCamber < 0 || p.RootCamber >= 0.5 {
		errs = append(errs, invalid("rootCamber", p.RootCamber, "must lie in [0, 0.5)"))
	}
	if p.TipCamber < 0 || p.TipCamber >= 0.5 {
		errs = append(errs, invalid("tipCamber", p.TipCamber, "must lie in [0, 0.5)"))
	}
	if (p.RootCamber > 0 || p.TipCamber > 0) && (p.MaxCamberLoc <= 0 || p.MaxCamberLoc >= 1) {
		errs = append(errs, invalid("maxCamberLoc", p.MaxCamberLoc, "must lie in (0, 1) when camber is set"))
	}

	if p.NumRibs < 2 {
		errs = append(errs, invalid("nribs", float64(p.NumRibs), "need at least the two cap stations"))
	}
	if p.NumSpars < 0 {
		errs = append(errs, invalid("nspars", float64(p.NumSpars), "must not be negative"))
	}

	if !p.SparDist.Valid() {
		errs = append(errs, invalid("sparDist", p.SparDist.Sum(), "weights must sum to 1"))
	}
	if !p.RibDist.Valid() {
		errs = append(errs, invalid("ribDist", p.RibDist.Sum(), "weights must sum to 1"))
	}

	if p.WebThickness < 0 {
		errs = append(errs, invalid("webThickness", p.WebThickness, "must not be negative"))
	}
	if p.ShellThickness < 0 {
		errs = append(errs, invalid("shellThickness", p.ShellThickness, "must not be negative"))
	}

	return errors.Join(errs...)
}

// HalfSpan returns the semi-span covered by the solid model.
func (p *DesignParameters) HalfSpan() float64 {
	return p.Span / 2
}

// TipOffsetX is the sweep-induced chordwise offset of the tip section.
func (p *DesignParameters) TipOffsetX() float64 {
	return p.HalfSpan() * math.Tan(p.Sweep*math.Pi/180)
}

// TipOffsetZ is the dihedral-induced vertical offset of the tip section.
func (p *DesignParameters) TipOffsetZ() float64 {
	return p.HalfSpan() * math.Tan(p.Dihedral*math.Pi/180)
}

// RibStation returns the spanwise position of global rib station i, where
// station 1 is the root cap and station NumRibs the tip cap.
func (p *DesignParameters) RibStation(i int) float64 {
	return p.HalfSpan() * p.RibDist.Eval(RibFraction(i, p.NumRibs))
}

// SparChordwise returns the chordwise position of spar i at the root and
// tip stations. The tip position carries the sweep-induced offset so the
// spar stays inside the swept planform.
func (p *DesignParameters) SparChordwise(i int) (xRoot, xTip float64) {
	f := p.SparDist.Eval(SparFraction(i, p.NumSpars))
	xRoot = f * p.RootChord
	xTip = f*p.TipChord + p.TipOffsetX()
	return xRoot, xTip
}
