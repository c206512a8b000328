package topo

import (
	"fmt"
	"math"
	"strconv"
)

// Key identifies a topological entity by its geometric signature rather
// than by creation order, so regenerating a model from the same parameters
// yields the same keys even if the kernel reorders its internals.
type Key string

// Side selects the upper or lower wing surface.
type Side string

const (
	Upper Side = "upper"
	Lower Side = "lower"
)

// coord renders a coordinate at the fixed precision used in signature
// keys. Values are snapped to the quantum first so that floating-point
// noise, including negative zero, cannot split one entity into two keys.
func coord(v float64) string {
	const quantum = 1e-6
	q := math.Round(v/quantum) * quantum
	if q == 0 {
		q = 0
	}
	return strconv.FormatFloat(q, 'f', 6, 64)
}

// BodyKey names the single solid body.
func BodyKey(name string) Key {
	return Key("body:" + name)
}

// CapFace is the loft end face at the given spanwise station.
func CapFace(span float64) Key {
	return Key(fmt.Sprintf("face:cap@y=%s", coord(span)))
}

// RibFace is an interior rib face at the given spanwise station.
func RibFace(span float64) Key {
	return Key(fmt.Sprintf("face:rib@y=%s", coord(span)))
}

// SparFace is a spar web face, identified by its chordwise position at the
// root and tip stations.
func SparFace(xRoot, xTip float64) Key {
	return Key(fmt.Sprintf("face:spar@x0=%s,x1=%s", coord(xRoot), coord(xTip)))
}

// SkinFace is an outer-skin panel on one surface side spanning the bay
// between two stations.
func SkinFace(side Side, span0, span1 float64) Key {
	return Key(fmt.Sprintf("face:skin-%s@y0=%s,y1=%s", side, coord(span0), coord(span1)))
}

// SkinEdge is the airfoil arc where a station plane meets one surface side.
func SkinEdge(side Side, span float64) Key {
	return Key(fmt.Sprintf("edge:skin-%s@y=%s", side, coord(span)))
}

// SparEdge is the crossing where a spar web meets a station plane, at the
// spar's chordwise position for that station.
func SparEdge(x, span float64) Key {
	return Key(fmt.Sprintf("edge:spar@x=%s,y=%s", coord(x), coord(span)))
}

// LeadingVertex is the leading-edge point of the section at a station.
func LeadingVertex(span float64) Key {
	return Key(fmt.Sprintf("vertex:le@y=%s", coord(span)))
}

// TrailingVertex is the trailing-edge point of the section at a station.
func TrailingVertex(span float64) Key {
	return Key(fmt.Sprintf("vertex:te@y=%s", coord(span)))
}
