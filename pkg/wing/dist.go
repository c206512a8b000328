package wing

import "math"

// distTolerance bounds how far the weight sum may drift from one before a
// distribution is rejected.
const distTolerance = 1e-9

// Distribution is a cubic weighting of a normalized fraction. With the
// identity weights (1, 0, 0) it is linear; other weight triples bias the
// placement toward one end. Non-monotonic triples are allowed; callers
// supplying them accept self-overlapping structure as a modeling choice.
type Distribution struct {
	A1 float64 `json:"a1"`
	A2 float64 `json:"a2"`
	A3 float64 `json:"a3"`
}

// Linear is the identity distribution.
func Linear() Distribution {
	return Distribution{A1: 1}
}

// Eval maps a normalized fraction f through a1*f + a2*f^2 + a3*f^3.
func (d Distribution) Eval(f float64) float64 {
	return d.A1*f + d.A2*f*f + d.A3*f*f*f
}

// Sum returns the weight total, which must be one for the endpoints to map
// to themselves.
func (d Distribution) Sum() float64 {
	return d.A1 + d.A2 + d.A3
}

// Valid reports whether the weights sum to one within tolerance.
func (d Distribution) Valid() bool {
	return math.Abs(d.Sum()-1) <= distTolerance
}

// SparFraction is the normalized chordwise index of spar i among n spars,
// spacing the webs away from both the leading and trailing edges.
func SparFraction(i, n int) float64 {
	return float64(i) / float64(n+1)
}

// RibFraction is the normalized spanwise position of global rib station i,
// where station 1 is the root cap and station nribs the tip cap.
func RibFraction(i, nribs int) float64 {
	return float64(i-1) / float64(nribs-1)
}
