// Package topo models the boundary topology of a generated wing solid: the
// faces, edges and vertices the assembly pipeline knows about, the adjacency
// between them, and the attribute tags the rule engine attaches.
package topo

import "fmt"

// Kind enumerates the topological entity classes.
type Kind int

const (
	KindFace Kind = iota
	KindEdge
	KindVertex
	KindBody
)

func (k Kind) String() string {
	switch k {
	case KindFace:
		return "face"
	case KindEdge:
		return "edge"
	case KindVertex:
		return "vertex"
	case KindBody:
		return "body"
	default:
		return "unknown"
	}
}

// Entity is one topological element of the final solid, addressed by its
// signature key and carrying its attribute tags.
type Entity struct {
	Key  Key    `json:"key"`
	Kind Kind   `json:"kind"`
	Tags TagSet `json:"tags"`
}

// Tag names attached by the pipeline. These strings are read by downstream
// tooling and are a compatibility surface; renaming one is a breaking
// change to the output format.
const (
	TagGroup      = "group"      // structural or skin-panel group id: rib<i>, spar<i>, OML<i>
	TagStructural = "structural" // marker on internal-structure faces, explicit none value
	TagOML        = "oml"        // marker on outer-skin faces, explicit none value
	TagCap        = "cap"        // loft end faces, value root or tip
	TagConstraint = "constraint" // boundary condition, value root
	TagCoupling   = "coupling"   // downstream analyses fed by the model
	TagColor      = "color"      // display color hint, hex string
)

// Tag values with fixed meaning.
const (
	CapRoot         = "root"
	CapTip          = "tip"
	ConstraintRoot  = "root"
	CouplingDefault = "tessellation;structure"
)

// RibGroup returns the group id for the rib at global station i, counting
// the root cap as 1 and the tip cap as nribs.
func RibGroup(i int) string { return fmt.Sprintf("rib%d", i) }

// SparGroup returns the group id for spar i, counting from the leading edge.
func SparGroup(i int) string { return fmt.Sprintf("spar%d", i) }

// SkinGroup returns the skin-panel group id for the bay between rib
// stations i and i+1.
func SkinGroup(i int) string { return fmt.Sprintf("OML%d", i) }
