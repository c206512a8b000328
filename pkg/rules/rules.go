// Package rules implements the declarative attribute-propagation program
// evaluated over the final solid's topology: a fixed-order list of
// predicate/action rules that seed boundary-condition tags and infer
// skin-panel groups from face adjacency. Evaluation converges in one pass;
// rules never alter construction-time tags, they only add new ones.
package rules

import (
	"fmt"

	"github.com/chazu/wingbox/pkg/topo"
)

// TagCond matches entities carrying a named tag. If Value is set the tag
// payload must equal it exactly; otherwise presence suffices.
type TagCond struct {
	Name  string
	Value *topo.Value
}

// HasTag matches any value of the named tag, including none.
func HasTag(name string) TagCond {
	return TagCond{Name: name}
}

// TagEquals matches the named tag with exactly the given value.
func TagEquals(name string, v topo.Value) TagCond {
	return TagCond{Name: name, Value: &v}
}

func (c TagCond) met(tags topo.TagSet) bool {
	v, ok := tags.Get(c.Name)
	if !ok {
		return false
	}
	if c.Value == nil {
		return true
	}
	return v.Equal(*c.Value)
}

// Match is the predicate conjunction of one rule: the entity kind, tags
// that must be present, tags that must be absent, and tag requirements
// each satisfiable by at least one face sharing an edge with the entity.
type Match struct {
	Kind       topo.Kind
	HasTags    []TagCond
	LacksTags  []string
	AdjacentTo []TagCond
}

// Assign sets one tag.
type Assign struct {
	Name  string
	Value topo.Value
}

// Action is what a matched rule does: set tags on the entity itself and,
// optionally, spread the same tags one hop onto the entity's bounding
// edges and vertices. The spread never continues past that hop.
type Action struct {
	Set      []Assign
	Boundary bool
}

// Rule pairs a named predicate with its action. Rule order is part of the
// program: earlier rules run first and their writes are visible to later
// ones.
type Rule struct {
	Name   string
	Match  Match
	Action Action
}

// RootConstraint returns the seeding rule: the root cap face and its
// one-hop boundary receive the root boundary-condition tag.
func RootConstraint() Rule {
	return Rule{
		Name: "root-constraint",
		Match: Match{
			Kind:    topo.KindFace,
			HasTags: []TagCond{TagEquals(topo.TagCap, topo.String(topo.CapRoot))},
		},
		Action: Action{
			Set:      []Assign{{Name: topo.TagConstraint, Value: topo.String(topo.ConstraintRoot)}},
			Boundary: true,
		},
	}
}

// SkinPanels returns the panel-inference rules in evaluation order: for
// each bay i, a face that is neither structural nor already grouped and
// that touches both bounding rib stations becomes panel OML<i>. Gaining
// the group tag removes the face from every later rule, so evaluation is
// first-match-wins.
func SkinPanels(nribs int) []Rule {
	var out []Rule
	for i := 1; i < nribs; i++ {
		out = append(out, Rule{
			Name: fmt.Sprintf("skin-panel-%d", i),
			Match: Match{
				Kind:      topo.KindFace,
				LacksTags: []string{topo.TagStructural, topo.TagGroup},
				AdjacentTo: []TagCond{
					TagEquals(topo.TagGroup, topo.String(topo.RibGroup(i))),
					TagEquals(topo.TagGroup, topo.String(topo.RibGroup(i+1))),
				},
			},
			Action: Action{
				Set: []Assign{{Name: topo.TagGroup, Value: topo.String(topo.SkinGroup(i))}},
			},
		})
	}
	return out
}

// Default returns the full rule program for a wing with nribs stations.
func Default(nribs int) []Rule {
	out := []Rule{RootConstraint()}
	return append(out, SkinPanels(nribs)...)
}
