package rules

import "github.com/chazu/wingbox/pkg/topo"

// Outcome reports how many entities one rule matched.
type Outcome struct {
	Rule    string
	Matched int
}

// Apply evaluates the rules in order against the model. Each rule collects
// its matches over all entities first and then writes its tags, so a rule
// never observes its own writes; later rules do. Entity iteration follows
// model insertion order, keeping evaluation deterministic.
func Apply(m *topo.Model, rules []Rule) []Outcome {
	outcomes := make([]Outcome, 0, len(rules))
	for _, r := range rules {
		var matched []*topo.Entity
		for _, e := range m.Entities() {
			if r.matches(m, e) {
				matched = append(matched, e)
			}
		}

		for _, e := range matched {
			assign(e, r.Action.Set)
			if r.Action.Boundary {
				for _, b := range m.Boundary(e.Key) {
					assign(b, r.Action.Set)
				}
			}
		}
		outcomes = append(outcomes, Outcome{Rule: r.Name, Matched: len(matched)})
	}
	return outcomes
}

func (r Rule) matches(m *topo.Model, e *topo.Entity) bool {
	if e.Kind != r.Match.Kind {
		return false
	}
	for _, c := range r.Match.HasTags {
		if !c.met(e.Tags) {
			return false
		}
	}
	for _, name := range r.Match.LacksTags {
		if e.Tags.Has(name) {
			return false
		}
	}
	for _, c := range r.Match.AdjacentTo {
		if !anyNeighborMeets(m, e, c) {
			return false
		}
	}
	return true
}

// anyNeighborMeets checks the condition against the faces sharing a
// bounding edge with the entity. Conditions are independent: two of them
// may be satisfied by two different neighbors.
func anyNeighborMeets(m *topo.Model, e *topo.Entity, c TagCond) bool {
	for _, f := range m.FaceNeighbors(e.Key) {
		if c.met(f.Tags) {
			return true
		}
	}
	return false
}

func assign(e *topo.Entity, set []Assign) {
	for _, a := range set {
		e.Tags.Set(a.Name, a.Value)
	}
}
