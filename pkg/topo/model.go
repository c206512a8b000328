package topo

// Model is an arena of topological entities keyed by geometric signature,
// with undirected adjacency links between them. Iteration follows insertion
// order, so rebuilding from the same parameters walks entities identically.
type Model struct {
	entities map[Key]*Entity
	order    []Key
	links    map[Key][]Key
}

// NewModel creates an empty topology model.
func NewModel() *Model {
	return &Model{
		entities: make(map[Key]*Entity),
		links:    make(map[Key][]Key),
	}
}

// Add registers an entity under its signature key and returns it. Adding a
// key that is already present returns the existing entity unchanged.
func (m *Model) Add(kind Kind, key Key) *Entity {
	if e, ok := m.entities[key]; ok {
		return e
	}
	e := &Entity{Key: key, Kind: kind, Tags: TagSet{}}
	m.entities[key] = e
	m.order = append(m.order, key)
	return e
}

// Link records an undirected adjacency between two keys. Links to keys
// that were never registered are kept; Validate reports them. Duplicate
// links are ignored.
func (m *Model) Link(a, b Key) {
	if a == b {
		return
	}
	if !contains(m.links[a], b) {
		m.links[a] = append(m.links[a], b)
	}
	if !contains(m.links[b], a) {
		m.links[b] = append(m.links[b], a)
	}
}

func contains(keys []Key, k Key) bool {
	for _, have := range keys {
		if have == k {
			return true
		}
	}
	return false
}

// Get returns the entity with the given key, or nil.
func (m *Model) Get(key Key) *Entity {
	return m.entities[key]
}

// Len returns the number of registered entities.
func (m *Model) Len() int {
	return len(m.entities)
}

// Entities returns all entities in insertion order.
func (m *Model) Entities() []*Entity {
	out := make([]*Entity, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.entities[key])
	}
	return out
}

// OfKind returns all entities of one kind in insertion order.
func (m *Model) OfKind(kind Kind) []*Entity {
	var out []*Entity
	for _, key := range m.order {
		if e := m.entities[key]; e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Adjacent returns the registered entities linked to the given key, in
// link-creation order.
func (m *Model) Adjacent(key Key) []*Entity {
	var out []*Entity
	for _, k := range m.links[key] {
		if e := m.entities[k]; e != nil {
			out = append(out, e)
		}
	}
	return out
}

// AdjacentOfKind returns the linked entities of one kind.
func (m *Model) AdjacentOfKind(key Key, kind Kind) []*Entity {
	var out []*Entity
	for _, e := range m.Adjacent(key) {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// FaceNeighbors returns the faces sharing a bounding edge with the given
// face, deduplicated in first-encounter order.
func (m *Model) FaceNeighbors(face Key) []*Entity {
	seen := map[Key]bool{face: true}
	var out []*Entity
	for _, edge := range m.AdjacentOfKind(face, KindEdge) {
		for _, f := range m.AdjacentOfKind(edge.Key, KindFace) {
			if !seen[f.Key] {
				seen[f.Key] = true
				out = append(out, f)
			}
		}
	}
	return out
}

// Boundary returns the one-hop boundary of a face: its bounding edges
// followed by the vertices terminating those edges, deduplicated in
// first-encounter order.
func (m *Model) Boundary(face Key) []*Entity {
	var out []*Entity
	seen := make(map[Key]bool)
	edges := m.AdjacentOfKind(face, KindEdge)
	for _, e := range edges {
		if !seen[e.Key] {
			seen[e.Key] = true
			out = append(out, e)
		}
	}
	for _, e := range edges {
		for _, v := range m.AdjacentOfKind(e.Key, KindVertex) {
			if !seen[v.Key] {
				seen[v.Key] = true
				out = append(out, v)
			}
		}
	}
	return out
}
