package assembly

import (
	"github.com/chazu/wingbox/pkg/topo"
	"github.com/chazu/wingbox/pkg/wing"
)

// buildTopology derives the final solid's topology model from the design
// parameters. Entity keys are geometric signatures computed from the same
// construction values that place the geometry, so identity survives any
// renumbering inside the kernel's boolean results.
//
// The adjacency recorded here is the face/edge/vertex incidence of the
// assembled wing box: each station face is bounded by its two surface arcs
// and its spar crossings, each arc runs between the leading- and
// trailing-edge vertices of its station, and each skin panel is bounded by
// the arcs of the two stations it spans.
func buildTopology(p *wing.DesignParameters) *topo.Model {
	m := topo.NewModel()

	body := m.Add(topo.KindBody, topo.BodyKey(p.Name))
	body.Tags.Set(topo.TagCoupling, topo.String(topo.CouplingDefault))

	stations := make([]float64, p.NumRibs)
	for i := range stations {
		stations[i] = p.RibStation(i + 1)
	}

	type sparLine struct{ xRoot, xTip float64 }
	spars := make([]sparLine, p.NumSpars)
	for j := range spars {
		xr, xt := p.SparChordwise(j + 1)
		spars[j] = sparLine{xRoot: xr, xTip: xt}
	}
	// Web chordwise position varies linearly along the span.
	sparX := func(j int, y float64) float64 {
		s := spars[j]
		return s.xRoot + (s.xTip-s.xRoot)*y/p.HalfSpan()
	}

	stationFaces := make([]topo.Key, p.NumRibs)
	for i, y := range stations {
		var f *topo.Entity
		switch i {
		case 0:
			f = m.Add(topo.KindFace, topo.CapFace(y))
			f.Tags.Set(topo.TagCap, topo.String(topo.CapRoot))
		case p.NumRibs - 1:
			f = m.Add(topo.KindFace, topo.CapFace(y))
			f.Tags.Set(topo.TagCap, topo.String(topo.CapTip))
		default:
			f = m.Add(topo.KindFace, topo.RibFace(y))
			f.Tags.Set(topo.TagStructural, topo.None())
		}
		f.Tags.Set(topo.TagGroup, topo.String(topo.RibGroup(i+1)))
		stationFaces[i] = f.Key
	}

	sparFaces := make([]topo.Key, p.NumSpars)
	for j := range spars {
		f := m.Add(topo.KindFace, topo.SparFace(spars[j].xRoot, spars[j].xTip))
		f.Tags.Set(topo.TagGroup, topo.String(topo.SparGroup(j+1)))
		f.Tags.Set(topo.TagStructural, topo.None())
		sparFaces[j] = f.Key
	}

	for _, side := range []topo.Side{topo.Upper, topo.Lower} {
		for bay := 0; bay < p.NumRibs-1; bay++ {
			f := m.Add(topo.KindFace, topo.SkinFace(side, stations[bay], stations[bay+1]))
			f.Tags.Set(topo.TagOML, topo.None())
		}
	}

	for i, y := range stations {
		for _, side := range []topo.Side{topo.Upper, topo.Lower} {
			arc := m.Add(topo.KindEdge, topo.SkinEdge(side, y)).Key
			m.Link(stationFaces[i], arc)
			m.Link(arc, m.Add(topo.KindVertex, topo.LeadingVertex(y)).Key)
			m.Link(arc, m.Add(topo.KindVertex, topo.TrailingVertex(y)).Key)
		}
		for j := range spars {
			crossing := m.Add(topo.KindEdge, topo.SparEdge(sparX(j, y), y)).Key
			m.Link(stationFaces[i], crossing)
			m.Link(sparFaces[j], crossing)
		}
	}

	for _, side := range []topo.Side{topo.Upper, topo.Lower} {
		for bay := 0; bay < p.NumRibs-1; bay++ {
			panel := topo.SkinFace(side, stations[bay], stations[bay+1])
			m.Link(panel, topo.SkinEdge(side, stations[bay]))
			m.Link(panel, topo.SkinEdge(side, stations[bay+1]))
		}
	}

	return m
}
