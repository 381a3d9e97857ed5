// Package bestoverlap models the per-read best-overlap graph (OG in the
// original assembler): for each read, the single best 5' edge, best 3'
// edge, and best containing read, already tie-broken upstream of bogart.
// Building the graph from raw overlaps is outside this spec (spec.md §1);
// bogart only consumes it through the BestOverlapGraph interface.
package bestoverlap

import "github.com/grailbio/bogart/bogart/readinfo"

// EdgeOverlap is the chosen "next" overlap at one end of a read.
type EdgeOverlap struct {
	FragID readinfo.ReadID // 0 means no edge
	Frag3p bool            // true: edge touches the peer's 3' end
	AHang  int32
	BHang  int32
	Erate  float64
}

// Containment is the chosen container for a read fully covered by
// another, or the inverted relationship used transiently while placing
// fragments by raw overlaps (IsContained == false).
type Containment struct {
	Container       readinfo.ReadID
	IsContained     bool
	SameOrientation bool
	AHang           int32
	BHang           int32
}

// Graph is the read-only-after-construction best-overlap graph bogart
// consumes. It is built externally (spec.md §1 Non-goals) and handed to
// bogart through this concrete type, which also implements
// external.BestOverlapGraph.
type Graph struct {
	best5     map[readinfo.ReadID]EdgeOverlap
	best3     map[readinfo.ReadID]EdgeOverlap
	container map[readinfo.ReadID]Containment
}

// NewGraph builds a Graph from pre-computed per-read best edges and
// containments.
func NewGraph(best5, best3 map[readinfo.ReadID]EdgeOverlap, container map[readinfo.ReadID]Containment) *Graph {
	return &Graph{best5: best5, best3: best3, container: container}
}

// BestEdge returns the best edge off r's 5' end (end3p == false) or 3' end
// (end3p == true). It never returns nil; an absent edge has FragID == 0.
func (g *Graph) BestEdge(r readinfo.ReadID, end3p bool) *EdgeOverlap {
	m := g.best5
	if end3p {
		m = g.best3
	}
	if e, ok := m[r]; ok {
		return &e
	}
	return &EdgeOverlap{}
}

// BestContainer returns r's best containment record. It never returns
// nil; an absent containment has IsContained == false and Container == 0.
func (g *Graph) BestContainer(r readinfo.ReadID) *Containment {
	if c, ok := g.container[r]; ok {
		return &c
	}
	return &Containment{}
}

// IsContained reports whether r has a valid containment edge.
func (g *Graph) IsContained(r readinfo.ReadID) bool {
	c, ok := g.container[r]
	return ok && c.IsContained
}
