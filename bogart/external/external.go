// Package external names the narrow interfaces bogart's core expects from
// the rest of the assembler: FASTA/FASTQ I/O, k-mer streaming, sim4/polish
// alignment, clumpMaker, and overlap-store disk formats all live behind
// these boundaries and are out of scope for this module (spec.md §1).
//
// Production callers typically pass the concrete *readinfo.ReadInfo,
// *overlap.Cache, and *bestoverlap.Graph types directly, since those
// already satisfy the interfaces below; the interfaces exist so tests can
// substitute fakes without touching the concrete packages.
package external

import (
	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/overlap"
	"github.com/grailbio/bogart/bogart/readinfo"
)

// ReadInfo is the read-level metadata interface (§6 "Read info").
type ReadInfo interface {
	Length(r readinfo.ReadID) uint32
	MateID(r readinfo.ReadID) readinfo.ReadID
	LibraryID(r readinfo.ReadID) readinfo.Library
	Ignored(r readinfo.ReadID) bool
	MarkIgnore(r readinfo.ReadID)
	NumReads() readinfo.ReadID
}

// OverlapCache is the overlap-store query interface (§6 "Overlap cache").
type OverlapCache interface {
	Overlaps(r readinfo.ReadID) []overlap.Overlap
}

// BestOverlapGraph is the best-overlap-graph query interface (§6
// "Best-overlap graph").
type BestOverlapGraph interface {
	BestEdge(r readinfo.ReadID, end3p bool) *bestoverlap.EdgeOverlap
	BestContainer(r readinfo.ReadID) *bestoverlap.Containment
	IsContained(r readinfo.ReadID) bool
}

var (
	_ ReadInfo         = (*readinfo.ReadInfo)(nil)
	_ OverlapCache     = (*overlap.Cache)(nil)
	_ BestOverlapGraph = (*bestoverlap.Graph)(nil)
)
