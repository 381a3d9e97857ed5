package passes

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/bogartcfg"
	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

// BreakPoint names where BreakUnitigsOnIntersections decided to cut: the
// read at ReadID, whether the cut is on its 3' side, and whether the
// surviving suffix should become a new unitig (it always does in this
// port; CreateNew is kept to mirror the original's breakPoint shape for
// callers that log it).
type BreakPoint struct {
	ReadID    readinfo.ReadID
	End3p     bool
	CreateNew bool
	TigID     tig.TigID
}

// BreakUnitigsOnIntersections looks for non-contained reads whose best
// edge points into a different unitig than the one they are placed in
// (an "invasion"): evidence that the two unitigs should have been split at
// that boundary. An invading tig is ignored as a spur if it has too few
// reads or is too short (cfg.MinBreakFrags / cfg.MinBreakLength);
// surviving break points cut the invaded unitig immediately after the
// invading read, producing a new unitig from the remaining suffix.
//
// Returns the break points applied.
func BreakUnitigsOnIntersections(tv *tig.TigVector, og external.BestOverlapGraph, fi external.ReadInfo, cfg *bogartcfg.Config) []BreakPoint {
	if !cfg.EnableIntersectionBreaking {
		return nil
	}

	var applied []BreakPoint

	var ids []tig.TigID
	tv.Each(func(u *tig.Unitig) { ids = append(ids, u.ID()) })

	for _, id := range ids {
		u := tv.Get(id)
		if u == nil {
			continue
		}

		for i, node := range u.Ufpath {
			if node.Contained != 0 {
				continue
			}

			bp, ok := invasionAt(tv, og, fi, cfg, u, i, node, false)
			if ok {
				applied = append(applied, bp)
				continue
			}
			bp, ok = invasionAt(tv, og, fi, cfg, u, i, node, true)
			if ok {
				applied = append(applied, bp)
			}
		}
	}

	if len(applied) == 0 {
		log.Info("BreakUnitigsOnIntersections()-- no breaks found")
	}

	return applied
}

// invasionAt checks the best edge off node's 5' (end3p=false) or 3'
// (end3p=true) end for evidence of an invading unitig, applying the break
// if the invader is large enough to not be a spur.
func invasionAt(tv *tig.TigVector, og external.BestOverlapGraph, fi external.ReadInfo, cfg *bogartcfg.Config, u *tig.Unitig, idx int, node tig.UFNode, end3p bool) (BreakPoint, bool) {
	edge := og.BestEdge(node.Ident, end3p)
	if edge.FragID == 0 {
		return BreakPoint{}, false
	}

	peerTig := tv.InUnitig(edge.FragID)
	if peerTig == 0 || peerTig == u.ID() {
		return BreakPoint{}, false
	}

	peer := tv.Get(peerTig)
	if peer == nil {
		return BreakPoint{}, false
	}
	if isSpur(tv, og, peer, cfg) {
		return BreakPoint{}, false
	}

	// Cut this unitig immediately after idx; everything from idx+1 onward
	// becomes a new unitig.
	if idx+1 >= len(u.Ufpath) {
		return BreakPoint{}, false // nothing to cut off
	}

	tail := append([]tig.UFNode(nil), u.Ufpath[idx+1:]...)
	tailOffset := tail[0].Position.Min()
	for i := range tail {
		tail[i].Position.Bgn -= tailOffset
		tail[i].Position.End -= tailOffset
	}
	tail[0].Contained = 0

	nu, err := tv.NewUnitig(false)
	if err != nil {
		log.Error(fmt.Sprintf("BreakUnitigsOnIntersections()-- failed to allocate split unitig: %v", err))
		return BreakPoint{}, false
	}
	for _, n := range tail {
		nu.AddRead(n, 0, false)
	}
	nu.Sort()
	u.Truncate(idx + 1)

	if cfg.LogFlags.Has(bogartcfg.LogIntersectionBreaking) {
		log.Info(fmt.Sprintf("BreakUnitigsOnIntersections()-- tig %d broken after read %d (end3p=%v), invading tig %d; new tig %d with %d reads", u.ID(), node.Ident, end3p, peerTig, nu.ID(), nu.NumReads()))
	}

	return BreakPoint{ReadID: node.Ident, End3p: end3p, CreateNew: true, TigID: nu.ID()}, true
}

// isSpur reports whether a unitig is too small to justify a break: fewer
// than cfg.MinBreakFrags+1 reads, shorter than cfg.MinBreakLength, or a
// singleton with no other best edges reaching beyond itself.
func isSpur(tv *tig.TigVector, og external.BestOverlapGraph, u *tig.Unitig, cfg *bogartcfg.Config) bool {
	if int32(u.NumReads()) <= cfg.MinBreakFrags {
		return true
	}
	if u.Length() < cfg.MinBreakLength {
		return true
	}
	if u.NumReads() == 1 {
		r := u.Ufpath[0].Ident
		e5, e3 := og.BestEdge(r, false), og.BestEdge(r, true)
		if e5.FragID == 0 && e3.FragID == 0 {
			return true
		}
		if e5.FragID != 0 && tv.InUnitig(e5.FragID) == u.ID() && e3.FragID != 0 && tv.InUnitig(e3.FragID) == u.ID() {
			return true
		}
	}
	return false
}
