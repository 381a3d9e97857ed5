package passes

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/bogartcfg"
	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/tig"
)

// SplitDiscontinuousUnitigs scans every unitig left-to-right after
// sorting and normalizing to start at 0, cutting wherever the next read's
// minimum coordinate lies past the running maximum end minus
// cfg.MinOverlapLen, i.e. wherever it overlaps the reads before it by less
// than cfg.MinOverlapLen. Each surviving run of dovetail-connected reads
// beyond the first becomes its own unitig, renormalized to start at 0.
//
// A run of exactly one node that is both contained and unmated is a
// special case: rather than becoming its own (trivial, likely spurious)
// singleton, it is reattached to its container's unitig if that unitig is
// still alive; if the container was itself shattered by an earlier split
// in this same pass, the read is dropped (removed from the read-to-unitig
// map) and the loss is logged at INFO rather than treated as an error.
//
// Returns the number of new unitigs created.
func SplitDiscontinuousUnitigs(tv *tig.TigVector, fi external.ReadInfo, cfg *bogartcfg.Config) int {
	created := 0

	var ids []tig.TigID
	tv.Each(func(u *tig.Unitig) { ids = append(ids, u.ID()) })

	for _, id := range ids {
		u := tv.Get(id)
		if u == nil || len(u.Ufpath) == 0 {
			continue
		}

		u.Sort()

		offset := u.Ufpath[0].Position.Min()
		if offset != 0 {
			u.ShiftBy(-offset)
		}

		groups := splitPoints(u, cfg.MinOverlapLen)
		if len(groups) <= 1 {
			continue
		}

		// Process groups back-to-front so indices into the still-truncating
		// original Ufpath remain valid.
		for gi := len(groups) - 1; gi >= 1; gi-- {
			bgn, end := groups[gi][0], groups[gi][1]
			nodes := append([]tig.UFNode(nil), u.Ufpath[bgn:end]...)

			if len(nodes) == 1 && nodes[0].Contained != 0 && fi.MateID(nodes[0].Ident) == 0 {
				reattachOrphanedContainee(tv, nodes[0])
				u.Truncate(bgn)
				continue
			}

			groupOffset := nodes[0].Position.Min()
			for i := range nodes {
				nodes[i].Position.Bgn -= groupOffset
				nodes[i].Position.End -= groupOffset
			}
			nodes[0].Contained = 0

			nu, err := tv.NewUnitig(false)
			if err != nil {
				log.Error(fmt.Sprintf("SplitDiscontinuousUnitigs()-- failed to allocate split unitig: %v", err))
				continue
			}
			for _, n := range nodes {
				nu.AddRead(n, 0, false)
			}
			nu.Sort()
			created++

			u.Truncate(bgn)
		}
	}

	return created
}

// splitPoints returns the [bgn,end) index ranges of each dovetail-
// connected run in u.Ufpath (already sorted), cutting wherever a read
// overlaps the running maximum end by less than minOverlap.
func splitPoints(u *tig.Unitig, minOverlap int32) [][2]int {
	if len(u.Ufpath) == 0 {
		return nil
	}

	var groups [][2]int
	groupStart := 0
	maxEnd := u.Ufpath[0].Position.Max()

	for i := 1; i < len(u.Ufpath); i++ {
		n := u.Ufpath[i]
		if n.Position.Min() > maxEnd-minOverlap {
			groups = append(groups, [2]int{groupStart, i})
			groupStart = i
			maxEnd = n.Position.Max()
			continue
		}
		if n.Position.Max() > maxEnd {
			maxEnd = n.Position.Max()
		}
	}
	groups = append(groups, [2]int{groupStart, len(u.Ufpath)})
	return groups
}

// reattachOrphanedContainee re-places a single contained, unmated read
// back onto its container's unitig, or drops it if the container unitig
// no longer exists.
func reattachOrphanedContainee(tv *tig.TigVector, node tig.UFNode) {
	containerTig := tv.InUnitig(node.Contained)
	if containerTig == 0 {
		log.Info(fmt.Sprintf("SplitDiscontinuousUnitigs()-- orphaned containee %d's container %d has no unitig; dropping read", node.Ident, node.Contained))
		tv.Unregister(node.Ident)
		return
	}
	container := tv.Get(containerTig)
	if container == nil {
		log.Info(fmt.Sprintf("SplitDiscontinuousUnitigs()-- orphaned containee %d's container tig %d was deleted; dropping read", node.Ident, containerTig))
		tv.Unregister(node.Ident)
		return
	}

	container.AddRead(node, 0, false)
	container.Sort()
}
