// Package passes implements the consistency passes that restore bogart's
// unitig invariants after the initial layout and after any edit: placing
// contained reads, resurrecting zombies, splitting discontinuous or
// intersected unitigs, promoting singletons, and fixing up parent/hang.
package passes

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

// PlaceContainsUsingBestOverlaps places every unplaced, best-contained read
// whose container is already in a unitig, repeating until a full pass
// places nothing (bogart's fixed-point contain-placement loop). A read
// whose container is itself never placed indicates a circular containment
// chain and is left for PlaceZombies to resurrect; this is expected, not an
// error, and is logged at INFO rather than returned as a failure.
func PlaceContainsUsingBestOverlaps(tv *tig.TigVector, og external.BestOverlapGraph, fi external.ReadInfo) int {
	placedTotal := 0

	for {
		placedThisRound := 0

		for r := readinfo.ReadID(1); r <= fi.NumReads(); r++ {
			if fi.Ignored(r) || fi.Length(r) == 0 {
				continue
			}
			if tv.InUnitig(r) != 0 {
				continue
			}
			bc := og.BestContainer(r)
			if !bc.IsContained {
				continue
			}

			containerTig := tv.InUnitig(bc.Container)
			if containerTig == 0 {
				continue // container not placed yet; try again next round
			}
			u := tv.Get(containerTig)
			if u == nil {
				continue
			}

			frag := tig.UFNode{Ident: r}
			if !u.PlaceFragContainment(&frag, bc, fi) {
				continue
			}
			u.AddRead(frag, 0, false)
			placedThisRound++
		}

		placedTotal += placedThisRound
		if placedThisRound == 0 {
			break
		}
	}

	remaining := 0
	for r := readinfo.ReadID(1); r <= fi.NumReads(); r++ {
		if fi.Ignored(r) || fi.Length(r) == 0 {
			continue
		}
		if tv.InUnitig(r) == 0 && og.BestContainer(r).IsContained {
			remaining++
		}
	}
	if remaining > 0 {
		log.Info(fmt.Sprintf("PlaceContainsUsingBestOverlaps()-- stalled with %d contained reads still unplaced (circular containment chains)", remaining))
	}

	tv.Each(func(u *tig.Unitig) { u.Sort() })

	return placedTotal
}
