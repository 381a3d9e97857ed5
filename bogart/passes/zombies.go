package passes

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

// PlaceZombies resurrects every read with nonzero length that is still
// unplaced after PlaceContainsUsingBestOverlaps, giving each its own
// singleton unitig at [0, length). These are almost always reads caught in
// a circular best-containment chain that never resolves to a placed
// container. Returns the number of reads resurrected.
func PlaceZombies(tv *tig.TigVector, fi external.ReadInfo) int {
	zombies := 0

	for r := readinfo.ReadID(1); r <= fi.NumReads(); r++ {
		if fi.Ignored(r) || fi.Length(r) == 0 {
			continue
		}
		if tv.InUnitig(r) != 0 {
			continue
		}

		u, err := tv.NewUnitig(false)
		if err != nil {
			log.Error(fmt.Sprintf("PlaceZombies()-- failed to allocate unitig for read %d: %v", r, err))
			continue
		}
		u.AddRead(tig.UFNode{
			Ident:    r,
			Position: tig.Position{Bgn: 0, End: int32(fi.Length(r))},
		}, 0, false)
		zombies++
	}

	if zombies > 0 {
		log.Info(fmt.Sprintf("PlaceZombies()-- resurrected %d zombie reads", zombies))
	}
	return zombies
}
