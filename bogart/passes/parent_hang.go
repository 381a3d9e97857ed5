package passes

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/bogartcfg"
	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/tig"
)

// SetParentAndHang rebuilds every unitig's parent/ahang/bhang fields from
// raw overlap evidence rather than the best-overlap graph: for each node
// after the first, every overlap to an already-placed, earlier peer in
// the same unitig is a candidate; among candidates whose hang converts to
// a non-negative ahang in the parent's reference frame, the thickest
// (longest, then lowest error rate) wins. A node with no qualifying
// candidate keeps parent 0 / hangs 0.
func SetParentAndHang(tv *tig.TigVector, oc external.OverlapCache, fi external.ReadInfo, cfg *bogartcfg.Config) {
	tv.Each(func(u *tig.Unitig) {
		for i := range u.Ufpath {
			u.Ufpath[i].Parent = 0
			u.Ufpath[i].AHang = 0
			u.Ufpath[i].BHang = 0
		}

		for i := 1; i < len(u.Ufpath); i++ {
			r := u.Ufpath[i].Ident

			var (
				bestFound  bool
				bestPeer   int
				bestAHang  int32
				bestBHang  int32
				bestLength int32
				bestErate  float64
			)

			for _, o := range oc.Overlaps(r) {
				pi := u.PathPosition(o.B)
				if pi < 0 || pi >= i {
					continue
				}
				parent := u.Ufpath[pi]
				parentForward := parent.Position.Bgn < parent.Position.End

				var ahang, bhang int32
				if parentForward {
					ahang, bhang = o.AHang, o.BHang
				} else {
					ahang, bhang = -o.BHang, -o.AHang
				}
				if ahang < 0 {
					continue
				}

				length := o.Length(fi.Length(r))
				better := !bestFound || length > bestLength || (length == bestLength && o.ErateBp1 < bestErate)
				if better {
					bestFound = true
					bestPeer = pi
					bestAHang = ahang
					bestBHang = bhang
					bestLength = length
					bestErate = o.ErateBp1
				}
			}

			if !bestFound {
				if cfg.LogFlags.Has(bogartcfg.LogSetParentAndHang) {
					log.Info(fmt.Sprintf("SetParentAndHang()-- read %d in tig %d has no qualifying parent", r, u.ID()))
				}
				continue
			}

			if bestAHang < 0 {
				log.Error(fmt.Sprintf("SetParentAndHang()-- clamping negative ahang for read %d in tig %d", r, u.ID()))
				bestAHang = 0
			}

			u.Ufpath[i].Parent = u.Ufpath[bestPeer].Ident
			u.Ufpath[i].AHang = bestAHang
			u.Ufpath[i].BHang = bestBHang

			if cfg.LogFlags.Has(bogartcfg.LogSetParentAndHang) {
				log.Info(fmt.Sprintf("SetParentAndHang()-- read %d in tig %d parent %d ahang %d bhang %d", r, u.ID(), u.Ufpath[i].Parent, bestAHang, bestBHang))
			}
		}
	})
}
