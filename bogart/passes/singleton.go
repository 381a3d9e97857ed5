package passes

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

// PromoteToSingleton handles reads with nonzero length that never landed
// in a unitig after every other pass has run: when enabled each becomes
// its own singleton unitig spanning [0, length); when disabled the read is
// marked ignored instead, matching FI->markAsIgnore in the original.
// Returns the number of reads promoted (0 when enable is false).
func PromoteToSingleton(tv *tig.TigVector, fi external.ReadInfo, enable bool) int {
	promoted := 0

	for r := readinfo.ReadID(1); r <= fi.NumReads(); r++ {
		if fi.Ignored(r) || fi.Length(r) == 0 {
			continue
		}
		if tv.InUnitig(r) != 0 {
			continue
		}

		if !enable {
			fi.MarkIgnore(r)
			continue
		}

		u, err := tv.NewUnitig(false)
		if err != nil {
			log.Error(fmt.Sprintf("PromoteToSingleton()-- failed to allocate unitig for read %d: %v", r, err))
			continue
		}
		u.AddRead(tig.UFNode{
			Ident:    r,
			Position: tig.Position{Bgn: 0, End: int32(fi.Length(r))},
		}, 0, false)
		promoted++
	}

	if promoted > 0 {
		log.Info(fmt.Sprintf("PromoteToSingleton()-- promoted %d reads to singleton unitigs", promoted))
	}
	return promoted
}
