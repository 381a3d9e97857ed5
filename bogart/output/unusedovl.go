package output

import (
	"bufio"
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"

	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

// WriteUnusedOverlaps writes prefix.unused.ovl: one ASCII MESG_OVL-style
// record per best edge whose two reads ended up in different unitigs
// (i.e. the edge was evidence bogart chose not to act on), so downstream
// tools can audit what got discarded.
func WriteUnusedOverlaps(ctx context.Context, tv *tig.TigVector, fi external.ReadInfo, og external.BestOverlapGraph, prefix string) (err error) {
	dst, err := file.Create(ctx, prefix+".unused.ovl")
	if err != nil {
		return errors.E(err, "output: creating unused.ovl", prefix)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := bufio.NewWriter(dst.Writer(ctx))

	for r := readinfo.ReadID(1); r <= fi.NumReads(); r++ {
		if fi.Length(r) == 0 {
			continue
		}
		rTig := tv.InUnitig(r)

		if e := og.BestEdge(r, false); e.FragID != 0 {
			writeUnusedEdge(w, rTig, tv, r, e)
		}
		if e := og.BestEdge(r, true); e.FragID != 0 {
			writeUnusedEdge(w, rTig, tv, r, e)
		}
	}

	return w.Flush()
}

func writeUnusedEdge(w *bufio.Writer, rTig tig.TigID, tv *tig.TigVector, r readinfo.ReadID, e *bestoverlap.EdgeOverlap) {
	peerTig := tv.InUnitig(e.FragID)
	if peerTig == 0 || peerTig == rTig {
		return // the edge was used (or unplaced); nothing unused to report
	}
	fmt.Fprintf(w, "{MESG_OVL\nalt:%d\nbid:%d\nahg:%d\nbhg:%d\n}\n", r, e.FragID, e.AHang, e.BHang)
}
