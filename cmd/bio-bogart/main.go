// Command bio-bogart runs the bogart unitigger core over a pre-built
// best-overlap graph and initial read layout, producing a tig-store and
// its auxiliary partitioning/histogram/diagnostic files.
//
// Overlap computation, best-overlap-graph construction, and initial
// unitig layout are external steps (see bogart/external); this driver
// only consumes their output from TSV sidecars.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/bogart/bogart/bestoverlap"
	"github.com/grailbio/bogart/bogart/bogartcfg"
	"github.com/grailbio/bogart/bogart/insert"
	"github.com/grailbio/bogart/bogart/mates"
	"github.com/grailbio/bogart/bogart/output"
	"github.com/grailbio/bogart/bogart/overlap"
	"github.com/grailbio/bogart/bogart/passes"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

const (
	exitOK          = 0
	exitConfigError = 1
	exitIOError     = 2
)

func usage() {
	fmt.Fprintln(os.Stderr, `bio-bogart: run the unitigger core over a pre-built overlap graph.

Usage:
  bio-bogart -reads reads.tsv -overlaps overlaps.tsv \
             -bestEdges edges.tsv -bestContains contains.tsv \
             -layout initial.tsv -o prefix [flags]

Flags:`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	var (
		readsPath     string
		overlapsPath  string
		bestEdgesPath string
		bestContPath  string
		layoutPath    string
		prefix        string
		tigStorePath  string
	)
	flag.StringVar(&readsPath, "reads", "", "path to the read-info TSV sidecar")
	flag.StringVar(&overlapsPath, "overlaps", "", "path to the overlap-cache TSV sidecar")
	flag.StringVar(&bestEdgesPath, "bestEdges", "", "path to the best-edge TSV sidecar")
	flag.StringVar(&bestContPath, "bestContains", "", "path to the best-containment TSV sidecar")
	flag.StringVar(&layoutPath, "layout", "", "path to the initial-layout TSV sidecar")
	flag.StringVar(&prefix, "o", "", "output prefix")
	flag.StringVar(&tigStorePath, "T", "", "tig-store path (default: <prefix>.tigStore)")

	cfg := bogartcfg.NewDefault()
	flag.IntVar(&cfg.ReadsPerPartition, "B", cfg.ReadsPerPartition, "target reads per partition")
	flag.BoolVar(&cfg.EnablePromoteToSingleton, "enablePromoteToSingleton", cfg.EnablePromoteToSingleton, "promote unplaced reads to singleton unitigs instead of marking them ignored")
	flag.BoolVar(&cfg.EnableIntersectionBreaking, "enableIntersectionBreaking", cfg.EnableIntersectionBreaking, "break unitigs at best-edge intersections")
	flag.Float64Var(&cfg.EGraphErate, "eGraphErate", cfg.EGraphErate, "error-rate cutoff the best-overlap graph was built with (recorded for logging)")
	flag.Float64Var(&cfg.EOverlap, "eOverlap", cfg.EOverlap, "overlap-length cutoff the best-overlap graph was built with (recorded for logging)")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if readsPath == "" || overlapsPath == "" || bestEdgesPath == "" || bestContPath == "" || layoutPath == "" || prefix == "" {
		log.Error("bio-bogart: -reads, -overlaps, -bestEdges, -bestContains, -layout, and -o are all required")
		os.Exit(exitConfigError)
	}
	if tigStorePath == "" {
		tigStorePath = prefix + ".tigStore"
	}
	log.Printf("bio-bogart: eGraphErate=%g eOverlap=%g", cfg.EGraphErate, cfg.EOverlap)

	fi, err := loadReadInfo(ctx, readsPath)
	if err != nil {
		log.Error(err.Error())
		os.Exit(exitIOError)
	}
	oc, err := loadOverlaps(ctx, overlapsPath)
	if err != nil {
		log.Error(err.Error())
		os.Exit(exitIOError)
	}
	og, err := loadBestOverlapGraph(ctx, bestEdgesPath, bestContPath)
	if err != nil {
		log.Error(err.Error())
		os.Exit(exitIOError)
	}
	tv, err := loadInitialLayout(ctx, layoutPath, fi.NumReads())
	if err != nil {
		log.Error(err.Error())
		os.Exit(exitIOError)
	}

	runCore(tv, fi, oc, og, cfg)

	is := insert.New(tv, fi)
	is.Report()

	reportMateHappiness(tv, fi, is, cfg)

	var rateIDs []tig.TigID
	tv.Each(func(u *tig.Unitig) { rateIDs = append(rateIDs, u.ID()) })
	rates := tv.ComputeArrivalRate(rateIDs)

	if err := output.WriteTigStore(ctx, tv, tigStorePath, prefix, cfg.ReadsPerPartition); err != nil {
		log.Error(err.Error())
		os.Exit(exitIOError)
	}
	if err := output.WriteCoverageHistogram(ctx, tv, rates, rateIDs, prefix); err != nil {
		log.Error(err.Error())
		os.Exit(exitIOError)
	}
	if err := output.WriteUnusedOverlaps(ctx, tv, fi, og, prefix); err != nil {
		log.Error(err.Error())
		os.Exit(exitIOError)
	}

	log.Printf("bio-bogart: wrote %d unitigs to %s", countLive(tv), tigStorePath)
	os.Exit(exitOK)
}

// runCore applies the post-processing passes in the order spec.md §2's data
// flow diagram gives: contain-placement, zombie resurrection, discontinuity
// split, intersection split, singleton promotion, then parent/hang fixup so
// the final layout's parent/ahang/bhang fields reflect the settled tigs
// rather than whatever the external layout builder recorded.
func runCore(tv *tig.TigVector, fi *readinfo.ReadInfo, oc *overlap.Cache, og *bestoverlap.Graph, cfg *bogartcfg.Config) {
	placed := passes.PlaceContainsUsingBestOverlaps(tv, og, fi)
	log.Printf("bio-bogart: placed %d contained reads", placed)

	zombies := passes.PlaceZombies(tv, fi)
	log.Printf("bio-bogart: resurrected %d zombie reads", zombies)

	splits := passes.SplitDiscontinuousUnitigs(tv, fi, cfg)
	log.Printf("bio-bogart: discontinuity split produced %d new unitigs", splits)

	breaks := passes.BreakUnitigsOnIntersections(tv, og, fi, cfg)
	log.Printf("bio-bogart: intersection split produced %d break points", len(breaks))

	singletons := passes.PromoteToSingleton(tv, fi, cfg.EnablePromoteToSingleton)
	log.Printf("bio-bogart: singleton promotion affected %d reads", singletons)

	passes.SetParentAndHang(tv, oc, fi, cfg)
}

// reportMateHappiness evaluates every unitig's mate-pair happiness and logs
// the fleet-wide aggregate counts (spec.md §4.5's "summed fleet-wide and
// reported").
func reportMateHappiness(tv *tig.TigVector, fi *readinfo.ReadInfo, is *insert.InsertSizes, cfg *bogartcfg.Config) {
	var total mates.Counts
	tv.Each(func(u *tig.Unitig) {
		ml := mates.Evaluate(u, tv, fi, is, cfg)
		for depth := 0; depth < 3; depth++ {
			c := ml.Counts(depth)
			total.Happy += c.Happy
			total.Compressed += c.Compressed
			total.Stretched += c.Stretched
			total.Normal += c.Normal
			total.Anti += c.Anti
			total.Outtie += c.Outtie
			total.GoodExternal += c.GoodExternal
			total.BadExternalFwd += c.BadExternalFwd
			total.BadExternalRev += c.BadExternalRev
		}
		if cfg.LogFlags.Has(bogartcfg.LogMateSplitAnalysis) {
			peaks := mates.FindPeakBadRegions(ml, cfg)
			if len(peaks) > 0 {
				log.Printf("bio-bogart: unitig %d has %d peak-bad region(s)", u.ID(), len(peaks))
			}
		}
	})
	log.Printf("bio-bogart: mate happiness: %+v", total)
}

func countLive(tv *tig.TigVector) int {
	n := 0
	tv.Each(func(*tig.Unitig) { n++ })
	return n
}
