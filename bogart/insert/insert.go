// Package insert estimates a per-library insert-size distribution from
// the current unitig layout, used by mates.MateLocation to classify mate
// pairs as happy, compressed, stretched, or worse.
package insert

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/log"
	"gonum.org/v1/gonum/stat"

	"github.com/grailbio/bogart/bogart/external"
	"github.com/grailbio/bogart/bogart/readinfo"
	"github.com/grailbio/bogart/bogart/tig"
)

// minMatedForValid is the fewest trimmed observations a library needs
// before its distribution is trusted.
const minMatedForValid = 2

// libraryStats holds the estimated insert-size distribution for one
// library.
type libraryStats struct {
	mean, stddev float64
	valid        bool
	samples      int
}

// InsertSizes is the read-only-after-construction per-library insert-size
// table.
type InsertSizes struct {
	byLibrary map[readinfo.Library]libraryStats
}

// New scans every unitig for innie mate pairs wholly inside one unitig and
// estimates, per library, a trimmed mean/stddev: sort observations, take
// median/Q1/Q3, set approxStd = max(median-Q1, Q3-median), keep samples
// within median ± 5*approxStd, then recompute mean/stddev over the kept
// set.
func New(tv *tig.TigVector, fi external.ReadInfo) *InsertSizes {
	raw := make(map[readinfo.Library][]float64)

	tv.Each(func(u *tig.Unitig) {
		for _, n := range u.Ufpath {
			mate := fi.MateID(n.Ident)
			if mate == 0 || mate <= n.Ident {
				continue // count each pair once, from the lower-numbered read
			}
			if tv.InUnitig(mate) != u.ID() {
				continue // mate elsewhere: not an intra-unitig observation
			}

			mi := u.PathPosition(mate)
			if mi < 0 {
				continue
			}
			m := u.Ufpath[mi]

			if n.Position.Reverse() == m.Position.Reverse() {
				continue // not innie: same orientation
			}

			fwd, rev := n, m
			if fwd.Position.Reverse() {
				fwd, rev = rev, fwd
			}
			if fwd.Position.Reverse() || !rev.Position.Reverse() {
				continue
			}
			if fwd.Position.Bgn > rev.Position.Bgn {
				continue // misordered: forward read must lead
			}

			observed := rev.Position.Max() - fwd.Position.Min()
			if observed <= 0 {
				continue
			}

			lib := fi.LibraryID(n.Ident)
			raw[lib] = append(raw[lib], float64(observed))
		}
	})

	is := &InsertSizes{byLibrary: make(map[readinfo.Library]libraryStats, len(raw))}
	for lib, obs := range raw {
		is.byLibrary[lib] = estimate(obs)
	}
	return is
}

func estimate(obs []float64) libraryStats {
	if len(obs) < minMatedForValid {
		return libraryStats{samples: len(obs)}
	}

	sorted := append([]float64(nil), obs...)
	sort.Float64s(sorted)

	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)

	approxStd := q3 - median
	if median-q1 > approxStd {
		approxStd = median - q1
	}

	lo, hi := median-5*approxStd, median+5*approxStd
	var kept []float64
	for _, v := range sorted {
		if v >= lo && v <= hi {
			kept = append(kept, v)
		}
	}
	if len(kept) < minMatedForValid {
		return libraryStats{samples: len(kept)}
	}

	mean, stddev := stat.MeanStdDev(kept, nil)
	return libraryStats{mean: mean, stddev: stddev, valid: true, samples: len(kept)}
}

// NewWithStats builds an InsertSizes directly from precomputed per-library
// statistics, bypassing layout scanning. Used by tests and by callers that
// already have a trusted distribution (e.g. from a previous assembly
// round).
func NewWithStats(stats map[readinfo.Library]struct{ Mean, Stddev float64 }) *InsertSizes {
	is := &InsertSizes{byLibrary: make(map[readinfo.Library]libraryStats, len(stats))}
	for lib, s := range stats {
		is.byLibrary[lib] = libraryStats{mean: s.Mean, stddev: s.Stddev, valid: true, samples: minMatedForValid}
	}
	return is
}

// Mean returns the library's estimated mean insert size. Meaningless if
// Valid(lib) is false.
func (is *InsertSizes) Mean(lib readinfo.Library) float64 { return is.byLibrary[lib].mean }

// Stddev returns the library's estimated insert-size standard deviation.
// Meaningless if Valid(lib) is false.
func (is *InsertSizes) Stddev(lib readinfo.Library) float64 { return is.byLibrary[lib].stddev }

// Valid reports whether lib has enough mated reads to trust its
// distribution.
func (is *InsertSizes) Valid(lib readinfo.Library) bool { return is.byLibrary[lib].valid }

// Samples returns how many trimmed observations contributed to lib's
// estimate, for diagnostics.
func (is *InsertSizes) Samples(lib readinfo.Library) int { return is.byLibrary[lib].samples }

// Report logs a one-line summary per library, used by the CLI driver
// after InsertSizes construction.
func (is *InsertSizes) Report() {
	for lib, s := range is.byLibrary {
		log.Info(fmt.Sprintf("InsertSizes()-- library %d: mean=%.1f stddev=%.1f samples=%d valid=%v", lib, s.mean, s.stddev, s.samples, s.valid))
	}
}
