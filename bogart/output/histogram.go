package output

import (
	"context"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"

	"github.com/grailbio/bogart/bogart/tig"
)

// WriteCoverageHistogram writes prefix.cga.0: two plain-text histograms,
// unitig length (power-of-two buckets) and arrival rate (0.01 buckets),
// the summary downstream consensus scheduling reads to estimate load. No
// coverage-stat histogram is written.
func WriteCoverageHistogram(ctx context.Context, tv *tig.TigVector, rates []float64, rateIDs []tig.TigID, prefix string) (err error) {
	dst, err := file.Create(ctx, prefix+".cga.0")
	if err != nil {
		return errors.E(err, "output: creating cga histogram", prefix)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := tsv.NewWriter(dst.Writer(ctx))

	rateByTig := make(map[tig.TigID]float64, len(rateIDs))
	for i, id := range rateIDs {
		rateByTig[id] = rates[i]
	}

	var lengths []int32
	var arrivalRates []float64
	tv.Each(func(u *tig.Unitig) {
		lengths = append(lengths, u.Length())
		arrivalRates = append(arrivalRates, rateByTig[u.ID()])
	})

	if err := writeHistogram(w, "length", int32Buckets(lengths)); err != nil {
		return errors.E(err, "output: writing cga histogram", prefix)
	}
	if err := writeHistogram(w, "arrivalRate", floatBuckets(arrivalRates)); err != nil {
		return errors.E(err, "output: writing cga histogram", prefix)
	}
	return w.Flush()
}

func writeHistogram(w *tsv.Writer, name string, buckets map[int64]int) error {
	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, k := range keys {
		w.WriteString(name)
		w.WriteInt64(k)
		w.WriteUint32(uint32(buckets[k]))
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return nil
}

// int32Buckets buckets values by the power-of-two bracket they fall in,
// matching the coarse length histograms the original assembler reports.
func int32Buckets(values []int32) map[int64]int {
	buckets := make(map[int64]int)
	for _, v := range values {
		bucket := int64(1)
		for bucket < int64(v) {
			bucket <<= 1
		}
		buckets[bucket]++
	}
	return buckets
}

func floatBuckets(values []float64) map[int64]int {
	buckets := make(map[int64]int)
	for _, v := range values {
		buckets[int64(v*100)]++ // bucketed to 0.01 coverage-per-base resolution
	}
	return buckets
}
