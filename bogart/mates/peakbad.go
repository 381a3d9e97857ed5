package mates

import "github.com/grailbio/bogart/bogart/bogartcfg"

// Region is a contiguous half-open interval of elevated bad-mate density,
// a candidate split location.
type Region struct {
	Bgn, End int32
}

// FindPeakBadRegions scans ml's positional badness (badFwd+badRev, negated)
// for contiguous runs at or below cfg.PeakBadThreshold. The search is
// skipped entirely if more than cfg.PeakBadMaxFraction of the unitig's
// positions are bad at all, matching the original's guard against scoring
// a unitig that is bad almost everywhere.
func FindPeakBadRegions(ml *MateLocation, cfg *bogartcfg.Config) []Region {
	n := len(ml.badFwd)
	if n == 0 {
		return nil
	}

	badCount := 0
	badness := make([]int32, n)
	for i := 0; i < n; i++ {
		b := ml.badFwd[i] + ml.badRev[i]
		if b > 0 {
			badCount++
		}
		badness[i] = -b
	}

	if float64(badCount) > cfg.PeakBadMaxFraction*float64(n) {
		return nil
	}

	var regions []Region
	inRegion := false
	var bgn int32

	for i := 0; i < n; i++ {
		below := badness[i] <= cfg.PeakBadThreshold
		switch {
		case below && !inRegion:
			inRegion = true
			bgn = int32(i)
		case !below && inRegion:
			inRegion = false
			regions = append(regions, Region{Bgn: bgn, End: int32(i)})
		}
	}
	if inRegion {
		regions = append(regions, Region{Bgn: bgn, End: int32(n)})
	}

	return regions
}
