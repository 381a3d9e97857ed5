package tig

import "sort"

// ErrorInterval is one half-open [Bgn,End) span of a unitig's error
// profile, carrying the mean and stddev error rate observed across reads
// covering that span (spec.md §3).
type ErrorInterval struct {
	Bgn, End int32
	Mean     float64
	Stddev   float64
}

// errorProfile is a sorted, non-overlapping list of ErrorIntervals
// covering part or all of a unitig. Point queries use binary search over
// the interval starts, the same technique grailbio/bio/interval's
// EndpointIndex helpers use for BED interval-unions (adapted here for a
// plain sorted-interval list rather than a chromosome endpoint union,
// since error-profile intervals belong to a single unitig's coordinate
// space and never need cross-sequence lookup).
type errorProfile struct {
	intervals []ErrorInterval // sorted by Bgn, non-overlapping
}

// newErrorProfile builds a profile from unsorted intervals, sorting them
// by start coordinate.
func newErrorProfile(intervals []ErrorInterval) *errorProfile {
	cp := make([]ErrorInterval, len(intervals))
	copy(cp, intervals)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Bgn < cp[j].Bgn })
	return &errorProfile{intervals: cp}
}

// at returns the interval covering pos, and whether one was found.
func (ep *errorProfile) at(pos int32) (ErrorInterval, bool) {
	if ep == nil || len(ep.intervals) == 0 {
		return ErrorInterval{}, false
	}
	// Find the first interval whose Bgn is > pos, then step back one: that
	// is the only candidate that could contain pos, since intervals are
	// non-overlapping and sorted.
	i := sort.Search(len(ep.intervals), func(i int) bool { return ep.intervals[i].Bgn > pos })
	if i == 0 {
		return ErrorInterval{}, false
	}
	iv := ep.intervals[i-1]
	if pos >= iv.Bgn && pos < iv.End {
		return iv, true
	}
	return ErrorInterval{}, false
}

// ErrorRateAt answers "what mean/stddev error rate does this unitig's
// profile report at position pos", used to ask whether an overlap of a
// given error rate is consistent with the tig (spec.md §3).
func (u *Unitig) ErrorRateAt(pos int32) (mean, stddev float64, ok bool) {
	iv, found := u.errorProfile.at(pos)
	if !found {
		return 0, 0, false
	}
	return iv.Mean, iv.Stddev, true
}

// IsConsistentErate reports whether an overlap with error rate erate over
// [bgn,end) is consistent with this unitig's profile: within
// stddevLimit standard deviations of the profile mean across the whole
// span. If no profile has been computed, everything is considered
// consistent.
func (u *Unitig) IsConsistentErate(bgn, end int32, erate, stddevLimit float64) bool {
	if u.errorProfile == nil {
		return true
	}
	for pos := bgn; pos < end; pos++ {
		mean, stddev, ok := u.ErrorRateAt(pos)
		if !ok {
			continue
		}
		if stddev == 0 {
			if erate != mean {
				return false
			}
			continue
		}
		if erate < mean-stddevLimit*stddev || erate > mean+stddevLimit*stddev {
			return false
		}
	}
	return true
}

// SetErrorProfile installs a precomputed error profile, used by
// TigVector.ComputeErrorProfiles.
func (u *Unitig) SetErrorProfile(intervals []ErrorInterval) {
	u.errorProfile = newErrorProfile(intervals)
}
