// Package bogartcfg holds the configuration and tunable thresholds shared
// by every bogart pass. It replaces the original C++ program's process-wide
// globals (FI, OG, OC, IS, logFile) with a single struct threaded explicitly
// through each pass, as recommended for this port.
package bogartcfg

// LogFlags is a bit set controlling optional detail logging, matching the
// flag names used by the original assembler.
type LogFlags uint32

const (
	LogIntersectionBreaking LogFlags = 1 << iota
	LogMateSplitAnalysis
	LogMateSplitCoveragePlot
	LogPlaceFrag
	LogSetParentAndHang
	LogHappiness
	LogInitialContainedPlacement
)

// Has reports whether f is set in the flags.
func (l LogFlags) Has(f LogFlags) bool {
	return l&f != 0
}

// Config carries the thresholds and command-line options that drive the
// unitigger passes. A single Config is built once in main and passed by
// pointer to every pass; it is read-only after construction and safe to
// share across goroutines.
type Config struct {
	// MinOverlapLen is the shortest dovetail overlap considered to keep a
	// unitig connected (spec invariant: dovetail-connected).
	MinOverlapLen int32

	// MinBreakLength and MinBreakFrags gate which intersection-split
	// candidate break points are accepted: the invading tig must be at
	// least MinBreakLength long and have more than MinBreakFrags reads,
	// or it is treated as a spur and ignored.
	MinBreakLength int32
	MinBreakFrags  int32

	// BadMateInterStddev / BadMateIntraStddev scale an insert size
	// library's stddev to obtain the "bad mate" bracket. NOTE: matching
	// the original assembler's v1.89 compatibility override, bogart sets
	// the Intra bracket equal to the Inter bracket at construction time
	// (see NewDefault) rather than using a wider 5-stddev bracket; see
	// DESIGN.md.
	BadMateInterStddev float64
	BadMateIntraStddev float64

	// PeakBadThreshold is the (negative) badness level a contiguous run
	// must fall below to be reported as a peak-bad region.
	PeakBadThreshold int32
	// PeakBadMaxFraction bounds how much of a unitig may be bad before
	// peak search is skipped entirely (0.25 = 25%).
	PeakBadMaxFraction float64

	// EnablePromoteToSingleton controls whether unplaced reads become
	// singleton unitigs (true) or are marked ignored (false).
	EnablePromoteToSingleton bool
	// EnableIntersectionBreaking toggles passes.BreakUnitigsOnIntersections.
	EnableIntersectionBreaking bool

	// EGraphErate / EOverlap are the error-rate and overlap-length cutoffs
	// applied when the best-overlap graph was built; bogart itself treats
	// them as opaque thresholds recorded for logging; no pass reads them.
	EGraphErate float64
	EOverlap    float64

	// ReadsPerPartition is the target partition size (spec.md "T" in
	// output.WriteTigStore), at least one tig per partition.
	ReadsPerPartition int

	LogFlags LogFlags
}

// NewDefault returns the Config used by `cmd/bio-bogart` when no
// command-line overrides are given.
func NewDefault() *Config {
	return &Config{
		MinOverlapLen:              40,
		MinBreakLength:             500,
		MinBreakFrags:              1,
		BadMateInterStddev:         3,
		BadMateIntraStddev:         3, // kept equal to Inter, see field comment
		PeakBadThreshold:           -1,
		PeakBadMaxFraction:         0.25,
		EnablePromoteToSingleton:   true,
		EnableIntersectionBreaking: true,
		ReadsPerPartition:          2500,
	}
}
