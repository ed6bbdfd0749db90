package classify

import (
	"sort"

	"ontdemux/internal/paf"
)

// coverage is the outcome of validating the compatible alignment set
// against the read.
type coverage struct {
	ok       bool // false on overlap or excess unmatched bases
	first    int  // target position of the read's first base
	last     int  // target position of the read's last base
	unused   int  // read bases outside every segment
	segments []Segment
}

// validateSegments sorts the compatible set by read-relative start and
// checks that the segments are strictly non-overlapping and leave at most
// maxUnmatched read bases uncovered. Either violation is reported the same
// way; the caller maps it to ExcessUnmatched.
func validateSegments(recs []paf.Record, readLen, maxUnmatched int) coverage {
	sorted := make([]paf.Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].QStart < sorted[j].QStart })

	var cov coverage
	cov.segments = make([]Segment, len(sorted))
	overlap := false
	unused := sorted[0].QStart
	for i, r := range sorted {
		cov.segments[i] = Segment{Start: r.QStart, End: r.QEnd}
		if i > 0 {
			gap := r.QStart - sorted[i-1].QEnd
			if gap < 0 {
				overlap = true
			} else {
				unused += gap
			}
		}
	}
	unused += readLen - sorted[len(sorted)-1].QEnd
	cov.unused = unused
	cov.ok = !overlap && unused <= maxUnmatched

	// The read's first base sits at the left edge of the read-leftmost
	// segment; on the minus strand that edge is the segment's target end.
	head, tail := sorted[0], sorted[len(sorted)-1]
	if head.Strand == '-' {
		cov.first = head.TEnd
		cov.last = tail.TStart
	} else {
		cov.first = head.TStart
		cov.last = tail.TEnd
	}
	return cov
}
