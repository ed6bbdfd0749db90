// Package classify assigns reads to cut sites from their PAF alignment
// evidence: pick the primary alignment per read, validate that compatible
// alignments cover the read, match the mapped read ends to cut sites, and
// fold the two end matches through the selection strategy.
package classify

import (
	"fmt"
	"strings"

	"ontdemux/internal/cutsite"
)

// Status is the terminal classification of one read. Every read gets
// exactly one.
type Status int

const (
	Unmapped Status = iota
	LowMapQ
	ExcessUnmatched
	Unmatched
	MisMatch
	MatchStart
	MatchEnd
	MatchBoth
	Matched
)

var statusNames = [...]string{
	Unmapped:        "Unmapped",
	LowMapQ:         "LowMapQ",
	ExcessUnmatched: "ExcessUnmatched",
	Unmatched:       "Unmatched",
	MisMatch:        "MisMatch",
	MatchStart:      "MatchStart",
	MatchEnd:        "MatchEnd",
	MatchBoth:       "MatchBoth",
	Matched:         "Matched",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Strategy decides which end matches select a read.
type Strategy int

const (
	// SelectStart selects reads whose start matches a cut site.
	SelectStart Strategy = iota
	// SelectBoth requires both ends to match the same site (circular
	// chromosomes only).
	SelectBoth
	// SelectEither selects on either end.
	SelectEither
	// SelectXor selects reads matched on exactly one end; reads matched on
	// both ends are reported as MatchBoth for benchmarking.
	SelectXor
)

func (s Strategy) String() string {
	switch s {
	case SelectStart:
		return "start"
	case SelectBoth:
		return "both"
	case SelectEither:
		return "either"
	case SelectXor:
		return "xor"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy accepts the -select flag values.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "start":
		return SelectStart, nil
	case "both":
		return SelectBoth, nil
	case "either":
		return SelectEither, nil
	case "xor":
		return SelectXor, nil
	}
	return 0, fmt.Errorf("unknown selection strategy %q (want start|both|either|xor)", s)
}

// Segment is a read-relative half-open interval covered by one alignment
// of the compatible set.
type Segment struct {
	Start int
	End   int
}

// Classification is the per-read result. It is produced exactly once per
// read id and never mutated afterwards.
type Classification struct {
	ReadID   string
	Status   Status
	Site     *cutsite.Site // set for Matched, and MatchBoth under xor
	Chrom    string        // primary chromosome; "" when unmapped
	Strand   byte          // '+', '-', or 0 when not applicable
	First    int           // target position of the read's first base
	Last     int           // target position of the read's last base
	ReadLen  int
	Unused   int // bases of the read not covered by the compatible set
	Segments []Segment
}

// Config holds the classification tunables.
type Config struct {
	MapQThreshold int
	MaxDistance   int
	Margin        int
	MaxUnmatched  int
	Strategy      Strategy
}
