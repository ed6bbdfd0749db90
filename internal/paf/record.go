// Package paf reads minimap2 PAF mapping records.
package paf

// Record is a single PAF mapping line: one alignment of (part of) a read
// onto a target sequence. Coordinates are 0-based half-open, as written by
// minimap2. Unmapped reads carry Target == "*".
type Record struct {
	ReadID  string
	ReadLen int
	QStart  int
	QEnd    int
	Strand  byte // '+', '-', or '*' for unmapped records
	Target  string
	TLen    int
	TStart  int
	TEnd    int
	Matches int
	MapQ    int
}

// Mapped reports whether the record represents an actual alignment.
func (r Record) Mapped() bool { return r.Target != "*" }

// Span is the aligned length on the target.
func (r Record) Span() int { return r.TEnd - r.TStart }
