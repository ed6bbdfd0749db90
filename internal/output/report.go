// Package output formats the per-read classification report and maps
// classifications to their output channel.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"ontdemux/internal/classify"
)

// Header is the report's first row. Segment (start,end) pairs follow the
// splits column, two columns per segment.
const Header = "read_id\tmatch_status\tcut_site/contig\tsample\tstrand\tfirst_pos\tlast_pos\tread_length\tunmatched\tunmatched_prop\tsplits"

// FormatRow renders one classification as a TSV row (no trailing newline).
// Columns that a status cannot supply are written as "*".
func FormatRow(c classify.Classification) string {
	var b strings.Builder
	b.WriteString(c.ReadID)
	b.WriteByte('\t')
	b.WriteString(c.Status.String())

	switch c.Status {
	case classify.Unmapped:
		b.WriteString("\t*\t*\t*\t*\t*\t")
		b.WriteString(strconv.Itoa(c.ReadLen))
		b.WriteString("\t*\t*")
		return b.String()
	case classify.LowMapQ:
		fmt.Fprintf(&b, "\t%s\t*\t*\t*\t*\t%d\t*\t*", c.Chrom, c.ReadLen)
		return b.String()
	}

	label, sample := c.Chrom, "*"
	if c.Site != nil {
		label, sample = c.Site.Name, c.Site.Sample
	}
	prop := "*"
	if c.ReadLen > 0 {
		prop = strconv.FormatFloat(float64(c.Unused)/float64(c.ReadLen), 'f', 4, 64)
	}
	fmt.Fprintf(&b, "\t%s\t%s\t%c\t%d\t%d\t%d\t%d\t%s",
		label, sample, c.Strand, c.First, c.Last, c.ReadLen, c.Unused, prop)
	for _, s := range c.Segments {
		fmt.Fprintf(&b, "\t%d\t%d", s.Start, s.End)
	}
	return b.String()
}

// StartReportWriter spins up the single writer goroutine for the report.
// Classifications arrive already ordered; the goroutine only owns the
// io.Writer.
func StartReportWriter(w io.Writer, header bool, bufSize int) (chan<- classify.Classification, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan classify.Classification, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		if header {
			_, err = io.WriteString(w, Header+"\n")
		}
		for c := range in {
			if err != nil {
				continue
			}
			_, err = io.WriteString(w, FormatRow(c)+"\n")
		}
		errCh <- err
	}()

	return in, errCh
}
