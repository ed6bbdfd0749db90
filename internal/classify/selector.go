package classify

import "ontdemux/internal/paf"

// selectPrimary finds the alignment with the greatest aligned target span.
// Ties keep the earlier record, so selection is deterministic for a given
// input order.
func selectPrimary(records []paf.Record) paf.Record {
	best := records[0]
	for _, r := range records[1:] {
		if r.Span() > best.Span() {
			best = r
		}
	}
	return best
}

// compatible returns every record sharing the primary's chromosome and
// strand, regardless of MAPQ. Low-quality secondary records still describe
// where read bases went, which is what the segment check needs.
func compatible(records []paf.Record, primary paf.Record) []paf.Record {
	var out []paf.Record
	for _, r := range records {
		if r.Target == primary.Target && r.Strand == primary.Strand {
			out = append(out, r)
		}
	}
	return out
}
