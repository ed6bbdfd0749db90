package classify

import (
	"ontdemux/internal/cutsite"
	"ontdemux/internal/genome"
)

// readEnd distinguishes the two mapped ends of a read.
type readEnd int

const (
	startEnd readEnd = iota
	endEnd
)

// matchSite maps one read-end position to the best candidate cut site on
// the chromosome, or nil when no site's window contains the position. The
// window around a site at x depends on which end is matched and the strand:
//
//	start,+  [x-margin,   x+maxDist]
//	end,+    [x-maxDist,  x+margin]
//	start,-  [x-maxDist,  x+margin]
//	end,-    [x-margin,   x+maxDist]
//
// The margin admits a few bases on the "wrong" side of the cut; maxDist
// bounds how far into the expected side the end may sit. When several
// windows contain the position the closest site wins; ties keep catalogue
// order.
func (e *Engine) matchSite(ctg *cutsite.Chrom, geo genome.Geometry, pos int, end readEnd, strand byte) *cutsite.Site {
	if ctg == nil {
		return nil
	}
	var before, after int
	if (end == startEnd) == (strand == '+') {
		before, after = e.cfg.Margin, e.cfg.MaxDistance
	} else {
		before, after = e.cfg.MaxDistance, e.cfg.Margin
	}

	pos = geo.Normalize(pos)
	var (
		best     *cutsite.Site
		bestDist int
	)
	for _, s := range ctg.Sites {
		if !geo.InWindow(pos, s.Pos-before, s.Pos+after) {
			continue
		}
		d := geo.Distance(pos, s.Pos)
		if best == nil || d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}
