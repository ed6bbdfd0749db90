package classify

import (
	"ontdemux/internal/cutsite"
	"ontdemux/internal/genome"
)

// Engine classifies read groups against an immutable cut-site index. It is
// safe for concurrent use.
type Engine struct {
	cfg   Config
	sites *cutsite.Index
}

func New(cfg Config, sites *cutsite.Index) *Engine {
	return &Engine{cfg: cfg, sites: sites}
}

// Classify runs one read group through the gate sequence
// Unmapped → LowMapQ → ExcessUnmatched → strategy table. Each read
// terminates at the first applicable gate.
func (e *Engine) Classify(g Group) Classification {
	c := Classification{ReadID: g.ReadID}
	if len(g.Records) > 0 {
		c.ReadLen = g.Records[0].ReadLen
	}
	if len(g.Records) == 0 || !mapped(g) {
		c.Status = Unmapped
		return c
	}

	primary := selectPrimary(g.Records)
	c.Chrom = primary.Target
	if primary.MapQ < e.cfg.MapQThreshold {
		c.Status = LowMapQ
		return c
	}
	c.Strand = primary.Strand

	cov := validateSegments(compatible(g.Records, primary), c.ReadLen, e.cfg.MaxUnmatched)
	c.First, c.Last = cov.first, cov.last
	c.Unused = cov.unused
	c.Segments = cov.segments
	if !cov.ok {
		c.Status = ExcessUnmatched
		return c
	}

	ctg := e.sites.Chrom(primary.Target)
	geo := genome.Geometry{Length: primary.TLen, Circular: ctg != nil && ctg.Circular}
	start := e.matchSite(ctg, geo, cov.first, startEnd, primary.Strand)
	end := e.matchSite(ctg, geo, cov.last, endEnd, primary.Strand)

	c.Status, c.Site = decide(start, end, e.cfg.Strategy)
	return c
}

func mapped(g Group) bool {
	for _, r := range g.Records {
		if !r.Mapped() {
			return false
		}
	}
	return true
}

// decide folds the two end matches through the selection strategy. The
// site return is non-nil only when a single site accounts for the match:
// for Matched, and for MatchBoth under xor (the benchmarking strategy
// still reports which site both ends hit).
func decide(start, end *cutsite.Site, strategy Strategy) (Status, *cutsite.Site) {
	switch {
	case start != nil && end != nil && start == end:
		if strategy == SelectXor {
			return MatchBoth, start
		}
		return Matched, start
	case start != nil && end != nil:
		return MisMatch, nil
	case start != nil:
		if strategy == SelectBoth {
			return MatchStart, nil
		}
		return Matched, start
	case end != nil:
		if strategy == SelectEither || strategy == SelectXor {
			return Matched, end
		}
		return MatchEnd, nil
	default:
		return Unmatched, nil
	}
}
