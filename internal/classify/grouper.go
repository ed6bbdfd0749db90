package classify

import "ontdemux/internal/paf"

// Group is all mapping records sharing one read id.
type Group struct {
	ReadID  string
	Records []paf.Record
}

// Grouper buffers records by read id. PAF output need not be sorted by
// read, so the full input is collected before classification starts; this
// is the pipeline's only global synchronization point. First-seen order is
// preserved so downstream output is deterministic.
//
// Reads whose declared length exceeds their target's length cannot be a
// valid single-pass alignment against that reference and are dropped
// entirely rather than classified.
type Grouper struct {
	groups  map[string]*Group
	order   []string
	dropped map[string]bool
}

func NewGrouper() *Grouper {
	return &Grouper{
		groups:  make(map[string]*Group),
		dropped: make(map[string]bool),
	}
}

// Add buffers one record. It returns false when the record's read has been
// dropped by the length check.
func (g *Grouper) Add(rec paf.Record) bool {
	if g.dropped[rec.ReadID] {
		return false
	}
	if rec.Mapped() && rec.ReadLen > rec.TLen {
		g.dropped[rec.ReadID] = true
		if gr := g.groups[rec.ReadID]; gr != nil {
			delete(g.groups, rec.ReadID)
			for i, id := range g.order {
				if id == rec.ReadID {
					g.order = append(g.order[:i], g.order[i+1:]...)
					break
				}
			}
		}
		return false
	}
	gr := g.groups[rec.ReadID]
	if gr == nil {
		gr = &Group{ReadID: rec.ReadID}
		g.groups[rec.ReadID] = gr
		g.order = append(g.order, rec.ReadID)
	}
	gr.Records = append(gr.Records, rec)
	return true
}

// Groups returns the buffered groups in first-seen order.
func (g *Grouper) Groups() []Group {
	out := make([]Group, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.groups[id])
	}
	return out
}

// Dropped reports how many reads the length check excluded.
func (g *Grouper) Dropped() int { return len(g.dropped) }
