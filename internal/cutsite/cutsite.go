// Package cutsite holds the catalogue of expected CRISPR cut positions.
// The catalogue is built once at startup and never mutated afterwards, so
// it can be shared across workers without locking.
package cutsite

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reserved output channel names that cut sites must not collide with.
const (
	Unmapped  = "unmapped"
	Unmatched = "unmatched"
	LowMapQ   = "low_mapq"
)

// Site is one expected cut position. Pos is 1-based: the first base after
// the cut.
type Site struct {
	Chrom  string
	Pos    int
	Name   string
	Sample string
}

// Chrom groups the sites of one chromosome. Sites keep catalogue input
// order; window ties are broken by that order.
type Chrom struct {
	Name     string
	Circular bool
	Sites    []*Site

	circularSet bool
}

// Index maps chromosome names to their cut sites.
type Index struct {
	chroms map[string]*Chrom
	order  []string // chromosome first-seen order
	names  []string // unique site names in file order
}

// Chrom returns the entry for name, or nil when the catalogue has no sites
// on that chromosome.
func (x *Index) Chrom(name string) *Chrom {
	return x.chroms[name]
}

// Chroms returns chromosome names in catalogue order.
func (x *Index) Chroms() []string { return x.order }

// SiteNames returns the unique cut-site names in catalogue order. These are
// the per-site output channel keys.
func (x *Index) SiteNames() []string { return x.names }

// ValidateStrategy rejects configurations that cannot be meaningful: the
// "both" strategy needs both read ends anchored around a circular target.
func (x *Index) ValidateStrategy(strategy string) error {
	if strategy != "both" {
		return nil
	}
	for _, name := range x.order {
		if !x.chroms[name].Circular {
			return fmt.Errorf("-select both requires circular chromosomes, but %q is linear", name)
		}
	}
	return nil
}

// Load reads the cut-site catalogue:
//
//	col 1 - chromosome name
//	col 2 - position (1-based)
//	col 3 - cut-site name
//	col 4 - sample label
//	col 5 - circular flag (true/yes/1 or false/no/0), optional
//
// Blank lines and lines starting with '#' are skipped.
func Load(r io.Reader) (*Index, error) {
	x := &Index{chroms: make(map[string]*Chrom)}
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) < 4 {
			return nil, fmt.Errorf("line %d: short line (%d columns, need 4 or 5)", ln, len(f))
		}
		pos, err := strconv.Atoi(f[1])
		if err != nil || pos < 1 {
			return nil, fmt.Errorf("line %d: bad position %q", ln, f[1])
		}
		name := f[2]
		switch name {
		case Unmapped, Unmatched, LowMapQ:
			return nil, fmt.Errorf("line %d: cut-site name %q collides with a reserved output name", ln, name)
		}

		ctg := x.chroms[f[0]]
		if ctg == nil {
			ctg = &Chrom{Name: f[0]}
			x.chroms[f[0]] = ctg
			x.order = append(x.order, f[0])
		}
		if len(f) >= 5 {
			circ, err := parseFlag(f[4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", ln, err)
			}
			if ctg.circularSet && ctg.Circular != circ {
				return nil, fmt.Errorf("line %d: inconsistent circular flag for chromosome %q", ln, f[0])
			}
			ctg.Circular = circ
			ctg.circularSet = true
		}
		ctg.Sites = append(ctg.Sites, &Site{Chrom: f[0], Pos: pos, Name: name, Sample: f[3]})
		if !seen[name] {
			seen[name] = true
			x.names = append(x.names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(x.order) == 0 {
		return nil, fmt.Errorf("cut-site catalogue is empty")
	}
	return x, nil
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("unknown circular flag %q", s)
}
