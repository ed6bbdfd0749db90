// Package genome provides coordinate arithmetic that is agnostic to whether
// a chromosome is linear or circular.
package genome

// Geometry is the coordinate space of one chromosome. Positions are
// 1-based. Circular chromosomes wrap across the Length/1 boundary; linear
// chromosomes clamp windows to [1, Length].
type Geometry struct {
	Length   int
	Circular bool
}

// Distance returns the separation between positions a and b: the shorter
// way around for circular chromosomes.
func (g Geometry) Distance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if g.Circular && g.Length > 0 {
		d %= g.Length
		if w := g.Length - d; w < d {
			d = w
		}
	}
	return d
}

// InWindow reports whether pos lies in the inclusive interval [lo, hi].
// On circular chromosomes the interval wraps across the origin instead of
// clamping.
func (g Geometry) InWindow(pos, lo, hi int) bool {
	if hi < lo {
		return false
	}
	if !g.Circular || g.Length <= 0 {
		if lo < 1 {
			lo = 1
		}
		if g.Length > 0 && hi > g.Length {
			hi = g.Length
		}
		return pos >= lo && pos <= hi
	}
	width := hi - lo
	if width >= g.Length {
		return true
	}
	return mod(pos-lo, g.Length) <= width
}

// Normalize maps pos into [1, Length] on circular chromosomes.
func (g Geometry) Normalize(pos int) int {
	if !g.Circular || g.Length <= 0 {
		return pos
	}
	return mod(pos-1, g.Length) + 1
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
