package interval

import "cmp"

// Distance returns the number of bases between a and b. Overlapping or
// bordering records are at distance zero; records on different
// chromosomes have no distance.
func Distance[C cmp.Ordered](a, b Coordinates[C]) (int64, bool) {
	switch {
	case Overlaps(a, b) || Borders(a, b):
		return 0, true
	case !BoundedChr(a, b):
		return 0, false
	case Gt(a, b):
		return a.Start() - b.End(), true
	default:
		return b.Start() - a.End(), true
	}
}

// DirectedDistance is Distance signed by direction: negative when b lies
// upstream of a.
func DirectedDistance[C cmp.Ordered](a, b Coordinates[C]) (int64, bool) {
	switch {
	case Overlaps(a, b) || Borders(a, b):
		return 0, true
	case !BoundedChr(a, b):
		return 0, false
	case Gt(a, b):
		return -(a.Start() - b.End()), true
	default:
		return b.Start() - a.End(), true
	}
}
