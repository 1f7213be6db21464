package interval

import "cmp"

// Intersect returns a copy of b trimmed to the bases it shares with a.
func Intersect[C cmp.Ordered, T Interval[C, T]](a Coordinates[C], b T) (T, bool) {
	if !Overlaps[C](a, b) {
		var zero T
		return zero, false
	}
	return intersection[C](a, b), true
}

// StrandedIntersect is Intersect restricted to strand-compatible records.
func StrandedIntersect[C cmp.Ordered, T Interval[C, T]](a Coordinates[C], b T) (T, bool) {
	if !StrandedOverlaps[C](a, b) {
		var zero T
		return zero, false
	}
	return intersection[C](a, b), true
}

func intersection[C cmp.Ordered, T Interval[C, T]](a Coordinates[C], b T) T {
	ix := b.Clone()
	ix.SetChr(a.Chr())
	SetBounds[C](ix, max(a.Start(), b.Start()), min(a.End(), b.End()))
	return ix
}

// Subtract returns the pieces of a not covered by b. A record that does not
// overlap b comes back whole; a record covered by b yields no pieces.
// Pieces are copies of a.
func Subtract[C cmp.Ordered, T Interval[C, T]](a T, b Coordinates[C]) []T {
	piece := func(start, end int64) T {
		p := a.Clone()
		SetBounds[C](p, start, end)
		return p
	}

	switch {
	case !Overlaps[C](a, b):
		return []T{a.Clone()}
	case Eq[C](a, b) || ContainedBy[C](a, b):
		return nil
	case Contains[C](a, b):
		switch {
		case a.Start() == b.Start():
			return []T{piece(b.End(), a.End())}
		case a.End() == b.End():
			return []T{piece(a.Start(), b.Start())}
		default:
			return []T{piece(a.Start(), b.Start()), piece(b.End(), a.End())}
		}
	case Gt[C](a, b):
		return []T{piece(b.End(), a.End())}
	default:
		return []T{piece(a.Start(), b.Start())}
	}
}
