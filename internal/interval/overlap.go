package interval

import "cmp"

// BoundedChr reports whether a and b lie on the same chromosome.
func BoundedChr[C cmp.Ordered](a, b Coordinates[C]) bool {
	return a.Chr() == b.Chr()
}

// BoundedStrand reports whether the strands of a and b are compatible:
// equal, or at least one of them missing.
func BoundedStrand[C cmp.Ordered](a, b Coordinates[C]) bool {
	if !a.Strand().IsSet() || !b.Strand().IsSet() {
		return true
	}
	return a.Strand() == b.Strand()
}

func intervalOverlap[C cmp.Ordered](a, b Coordinates[C]) bool {
	return a.Start() < b.End() && a.End() > b.Start()
}

func intervalContains[C cmp.Ordered](a, b Coordinates[C]) bool {
	return a.Start() <= b.Start() && a.End() >= b.End()
}

func intervalBorders[C cmp.Ordered](a, b Coordinates[C]) bool {
	return a.Start() == b.End() || a.End() == b.Start()
}

// Overlaps reports whether a and b share at least one base.
func Overlaps[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedChr(a, b) && intervalOverlap(a, b)
}

// OverlapSize returns the number of shared bases, or false when a and b do
// not overlap.
func OverlapSize[C cmp.Ordered](a, b Coordinates[C]) (int64, bool) {
	switch {
	case !Overlaps(a, b):
		return 0, false
	case Contains(a, b):
		return Len(b), true
	case Contains(b, a):
		return Len(a), true
	case a.Start() > b.Start():
		return b.End() - a.Start(), true
	default:
		return a.End() - b.Start(), true
	}
}

// OverlapsBy reports whether a and b share at least n bases.
func OverlapsBy[C cmp.Ordered](a, b Coordinates[C], n int64) bool {
	size, ok := OverlapSize(a, b)
	return ok && size >= n
}

// OverlapsByExactly reports whether a and b share exactly n bases.
func OverlapsByExactly[C cmp.Ordered](a, b Coordinates[C], n int64) bool {
	size, ok := OverlapSize(a, b)
	return ok && size == n
}

// Contains reports whether a covers all of b.
func Contains[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedChr(a, b) && intervalContains(a, b)
}

// ContainedBy reports whether b covers all of a.
func ContainedBy[C cmp.Ordered](a, b Coordinates[C]) bool {
	return Contains(b, a)
}

// Borders reports whether a and b touch at an endpoint.
func Borders[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedChr(a, b) && intervalBorders(a, b)
}

// Starts reports whether a shares b's start and ends before it.
func Starts[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedChr(a, b) && a.Start() == b.Start() && a.End() < b.End()
}

// Ends reports whether a shares b's end and starts after it.
func Ends[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedChr(a, b) && a.Start() > b.Start() && a.End() == b.End()
}

// Equals compares chromosome and endpoints, ignoring strand.
func Equals[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedChr(a, b) && a.Start() == b.Start() && a.End() == b.End()
}

// During reports whether a lies strictly inside b.
func During[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedChr(a, b) && a.Start() > b.Start() && a.End() < b.End()
}

// Strand-compatible variants.

func StrandedOverlaps[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedStrand(a, b) && Overlaps(a, b)
}

func StrandedOverlapSize[C cmp.Ordered](a, b Coordinates[C]) (int64, bool) {
	if !BoundedStrand(a, b) {
		return 0, false
	}
	return OverlapSize(a, b)
}

func StrandedOverlapsBy[C cmp.Ordered](a, b Coordinates[C], n int64) bool {
	size, ok := StrandedOverlapSize(a, b)
	return ok && size >= n
}

func StrandedOverlapsByExactly[C cmp.Ordered](a, b Coordinates[C], n int64) bool {
	size, ok := StrandedOverlapSize(a, b)
	return ok && size == n
}

func StrandedContains[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedStrand(a, b) && Contains(a, b)
}

func StrandedContainedBy[C cmp.Ordered](a, b Coordinates[C]) bool {
	return StrandedContains(b, a)
}

func StrandedBorders[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedStrand(a, b) && Borders(a, b)
}

func StrandedStarts[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedStrand(a, b) && Starts(a, b)
}

func StrandedEnds[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedStrand(a, b) && Ends(a, b)
}

func StrandedEquals[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedStrand(a, b) && Equals(a, b)
}

func StrandedDuring[C cmp.Ordered](a, b Coordinates[C]) bool {
	return BoundedStrand(a, b) && During(a, b)
}

// Opposite-strand variants: the strands must be set and differ.

func UnstrandedOverlaps[C cmp.Ordered](a, b Coordinates[C]) bool {
	return !BoundedStrand(a, b) && Overlaps(a, b)
}

func UnstrandedOverlapSize[C cmp.Ordered](a, b Coordinates[C]) (int64, bool) {
	if BoundedStrand(a, b) {
		return 0, false
	}
	return OverlapSize(a, b)
}

func UnstrandedOverlapsBy[C cmp.Ordered](a, b Coordinates[C], n int64) bool {
	size, ok := UnstrandedOverlapSize(a, b)
	return ok && size >= n
}

func UnstrandedOverlapsByExactly[C cmp.Ordered](a, b Coordinates[C], n int64) bool {
	size, ok := UnstrandedOverlapSize(a, b)
	return ok && size == n
}

func UnstrandedContains[C cmp.Ordered](a, b Coordinates[C]) bool {
	return !BoundedStrand(a, b) && Contains(a, b)
}

func UnstrandedContainedBy[C cmp.Ordered](a, b Coordinates[C]) bool {
	return UnstrandedContains(b, a)
}

func UnstrandedBorders[C cmp.Ordered](a, b Coordinates[C]) bool {
	return !BoundedStrand(a, b) && Borders(a, b)
}

func UnstrandedStarts[C cmp.Ordered](a, b Coordinates[C]) bool {
	return !BoundedStrand(a, b) && Starts(a, b)
}

func UnstrandedEnds[C cmp.Ordered](a, b Coordinates[C]) bool {
	return !BoundedStrand(a, b) && Ends(a, b)
}

func UnstrandedEquals[C cmp.Ordered](a, b Coordinates[C]) bool {
	return !BoundedStrand(a, b) && Equals(a, b)
}

func UnstrandedDuring[C cmp.Ordered](a, b Coordinates[C]) bool {
	return !BoundedStrand(a, b) && During(a, b)
}
