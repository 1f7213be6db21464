package container

import (
	"cmp"
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/inodb/vibe-bed/internal/interval"
)

// joinable reports whether rec overlaps or borders the running span.
func joinable[C cmp.Ordered](span, rec interval.Coordinates[C]) bool {
	return interval.Overlaps(span, rec) || interval.Borders(span, rec)
}

// absorb grows span to cover rec. The span keeps the strand and
// annotations of the record that opened it.
func absorb[C cmp.Ordered](span, rec interval.Coordinates[C]) {
	interval.SetBounds(span, min(span.Start(), rec.Start()), max(span.End(), rec.End()))
}

// MergeIter coalesces overlapping or bordering records of a sorted sequence.
// Each yielded record is a clone of the first record of its cluster.
func MergeIter[C cmp.Ordered, T interval.Interval[C, T]](seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		var span T
		open := false
		for rec := range seq {
			if open && joinable[C](span, rec) {
				absorb[C](span, rec)
				continue
			}
			if open && !yield(span) {
				return
			}
			span, open = rec.Clone(), true
		}
		if open {
			yield(span)
		}
	}
}

// ClusterIter pairs every record of a sorted sequence with the id of the
// cluster it belongs to. Ids start at zero and increase by one whenever a
// record neither overlaps nor borders the running cluster.
func ClusterIter[C cmp.Ordered, T interval.Interval[C, T]](seq iter.Seq[T]) iter.Seq2[T, int] {
	return func(yield func(T, int) bool) {
		var span T
		id := -1
		for rec := range seq {
			switch {
			case id < 0:
				span, id = rec.Clone(), 0
			case joinable[C](span, rec):
				absorb[C](span, rec)
			default:
				span = rec.Clone()
				id++
			}
			if !yield(rec, id) {
				return
			}
		}
	}
}

func mergeRecords[C cmp.Ordered, T interval.Interval[C, T]](records []T) []T {
	return slices.Collect(MergeIter[C, T](slices.Values(records)))
}

func mergeStrand[C cmp.Ordered, T interval.Interval[C, T]](records []T, s interval.Strand) []T {
	filtered := func(yield func(T) bool) {
		for _, r := range records {
			if r.Strand() == s && !yield(r) {
				return
			}
		}
	}
	return slices.Collect(MergeIter[C, T](filtered))
}

// Merge returns a new sorted container in which overlapping or bordering
// records are collapsed into a single span per cluster.
func (c *Container[C, T]) Merge() (*Container[C, T], error) {
	if !c.IsSorted() {
		return nil, interval.ErrUnsortedSet
	}
	return c.MergeUnchecked(), nil
}

func (c *Container[C, T]) MergeUnchecked() *Container[C, T] {
	out := c.mapSubtrees(func(records []T) []T {
		return mergeRecords[C, T](records)
	})
	c.logger.Debug("merged intervals",
		zap.Int("input", c.Len()),
		zap.Int("output", out.Len()))
	return out
}

// MergeStranded merges forward and reverse records separately. Records
// without a known strand are dropped.
func (c *Container[C, T]) MergeStranded() (*Container[C, T], error) {
	if !c.IsSorted() {
		return nil, interval.ErrUnsortedSet
	}
	out := c.mapSubtrees(func(records []T) []T {
		merged := append(mergeStrand[C, T](records, interval.Forward), mergeStrand[C, T](records, interval.Reverse)...)
		slices.SortStableFunc(merged, func(a, b T) int {
			return interval.CoordCmp[C](a, b)
		})
		return merged
	})
	if out.IsEmpty() && !c.IsEmpty() {
		return nil, interval.ErrNoStrandedIntervals
	}
	return out, nil
}

// MergeSpecificStrand merges only the records on strand s, which must be
// Forward or Reverse.
func (c *Container[C, T]) MergeSpecificStrand(s interval.Strand) (*Container[C, T], error) {
	if s != interval.Forward && s != interval.Reverse {
		return nil, interval.ErrCannotAcceptUnknownStrand
	}
	if !c.IsSorted() {
		return nil, interval.ErrUnsortedSet
	}
	out := c.mapSubtrees(func(records []T) []T {
		return mergeStrand[C, T](records, s)
	})
	if out.IsEmpty() && !c.IsEmpty() {
		return nil, interval.ErrNoStrandedIntervals
	}
	return out, nil
}

// mapSubtrees builds a sorted container from fn applied to every subtree.
// Chromosomes for which fn returns nothing are omitted.
func (c *Container[C, T]) mapSubtrees(fn func([]T) []T) *Container[C, T] {
	tree := NewTree[C, T]()
	for chr, st := range c.tree.Subtrees() {
		records := fn(st.records)
		if len(records) == 0 {
			continue
		}
		sub := NewSubtree[C, T](records)
		sub.SetSorted()
		tree.InsertSubtree(chr, sub)
	}
	tree.SetSorted()
	out := FromTree[C, T](tree)
	out.logger = c.logger
	return out
}

// Clusters pairs every record with its cluster id. Records on different
// chromosomes never share a cluster.
func (c *Container[C, T]) Clusters() (iter.Seq2[T, int], error) {
	if !c.IsSorted() {
		return nil, interval.ErrUnsortedSet
	}
	return ClusterIter[C, T](c.All()), nil
}
