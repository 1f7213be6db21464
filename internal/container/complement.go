package container

import (
	"cmp"
	"iter"
	"slices"

	"github.com/inodb/vibe-bed/internal/interval"
)

// ComplementIter yields the gaps between consecutive records of a sorted,
// merged sequence. Each gap is a clone of the record that closes it. Gaps
// are never reported across chromosomes.
//
// It panics if a record sorts before its predecessor on the same
// chromosome.
func ComplementIter[C cmp.Ordered, T interval.Interval[C, T]](seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		var last T
		started := false
		for cur := range seq {
			if !started {
				last, started = cur, true
				continue
			}
			if cur.Chr() == last.Chr() {
				if interval.Lt[C](cur, last) {
					panic("complement requires sorted and merged intervals")
				}
				gap := cur.Clone()
				interval.SetBounds[C](gap, last.End(), cur.Start())
				if !yield(gap) {
					return
				}
			}
			last = cur
		}
	}
}

// Complement yields the gaps between the records of a sorted set. Records
// that overlap each other must be merged beforehand; bordering records
// produce empty gaps.
func (c *Container[C, T]) Complement() (iter.Seq[T], error) {
	if !c.IsSorted() {
		return nil, interval.ErrUnsortedSet
	}
	return ComplementIter[C, T](c.All()), nil
}

// Internal yields the gaps inside every chromosome's span, merging the
// records first.
func (c *Container[C, T]) Internal() (iter.Seq[T], error) {
	if !c.IsSorted() {
		return nil, interval.ErrUnsortedSet
	}
	return func(yield func(T) bool) {
		for _, st := range c.tree.Subtrees() {
			span, err := st.Span()
			if err != nil {
				continue
			}
			for gap := range st.subtractFrom(span) {
				if !yield(gap) {
					return
				}
			}
		}
	}, nil
}

// subtractFrom merges only the records from the lower bound of query
// onwards; nothing before it can reach query.
func (s *Subtree[C, T]) subtractFrom(query T) iter.Seq[T] {
	start := 0
	if bias, ok := s.MaxLen(); ok {
		start = lowerBound[C, T](s.records, query, bias)
	}
	return SubtractFromIter[C, T](MergeIter[C, T](slices.Values(s.records[start:])), query)
}

// Segment splits every cluster of overlapping records at each distinct
// record boundary, yielding non-overlapping pieces that tile the cluster.
func (c *Container[C, T]) Segment() (*Container[C, T], error) {
	if !c.IsSorted() {
		return nil, interval.ErrUnsortedSet
	}
	return c.mapSubtrees(segmentRecords[C, T]), nil
}

func segmentRecords[C cmp.Ordered, T interval.Interval[C, T]](records []T) []T {
	var out []T
	var ref T
	var points []int64
	flush := func() {
		slices.Sort(points)
		points = slices.Compact(points)
		for i := 1; i < len(points); i++ {
			seg := ref.Clone()
			interval.SetBounds[C](seg, points[i-1], points[i])
			out = append(out, seg)
		}
		points = points[:0]
	}
	current := 0
	for rec, id := range ClusterIter[C, T](slices.Values(records)) {
		if id != current {
			flush()
			current = id
		}
		ref = rec
		points = append(points, rec.Start(), rec.End())
	}
	flush()
	return out
}
