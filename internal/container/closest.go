package container

import (
	"cmp"

	"github.com/inodb/vibe-bed/internal/interval"
)

// scanClosest walks forward from start and returns the index of the record
// with the smallest distance to query. The walk ends at the first record
// that is no closer than the best so far, or when stop reports true.
//
// Records failing m are skipped without ending the walk. This holds for the
// non-directional Closest too, not only the upstream and downstream
// searches: a stranded Closest never returns a record of the wrong strand.
func scanClosest[C cmp.Ordered, T interval.Interval[C, T]](
	records []T,
	query interval.Coordinates[C],
	m interval.StrandMethod,
	start int,
	stop func(T) bool,
) int {
	best, bestDist := start, int64(-1)
	for i := start; i < len(records); i++ {
		rec := records[i]
		if stop != nil && stop(rec) {
			break
		}
		if !strandAccepts[C](m, rec, query) {
			continue
		}
		d, ok := interval.Distance[C](query, rec)
		if !ok {
			break
		}
		if bestDist >= 0 && d >= bestDist {
			break
		}
		best, bestDist = i, d
	}
	return best
}

func closestIn[C cmp.Ordered, T interval.Interval[C, T]](records []T, query interval.Coordinates[C], m interval.StrandMethod) (int, bool) {
	bound, ok := upstream[C, T](records, query, m)
	if !ok {
		if bound, ok = downstream[C, T](records, query, m); !ok {
			return 0, false
		}
	}
	return scanClosest[C, T](records, query, m, bound, nil), true
}

func closestUpstreamIn[C cmp.Ordered, T interval.Interval[C, T]](records []T, query interval.Coordinates[C], m interval.StrandMethod) (int, bool) {
	bound, ok := upstream[C, T](records, query, m)
	if !ok {
		return 0, false
	}
	return scanClosest[C, T](records, query, m, bound, func(rec T) bool {
		return interval.Gt[C](rec, query)
	}), true
}

func closestDownstreamIn[C cmp.Ordered, T interval.Interval[C, T]](records []T, query interval.Coordinates[C], m interval.StrandMethod) (int, bool) {
	bound, ok := downstream[C, T](records, query, m)
	if !ok {
		return 0, false
	}
	return scanClosest[C, T](records, query, m, bound, func(rec T) bool {
		return interval.Lt[C](rec, query)
	}), true
}

type finder[C cmp.Ordered, T interval.Interval[C, T]] func([]T, interval.Coordinates[C], interval.StrandMethod) (int, bool)

func (c *Container[C, T]) closestWith(query interval.Coordinates[C], m interval.StrandMethod, find finder[C, T]) (T, bool) {
	var zero T
	st, ok := c.tree.Subtree(query.Chr())
	if !ok {
		return zero, false
	}
	idx, ok := find(st.records, query, m)
	if !ok {
		return zero, false
	}
	return st.records[idx], true
}

// Closest returns the record on query's chromosome with the smallest
// distance to query in either direction. Ties resolve to the earlier record.
func (c *Container[C, T]) Closest(query interval.Coordinates[C], m interval.StrandMethod) (T, bool, error) {
	if err := c.checkSorted(); err != nil {
		var zero T
		return zero, false, err
	}
	rec, ok := c.ClosestUnchecked(query, m)
	return rec, ok, nil
}

func (c *Container[C, T]) ClosestUnchecked(query interval.Coordinates[C], m interval.StrandMethod) (T, bool) {
	return c.closestWith(query, m, closestIn[C, T])
}

// ClosestUpstream returns the closest record that sorts at or before query.
// For a reverse strand query the direction is flipped.
func (c *Container[C, T]) ClosestUpstream(query interval.Coordinates[C], m interval.StrandMethod) (T, bool, error) {
	if err := c.checkSorted(); err != nil {
		var zero T
		return zero, false, err
	}
	if query.Strand() == interval.Reverse {
		rec, ok := c.ClosestDownstreamUnchecked(query, m)
		return rec, ok, nil
	}
	rec, ok := c.ClosestUpstreamUnchecked(query, m)
	return rec, ok, nil
}

// ClosestDownstream returns the closest record that sorts at or after
// query. For a reverse strand query the direction is flipped.
func (c *Container[C, T]) ClosestDownstream(query interval.Coordinates[C], m interval.StrandMethod) (T, bool, error) {
	if err := c.checkSorted(); err != nil {
		var zero T
		return zero, false, err
	}
	if query.Strand() == interval.Reverse {
		rec, ok := c.ClosestUpstreamUnchecked(query, m)
		return rec, ok, nil
	}
	rec, ok := c.ClosestDownstreamUnchecked(query, m)
	return rec, ok, nil
}

func (c *Container[C, T]) ClosestUpstreamUnchecked(query interval.Coordinates[C], m interval.StrandMethod) (T, bool) {
	return c.closestWith(query, m, closestUpstreamIn[C, T])
}

func (c *Container[C, T]) ClosestDownstreamUnchecked(query interval.Coordinates[C], m interval.StrandMethod) (T, bool) {
	return c.closestWith(query, m, closestDownstreamIn[C, T])
}
