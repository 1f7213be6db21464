package container

import (
	"cmp"
	"sort"

	"github.com/inodb/vibe-bed/internal/interval"
)

// lowerBound returns the first index whose record does not sort before the
// query once the query start is shifted left by bias. bias is the longest
// record length, so no record before the result can reach the query.
func lowerBound[C cmp.Ordered, T interval.Interval[C, T]](records []T, query interval.Coordinates[C], bias int64) int {
	return sort.Search(len(records), func(i int) bool {
		return !interval.BiasedLt[C](records[i], query, bias)
	})
}

// partition returns the number of records that sort strictly before query.
func partition[C cmp.Ordered, T interval.Interval[C, T]](records []T, query interval.Coordinates[C]) int {
	return sort.Search(len(records), func(i int) bool {
		return !interval.Lt[C](records[i], query)
	})
}

func strandAccepts[C cmp.Ordered](m interval.StrandMethod, rec, query interval.Coordinates[C]) bool {
	switch m {
	case interval.MatchStrand:
		return interval.BoundedStrand(rec, query)
	case interval.OppositeStrand:
		return !interval.BoundedStrand(rec, query)
	default:
		return true
	}
}

// upstream returns the index of the closest record of a single chromosome
// that sorts before query and passes the strand filter.
func upstream[C cmp.Ordered, T interval.Interval[C, T]](records []T, query interval.Coordinates[C], m interval.StrandMethod) (int, bool) {
	for i := partition[C, T](records, query) - 1; i >= 0; i-- {
		if strandAccepts[C](m, records[i], query) {
			return i, true
		}
	}
	return 0, false
}

// downstream returns the index of the first record of a single chromosome
// that does not sort before query and passes the strand filter.
func downstream[C cmp.Ordered, T interval.Interval[C, T]](records []T, query interval.Coordinates[C], m interval.StrandMethod) (int, bool) {
	for i := partition[C, T](records, query); i < len(records); i++ {
		if strandAccepts[C](m, records[i], query) {
			return i, true
		}
	}
	return 0, false
}

// LowerBound returns the flat index of the first record that could overlap
// query. It fails on unsorted or empty sets and when the maximum record
// length is unknown.
func (c *Container[C, T]) LowerBound(query interval.Coordinates[C]) (int, error) {
	if err := c.checkSorted(); err != nil {
		return 0, err
	}
	if _, ok := c.MaxLen(); !ok {
		return 0, interval.ErrMissingMaxLen
	}
	return c.LowerBoundUnchecked(query), nil
}

// LowerBoundUnchecked skips validation. An unknown maximum length is
// treated as zero, which misses records that start before the query.
func (c *Container[C, T]) LowerBoundUnchecked(query interval.Coordinates[C]) int {
	bias, _ := c.MaxLen()
	off := c.tree.offset(query.Chr())
	st, ok := c.tree.Subtree(query.Chr())
	if !ok {
		return off
	}
	return off + lowerBound[C, T](st.records, query, bias)
}

// ChrBound returns the flat index of the first record on query's
// chromosome; ok is false when the chromosome has no records. It does not
// need the maximum record length.
func (c *Container[C, T]) ChrBound(query interval.Coordinates[C]) (int, bool, error) {
	if err := c.checkSorted(); err != nil {
		return 0, false, err
	}
	idx, ok := c.ChrBoundUnchecked(query)
	return idx, ok, nil
}

func (c *Container[C, T]) ChrBoundUnchecked(query interval.Coordinates[C]) (int, bool) {
	st, ok := c.tree.Subtree(query.Chr())
	if !ok || st.IsEmpty() {
		return 0, false
	}
	return c.tree.offset(query.Chr()), true
}

// BoundUpstream returns the flat index of the nearest record on query's
// chromosome that sorts before it and satisfies the strand method.
func (c *Container[C, T]) BoundUpstream(query interval.Coordinates[C], m interval.StrandMethod) (int, bool, error) {
	if err := c.checkSorted(); err != nil {
		return 0, false, err
	}
	idx, ok := c.BoundUpstreamUnchecked(query, m)
	return idx, ok, nil
}

func (c *Container[C, T]) BoundUpstreamUnchecked(query interval.Coordinates[C], m interval.StrandMethod) (int, bool) {
	st, ok := c.tree.Subtree(query.Chr())
	if !ok {
		return 0, false
	}
	idx, ok := upstream[C, T](st.records, query, m)
	if !ok {
		return 0, false
	}
	return c.tree.offset(query.Chr()) + idx, true
}

// BoundDownstream returns the flat index of the first record on query's
// chromosome that does not sort before it and satisfies the strand method.
func (c *Container[C, T]) BoundDownstream(query interval.Coordinates[C], m interval.StrandMethod) (int, bool, error) {
	if err := c.checkSorted(); err != nil {
		return 0, false, err
	}
	idx, ok := c.BoundDownstreamUnchecked(query, m)
	return idx, ok, nil
}

func (c *Container[C, T]) BoundDownstreamUnchecked(query interval.Coordinates[C], m interval.StrandMethod) (int, bool) {
	st, ok := c.tree.Subtree(query.Chr())
	if !ok {
		return 0, false
	}
	idx, ok := downstream[C, T](st.records, query, m)
	if !ok {
		return 0, false
	}
	return c.tree.offset(query.Chr()) + idx, true
}
