package container

import (
	"cmp"
	"iter"
	"slices"

	"github.com/inodb/vibe-bed/internal/interval"
)

// findRange resolves the subtree and start index for an overlap query.
func (c *Container[C, T]) findRange(query interval.Coordinates[C], q interval.Query) (*Subtree[C, T], int, error) {
	if !c.IsSorted() {
		return nil, 0, interval.ErrUnsortedSet
	}
	if err := q.Validate(); err != nil {
		return nil, 0, err
	}
	st, ok := c.tree.Subtree(query.Chr())
	if !ok || st.IsEmpty() {
		return nil, 0, nil
	}
	bias, ok := st.MaxLen()
	if !ok {
		return nil, 0, interval.ErrMissingMaxLen
	}
	return st, lowerBound[C, T](st.records, query, bias), nil
}

// scan yields the index and record of every match from start until a record
// begins at or after the end of query.
func scan[C cmp.Ordered, T interval.Interval[C, T]](records []T, start int, query interval.Coordinates[C], q interval.Query, yield func(int, T) bool) {
	for i := start; i < len(records); i++ {
		rec := records[i]
		if interval.Predicate[C](q, rec, query) {
			if !yield(i, rec) {
				return
			}
		} else if rec.Start() >= query.End() {
			return
		}
	}
}

// FindIter iterates over the records that satisfy q against query. The
// records are yielded by reference.
func (c *Container[C, T]) FindIter(query interval.Coordinates[C], q interval.Query) (iter.Seq[T], error) {
	st, start, err := c.findRange(query, q)
	if err != nil {
		return nil, err
	}
	return func(yield func(T) bool) {
		if st == nil {
			return
		}
		scan[C, T](st.records, start, query, q, func(_ int, rec T) bool {
			return yield(rec)
		})
	}, nil
}

// FindIterEnumerate is FindIter with the flat index of every match.
func (c *Container[C, T]) FindIterEnumerate(query interval.Coordinates[C], q interval.Query) (iter.Seq2[int, T], error) {
	st, start, err := c.findRange(query, q)
	if err != nil {
		return nil, err
	}
	off := c.tree.offset(query.Chr())
	return func(yield func(int, T) bool) {
		if st == nil {
			return
		}
		scan[C, T](st.records, start, query, q, func(i int, rec T) bool {
			return yield(off+i, rec)
		})
	}, nil
}

// FindIterOwned is FindIter yielding clones.
func (c *Container[C, T]) FindIterOwned(query interval.Coordinates[C], q interval.Query) (iter.Seq[T], error) {
	seq, err := c.FindIter(query, q)
	if err != nil {
		return nil, err
	}
	return func(yield func(T) bool) {
		for rec := range seq {
			if !yield(rec.Clone()) {
				return
			}
		}
	}, nil
}

// Find collects clones of the matching records into a new sorted container.
func (c *Container[C, T]) Find(query interval.Coordinates[C], q interval.Query) (*Container[C, T], error) {
	seq, err := c.FindIterOwned(query, q)
	if err != nil {
		return nil, err
	}
	return FromSortedUnchecked[C, T](slices.Collect(seq)), nil
}
