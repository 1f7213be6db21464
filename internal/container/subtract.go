package container

import (
	"cmp"
	"iter"

	"github.com/inodb/vibe-bed/internal/interval"
)

// SubtractIter yields what is left of every record of seq once query is
// removed from it. Records covered by query leave nothing, records it
// splits yield both pieces, and records it does not touch are yielded
// unchanged as copies.
func SubtractIter[C cmp.Ordered, T interval.Interval[C, T]](seq iter.Seq[T], query interval.Coordinates[C]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for rec := range seq {
			for _, piece := range interval.Subtract[C, T](rec, query) {
				if !yield(piece) {
					return
				}
			}
		}
	}
}

// SubtractFromIter yields the parts of query that no record of seq covers.
// seq must be sorted, merged and on query's chromosome. It stops reading seq
// at the first record past query.
func SubtractFromIter[C cmp.Ordered, T interval.Interval[C, T]](seq iter.Seq[T], query T) iter.Seq[T] {
	return func(yield func(T) bool) {
		remainder := query.Clone()
		send := true
		for rec := range seq {
			if interval.Eq[C](rec, remainder) || interval.Contains[C](rec, remainder) {
				return
			}
			if !interval.Overlaps[C](rec, remainder) {
				// Every later record lies past the remainder too.
				if interval.Gt[C](rec, remainder) {
					if send {
						yield(remainder)
					}
					return
				}
				continue
			}
			pieces := interval.Subtract[C, T](remainder, rec)
			switch {
			case len(pieces) == 2:
				remainder = pieces[1]
				if !yield(pieces[0]) {
					return
				}
			case len(pieces) == 1 && interval.Gt[C](pieces[0], remainder):
				remainder.SetStart(pieces[0].Start())
			case len(pieces) == 1:
				send = false
				if !yield(pieces[0]) {
					return
				}
			}
		}
		if send {
			yield(remainder)
		}
	}
}

// Subtract removes query from every record of the set.
func (c *Container[C, T]) Subtract(query interval.Coordinates[C]) (iter.Seq[T], error) {
	if err := c.checkSorted(); err != nil {
		return nil, err
	}
	return SubtractIter[C, T](c.All(), query), nil
}

// SubtractFrom yields the parts of query not covered by any record of the
// set. Records are merged first.
func (c *Container[C, T]) SubtractFrom(query T) (iter.Seq[T], error) {
	if err := c.checkSorted(); err != nil {
		return nil, err
	}
	return c.subtractFromUnchecked(query), nil
}

func (c *Container[C, T]) subtractFromUnchecked(query T) iter.Seq[T] {
	st, ok := c.tree.Subtree(query.Chr())
	if !ok {
		return func(yield func(T) bool) { yield(query.Clone()) }
	}
	return st.subtractFrom(query)
}
