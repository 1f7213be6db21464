package container

import (
	"cmp"
	"iter"

	"github.com/inodb/vibe-bed/internal/interval"
)

type stack[T any] []T

func (s *stack[T]) push(v T) { *s = append(*s, v) }

func (s *stack[T]) pop() (T, bool) {
	var zero T
	n := len(*s)
	if n == 0 {
		return zero, false
	}
	v := (*s)[n-1]
	*s = (*s)[:n-1]
	return v, true
}

// IntersectIter sweeps two sorted sequences and yields the intersection of
// every left record with each right record that satisfies q. Intersections
// are clones of the left record.
func IntersectIter[C cmp.Ordered, T interval.Interval[C, T]](left, right iter.Seq[T], q interval.Query) iter.Seq[T] {
	return func(yield func(T) bool) {
		pullLeft, stopLeft := iter.Pull(left)
		defer stopLeft()
		pullRight, stopRight := iter.Pull(right)
		defer stopRight()

		var queueLeft, queueRight, matched stack[T]
		isNew := true

		nextLeft := func() (T, bool) {
			if v, ok := queueLeft.pop(); ok {
				isNew = false
				return v, true
			}
			isNew = true
			return pullLeft()
		}
		nextRight := func() (T, bool) {
			if v, ok := queueRight.pop(); ok {
				return v, true
			}
			return pullRight()
		}
		nextTarget := func() (T, bool) {
			if isNew {
				if v, ok := matched.pop(); ok {
					return v, true
				}
			}
			return nextRight()
		}

	outer:
		for {
			query, ok := nextLeft()
			if !ok {
				return
			}
			target, ok := nextTarget()
			if !ok {
				if isNew {
					return
				}
				continue
			}
			for {
				if interval.Predicate[C](q, target, query) {
					ix, _ := interval.Intersect[C, T](target, query)
					queueLeft.push(query)
					matched.push(target)
					if !yield(ix) {
						return
					}
					continue outer
				}
				if interval.Lt[C](query, target) {
					queueRight.push(target)
					continue outer
				}
				if target, ok = nextTarget(); !ok {
					return
				}
			}
		}
	}
}

// IntersectQuery intersects every record of c with the records of other
// that satisfy q. Results are clones of c's records.
func (c *Container[C, T]) IntersectQuery(other *Container[C, T], q interval.Query) (*Container[C, T], error) {
	return c.intersectSets(other, q, func(rec, hit T) (T, bool) {
		return interval.Intersect[C, T](hit, rec)
	})
}

// IntersectTarget is IntersectQuery with results cloned from other's
// records, keeping their annotations.
func (c *Container[C, T]) IntersectTarget(other *Container[C, T], q interval.Query) (*Container[C, T], error) {
	return c.intersectSets(other, q, func(rec, hit T) (T, bool) {
		return interval.Intersect[C, T](rec, hit)
	})
}

func (c *Container[C, T]) intersectSets(other *Container[C, T], q interval.Query, ix func(rec, hit T) (T, bool)) (*Container[C, T], error) {
	if !c.IsSorted() {
		return nil, interval.ErrUnsortedSet
	}
	var out []T
	for rec := range c.All() {
		hits, err := other.FindIter(rec, q)
		if err != nil {
			return nil, err
		}
		for hit := range hits {
			if v, ok := ix(rec, hit); ok {
				out = append(out, v)
			}
		}
	}
	return FromUnsorted[C, T](out), nil
}
