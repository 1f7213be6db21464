package container

import (
	"cmp"
	"fmt"
	"iter"

	bi "github.com/biogo/store/interval"

	"github.com/inodb/vibe-bed/internal/interval"
)

// Indexed answers overlap queries against a fixed record set without
// requiring sorted input. Records are kept in one augmented interval tree
// per chromosome.
type Indexed[C cmp.Ordered, T interval.Interval[C, T]] struct {
	trees  map[C]*bi.IntTree
	points map[C]*StabIndex[C, T]
	n      int
}

type treeNode[C cmp.Ordered, T interval.Interval[C, T]] struct {
	rec T
	uid uintptr
}

func (n treeNode[C, T]) Overlap(b bi.IntRange) bool {
	return int(n.rec.End()) > b.Start && int(n.rec.Start()) < b.End
}

func (n treeNode[C, T]) ID() uintptr { return n.uid }

func (n treeNode[C, T]) Range() bi.IntRange {
	return bi.IntRange{Start: int(n.rec.Start()), End: int(n.rec.End())}
}

type queryRange bi.IntRange

func (q queryRange) Overlap(b bi.IntRange) bool {
	return b.End > q.Start && b.Start < q.End
}

// NewIndexed builds the per-chromosome trees for every record of c.
func NewIndexed[C cmp.Ordered, T interval.Interval[C, T]](c *Container[C, T]) (*Indexed[C, T], error) {
	x := &Indexed[C, T]{
		trees:  make(map[C]*bi.IntTree),
		points: make(map[C]*StabIndex[C, T]),
	}
	for chr, st := range c.tree.Subtrees() {
		tree := &bi.IntTree{}
		for _, rec := range st.records {
			x.n++
			if err := tree.Insert(treeNode[C, T]{rec: rec, uid: uintptr(x.n)}, true); err != nil {
				return nil, fmt.Errorf("index %v:%d-%d: %w", rec.Chr(), rec.Start(), rec.End(), err)
			}
		}
		tree.AdjustRanges()
		x.trees[chr] = tree
		x.points[chr] = BuildStabIndex[C, T](st.records)
	}
	return x, nil
}

func (x *Indexed[C, T]) Len() int { return x.n }

// Query calls fn for every record that satisfies q against query, in
// start order, until fn returns false.
func (x *Indexed[C, T]) Query(query interval.Coordinates[C], q interval.Query, fn func(T) bool) error {
	if err := q.Validate(); err != nil {
		return err
	}
	tree, ok := x.trees[query.Chr()]
	if !ok {
		return nil
	}
	r := queryRange{Start: int(query.Start()), End: int(query.End())}
	tree.DoMatching(func(e bi.IntInterface) bool {
		rec := e.(treeNode[C, T]).rec
		if !interval.Predicate[C](q, rec, query) {
			return false
		}
		return !fn(rec)
	}, r)
	return nil
}

// QueryIter is Query as an iterator.
func (x *Indexed[C, T]) QueryIter(query interval.Coordinates[C], q interval.Query) (iter.Seq[T], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return func(yield func(T) bool) {
		_ = x.Query(query, q, yield)
	}, nil
}

// Count returns the number of records that satisfy q against query.
func (x *Indexed[C, T]) Count(query interval.Coordinates[C], q interval.Query) (int, error) {
	n := 0
	err := x.Query(query, q, func(T) bool {
		n++
		return true
	})
	return n, err
}

// Coverage returns the number of bases of query covered by at least one
// record.
func (x *Indexed[C, T]) Coverage(query interval.Coordinates[C]) int64 {
	var covered int64
	cursor := query.Start()
	_ = x.Query(query, interval.Query{}, func(rec T) bool {
		start := max(rec.Start(), cursor)
		end := min(rec.End(), query.End())
		if end > start {
			covered += end - start
			cursor = end
		}
		return true
	})
	return covered
}

// Stab returns the records on chr that contain pos.
func (x *Indexed[C, T]) Stab(chr C, pos int64) []T {
	idx, ok := x.points[chr]
	if !ok {
		return nil
	}
	return idx.Stab(pos)
}
