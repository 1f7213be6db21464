package container

import (
	"cmp"
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/inodb/vibe-bed/internal/interval"
)

// Container is the interval set that every operation runs against. Records
// are grouped by chromosome; flat indices returned by the bound methods
// refer to the chromosome-ordered sequence returned by Records.
type Container[C cmp.Ordered, T interval.Interval[C, T]] struct {
	tree   *Tree[C, T]
	logger *zap.Logger
}

// New groups records by chromosome without sorting. Sets of zero or one
// record are marked sorted.
func New[C cmp.Ordered, T interval.Interval[C, T]](records []T) *Container[C, T] {
	c := &Container[C, T]{tree: NewTree[C, T](), logger: zap.NewNop()}
	for _, r := range records {
		c.tree.Insert(r)
	}
	if len(records) <= 1 {
		c.tree.SetSorted()
	}
	return c
}

// Empty returns a sorted container with no records.
func Empty[C cmp.Ordered, T interval.Interval[C, T]]() *Container[C, T] {
	return New[C, T](nil)
}

// FromTree wraps an existing tree.
func FromTree[C cmp.Ordered, T interval.Interval[C, T]](t *Tree[C, T]) *Container[C, T] {
	return &Container[C, T]{tree: t, logger: zap.NewNop()}
}

// FromSorted returns ErrUnsortedIntervals unless records are already in
// coordinate order.
func FromSorted[C cmp.Ordered, T interval.Interval[C, T]](records []T) (*Container[C, T], error) {
	if !ValidSorting[C, T](records) {
		return nil, interval.ErrUnsortedIntervals
	}
	return FromSortedUnchecked[C, T](records), nil
}

// FromSortedUnchecked trusts the caller that records are sorted.
func FromSortedUnchecked[C cmp.Ordered, T interval.Interval[C, T]](records []T) *Container[C, T] {
	c := New[C, T](records)
	c.tree.SetSorted()
	return c
}

// FromIter collects seq into an unsorted container.
func FromIter[C cmp.Ordered, T interval.Interval[C, T]](seq iter.Seq[T]) *Container[C, T] {
	return New[C, T](slices.Collect(seq))
}

// FromUnsorted groups and sorts records.
func FromUnsorted[C cmp.Ordered, T interval.Interval[C, T]](records []T) *Container[C, T] {
	c := New[C, T](records)
	c.Sort()
	return c
}

// ValidSorting reports whether records are in coordinate order.
func ValidSorting[C cmp.Ordered, T interval.Interval[C, T]](records []T) bool {
	return validSorting[C, T](records)
}

// SetLogger sets the logger used for sort and merge diagnostics.
func (c *Container[C, T]) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	c.logger = l
}

func (c *Container[C, T]) Tree() *Tree[C, T] { return c.tree }

func (c *Container[C, T]) Subtree(chr C) (*Subtree[C, T], bool) { return c.tree.Subtree(chr) }

func (c *Container[C, T]) Chromosomes() []C { return c.tree.Chromosomes() }

func (c *Container[C, T]) Len() int { return c.tree.Len() }
func (c *Container[C, T]) IsEmpty() bool { return c.tree.IsEmpty() }
func (c *Container[C, T]) IsSorted() bool { return c.tree.IsSorted() }
func (c *Container[C, T]) SetSorted() { c.tree.SetSorted() }
func (c *Container[C, T]) SetUnsorted() { c.tree.SetUnsorted() }

func (c *Container[C, T]) Sort() {
	c.tree.Sort()
	c.logger.Debug("sorted intervals",
		zap.Int("records", c.Len()),
		zap.Int("chromosomes", c.tree.NumSubtrees()))
}

// Insert adds a record. The sorted flag survives only when the record lands
// at the end of its chromosome in order.
func (c *Container[C, T]) Insert(rec T) { c.tree.Insert(rec) }

// InsertSorted adds a record and re-sorts.
func (c *Container[C, T]) InsertSorted(rec T) {
	c.tree.Insert(rec)
	c.Sort()
}

// Apply mutates every record in place and marks the container unsorted.
func (c *Container[C, T]) Apply(fn func(T)) { c.tree.Apply(fn) }

// Span returns the range covered by chr's records.
func (c *Container[C, T]) Span(chr C) (T, bool, error) { return c.tree.Span(chr) }

// MaxLen returns the longest record length across all chromosomes. It is
// unknown when any non-empty subtree has had its length cleared.
func (c *Container[C, T]) MaxLen() (int64, bool) {
	var m int64
	found := false
	for _, st := range c.tree.subtrees {
		if st.IsEmpty() {
			continue
		}
		l, ok := st.MaxLen()
		if !ok {
			return 0, false
		}
		m, found = max(m, l), true
	}
	return m, found
}

// ClearMaxLen forgets the maximum record length so that bound queries fail
// with ErrMissingMaxLen.
func (c *Container[C, T]) ClearMaxLen() {
	for _, st := range c.tree.subtrees {
		st.ClearMaxLen()
	}
}

// All iterates over the records by reference in chromosome order.
func (c *Container[C, T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, st := range c.tree.Subtrees() {
			for _, r := range st.records {
				if !yield(r) {
					return
				}
			}
		}
	}
}

// Owned iterates over clones of the records.
func (c *Container[C, T]) Owned() iter.Seq[T] {
	return func(yield func(T) bool) {
		for r := range c.All() {
			if !yield(r.Clone()) {
				return
			}
		}
	}
}

// Records returns the records in chromosome order.
func (c *Container[C, T]) Records() []T {
	return slices.AppendSeq(make([]T, 0, c.Len()), c.All())
}

// Clone returns a deep copy.
func (c *Container[C, T]) Clone() *Container[C, T] {
	out := New[C, T](slices.Collect(c.Owned()))
	if c.IsSorted() {
		out.tree.SetSorted()
	}
	out.logger = c.logger
	return out
}

// checkSorted returns the errors shared by the checked operations.
func (c *Container[C, T]) checkSorted() error {
	if !c.IsSorted() {
		return interval.ErrUnsortedSet
	}
	if c.IsEmpty() {
		return interval.ErrEmptySet
	}
	return nil
}
