// Package container stores interval records grouped by chromosome and
// implements the set operations over them: bounds, closest, overlap
// queries, merge, intersect, subtract, complement and sampling.
package container

import (
	"cmp"
	"iter"
	"slices"

	"github.com/inodb/vibe-bed/internal/interval"
)

// Subtree holds the records of a single chromosome.
type Subtree[C cmp.Ordered, T interval.Interval[C, T]] struct {
	records   []T
	maxLen    int64
	hasMaxLen bool
	sorted    bool
}

// NewSubtree wraps records without sorting them.
func NewSubtree[C cmp.Ordered, T interval.Interval[C, T]](records []T) *Subtree[C, T] {
	s := &Subtree[C, T]{records: records}
	s.recomputeMaxLen()
	return s
}

// NewSortedSubtree sorts records in place and wraps them.
func NewSortedSubtree[C cmp.Ordered, T interval.Interval[C, T]](records []T) *Subtree[C, T] {
	s := NewSubtree[C, T](records)
	s.Sort()
	return s
}

func (s *Subtree[C, T]) recomputeMaxLen() {
	s.maxLen, s.hasMaxLen = 0, len(s.records) > 0
	for _, r := range s.records {
		s.maxLen = max(s.maxLen, interval.Len[C](r))
	}
}

func (s *Subtree[C, T]) Len() int { return len(s.records) }
func (s *Subtree[C, T]) IsEmpty() bool { return len(s.records) == 0 }
func (s *Subtree[C, T]) IsSorted() bool { return s.sorted }

// Records returns the backing slice. Callers that modify records must call
// SetUnsorted.
func (s *Subtree[C, T]) Records() []T { return s.records }

// MaxLen returns the length of the longest record, if known.
func (s *Subtree[C, T]) MaxLen() (int64, bool) { return s.maxLen, s.hasMaxLen }

func (s *Subtree[C, T]) ClearMaxLen() { s.maxLen, s.hasMaxLen = 0, false }

func (s *Subtree[C, T]) SetSorted() { s.sorted = true }
func (s *Subtree[C, T]) SetUnsorted() { s.sorted = false }

// Insert appends a record. The subtree stays sorted only when the record
// does not sort before the current last record.
func (s *Subtree[C, T]) Insert(rec T) {
	if n := len(s.records); n > 0 && interval.Lt[C](rec, s.records[n-1]) {
		s.sorted = false
	}
	s.records = append(s.records, rec)
	if s.hasMaxLen || len(s.records) == 1 {
		s.maxLen = max(s.maxLen, interval.Len[C](rec))
		s.hasMaxLen = true
	}
}

// Sort orders records by chromosome, start, end and strand.
func (s *Subtree[C, T]) Sort() {
	slices.SortStableFunc(s.records, func(a, b T) int {
		return interval.CoordCmp[C](a, b)
	})
	s.sorted = true
}

// Apply calls fn on every record, then clears the sorted flag and
// recomputes the maximum length.
func (s *Subtree[C, T]) Apply(fn func(T)) {
	for _, r := range s.records {
		fn(r)
	}
	s.sorted = false
	s.recomputeMaxLen()
}

// All iterates over the records by reference.
func (s *Subtree[C, T]) All() iter.Seq[T] {
	return slices.Values(s.records)
}

// Span returns the range from the first start to the last end. It requires
// a sorted, non-empty subtree.
func (s *Subtree[C, T]) Span() (T, error) {
	var zero T
	if !s.sorted {
		return zero, interval.ErrUnsortedSet
	}
	if len(s.records) == 0 {
		return zero, interval.ErrEmptySet
	}
	first, last := s.records[0], s.records[len(s.records)-1]
	span := first.Clone()
	interval.SetBounds[C](span, first.Start(), last.End())
	return span, nil
}

// validSorting reports whether records are in CoordCmp order.
func validSorting[C cmp.Ordered, T interval.Interval[C, T]](records []T) bool {
	return slices.IsSortedFunc(records, func(a, b T) int {
		return interval.CoordCmp[C](a, b)
	})
}
