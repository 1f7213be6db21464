package container

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/inodb/vibe-bed/internal/interval"
)

// Tree maps chromosome names to their subtrees. The sorted flag is only
// set when every subtree has been sorted.
type Tree[C cmp.Ordered, T interval.Interval[C, T]] struct {
	subtrees map[C]*Subtree[C, T]
	sorted   bool
}

func NewTree[C cmp.Ordered, T interval.Interval[C, T]]() *Tree[C, T] {
	return &Tree[C, T]{subtrees: make(map[C]*Subtree[C, T])}
}

// Insert adds rec to the subtree for its chromosome, creating it if needed.
func (t *Tree[C, T]) Insert(rec T) {
	st, ok := t.subtrees[rec.Chr()]
	if !ok {
		st = &Subtree[C, T]{sorted: t.sorted}
		t.subtrees[rec.Chr()] = st
	}
	st.Insert(rec)
	if !st.sorted {
		t.sorted = false
	}
}

// InsertSubtree replaces the subtree for chr.
func (t *Tree[C, T]) InsertSubtree(chr C, st *Subtree[C, T]) {
	t.subtrees[chr] = st
	if !st.sorted {
		t.sorted = false
	}
}

func (t *Tree[C, T]) Subtree(chr C) (*Subtree[C, T], bool) {
	st, ok := t.subtrees[chr]
	return st, ok
}

// TakeSubtree removes and returns the subtree for chr.
func (t *Tree[C, T]) TakeSubtree(chr C) (*Subtree[C, T], bool) {
	st, ok := t.subtrees[chr]
	if ok {
		delete(t.subtrees, chr)
	}
	return st, ok
}

// Chromosomes returns the subtree names in ascending order.
func (t *Tree[C, T]) Chromosomes() []C {
	return slices.Sorted(maps.Keys(t.subtrees))
}

func (t *Tree[C, T]) NumSubtrees() int { return len(t.subtrees) }

// Len returns the total number of records.
func (t *Tree[C, T]) Len() int {
	n := 0
	for _, st := range t.subtrees {
		n += st.Len()
	}
	return n
}

func (t *Tree[C, T]) IsEmpty() bool { return t.Len() == 0 }

func (t *Tree[C, T]) IsSorted() bool { return t.sorted }

// SetSorted marks every subtree and the tree as sorted without checking.
func (t *Tree[C, T]) SetSorted() {
	for _, st := range t.subtrees {
		st.SetSorted()
	}
	t.sorted = true
}

func (t *Tree[C, T]) SetUnsorted() { t.sorted = false }

func (t *Tree[C, T]) Sort() {
	for _, st := range t.subtrees {
		st.Sort()
	}
	t.sorted = true
}

// Apply mutates every record and clears the sorted flags.
func (t *Tree[C, T]) Apply(fn func(T)) {
	for _, st := range t.subtrees {
		st.Apply(fn)
	}
	t.sorted = false
}

// Span returns the span of chr's subtree; ok is false when chr is absent.
func (t *Tree[C, T]) Span(chr C) (span T, ok bool, err error) {
	st, ok := t.subtrees[chr]
	if !ok {
		return span, false, nil
	}
	span, err = st.Span()
	return span, true, err
}

// Subtrees iterates over the subtrees in chromosome order.
func (t *Tree[C, T]) Subtrees() iter.Seq2[C, *Subtree[C, T]] {
	return func(yield func(C, *Subtree[C, T]) bool) {
		for _, chr := range t.Chromosomes() {
			if !yield(chr, t.subtrees[chr]) {
				return
			}
		}
	}
}

// offset returns the number of records on chromosomes smaller than chr.
func (t *Tree[C, T]) offset(chr C) int {
	n := 0
	for c, st := range t.subtrees {
		if c < chr {
			n += st.Len()
		}
	}
	return n
}
