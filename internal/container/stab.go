package container

import (
	"cmp"
	"slices"
	"sort"

	"github.com/inodb/vibe-bed/internal/interval"
)

// StabIndex answers point queries in O(log n + k) using a start-sorted
// slice with a prefix maximum of end positions. It is built once and never
// modified.
type StabIndex[C cmp.Ordered, T interval.Interval[C, T]] struct {
	records []T
	maxEnd  []int64 // maxEnd[i] = max(End) for records[:i+1]
}

// BuildStabIndex copies records of a single chromosome and indexes them.
func BuildStabIndex[C cmp.Ordered, T interval.Interval[C, T]](records []T) *StabIndex[C, T] {
	if len(records) == 0 {
		return &StabIndex[C, T]{}
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(a.Start(), b.Start())
	})

	maxEnd := make([]int64, len(sorted))
	maxEnd[0] = sorted[0].End()
	for i := 1; i < len(sorted); i++ {
		maxEnd[i] = max(maxEnd[i-1], sorted[i].End())
	}

	return &StabIndex[C, T]{records: sorted, maxEnd: maxEnd}
}

// Stab returns the records with Start <= pos < End, latest start first.
func (s *StabIndex[C, T]) Stab(pos int64) []T {
	if len(s.records) == 0 {
		return nil
	}

	// Candidates all start at or before pos.
	hi := sort.Search(len(s.records), func(i int) bool {
		return s.records[i].Start() > pos
	})

	var result []T
	for i := hi - 1; i >= 0; i-- {
		// Nothing in records[:i+1] reaches past pos.
		if s.maxEnd[i] <= pos {
			break
		}
		if s.records[i].End() > pos {
			result = append(result, s.records[i])
		}
	}
	return result
}
