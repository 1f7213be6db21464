package container

import (
	"cmp"
	"context"
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inodb/vibe-bed/internal/interval"
)

// chunkMin is the subtree size above which ParSort splits a single
// chromosome into chunks.
var chunkMin = 1 << 15

// ParSort sorts every chromosome concurrently using up to workers
// goroutines. If workers is 0, runtime.NumCPU() is used. The result is
// identical to Sort.
func (c *Container[C, T]) ParSort(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, st := range c.tree.Subtrees() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return st.ParSort(ctx, workers)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.tree.sorted = true
	c.logger.Debug("sorted intervals in parallel",
		zap.Int("records", c.Len()),
		zap.Int("chromosomes", c.tree.NumSubtrees()),
		zap.Int("workers", workers))
	return nil
}

// ParSort sorts large subtrees as stably sorted chunks that are then merged
// pairwise. Small subtrees fall back to Sort.
func (s *Subtree[C, T]) ParSort(ctx context.Context, workers int) error {
	if workers <= 1 || len(s.records) < chunkMin {
		s.Sort()
		return nil
	}
	sorted, err := sortChunks[C, T](ctx, s.records, workers)
	if err != nil {
		return err
	}
	s.records = sorted
	s.sorted = true
	return nil
}

type run struct{ lo, hi int }

func sortChunks[C cmp.Ordered, T interval.Interval[C, T]](ctx context.Context, records []T, workers int) ([]T, error) {
	n := len(records)
	size := (n + workers - 1) / workers

	var runs []run
	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += size {
		chunk := records[lo:min(lo+size, n)]
		runs = append(runs, run{lo, min(lo+size, n)})
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slices.SortStableFunc(chunk, func(a, b T) int {
				return interval.CoordCmp[C](a, b)
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	src, dst := records, make([]T, n)
	for len(runs) > 1 {
		next := make([]run, 0, (len(runs)+1)/2)
		for i := 0; i < len(runs); i += 2 {
			if i+1 == len(runs) {
				copy(dst[runs[i].lo:runs[i].hi], src[runs[i].lo:runs[i].hi])
				next = append(next, runs[i])
				continue
			}
			lo, mid, hi := runs[i].lo, runs[i].hi, runs[i+1].hi
			mergeRuns[C](dst[lo:hi], src[lo:mid], src[mid:hi])
			next = append(next, run{lo, hi})
		}
		src, dst = dst, src
		runs = next
	}
	return src, nil
}

// mergeRuns merges two sorted runs into out, taking from left on ties so
// equal records keep their input order.
func mergeRuns[C cmp.Ordered, T interval.Interval[C, T]](out, left, right []T) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if interval.CoordCmp[C](right[j], left[i]) < 0 {
			out[k] = right[j]
			j++
		} else {
			out[k] = left[i]
			i++
		}
		k++
	}
	k += copy(out[k:], left[i:])
	copy(out[k:], right[j:])
}
