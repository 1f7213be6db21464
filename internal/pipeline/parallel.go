// Package pipeline runs per-record work on a pool of goroutines while
// keeping output in input order.
package pipeline

import (
	"runtime"
	"sync"
)

// WorkItem holds one input record and its position in the input.
type WorkItem[In any] struct {
	Seq  int
	Item In
}

// WorkResult holds the output computed for a single input record.
type WorkResult[In, Out any] struct {
	Seq  int
	Item In
	Out  Out
	Err  error
}

// Feed sends items on a buffered channel, numbering them in order, and
// closes it.
func Feed[In any](items []In) <-chan WorkItem[In] {
	ch := make(chan WorkItem[In], min(len(items), 1024))
	go func() {
		defer close(ch)
		for i, it := range items {
			ch <- WorkItem[In]{Seq: i, Item: it}
		}
	}()
	return ch
}

// Parallel applies fn to work items using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence order).
// Use OrderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func Parallel[In, Out any](items <-chan WorkItem[In], workers int, fn func(In) (Out, error)) <-chan WorkResult[In, Out] {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult[In, Out], 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				out, err := fn(item.Item)
				results <- WorkResult[In, Out]{
					Seq:  item.Seq,
					Item: item.Item,
					Out:  out,
					Err:  err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect[In, Out any](results <-chan WorkResult[In, Out], fn func(WorkResult[In, Out]) error) error {
	pending := make(map[int]WorkResult[In, Out])
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
