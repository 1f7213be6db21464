package container

import (
	"encoding/binary"
	"iter"
	"math/rand/v2"

	"github.com/inodb/vibe-bed/internal/interval"
)

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return rand.New(rand.NewChaCha8(key))
}

// ShuffleRand permutes the records of every chromosome and marks the set
// unsorted.
func (c *Container[C, T]) ShuffleRand(r *rand.Rand) {
	for _, st := range c.tree.Subtrees() {
		r.Shuffle(len(st.records), func(i, j int) {
			st.records[i], st.records[j] = st.records[j], st.records[i]
		})
		st.SetUnsorted()
	}
	c.tree.SetUnsorted()
}

func (c *Container[C, T]) Shuffle(seed uint64) { c.ShuffleRand(NewRand(seed)) }

// SampleRand returns an unsorted container holding clones of n records
// chosen without replacement.
func (c *Container[C, T]) SampleRand(n int, r *rand.Rand) (*Container[C, T], error) {
	seq, err := c.SampleIterRand(n, r)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for rec := range seq {
		out = append(out, rec.Clone())
	}
	s := New[C, T](out)
	s.logger = c.logger
	return s, nil
}

func (c *Container[C, T]) Sample(n int, seed uint64) (*Container[C, T], error) {
	return c.SampleRand(n, NewRand(seed))
}

// SampleIterRand yields n records chosen without replacement, by reference.
func (c *Container[C, T]) SampleIterRand(n int, r *rand.Rand) (iter.Seq[T], error) {
	if n > c.Len() {
		return nil, interval.ErrSampleSizeTooLarge
	}
	if n < 0 {
		return nil, interval.ErrZeroOrNegative
	}
	records := c.Records()
	perm := r.Perm(len(records))[:n]
	return func(yield func(T) bool) {
		for _, i := range perm {
			if !yield(records[i]) {
				return
			}
		}
	}, nil
}

func (c *Container[C, T]) SampleIter(n int, seed uint64) (iter.Seq[T], error) {
	return c.SampleIterRand(n, NewRand(seed))
}
