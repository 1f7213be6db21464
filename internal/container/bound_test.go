package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-bed/internal/interval"
)

func steppedSet(t *testing.T) *set {
	var recs []*rec
	for x := int64(0); x < 500; x++ {
		recs = append(recs, iv(1, x, x+50))
	}
	return sortedSet(t, recs...)
}

func TestLowerBound(t *testing.T) {
	c := steppedSet(t)
	tests := []struct {
		query *rec
		want  int
	}{
		{iv(1, 10, 20), 0},
		{iv(1, 300, 320), 251},
		{iv(1, 200, 220), 151},
		{iv(1, 0, 500), 0},
	}
	for _, tt := range tests {
		got, err := c.LowerBound(tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "query %v", tt.query)
	}
}

func TestLowerBound_Adjacent(t *testing.T) {
	c := sortedSet(t, spans(0, 10, 10, 20, 20, 30, 30, 40, 40, 50, 50, 60)...)
	got, err := c.LowerBound(iv(1, 17, 27))
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestLowerBound_Genomic(t *testing.T) {
	low := sortedSet(t, iv(1, 10, 20), iv(2, 10, 20), iv(3, 10, 20), iv(3, 20, 20), iv(3, 30, 20), iv(4, 10, 20))
	got, err := low.LowerBound(iv(3, 10, 20))
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	high := sortedSet(t, iv(1, 10, 20), iv(2, 10, 20), iv(3, 10, 20), iv(3, 20, 20), iv(3, 30, 40), iv(4, 10, 20))
	got, err = high.LowerBound(iv(3, 25, 20))
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestLowerBound_Unchecked(t *testing.T) {
	c := FromSortedUnchecked[int, *rec]([]*rec{iv(1, 10, 20), iv(1, 20, 30), iv(1, 30, 40), iv(1, 40, 50), iv(1, 50, 60)})
	assert.Equal(t, 1, c.LowerBoundUnchecked(iv(1, 20, 25)))

	zero := sortedSet(t, iv(1, 0, 10), iv(1, 10, 20), iv(1, 20, 30))
	assert.Equal(t, 0, zero.LowerBoundUnchecked(iv(1, 5, 20)))

	ex := sortedSet(t, iv(1, 0, 300), iv(2, 0, 300), iv(2, 16, 316), iv(2, 53, 353), iv(2, 204, 504))
	assert.Equal(t, 1, ex.LowerBoundUnchecked(iv(2, 226, 376)))

	assert.Equal(t, 5, ex.LowerBoundUnchecked(iv(3, 0, 10)), "absent chromosome sorts after the set")
}

func TestLowerBound_Errors(t *testing.T) {
	u := New[int, *rec]([]*rec{iv(1, 30, 40), iv(1, 10, 20)})
	_, err := u.LowerBound(iv(1, 10, 20))
	assert.ErrorIs(t, err, interval.ErrUnsortedSet)

	_, err = Empty[int, *rec]().LowerBound(iv(1, 10, 20))
	assert.ErrorIs(t, err, interval.ErrEmptySet)

	c := sortedSet(t, iv(1, 10, 20), iv(1, 30, 40))
	c.ClearMaxLen()
	_, err = c.LowerBound(iv(1, 10, 20))
	assert.ErrorIs(t, err, interval.ErrMissingMaxLen)
}

func TestChrBound(t *testing.T) {
	c := sortedSet(t, iv(1, 0, 300), iv(2, 0, 300), iv(2, 16, 316), iv(3, 53, 353))
	tests := []struct {
		chr  int
		want int
		ok   bool
	}{
		{2, 1, true},
		{1, 0, true},
		{3, 3, true},
		{4, 0, false},
	}
	for _, tt := range tests {
		got, ok, err := c.ChrBound(iv(tt.chr, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, tt.ok, ok, "chr %d", tt.chr)
		assert.Equal(t, tt.want, got, "chr %d", tt.chr)
	}

	shifted := sortedSet(t, iv(2, 0, 300), iv(3, 0, 300))
	_, ok, err := shifted.ChrBound(iv(1, 0, 1))
	require.NoError(t, err)
	assert.False(t, ok)

	c.ClearMaxLen()
	got, ok, err := c.ChrBound(iv(3, 0, 1))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, got)
	_, err = c.LowerBound(iv(3, 0, 1))
	assert.ErrorIs(t, err, interval.ErrMissingMaxLen)
}

func TestBoundUpstream_Ignore(t *testing.T) {
	c := sortedSet(t, iv(1, 0, 300), iv(2, 0, 300), iv(2, 16, 316), iv(3, 53, 353))
	tests := []struct {
		query *rec
		want  int
		ok    bool
	}{
		{iv(2, 100, 300), 2, true},
		{iv(2, 18, 300), 2, true},
		{iv(2, 53, 300), 2, true},
		{iv(3, 54, 300), 3, true},
		{iv(3, 50, 52), 0, false},
	}
	for _, tt := range tests {
		got, ok, err := c.BoundUpstream(tt.query, interval.Ignore)
		require.NoError(t, err)
		assert.Equal(t, tt.ok, ok, "query %v", tt.query)
		assert.Equal(t, tt.want, got, "query %v", tt.query)
	}

	shifted := sortedSet(t, iv(2, 0, 300), iv(3, 0, 300), iv(3, 16, 316), iv(4, 53, 353))
	_, ok, err := shifted.BoundUpstream(iv(1, 50, 52), interval.Ignore)
	require.NoError(t, err)
	assert.False(t, ok)

	small := sortedSet(t, iv(1, 10, 20), iv(1, 30, 40), iv(1, 50, 60))
	got, ok := small.BoundUpstreamUnchecked(iv(1, 22, 32), interval.Ignore)
	assert.True(t, ok)
	assert.Equal(t, 0, got)
	_, ok = small.BoundUpstreamUnchecked(iv(1, 8, 32), interval.Ignore)
	assert.False(t, ok)
	_, ok = small.BoundUpstreamUnchecked(iv(1, 5, 25), interval.Ignore)
	assert.False(t, ok)
}

func TestBoundUpstream_Stranded(t *testing.T) {
	mixed := sortedSet(t,
		siv(1, 0, 300, interval.Forward),
		siv(2, 0, 300, interval.Reverse),
		siv(2, 16, 316, interval.Forward),
		siv(2, 16, 316, interval.Reverse),
		siv(2, 16, 316, interval.Unknown),
	)
	got, ok := mixed.BoundUpstreamUnchecked(siv(2, 100, 300, interval.Forward), interval.MatchStrand)
	require.True(t, ok)
	assert.Equal(t, 2, got)

	c := sortedSet(t,
		siv(1, 0, 300, interval.Forward),
		siv(2, 0, 300, interval.Forward),
		siv(2, 16, 316, interval.Reverse),
		siv(3, 53, 353, interval.Forward),
	)
	got, ok = c.BoundUpstreamUnchecked(siv(2, 100, 300, interval.Forward), interval.MatchStrand)
	require.True(t, ok)
	assert.Equal(t, 1, got)

	got, ok = c.BoundUpstreamUnchecked(siv(2, 100, 300, interval.Forward), interval.OppositeStrand)
	require.True(t, ok)
	assert.Equal(t, 2, got)

	none := sortedSet(t,
		siv(1, 0, 300, interval.Forward),
		siv(2, 16, 316, interval.Reverse),
		siv(3, 53, 353, interval.Forward),
	)
	_, ok = none.BoundUpstreamUnchecked(siv(2, 100, 300, interval.Forward), interval.MatchStrand)
	assert.False(t, ok)

	last := sortedSet(t,
		siv(1, 0, 300, interval.Forward),
		siv(2, 0, 300, interval.Reverse),
		siv(2, 16, 316, interval.Forward),
		siv(3, 53, 353, interval.Forward),
	)
	got, ok = last.BoundUpstreamUnchecked(siv(2, 100, 300, interval.Forward), interval.MatchStrand)
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestBoundDownstream_Ignore(t *testing.T) {
	c := sortedSet(t, iv(1, 0, 300), iv(2, 0, 300), iv(2, 16, 316), iv(3, 53, 353))
	tests := []struct {
		query *rec
		want  int
		ok    bool
	}{
		{iv(2, 10, 300), 2, true},
		{iv(3, 10, 300), 3, true},
		{iv(3, 54, 300), 0, false},
	}
	for _, tt := range tests {
		got, ok, err := c.BoundDownstream(tt.query, interval.Ignore)
		require.NoError(t, err)
		assert.Equal(t, tt.ok, ok, "query %v", tt.query)
		assert.Equal(t, tt.want, got, "query %v", tt.query)
	}

	shifted := sortedSet(t, iv(2, 0, 300), iv(3, 0, 300))
	_, ok, err := shifted.BoundDownstream(iv(1, 54, 300), interval.Ignore)
	require.NoError(t, err)
	assert.False(t, ok)

	d := sortedSet(t, iv(1, 70, 220), iv(1, 142, 292), iv(1, 154, 304))
	got, ok := d.BoundDownstreamUnchecked(iv(1, 21, 71), interval.Ignore)
	require.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestBoundDownstream_Stranded(t *testing.T) {
	query := siv(2, 10, 300, interval.Forward)
	tests := []struct {
		name string
		recs []*rec
		want int
		ok   bool
	}{
		{"next record", []*rec{
			siv(1, 0, 300, interval.Forward), siv(2, 0, 300, interval.Forward),
			siv(2, 16, 316, interval.Forward), siv(2, 16, 316, interval.Reverse),
			siv(3, 53, 353, interval.Forward),
		}, 2, true},
		{"skips reverse", []*rec{
			siv(1, 0, 300, interval.Forward), siv(2, 0, 300, interval.Forward),
			siv(2, 16, 316, interval.Reverse), siv(2, 116, 316, interval.Forward),
			siv(3, 53, 353, interval.Forward),
		}, 3, true},
		{"skips reverse and unknown", []*rec{
			siv(1, 0, 300, interval.Forward), siv(2, 0, 300, interval.Forward),
			siv(2, 16, 316, interval.Reverse), siv(2, 16, 316, interval.Unknown),
			siv(2, 116, 316, interval.Forward), siv(3, 53, 353, interval.Forward),
		}, 4, true},
		{"no match on chromosome", []*rec{
			siv(1, 0, 300, interval.Forward), siv(2, 0, 300, interval.Forward),
			siv(2, 16, 316, interval.Reverse), siv(2, 116, 316, interval.Reverse),
			siv(3, 53, 353, interval.Forward),
		}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := sortedSet(t, tt.recs...)
			got, ok, err := c.BoundDownstream(query, interval.MatchStrand)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	c := sortedSet(t, siv(1, 10, 20, interval.Forward), siv(1, 30, 40, interval.Forward), siv(1, 50, 60, interval.Forward))
	_, ok := c.BoundDownstreamUnchecked(siv(1, 65, 75, interval.Forward), interval.MatchStrand)
	assert.False(t, ok)
	got, ok := c.BoundDownstreamUnchecked(siv(1, 5, 10, interval.Forward), interval.MatchStrand)
	assert.True(t, ok)
	assert.Equal(t, 0, got)
	_, ok = c.BoundDownstreamUnchecked(siv(1, 5, 10, interval.Reverse), interval.MatchStrand)
	assert.False(t, ok)
}

func TestBound_EmptySet(t *testing.T) {
	e := Empty[int, *rec]()
	_, _, err := e.BoundUpstream(iv(1, 0, 1), interval.Ignore)
	assert.ErrorIs(t, err, interval.ErrEmptySet)
	_, _, err = e.BoundDownstream(iv(1, 0, 1), interval.Ignore)
	assert.ErrorIs(t, err, interval.ErrEmptySet)
	_, _, err = e.ChrBound(iv(1, 0, 1))
	assert.ErrorIs(t, err, interval.ErrEmptySet)
}
