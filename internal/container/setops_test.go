package container

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-bed/internal/interval"
)

func spans(pairs ...int64) []*rec {
	out := make([]*rec, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, iv(1, pairs[i], pairs[i+1]))
	}
	return out
}

func TestIntersectIter(t *testing.T) {
	tests := []struct {
		name        string
		left, right []*rec
		want        []coord
	}{
		{"a", spans(100, 300, 400, 475, 500, 550), spans(120, 160, 460, 470, 490, 500),
			[]coord{{1, 120, 160}, {1, 460, 470}}},
		{"b", spans(100, 300, 400, 475), spans(80, 120, 460, 480),
			[]coord{{1, 100, 120}, {1, 460, 475}}},
		{"c", spans(10, 30, 40, 60), spans(20, 50),
			[]coord{{1, 20, 30}, {1, 40, 50}}},
		{"d", spans(20, 50), spans(10, 30, 40, 60),
			[]coord{{1, 20, 30}, {1, 40, 50}}},
		{"e", spans(10, 30, 40, 60, 70, 90), spans(20, 50, 50, 80),
			[]coord{{1, 20, 30}, {1, 40, 50}, {1, 50, 60}, {1, 70, 80}}},
		{"f", spans(20, 50, 50, 80), spans(10, 30, 40, 60, 70, 90),
			[]coord{{1, 20, 30}, {1, 40, 50}, {1, 50, 60}, {1, 70, 80}}},
		{"g", spans(10, 30, 40, 60, 70, 90), spans(20, 50, 75, 85),
			[]coord{{1, 20, 30}, {1, 40, 50}, {1, 75, 85}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(IntersectIter[int, *rec](slices.Values(tt.left), slices.Values(tt.right), interval.Query{}))
			assert.Equal(t, tt.want, coords(got))
		})
	}
}

func TestIntersectIter_StopsEarly(t *testing.T) {
	seq := IntersectIter[int, *rec](slices.Values(spans(10, 30, 40, 60)), slices.Values(spans(20, 50)), interval.Query{})
	for range seq {
		break
	}
}

func TestIntersectQueryAndTarget(t *testing.T) {
	a := sortedSet(t, siv(1, 10, 30, interval.Forward), siv(1, 40, 60, interval.Forward))
	b := sortedSet(t, siv(1, 20, 50, interval.Reverse))

	q, err := a.IntersectQuery(b, interval.Query{})
	require.NoError(t, err)
	assert.Equal(t, []coord{{1, 20, 30}, {1, 40, 50}}, coords(q.Records()))
	assert.Equal(t, interval.Forward, q.Records()[0].Strand(), "cloned from the query set")

	tg, err := a.IntersectTarget(b, interval.Query{})
	require.NoError(t, err)
	assert.Equal(t, []coord{{1, 20, 30}, {1, 40, 50}}, coords(tg.Records()))
	assert.Equal(t, interval.Reverse, tg.Records()[0].Strand(), "cloned from the target set")

	none, err := a.IntersectQuery(b, interval.NewQuery(interval.MethodCompare(), interval.MatchStrand))
	require.NoError(t, err)
	assert.True(t, none.IsEmpty())
}

func TestSubtract(t *testing.T) {
	query := iv(1, 20, 40)
	tests := []struct {
		name string
		recs []*rec
		want []coord
	}{
		{"a", spans(10, 15, 25, 35, 45, 50), []coord{{1, 10, 15}, {1, 45, 50}}},
		{"b", spans(10, 25, 25, 35, 45, 50), []coord{{1, 10, 20}, {1, 45, 50}}},
		{"c", spans(10, 15, 25, 35, 35, 50), []coord{{1, 10, 15}, {1, 40, 50}}},
		{"d", spans(10, 25, 25, 35, 35, 50), []coord{{1, 10, 20}, {1, 40, 50}}},
		{"other chromosome", []*rec{iv(2, 20, 40)}, []coord{{2, 20, 40}}},
		{"equal and contained", spans(20, 40, 25, 30), []coord{}},
		{"e", spans(10, 50, 10, 50), []coord{{1, 10, 20}, {1, 40, 50}, {1, 10, 20}, {1, 40, 50}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := sortedSet(t, tt.recs...).Subtract(query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, coords(slices.Collect(seq)))
		})
	}

	_, err := New[int, *rec](spans(30, 40, 10, 20)).Subtract(query)
	assert.ErrorIs(t, err, interval.ErrUnsortedSet)
	_, err = Empty[int, *rec]().Subtract(query)
	assert.ErrorIs(t, err, interval.ErrEmptySet)
}

func TestSubtractFrom(t *testing.T) {
	tests := []struct {
		name  string
		query *rec
		recs  []*rec
		want  []coord
	}{
		{"a", iv(1, 20, 40), spans(10, 15, 25, 35, 45, 50), []coord{{1, 20, 25}, {1, 35, 40}}},
		{"b", iv(1, 20, 40), spans(10, 25, 25, 35, 45, 50), []coord{{1, 35, 40}}},
		{"c", iv(1, 20, 40), spans(10, 25, 25, 35, 35, 50), nil},
		{"d", iv(1, 20, 40), spans(25, 27, 32, 35), []coord{{1, 20, 25}, {1, 27, 32}, {1, 35, 40}}},
		{"e", iv(1, 10, 100), spans(20, 30, 40, 50, 60, 70), []coord{{1, 10, 20}, {1, 30, 40}, {1, 50, 60}, {1, 70, 100}}},
		{"f", iv(1, 10, 100), spans(20, 30, 40, 50, 60, 110), []coord{{1, 10, 20}, {1, 30, 40}, {1, 50, 60}}},
		{"g", iv(1, 10, 100), spans(5, 15, 40, 50, 60, 110), []coord{{1, 15, 40}, {1, 50, 60}}},
		{"h", iv(1, 40, 60), spans(20, 30, 45, 55, 70, 80), []coord{{1, 40, 45}, {1, 55, 60}}},
		{"i", iv(1, 40, 60), spans(30, 40, 45, 55, 60, 70), []coord{{1, 40, 45}, {1, 55, 60}}},
		{"j", iv(1, 40, 60), spans(30, 70, 30, 70), nil},
		{"other chromosome", iv(2, 40, 60), spans(30, 70), []coord{{2, 40, 60}}},
		{"long record before", iv(1, 250, 305), spans(0, 100, 200, 210, 300, 310), []coord{{1, 250, 300}}},
		{"inside long record", iv(1, 50, 60), spans(0, 100, 200, 210, 300, 310), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := sortedSet(t, tt.recs...).SubtractFrom(tt.query)
			require.NoError(t, err)
			got := coords(slices.Collect(seq))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubtractFrom_KeepsQuery(t *testing.T) {
	query := iv(1, 20, 40)
	seq, err := sortedSet(t, spans(25, 27)...).SubtractFrom(query)
	require.NoError(t, err)
	_ = slices.Collect(seq)
	assert.Equal(t, coord{1, 20, 40}, coords([]*rec{query})[0])
}

func TestSubtractFromIter_StopsPastQuery(t *testing.T) {
	pulled := 0
	seq := func(yield func(*rec) bool) {
		for _, r := range spans(0, 5, 30, 40, 50, 60) {
			pulled++
			if !yield(r) {
				return
			}
		}
	}
	got := coords(slices.Collect(SubtractFromIter[int, *rec](seq, iv(1, 10, 20))))
	assert.Equal(t, []coord{{1, 10, 20}}, got)
	assert.Equal(t, 2, pulled)
}

func TestComplement(t *testing.T) {
	c := sortedSet(t, iv(1, 10, 20), iv(1, 30, 40), iv(1, 50, 60), iv(2, 5, 10), iv(2, 20, 30))
	seq, err := c.Complement()
	require.NoError(t, err)
	assert.Equal(t, []coord{{1, 20, 30}, {1, 40, 50}, {2, 10, 20}}, coords(slices.Collect(seq)))

	_, err = New[int, *rec](spans(30, 40, 10, 20)).Complement()
	assert.ErrorIs(t, err, interval.ErrUnsortedSet)
}

func TestComplementIter_PanicsOnUnsorted(t *testing.T) {
	seq := ComplementIter[int, *rec](slices.Values(spans(30, 40, 10, 20)))
	assert.Panics(t, func() { _ = slices.Collect(seq) })
}

func TestInternal(t *testing.T) {
	seq, err := sortedSet(t, spans(1, 3, 6, 10)...).Internal()
	require.NoError(t, err)
	assert.Equal(t, []coord{{1, 3, 6}}, coords(slices.Collect(seq)))

	seq, err = sortedSet(t, spans(1, 3, 2, 4, 6, 10, 12, 20)...).Internal()
	require.NoError(t, err)
	assert.Equal(t, []coord{{1, 4, 6}, {1, 10, 12}}, coords(slices.Collect(seq)))

	_, err = New[int, *rec](spans(30, 40, 10, 20)).Internal()
	assert.ErrorIs(t, err, interval.ErrUnsortedSet)
}

func TestSegment(t *testing.T) {
	c := sortedSet(t, spans(10, 50, 20, 60, 30, 70, 80, 90, 85, 95)...)
	seg, err := c.Segment()
	require.NoError(t, err)
	got := seg.Records()
	assert.Equal(t, []coord{
		{1, 10, 20}, {1, 20, 30}, {1, 30, 50}, {1, 50, 60}, {1, 60, 70},
		{1, 80, 85}, {1, 85, 90}, {1, 90, 95},
	}, coords(got))
	for i := 1; i < len(got); i++ {
		assert.False(t, interval.Overlaps[int](got[i-1], got[i]))
	}

	_, err = New[int, *rec](spans(30, 40, 10, 20)).Segment()
	assert.ErrorIs(t, err, interval.ErrUnsortedSet)
}

func TestSample(t *testing.T) {
	var recs []*rec
	for i := int64(0); i < 20; i++ {
		recs = append(recs, iv(1, i*10, i*10+5))
	}
	c := sortedSet(t, recs...)

	a, err := c.Sample(5, 42)
	require.NoError(t, err)
	b, err := c.Sample(5, 42)
	require.NoError(t, err)
	assert.Equal(t, 5, a.Len())
	assert.Equal(t, coords(a.Records()), coords(b.Records()), "same seed, same sample")

	_, err = c.Sample(21, 1)
	assert.ErrorIs(t, err, interval.ErrSampleSizeTooLarge)

	seq, err := c.SampleIter(3, 7)
	require.NoError(t, err)
	assert.Len(t, slices.Collect(seq), 3)
}

func TestShuffle(t *testing.T) {
	var recs []*rec
	for i := int64(0); i < 50; i++ {
		recs = append(recs, iv(1, i*10, i*10+5))
	}
	c := sortedSet(t, recs...)
	c.Shuffle(3)
	assert.False(t, c.IsSorted())
	assert.Equal(t, 50, c.Len())
	assert.False(t, ValidSorting[int, *rec](c.Records()))

	c.Sort()
	assert.Equal(t, coords(recs), coords(c.Records()))
}
