package interval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bounds(ivs []*Bed3[string]) [][2]int64 {
	out := make([][2]int64, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, [2]int64{iv.Start(), iv.End()})
	}
	return out
}

func TestIntersect(t *testing.T) {
	ix, ok := Intersect[string](bed("1", 20, 30), bed("1", 15, 25))
	require.True(t, ok)
	assert.Equal(t, int64(20), ix.Start())
	assert.Equal(t, int64(25), ix.End())

	_, ok = Intersect[string](bed("1", 20, 30), bed("2", 15, 25))
	assert.False(t, ok)

	a := sbed("1", 20, 30, Forward)
	sx, ok := StrandedIntersect[string](a, sbed("1", 15, 25, Forward))
	require.True(t, ok)
	assert.Equal(t, Forward, sx.Strand())
	_, ok = StrandedIntersect[string](a, sbed("1", 15, 25, Reverse))
	assert.False(t, ok)
}

func TestIntersect_KeepsTargetFields(t *testing.T) {
	target := NewBed6("1", 10, 50, "gene", 3, Reverse)
	ix, ok := Intersect[string](bed("1", 30, 60), target)
	require.True(t, ok)
	assert.Equal(t, "gene", ix.Name)
	assert.Equal(t, Reverse, ix.Strand())
	assert.Equal(t, int64(30), ix.Start())
	assert.Equal(t, int64(50), ix.End())
	assert.Equal(t, int64(10), target.Start(), "target is not modified")
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name string
		a, b *Bed3[string]
		want [][2]int64
	}{
		{"no overlap", bed("1", 10, 20), bed("1", 30, 40), [][2]int64{{10, 20}}},
		{"equal", bed("1", 10, 20), bed("1", 10, 20), [][2]int64{}},
		{"contained", bed("1", 12, 18), bed("1", 10, 20), [][2]int64{}},
		{"contains, shared start", bed("1", 10, 30), bed("1", 10, 20), [][2]int64{{20, 30}}},
		{"contains, shared end", bed("1", 10, 30), bed("1", 20, 30), [][2]int64{{10, 20}}},
		{"contains internally", bed("1", 10, 50), bed("1", 20, 40), [][2]int64{{10, 20}, {40, 50}}},
		{"right shifted", bed("1", 20, 40), bed("1", 10, 30), [][2]int64{{30, 40}}},
		{"left shifted", bed("1", 10, 30), bed("1", 20, 40), [][2]int64{{10, 20}}},
		{"other chromosome", bed("1", 10, 30), bed("2", 20, 40), [][2]int64{{10, 30}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bounds(Subtract[string](tt.a, tt.b)))
		})
	}
}

func TestQueryMethod_Validate(t *testing.T) {
	assert.NoError(t, MethodCompare().Validate())
	assert.NoError(t, MethodCompareBy(1).Validate())
	assert.ErrorIs(t, MethodCompareBy(0).Validate(), ErrZeroOrNegative)
	assert.ErrorIs(t, MethodCompareExact(-3).Validate(), ErrZeroOrNegative)
	assert.NoError(t, MethodByQueryFraction(1).Validate())

	err := MethodByQueryFraction(1.5).Validate()
	assert.ErrorIs(t, err, ErrFractionUnbounded)
	var fe *FractionUnboundedError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 1.5, fe.Frac)

	assert.ErrorIs(t, MethodByTargetFraction(0).Validate(), ErrFractionUnbounded)

	err = MethodReciprocalAnd(-0.1, 2).Validate()
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, -0.1, fe.Frac, "query fraction is reported first")

	err = MethodReciprocalOr(0.5, 2).Validate()
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2.0, fe.Frac)

	assert.Equal(t, "CompareBy(5)", MethodCompareBy(5).String())
	assert.Equal(t, "CompareReciprocalFractionAnd(0.5, 0.25)", MethodReciprocalAnd(0.5, 0.25).String())
}

func TestPredicate(t *testing.T) {
	query := bed("1", 100, 200)
	target := bed("1", 150, 400)

	assert.True(t, Predicate[string](Query{}, target, query))
	assert.True(t, Predicate[string](NewQuery(MethodCompareBy(50), Ignore), target, query))
	assert.False(t, Predicate[string](NewQuery(MethodCompareBy(51), Ignore), target, query))
	assert.True(t, Predicate[string](NewQuery(MethodCompareExact(50), Ignore), target, query))

	// 50 shared bases: half the query, a fifth of the target
	assert.True(t, Predicate[string](NewQuery(MethodByQueryFraction(0.5), Ignore), target, query))
	assert.False(t, Predicate[string](NewQuery(MethodByQueryFraction(0.6), Ignore), target, query))
	assert.True(t, Predicate[string](NewQuery(MethodByTargetFraction(0.2), Ignore), target, query))
	assert.False(t, Predicate[string](NewQuery(MethodByTargetFraction(0.5), Ignore), target, query))
	assert.False(t, Predicate[string](NewQuery(MethodReciprocalAnd(0.5, 0.5), Ignore), target, query))
	assert.True(t, Predicate[string](NewQuery(MethodReciprocalOr(0.5, 0.5), Ignore), target, query))
	assert.True(t, Predicate[string](NewQuery(MethodReciprocalAnd(0.5, 0.2), Ignore), target, query))
}

func TestPredicate_Strand(t *testing.T) {
	query := sbed("1", 100, 200, Forward)
	same := sbed("1", 150, 250, Forward)
	opposite := sbed("1", 150, 250, Reverse)

	match := NewQuery(MethodCompare(), MatchStrand)
	assert.True(t, Predicate[string](match, same, query))
	assert.False(t, Predicate[string](match, opposite, query))

	opp := NewQuery(MethodCompare(), OppositeStrand)
	assert.False(t, Predicate[string](opp, same, query))
	assert.True(t, Predicate[string](opp, opposite, query))

	// reciprocal fractions honour the strand constraint
	recip := NewQuery(MethodReciprocalAnd(0.5, 0.5), MatchStrand)
	assert.True(t, Predicate[string](recip, same, query))
	assert.False(t, Predicate[string](recip, opposite, query))
}

func TestParseStrand(t *testing.T) {
	for in, want := range map[string]Strand{"+": Forward, "-": Reverse, ".": Unknown, "": NoStrand} {
		got, err := ParseStrand(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseStrand("x")
	assert.Error(t, err)
	assert.Equal(t, "+", Forward.String())
	assert.Equal(t, ".", NoStrand.String())
}

func TestRecordString(t *testing.T) {
	assert.Equal(t, "chr1\t10\t20", NewBed3("chr1", 10, 20).String())
	assert.Equal(t, "chr1\t10\t20\t-", NewStrandedBed3("chr1", 10, 20, Reverse).String())
	assert.Equal(t, "chr1\t10\t20\tx\t0.5\t+", NewBed6("chr1", 10, 20, "x", 0.5, Forward).String())
	assert.Equal(t, "chr1\t10\t20\t3", NewBedGraph("chr1", 10, 20, 3).String())
}
