package interval

import (
	"cmp"
	"math"
)

// Coordinates is the capability every record exposes: a half-open range
// [Start, End) on a chromosome with an optional strand.
type Coordinates[C cmp.Ordered] interface {
	Chr() C
	Start() int64
	End() int64
	Strand() Strand
	SetChr(C)
	SetStart(int64)
	SetEnd(int64)
	SetStrand(Strand)
}

// Interval is a record that can be stored in a container. Records are
// usually pointer types; Clone returns an independent copy.
type Interval[C cmp.Ordered, T any] interface {
	Coordinates[C]
	Clone() T
}

// Len returns End - Start. Malformed records (start > end) have a negative length.
func Len[C cmp.Ordered](iv Coordinates[C]) int64 {
	return iv.End() - iv.Start()
}

// FLen returns the length scaled by frac, rounded to the nearest base.
func FLen[C cmp.Ordered](iv Coordinates[C], frac float64) int64 {
	return int64(math.Round(float64(Len(iv)) * frac))
}

// SetBounds updates both endpoints.
func SetBounds[C cmp.Ordered](iv Coordinates[C], start, end int64) {
	iv.SetStart(start)
	iv.SetEnd(end)
}

// CoordCmp orders records by chromosome, start, end and strand.
func CoordCmp[C cmp.Ordered](a, b Coordinates[C]) int {
	if c := cmp.Compare(a.Chr(), b.Chr()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Start(), b.Start()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End(), b.End()); c != 0 {
		return c
	}
	return cmp.Compare(a.Strand(), b.Strand())
}

// BiasedCoordCmp is CoordCmp with b's start shifted down by bias. When b
// starts before bias the shifted start would fall below zero and the two
// records compare equal.
func BiasedCoordCmp[C cmp.Ordered](a, b Coordinates[C], bias int64) int {
	if c := cmp.Compare(a.Chr(), b.Chr()); c != 0 {
		return c
	}
	if b.Start() < bias {
		return 0
	}
	if c := cmp.Compare(a.Start(), b.Start()-bias); c != 0 {
		return c
	}
	if c := cmp.Compare(a.End(), b.End()); c != 0 {
		return c
	}
	return cmp.Compare(a.Strand(), b.Strand())
}

// BiasedLt reports whether a sorts before b under BiasedCoordCmp.
func BiasedLt[C cmp.Ordered](a, b Coordinates[C], bias int64) bool {
	return BiasedCoordCmp(a, b, bias) < 0
}

func Lt[C cmp.Ordered](a, b Coordinates[C]) bool { return CoordCmp(a, b) < 0 }
func Gt[C cmp.Ordered](a, b Coordinates[C]) bool { return CoordCmp(a, b) > 0 }

// Eq reports whether a and b share every coordinate including strand.
func Eq[C cmp.Ordered](a, b Coordinates[C]) bool { return CoordCmp(a, b) == 0 }
