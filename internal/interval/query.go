package interval

import (
	"cmp"
	"fmt"
)

// MethodKind selects how much overlap a query requires.
type MethodKind int

const (
	Compare MethodKind = iota
	CompareBy
	CompareExact
	CompareByQueryFraction
	CompareByTargetFraction
	CompareReciprocalFractionAnd
	CompareReciprocalFractionOr
)

var methodNames = map[MethodKind]string{
	Compare:                      "Compare",
	CompareBy:                    "CompareBy",
	CompareExact:                 "CompareExact",
	CompareByQueryFraction:       "CompareByQueryFraction",
	CompareByTargetFraction:      "CompareByTargetFraction",
	CompareReciprocalFractionAnd: "CompareReciprocalFractionAnd",
	CompareReciprocalFractionOr:  "CompareReciprocalFractionOr",
}

func (k MethodKind) String() string {
	if s, ok := methodNames[k]; ok {
		return s
	}
	return fmt.Sprintf("MethodKind(%d)", int(k))
}

// QueryMethod is an overlap predicate with its threshold. The zero value is
// plain overlap.
type QueryMethod struct {
	Kind MethodKind
	// Bases is the threshold for CompareBy and CompareExact.
	Bases int64
	// QueryFrac and TargetFrac are fractions of the query and target lengths.
	QueryFrac  float64
	TargetFrac float64
}

func MethodCompare() QueryMethod { return QueryMethod{} }
func MethodCompareBy(n int64) QueryMethod { return QueryMethod{Kind: CompareBy, Bases: n} }
func MethodCompareExact(n int64) QueryMethod { return QueryMethod{Kind: CompareExact, Bases: n} }

func MethodByQueryFraction(f float64) QueryMethod {
	return QueryMethod{Kind: CompareByQueryFraction, QueryFrac: f}
}

func MethodByTargetFraction(f float64) QueryMethod {
	return QueryMethod{Kind: CompareByTargetFraction, TargetFrac: f}
}

func MethodReciprocalAnd(fq, ft float64) QueryMethod {
	return QueryMethod{Kind: CompareReciprocalFractionAnd, QueryFrac: fq, TargetFrac: ft}
}

func MethodReciprocalOr(fq, ft float64) QueryMethod {
	return QueryMethod{Kind: CompareReciprocalFractionOr, QueryFrac: fq, TargetFrac: ft}
}

func fractionOutOfRange(f float64) bool {
	return f <= 0 || f > 1
}

// Validate checks thresholds: base counts must be positive and fractions
// must lie in (0, 1]. For reciprocal methods the query fraction is reported
// first.
func (m QueryMethod) Validate() error {
	switch m.Kind {
	case CompareBy, CompareExact:
		if m.Bases <= 0 {
			return ErrZeroOrNegative
		}
	case CompareByQueryFraction:
		if fractionOutOfRange(m.QueryFrac) {
			return &FractionUnboundedError{Frac: m.QueryFrac}
		}
	case CompareByTargetFraction:
		if fractionOutOfRange(m.TargetFrac) {
			return &FractionUnboundedError{Frac: m.TargetFrac}
		}
	case CompareReciprocalFractionAnd, CompareReciprocalFractionOr:
		if fractionOutOfRange(m.QueryFrac) {
			return &FractionUnboundedError{Frac: m.QueryFrac}
		}
		if fractionOutOfRange(m.TargetFrac) {
			return &FractionUnboundedError{Frac: m.TargetFrac}
		}
	}
	return nil
}

func (m QueryMethod) String() string {
	switch m.Kind {
	case CompareBy, CompareExact:
		return fmt.Sprintf("%s(%d)", m.Kind, m.Bases)
	case CompareByQueryFraction:
		return fmt.Sprintf("%s(%v)", m.Kind, m.QueryFrac)
	case CompareByTargetFraction:
		return fmt.Sprintf("%s(%v)", m.Kind, m.TargetFrac)
	case CompareReciprocalFractionAnd, CompareReciprocalFractionOr:
		return fmt.Sprintf("%s(%v, %v)", m.Kind, m.QueryFrac, m.TargetFrac)
	default:
		return m.Kind.String()
	}
}

// StrandMethod selects how strands constrain a query.
type StrandMethod int

const (
	Ignore StrandMethod = iota
	MatchStrand
	OppositeStrand
)

func (s StrandMethod) String() string {
	switch s {
	case MatchStrand:
		return "MatchStrand"
	case OppositeStrand:
		return "OppositeStrand"
	default:
		return "Ignore"
	}
}

// ParseStrandMethod parses the CLI spelling of a strand method.
func ParseStrandMethod(s string) (StrandMethod, error) {
	switch s {
	case "", "ignore":
		return Ignore, nil
	case "same", "match":
		return MatchStrand, nil
	case "opposite":
		return OppositeStrand, nil
	default:
		return Ignore, fmt.Errorf("invalid strand method %q", s)
	}
}

// Query combines an overlap predicate with a strand constraint.
type Query struct {
	Method QueryMethod
	Strand StrandMethod
}

// NewQuery returns a Query; the zero Query is plain overlap ignoring strand.
func NewQuery(m QueryMethod, s StrandMethod) Query {
	return Query{Method: m, Strand: s}
}

func (q Query) Validate() error {
	return q.Method.Validate()
}

// Predicate reports whether target satisfies the query against query.
func Predicate[C cmp.Ordered](q Query, target, query Coordinates[C]) bool {
	var size int64
	var ok bool
	switch q.Strand {
	case MatchStrand:
		size, ok = StrandedOverlapSize(target, query)
	case OppositeStrand:
		size, ok = UnstrandedOverlapSize(target, query)
	default:
		size, ok = OverlapSize(target, query)
	}
	if !ok {
		return false
	}

	m := q.Method
	switch m.Kind {
	case CompareBy:
		return size >= m.Bases
	case CompareExact:
		return size == m.Bases
	case CompareByQueryFraction:
		return size >= FLen(query, m.QueryFrac)
	case CompareByTargetFraction:
		return size >= FLen(target, m.TargetFrac)
	case CompareReciprocalFractionAnd:
		return FLen(query, m.QueryFrac) <= size && FLen(target, m.TargetFrac) <= size
	case CompareReciprocalFractionOr:
		return FLen(query, m.QueryFrac) <= size || FLen(target, m.TargetFrac) <= size
	default:
		return true
	}
}
