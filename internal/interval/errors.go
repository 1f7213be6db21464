package interval

import (
	"errors"
	"fmt"
)

var (
	ErrUnsortedSet               = errors.New("the interval set is unsorted")
	ErrEmptySet                  = errors.New("the interval set is empty")
	ErrUnsortedIntervals         = errors.New("the provided intervals are not sorted")
	ErrMissingMaxLen             = errors.New("the maximum interval length is unknown")
	ErrSampleSizeTooLarge        = errors.New("sample size is larger than the number of intervals")
	ErrFractionUnbounded         = errors.New("fraction must be in (0, 1]")
	ErrZeroOrNegative            = errors.New("provided value must be greater than 0")
	ErrCannotAcceptUnknownStrand = errors.New("cannot accept a strand input that is unknown")
	ErrNoStrandedIntervals       = errors.New("no stranded intervals found")
)

// FractionUnboundedError reports the offending fraction of a query method.
// It matches ErrFractionUnbounded with errors.Is.
type FractionUnboundedError struct {
	Frac float64
}

func (e *FractionUnboundedError) Error() string {
	return fmt.Sprintf("provided fraction %v is oversized: must be (0, 1]", e.Frac)
}

func (e *FractionUnboundedError) Is(target error) bool {
	return target == ErrFractionUnbounded
}
