// Package interval provides the coordinate capability and pairwise interval
// algebra shared by every container operation.
package interval

import "fmt"

// Strand is the orientation of a record. The zero value means the record
// carries no strand information at all.
//
// The numeric order (NoStrand < Forward < Reverse < Unknown) is the order
// used as the last key when sorting records.
type Strand int8

const (
	NoStrand Strand = iota
	Forward
	Reverse
	Unknown
)

// ParseStrand parses a BED strand column.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Forward, nil
	case "-":
		return Reverse, nil
	case ".", "?":
		return Unknown, nil
	case "":
		return NoStrand, nil
	default:
		return NoStrand, fmt.Errorf("invalid strand %q", s)
	}
}

// String renders the strand the way it appears in a BED file.
func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	default:
		return "."
	}
}

// IsSet reports whether the record carries strand information.
func (s Strand) IsSet() bool {
	return s != NoStrand
}
